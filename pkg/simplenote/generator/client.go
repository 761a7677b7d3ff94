// Package generator talks to the HTTP service that turns an export payload
// into a notation file.
package generator

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/himanishpuri/SimpleNote/pkg/simplenote/export"
	"github.com/himanishpuri/SimpleNote/pkg/utils"
)

const DefaultBaseURL = "http://127.0.0.1:8000"

// maxErrorBody caps how much of a failed response is quoted in the error.
const maxErrorBody = 512

// StatusError is returned for a non-2xx response.
type StatusError struct {
	StatusCode int
	Status     string
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("generation service returned %s", e.Status)
	}
	return fmt.Sprintf("generation service returned %s: %s", e.Status, e.Body)
}

// Client calls POST /generate.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a client for the service at baseURL. A zero timeout
// means no client-side limit; the request context still applies.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// BaseURL is the service address the client was created with.
func (c *Client) BaseURL() string { return c.baseURL }

// Generate posts the payload and returns the file body. The payload is
// encoded before the request starts, so the caller may keep editing the
// score it came from.
func (c *Client) Generate(ctx context.Context, p export.Payload, format export.Format) ([]byte, error) {
	body, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("encoding payload: %w", err)
	}

	endpoint := c.baseURL + "/generate?" + url.Values{"fmt": {string(format)}}.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calling generation service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, &StatusError{
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Body:       strings.TrimSpace(string(snippet)),
		}
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading generated file: %w", err)
	}
	return data, nil
}

// Filename is the name a generated file is saved under: the title made
// safe for the file system plus the format extension.
func Filename(title string, format export.Format) string {
	return utils.SafeFilename(title) + "." + format.Ext()
}
