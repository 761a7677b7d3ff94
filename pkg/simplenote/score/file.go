package score

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// File encodings understood by Decode and Encode.
const (
	EncodingJSON = "json"
	EncodingYAML = "yaml"
)

// EncodingFor picks the encoding from a file extension; anything that is
// not .yaml or .yml is read as JSON.
func EncodingFor(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return EncodingYAML
	}
	return EncodingJSON
}

// Decode reads a score in the given encoding. A score without measures
// gets a single empty one.
func Decode(r io.Reader, encoding string) (*Score, error) {
	var s Score
	switch encoding {
	case EncodingYAML:
		if err := yaml.NewDecoder(r).Decode(&s); err != nil {
			return nil, fmt.Errorf("decoding yaml score: %w", err)
		}
	default:
		if err := json.NewDecoder(r).Decode(&s); err != nil {
			return nil, fmt.Errorf("decoding json score: %w", err)
		}
	}
	if len(s.Measures) == 0 {
		s.Measures = []Measure{{}}
	}
	return &s, nil
}

// Encode writes s in the given encoding.
func Encode(w io.Writer, s *Score, encoding string) error {
	switch encoding {
	case EncodingYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(s); err != nil {
			return fmt.Errorf("encoding yaml score: %w", err)
		}
		return enc.Close()
	default:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(s); err != nil {
			return fmt.Errorf("encoding json score: %w", err)
		}
		return nil
	}
}

// ReadFile loads a score file, choosing the encoding from its extension.
func ReadFile(path string) (*Score, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading score file: %w", err)
	}
	return Decode(bytes.NewReader(data), EncodingFor(path))
}

// WriteFile saves a score file, choosing the encoding from its extension.
func WriteFile(path string, s *Score) error {
	var buf bytes.Buffer
	if err := Encode(&buf, s, EncodingFor(path)); err != nil {
		return err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("writing score file: %w", err)
	}
	return nil
}
