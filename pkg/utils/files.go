package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// DefaultFilename is used when a title has nothing usable left.
const DefaultFilename = "score"

const maxFilenameRunes = 120

// MakeDir creates a directory with all parent directories
func MakeDir(path string) error {
	return os.MkdirAll(path, 0755)
}

// SafeFilename turns a song title into a file name stem. The title is
// NFC-normalized so composed and decomposed accents give the same name;
// path separators, characters Windows rejects and control characters
// become underscores.
func SafeFilename(title string) string {
	title = norm.NFC.String(strings.TrimSpace(title))

	var b strings.Builder
	n := 0
	for _, r := range title {
		if n >= maxFilenameRunes {
			break
		}
		switch {
		case strings.ContainsRune(`/\:*?"<>|`, r), unicode.IsControl(r):
			b.WriteRune('_')
		default:
			b.WriteRune(r)
		}
		n++
	}

	name := strings.Trim(b.String(), " .")
	if name == "" || strings.Trim(name, "_") == "" {
		return DefaultFilename
	}
	return name
}

// WriteFile writes data to dir/name, creating dir first.
func WriteFile(dir, name string, data []byte) (string, error) {
	if dir == "" {
		dir = "."
	}
	if err := MakeDir(dir); err != nil {
		return "", fmt.Errorf("creating output dir: %w", err)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("writing %s: %w", path, err)
	}
	return path, nil
}
