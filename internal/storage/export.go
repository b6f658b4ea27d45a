package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ExportFilename derives a file name from a project title
func ExportFilename(title string) string {
	name := strings.TrimSpace(title)
	if name == "" {
		name = "project"
	}
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			b.WriteRune(r)
		case r == ' ':
			b.WriteRune('-')
		}
	}
	out := strings.ToLower(b.String())
	if out == "" {
		out = "project"
	}
	return out + ".json"
}

// WriteExport writes an exported project next to the caller's working
// directory (or an explicit dir) and returns the path
func WriteExport(dir, title, data string) (string, error) {
	if dir == "" {
		dir = "."
	}
	path := filepath.Join(dir, ExportFilename(title))
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		return "", fmt.Errorf("write export: %w", err)
	}
	return path, nil
}
