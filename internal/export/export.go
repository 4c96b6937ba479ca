// Package export saves and copies generation results.
package export

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/atotto/clipboard"

	"github.com/abhisek/edunova/internal/content"
)

// ErrNothingToExport is returned when there is no result text.
var ErrNothingToExport = errors.New("export: no content to export")

var pathSafe = strings.NewReplacer("/", "_", "\\", "_")

// WriteFile writes text into dir under the download name for req and
// returns the full path. An existing file with the same name is replaced.
// An empty dir means the working directory.
func WriteFile(dir string, req content.Request, text string) (string, error) {
	if text == "" {
		return "", ErrNothingToExport
	}
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create download dir: %w", err)
	}

	path := filepath.Join(dir, pathSafe.Replace(req.Filename()))
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	return path, nil
}

// Clipboard writes text to a clipboard.
type Clipboard interface {
	WriteAll(text string) error
}

// SystemClipboard is the OS clipboard.
type SystemClipboard struct{}

func (SystemClipboard) WriteAll(text string) error {
	if clipboard.Unsupported {
		return errors.New("clipboard: no clipboard utility available")
	}
	return clipboard.WriteAll(text)
}

// Copy places text on cb verbatim.
func Copy(cb Clipboard, text string) error {
	if text == "" {
		return ErrNothingToExport
	}
	if err := cb.WriteAll(text); err != nil {
		return fmt.Errorf("copy to clipboard: %w", err)
	}
	return nil
}
