package extractor

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

var (
	ErrNotFound              = errors.New("file not found")
	ErrInvalidFormat         = errors.New("expected a PDF file")
	ErrDependencyUnavailable = errors.New("PDF text extraction is not available")
)

// ValidatePath checks that path exists and carries a .pdf extension. It does
// not open the file.
func ValidatePath(path string) error {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return fmt.Errorf("failed to stat %s: %w", path, err)
	}

	if !HasPDFExtension(path) {
		return fmt.Errorf("%w, got: %s", ErrInvalidFormat, path)
	}

	return nil
}

func HasPDFExtension(name string) bool {
	return strings.EqualFold(filepath.Ext(name), ".pdf")
}
