package export

import (
	"fmt"
	"os"
)

// WriteHTML writes a prebuilt report document to path. The document is
// expected to be complete, well-escaped markup (see internal/report).
func WriteHTML(doc, path string) error {
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		return fmt.Errorf("write html file: %w", err)
	}
	return nil
}
