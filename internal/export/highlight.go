package export

import (
	"fmt"
	"io"

	"github.com/alecthomas/chroma/v2/quick"
)

// Highlight writes the document to w with terminal syntax colouring.
func Highlight(w io.Writer, markdown string) error {
	if err := quick.Highlight(w, markdown, "markdown", "terminal256", "monokai"); err != nil {
		return fmt.Errorf("highlight: %w", err)
	}
	return nil
}
