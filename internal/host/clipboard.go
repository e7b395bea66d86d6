package host

import (
	"fmt"

	"github.com/atotto/clipboard"
	"github.com/oukeidos/quickpaths/internal/apperrors"
)

// Clipboard writes text to the system clipboard.
type Clipboard struct {
	write func(string) error
}

// NewClipboard returns the system clipboard.
func NewClipboard() *Clipboard {
	return &Clipboard{write: clipboard.WriteAll}
}

func (c *Clipboard) WriteText(text string) error {
	if clipboard.Unsupported {
		return apperrors.External(fmt.Errorf("clipboard: %w", ErrUnsupported))
	}
	if err := c.write(text); err != nil {
		return apperrors.IO(fmt.Errorf("write clipboard: %w", err))
	}
	return nil
}
