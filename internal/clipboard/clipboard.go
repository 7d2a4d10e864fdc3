package clipboard

import (
	"fmt"

	"github.com/atotto/clipboard"

	"partpick/internal"
)

type Writer interface {
	WriteAll(text string) error
}

// System writes to the OS clipboard.
type System struct{}

func (System) WriteAll(text string) error {
	if clipboard.Unsupported {
		return fmt.Errorf("no clipboard utility available")
	}
	return clipboard.WriteAll(text)
}

// Copy writes text through w. Empty text is not copied and reports false.
func Copy(w Writer, text string) (bool, error) {
	if text == "" {
		return false, nil
	}
	if err := w.WriteAll(text); err != nil {
		return false, fmt.Errorf("%w: %w", internal.ErrClipboardFailure, err)
	}
	return true, nil
}
