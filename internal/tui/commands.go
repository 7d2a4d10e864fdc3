package tui

import (
	"context"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"partpick/internal/pipeline"
)

const decodeTimeout = 60 * time.Second

// DecodeFileCmd reads and decodes path off the UI goroutine. The result is
// applied by Update only if gen is still the latest import.
func DecodeFileCmd(svc *pipeline.ImportService, gen int, path string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), decodeTimeout)
		defer cancel()

		content, err := os.ReadFile(path)
		if err != nil {
			return importDecodedMsg{gen: gen, err: err}
		}
		d, err := svc.Decode(ctx, filepath.Base(path), content)
		d.Path = path
		return importDecodedMsg{gen: gen, decoded: d, err: err}
	}
}
