package tui

import "partpick/internal/pipeline"

// importDecodedMsg carries a finished decode back to the UI goroutine.
type importDecodedMsg struct {
	gen     int
	decoded pipeline.Decoded
	err     error
}
