package pipeline

import (
	"bytes"
	"path/filepath"
	"regexp"
	"slices"
	"strings"

	"partpick/internal"
)

var (
	magicZip  = []byte("PK\x03\x04")
	magicOLE2 = []byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1}
	magicPDF  = []byte("%PDF")
	utf8BOM   = []byte{0xEF, 0xBB, 0xBF}
)

var (
	mimeHeaderNames = []string{"mime-version", "content-type", "from", "to", "date", "subject", "received", "message-id", "return-path", "delivered-to"}
	reHeaderLine    = regexp.MustCompile(`^([a-z][a-z0-9-]*):\s`)
)

// DetectFormat decides which decoder reads content. Magic bytes win over the
// file extension since .xls files are often HTML or xlsx in disguise.
func DetectFormat(filename string, content []byte) internal.ImportSource {
	head := content
	if len(head) > 512 {
		head = head[:512]
	}
	head = bytes.TrimPrefix(head, utf8BOM)

	switch {
	case bytes.HasPrefix(head, magicZip):
		return internal.SourceXLSX
	case bytes.HasPrefix(head, magicOLE2):
		return internal.SourceXLS
	case bytes.HasPrefix(head, magicPDF):
		return internal.SourcePDF
	}

	lower := strings.ToLower(strings.TrimSpace(string(head)))
	if strings.HasPrefix(lower, "<!doctype html") || strings.HasPrefix(lower, "<html") ||
		strings.HasPrefix(lower, "<table") || strings.HasPrefix(lower, "<meta") {
		return internal.SourceHTML
	}
	if looksLikeMIME(lower) {
		return internal.SourceEmail
	}

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".xlsx", ".xlsm":
		return internal.SourceXLSX
	case ".xls":
		return internal.SourceXLS
	case ".tsv", ".tab":
		return internal.SourceTSV
	case ".html", ".htm":
		return internal.SourceHTML
	case ".eml":
		return internal.SourceEmail
	case ".pdf":
		return internal.SourcePDF
	default:
		return internal.SourceCSV
	}
}

func looksLikeMIME(lower string) bool {
	firstLine, _, _ := strings.Cut(lower, "\n")
	m := reHeaderLine.FindStringSubmatch(firstLine)
	if m == nil {
		return false
	}
	if !slices.Contains(mimeHeaderNames, m[1]) && !strings.HasPrefix(m[1], "x-") {
		return false
	}
	return strings.Contains(lower, "\n\n") || strings.Contains(lower, "\r\n\r\n") || len(lower) >= 500
}
