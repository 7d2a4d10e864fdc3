package internal

import "errors"

var (
	// ErrDecodeFailure means the source bytes are not a readable spreadsheet.
	ErrDecodeFailure = errors.New("source could not be read as a spreadsheet")

	// ErrEmptyImport means decoding worked but no row produced a usable item.
	ErrEmptyImport = errors.New("no importable rows")

	// ErrClipboardFailure means the output exists but could not be copied.
	ErrClipboardFailure = errors.New("clipboard write failed")
)
