package pipeline

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/extrame/xls"
	"github.com/jhillyerd/enmime"
	pdf "github.com/ledongthuc/pdf"
	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/korean"

	"partpick/internal"
)

const (
	EncodingAuto  = "auto"
	EncodingUTF8  = "utf-8"
	EncodingEUCKR = "euc-kr"
)

type DecodeOptions struct {
	// TextEncoding applies to csv, tsv and html payloads.
	TextEncoding string
}

// DecodeGrid turns file bytes into rows of raw cell text. Any failure is
// reported as internal.ErrDecodeFailure.
func DecodeGrid(kind internal.ImportSource, content []byte, opts DecodeOptions) ([][]string, error) {
	var (
		rows [][]string
		err  error
	)
	switch kind {
	case internal.SourceXLSX:
		rows, err = parseXLSX(content)
	case internal.SourceXLS:
		rows, err = parseXLS(content)
	case internal.SourceCSV:
		rows, err = parseDelimited(content, ',', opts.TextEncoding)
	case internal.SourceTSV:
		rows, err = parseDelimited(content, '\t', opts.TextEncoding)
	case internal.SourceHTML:
		rows, err = parseHTML(content, opts.TextEncoding)
	case internal.SourceEmail:
		rows, err = parseEmail(content, opts)
	case internal.SourcePDF:
		rows, err = parsePDF(content)
	default:
		return nil, fmt.Errorf("%w: unsupported source %q", internal.ErrDecodeFailure, kind)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", internal.ErrDecodeFailure, kind, err)
	}
	return rows, nil
}

func parseXLSX(content []byte) ([][]string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(content))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, nil
	}
	// Raw values keep numeric cells free of display formatting.
	return f.GetRows(sheets[0], excelize.Options{RawCellValue: true})
}

// BIFF8 allows at most 256 columns.
const xlsMaxCols = 256

// parseXLS reads the first sheet of a legacy binary workbook.
func parseXLS(content []byte) (rows [][]string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("malformed xls: %v", r)
		}
	}()

	wb, err := xls.OpenReader(bytes.NewReader(content), "utf-8")
	if err != nil {
		return nil, err
	}
	if wb == nil {
		return nil, errors.New("no workbook stream")
	}
	sheet := wb.GetSheet(0)
	if sheet == nil {
		return nil, nil
	}
	for i := 0; i <= int(sheet.MaxRow); i++ {
		row := sheet.Row(i)
		if row == nil {
			rows = append(rows, nil)
			continue
		}
		// Rows written without a ROW record report no width.
		width := row.LastCol()
		if width <= 0 {
			width = xlsMaxCols
		}
		cells := make([]string, 0, width)
		for c := 0; c < width; c++ {
			cells = append(cells, row.Col(c))
		}
		for len(cells) > 0 && cells[len(cells)-1] == "" {
			cells = cells[:len(cells)-1]
		}
		rows = append(rows, cells)
	}
	return rows, nil
}

func parseDelimited(content []byte, comma rune, encoding string) ([][]string, error) {
	text, err := decodeText(content, encoding)
	if err != nil {
		return nil, err
	}
	r := csv.NewReader(strings.NewReader(text))
	r.Comma = comma
	r.LazyQuotes = true
	r.FieldsPerRecord = -1
	return r.ReadAll()
}

func parseHTML(content []byte, encoding string) ([][]string, error) {
	text, err := decodeText(content, encoding)
	if err != nil {
		return nil, err
	}
	return parseHTMLTable(text)
}

// parseHTMLTable reads the first table that has at least one row.
func parseHTMLTable(html string) ([][]string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, err
	}

	var rows [][]string
	doc.Find("table").EachWithBreak(func(_ int, table *goquery.Selection) bool {
		table.Find("tr").Each(func(_ int, tr *goquery.Selection) {
			cells := []string{}
			tr.ChildrenFiltered("th,td").Each(func(_ int, cell *goquery.Selection) {
				cells = append(cells, strings.TrimSpace(cell.Text()))
			})
			rows = append(rows, cells)
		})
		return len(rows) == 0
	})
	return rows, nil
}

func parseEmail(content []byte, opts DecodeOptions) ([][]string, error) {
	env, err := enmime.ReadEnvelope(bytes.NewReader(content))
	if err != nil {
		return nil, err
	}

	for _, att := range env.Attachments {
		kind, ok := attachmentKind(att.FileName, att.Content)
		if !ok {
			continue
		}
		rows, err := DecodeGrid(kind, att.Content, opts)
		if err == nil && len(rows) > 0 {
			return rows, nil
		}
	}

	if env.HTML != "" {
		return parseHTMLTable(env.HTML)
	}
	return nil, nil
}

func attachmentKind(filename string, content []byte) (internal.ImportSource, bool) {
	kind := DetectFormat(filename, content)
	switch kind {
	case internal.SourceEmail:
		return kind, false
	case internal.SourceCSV:
		ext := strings.ToLower(filepath.Ext(filename))
		return kind, ext == ".csv" || ext == ".txt"
	default:
		return kind, true
	}
}

// parsePDF emits one single-cell row per non-empty text line.
func parsePDF(content []byte) (rows [][]string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("malformed pdf: %v", r)
		}
	}()

	r, err := pdf.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return nil, err
	}

	for i := 1; i <= r.NumPage(); i++ {
		p := r.Page(i)
		if p.V.IsNull() {
			continue
		}
		text, err := p.GetPlainText(nil)
		if err != nil {
			continue
		}
		for _, line := range splitLines(text) {
			rows = append(rows, []string{line})
		}
	}
	return rows, nil
}

func decodeText(content []byte, encoding string) (string, error) {
	content = bytes.TrimPrefix(content, utf8BOM)
	switch strings.ToLower(encoding) {
	case EncodingEUCKR, "cp949":
		return decodeEUCKR(content)
	case EncodingUTF8:
		return string(content), nil
	default:
		if utf8.Valid(content) {
			return string(content), nil
		}
		return decodeEUCKR(content)
	}
}

func decodeEUCKR(content []byte) (string, error) {
	out, err := korean.EUCKR.NewDecoder().Bytes(content)
	if err != nil {
		return "", fmt.Errorf("euc-kr: %w", err)
	}
	return string(out), nil
}

func splitLines(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	parts := strings.Split(text, "\n")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
