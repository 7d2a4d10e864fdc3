package pipeline

import (
	"strings"

	"github.com/google/uuid"
	"golang.org/x/text/cases"

	"partpick/internal"
	"partpick/internal/util"
)

var (
	nameHeaders = []string{"name", "part", "partname", "item", "품명", "이름", "부품", "부품명"}
	qtyHeaders  = []string{"qty", "quantity", "수량"}
)

// IngestRows maps a decoded grid onto catalog items. Row 0 is a header when
// any of its cells names a known column; otherwise column 0 holds the labels.
// newID may be nil, in which case random ids are used.
func IngestRows(rows [][]string, newID func() string) []internal.IngestedItem {
	if len(rows) == 0 {
		return nil
	}
	if newID == nil {
		newID = uuid.NewString
	}

	nameIdx, qtyIdx := inferColumns(rows[0])
	start := 1
	if nameIdx < 0 && qtyIdx < 0 {
		nameIdx, start = 0, 0
	}

	out := make([]internal.IngestedItem, 0, len(rows)-start)
	for r := start; r < len(rows); r++ {
		row := rows[r]
		category, name := util.ParseLabel(pickCell(row, nameIdx, -1))
		if name == "" {
			continue
		}
		item := internal.IngestedItem{
			Item:  internal.Item{ID: newID(), Name: name, Category: category},
			RowNo: r + 1,
		}
		if qtyIdx >= 0 {
			item.QtyHint = util.ParseQtyHint(pickCell(row, qtyIdx, -1))
		}
		out = append(out, item)
	}
	return out
}

// DefaultSelection collects the quantity hints keyed by item id.
func DefaultSelection(items []internal.IngestedItem) internal.Selection {
	sel := internal.Selection{}
	for _, item := range items {
		if item.QtyHint != nil && *item.QtyHint > 0 {
			sel[item.ID] = *item.QtyHint
		}
	}
	return sel
}

func StripHints(items []internal.IngestedItem) []internal.Item {
	out := make([]internal.Item, 0, len(items))
	for _, item := range items {
		out = append(out, item.Item)
	}
	return out
}

func inferColumns(header []string) (nameIdx, qtyIdx int) {
	fold := cases.Fold()
	folded := make([]string, 0, len(header))
	for _, h := range header {
		folded = append(folded, fold.String(strings.TrimSpace(h)))
	}
	return findHeaderIndex(folded, nameHeaders), findHeaderIndex(folded, qtyHeaders)
}

func findHeaderIndex(headers []string, probes []string) int {
	for i, h := range headers {
		for _, probe := range probes {
			if h == probe {
				return i
			}
		}
	}
	return -1
}

func pickCell(cells []string, idx int, fallback int) string {
	if idx >= 0 && idx < len(cells) {
		return strings.TrimSpace(cells[idx])
	}
	if fallback >= 0 && fallback < len(cells) {
		return strings.TrimSpace(cells[fallback])
	}
	return ""
}
