package catalog

import (
	"strconv"
	"strings"

	"partpick/internal"
	"partpick/internal/util"
)

// Render serializes the selected items in catalog order as
// "name,namexN". Whitespace is removed from the whole line.
func Render(items []internal.Item, sel internal.Selection) string {
	entries := make([]string, 0, len(sel))
	for _, item := range items {
		qty := sel[item.ID]
		if qty <= 0 {
			continue
		}
		if qty == 1 {
			entries = append(entries, item.Name)
			continue
		}
		entries = append(entries, item.Name+"x"+strconv.Itoa(qty))
	}
	return util.StripSpace(strings.Join(entries, ","))
}

// DisplayLabel is the chip text shown for a selected item.
func DisplayLabel(name string, qty int) string {
	if qty == 1 {
		return name
	}
	return name + "×" + strconv.Itoa(qty)
}
