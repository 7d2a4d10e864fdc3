package pipeline

import (
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"partpick/internal"
	"partpick/internal/catalog"
)

// ExportSelectionXLSX writes the selected items in catalog order with the
// rendered output line beside them.
func ExportSelectionXLSX(items []internal.Item, sel internal.Selection, outputPath string) error {
	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)

	headers := []string{"category", "name", "qty", "", "output"}
	for i, h := range headers {
		if h == "" {
			continue
		}
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}

	r := 2
	for _, item := range items {
		qty := sel[item.ID]
		if qty <= 0 {
			continue
		}
		set := func(col int, value any) {
			cell, _ := excelize.CoordinatesToCellName(col, r)
			_ = f.SetCellValue(sheet, cell, value)
		}
		set(1, item.Category)
		set(2, item.Name)
		set(3, qty)
		r++
	}

	cell, _ := excelize.CoordinatesToCellName(5, 2)
	_ = f.SetCellValue(sheet, cell, catalog.Render(items, sel))

	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return err
	}
	return f.SaveAs(outputPath)
}
