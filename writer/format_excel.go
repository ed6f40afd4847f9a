package writer

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

const excelSheetName = "Sheet1"

func writeExcel(path string, columns []string, rows []map[string]any, _ map[string]string, _ map[string]any) error {
	f := excelize.NewFile()
	defer f.Close()

	for i, c := range columns {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return fmt.Errorf("excel: header coordinates: %w", err)
		}
		if err := f.SetCellValue(excelSheetName, cell, c); err != nil {
			return fmt.Errorf("excel: write header: %w", err)
		}
	}

	for r, row := range rows {
		for i, c := range columns {
			cell, err := excelize.CoordinatesToCellName(i+1, r+2)
			if err != nil {
				return fmt.Errorf("excel: row coordinates: %w", err)
			}
			if err := f.SetCellValue(excelSheetName, cell, row[c]); err != nil {
				return fmt.Errorf("excel: write cell: %w", err)
			}
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("excel: save %s: %w", path, err)
	}
	return nil
}
