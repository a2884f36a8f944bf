package report

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// Sheet is one tab of an exported workbook: a header row and data rows.
type Sheet struct {
	Name   string
	Header []string
	Rows   [][]interface{}
}

// WriteWorkbook writes sheets to an XLSX file at path. The first sheet
// replaces the default one so no empty "Sheet1" tab is left behind.
func WriteWorkbook(path string, sheets []Sheet) error {
	if len(sheets) == 0 {
		return fmt.Errorf("workbook %s: no sheets", path)
	}
	f := excelize.NewFile()
	defer f.Close()

	for i, s := range sheets {
		if i == 0 {
			if err := f.SetSheetName("Sheet1", s.Name); err != nil {
				return err
			}
		} else if _, err := f.NewSheet(s.Name); err != nil {
			return err
		}
		for c, h := range s.Header {
			cell, err := excelize.CoordinatesToCellName(c+1, 1)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(s.Name, cell, h); err != nil {
				return err
			}
		}
		for r, row := range s.Rows {
			for c, v := range row {
				cell, err := excelize.CoordinatesToCellName(c+1, r+2)
				if err != nil {
					return err
				}
				if err := f.SetCellValue(s.Name, cell, v); err != nil {
					return err
				}
			}
		}
	}
	return f.SaveAs(path)
}
