// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// SheetName is the worksheet the XLSX exporter writes.
const SheetName = "Food log"

var xlsxHeader = []interface{}{"Food", "Serving (g)", "Calories", "Protein (g)", "Carbs (g)", "Fat (g)"}

// XLSXExporter writes the log as a single-sheet workbook.
type XLSXExporter struct{}

// NewXLSXExporter creates a new XLSX exporter.
func NewXLSXExporter() *XLSXExporter {
	return &XLSXExporter{}
}

// Export streams one row per entry after the header, then a totals row.
func (e *XLSXExporter) Export(log *Log) ([]byte, error) {
	if log == nil {
		return nil, fmt.Errorf("log is nil")
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return nil, err
	}
	sw, err := f.NewStreamWriter(SheetName)
	if err != nil {
		return nil, err
	}
	if err := sw.SetRow("A1", xlsxHeader); err != nil {
		return nil, err
	}

	for i, en := range log.Entries {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		row := []interface{}{en.FoodName, en.ServingG, en.Calories, en.ProteinG, en.CarbsG, en.FatG}
		if err := sw.SetRow(cell, row); err != nil {
			return nil, err
		}
	}

	cell, _ := excelize.CoordinatesToCellName(1, len(log.Entries)+2)
	t := log.Totals
	if err := sw.SetRow(cell, []interface{}{"Total", "", t.Calories, t.Protein, t.Carbs, t.Fat}); err != nil {
		return nil, err
	}
	if err := sw.Flush(); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// FileExtension returns the file extension for XLSX.
func (e *XLSXExporter) FileExtension() string {
	return ".xlsx"
}

// MimeType returns the MIME type for XLSX.
func (e *XLSXExporter) MimeType() string {
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}
