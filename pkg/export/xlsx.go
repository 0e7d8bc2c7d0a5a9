// Package export writes the current table view to spreadsheet files.
package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/kittclouds/atmkit/pkg/dataset"
	"github.com/kittclouds/atmkit/pkg/view"
)

// SheetName is the name of the single worksheet written by XLSX.
const SheetName = "Risks"

// RiskValueHeader heads the numeric column that follows a visible risk column.
const RiskValueHeader = "Risk Value"

// XLSX writes the visible columns of rows to a workbook, header first.
// When the risk column is visible it is followed by its parsed numeric value.
func XLSX(rows []*dataset.Row, cols *view.Columns) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	visible := cols.VisibleColumns()
	header := make([]interface{}, 0, len(visible)+1)
	for _, c := range visible {
		header = append(header, c.Label)
		if c.ID == view.ColRisk {
			header = append(header, RiskValueHeader)
		}
	}
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return nil, fmt.Errorf("write header: %w", err)
	}

	for i, r := range rows {
		record := make([]interface{}, 0, len(header))
		for _, c := range visible {
			record = append(record, c.Value(r))
			if c.ID == view.ColRisk {
				if r.RiskValue != nil {
					record = append(record, *r.RiskValue)
				} else {
					record = append(record, nil)
				}
			}
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(SheetName, cell, &record); err != nil {
			return nil, fmt.Errorf("write row %d: %w", i+1, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("encode workbook: %w", err)
	}
	return buf.Bytes(), nil
}
