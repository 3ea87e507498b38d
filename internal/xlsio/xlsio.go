// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package xlsio reads the survey spreadsheet into a raw table and
// writes the zoned, annotated table back out for audit.
package xlsio

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/pdiddy/zoning-engine/pkg/types"
)

// headerRows is the number of leading rows consumed as column headers.
// Data row i of a sheet therefore appears to the spreadsheet user as
// row i + headerRows + 1; diagnostics use that numbering.
const headerRows = 1

// ReadTable imports one or several sheets of the survey workbook and
// concatenates them into a single raw table. Columns of later sheets
// are aligned to the first sheet's header by name, so sheets may order
// their columns differently. Row indices are synchronized to the
// spreadsheet's own numbering.
func ReadTable(path string, sheets []string) (types.RawTable, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return types.RawTable{}, fmt.Errorf("opening workbook %s: %w", path, err)
	}
	defer f.Close()

	if len(sheets) == 0 {
		first := f.GetSheetName(0)
		if first == "" {
			return types.RawTable{}, fmt.Errorf("workbook %s has no sheets", path)
		}
		sheets = []string{first}
	}

	var table types.RawTable
	for _, sheet := range sheets {
		rows, err := f.GetRows(sheet)
		if err != nil {
			return types.RawTable{}, fmt.Errorf("reading sheet %s: %w", sheet, err)
		}
		if len(rows) == 0 {
			continue
		}

		header := rows[0]
		if table.Columns == nil {
			table.Columns = header
		}

		// Map this sheet's columns onto the first sheet's header.
		colFor := make([]int, len(header))
		for i, h := range header {
			colFor[i] = -1
			for j, want := range table.Columns {
				if h == want {
					colFor[i] = j
					break
				}
			}
		}

		for i, row := range rows[headerRows:] {
			cells := make([]string, len(table.Columns))
			for srcCol, v := range row {
				if srcCol < len(colFor) && colFor[srcCol] >= 0 {
					cells[colFor[srcCol]] = v
				}
			}
			table.Rows = append(table.Rows, types.RawRow{
				Sheet: sheet,
				Index: i + headerRows + 1,
				Cells: cells,
			})
		}
	}

	if table.Columns == nil {
		return types.RawTable{}, fmt.Errorf("workbook %s: no data in sheets %v", path, sheets)
	}
	return table, nil
}

// zonedHeader is the column layout of the annotated export.
var zonedHeader = []string{
	"Row",
	"Sheet",
	types.ColRoomIdentifier,
	types.ColBelongsToIdentifier,
	types.ColUsageType,
	types.ColNetArea,
	types.ColHeatedRoomHeight,
	"RoomCluster",
	"RoomClusterUsage",
	"CanonicalUsage",
	"Zone",
}

// WriteZoned exports the clustered record table with its resolved
// cluster ids, usages, and zone assignments. The export lets the data
// author find every offending row a diagnostic names.
func WriteZoned(path string, records []types.Record) error {
	f := excelize.NewFile()
	sheetName := "ZonedInput"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		f.Close()
		return fmt.Errorf("creating sheet: %w", err)
	}
	f.DeleteSheet("Sheet1")
	f.SetActiveSheet(index)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E6F3FF"}, Pattern: 1},
	})
	if err != nil {
		f.Close()
		return fmt.Errorf("creating header style: %w", err)
	}

	for col, h := range zonedHeader {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			f.Close()
			return fmt.Errorf("converting coordinates: %w", err)
		}
		if err := f.SetCellValue(sheetName, cell, h); err != nil {
			f.Close()
			return fmt.Errorf("writing header cell %s: %w", cell, err)
		}
		if err := f.SetCellStyle(sheetName, cell, cell, headerStyle); err != nil {
			f.Close()
			return fmt.Errorf("styling header cell %s: %w", cell, err)
		}
	}

	for i, rec := range records {
		row := i + 2
		values := []any{
			rec.Row,
			rec.Sheet,
			rec.RoomID,
			rec.BelongsTo,
			rec.UsageType,
			cellNumber(rec.NetArea),
			cellNumber(rec.Height),
			rec.Cluster,
			rec.ClusterUsage,
			rec.CanonicalUsage,
			rec.Zone,
		}
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row)
			if err != nil {
				f.Close()
				return fmt.Errorf("converting coordinates: %w", err)
			}
			if v == nil || v == "" {
				continue
			}
			if err := f.SetCellValue(sheetName, cell, v); err != nil {
				f.Close()
				return fmt.Errorf("writing cell %s: %w", cell, err)
			}
		}
	}

	if err := f.SaveAs(path); err != nil {
		f.Close()
		return fmt.Errorf("saving %s: %w", path, err)
	}
	return f.Close()
}

// cellNumber renders an optional numeric for export: the number when
// valid, the raw text when present but unparseable, nil when missing.
func cellNumber(v types.Value) any {
	if f, ok := v.Float(); ok {
		return f
	}
	if v.Present {
		return v.Raw
	}
	return nil
}
