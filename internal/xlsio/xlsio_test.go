// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package xlsio

import (
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/pdiddy/zoning-engine/pkg/types"
)

// writeWorkbook builds an xlsx file with the given sheets; each sheet
// is a slice of rows, the first row being the header.
func writeWorkbook(t *testing.T, sheets map[string][][]string, order []string) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	for i, name := range order {
		if i == 0 {
			if err := f.SetSheetName("Sheet1", name); err != nil {
				t.Fatal(err)
			}
		} else {
			if _, err := f.NewSheet(name); err != nil {
				t.Fatal(err)
			}
		}
		for r, row := range sheets[name] {
			for c, v := range row {
				cell, err := excelize.CoordinatesToCellName(c+1, r+1)
				if err != nil {
					t.Fatal(err)
				}
				if err := f.SetCellValue(name, cell, v); err != nil {
					t.Fatal(err)
				}
			}
		}
	}

	path := filepath.Join(t.TempDir(), "survey.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatal(err)
	}
	return path
}

// --- reading ---

func TestReadTableSingleSheet(t *testing.T) {
	path := writeWorkbook(t, map[string][][]string{
		"Import": {
			{types.ColRoomIdentifier, types.ColUsageType, types.ColNetArea},
			{"R1.001", "Office", "24.5"},
			{"R1.002", "WC", "6"},
		},
	}, []string{"Import"})

	table, err := ReadTable(path, []string{"Import"})
	if err != nil {
		t.Fatal(err)
	}

	if len(table.Columns) != 3 || table.Columns[0] != types.ColRoomIdentifier {
		t.Errorf("columns = %v", table.Columns)
	}
	if len(table.Rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(table.Rows))
	}
	// Spreadsheet numbering: the first data row is row 2.
	if table.Rows[0].Index != 2 || table.Rows[1].Index != 3 {
		t.Errorf("row indices = %d, %d, want 2, 3", table.Rows[0].Index, table.Rows[1].Index)
	}
	if table.Rows[0].Sheet != "Import" {
		t.Errorf("sheet = %q", table.Rows[0].Sheet)
	}
	if table.Rows[1].Cells[2] != "6" {
		t.Errorf("cells = %v", table.Rows[1].Cells)
	}
}

func TestReadTableDefaultsToFirstSheet(t *testing.T) {
	path := writeWorkbook(t, map[string][][]string{
		"Import": {
			{types.ColRoomIdentifier},
			{"R1.001"},
		},
	}, []string{"Import"})

	table, err := ReadTable(path, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(table.Rows) != 1 || table.Rows[0].Cells[0] != "R1.001" {
		t.Errorf("rows = %v", table.Rows)
	}
}

func TestReadTableConcatenatesSheetsAligningColumns(t *testing.T) {
	// The second sheet orders its columns differently; alignment is by
	// header name.
	path := writeWorkbook(t, map[string][][]string{
		"Ground": {
			{types.ColRoomIdentifier, types.ColNetArea},
			{"R1.001", "24.5"},
		},
		"First": {
			{types.ColNetArea, types.ColRoomIdentifier},
			{"18", "R2.001"},
		},
	}, []string{"Ground", "First"})

	table, err := ReadTable(path, []string{"Ground", "First"})
	if err != nil {
		t.Fatal(err)
	}
	if len(table.Rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(table.Rows))
	}

	second := table.Rows[1]
	if second.Sheet != "First" || second.Index != 2 {
		t.Errorf("second row sheet/index = %q/%d, want First/2", second.Sheet, second.Index)
	}
	if second.Cells[0] != "R2.001" || second.Cells[1] != "18" {
		t.Errorf("second row cells not realigned: %v", second.Cells)
	}
}

func TestReadTableMissingSheet(t *testing.T) {
	path := writeWorkbook(t, map[string][][]string{
		"Import": {{types.ColRoomIdentifier}},
	}, []string{"Import"})

	if _, err := ReadTable(path, []string{"Nope"}); err == nil {
		t.Error("expected error for unknown sheet")
	}
}

func TestReadTableMissingFile(t *testing.T) {
	if _, err := ReadTable(filepath.Join(t.TempDir(), "nope.xlsx"), nil); err == nil {
		t.Error("expected error for missing file")
	}
}

// --- writing ---

func TestWriteZonedRoundTrip(t *testing.T) {
	records := []types.Record{
		{
			Sheet: "Import", Row: 2,
			RoomID: "R1.001", UsageType: "Office",
			NetArea: types.Value{Num: 24.5, Present: true, Valid: true},
			Height:  types.Value{Num: 3, Present: true, Valid: true},
			Cluster: "R1.001", ClusterUsage: "Office",
			CanonicalUsage: "Meeting, Conference, seminar",
			Zone:           "Meeting, Conference, seminar",
		},
		{
			Sheet: "Import", Row: 3,
			RoomID: "R1.001a", BelongsTo: "R1.001",
			NetArea: types.Value{Raw: "tbd", Present: true},
			Cluster: "R1.001", ClusterUsage: "Office",
		},
	}

	path := filepath.Join(t.TempDir(), "zoned.xlsx")
	if err := WriteZoned(path, records); err != nil {
		t.Fatal(err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	rows, err := f.GetRows("ZonedInput")
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 3 {
		t.Fatalf("got %d rows, want header + 2", len(rows))
	}
	if rows[0][0] != "Row" || rows[0][2] != types.ColRoomIdentifier {
		t.Errorf("header = %v", rows[0])
	}

	first := rows[1]
	if first[2] != "R1.001" || first[5] != "24.5" {
		t.Errorf("first data row = %v", first)
	}
	if first[10] != "Meeting, Conference, seminar" {
		t.Errorf("zone column = %q", first[10])
	}

	// A present-but-unparseable numeric is exported verbatim.
	second := rows[2]
	if second[5] != "tbd" {
		t.Errorf("invalid numeric exported as %q, want raw text", second[5])
	}
}
