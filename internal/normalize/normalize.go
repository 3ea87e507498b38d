// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package normalize cleans the raw survey table into typed records:
// whitespace stripped, missing-value tokens canonicalized, numeric
// columns parsed leniently. Nothing here is fatal; unparseable cells
// pass through flagged and are caught by later validation.
package normalize

import (
	"strconv"
	"strings"

	"github.com/pdiddy/zoning-engine/pkg/types"
)

// missingTokens are the cell contents treated as "no value", compared
// case-insensitively after trimming.
var missingTokens = map[string]bool{
	"":    true,
	"n/a": true,
	"na":  true,
	"nan": true,
}

// Normalize converts the raw table into records. Every text cell is
// trimmed and missing tokens are collapsed to the empty string; numeric
// columns keep their raw text alongside the parse result so later
// phases can report offending values verbatim.
func Normalize(table types.RawTable) []types.Record {
	col := make(map[string]int, len(table.Columns))
	for i, c := range table.Columns {
		col[strings.TrimSpace(c)] = i
	}

	cell := func(row types.RawRow, name string) string {
		i, ok := col[name]
		if !ok || i >= len(row.Cells) {
			return ""
		}
		s := strings.TrimSpace(row.Cells[i])
		if missingTokens[strings.ToLower(s)] {
			return ""
		}
		return s
	}

	records := make([]types.Record, 0, len(table.Rows))
	for _, row := range table.Rows {
		rec := types.Record{
			Sheet: row.Sheet,
			Row:   row.Index,

			RoomID:    cell(row, types.ColRoomIdentifier),
			BelongsTo: cell(row, types.ColBelongsToIdentifier),
			UsageType: cell(row, types.ColUsageType),

			NetArea: parseValue(cell(row, types.ColNetArea)),
			Height:  parseValue(cell(row, types.ColHeatedRoomHeight)),

			WallAdjacentTo: cell(row, types.ColWallAdjacentTo),

			OuterWall: types.Surface{
				Orientation:  parseValue(cell(row, types.ColOuterWallOrientation)),
				Area:         parseValue(cell(row, types.ColOuterWallArea)),
				Construction: cell(row, types.ColOuterWallConstruction),
			},
			Window: types.Surface{
				Orientation:  parseValue(cell(row, types.ColWindowOrientation)),
				Area:         parseValue(cell(row, types.ColWindowArea)),
				Construction: cell(row, types.ColWindowConstruction),
			},

			IsGroundFloor:     parseValue(cell(row, types.ColIsGroundFloor)),
			FloorConstruction: cell(row, types.ColFloorConstruction),

			IsRooftop:           parseValue(cell(row, types.ColIsRooftop)),
			CeilingConstruction: cell(row, types.ColCeilingConstruction),

			InnerWallArea:         parseValue(cell(row, types.ColInnerWallArea)),
			InnerWallConstruction: cell(row, types.ColInnerWallConstruction),
		}
		records = append(records, rec)
	}
	return records
}

// parseValue builds an optional numeric from a canonicalized cell.
// Decimal commas are accepted; any other unparseable content stays
// present-but-invalid.
func parseValue(s string) types.Value {
	if s == "" {
		return types.Value{}
	}
	v := types.Value{Raw: s, Present: true}
	n, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", "."), 64)
	if err != nil {
		return v
	}
	v.Num = n
	v.Valid = true
	return v
}
