package grid

import "github.com/trezcool/smartfill/core/fill"

// PlanFill computes the cell updates of a fill-handle drag over rows.
// The selection is clamped to the existing rows and columns. For each writable column the
// set cells among the first req.Seeds rows are the samples; every following row of the
// selection receives the next predicted value. Nothing is written to the seed rows.
func PlanFill(columns []Column, rows []Row, req FillRequest) []CellUpdate {
	if len(rows) == 0 || len(columns) == 0 {
		return nil
	}
	sel := req.Selection.Normalize()
	if sel.EndRow < 0 || sel.EndCol < 0 || sel.StartRow >= len(rows) || sel.StartCol >= len(columns) {
		return nil
	}
	if sel.StartRow < 0 {
		sel.StartRow = 0
	}
	if sel.StartCol < 0 {
		sel.StartCol = 0
	}
	if sel.EndRow >= len(rows) {
		sel.EndRow = len(rows) - 1
	}
	if sel.EndCol >= len(columns) {
		sel.EndCol = len(columns) - 1
	}

	seeds := req.Seeds
	if seeds < 1 {
		seeds = 1
	}
	if seeds > sel.EndRow-sel.StartRow {
		return nil
	}
	firstTarget := sel.StartRow + seeds
	count := sel.EndRow - firstTarget + 1

	updates := make([]CellUpdate, 0, count*(sel.EndCol-sel.StartCol+1))
	for c := sel.StartCol; c <= sel.EndCol; c++ {
		col := columns[c]
		if col.ReadOnly {
			continue
		}

		samples := make([]fill.Value, 0, seeds)
		for r := sel.StartRow; r < firstTarget; r++ {
			if v, ok := rows[r].Cell(col.Field); ok {
				samples = append(samples, v)
			}
		}

		for i, v := range fill.Predict(samples, count) {
			updates = append(updates, CellUpdate{
				RowID: rows[firstTarget+i].ID,
				Field: col.Field,
				Value: v,
			})
		}
	}
	return updates
}
