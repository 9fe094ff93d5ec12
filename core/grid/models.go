package grid

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/trezcool/smartfill/core"
	"github.com/trezcool/smartfill/core/fill"
)

type ColumnType string

// Column types
const (
	TypeText        ColumnType = "text"
	TypeNumber      ColumnType = "number"
	TypeDate        ColumnType = "date"
	TypeSelect      ColumnType = "select"
	TypeMultiSelect ColumnType = "multi-select"
)

var ColumnTypes = []ColumnType{TypeText, TypeNumber, TypeDate, TypeSelect, TypeMultiSelect}

type Column struct {
	Field    string     `json:"field" validate:"required,alphanum_"`
	Header   string     `json:"header"`
	Type     ColumnType `json:"type" validate:"required,coltype"`
	ReadOnly bool       `json:"read_only"`
}

type Row struct {
	ID       string                `json:"id"`
	Position int                   `json:"position"`
	Cells    map[string]fill.Value `json:"cells"`
}

// Cell returns the value stored under field and whether the cell is set.
func (r Row) Cell(field string) (fill.Value, bool) {
	v, ok := r.Cells[field]
	return v, ok
}

type Sheet struct {
	Name      string    `json:"name"`
	Columns   []Column  `json:"columns"`
	Rows      []Row     `json:"rows"`
	CreatedAt time.Time `json:"created_at"` // UTC
	UpdatedAt time.Time `json:"updated_at"` // UTC
}

// Column looks a column up by field name.
func (s Sheet) Column(field string) (Column, bool) {
	for _, col := range s.Columns {
		if col.Field == field {
			return col, true
		}
	}
	return Column{}, false
}

func (s Sheet) HasRow(id string) bool {
	for _, row := range s.Rows {
		if row.ID == id {
			return true
		}
	}
	return false
}

// Selection is a rectangle of cells; corners may be given in any order.
type Selection struct {
	StartRow int `json:"start_row" validate:"gte=0"`
	StartCol int `json:"start_col" validate:"gte=0"`
	EndRow   int `json:"end_row" validate:"gte=0"`
	EndCol   int `json:"end_col" validate:"gte=0"`
}

// Normalize orders the corners so that Start <= End.
func (sel Selection) Normalize() Selection {
	if sel.StartRow > sel.EndRow {
		sel.StartRow, sel.EndRow = sel.EndRow, sel.StartRow
	}
	if sel.StartCol > sel.EndCol {
		sel.StartCol, sel.EndCol = sel.EndCol, sel.StartCol
	}
	return sel
}

func (sel Selection) RowCount() int {
	sel = sel.Normalize()
	return sel.EndRow - sel.StartRow + 1
}

type CellUpdate struct {
	RowID string     `json:"row_id" validate:"required"`
	Field string     `json:"field" validate:"required"`
	Value fill.Value `json:"value"`
}

// NewSheet contains information needed to create a new Sheet.
type NewSheet struct {
	Name    string   `json:"name" validate:"required,max=64,alphanum_"`
	Columns []Column `json:"columns" validate:"required,min=1,dive"`
}

func (ns *NewSheet) Validate(validate *validator.Validate) error {
	ns.Name = core.CleanString(ns.Name, true /* lower */)
	for i := range ns.Columns {
		ns.Columns[i].Field = core.CleanString(ns.Columns[i].Field)
		ns.Columns[i].Header = core.CleanString(ns.Columns[i].Header)
		ns.Columns[i].Type = ColumnType(core.CleanString(string(ns.Columns[i].Type), true /* lower */))
		if ns.Columns[i].Header == "" {
			ns.Columns[i].Header = ns.Columns[i].Field
		}
	}
	if err := validate.Struct(ns); err != nil {
		return err
	}

	seen := make(map[string]bool, len(ns.Columns))
	for _, col := range ns.Columns {
		if seen[col.Field] {
			return core.NewFieldError("columns", "duplicate column field "+col.Field)
		}
		seen[col.Field] = true
	}
	return nil
}

// FillRequest describes a fill-handle drag: the first Seeds rows of the selection hold
// the pattern, the remaining rows receive its continuation.
type FillRequest struct {
	Selection Selection `json:"selection"`
	Seeds     int       `json:"seeds" validate:"omitempty,min=1"`
}

func (fr *FillRequest) Validate(validate *validator.Validate, maxCount int) error {
	if fr.Seeds == 0 {
		fr.Seeds = 1
	}
	if err := validate.Struct(fr); err != nil {
		return err
	}
	if targets := fr.Selection.RowCount() - fr.Seeds; maxCount > 0 && targets > maxCount {
		return core.NewFieldError("selection", errFillTooLarge(maxCount))
	}
	return nil
}

// UpdateCells defines the cell edits applied in one request.
type UpdateCells struct {
	Updates []CellUpdate `json:"updates" validate:"required,min=1,dive"`
}

func (uc *UpdateCells) Validate(validate *validator.Validate) error {
	for i := range uc.Updates {
		uc.Updates[i].Field = core.CleanString(uc.Updates[i].Field)
		uc.Updates[i].RowID = core.CleanString(uc.Updates[i].RowID)
	}
	return validate.Struct(uc)
}

// AddRows asks for Count empty rows at the end of a sheet.
type AddRows struct {
	Count int `json:"count" validate:"required,min=1,max=1000"`
}

func (ar AddRows) Validate(validate *validator.Validate) error { return validate.Struct(ar) }
