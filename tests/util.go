package testutil

import (
	"context"
	"testing"
	"time"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/trezcool/smartfill/core"
	"github.com/trezcool/smartfill/core/fill"
	"github.com/trezcool/smartfill/core/grid"
	inmemdb "github.com/trezcool/smartfill/storage/database/inmem"
)

// NewValidator returns a validator with every custom tag and translation registered.
func NewValidator() (*validator.Validate, ut.Translator) {
	validate := validator.New()
	translator := core.NewTranslator()
	core.InitValidators(validate, translator)
	grid.InitValidators(validate, translator)
	return validate, translator
}

// PrepareRepository returns an empty in-memory sheet repository.
func PrepareRepository(t *testing.T) grid.Repository {
	t.Helper()
	db, err := inmemdb.Open()
	if err != nil {
		t.Fatalf("inmemdb.Open() failed: %v", err)
	}
	return inmemdb.NewSheetRepository(db)
}

// TextColumns declares one text column per field.
func TextColumns(fields ...string) []grid.Column {
	cols := make([]grid.Column, len(fields))
	for i, f := range fields {
		cols[i] = grid.Column{Field: f, Header: f, Type: grid.TypeText}
	}
	return cols
}

func CreateSheet(t *testing.T, repo grid.Repository, name string, cols []grid.Column, createdAt ...time.Time) grid.Sheet {
	t.Helper()
	tstamp := time.Now().UTC()
	if len(createdAt) > 0 {
		tstamp = createdAt[0].UTC()
	}
	sheet, err := repo.CreateSheet(context.Background(), grid.Sheet{
		Name:      name,
		Columns:   cols,
		Rows:      []grid.Row{},
		CreatedAt: tstamp,
		UpdatedAt: tstamp,
	})
	if err != nil {
		t.Fatalf("createSheet() failed: %v", err)
	}
	return sheet
}

// AddRows appends one row per cells map.
func AddRows(t *testing.T, repo grid.Repository, name string, cells ...map[string]fill.Value) []grid.Row {
	t.Helper()
	rows := make([]grid.Row, len(cells))
	for i, c := range cells {
		rows[i] = grid.Row{Cells: c}
	}
	added, err := repo.AddRows(context.Background(), name, rows...)
	if err != nil {
		t.Fatalf("addRows() failed: %v", err)
	}
	return added
}

// Column is a shorthand for a single column's cells, eg. Column("a", "1", "2").
func Column(field string, vals ...string) []map[string]fill.Value {
	cells := make([]map[string]fill.Value, len(vals))
	for i, v := range vals {
		cells[i] = map[string]fill.Value{}
		if v != "" {
			cells[i][field] = fill.Text(v)
		}
	}
	return cells
}
