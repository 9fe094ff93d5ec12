package sqlxrepos

import (
	"context"
	"database/sql"
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/trezcool/smartfill/core"
	"github.com/trezcool/smartfill/core/fill"
	"github.com/trezcool/smartfill/core/grid"
)

const uniqueViolation = "23505"

var sheetOrderings = map[string]string{
	"name":       "name",
	"created_at": "created_at",
	"updated_at": "updated_at",
}

type (
	sheetRepository struct {
		db *sqlx.DB
	}

	sheetModel struct {
		Name      string    `db:"name"`
		Columns   string    `db:"columns"` // jsonb
		CreatedAt time.Time `db:"created_at"`
		UpdatedAt time.Time `db:"updated_at"`
	}

	// cellModel is one row of `sheet_row LEFT JOIN sheet_cell`; cell columns are NULL
	// for rows without cells.
	cellModel struct {
		RowID    string      `db:"row_id"`
		Position int         `db:"position"`
		Field    null.String `db:"field"`
		Kind     null.String `db:"kind"`
		Value    null.String `db:"value"`
	}
)

var _ grid.Repository = (*sheetRepository)(nil)

func NewSheetRepository(db *sql.DB) grid.Repository {
	return &sheetRepository{db: sqlx.NewDb(db, "postgres")}
}

func (m sheetModel) toSheet() (grid.Sheet, error) {
	sheet := grid.Sheet{
		Name:      m.Name,
		Rows:      []grid.Row{},
		CreatedAt: m.CreatedAt.UTC(),
		UpdatedAt: m.UpdatedAt.UTC(),
	}
	if err := json.Unmarshal([]byte(m.Columns), &sheet.Columns); err != nil {
		return grid.Sheet{}, errors.Wrap(err, "decoding columns")
	}
	return sheet, nil
}

// encodeCell maps a value to its (kind, value) columns. Empty text is stored as NULL.
func encodeCell(v fill.Value) (string, null.String) {
	switch v.Kind() {
	case fill.KindNumber:
		return "number", null.StringFrom(v.String())
	case fill.KindDate:
		return "date", null.StringFrom(v.String())
	default:
		s := v.String()
		return "text", null.NewString(s, s != "")
	}
}

func decodeCell(kind string, val null.String) fill.Value {
	switch kind {
	case "number":
		if f, err := strconv.ParseFloat(val.String, 64); err == nil {
			return fill.Number(f)
		}
	case "date":
		if t, ok := fill.Text(val.String).Time(); ok {
			return fill.Date(t)
		}
	}
	return fill.Text(val.String)
}

// validIDs drops the IDs that are not UUIDs; they cannot match a row.
func validIDs(ids []string) ([]string, bool) {
	valid := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, err := uuid.Parse(id); err == nil {
			valid = append(valid, id)
		}
	}
	return valid, len(valid) == len(ids)
}

func (repo *sheetRepository) withTx(ctx context.Context, fn func(tx *sqlx.Tx) error) error {
	tx, err := repo.db.BeginTxx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "beginning transaction")
	}
	if err = fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	return errors.Wrap(tx.Commit(), "committing transaction")
}

// lockSheet takes a row lock on the sheet for the duration of tx and touches updated_at.
func lockSheet(ctx context.Context, tx *sqlx.Tx, name string) error {
	var locked string
	err := tx.GetContext(ctx, &locked, `SELECT name FROM sheet WHERE name = $1 FOR UPDATE`, name)
	if err == sql.ErrNoRows {
		return grid.ErrNotFound
	}
	if err != nil {
		return errors.Wrap(err, "locking sheet")
	}
	_, err = tx.ExecContext(ctx, `UPDATE sheet SET updated_at = $2 WHERE name = $1`, name, time.Now().UTC())
	return errors.Wrap(err, "touching sheet")
}

func (repo *sheetRepository) CreateSheet(ctx context.Context, sheet grid.Sheet) (grid.Sheet, error) {
	cols, err := json.Marshal(sheet.Columns)
	if err != nil {
		return grid.Sheet{}, errors.Wrap(err, "encoding columns")
	}
	m := sheetModel{
		Name:      sheet.Name,
		Columns:   string(cols),
		CreatedAt: sheet.CreatedAt.UTC(),
		UpdatedAt: sheet.UpdatedAt.UTC(),
	}
	q := `INSERT INTO sheet (name, columns, created_at, updated_at) VALUES (:name, :columns, :created_at, :updated_at)`
	if _, err = repo.db.NamedExecContext(ctx, q, m); err != nil {
		if pqErr, ok := errors.Cause(err).(*pq.Error); ok && pqErr.Code == uniqueViolation {
			return grid.Sheet{}, grid.ErrSheetExists
		}
		return grid.Sheet{}, errors.Wrap(err, "inserting sheet")
	}
	return m.toSheet()
}

func (repo *sheetRepository) GetSheet(ctx context.Context, name string) (grid.Sheet, error) {
	var m sheetModel
	err := repo.db.GetContext(ctx, &m, `SELECT name, columns, created_at, updated_at FROM sheet WHERE name = $1`, name)
	if err == sql.ErrNoRows {
		return grid.Sheet{}, grid.ErrNotFound
	}
	if err != nil {
		return grid.Sheet{}, errors.Wrap(err, "selecting sheet")
	}
	sheet, err := m.toSheet()
	if err != nil {
		return grid.Sheet{}, err
	}

	var cells []cellModel
	q := `
		SELECT r.id AS row_id, r.position, c.field, c.kind, c.value
		FROM sheet_row r
		LEFT JOIN sheet_cell c ON c.row_id = r.id
		WHERE r.sheet = $1
		ORDER BY r.position, c.field`
	if err = repo.db.SelectContext(ctx, &cells, q, name); err != nil {
		return grid.Sheet{}, errors.Wrap(err, "selecting cells")
	}
	for _, c := range cells {
		n := len(sheet.Rows)
		if n == 0 || sheet.Rows[n-1].ID != c.RowID {
			sheet.Rows = append(sheet.Rows, grid.Row{ID: c.RowID, Position: c.Position, Cells: map[string]fill.Value{}})
			n++
		}
		if c.Field.Valid {
			sheet.Rows[n-1].Cells[c.Field.String] = decodeCell(c.Kind.String, c.Value)
		}
	}
	return sheet, nil
}

func (repo *sheetRepository) QuerySheets(ctx context.Context, ordering ...core.DBOrdering) ([]grid.Sheet, error) {
	orderBy := make([]string, 0, len(ordering)+1)
	for _, ord := range ordering {
		if col, ok := sheetOrderings[ord.Field]; ok {
			orderBy = append(orderBy, core.DBOrdering{Field: col, Ascending: ord.Ascending}.String())
		}
	}
	orderBy = append(orderBy, "name ASC")

	var models []sheetModel
	q := `SELECT name, columns, created_at, updated_at FROM sheet ORDER BY ` + strings.Join(orderBy, ", ")
	if err := repo.db.SelectContext(ctx, &models, q); err != nil {
		return nil, errors.Wrap(err, "selecting sheets")
	}
	sheets := make([]grid.Sheet, 0, len(models))
	for _, m := range models {
		sheet, err := m.toSheet()
		if err != nil {
			return nil, err
		}
		sheets = append(sheets, sheet)
	}
	return sheets, nil
}

func (repo *sheetRepository) AddRows(ctx context.Context, name string, rows ...grid.Row) ([]grid.Row, error) {
	added := make([]grid.Row, 0, len(rows))
	err := repo.withTx(ctx, func(tx *sqlx.Tx) error {
		if err := lockSheet(ctx, tx, name); err != nil {
			return err
		}
		var next int
		q := `SELECT COALESCE(MAX(position), -1) + 1 FROM sheet_row WHERE sheet = $1`
		if err := tx.GetContext(ctx, &next, q, name); err != nil {
			return errors.Wrap(err, "selecting last position")
		}

		for i, row := range rows {
			row.ID = uuid.New().String()
			row.Position = next + i
			q = `INSERT INTO sheet_row (id, sheet, position) VALUES ($1, $2, $3)`
			if _, err := tx.ExecContext(ctx, q, row.ID, name, row.Position); err != nil {
				return errors.Wrap(err, "inserting row")
			}
			cells := make(map[string]fill.Value, len(row.Cells))
			for field, v := range row.Cells {
				if err := upsertCell(ctx, tx, row.ID, field, v); err != nil {
					return err
				}
				cells[field] = v
			}
			row.Cells = cells
			added = append(added, row)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return added, nil
}

func upsertCell(ctx context.Context, tx *sqlx.Tx, rowID, field string, v fill.Value) error {
	kind, val := encodeCell(v)
	q := `
		INSERT INTO sheet_cell (row_id, field, kind, value) VALUES ($1, $2, $3, $4)
		ON CONFLICT (row_id, field) DO UPDATE SET kind = EXCLUDED.kind, value = EXCLUDED.value`
	_, err := tx.ExecContext(ctx, q, rowID, field, kind, val)
	return errors.Wrap(err, "upserting cell")
}

func (repo *sheetRepository) UpdateCells(ctx context.Context, name string, updates ...grid.CellUpdate) error {
	ids := make([]string, 0, len(updates))
	seen := make(map[string]bool, len(updates))
	for _, upd := range updates {
		if !seen[upd.RowID] {
			seen[upd.RowID] = true
			ids = append(ids, upd.RowID)
		}
	}
	if _, ok := validIDs(ids); !ok {
		return grid.ErrRowNotFound
	}

	return repo.withTx(ctx, func(tx *sqlx.Tx) error {
		if err := lockSheet(ctx, tx, name); err != nil {
			return err
		}
		var found int
		q := `SELECT COUNT(*) FROM sheet_row WHERE sheet = $1 AND id = ANY($2::uuid[])`
		if err := tx.GetContext(ctx, &found, q, name, pq.Array(ids)); err != nil {
			return errors.Wrap(err, "checking rows")
		}
		if found != len(ids) {
			return grid.ErrRowNotFound
		}
		for _, upd := range updates {
			if err := upsertCell(ctx, tx, upd.RowID, upd.Field, upd.Value); err != nil {
				return err
			}
		}
		return nil
	})
}

func (repo *sheetRepository) DeleteRows(ctx context.Context, name string, ids ...string) error {
	ids, _ = validIDs(ids)
	return repo.withTx(ctx, func(tx *sqlx.Tx) error {
		if err := lockSheet(ctx, tx, name); err != nil {
			return err
		}
		if len(ids) == 0 {
			return nil
		}
		q := `DELETE FROM sheet_row WHERE sheet = $1 AND id = ANY($2::uuid[])`
		_, err := tx.ExecContext(ctx, q, name, pq.Array(ids))
		return errors.Wrap(err, "deleting rows")
	})
}
