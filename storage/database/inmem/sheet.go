package inmemdb

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/trezcool/smartfill/core"
	"github.com/trezcool/smartfill/core/fill"
	"github.com/trezcool/smartfill/core/grid"
)

type sheetRepository struct {
	db *sheetTable
}

var _ grid.Repository = (*sheetRepository)(nil)

func NewSheetRepository(db *DB) grid.Repository {
	return &sheetRepository{db: db.sheet}
}

// copySheet detaches a sheet from the table so callers cannot alter stored state.
func copySheet(s grid.Sheet, withRows bool) grid.Sheet {
	cp := s
	cp.Columns = append([]grid.Column(nil), s.Columns...)
	cp.Rows = []grid.Row{}
	if withRows {
		cp.Rows = make([]grid.Row, len(s.Rows))
		for i, row := range s.Rows {
			cp.Rows[i] = copyRow(row)
		}
	}
	return cp
}

func copyRow(r grid.Row) grid.Row {
	cells := make(map[string]fill.Value, len(r.Cells))
	for k, v := range r.Cells {
		cells[k] = v
	}
	r.Cells = cells
	return r
}

func (repo *sheetRepository) CreateSheet(_ context.Context, sheet grid.Sheet) (grid.Sheet, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	if _, ok := repo.db.table[sheet.Name]; ok {
		return grid.Sheet{}, grid.ErrSheetExists
	}
	stored := copySheet(sheet, false)
	repo.db.table[sheet.Name] = &stored
	return copySheet(stored, true), nil
}

func (repo *sheetRepository) GetSheet(_ context.Context, name string) (grid.Sheet, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	if s, ok := repo.db.table[name]; ok {
		return copySheet(*s, true), nil
	}
	return grid.Sheet{}, grid.ErrNotFound
}

func (repo *sheetRepository) QuerySheets(_ context.Context, ordering ...core.DBOrdering) ([]grid.Sheet, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	sheets := make([]grid.Sheet, 0, len(repo.db.table))
	for _, s := range repo.db.table {
		sheets = append(sheets, copySheet(*s, false))
	}
	if len(ordering) == 0 {
		ordering = []core.DBOrdering{{Field: "name", Ascending: true}}
	}
	sort.SliceStable(sheets, func(i, j int) bool {
		for _, ord := range ordering {
			if c := compareSheets(sheets[i], sheets[j], ord.Field); c != 0 {
				return (c < 0) == ord.Ascending
			}
		}
		return false
	})
	return sheets, nil
}

func compareSheets(a, b grid.Sheet, field string) int {
	var ta, tb time.Time
	switch field {
	case "created_at":
		ta, tb = a.CreatedAt, b.CreatedAt
	case "updated_at":
		ta, tb = a.UpdatedAt, b.UpdatedAt
	default:
		switch {
		case a.Name < b.Name:
			return -1
		case a.Name > b.Name:
			return 1
		}
		return 0
	}
	switch {
	case ta.Before(tb):
		return -1
	case ta.After(tb):
		return 1
	}
	return 0
}

func (repo *sheetRepository) AddRows(_ context.Context, name string, rows ...grid.Row) ([]grid.Row, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	s, ok := repo.db.table[name]
	if !ok {
		return nil, grid.ErrNotFound
	}
	next := 0
	if n := len(s.Rows); n > 0 {
		next = s.Rows[n-1].Position + 1
	}
	added := make([]grid.Row, len(rows))
	for i, row := range rows {
		row = copyRow(row)
		row.ID = uuid.New().String()
		row.Position = next + i
		s.Rows = append(s.Rows, row)
		added[i] = copyRow(row)
	}
	s.UpdatedAt = time.Now().UTC()
	return added, nil
}

func (repo *sheetRepository) UpdateCells(_ context.Context, name string, updates ...grid.CellUpdate) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	s, ok := repo.db.table[name]
	if !ok {
		return grid.ErrNotFound
	}
	index := make(map[string]int, len(s.Rows))
	for i, row := range s.Rows {
		index[row.ID] = i
	}
	// all or nothing
	for _, upd := range updates {
		if _, ok := index[upd.RowID]; !ok {
			return grid.ErrRowNotFound
		}
	}
	for _, upd := range updates {
		s.Rows[index[upd.RowID]].Cells[upd.Field] = upd.Value
	}
	s.UpdatedAt = time.Now().UTC()
	return nil
}

func (repo *sheetRepository) DeleteRows(_ context.Context, name string, ids ...string) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	s, ok := repo.db.table[name]
	if !ok {
		return grid.ErrNotFound
	}
	drop := make(map[string]bool, len(ids))
	for _, id := range ids {
		drop[id] = true
	}
	kept := s.Rows[:0]
	for _, row := range s.Rows {
		if !drop[row.ID] {
			kept = append(kept, row)
		}
	}
	s.Rows = kept
	s.UpdatedAt = time.Now().UTC()
	return nil
}
