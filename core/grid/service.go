package grid

import (
	"context"
	"fmt"
	"time"

	"github.com/pkg/errors"

	"github.com/trezcool/smartfill/core"
	"github.com/trezcool/smartfill/core/fill"
)

var (
	// errors
	ErrNotFound    = errors.New("sheet not found")
	ErrSheetExists = errors.New("a sheet with this name already exists")
	ErrRowNotFound = errors.New("row not found")

	nowFunc = time.Now // mockable
)

type (
	Repository interface {
		// CreateSheet fails with ErrSheetExists when the name is taken.
		CreateSheet(ctx context.Context, sheet Sheet) (Sheet, error)
		// GetSheet returns the sheet with its rows ordered by position.
		GetSheet(ctx context.Context, name string) (Sheet, error)
		// QuerySheets lists sheets without their rows; ordered by name by default.
		QuerySheets(ctx context.Context, ordering ...core.DBOrdering) ([]Sheet, error)
		// AddRows appends rows after the last one, assigning IDs and positions.
		AddRows(ctx context.Context, name string, rows ...Row) ([]Row, error)
		// UpdateCells fails with ErrRowNotFound if a row is missing; nothing is written then.
		UpdateCells(ctx context.Context, name string, updates ...CellUpdate) error
		DeleteRows(ctx context.Context, name string, ids ...string) error
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (svc *Service) Create(ctx context.Context, ns NewSheet) (Sheet, error) {
	now := nowFunc().UTC()
	sheet := Sheet{
		Name:      ns.Name,
		Columns:   ns.Columns,
		Rows:      []Row{},
		CreatedAt: now,
		UpdatedAt: now,
	}
	sheet, err := svc.repo.CreateSheet(ctx, sheet)
	if err != nil {
		if errors.Cause(err) == ErrSheetExists {
			return Sheet{}, core.NewValidationError(err, core.FieldError{Field: "name", Error: err.Error()})
		}
		return Sheet{}, errors.Wrap(err, "creating sheet")
	}
	return sheet, nil
}

func (svc *Service) Get(ctx context.Context, name string) (Sheet, error) {
	return svc.repo.GetSheet(ctx, core.CleanString(name, true /* lower */))
}

func (svc *Service) Query(ctx context.Context, ordering ...core.DBOrdering) ([]Sheet, error) {
	return svc.repo.QuerySheets(ctx, ordering...)
}

// AddRows appends n empty rows to the sheet.
func (svc *Service) AddRows(ctx context.Context, name string, n int) ([]Row, error) {
	rows := make([]Row, n)
	for i := range rows {
		rows[i].Cells = map[string]fill.Value{}
	}
	return svc.repo.AddRows(ctx, core.CleanString(name, true /* lower */), rows...)
}

// UpdateCells applies single cell edits; every target must be an existing, writable cell.
func (svc *Service) UpdateCells(ctx context.Context, name string, uc UpdateCells) ([]CellUpdate, error) {
	sheet, err := svc.Get(ctx, name)
	if err != nil {
		return nil, err
	}
	for _, upd := range uc.Updates {
		col, ok := sheet.Column(upd.Field)
		if !ok {
			return nil, core.NewFieldError("updates", fmt.Sprintf("unknown column %q", upd.Field))
		}
		if col.ReadOnly {
			return nil, core.NewFieldError("updates", fmt.Sprintf("column %q is read-only", upd.Field))
		}
		if !sheet.HasRow(upd.RowID) {
			return nil, core.NewFieldError("updates", fmt.Sprintf("unknown row %q", upd.RowID))
		}
	}
	if err = svc.repo.UpdateCells(ctx, sheet.Name, uc.Updates...); err != nil {
		return nil, errors.Wrap(err, "updating cells")
	}
	return uc.Updates, nil
}

// Fill runs a fill-handle drag on the sheet and persists the predicted cells.
func (svc *Service) Fill(ctx context.Context, name string, fr FillRequest) ([]CellUpdate, error) {
	sheet, err := svc.Get(ctx, name)
	if err != nil {
		return nil, err
	}
	updates := PlanFill(sheet.Columns, sheet.Rows, fr)
	if len(updates) == 0 {
		return []CellUpdate{}, nil
	}
	if err = svc.repo.UpdateCells(ctx, sheet.Name, updates...); err != nil {
		return nil, errors.Wrap(err, "saving filled cells")
	}
	return updates, nil
}

func (svc *Service) DeleteRows(ctx context.Context, name string, ids ...string) error {
	return svc.repo.DeleteRows(ctx, core.CleanString(name, true /* lower */), ids...)
}
