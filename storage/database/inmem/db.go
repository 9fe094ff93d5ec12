package inmemdb

import (
	"sync"

	"github.com/trezcool/smartfill/core/grid"
)

type (
	DB struct {
		sheet *sheetTable
	}

	sheetTable struct {
		mutex sync.RWMutex
		table map[string]*grid.Sheet
	}
)

func Open() (*DB, error) {
	db := &DB{
		sheet: &sheetTable{table: make(map[string]*grid.Sheet)},
	}
	return db, nil
}
