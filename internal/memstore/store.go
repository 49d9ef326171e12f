// Package memstore keeps users and ledger entries in process memory. It honours
// the same uniqueness and ordering rules as the SQLite repositories and is safe
// for concurrent use.
package memstore

import (
	"sync"
)

type recordKey struct {
	userID uint
	date   string
}

type categoryKey struct {
	userID   uint
	date     string
	category string
}

// Store is the shared state behind the in-memory repositories.
type Store struct {
	mu sync.RWMutex

	nextUserID     uint
	nextRecordID   uint
	nextCategoryID uint

	users       map[uint]userRow
	userHandles map[string]uint
	records     map[recordKey]recordRow
	categories  map[categoryKey]categoryRow
}

func New() *Store {
	return &Store{
		nextUserID:     1,
		nextRecordID:   1,
		nextCategoryID: 1,
		users:          make(map[uint]userRow),
		userHandles:    make(map[string]uint),
		records:        make(map[recordKey]recordRow),
		categories:     make(map[categoryKey]categoryRow),
	}
}

func (store *Store) Users() *UserRepository {
	return &UserRepository{store: store}
}

func (store *Store) Records() *RecordRepository {
	return &RecordRepository{store: store}
}

func (store *Store) Categories() *CategoryRepository {
	return &CategoryRepository{store: store}
}
