package db

import "github.com/nickyhof/MiniDB/core"

// IndexPolicy decides what happens to a table's indexes after rows are
// changed in place or removed. Inserts always maintain indexes.
type IndexPolicy interface {
	AfterUpdate(table *Table, updated []core.Row)
	AfterDelete(table *Table, removed []core.Row)
}

// StaleIndexes never touches indexes after UPDATE or DELETE. Entries keep
// pointing at updated rows under their old value and at deleted rows, so a
// deleted primary key still blocks re-insertion.
type StaleIndexes struct{}

func (StaleIndexes) AfterUpdate(*Table, []core.Row) {}
func (StaleIndexes) AfterDelete(*Table, []core.Row) {}

// RebuildIndexes rebuilds every index from the remaining rows after each
// UPDATE or DELETE that changed at least one row.
type RebuildIndexes struct{}

func (RebuildIndexes) AfterUpdate(table *Table, updated []core.Row) {
	if len(updated) > 0 {
		table.Reindex()
	}
}

func (RebuildIndexes) AfterDelete(table *Table, removed []core.Row) {
	if len(removed) > 0 {
		table.Reindex()
	}
}
