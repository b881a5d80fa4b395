package db

import (
	"github.com/nickyhof/MiniDB/core"
)

// Table owns a schema, its rows in insertion order and one uniqueness index
// per primary or unique column.
type Table struct {
	Name    string
	Columns []core.Column

	rows    []core.Row
	indexes []*index // registration order
	policy  IndexPolicy
}

// index maps a column value to the single row holding it.
type index struct {
	column  core.Column
	entries map[core.Value]core.Row
}

// IndexInfo describes one index as reported by SHOW INDEX.
type IndexInfo struct {
	Column string `json:"column"`
	Unique bool   `json:"unique"`
}

// NewTable creates an empty table. A nil policy leaves indexes untouched by
// UPDATE and DELETE.
func NewTable(name string, columns []core.Column, policy IndexPolicy) *Table {
	if policy == nil {
		policy = StaleIndexes{}
	}

	table := &Table{
		Name:    name,
		Columns: append([]core.Column{}, columns...),
		rows:    []core.Row{},
		policy:  policy,
	}

	for _, column := range table.Columns {
		if !column.Indexed() || table.index(column.Name) != nil {
			continue
		}
		table.indexes = append(table.indexes, &index{
			column:  column,
			entries: make(map[core.Value]core.Row),
		})
	}

	return table
}

func (table *Table) index(column string) *index {
	for _, idx := range table.indexes {
		if idx.column.Name == column {
			return idx
		}
	}
	return nil
}

// width is the number of distinct column names, which is the number of keys
// every stored row carries. A repeated name keeps the value of its last
// position.
func (table *Table) width() int {
	names := make(map[string]struct{}, len(table.Columns))
	for _, column := range table.Columns {
		names[column.Name] = struct{}{}
	}
	return len(names)
}

func (table *Table) hasColumn(name string) bool {
	for _, column := range table.Columns {
		if column.Name == name {
			return true
		}
	}
	return false
}

// Insert appends a row built positionally from values. Every index is
// checked before anything is changed, so a rejected row leaves no trace.
func (table *Table) Insert(values []core.Value) error {
	if len(values) != len(table.Columns) {
		return &ColumnCountMismatchError{Table: table.Name, Expected: len(table.Columns), Got: len(values)}
	}

	row := make(core.Row, len(table.Columns))
	for i, column := range table.Columns {
		row[column.Name] = values[i]
	}

	return table.insertRow(row)
}

// restore appends a row loaded from a snapshot after checking that its keys
// match the schema.
func (table *Table) restore(row core.Row) error {
	if len(row) != table.width() {
		return &ColumnCountMismatchError{Table: table.Name, Expected: table.width(), Got: len(row)}
	}
	for name := range row {
		if !table.hasColumn(name) {
			return &UnknownColumnError{Table: table.Name, Column: name}
		}
	}

	return table.insertRow(row.Clone())
}

func (table *Table) insertRow(row core.Row) error {
	for _, idx := range table.indexes {
		value := row[idx.column.Name]
		if _, exists := idx.entries[value]; exists {
			return &DuplicateValueError{Table: table.Name, Column: idx.column.Name, Value: value}
		}
	}

	table.rows = append(table.rows, row)

	for _, idx := range table.indexes {
		idx.entries[row[idx.column.Name]] = row
	}

	return nil
}

// Rows returns copies of the stored rows in insertion order.
func (table *Table) Rows() []core.Row {
	rows := make([]core.Row, len(table.rows))
	for i, row := range table.rows {
		rows[i] = row.Clone()
	}
	return rows
}

func (table *Table) Len() int {
	return len(table.rows)
}

// Lookup reads the index of column for value. The result reflects whatever
// the index currently holds, which may be stale under StaleIndexes.
func (table *Table) Lookup(column string, value core.Value) (core.Row, bool) {
	idx := table.index(column)
	if idx == nil {
		return nil, false
	}
	row, ok := idx.entries[value]
	if !ok {
		return nil, false
	}
	return row.Clone(), true
}

// Update sets column to value on every row accepted by match and returns the
// number of rows changed.
func (table *Table) Update(match func(core.Row) bool, column string, value core.Value) (int, error) {
	if !table.hasColumn(column) {
		return 0, &UnknownColumnError{Table: table.Name, Column: column}
	}

	var updated []core.Row
	for _, row := range table.rows {
		if match(row) {
			row[column] = value
			updated = append(updated, row)
		}
	}

	table.policy.AfterUpdate(table, updated)
	return len(updated), nil
}

// Delete removes every row accepted by match and returns how many were removed.
func (table *Table) Delete(match func(core.Row) bool) int {
	kept := make([]core.Row, 0, len(table.rows))
	var removed []core.Row
	for _, row := range table.rows {
		if match(row) {
			removed = append(removed, row)
		} else {
			kept = append(kept, row)
		}
	}
	table.rows = kept

	table.policy.AfterDelete(table, removed)
	return len(removed)
}

// Indexes lists the indexed columns in registration order.
func (table *Table) Indexes() []IndexInfo {
	infos := make([]IndexInfo, 0, len(table.indexes))
	for _, idx := range table.indexes {
		infos = append(infos, IndexInfo{
			Column: idx.column.Name,
			Unique: idx.column.Primary || idx.column.Unique,
		})
	}
	return infos
}

// Reindex rebuilds every index from the current rows. When rows share a
// value the later row wins.
func (table *Table) Reindex() {
	for _, idx := range table.indexes {
		idx.entries = make(map[core.Value]core.Row, len(table.rows))
		for _, row := range table.rows {
			idx.entries[row[idx.column.Name]] = row
		}
	}
}

// Snapshot returns the serializable form of the table.
func (table *Table) Snapshot() core.TableSnapshot {
	return core.TableSnapshot{
		Name:    table.Name,
		Columns: append([]core.Column{}, table.Columns...),
		Rows:    table.Rows(),
	}
}
