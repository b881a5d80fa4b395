package db

import (
	"fmt"

	"github.com/nickyhof/MiniDB/core"
)

// ColumnCountMismatchError is returned when an inserted row does not have
// exactly one value per column.
type ColumnCountMismatchError struct {
	Table    string
	Expected int
	Got      int
}

func (e *ColumnCountMismatchError) Error() string {
	return fmt.Sprintf("column count mismatch in %s: expected %d values, got %d", e.Table, e.Expected, e.Got)
}

// DuplicateValueError is returned when a value already exists in a primary
// or unique column.
type DuplicateValueError struct {
	Table  string
	Column string
	Value  core.Value
}

func (e *DuplicateValueError) Error() string {
	return fmt.Sprintf("duplicate value for %s.%s: %s", e.Table, e.Column, e.Value)
}

type TableExistsError struct {
	Table string
}

func (e *TableExistsError) Error() string {
	return fmt.Sprintf("table '%s' already exists", e.Table)
}

type TableNotFoundError struct {
	Table string
}

func (e *TableNotFoundError) Error() string {
	return fmt.Sprintf("table '%s' does not exist", e.Table)
}

// UnknownColumnError is returned when UPDATE targets a column the table does
// not define.
type UnknownColumnError struct {
	Table  string
	Column string
}

func (e *UnknownColumnError) Error() string {
	return fmt.Sprintf("column '%s' does not exist in table '%s'", e.Column, e.Table)
}

// StorageError wraps failures of the snapshot store.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s failed: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}
