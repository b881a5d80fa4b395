package sql

import "fmt"

// EmptyInputError is returned when a query contains nothing but whitespace.
type EmptyInputError struct{}

func (e *EmptyInputError) Error() string {
	return "empty SQL statement"
}

// UnsupportedCommandError is returned when the first token is not a known
// command keyword.
type UnsupportedCommandError struct {
	Command string
}

func (e *UnsupportedCommandError) Error() string {
	if e.Command == "" {
		return "invalid SQL: no command"
	}
	return fmt.Sprintf("unsupported command: %s", e.Command)
}

// MissingClauseError is returned when a required keyword or a positional
// part of a statement is absent.
type MissingClauseError struct {
	Command string
	Clause  string
}

func (e *MissingClauseError) Error() string {
	return fmt.Sprintf("%s: missing %s", e.Command, e.Clause)
}
