package db

import (
	"fmt"
	"io"
	"strings"

	"github.com/nickyhof/MiniDB/core"
)

// OK is the message carried by every successful mutation.
const OK = "OK"

type ResultType int

const (
	QueryResultType ResultType = iota
	CommitResultType
	IndexResultType
)

type Result interface {
	Type() ResultType
	Display(w io.Writer)
}

// QueryResult holds the full rows returned by SELECT. Columns lists the
// schema columns of the table, followed by the joined table's columns.
type QueryResult struct {
	Columns          []string
	Rows             []core.Row
	ExecutionTimeSec float64
}

// CommitResult reports the outcome of CREATE TABLE, INSERT, UPDATE and DELETE.
type CommitResult struct {
	Message          string
	TablesCreated    int
	RecordsWritten   int
	RecordsUpdated   int
	RecordsDeleted   int
	ExecutionTimeSec float64
}

// IndexResult lists the indexes of one table as reported by SHOW INDEX.
type IndexResult struct {
	Table   string
	Indexes []IndexInfo
}

func (result QueryResult) Type() ResultType {
	return QueryResultType
}

func (result CommitResult) Type() ResultType {
	return CommitResultType
}

func (result IndexResult) Type() ResultType {
	return IndexResultType
}

// formatDuration formats a duration in human-readable form
func formatDuration(secs float64) string {
	if secs < 0.001 {
		return "<1ms"
	} else if secs < 1 {
		return fmt.Sprintf("%dms", int(secs*1000))
	} else if secs < 60 {
		if secs < 10 {
			return fmt.Sprintf("%.1fs", secs)
		}
		return fmt.Sprintf("%ds", int(secs))
	}
	mins := int(secs / 60)
	remainSecs := int(secs) % 60
	if remainSecs == 0 {
		return fmt.Sprintf("%dm", mins)
	}
	return fmt.Sprintf("%dm%ds", mins, remainSecs)
}

// formatThroughput renders rows per second, or nothing when it cannot be measured.
func formatThroughput(count int, secs float64) string {
	if secs <= 0 || count <= 0 {
		return ""
	}
	ops := float64(count) / secs
	switch {
	case ops >= 1000000:
		return fmt.Sprintf(", %.1fM rows/s", ops/1000000)
	case ops >= 1000:
		return fmt.Sprintf(", %.1fK rows/s", ops/1000)
	default:
		return fmt.Sprintf(", %.0f rows/s", ops)
	}
}

func (result QueryResult) ExecutionTime() string {
	return formatDuration(result.ExecutionTimeSec)
}

func (result CommitResult) ExecutionTime() string {
	return formatDuration(result.ExecutionTimeSec)
}

func (result QueryResult) Display(w io.Writer) {
	if len(result.Rows) > 0 {
		data := NewSimpleTable(w)
		data.Header(result.Columns)
		for _, row := range result.Rows {
			data.Row(formatRow(result.Columns, row))
		}
		data.Render()
	}

	fmt.Fprintf(w, "%d rows (%s%s)\n", len(result.Rows), result.ExecutionTime(),
		formatThroughput(len(result.Rows), result.ExecutionTimeSec))
}

func (result CommitResult) Display(w io.Writer) {
	var parts []string

	if result.TablesCreated > 0 {
		parts = append(parts, fmt.Sprintf("%d table(s) created", result.TablesCreated))
	}
	if result.RecordsWritten > 0 {
		parts = append(parts, fmt.Sprintf("%d record(s) written", result.RecordsWritten))
	}
	if result.RecordsUpdated > 0 {
		parts = append(parts, fmt.Sprintf("%d record(s) updated", result.RecordsUpdated))
	}
	if result.RecordsDeleted > 0 {
		parts = append(parts, fmt.Sprintf("%d record(s) deleted", result.RecordsDeleted))
	}

	message := result.Message
	if message == "" {
		message = OK
	}
	if len(parts) > 0 {
		message += ": " + strings.Join(parts, ", ")
	}

	fmt.Fprintf(w, "%s (%s)\n", message, result.ExecutionTime())
}

func (result IndexResult) Display(w io.Writer) {
	if len(result.Indexes) > 0 {
		data := NewSimpleTable(w)
		data.Header([]string{"column", "unique"})
		for _, idx := range result.Indexes {
			unique := "NO"
			if idx.Unique {
				unique = "YES"
			}
			data.Row([]string{idx.Column, unique})
		}
		data.Render()
	}

	fmt.Fprintf(w, "%d index(es) on %s\n", len(result.Indexes), result.Table)
}
