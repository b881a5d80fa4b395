package db

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"time"

	"github.com/nickyhof/MiniDB/core"
	"github.com/nickyhof/MiniDB/ps"
	"github.com/nickyhof/MiniDB/sql"
)

type Engine struct {
	store  ps.Store
	tables map[string]*Table

	logger        *slog.Logger
	policy        IndexPolicy
	skipUnchanged bool
	lastChecksum  string
}

type Option func(*Engine)

func WithLogger(logger *slog.Logger) Option {
	return func(engine *Engine) {
		engine.logger = logger
	}
}

// WithIndexPolicy sets how indexes react to UPDATE and DELETE for every table.
func WithIndexPolicy(policy IndexPolicy) Option {
	return func(engine *Engine) {
		engine.policy = policy
	}
}

// WithSkipUnchanged skips the save after a command when the encoded snapshot
// is identical to the last one persisted.
func WithSkipUnchanged(skip bool) Option {
	return func(engine *Engine) {
		engine.skipUnchanged = skip
	}
}

// NewEngine loads the snapshot held by store and rebuilds every table and
// index from it. An empty store yields an empty database.
func NewEngine(ctx context.Context, store ps.Store, opts ...Option) (*Engine, error) {
	engine := &Engine{
		store:  store,
		tables: make(map[string]*Table),
		logger: slog.Default(),
		policy: StaleIndexes{},
	}
	for _, opt := range opts {
		opt(engine)
	}

	if err := engine.load(ctx); err != nil {
		return nil, err
	}

	return engine, nil
}

func (engine *Engine) load(ctx context.Context) error {
	blob, found, err := engine.store.Load(ctx)
	if err != nil {
		return &StorageError{Op: "load", Err: err}
	}
	if !found {
		engine.logger.Debug("no snapshot found, starting empty")
		return nil
	}

	snapshot, err := DecodeSnapshot(blob)
	if err != nil {
		return &StorageError{Op: "decode", Err: err}
	}

	tables := make(map[string]*Table, len(snapshot))
	for name, tableSnapshot := range snapshot {
		table, err := restoreTable(name, tableSnapshot, engine.policy)
		if err != nil {
			return fmt.Errorf("failed to restore table %s: %w", name, err)
		}
		tables[name] = table
	}
	engine.tables = tables

	if engine.skipUnchanged {
		engine.lastChecksum = ps.Checksum(blob)
	}

	engine.logger.Info("snapshot loaded", "tables", len(tables), "bytes", len(blob))
	return nil
}

// Execute runs a single query and persists the resulting state.
func (engine *Engine) Execute(query string) (Result, error) {
	return engine.ExecuteContext(context.Background(), query)
}

// ExecuteContext runs a single query and persists the resulting state. The
// result is returned only once the snapshot has been saved.
func (engine *Engine) ExecuteContext(ctx context.Context, query string) (Result, error) {
	command, err := sql.Parse(query)
	if err != nil {
		return nil, err
	}

	var result Result
	switch command := command.(type) {
	case sql.CreateTableCommand:
		result, err = engine.executeCreateTableCommand(command)
	case sql.InsertCommand:
		result, err = engine.executeInsertCommand(command)
	case sql.SelectCommand:
		result, err = engine.executeSelectCommand(command)
	case sql.UpdateCommand:
		result, err = engine.executeUpdateCommand(command)
	case sql.DeleteCommand:
		result, err = engine.executeDeleteCommand(command)
	case sql.ShowIndexCommand:
		result, err = engine.executeShowIndexCommand(command)
	default:
		return nil, fmt.Errorf("unsupported command type: %v", command.Type())
	}
	if err != nil {
		engine.logger.Debug("command failed", "command", command.Type().String(), "error", err)
		return nil, err
	}

	if err := engine.persist(ctx); err != nil {
		engine.logger.Error("snapshot save failed", "command", command.Type().String(), "error", err)
		return nil, err
	}

	engine.logger.Debug("command executed", "command", command.Type().String())
	return result, nil
}

func (engine *Engine) persist(ctx context.Context) error {
	blob, err := EncodeSnapshot(engine.Snapshot())
	if err != nil {
		return &StorageError{Op: "encode", Err: err}
	}

	var checksum string
	if engine.skipUnchanged {
		checksum = ps.Checksum(blob)
		if checksum == engine.lastChecksum {
			engine.logger.Debug("snapshot unchanged, skipping save")
			return nil
		}
	}

	if err := engine.store.Save(ctx, blob); err != nil {
		return &StorageError{Op: "save", Err: err}
	}

	engine.lastChecksum = checksum
	return nil
}

func (engine *Engine) table(name string) (*Table, error) {
	table, ok := engine.tables[name]
	if !ok {
		return nil, &TableNotFoundError{Table: name}
	}
	return table, nil
}

// Table returns the named table.
func (engine *Engine) Table(name string) (*Table, error) {
	return engine.table(name)
}

// TableNames returns all table names in sorted order.
func (engine *Engine) TableNames() []string {
	names := make([]string, 0, len(engine.tables))
	for name := range engine.tables {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Snapshot returns the serializable state of every table.
func (engine *Engine) Snapshot() core.Snapshot {
	snapshot := make(core.Snapshot, len(engine.tables))
	for name, table := range engine.tables {
		snapshot[name] = table.Snapshot()
	}
	return snapshot
}

// Close releases the store if it holds resources.
func (engine *Engine) Close() error {
	if closer, ok := engine.store.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}

func (engine *Engine) executeCreateTableCommand(command sql.CreateTableCommand) (CommitResult, error) {
	startTime := time.Now()

	if _, exists := engine.tables[command.Table]; exists {
		return CommitResult{}, &TableExistsError{Table: command.Table}
	}

	engine.tables[command.Table] = NewTable(command.Table, command.Columns, engine.policy)

	return CommitResult{
		Message:          OK,
		TablesCreated:    1,
		ExecutionTimeSec: time.Since(startTime).Seconds(),
	}, nil
}

func (engine *Engine) executeInsertCommand(command sql.InsertCommand) (CommitResult, error) {
	startTime := time.Now()

	table, err := engine.table(command.Table)
	if err != nil {
		return CommitResult{}, err
	}

	if err := table.Insert(command.Values); err != nil {
		return CommitResult{}, err
	}

	return CommitResult{
		Message:          OK,
		RecordsWritten:   1,
		ExecutionTimeSec: time.Since(startTime).Seconds(),
	}, nil
}

func (engine *Engine) executeSelectCommand(command sql.SelectCommand) (QueryResult, error) {
	startTime := time.Now()

	table, err := engine.table(command.Table)
	if err != nil {
		return QueryResult{}, err
	}

	columns := columnNames(table.Columns)
	rows := table.Rows()

	if command.Where != nil {
		filtered := make([]core.Row, 0, len(rows))
		for _, row := range rows {
			if command.Where.Matches(row) {
				filtered = append(filtered, row)
			}
		}
		rows = filtered
	}

	if command.Join != nil {
		joinTable, err := engine.table(command.Join.Table)
		if err != nil {
			return QueryResult{}, err
		}

		rows = executeJoin(rows, joinTable.Rows(), command.Join)
		columns = appendMissing(columns, columnNames(joinTable.Columns))
	}

	return QueryResult{
		Columns:          columns,
		Rows:             rows,
		ExecutionTimeSec: time.Since(startTime).Seconds(),
	}, nil
}

// executeJoin is an inner equality join. Right-hand fields override left-hand
// fields of the same name; left rows without a match are dropped.
func executeJoin(leftRows, rightRows []core.Row, join *sql.JoinClause) []core.Row {
	results := []core.Row{}

	for _, leftRow := range leftRows {
		for _, rightRow := range rightRows {
			if leftRow[join.Left.Column].Equal(rightRow[join.Right.Column]) {
				results = append(results, mergeRows(leftRow, rightRow))
			}
		}
	}

	return results
}

func mergeRows(left, right core.Row) core.Row {
	merged := left.Clone()
	for key, value := range right {
		merged[key] = value
	}
	return merged
}

func (engine *Engine) executeUpdateCommand(command sql.UpdateCommand) (CommitResult, error) {
	startTime := time.Now()

	table, err := engine.table(command.Table)
	if err != nil {
		return CommitResult{}, err
	}

	updated, err := table.Update(matchWhere(command.Where), command.Column, command.Value)
	if err != nil {
		return CommitResult{}, err
	}

	return CommitResult{
		Message:          OK,
		RecordsUpdated:   updated,
		ExecutionTimeSec: time.Since(startTime).Seconds(),
	}, nil
}

func (engine *Engine) executeDeleteCommand(command sql.DeleteCommand) (CommitResult, error) {
	startTime := time.Now()

	table, err := engine.table(command.Table)
	if err != nil {
		return CommitResult{}, err
	}

	deleted := table.Delete(matchWhere(command.Where))

	return CommitResult{
		Message:          OK,
		RecordsDeleted:   deleted,
		ExecutionTimeSec: time.Since(startTime).Seconds(),
	}, nil
}

func (engine *Engine) executeShowIndexCommand(command sql.ShowIndexCommand) (IndexResult, error) {
	table, err := engine.table(command.Table)
	if err != nil {
		return IndexResult{}, err
	}

	return IndexResult{
		Table:   table.Name,
		Indexes: table.Indexes(),
	}, nil
}

// matchWhere turns an optional filter into a row predicate; no filter
// matches every row.
func matchWhere(where *sql.WhereClause) func(core.Row) bool {
	if where == nil {
		return func(core.Row) bool { return true }
	}
	return where.Matches
}

func columnNames(columns []core.Column) []string {
	names := make([]string, 0, len(columns))
	for _, column := range columns {
		names = append(names, column.Name)
	}
	return names
}

func appendMissing(names []string, more []string) []string {
	seen := make(map[string]bool, len(names))
	for _, name := range names {
		seen[name] = true
	}
	for _, name := range more {
		if !seen[name] {
			names = append(names, name)
			seen[name] = true
		}
	}
	return names
}
