package db

import (
	"bytes"
	"context"
	"errors"
	"math"
	"reflect"
	"strings"
	"testing"

	"github.com/nickyhof/MiniDB/core"
	"github.com/nickyhof/MiniDB/ps"
)

// memoryStore keeps the last saved blob and counts saves.
type memoryStore struct {
	blob    []byte
	saves   int
	saveErr error
	loadErr error
}

func (s *memoryStore) Load(context.Context) ([]byte, bool, error) {
	if s.loadErr != nil {
		return nil, false, s.loadErr
	}
	return s.blob, s.blob != nil, nil
}

func (s *memoryStore) Save(_ context.Context, blob []byte) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	s.blob = append([]byte(nil), blob...)
	s.saves++
	return nil
}

func setupTestEngine(t *testing.T, opts ...Option) (*Engine, *memoryStore) {
	store := &memoryStore{}
	engine, err := NewEngine(context.Background(), store, opts...)
	if err != nil {
		t.Fatalf("Failed to create engine: %v", err)
	}
	return engine, store
}

func mustExecute(t *testing.T, engine *Engine, query string) Result {
	t.Helper()
	result, err := engine.Execute(query)
	if err != nil {
		t.Fatalf("Failed to execute %q: %v", query, err)
	}
	return result
}

func setupUsers(t *testing.T, engine *Engine) {
	mustExecute(t, engine, "CREATE TABLE users (id INT PRIMARY, name TEXT)")
	mustExecute(t, engine, `INSERT INTO users (1, "Alice")`)
	mustExecute(t, engine, `INSERT INTO users (2, "Bob")`)
}

func TestEngineCreateTableAndShowIndex(t *testing.T) {
	engine, _ := setupTestEngine(t)

	result := mustExecute(t, engine, "CREATE TABLE users (id INT PRIMARY, name TEXT)")
	cr := result.(CommitResult)
	if cr.Message != OK || cr.TablesCreated != 1 {
		t.Errorf("Unexpected create result: %+v", cr)
	}

	result = mustExecute(t, engine, "SHOW INDEX FROM users")
	ir := result.(IndexResult)
	expected := []IndexInfo{{Column: "id", Unique: true}}
	if !reflect.DeepEqual(ir.Indexes, expected) {
		t.Errorf("Expected indexes %v, got %v", expected, ir.Indexes)
	}
}

func TestEngineCreateTableExists(t *testing.T) {
	engine, _ := setupTestEngine(t)
	mustExecute(t, engine, "CREATE TABLE users (id INT)")

	_, err := engine.Execute("CREATE TABLE users (name TEXT)")
	var exists *TableExistsError
	if !errors.As(err, &exists) {
		t.Fatalf("Expected TableExistsError, got %v", err)
	}
}

func TestEngineInsertDuplicate(t *testing.T) {
	engine, _ := setupTestEngine(t)
	mustExecute(t, engine, "CREATE TABLE users (id INT PRIMARY, name TEXT)")
	mustExecute(t, engine, `INSERT INTO users (1, "Alice")`)

	_, err := engine.Execute(`INSERT INTO users (1, "Bob")`)
	var duplicate *DuplicateValueError
	if !errors.As(err, &duplicate) {
		t.Fatalf("Expected DuplicateValueError, got %v", err)
	}
	if duplicate.Column != "id" {
		t.Errorf("Expected duplicate on id, got %s", duplicate.Column)
	}

	table, _ := engine.Table("users")
	if table.Len() != 1 {
		t.Errorf("Rejected insert left a row behind: %d rows", table.Len())
	}
}

func TestEngineInsertDuplicateOnSecondIndex(t *testing.T) {
	engine, _ := setupTestEngine(t)
	mustExecute(t, engine, "CREATE TABLE users (id INT PRIMARY, email TEXT UNIQUE)")
	mustExecute(t, engine, `INSERT INTO users (1, "a@x")`)

	_, err := engine.Execute(`INSERT INTO users (2, "a@x")`)
	var duplicate *DuplicateValueError
	if !errors.As(err, &duplicate) || duplicate.Column != "email" {
		t.Fatalf("Expected DuplicateValueError on email, got %v", err)
	}

	// The primary index must not have picked up id 2.
	mustExecute(t, engine, `INSERT INTO users (2, "b@x")`)
}

func TestEngineInsertColumnCount(t *testing.T) {
	engine, _ := setupTestEngine(t)
	mustExecute(t, engine, "CREATE TABLE users (id INT PRIMARY, name TEXT)")

	_, err := engine.Execute("INSERT INTO users (1)")
	var mismatch *ColumnCountMismatchError
	if !errors.As(err, &mismatch) {
		t.Fatalf("Expected ColumnCountMismatchError, got %v", err)
	}
	if mismatch.Expected != 2 || mismatch.Got != 1 {
		t.Errorf("Unexpected mismatch: %+v", mismatch)
	}
}

func TestEngineInsertUnknownTable(t *testing.T) {
	engine, _ := setupTestEngine(t)

	_, err := engine.Execute("INSERT INTO ghosts (1)")
	var notFound *TableNotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("Expected TableNotFoundError, got %v", err)
	}
}

func TestEngineSelect(t *testing.T) {
	engine, _ := setupTestEngine(t)
	setupUsers(t, engine)

	result := mustExecute(t, engine, "SELECT * FROM users")
	qr := result.(QueryResult)
	if len(qr.Rows) != 2 {
		t.Fatalf("Expected 2 rows, got %d", len(qr.Rows))
	}
	if !reflect.DeepEqual(qr.Columns, []string{"id", "name"}) {
		t.Errorf("Unexpected columns %v", qr.Columns)
	}
	if name, _ := qr.Rows[0]["name"].Text(); name != "Alice" {
		t.Errorf("Rows not in insertion order: %v", qr.Rows)
	}
}

func TestEngineSelectWithWhere(t *testing.T) {
	engine, _ := setupTestEngine(t)
	setupUsers(t, engine)

	result := mustExecute(t, engine, "SELECT name FROM users WHERE id = 1")
	qr := result.(QueryResult)
	expected := []core.Row{{"id": core.Number(1), "name": core.String("Alice")}}
	if !reflect.DeepEqual(qr.Rows, expected) {
		t.Errorf("Expected %v, got %v", expected, qr.Rows)
	}
}

func TestEngineSelectWhereIsTypeStrict(t *testing.T) {
	engine, _ := setupTestEngine(t)
	mustExecute(t, engine, "CREATE TABLE codes (code TEXT)")
	mustExecute(t, engine, `INSERT INTO codes (abc)`)

	result := mustExecute(t, engine, "SELECT * FROM codes WHERE code = abc")
	if n := len(result.(QueryResult).Rows); n != 1 {
		t.Errorf("Expected string filter to match, got %d rows", n)
	}

	// "42" is stored as the number 42, so a numeric filter matches it.
	mustExecute(t, engine, `INSERT INTO codes ("42")`)
	result = mustExecute(t, engine, "SELECT * FROM codes WHERE code = 42")
	if n := len(result.(QueryResult).Rows); n != 1 {
		t.Errorf("Expected numeric filter to match, got %d rows", n)
	}

	result = mustExecute(t, engine, "SELECT * FROM codes WHERE missing = abc")
	if n := len(result.(QueryResult).Rows); n != 0 {
		t.Errorf("Expected filter on unknown column to match nothing, got %d rows", n)
	}
}

func TestEngineSelectUnknownTable(t *testing.T) {
	engine, _ := setupTestEngine(t)

	_, err := engine.Execute("SELECT * FROM ghosts")
	var notFound *TableNotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("Expected TableNotFoundError, got %v", err)
	}
}

func TestEngineSelectIsACopy(t *testing.T) {
	engine, _ := setupTestEngine(t)
	setupUsers(t, engine)

	result := mustExecute(t, engine, "SELECT * FROM users")
	result.(QueryResult).Rows[0]["name"] = core.String("Mallory")

	result = mustExecute(t, engine, "SELECT * FROM users WHERE id = 1")
	if name, _ := result.(QueryResult).Rows[0]["name"].Text(); name != "Alice" {
		t.Errorf("Mutating a result changed the table: %s", name)
	}
}

func TestEngineJoin(t *testing.T) {
	engine, _ := setupTestEngine(t)
	mustExecute(t, engine, "CREATE TABLE users (uid INT PRIMARY, dept_id INT)")
	mustExecute(t, engine, "CREATE TABLE depts (id INT PRIMARY, name TEXT)")
	mustExecute(t, engine, "INSERT INTO users (1, 10)")
	mustExecute(t, engine, "INSERT INTO users (2, 20)")
	mustExecute(t, engine, "INSERT INTO users (3, 99)")
	mustExecute(t, engine, `INSERT INTO depts (10, "Eng")`)
	mustExecute(t, engine, `INSERT INTO depts (20, "Ops")`)

	result := mustExecute(t, engine, "SELECT * FROM users JOIN depts ON users.dept_id = depts.id")
	qr := result.(QueryResult)

	expected := []core.Row{
		{"uid": core.Number(1), "dept_id": core.Number(10), "id": core.Number(10), "name": core.String("Eng")},
		{"uid": core.Number(2), "dept_id": core.Number(20), "id": core.Number(20), "name": core.String("Ops")},
	}
	if !reflect.DeepEqual(qr.Rows, expected) {
		t.Errorf("Expected %v, got %v", expected, qr.Rows)
	}
	if !reflect.DeepEqual(qr.Columns, []string{"uid", "dept_id", "id", "name"}) {
		t.Errorf("Unexpected columns %v", qr.Columns)
	}
}

func TestEngineJoinRightOverridesLeft(t *testing.T) {
	engine, _ := setupTestEngine(t)
	mustExecute(t, engine, "CREATE TABLE users (id INT PRIMARY, dept_id INT)")
	mustExecute(t, engine, "CREATE TABLE depts (id INT PRIMARY, name TEXT)")
	mustExecute(t, engine, "INSERT INTO users (1, 10)")
	mustExecute(t, engine, `INSERT INTO depts (10, "Eng")`)

	result := mustExecute(t, engine, "SELECT * FROM users JOIN depts ON users.dept_id = depts.id")
	rows := result.(QueryResult).Rows
	if len(rows) != 1 {
		t.Fatalf("Expected 1 row, got %d", len(rows))
	}
	if id, _ := rows[0]["id"].Float(); id != 10 {
		t.Errorf("Expected right-hand id 10, got %v", rows[0]["id"])
	}
}

func TestEngineJoinFiltersLeftSideFirst(t *testing.T) {
	engine, _ := setupTestEngine(t)
	mustExecute(t, engine, "CREATE TABLE users (uid INT PRIMARY, dept_id INT)")
	mustExecute(t, engine, "CREATE TABLE depts (id INT PRIMARY, name TEXT)")
	mustExecute(t, engine, "INSERT INTO users (1, 10)")
	mustExecute(t, engine, "INSERT INTO users (2, 10)")
	mustExecute(t, engine, `INSERT INTO depts (10, "Eng")`)

	result := mustExecute(t, engine, "SELECT * FROM users JOIN depts ON users.dept_id = depts.id WHERE uid = 2")
	rows := result.(QueryResult).Rows
	if len(rows) != 1 {
		t.Fatalf("Expected 1 row, got %d", len(rows))
	}
	if uid, _ := rows[0]["uid"].Float(); uid != 2 {
		t.Errorf("Expected uid 2, got %v", rows[0]["uid"])
	}
}

func TestEngineJoinUnknownTable(t *testing.T) {
	engine, _ := setupTestEngine(t)
	setupUsers(t, engine)

	_, err := engine.Execute("SELECT * FROM users JOIN ghosts ON users.id = ghosts.id")
	var notFound *TableNotFoundError
	if !errors.As(err, &notFound) || notFound.Table != "ghosts" {
		t.Fatalf("Expected TableNotFoundError for ghosts, got %v", err)
	}
}

func TestEngineUpdate(t *testing.T) {
	engine, _ := setupTestEngine(t)
	setupUsers(t, engine)

	result := mustExecute(t, engine, `UPDATE users SET name = "Carol" WHERE id = 1`)
	if cr := result.(CommitResult); cr.Message != OK || cr.RecordsUpdated != 1 {
		t.Errorf("Unexpected update result: %+v", cr)
	}

	result = mustExecute(t, engine, "SELECT * FROM users WHERE id = 1")
	rows := result.(QueryResult).Rows
	if len(rows) != 1 {
		t.Fatalf("Expected 1 row, got %d", len(rows))
	}
	if name, _ := rows[0]["name"].Text(); name != "Carol" {
		t.Errorf("Expected Carol, got %v", rows[0]["name"])
	}
}

func TestEngineUpdateAllRows(t *testing.T) {
	engine, _ := setupTestEngine(t)
	setupUsers(t, engine)

	result := mustExecute(t, engine, "UPDATE users SET name = nobody")
	if n := result.(CommitResult).RecordsUpdated; n != 2 {
		t.Errorf("Expected 2 rows updated, got %d", n)
	}
}

func TestEngineUpdateNonNumericFilterMatchesNothing(t *testing.T) {
	engine, _ := setupTestEngine(t)
	setupUsers(t, engine)

	result := mustExecute(t, engine, "UPDATE users SET id = 9 WHERE name = Alice")
	if n := result.(CommitResult).RecordsUpdated; n != 0 {
		t.Errorf("Expected NaN filter to match nothing, got %d", n)
	}
}

func TestEngineUpdateUnknownColumn(t *testing.T) {
	engine, _ := setupTestEngine(t)
	setupUsers(t, engine)

	_, err := engine.Execute("UPDATE users SET age = 3")
	var unknown *UnknownColumnError
	if !errors.As(err, &unknown) || unknown.Column != "age" {
		t.Fatalf("Expected UnknownColumnError for age, got %v", err)
	}
}

func TestEngineDelete(t *testing.T) {
	engine, _ := setupTestEngine(t)
	mustExecute(t, engine, "CREATE TABLE users (id INT PRIMARY, name TEXT)")
	mustExecute(t, engine, `INSERT INTO users (1, "Alice")`)

	result := mustExecute(t, engine, "DELETE FROM users WHERE id = 1")
	if n := result.(CommitResult).RecordsDeleted; n != 1 {
		t.Errorf("Expected 1 row deleted, got %d", n)
	}

	table, _ := engine.Table("users")
	if table.Len() != 0 {
		t.Errorf("Expected empty table, got %d rows", table.Len())
	}
}

func TestEngineDeleteAll(t *testing.T) {
	engine, _ := setupTestEngine(t)
	setupUsers(t, engine)

	result := mustExecute(t, engine, "DELETE FROM users")
	if n := result.(CommitResult).RecordsDeleted; n != 2 {
		t.Errorf("Expected 2 rows deleted, got %d", n)
	}
}

func TestEngineStaleIndexAfterDelete(t *testing.T) {
	engine, _ := setupTestEngine(t)
	setupUsers(t, engine)
	mustExecute(t, engine, "DELETE FROM users WHERE id = 1")

	_, err := engine.Execute(`INSERT INTO users (1, "Again")`)
	var duplicate *DuplicateValueError
	if !errors.As(err, &duplicate) {
		t.Fatalf("Expected stale index to reject re-insert, got %v", err)
	}
}

func TestEngineRebuildIndexesAfterDelete(t *testing.T) {
	engine, _ := setupTestEngine(t, WithIndexPolicy(RebuildIndexes{}))
	setupUsers(t, engine)
	mustExecute(t, engine, "DELETE FROM users WHERE id = 1")

	mustExecute(t, engine, `INSERT INTO users (1, "Again")`)
}

func TestEngineRebuildIndexesAfterUpdate(t *testing.T) {
	engine, _ := setupTestEngine(t, WithIndexPolicy(RebuildIndexes{}))
	setupUsers(t, engine)
	mustExecute(t, engine, "UPDATE users SET id = 5 WHERE id = 1")

	mustExecute(t, engine, `INSERT INTO users (1, "Again")`)
	if _, err := engine.Execute(`INSERT INTO users (5, "Clash")`); err == nil {
		t.Error("Expected updated key 5 to be indexed")
	}
}

func TestEngineParseErrorIsNotPersisted(t *testing.T) {
	engine, store := setupTestEngine(t)

	if _, err := engine.Execute("DROP TABLE users"); err == nil {
		t.Fatal("Expected error for unsupported command")
	}
	if store.saves != 0 {
		t.Errorf("Expected no saves, got %d", store.saves)
	}
}

func TestEnginePersistsEveryCommand(t *testing.T) {
	engine, store := setupTestEngine(t)
	setupUsers(t, engine)
	mustExecute(t, engine, "SELECT * FROM users")

	if store.saves != 4 {
		t.Errorf("Expected 4 saves, got %d", store.saves)
	}
}

func TestEngineSkipUnchanged(t *testing.T) {
	engine, store := setupTestEngine(t, WithSkipUnchanged(true))
	setupUsers(t, engine)
	mustExecute(t, engine, "SELECT * FROM users")
	mustExecute(t, engine, "SHOW INDEX FROM users")

	if store.saves != 3 {
		t.Errorf("Expected reads to skip saving, got %d saves", store.saves)
	}
}

func TestEngineSaveFailure(t *testing.T) {
	engine, store := setupTestEngine(t)
	store.saveErr = errors.New("disk full")

	_, err := engine.Execute("CREATE TABLE users (id INT)")
	var storageErr *StorageError
	if !errors.As(err, &storageErr) {
		t.Fatalf("Expected StorageError, got %v", err)
	}
	if storageErr.Op != "save" || !errors.Is(err, store.saveErr) {
		t.Errorf("Unexpected storage error: %v", err)
	}
}

func TestEngineLoadFailure(t *testing.T) {
	store := &memoryStore{loadErr: errors.New("unreachable")}

	_, err := NewEngine(context.Background(), store)
	var storageErr *StorageError
	if !errors.As(err, &storageErr) || storageErr.Op != "load" {
		t.Fatalf("Expected load StorageError, got %v", err)
	}
}

func TestEngineReload(t *testing.T) {
	engine, store := setupTestEngine(t)
	setupUsers(t, engine)
	mustExecute(t, engine, "CREATE TABLE tags (tag TEXT UNIQUE)")

	reloaded, err := NewEngine(context.Background(), store)
	if err != nil {
		t.Fatalf("Failed to reload: %v", err)
	}

	if !reflect.DeepEqual(reloaded.TableNames(), []string{"tags", "users"}) {
		t.Errorf("Unexpected tables %v", reloaded.TableNames())
	}
	if !reflect.DeepEqual(reloaded.Snapshot(), engine.Snapshot()) {
		t.Errorf("Reloaded snapshot differs:\n%v\n%v", reloaded.Snapshot(), engine.Snapshot())
	}

	// Indexes are rebuilt from the loaded rows.
	if _, err := reloaded.Execute(`INSERT INTO users (2, "Dup")`); err == nil {
		t.Error("Expected duplicate after reload")
	}
}

func TestEngineReloadFromGitStore(t *testing.T) {
	ctx := context.Background()
	store, err := ps.NewMemoryGitStore(core.Identity{Name: "test", Email: "test@test.com"})
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}

	engine, err := NewEngine(ctx, store)
	if err != nil {
		t.Fatalf("Failed to create engine: %v", err)
	}
	setupUsers(t, engine)

	reloaded, err := NewEngine(ctx, store)
	if err != nil {
		t.Fatalf("Failed to reload: %v", err)
	}
	if !reflect.DeepEqual(reloaded.Snapshot(), engine.Snapshot()) {
		t.Errorf("Reloaded snapshot differs")
	}

	history, err := store.History(ctx)
	if err != nil {
		t.Fatalf("Failed to read history: %v", err)
	}
	if len(history) != 3 {
		t.Errorf("Expected 3 commits, got %d", len(history))
	}
}

func TestEngineLoadRejectsDuplicateSnapshot(t *testing.T) {
	store := &memoryStore{blob: []byte(`{"users":{"name":"users",` +
		`"columns":[{"name":"id","type":"INT","primary":true,"unique":false}],` +
		`"rows":[{"id":1},{"id":1}]}}`)}

	_, err := NewEngine(context.Background(), store)
	var duplicate *DuplicateValueError
	if !errors.As(err, &duplicate) {
		t.Fatalf("Expected DuplicateValueError, got %v", err)
	}
}

func TestEngineLoadCorruptSnapshot(t *testing.T) {
	store := &memoryStore{blob: []byte("{not json")}

	_, err := NewEngine(context.Background(), store)
	var storageErr *StorageError
	if !errors.As(err, &storageErr) || storageErr.Op != "decode" {
		t.Fatalf("Expected decode StorageError, got %v", err)
	}
}

func TestEngineNonFiniteNumbersRoundTrip(t *testing.T) {
	engine, store := setupTestEngine(t)
	mustExecute(t, engine, "CREATE TABLE t (a INT)")
	mustExecute(t, engine, "INSERT INTO t (Infinity)")
	mustExecute(t, engine, "INSERT INTO t (-Infinity)")

	reloaded, err := NewEngine(context.Background(), store)
	if err != nil {
		t.Fatalf("Failed to reload: %v", err)
	}
	table, _ := reloaded.Table("t")
	rows := table.Rows()
	if len(rows) != 2 {
		t.Fatalf("Expected 2 rows after reload, got %d", len(rows))
	}
	if f, _ := rows[0]["a"].Float(); !math.IsInf(f, 1) {
		t.Errorf("Expected +Inf after reload, got %v", rows[0]["a"])
	}
	if f, _ := rows[1]["a"].Float(); !math.IsInf(f, -1) {
		t.Errorf("Expected -Inf after reload, got %v", rows[1]["a"])
	}
}

func TestEngineNonFiniteUniqueValuesReload(t *testing.T) {
	engine, store := setupTestEngine(t)
	mustExecute(t, engine, "CREATE TABLE t (a INT UNIQUE)")
	mustExecute(t, engine, "INSERT INTO t (Infinity)")
	mustExecute(t, engine, "INSERT INTO t (-Infinity)")

	reloaded, err := NewEngine(context.Background(), store)
	if err != nil {
		t.Fatalf("Failed to reload: %v", err)
	}
	table, _ := reloaded.Table("t")
	if _, ok := table.Lookup("a", core.Number(math.Inf(-1))); !ok {
		t.Error("Expected -Infinity in the index after reload")
	}

	_, err = reloaded.Execute("INSERT INTO t (Infinity)")
	var dup *DuplicateValueError
	if !errors.As(err, &dup) {
		t.Errorf("Expected DuplicateValueError for Infinity after reload, got %v", err)
	}
}

func TestEngineRepeatedColumnNameReload(t *testing.T) {
	engine, store := setupTestEngine(t)
	mustExecute(t, engine, "CREATE TABLE t (a INT, a TEXT)")
	mustExecute(t, engine, "INSERT INTO t (1, x)")

	result := mustExecute(t, engine, "SELECT * FROM t")
	rows := result.(QueryResult).Rows
	if len(rows) != 1 || !rows[0]["a"].Equal(core.String("x")) {
		t.Fatalf("Expected the last position to win, got %v", rows)
	}

	reloaded, err := NewEngine(context.Background(), store)
	if err != nil {
		t.Fatalf("Failed to reload: %v", err)
	}
	table, _ := reloaded.Table("t")
	if len(table.Columns) != 2 {
		t.Errorf("Expected both column definitions to survive, got %v", table.Columns)
	}
	if rows := table.Rows(); len(rows) != 1 || !rows[0]["a"].Equal(core.String("x")) {
		t.Errorf("Unexpected rows after reload: %v", rows)
	}

	mustExecute(t, reloaded, "INSERT INTO t (2, y)")
	if table.Len() != 2 {
		t.Errorf("Expected 2 rows, got %d", table.Len())
	}
}

func TestResultDisplay(t *testing.T) {
	engine, _ := setupTestEngine(t)
	setupUsers(t, engine)

	var buf bytes.Buffer
	mustExecute(t, engine, "SELECT * FROM users").Display(&buf)
	output := buf.String()
	if !strings.Contains(output, "| Alice") || !strings.Contains(output, "2 rows") {
		t.Errorf("Unexpected query output:\n%s", output)
	}

	buf.Reset()
	mustExecute(t, engine, "SHOW INDEX FROM users").Display(&buf)
	if !strings.Contains(buf.String(), "YES") {
		t.Errorf("Unexpected index output:\n%s", buf.String())
	}

	buf.Reset()
	mustExecute(t, engine, `INSERT INTO users (3, "Cy")`).Display(&buf)
	if !strings.HasPrefix(buf.String(), "OK: 1 record(s) written") {
		t.Errorf("Unexpected commit output: %q", buf.String())
	}
}

func TestFormatDuration(t *testing.T) {
	tests := map[float64]string{
		0.0001: "<1ms",
		0.25:   "250ms",
		2.5:    "2.5s",
		42:     "42s",
		120:    "2m",
		125:    "2m5s",
	}
	for secs, expected := range tests {
		if got := formatDuration(secs); got != expected {
			t.Errorf("formatDuration(%v) = %q, want %q", secs, got, expected)
		}
	}
}
