// Package MiniDB provides a small relational engine whose whole state is
// saved as one snapshot after every statement.
//
// # Quick Start
//
// Create an in-memory database:
//
//	store, _ := ps.NewMemoryGitStore(core.Identity{Name: "App", Email: "app@example.com"})
//	engine, _ := MiniDB.Open(store).Engine(ctx)
//
//	engine.Execute("CREATE TABLE users (id INT PRIMARY, name TEXT)")
//	engine.Execute(`INSERT INTO users (1, "Alice")`)
//
//	result, _ := engine.Execute("SELECT * FROM users WHERE id = 1")
//	result.Display(os.Stdout)
//
// Or let the location pick the store:
//
//	instance, _ := MiniDB.OpenLocation(ctx, "sqlite://app.db", ps.Options{})
//
// # Supported SQL
//
// Statements are read by position rather than by a grammar:
//   - CREATE TABLE t (col TYPE [PRIMARY] [UNIQUE], ...)
//   - INSERT INTO t (v1, v2, ...)
//   - SELECT cols FROM t [JOIN u ON t.a = u.b] [WHERE col = v]
//   - UPDATE t SET col = v [WHERE col = v]
//   - DELETE FROM t [WHERE col = v]
//   - SHOW INDEX FROM t
//
// SELECT always returns whole rows. Filters are single equality tests.
package MiniDB
