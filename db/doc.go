// Package db provides the table storage and query execution engine for MiniDB.
//
// The Engine type is the main entry point. It owns every table, executes
// parsed commands against them and hands a full snapshot to its store after
// each successful command.
//
// # Engine Usage
//
//	store, _ := ps.NewMemoryGitStore(identity)
//	engine, err := db.NewEngine(ctx, store)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	result, err := engine.Execute("SELECT * FROM users WHERE id = 1")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	result.Display(os.Stdout)
//
// # Result Types
//
// There are three result types:
//   - QueryResult: Returned by SELECT
//   - IndexResult: Returned by SHOW INDEX
//   - CommitResult: Returned by CREATE TABLE, INSERT, UPDATE, DELETE
//
// # Indexes
//
// Primary and unique columns get a value-to-row index that rejects
// duplicate inserts. UPDATE and DELETE do not maintain indexes unless the
// engine is configured with the RebuildIndexes policy.
//
// An Engine is not safe for concurrent use.
package db
