// Package ps provides the snapshot stores behind a MiniDB database.
//
// A store holds one opaque blob, the encoded snapshot of every table, and
// hands it back on the next start. Every successful statement replaces it.
//
// # Git
//
// GitStore commits each snapshot as snapshot.json, so earlier states can be
// listed with History and read back with LoadAt:
//
//	store, err := ps.NewMemoryGitStore(core.Identity{Name: "me", Email: "me@example.com"})
//	store, err := ps.NewFileGitStore("/path/to/repo", identity)
//
// At wraps one of those earlier snapshots in a ReadOnlyStore, which an engine
// can load and query without changing history. SQLiteStore keeps history too.
//
// # Other backends
//
//	ps.NewFileStore("db.json")          // plain file, atomic replace
//	ps.NewFileStore("db.json.xz")       // xz compressed file
//	ps.NewSQLiteStore(ctx, "db.sqlite") // append-only snapshots table
//	ps.NewS3Store(ctx, "s3://bucket/key", ps.S3Config{Region: "eu-west-1"})
//
// Open picks one of these from a location string.
package ps
