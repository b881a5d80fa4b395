package ps

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

var ErrChecksumMismatch = errors.New("snapshot checksum mismatch")

const createSnapshotsTable = `CREATE TABLE IF NOT EXISTS snapshots (
	seq        INTEGER PRIMARY KEY AUTOINCREMENT,
	id         TEXT NOT NULL UNIQUE,
	created_at TEXT NOT NULL,
	checksum   TEXT NOT NULL,
	data       BLOB NOT NULL
)`

// SQLiteStore appends every saved snapshot as a row of a SQLite table. The
// newest row is the current snapshot.
type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(ctx context.Context, path string) (*SQLiteStore, error) {
	if path == "" {
		return nil, fmt.Errorf("sqlite store needs a path")
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, createSnapshotsTable); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create snapshots table: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Load(ctx context.Context) ([]byte, bool, error) {
	var id, checksum string
	var blob []byte

	err := s.db.QueryRowContext(ctx,
		`SELECT id, checksum, data FROM snapshots ORDER BY seq DESC LIMIT 1`,
	).Scan(&id, &checksum, &blob)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read snapshot: %w", err)
	}

	if Checksum(blob) != checksum {
		return nil, false, fmt.Errorf("snapshot %s: %w", id, ErrChecksumMismatch)
	}

	return blob, true, nil
}

func (s *SQLiteStore) Save(ctx context.Context, blob []byte) error {
	id := uuid.NewString()

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO snapshots (id, created_at, checksum, data) VALUES (?, ?, ?, ?)`,
		id, time.Now().UTC().Format(time.RFC3339Nano), Checksum(blob), blob,
	)
	if err != nil {
		return fmt.Errorf("failed to insert snapshot: %w", err)
	}

	slog.Debug("snapshot stored", "id", id, "bytes", len(blob))
	return nil
}

// History lists every stored snapshot, newest first.
func (s *SQLiteStore) History(ctx context.Context) ([]Transaction, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, created_at, checksum FROM snapshots ORDER BY seq DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list snapshots: %w", err)
	}
	defer rows.Close()

	var transactions []Transaction
	for rows.Next() {
		var id, createdAt, checksum string
		if err := rows.Scan(&id, &createdAt, &checksum); err != nil {
			return nil, err
		}

		when, err := time.Parse(time.RFC3339Nano, createdAt)
		if err != nil {
			return nil, fmt.Errorf("snapshot %s has bad timestamp: %w", id, err)
		}

		transactions = append(transactions, Transaction{
			Id:      id,
			When:    when,
			Message: "blake3 " + checksum,
		})
	}

	return transactions, rows.Err()
}

// LoadAt reads the snapshot stored under id.
func (s *SQLiteStore) LoadAt(ctx context.Context, id string) ([]byte, bool, error) {
	var checksum string
	var blob []byte

	err := s.db.QueryRowContext(ctx,
		`SELECT checksum, data FROM snapshots WHERE id = ?`, id,
	).Scan(&checksum, &blob)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read snapshot: %w", err)
	}

	if Checksum(blob) != checksum {
		return nil, false, fmt.Errorf("snapshot %s: %w", id, ErrChecksumMismatch)
	}

	return blob, true, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
