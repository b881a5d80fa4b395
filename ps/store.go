package ps

import (
	"context"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/zeebo/blake3"

	"github.com/nickyhof/MiniDB/core"
)

// Store loads and saves the snapshot blob of a database. Load reports
// found=false when nothing has been saved yet.
type Store interface {
	Load(ctx context.Context) (blob []byte, found bool, err error)
	Save(ctx context.Context, blob []byte) error
}

// Historian is implemented by stores that keep every saved snapshot.
// LoadAt reads the snapshot saved by the transaction with the given id.
type Historian interface {
	History(ctx context.Context) ([]Transaction, error)
	LoadAt(ctx context.Context, id string) (blob []byte, found bool, err error)
}

// Options configures the store chosen by Open.
type Options struct {
	Identity core.Identity // Git commit author
	S3       S3Config
}

// Checksum returns the hex BLAKE3 digest of a blob.
func Checksum(blob []byte) string {
	sum := blake3.Sum256(blob)
	return hex.EncodeToString(sum[:])
}

// urlScheme represents the scheme of a store location
type urlScheme string

const (
	schemeMemory urlScheme = "mem"
	schemeGit    urlScheme = "git"
	schemeS3     urlScheme = "s3"
	schemeSQLite urlScheme = "sqlite"
	schemeFile   urlScheme = "file"
	schemeLocal  urlScheme = "local" // no scheme, local path
)

// detectScheme detects the scheme from a location string
func detectScheme(location string) urlScheme {
	lower := strings.ToLower(location)
	switch {
	case location == "" || strings.HasPrefix(lower, "mem://"):
		return schemeMemory
	case strings.HasPrefix(lower, "git://"):
		return schemeGit
	case strings.HasPrefix(lower, "s3://"):
		return schemeS3
	case strings.HasPrefix(lower, "sqlite://"):
		return schemeSQLite
	case strings.HasPrefix(lower, "file://"):
		return schemeFile
	default:
		return schemeLocal
	}
}

// Open returns the store for a location:
//
//	""  or mem://        in-memory Git repository
//	git://<dir>          Git repository on disk
//	s3://<bucket>/<key>  S3 object
//	sqlite://<path>      SQLite database file
//	file://<path>        single file (xz compressed when the path ends in .xz)
//	<path>               same as file://
func Open(ctx context.Context, location string, opts Options) (Store, error) {
	switch detectScheme(location) {
	case schemeMemory:
		return NewMemoryGitStore(opts.Identity)
	case schemeGit:
		return NewFileGitStore(location[len("git://"):], opts.Identity)
	case schemeS3:
		return NewS3Store(ctx, location, opts.S3)
	case schemeSQLite:
		return NewSQLiteStore(ctx, location[len("sqlite://"):])
	case schemeFile:
		return NewFileStore(location[len("file://"):]), nil
	case schemeLocal:
		return NewFileStore(location), nil
	default:
		return nil, fmt.Errorf("unsupported store location: %s", location)
	}
}
