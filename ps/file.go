package ps

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/ulikunitz/xz"
)

// FileStore keeps the snapshot in one local file. Paths ending in .xz are
// compressed with xz.
type FileStore struct {
	path     string
	compress bool
}

func NewFileStore(path string) *FileStore {
	return &FileStore{
		path:     path,
		compress: strings.HasSuffix(path, ".xz"),
	}
}

func (s *FileStore) Path() string {
	return s.path
}

func (s *FileStore) Load(ctx context.Context) ([]byte, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}

	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	if !s.compress {
		return data, true, nil
	}

	reader, err := xz.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, false, fmt.Errorf("failed to open xz stream: %w", err)
	}
	blob, err := io.ReadAll(reader)
	if err != nil {
		return nil, false, fmt.Errorf("failed to decompress snapshot: %w", err)
	}

	return blob, true, nil
}

// Save writes to a temporary file in the same directory and renames it over
// the target, so readers never see a partial snapshot.
func (s *FileStore) Save(ctx context.Context, blob []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".snapshot-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if err := s.write(tmp, blob); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}

	return os.Rename(tmp.Name(), s.path)
}

func (s *FileStore) write(w io.Writer, blob []byte) error {
	if !s.compress {
		_, err := w.Write(blob)
		return err
	}

	xw, err := xz.NewWriter(w)
	if err != nil {
		return fmt.Errorf("failed to create xz writer: %w", err)
	}
	if _, err := xw.Write(blob); err != nil {
		xw.Close()
		return err
	}
	return xw.Close()
}
