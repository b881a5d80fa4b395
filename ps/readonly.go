package ps

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

var (
	ErrReadOnly         = errors.New("store is read-only")
	ErrNoHistory        = errors.New("store keeps only the latest snapshot")
	ErrSnapshotNotFound = errors.New("snapshot not found")
)

// ReadOnlyStore serves one fixed snapshot. Saving the same snapshot again is
// accepted so read-only statements succeed; any change fails with ErrReadOnly.
type ReadOnlyStore struct {
	blob     []byte
	checksum string
}

func NewReadOnlyStore(blob []byte) *ReadOnlyStore {
	return &ReadOnlyStore{
		blob:     append([]byte(nil), blob...),
		checksum: Checksum(blob),
	}
}

func (s *ReadOnlyStore) Load(ctx context.Context) ([]byte, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}
	return append([]byte(nil), s.blob...), true, nil
}

func (s *ReadOnlyStore) Save(ctx context.Context, blob []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if Checksum(blob) != s.checksum {
		return ErrReadOnly
	}
	return nil
}

// At opens the snapshot saved by transaction id as a read-only store. The id
// may be any unique prefix of a transaction id listed by History.
func At(ctx context.Context, store Store, id string) (*ReadOnlyStore, Transaction, error) {
	historian, ok := store.(Historian)
	if !ok {
		return nil, Transaction{}, ErrNoHistory
	}

	txn, err := resolveTransaction(ctx, historian, id)
	if err != nil {
		return nil, Transaction{}, err
	}

	blob, found, err := historian.LoadAt(ctx, txn.Id)
	if err != nil {
		return nil, Transaction{}, err
	}
	if !found {
		return nil, Transaction{}, fmt.Errorf("%s: %w", txn.Id, ErrSnapshotNotFound)
	}

	return NewReadOnlyStore(blob), txn, nil
}

func resolveTransaction(ctx context.Context, historian Historian, id string) (Transaction, error) {
	id = strings.ToLower(strings.TrimSpace(id))
	if id == "" {
		return Transaction{}, errors.New("empty snapshot id")
	}

	transactions, err := historian.History(ctx)
	if err != nil {
		return Transaction{}, err
	}

	var matches []Transaction
	for _, txn := range transactions {
		if txn.Id == id {
			return txn, nil
		}
		if strings.HasPrefix(txn.Id, id) {
			matches = append(matches, txn)
		}
	}

	switch len(matches) {
	case 0:
		return Transaction{}, fmt.Errorf("%s: %w", id, ErrSnapshotNotFound)
	case 1:
		return matches[0], nil
	default:
		return Transaction{}, fmt.Errorf("snapshot id %s is ambiguous: %d matches", id, len(matches))
	}
}
