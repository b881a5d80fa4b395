package ps

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-git/go-git/v6"
	"github.com/go-git/go-git/v6/plumbing"
	"github.com/go-git/go-git/v6/plumbing/object"
	"github.com/go-git/go-git/v6/plumbing/storer"
)

// Transaction identifies one saved snapshot.
type Transaction struct {
	Id      string
	When    time.Time
	Author  string // "Name <email>" format
	Message string
}

func (transaction Transaction) String() string {
	return fmt.Sprintf("Transaction{Id: %s, When: %s, Author: %s}", transaction.Id, transaction.When, transaction.Author)
}

func newTransaction(hash plumbing.Hash, sig object.Signature, message string) Transaction {
	author := ""
	if sig.Name != "" || sig.Email != "" {
		author = fmt.Sprintf("%s <%s>", sig.Name, sig.Email)
	}

	return Transaction{
		Id:      hash.String(),
		When:    sig.When,
		Author:  author,
		Message: strings.TrimSpace(message),
	}
}

// LatestTransaction returns the HEAD commit, or the zero Transaction before
// anything was saved.
func (s *GitStore) LatestTransaction() Transaction {
	if err := s.ensureInitialized(); err != nil {
		return Transaction{}
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	headRef, err := s.repo.Head()
	if err != nil || headRef == nil {
		return Transaction{}
	}

	commit, err := s.repo.CommitObject(headRef.Hash())
	if err != nil {
		return Transaction{}
	}

	return newTransaction(commit.Hash, commit.Committer, commit.Message)
}

// History lists every saved snapshot, newest first.
func (s *GitStore) History(ctx context.Context) ([]Transaction, error) {
	if err := s.ensureInitialized(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	headRef, err := s.repo.Head()
	if err != nil {
		if errors.Is(err, plumbing.ErrReferenceNotFound) {
			return nil, nil
		}
		return nil, err
	}

	cIter, err := s.repo.Log(&git.LogOptions{From: headRef.Hash()})
	if err != nil {
		return nil, fmt.Errorf("failed to read log: %w", err)
	}
	defer cIter.Close()

	var transactions []Transaction
	err = cIter.ForEach(func(c *object.Commit) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		transactions = append(transactions, newTransaction(c.Hash, c.Committer, c.Message))
		return nil
	})
	if err != nil && !errors.Is(err, storer.ErrStop) {
		return nil, err
	}

	return transactions, nil
}

// LoadAt reads the snapshot saved by the given commit.
func (s *GitStore) LoadAt(ctx context.Context, id string) ([]byte, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}
	if err := s.ensureInitialized(); err != nil {
		return nil, false, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	hash := plumbing.NewHash(id)
	if hash.IsZero() {
		return nil, false, fmt.Errorf("invalid commit id: %s", id)
	}

	return s.readSnapshotAt(hash)
}
