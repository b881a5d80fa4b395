package ps

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sync"

	"github.com/go-git/go-billy/v6/memfs"
	"github.com/go-git/go-billy/v6/osfs"
	"github.com/go-git/go-git/v6"
	"github.com/go-git/go-git/v6/plumbing"
	"github.com/go-git/go-git/v6/plumbing/cache"
	"github.com/go-git/go-git/v6/plumbing/object"
	"github.com/go-git/go-git/v6/storage/filesystem"
	"github.com/go-git/go-git/v6/storage/memory"

	"github.com/nickyhof/MiniDB/core"
)

// SnapshotPath is where the snapshot lives inside every commit tree.
const SnapshotPath = "snapshot.json"

var ErrNotInitialized = errors.New("git store not initialized")

// GitStore commits every saved snapshot to a Git repository, so the full
// history of the database can be listed and read back.
type GitStore struct {
	repo         *git.Repository
	identity     core.Identity
	isMemoryMode bool
	mu           sync.RWMutex
}

func NewMemoryGitStore(identity core.Identity) (*GitStore, error) {
	wt := memfs.New()
	storer := memory.NewStorage()

	repo, err := git.Init(storer, git.WithWorkTree(wt))
	if err != nil {
		return nil, err
	}

	return &GitStore{
		repo:         repo,
		identity:     withDefaultIdentity(identity),
		isMemoryMode: true,
	}, nil
}

// NewFileGitStore opens the repository in baseDir, initializing it when the
// directory holds no .git yet. The worktree is kept in sync so the latest
// snapshot can be read from disk.
func NewFileGitStore(baseDir string, identity core.Identity) (*GitStore, error) {
	if baseDir == "" {
		return nil, fmt.Errorf("git store needs a directory")
	}
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, err
	}

	wt := osfs.New(baseDir)
	fs, err := wt.Chroot(".git")
	if err != nil {
		return nil, err
	}

	storer := filesystem.NewStorageWithOptions(
		fs,
		cache.NewObjectLRUDefault(),
		filesystem.Options{ExclusiveAccess: true})

	var repo *git.Repository
	if _, statErr := os.Stat(fs.Root()); statErr != nil {
		repo, err = git.Init(storer, git.WithWorkTree(wt))
	} else {
		repo, err = git.Open(storer, wt)
	}
	if err != nil {
		return nil, err
	}

	return &GitStore{
		repo:     repo,
		identity: withDefaultIdentity(identity),
	}, nil
}

func withDefaultIdentity(identity core.Identity) core.Identity {
	if identity.Name == "" {
		identity.Name = "minidb"
	}
	if identity.Email == "" {
		identity.Email = "minidb@localhost"
	}
	return identity
}

func (s *GitStore) ensureInitialized() error {
	if s == nil || s.repo == nil {
		return ErrNotInitialized
	}
	return nil
}

// Load reads the snapshot from the HEAD commit. A repository without commits
// reports found=false.
func (s *GitStore) Load(ctx context.Context) ([]byte, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}
	if err := s.ensureInitialized(); err != nil {
		return nil, false, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	headRef, err := s.repo.Head()
	if err != nil {
		if errors.Is(err, plumbing.ErrReferenceNotFound) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to resolve HEAD: %w", err)
	}

	return s.readSnapshotAt(headRef.Hash())
}

// Save commits blob as the new snapshot on top of HEAD.
func (s *GitStore) Save(ctx context.Context, blob []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.ensureInitialized(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	currentTree, err := s.getCurrentTree()
	if err != nil {
		return err
	}

	blobHash, err := s.createBlob(blob)
	if err != nil {
		return fmt.Errorf("failed to create blob: %w", err)
	}

	newTree, err := s.setTreeEntry(currentTree, SnapshotPath, blobHash)
	if err != nil {
		return fmt.Errorf("failed to update tree: %w", err)
	}

	txn, err := s.createCommitDirect(newTree, "Saving snapshot")
	if err != nil {
		return err
	}

	if err := s.syncWorktree(); err != nil {
		return fmt.Errorf("failed to sync worktree: %w", err)
	}

	slog.Debug("snapshot committed", "commit", txn.Id, "bytes", len(blob))
	return nil
}

func (s *GitStore) readSnapshotAt(commitHash plumbing.Hash) ([]byte, bool, error) {
	commit, err := s.repo.CommitObject(commitHash)
	if err != nil {
		return nil, false, fmt.Errorf("failed to get commit: %w", err)
	}

	tree, err := commit.Tree()
	if err != nil {
		return nil, false, fmt.Errorf("failed to get tree: %w", err)
	}

	file, err := tree.File(SnapshotPath)
	if err != nil {
		if errors.Is(err, object.ErrFileNotFound) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to find snapshot: %w", err)
	}

	content, err := file.Contents()
	if err != nil {
		return nil, false, fmt.Errorf("failed to read contents: %w", err)
	}

	return []byte(content), true, nil
}
