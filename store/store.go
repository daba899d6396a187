// Package store persists chunked arrays to a directory-based partitioned
// store.
//
// Layout on disk:
//
//	root/
//	  train/
//	    X/  meta.json  chunk-000000  chunk-000001  ...
//	    y/  meta.json  chunk-000000  ...
//	  test/
//	    X/  ...
//	    y/  ...
//
// Each chunk file holds one block, zstd-compressed. meta.json is written
// after every chunk so a reader never sees a metadata file for a
// half-written array.
//
// Lifecycle: Create lays out the groups, WriteArray populates them, Close
// releases the writer, Open reopens read-only. The store assumes a single
// writer per path; any number of readers may open it after Close.
package store

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/rs/zerolog"

	"github.com/ChadGueli/bigboost/pkg/errors"
	"github.com/ChadGueli/bigboost/pkg/log"
)

// Names of the groups and arrays in the train/test layout.
const (
	GroupTrain = "train"
	GroupTest  = "test"

	ArrayX = "X"
	ArrayY = "y"
)

const metaFile = "meta.json"

// Store is a handle on a partitioned store rooted at a directory. A Store
// is either a writer (from Create) or read-only (from Open).
type Store struct {
	path     string
	readonly bool
	logger   zerolog.Logger

	mu     sync.Mutex
	closed bool
}

// Create initializes a store with the standard train/test groups and
// returns a writable handle.
func Create(path string) (*Store, error) {
	return CreateGroups(path, GroupTrain, GroupTest)
}

// CreateGroups initializes a store with the given groups.
func CreateGroups(path string, groups ...string) (*Store, error) {
	if path == "" {
		return nil, errors.NewConfigError("path", "must not be empty", path)
	}
	if len(groups) == 0 {
		return nil, errors.NewConfigError("groups", "at least one group is required", groups)
	}

	if err := os.MkdirAll(path, 0o750); err != nil {
		return nil, errors.Wrapf(err, "creating store root %s", path)
	}
	for _, g := range groups {
		if g == "" {
			return nil, errors.NewConfigError("groups", "group name must not be empty", g)
		}
		if err := os.MkdirAll(filepath.Join(path, g), 0o750); err != nil {
			return nil, errors.Wrapf(err, "creating group %s", g)
		}
	}

	s := &Store{path: path, logger: log.GetLoggerWithName("store")}
	s.logger.Info().Str("path", path).Strs("groups", groups).Msg("store created")
	return s, nil
}

// Open reopens an existing store read-only. Reopening is idempotent; any
// number of readers may hold the same path once the writer has closed.
func Open(path string) (*Store, error) {
	info, err := os.Stat(path)
	if err != nil || !info.IsDir() {
		return nil, errors.NewNotFoundError(path, "", "")
	}
	return &Store{path: path, readonly: true, logger: log.GetLoggerWithName("store")}, nil
}

// Path returns the store's root directory.
func (s *Store) Path() string { return s.path }

// Close releases the handle. For a writer it flushes the root directory so
// that readers opened afterwards observe the full layout; every write after
// Close fails. Close is idempotent.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true

	if s.readonly {
		return nil
	}
	dir, err := os.Open(s.path)
	if err != nil {
		return errors.Wrapf(err, "closing store %s", s.path)
	}
	defer dir.Close()
	if err := dir.Sync(); err != nil {
		return errors.Wrapf(err, "syncing store %s", s.path)
	}
	return nil
}

// writable reports an error unless the store accepts writes.
func (s *Store) writable() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return errors.ErrStoreClosed
	}
	if s.readonly {
		return errors.NewValueError("store", "opened read-only")
	}
	return nil
}
