// Package store persists build result snapshots.
//
// Snapshots are stored as JSON in a BoltDB bucket keyed by the result
// identity, so inspecting the same project again replaces its entry. Each
// entry carries a SHA256 digest of the compiler invocation, which lets callers
// tell whether a project's invocation changed since it was last inspected.
package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"go.etcd.io/bbolt"

	"github.com/Norgate-AV/buildprobe/internal/build"
)

const (
	// DefaultStoreDir is the default store directory name
	DefaultStoreDir = ".buildprobe-store"

	// bucketName is the BoltDB bucket name for snapshots
	bucketName = "results"

	dbFile = "results.db"
)

// Store manages build result snapshots using BoltDB
type Store struct {
	db   *bbolt.DB
	root string
	now  func() time.Time
}

// Open opens the store in dir, creating it if needed.
// If dir is empty, uses DefaultStoreDir in the current working directory
func Open(dir string) (*Store, error) {
	if dir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get working directory: %w", err)
		}

		dir = filepath.Join(cwd, DefaultStoreDir)
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create store directory: %w", err)
	}

	db, err := bbolt.Open(filepath.Join(dir, dbFile), 0o600, &bbolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open store database: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucketName))
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create store bucket: %w", err)
	}

	return &Store{
		db:   db,
		root: dir,
		now:  time.Now,
	}, nil
}

// Close closes the store database
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}

	return nil
}

// Dir returns the store directory
func (s *Store) Dir() string {
	return s.root
}

// Put saves a snapshot, setting its digest and timestamp
func (s *Store) Put(snapshot *build.Snapshot) error {
	if snapshot.ID == "" {
		return fmt.Errorf("snapshot has no id")
	}

	snapshot.InvocationDigest = Digest(snapshot.Invocation)
	snapshot.Timestamp = s.now()

	data, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}

	err = s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket([]byte(bucketName)).Put([]byte(snapshot.ID), data)
	})
	if err != nil {
		return fmt.Errorf("failed to store snapshot: %w", err)
	}

	return nil
}

// Get retrieves a snapshot by id.
// Returns nil if there is no snapshot for id
func (s *Store) Get(id string) (*build.Snapshot, error) {
	var snapshot *build.Snapshot
	err := s.db.View(func(tx *bbolt.Tx) error {
		data := tx.Bucket([]byte(bucketName)).Get([]byte(id))
		if data == nil {
			return nil
		}

		snapshot = &build.Snapshot{}
		return json.Unmarshal(data, snapshot)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot %s: %w", id, err)
	}

	return snapshot, nil
}

// Changed reports whether the invocation of snapshot differs from the stored one.
// A snapshot that was never stored counts as changed
func (s *Store) Changed(snapshot *build.Snapshot) (bool, error) {
	stored, err := s.Get(snapshot.ID)
	if err != nil {
		return false, err
	}

	if stored == nil {
		return true, nil
	}

	return stored.InvocationDigest != Digest(snapshot.Invocation), nil
}

// List returns all snapshots sorted by project path
func (s *Store) List() ([]*build.Snapshot, error) {
	var snapshots []*build.Snapshot
	err := s.db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket([]byte(bucketName)).ForEach(func(k, v []byte) error {
			var snapshot build.Snapshot
			if err := json.Unmarshal(v, &snapshot); err != nil {
				return fmt.Errorf("snapshot %s: %w", k, err)
			}

			snapshots = append(snapshots, &snapshot)
			return nil
		})
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list snapshots: %w", err)
	}

	sort.Slice(snapshots, func(i, j int) bool {
		return snapshots[i].ProjectFilePath < snapshots[j].ProjectFilePath
	})

	return snapshots, nil
}

// Delete removes the snapshot for id. Deleting a missing id is not an error
func (s *Store) Delete(id string) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket([]byte(bucketName)).Delete([]byte(id))
	})
}

// Clear removes all snapshots
func (s *Store) Clear() error {
	err := s.db.Update(func(tx *bbolt.Tx) error {
		if err := tx.DeleteBucket([]byte(bucketName)); err != nil {
			return err
		}

		_, err := tx.CreateBucket([]byte(bucketName))
		return err
	})
	if err != nil {
		return fmt.Errorf("failed to clear store: %w", err)
	}

	return nil
}

// Stats returns the number of snapshots and their total encoded size
func (s *Store) Stats() (int, int64, error) {
	var count int
	var totalSize int64

	err := s.db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket([]byte(bucketName)).ForEach(func(_, v []byte) error {
			count++
			totalSize += int64(len(v))
			return nil
		})
	})
	if err != nil {
		return 0, 0, err
	}

	return count, totalSize, nil
}
