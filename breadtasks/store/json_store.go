package store

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/breadtasks/breadtasks/breadtasks/migration"
	"github.com/breadtasks/breadtasks/breadtasks/storage"
	"github.com/breadtasks/breadtasks/types"
)

// backupTimeLayout names the copies of unreadable data files
const backupTimeLayout = "20060102-150405"

// jsonFileStore implements the Store and TestStore interfaces using a JSON file backend
type jsonFileStore struct {
	filePath    string
	lockManager *storage.LockManager
	migrator    *migration.API
	logger      log.FieldLogger

	// File system abstractions
	fs          FileSystem
	lockFactory FileLockFactory
	fileLock    FileLock

	state   *storage.StateFile
	loadErr error

	// timeFunc is used to get the current time, defaults to time.Now
	timeFunc func() time.Time
}

// newJSONFileStore creates a new JSON file store
func newJSONFileStore(filePath string, opts ...JSONFileStoreOption) (*jsonFileStore, error) {
	store := &jsonFileStore{
		filePath:    filePath,
		lockManager: storage.NewLockManager(),
		timeFunc:    time.Now,
		state:       storage.DefaultState(),
	}

	for _, opt := range opts {
		opt(store)
	}

	if store.fs == nil {
		store.fs = &OSFileSystem{}
	}
	if store.lockFactory == nil {
		store.lockFactory = &FlockFactory{}
	}
	if store.logger == nil {
		store.logger = log.StandardLogger()
	}
	store.logger = store.logger.WithField("file", filePath)
	store.migrator = migration.NewAPI().WithClock(func() time.Time { return store.timeFunc() })

	if err := store.fs.MkdirAll(filepath.Dir(filePath), 0755); err != nil {
		return nil, &types.PersistError{Op: "load", Path: filePath, Err: err}
	}

	store.fileLock = store.lockFactory.New(filePath + ".lock")

	if err := store.loadWithLock(); err != nil {
		return nil, err
	}

	return store, nil
}

// SetTimeFunc sets a custom time function for testing
func (s *jsonFileStore) SetTimeFunc(fn func() time.Time) {
	_ = s.lockManager.Execute(storage.WriteOperation, func() error {
		s.timeFunc = fn
		return nil
	})
}

// Constants for file locking
const (
	lockTimeout    = 3 * time.Second
	lockMaxRetries = 3
	lockRetryDelay = 100 * time.Millisecond
)

// acquireLock attempts to acquire an exclusive file lock with retry logic
func (s *jsonFileStore) acquireLock(ctx context.Context) error {
	for i := 0; i < lockMaxRetries; i++ {
		locked, err := s.fileLock.TryLockContext(ctx, lockRetryDelay)
		if err != nil {
			return &types.PersistError{Op: "lock", Path: s.filePath, Err: err}
		}
		if locked {
			return nil
		}

		select {
		case <-ctx.Done():
			return &types.PersistError{Op: "lock", Path: s.filePath, Err: ctx.Err()}
		case <-time.After(lockRetryDelay):
		}
	}

	return &types.PersistError{
		Op:   "lock",
		Path: s.filePath,
		Err:  fmt.Errorf("failed to acquire lock after %d attempts", lockMaxRetries),
	}
}

// withFileLock runs fn while holding the data file lock
func (s *jsonFileStore) withFileLock(fn func() error) error {
	ctx, cancel := context.WithTimeout(context.Background(), lockTimeout)
	defer cancel()

	if err := s.acquireLock(ctx); err != nil {
		return err
	}
	defer func() { _ = s.fileLock.Unlock() }()

	return fn()
}

// loadWithLock loads the data file and writes it back when loading had
// to change anything: a missing file, a migration, or a recovery
func (s *jsonFileStore) loadWithLock() error {
	return s.withFileLock(func() error {
		needsSave, err := s.load()
		if err != nil {
			return err
		}
		if needsSave {
			return s.save()
		}
		return nil
	})
}

// load reads, migrates and validates the data file. Failures other than
// a missing file are recovered from by moving the file aside and starting
// from the default state.
func (s *jsonFileStore) load() (bool, error) {
	data, err := s.fs.ReadFile(s.filePath)
	if errors.Is(err, os.ErrNotExist) {
		s.logger.Info("data file not found, starting with default state")
		s.state = storage.DefaultState()
		return true, nil
	}
	if err != nil {
		return s.recover(&types.PersistError{Op: "load", Path: s.filePath, Err: err})
	}

	if len(bytes.TrimSpace(data)) == 0 {
		s.logger.Warn("data file is empty, starting with default state")
		s.state = storage.DefaultState()
		return true, nil
	}

	raw, err := storage.Decode(data)
	if err != nil {
		return s.recover(err)
	}

	state, result, err := s.migrator.Migrate(raw, migration.Options{})
	if err != nil {
		return s.recover(err)
	}
	if err := storage.Validate(state); err != nil {
		return s.recover(err)
	}

	if result.Changed() {
		for _, msg := range result.Messages {
			if msg.Level >= migration.LevelWarning {
				s.logger.Warn(msg.Text)
			} else {
				s.logger.Debug(msg.Text)
			}
		}
		s.logger.WithFields(log.Fields{
			"modified": result.Stats.ModifiedTasks,
			"changes":  result.Stats.StateChanges,
			"dropped":  result.Stats.DroppedTasks,
		}).Info("migrated data file")
	}

	s.state = state
	return result.Changed(), nil
}

// recover moves the unreadable data file aside and resets to the default
// state. cause is kept for LoadError.
func (s *jsonFileStore) recover(cause error) (bool, error) {
	backup := s.filePath + ".corrupt-" + s.timeFunc().Format(backupTimeLayout)
	logger := s.logger.WithError(cause)

	if err := s.fs.Rename(s.filePath, backup); err != nil {
		logger.WithField("backup", backup).Warnf("could not preserve unreadable data file: %v", err)
	} else {
		logger = logger.WithField("backup", backup)
	}
	logger.Warn("data file could not be loaded, starting with default state")

	s.loadErr = cause
	s.state = storage.DefaultState()
	return true, nil
}

// saveWithLock saves the data with proper locking
func (s *jsonFileStore) saveWithLock() error {
	return s.withFileLock(s.save)
}

// save writes the in-memory state to the data file through a uniquely
// named temp file, so a crash leaves either the old or the new file
func (s *jsonFileStore) save() error {
	data, err := storage.Encode(s.state, s.timeFunc())
	if err != nil {
		return &types.PersistError{Op: "save", Path: s.filePath, Err: err}
	}

	tmpFile := fmt.Sprintf("%s.%s.tmp", s.filePath, uuid.New().String())
	if err := s.fs.WriteFile(tmpFile, data, 0644); err != nil {
		return &types.PersistError{Op: "save", Path: s.filePath, Err: fmt.Errorf("failed to write temp file: %w", err)}
	}

	if err := s.fs.Rename(tmpFile, s.filePath); err != nil {
		_ = s.fs.Remove(tmpFile)
		return &types.PersistError{Op: "save", Path: s.filePath, Err: fmt.Errorf("failed to rename file: %w", err)}
	}

	s.logger.WithField("tasks", len(s.state.Tasks)).Debug("saved data file")
	return nil
}

// mutate applies fn to the state under the write lock and persists the
// result when fn reports a change. On any error the state is restored.
func (s *jsonFileStore) mutate(fn func(state *storage.StateFile, now time.Time) (bool, error)) error {
	return s.lockManager.Execute(storage.WriteOperation, func() error {
		before := s.state.Clone()

		changed, err := fn(s.state, s.timeFunc())
		if err != nil {
			s.state = before
			return err
		}
		if !changed {
			return nil
		}

		if err := s.saveWithLock(); err != nil {
			s.state = before
			return err
		}
		return nil
	})
}

// read runs fn under the read lock
func (s *jsonFileStore) read(fn func(state *storage.StateFile)) {
	_ = s.lockManager.Execute(storage.ReadOperation, func() error {
		fn(s.state)
		return nil
	})
}

// Snapshot implements Store.Snapshot
func (s *jsonFileStore) Snapshot() *storage.StateFile {
	snapshot, _ := storage.ExecuteWithResult(s.lockManager, storage.ReadOperation, func() (*storage.StateFile, error) {
		return s.state.Clone(), nil
	})
	return snapshot
}

// LoadError implements Store.LoadError
func (s *jsonFileStore) LoadError() error {
	return s.loadErr
}

// Path implements Store.Path
func (s *jsonFileStore) Path() string {
	return s.filePath
}

// Close releases any resources
func (s *jsonFileStore) Close() error {
	return s.lockManager.Execute(storage.WriteOperation, func() error {
		// Data is saved on each operation; only the lock file is left over
		_ = s.fs.Remove(s.filePath + ".lock")
		return nil
	})
}
