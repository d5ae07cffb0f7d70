package store

import (
	"context"
	"sync"
	"time"
)

// MockFileLock is an in-process FileLock. Held counts acquisitions minus
// releases, so a balanced store leaves it at zero.
type MockFileLock struct {
	mu   sync.Mutex
	held int

	// Err, when set, fails every acquisition
	Err error

	Acquired int
	Released int
}

// TryLockContext implements FileLock.TryLockContext. The lock is not
// reentrant: a second acquisition while held reports false.
func (m *MockFileLock) TryLockContext(_ context.Context, _ time.Duration) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.Err != nil {
		return false, m.Err
	}
	if m.held > 0 {
		return false, nil
	}
	m.held++
	m.Acquired++
	return true, nil
}

// Unlock implements FileLock.Unlock
func (m *MockFileLock) Unlock() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.held > 0 {
		m.held--
	}
	m.Released++
	return nil
}

// Held reports whether the lock is currently taken
func (m *MockFileLock) Held() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.held > 0
}

// MockFileLockFactory hands out one MockFileLock per path
type MockFileLockFactory struct {
	mu    sync.Mutex
	locks map[string]*MockFileLock
}

// NewMockFileLockFactory creates an empty factory
func NewMockFileLockFactory() *MockFileLockFactory {
	return &MockFileLockFactory{locks: make(map[string]*MockFileLock)}
}

// New implements FileLockFactory.New
func (f *MockFileLockFactory) New(path string) FileLock {
	return f.Lock(path)
}

// Lock returns the lock for path, creating it on first use, so tests can
// arrange failures before the store opens
func (f *MockFileLockFactory) Lock(path string) *MockFileLock {
	f.mu.Lock()
	defer f.mu.Unlock()

	lock, ok := f.locks[path]
	if !ok {
		lock = &MockFileLock{}
		f.locks[path] = lock
	}
	return lock
}
