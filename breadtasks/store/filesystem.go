package store

import (
	"io/fs"
	"os"
)

// FileSystem abstracts the file operations of the store so tests can run
// against an in-memory implementation
type FileSystem interface {
	// ReadFile reads the entire file and returns its contents
	ReadFile(name string) ([]byte, error)

	// WriteFile writes data to a file with the specified permissions
	WriteFile(name string, data []byte, perm fs.FileMode) error

	// Rename renames (moves) a file from oldpath to newpath
	Rename(oldpath, newpath string) error

	// Remove removes the named file
	Remove(name string) error

	// MkdirAll creates a directory and all necessary parents
	MkdirAll(path string, perm fs.FileMode) error
}

// OSFileSystem is the default implementation using the os package
type OSFileSystem struct{}

// ReadFile implements FileSystem.ReadFile
func (fs *OSFileSystem) ReadFile(name string) ([]byte, error) {
	return os.ReadFile(name)
}

// WriteFile implements FileSystem.WriteFile
func (fs *OSFileSystem) WriteFile(name string, data []byte, perm os.FileMode) error {
	return os.WriteFile(name, data, perm)
}

// Rename implements FileSystem.Rename
func (fs *OSFileSystem) Rename(oldpath, newpath string) error {
	return os.Rename(oldpath, newpath)
}

// Remove implements FileSystem.Remove
func (fs *OSFileSystem) Remove(name string) error {
	return os.Remove(name)
}

// MkdirAll implements FileSystem.MkdirAll
func (fs *OSFileSystem) MkdirAll(path string, perm os.FileMode) error {
	return os.MkdirAll(path, perm)
}
