package structure

import (
	"errors"
	"io/fs"
	"os"
)

// FileSystem is the read-only view of the project tree the renderer needs.
// Errors must wrap fs.ErrNotExist or fs.ErrPermission where applicable so
// traversal can report why an entry was skipped.
type FileSystem interface {
	ReadDir(name string) ([]fs.DirEntry, error)
	ReadFile(name string) ([]byte, error)
	Stat(name string) (fs.FileInfo, error)
}

// OSFileSystem reads from the local disk.
type OSFileSystem struct{}

// ReadDir implements FileSystem.
func (OSFileSystem) ReadDir(name string) ([]fs.DirEntry, error) { return os.ReadDir(name) }

// ReadFile implements FileSystem.
func (OSFileSystem) ReadFile(name string) ([]byte, error) {
	//nolint:gosec // G304: paths come from walking the caller-chosen root
	return os.ReadFile(name)
}

// Stat implements FileSystem.
func (OSFileSystem) Stat(name string) (fs.FileInfo, error) { return os.Stat(name) }

// skipReason classifies a read failure for log output.
func skipReason(err error) string {
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return "not found"
	case errors.Is(err, fs.ErrPermission):
		return "permission denied"
	default:
		return "unreadable"
	}
}
