package filesystem

import (
	"io/fs"
)

// FileInfo is an alias for fs.FileInfo from the standard library.
type FileInfo = fs.FileInfo

// File represents an individual file with its metadata and content accessor
type File interface {
	// Path returns the absolute path to the file
	Path() string

	// RelativePath returns the path relative to the walked root
	RelativePath() string

	// Info returns file metadata
	Info() FileInfo

	// ReadContent returns the file's content
	ReadContent() ([]byte, error)
}

// Directory represents a directory that can be traversed to discover files
type Directory interface {
	// Path returns the absolute path to the directory
	Path() string

	// Walk visits the directory itself and every entry below it in lexical
	// order. Returning fs.SkipDir from fn for a directory skips its contents.
	// Any other error stops the walk and is returned.
	Walk(fn func(File, error) error) error
}

// FileSystemProvider gives access to files and directories.
type FileSystemProvider interface {
	// Open opens a directory at the specified path
	Open(path string) (Directory, error)

	// ReadFile reads a specific file at the given path
	ReadFile(path string) ([]byte, error)

	// ReadDir returns the entries directly under path, sorted by name.
	ReadDir(path string) ([]FileInfo, error)

	// Stat returns file information for the given path
	Stat(path string) (FileInfo, error)
}

// Exists reports whether path exists on p.
func Exists(p FileSystemProvider, path string) bool {
	_, err := p.Stat(path)
	return err == nil
}

// IsFile reports whether path exists on p and is not a directory.
func IsFile(p FileSystemProvider, path string) bool {
	info, err := p.Stat(path)
	return err == nil && !info.IsDir()
}

// IsDir reports whether path exists on p and is a directory.
func IsDir(p FileSystemProvider, path string) bool {
	info, err := p.Stat(path)
	return err == nil && info.IsDir()
}
