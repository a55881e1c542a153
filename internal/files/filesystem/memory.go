package filesystem

import (
	"errors"
	"fmt"
	"io/fs"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"
)

type memoryFileInfo struct {
	name    string
	size    int64
	mode    fs.FileMode
	modTime time.Time
}

func (f *memoryFileInfo) Name() string       { return f.name }
func (f *memoryFileInfo) Size() int64        { return f.size }
func (f *memoryFileInfo) Mode() fs.FileMode  { return f.mode }
func (f *memoryFileInfo) ModTime() time.Time { return f.modTime }
func (f *memoryFileInfo) IsDir() bool        { return f.mode.IsDir() }
func (f *memoryFileInfo) Sys() interface{}   { return nil }

type memoryFile struct {
	absPath string
	relPath string
	content []byte
	info    *memoryFileInfo
}

func (f *memoryFile) Path() string         { return f.absPath }
func (f *memoryFile) RelativePath() string { return f.relPath }
func (f *memoryFile) Info() FileInfo       { return f.info }

func (f *memoryFile) ReadContent() ([]byte, error) {
	if f.info.IsDir() {
		return nil, fmt.Errorf("path is a directory, not a file: %s", f.absPath)
	}
	return f.content, nil
}

type memoryDirectory struct {
	absPath string
	fs      *MemoryFileSystem
}

func (d *memoryDirectory) Path() string { return d.absPath }

func (d *memoryDirectory) Walk(fn func(File, error) error) error {
	entries := d.fs.entriesUnder(d.absPath)

	var skipped []string
	for _, entry := range entries {
		if underAny(entry.absPath, skipped) {
			continue
		}

		rel := strings.TrimPrefix(strings.TrimPrefix(entry.absPath, d.absPath), "/")
		if rel == "" {
			rel = "."
		}
		view := &memoryFile{absPath: entry.absPath, relPath: rel, content: entry.content, info: entry.info}

		err := safeVisit(entry.absPath, fn, view, nil)
		switch {
		case errors.Is(err, fs.SkipDir) && entry.info.IsDir():
			skipped = append(skipped, entry.absPath)
		case errors.Is(err, fs.SkipDir):
			return nil
		case err != nil:
			return err
		}
	}
	return nil
}

func underAny(p string, dirs []string) bool {
	for _, d := range dirs {
		if strings.HasPrefix(p, d+"/") {
			return true
		}
	}
	return false
}

// MemoryFileSystem implements FileSystemProvider in memory. It is safe for
// concurrent use.
type MemoryFileSystem struct {
	mu    sync.RWMutex
	files map[string]*memoryFile
	root  string
}

// NewMemoryFileSystem creates an empty in-memory filesystem. Relative paths
// passed to its methods resolve against root.
func NewMemoryFileSystem(root string) *MemoryFileSystem {
	root = path.Clean(filepath.ToSlash(root))
	mfs := &MemoryFileSystem{
		files: make(map[string]*memoryFile),
		root:  root,
	}
	mfs.files[root] = newMemoryDir(root)
	return mfs
}

func newMemoryDir(p string) *memoryFile {
	return &memoryFile{
		absPath: p,
		info:    &memoryFileInfo{name: path.Base(p), mode: 0755 | fs.ModeDir, modTime: time.Now()},
	}
}

func (mfs *MemoryFileSystem) resolve(p string) string {
	p = filepath.ToSlash(p)
	if p == "" || p == "." {
		return mfs.root
	}
	if !path.IsAbs(p) {
		p = path.Join(mfs.root, p)
	}
	return path.Clean(p)
}

// AddFile adds a file, creating its parent directories.
func (mfs *MemoryFileSystem) AddFile(filePath string, content string) {
	mfs.AddFileWithTime(filePath, content, time.Now())
}

// AddFileWithTime adds a file with a specific modification time.
func (mfs *MemoryFileSystem) AddFileWithTime(filePath string, content string, modTime time.Time) {
	mfs.mu.Lock()
	defer mfs.mu.Unlock()

	absPath := mfs.resolve(filePath)
	data := []byte(content)
	mfs.files[absPath] = &memoryFile{
		absPath: absPath,
		content: data,
		info: &memoryFileInfo{
			name:    path.Base(absPath),
			size:    int64(len(data)),
			mode:    0644,
			modTime: modTime,
		},
	}
	mfs.ensureParents(absPath)
}

// AddDir adds an empty directory, creating its parents.
func (mfs *MemoryFileSystem) AddDir(dirPath string) {
	mfs.mu.Lock()
	defer mfs.mu.Unlock()

	absPath := mfs.resolve(dirPath)
	if _, exists := mfs.files[absPath]; !exists {
		mfs.files[absPath] = newMemoryDir(absPath)
	}
	mfs.ensureParents(absPath)
}

func (mfs *MemoryFileSystem) ensureParents(p string) {
	for dir := path.Dir(p); dir != "/" && dir != "."; dir = path.Dir(dir) {
		if _, exists := mfs.files[dir]; exists {
			return
		}
		mfs.files[dir] = newMemoryDir(dir)
	}
}

// entriesUnder returns base and everything below it, sorted by path.
func (mfs *MemoryFileSystem) entriesUnder(base string) []*memoryFile {
	mfs.mu.RLock()
	defer mfs.mu.RUnlock()

	prefix := base + "/"
	if base == "/" {
		prefix = "/"
	}

	var entries []*memoryFile
	for p, f := range mfs.files {
		if p == base || strings.HasPrefix(p, prefix) {
			entries = append(entries, f)
		}
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].absPath < entries[j].absPath })
	return entries
}

func (mfs *MemoryFileSystem) lookup(p string) (*memoryFile, bool) {
	mfs.mu.RLock()
	defer mfs.mu.RUnlock()
	f, ok := mfs.files[mfs.resolve(p)]
	return f, ok
}

// Open implements FileSystemProvider.Open
func (mfs *MemoryFileSystem) Open(dirPath string) (Directory, error) {
	f, ok := mfs.lookup(dirPath)
	if !ok {
		return nil, fmt.Errorf("directory not found: %s: %w", dirPath, fs.ErrNotExist)
	}
	if !f.info.IsDir() {
		return nil, fmt.Errorf("path is not a directory: %s", dirPath)
	}
	return &memoryDirectory{absPath: f.absPath, fs: mfs}, nil
}

// ReadFile implements FileSystemProvider.ReadFile
func (mfs *MemoryFileSystem) ReadFile(filePath string) ([]byte, error) {
	f, ok := mfs.lookup(filePath)
	if !ok {
		return nil, fmt.Errorf("file not found: %s: %w", filePath, fs.ErrNotExist)
	}
	return f.ReadContent()
}

// ReadDir implements FileSystemProvider.ReadDir
func (mfs *MemoryFileSystem) ReadDir(dirPath string) ([]FileInfo, error) {
	f, ok := mfs.lookup(dirPath)
	if !ok {
		return nil, fmt.Errorf("failed to read directory: %s: %w", dirPath, fs.ErrNotExist)
	}
	if !f.info.IsDir() {
		return nil, fmt.Errorf("failed to read directory: %s is not a directory", dirPath)
	}

	var result []FileInfo
	for _, entry := range mfs.entriesUnder(f.absPath) {
		if entry.absPath != f.absPath && path.Dir(entry.absPath) == f.absPath {
			result = append(result, entry.info)
		}
	}
	return result, nil
}

// Stat implements FileSystemProvider.Stat
func (mfs *MemoryFileSystem) Stat(statPath string) (FileInfo, error) {
	f, ok := mfs.lookup(statPath)
	if !ok {
		return nil, fmt.Errorf("path not found: %s: %w", statPath, fs.ErrNotExist)
	}
	return f.info, nil
}
