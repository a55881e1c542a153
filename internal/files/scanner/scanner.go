package scanner

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
	"time"

	"github.com/vvka-141/ddexcheck/internal/checksum"
	"github.com/vvka-141/ddexcheck/internal/files/filesystem"
	"github.com/vvka-141/ddexcheck/pkg/ddex"
)

// Options selects which files a scan returns.
type Options struct {
	// Pattern is a filepath.Match glob applied to the base name of each
	// file. Empty means ddex.DefaultPattern.
	Pattern string

	// Recursive descends into sub-directories.
	Recursive bool
}

// Document describes one discovered file.
type Document struct {
	Path         string // Root joined with RelativePath, in OS form
	RelativePath string // "./"-prefixed, forward slashes
	SizeBytes    int64
	ModifiedAt   time.Time
	Checksum     string // normalized content checksum
	ChecksumRaw  string
}

// Result is the outcome of a scan, in lexical path order.
type Result struct {
	Documents []Document
}

// Paths returns the Path of every document.
func (r Result) Paths() []string {
	paths := make([]string, len(r.Documents))
	for i, d := range r.Documents {
		paths[i] = d.Path
	}
	return paths
}

// Scanner discovers documents in a directory tree.
// Scanner is safe for concurrent use by multiple goroutines as long as
// the provided calculator and fsProvider are also thread-safe.
type Scanner struct {
	calculator checksum.Calculator
	fsProvider filesystem.FileSystemProvider
}

// NewScanner creates a scanner over the OS filesystem.
// Panics if calculator is nil.
func NewScanner(calculator checksum.Calculator) *Scanner {
	return NewScannerWithFS(calculator, filesystem.NewOSFileSystem())
}

// NewScannerWithFS creates a scanner with a custom filesystem provider.
// Panics if calculator or fsProvider is nil.
func NewScannerWithFS(calculator checksum.Calculator, fsProvider filesystem.FileSystemProvider) *Scanner {
	if calculator == nil {
		panic("calculator cannot be nil")
	}
	if fsProvider == nil {
		panic("fsProvider cannot be nil")
	}
	return &Scanner{
		calculator: calculator,
		fsProvider: fsProvider,
	}
}

// Scan walks root and returns the documents matching opts.
//
// A malformed pattern is reported as ddex.ErrInvalidConfig. An empty result
// is not an error; callers decide whether that is fatal.
func (s *Scanner) Scan(root string, opts Options) (Result, error) {
	pattern := opts.Pattern
	if pattern == "" {
		pattern = ddex.DefaultPattern
	}
	if _, err := filepath.Match(pattern, ""); err != nil {
		return Result{}, fmt.Errorf("invalid pattern %q: %w", pattern, ddex.ErrInvalidConfig)
	}

	dir, err := s.fsProvider.Open(root)
	if err != nil {
		return Result{}, fmt.Errorf("failed to open directory: %w", err)
	}

	var docs []Document
	err = dir.Walk(func(file filesystem.File, err error) error {
		if err != nil {
			return fmt.Errorf("error walking path: %w", err)
		}

		rel := file.RelativePath()
		if file.Info().IsDir() {
			if rel != "." && !opts.Recursive {
				return fs.SkipDir
			}
			return nil
		}

		if ok, _ := filepath.Match(pattern, file.Info().Name()); !ok {
			return nil
		}

		doc, err := s.processFile(root, file)
		if err != nil {
			return fmt.Errorf("failed to process file %s: %w", rel, err)
		}
		docs = append(docs, doc)
		return nil
	})
	if err != nil {
		return Result{}, err
	}

	return Result{Documents: docs}, nil
}

func (s *Scanner) processFile(root string, file filesystem.File) (Document, error) {
	content, err := file.ReadContent()
	if err != nil {
		return Document{}, fmt.Errorf("failed to read file: %w", err)
	}

	rel := filepath.ToSlash(file.RelativePath())
	info := file.Info()

	return Document{
		Path:         filepath.Join(root, filepath.FromSlash(rel)),
		RelativePath: "./" + strings.TrimPrefix(rel, "./"),
		SizeBytes:    info.Size(),
		ModifiedAt:   info.ModTime(),
		Checksum:     s.calculator.CalculateNormalized(content),
		ChecksumRaw:  s.calculator.CalculateRaw(content),
	}, nil
}
