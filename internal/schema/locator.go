package schema

import (
	"errors"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/vvka-141/ddexcheck/internal/files/filesystem"
	"github.com/vvka-141/ddexcheck/pkg/ddex"
)

// rootSchemaName is the last-resort schema looked up next to the schema
// directory.
const rootSchemaName = "ddex_3-8-2.xsd"

// Candidates returns the file names tried for a version, in order.
func Candidates(version string) []string {
	return []string{
		"ddex_" + strings.ReplaceAll(version, ".", "-") + ".xsd",
		"ern-main-" + version + ".xsd",
		"ern-main.xsd",
		rootSchemaName,
	}
}

// Locator finds the XSD file for a DDEX version.
//
// Lookup order:
//  1. the explicit schema path, when it exists;
//  2. <dir>/<version>/<candidate>, then <dir>/<candidate>;
//  3. the same two steps for ddex.DefaultVersion;
//  4. <parent of dir>/ddex_3-8-2.xsd.
type Locator struct {
	fs       filesystem.FileSystemProvider
	dir      string
	explicit string
}

// NewLocator creates a locator over fsProvider.
// Panics if fsProvider is nil.
func NewLocator(fsProvider filesystem.FileSystemProvider, schemaDir, schemaPath string) *Locator {
	if fsProvider == nil {
		panic("fsProvider cannot be nil")
	}
	return &Locator{fs: fsProvider, dir: schemaDir, explicit: schemaPath}
}

// SearchPath is the schema directory reported when nothing is found.
func (l *Locator) SearchPath() string { return l.dir }

// Find returns the schema file for version. An empty version goes straight
// to the default version.
func (l *Locator) Find(version string) (string, bool) {
	if l.explicit != "" && filesystem.IsFile(l.fs, l.explicit) {
		return l.explicit, true
	}

	if l.dir != "" {
		if version != "" {
			if p, ok := l.findIn(version); ok {
				return p, true
			}
		}
		if p, ok := l.findIn(ddex.DefaultVersion); ok {
			return p, true
		}
	}

	root := filepath.Join(filepath.Dir(l.dir), rootSchemaName)
	if filesystem.IsFile(l.fs, root) {
		return root, true
	}
	return "", false
}

func (l *Locator) findIn(version string) (string, bool) {
	candidates := Candidates(version)

	versionDir := filepath.Join(l.dir, version)
	if filesystem.IsDir(l.fs, versionDir) {
		for _, name := range candidates {
			p := filepath.Join(versionDir, name)
			if filesystem.IsFile(l.fs, p) {
				return p, true
			}
		}
	}

	for _, name := range candidates {
		p := filepath.Join(l.dir, name)
		if filesystem.IsFile(l.fs, p) {
			return p, true
		}
	}
	return "", false
}

// SupportedVersions lists the sub-directories of the schema directory,
// sorted. A missing directory yields an empty list.
func (l *Locator) SupportedVersions() ([]string, error) {
	if l.dir == "" {
		return []string{}, nil
	}
	infos, err := l.fs.ReadDir(l.dir)
	if errors.Is(err, fs.ErrNotExist) {
		return []string{}, nil
	}
	if err != nil {
		return nil, err
	}

	versions := []string{}
	for _, info := range infos {
		if info.IsDir() {
			versions = append(versions, info.Name())
		}
	}
	sort.Strings(versions)
	return versions, nil
}
