package filesystem

import (
	"errors"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryFileSystem_Walk(t *testing.T) {
	mfs := NewMemoryFileSystem("/feeds")
	mfs.AddFile("release.xml", "<a/>")
	mfs.AddFile("2024/01/catalog.xml", "<b/>")
	mfs.AddFile("2024/notes.txt", "n")

	dir, err := mfs.Open("/feeds")
	require.NoError(t, err)

	var files []string
	err = dir.Walk(func(file File, err error) error {
		require.NoError(t, err)
		if !file.Info().IsDir() {
			files = append(files, file.RelativePath())
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"2024/01/catalog.xml", "2024/notes.txt", "release.xml"}, files)
}

func TestMemoryFileSystem_WalkSkipDir(t *testing.T) {
	mfs := NewMemoryFileSystem("/feeds")
	mfs.AddFile("top.xml", "<a/>")
	mfs.AddFile("nested/deep.xml", "<b/>")

	dir, err := mfs.Open(".")
	require.NoError(t, err)

	var files []string
	err = dir.Walk(func(file File, err error) error {
		if file.Info().IsDir() && file.RelativePath() != "." {
			return fs.SkipDir
		}
		if !file.Info().IsDir() {
			files = append(files, file.RelativePath())
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"top.xml"}, files)
}

func TestMemoryFileSystem_WalkRecoversPanic(t *testing.T) {
	mfs := NewMemoryFileSystem("/feeds")
	mfs.AddFile("boom.xml", "<a/>")

	dir, err := mfs.Open("/feeds")
	require.NoError(t, err)

	err = dir.Walk(func(file File, err error) error {
		if !file.Info().IsDir() {
			panic("callback failure")
		}
		return nil
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "panicked")
}

func TestMemoryFileSystem_ReadAndStat(t *testing.T) {
	mfs := NewMemoryFileSystem("/feeds")
	mfs.AddFile("release.xml", "<NewReleaseMessage/>")

	content, err := mfs.ReadFile("/feeds/release.xml")
	require.NoError(t, err)
	assert.Equal(t, "<NewReleaseMessage/>", string(content))

	info, err := mfs.Stat("release.xml")
	require.NoError(t, err)
	assert.False(t, info.IsDir())
	assert.Equal(t, int64(len("<NewReleaseMessage/>")), info.Size())

	assert.True(t, IsFile(mfs, "release.xml"))
	assert.True(t, IsDir(mfs, "/feeds"))
	assert.False(t, Exists(mfs, "missing.xml"))
}

func TestMemoryFileSystem_NotExist(t *testing.T) {
	mfs := NewMemoryFileSystem("/feeds")

	_, err := mfs.ReadFile("missing.xml")
	assert.True(t, errors.Is(err, fs.ErrNotExist))

	_, err = mfs.Stat("missing.xml")
	assert.True(t, errors.Is(err, fs.ErrNotExist))

	_, err = mfs.Open("missing")
	assert.True(t, errors.Is(err, fs.ErrNotExist))
}

func TestMemoryFileSystem_ReadDir(t *testing.T) {
	mfs := NewMemoryFileSystem("/schemas")
	mfs.AddFile("4.1/ern-main.xsd", "<xs:schema/>")
	mfs.AddFile("3.8.2/ddex_3-8-2.xsd", "<xs:schema/>")
	mfs.AddFile("ddex_3-8-2.xsd", "<xs:schema/>")
	mfs.AddDir("empty")

	entries, err := mfs.ReadDir("/schemas")
	require.NoError(t, err)

	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	assert.Equal(t, []string{"3.8.2", "4.1", "ddex_3-8-2.xsd", "empty"}, names)

	_, err = mfs.ReadDir("ddex_3-8-2.xsd")
	assert.Error(t, err)
}

func TestMemoryFileSystem_ReadFileOnDirectory(t *testing.T) {
	mfs := NewMemoryFileSystem("/feeds")
	mfs.AddDir("sub")
	_, err := mfs.ReadFile("sub")
	assert.Error(t, err)
}
