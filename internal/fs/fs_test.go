package fs

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simplesurance/ciconf/internal/testutils/fstest"
)

func TestFindFileInParentDirsOnRoot(t *testing.T) {
	_, err := FindFileInParentDirs(filepath.FromSlash("/"), "mytestfile-which-must-not-exist-1234")
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestFindFileInParentDirWithExcessivePathSeparator(t *testing.T) {
	tempdir := t.TempDir()

	const wantedFilename = "ciconf.toml"
	const subdir1 = "subdir1"
	subdir2AbsPath := filepath.Join(tempdir, subdir1, "subdir2")
	wantedFileAbsPath := filepath.Join(tempdir, subdir1, wantedFilename)

	fstest.WriteToFile(t, []byte("hello"), wantedFileAbsPath)
	require.NoError(t, os.MkdirAll(subdir2AbsPath, 0o755))

	foundPath, err := FindFileInParentDirs(subdir2AbsPath+string(os.PathSeparator), wantedFilename)
	require.NoError(t, err)
	assert.Equal(t, wantedFileAbsPath, foundPath)
}

func TestIsDir(t *testing.T) {
	tempdir := t.TempDir()
	file := filepath.Join(tempdir, "file")
	fstest.WriteToFile(t, []byte("hello"), file)

	isDir, err := IsDir(tempdir)
	require.NoError(t, err)
	assert.True(t, isDir)

	isDir, err = IsDir(file)
	require.NoError(t, err)
	assert.False(t, isDir)

	_, err = IsDir(filepath.Join(tempdir, "missing"))
	assert.ErrorIs(t, err, fs.ErrNotExist)
}
