package scanner

import (
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/panbanda/augur/pkg/config"
)

func writeFile(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("x = 1\n"), 0o644))
}

func scanAll(t *testing.T, s *Scanner, paths []string) []string {
	t.Helper()
	var files []string
	_, err := s.Scan(paths, false, func(path string) {
		files = append(files, path)
	})
	require.NoError(t, err)
	sort.Strings(files)
	return files
}

func TestScanDirCollectsFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.py"))
	writeFile(t, filepath.Join(dir, "sub", "b.rs"))
	writeFile(t, filepath.Join(dir, ".hidden", "c.py"))

	s := New(config.Default(), nil, nil)
	files := scanAll(t, s, []string{dir})

	require.Len(t, files, 2)
	assert.Equal(t, filepath.Join(dir, "a.py"), files[0])
	assert.Equal(t, filepath.Join(dir, "sub", "b.rs"), files[1])
}

func TestScanIncludeExcludeGlobs(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.py"))
	writeFile(t, filepath.Join(dir, "b.py"))
	writeFile(t, filepath.Join(dir, "c.rs"))

	include := New(config.Default(), []string{"*.py"}, nil)
	files := scanAll(t, include, []string{dir})
	require.Len(t, files, 2)

	exclude := New(config.Default(), nil, []string{"b.py"})
	files = scanAll(t, exclude, []string{dir})
	require.Len(t, files, 2)
	for _, f := range files {
		assert.NotEqual(t, "b.py", filepath.Base(f))
	}
}

func TestScanSingleFileAndBasenameIndex(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.py")
	writeFile(t, path)

	s := New(config.Default(), nil, nil)
	var files []string
	index, err := s.Scan([]string{path}, false, func(p string) {
		files = append(files, p)
	})
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, []string{path}, index["a.py"])
}

func TestScanMissingPathFails(t *testing.T) {
	s := New(config.Default(), nil, nil)
	_, err := s.Scan([]string{"does-not-exist"}, false, func(string) {})
	assert.Error(t, err)
}
