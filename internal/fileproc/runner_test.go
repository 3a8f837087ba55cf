package fileproc

import (
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/panbanda/augur/pkg/config"
	"github.com/panbanda/augur/pkg/parser"
)

func writeFile(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte("x = 1\n"), 0o644))
}

func TestRunProcessesEveryFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.py"))
	writeFile(t, filepath.Join(dir, "b.py"))
	writeFile(t, filepath.Join(dir, "c.py"))

	var mu sync.Mutex
	seen := make(map[string]bool)

	index, errs, err := Run(Options{
		Cfg:   config.Default(),
		Paths: []string{dir},
		Quiet: true,
	}, func(psr *parser.Parser, path string) error {
		mu.Lock()
		seen[filepath.Base(path)] = true
		mu.Unlock()
		return nil
	})

	require.NoError(t, err)
	assert.False(t, errs.HasErrors())
	assert.Len(t, seen, 3)
	assert.Len(t, index["a.py"], 1)
}

func TestRunPerFileFailuresDoNotAbort(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.py"))
	writeFile(t, filepath.Join(dir, "bad.py"))
	writeFile(t, filepath.Join(dir, "c.py"))

	var mu sync.Mutex
	processed := 0

	_, errs, err := Run(Options{
		Cfg:   config.Default(),
		Paths: []string{dir},
		Quiet: true,
	}, func(psr *parser.Parser, path string) error {
		mu.Lock()
		processed++
		mu.Unlock()
		if filepath.Base(path) == "bad.py" {
			return errors.New("boom")
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 3, processed)
	require.True(t, errs.HasErrors())
	assert.Len(t, errs.Errors, 1)
	assert.Equal(t, filepath.Join(dir, "bad.py"), errs.Errors[0].Path)
}

func TestRunMissingInputIsProducerError(t *testing.T) {
	_, _, err := Run(Options{
		Cfg:   config.Default(),
		Paths: []string{"does-not-exist"},
		Quiet: true,
	}, func(psr *parser.Parser, path string) error { return nil })

	var runnerErr *RunnerError
	require.ErrorAs(t, err, &runnerErr)
	assert.Equal(t, ErrProducer, runnerErr.Kind)
}
