// Package scanner walks input paths applying the include and exclude
// filters, producing the file list the concurrent runner consumes.
package scanner

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/go-git/go-git/v5/plumbing/format/gitignore"

	"github.com/panbanda/augur/pkg/config"
)

// Scanner finds source files under the input paths.
type Scanner struct {
	include  []string
	exclude  []string
	matchers []gitignore.Matcher
}

// New creates a scanner from CLI globs and config patterns.
func New(cfg *config.Config, include, exclude []string) *Scanner {
	s := &Scanner{
		include: append(append([]string{}, cfg.Include...), include...),
		exclude: append(append([]string{}, cfg.Exclude...), exclude...),
	}
	return s
}

// findGitRoot looks upward for the repository root.
func findGitRoot(start string) string {
	dir := start
	for {
		if info, err := os.Stat(filepath.Join(dir, ".git")); err == nil && info.IsDir() {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}

// loadGitignore loads the repository's ignore patterns when enabled.
func (s *Scanner) loadGitignore(root string) {
	gitRoot := findGitRoot(root)
	if gitRoot == "" {
		return
	}
	bfs := osfs.New(gitRoot)
	if patterns, err := gitignore.ReadPatterns(bfs, nil); err == nil && len(patterns) > 0 {
		s.matchers = append(s.matchers, gitignore.NewMatcher(patterns))
	}
}

func (s *Scanner) isIgnored(path string, isDir bool) bool {
	if len(s.matchers) == 0 {
		return false
	}
	parts := strings.Split(path, string(filepath.Separator))
	for _, m := range s.matchers {
		if m.Match(parts, isDir) {
			return true
		}
	}
	return false
}

func matchAny(globs []string, path string) bool {
	for _, g := range globs {
		if ok, err := doublestar.Match(g, path); err == nil && ok {
			return true
		}
		if ok, err := doublestar.Match(g, filepath.Base(path)); err == nil && ok {
			return true
		}
	}
	return false
}

// selected applies the include and exclude glob sets.
func (s *Scanner) selected(path string) bool {
	if len(s.include) > 0 && !matchAny(s.include, path) {
		return false
	}
	if len(s.exclude) > 0 && matchAny(s.exclude, path) {
		return false
	}
	return true
}

func isHidden(name string) bool {
	return strings.HasPrefix(name, ".") && name != "." && name != ".."
}

// Scan walks the given paths and emits every selected file through yield.
// It also returns the basename index the include resolver needs.
func (s *Scanner) Scan(paths []string, useGitignore bool, yield func(path string)) (map[string][]string, error) {
	allFiles := make(map[string][]string)

	for _, root := range paths {
		info, err := os.Stat(root)
		if err != nil {
			return nil, err
		}

		if !info.IsDir() {
			if s.selected(root) {
				allFiles[filepath.Base(root)] = append(allFiles[filepath.Base(root)], root)
				yield(root)
			}
			continue
		}

		if useGitignore {
			s.loadGitignore(root)
		}

		err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return nil
			}
			if d.IsDir() {
				if path != root && (isHidden(d.Name()) || s.isIgnored(path, true)) {
					return filepath.SkipDir
				}
				return nil
			}
			if isHidden(d.Name()) || s.isIgnored(path, false) || !s.selected(path) {
				return nil
			}
			allFiles[filepath.Base(path)] = append(allFiles[filepath.Base(path)], path)
			yield(path)
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	return allFiles, nil
}
