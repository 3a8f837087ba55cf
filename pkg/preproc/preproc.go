// Package preproc builds the C/C++ preprocessor data consumed by the
// macro blanking pre-pass: per-file macro sets and the resolved include
// graph.
package preproc

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"

	"github.com/panbanda/augur/pkg/parser"
)

// StringSet is a set serialized as a sorted array, so results are stable
// across runs.
type StringSet map[string]struct{}

// NewStringSet builds a set from its members.
func NewStringSet(items ...string) StringSet {
	s := make(StringSet, len(items))
	for _, it := range items {
		s[it] = struct{}{}
	}
	return s
}

// Add inserts a member.
func (s StringSet) Add(item string) { s[item] = struct{}{} }

// Contains reports membership.
func (s StringSet) Contains(item string) bool {
	_, ok := s[item]
	return ok
}

// Sorted returns the members in order.
func (s StringSet) Sorted() []string {
	out := make([]string, 0, len(s))
	for k := range s {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// MarshalJSON serializes the set as a sorted array.
func (s StringSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Sorted())
}

// UnmarshalJSON reads either an array or an object-keyed set.
func (s *StringSet) UnmarshalJSON(data []byte) error {
	var items []string
	if err := json.Unmarshal(data, &items); err != nil {
		var keyed map[string]json.RawMessage
		if json.Unmarshal(data, &keyed) != nil {
			return err
		}
		for k := range keyed {
			items = append(items, k)
		}
	}
	*s = NewStringSet(items...)
	return nil
}

// PreprocFile is the preprocessor data of one C/C++ file.
type PreprocFile struct {
	DirectIncludes   StringSet `json:"direct_includes"`
	IndirectIncludes StringSet `json:"indirect_includes"`
	Macros           StringSet `json:"macros"`
}

// NewPreprocFile returns empty sets.
func NewPreprocFile() *PreprocFile {
	return &PreprocFile{
		DirectIncludes:   NewStringSet(),
		IndirectIncludes: NewStringSet(),
		Macros:           NewStringSet(),
	}
}

// PreprocResults maps file paths to their preprocessor data. Built during
// a dedicated collect pass, then read-only.
type PreprocResults struct {
	mu    sync.Mutex
	Files map[string]*PreprocFile `json:"files"`
}

// NewResults returns an empty result set.
func NewResults() *PreprocResults {
	return &PreprocResults{Files: make(map[string]*PreprocFile)}
}

// Add records one file's data. Safe for concurrent collectors.
func (r *PreprocResults) Add(path string, pf *PreprocFile) {
	r.mu.Lock()
	r.Files[path] = pf
	r.mu.Unlock()
}

// specialMacros are never blanked; the grammars understand them.
var specialMacros = NewStringSet(
	"__FILE__", "__LINE__", "__DATE__", "__TIME__", "__STDC__",
	"__STDC_VERSION__", "__STDC_HOSTED__", "__cplusplus", "__func__",
	"__OBJC__", "__ASSEMBLER__",
)

// Preprocess extracts the define/undef identifiers and the quoted include
// targets from one parsed C/C++ file.
func Preprocess(result *parser.ParseResult, path string, results *PreprocResults) {
	pf := NewPreprocFile()

	result.Root().ActOnNode(func(n *parser.Node) {
		switch n.Kind() {
		case "preproc_def", "preproc_function_def":
			if name := n.ChildByField("name"); name != nil {
				macro := name.Text(result.Source)
				if !specialMacros.Contains(macro) {
					pf.Macros.Add(macro)
				}
			}
		case "preproc_call":
			// #undef and other directives share one node kind.
			if arg := n.ChildByField("argument"); arg != nil {
				directive := n.ChildByField("directive")
				if directive != nil && directive.Text(result.Source) == "#undef" {
					macro := strings.TrimSpace(arg.Text(result.Source))
					if !specialMacros.Contains(macro) {
						pf.Macros.Add(macro)
					}
				}
			}
		case "preproc_include":
			if target := n.ChildByField("path"); target != nil && target.Kind() == "string_literal" {
				text := target.Text(result.Source)
				text = strings.Trim(text, "\"")
				text = strings.Trim(text, " \t")
				if text != "" {
					pf.DirectIncludes.Add(text)
				}
			}
		}
	})

	results.Add(path, pf)
}

// Macros returns the macro set visible to a file: its own macros plus the
// macros of everything it transitively includes.
func Macros(path string, results *PreprocResults) map[string]struct{} {
	macros := make(map[string]struct{})
	if results == nil {
		return macros
	}
	pf, ok := results.Files[path]
	if !ok {
		return macros
	}
	for m := range pf.Macros {
		macros[m] = struct{}{}
	}
	for inc := range pf.IndirectIncludes {
		if incFile, ok := results.Files[inc]; ok {
			for m := range incFile.Macros {
				macros[m] = struct{}{}
			}
		}
	}
	return macros
}

// Save writes results as the persistent JSON document.
func Save(path string, results *PreprocResults) error {
	data, err := json.MarshalIndent(results.Files, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// Load reads a persisted result document.
func Load(path string) (*PreprocResults, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read preproc cache: %w", err)
	}
	files := make(map[string]*PreprocFile)
	if err := json.Unmarshal(data, &files); err != nil {
		return nil, fmt.Errorf("failed to decode preproc cache: %w", err)
	}
	return &PreprocResults{Files: files}, nil
}
