package preproc

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/panbanda/augur/pkg/parser"
)

func collect(t *testing.T, source, path string, results *PreprocResults) {
	t.Helper()
	psr := parser.New()
	t.Cleanup(psr.Close)
	result, err := psr.Parse([]byte(source), parser.LangCPP, path, nil)
	require.NoError(t, err)
	Preprocess(result, path, results)
}

func TestPreprocessCollectsMacrosAndIncludes(t *testing.T) {
	results := NewResults()
	source := "#include \"bar.h\"\n" +
		"#include <vector>\n" +
		"#define FOO 1\n" +
		"#define BAR(x) ((x) + 1)\n" +
		"#define __FILE__ nope\n" +
		"int a = FOO;\n"
	collect(t, source, "foo.cpp", results)

	pf := results.Files["foo.cpp"]
	require.NotNil(t, pf)
	assert.True(t, pf.Macros.Contains("FOO"))
	assert.True(t, pf.Macros.Contains("BAR"))
	assert.False(t, pf.Macros.Contains("__FILE__"))
	assert.True(t, pf.DirectIncludes.Contains("bar.h"))
	// System includes are not quoted includes.
	assert.False(t, pf.DirectIncludes.Contains("vector"))
}

func TestMissingIncludeIsNotFatal(t *testing.T) {
	results := NewResults()
	collect(t, "#include \"missing.h\"\n", "foo.cpp", results)

	FixIncludes(results, map[string][]string{"foo.cpp": {"foo.cpp"}})

	pf := results.Files["foo.cpp"]
	require.NotNil(t, pf)
	assert.True(t, pf.DirectIncludes.Contains("missing.h"))
	assert.Empty(t, pf.IndirectIncludes)
}

func TestIncludeCycleCollapses(t *testing.T) {
	results := NewResults()
	a := filepath.Join("src", "a.h")
	b := filepath.Join("src", "b.h")
	c := filepath.Join("src", "c.h")

	collect(t, "#include \"b.h\"\n#define A_MACRO 1\n", a, results)
	collect(t, "#include \"a.h\"\n#define B_MACRO 1\n", b, results)
	collect(t, "#include \"a.h\"\n#define C_MACRO 1\n", c, results)

	allFiles := map[string][]string{
		"a.h": {a},
		"b.h": {b},
		"c.h": {c},
	}
	FixIncludes(results, allFiles)

	// a and b form a cycle: each sees the other.
	assert.True(t, results.Files[a].IndirectIncludes.Contains(b))
	assert.True(t, results.Files[b].IndirectIncludes.Contains(a))
	// c reaches the whole cycle.
	assert.True(t, results.Files[c].IndirectIncludes.Contains(a))
	assert.True(t, results.Files[c].IndirectIncludes.Contains(b))
	// No file includes itself.
	assert.False(t, results.Files[a].IndirectIncludes.Contains(a))

	macros := Macros(c, results)
	assert.Contains(t, macros, "C_MACRO")
	assert.Contains(t, macros, "A_MACRO")
	assert.Contains(t, macros, "B_MACRO")
}

func TestGuessFilePrefersSuffixThenSameDir(t *testing.T) {
	allFiles := map[string][]string{
		"util.h": {
			filepath.Join("a", "util.h"),
			filepath.Join("b", "nested", "util.h"),
		},
	}

	got := GuessFile(filepath.Join("b", "main.cpp"), filepath.Join("nested", "util.h"), allFiles)
	require.Len(t, got, 1)
	assert.Equal(t, filepath.Join("b", "nested", "util.h"), got[0])

	got = GuessFile(filepath.Join("a", "main.cpp"), "util.h", allFiles)
	require.Len(t, got, 1)
	assert.Equal(t, filepath.Join("a", "util.h"), got[0])

	assert.Empty(t, GuessFile("main.cpp", "unknown.h", allFiles))
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "preproc.json")

	results := NewResults()
	pf := NewPreprocFile()
	pf.Macros.Add("FOO")
	pf.DirectIncludes.Add("bar.h")
	pf.IndirectIncludes.Add("baz.h")
	results.Add("foo.cpp", pf)

	require.NoError(t, Save(path, results))

	loaded, err := Load(path)
	require.NoError(t, err)
	require.NotNil(t, loaded.Files["foo.cpp"])
	assert.True(t, loaded.Files["foo.cpp"].Macros.Contains("FOO"))
	assert.True(t, loaded.Files["foo.cpp"].DirectIncludes.Contains("bar.h"))
	assert.True(t, loaded.Files["foo.cpp"].IndirectIncludes.Contains("baz.h"))
}
