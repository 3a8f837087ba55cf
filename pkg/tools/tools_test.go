package tools

import (
	"bytes"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/panbanda/augur/pkg/parser"
)

func parseSource(t *testing.T, source, path string, language parser.Language) *parser.ParseResult {
	t.Helper()
	psr := parser.New()
	t.Cleanup(psr.Close)
	result, err := psr.Parse([]byte(source), language, path, nil)
	require.NoError(t, err)
	return result
}

func TestRmCommentsPreservesNewlines(t *testing.T) {
	source := "// leading comment\n" +
		"fn f() {\n" +
		"    /* a block\n" +
		"       comment */\n" +
		"    let a = 42; // trailing\n" +
		"}\n"
	result := parseSource(t, source, "foo.rs", parser.LangRust)

	stripped := RmComments(result)
	require.NotNil(t, stripped)

	assert.Equal(t,
		bytes.Count([]byte(source), []byte{'\n'}),
		bytes.Count(stripped, []byte{'\n'}),
	)
	assert.NotContains(t, string(stripped), "comment")
	assert.NotContains(t, string(stripped), "trailing")
	assert.Contains(t, string(stripped), "let a = 42;")
}

func TestRmCommentsNothingToStrip(t *testing.T) {
	result := parseSource(t, "fn f() {}\n", "foo.rs", parser.LangRust)
	assert.Nil(t, RmComments(result))
}

func TestRmCommentsKeepsUsefulComments(t *testing.T) {
	source := "/* <div rustbindgen opaque></div> */\nstruct Foo;\n"
	result := parseSource(t, source, "foo.rs", parser.LangRust)
	assert.Nil(t, RmComments(result))
}

func TestFindAndCount(t *testing.T) {
	source := "def f():\n" +
		"    # a comment\n" +
		"    g()\n" +
		"    h()\n"
	result := parseSource(t, source, "foo.py", parser.LangPython)

	calls := Find(result, []Filter{ParseFilter("call")}, LineFilter{})
	assert.Len(t, calls, 2)

	comments := Find(result, []Filter{ParseFilter("comment")}, LineFilter{})
	assert.Len(t, comments, 1)

	matched, total := Count(result, []Filter{ParseFilter("call")})
	assert.Equal(t, 2, matched)
	assert.Greater(t, total, matched)

	// A line filter narrows the search.
	lineFiltered := Find(result, []Filter{ParseFilter("call")}, LineFilter{Start: 3, End: 3})
	assert.Len(t, lineFiltered, 1)
}

func TestFindByKindID(t *testing.T) {
	source := "def f():\n    pass\n"
	result := parseSource(t, source, "foo.py", parser.LangPython)

	funcs := Find(result, []Filter{ParseFilter("function_definition")}, LineFilter{})
	require.Len(t, funcs, 1)

	// Decimal kind ids address grammar nodes directly.
	byID := Find(result, []Filter{ParseFilter(strconv.Itoa(int(funcs[0].KindID())))}, LineFilter{})
	require.Len(t, byID, 1)
	assert.Equal(t, funcs[0].KindID(), byID[0].KindID())
}

func TestFunctionSpans(t *testing.T) {
	source := "def f():\n    pass\n\ndef g():\n    pass\n"
	result := parseSource(t, source, "foo.py", parser.LangPython)

	spans := FunctionSpans(result)
	require.Len(t, spans, 2)
	assert.Equal(t, "f", spans[0].Name)
	assert.Equal(t, 1, spans[0].StartLine)
	assert.Equal(t, "g", spans[1].Name)
	assert.Equal(t, 4, spans[1].StartLine)
}

func TestBuildAst(t *testing.T) {
	source := "# comment\nx = 1\n"
	result := parseSource(t, source, "foo.py", parser.LangPython)

	withComments := BuildAst(result, true, true)
	require.NotNil(t, withComments)
	assert.Equal(t, "module", withComments.Type)
	require.NotNil(t, withComments.Span)
	assert.Equal(t, 1, withComments.Span[0])

	withoutComments := BuildAst(result, false, false)
	var hasComment func(n *AstNode) bool
	hasComment = func(n *AstNode) bool {
		if n.Type == "comment" {
			return true
		}
		for _, c := range n.Children {
			if hasComment(c) {
				return true
			}
		}
		return false
	}
	assert.False(t, hasComment(withoutComments))
	assert.True(t, hasComment(withComments))
	assert.Nil(t, withoutComments.Span)
}
