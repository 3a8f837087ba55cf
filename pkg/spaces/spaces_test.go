package spaces

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/panbanda/augur/pkg/lang"
	"github.com/panbanda/augur/pkg/parser"
)

func parseSource(t *testing.T, source, path string, language parser.Language) *parser.ParseResult {
	t.Helper()
	normalized, ok := parser.NormalizeSource([]byte(source))
	require.True(t, ok)
	psr := parser.New()
	t.Cleanup(psr.Close)
	result, err := psr.Parse(normalized, language, path, nil)
	require.NoError(t, err)
	return result
}

func metricsFor(t *testing.T, source, path string, language parser.Language) *FuncSpace {
	t.Helper()
	root := Metrics(parseSource(t, source, path, language))
	require.NotNil(t, root)
	return root
}

func val(t *testing.T, v *float64) float64 {
	t.Helper()
	require.NotNil(t, v)
	return *v
}

func TestPythonCyclomatic(t *testing.T) {
	source := "def f(a, b):\n" +
		"    if a and b:\n" +
		"        return 1\n" +
		"    if c and d:\n" +
		"        return 1\n"
	root := metricsFor(t, source, "foo.py", parser.LangPython)

	// 1 for the unit, 1 base + 2 if + 2 and for the function.
	assert.Equal(t, 6.0, val(t, root.Metrics.Cyclomatic.Sum))
	assert.Equal(t, 3.0, val(t, root.Metrics.Cyclomatic.Average))
	assert.Equal(t, 5.0, val(t, root.Metrics.Cyclomatic.Max))
	assert.Equal(t, 1.0, val(t, root.Metrics.Cyclomatic.Min))

	assert.Equal(t, 2.0, val(t, root.Metrics.NArgs.Total))
	assert.Equal(t, 2.0, val(t, root.Metrics.NExits.Sum))
	assert.Equal(t, 1.0, val(t, root.Metrics.Nom.Functions))
	assert.Equal(t, 0.0, val(t, root.Metrics.Nom.Closures))

	require.Len(t, root.Spaces, 1)
	fn := root.Spaces[0]
	assert.Equal(t, "f", fn.Name)
	assert.Equal(t, lang.SpaceFunction, fn.Kind)
	assert.Equal(t, 1, fn.StartLine)
	assert.Equal(t, 5, fn.EndLine)
	assert.Equal(t, 5.0, val(t, fn.Metrics.Cyclomatic.Sum))
}

func TestRustCognitive(t *testing.T) {
	source := `fn f() {
    if true {
        if true {
            println!("x");
        } else if 1 == 1 {
            if true {
                println!("x");
            }
        } else {
            if true {
                println!("x");
            }
        }
    }
}
`
	root := metricsFor(t, source, "foo.rs", parser.LangRust)

	assert.Equal(t, 11.0, val(t, root.Metrics.Cognitive.Sum))
	assert.Equal(t, 1.0, val(t, root.Metrics.Nom.Functions))

	require.Len(t, root.Spaces, 1)
	fn := root.Spaces[0]
	assert.Equal(t, "f", fn.Name)
	assert.Equal(t, 11.0, val(t, fn.Metrics.Cognitive.Sum))
	assert.Equal(t, 11.0, val(t, fn.Metrics.Cognitive.Average))
}

func TestRustBooleanSequences(t *testing.T) {
	// a && b && c costs one, a && b || c costs two.
	sameOps := metricsFor(t, "fn f() { let x = a && b && c; }\n", "foo.rs", parser.LangRust)
	assert.Equal(t, 1.0, val(t, sameOps.Metrics.Cognitive.Sum))

	mixedOps := metricsFor(t, "fn f() { let x = a && b || c; }\n", "foo.rs", parser.LangRust)
	assert.Equal(t, 2.0, val(t, mixedOps.Metrics.Cognitive.Sum))
}

func TestRustNExitsImplicitReturn(t *testing.T) {
	source := "fn f() -> i32 {\n    if x {\n        return 1;\n    }\n    0\n}\n"
	root := metricsFor(t, source, "foo.rs", parser.LangRust)
	// One explicit return plus the declared return type.
	assert.Equal(t, 2.0, val(t, root.Metrics.NExits.Sum))
}

func TestCppCyclomaticAndExits(t *testing.T) {
	source := "int f(int a, int b, int c) { if (a && b) return 1; return 0; }\n"
	root := metricsFor(t, source, "foo.cpp", parser.LangCPP)

	require.Len(t, root.Spaces, 1)
	fn := root.Spaces[0]
	assert.Equal(t, "f", fn.Name)
	// Base + if + &&.
	assert.Equal(t, 3.0, val(t, fn.Metrics.Cyclomatic.Sum))
	assert.Equal(t, 2.0, val(t, fn.Metrics.NExits.Sum))
	assert.Equal(t, 3.0, val(t, fn.Metrics.NArgs.Total))

	// The unit folds its own base of one into the sum.
	assert.Equal(t, 4.0, val(t, root.Metrics.Cyclomatic.Sum))
	assert.Equal(t, 2.0, val(t, root.Metrics.NExits.Sum))
}

func TestPythonHalsteadCounts(t *testing.T) {
	source := "def foo():\n" +
		"    def bar():\n" +
		"        def toto():\n" +
		"            a = 1 + 1\n" +
		"        b = 2 + a\n" +
		"    c = 3 + 3\n"
	root := metricsFor(t, source, "foo.py", parser.LangPython)

	h := root.Metrics.Halstead
	assert.Equal(t, 3.0, val(t, h.N1Unique)) // def, =, +
	assert.Equal(t, 9.0, val(t, h.N1))
	assert.Equal(t, 9.0, val(t, h.N2Unique)) // foo, bar, toto, a, b, c, 1, 2, 3
	assert.Equal(t, 12.0, val(t, h.N2))
	assert.Equal(t, val(t, h.N1)+val(t, h.N2), val(t, h.Length))
	assert.Equal(t, val(t, h.N1Unique)+val(t, h.N2Unique), val(t, h.Vocabulary))
}

func TestJavaNpa(t *testing.T) {
	source := `public class Example {
    public int a;
    public int b;
    private int c;
    protected int d;
}
`
	root := metricsFor(t, source, "Example.java", parser.LangJava)

	npa := root.Metrics.Npa
	assert.Equal(t, 2.0, val(t, npa.Classes))
	assert.Equal(t, 4.0, val(t, npa.ClassAttributes))
	assert.Equal(t, 0.5, val(t, npa.ClassesAverage))
}

func TestJavaInterfaceNpm(t *testing.T) {
	source := `interface Greeter {
    int MAX = 3;
    String greet(String name);
    String bye();
}
`
	root := metricsFor(t, source, "Greeter.java", parser.LangJava)

	npm := root.Metrics.Npm
	// Every interface method is implicitly public.
	assert.Equal(t, val(t, npm.InterfaceMethods), val(t, npm.Interfaces))
	assert.Equal(t, 2.0, val(t, npm.Interfaces))
	npa := root.Metrics.Npa
	assert.Equal(t, 1.0, val(t, npa.Interfaces))
	assert.Equal(t, 1.0, val(t, npa.InterfaceAttributes))
}

func TestJavaWmc(t *testing.T) {
	source := `public class Example {
    public int m1(int n) {
        if (n > 0) {
            return n;
        }
        return 0;
    }

    public int m2(boolean a, boolean b) {
        while (a && b) {
            a = false;
        }
        return 1;
    }
}
`
	root := metricsFor(t, source, "Example.java", parser.LangJava)

	require.Len(t, root.Spaces, 1)
	class := root.Spaces[0]
	require.Equal(t, lang.SpaceClass, class.Kind)
	// m1: base + if = 2; m2: base + while + && = 3.
	assert.Equal(t, 5.0, val(t, class.Metrics.Wmc.Wmc))
	assert.Equal(t, 5.0, val(t, root.Metrics.Wmc.Wmc))
}

func TestEmptyFileUnit(t *testing.T) {
	root := metricsFor(t, "", "empty.py", parser.LangPython)

	assert.Equal(t, lang.SpaceUnit, root.Kind)
	assert.Equal(t, 0, root.StartLine)
	assert.Equal(t, 0, root.EndLine)
	assert.Equal(t, 0.0, val(t, root.Metrics.Loc.Sloc))
	assert.Equal(t, 0.0, val(t, root.Metrics.Nom.Total))
	assert.Nil(t, root.Metrics.Mi.MiOriginal)
}

func TestLocInvariants(t *testing.T) {
	source := "fn func() {\n" +
		"    let a = 42;\n" +
		"\n" +
		"    // a line comment\n" +
		"    let b = 43;\n" +
		"}\n"
	root := metricsFor(t, source, "foo.rs", parser.LangRust)

	loc := root.Metrics.Loc
	sloc := val(t, loc.Sloc)
	ploc := val(t, loc.Ploc)
	blank := val(t, loc.Blank)
	assert.GreaterOrEqual(t, sloc, ploc)
	assert.GreaterOrEqual(t, blank, 0.0)
	assert.Equal(t, 6.0, sloc)
	assert.Equal(t, 1.0, val(t, loc.Cloc))
	assert.Equal(t, 1.0, blank)
	assert.Equal(t, 2.0, val(t, loc.Lloc))
}

func TestNomTotalLaw(t *testing.T) {
	source := "def f():\n    pass\n\ndef g():\n    h = lambda x: x\n    return h\n"
	root := metricsFor(t, source, "foo.py", parser.LangPython)

	nom := root.Metrics.Nom
	assert.Equal(t, val(t, nom.Functions)+val(t, nom.Closures), val(t, nom.Total))
	assert.Equal(t, 2.0, val(t, nom.Functions))
	assert.Equal(t, 1.0, val(t, nom.Closures))
}

func TestChildrenAreOrderedAndNested(t *testing.T) {
	source := "def a():\n    pass\n\ndef b():\n    def inner():\n        pass\n"
	root := metricsFor(t, source, "foo.py", parser.LangPython)

	require.Len(t, root.Spaces, 2)
	assert.Equal(t, "a", root.Spaces[0].Name)
	assert.Equal(t, "b", root.Spaces[1].Name)
	assert.Less(t, root.Spaces[0].StartLine, root.Spaces[1].StartLine)

	require.Len(t, root.Spaces[1].Spaces, 1)
	inner := root.Spaces[1].Spaces[0]
	assert.Equal(t, "inner", inner.Name)
	assert.GreaterOrEqual(t, inner.StartLine, root.Spaces[1].StartLine)
	assert.LessOrEqual(t, inner.EndLine, root.Spaces[1].EndLine)
}

func TestCyclomaticMergeLaw(t *testing.T) {
	source := "def a():\n    if x:\n        pass\n\ndef b():\n    while y:\n        pass\n"
	root := metricsFor(t, source, "foo.py", parser.LangPython)

	var childSum float64
	for _, child := range root.Spaces {
		childSum += val(t, child.Metrics.Cyclomatic.Sum)
	}
	// The unit's own base of one folds in via merge.
	assert.Equal(t, childSum+1, val(t, root.Metrics.Cyclomatic.Sum))
}

func TestDeterministicRuns(t *testing.T) {
	source := "def f(a, b):\n    if a and b:\n        return 1\n    return 2\n"

	first := metricsFor(t, source, "foo.py", parser.LangPython)
	second := metricsFor(t, source, "foo.py", parser.LangPython)

	a, err := json.Marshal(first)
	require.NoError(t, err)
	b, err := json.Marshal(second)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestJSONRoundTrip(t *testing.T) {
	source := "def f(a, b):\n    if a and b:\n        return 1\n    return 2\n"
	root := metricsFor(t, source, "foo.py", parser.LangPython)

	data, err := json.Marshal(root)
	require.NoError(t, err)

	var reloaded FuncSpace
	require.NoError(t, json.Unmarshal(data, &reloaded))

	assert.Equal(t, root.Name, reloaded.Name)
	assert.Equal(t, root.Kind, reloaded.Kind)
	assert.InDelta(t, val(t, root.Metrics.Cyclomatic.Sum), val(t, reloaded.Metrics.Cyclomatic.Sum), 1e-3)
	assert.InDelta(t, val(t, root.Metrics.Halstead.Volume), val(t, reloaded.Metrics.Halstead.Volume), 1e-3)
	require.Len(t, reloaded.Spaces, len(root.Spaces))
}

func TestGetOps(t *testing.T) {
	source := "def foo():\n    a = 1 + 2\n"
	ops := GetOps(parseSource(t, source, "foo.py", parser.LangPython))
	require.NotNil(t, ops)

	assert.Equal(t, "foo.py", ops.Name)
	assert.Contains(t, ops.Operators, "def")
	assert.Contains(t, ops.Operators, "=")
	assert.Contains(t, ops.Operators, "+")
	assert.Contains(t, ops.Operands, "a")
	assert.Contains(t, ops.Operands, "1")

	require.Len(t, ops.Spaces, 1)
	assert.Equal(t, "foo", ops.Spaces[0].Name)
	assert.Contains(t, ops.Spaces[0].Operands, "a")
}

func TestAnonymousClosureName(t *testing.T) {
	source := "const x = [1].map(function (v) { return v; });\n"
	root := metricsFor(t, source, "foo.js", parser.LangJavaScript)

	require.NotEmpty(t, root.Spaces)
	assert.Equal(t, lang.AnonymousName, root.Spaces[0].Name)
}
