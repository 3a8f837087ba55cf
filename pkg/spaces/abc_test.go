package spaces

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/panbanda/augur/pkg/parser"
)

// Constant declarations are initialized, not assigned.
func TestJavaAbcConstantDeclarations(t *testing.T) {
	source := `class A {
    private final int X1 = 0, Y1 = 0;
    public final float PI = 3.14f;
    final static String HELLO = "Hello,";
    protected String world = " world!";
    public float e = 2.718f;
    private int x2 = 1, y2 = 2;

    void m() {
        final int Z1 = 0, Z2 = 0, Z3 = 0;
        final float T = 0.0f;
        int z1 = 1, z2 = 2, z3 = 3;
        float t = 60.0f;
    }
}
`
	root := metricsFor(t, source, "foo.java", parser.LangJava)

	abc := root.Metrics.Abc
	assert.Equal(t, 8.0, val(t, abc.Assignments))
	assert.Equal(t, 0.0, val(t, abc.Branches))
	assert.Equal(t, 0.0, val(t, abc.Conditions))
	assert.Equal(t, 8.0, val(t, abc.Magnitude))
	// Three spaces: the unit, the class and the method.
	assert.InDelta(t, 8.0/3.0, val(t, abc.AssignmentsAverage), 1e-9)
	assert.Equal(t, 0.0, val(t, abc.AssignmentsMin))
	assert.Equal(t, 4.0, val(t, abc.AssignmentsMax))
}

// Each operand of a boolean chain that is a bare variable, method call or
// literal is an implicit unary condition.
func TestJavaAbcIfMultipleConditions(t *testing.T) {
	source := `
if ( a || b || c || d ) {}
if ( a || b && c && d ) {}
if ( x < y && a == b ) {}
if ( ((z < (x + y))) ) {}
if ( a || ((((b))) && c) ) {}
if ( a && ((((a == b))) && c) ) {}
if ( a || ((((a == b))) || ((c))) ) {}
if ( x < y && B.m() ) {}
if ( x < y && !(((B.m()))) ) {}
if ( !(x < y) && !B.m() ) {}
if ( !!!(!!!(a)) && B.m() ||
     !B.m() && (((x > 4))) ) {}
`
	root := metricsFor(t, source, "foo.java", parser.LangJava)

	abc := root.Metrics.Abc
	assert.Equal(t, 0.0, val(t, abc.Assignments))
	assert.Equal(t, 5.0, val(t, abc.Branches))
	assert.Equal(t, 30.0, val(t, abc.Conditions))
	assert.InDelta(t, 30.413812651491097, val(t, abc.Magnitude), 1e-9)
}

// Bare arguments are not conditions, negated ones are; nested calls count
// their own argument lists.
func TestJavaAbcMethodArgumentsWithConditions(t *testing.T) {
	source := `
m1(a);
m2(a, b);
m3(true, (false), (((true))));
m3(m1(false), m1(true), m1(false));
m1(!a);
m2((((a))), (!b));
m3(!(a), b, !!!c);
m3(a, !b, m2(!a, !m2(!b, !m1(!c))));
`
	root := metricsFor(t, source, "foo.java", parser.LangJava)

	abc := root.Metrics.Abc
	assert.Equal(t, 0.0, val(t, abc.Assignments))
	assert.Equal(t, 14.0, val(t, abc.Branches))
	assert.Equal(t, 10.0, val(t, abc.Conditions))
}

// For-loop headers contribute both assignments and an implicit condition.
func TestJavaAbcForWithVariableDeclaration(t *testing.T) {
	source := `
for ( int i1 = 0; !(!(!(!a))); i1++ ) {}
for ( int i2 = 0; !B.m(); i2++ ) {}
for ( int i3 = 0; a || false; i3++ ) {}
for ( int i4 = 0; a && B.m() ? true : false; i4++ ) {}
for ( int i5 = 0; true; i5++ ) {}
`
	root := metricsFor(t, source, "foo.java", parser.LangJava)

	abc := root.Metrics.Abc
	assert.Equal(t, 10.0, val(t, abc.Assignments))
	assert.Equal(t, 2.0, val(t, abc.Branches))
	assert.Equal(t, 8.0, val(t, abc.Conditions))
}

// The condition slot of a for without an initializer, including the
// implicit true of `for (;;)`.
func TestJavaAbcForWithoutVariableDeclaration(t *testing.T) {
	source := `class A{
    void m1() {
        for (i = 0; x < y; i++) {}
        for (i = 0; ((x < y)); i++) {}
        for (i = 0; !(!(x < y)); i++) {}
        for (i = 0; true; i++) {}
    }
    void m2() {
        for ( ; true; ) {}
    }
    void m3() {
        for ( ; ; ) {}
    }
}
`
	root := metricsFor(t, source, "foo.java", parser.LangJava)

	abc := root.Metrics.Abc
	assert.Equal(t, 8.0, val(t, abc.Assignments))
	assert.Equal(t, 0.0, val(t, abc.Branches))
	assert.Equal(t, 6.0, val(t, abc.Conditions))
	assert.Equal(t, 10.0, val(t, abc.Magnitude))
	// Five spaces: the unit, the class and three methods.
	assert.InDelta(t, 1.6, val(t, abc.AssignmentsAverage), 1e-9)
	assert.Equal(t, 4.0, val(t, abc.ConditionsMax))
}

// Generic type parameter brackets are not comparisons.
func TestJavaAbcGenericsAreNotConditions(t *testing.T) {
	source := "List<String> n = null;\n"
	root := metricsFor(t, source, "foo.java", parser.LangJava)

	abc := root.Metrics.Abc
	require.NotNil(t, abc.Conditions)
	assert.Equal(t, 0.0, val(t, abc.Conditions))
	assert.Equal(t, 1.0, val(t, abc.Assignments))
}
