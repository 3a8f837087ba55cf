package metrics

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBoolSequence(t *testing.T) {
	var seq boolSequence

	// First operator of a chain costs one.
	assert.Equal(t, 1, seq.evalBasedOnPrev("&&", 0))
	// Repeating the operator is free.
	assert.Equal(t, 1, seq.evalBasedOnPrev("&&", 1))
	// Alternating costs one more.
	assert.Equal(t, 2, seq.evalBasedOnPrev("||", 1))

	// A negation makes the next operator count as a change without
	// adding on its own.
	seq.reset()
	assert.Equal(t, 1, seq.evalBasedOnPrev("&&", 0))
	seq.notOperator("not")
	assert.Equal(t, 2, seq.evalBasedOnPrev("&&", 1))
}

func TestHalsteadFormulas(t *testing.T) {
	maps := NewHalsteadMaps()
	// def f(): pass -> operators: def, :? -- modeled directly here.
	maps.Operators[1] = 2
	maps.Operands["f"] = 1

	var stats HalsteadStats
	maps.Finalize(&stats)

	assert.Equal(t, 1.0, stats.UOperators())
	assert.Equal(t, 2.0, stats.Operators())
	assert.Equal(t, 1.0, stats.UOperands())
	assert.Equal(t, 1.0, stats.Operands())
	assert.Equal(t, 3.0, stats.Length())
	assert.Equal(t, 2.0, stats.Vocabulary())
	assert.InDelta(t, 3*math.Log2(2), stats.Volume(), 1e-9)
	assert.InDelta(t, 0.5, stats.Difficulty(), 1e-9)
	assert.InDelta(t, 2.0, stats.Level(), 1e-9)
	assert.InDelta(t, stats.Effort()/18, stats.Time(), 1e-9)
}

func TestHalsteadMerge(t *testing.T) {
	a := NewHalsteadMaps()
	a.Operators[1] = 2
	a.Operands["x"] = 1

	b := NewHalsteadMaps()
	b.Operators[1] = 1
	b.Operators[2] = 1
	b.Operands["x"] = 3
	b.Operands["y"] = 1

	a.Merge(b)
	var stats HalsteadStats
	a.Finalize(&stats)

	assert.Equal(t, 2.0, stats.UOperators())
	assert.Equal(t, 4.0, stats.Operators())
	assert.Equal(t, 2.0, stats.UOperands())
	assert.Equal(t, 5.0, stats.Operands())
}

func TestFinFiltersNonFinite(t *testing.T) {
	require.Nil(t, fin(math.NaN()))
	require.Nil(t, fin(math.Inf(1)))
	require.Nil(t, fin(math.Inf(-1)))
	v := fin(1.5)
	require.NotNil(t, v)
	assert.Equal(t, 1.5, *v)
}

func TestCyclomaticMergeAndAverage(t *testing.T) {
	parent := NewCyclomaticStats()
	child := NewCyclomaticStats()
	child.cyclomatic = 4
	child.closeSpace()

	parent.closeSpace()
	parent.Merge(&child)

	assert.Equal(t, 5.0, parent.Sum())
	assert.Equal(t, 2.5, parent.Average())
	assert.Equal(t, 1.0, parent.Min())
	assert.Equal(t, 4.0, parent.Max())
}

func TestEmptyHalsteadIsNonFinite(t *testing.T) {
	var stats HalsteadStats
	maps := NewHalsteadMaps()
	maps.Finalize(&stats)

	report := stats.Report()
	assert.Nil(t, report.Volume)
	assert.Nil(t, report.Difficulty)
	require.NotNil(t, report.Length)
	assert.Equal(t, 0.0, *report.Length)
}
