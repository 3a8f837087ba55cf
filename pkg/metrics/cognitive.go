package metrics

import (
	"math"

	"github.com/panbanda/augur/pkg/lang"
	"github.com/panbanda/augur/pkg/parser"
)

// boolSequence tracks a chain of boolean operators so that alternations
// cost one while repetitions are free.
type boolSequence struct {
	op  string
	set bool
}

func (b *boolSequence) reset() {
	b.set = false
	b.op = ""
}

// notOperator records a negation: the next operator always compares as
// different, without adding on its own.
func (b *boolSequence) notOperator(kind string) {
	b.set = true
	b.op = kind
}

func (b *boolSequence) evalBasedOnPrev(kind string, structural int) int {
	if b.set {
		if b.op != kind {
			b.op = kind
			return structural + 1
		}
		return structural
	}
	b.set = true
	b.op = kind
	return structural + 1
}

// CognitiveStats accumulates cognitive complexity for one space plus the
// rolling aggregates over its descendants.
type CognitiveStats struct {
	structural int
	sum        int
	min        float64
	max        float64
	totalFuncs int
	boolSeq    boolSequence
}

// NewCognitiveStats starts an empty space.
func NewCognitiveStats() CognitiveStats {
	return CognitiveStats{min: math.Inf(1), max: 0, totalFuncs: 1}
}

func matchKind(kinds map[string]bool) func(*parser.Node) bool {
	return func(n *parser.Node) bool { return kinds[n.Kind()] }
}

func matchSingle(kind string) func(*parser.Node) bool {
	return func(n *parser.Node) bool { return n.Kind() == kind }
}

// Compute applies the cognitive rules of the context language.
func (s *CognitiveStats) Compute(ctx *Context, n *parser.Node) {
	rules := ctx.Profile.Cognitive()
	if rules == nil {
		return
	}
	kind := n.Kind()

	switch {
	case rules.Nesting[kind]:
		if ctx.Profile.IsElseIf(n) {
			return
		}
		s.increment(ctx, n, rules)
	case rules.NestedFlat[kind]:
		s.increment(ctx, n, rules)
	case rules.FlatReset[kind]:
		s.structural++
		s.boolSeq.reset()
	case rules.Flat[kind]:
		s.structural++
	case rules.LabeledJumps[kind]:
		for i := 0; i < n.ChildCount(); i++ {
			if rules.LabelKinds[n.Child(i).Kind()] {
				s.structural++
				break
			}
		}
	case kind == rules.NotOp && rules.NotOp != "":
		s.boolSeq.notOperator(kind)
	case rules.BoolExpr[kind]:
		s.computeBooleans(ctx, n, rules)
	case rules.BoolReset[kind]:
		s.boolSeq.reset()
	}
}

func (s *CognitiveStats) increment(ctx *Context, n *parser.Node, rules *lang.CognitiveRules) {
	s.boolSeq.reset()
	s.structural += 1 + s.nesting(ctx, n, rules)
}

func (s *CognitiveStats) nesting(ctx *Context, n *parser.Node, rules *lang.CognitiveRules) int {
	funcDepth := 0
	if len(rules.Funcs) > 0 {
		funcDepth = n.CountSpecificAncestors(matchKind(rules.Funcs), matchSingle(rules.Unit))
		if funcDepth > 0 {
			funcDepth--
		}
	}
	lambdaDepth := n.CountSpecificAncestors(matchKind(rules.Lambdas), func(a *parser.Node) bool {
		return rules.Funcs[a.Kind()] || a.Kind() == rules.Unit
	})
	// An else-if continues its chain and adds no nesting level.
	stmtDepth := n.CountSpecificAncestors(func(a *parser.Node) bool {
		return rules.Nesting[a.Kind()] && !ctx.Profile.IsElseIf(a)
	}, matchKind(rules.Funcs))
	return funcDepth + lambdaDepth + stmtDepth
}

func (s *CognitiveStats) computeBooleans(ctx *Context, n *parser.Node, rules *lang.CognitiveRules) {
	if rules.PyLambdaBool {
		// Boolean operators under a lambda pay the lambda depth once,
		// at the outermost operator of the chain.
		inChain := n.CountSpecificAncestors(matchKind(rules.BoolExpr), matchKind(rules.Lambdas))
		if inChain == 0 {
			s.structural += n.CountSpecificAncestors(
				matchKind(rules.Lambdas),
				func(a *parser.Node) bool {
					return rules.BoolReset[a.Kind()] || rules.Nesting[a.Kind()]
				},
			)
		}
	}
	for i := 0; i < n.ChildCount(); i++ {
		child := n.Child(i)
		if rules.BoolOps[child.Kind()] {
			s.structural = s.boolSeq.evalBasedOnPrev(child.Kind(), s.structural)
		}
	}
}

// Merge folds a closed child space into this one.
func (s *CognitiveStats) Merge(other *CognitiveStats) {
	s.sum += other.sum
	s.min = minf(s.min, other.min)
	s.max = maxf(s.max, other.max)
}

func (s *CognitiveStats) closeSpace() {
	s.min = minf(s.min, float64(s.structural))
	s.max = maxf(s.max, float64(s.structural))
	s.sum += s.structural
}

func (s *CognitiveStats) finalize(totalFuncs int) {
	s.totalFuncs = totalFuncs
}

// Cognitive returns the complexity summed over this space and its
// descendants.
func (s *CognitiveStats) Cognitive() float64 { return float64(s.sum) }

// Average divides the sum by the callables in the space; NaN when there
// are none.
func (s *CognitiveStats) Average() float64 {
	if s.totalFuncs == 0 {
		return math.NaN()
	}
	return s.Cognitive() / float64(s.totalFuncs)
}

// Min returns the smallest per-space value seen.
func (s *CognitiveStats) Min() float64 { return s.min }

// Max returns the largest per-space value seen.
func (s *CognitiveStats) Max() float64 { return s.max }

// CognitiveReport is the serializable snapshot.
type CognitiveReport struct {
	Sum     *float64 `json:"sum" yaml:"sum" toml:"sum,omitempty"`
	Average *float64 `json:"average" yaml:"average" toml:"average,omitempty"`
	Min     *float64 `json:"min" yaml:"min" toml:"min,omitempty"`
	Max     *float64 `json:"max" yaml:"max" toml:"max,omitempty"`
}

// Report snapshots the stats.
func (s *CognitiveStats) Report() CognitiveReport {
	return CognitiveReport{
		Sum:     fin(s.Cognitive()),
		Average: fin(s.Average()),
		Min:     fin(s.Min()),
		Max:     fin(s.Max()),
	}
}
