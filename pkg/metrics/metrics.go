// Package metrics implements the per-space metric kernels. Every kernel
// carries an accumulator updated once per node during the single traversal,
// a merge law folding a closed child space into its parent, and a finalize
// step deriving averages and formula values when a space closes.
package metrics

import (
	"math"

	"github.com/panbanda/augur/pkg/lang"
	"github.com/panbanda/augur/pkg/parser"
)

// Context carries what a kernel may inspect beyond the node itself.
type Context struct {
	Language parser.Language
	Profile  lang.Lang
	Code     []byte
}

// NewContext builds a kernel context for a language, or nil when the
// language has no profile.
func NewContext(language parser.Language, code []byte) *Context {
	profile := lang.For(language)
	if profile == nil {
		return nil
	}
	return &Context{Language: language, Profile: profile, Code: code}
}

// CodeMetrics bundles every kernel accumulator of one space.
type CodeMetrics struct {
	NArgs      NArgsStats
	NExits     ExitStats
	Cognitive  CognitiveStats
	Cyclomatic CyclomaticStats
	Halstead   HalsteadStats
	Loc        LocStats
	Nom        NomStats
	Mi         MiStats
	Abc        AbcStats
	Wmc        WmcStats
	Npa        NpaStats
	Npm        NpmStats
}

// NewCodeMetrics returns a bundle with every kernel at its default state.
func NewCodeMetrics() CodeMetrics {
	return CodeMetrics{
		Cyclomatic: NewCyclomaticStats(),
		Cognitive:  NewCognitiveStats(),
		NExits:     NewExitStats(),
		NArgs:      NewNArgsStats(),
		Nom:        NewNomStats(),
		Loc:        NewLocStats(),
		Abc:        NewAbcStats(),
		Npa:        NewNpaStats(),
		Npm:        NewNpmStats(),
	}
}

// Compute dispatches one node to every kernel.
func (m *CodeMetrics) Compute(ctx *Context, n *parser.Node, maps *HalsteadMaps, isFuncSpace, isUnit bool) {
	m.Cognitive.Compute(ctx, n)
	m.Cyclomatic.Compute(ctx, n)
	maps.Compute(ctx, n)
	m.Loc.Compute(ctx, n, isFuncSpace, isUnit)
	m.Nom.Compute(ctx, n)
	m.NArgs.Compute(ctx, n)
	m.NExits.Compute(ctx, n)
	m.Abc.Compute(ctx, n)
	m.Npa.Compute(ctx, n)
	m.Npm.Compute(ctx, n)
}

// Merge folds a closed child space into this one.
func (m *CodeMetrics) Merge(other *CodeMetrics) {
	m.Cognitive.Merge(&other.Cognitive)
	m.Cyclomatic.Merge(&other.Cyclomatic)
	m.Loc.Merge(&other.Loc)
	m.Nom.Merge(&other.Nom)
	m.NArgs.Merge(&other.NArgs)
	m.NExits.Merge(&other.NExits)
	m.Abc.Merge(&other.Abc)
	m.Npa.Merge(&other.Npa)
	m.Npm.Merge(&other.Npm)
}

// CloseSpace records the space-local values into the rolling
// min/max/sum aggregates. Called exactly once, when the space closes.
func (m *CodeMetrics) CloseSpace() {
	m.Cyclomatic.closeSpace()
	m.Cognitive.closeSpace()
	m.NExits.closeSpace()
	m.NArgs.closeSpace()
	m.Nom.closeSpace()
	m.Abc.closeSpace()
}

// FinalizeAverages fixes the per-callable averages from the closed NOM
// tallies.
func (m *CodeMetrics) FinalizeAverages() {
	functions := int(m.Nom.FunctionsSum())
	closures := int(m.Nom.ClosuresSum())
	total := functions + closures
	m.Cognitive.finalize(total)
	m.NExits.finalize(total)
	m.NArgs.finalize(functions, closures)
}

// fin converts a float into its serializable form: nil for the IEEE-754
// non-finite values, which formatters render as null.
func fin(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

func minf(a, b float64) float64 {
	return math.Min(a, b)
}

func maxf(a, b float64) float64 {
	return math.Max(a, b)
}

// CodeMetricsReport is the serializable snapshot of a bundle.
type CodeMetricsReport struct {
	NArgs      NArgsReport      `json:"nargs" yaml:"nargs" toml:"nargs"`
	NExits     ExitReport       `json:"nexits" yaml:"nexits" toml:"nexits"`
	Cognitive  CognitiveReport  `json:"cognitive" yaml:"cognitive" toml:"cognitive"`
	Cyclomatic CyclomaticReport `json:"cyclomatic" yaml:"cyclomatic" toml:"cyclomatic"`
	Halstead   HalsteadReport   `json:"halstead" yaml:"halstead" toml:"halstead"`
	Loc        LocReport        `json:"loc" yaml:"loc" toml:"loc"`
	Nom        NomReport        `json:"nom" yaml:"nom" toml:"nom"`
	Mi         MiReport         `json:"mi" yaml:"mi" toml:"mi"`
	Abc        AbcReport        `json:"abc" yaml:"abc" toml:"abc"`
	Wmc        WmcReport        `json:"wmc" yaml:"wmc" toml:"wmc"`
	Npa        NpaReport        `json:"npa" yaml:"npa" toml:"npa"`
	Npm        NpmReport        `json:"npm" yaml:"npm" toml:"npm"`
}

// Report snapshots every kernel for serialization.
func (m *CodeMetrics) Report() CodeMetricsReport {
	return CodeMetricsReport{
		NArgs:      m.NArgs.Report(),
		NExits:     m.NExits.Report(),
		Cognitive:  m.Cognitive.Report(),
		Cyclomatic: m.Cyclomatic.Report(),
		Halstead:   m.Halstead.Report(),
		Loc:        m.Loc.Report(),
		Nom:        m.Nom.Report(),
		Mi:         m.Mi.Report(),
		Abc:        m.Abc.Report(),
		Wmc:        m.Wmc.Report(),
		Npa:        m.Npa.Report(),
		Npm:        m.Npm.Report(),
	}
}
