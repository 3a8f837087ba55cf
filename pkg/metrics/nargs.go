package metrics

import (
	"math"

	"github.com/panbanda/augur/pkg/parser"
)

// NArgsStats counts the declared arguments of the callables in one space.
type NArgsStats struct {
	fnNargs        int
	closureNargs   int
	fnSum          int
	closureSum     int
	fnMin          float64
	fnMax          float64
	closureMin     float64
	closureMax     float64
	totalFunctions int
	totalClosures  int
}

// NewNArgsStats starts an empty space.
func NewNArgsStats() NArgsStats {
	return NArgsStats{
		fnMin:      math.Inf(1),
		closureMin: math.Inf(1),
	}
}

func countArgs(ctx *Context, n *parser.Node) int {
	params := ctx.Profile.ParamsOf(n)
	if params == nil {
		return 0
	}
	if params.ChildCount() == 0 {
		// A bare identifier parameter, e.g. an unparenthesized arrow arg.
		if params.IsNamed() {
			return 1
		}
		return 0
	}
	count := 0
	params.ActOnChild(func(child *parser.Node) {
		if !ctx.Profile.IsNonArg(child) {
			count++
		}
	})
	return count
}

// Compute reads the parameter list of function and closure nodes.
func (s *NArgsStats) Compute(ctx *Context, n *parser.Node) {
	switch {
	case ctx.Profile.IsFunc(n):
		s.fnNargs += countArgs(ctx, n)
	case ctx.Profile.IsClosure(n):
		s.closureNargs += countArgs(ctx, n)
	}
}

// Merge folds a closed child space into this one.
func (s *NArgsStats) Merge(other *NArgsStats) {
	s.fnSum += other.fnSum
	s.closureSum += other.closureSum
	s.fnMin = minf(s.fnMin, other.fnMin)
	s.fnMax = maxf(s.fnMax, other.fnMax)
	s.closureMin = minf(s.closureMin, other.closureMin)
	s.closureMax = maxf(s.closureMax, other.closureMax)
}

func (s *NArgsStats) closeSpace() {
	s.fnMin = minf(s.fnMin, float64(s.fnNargs))
	s.fnMax = maxf(s.fnMax, float64(s.fnNargs))
	s.closureMin = minf(s.closureMin, float64(s.closureNargs))
	s.closureMax = maxf(s.closureMax, float64(s.closureNargs))
	s.fnSum += s.fnNargs
	s.closureSum += s.closureNargs
}

func (s *NArgsStats) finalize(totalFunctions, totalClosures int) {
	s.totalFunctions = totalFunctions
	s.totalClosures = totalClosures
}

// FnArgsSum returns the function arguments in the space and below.
func (s *NArgsStats) FnArgsSum() float64 { return float64(s.fnSum) }

// ClosureArgsSum returns the closure arguments in the space and below.
func (s *NArgsStats) ClosureArgsSum() float64 { return float64(s.closureSum) }

// Total returns every declared argument in the space and below.
func (s *NArgsStats) Total() float64 { return s.FnArgsSum() + s.ClosureArgsSum() }

// FnArgsAverage averages the function arguments over the functions.
func (s *NArgsStats) FnArgsAverage() float64 {
	return s.FnArgsSum() / float64(max(s.totalFunctions, 1))
}

// ClosureArgsAverage averages the closure arguments over the closures.
func (s *NArgsStats) ClosureArgsAverage() float64 {
	return s.ClosureArgsSum() / float64(max(s.totalClosures, 1))
}

// Average averages every argument over every callable.
func (s *NArgsStats) Average() float64 {
	return s.Total() / float64(max(s.totalFunctions+s.totalClosures, 1))
}

// NArgsReport is the serializable snapshot.
type NArgsReport struct {
	TotalFunctions   *float64 `json:"total_functions" yaml:"total_functions" toml:"total_functions,omitempty"`
	TotalClosures    *float64 `json:"total_closures" yaml:"total_closures" toml:"total_closures,omitempty"`
	AverageFunctions *float64 `json:"average_functions" yaml:"average_functions" toml:"average_functions,omitempty"`
	AverageClosures  *float64 `json:"average_closures" yaml:"average_closures" toml:"average_closures,omitempty"`
	Total            *float64 `json:"total" yaml:"total" toml:"total,omitempty"`
	Average          *float64 `json:"average" yaml:"average" toml:"average,omitempty"`
	FunctionsMin     *float64 `json:"functions_min" yaml:"functions_min" toml:"functions_min,omitempty"`
	FunctionsMax     *float64 `json:"functions_max" yaml:"functions_max" toml:"functions_max,omitempty"`
	ClosuresMin      *float64 `json:"closures_min" yaml:"closures_min" toml:"closures_min,omitempty"`
	ClosuresMax      *float64 `json:"closures_max" yaml:"closures_max" toml:"closures_max,omitempty"`
}

// Report snapshots the stats.
func (s *NArgsStats) Report() NArgsReport {
	return NArgsReport{
		TotalFunctions:   fin(s.FnArgsSum()),
		TotalClosures:    fin(s.ClosureArgsSum()),
		AverageFunctions: fin(s.FnArgsAverage()),
		AverageClosures:  fin(s.ClosureArgsAverage()),
		Total:            fin(s.Total()),
		Average:          fin(s.Average()),
		FunctionsMin:     fin(s.fnMin),
		FunctionsMax:     fin(s.fnMax),
		ClosuresMin:      fin(s.closureMin),
		ClosuresMax:      fin(s.closureMax),
	}
}
