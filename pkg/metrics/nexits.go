package metrics

import (
	"math"

	"github.com/panbanda/augur/pkg/parser"
)

// ExitStats counts the explicit exit points of one space.
type ExitStats struct {
	exit       int
	sum        int
	min        float64
	max        float64
	totalFuncs int
}

// NewExitStats starts an empty space.
func NewExitStats() ExitStats {
	return ExitStats{min: math.Inf(1), totalFuncs: 1}
}

// Compute counts exit statements; languages with implicit tail exits add a
// bonus on the function node itself.
func (s *ExitStats) Compute(ctx *Context, n *parser.Node) {
	if ctx.Profile.IsExitPoint(n) {
		s.exit++
	}
	s.exit += ctx.Profile.ExitBonus(n)
}

// Merge folds a closed child space into this one.
func (s *ExitStats) Merge(other *ExitStats) {
	s.sum += other.sum
	s.min = minf(s.min, other.min)
	s.max = maxf(s.max, other.max)
}

func (s *ExitStats) closeSpace() {
	s.min = minf(s.min, float64(s.exit))
	s.max = maxf(s.max, float64(s.exit))
	s.sum += s.exit
}

func (s *ExitStats) finalize(totalFuncs int) {
	s.totalFuncs = totalFuncs
}

// Exit returns the exit points of the space and its descendants.
func (s *ExitStats) Exit() float64 { return float64(s.sum) }

// Average divides the exits by the callables; NaN when there are none.
func (s *ExitStats) Average() float64 {
	if s.totalFuncs == 0 {
		return math.NaN()
	}
	return s.Exit() / float64(s.totalFuncs)
}

// ExitReport is the serializable snapshot.
type ExitReport struct {
	Sum     *float64 `json:"sum" yaml:"sum" toml:"sum,omitempty"`
	Average *float64 `json:"average" yaml:"average" toml:"average,omitempty"`
	Min     *float64 `json:"min" yaml:"min" toml:"min,omitempty"`
	Max     *float64 `json:"max" yaml:"max" toml:"max,omitempty"`
}

// Report snapshots the stats.
func (s *ExitStats) Report() ExitReport {
	return ExitReport{
		Sum:     fin(s.Exit()),
		Average: fin(s.Average()),
		Min:     fin(s.min),
		Max:     fin(s.max),
	}
}
