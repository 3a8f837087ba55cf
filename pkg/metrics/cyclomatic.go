package metrics

import (
	"math"

	"github.com/panbanda/augur/pkg/parser"
)

// CyclomaticStats accumulates McCabe complexity for one space plus the
// rolling aggregates over its descendants.
type CyclomaticStats struct {
	cyclomatic float64
	sum        float64
	n          int
	min        float64
	max        float64
}

// NewCyclomaticStats starts a space at the base complexity of one.
func NewCyclomaticStats() CyclomaticStats {
	return CyclomaticStats{
		cyclomatic: 1,
		n:          1,
		min:        math.Inf(1),
		max:        0,
	}
}

// Compute adds one per decision point.
func (s *CyclomaticStats) Compute(ctx *Context, n *parser.Node) {
	if ctx.Profile.IsDecisionPoint(n) {
		s.cyclomatic++
	}
}

// Merge folds a closed child space into this one.
func (s *CyclomaticStats) Merge(other *CyclomaticStats) {
	s.max = maxf(s.max, other.max)
	s.min = minf(s.min, other.min)
	s.sum += other.sum
	s.n += other.n
}

func (s *CyclomaticStats) closeSpace() {
	s.max = maxf(s.max, s.cyclomatic)
	s.min = minf(s.min, s.cyclomatic)
	s.sum += s.cyclomatic
}

// Cyclomatic returns the space-local complexity.
func (s *CyclomaticStats) Cyclomatic() float64 { return s.cyclomatic }

// Sum returns the complexity summed over this space and its descendants.
func (s *CyclomaticStats) Sum() float64 { return s.sum }

// Average returns the sum divided by the number of spaces.
func (s *CyclomaticStats) Average() float64 { return s.sum / float64(s.n) }

// Min returns the smallest per-space complexity seen.
func (s *CyclomaticStats) Min() float64 { return s.min }

// Max returns the largest per-space complexity seen.
func (s *CyclomaticStats) Max() float64 { return s.max }

// CyclomaticReport is the serializable snapshot.
type CyclomaticReport struct {
	Sum     *float64 `json:"sum" yaml:"sum" toml:"sum,omitempty"`
	Average *float64 `json:"average" yaml:"average" toml:"average,omitempty"`
	Min     *float64 `json:"min" yaml:"min" toml:"min,omitempty"`
	Max     *float64 `json:"max" yaml:"max" toml:"max,omitempty"`
}

// Report snapshots the stats.
func (s *CyclomaticStats) Report() CyclomaticReport {
	return CyclomaticReport{
		Sum:     fin(s.Sum()),
		Average: fin(s.Average()),
		Min:     fin(s.Min()),
		Max:     fin(s.Max()),
	}
}
