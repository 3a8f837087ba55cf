package metrics

import (
	"math"

	"github.com/panbanda/augur/pkg/parser"
)

// NomStats counts the callables defined in one space.
type NomStats struct {
	functions    int
	closures     int
	functionsSum int
	closuresSum  int
	functionsMin float64
	functionsMax float64
	closuresMin  float64
	closuresMax  float64
}

// NewNomStats starts an empty space.
func NewNomStats() NomStats {
	return NomStats{
		functionsMin: math.Inf(1),
		closuresMin:  math.Inf(1),
	}
}

// Compute counts function definitions and closures.
func (s *NomStats) Compute(ctx *Context, n *parser.Node) {
	switch {
	case ctx.Profile.IsFunc(n):
		s.functions++
	case ctx.Profile.IsClosure(n):
		s.closures++
	}
}

// Merge folds a closed child space into this one.
func (s *NomStats) Merge(other *NomStats) {
	s.functionsSum += other.functionsSum
	s.closuresSum += other.closuresSum
	s.functionsMin = minf(s.functionsMin, other.functionsMin)
	s.functionsMax = maxf(s.functionsMax, other.functionsMax)
	s.closuresMin = minf(s.closuresMin, other.closuresMin)
	s.closuresMax = maxf(s.closuresMax, other.closuresMax)
}

func (s *NomStats) closeSpace() {
	s.functionsMin = minf(s.functionsMin, float64(s.functions))
	s.functionsMax = maxf(s.functionsMax, float64(s.functions))
	s.closuresMin = minf(s.closuresMin, float64(s.closures))
	s.closuresMax = maxf(s.closuresMax, float64(s.closures))
	s.functionsSum += s.functions
	s.closuresSum += s.closures
}

// FunctionsSum counts function definitions in the space and below.
func (s *NomStats) FunctionsSum() float64 { return float64(s.functionsSum) }

// ClosuresSum counts closures in the space and below.
func (s *NomStats) ClosuresSum() float64 { return float64(s.closuresSum) }

// Total counts every callable in the space and below.
func (s *NomStats) Total() float64 { return s.FunctionsSum() + s.ClosuresSum() }

// NomReport is the serializable snapshot.
type NomReport struct {
	Functions    *float64 `json:"functions" yaml:"functions" toml:"functions,omitempty"`
	Closures     *float64 `json:"closures" yaml:"closures" toml:"closures,omitempty"`
	Total        *float64 `json:"total" yaml:"total" toml:"total,omitempty"`
	FunctionsMin *float64 `json:"functions_min" yaml:"functions_min" toml:"functions_min,omitempty"`
	FunctionsMax *float64 `json:"functions_max" yaml:"functions_max" toml:"functions_max,omitempty"`
	ClosuresMin  *float64 `json:"closures_min" yaml:"closures_min" toml:"closures_min,omitempty"`
	ClosuresMax  *float64 `json:"closures_max" yaml:"closures_max" toml:"closures_max,omitempty"`
}

// Report snapshots the stats.
func (s *NomStats) Report() NomReport {
	return NomReport{
		Functions:    fin(s.FunctionsSum()),
		Closures:     fin(s.ClosuresSum()),
		Total:        fin(s.Total()),
		FunctionsMin: fin(s.functionsMin),
		FunctionsMax: fin(s.functionsMax),
		ClosuresMin:  fin(s.closuresMin),
		ClosuresMax:  fin(s.closuresMax),
	}
}
