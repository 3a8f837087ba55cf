package metrics

import (
	"math"

	"github.com/panbanda/augur/pkg/lang"
	"github.com/panbanda/augur/pkg/parser"
)

// HalsteadMaps are the raw multisets: operators keyed by kind id, operands
// keyed by their source spelling.
type HalsteadMaps struct {
	Operators map[uint16]uint64
	Operands  map[string]uint64
}

// NewHalsteadMaps returns empty multisets.
func NewHalsteadMaps() *HalsteadMaps {
	return &HalsteadMaps{
		Operators: make(map[uint16]uint64),
		Operands:  make(map[string]uint64),
	}
}

// Compute classifies one node and bumps its multiset entry.
func (m *HalsteadMaps) Compute(ctx *Context, n *parser.Node) {
	switch ctx.Profile.OpType(n) {
	case lang.OpOperator:
		m.Operators[n.KindID()]++
	case lang.OpOperand:
		m.Operands[n.Text(ctx.Code)]++
	}
}

// Merge adds the other multisets pointwise.
func (m *HalsteadMaps) Merge(other *HalsteadMaps) {
	for k, v := range other.Operators {
		m.Operators[k] += v
	}
	for k, v := range other.Operands {
		m.Operands[k] += v
	}
}

// Finalize writes the counts into a stats value.
func (m *HalsteadMaps) Finalize(stats *HalsteadStats) {
	stats.uOperators = float64(len(m.Operators))
	stats.uOperands = float64(len(m.Operands))
	var n1, n2 uint64
	for _, v := range m.Operators {
		n1 += v
	}
	for _, v := range m.Operands {
		n2 += v
	}
	stats.operators = float64(n1)
	stats.operands = float64(n2)
}

// HalsteadStats is the finalized Halstead suite of one space.
type HalsteadStats struct {
	uOperators float64
	operators  float64
	uOperands  float64
	operands   float64
}

// UOperators returns n1, the distinct operators.
func (s *HalsteadStats) UOperators() float64 { return s.uOperators }

// Operators returns N1, the total operators.
func (s *HalsteadStats) Operators() float64 { return s.operators }

// UOperands returns n2, the distinct operands.
func (s *HalsteadStats) UOperands() float64 { return s.uOperands }

// Operands returns N2, the total operands.
func (s *HalsteadStats) Operands() float64 { return s.operands }

// Length returns the program length.
func (s *HalsteadStats) Length() float64 { return s.operators + s.operands }

// EstimatedProgramLength returns the calculated estimated program length.
func (s *HalsteadStats) EstimatedProgramLength() float64 {
	return s.uOperators*math.Log2(s.uOperators) + s.uOperands*math.Log2(s.uOperands)
}

// PurityRatio returns the purity ratio.
func (s *HalsteadStats) PurityRatio() float64 {
	return s.EstimatedProgramLength() / s.Length()
}

// Vocabulary returns the program vocabulary.
func (s *HalsteadStats) Vocabulary() float64 { return s.uOperators + s.uOperands }

// Volume returns the program volume.
func (s *HalsteadStats) Volume() float64 {
	return s.Length() * math.Log2(s.Vocabulary())
}

// Difficulty returns the estimated difficulty required to program.
func (s *HalsteadStats) Difficulty() float64 {
	return s.uOperators / 2 * s.operands / s.uOperands
}

// Level returns the inverse of the difficulty.
func (s *HalsteadStats) Level() float64 { return 1 / s.Difficulty() }

// Effort returns the estimated effort required to program.
func (s *HalsteadStats) Effort() float64 { return s.Difficulty() * s.Volume() }

// Time returns the estimated time required to program, in seconds.
func (s *HalsteadStats) Time() float64 { return s.Effort() / 18 }

// Bugs returns the estimated number of delivered bugs.
func (s *HalsteadStats) Bugs() float64 {
	return math.Pow(s.Effort(), 2.0/3.0) / 3000
}

// HalsteadReport is the serializable snapshot.
type HalsteadReport struct {
	N1Unique               *float64 `json:"n1" yaml:"n1" toml:"n1,omitempty"`
	N1                     *float64 `json:"N1" yaml:"N1" toml:"N1,omitempty"`
	N2Unique               *float64 `json:"n2" yaml:"n2" toml:"n2,omitempty"`
	N2                     *float64 `json:"N2" yaml:"N2" toml:"N2,omitempty"`
	Length                 *float64 `json:"length" yaml:"length" toml:"length,omitempty"`
	EstimatedProgramLength *float64 `json:"estimated_program_length" yaml:"estimated_program_length" toml:"estimated_program_length,omitempty"`
	PurityRatio            *float64 `json:"purity_ratio" yaml:"purity_ratio" toml:"purity_ratio,omitempty"`
	Vocabulary             *float64 `json:"vocabulary" yaml:"vocabulary" toml:"vocabulary,omitempty"`
	Volume                 *float64 `json:"volume" yaml:"volume" toml:"volume,omitempty"`
	Difficulty             *float64 `json:"difficulty" yaml:"difficulty" toml:"difficulty,omitempty"`
	Level                  *float64 `json:"level" yaml:"level" toml:"level,omitempty"`
	Effort                 *float64 `json:"effort" yaml:"effort" toml:"effort,omitempty"`
	Time                   *float64 `json:"time" yaml:"time" toml:"time,omitempty"`
	Bugs                   *float64 `json:"bugs" yaml:"bugs" toml:"bugs,omitempty"`
}

// Report snapshots the stats.
func (s *HalsteadStats) Report() HalsteadReport {
	return HalsteadReport{
		N1Unique:               fin(s.UOperators()),
		N1:                     fin(s.Operators()),
		N2Unique:               fin(s.UOperands()),
		N2:                     fin(s.Operands()),
		Length:                 fin(s.Length()),
		EstimatedProgramLength: fin(s.EstimatedProgramLength()),
		PurityRatio:            fin(s.PurityRatio()),
		Vocabulary:             fin(s.Vocabulary()),
		Volume:                 fin(s.Volume()),
		Difficulty:             fin(s.Difficulty()),
		Level:                  fin(s.Level()),
		Effort:                 fin(s.Effort()),
		Time:                   fin(s.Time()),
		Bugs:                   fin(s.Bugs()),
	}
}
