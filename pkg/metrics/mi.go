package metrics

import "math"

// MiStats derives the maintainability index family from the already
// finalized Halstead, cyclomatic and LOC values of a space.
type MiStats struct {
	halsteadLength     float64
	halsteadVocabulary float64
	halsteadVolume     float64
	cyclomatic         float64
	sloc               float64
	commentsPercentage float64
}

// Compute captures the inputs of the formulas when a space closes.
func (s *MiStats) Compute(loc *LocStats, cyclomatic *CyclomaticStats, halstead *HalsteadStats) {
	s.halsteadLength = halstead.Length()
	s.halsteadVocabulary = halstead.Vocabulary()
	s.halsteadVolume = halstead.Volume()
	s.cyclomatic = cyclomatic.Cyclomatic()
	s.sloc = loc.Sloc()
	s.commentsPercentage = loc.Cloc() / s.sloc
}

// MiOriginal returns the index from the original formula.
func (s *MiStats) MiOriginal() float64 {
	return 171 - 5.2*math.Log(s.halsteadVolume) - 0.23*s.cyclomatic - 16.2*math.Log(s.sloc)
}

// MiSei returns the SEI derivative formula.
func (s *MiStats) MiSei() float64 {
	return 171 - 5.2*math.Log2(s.halsteadVolume) - 0.23*s.cyclomatic -
		16.2*math.Log2(s.sloc) + 50*math.Sin(math.Sqrt(2.4*s.commentsPercentage))
}

// MiVisualStudio returns the Visual Studio rescaling, clamped at zero.
func (s *MiStats) MiVisualStudio() float64 {
	formula := 171 - 5.2*math.Log(s.halsteadVolume) - 0.23*s.cyclomatic - 16.2*math.Log(s.sloc)
	return math.Max(formula*100/171, 0)
}

// MiReport is the serializable snapshot.
type MiReport struct {
	MiOriginal     *float64 `json:"mi_original" yaml:"mi_original" toml:"mi_original,omitempty"`
	MiSei          *float64 `json:"mi_sei" yaml:"mi_sei" toml:"mi_sei,omitempty"`
	MiVisualStudio *float64 `json:"mi_visual_studio" yaml:"mi_visual_studio" toml:"mi_visual_studio,omitempty"`
}

// Report snapshots the stats.
func (s *MiStats) Report() MiReport {
	return MiReport{
		MiOriginal:     fin(s.MiOriginal()),
		MiSei:          fin(s.MiSei()),
		MiVisualStudio: fin(s.MiVisualStudio()),
	}
}
