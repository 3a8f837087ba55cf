package metrics

import (
	"github.com/panbanda/augur/pkg/lang"
	"github.com/panbanda/augur/pkg/parser"
)

// WmcStats sums the cyclomatic complexity of the methods of a class.
// Only meaningful for Java; other languages leave it at zero.
type WmcStats struct {
	wmc       float64
	spaceKind lang.SpaceKind
}

// MergeSpaces rolls a closing child space into its parent: methods feed
// their class, classes feed the unit.
func (s *WmcStats) MergeSpaces(language parser.Language, childKind, parentKind lang.SpaceKind, child *CodeMetrics) {
	if language != parser.LangJava {
		return
	}
	switch {
	case childKind == lang.SpaceFunction && parentKind == lang.SpaceClass,
		childKind == lang.SpaceFunction && parentKind == lang.SpaceInterface:
		s.spaceKind = parentKind
		s.wmc += child.Cyclomatic.Sum()
	case (childKind == lang.SpaceClass || childKind == lang.SpaceInterface) &&
		parentKind == lang.SpaceUnit:
		s.spaceKind = lang.SpaceUnit
		s.wmc += child.Wmc.wmc
	}
}

// Wmc returns the weighted methods of the space.
func (s *WmcStats) Wmc() float64 { return s.wmc }

// SpaceKind returns the kind the value was attributed to.
func (s *WmcStats) SpaceKind() lang.SpaceKind { return s.spaceKind }

// WmcReport is the serializable snapshot.
type WmcReport struct {
	Wmc *float64 `json:"wmc" yaml:"wmc" toml:"wmc,omitempty"`
}

// Report snapshots the stats.
func (s *WmcStats) Report() WmcReport {
	return WmcReport{Wmc: fin(s.wmc)}
}
