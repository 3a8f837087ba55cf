package metrics

import (
	"github.com/panbanda/augur/pkg/parser"
)

// LocStats accumulates the LOC family for one space.
type LocStats struct {
	start            int
	end              int
	unit             bool
	lines            map[int]struct{}
	logicalLines     int
	onlyCommentLines int
	codeCommentLines int
	commentLineEnd   int
	hasCommentEnd    bool
}

// NewLocStats starts an empty space.
func NewLocStats() LocStats {
	return LocStats{lines: make(map[int]struct{})}
}

// Compute classifies one node for the LOC family.
func (s *LocStats) Compute(ctx *Context, n *parser.Node, isFuncSpace, isUnit bool) {
	rules := ctx.Profile.Loc()
	if rules == nil {
		return
	}

	start := n.StartRow()
	end := n.EndRow()
	if isFuncSpace {
		s.start = start
		s.end = end
		s.unit = isUnit
	}

	kind := n.Kind()
	switch {
	case rules.Comments[kind]:
		s.addClocLines(start, end)
	case rules.Ignore[kind]:
		// Strings and scope containers carry no lines of their own.
	case rules.Statements[kind]:
		s.logicalLines++
	case rules.TopCall[kind]:
		anchored := n.CountSpecificAncestors(
			func(a *parser.Node) bool { return rules.TopCallAncestors[a.Kind()] },
			func(a *parser.Node) bool { return rules.TopCallStop[a.Kind()] },
		)
		if anchored == 0 {
			s.logicalLines++
		}
	default:
		s.checkCommentEndsOnCodeLine(start)
		s.lines[start] = struct{}{}
	}
}

// addClocLines discriminates comments next to code from comments on
// independent lines; the distinction keeps the blank count honest.
func (s *LocStats) addClocLines(start, end int) {
	diff := end - start
	_, afterCode := s.lines[start]
	switch {
	case afterCode && diff == 0:
		s.codeCommentLines++
	case afterCode && diff > 0:
		s.codeCommentLines++
		s.onlyCommentLines += diff
	default:
		s.onlyCommentLines += diff + 1
		s.commentLineEnd = end
		s.hasCommentEnd = true
	}
}

// checkCommentEndsOnCodeLine reclassifies a comment that sits entirely
// before code on the same line.
func (s *LocStats) checkCommentEndsOnCodeLine(startCodeLine int) {
	if !s.hasCommentEnd || s.commentLineEnd != startCodeLine {
		return
	}
	if _, seen := s.lines[startCodeLine]; !seen {
		s.onlyCommentLines--
		s.codeCommentLines++
	}
}

// Merge folds a closed child space into this one.
func (s *LocStats) Merge(other *LocStats) {
	for l := range other.lines {
		s.lines[l] = struct{}{}
	}
	s.logicalLines += other.logicalLines
	s.onlyCommentLines += other.onlyCommentLines
	s.codeCommentLines += other.codeCommentLines
}

// Sloc counts the lines in the scope; a function signature line counts,
// the unit has no signature.
func (s *LocStats) Sloc() float64 {
	if s.unit {
		return float64(s.end - s.start)
	}
	return float64(s.end - s.start + 1)
}

// Ploc counts the instruction lines in the scope.
func (s *LocStats) Ploc() float64 { return float64(len(s.lines)) }

// Lloc counts the statements in the scope.
func (s *LocStats) Lloc() float64 { return float64(s.logicalLines) }

// Cloc counts comment lines regardless of placement.
func (s *LocStats) Cloc() float64 {
	return float64(s.onlyCommentLines + s.codeCommentLines)
}

// Blank counts the lines holding neither code nor comments.
func (s *LocStats) Blank() float64 {
	blank := s.Sloc() - s.Ploc() - float64(s.onlyCommentLines)
	if blank < 0 {
		return 0
	}
	return blank
}

// LocReport is the serializable snapshot.
type LocReport struct {
	Sloc  *float64 `json:"sloc" yaml:"sloc" toml:"sloc,omitempty"`
	Ploc  *float64 `json:"ploc" yaml:"ploc" toml:"ploc,omitempty"`
	Lloc  *float64 `json:"lloc" yaml:"lloc" toml:"lloc,omitempty"`
	Cloc  *float64 `json:"cloc" yaml:"cloc" toml:"cloc,omitempty"`
	Blank *float64 `json:"blank" yaml:"blank" toml:"blank,omitempty"`
}

// Report snapshots the stats.
func (s *LocStats) Report() LocReport {
	return LocReport{
		Sloc:  fin(s.Sloc()),
		Ploc:  fin(s.Ploc()),
		Lloc:  fin(s.Lloc()),
		Cloc:  fin(s.Cloc()),
		Blank: fin(s.Blank()),
	}
}
