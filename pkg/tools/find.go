package tools

import (
	"strconv"

	"github.com/panbanda/augur/pkg/lang"
	"github.com/panbanda/augur/pkg/parser"
)

// Filter selects nodes by a kind-name keyword or a numeric kind id.
type Filter struct {
	keyword string
	kindID  uint16
	byID    bool
}

// ParseFilter builds a filter from a keyword (call, comment, error,
// string, function) or a decimal kind id.
func ParseFilter(s string) Filter {
	if id, err := strconv.ParseUint(s, 10, 16); err == nil {
		return Filter{kindID: uint16(id), byID: true}
	}
	return Filter{keyword: s}
}

func (f Filter) matches(profile lang.Lang, n *parser.Node) bool {
	if f.byID {
		return n.KindID() == f.kindID
	}
	switch f.keyword {
	case "call":
		return profile.IsCall(n)
	case "comment":
		return profile.IsComment(n)
	case "error":
		return n.IsError()
	case "string":
		return profile.IsString(n)
	case "function":
		return profile.IsFunc(n)
	default:
		return n.Kind() == f.keyword
	}
}

// LineFilter restricts matches to a 1-based line span. Zero bounds are
// open ends.
type LineFilter struct {
	Start int
	End   int
}

func (l LineFilter) contains(n *parser.Node) bool {
	line := n.StartRow() + 1
	if l.Start > 0 && line < l.Start {
		return false
	}
	if l.End > 0 && line > l.End {
		return false
	}
	return true
}

// Find returns every node matching any filter, in source order.
func Find(result *parser.ParseResult, filters []Filter, lines LineFilter) []*parser.Node {
	profile := lang.For(result.Language)
	if profile == nil {
		return nil
	}

	var found []*parser.Node
	result.Root().ActOnNode(func(n *parser.Node) {
		if !lines.contains(n) {
			return
		}
		for _, f := range filters {
			if f.matches(profile, n) {
				found = append(found, n)
				return
			}
		}
	})
	return found
}

// Count returns how many nodes match any filter and how many nodes were
// inspected in total.
func Count(result *parser.ParseResult, filters []Filter) (matched, total int) {
	profile := lang.For(result.Language)
	if profile == nil {
		return 0, 0
	}

	result.Root().ActOnNode(func(n *parser.Node) {
		total++
		for _, f := range filters {
			if f.matches(profile, n) {
				matched++
				return
			}
		}
	})
	return matched, total
}
