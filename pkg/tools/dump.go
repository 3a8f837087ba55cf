package tools

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/panbanda/augur/pkg/lang"
	"github.com/panbanda/augur/pkg/parser"
)

// Span is the inclusive 1-based (start_row, start_col, end_row, end_col)
// of a node; nil when spans were not requested.
type Span *[4]int

// AstNode is the serializable form of a parse tree node.
type AstNode struct {
	Type     string     `json:"Type" yaml:"type" toml:"type"`
	Value    string     `json:"TextValue" yaml:"value" toml:"value"`
	Span     Span       `json:"Span" yaml:"span" toml:"span"`
	Children []*AstNode `json:"Children" yaml:"children" toml:"children"`
}

func nodeSpan(n *parser.Node, withSpan bool) Span {
	if !withSpan {
		return nil
	}
	return &[4]int{n.StartRow() + 1, n.StartCol() + 1, n.EndRow() + 1, n.EndCol() + 1}
}

// leafValue renders the source text of leaf nodes only, the way the AST
// endpoint reports them.
func leafValue(n *parser.Node, code []byte) string {
	if n.ChildCount() == 0 {
		return n.Text(code)
	}
	return ""
}

// BuildAst converts the parse tree into its serializable form. Comments
// are dropped when withComments is false.
func BuildAst(result *parser.ParseResult, withSpan, withComments bool) *AstNode {
	return buildAstNode(result.Root(), result, withSpan, withComments)
}

func buildAstNode(n *parser.Node, result *parser.ParseResult, withSpan, withComments bool) *AstNode {
	if !withComments {
		if profile := lang.For(result.Language); (profile != nil && profile.IsComment(n)) || n.Kind() == "comment" {
			return nil
		}
	}
	out := &AstNode{
		Type:  n.Kind(),
		Value: leafValue(n, result.Source),
		Span:  nodeSpan(n, withSpan),
	}
	for i := 0; i < n.ChildCount(); i++ {
		if child := buildAstNode(n.Child(i), result, withSpan, withComments); child != nil {
			out.Children = append(out.Children, child)
		}
	}
	return out
}

// DumpAst writes a colored tree rendering of the parse tree.
func DumpAst(w io.Writer, result *parser.ParseResult, lines LineFilter) {
	dumpNode(w, result, result.Root(), "", true, lines)
}

func dumpNode(w io.Writer, result *parser.ParseResult, n *parser.Node, prefix string, last bool, lines LineFilter) {
	if lines.contains(n) {
		branch := "├── "
		if last {
			branch = "└── "
		}
		if n.Parent() == nil {
			branch = ""
		}

		kind := color.New(color.FgBlue, color.Bold).Sprint(n.Kind())
		span := color.New(color.FgGreen).Sprintf(
			"[%d, %d] - [%d, %d]",
			n.StartRow()+1, n.StartCol()+1, n.EndRow()+1, n.EndCol()+1,
		)
		text := ""
		if n.ChildCount() == 0 {
			value := n.Text(result.Source)
			if len(value) > 40 {
				value = value[:40] + "…"
			}
			text = " " + color.New(color.FgYellow).Sprintf("%q", value)
		}
		fmt.Fprintf(w, "%s%s%s %s%s\n", prefix, branch, kind, span, text)
	}

	childPrefix := prefix
	if n.Parent() != nil {
		if last {
			childPrefix += "    "
		} else {
			childPrefix += "│   "
		}
	}
	count := n.ChildCount()
	for i := 0; i < count; i++ {
		dumpNode(w, result, n.Child(i), childPrefix, i == count-1, lines)
	}
}

// DumpFind writes one line per found node: kind, span, text.
func DumpFind(w io.Writer, result *parser.ParseResult, nodes []*parser.Node) {
	for _, n := range nodes {
		value := n.Text(result.Source)
		if idx := strings.IndexByte(value, '\n'); idx >= 0 {
			value = value[:idx] + "…"
		}
		fmt.Fprintf(w, "%s: %s at [%d, %d] - [%d, %d]: %s\n",
			result.Path, n.Kind(),
			n.StartRow()+1, n.StartCol()+1, n.EndRow()+1, n.EndCol()+1,
			value,
		)
	}
}
