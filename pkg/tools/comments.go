// Package tools holds the auxiliary passes sharing the metrics traversal
// machinery: comment stripping, node find/count, AST and span dumps.
package tools

import (
	"bytes"

	"github.com/panbanda/augur/pkg/lang"
	"github.com/panbanda/augur/pkg/parser"
)

type commentSpan struct {
	start int
	end   int
	lines int
}

// RmComments rewrites the source with every non-useful comment removed.
// Each comment range is replaced by a run of newlines equal to the rows it
// spanned, so line numbers survive. Returns nil when there is nothing to
// strip.
func RmComments(result *parser.ParseResult) []byte {
	profile := lang.For(result.Language)
	if profile == nil {
		return nil
	}

	var spans []commentSpan
	stack := []*parser.Node{result.Root()}
	for len(stack) > 0 {
		node := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if profile.IsComment(node) && !profile.IsUsefulComment(node, result.Source) {
			spans = append(spans, commentSpan{
				start: node.StartByte(),
				end:   node.EndByte(),
				lines: node.EndRow() - node.StartRow(),
			})
			continue
		}
		for i := node.ChildCount() - 1; i >= 0; i-- {
			stack = append(stack, node.Child(i))
		}
	}

	if len(spans) == 0 {
		return nil
	}
	return removeFromCode(result.Source, spans)
}

func removeFromCode(code []byte, spans []commentSpan) []byte {
	out := make([]byte, 0, len(code))
	codeStart := 0
	for _, span := range spans {
		out = append(out, code[codeStart:span.start]...)
		out = append(out, bytes.Repeat([]byte{'\n'}, span.lines)...)
		codeStart = span.end
	}
	if codeStart < len(code) {
		out = append(out, code[codeStart:]...)
	}
	return out
}
