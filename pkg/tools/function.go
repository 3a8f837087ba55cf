package tools

import (
	"fmt"
	"io"

	"github.com/panbanda/augur/pkg/lang"
	"github.com/panbanda/augur/pkg/parser"
)

// FunctionSpan is the name and line range of one function definition.
type FunctionSpan struct {
	Name      string `json:"name" yaml:"name" toml:"name"`
	StartLine int    `json:"start_line" yaml:"start_line" toml:"start_line"`
	EndLine   int    `json:"end_line" yaml:"end_line" toml:"end_line"`
}

// FunctionSpans lists every function definition of the file in source
// order.
func FunctionSpans(result *parser.ParseResult) []FunctionSpan {
	profile := lang.For(result.Language)
	if profile == nil {
		return nil
	}

	var spans []FunctionSpan
	result.Root().ActOnNode(func(n *parser.Node) {
		if !profile.IsFunc(n) {
			return
		}
		name, ok := profile.FuncSpaceName(n, result.Source)
		if !ok {
			name = lang.AnonymousName
		}
		spans = append(spans, FunctionSpan{
			Name:      name,
			StartLine: n.StartRow() + 1,
			EndLine:   n.EndRow() + 1,
		})
	})
	return spans
}

// DumpFunctionSpans writes one line per function.
func DumpFunctionSpans(w io.Writer, path string, spans []FunctionSpan) {
	for _, span := range spans {
		fmt.Fprintf(w, "%s: %s [%d, %d]\n", path, span.Name, span.StartLine, span.EndLine)
	}
}
