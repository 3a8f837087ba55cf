// Package spaces implements the single-pass traversal that carves a parse
// tree into nested function spaces and feeds every metric kernel.
package spaces

import (
	"github.com/panbanda/augur/pkg/lang"
	"github.com/panbanda/augur/pkg/metrics"
	"github.com/panbanda/augur/pkg/parser"
)

// FuncSpace is one node of the hierarchical metrics report: a file, a
// namespace-like container, a function or a closure, with its metrics and
// its child spaces in source order. Values are immutable once emitted.
type FuncSpace struct {
	Name      string                    `json:"name" yaml:"name" toml:"name"`
	StartLine int                       `json:"start_line" yaml:"start_line" toml:"start_line"`
	EndLine   int                       `json:"end_line" yaml:"end_line" toml:"end_line"`
	Kind      lang.SpaceKind            `json:"kind" yaml:"kind" toml:"kind"`
	Metrics   metrics.CodeMetricsReport `json:"metrics" yaml:"metrics" toml:"metrics"`
	Spaces    []*FuncSpace              `json:"spaces" yaml:"spaces" toml:"spaces"`
}

// state is a space under construction.
type state struct {
	name      string
	startLine int
	endLine   int
	kind      lang.SpaceKind
	metrics   metrics.CodeMetrics
	maps      *metrics.HalsteadMaps
	spaces    []*FuncSpace
}

func spaceLines(n *parser.Node, kind lang.SpaceKind) (int, int) {
	if kind == lang.SpaceUnit {
		if n.ChildCount() == 0 {
			return 0, 0
		}
		return n.StartRow() + 1, n.EndRow()
	}
	return n.StartRow() + 1, n.EndRow() + 1
}

func newState(ctx *metrics.Context, n *parser.Node, kind lang.SpaceKind) *state {
	start, end := spaceLines(n, kind)
	name, _ := ctx.Profile.FuncSpaceName(n, ctx.Code)
	return &state{
		name:      name,
		startLine: start,
		endLine:   end,
		kind:      kind,
		metrics:   metrics.NewCodeMetrics(),
		maps:      metrics.NewHalsteadMaps(),
	}
}

// close finalizes a space: rolling aggregates, halstead, MI, averages.
func (s *state) close() {
	s.metrics.CloseSpace()
	s.finishDerived()
	s.metrics.FinalizeAverages()
}

func (s *state) finishDerived() {
	s.maps.Finalize(&s.metrics.Halstead)
	s.metrics.Mi.Compute(&s.metrics.Loc, &s.metrics.Cyclomatic, &s.metrics.Halstead)
}

func (s *state) emit() *FuncSpace {
	return &FuncSpace{
		Name:      s.name,
		StartLine: s.startLine,
		EndLine:   s.endLine,
		Kind:      s.kind,
		Metrics:   s.metrics.Report(),
		Spaces:    s.spaces,
	}
}

type frame struct {
	node  *parser.Node
	level int
}

// Metrics runs the traversal over a parse result and returns the root
// function space, or nil when the language has no profile.
func Metrics(result *parser.ParseResult) *FuncSpace {
	ctx := metrics.NewContext(result.Language, result.Source)
	if ctx == nil {
		return nil
	}

	var stateStack []*state
	stack := []frame{{node: result.Root(), level: 0}}
	children := make([]frame, 0, 16)
	lastLevel := 0

	finalize := func(diff int) {
		for i := 0; i < diff && len(stateStack) > 0; i++ {
			if len(stateStack) == 1 {
				stateStack[0].close()
				break
			}
			closing := stateStack[len(stateStack)-1]
			stateStack = stateStack[:len(stateStack)-1]
			closing.close()

			top := stateStack[len(stateStack)-1]
			top.maps.Merge(closing.maps)
			top.finishDerived()
			top.metrics.Merge(&closing.metrics)
			top.metrics.Wmc.MergeSpaces(ctx.Language, closing.kind, top.kind, &closing.metrics)
			top.spaces = append(top.spaces, closing.emit())
		}
	}

	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		node, level := f.node, f.level

		if level < lastLevel {
			finalize(lastLevel - level)
			lastLevel = level
		}

		kind := ctx.Profile.SpaceKind(node)
		isFuncSpace := ctx.Profile.IsFunc(node) || ctx.Profile.IsFuncSpace(node)
		isUnit := kind == lang.SpaceUnit

		newLevel := level
		if isFuncSpace {
			stateStack = append(stateStack, newState(ctx, node, kind))
			lastLevel = level + 1
			newLevel = lastLevel
		}

		if len(stateStack) > 0 {
			top := stateStack[len(stateStack)-1]
			top.metrics.Compute(ctx, node, top.maps, isFuncSpace, isUnit)
		}

		children = children[:0]
		for i := 0; i < node.ChildCount(); i++ {
			children = append(children, frame{node: node.Child(i), level: newLevel})
		}
		for i := len(children) - 1; i >= 0; i-- {
			stack = append(stack, children[i])
		}
	}

	finalize(len(stateStack))

	if len(stateStack) == 0 {
		return nil
	}
	root := stateStack[0]
	root.name = result.Path
	return root.emit()
}
