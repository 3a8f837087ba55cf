package spaces

import (
	"sort"

	"github.com/panbanda/augur/pkg/lang"
	"github.com/panbanda/augur/pkg/metrics"
	"github.com/panbanda/augur/pkg/parser"
)

// Ops lists the distinct operators and operands of a space, mirroring the
// FuncSpace hierarchy.
type Ops struct {
	Name      string         `json:"name" yaml:"name" toml:"name"`
	StartLine int            `json:"start_line" yaml:"start_line" toml:"start_line"`
	EndLine   int            `json:"end_line" yaml:"end_line" toml:"end_line"`
	Kind      lang.SpaceKind `json:"kind" yaml:"kind" toml:"kind"`
	Operators []string       `json:"operators" yaml:"operators" toml:"operators"`
	Operands  []string       `json:"operands" yaml:"operands" toml:"operands"`
	Spaces    []*Ops         `json:"spaces" yaml:"spaces" toml:"spaces"`
}

type opsState struct {
	name      string
	startLine int
	endLine   int
	kind      lang.SpaceKind
	operators map[string]struct{}
	operands  map[string]struct{}
	spaces    []*Ops
}

func newOpsState(ctx *metrics.Context, n *parser.Node, kind lang.SpaceKind) *opsState {
	start, end := spaceLines(n, kind)
	name, _ := ctx.Profile.FuncSpaceName(n, ctx.Code)
	return &opsState{
		name:      name,
		startLine: start,
		endLine:   end,
		kind:      kind,
		operators: make(map[string]struct{}),
		operands:  make(map[string]struct{}),
	}
}

func sortedKeys(m map[string]struct{}) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func (s *opsState) emit() *Ops {
	return &Ops{
		Name:      s.name,
		StartLine: s.startLine,
		EndLine:   s.endLine,
		Kind:      s.kind,
		Operators: sortedKeys(s.operators),
		Operands:  sortedKeys(s.operands),
		Spaces:    s.spaces,
	}
}

// GetOps runs the space traversal collecting operator and operand
// spellings instead of metric tallies.
func GetOps(result *parser.ParseResult) *Ops {
	ctx := metrics.NewContext(result.Language, result.Source)
	if ctx == nil {
		return nil
	}

	var stateStack []*opsState
	stack := []frame{{node: result.Root(), level: 0}}
	lastLevel := 0

	finalize := func(diff int) {
		for i := 0; i < diff && len(stateStack) > 1; i++ {
			closing := stateStack[len(stateStack)-1]
			stateStack = stateStack[:len(stateStack)-1]
			top := stateStack[len(stateStack)-1]
			// Spaces see their descendants' vocabulary too.
			for op := range closing.operators {
				top.operators[op] = struct{}{}
			}
			for op := range closing.operands {
				top.operands[op] = struct{}{}
			}
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

		newLevel := level
		if isFuncSpace {
			stateStack = append(stateStack, newOpsState(ctx, node, kind))
			lastLevel = level + 1
			newLevel = lastLevel
		}

		if len(stateStack) > 0 {
			top := stateStack[len(stateStack)-1]
			switch ctx.Profile.OpType(node) {
			case lang.OpOperator:
				top.operators[ctx.Profile.OperatorSpelling(node, ctx.Code)] = struct{}{}
			case lang.OpOperand:
				top.operands[node.Text(ctx.Code)] = struct{}{}
			}
		}

		for i := node.ChildCount() - 1; i >= 0; i-- {
			stack = append(stack, frame{node: node.Child(i), level: newLevel})
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
