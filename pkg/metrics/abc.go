package metrics

import (
	"math"

	"github.com/panbanda/augur/pkg/parser"
)

// Fitzpatrick, Jerry (1997). "Applying the ABC metric to C, C++ and Java".
// C++ Report. Only Java carries the full rule set; other languages
// contribute nothing.

// declKind tracks whether the declaration being walked is a plain variable
// or a final constant, whose initializers are not assignments.
type declKind int

const (
	declVar declKind = iota
	declConst
)

// AbcStats accumulates the assignment, branch and condition counts of one
// space.
type AbcStats struct {
	assignments float64
	branches    float64
	conditions  float64

	assignmentsSum float64
	branchesSum    float64
	conditionsSum  float64

	assignmentsMin float64
	assignmentsMax float64
	branchesMin    float64
	branchesMax    float64
	conditionsMin  float64
	conditionsMax  float64

	n           int
	declaration []declKind
}

// NewAbcStats starts an empty space.
func NewAbcStats() AbcStats {
	return AbcStats{
		assignmentsMin: math.Inf(1),
		branchesMin:    math.Inf(1),
		conditionsMin:  math.Inf(1),
		n:              1,
	}
}

// A unary conditional expression is a single variable, method call or
// boolean literal treated as a boolean value.
var abcBareConditionKinds = map[string]bool{
	"method_invocation": true, "identifier": true, "true": true, "false": true,
}

var abcContainerKinds = map[string]bool{
	"parenthesized_expression": true, "unary_expression": true,
}

// javaInspectContainer looks through parenthesized expressions and `!`
// operators for a unary conditional expression, and returns one when the
// content is provably boolean.
func javaInspectContainer(container *parser.Node) float64 {
	boolContent := false
	if parent := container.Parent(); parent != nil {
		switch parent.Kind() {
		case "binary_expression", "if_statement", "while_statement",
			"do_statement", "for_statement":
			boolContent = true
		case "ternary_expression":
			// Only the ternary condition is a boolean position; the two
			// value operands sit after `?` or `:`.
			prev := container.PrevSibling()
			boolContent = prev == nil || (prev.Kind() != "?" && prev.Kind() != ":")
		}
	}

	node := container
	for {
		isParen := node.Kind() == "parenthesized_expression"
		isNot := node.Kind() == "unary_expression" &&
			node.Child(0) != nil && node.Child(0).Kind() == "!"
		if !isParen && !isNot {
			return 0
		}
		if isNot {
			boolContent = true
		}

		// Both containers keep their expression at child index one.
		node = node.Child(1)
		if node == nil {
			return 0
		}
		if abcBareConditionKinds[node.Kind()] {
			if boolContent {
				return 1
			}
			return 0
		}
	}
}

// javaCountUnaryConditions scans the immediate children of a list-like
// node (a boolean binary expression or an argument list) for unary
// conditional expressions.
func javaCountUnaryConditions(list *parser.Node) float64 {
	isBinary := list.Kind() == "binary_expression"
	count := 0.0
	list.ActOnChild(func(child *parser.Node) {
		if abcBareConditionKinds[child.Kind()] {
			if isBinary {
				count++
			}
			return
		}
		count += javaInspectContainer(child)
	})
	return count
}

func (s *AbcStats) declTop() (declKind, bool) {
	if len(s.declaration) == 0 {
		return declVar, false
	}
	return s.declaration[len(s.declaration)-1], true
}

// Compute applies the Java ABC classification.
func (s *AbcStats) Compute(ctx *Context, n *parser.Node) {
	if ctx.Language != parser.LangJava {
		return
	}

	switch n.Kind() {
	case "*=", "/=", "%=", "-=", "+=", "<<=", ">>=", "&=", "|=", "^=",
		">>>=", "++", "--":
		s.assignments++
	case "field_declaration", "local_variable_declaration":
		s.declaration = append(s.declaration, declVar)
	case "final":
		if top, ok := s.declTop(); ok && top == declVar {
			s.declaration = append(s.declaration, declConst)
		}
	case ";":
		if _, ok := s.declTop(); ok {
			s.declaration = s.declaration[:0]
		}
	case "=":
		// Constant declarations are initialized, not assigned.
		if top, ok := s.declTop(); !ok || top == declVar {
			s.assignments++
		}
	case "method_invocation", "new":
		s.branches++
	case ">=", "<=", "==", "!=", "else", "case", "default", "?", "try",
		"catch":
		s.conditions++
	case ">", "<":
		// `<` and `>` delimiting generic type parameters are not
		// comparisons.
		if parent := n.Parent(); parent != nil && parent.Kind() != "type_arguments" {
			s.conditions++
		}
	case "&&", "||":
		if parent := n.Parent(); parent != nil {
			s.conditions += javaCountUnaryConditions(parent)
		}
	case "argument_list":
		s.conditions += javaCountUnaryConditions(n)
	case "variable_declarator", "assignment_expression":
		// The child at index two is the right operand.
		if rhs := n.Child(2); rhs != nil && abcContainerKinds[rhs.Kind()] {
			s.conditions += javaInspectContainer(rhs)
		}
	case "if_statement", "while_statement":
		// The child at index one is the parenthesized condition.
		if cond := n.Child(1); cond != nil && cond.Kind() == "parenthesized_expression" {
			s.conditions += javaInspectContainer(cond)
		}
	case "do_statement":
		// The child at index three is the parenthesized condition.
		if cond := n.Child(3); cond != nil && cond.Kind() == "parenthesized_expression" {
			s.conditions += javaInspectContainer(cond)
		}
	case "for_statement":
		s.conditions += javaForConditions(n)
	case "return_statement":
		// The child at index one is the return value.
		if value := n.Child(1); value != nil && abcContainerKinds[value.Kind()] {
			s.conditions += javaInspectContainer(value)
		}
	case "lambda_expression":
		// The child at index two is the implicit return value.
		if value := n.Child(2); value != nil && abcContainerKinds[value.Kind()] {
			s.conditions += javaInspectContainer(value)
		}
	case "ternary_expression":
		s.conditions += javaTernaryConditions(n)
	}
}

// javaForConditions counts the condition slot of a for statement. The slot
// index depends on whether the initializer is a variable declaration (which
// swallows its own semicolon) or a plain expression.
func javaForConditions(n *parser.Node) float64 {
	cond := n.Child(3)
	if cond == nil {
		return 0
	}
	if cond.Kind() == ";" {
		cond = n.Child(4)
		if cond == nil {
			return 0
		}
		// `for (;;)` carries one implicit condition fixed to true.
		if cond.Kind() == ";" || cond.Kind() == ")" {
			return 1
		}
	}
	switch {
	case abcBareConditionKinds[cond.Kind()]:
		return 1
	case abcContainerKinds[cond.Kind()]:
		return javaInspectContainer(cond)
	default:
		return 0
	}
}

// javaTernaryConditions inspects the three ternary operands; the `?` token
// itself is counted with the other condition tokens.
func javaTernaryConditions(n *parser.Node) float64 {
	count := 0.0
	if cond := n.Child(0); cond != nil {
		switch {
		case abcBareConditionKinds[cond.Kind()]:
			count++
		case abcContainerKinds[cond.Kind()]:
			count += javaInspectContainer(cond)
		}
	}
	for _, idx := range []int{2, 4} {
		if value := n.Child(idx); value != nil && abcContainerKinds[value.Kind()] {
			count += javaInspectContainer(value)
		}
	}
	return count
}

// Merge folds a closed child space into this one.
func (s *AbcStats) Merge(other *AbcStats) {
	s.assignmentsSum += other.assignmentsSum
	s.branchesSum += other.branchesSum
	s.conditionsSum += other.conditionsSum
	s.assignmentsMin = minf(s.assignmentsMin, other.assignmentsMin)
	s.assignmentsMax = maxf(s.assignmentsMax, other.assignmentsMax)
	s.branchesMin = minf(s.branchesMin, other.branchesMin)
	s.branchesMax = maxf(s.branchesMax, other.branchesMax)
	s.conditionsMin = minf(s.conditionsMin, other.conditionsMin)
	s.conditionsMax = maxf(s.conditionsMax, other.conditionsMax)
	s.n += other.n
}

func (s *AbcStats) closeSpace() {
	s.assignmentsMin = minf(s.assignmentsMin, s.assignments)
	s.assignmentsMax = maxf(s.assignmentsMax, s.assignments)
	s.branchesMin = minf(s.branchesMin, s.branches)
	s.branchesMax = maxf(s.branchesMax, s.branches)
	s.conditionsMin = minf(s.conditionsMin, s.conditions)
	s.conditionsMax = maxf(s.conditionsMax, s.conditions)
	s.assignmentsSum += s.assignments
	s.branchesSum += s.branches
	s.conditionsSum += s.conditions
}

// Assignments returns the assignment count of the space and below.
func (s *AbcStats) Assignments() float64 { return s.assignmentsSum }

// Branches returns the branch count of the space and below.
func (s *AbcStats) Branches() float64 { return s.branchesSum }

// Conditions returns the condition count of the space and below.
func (s *AbcStats) Conditions() float64 { return s.conditionsSum }

// Magnitude returns the euclidean ABC size.
func (s *AbcStats) Magnitude() float64 {
	return math.Sqrt(s.assignmentsSum*s.assignmentsSum +
		s.branchesSum*s.branchesSum +
		s.conditionsSum*s.conditionsSum)
}

// AbcReport is the serializable snapshot.
type AbcReport struct {
	Assignments        *float64 `json:"assignments" yaml:"assignments" toml:"assignments,omitempty"`
	Branches           *float64 `json:"branches" yaml:"branches" toml:"branches,omitempty"`
	Conditions         *float64 `json:"conditions" yaml:"conditions" toml:"conditions,omitempty"`
	Magnitude          *float64 `json:"magnitude" yaml:"magnitude" toml:"magnitude,omitempty"`
	AssignmentsAverage *float64 `json:"assignments_average" yaml:"assignments_average" toml:"assignments_average,omitempty"`
	BranchesAverage    *float64 `json:"branches_average" yaml:"branches_average" toml:"branches_average,omitempty"`
	ConditionsAverage  *float64 `json:"conditions_average" yaml:"conditions_average" toml:"conditions_average,omitempty"`
	AssignmentsMin     *float64 `json:"assignments_min" yaml:"assignments_min" toml:"assignments_min,omitempty"`
	AssignmentsMax     *float64 `json:"assignments_max" yaml:"assignments_max" toml:"assignments_max,omitempty"`
	BranchesMin        *float64 `json:"branches_min" yaml:"branches_min" toml:"branches_min,omitempty"`
	BranchesMax        *float64 `json:"branches_max" yaml:"branches_max" toml:"branches_max,omitempty"`
	ConditionsMin      *float64 `json:"conditions_min" yaml:"conditions_min" toml:"conditions_min,omitempty"`
	ConditionsMax      *float64 `json:"conditions_max" yaml:"conditions_max" toml:"conditions_max,omitempty"`
}

// Report snapshots the stats.
func (s *AbcStats) Report() AbcReport {
	count := float64(s.n)
	return AbcReport{
		Assignments:        fin(s.Assignments()),
		Branches:           fin(s.Branches()),
		Conditions:         fin(s.Conditions()),
		Magnitude:          fin(s.Magnitude()),
		AssignmentsAverage: fin(s.assignmentsSum / count),
		BranchesAverage:    fin(s.branchesSum / count),
		ConditionsAverage:  fin(s.conditionsSum / count),
		AssignmentsMin:     fin(s.assignmentsMin),
		AssignmentsMax:     fin(s.assignmentsMax),
		BranchesMin:        fin(s.branchesMin),
		BranchesMax:        fin(s.branchesMax),
		ConditionsMin:      fin(s.conditionsMin),
		ConditionsMax:      fin(s.conditionsMax),
	}
}
