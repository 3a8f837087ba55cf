// Package lang holds the per-language profiles: the kind tables listing
// each grammar's node kinds by role, the checker predicates, and the
// getter extractors used by the metric kernels.
//
// Exactly one profile exists per (language, concern) pair. Concerns a
// language has no sensible rendition of (e.g. WMC outside Java) are
// explicit no-op table entries.
package lang

import (
	"github.com/cloudflare/ahocorasick"

	"github.com/panbanda/augur/pkg/parser"
)

// SpaceKind classifies a function space.
type SpaceKind int

const (
	SpaceUnknown SpaceKind = iota
	SpaceUnit
	SpaceFunction
	SpaceClass
	SpaceStruct
	SpaceTrait
	SpaceImpl
	SpaceNamespace
	SpaceInterface
)

// String returns the lowercase kind name used in serialized reports.
func (k SpaceKind) String() string {
	switch k {
	case SpaceUnit:
		return "unit"
	case SpaceFunction:
		return "function"
	case SpaceClass:
		return "class"
	case SpaceStruct:
		return "struct"
	case SpaceTrait:
		return "trait"
	case SpaceImpl:
		return "impl"
	case SpaceNamespace:
		return "namespace"
	case SpaceInterface:
		return "interface"
	default:
		return "unknown"
	}
}

// MarshalText implements encoding.TextMarshaler so every serializer emits
// the kind name.
func (k SpaceKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText parses a serialized kind name.
func (k *SpaceKind) UnmarshalText(text []byte) error {
	*k = SpaceKindFromString(string(text))
	return nil
}

// SpaceKindFromString parses a serialized kind name.
func SpaceKindFromString(s string) SpaceKind {
	for k := SpaceUnknown; k <= SpaceInterface; k++ {
		if k.String() == s {
			return k
		}
	}
	return SpaceUnknown
}

// OpKind classifies a node for the Halstead suite.
type OpKind int

const (
	OpNone OpKind = iota
	OpOperator
	OpOperand
)

// AnonymousName is the name given to unnamed callables.
const AnonymousName = "<anonymous>"

// CognitiveRules drives the cognitive complexity kernel.
type CognitiveRules struct {
	// Nesting statements: add 1 + nesting level and deepen nesting.
	Nesting map[string]bool
	// Flat kinds (else/elif/finally): add 1, no nesting bonus.
	Flat map[string]bool
	// Flat kinds that also reset the boolean sequence (Python elif).
	FlatReset map[string]bool
	// Kinds adding 1 + nesting without an else-if guard (Python except).
	NestedFlat map[string]bool
	// Function kinds for the function-depth term.
	Funcs map[string]bool
	// Closure kinds for the lambda-depth term.
	Lambdas map[string]bool
	// The unit kind terminating ancestor walks.
	Unit string
	// Boolean expression node kind and its counted operator tokens.
	BoolExpr map[string]bool
	BoolOps  map[string]bool
	// Negation kind; resets the operator chain without adding.
	NotOp string
	// Kinds resetting the boolean sequence at statement boundaries.
	BoolReset map[string]bool
	// Labeled jump detection: jump kinds and the label child kinds.
	LabeledJumps map[string]bool
	LabelKinds   map[string]bool
	// Python counts boolean operators under lambdas differently.
	PyLambdaBool bool
}

// LocRules drives the LOC kernel.
type LocRules struct {
	// Comment kinds.
	Comments map[string]bool
	// Kinds excluded from physical-line bookkeeping (strings, blocks,
	// the unit root).
	Ignore map[string]bool
	// Statement kinds counted as logical lines.
	Statements map[string]bool
	// Kinds counted as logical lines only when not nested inside one of
	// TopCallAncestors (walk stopped at TopCallStop). Rust calls, macro
	// invocations and closures behave this way.
	TopCall          map[string]bool
	TopCallAncestors map[string]bool
	TopCallStop      map[string]bool
}

// Lang is the per-language profile: checker, getter and metric tables.
type Lang interface {
	ID() parser.Language

	// Checker.
	IsComment(n *parser.Node) bool
	IsUsefulComment(n *parser.Node, code []byte) bool
	IsFuncSpace(n *parser.Node) bool
	IsFunc(n *parser.Node) bool
	IsClosure(n *parser.Node) bool
	IsCall(n *parser.Node) bool
	IsNonArg(n *parser.Node) bool
	IsString(n *parser.Node) bool
	IsElseIf(n *parser.Node) bool
	IsPrimitive(kind string) bool

	// Getter.
	SpaceKind(n *parser.Node) SpaceKind
	FuncSpaceName(n *parser.Node, code []byte) (string, bool)
	OpType(n *parser.Node) OpKind
	OperatorSpelling(n *parser.Node, code []byte) string

	// Metric tables.
	IsDecisionPoint(n *parser.Node) bool
	Cognitive() *CognitiveRules
	Loc() *LocRules
	IsExitPoint(n *parser.Node) bool
	ExitBonus(n *parser.Node) int
	ParamsOf(n *parser.Node) *parser.Node
}

// For returns the profile of a language, or nil when unsupported.
func For(l parser.Language) Lang {
	switch l {
	case parser.LangPython:
		return pythonLang
	case parser.LangRust:
		return rustLang
	case parser.LangC:
		return cLang
	case parser.LangCPP:
		return cppLang
	case parser.LangJava:
		return javaLang
	case parser.LangJavaScript:
		return javascriptLang
	case parser.LangTypeScript:
		return typescriptLang
	case parser.LangTSX:
		return tsxLang
	case parser.LangGo:
		return goLang
	default:
		return nil
	}
}

// usefulCommentMarkers matches comments that must survive comment
// stripping. Initialized once, then read-only.
var usefulCommentMarkers = ahocorasick.NewStringMatcher([]string{"<div rustbindgen"})

func hasUsefulMarker(code []byte) bool {
	return len(usefulCommentMarkers.Match(code)) > 0
}

func set(items ...string) map[string]bool {
	m := make(map[string]bool, len(items))
	for _, it := range items {
		m[it] = true
	}
	return m
}

// base supplies the default (mostly no-op) implementations shared by the
// per-language profiles.
type base struct {
	id         parser.Language
	comments   map[string]bool
	strings    map[string]bool
	funcs      map[string]bool
	closures   map[string]bool
	spaces     map[string]bool
	calls      map[string]bool
	nonArgs    map[string]bool
	primitives map[string]bool
	operators  map[string]bool
	operands   map[string]bool
	decisions  map[string]bool
	exits      map[string]bool
	cognitive  *CognitiveRules
	loc        *LocRules
}

func (b *base) ID() parser.Language { return b.id }

func (b *base) IsComment(n *parser.Node) bool { return b.comments[n.Kind()] }

func (b *base) IsUsefulComment(n *parser.Node, code []byte) bool { return false }

func (b *base) IsFuncSpace(n *parser.Node) bool { return b.spaces[n.Kind()] }

func (b *base) IsFunc(n *parser.Node) bool { return b.funcs[n.Kind()] }

func (b *base) IsClosure(n *parser.Node) bool { return n.IsNamed() && b.closures[n.Kind()] }

func (b *base) IsCall(n *parser.Node) bool { return b.calls[n.Kind()] }

func (b *base) IsNonArg(n *parser.Node) bool {
	if b.nonArgs[n.Kind()] {
		return true
	}
	return n.Kind() == "comment"
}

func (b *base) IsString(n *parser.Node) bool { return b.strings[n.Kind()] }

func (b *base) IsElseIf(n *parser.Node) bool { return false }

func (b *base) IsPrimitive(kind string) bool { return b.primitives[kind] }

func (b *base) SpaceKind(n *parser.Node) SpaceKind { return SpaceUnknown }

// FuncSpaceName reads the grammar name field; unnamed callables get the
// anonymous sentinel.
func (b *base) FuncSpaceName(n *parser.Node, code []byte) (string, bool) {
	if name := n.ChildByField("name"); name != nil {
		return name.Text(code), true
	}
	return AnonymousName, true
}

func (b *base) OpType(n *parser.Node) OpKind {
	kind := n.Kind()
	switch {
	case b.operators[kind]:
		return OpOperator
	case b.operands[kind]:
		return OpOperand
	default:
		return OpNone
	}
}

// OperatorSpelling renders an operator node for the ops report. Tokens
// spell themselves; named operator nodes use their source text.
func (b *base) OperatorSpelling(n *parser.Node, code []byte) string {
	if n.IsNamed() {
		if b.primitives[n.Kind()] {
			return n.Text(code)
		}
		return n.Kind()
	}
	return n.Kind()
}

func (b *base) IsDecisionPoint(n *parser.Node) bool { return b.decisions[n.Kind()] }

func (b *base) Cognitive() *CognitiveRules { return b.cognitive }

func (b *base) Loc() *LocRules { return b.loc }

func (b *base) IsExitPoint(n *parser.Node) bool { return b.exits[n.Kind()] }

func (b *base) ExitBonus(n *parser.Node) int { return 0 }

func (b *base) ParamsOf(n *parser.Node) *parser.Node {
	return n.ChildByField("parameters")
}

// elseIfByClause reports whether an if node hangs off an else clause (or
// an alternative field in grammars without an else_clause node).
func elseIfByClause(n *parser.Node) bool {
	parent := n.Parent()
	if parent == nil {
		return false
	}
	if parent.Kind() == "else_clause" {
		return true
	}
	if alt := parent.ChildByField("alternative"); alt != nil {
		return alt.StartByte() == n.StartByte() && alt.EndByte() == n.EndByte()
	}
	return false
}
