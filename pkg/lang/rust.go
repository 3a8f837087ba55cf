package lang

import "github.com/panbanda/augur/pkg/parser"

// Kind tables for the Rust grammar.
type rustProfile struct {
	base
}

var rustLang = &rustProfile{base{
	id:       parser.LangRust,
	comments: set("line_comment", "block_comment"),
	strings:  set("string_literal", "raw_string_literal"),
	funcs:    set("function_item"),
	closures: set("closure_expression"),
	spaces: set(
		"source_file", "function_item", "closure_expression",
		"trait_item", "impl_item",
	),
	calls:      set("call_expression"),
	nonArgs:    set("(", ")", ",", "|", "attribute_item"),
	primitives: set("primitive_type"),
	operators: set(
		"fn", "let", "if", "else", "match", "for", "while", "loop",
		"return", "break", "continue", "move", "as", "in", "use", "mod",
		"impl", "trait", "struct", "enum", "pub", "mut", "ref", "unsafe",
		"async", "await", "dyn", "where", "const", "static",
		"primitive_type",
		"=", "==", "!=", "<", ">", "<=", ">=", "+", "-", "*", "/", "%",
		"&&", "||", "!", "&", "|", "^", "<<", ">>",
		"+=", "-=", "*=", "/=", "%=", "&=", "|=", "^=", "<<=", ">>=",
		"->", "=>", "?", "..", "..=", "::", ".",
	),
	operands: set(
		"identifier", "field_identifier", "type_identifier",
		"integer_literal", "float_literal", "string_literal",
		"raw_string_literal", "char_literal", "boolean_literal", "self",
	),
	decisions: set(
		"if", "for", "while", "loop", "match_arm", "&&", "||", "?",
	),
	exits: set("return_expression"),
	cognitive: &CognitiveRules{
		Nesting: set(
			"if_expression", "for_expression", "while_expression",
			"match_expression",
		),
		Flat:    set("else"),
		Funcs:   set("function_item"),
		Lambdas: set("closure_expression"),
		Unit:    "source_file",
		BoolExpr: set("binary_expression"),
		BoolOps:  set("&&", "||"),
		NotOp:    "unary_expression",
		LabeledJumps: set("break_expression", "continue_expression"),
		LabelKinds:   set("loop_label", "label"),
	},
	loc: &LocRules{
		Comments: set("line_comment", "block_comment"),
		Ignore: set(
			"source_file", "block", "string_literal", "raw_string_literal",
		),
		Statements: set(
			"empty_statement", "expression_statement", "let_declaration",
			"assignment_expression", "compound_assignment_expr",
			"return_expression", "if_expression", "if_let_expression",
			"while_expression", "while_let_expression", "loop_expression",
			"for_expression", "break_expression", "continue_expression",
			"await_expression",
		),
		TopCall: set(
			"call_expression", "macro_invocation", "closure_expression",
		),
		TopCallAncestors: set(
			"call_expression", "macro_invocation", "closure_expression",
			"let_declaration", "while_expression", "while_let_expression",
			"for_expression", "if_expression", "if_let_expression",
			"return_expression", "await_expression",
		),
		TopCallStop: set("block"),
	},
}}

func (r *rustProfile) SpaceKind(n *parser.Node) SpaceKind {
	switch n.Kind() {
	case "function_item", "closure_expression":
		return SpaceFunction
	case "trait_item":
		return SpaceTrait
	case "impl_item":
		return SpaceImpl
	case "source_file":
		return SpaceUnit
	default:
		return SpaceUnknown
	}
}

func (r *rustProfile) FuncSpaceName(n *parser.Node, code []byte) (string, bool) {
	if n.Kind() == "impl_item" {
		if typ := n.ChildByField("type"); typ != nil {
			return typ.Text(code), true
		}
	}
	return r.base.FuncSpaceName(n, code)
}

func (r *rustProfile) IsUsefulComment(n *parser.Node, code []byte) bool {
	return hasUsefulMarker(code[n.StartByte():n.EndByte()])
}

func (r *rustProfile) IsElseIf(n *parser.Node) bool {
	if n.Kind() != "if_expression" && n.Kind() != "if_let_expression" {
		return false
	}
	return elseIfByClause(n)
}

// A declared return type means the implicit tail expression is an exit.
func (r *rustProfile) ExitBonus(n *parser.Node) int {
	if n.Kind() == "function_item" && n.ChildByField("return_type") != nil {
		return 1
	}
	return 0
}
