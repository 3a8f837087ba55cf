package lang

import "github.com/panbanda/augur/pkg/parser"

// Kind tables for the Go grammar.
type goProfile struct {
	base
}

var goLang = &goProfile{base{
	id:       parser.LangGo,
	comments: set("comment"),
	strings:  set("interpreted_string_literal", "raw_string_literal"),
	funcs:    set("function_declaration", "method_declaration"),
	closures: set("func_literal"),
	spaces: set(
		"source_file", "function_declaration", "method_declaration",
		"func_literal",
	),
	calls:   set("call_expression"),
	nonArgs: set("(", ")", ","),
	operators: set(
		"func", "return", "if", "else", "for", "range", "switch", "case",
		"default", "break", "continue", "go", "defer", "select", "chan",
		"map", "interface", "struct", "type", "var", "const", "package",
		"import", "fallthrough", "goto",
		":=", "=", "==", "!=", "<", ">", "<=", ">=", "+", "-", "*", "/",
		"%", "&&", "||", "!", "&", "|", "^", "<<", ">>", "&^", "<-",
		"++", "--", "+=", "-=", "*=", "/=", "%=", "&=", "|=", "^=",
		"<<=", ">>=", "&^=", ".",
	),
	operands: set(
		"identifier", "field_identifier", "type_identifier",
		"package_identifier", "int_literal", "float_literal",
		"imaginary_literal", "rune_literal", "interpreted_string_literal",
		"raw_string_literal", "true", "false", "nil", "iota",
	),
	decisions: set("if", "for", "case", "&&", "||"),
	exits:     set("return_statement"),
	cognitive: &CognitiveRules{
		Nesting: set(
			"if_statement", "for_statement", "expression_switch_statement",
			"type_switch_statement", "select_statement",
		),
		Flat:    set("else"),
		Funcs:   set("function_declaration", "method_declaration"),
		Lambdas: set("func_literal"),
		Unit:    "source_file",
		BoolExpr: set("binary_expression"),
		BoolOps:  set("&&", "||"),
		NotOp:    "unary_expression",
		BoolReset: set("expression_statement"),
		LabeledJumps: set("break_statement", "continue_statement", "goto_statement"),
		LabelKinds:   set("label_name"),
	},
	loc: &LocRules{
		Comments: set("comment"),
		Ignore: set(
			"source_file", "block", "interpreted_string_literal",
			"raw_string_literal",
		),
		Statements: set(
			"expression_statement", "short_var_declaration",
			"assignment_statement", "var_declaration", "const_declaration",
			"if_statement", "for_statement", "expression_switch_statement",
			"type_switch_statement", "select_statement", "return_statement",
			"break_statement", "continue_statement", "go_statement",
			"defer_statement", "send_statement", "inc_statement",
			"dec_statement", "goto_statement", "labeled_statement",
			"fallthrough_statement", "import_declaration", "package_clause",
			"type_declaration",
		),
	},
}}

func (g *goProfile) SpaceKind(n *parser.Node) SpaceKind {
	switch n.Kind() {
	case "function_declaration", "method_declaration", "func_literal":
		return SpaceFunction
	case "source_file":
		return SpaceUnit
	default:
		return SpaceUnknown
	}
}
