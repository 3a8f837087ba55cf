package lang

import "github.com/panbanda/augur/pkg/parser"

// Kind tables for the Java grammar. Java is the only language carrying the
// object-oriented suites (ABC, WMC, NPA, NPM); their class-shape tables
// live here next to the rest.
type javaProfile struct {
	base
}

var javaLang = &javaProfile{base{
	id:       parser.LangJava,
	comments: set("comment", "line_comment", "block_comment"),
	strings:  set("string_literal", "character_literal", "text_block"),
	funcs:    set("method_declaration", "constructor_declaration"),
	closures: set("lambda_expression"),
	spaces: set(
		"program", "method_declaration", "constructor_declaration",
		"class_declaration", "interface_declaration",
	),
	calls:   set("method_invocation"),
	nonArgs: set("(", ")", ","),
	operators: set(
		"if", "else", "for", "while", "do", "switch", "case", "default",
		"return", "break", "continue", "new", "try", "catch", "finally",
		"throw", "throws", "class", "interface", "enum", "extends",
		"implements", "instanceof", "public", "private", "protected",
		"static", "final", "abstract", "synchronized", "volatile",
		"transient", "import", "package",
		"=", "==", "!=", "<", ">", "<=", ">=", "+", "-", "*", "/", "%",
		"&&", "||", "!", "&", "|", "^", "~", "<<", ">>", ">>>", "++", "--",
		"+=", "-=", "*=", "/=", "%=", "&=", "|=", "^=", "<<=", ">>=",
		">>>=", "->", ".", "?", ":", ";",
	),
	operands: set(
		"identifier", "type_identifier", "decimal_integer_literal",
		"hex_integer_literal", "octal_integer_literal",
		"binary_integer_literal", "decimal_floating_point_literal",
		"hex_floating_point_literal", "string_literal",
		"character_literal", "true", "false", "null_literal", "this",
		"super",
	),
	decisions: set(
		"if", "for", "while", "case", "catch", "&&", "||",
		"ternary_expression",
	),
	exits: set("return_statement"),
	cognitive: &CognitiveRules{
		Nesting: set(
			"if_statement", "for_statement", "enhanced_for_statement",
			"while_statement", "do_statement", "switch_expression",
			"catch_clause", "ternary_expression",
		),
		Flat:    set("else"),
		Funcs:   set("method_declaration", "constructor_declaration"),
		Lambdas: set("lambda_expression"),
		Unit:    "program",
		BoolExpr: set("binary_expression"),
		BoolOps:  set("&&", "||"),
		NotOp:    "unary_expression",
		BoolReset: set("expression_statement"),
		LabeledJumps: set("break_statement", "continue_statement"),
		LabelKinds:   set("identifier"),
	},
	loc: &LocRules{
		Comments: set("comment", "line_comment", "block_comment"),
		Ignore: set(
			"program", "block", "class_body", "interface_body",
			"string_literal", "text_block",
		),
		Statements: set(
			"expression_statement", "local_variable_declaration",
			"field_declaration", "if_statement", "for_statement",
			"enhanced_for_statement", "while_statement", "do_statement",
			"switch_expression", "return_statement", "break_statement",
			"continue_statement", "throw_statement", "try_statement",
			"labeled_statement", "assert_statement", "yield_statement",
			"import_declaration", "package_declaration",
		),
	},
}}

func (j *javaProfile) SpaceKind(n *parser.Node) SpaceKind {
	switch n.Kind() {
	case "method_declaration", "constructor_declaration":
		return SpaceFunction
	case "class_declaration":
		return SpaceClass
	case "interface_declaration":
		return SpaceInterface
	case "program":
		return SpaceUnit
	default:
		return SpaceUnknown
	}
}

func (j *javaProfile) IsElseIf(n *parser.Node) bool {
	if n.Kind() != "if_statement" {
		return false
	}
	return elseIfByClause(n)
}
