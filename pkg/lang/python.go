package lang

import "github.com/panbanda/augur/pkg/parser"

// Kind tables for the Python grammar, grouped by role. Regenerate against
// the grammar's node inventory when upgrading tree-sitter.
type python struct {
	base
}

var pythonLang = &python{base{
	id:       parser.LangPython,
	comments: set("comment"),
	strings:  set("string", "concatenated_string"),
	funcs:    set("function_definition"),
	closures: set("lambda"),
	spaces:   set("module", "function_definition", "class_definition"),
	calls:    set("call"),
	nonArgs:  set("(", ")", ",", ":", "*", "**", "/"),
	operators: set(
		"import", "from", "as", "def", "class", "return", "del", "raise",
		"pass", "break", "continue", "if", "elif", "else", "for", "in",
		"while", "try", "except", "finally", "with", "lambda", "global",
		"nonlocal", "assert", "and", "or", "not", "await", "yield",
		"async", "is",
		"=", ":=", "+", "-", "*", "/", "//", "%", "**", "@",
		"<", ">", "<=", ">=", "==", "!=", "<>",
		"&", "|", "^", "~", "<<", ">>",
		"+=", "-=", "*=", "/=", "//=", "%=", "**=", "&=", "|=", "^=",
		">>=", "<<=", "@=",
	),
	operands: set(
		"identifier", "integer", "float", "string", "true", "false",
		"none", "ellipsis",
	),
	decisions: set(
		"if", "elif", "for", "while", "except", "with", "assert",
		"and", "or",
	),
	exits: set("return_statement"),
	cognitive: &CognitiveRules{
		Nesting: set(
			"if_statement", "for_statement", "while_statement",
			"conditional_expression",
		),
		Flat:       set("else_clause", "finally_clause"),
		FlatReset:  set("elif_clause"),
		NestedFlat: set("except_clause"),
		Funcs:      set("function_definition"),
		Lambdas:    set("lambda"),
		Unit:       "module",
		BoolExpr:   set("boolean_operator"),
		BoolOps:    set("and", "or"),
		NotOp:      "not_operator",
		BoolReset:  set("expression_statement", "expression_list", "tuple"),
		PyLambdaBool: true,
	},
	loc: &LocRules{
		Comments: set("comment"),
		Ignore:   set("module", "block", "string", "concatenated_string"),
		Statements: set(
			"expression_statement", "assert_statement", "delete_statement",
			"return_statement", "raise_statement", "pass_statement",
			"break_statement", "continue_statement", "global_statement",
			"nonlocal_statement", "import_statement",
			"import_from_statement", "future_import_statement",
			"print_statement", "exec_statement", "if_statement",
			"for_statement", "while_statement", "try_statement",
			"with_statement",
		),
	},
}}

func (p *python) SpaceKind(n *parser.Node) SpaceKind {
	switch n.Kind() {
	case "function_definition":
		return SpaceFunction
	case "class_definition":
		return SpaceClass
	case "module":
		return SpaceUnit
	default:
		return SpaceUnknown
	}
}

// An else attached to a for or while loop is a decision point of its own;
// the one closing an if has already been paid for by the if.
func (p *python) IsDecisionPoint(n *parser.Node) bool {
	kind := n.Kind()
	if kind == "else" {
		parent := n.Parent()
		if parent == nil || parent.Kind() != "else_clause" {
			return false
		}
		grand := parent.Parent()
		return grand != nil &&
			(grand.Kind() == "for_statement" || grand.Kind() == "while_statement")
	}
	return p.decisions[kind]
}
