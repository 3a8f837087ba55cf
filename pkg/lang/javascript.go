package lang

import "github.com/panbanda/augur/pkg/parser"

// Kind tables shared by the JavaScript, TypeScript and TSX grammars.
type jsFamily struct {
	base
}

func jsBase(id parser.Language) base {
	return base{
		id:       id,
		comments: set("comment"),
		strings:  set("string", "template_string", "regex"),
		funcs: set(
			"function_declaration", "method_definition", "function",
			"function_expression", "arrow_function", "generator_function",
			"generator_function_declaration",
		),
		closures: set(),
		spaces: set(
			"program", "function_declaration", "method_definition",
			"function", "function_expression", "arrow_function",
			"generator_function", "generator_function_declaration",
			"class", "class_declaration",
		),
		calls:   set("call_expression"),
		nonArgs: set("(", ")", ","),
		operators: set(
			"if", "else", "for", "while", "do", "switch", "case", "default",
			"return", "break", "continue", "new", "delete", "try", "catch",
			"finally", "throw", "typeof", "instanceof", "in", "of", "var",
			"let", "const", "function", "class", "extends", "yield",
			"async", "await", "import", "export",
			"=", "==", "===", "!=", "!==", "<", ">", "<=", ">=", "+", "-",
			"*", "/", "%", "**", "&&", "||", "??", "!", "&", "|", "^", "~",
			"<<", ">>", ">>>", "++", "--",
			"+=", "-=", "*=", "/=", "%=", "**=", "&&=", "||=", "??=",
			"&=", "|=", "^=", "<<=", ">>=", ">>>=",
			"=>", ".", "?.", "?", ":", ";",
		),
		operands: set(
			"identifier", "property_identifier", "shorthand_property_identifier",
			"number", "string", "template_string", "regex", "true", "false",
			"null", "undefined", "this", "super",
		),
		decisions: set(
			"if", "for", "while", "case", "catch", "&&", "||",
			"ternary_expression",
		),
		exits: set("return_statement"),
		cognitive: &CognitiveRules{
			Nesting: set(
				"if_statement", "for_statement", "for_in_statement",
				"while_statement", "do_statement", "switch_statement",
				"catch_clause", "ternary_expression",
			),
			Flat: set("else"),
			Funcs: set(
				"function_declaration", "method_definition", "function",
				"function_expression",
			),
			Lambdas: set(
				"arrow_function", "generator_function",
				"generator_function_declaration",
			),
			Unit:     "program",
			BoolExpr: set("binary_expression"),
			BoolOps:  set("&&", "||"),
			NotOp:    "unary_expression",
			BoolReset: set("expression_statement"),
			LabeledJumps: set("break_statement", "continue_statement"),
			LabelKinds:   set("statement_identifier"),
		},
		loc: &LocRules{
			Comments: set("comment"),
			Ignore: set(
				"program", "statement_block", "class_body", "string",
				"template_string",
			),
			Statements: set(
				"expression_statement", "variable_declaration",
				"lexical_declaration", "if_statement", "for_statement",
				"for_in_statement", "while_statement", "do_statement",
				"switch_statement", "return_statement", "break_statement",
				"continue_statement", "throw_statement", "try_statement",
				"labeled_statement", "debugger_statement",
				"import_statement", "export_statement",
			),
		},
	}
}

var (
	javascriptLang = &jsFamily{jsBase(parser.LangJavaScript)}
	typescriptLang = &jsFamily{jsBase(parser.LangTypeScript)}
	tsxLang        = &jsFamily{jsBase(parser.LangTSX)}
)

func (j *jsFamily) SpaceKind(n *parser.Node) SpaceKind {
	switch n.Kind() {
	case "function_declaration", "method_definition", "function",
		"function_expression", "arrow_function", "generator_function",
		"generator_function_declaration":
		return SpaceFunction
	case "class", "class_declaration":
		return SpaceClass
	case "interface_declaration":
		return SpaceInterface
	case "program":
		return SpaceUnit
	default:
		return SpaceUnknown
	}
}

// Anonymous callables borrow their name from an enclosing property pair or
// variable declarator, the way developers read them.
func (j *jsFamily) FuncSpaceName(n *parser.Node, code []byte) (string, bool) {
	if name := n.ChildByField("name"); name != nil {
		return name.Text(code), true
	}
	if parent := n.Parent(); parent != nil {
		switch parent.Kind() {
		case "pair":
			if key := parent.ChildByField("key"); key != nil {
				return key.Text(code), true
			}
		case "variable_declarator":
			if name := parent.ChildByField("name"); name != nil {
				return name.Text(code), true
			}
		}
	}
	return AnonymousName, true
}

// Ancestor sets deciding whether an anonymous function expression is a
// named function in disguise or a plain closure.
var (
	jsFuncAnchor = set(
		"variable_declarator", "assignment_expression", "labeled_statement",
		"pair",
	)
	jsFuncStop = set(
		"statement_block", "return_statement", "new_expression", "arguments",
	)
	jsArrowAnchor = set(
		"variable_declarator", "assignment_expression", "labeled_statement",
	)
	jsArrowStop = set(
		"statement_block", "return_statement", "new_expression",
		"call_expression",
	)
)

func countAnchored(n *parser.Node, anchor, stop map[string]bool) int {
	return n.CountSpecificAncestors(
		func(a *parser.Node) bool { return anchor[a.Kind()] },
		func(a *parser.Node) bool { return stop[a.Kind()] },
	)
}

func (j *jsFamily) isNamedFunctionExpr(n *parser.Node) bool {
	return countAnchored(n, jsFuncAnchor, jsFuncStop) > 0 || n.HasChild("identifier")
}

func (j *jsFamily) isNamedArrow(n *parser.Node) bool {
	return countAnchored(n, jsArrowAnchor, jsArrowStop) > 0 ||
		n.HasSibling("property_identifier")
}

func (j *jsFamily) IsFunc(n *parser.Node) bool {
	switch n.Kind() {
	case "function_declaration", "method_definition":
		return true
	case "function", "function_expression":
		return j.isNamedFunctionExpr(n)
	case "arrow_function":
		return j.isNamedArrow(n)
	default:
		return false
	}
}

func (j *jsFamily) IsClosure(n *parser.Node) bool {
	switch n.Kind() {
	case "generator_function", "generator_function_declaration":
		return true
	case "function", "function_expression":
		return !j.isNamedFunctionExpr(n)
	case "arrow_function":
		return !j.isNamedArrow(n)
	default:
		return false
	}
}

func (j *jsFamily) IsElseIf(n *parser.Node) bool {
	if n.Kind() != "if_statement" {
		return false
	}
	return elseIfByClause(n)
}

// Arrow parameters may be a bare identifier rather than a parameter list.
func (j *jsFamily) ParamsOf(n *parser.Node) *parser.Node {
	if params := n.ChildByField("parameters"); params != nil {
		return params
	}
	return n.ChildByField("parameter")
}
