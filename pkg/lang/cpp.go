package lang

import "github.com/panbanda/augur/pkg/parser"

// Kind tables shared by the C and C++ grammars. The C++ grammar is a
// superset; kinds the C grammar never produces are harmless in its tables.
type cFamily struct {
	base
}

func newCFamily(id parser.Language) *cFamily {
	return &cFamily{base{
		id:       id,
		comments: set("comment"),
		strings: set(
			"string_literal", "raw_string_literal", "concatenated_string",
			"system_lib_string",
		),
		funcs:    set("function_definition"),
		closures: set("lambda_expression"),
		spaces: set(
			"translation_unit", "function_definition", "struct_specifier",
			"class_specifier", "namespace_definition",
		),
		calls:      set("call_expression"),
		nonArgs:    set("(", ")", ",", "..."),
		primitives: set("primitive_type"),
		operators: set(
			"if", "else", "for", "while", "do", "switch", "case", "default",
			"return", "break", "continue", "goto", "new", "delete", "try",
			"catch", "throw", "sizeof", "using", "namespace", "class",
			"struct", "enum", "union", "typedef", "template", "typename",
			"const", "static", "virtual", "operator", "public", "private",
			"protected", "primitive_type",
			"=", "==", "!=", "<", ">", "<=", ">=", "+", "-", "*", "/", "%",
			"&&", "||", "!", "&", "|", "^", "<<", ">>", "++", "--",
			"+=", "-=", "*=", "/=", "%=", "&=", "|=", "^=", "<<=", ">>=",
			"->", ".", "::", "?", ";",
		),
		operands: set(
			"identifier", "field_identifier", "type_identifier",
			"number_literal", "string_literal", "raw_string_literal",
			"char_literal", "true", "false", "null", "nullptr", "this",
		),
		decisions: set(
			"if", "for", "while", "case", "catch", "&&", "||",
			"conditional_expression",
		),
		exits: set("return_statement"),
		cognitive: &CognitiveRules{
			Nesting: set(
				"if_statement", "for_statement", "while_statement",
				"do_statement", "switch_statement", "catch_clause",
			),
			Flat:    set("else"),
			Funcs:   set("function_definition"),
			Lambdas: set("lambda_expression"),
			Unit:    "translation_unit",
			BoolExpr: set("binary_expression"),
			BoolOps:  set("&&", "||"),
			NotOp:    "unary_expression",
			BoolReset: set("expression_statement"),
			LabeledJumps: set("goto_statement"),
			LabelKinds:   set("statement_identifier"),
		},
		loc: &LocRules{
			Comments: set("comment"),
			Ignore: set(
				"translation_unit", "compound_statement", "string_literal",
				"raw_string_literal", "concatenated_string",
			),
			Statements: set(
				"declaration", "expression_statement", "if_statement",
				"for_statement", "while_statement", "do_statement",
				"switch_statement", "case_statement", "return_statement",
				"break_statement", "continue_statement", "goto_statement",
				"labeled_statement", "try_statement", "throw_statement",
				"field_declaration",
			),
		},
	}}
}

var (
	cLang   = newCFamily(parser.LangC)
	cppLang = newCFamily(parser.LangCPP)
)

func (c *cFamily) SpaceKind(n *parser.Node) SpaceKind {
	switch n.Kind() {
	case "function_definition":
		return SpaceFunction
	case "struct_specifier":
		return SpaceStruct
	case "class_specifier":
		return SpaceClass
	case "namespace_definition":
		return SpaceNamespace
	case "translation_unit":
		return SpaceUnit
	default:
		return SpaceUnknown
	}
}

// C and C++ function names hide inside the declarator chain; operator
// casts carry the name on a dedicated node.
func (c *cFamily) FuncSpaceName(n *parser.Node, code []byte) (string, bool) {
	if n.Kind() != "function_definition" {
		if name := n.ChildByField("name"); name != nil {
			return name.Text(code), true
		}
		return "", false
	}

	if cast := n.FirstOccurrence(func(d *parser.Node) bool {
		return d.Kind() == "operator_cast"
	}); cast != nil {
		return cast.Text(code), true
	}

	decl := n.ChildByField("declarator")
	if decl == nil {
		return "", false
	}
	fd := decl.FirstOccurrence(func(d *parser.Node) bool {
		return d.Kind() == "function_declarator"
	})
	if fd == nil {
		return "", false
	}
	first := fd.Child(0)
	if first == nil {
		return "", false
	}
	switch first.Kind() {
	case "identifier", "field_identifier", "scoped_identifier",
		"qualified_identifier", "destructor_name", "operator_name",
		"template_function", "template_method":
		return first.Text(code), true
	}
	return "", false
}

func (c *cFamily) IsUsefulComment(n *parser.Node, code []byte) bool {
	return hasUsefulMarker(code[n.StartByte():n.EndByte()])
}

func (c *cFamily) IsElseIf(n *parser.Node) bool {
	if n.Kind() != "if_statement" {
		return false
	}
	return elseIfByClause(n)
}

// Parameters live on the function declarator, below the declarator field.
func (c *cFamily) ParamsOf(n *parser.Node) *parser.Node {
	decl := n.ChildByField("declarator")
	if decl == nil {
		return n.ChildByField("parameters")
	}
	fd := decl
	if decl.Kind() != "function_declarator" {
		fd = decl.FirstOccurrence(func(d *parser.Node) bool {
			return d.Kind() == "function_declarator" ||
				d.Kind() == "abstract_function_declarator"
		})
	}
	if fd == nil {
		return decl.ChildByField("parameters")
	}
	return fd.ChildByField("parameters")
}
