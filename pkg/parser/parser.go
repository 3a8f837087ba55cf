// Package parser wraps tree-sitter for multi-language parsing and exposes
// the node view used by the metric kernels.
package parser

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/c"
	"github.com/smacker/go-tree-sitter/cpp"
	"github.com/smacker/go-tree-sitter/golang"
	"github.com/smacker/go-tree-sitter/java"
	"github.com/smacker/go-tree-sitter/javascript"
	"github.com/smacker/go-tree-sitter/python"
	"github.com/smacker/go-tree-sitter/rust"
	"github.com/smacker/go-tree-sitter/typescript/tsx"
	"github.com/smacker/go-tree-sitter/typescript/typescript"
)

// Language represents a supported programming language.
type Language string

const (
	LangGo         Language = "go"
	LangRust       Language = "rust"
	LangPython     Language = "python"
	LangTypeScript Language = "typescript"
	LangTSX        Language = "tsx"
	LangJavaScript Language = "javascript"
	LangJava       Language = "java"
	LangC          Language = "c"
	LangCPP        Language = "cpp"
	LangUnknown    Language = "unknown"
)

// Name returns the display name of a language.
func (l Language) Name() string {
	switch l {
	case LangC, LangCPP:
		return "c/c++"
	default:
		return string(l)
	}
}

// Parser wraps a tree-sitter parser bound to one language at a time.
type Parser struct {
	parser *sitter.Parser
}

// ParseResult contains the parsed tree and its source.
type ParseResult struct {
	Tree     *sitter.Tree
	Language Language
	Source   []byte
	Path     string
}

// Root returns the wrapped root node of the parse tree.
func (r *ParseResult) Root() *Node {
	return Wrap(r.Tree.RootNode())
}

// New creates a new parser instance.
func New() *Parser {
	return &Parser{parser: sitter.NewParser()}
}

// Parse parses source code with a specified language.
//
// For C and C++ sources, when macros is non-empty the macro blanking
// pre-pass runs first so that macro invocations the grammar cannot digest
// are hidden without moving any byte offsets.
func (p *Parser) Parse(source []byte, lang Language, path string, macros map[string]struct{}) (*ParseResult, error) {
	tsLang, err := TreeSitterLanguage(lang)
	if err != nil {
		return nil, err
	}

	if (lang == LangC || lang == LangCPP) && len(macros) > 0 {
		if blanked := BlankMacros(source, macros); blanked != nil {
			source = blanked
		}
	}

	p.parser.SetLanguage(tsLang)
	tree, err := p.parser.ParseCtx(context.Background(), nil, source)
	if err != nil {
		return nil, fmt.Errorf("failed to parse: %w", err)
	}

	return &ParseResult{
		Tree:     tree,
		Language: lang,
		Source:   source,
		Path:     path,
	}, nil
}

// ParseFile reads and parses a source file, guessing the language from its
// path and content.
func (p *Parser) ParseFile(path string, macros map[string]struct{}) (*ParseResult, error) {
	source, err := ReadSource(path)
	if err != nil {
		return nil, err
	}

	lang, _ := GuessLanguage(source, path)
	if lang == LangUnknown {
		return nil, fmt.Errorf("unsupported language for file: %s", path)
	}

	return p.Parse(source, lang, path, macros)
}

// TreeSitterLanguage returns the tree-sitter grammar for a Language.
func TreeSitterLanguage(lang Language) (*sitter.Language, error) {
	switch lang {
	case LangGo:
		return golang.GetLanguage(), nil
	case LangRust:
		return rust.GetLanguage(), nil
	case LangPython:
		return python.GetLanguage(), nil
	case LangTypeScript:
		return typescript.GetLanguage(), nil
	case LangTSX:
		return tsx.GetLanguage(), nil
	case LangJavaScript:
		return javascript.GetLanguage(), nil
	case LangJava:
		return java.GetLanguage(), nil
	case LangC:
		return c.GetLanguage(), nil
	case LangCPP:
		return cpp.GetLanguage(), nil
	default:
		return nil, fmt.Errorf("unsupported language: %s", lang)
	}
}

// DetectLanguage determines the language from a file path alone.
func DetectLanguage(path string) Language {
	ext := strings.ToLower(filepath.Ext(path))

	switch ext {
	case ".go":
		return LangGo
	case ".rs":
		return LangRust
	case ".py", ".pyw", ".pyi":
		return LangPython
	case ".ts":
		return LangTypeScript
	case ".tsx":
		return LangTSX
	case ".js", ".mjs", ".cjs", ".jsm", ".jsx":
		return LangJavaScript
	case ".java":
		return LangJava
	case ".c", ".h":
		return LangC
	case ".cpp", ".cc", ".cxx", ".hpp", ".hxx", ".hh", ".mm":
		return LangCPP
	default:
		return LangUnknown
	}
}

// Close releases parser resources.
func (p *Parser) Close() {
	p.parser.Close()
}

// NodeText extracts the source text for a node.
// Returns empty string if node is nil or byte offsets are out of bounds.
func NodeText(node *Node, source []byte) string {
	if node == nil {
		return ""
	}
	start := node.StartByte()
	end := node.EndByte()
	if start > end || end > len(source) {
		return ""
	}
	return string(source[start:end])
}
