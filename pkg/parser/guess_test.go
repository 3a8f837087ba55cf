package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGuessLanguageByExtension(t *testing.T) {
	tests := []struct {
		path string
		want Language
		name string
	}{
		{"foo.py", LangPython, "python"},
		{"foo.rs", LangRust, "rust"},
		{"foo.cpp", LangCPP, "c/c++"},
		{"foo.c", LangC, "c/c++"},
		{"foo.java", LangJava, "java"},
		{"foo.ts", LangTypeScript, "typescript"},
		{"foo.tsx", LangTSX, "tsx"},
		{"foo.js", LangJavaScript, "javascript"},
		{"foo.go", LangGo, "go"},
	}
	for _, tt := range tests {
		lang, name := GuessLanguage([]byte("int a = 42;\n"), tt.path)
		assert.Equal(t, tt.want, lang, tt.path)
		assert.Equal(t, tt.name, name, tt.path)
	}
}

func TestGuessLanguageModeLines(t *testing.T) {
	lang, name := GuessLanguage([]byte("// -*- foo: bar; mode: c++; hello: world\n"), "foo.cpp")
	assert.Equal(t, LangCPP, lang)
	assert.Equal(t, "c/c++", name)

	lang, _ = GuessLanguage([]byte("// -*- c++ -*-\n"), "noext")
	assert.Equal(t, LangCPP, lang)

	// `bar-mode:` is not a mode key, so the extension alone decides.
	lang, _ = GuessLanguage([]byte("// -*- foo: bar; bar-mode: c++; hello: world\n"), "foo.py")
	assert.Equal(t, LangPython, lang)

	// Vim mode lines are also found at the end of the buffer.
	lang, _ = GuessLanguage([]byte("\n\n\n\n\n\n\n\n\n// vim: set ts=4 ft=rust\n\n\n"), "noext")
	assert.Equal(t, LangRust, lang)

	lang, name = GuessLanguage([]byte("\n\n\n\n\n\n\n\n\n\n\n\n"), "foo.txt")
	assert.Equal(t, LangUnknown, lang)
	assert.Equal(t, "", name)

	_, name = GuessLanguage([]byte("// -*- foo: bar; mode: Objective-C++; hello: world\n"), "foo.mm")
	assert.Equal(t, "obj-c/c++", name)
}

func TestGuessLanguageIdempotentOnTrailingWhitespace(t *testing.T) {
	buf := []byte("def f():\n    pass\n")
	lang1, name1 := GuessLanguage(buf, "foo.py")
	lang2, name2 := GuessLanguage(append(buf, []byte("\n\n   \n")...), "foo.py")
	assert.Equal(t, lang1, lang2)
	assert.Equal(t, name1, name2)
}

func TestNormalizeSource(t *testing.T) {
	tests := []struct {
		in   []byte
		want []byte
		ok   bool
	}{
		{[]byte{0xFF, 0xFE, 'a', 'b', 'c'}, []byte("abc\n"), true},
		{[]byte{0xFE, 0xFF, 'a', 'b', 'c'}, []byte("abc\n"), true},
		{[]byte{0xEF, 0xBB, 0xBF, 'a', 'b', 'c'}, []byte("abc\n"), true},
		{[]byte("abcdef\n"), []byte("abcdef\n"), true},
		{[]byte("abcdef"), []byte("abcdef\n"), true},
		{[]byte("abc\r\n\r\n"), []byte("abc\n"), true},
		{[]byte{0x00, 0xFF, 0xFE, 0x01, 0x02}, nil, false},
	}
	for _, tt := range tests {
		got, ok := NormalizeSource(tt.in)
		require.Equal(t, tt.ok, ok)
		if ok {
			assert.Equal(t, tt.want, got)
		}
	}
}
