package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func macroSet(names ...string) map[string]struct{} {
	m := make(map[string]struct{}, len(names))
	for _, n := range names {
		m[n] = struct{}{}
	}
	return m
}

func TestBlankMacros(t *testing.T) {
	macros := macroSet("abc")

	assert.Nil(t, BlankMacros([]byte("def ghi jkl"), macros))
	assert.Equal(t, []byte("$$$ def ghi jkl"), BlankMacros([]byte("abc def ghi jkl"), macros))
	assert.Equal(t, []byte("def $$$ ghi jkl"), BlankMacros([]byte("def abc ghi jkl"), macros))
	assert.Equal(t, []byte("def ghi $$$ jkl"), BlankMacros([]byte("def ghi abc jkl"), macros))
	assert.Equal(t, []byte("def ghi jkl $$$"), BlankMacros([]byte("def ghi jkl abc"), macros))

	macros = macroSet("abc", "z9_")
	assert.Equal(t, []byte("$$$ def ghi $$$ jkl"), BlankMacros([]byte("abc def ghi z9_ jkl"), macros))
}

func TestBlankMacrosPreservesByteLength(t *testing.T) {
	macros := macroSet("MOZ_ALWAYS_INLINE", "FOO")
	code := []byte("MOZ_ALWAYS_INLINE int foo(int FOO) { return FOO + FOOD; }")
	out := BlankMacros(code, macros)
	assert.Len(t, out, len(code))
	// A prefix of a longer identifier never matches.
	assert.Contains(t, string(out), "FOOD")
	assert.Contains(t, string(out), "$$$ + FOOD")
}

func TestBlankMacrosPredefined(t *testing.T) {
	out := BlankMacros([]byte("#if __has_include(<optional>)"), macroSet())
	assert.Equal(t, "#if $$$$$$$$$$$$$(<optional>)", string(out))
}
