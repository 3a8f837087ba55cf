package lang

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/panbanda/augur/pkg/parser"
)

func TestForCoversEverySupportedLanguage(t *testing.T) {
	supported := []parser.Language{
		parser.LangPython, parser.LangRust, parser.LangC, parser.LangCPP,
		parser.LangJava, parser.LangJavaScript, parser.LangTypeScript,
		parser.LangTSX, parser.LangGo,
	}
	for _, l := range supported {
		profile := For(l)
		require.NotNil(t, profile, string(l))
		assert.Equal(t, l, profile.ID())
	}
	assert.Nil(t, For(parser.LangUnknown))
}

func TestSpaceKindRoundTrip(t *testing.T) {
	kinds := []SpaceKind{
		SpaceUnknown, SpaceUnit, SpaceFunction, SpaceClass, SpaceStruct,
		SpaceTrait, SpaceImpl, SpaceNamespace, SpaceInterface,
	}
	for _, k := range kinds {
		assert.Equal(t, k, SpaceKindFromString(k.String()))

		text, err := k.MarshalText()
		require.NoError(t, err)
		var back SpaceKind
		require.NoError(t, back.UnmarshalText(text))
		assert.Equal(t, k, back)
	}
}

func TestNoOpConcernsStayEmpty(t *testing.T) {
	// WMC, ABC, NPA and NPM are Java suites; the other profiles carry no
	// class-shape tables but still answer every checker call.
	py := For(parser.LangPython)
	assert.False(t, py.IsPrimitive("primitive_type"))

	rust := For(parser.LangRust)
	assert.True(t, rust.IsPrimitive("primitive_type"))
}
