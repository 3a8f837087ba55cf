package output

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/fxamacker/cbor/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/panbanda/augur/pkg/parser"
	"github.com/panbanda/augur/pkg/spaces"
)

func sampleSpace(t *testing.T) *spaces.FuncSpace {
	t.Helper()
	psr := parser.New()
	t.Cleanup(psr.Close)
	result, err := psr.Parse([]byte("def f(a):\n    return a\n"), parser.LangPython, "foo.py", nil)
	require.NoError(t, err)
	space := spaces.Metrics(result)
	require.NotNil(t, space)
	return space
}

func TestParseFormat(t *testing.T) {
	for _, valid := range []string{"json", "toml", "yaml", "yml", "cbor", ""} {
		_, err := ParseFormat(valid)
		assert.NoError(t, err, valid)
	}
	_, err := ParseFormat("xml")
	assert.Error(t, err)
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, FormatJSON.Write(&buf, sampleSpace(t)))

	var reloaded spaces.FuncSpace
	require.NoError(t, json.Unmarshal(buf.Bytes(), &reloaded))
	assert.Equal(t, "foo.py", reloaded.Name)
	require.Len(t, reloaded.Spaces, 1)
	assert.Equal(t, "f", reloaded.Spaces[0].Name)
}

func TestWriteYAMLAndTOML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, FormatYAML.Write(&buf, sampleSpace(t)))
	assert.Contains(t, buf.String(), "name: foo.py")

	buf.Reset()
	require.NoError(t, FormatTOML.Write(&buf, sampleSpace(t)))
	assert.Contains(t, buf.String(), "foo.py")
}

func TestWriteCBORRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, FormatCBOR.Write(&buf, sampleSpace(t)))

	var reloaded map[string]any
	require.NoError(t, cbor.Unmarshal(buf.Bytes(), &reloaded))
	assert.Equal(t, "foo.py", reloaded["name"])
}

func TestWriteFileMirrorsInputTree(t *testing.T) {
	dir := t.TempDir()
	space := sampleSpace(t)

	require.NoError(t, FormatJSON.WriteFile(dir, filepath.Join("src", "foo.py"), space))

	data, err := os.ReadFile(filepath.Join(dir, "src", "foo.py.json"))
	require.NoError(t, err)
	var reloaded spaces.FuncSpace
	require.NoError(t, json.Unmarshal(data, &reloaded))
	assert.Equal(t, "foo.py", reloaded.Name)
}

func TestDumpSpacesRenders(t *testing.T) {
	var buf bytes.Buffer
	DumpSpaces(&buf, sampleSpace(t))
	out := buf.String()
	assert.Contains(t, out, "foo.py")
	assert.Contains(t, out, "cyclomatic")
	assert.Contains(t, out, "halstead")
}
