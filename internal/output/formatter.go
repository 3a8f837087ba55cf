// Package output serializes the report trees and renders the console
// views.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/fxamacker/cbor/v2"
	"github.com/pelletier/go-toml"
	"gopkg.in/yaml.v3"
)

// Format is a structured output format.
type Format string

const (
	FormatJSON Format = "json"
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
	FormatCBOR Format = "cbor"
)

// ParseFormat converts a string to a Format.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "", "json":
		return FormatJSON, nil
	case "toml":
		return FormatTOML, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "cbor":
		return FormatCBOR, nil
	default:
		return "", fmt.Errorf("unsupported output format: %s", s)
	}
}

// Ext returns the file extension of the format.
func (f Format) Ext() string { return "." + string(f) }

// Write serializes data in the format.
func (f Format) Write(w io.Writer, data any) error {
	switch f {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(data)
	case FormatTOML:
		return toml.NewEncoder(w).Encode(data)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		defer enc.Close()
		return enc.Encode(data)
	case FormatCBOR:
		return cbor.NewEncoder(w).Encode(data)
	default:
		return fmt.Errorf("unsupported output format: %s", f)
	}
}

// WriteFile serializes data into the output directory, mirroring the
// input path: dir + path + extension.
func (f Format) WriteFile(dir, inputPath string, data any) error {
	target := filepath.Join(dir, inputPath+f.Ext())
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return fmt.Errorf("failed to create output dir: %w", err)
	}
	file, err := os.Create(target)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer file.Close()
	return f.Write(file, data)
}
