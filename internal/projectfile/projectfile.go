// Package projectfile reads and writes project files. The default encoding is
// an XML property list; binary plists, YAML and JSON carry the same tree.
package projectfile

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mj1618/fontproject/internal/model"
	"gopkg.in/yaml.v3"
	"howett.net/plist"
)

// Extension is the file extension the host associates with project files.
const Extension = ".roboFontProject"

// Format is a project file encoding.
type Format string

const (
	FormatXML    Format = "xml"
	FormatBinary Format = "binary"
	FormatYAML   Format = "yaml"
	FormatJSON   Format = "json"
)

// ParseFormat converts a flag value to a Format.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "xml", "plist", "":
		return FormatXML, nil
	case "binary", "bplist":
		return FormatBinary, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("unknown format: %q (expected xml, binary, yaml, or json)", s)
	}
}

// HasExtension reports whether path names a project file. The comparison
// ignores case.
func HasExtension(path string) bool {
	return strings.EqualFold(filepath.Ext(path), Extension)
}

// FormatForPath picks an encoding from the file extension, falling back to XML.
func FormatForPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	case ".json":
		return FormatJSON
	default:
		return FormatXML
	}
}

// Encode serializes p in the given format.
func Encode(p *model.Project, format Format) ([]byte, error) {
	tree := p.ToTree()
	switch format {
	case FormatXML, "":
		data, err := plist.MarshalIndent(tree, plist.XMLFormat, "\t")
		if err != nil {
			return nil, fmt.Errorf("plist encode: %w", err)
		}
		return data, nil
	case FormatBinary:
		data, err := plist.Marshal(tree, plist.BinaryFormat)
		if err != nil {
			return nil, fmt.Errorf("binary plist encode: %w", err)
		}
		return data, nil
	case FormatYAML:
		data, err := yaml.Marshal(tree)
		if err != nil {
			return nil, fmt.Errorf("yaml encode: %w", err)
		}
		return data, nil
	case FormatJSON:
		data, err := json.MarshalIndent(tree, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("json encode: %w", err)
		}
		return append(data, '\n'), nil
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
}

// Sniff guesses the encoding of data from its leading bytes.
func Sniff(data []byte) Format {
	if bytes.HasPrefix(data, []byte("bplist")) {
		return FormatBinary
	}
	trimmed := bytes.TrimLeft(data, " \t\r\n\ufeff")
	switch {
	case bytes.HasPrefix(trimmed, []byte("<")):
		return FormatXML
	case bytes.HasPrefix(trimmed, []byte("{")):
		return FormatJSON
	default:
		return FormatYAML
	}
}

// Decode parses a project in any supported encoding. Window entries that
// cannot be restored are dropped and returned as diagnostics.
func Decode(data []byte) (*model.Project, []model.Diagnostic, error) {
	format := Sniff(data)
	var tree interface{}
	switch format {
	case FormatXML, FormatBinary:
		if _, err := plist.Unmarshal(data, &tree); err != nil {
			return nil, nil, fmt.Errorf("plist decode: %w", err)
		}
	case FormatJSON:
		if err := json.Unmarshal(data, &tree); err != nil {
			return nil, nil, fmt.Errorf("json decode: %w", err)
		}
	case FormatYAML:
		if err := yaml.Unmarshal(data, &tree); err != nil {
			return nil, nil, fmt.Errorf("yaml decode: %w", err)
		}
	}
	return model.FromTree(tree)
}

// Load reads and decodes the project at path and reports the encoding it
// was stored in.
func Load(path string) (*model.Project, Format, []model.Diagnostic, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, "", nil, err
	}
	p, diags, err := Decode(data)
	if err != nil {
		return nil, "", nil, fmt.Errorf("%s: %w", path, err)
	}
	return p, Sniff(data), diags, nil
}

// ReadFile reads and decodes the project at path.
func ReadFile(path string) (*model.Project, []model.Diagnostic, error) {
	p, _, diags, err := Load(path)
	return p, diags, err
}

// WriteFile encodes p and writes it to path, creating parent directories.
func WriteFile(path string, p *model.Project, format Format) error {
	data, err := Encode(p, format)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
