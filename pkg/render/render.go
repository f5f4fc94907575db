// Package render serializes a project tree into a document that is
// consumed by the CI server.
package render

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/simplesurance/ciconf/pkg/pipeline"
)

// DocumentVersion is the version of the document structure.
const DocumentVersion = 1

type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
	FormatTOML Format = "toml"
)

// Formats returns the supported output formats.
func Formats() []string {
	return []string{string(FormatYAML), string(FormatJSON), string(FormatTOML)}
}

// ParseFormat returns the Format with the given name, the comparison is
// case-insensitive.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatYAML, FormatJSON, FormatTOML:
		return f, nil
	default:
		return "", fmt.Errorf("unsupported format %q, supported formats: %s", s, strings.Join(Formats(), ", "))
	}
}

// Options configure how a project tree is rendered.
type Options struct {
	// RevealSecrets renders the values of password parameters instead of
	// a mask.
	RevealSecrets bool
}

// NewDocument converts the tree rooted at root into a Document.
// Parameters are ordered by name, all other elements keep the order of the
// tree.
func NewDocument(root *pipeline.Project, opts Options) *Document {
	return &Document{
		Version: DocumentVersion,
		Project: newProject(root, opts.RevealSecrets),
	}
}

// Write renders the tree rooted at root in format f to w.
// The output for the same tree is always the same.
func Write(w io.Writer, root *pipeline.Project, f Format, opts Options) error {
	doc := NewDocument(root, opts)

	switch f {
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("encoding yaml failed: %w", err)
		}
		return enc.Close()

	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(doc)

	case FormatTOML:
		enc := toml.NewEncoder(w)
		enc.SetIndentTables(true)
		enc.SetArraysMultiline(true)
		return enc.Encode(doc)

	default:
		return fmt.Errorf("unsupported format %q", f)
	}
}
