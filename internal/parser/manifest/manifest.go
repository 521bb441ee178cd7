// Package manifest implements the Parser interface for snippet manifests
// written in YAML or TOML. A manifest lists snippets under a top-level
// "snippets" key:
//
//	snippets:
//	  - shortcut: hw
//	    title: Hello World
//	    code: "Hello $name$"
//	    declarations:
//	      - id: name
//	        default: World
package manifest

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/klauern/snipconv/internal/logging"
	"github.com/klauern/snipconv/internal/model"
	"github.com/klauern/snipconv/internal/parser"
)

// File is the manifest document structure.
type File struct {
	Snippets []model.SourceSnippet `yaml:"snippets" toml:"snippets"`
}

// Parser implements the parser.Parser interface for YAML and TOML manifests
type Parser struct {
	path   string
	format model.SourceFormat
}

// New creates a manifest parser. The format must be FormatYAML or FormatTOML.
func New(path string, format model.SourceFormat) (*Parser, error) {
	if format != model.FormatYAML && format != model.FormatTOML {
		return nil, fmt.Errorf("manifest parser does not support format %q", format)
	}
	return &Parser{path: path, format: format}, nil
}

// Format returns the source format
func (p *Parser) Format() model.SourceFormat {
	return p.format
}

// Parse reads the manifest and returns its snippets in order
func (p *Parser) Parse() ([]model.SourceSnippet, error) {
	// #nosec G304 - path is a user-selected source file
	data, err := os.ReadFile(p.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest %q: %w", p.path, err)
	}
	return Decode(data, p.format, p.path)
}

// Decode parses manifest bytes in the given format. path is used for error messages
// and recorded on each snippet.
func Decode(data []byte, format model.SourceFormat, path string) ([]model.SourceSnippet, error) {
	var f File

	switch format {
	case model.FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		// a document with nothing but comments decodes to io.EOF
		if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
			return nil, &parser.Error{Path: path, Message: "invalid YAML manifest", Err: err}
		}
	case model.FormatTOML:
		md, err := toml.Decode(string(data), &f)
		if err != nil {
			return nil, &parser.Error{Path: path, Message: "invalid TOML manifest", Err: err}
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return nil, &parser.Error{Path: path, Message: fmt.Sprintf("unknown manifest key %q", undecoded[0].String())}
		}
	default:
		return nil, fmt.Errorf("manifest parser does not support format %q", format)
	}

	for i := range f.Snippets {
		if err := parser.RequireFields(path, f.Snippets[i]); err != nil {
			return nil, err
		}
		for _, d := range f.Snippets[i].Declarations {
			if d.ID == "" {
				return nil, &parser.Error{Path: path, Snippet: f.Snippets[i].Title, Message: "declaration without id"}
			}
		}
		f.Snippets[i].Path = path
	}

	logging.Debug("parsed snippet manifest",
		logging.Path(path),
		logging.Count(len(f.Snippets)),
		logging.Format(format.String()),
	)
	return f.Snippets, nil
}
