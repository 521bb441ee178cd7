// Package vssnippet implements the Parser interface for Visual Studio .snippet files.
// A file holds a CodeSnippets root with one or more CodeSnippet elements, each
// carrying a Header (Title, Shortcut, Description) and a Snippet (Declarations, Code).
package vssnippet

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/antchfx/xmlquery"
	"github.com/antchfx/xpath"

	"github.com/klauern/snipconv/internal/logging"
	"github.com/klauern/snipconv/internal/model"
	"github.com/klauern/snipconv/internal/parser"
)

// Expressions ignore namespaces; files in the wild use the 2005 CodeSnippet
// namespace, no namespace, or a prefixed one.
var (
	exprCodeSnippet  = xpath.MustCompile("//*[local-name()='CodeSnippet']")
	exprTitle        = xpath.MustCompile("./*[local-name()='Header']/*[local-name()='Title']")
	exprShortcut     = xpath.MustCompile("./*[local-name()='Header']/*[local-name()='Shortcut']")
	exprDescription  = xpath.MustCompile("./*[local-name()='Header']/*[local-name()='Description']")
	exprDeclarations = xpath.MustCompile("./*[local-name()='Snippet']/*[local-name()='Declarations']/*[local-name()='Literal' or local-name()='Object']")
	exprID           = xpath.MustCompile("./*[local-name()='ID']")
	exprDefault      = xpath.MustCompile("./*[local-name()='Default']")
	exprCode         = xpath.MustCompile("./*[local-name()='Snippet']/*[local-name()='Code']")
)

// Parser implements the parser.Parser interface for Visual Studio snippets
type Parser struct {
	path string
}

// New creates a parser for the .snippet file at path
func New(path string) *Parser {
	return &Parser{path: path}
}

// Format returns the source format
func (p *Parser) Format() model.SourceFormat {
	return model.FormatVSSnippet
}

// Parse reads all CodeSnippet elements in document order
func (p *Parser) Parse() ([]model.SourceSnippet, error) {
	// #nosec G304 - path is a user-selected source file
	data, err := os.ReadFile(p.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read snippet file %q: %w", p.path, err)
	}
	return ParseReader(bytes.NewReader(data), p.path)
}

// ParseReader parses snippets from r. path is used for error messages only.
func ParseReader(r io.Reader, path string) ([]model.SourceSnippet, error) {
	root, err := xmlquery.Parse(r)
	if err != nil {
		return nil, &parser.Error{Path: path, Message: "invalid XML", Err: err}
	}

	nodes := xmlquery.QuerySelectorAll(root, exprCodeSnippet)
	if len(nodes) == 0 {
		return nil, &parser.Error{Path: path, Message: "no CodeSnippet elements found"}
	}

	snippets := make([]model.SourceSnippet, 0, len(nodes))
	for _, n := range nodes {
		s, err := parseCodeSnippet(n, path)
		if err != nil {
			return nil, err
		}
		snippets = append(snippets, s)
	}

	logging.Debug("parsed visual studio snippets",
		logging.Path(path),
		logging.Count(len(snippets)),
		logging.Format(model.FormatVSSnippet.String()),
	)
	return snippets, nil
}

func parseCodeSnippet(n *xmlquery.Node, path string) (model.SourceSnippet, error) {
	s := model.SourceSnippet{
		Title:       text(n, exprTitle),
		Shortcut:    text(n, exprShortcut),
		Description: text(n, exprDescription),
		Path:        path,
	}
	if err := parser.RequireFields(path, s); err != nil {
		return model.SourceSnippet{}, err
	}

	code := xmlquery.QuerySelector(n, exprCode)
	if code == nil {
		return model.SourceSnippet{}, &parser.Error{Path: path, Snippet: s.Title, Message: "missing Code element"}
	}
	s.Code = codeText(code)
	s.Language = strings.TrimSpace(code.SelectAttr("Language"))
	s.Delimiter = code.SelectAttr("Delimiter")

	for _, decl := range xmlquery.QuerySelectorAll(n, exprDeclarations) {
		id := text(decl, exprID)
		if id == "" {
			return model.SourceSnippet{}, &parser.Error{Path: path, Snippet: s.Title, Message: "declaration without ID"}
		}
		s.Declarations = append(s.Declarations, model.Declaration{
			ID:      id,
			Default: rawText(decl, exprDefault),
		})
	}

	return s, nil
}

// codeText returns the CDATA sections of a Code element, ignoring the
// formatting whitespace around them. Without CDATA the plain text is used.
func codeText(code *xmlquery.Node) string {
	var sb strings.Builder
	found := false
	for c := code.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == xmlquery.CharDataNode {
			sb.WriteString(c.Data)
			found = true
		}
	}
	if !found {
		return code.InnerText()
	}
	return sb.String()
}

// text returns the trimmed inner text of the first match, or "".
func text(n *xmlquery.Node, expr *xpath.Expr) string {
	return strings.TrimSpace(rawText(n, expr))
}

// rawText returns the untrimmed inner text of the first match, or "".
func rawText(n *xmlquery.Node, expr *xpath.Expr) string {
	if m := xmlquery.QuerySelector(n, expr); m != nil {
		return m.InnerText()
	}
	return ""
}
