// Package parser provides readers for snippet-library source files.
// Each source format (Visual Studio .snippet XML, YAML and TOML manifests)
// has its own parser implementation that turns a file into an ordered
// list of model.SourceSnippet records.
package parser
