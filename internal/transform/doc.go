// Package transform converts source snippets into VS Code snippet entries.
//
// A conversion rewrites delimiter-marked placeholders into numbered tab stops,
// splits the rewritten code into body lines and fills in the prefix, scope
// and description of the target entry:
//
//	$name$        -> ${1}
//	$name$ (x)    -> ${1:x}
//	$end$         -> $0
//
// Placeholders are matched by plain substring replacement in declaration
// order. Identifiers that are substrings of one another are not disambiguated.
package transform
