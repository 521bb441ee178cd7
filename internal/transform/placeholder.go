package transform

import (
	"strconv"
	"strings"

	"github.com/klauern/snipconv/internal/model"
)

// RewritePlaceholders replaces every <delim>id<delim> token in code with a
// positional tab stop and every <delim>end<delim> token with $0.
//
// The i-th declaration (1-based) becomes <delim>{i} or, with a default,
// <delim>{i:default}. An empty delimiter means model.DefaultDelimiter.
func RewritePlaceholders(code, delim string, decls []model.Declaration) string {
	if delim == "" {
		delim = model.DefaultDelimiter
	}

	for i, decl := range decls {
		if decl.ID == "" {
			continue
		}
		token := delim + decl.ID + delim
		code = strings.ReplaceAll(code, token, tabStop(delim, i+1, decl))
	}

	return strings.ReplaceAll(code, delim+model.EndMarker+delim, model.FinalTabStop)
}

func tabStop(delim string, n int, decl model.Declaration) string {
	var sb strings.Builder
	sb.WriteString(delim)
	sb.WriteString("{")
	sb.WriteString(strconv.Itoa(n))
	if decl.HasDefault() {
		sb.WriteString(":")
		sb.WriteString(decl.Default)
	}
	sb.WriteString("}")
	return sb.String()
}
