package transform

import (
	"log/slog"
	"strings"

	"github.com/klauern/snipconv/internal/logging"
	"github.com/klauern/snipconv/internal/model"
)

// Build converts a source snippet into a target snippet.
func Build(src model.SourceSnippet) model.TargetSnippet {
	code := RewritePlaceholders(src.Code, src.EffectiveDelimiter(), src.Declarations)

	return model.TargetSnippet{
		Prefix:      strings.ToLower(src.Shortcut),
		Scope:       strings.ToLower(src.EffectiveLanguage()),
		Body:        SplitLines(code),
		Description: src.Description,
		Title:       src.Title,
	}
}

// ApplyPrefix prepends prefix to the snippet's Prefix and Title unless the
// field already starts with it (case-insensitive). An empty prefix is a no-op.
func ApplyPrefix(t model.TargetSnippet, prefix string) model.TargetSnippet {
	if prefix == "" {
		return t
	}
	t.Prefix = prependOnce(t.Prefix, prefix)
	t.Title = prependOnce(t.Title, prefix)
	return t
}

func prependOnce(s, prefix string) string {
	if strings.HasPrefix(strings.ToLower(s), strings.ToLower(prefix)) {
		return s
	}
	return prefix + s
}

// Transformer builds target snippets with a fixed batch prefix.
type Transformer struct {
	prefix string
}

// NewTransformer creates a transformer that applies prefix to every snippet.
func NewTransformer(prefix string) *Transformer {
	return &Transformer{prefix: prefix}
}

// Transform builds and prefixes a single snippet.
func (t *Transformer) Transform(src model.SourceSnippet) model.TargetSnippet {
	target := ApplyPrefix(Build(src), t.prefix)

	logging.Debug("transformed snippet",
		logging.Snippet(src.Title),
		slog.String("prefix", target.Prefix),
		slog.String("scope", target.Scope),
		slog.Int("lines", len(target.Body)),
		logging.Operation("transform"),
	)

	return target
}

// TransformAll transforms snippets in order.
func (t *Transformer) TransformAll(srcs []model.SourceSnippet) []model.TargetSnippet {
	out := make([]model.TargetSnippet, 0, len(srcs))
	for _, src := range srcs {
		out = append(out, t.Transform(src))
	}
	return out
}
