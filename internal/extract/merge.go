package extract

import (
	"strings"
	"unicode/utf8"

	"github.com/ppiankov/verdict/internal/model"
)

// Merge concatenates layers per kind in the order given and drops repeated
// texts, keeping the first occurrence. Pattern spans go first, then each
// annotator in priority order. PERSON texts of one rune or less are dropped
// whatever layer produced them.
func Merge(layers ...model.Spans) model.Spans {
	merged := make(model.Spans, len(model.AllKinds))
	for _, kind := range model.AllKinds {
		seen := make(map[string]struct{})
		var out []model.EntitySpan
		for _, layer := range layers {
			for _, span := range layer[kind] {
				if kind == model.KindPerson && utf8.RuneCountInString(strings.TrimSpace(span.Text)) <= 1 {
					continue
				}
				if _, dup := seen[span.Text]; dup {
					continue
				}
				seen[span.Text] = struct{}{}
				out = append(out, span)
			}
		}
		if len(out) > 0 {
			merged[kind] = out
		}
	}
	return merged
}

// Dedupe removes repeated strings, preserving first-seen order
func Dedupe(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
