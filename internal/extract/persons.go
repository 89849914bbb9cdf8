package extract

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/ppiankov/verdict/internal/model"
)

var personRe = regexp.MustCompile(`(?:(?:سرکار خانم|جناب آقای|خانم|آقای|اقای)\s?)?(` + nameToken + `)` + nameEnd)

// PersonFilter extracts abbreviated person names and keeps only those that
// stand alone and sit near role vocabulary.
type PersonFilter struct {
	radius int
}

// NewPersonFilter creates a filter with the standard context radius
func NewPersonFilter() *PersonFilter {
	return &PersonFilter{radius: RoleWindowRadius}
}

// Extract returns accepted person spans in occurrence order. A candidate
// that is glued to a neighbouring word is retried one rune later, so the
// initials after a word such as "شد." are still found.
func (f *PersonFilter) Extract(text string) []model.EntitySpan {
	var spans []model.EntitySpan
	for pos := 0; pos < len(text); {
		loc := personRe.FindStringSubmatchIndex(text[pos:])
		if loc == nil {
			break
		}
		// The match ends one character past the name
		start, end := pos+loc[0], pos+loc[3]
		nameStart, nameStop := pos+loc[2], pos+loc[3]

		if !standalone(text, start, end) {
			_, size := utf8.DecodeRuneInString(text[start:])
			pos = start + size
			continue
		}
		pos = end

		raw := text[nameStart:nameStop]
		name := strings.TrimSpace(raw)
		if utf8.RuneCountInString(name) <= 1 {
			continue
		}
		if !hasRoleKeyword(contextWindow(text, start, end, f.radius)) {
			continue
		}

		nameStart += len(raw) - len(strings.TrimLeft(raw, " "))
		spans = append(spans, model.EntitySpan{
			Text:  name,
			Kind:  model.KindPerson,
			Start: runeOffset(text, nameStart),
			Layer: model.LayerPattern,
		})
	}
	return spans
}
