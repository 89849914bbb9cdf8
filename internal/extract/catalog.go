package extract

import (
	"regexp"
	"strings"

	"github.com/ppiankov/verdict/internal/model"
)

// letterClass is the Persian alphabet as a regexp class body
const letterClass = `\x{0621}-\x{063A}\x{0641}-\x{064A}\x{067E}\x{0686}\x{0698}\x{06A9}\x{06AF}\x{06CC}`

// nameToken matches abbreviated names such as "ع. م." or "ح.ر.ک"
const nameToken = `(?:[` + letterClass + `]\.\s?){1,4}[` + letterClass + `]\.?`

// nameEnd consumes the character after a name token, which must not be a
// letter. Without it the last initial could be the head of the next word.
const nameEnd = `(?:[^` + letterClass + `]|$)`

// valueCutset is trimmed from both ends of every catalog value
const valueCutset = " .,،"

var (
	courtBranchRe = regexp.MustCompile(`شعبه\s?(?:\d+|\*+)`)
	judgeRe       = regexp.MustCompile(`(?:رییس شعبه|رئیس شعبه|دادرس|قاضی)\s?:?\s?(` + nameToken + `)` + nameEnd)
	amountRe      = regexp.MustCompile(`(?:\d{1,3}(?:[,٬]\d{3})+|\d+)(?:\.\d+)?\s?(?:ریال|تومان|دلار|یورو|درهم)`)
	dateRe        = regexp.MustCompile(`\b1[34]\d{2}/\d{1,2}/\d{1,2}\b`)
	lawRe         = regexp.MustCompile(`(?:ماده|مواد)\s?\d+\s?(?:قانون|آییننامه|آیین نامه)\s?[` + letterClass + `]+(?:\s[` + letterClass + `]+){0,7}`)
	redactedRe    = regexp.MustCompile(`[` + letterClass + `]+(?:\s[` + letterClass + `]+)?\s?\*+`)
	placeRe       = regexp.MustCompile(`(?:دانشگاه|دادگاه|دادسرا|بانک|کلانتری|پاسگاه|پلیس|بازداشتگاه|زندان|بیمارستان)\s[` + letterClass + `\d ]{2,30}`)
)

// Match is one raw catalog hit
type Match struct {
	Kind  model.EntityKind
	Raw   string // Full matched text before trimming
	Value string // Trimmed value recorded as the entity
	Start int    // Rune offset of Value
}

// Span converts the match into a pattern-layer span
func (m Match) Span() model.EntitySpan {
	return model.EntitySpan{
		Text:  m.Value,
		Kind:  m.Kind,
		Start: m.Start,
		Layer: model.LayerPattern,
	}
}

// finder returns [start, end, valueStart, valueEnd] byte offsets per hit
type finder func(text string) [][4]int

type matcher struct {
	kind model.EntityKind
	find finder
}

// regexFinder scans re leftmost-first without overlap. group selects the
// submatch used as the value; 0 is the whole match.
func regexFinder(re *regexp.Regexp, group int) finder {
	return func(text string) [][4]int {
		var hits [][4]int
		for _, loc := range re.FindAllStringSubmatchIndex(text, -1) {
			if !wordStart(text, loc[0]) {
				continue
			}
			hits = append(hits, [4]int{loc[0], loc[1], loc[2*group], loc[2*group+1]})
		}
		return hits
	}
}

// findPlaces ignores the court keyword inside the ruling section marker.
// The marker is masked byte for byte so offsets still index text.
func findPlaces(text string) [][4]int {
	masked := strings.ReplaceAll(text, model.RulingMarker, strings.Repeat("_", len(model.RulingMarker)))
	return regexFinder(placeRe, 0)(masked)
}

// Catalog is the fixed, ordered set of pattern matchers for every kind
// except PERSON. It holds no per-document state.
type Catalog struct {
	matchers []matcher
}

var defaultCatalog = &Catalog{
	matchers: []matcher{
		{kind: model.KindCourtBranch, find: regexFinder(courtBranchRe, 0)},
		{kind: model.KindJudge, find: regexFinder(judgeRe, 1)},
		{kind: model.KindAmount, find: regexFinder(amountRe, 0)},
		{kind: model.KindDate, find: regexFinder(dateRe, 0)},
		{kind: model.KindLawReference, find: regexFinder(lawRe, 0)},
		{kind: model.KindRedacted, find: regexFinder(redactedRe, 0)},
		{kind: model.KindAddress, find: findAddresses},
		{kind: model.KindPlace, find: findPlaces},
	},
}

// NewCatalog returns the shared compiled catalog
func NewCatalog() *Catalog {
	return defaultCatalog
}

// Kinds returns the catalog kinds in scan order
func (c *Catalog) Kinds() []model.EntityKind {
	kinds := make([]model.EntityKind, 0, len(c.matchers))
	for _, m := range c.matchers {
		kinds = append(kinds, m.kind)
	}
	return kinds
}

// Find returns the matches of one kind in occurrence order
func (c *Catalog) Find(kind model.EntityKind, text string) []Match {
	for _, m := range c.matchers {
		if m.kind == kind {
			return collect(m, text)
		}
	}
	return nil
}

// Scan runs every matcher over text
func (c *Catalog) Scan(text string) map[model.EntityKind][]Match {
	out := make(map[model.EntityKind][]Match, len(c.matchers))
	for _, m := range c.matchers {
		out[m.kind] = collect(m, text)
	}
	return out
}

func collect(m matcher, text string) []Match {
	var matches []Match
	for _, hit := range m.find(text) {
		raw := text[hit[0]:hit[1]]
		vStart, vEnd := hit[2], hit[3]
		value := text[vStart:vEnd]

		trimmed := strings.TrimLeft(value, valueCutset)
		vStart += len(value) - len(trimmed)
		trimmed = strings.TrimRight(trimmed, valueCutset)
		if trimmed == "" {
			continue
		}

		matches = append(matches, Match{
			Kind:  m.kind,
			Raw:   raw,
			Value: trimmed,
			Start: runeOffset(text, vStart),
		})
	}
	return matches
}
