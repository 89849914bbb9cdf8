package model

import (
	"encoding/json"
	"fmt"
	"strings"
)

// EntityKind classifies an extracted entity
type EntityKind int

const (
	KindPerson       EntityKind = iota // Party or official named in the ruling
	KindCourtBranch                    // Court branch designation (شعبه ...)
	KindJudge                          // Presiding judge named next to a judicial title
	KindAmount                         // Monetary amount with currency unit
	KindDate                           // Solar Hijri date YYYY/M/D
	KindLawReference                   // Article + law citation
	KindRedacted                       // Phrase followed by a masking marker
	KindAddress                        // Postal address built from address components
	KindPlace                          // Institution or location
)

var entityKindNames = [...]string{
	KindPerson:       "PERSON",
	KindCourtBranch:  "COURT_BRANCH",
	KindJudge:        "JUDGE",
	KindAmount:       "AMOUNT",
	KindDate:         "DATE",
	KindLawReference: "LAW_REFERENCE",
	KindRedacted:     "REDACTED",
	KindAddress:      "ADDRESS",
	KindPlace:        "PLACE",
}

// AllKinds lists every entity kind in declaration order
var AllKinds = []EntityKind{
	KindPerson, KindCourtBranch, KindJudge, KindAmount, KindDate,
	KindLawReference, KindRedacted, KindAddress, KindPlace,
}

// Valid reports whether k is a member of the closed kind set
func (k EntityKind) Valid() bool {
	return k >= KindPerson && int(k) < len(entityKindNames)
}

func (k EntityKind) String() string {
	if k.Valid() {
		return entityKindNames[k]
	}
	return fmt.Sprintf("EntityKind(%d)", int(k))
}

// ParseEntityKind resolves a kind name such as "LAW_REFERENCE"
func ParseEntityKind(s string) (EntityKind, bool) {
	s = strings.ToUpper(strings.TrimSpace(s))
	for i, name := range entityKindNames {
		if name == s {
			return EntityKind(i), true
		}
	}
	return 0, false
}

// MarshalJSON encodes the kind by name
func (k EntityKind) MarshalJSON() ([]byte, error) {
	if !k.Valid() {
		return nil, fmt.Errorf("invalid entity kind: %d", int(k))
	}
	return json.Marshal(k.String())
}

// UnmarshalJSON decodes a kind name
func (k *EntityKind) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, ok := ParseEntityKind(s)
	if !ok {
		return fmt.Errorf("unknown entity kind: %q", s)
	}
	*k = parsed
	return nil
}

// Layer identifies which extraction layer produced a span
type Layer int

const (
	LayerPattern  Layer = iota // Built-in pattern catalog and person filter
	LayerExternal              // Pluggable external annotator
)

func (l Layer) String() string {
	switch l {
	case LayerPattern:
		return "PATTERN"
	case LayerExternal:
		return "EXTERNAL"
	default:
		return fmt.Sprintf("Layer(%d)", int(l))
	}
}

// MarshalJSON encodes the layer by name
func (l Layer) MarshalJSON() ([]byte, error) {
	return json.Marshal(l.String())
}

// EntitySpan is one immutable extraction result. Start is a rune offset
// into the text that was scanned.
type EntitySpan struct {
	Text   string     `json:"text"`
	Kind   EntityKind `json:"kind"`
	Start  int        `json:"start"`
	Layer  Layer      `json:"layer"`
	Source string     `json:"source,omitempty"` // Annotator name for external spans
}

// Spans groups spans by kind
type Spans map[EntityKind][]EntitySpan

// Add appends spans, ignoring any with a kind outside the closed set
func (s Spans) Add(spans ...EntitySpan) {
	for _, span := range spans {
		if !span.Kind.Valid() {
			continue
		}
		s[span.Kind] = append(s[span.Kind], span)
	}
}

// Texts returns the span texts for a kind in order. The result is never nil.
func (s Spans) Texts(kind EntityKind) []string {
	out := make([]string, 0, len(s[kind]))
	for _, span := range s[kind] {
		out = append(out, span.Text)
	}
	return out
}

// Count returns the total number of spans across kinds
func (s Spans) Count() int {
	n := 0
	for _, spans := range s {
		n += len(spans)
	}
	return n
}
