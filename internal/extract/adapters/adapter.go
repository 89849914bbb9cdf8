// Package adapters connects pluggable entity annotators to the extraction
// core. Annotators report free-form labels; this package maps them onto the
// closed entity kind set and collects them in priority order.
package adapters

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ppiankov/verdict/internal/model"
)

var (
	// ErrContractViolation marks a malformed annotator response. It is the
	// only annotator error that reaches the caller.
	ErrContractViolation = errors.New("annotator contract violation")

	// ErrUnavailable marks an annotator that could not answer. Collect
	// treats it as contributing nothing.
	ErrUnavailable = errors.New("annotator unavailable")
)

// Annotator defines the interface for external entity recognizers
type Annotator interface {
	// Name returns the annotator name used in config, logs and metrics
	Name() string

	// Annotate returns the entities found in text. It must not retain or
	// modify text and may return an empty slice.
	Annotate(ctx context.Context, text string) ([]Annotation, error)
}

// Annotation is one entity reported by an annotator
type Annotation struct {
	Text  string `json:"text"`
	Label string `json:"label"`
	Start int    `json:"start"` // Rune offset into the annotated text
}

// Validate checks the required fields of the annotation contract
func (a Annotation) Validate() error {
	switch {
	case strings.TrimSpace(a.Text) == "":
		return fmt.Errorf("%w: empty text", ErrContractViolation)
	case strings.TrimSpace(a.Label) == "":
		return fmt.Errorf("%w: empty label for %q", ErrContractViolation, a.Text)
	case a.Start < 0:
		return fmt.Errorf("%w: negative start %d for %q", ErrContractViolation, a.Start, a.Text)
	}
	return nil
}

var labelTable = map[string]model.EntityKind{
	"PER":      model.KindPerson,
	"PERS":     model.KindPerson,
	"PERSON":   model.KindPerson,
	"LOC":      model.KindPlace,
	"LOCATION": model.KindPlace,
	"GPE":      model.KindPlace,
	"FAC":      model.KindPlace,
	"FACILITY": model.KindPlace,
}

// MapLabel resolves an external label to an entity kind. BIO prefixes are
// ignored. Unmapped labels report false.
func MapLabel(label string) (model.EntityKind, bool) {
	l := strings.ToUpper(strings.TrimSpace(label))
	if len(l) > 2 && (strings.HasPrefix(l, "B-") || strings.HasPrefix(l, "I-")) {
		l = l[2:]
	}
	kind, ok := labelTable[l]
	return kind, ok
}
