package adapters

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/jdkato/prose/v2"
)

// ProseAnnotator runs the prose statistical entity recognizer in process.
// The model is loaded once per annotator on first use.
type ProseAnnotator struct {
	model *Handle[*prose.Model]
}

// NewProseAnnotator creates an annotator. An empty modelPath uses the model
// bundled with prose.
func NewProseAnnotator(modelPath string) *ProseAnnotator {
	return &ProseAnnotator{
		model: NewHandle(func() (*prose.Model, error) {
			return loadProseModel(modelPath)
		}),
	}
}

func loadProseModel(path string) (m *prose.Model, err error) {
	// prose panics on unreadable model directories
	defer func() {
		if r := recover(); r != nil {
			m, err = nil, fmt.Errorf("load prose model %q: %v", path, r)
		}
	}()

	if path != "" {
		m = prose.ModelFromDisk(path)
	}

	// Warm up so the first document does not pay for tagger setup
	opts := []prose.DocOpt{prose.WithSegmentation(false)}
	if m != nil {
		opts = append(opts, prose.UsingModel(m))
	}
	if _, err := prose.NewDocument("warm up", opts...); err != nil {
		return nil, fmt.Errorf("warm up prose: %w", err)
	}
	return m, nil
}

// Name returns the annotator name
func (a *ProseAnnotator) Name() string {
	return "prose"
}

// Annotate returns PERSON and GPE entities with rune offsets. Entities whose
// text cannot be located in the input are skipped.
func (a *ProseAnnotator) Annotate(ctx context.Context, text string) ([]Annotation, error) {
	m, err := a.model.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}

	opts := []prose.DocOpt{prose.WithSegmentation(false)}
	if m != nil {
		opts = append(opts, prose.UsingModel(m))
	}
	doc, err := prose.NewDocument(text, opts...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}

	var (
		out    []Annotation
		cursor int // byte offset; entities arrive in document order
	)
	for _, ent := range doc.Entities() {
		idx := strings.Index(text[cursor:], ent.Text)
		if ent.Text == "" || idx < 0 {
			continue
		}
		byteStart := cursor + idx
		cursor = byteStart + len(ent.Text)

		out = append(out, Annotation{
			Text:  ent.Text,
			Label: ent.Label,
			Start: utf8.RuneCountInString(text[:byteStart]),
		})
	}
	return out, nil
}
