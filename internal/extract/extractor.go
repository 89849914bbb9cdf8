// Package extract implements the deterministic extraction core: the pattern
// catalog, the person filter, span merging, role inference and the court
// and case field summaries.
package extract

import (
	"github.com/ppiankov/verdict/internal/model"
	"github.com/ppiankov/verdict/internal/normalize"
)

// PatternResult is the output of the pattern layer for one ruling text
type PatternResult struct {
	Spans       model.Spans
	RawBranches []string // Untrimmed COURT_BRANCH matches
}

// Extractor runs the pattern layer and assembles case records. It is
// stateless after construction and safe for concurrent use.
type Extractor struct {
	catalog *Catalog
	persons *PersonFilter
	roles   *RoleClassifier
	fields  *CaseFieldParser
}

// NewExtractor creates an extractor over the shared compiled catalog
func NewExtractor() *Extractor {
	return &Extractor{
		catalog: NewCatalog(),
		persons: NewPersonFilter(),
		roles:   NewRoleClassifier(),
		fields:  NewCaseFieldParser(),
	}
}

// Segment parses case fields from the full normalized text and returns
// them with the ruling text that all entity extraction is scoped to.
func (e *Extractor) Segment(text string) (model.CaseFields, string) {
	return e.fields.Parse(text), e.fields.RulingText(text)
}

// PatternLayer runs the catalog and the person filter over the ruling text
func (e *Extractor) PatternLayer(ruling string) PatternResult {
	result := PatternResult{Spans: model.Spans{}}

	for kind, matches := range e.catalog.Scan(ruling) {
		for _, m := range matches {
			result.Spans.Add(m.Span())
			if kind == model.KindCourtBranch {
				result.RawBranches = append(result.RawBranches, m.Raw)
			}
		}
	}
	result.Spans.Add(e.persons.Extract(ruling)...)

	return result
}

// Assemble merges the pattern layer with annotator layers (in priority
// order) and builds the record.
func (e *Extractor) Assemble(id string, fields model.CaseFields, ruling string, pattern PatternResult, external ...model.Spans) *model.CaseRecord {
	layers := make([]model.Spans, 0, len(external)+1)
	layers = append(layers, pattern.Spans)
	layers = append(layers, external...)
	merged := Merge(layers...)

	return &model.CaseRecord{
		ID:       id,
		CaseInfo: fields,
		CourtInfo: ResolveCourtInfo(
			pattern.RawBranches,
			merged.Texts(model.KindCourtBranch),
			merged.Texts(model.KindJudge),
		),
		Persons:       e.roles.ClassifyAll(ruling, merged.Texts(model.KindPerson)),
		Dates:         merged.Texts(model.KindDate),
		Amounts:       merged.Texts(model.KindAmount),
		LawReferences: merged.Texts(model.KindLawReference),
		Places:        merged.Texts(model.KindPlace),
		Addresses:     merged.Texts(model.KindAddress),
		Redacted:      merged.Texts(model.KindRedacted),
		RulingText:    ruling,
	}
}

// Extract runs the pattern layer alone over a document
func (e *Extractor) Extract(doc model.Document) *model.CaseRecord {
	text := normalize.String(doc.Text)
	fields, ruling := e.Segment(text)
	return e.Assemble(doc.ID, fields, ruling, e.PatternLayer(ruling))
}
