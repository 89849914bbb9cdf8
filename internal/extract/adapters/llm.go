package adapters

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/ppiankov/verdict/internal/llm"
)

const annotationSchema = `{
	"type": "object",
	"required": ["entities"],
	"properties": {
		"entities": {
			"type": "array",
			"items": {
				"type": "object",
				"required": ["text", "label", "start"],
				"properties": {
					"text": {"type": "string", "minLength": 1},
					"label": {"type": "string", "minLength": 1},
					"start": {"type": "integer", "minimum": 0}
				}
			}
		}
	}
}`

var annotationValidator = jsonschema.MustCompileString("annotations.json", annotationSchema)

// LLMAnnotator asks a remote model for entities and enforces the response
// shape before anything reaches the merge.
type LLMAnnotator struct {
	provider llm.Provider
	name     string
}

// NewLLMAnnotator wraps a provider. The annotator takes the provider's name.
func NewLLMAnnotator(p llm.Provider) *LLMAnnotator {
	return &LLMAnnotator{provider: p, name: p.Name()}
}

// Name returns the provider name
func (a *LLMAnnotator) Name() string {
	return a.name
}

// Annotate sends text to the model. Transport failures are ErrUnavailable;
// output that is not JSON or breaks the schema is ErrContractViolation.
func (a *LLMAnnotator) Annotate(ctx context.Context, text string) ([]Annotation, error) {
	resp, err := a.provider.Complete(ctx, llm.CompletionRequest{
		System: llm.EntitySystemPrompt,
		Prompt: llm.BuildEntityPrompt(text),
		JSON:   true,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	return ParseAnnotations([]byte(resp.Text))
}

// ParseAnnotations decodes and validates an {"entities": [...]} document
func ParseAnnotations(data []byte) ([]Annotation, error) {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: response is not JSON: %v", ErrContractViolation, err)
	}
	if err := annotationValidator.Validate(raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrContractViolation, err)
	}

	var payload struct {
		Entities []Annotation `json:"entities"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrContractViolation, err)
	}
	return payload.Entities, nil
}
