package llm

import "fmt"

// EntitySystemPrompt instructs a model to act as a named entity tagger
const EntitySystemPrompt = `You are a named entity tagger for Persian court rulings.
Return only a JSON object of the form {"entities": [{"text": string, "label": string, "start": integer}]}.
Labels: PERSON for people, LOC for places and addresses, GPE for cities and countries, FAC for buildings and institutions.
"text" must be copied exactly from the input. "start" is the character offset of "text" in the input, counting from 0.
Do not invent entities. Return {"entities": []} when there are none.`

// BuildEntityPrompt wraps the text to tag
func BuildEntityPrompt(text string) string {
	return fmt.Sprintf("Tag the entities in the following text.\n\n<text>\n%s\n</text>", text)
}
