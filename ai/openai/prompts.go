package openai

import (
	"fmt"
	"strings"

	"github.com/casecraft/caselens/ai"
)

const suggestionResponseSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "properties": {
    "strategy_phrases": {
      "type": "array",
      "items": {
        "type": "object",
        "properties": {
          "phrase": {
            "type": "string",
            "pattern": "^[a-z]+( [a-z]+)*$"
          },
          "kind": {
            "type": "string"
          },
          "salience": {
            "type": "integer",
            "minimum": 1,
            "maximum": 10
          }
        },
        "required": ["phrase", "kind", "salience"],
        "additionalProperties": false
      }
    }
  },
  "required": ["strategy_phrases"],
  "additionalProperties": false
}`

const suggestionPromptTemplate = `Extract the phrases from the given business-case text that carry strategic-management meaning and return them as JSON.

Output ONLY valid JSON which complies with the schema given below. Do not include any preamble, explanation,
greeting, or acknowledgment. Start your response directly with the opening brace { and end with the closing
brace }. Your output must exactly follow this schema:

%s

Rules:
- Phrases must be lowercase, 1-4 words, exactly as they support resolution against a strategy vocabulary.
- Kind field must match exactly one of the listed values: %s.
- Salience is an integer from 1 (peripheral) to 10 (central). Rate based on how essential the phrase is to the strategic content of the text.
- Include only phrases that are explicitly mentioned or clearly implied by the text. Do not hallucinate.
- Prefer terminology from strategy frameworks (transaction costs, network effects, core competence) over generic business words.
- If no strategy phrases can be identified, return "strategy_phrases": [].
- The JSON must parse without errors; no trailing commas, no extra keys, and no extraneous text outside the object.



Example (framework terminology):
Input: "High switching costs lock customers into the incumbent platform."
Output:
{
  "strategy_phrases": [
    {"phrase":"switching costs","kind":"strategic_theory_term","salience":9},
    {"phrase":"platform","kind":"industry_context","salience":7}
  ]
}

Example (paraphrased concept):
Input: "The marketplace gets more useful as more sellers join."
Output:
{
  "strategy_phrases": [
    {"phrase":"network effects","kind":"strategic_theory_term","salience":9},
    {"phrase":"marketplace","kind":"industry_context","salience":6}
  ]
}

Example (operational language):
Input: "they outsourced assembly to cut fixed costs"
Output:
{
  "strategy_phrases": [
    {"phrase":"outsourcing","kind":"business_concept","salience":8},
    {"phrase":"fixed costs","kind":"business_concept","salience":7}
  ]
}

Example (no strategic content):
Input: "the meeting starts at nine"
Output:
{
  "strategy_phrases": []
}`

// buildSystemPrompt creates the system prompt with suggestion kinds embedded.
func buildSystemPrompt() string {
	return fmt.Sprintf(suggestionPromptTemplate,
		suggestionResponseSchema,
		strings.Join(ai.SuggestionKinds, ", "))
}
