package ai

// SuggestionKinds defines the valid categories for suggested phrases.
// These kinds mirror the top-level taxonomy categories and are used by
// phrase suggesters to classify their proposals.
var SuggestionKinds = []string{
	"strategic_theory_term",
	"business_concept",
	"industry_context",
}
