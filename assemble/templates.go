package assemble

// Placeholder is the marker inside template sections that gets replaced with
// the generated concept sentences.
const Placeholder = "{{CONCEPT_SENTENCES}}"

// DefaultNoConceptsMessage is rendered when a request produced an empty
// concept set.
const DefaultNoConceptsMessage = "No strategic concepts were detected."

// Bundle is the per-framework template triple. Each section may contain the
// Placeholder marker.
type Bundle struct {
	Intro      string
	Analysis   string
	Conclusion string
}

// DefaultBundles returns the built-in template bundles. Callers supply their
// own bundles for frameworks not covered here.
func DefaultBundles() map[string]Bundle {
	return map[string]Bundle{
		"RBV": {
			Intro: "The resource-based view explains competitive advantage " +
				"through the firm's bundle of valuable, rare, inimitable, and " +
				"non-substitutable resources.",
			Analysis: "{{CONCEPT_SENTENCES}} Sustained advantage depends on " +
				"how well these resources and capabilities resist imitation " +
				"and substitution by rivals.",
			Conclusion: "From a resource-based perspective, the firm should " +
				"protect and extend the resources underpinning its position.",
		},
		"TCE": {
			Intro: "Transaction cost economics asks whether an activity is " +
				"cheaper to govern inside the firm or across the market.",
			Analysis: "{{CONCEPT_SENTENCES}} Asset specificity, uncertainty, " +
				"and transaction frequency jointly determine the efficient " +
				"governance form.",
			Conclusion: "On transaction cost grounds, the boundary choice " +
				"should minimize the combined costs of production and governance.",
		},
		"PlatformStrategy": {
			Intro: "Platform strategy centers on orchestrating an ecosystem " +
				"in which value grows with participation on each side.",
			Analysis: "{{CONCEPT_SENTENCES}} The strength of these dynamics " +
				"decides whether the market tips toward a dominant platform.",
			Conclusion: "A platform lens suggests investing in mechanisms " +
				"that reinforce participation and raise multi-homing costs " +
				"for rivals.",
		},
	}
}
