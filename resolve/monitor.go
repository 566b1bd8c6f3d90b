package resolve

import "github.com/casecraft/caselens/core"

// ResolveMonitor provides hooks to observe the resolution cascade.
// Implement this interface to track which tier fired for each phrase.
type ResolveMonitor interface {
	Start(phrase core.CandidatePhrase)
	SkippedStopOnly(phrase core.CandidatePhrase)
	ExactHit(normalized string, matches []core.Match)
	FuzzyHit(normalized string, matches []core.Match)
	SemanticHit(normalized string, match core.Match)
	Miss(phrase core.CandidatePhrase)
	Finish(matches []core.Match)
}

// noopMonitor is a no-op implementation of ResolveMonitor
type noopMonitor struct{}

var _ ResolveMonitor = (*noopMonitor)(nil)

func (n *noopMonitor) Start(_ core.CandidatePhrase)           {}
func (n *noopMonitor) SkippedStopOnly(_ core.CandidatePhrase) {}
func (n *noopMonitor) ExactHit(_ string, _ []core.Match)      {}
func (n *noopMonitor) FuzzyHit(_ string, _ []core.Match)      {}
func (n *noopMonitor) SemanticHit(_ string, _ core.Match)     {}
func (n *noopMonitor) Miss(_ core.CandidatePhrase)            {}
func (n *noopMonitor) Finish(_ []core.Match)                  {}
