// Package pipeline orchestrates the analysis chain for one request: extract
// candidate phrases from the case, question, and user-input texts, resolve
// them against the taxonomy, aggregate the matches into a concept set, and
// assemble the templated answer.
//
// Each run gets a request ID that tags all log lines for the run. Extraction
// is fault-isolated per input; resolution errors abort the run.
package pipeline
