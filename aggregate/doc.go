// Package aggregate merges resolver output from all inputs into the final
// deduplicated, confidence-ordered concept set handed to the assembler.
package aggregate
