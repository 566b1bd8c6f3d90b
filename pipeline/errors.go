package pipeline

import "errors"

var (
	// ErrEmptyRequest is returned when a request carries no input text at all.
	ErrEmptyRequest = errors.New("request has no input text")

	// ErrExtractorRequired is returned when no extractor is provided.
	ErrExtractorRequired = errors.New("extractor is required")

	// ErrResolverRequired is returned when no resolver is provided.
	ErrResolverRequired = errors.New("resolver is required")

	// ErrAssemblerRequired is returned when no assembler is provided.
	ErrAssemblerRequired = errors.New("assembler is required")
)
