package assemble

import "errors"

var (
	// ErrNoBundles is returned when an empty bundle table is configured.
	ErrNoBundles = errors.New("bundle table cannot be empty")

	// ErrEmptyFramework is returned for a bundle keyed by an empty framework name.
	ErrEmptyFramework = errors.New("framework name cannot be empty")

	// ErrEmptyMessage is returned for an empty no-concepts message.
	ErrEmptyMessage = errors.New("no-concepts message cannot be empty")
)
