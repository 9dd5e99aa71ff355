package domain

import (
	"errors"
	"fmt"
)

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists indicates an entity already exists.
	ErrAlreadyExists = errors.New("already exists")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// Structural errors. These abort ingestion of a single document;
	// the orchestrator records them and continues with the rest.

	// ErrMalformedDocument indicates the document does not start with a
	// "<number>. <title>" top-level heading.
	ErrMalformedDocument = errors.New("malformed document")

	// ErrEmptyCatalogEntry indicates a document declares no examples.
	ErrEmptyCatalogEntry = errors.New("document has no examples")

	// ErrMissingSnippet indicates a role marker is present but no fenced
	// code block follows it.
	ErrMissingSnippet = errors.New("missing code snippet")

	// ErrUnresolvableHighlight indicates a highlight annotation references
	// a line or token that does not exist in its code block.
	ErrUnresolvableHighlight = errors.New("unresolvable highlight")

	// ErrDuplicateCategory indicates two documents share a category id.
	ErrDuplicateCategory = errors.New("duplicate category id")

	// ErrNoContentFound is the only fatal pipeline error: the source
	// directory yielded zero readable documents.
	ErrNoContentFound = errors.New("no content found")
)

// HighlightError describes an unresolvable highlight annotation.
// It wraps ErrUnresolvableHighlight and names the offending block.
type HighlightError struct {
	// BlockID identifies the code block, e.g. "pattern-3/example-1/avoid".
	BlockID string

	// Line is the out-of-range line number, when the failure is a line
	// highlight. Zero when the failure is a token highlight.
	Line int

	// Token is the absent token, when the failure is a token highlight.
	Token string
}

// Error implements the error interface.
func (e *HighlightError) Error() string {
	if e.Token != "" {
		return fmt.Sprintf("unresolvable highlight in %s: token %q not found", e.BlockID, e.Token)
	}
	return fmt.Sprintf("unresolvable highlight in %s: line %d out of range", e.BlockID, e.Line)
}

// Unwrap makes errors.Is(err, ErrUnresolvableHighlight) work.
func (e *HighlightError) Unwrap() error {
	return ErrUnresolvableHighlight
}
