package driven

import "github.com/custodia-labs/antipat/internal/core/domain"

// DocumentParser turns one raw source document into a structured
// Document. Pure function over text; no side effects.
type DocumentParser interface {
	// Parse extracts the title, category id, introduction, references,
	// examples, and notes. Fails with domain.ErrMalformedDocument when
	// the "<number>. <title>" top heading is absent and with
	// domain.ErrEmptyCatalogEntry when no examples are found.
	Parse(raw domain.RawDocument) (*domain.Document, error)
}
