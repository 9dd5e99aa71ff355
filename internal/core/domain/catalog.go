package domain

import "time"

// Catalog owns the full set of validated pattern documents. It is built
// once per ingestion run and rebuilt wholesale on any source change;
// there is no incremental mutation API.
type Catalog struct {
	// RunID identifies the ingestion run that produced this catalog.
	// Provenance only; excluded from idempotence comparisons.
	RunID string

	// BuiltAt is when the catalog was assembled. Provenance only.
	BuiltAt time.Time

	// Documents is ordered by CategoryID ascending.
	Documents []Document
}

// Len returns the number of catalogued documents.
func (c *Catalog) Len() int {
	return len(c.Documents)
}

// Get returns the document with the given pattern id.
func (c *Catalog) Get(id PatternID) (*Document, error) {
	for i := range c.Documents {
		if c.Documents[i].ID == id {
			return &c.Documents[i], nil
		}
	}
	return nil, ErrNotFound
}
