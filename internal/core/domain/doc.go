// Package domain contains the core business entities for the pattern
// catalog: documents, examples, code blocks, diffs, occurrence statistics,
// and validation findings. It has no dependencies on adapters or services.
package domain
