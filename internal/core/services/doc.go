// Package services implements the core pipeline logic: diff
// reconciliation, catalog building, validation, ingestion orchestration,
// and catalog queries. Services depend only on the domain and ports.
package services
