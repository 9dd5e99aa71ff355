// Package sqlite provides the persistent catalog store, backed by a
// single SQLite database file with embedded schema migrations.
//
// Documents are stored as JSON payloads keyed by pattern id; the catalog
// and report rows are singletons replaced wholesale on every build,
// matching the rebuild-on-change lifecycle.
package sqlite
