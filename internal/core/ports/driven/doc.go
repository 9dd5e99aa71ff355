// Package driven defines the interfaces the core depends on: source
// readers, parsers, catalog stores, exporters, and configuration.
// Adapters implement these; services consume them.
package driven
