// Package driving defines the interfaces through which the outside world
// (CLI, TUI, MCP) drives the core services.
package driving
