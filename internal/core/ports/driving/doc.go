// Package driving defines the interfaces external actors (CLI, TUI, MCP)
// use to drive the core filing services.
package driving
