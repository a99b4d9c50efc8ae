// Package mcp provides an MCP (Model Context Protocol) server adapter for edgar.
// It enables AI assistants like Claude to look up companies and query filings.
package mcp

import "errors"

// ErrMissingFilingService is returned when the filing service is not provided.
var ErrMissingFilingService = errors.New("mcp: filing service is required")
