// Package mcp provides an MCP (Model Context Protocol) server adapter for orderbot.
// It lets voice and chat assistants place orders against the live catalog.
package mcp

import "errors"

// ErrMissingOrderService is returned when the order service is not provided.
var ErrMissingOrderService = errors.New("mcp: order service is required")
