// Package domain defines the MCP tool inputs, results and handlers for the
// event board.
package domain
