// Package service hosts the event board MCP server and its stdio runtime.
package service
