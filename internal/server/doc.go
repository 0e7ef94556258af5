// Package server implements an MCP (Model Context Protocol) server exposing
// email extraction as tools.
//
// # Protocol
//
// The server communicates over stdio using JSON-RPC 2.0:
//   - Input: JSON-RPC requests on stdin (one per line)
//   - Output: JSON-RPC responses on stdout
//
// Supported MCP methods:
//   - initialize: Protocol handshake
//   - tools/list: Enumerate available tools
//   - tools/call: Execute a tool with arguments
//   - ping: Health check
//
// # Available Tools
//
// Extraction:
//   - emails_extract: Run the full pipeline on an image file
//   - emails_from_text: Reconstruct and validate addresses in given text
//   - email_validate: Validate and normalize a single address
//
// Image inspection:
//   - image_orientation: Orientation estimate and whether it triggers a rotation
//   - image_info: Image metadata and OCR backend
//
// Every call loads its image from disk; nothing is cached between calls.
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with:
//   - code: -32000 (tool execution failure) or standard JSON-RPC codes
//   - message: Human-readable error description
//   - data: Additional error details (typically the Go error string)
//
// An image without addresses is not an error; emails_extract returns an
// empty list.
//
// # Usage
//
//	srv := server.New(engine, pipeline)
//	if err := srv.Run(ctx); err != nil {
//	    log.Fatal(err)
//	}
package server
