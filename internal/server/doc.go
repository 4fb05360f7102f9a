// Package server implements the MCP (Model Context Protocol) server for the
// image picker.
//
// The server speaks JSON-RPC 2.0 over stdio, one request per line, and
// exposes the picker as tools so an MCP client can ask the user for an image
// and receive it inline.
//
// Supported MCP methods:
//   - initialize: Protocol handshake
//   - tools/list: Enumerate available tools
//   - tools/call: Execute a tool with arguments
//   - ping: Health check
//
// # Available Tools
//
//   - image_pick: Show the native file chooser and return the chosen image
//     as a data URL
//   - image_encode: Same validation, crop and encoding for a file on disk
//   - image_inspect: Report dimensions and format of a data URL
//
// Arguments a call leaves out take the server's defaults (normally size 256,
// PNG/JPEG/BMP, 5 MB).
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with:
//   - code: -32000 (tool execution failure) or standard JSON-RPC codes
//   - message: Human-readable error description
//   - data: The Go error string, e.g. "file is bigger than allowed: ..."
package server
