// Package server implements the MCP (Model Context Protocol) server for the
// average_images node.
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
//   - image_average: Average images in linear light and save the result
//   - image_info: Dimensions, format and stored record of an image
//   - image_sample_color: Color at a pixel, useful to check a result
//   - node_info: Registration details of the average_images node
//
// # Image Store
//
// All tools read from and write to one imaging.Store. Results are saved as
// "<uuid>.png" and tagged with a session id generated when the server starts.
// Inputs are decoded one at a time while averaging and are not cached.
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with:
//   - code: -32000 (tool execution failure) or standard JSON-RPC codes
//   - message: Human-readable error description
//   - data: The Go error string, e.g. "image 2 is 20x20, expected 10x10"
package server
