// Package imaging provides image storage and inspection for the MCP server.
//
// A Store is a directory of images that serves as the image source and image
// sink of an averaging run: Load decodes an image by name or absolute path,
// Save persists a finished image as PNG with a JSON record of the host context
// it was produced in, and Info describes a stored image.
//
// # Image Names
//
// Images written by Save are named "<uuid>.png". Names passed to Load and Info
// are reduced to their base name and resolved inside the store directory, so
// a name can never reach outside it. Absolute paths bypass the store and are
// opened directly.
//
// # Coordinate System
//
// SampleColor coordinates are 0-based and relative to the image bounds:
//   - X: horizontal position (0 = leftmost pixel)
//   - Y: vertical position (0 = topmost pixel)
//
// # Color Representation
//
// Colors are returned in multiple formats:
//   - Hex: 6-character format "#RRGGBB" (alpha excluded)
//   - RGB: 8-bit components (0-255)
//   - RGBA: 8-bit non-premultiplied components with alpha (0-255)
//   - HSL: Hue (0-360), Saturation (0-100), Lightness (0-100)
//
// # Thread Safety
//
// Store holds no mutable state and is safe for concurrent use. Decoded images
// are never cached, so memory is released as soon as the caller drops an
// image.
package imaging
