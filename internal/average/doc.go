// Package average blends a collection of same-size images into one by
// averaging them in linear light.
//
// Each input is normalized to 8-bit RGB, mapped through a transfer curve's
// forward direction (v^γ for the default power curve), summed, divided by the
// image count and mapped back with the inverse direction. Averaging the
// display-encoded values directly darkens mid-tones; the round trip through
// linear light avoids that. A gamma of 1 reduces to the arithmetic mean.
//
// # Errors
//
// All failures are reported before any output is produced:
//   - ErrInvalidInput: the collection is empty
//   - ErrInvalidConfiguration: gamma is not a finite positive number
//   - ErrDimensionMismatch: an image differs in size from the first one
//   - ErrDecodeFailure: the image source failed (original error is wrapped)
//
// # Memory
//
// The accumulator holds W×H×3 float64 values. FromSource keeps only the image
// currently being added alive, so peak memory does not grow with the number
// of inputs.
//
// # Thread Safety
//
// The package has no shared mutable state. Separate calls may run
// concurrently; a single Accumulator may not.
package average
