package average

import (
	"errors"
	"fmt"
	"image"
)

var (
	// ErrInvalidInput is returned when no images are supplied.
	ErrInvalidInput = errors.New("no images supplied")

	// ErrInvalidConfiguration is returned for a gamma that is not a finite
	// positive number, or an unknown curve.
	ErrInvalidConfiguration = errors.New("invalid configuration")

	// ErrDimensionMismatch matches any *DimensionMismatchError.
	ErrDimensionMismatch = errors.New("image dimensions do not match")

	// ErrDecodeFailure matches any *DecodeError.
	ErrDecodeFailure = errors.New("failed to decode image")
)

// DimensionMismatchError reports an input whose size differs from the first
// image in the collection.
type DimensionMismatchError struct {
	Index int         // position of the offending image in the input order
	Want  image.Point // size fixed by the first image
	Got   image.Point
}

func (e *DimensionMismatchError) Error() string {
	return fmt.Sprintf("image %d is %dx%d, expected %dx%d",
		e.Index, e.Got.X, e.Got.Y, e.Want.X, e.Want.Y)
}

// Is lets errors.Is(err, ErrDimensionMismatch) succeed.
func (e *DimensionMismatchError) Is(target error) bool {
	return target == ErrDimensionMismatch
}

// DecodeError carries a failure from the image source unchanged.
type DecodeError struct {
	Index int
	ID    string
	Err   error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("failed to load image %d (%s): %v", e.Index, e.ID, e.Err)
}

func (e *DecodeError) Is(target error) bool {
	return target == ErrDecodeFailure
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}
