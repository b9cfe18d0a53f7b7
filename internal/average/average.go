package average

import (
	"errors"
	"image"
)

// Source resolves an image identifier to a decoded image.
type Source interface {
	Load(id string) (image.Image, error)
}

// Average returns the gamma-corrected mean of images using the power curve
// with exponent gamma. Pass DefaultGamma for the usual display gamma.
func Average(images []image.Image, gamma float64) (*image.NRGBA, error) {
	if len(images) == 0 {
		return nil, ErrInvalidInput
	}
	c, err := NewGamma(gamma)
	if err != nil {
		return nil, err
	}
	return AverageCurve(images, c)
}

// AverageCurve is Average with an arbitrary transfer curve.
func AverageCurve(images []image.Image, c Curve) (*image.NRGBA, error) {
	if len(images) == 0 {
		return nil, ErrInvalidInput
	}
	acc, err := NewAccumulator(c)
	if err != nil {
		return nil, err
	}
	for _, img := range images {
		if err := acc.Add(img); err != nil {
			return nil, err
		}
	}
	return acc.Result()
}

// FromSource loads ids from src in order and averages them. Each decoded
// image is released once it has been added, so only one input is held in
// memory at a time.
//
// Errors from src are returned as *DecodeError wrapping the original error.
func FromSource(src Source, ids []string, c Curve) (*image.NRGBA, error) {
	if len(ids) == 0 {
		return nil, ErrInvalidInput
	}
	acc, err := NewAccumulator(c)
	if err != nil {
		return nil, err
	}
	for i, id := range ids {
		img, err := src.Load(id)
		if err != nil {
			return nil, &DecodeError{Index: i, ID: id, Err: err}
		}
		if img == nil {
			return nil, &DecodeError{Index: i, ID: id, Err: errors.New("source returned no image")}
		}
		if err := acc.Add(img); err != nil {
			return nil, err
		}
	}
	return acc.Result()
}
