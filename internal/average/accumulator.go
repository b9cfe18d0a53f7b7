package average

import (
	"fmt"
	"image"
	"math"

	"github.com/disintegration/imaging"
)

// Accumulator sums images in linear light.
//
// The first image added fixes the dimensions; every later image must match
// them. An Accumulator belongs to a single averaging run and is not safe for
// concurrent use.
type Accumulator struct {
	curve Curve
	lut   *[256]float64

	size image.Point
	sum  []float64 // size.X * size.Y * 3, row-major RGB
	n    int
}

// NewAccumulator returns an empty accumulator using curve c.
func NewAccumulator(c Curve) (*Accumulator, error) {
	if c == nil {
		return nil, fmt.Errorf("%w: no curve", ErrInvalidConfiguration)
	}
	if g, ok := c.(Gamma); ok {
		if err := g.validate(); err != nil {
			return nil, err
		}
	}
	return &Accumulator{curve: c, lut: lookupTable(c)}, nil
}

// Count returns the number of images added so far.
func (a *Accumulator) Count() int {
	return a.n
}

// Size returns the dimensions fixed by the first image, or the zero point
// before any image has been added.
func (a *Accumulator) Size() image.Point {
	return a.size
}

// Add folds img into the running sum. A size mismatch leaves the accumulator
// untouched and returns a *DimensionMismatchError.
func (a *Accumulator) Add(img image.Image) error {
	got := img.Bounds().Size()
	if a.sum == nil {
		a.size = got
		a.sum = make([]float64, got.X*got.Y*3)
	} else if got != a.size {
		return &DimensionMismatchError{Index: a.n, Want: a.size, Got: got}
	}

	src := toNRGBA(img)
	lut := a.lut
	w := a.size.X
	k := 0
	for y := 0; y < a.size.Y; y++ {
		row := src.Pix[y*src.Stride : y*src.Stride+w*4]
		for i := 0; i < len(row); i += 4 {
			a.sum[k] += lut[row[i]]
			a.sum[k+1] += lut[row[i+1]]
			a.sum[k+2] += lut[row[i+2]]
			k += 3
		}
	}
	a.n++
	return nil
}

// Result divides the sum by the image count, converts back to display space
// and quantizes to 8 bits. The accumulator can keep being used afterwards.
func (a *Accumulator) Result() (*image.NRGBA, error) {
	if a.n == 0 {
		return nil, ErrInvalidInput
	}

	out := image.NewNRGBA(image.Rect(0, 0, a.size.X, a.size.Y))
	n := float64(a.n)
	k := 0
	for y := 0; y < a.size.Y; y++ {
		row := out.Pix[y*out.Stride : y*out.Stride+a.size.X*4]
		for i := 0; i < len(row); i += 4 {
			row[i] = a.quantize(a.sum[k] / n)
			row[i+1] = a.quantize(a.sum[k+1] / n)
			row[i+2] = a.quantize(a.sum[k+2] / n)
			row[i+3] = 0xff
			k += 3
		}
	}
	return out, nil
}

func (a *Accumulator) quantize(mean float64) uint8 {
	v := a.curve.ToDisplay(mean)
	// Clamp catches overshoot at the ends of the range, and NaN from a
	// misbehaving curve.
	if !(v > 0) {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(math.Round(v * 255))
}

// toNRGBA returns img as 8-bit non-premultiplied RGBA anchored at (0,0).
// Alpha is dropped later by only reading the color channels.
func toNRGBA(img image.Image) *image.NRGBA {
	if n, ok := img.(*image.NRGBA); ok && n.Rect.Min == (image.Point{}) {
		return n
	}
	return imaging.Clone(img)
}
