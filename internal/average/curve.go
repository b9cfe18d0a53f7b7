package average

import (
	"fmt"
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// DefaultGamma is the exponent used when a caller does not pick one.
const DefaultGamma = 2.2

// Curve converts between display-encoded values and linear light.
//
// Both directions work on normalized values in [0,1]. ToLinear is only ever
// evaluated for the 256 possible 8-bit inputs, so it may be arbitrarily
// expensive; ToDisplay runs once per output channel.
type Curve interface {
	ToLinear(v float64) float64
	ToDisplay(l float64) float64
	String() string
}

// Gamma is a pure power-law curve: linear = v^γ, display = l^(1/γ).
//
// A Gamma of 1 turns averaging into a plain arithmetic mean.
type Gamma float64

// NewGamma validates g and returns it as a Curve.
func NewGamma(g float64) (Curve, error) {
	c := Gamma(g)
	if err := c.validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func (g Gamma) validate() error {
	// !(g > 0) also rejects NaN.
	if !(g > 0) || math.IsInf(float64(g), 0) {
		return fmt.Errorf("%w: gamma must be a finite positive number, got %v", ErrInvalidConfiguration, float64(g))
	}
	return nil
}

func (g Gamma) ToLinear(v float64) float64 {
	return math.Pow(v, float64(g))
}

func (g Gamma) ToDisplay(l float64) float64 {
	return math.Pow(l, 1/float64(g))
}

func (g Gamma) String() string {
	return fmt.Sprintf("gamma(%g)", float64(g))
}

// SRGB is the piecewise sRGB transfer function (linear toe plus 2.4 power
// segment) as implemented by go-colorful.
var SRGB Curve = srgbCurve{}

type srgbCurve struct{}

func (srgbCurve) ToLinear(v float64) float64 {
	r, _, _ := colorful.Color{R: v}.LinearRgb()
	return r
}

func (srgbCurve) ToDisplay(l float64) float64 {
	return colorful.LinearRgb(l, 0, 0).R
}

func (srgbCurve) String() string {
	return "srgb"
}

// ParseCurve maps a curve name to a Curve. "" and "gamma" select the power
// law with exponent g; "srgb" ignores g.
func ParseCurve(name string, g float64) (Curve, error) {
	switch name {
	case "", "gamma":
		return NewGamma(g)
	case "srgb":
		return SRGB, nil
	default:
		return nil, fmt.Errorf("%w: unknown curve %q", ErrInvalidConfiguration, name)
	}
}

// lookupTable precomputes ToLinear for every 8-bit channel value.
func lookupTable(c Curve) *[256]float64 {
	var t [256]float64
	for i := range t {
		t[i] = c.ToLinear(float64(i) / 255)
	}
	return &t
}
