package average

import (
	"errors"
	"image"
	"image/color"
	"math"
	"sync"
	"testing"
)

// solidImage creates an NRGBA image filled with c.
func solidImage(width, height int, c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

// patternImage creates an image whose channels vary with position.
func patternImage(width, height int, seed uint8) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.SetNRGBA(x, y, color.NRGBA{
				R: uint8(x*37) + seed,
				G: uint8(y*53) + seed*3,
				B: uint8((x+y)*11) ^ seed,
				A: 255,
			})
		}
	}
	return img
}

// assertClose fails if any color channel differs by more than tol.
func assertClose(t *testing.T, got, want *image.NRGBA, tol int) {
	t.Helper()
	if got.Bounds() != want.Bounds() {
		t.Fatalf("bounds: got %v, want %v", got.Bounds(), want.Bounds())
	}
	b := got.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			g := got.NRGBAAt(x, y)
			w := want.NRGBAAt(x, y)
			if absDiff(g.R, w.R) > tol || absDiff(g.G, w.G) > tol || absDiff(g.B, w.B) > tol {
				t.Fatalf("pixel (%d,%d): got %v, want %v (tolerance %d)", x, y, g, w, tol)
			}
		}
	}
}

func absDiff(a, b uint8) int {
	if a > b {
		return int(a - b)
	}
	return int(b - a)
}

func TestAverage_RedGreenScenario(t *testing.T) {
	red := solidImage(2, 2, color.NRGBA{255, 0, 0, 255})
	green := solidImage(2, 2, color.NRGBA{0, 255, 0, 255})

	out, err := Average([]image.Image{red, green}, 2.2)
	if err != nil {
		t.Fatalf("Average failed: %v", err)
	}

	want := uint8(math.Round(255 * math.Pow((1.0+0.0)/2, 1/2.2)))
	if want != 186 {
		t.Fatalf("derivation sanity check: got %d, want 186", want)
	}
	for y := 0; y < 2; y++ {
		for x := 0; x < 2; x++ {
			c := out.NRGBAAt(x, y)
			if absDiff(c.R, 186) > 1 || absDiff(c.G, 186) > 1 || c.B != 0 {
				t.Errorf("pixel (%d,%d): got (%d,%d,%d), want (186,186,0)", x, y, c.R, c.G, c.B)
			}
			if c.A != 255 {
				t.Errorf("pixel (%d,%d): alpha %d, want 255", x, y, c.A)
			}
		}
	}
}

func TestAverage_GammaOneIsArithmeticMean(t *testing.T) {
	images := []image.Image{
		patternImage(16, 9, 0),
		patternImage(16, 9, 41),
		patternImage(16, 9, 99),
	}

	out, err := Average(images, 1)
	if err != nil {
		t.Fatalf("Average failed: %v", err)
	}

	want := image.NewNRGBA(image.Rect(0, 0, 16, 9))
	for y := 0; y < 9; y++ {
		for x := 0; x < 16; x++ {
			var r, g, b int
			for _, img := range images {
				c := img.(*image.NRGBA).NRGBAAt(x, y)
				r += int(c.R)
				g += int(c.G)
				b += int(c.B)
			}
			want.SetNRGBA(x, y, color.NRGBA{uint8(r / 3), uint8(g / 3), uint8(b / 3), 255})
		}
	}
	assertClose(t, out, want, 1)
}

func TestAverage_DarkensLessThanArithmeticMean(t *testing.T) {
	black := solidImage(1, 1, color.NRGBA{0, 0, 0, 255})
	white := solidImage(1, 1, color.NRGBA{255, 255, 255, 255})

	plain, err := Average([]image.Image{black, white}, 1)
	if err != nil {
		t.Fatalf("Average(gamma=1) failed: %v", err)
	}
	corrected, err := Average([]image.Image{black, white}, DefaultGamma)
	if err != nil {
		t.Fatalf("Average(gamma=2.2) failed: %v", err)
	}

	p := plain.NRGBAAt(0, 0).R
	c := corrected.NRGBAAt(0, 0).R
	if c <= p {
		t.Errorf("gamma-corrected mid-tone %d should be brighter than arithmetic %d", c, p)
	}
}

func TestAverage_SingleImageUnchanged(t *testing.T) {
	img := patternImage(20, 12, 7)

	for _, gamma := range []float64{0.3, 1, 1.8, 2.2, 4, 10} {
		out, err := Average([]image.Image{img}, gamma)
		if err != nil {
			t.Fatalf("gamma %v: Average failed: %v", gamma, err)
		}
		assertClose(t, out, img, 1)
	}
}

func TestAverage_Boundaries(t *testing.T) {
	tests := []struct {
		name  string
		color color.NRGBA
	}{
		{"black", color.NRGBA{0, 0, 0, 255}},
		{"white", color.NRGBA{255, 255, 255, 255}},
	}

	for _, tt := range tests {
		for _, gamma := range []float64{0.01, 0.5, 1, 2.2, 100} {
			images := []image.Image{
				solidImage(4, 4, tt.color),
				solidImage(4, 4, tt.color),
				solidImage(4, 4, tt.color),
			}
			out, err := Average(images, gamma)
			if err != nil {
				t.Fatalf("%s gamma %v: Average failed: %v", tt.name, gamma, err)
			}
			// Exact, not within tolerance.
			assertClose(t, out, solidImage(4, 4, tt.color), 0)
		}
	}
}

func TestAverage_Empty(t *testing.T) {
	for _, images := range [][]image.Image{nil, {}} {
		out, err := Average(images, DefaultGamma)
		if !errors.Is(err, ErrInvalidInput) {
			t.Errorf("got %v, want ErrInvalidInput", err)
		}
		if out != nil {
			t.Error("Average should not return an image on error")
		}
	}
}

func TestAverage_EmptyCheckedBeforeGamma(t *testing.T) {
	_, err := Average(nil, -1)
	if !errors.Is(err, ErrInvalidInput) {
		t.Errorf("got %v, want ErrInvalidInput", err)
	}
}

func TestAverage_InvalidGamma(t *testing.T) {
	img := solidImage(2, 2, color.NRGBA{10, 20, 30, 255})

	for _, gamma := range []float64{0, -1, -2.2, math.NaN(), math.Inf(1), math.Inf(-1)} {
		out, err := Average([]image.Image{img}, gamma)
		if !errors.Is(err, ErrInvalidConfiguration) {
			t.Errorf("gamma %v: got %v, want ErrInvalidConfiguration", gamma, err)
		}
		if out != nil {
			t.Errorf("gamma %v: Average should not return an image on error", gamma)
		}
	}
}

func TestAverage_DimensionMismatch(t *testing.T) {
	images := []image.Image{
		solidImage(10, 10, color.NRGBA{1, 2, 3, 255}),
		solidImage(10, 10, color.NRGBA{1, 2, 3, 255}),
		solidImage(20, 20, color.NRGBA{1, 2, 3, 255}),
	}

	out, err := Average(images, DefaultGamma)
	if !errors.Is(err, ErrDimensionMismatch) {
		t.Fatalf("got %v, want ErrDimensionMismatch", err)
	}
	if out != nil {
		t.Error("Average should not return an image on error")
	}

	var dm *DimensionMismatchError
	if !errors.As(err, &dm) {
		t.Fatalf("error %T is not a *DimensionMismatchError", err)
	}
	if dm.Index != 2 {
		t.Errorf("Index: got %d, want 2", dm.Index)
	}
	if dm.Want != (image.Point{10, 10}) || dm.Got != (image.Point{20, 20}) {
		t.Errorf("sizes: got want=%v got=%v", dm.Want, dm.Got)
	}
}

func TestAverage_SameAreaDifferentShape(t *testing.T) {
	images := []image.Image{
		solidImage(4, 6, color.NRGBA{1, 2, 3, 255}),
		solidImage(6, 4, color.NRGBA{1, 2, 3, 255}),
	}
	_, err := Average(images, DefaultGamma)
	if !errors.Is(err, ErrDimensionMismatch) {
		t.Errorf("got %v, want ErrDimensionMismatch", err)
	}
}

func TestAverage_NormalizesColorModels(t *testing.T) {
	gray := image.NewGray(image.Rect(0, 0, 3, 3))
	for i := range gray.Pix {
		gray.Pix[i] = 100
	}

	// Straight alpha: color channels survive even when fully transparent.
	transparent := solidImage(3, 3, color.NRGBA{100, 100, 100, 0})

	rgba := image.NewRGBA(image.Rect(0, 0, 3, 3))
	for y := 0; y < 3; y++ {
		for x := 0; x < 3; x++ {
			rgba.Set(x, y, color.RGBA{100, 100, 100, 255})
		}
	}

	palette := image.NewPaletted(image.Rect(0, 0, 3, 3), color.Palette{color.Gray{100}})

	for name, img := range map[string]image.Image{
		"gray":        gray,
		"transparent": transparent,
		"rgba":        rgba,
		"paletted":    palette,
	} {
		t.Run(name, func(t *testing.T) {
			out, err := Average([]image.Image{img, solidImage(3, 3, color.NRGBA{100, 100, 100, 255})}, DefaultGamma)
			if err != nil {
				t.Fatalf("Average failed: %v", err)
			}
			assertClose(t, out, solidImage(3, 3, color.NRGBA{100, 100, 100, 255}), 1)
		})
	}
}

func TestAverage_OffsetBounds(t *testing.T) {
	img := patternImage(8, 8, 3)
	sub := img.SubImage(image.Rect(2, 2, 6, 6))

	out, err := Average([]image.Image{sub}, DefaultGamma)
	if err != nil {
		t.Fatalf("Average failed: %v", err)
	}
	if out.Bounds() != image.Rect(0, 0, 4, 4) {
		t.Fatalf("bounds: got %v, want (0,0)-(4,4)", out.Bounds())
	}
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			g := out.NRGBAAt(x, y)
			w := img.NRGBAAt(x+2, y+2)
			if absDiff(g.R, w.R) > 1 || absDiff(g.G, w.G) > 1 || absDiff(g.B, w.B) > 1 {
				t.Fatalf("pixel (%d,%d): got %v, want %v", x, y, g, w)
			}
		}
	}
}

func TestAverage_DoesNotModifyInputs(t *testing.T) {
	a := patternImage(5, 5, 1)
	b := patternImage(5, 5, 200)
	before := append([]uint8(nil), a.Pix...)

	if _, err := Average([]image.Image{a, b}, DefaultGamma); err != nil {
		t.Fatalf("Average failed: %v", err)
	}
	for i := range before {
		if a.Pix[i] != before[i] {
			t.Fatalf("input modified at byte %d", i)
		}
	}
}

func TestAverage_Concurrent(t *testing.T) {
	images := []image.Image{patternImage(32, 32, 5), patternImage(32, 32, 77)}
	want, err := Average(images, DefaultGamma)
	if err != nil {
		t.Fatalf("Average failed: %v", err)
	}

	var wg sync.WaitGroup
	errs := make(chan error, 20)
	results := make(chan *image.NRGBA, 20)

	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			out, err := Average(images, DefaultGamma)
			if err != nil {
				errs <- err
				return
			}
			results <- out
		}()
	}

	wg.Wait()
	close(errs)
	close(results)

	for err := range errs {
		t.Errorf("concurrent Average error: %v", err)
	}
	for out := range results {
		assertClose(t, out, want, 0)
	}
}

func TestAverageCurve_SRGB(t *testing.T) {
	black := solidImage(1, 1, color.NRGBA{0, 0, 0, 255})
	white := solidImage(1, 1, color.NRGBA{255, 255, 255, 255})

	out, err := AverageCurve([]image.Image{black, white}, SRGB)
	if err != nil {
		t.Fatalf("AverageCurve failed: %v", err)
	}

	// sRGB encoding of linear 0.5 is about 0.7354.
	if got := out.NRGBAAt(0, 0).R; absDiff(got, 188) > 1 {
		t.Errorf("R: got %d, want 188", got)
	}
}

func TestAverageCurve_NilCurve(t *testing.T) {
	_, err := AverageCurve([]image.Image{solidImage(1, 1, color.NRGBA{})}, nil)
	if !errors.Is(err, ErrInvalidConfiguration) {
		t.Errorf("got %v, want ErrInvalidConfiguration", err)
	}
}
