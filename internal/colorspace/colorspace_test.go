package colorspace

import (
	"errors"
	"image"
	"image/color"
	"math"
	"testing"
)

const tol = 1e-9

// gridSource is a tiny in-memory Source for tests.
type gridSource struct {
	w, h int
	px   [][3]uint8 // row-major
}

func (s gridSource) Width() int  { return s.w }
func (s gridSource) Height() int { return s.h }
func (s gridSource) RGB(x, y int) (r, g, b uint8) {
	p := s.px[y*s.w+x]
	return p[0], p[1], p[2]
}

func solid(w, h int, r, g, b uint8) gridSource {
	px := make([][3]uint8, w*h)
	for i := range px {
		px[i] = [3]uint8{r, g, b}
	}
	return gridSource{w: w, h: h, px: px}
}

func planeFrom(rows [][]float64) *Plane {
	p := NewPlane(len(rows[0]), len(rows))
	for r, row := range rows {
		for c, v := range row {
			p.Set(r, c, v)
		}
	}
	return p
}

func TestToYCbCr_KnownColors(t *testing.T) {
	tests := []struct {
		name      string
		r, g, b   uint8
		y, cb, cr float64
	}{
		{"white", 255, 255, 255, 255, 128, 128},
		{"black", 0, 0, 0, 0, 128, 128},
		{"red", 255, 0, 0, 76.245, 84.97232, 255.5},
		{"green", 0, 255, 0, 149.685, 43.52768, 21.23456},
		{"blue", 0, 0, 255, 29.07, 255.5, 107.26544},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			y, cb, cr, err := ToYCbCr(solid(1, 1, tt.r, tt.g, tt.b))
			if err != nil {
				t.Fatalf("ToYCbCr: %v", err)
			}
			if math.Abs(y.At(0, 0)-tt.y) > tol {
				t.Errorf("Y: got %v, want %v", y.At(0, 0), tt.y)
			}
			if math.Abs(cb.At(0, 0)-tt.cb) > tol {
				t.Errorf("Cb: got %v, want %v", cb.At(0, 0), tt.cb)
			}
			if math.Abs(cr.At(0, 0)-tt.cr) > tol {
				t.Errorf("Cr: got %v, want %v", cr.At(0, 0), tt.cr)
			}
		})
	}
}

func TestToYCbCr_RowMajorLayout(t *testing.T) {
	// 3 wide, 2 tall; only (col 2, row 1) is white.
	src := solid(3, 2, 0, 0, 0)
	src.px[1*3+2] = [3]uint8{255, 255, 255}

	y, _, _, err := ToYCbCr(src)
	if err != nil {
		t.Fatal(err)
	}
	if y.Width != 3 || y.Height != 2 {
		t.Fatalf("dims: got %dx%d", y.Width, y.Height)
	}
	if math.Abs(y.At(1, 2)-255) > tol {
		t.Errorf("Y[1][2]: got %v, want 255", y.At(1, 2))
	}
	if y.At(0, 2) != 0 || y.At(1, 1) != 0 {
		t.Error("unexpected non-zero luma outside the white pixel")
	}
}

func TestToYCbCr_InvalidDimensions(t *testing.T) {
	for _, src := range []gridSource{{w: 0, h: 4}, {w: 4, h: 0}, {w: -1, h: 2}} {
		_, _, _, err := ToYCbCr(src)
		if !errors.Is(err, ErrInvalidInput) {
			t.Errorf("%dx%d: got %v, want ErrInvalidInput", src.w, src.h, err)
		}
	}
}

func TestSubsample_TwoByTwo(t *testing.T) {
	out := Subsample(planeFrom([][]float64{{10, 20}, {30, 40}}))
	if out.Width != 1 || out.Height != 1 {
		t.Fatalf("dims: got %dx%d, want 1x1", out.Width, out.Height)
	}
	if out.At(0, 0) != 25 {
		t.Errorf("got %v, want 25", out.At(0, 0))
	}
}

func TestSubsample_OddDimensionsZeroPad(t *testing.T) {
	in := planeFrom([][]float64{
		{4, 8, 12},
		{16, 20, 24},
		{28, 32, 36},
	})
	out := Subsample(in)
	if out.Width != 2 || out.Height != 2 {
		t.Fatalf("dims: got %dx%d, want 2x2", out.Width, out.Height)
	}
	want := [][]float64{
		{(4 + 8 + 16 + 20) / 4.0, (12 + 24) / 4.0},
		{(28 + 32) / 4.0, 36 / 4.0},
	}
	for r := range want {
		for c := range want[r] {
			if got := out.At(r, c); got != want[r][c] {
				t.Errorf("[%d][%d]: got %v, want %v", r, c, got, want[r][c])
			}
		}
	}
}

func TestSubsample_SinglePixel(t *testing.T) {
	out := Subsample(planeFrom([][]float64{{100}}))
	if out.Width != 1 || out.Height != 1 || out.At(0, 0) != 25 {
		t.Errorf("got %dx%d %v, want 1x1 25", out.Width, out.Height, out.At(0, 0))
	}
}

func TestFromImage(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 4, 3))
	for y := 0; y < 3; y++ {
		for x := 0; x < 4; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: uint8(x * 10), G: uint8(y * 20), B: 7, A: 255})
		}
	}

	src := FromImage(img)
	if src.Width() != 4 || src.Height() != 3 {
		t.Fatalf("dims: got %dx%d", src.Width(), src.Height())
	}
	r, g, b := src.RGB(3, 2)
	if r != 30 || g != 40 || b != 7 {
		t.Errorf("RGB(3,2): got %d,%d,%d", r, g, b)
	}

	// Sub-images have a non-zero origin and go through the clone path.
	sub := FromImage(img.SubImage(image.Rect(1, 1, 4, 3)))
	if sub.Width() != 3 || sub.Height() != 2 {
		t.Fatalf("sub dims: got %dx%d", sub.Width(), sub.Height())
	}
	r, g, b = sub.RGB(0, 0)
	if r != 10 || g != 20 || b != 7 {
		t.Errorf("sub RGB(0,0): got %d,%d,%d", r, g, b)
	}
}

func TestFromImage_Gray(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 2, 2))
	img.SetGray(1, 1, color.Gray{Y: 200})

	r, g, b := FromImage(img).RGB(1, 1)
	if r != 200 || g != 200 || b != 200 {
		t.Errorf("got %d,%d,%d, want 200,200,200", r, g, b)
	}
}
