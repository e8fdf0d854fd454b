// Package colorspace converts RGB pixel sources into Y, Cb and Cr sample
// planes and subsamples the chroma planes.
//
// Planes hold float64 samples and are never clamped: a full-range BT.601
// transform can leave [0, 255] for saturated inputs and the encoder keeps
// the raw values.
package colorspace

import (
	"errors"
	"fmt"
	"image"

	"github.com/disintegration/imaging"
)

// ErrInvalidInput is returned for sources with zero or negative dimensions.
var ErrInvalidInput = errors.New("invalid input")

// Source exposes the 8-bit RGB samples of an image.
type Source interface {
	Width() int
	Height() int
	// RGB returns the sample at column x, row y.
	RGB(x, y int) (r, g, b uint8)
}

// nrgbaSource reads straight from an NRGBA pixel buffer.
type nrgbaSource struct {
	img *image.NRGBA
}

// FromImage adapts a decoded image to a Source. Alpha is ignored and the
// color channels are read un-premultiplied.
func FromImage(img image.Image) Source {
	if n, ok := img.(*image.NRGBA); ok && n.Rect.Min == (image.Point{}) {
		return nrgbaSource{img: n}
	}
	return nrgbaSource{img: imaging.Clone(img)}
}

func (s nrgbaSource) Width() int  { return s.img.Rect.Dx() }
func (s nrgbaSource) Height() int { return s.img.Rect.Dy() }

func (s nrgbaSource) RGB(x, y int) (r, g, b uint8) {
	i := s.img.PixOffset(x, y)
	p := s.img.Pix[i : i+3 : i+3]
	return p[0], p[1], p[2]
}

// Plane is a row-major grid of samples.
type Plane struct {
	Width  int
	Height int
	Pix    []float64
}

// NewPlane allocates a zeroed width×height plane.
func NewPlane(width, height int) *Plane {
	return &Plane{
		Width:  width,
		Height: height,
		Pix:    make([]float64, width*height),
	}
}

// At returns the sample at (row, col). The position must be in bounds.
func (p *Plane) At(row, col int) float64 { return p.Pix[row*p.Width+col] }

// Set stores v at (row, col).
func (p *Plane) Set(row, col int, v float64) { p.Pix[row*p.Width+col] = v }

// InBounds reports whether (row, col) addresses a sample of p.
func (p *Plane) InBounds(row, col int) bool {
	return row >= 0 && row < p.Height && col >= 0 && col < p.Width
}

// ToYCbCr converts src into full-resolution Y, Cb and Cr planes.
func ToYCbCr(src Source) (y, cb, cr *Plane, err error) {
	w, h := src.Width(), src.Height()
	if w <= 0 || h <= 0 {
		return nil, nil, nil, fmt.Errorf("%w: source dimensions %dx%d", ErrInvalidInput, w, h)
	}

	y = NewPlane(w, h)
	cb = NewPlane(w, h)
	cr = NewPlane(w, h)

	for row := 0; row < h; row++ {
		off := row * w
		for col := 0; col < w; col++ {
			r8, g8, b8 := src.RGB(col, row)
			r, g, b := float64(r8), float64(g8), float64(b8)

			y.Pix[off+col] = 0.299*r + 0.587*g + 0.114*b
			cb.Pix[off+col] = 128 - 0.168736*r - 0.331264*g + 0.5*b
			cr.Pix[off+col] = 128 + 0.5*r - 0.418688*g - 0.081312*b
		}
	}
	return y, cb, cr, nil
}

// Subsample halves p in both directions by averaging 2×2 neighbourhoods.
// Neighbours that fall outside p count as zero and the divisor stays 4, so
// odd-sized planes darken along their last row and column.
func Subsample(p *Plane) *Plane {
	out := NewPlane((p.Width+1)/2, (p.Height+1)/2)

	for row := 0; row < p.Height; row += 2 {
		for col := 0; col < p.Width; col += 2 {
			sum := p.At(row, col)
			if col+1 < p.Width {
				sum += p.At(row, col+1)
			}
			if row+1 < p.Height {
				sum += p.At(row+1, col)
				if col+1 < p.Width {
					sum += p.At(row+1, col+1)
				}
			}
			out.Set(row/2, col/2, sum/4)
		}
	}
	return out
}
