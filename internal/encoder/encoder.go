// Package encoder runs the lossy half of a JPEG-style encoder: color
// transform, chroma subsampling, 8×8 DCT, quantization, zig-zag reordering
// and run-length encoding. The output is one token list per block; no
// entropy coding or bitstream is produced.
package encoder

import (
	"fmt"
	"os"
	"runtime"
	"sync"

	"github.com/AnyUserName/jpegcore-cli/internal/block"
	"github.com/AnyUserName/jpegcore-cli/internal/colorspace"
	"github.com/AnyUserName/jpegcore-cli/internal/dct"
	"github.com/AnyUserName/jpegcore-cli/internal/quant"
	"github.com/AnyUserName/jpegcore-cli/internal/rle"
	"github.com/AnyUserName/jpegcore-cli/internal/zigzag"
)

// ErrInvalidInput is returned for nil or zero-sized sources.
var ErrInvalidInput = colorspace.ErrInvalidInput

// Plane names in output order.
const (
	PlaneY  = "Y"
	PlaneCb = "Cb"
	PlaneCr = "Cr"
)

// Options controls a single Encode call.
type Options struct {
	// Quality is clamped to [1, 99].
	Quality  int
	Rounding quant.Rounding
	// Workers bounds the number of block rows encoded concurrently.
	// 0 means runtime.NumCPU(); 1 encodes inline.
	Workers int
	// DirectDCT selects the double-sum transform instead of the
	// separable one. Output is identical up to float rounding.
	DirectDCT bool
	Verbose   bool
}

// Plane is the encoded form of one sample plane.
type Plane struct {
	Name   string
	Kind   quant.Kind
	Width  int
	Height int
	Cols   int
	Rows   int
	// Blocks holds one token list per block, row-major: block (r, c) is
	// Blocks[r*Cols+c].
	Blocks [][]rle.Token
}

// BlockAt returns the tokens of the block in block-row r, block-column c.
func (p *Plane) BlockAt(r, c int) []rle.Token { return p.Blocks[r*p.Cols+c] }

// Result is the output of Encode.
type Result struct {
	Width    int
	Height   int
	Quality  int
	Rounding quant.Rounding
	// Planes are Y, Cb, Cr in that order; Cb and Cr are subsampled.
	Planes [3]Plane
}

// Encode runs the pipeline over src.
func Encode(src colorspace.Source, opts Options) (*Result, error) {
	if src == nil {
		return nil, fmt.Errorf("%w: nil source", ErrInvalidInput)
	}
	if opts.Workers <= 0 {
		opts.Workers = runtime.NumCPU()
	}
	quality := quant.ClampQuality(opts.Quality)

	y, cb, cr, err := colorspace.ToYCbCr(src)
	if err != nil {
		return nil, fmt.Errorf("color transform: %w", err)
	}
	opts.logf("converting to YCbCr finished (%dx%d)", y.Width, y.Height)

	cb = colorspace.Subsample(cb)
	cr = colorspace.Subsample(cr)
	opts.logf("chroma downsampling finished (%dx%d)", cb.Width, cb.Height)

	lum := quant.NewTable(quant.Luminance, quality)
	chr := quant.NewTable(quant.Chrominance, quality)
	opts.logf("quality %d, scale factor %.4f, rounding %s", quality, quant.Scale(quality), opts.Rounding)

	res := &Result{
		Width:    y.Width,
		Height:   y.Height,
		Quality:  quality,
		Rounding: opts.Rounding,
	}

	inputs := [3]struct {
		name  string
		kind  quant.Kind
		plane *colorspace.Plane
		table *quant.Table
	}{
		{PlaneY, quant.Luminance, y, &lum},
		{PlaneCb, quant.Chrominance, cb, &chr},
		{PlaneCr, quant.Chrominance, cr, &chr},
	}
	for i, in := range inputs {
		p, err := encodePlane(in.plane, in.table, opts)
		if err != nil {
			return nil, fmt.Errorf("plane %s: %w", in.name, err)
		}
		p.Name = in.name
		p.Kind = in.kind
		res.Planes[i] = p
		opts.logf("DCT and quantization finished for %s (%d blocks)", in.name, len(p.Blocks))
	}
	return res, nil
}

// encodePlane encodes every block of p. Rows of blocks are fanned out to
// at most opts.Workers goroutines; each block writes only its own slot, so
// the result order matches a sequential scan.
func encodePlane(p *colorspace.Plane, table *quant.Table, opts Options) (Plane, error) {
	cols, rows := block.Grid(p.Width, p.Height)
	out := Plane{
		Width:  p.Width,
		Height: p.Height,
		Cols:   cols,
		Rows:   rows,
		Blocks: make([][]rle.Token, cols*rows),
	}

	encodeRow := func(r int) error {
		for c := 0; c < cols; c++ {
			tokens, err := encodeBlock(p, r*block.Size, c*block.Size, table, opts)
			if err != nil {
				return fmt.Errorf("block (%d,%d): %w", r, c, err)
			}
			out.Blocks[r*cols+c] = tokens
		}
		return nil
	}

	if opts.Workers == 1 || rows == 1 {
		for r := 0; r < rows; r++ {
			if err := encodeRow(r); err != nil {
				return Plane{}, err
			}
		}
		return out, nil
	}

	errs := make([]error, rows)
	var wg sync.WaitGroup
	sem := make(chan struct{}, opts.Workers)

	for r := 0; r < rows; r++ {
		wg.Add(1)
		go func(r int) {
			defer wg.Done()
			sem <- struct{}{}        // acquire
			defer func() { <-sem }() // release

			errs[r] = encodeRow(r)
		}(r)
	}
	wg.Wait()

	// Report the first failure in scan order.
	for _, err := range errs {
		if err != nil {
			return Plane{}, err
		}
	}
	return out, nil
}

// encodeBlock runs extract → DCT → quantize → zig-zag → RLE for the block
// whose top-left sample is (row, col).
func encodeBlock(p *colorspace.Plane, row, col int, table *quant.Table, opts Options) ([]rle.Token, error) {
	b := block.Extract(p, row, col)

	var f block.Block
	if opts.DirectDCT {
		f = dct.ForwardDirect(&b)
	} else {
		f = dct.Forward(&b)
	}

	c, err := quant.Quantize(&f, table, opts.Rounding)
	if err != nil {
		return nil, err
	}
	seq := zigzag.Scan(&c)
	return rle.Encode(seq[:]), nil
}

// logf prints a progress line when Verbose is set.
func (o Options) logf(format string, args ...any) {
	if o.Verbose {
		fmt.Fprintf(os.Stderr, "[jpegcore] "+format+"\n", args...)
	}
}
