// Package dump writes and reads token dumps: the complete per-block RLE
// output of an encode as JSON, optionally zstd-compressed. Dumps are for
// inspection and verification; they are not a bitstream.
package dump

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/AnyUserName/jpegcore-cli/internal/encoder"
	"github.com/AnyUserName/jpegcore-cli/internal/rle"
	"github.com/klauspost/compress/zstd"
)

// Version is the current dump schema version.
const Version = 1

// ZstdExt marks dumps that are zstd-compressed.
const ZstdExt = ".zst"

// File is the on-disk form of an encoder.Result.
type File struct {
	Version  int     `json:"version"`
	Width    int     `json:"width"`
	Height   int     `json:"height"`
	Quality  int     `json:"quality"`
	Rounding string  `json:"rounding"`
	Planes   []Plane `json:"planes"`
}

// Plane mirrors encoder.Plane.
type Plane struct {
	Name   string        `json:"name"`
	Kind   string        `json:"kind"`
	Width  int           `json:"width"`
	Height int           `json:"height"`
	Cols   int           `json:"cols"`
	Rows   int           `json:"rows"`
	Blocks [][]rle.Token `json:"blocks"`
}

// FromResult converts an encoder result into its dump form. Token slices
// are shared, not copied.
func FromResult(res *encoder.Result) *File {
	f := &File{
		Version:  Version,
		Width:    res.Width,
		Height:   res.Height,
		Quality:  res.Quality,
		Rounding: res.Rounding.String(),
		Planes:   make([]Plane, 0, len(res.Planes)),
	}
	for _, p := range res.Planes {
		f.Planes = append(f.Planes, Plane{
			Name:   p.Name,
			Kind:   p.Kind.String(),
			Width:  p.Width,
			Height: p.Height,
			Cols:   p.Cols,
			Rows:   p.Rows,
			Blocks: p.Blocks,
		})
	}
	return f
}

// Write stores res at path. Paths ending in ".zst" are zstd-compressed.
func Write(path string, res *encoder.Result) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create dump: %w", err)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("close dump: %w", cerr)
		}
	}()

	bw := bufio.NewWriter(f)
	var w io.Writer = bw

	var zw *zstd.Encoder
	if strings.HasSuffix(path, ZstdExt) {
		zw, err = zstd.NewWriter(bw, zstd.WithEncoderLevel(zstd.SpeedBetterCompression))
		if err != nil {
			return fmt.Errorf("zstd writer: %w", err)
		}
		w = zw
	}

	if err := json.NewEncoder(w).Encode(FromResult(res)); err != nil {
		if zw != nil {
			zw.Close()
		}
		return fmt.Errorf("encode dump: %w", err)
	}
	if zw != nil {
		if err := zw.Close(); err != nil {
			return fmt.Errorf("zstd close: %w", err)
		}
	}
	return bw.Flush()
}

// Read loads a dump written by Write, decompressing ".zst" files.
func Read(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dump: %w", err)
	}
	defer f.Close()

	var r io.Reader = bufio.NewReader(f)
	if strings.HasSuffix(path, ZstdExt) {
		zr, err := zstd.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("zstd reader: %w", err)
		}
		defer zr.Close()
		r = zr
	}

	var d File
	if err := json.NewDecoder(r).Decode(&d); err != nil {
		return nil, fmt.Errorf("decode dump: %w", err)
	}
	if d.Version != Version {
		return nil, fmt.Errorf("unsupported dump version %d", d.Version)
	}
	return &d, nil
}
