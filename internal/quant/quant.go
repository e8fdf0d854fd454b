// Package quant builds quality-scaled quantization tables and quantizes DCT
// blocks with them.
package quant

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/AnyUserName/jpegcore-cli/internal/block"
)

// ErrArithmeticFault is returned when a table entry would divide by zero.
var ErrArithmeticFault = errors.New("arithmetic fault")

// Quality bounds. Out-of-range values are clamped, not rejected.
const (
	MinQuality = 1
	MaxQuality = 99
)

// Kind selects the base table: luma planes use Luminance, both chroma
// planes use Chrominance.
type Kind int

const (
	Luminance Kind = iota
	Chrominance
)

func (k Kind) String() string {
	switch k {
	case Luminance:
		return "Luminance"
	case Chrominance:
		return "Chrominance"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Base tables from JPEG Annex K.1 and K.2, natural (row-major) order.
var (
	baseLuminance = [64]int32{
		16, 11, 10, 16, 24, 40, 51, 61,
		12, 12, 14, 19, 26, 58, 60, 55,
		14, 13, 16, 24, 40, 57, 69, 56,
		14, 17, 22, 29, 51, 87, 80, 62,
		18, 22, 37, 56, 68, 109, 103, 77,
		24, 35, 55, 64, 81, 104, 113, 92,
		49, 64, 78, 87, 103, 121, 120, 101,
		72, 92, 95, 98, 112, 100, 103, 99,
	}
	baseChrominance = [64]int32{
		17, 18, 24, 47, 99, 99, 99, 99,
		18, 21, 26, 66, 99, 99, 99, 99,
		24, 26, 56, 99, 99, 99, 99, 99,
		47, 66, 99, 99, 99, 99, 99, 99,
		99, 99, 99, 99, 99, 99, 99, 99,
		99, 99, 99, 99, 99, 99, 99, 99,
		99, 99, 99, 99, 99, 99, 99, 99,
		99, 99, 99, 99, 99, 99, 99, 99,
	}
)

// Table is a 64-entry divisor table in row-major order.
type Table [64]int32

// ClampQuality limits q to [MinQuality, MaxQuality].
func ClampQuality(q int) int {
	if q < MinQuality {
		return MinQuality
	}
	if q > MaxQuality {
		return MaxQuality
	}
	return q
}

// Scale returns the base-table multiplier for quality q (clamped first).
// Quality 50 leaves the base table unchanged.
func Scale(q int) float64 {
	q = ClampQuality(q)
	if q < 50 {
		return 50.0 / float64(q)
	}
	return 2.0 - float64(q)/50.0
}

// NewTable scales the base table of kind k for quality q. Every entry is
// base·Scale(q) rounded half up, computed in integers so exact halves
// always round up, then clamped to [1, 255].
func NewTable(k Kind, q int) Table {
	base := &baseLuminance
	if k == Chrominance {
		base = &baseChrominance
	}

	q32 := int32(ClampQuality(q))
	var t Table
	for i, v := range base {
		var sv int32
		if q32 < 50 {
			// v·50/q + 1/2
			sv = (v*100 + q32) / (2 * q32)
		} else {
			// v·(2 − q/50) + 1/2
			sv = (v*(200-2*q32) + 50) / 100
		}
		if sv < 1 {
			sv = 1
		}
		if sv > 255 {
			sv = 255
		}
		t[i] = sv
	}
	return t
}

// Rounding selects how a divided coefficient becomes an integer.
type Rounding int

const (
	// Truncate rounds toward zero.
	Truncate Rounding = iota
	// Nearest rounds half away from zero.
	Nearest
)

func (r Rounding) String() string {
	switch r {
	case Truncate:
		return "truncate"
	case Nearest:
		return "nearest"
	default:
		return fmt.Sprintf("Rounding(%d)", int(r))
	}
}

// ParseRounding accepts "truncate" or "nearest" (case-insensitive); the
// empty string means Truncate.
func ParseRounding(s string) (Rounding, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "truncate", "trunc":
		return Truncate, nil
	case "nearest", "round":
		return Nearest, nil
	}
	return Truncate, fmt.Errorf("unknown rounding mode %q (want truncate or nearest)", s)
}

// Quantize divides every coefficient of b by the matching table entry.
func Quantize(b *block.Block, t *Table, r Rounding) (block.Coeffs, error) {
	var out block.Coeffs
	for i := 0; i < block.Size; i++ {
		for j := 0; j < block.Size; j++ {
			d := t[i*block.Size+j]
			if d <= 0 {
				return out, fmt.Errorf("%w: table entry %d is %d", ErrArithmeticFault, i*block.Size+j, d)
			}
			v := b[i][j] / float64(d)
			if r == Nearest {
				v = math.Round(v)
			}
			out[i][j] = int32(v)
		}
	}
	return out, nil
}
