// Package dct implements the forward 8×8 type-II discrete cosine transform
// used by the encoder.
//
//	F(p,q) = α(p)·α(q) · Σm Σn block[m][n] · cos((2m+1)pπ/16) · cos((2n+1)qπ/16)
//	α(0) = √(1/8), α(k>0) = √(2/8)
//
// The cosine basis is computed once at init and only read afterwards, so
// Forward is safe for concurrent use.
package dct

import (
	"math"

	"github.com/AnyUserName/jpegcore-cli/internal/block"
)

const n = block.Size

var (
	// cosines[m][p] = cos((2m+1)pπ/16), indexed [spatial][frequency].
	cosines [n][n]float64
	alpha   [n]float64
)

func init() {
	for m := 0; m < n; m++ {
		for p := 0; p < n; p++ {
			cosines[m][p] = math.Cos(float64((2*m+1)*p) * math.Pi / (2 * n))
		}
	}
	alpha[0] = math.Sqrt(1.0 / n)
	for k := 1; k < n; k++ {
		alpha[k] = math.Sqrt(2.0 / n)
	}
}

// Forward transforms a level-shifted spatial block into frequency space
// with a row pass followed by a column pass.
func Forward(b *block.Block) block.Block {
	// rows: tmp[m][q] = Σn b[m][n]·cos[n][q]
	var tmp block.Block
	for m := 0; m < n; m++ {
		for q := 0; q < n; q++ {
			var sum float64
			for j := 0; j < n; j++ {
				sum += b[m][j] * cosines[j][q]
			}
			tmp[m][q] = sum
		}
	}

	var out block.Block
	for p := 0; p < n; p++ {
		for q := 0; q < n; q++ {
			var sum float64
			for m := 0; m < n; m++ {
				sum += cosines[m][p] * tmp[m][q]
			}
			out[p][q] = alpha[p] * alpha[q] * sum
		}
	}
	return out
}

// ForwardDirect evaluates the double sum for every coefficient. It is
// about eight times slower than Forward and agrees with it to within
// floating-point rounding.
func ForwardDirect(b *block.Block) block.Block {
	var out block.Block
	for p := 0; p < n; p++ {
		for q := 0; q < n; q++ {
			var sum float64
			for m := 0; m < n; m++ {
				for j := 0; j < n; j++ {
					sum += b[m][j] * cosines[m][p] * cosines[j][q]
				}
			}
			out[p][q] = sum * alpha[p] * alpha[q]
		}
	}
	return out
}
