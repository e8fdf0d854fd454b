// Package zigzag flattens 8×8 coefficient blocks into 64-entry sequences.
package zigzag

import "github.com/AnyUserName/jpegcore-cli/internal/block"

// Order lists, for each output position, the row-major block index it
// reads. The table is fixed; changing it changes every encoded block.
var Order = [64]int{
	0, 1, 5, 6, 14, 15, 27, 28,
	2, 4, 7, 13, 16, 26, 29, 42,
	3, 8, 12, 17, 25, 30, 41, 43,
	9, 11, 18, 24, 31, 40, 44, 53,
	10, 19, 23, 32, 39, 45, 52, 54,
	20, 22, 33, 38, 46, 51, 55, 60,
	21, 34, 37, 47, 50, 56, 59, 61,
	35, 36, 48, 49, 57, 58, 62, 63,
}

// Scan reads c in Order.
func Scan(c *block.Coeffs) [64]int32 {
	var seq [64]int32
	for i, k := range Order {
		seq[i] = c[k/block.Size][k%block.Size]
	}
	return seq
}

// Unscan scatters seq back into a block; Unscan(Scan(c)) == c.
func Unscan(seq *[64]int32) block.Coeffs {
	var c block.Coeffs
	for i, k := range Order {
		c[k/block.Size][k%block.Size] = seq[i]
	}
	return c
}
