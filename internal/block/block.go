// Package block cuts sample planes into 8×8 tiles.
package block

import "github.com/AnyUserName/jpegcore-cli/internal/colorspace"

// Size is the edge length of a block.
const Size = 8

// Block is an 8×8 grid of level-shifted samples or DCT coefficients,
// indexed [row][col].
type Block [Size][Size]float64

// Coeffs is an 8×8 grid of quantized coefficients.
type Coeffs [Size][Size]int32

// Extract copies the block whose top-left sample is (row, col) and
// subtracts 128 from every in-bounds sample. Positions past the plane edge
// are left at exactly 0, not -128.
func Extract(p *colorspace.Plane, row, col int) Block {
	var b Block
	for x := 0; x < Size; x++ {
		for y := 0; y < Size; y++ {
			if p.InBounds(row+x, col+y) {
				b[x][y] = p.At(row+x, col+y) - 128
			}
		}
	}
	return b
}

// Grid returns how many blocks cover a width×height plane horizontally
// and vertically. Partial blocks at the right and bottom edges count.
func Grid(width, height int) (cols, rows int) {
	return (width + Size - 1) / Size, (height + Size - 1) / Size
}
