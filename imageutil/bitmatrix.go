package imageutil

import (
	"fmt"
	"math/bits"
)

// BitMatrix is a two-dimensional grid of bits packed row-major into 64-bit
// words. Bit (x, y) is set for a white (background) pixel of a binarized
// image and clear for a black one.
type BitMatrix struct {
	width, height int
	words         []uint64
}

// NewBitMatrix creates a cleared matrix of the given size.
func NewBitMatrix(width, height int) *BitMatrix {
	n := width * height
	return &BitMatrix{
		width:  width,
		height: height,
		words:  make([]uint64, (n+63)/64),
	}
}

// BitMatrixFromBinarized builds a matrix from a binarized image. A cell is
// set when the red channel of the corresponding pixel is 255.
func BitMatrixFromBinarized(img *RGBAImage) *BitMatrix {
	m := NewBitMatrix(img.Width(), img.Height())
	for y := 0; y < m.height; y++ {
		for x := 0; x < m.width; x++ {
			if img.RGBAAt(x, y).R == 255 {
				m.Set(x, y, true)
			}
		}
	}
	return m
}

// Width returns the number of columns.
func (m *BitMatrix) Width() int { return m.width }

// Height returns the number of rows.
func (m *BitMatrix) Height() int { return m.height }

// Cells returns the total number of cells.
func (m *BitMatrix) Cells() int { return m.width * m.height }

// Get checks if the bit at (x, y) is set. Out of range cells are clear.
func (m *BitMatrix) Get(x, y int) bool {
	if x < 0 || x >= m.width || y < 0 || y >= m.height {
		return false
	}
	pos := y*m.width + x
	return m.words[pos/64]&(1<<(pos%64)) != 0
}

// Set sets or clears the bit at (x, y). Out of range cells are ignored.
func (m *BitMatrix) Set(x, y int, value bool) {
	if x < 0 || x >= m.width || y < 0 || y >= m.height {
		return
	}
	pos := y*m.width + x
	if value {
		m.words[pos/64] |= 1 << (pos % 64)
	} else {
		m.words[pos/64] &^= 1 << (pos % 64)
	}
}

// Ones counts the set cells.
func (m *BitMatrix) Ones() int {
	n := 0
	for _, w := range m.words {
		n += bits.OnesCount64(w)
	}
	return n
}

// Hamming counts the cells in which a and b disagree. Matrices of different
// dimensions cannot be compared.
func Hamming(a, b *BitMatrix) (int, error) {
	if a.width != b.width || a.height != b.height {
		return 0, fmt.Errorf("%w: bit matrices differ in size (%dx%d vs %dx%d)",
			ErrDecode, a.width, a.height, b.width, b.height)
	}
	dist := 0
	for i := range a.words {
		dist += bits.OnesCount64(a.words[i] ^ b.words[i])
	}
	return dist, nil
}
