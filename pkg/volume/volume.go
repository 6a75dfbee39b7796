// Package volume models 3-D anatomical volumes and extraction of 2-D planes
// along the three anatomical axes.
//
// Slice extraction is a pure function from (volume, axis, limits) to a
// materialized sequence of indexed planes, so the same axis can be iterated
// any number of times (once for a slider strip, once for thumbnails) without
// cursor state.
package volume

import "fmt"

// Volume is a 3-D scalar field stored flat in row-major order: the value at
// (x, y, z) lives at index x*Y*Z + y*Z + z.
type Volume struct {
	Data []float64
	X    int // sagittal extent
	Y    int // axial extent
	Z    int // coronal extent
}

// New allocates a zero-filled volume with the given extents.
func New(x, y, z int) *Volume {
	return &Volume{
		Data: make([]float64, x*y*z),
		X:    x,
		Y:    y,
		Z:    z,
	}
}

// At returns the value at (x, y, z). Indices are not bounds-checked beyond
// the backing slice.
func (v *Volume) At(x, y, z int) float64 {
	return v.Data[x*v.Y*v.Z+y*v.Z+z]
}

// Set stores a value at (x, y, z).
func (v *Volume) Set(x, y, z int, val float64) {
	v.Data[x*v.Y*v.Z+y*v.Z+z] = val
}

// Shape returns the three extents in (X, Y, Z) order.
func (v *Volume) Shape() [3]int {
	return [3]int{v.X, v.Y, v.Z}
}

// Squeeze drops a trailing extent-1 dimension, returning the volume as a
// single plane. This supports rendering 2-D-backed 3-D arrays without a
// spurious channel axis. ok is false when Z != 1.
func (v *Volume) Squeeze() (Plane, bool) {
	if v.Z != 1 {
		return Plane{}, false
	}
	p := NewPlane(v.X, v.Y)
	for x := 0; x < v.X; x++ {
		for y := 0; y < v.Y; y++ {
			p.Data[x][y] = v.At(x, y, 0)
		}
	}
	return p, true
}

// Plane is a 2-D scalar field, Data[row][col].
type Plane struct {
	Data [][]float64
}

// NewPlane allocates a zero-filled plane with the given row and column counts.
func NewPlane(rows, cols int) Plane {
	d := make([][]float64, rows)
	for i := range d {
		d[i] = make([]float64, cols)
	}
	return Plane{Data: d}
}

// Rows returns the number of rows.
func (p Plane) Rows() int { return len(p.Data) }

// Cols returns the number of columns, 0 for an empty plane.
func (p Plane) Cols() int {
	if len(p.Data) == 0 {
		return 0
	}
	return len(p.Data[0])
}

// Equal reports whether two planes hold identical values.
func (p Plane) Equal(q Plane) bool {
	if p.Rows() != q.Rows() || p.Cols() != q.Cols() {
		return false
	}
	for i := range p.Data {
		for j := range p.Data[i] {
			if p.Data[i][j] != q.Data[i][j] {
				return false
			}
		}
	}
	return true
}

// Rot90 rotates the plane 90 degrees counter-clockwise.
func Rot90(p Plane) Plane {
	rows, cols := p.Rows(), p.Cols()
	out := NewPlane(cols, rows)
	for i := 0; i < cols; i++ {
		for j := 0; j < rows; j++ {
			out.Data[i][j] = p.Data[j][cols-1-i]
		}
	}
	return out
}

// FlipUD reverses the row order of the plane.
func FlipUD(p Plane) Plane {
	rows := p.Rows()
	out := Plane{Data: make([][]float64, rows)}
	for i := 0; i < rows; i++ {
		src := p.Data[rows-1-i]
		row := make([]float64, len(src))
		copy(row, src)
		out.Data[i] = row
	}
	return out
}

// Rot180 rotates the plane 180 degrees. Kept for regression checks on the
// coronal presentation transform.
func Rot180(p Plane) Plane {
	return Rot90(Rot90(p))
}

func (v *Volume) String() string {
	return fmt.Sprintf("Volume(%dx%dx%d)", v.X, v.Y, v.Z)
}
