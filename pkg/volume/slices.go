package volume

import "sort"

// Axis selects one of the three anatomical slicing directions.
type Axis int

const (
	Sagittal Axis = iota // slices along X
	Axial                // slices along Y
	Coronal              // slices along Z, presented rotated and flipped
)

// Axes lists the three axes in the order image sections render them.
var Axes = []Axis{Axial, Sagittal, Coronal}

func (a Axis) String() string {
	switch a {
	case Sagittal:
		return "sagittal"
	case Axial:
		return "axial"
	case Coronal:
		return "coronal"
	default:
		return "unknown"
	}
}

// Extent returns the number of slices the volume holds along this axis.
func (a Axis) Extent(v *Volume) int {
	switch a {
	case Sagittal:
		return v.X
	case Axial:
		return v.Y
	default:
		return v.Z
	}
}

// IndexedPlane is one extracted slice together with its position on the axis.
type IndexedPlane struct {
	Index int
	Plane Plane
}

// Slices extracts the 2-D planes of v along the given axis. When limits is
// nil every index in range is returned; otherwise only the in-range indices
// from limits are returned, in ascending order. Sagittal and axial planes
// come directly from array indexing; coronal planes are rotated 90 degrees
// and flipped vertically to present in conventional radiological orientation.
func Slices(v *Volume, axis Axis, limits []int) []IndexedPlane {
	extent := axis.Extent(v)
	indices := sliceIndices(extent, limits)

	out := make([]IndexedPlane, 0, len(indices))
	for _, ind := range indices {
		out = append(out, IndexedPlane{Index: ind, Plane: extract(v, axis, ind)})
	}
	return out
}

// Stride returns every stride-th index of the axis extent, starting at 0.
// Image sections subsample slices at stride 2.
func (a Axis) Stride(v *Volume, stride int) []int {
	extent := a.Extent(v)
	var out []int
	for i := 0; i < extent; i += stride {
		out = append(out, i)
	}
	return out
}

func sliceIndices(extent int, limits []int) []int {
	if limits == nil {
		out := make([]int, extent)
		for i := range out {
			out[i] = i
		}
		return out
	}
	seen := make(map[int]bool, len(limits))
	var out []int
	for _, i := range limits {
		if i >= 0 && i < extent && !seen[i] {
			seen[i] = true
			out = append(out, i)
		}
	}
	sort.Ints(out)
	return out
}

func extract(v *Volume, axis Axis, ind int) Plane {
	switch axis {
	case Sagittal:
		p := NewPlane(v.Y, v.Z)
		for y := 0; y < v.Y; y++ {
			for z := 0; z < v.Z; z++ {
				p.Data[y][z] = v.At(ind, y, z)
			}
		}
		return p
	case Axial:
		p := NewPlane(v.X, v.Z)
		for x := 0; x < v.X; x++ {
			for z := 0; z < v.Z; z++ {
				p.Data[x][z] = v.At(x, ind, z)
			}
		}
		return p
	default:
		p := NewPlane(v.X, v.Y)
		for x := 0; x < v.X; x++ {
			for y := 0; y < v.Y; y++ {
				p.Data[x][y] = v.At(x, y, ind)
			}
		}
		return FlipUD(Rot90(p))
	}
}
