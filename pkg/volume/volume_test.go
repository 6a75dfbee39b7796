package volume

import (
	"reflect"
	"testing"
)

func TestAtSetRoundTrip(t *testing.T) {
	v := New(3, 4, 5)
	v.Set(2, 3, 4, 7.5)
	if got := v.At(2, 3, 4); got != 7.5 {
		t.Errorf("At() = %v, want 7.5", got)
	}
	if got := v.At(0, 0, 0); got != 0 {
		t.Errorf("At() = %v, want 0", got)
	}
}

func TestSqueeze(t *testing.T) {
	v := New(2, 3, 1)
	v.Set(1, 2, 0, 9)
	p, ok := v.Squeeze()
	if !ok {
		t.Fatal("Squeeze() failed on extent-1 trailing dimension")
	}
	if p.Rows() != 2 || p.Cols() != 3 {
		t.Fatalf("Squeeze() shape = %dx%d, want 2x3", p.Rows(), p.Cols())
	}
	if p.Data[1][2] != 9 {
		t.Errorf("Squeeze() value = %v, want 9", p.Data[1][2])
	}

	if _, ok := New(2, 2, 2).Squeeze(); ok {
		t.Error("Squeeze() succeeded on a true 3-D volume")
	}
}

func TestRot90(t *testing.T) {
	p := Plane{Data: [][]float64{{1, 2}, {3, 4}}}
	got := Rot90(p)
	want := [][]float64{{2, 4}, {1, 3}}
	if !reflect.DeepEqual(got.Data, want) {
		t.Errorf("Rot90() = %v, want %v", got.Data, want)
	}
}

func TestRot90NonSquare(t *testing.T) {
	p := Plane{Data: [][]float64{{1, 2, 3}, {4, 5, 6}}}
	got := Rot90(p)
	want := [][]float64{{3, 6}, {2, 5}, {1, 4}}
	if !reflect.DeepEqual(got.Data, want) {
		t.Errorf("Rot90() = %v, want %v", got.Data, want)
	}
}

func TestFlipUD(t *testing.T) {
	p := Plane{Data: [][]float64{{1, 2}, {3, 4}, {5, 6}}}
	got := FlipUD(p)
	want := [][]float64{{5, 6}, {3, 4}, {1, 2}}
	if !reflect.DeepEqual(got.Data, want) {
		t.Errorf("FlipUD() = %v, want %v", got.Data, want)
	}
}

// The coronal presentation transform is flipud(rot90(plane)). Applying it
// twice to a square pattern restores the original, the same end state as two
// successive 180-degree rotations; this pins down the transform against
// accidental sign or order changes.
func TestCoronalTransformRegression(t *testing.T) {
	p := Plane{Data: [][]float64{
		{1, 2, 3},
		{4, 5, 6},
		{7, 8, 9},
	}}

	transform := func(q Plane) Plane { return FlipUD(Rot90(q)) }

	twice := transform(transform(p))
	doubleRot := Rot180(Rot180(p))

	if !twice.Equal(doubleRot) {
		t.Errorf("transform applied twice = %v, want %v", twice.Data, doubleRot.Data)
	}
	if !twice.Equal(p) {
		t.Errorf("transform applied twice = %v, want original %v", twice.Data, p.Data)
	}
}

func TestRot180(t *testing.T) {
	p := Plane{Data: [][]float64{{1, 2}, {3, 4}}}
	got := Rot180(p)
	want := [][]float64{{4, 3}, {2, 1}}
	if !reflect.DeepEqual(got.Data, want) {
		t.Errorf("Rot180() = %v, want %v", got.Data, want)
	}
}
