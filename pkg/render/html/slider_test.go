package html

import (
	"strings"
	"testing"

	"neuroreport/pkg/errors"
)

func TestDefaultIndex(t *testing.T) {
	tests := []struct {
		name    string
		indices []int
		want    int
	}{
		{"even span", []int{0, 2, 4, 6}, 4},       // (0+6)/2 + 1
		{"odd span", []int{0, 2, 4, 6, 8}, 5},     // (0+8)/2 + 1
		{"offset range", []int{10, 12, 14}, 13},   // (10+14)/2 + 1
		{"single index", []int{4}, 5},             // (4+4)/2 + 1
		{"integer division", []int{1, 2, 3, 4}, 3}, // (1+4)/2 = 2, +1
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := SliderGroup{Name: "axial-1", Indices: tt.indices}
			got, err := g.DefaultIndex()
			if err != nil {
				t.Fatalf("DefaultIndex() error: %v", err)
			}
			if got != tt.want {
				t.Errorf("DefaultIndex() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestDefaultIndexWithinRange(t *testing.T) {
	// The default must always land inside [min, max] for contiguous strided
	// ranges of length >= 2.
	for n := 2; n < 40; n++ {
		var indices []int
		for i := 0; i < n; i += 2 {
			indices = append(indices, i)
		}
		if len(indices) < 2 {
			continue
		}
		g := SliderGroup{Name: "g", Indices: indices}
		got, err := g.DefaultIndex()
		if err != nil {
			t.Fatalf("DefaultIndex() error: %v", err)
		}
		if got < indices[0] || got > indices[len(indices)-1] {
			t.Errorf("n=%d: default %d outside [%d, %d]", n, got, indices[0], indices[len(indices)-1])
		}
	}
}

func TestBuildSliderEmptyRange(t *testing.T) {
	_, err := BuildSlider(SliderGroup{Name: "axial-1"}, "select-axial-1")
	if !errors.Is(err, errors.ErrCodeEmptySliceRange) {
		t.Errorf("BuildSlider() error = %v, want EMPTY_SLICE_RANGE", err)
	}
}

func TestBuildSliderMarkup(t *testing.T) {
	g := SliderGroup{Name: "coronal-7", Indices: []int{0, 2, 4, 6}}
	got, err := BuildSlider(g, "select-coronal-7")
	if err != nil {
		t.Fatalf("BuildSlider() error: %v", err)
	}

	for _, want := range []string{
		`id="select-coronal-7"`,
		`data-group="coronal-7"`,
		`min="0"`,
		`max="6"`,
		`step="2"`,
		`value="4"`,
		`sliceSlider("select-coronal-7", "coronal-7", 4)`,
	} {
		if !strings.Contains(got, want) {
			t.Errorf("slider markup missing %q in:\n%s", want, got)
		}
	}
}
