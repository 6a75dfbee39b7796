package html

import (
	"bytes"
	"fmt"

	"neuroreport/pkg/errors"
)

// sliderStep is the fixed control step. Slice sequences are subsampled every
// other index, so the control moves in matching increments.
const sliderStep = 2

// SliderGroup names a set of fragments that share one control; exactly one
// member is visible at a time. Indices holds the available slice positions in
// ascending order.
type SliderGroup struct {
	Name    string
	Indices []int
}

// DefaultIndex is the initially visible slice position: the midpoint of the
// index range, shifted one past it. Integer arithmetic is intentional.
func (g SliderGroup) DefaultIndex() (int, error) {
	if len(g.Indices) == 0 {
		return 0, errors.New(errors.ErrCodeEmptySliceRange, "slider %q built over zero indices", g.Name)
	}
	first, last := g.Indices[0], g.Indices[len(g.Indices)-1]
	return (first+last)/2 + 1, nil
}

// BuildSlider emits the control markup and script for the group. The script
// hides every member of the group on load, shows the default one, and on each
// change shows exactly the member whose id is "<group>-<value>" while hiding
// all others. Enforcement of the one-visible invariant while the user drags
// is client-side behavior; the document's part of the contract is that all
// members are pre-rendered with only the default marked visible.
func BuildSlider(g SliderGroup, sliderID string) (string, error) {
	start, err := g.DefaultIndex()
	if err != nil {
		return "", err
	}
	first, last := g.Indices[0], g.Indices[len(g.Indices)-1]

	var buf bytes.Buffer
	fmt.Fprintf(&buf,
		`<input type="range" class="slice-slider" id="%s" data-group="%s" min="%d" max="%d" step="%d" value="%d">`+"\n",
		sliderID, g.Name, first, last, sliderStep, start)
	fmt.Fprintf(&buf, `<script>sliceSlider(%q, %q, %d);</script>`+"\n", sliderID, g.Name, start)
	return buf.String(), nil
}
