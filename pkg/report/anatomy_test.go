package report

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	"neuroreport/pkg/errors"
	"neuroreport/pkg/volume"
)

// anatomyFixture wires a subject directory with a T1 volume and optionally a
// complete or partial BEM segmentation.
func anatomyFixture(t *testing.T, surfaces []string) (root string, r *Report) {
	t.Helper()
	root = t.TempDir()
	subjectsDir := t.TempDir()

	touch(t, filepath.Join(subjectsDir, "sample", "mri", "T1.mgz"))
	for _, s := range surfaces {
		touch(t, filepath.Join(subjectsDir, "sample", "bem", s))
	}

	opts := Options{InfoPath: "info", SubjectsDir: subjectsDir, Subject: "sample"}
	r = New(opts, fixtureSet(&fixtureReaders{}), &stubPlotter{}, nil, nil)
	return root, r
}

func TestAnatomyPlainSlices(t *testing.T) {
	root, r := anatomyFixture(t, nil)
	if err := r.Generate(context.Background(), root); err != nil {
		t.Fatal(err)
	}

	toc := r.Document().TOC()
	if len(toc) != 1 {
		t.Fatalf("TOC rows = %d, want 1", len(toc))
	}
	if toc[0].Label != "T1.mgz" || toc[0].CSSClass != "slices-images" {
		t.Fatalf("row = %+v", toc[0])
	}

	page := string(r.Document().Bytes(testNow()))
	if got := strings.Count(page, `class="slice-slider"`); got != 3 {
		t.Errorf("sliders = %d, want one per axis", got)
	}
	for _, axis := range []string{"axial", "sagittal", "coronal"} {
		group := fmt.Sprintf("%s-%d", axis, toc[0].ID)
		if !strings.Contains(page, fmt.Sprintf(`data-group="%s"`, group)) {
			t.Errorf("missing slider group %s", group)
		}
		// 4 slices at stride 2 -> indices 0 and 2.
		for _, idx := range []int{0, 2} {
			if !strings.Contains(page, fmt.Sprintf(`id="%s-%d"`, group, idx)) {
				t.Errorf("missing slice %s-%d", group, idx)
			}
		}
	}
	// One visible member per group, the rest pre-rendered hidden.
	if got := strings.Count(page, `style="display: none"`); got != 3 {
		t.Errorf("hidden slices = %d, want 3", got)
	}
}

func TestAnatomyBEMSection(t *testing.T) {
	root, r := anatomyFixture(t, []string{
		"sample-inner_skull.surf",
		"sample-outer_skull.surf",
		"sample-outer_skin.surf",
	})
	if err := r.Generate(context.Background(), root); err != nil {
		t.Fatal(err)
	}

	toc := r.Document().TOC()
	if len(toc) != 1 || toc[0].Label != "bem" {
		t.Fatalf("TOC = %+v, want single bem row", toc)
	}

	page := string(r.Document().Bytes(testNow()))
	if !strings.Contains(page, "BEM contours") {
		t.Error("missing section heading")
	}

	var found bool
	for _, a := range r.Document().Artifacts() {
		if a == "bem" {
			found = true
		}
	}
	if !found {
		t.Error("bem not recorded as artifact")
	}
}

func TestAnatomyBEMFallback(t *testing.T) {
	// outer_skin missing: all-or-nothing, so the whole section falls back.
	root, r := anatomyFixture(t, []string{
		"sample-inner_skull.surf",
		"sample-outer_skull.surf",
	})
	if err := r.Generate(context.Background(), root); err != nil {
		t.Fatal(err)
	}

	toc := r.Document().TOC()
	if len(toc) != 1 || toc[0].Label != "T1.mgz" {
		t.Fatalf("TOC = %+v, want plain T1.mgz row", toc)
	}
	page := string(r.Document().Bytes(testNow()))
	if strings.Contains(page, "BEM contours") {
		t.Error("fallback section must not carry the BEM heading")
	}

	if _, err := r.bemSurfaces(); errors.GetCode(err) != errors.ErrCodeMissingAsset {
		t.Errorf("bemSurfaces code = %v, want MISSING_ASSET", errors.GetCode(err))
	}
}

func TestAnatomyFlatVolumeSingleImage(t *testing.T) {
	root := t.TempDir()
	subjectsDir := t.TempDir()
	touch(t, filepath.Join(subjectsDir, "sample", "mri", "T1.mgz"))

	// Trailing extent of 1: the volume is really one plane and must render as
	// a single image, not three one-slice slider groups.
	fr := &fixtureReaders{vol: volume.New(4, 4, 1)}
	opts := Options{InfoPath: "info", SubjectsDir: subjectsDir, Subject: "sample"}
	r := New(opts, fixtureSet(fr), &stubPlotter{}, nil, nil)
	if err := r.Generate(context.Background(), root); err != nil {
		t.Fatal(err)
	}

	toc := r.Document().TOC()
	if len(toc) != 1 || toc[0].Label != "T1.mgz" {
		t.Fatalf("TOC = %+v, want single T1.mgz row", toc)
	}
	page := string(r.Document().Bytes(testNow()))
	if strings.Contains(page, `class="slice-slider"`) {
		t.Error("flat volume must not build slider groups")
	}
	if !strings.Contains(page, "data:image/png") {
		t.Error("missing the single plane image")
	}
}

func TestNearestIndex(t *testing.T) {
	cases := []struct {
		indices []int
		target  int
		want    int
	}{
		{[]int{0, 2}, 2, 2},
		{[]int{0, 2, 4, 6}, 4, 4},
		{[]int{0, 2, 4, 6, 8}, 5, 4}, // tie goes to the lower index
		{[]int{0, 2}, 9, 2},
		{[]int{4}, 0, 4},
	}
	for _, tc := range cases {
		if got := nearestIndex(tc.indices, tc.target); got != tc.want {
			t.Errorf("nearestIndex(%v, %d) = %d, want %d", tc.indices, tc.target, got, tc.want)
		}
	}
}
