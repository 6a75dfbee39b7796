package plot

import (
	"bytes"
	"image/png"
	"strings"
	"testing"

	"gonum.org/v1/gonum/mat"

	"neuroreport/pkg/readers"
	"neuroreport/pkg/volume"
)

func decodePNG(t *testing.T, data []byte) (w, h int) {
	t.Helper()
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("invalid PNG: %v", err)
	}
	b := img.Bounds()
	return b.Dx(), b.Dy()
}

func TestPlotEventsProducesPNG(t *testing.T) {
	r := NewRaster()
	events := []readers.Event{{Sample: 0, Code: 1}, {Sample: 600, Code: 2}, {Sample: 1200, Code: 1}}
	data, err := r.PlotEvents(events, 600)
	if err != nil {
		t.Fatalf("PlotEvents() error: %v", err)
	}
	decodePNG(t, data)
}

func TestPlotEventsEmpty(t *testing.T) {
	data, err := NewRaster().PlotEvents(nil, 600)
	if err != nil {
		t.Fatalf("PlotEvents() error: %v", err)
	}
	decodePNG(t, data)
}

func TestPlotEventsInteractiveTooltips(t *testing.T) {
	r := NewRaster()
	events := []readers.Event{{Sample: 300, Code: 5}}
	markup, err := r.PlotEventsInteractive(events, 600)
	if err != nil {
		t.Fatalf("PlotEventsInteractive() error: %v", err)
	}
	if !strings.HasPrefix(markup, "<svg") {
		t.Error("interactive markup is not inline SVG")
	}
	if !strings.Contains(markup, "t = 0.50, event_id = 5") {
		t.Errorf("tooltip missing from markup:\n%s", markup)
	}
}

func TestPlotCovariance(t *testing.T) {
	cov := &readers.Covariance{
		Names: []string{"MEG 0111", "MEG 0112"},
		Data:  mat.NewDense(2, 2, []float64{1, 0.2, 0.2, 1}),
	}
	data, err := NewRaster().PlotCovariance(cov)
	if err != nil {
		t.Fatalf("PlotCovariance() error: %v", err)
	}
	w, h := decodePNG(t, data)
	if w != 2 || h != 2 {
		t.Errorf("covariance image %dx%d, want 2x2", w, h)
	}
}

func TestPlotSliceWindowsIntensity(t *testing.T) {
	p := volume.NewPlane(4, 4)
	p.Data[0][0] = -100
	p.Data[3][3] = 100
	data, err := NewRaster().PlotSlice(p)
	if err != nil {
		t.Fatalf("PlotSlice() error: %v", err)
	}
	decodePNG(t, data)
}

func TestPlotSliceCapsLargePlanes(t *testing.T) {
	p := volume.NewPlane(512, 512)
	data, err := NewRaster().PlotSlice(p)
	if err != nil {
		t.Fatalf("PlotSlice() error: %v", err)
	}
	w, h := decodePNG(t, data)
	if w > sliceMaxEdge || h > sliceMaxEdge {
		t.Errorf("slice image %dx%d exceeds cap %d", w, h, sliceMaxEdge)
	}
}

func TestPlotDropLog(t *testing.T) {
	ep := &readers.EpochsSummary{
		Total: 100,
		Kept:  80,
		DropCounts: map[string]int{
			"EOG":      12,
			"AMPLITUDE": 8,
		},
	}
	data, err := NewRaster().PlotDropLog(ep)
	if err != nil {
		t.Fatalf("PlotDropLog() error: %v", err)
	}
	decodePNG(t, data)
}

func TestPlotTransFallsBack(t *testing.T) {
	scene, err := NewRaster().PlotTrans(&readers.Info{}, "sample-trans.fif", "sample", "/subjects")
	if err != nil {
		t.Fatalf("PlotTrans() error: %v", err)
	}
	if scene != nil {
		t.Error("default plotter should report a 2-D fallback (nil scene)")
	}
}

func TestPlotContoursRendersSlice(t *testing.T) {
	v := volume.New(4, 4, 4)
	data, err := NewRaster().PlotContours(v, []string{"inner_skull.surf"}, volume.Axial, 2)
	if err != nil {
		t.Fatalf("PlotContours() error: %v", err)
	}
	decodePNG(t, data)
}
