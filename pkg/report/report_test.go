package report

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"gonum.org/v1/gonum/mat"

	"neuroreport/pkg/errors"
	"neuroreport/pkg/plot"
	"neuroreport/pkg/readers"
	"neuroreport/pkg/render/html"
	"neuroreport/pkg/volume"
)

// fixtureReaders serves canned shapes for every artifact kind.
type fixtureReaders struct {
	conditions []readers.Condition
	vol        *volume.Volume // overrides the default 4x4x4 volume when set
}

func (f *fixtureReaders) ReadRaw(path string) (*readers.Recording, error) {
	return &readers.Recording{
		Summary: "306 channels, 600 s",
		Info:    readers.Info{SampleRate: 1000, ChannelCnt: 306},
	}, nil
}

func (f *fixtureReaders) ReadInfo(path string) (*readers.Info, error) {
	return &readers.Info{SampleRate: 1000, ChannelCnt: 306}, nil
}

func (f *fixtureReaders) ReadEvents(path string) ([]readers.Event, error) {
	return []readers.Event{{Sample: 100, Code: 1}, {Sample: 250, Code: 2}}, nil
}

func (f *fixtureReaders) ReadEvoked(path string, baselineStart, baselineEnd float64) ([]readers.Condition, error) {
	return f.conditions, nil
}

func (f *fixtureReaders) ReadForward(path string) (*readers.ForwardSolution, error) {
	return &readers.ForwardSolution{Summary: "free orientation", Sources: 1984, Channels: 306}, nil
}

func (f *fixtureReaders) ReadEpochs(path string) (*readers.EpochsSummary, error) {
	return &readers.EpochsSummary{Total: 10, Kept: 8, DropCounts: map[string]int{"EOG": 2}}, nil
}

func (f *fixtureReaders) ReadCovariance(path string) (*readers.Covariance, error) {
	return &readers.Covariance{
		Names: []string{"MEG 0111", "MEG 0112"},
		Data:  mat.NewDense(2, 2, []float64{1, 0.2, 0.2, 1}),
	}, nil
}

func (f *fixtureReaders) ReadVolume(path string) (*volume.Volume, error) {
	if f.vol != nil {
		return f.vol, nil
	}
	v := volume.New(4, 4, 4)
	for x := 0; x < 4; x++ {
		for y := 0; y < 4; y++ {
			for z := 0; z < 4; z++ {
				v.Set(x, y, z, float64(x+y+z))
			}
		}
	}
	return v, nil
}

func fixtureSet(f *fixtureReaders) *readers.Set {
	return &readers.Set{
		Raw: f, Events: f, Evoked: f, Forward: f,
		Epochs: f, Covariance: f, Info: f, Volume: f,
	}
}

// stubPlotter returns fixed payloads so tests assert document structure, not
// pixels. failEvoked names a condition whose plot call fails.
type stubPlotter struct {
	scene      plot.Scene
	failEvoked string
}

func (p *stubPlotter) PlotEvents(events []readers.Event, sampleRate float64) ([]byte, error) {
	return []byte("png-events"), nil
}

func (p *stubPlotter) PlotEventsInteractive(events []readers.Event, sampleRate float64) (string, error) {
	return `<svg class="events-widget"></svg>`, nil
}

func (p *stubPlotter) PlotEvoked(cond readers.Condition) ([]byte, error) {
	if p.failEvoked != "" && cond.Name == p.failEvoked {
		return nil, fmt.Errorf("no data for condition %s", cond.Name)
	}
	return []byte("png-" + cond.Name), nil
}

func (p *stubPlotter) PlotDropLog(ep *readers.EpochsSummary) ([]byte, error) {
	return []byte("png-droplog"), nil
}

func (p *stubPlotter) PlotCovariance(cov *readers.Covariance) ([]byte, error) {
	return []byte("png-cov"), nil
}

func (p *stubPlotter) PlotSlice(pl volume.Plane) ([]byte, error) {
	return []byte("png-slice"), nil
}

func (p *stubPlotter) PlotContours(vol *volume.Volume, surfaces []string, axis volume.Axis, index int) ([]byte, error) {
	return []byte("png-contours"), nil
}

func (p *stubPlotter) PlotTrans(info *readers.Info, transPath, subject, subjectsDir string) (plot.Scene, error) {
	return p.scene, nil
}

type stubScene struct{}

func (stubScene) Snapshot() ([]byte, error) { return []byte("png-scene"), nil }

func touch(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
}

func leaves(entries []html.TOCEntry) []html.TOCEntry {
	var out []html.TOCEntry
	for _, e := range entries {
		if len(e.Children) == 0 {
			out = append(out, e)
			continue
		}
		out = append(out, leaves(e.Children)...)
	}
	return out
}

func TestGenerateMixedDirectory(t *testing.T) {
	root := t.TempDir()
	for _, name := range []string{
		"sample_raw.fif",
		"sample-eve.fif",
		"sample-ave.fif",
		"sample-cov.fif",
		"sample-trans.fif",
		"weird_data.bin",
	} {
		touch(t, filepath.Join(root, name))
	}

	fr := &fixtureReaders{conditions: []readers.Condition{
		{Name: "aud_l", NAve: 55, Times: []float64{0, 0.001}, Data: mat.NewDense(1, 2, []float64{0, 1})},
		{Name: "vis_r", NAve: 61, Times: []float64{0, 0.001}, Data: mat.NewDense(1, 2, []float64{1, 0})},
	}}
	r := New(Options{InfoPath: filepath.Join(root, "sample_raw.fif")}, fixtureSet(fr), &stubPlotter{}, nil, nil)

	if err := r.Generate(context.Background(), root); err != nil {
		t.Fatalf("Generate: %v", err)
	}

	doc := r.Document()
	// trans produced no 3-D scene, so it contributes no row.
	// raw 1 + events 1 + evoked 2 + cov 1 + custom 1
	if got := html.CountRows(doc.TOC()); got != 6 {
		t.Fatalf("CountRows = %d, want 6", got)
	}

	prev := 0
	for _, e := range leaves(doc.TOC()) {
		if !e.Linked {
			t.Errorf("leaf %q not linked", e.Label)
		}
		if e.ID <= prev {
			t.Errorf("ids not strictly increasing: %d after %d", e.ID, prev)
		}
		prev = e.ID
	}

	var evoked, custom *html.TOCEntry
	for i := range doc.TOC() {
		e := &doc.TOC()[i]
		switch {
		case len(e.Children) > 0:
			evoked = e
		case e.CSSClass == "custom":
			custom = e
		}
	}
	if evoked == nil || len(evoked.Children) != 2 {
		t.Fatalf("expected evoked parent with 2 condition rows, got %+v", evoked)
	}
	if evoked.Linked {
		t.Error("evoked parent row must not link anywhere")
	}
	if evoked.Children[0].Label != "aud_l" || evoked.Children[1].Label != "vis_r" {
		t.Errorf("condition labels = %q, %q", evoked.Children[0].Label, evoked.Children[1].Label)
	}
	if custom == nil {
		t.Fatal("weird_data.bin produced no TOC row")
	}
	if custom.Flag != html.FlagWarning {
		t.Error("unrecognized artifact row must be flagged")
	}
	if custom.Label != "weird_data.bin" {
		t.Errorf("custom label = %q", custom.Label)
	}
}

func TestEvokedPlotFailureLeavesNoPartialSection(t *testing.T) {
	root := t.TempDir()
	touch(t, filepath.Join(root, "sample-ave.fif"))

	fr := &fixtureReaders{conditions: []readers.Condition{
		{Name: "aud_l", Times: []float64{0, 0.001}, Data: mat.NewDense(1, 2, []float64{0, 1})},
		{Name: "vis_r", Times: []float64{0, 0.001}, Data: mat.NewDense(1, 2, []float64{1, 0})},
	}}
	// The second condition fails to plot: the whole artifact is skipped and
	// the first condition must not survive in the body or the TOC.
	p := &stubPlotter{failEvoked: "vis_r"}
	r := New(Options{InfoPath: "info"}, fixtureSet(fr), p, nil, nil)

	if err := r.Generate(context.Background(), root); err != nil {
		t.Fatalf("per-artifact failure must not abort: %v", err)
	}
	if got := html.CountRows(r.Document().TOC()); got != 0 {
		t.Fatalf("CountRows = %d, want 0", got)
	}
	if got := len(r.Document().Artifacts()); got != 0 {
		t.Errorf("Artifacts = %d, want none recorded", got)
	}
	page := string(r.Document().Bytes(testNow()))
	if strings.Contains(page, "Evoked :") {
		t.Error("skipped artifact left a fragment in the document body")
	}
}

func TestGenerateSaveRoundTrip(t *testing.T) {
	root := t.TempDir()
	touch(t, filepath.Join(root, "sample_raw.fif"))

	fr := &fixtureReaders{}
	r := New(Options{InfoPath: filepath.Join(root, "sample_raw.fif")}, fixtureSet(fr), &stubPlotter{}, nil, nil)
	if err := r.Generate(context.Background(), root); err != nil {
		t.Fatal(err)
	}

	out, err := r.Save()
	if err != nil {
		t.Fatal(err)
	}
	if out != filepath.Join(root, "report.html") {
		t.Errorf("saved to %s", out)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	page := string(data)
	for _, want := range []string{"<html", "</html>", "306 channels, 600 s", `id="toc"`} {
		if !strings.Contains(page, want) {
			t.Errorf("report missing %q", want)
		}
	}
	if strings.Contains(page, "http://") || strings.Contains(page, "<link") {
		t.Error("report references external resources")
	}
	if !r.Document().Finalized() {
		t.Error("document not finalized after save")
	}
}

func TestGenerateInvalidConfig(t *testing.T) {
	root := t.TempDir()

	t.Run("missing info path", func(t *testing.T) {
		r := New(Options{}, fixtureSet(&fixtureReaders{}), &stubPlotter{}, nil, nil)
		err := r.Generate(context.Background(), root)
		if errors.GetCode(err) != errors.ErrCodeInvalidConfig {
			t.Fatalf("code = %v, want INVALID_CONFIG", errors.GetCode(err))
		}
	})

	t.Run("unreadable info", func(t *testing.T) {
		// No info reader registered: the one fatal reader failure.
		r := New(Options{InfoPath: "info.fif"}, &readers.Set{}, &stubPlotter{}, nil, nil)
		err := r.Generate(context.Background(), root)
		if errors.GetCode(err) != errors.ErrCodeInvalidConfig {
			t.Fatalf("code = %v, want INVALID_CONFIG", errors.GetCode(err))
		}
	})
}

func TestGenerateSkipsFailingArtifacts(t *testing.T) {
	root := t.TempDir()
	touch(t, filepath.Join(root, "sample_raw.fif"))
	touch(t, filepath.Join(root, "sample-cov.fif"))

	fr := &fixtureReaders{}
	// Covariance reader missing: its artifact is skipped, the rest render.
	set := fixtureSet(fr)
	set.Covariance = nil
	r := New(Options{InfoPath: filepath.Join(root, "sample_raw.fif")}, set, &stubPlotter{}, nil, nil)

	if err := r.Generate(context.Background(), root); err != nil {
		t.Fatalf("per-artifact failure must not abort: %v", err)
	}
	if got := html.CountRows(r.Document().TOC()); got != 1 {
		t.Fatalf("CountRows = %d, want 1", got)
	}
}

func TestTransSceneControlsSection(t *testing.T) {
	cases := []struct {
		name     string
		scene    plot.Scene
		wantRows int
	}{
		{"no 3-D backend", nil, 0},
		{"scene available", stubScene{}, 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			root := t.TempDir()
			touch(t, filepath.Join(root, "sample-trans.fif"))

			r := New(Options{InfoPath: "info"}, fixtureSet(&fixtureReaders{}), &stubPlotter{scene: tc.scene}, nil, nil)
			if err := r.Generate(context.Background(), root); err != nil {
				t.Fatal(err)
			}
			if got := html.CountRows(r.Document().TOC()); got != tc.wantRows {
				t.Fatalf("CountRows = %d, want %d", got, tc.wantRows)
			}
		})
	}
}

func TestInteractiveEvents(t *testing.T) {
	root := t.TempDir()
	touch(t, filepath.Join(root, "sample-eve.fif"))

	r := New(Options{InfoPath: "info", Interactive: true}, fixtureSet(&fixtureReaders{}), &stubPlotter{}, nil, nil)
	if err := r.Generate(context.Background(), root); err != nil {
		t.Fatal(err)
	}
	page := string(r.Document().Bytes(testNow()))
	if !strings.Contains(page, `class="events-widget"`) {
		t.Error("interactive mode did not embed the widget markup")
	}
	if strings.Contains(page, "data:image/png") {
		t.Error("interactive mode must not also embed the static image")
	}
}

func testNow() time.Time {
	return time.Date(2014, 6, 12, 10, 30, 0, 0, time.UTC)
}

func TestAddCustomSection(t *testing.T) {
	root := t.TempDir()
	r := New(Options{InfoPath: "info"}, fixtureSet(&fixtureReaders{}), &stubPlotter{}, nil, nil)
	if err := r.Generate(context.Background(), root); err != nil {
		t.Fatal(err)
	}

	if err := r.AddCustomSection([][]byte{[]byte("a")}, []string{"one", "two"}); err == nil {
		t.Fatal("mismatched captions must fail")
	}
	if err := r.AddCustomSection([][]byte{[]byte("a"), []byte("b")}, []string{"one", "two"}); err != nil {
		t.Fatal(err)
	}
	if got := html.CountRows(r.Document().TOC()); got != 2 {
		t.Fatalf("CountRows = %d, want 2", got)
	}
}

func TestOptionsValidate(t *testing.T) {
	cases := []struct {
		name       string
		opts       Options
		root       string
		wantErr    bool
		wantTitle  string
		wantOutput string
	}{
		{
			name:    "info required",
			opts:    Options{},
			root:    "/data",
			wantErr: true,
		},
		{
			name:       "defaults applied",
			opts:       Options{InfoPath: "info.fif"},
			root:       "/data/MEG/sample",
			wantTitle:  "Report for .../data/MEG/sample",
			wantOutput: "report.html",
		},
		{
			name:       "long root truncated to last 20",
			opts:       Options{InfoPath: "info.fif"},
			root:       "/very/long/path/to/subjects/MEG/sample",
			wantTitle:  "Report for .../subjects/MEG/sample",
			wantOutput: "report.html",
		},
		{
			name:       "explicit values kept",
			opts:       Options{InfoPath: "info.fif", Title: "My run", Output: "out.html"},
			root:       "/data",
			wantTitle:  "My run",
			wantOutput: "out.html",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.opts.Validate(tc.root)
			if tc.wantErr {
				if errors.GetCode(err) != errors.ErrCodeInvalidConfig {
					t.Fatalf("code = %v, want INVALID_CONFIG", errors.GetCode(err))
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if tc.opts.Title != tc.wantTitle {
				t.Errorf("Title = %q, want %q", tc.opts.Title, tc.wantTitle)
			}
			if tc.opts.Output != tc.wantOutput {
				t.Errorf("Output = %q, want %q", tc.opts.Output, tc.wantOutput)
			}
		})
	}
}
