// Package plot defines the plotting collaborator the report engine consumes,
// plus a default raster implementation.
//
// Section builders never draw anything themselves; they hand reader output to
// a Plotter and embed whatever bytes or markup come back. The default
// implementation covers the 2-D diagnostics (events, evoked traces, drop log,
// covariance, slices) and has no 3-D backend, so coordinate-frame sections
// fall back and are skipped unless the caller supplies a Plotter with one.
package plot

import (
	"neuroreport/pkg/readers"
	"neuroreport/pkg/volume"
)

// Scene is a renderable 3-D scene handle returned by PlotTrans.
type Scene interface {
	// Snapshot rasterizes the scene to PNG bytes.
	Snapshot() ([]byte, error)
}

// Plotter turns reader output into raster bytes or interactive markup.
type Plotter interface {
	// PlotEvents renders a static scatter of event time vs. code.
	PlotEvents(events []readers.Event, sampleRate float64) ([]byte, error)

	// PlotEventsInteractive renders a self-contained widget with
	// per-point tooltips describing (time, event code).
	PlotEventsInteractive(events []readers.Event, sampleRate float64) (string, error)

	// PlotEvoked renders the channel traces of one averaged condition.
	PlotEvoked(cond readers.Condition) ([]byte, error)

	// PlotDropLog renders per-trial rejection counts.
	PlotDropLog(ep *readers.EpochsSummary) ([]byte, error)

	// PlotCovariance renders the covariance matrix as an image.
	PlotCovariance(cov *readers.Covariance) ([]byte, error)

	// PlotSlice renders one 2-D plane in grayscale.
	PlotSlice(p volume.Plane) ([]byte, error)

	// PlotContours renders segmentation surface contours over the slice at
	// index along axis.
	PlotContours(vol *volume.Volume, surfaces []string, axis volume.Axis, index int) ([]byte, error)

	// PlotTrans builds a 3-D head/coordinate-frame scene. A nil Scene with
	// nil error means the backend produced only a 2-D fallback; the caller
	// skips the section.
	PlotTrans(info *readers.Info, transPath, subject, subjectsDir string) (Scene, error)
}
