package report

import (
	"fmt"
	"math"
	"os"
	"path/filepath"

	"neuroreport/pkg/artifact"
	"neuroreport/pkg/errors"
	"neuroreport/pkg/render/html"
)

// Baseline window applied when reading evoked conditions: from the start of
// the record up to t=0.
var (
	baselineStart = math.Inf(-1)
	baselineEnd   = 0.0
)

// flagFor marks TOC rows whose filename violates the naming conventions.
func flagFor(path string) html.ColorFlag {
	if artifact.Conventional(path) {
		return html.FlagNormal
	}
	return html.FlagWarning
}

// renderRaw emits a textual summary of a continuous recording. No imagery.
func (r *Report) renderRaw(path string) (Result, error) {
	rec, err := r.readers.ReadRaw(path)
	if err != nil {
		return ResultSkipped, errors.Wrap(errors.ErrCodeReaderFailure, err, "read raw %s", path)
	}

	repr := rec.Summary
	if rec.Info.Description != "" {
		repr += "\n" + rec.Info.Description
	}

	id := r.doc.NextID()
	if err := r.doc.AppendFragment(html.Fragment{
		ID:       id,
		CSSClass: "raw",
		Caption:  "Raw : " + path,
		Visible:  true,
		TextRepr: repr,
	}); err != nil {
		return ResultSkipped, err
	}
	r.addTOC(path, id, "raw")
	return ResultRendered, nil
}

// renderForward emits a textual summary of a forward solution and registers
// the file as a TOC-visible artifact.
func (r *Report) renderForward(path string) (Result, error) {
	fwd, err := r.readers.ReadForward(path)
	if err != nil {
		return ResultSkipped, errors.Wrap(errors.ErrCodeReaderFailure, err, "read forward %s", path)
	}

	repr := fwd.Summary
	if fwd.Sources > 0 || fwd.Channels > 0 {
		repr += fmt.Sprintf("\nsources: %d, channels: %d", fwd.Sources, fwd.Channels)
	}

	id := r.doc.NextID()
	if err := r.doc.AppendFragment(html.Fragment{
		ID:       id,
		CSSClass: "forward",
		Caption:  "Forward: " + path,
		Visible:  true,
		TextRepr: repr,
	}); err != nil {
		return ResultSkipped, err
	}
	r.addTOC(path, id, "forward")
	return ResultRendered, nil
}

// renderEvoked emits one fragment per named condition. Conditions share a
// parent TOC row and get one nested row each, with ids assigned in rendering
// order.
func (r *Report) renderEvoked(path string) (Result, error) {
	conditions, err := r.readers.ReadEvoked(path, baselineStart, baselineEnd)
	if err != nil {
		return ResultSkipped, errors.Wrap(errors.ErrCodeReaderFailure, err, "read evoked %s", path)
	}
	if len(conditions) == 0 {
		return ResultSkipped, errors.New(errors.ErrCodeReaderFailure, "no conditions in %s", path)
	}

	// Plot every condition before touching the document: a failure on any
	// condition must leave no fragments and no ids behind.
	images := make([][]byte, len(conditions))
	for i, cond := range conditions {
		img, err := r.plotter.PlotEvoked(cond)
		if err != nil {
			return ResultSkipped, errors.Wrap(errors.ErrCodeRenderFailure, err, "plot condition %q of %s", cond.Name, path)
		}
		images[i] = img
	}

	parent := html.TOCEntry{
		Label:    filepath.Base(path),
		Title:    path,
		CSSClass: "evoked",
	}
	for i, cond := range conditions {
		id := r.doc.NextID()
		if err := r.doc.AppendFragment(html.Fragment{
			ID:       id,
			CSSClass: "evoked",
			Caption:  fmt.Sprintf("Evoked : %s (%s)", path, cond.Name),
			Visible:  true,
			Image:    images[i],
		}); err != nil {
			return ResultSkipped, err
		}
		parent.Children = append(parent.Children, html.TOCEntry{
			ID:       id,
			Label:    cond.Name,
			Title:    path,
			CSSClass: "evoked",
			Flag:     flagFor(path),
			Linked:   true,
		})
	}

	r.doc.AddArtifact(path)
	r.doc.AddTOCEntry(parent)
	return ResultRendered, nil
}

// renderEvents emits a static plot or, in interactive mode, a widget with
// per-point tooltips. Exactly one payload form is produced per call.
func (r *Report) renderEvents(path string) (Result, error) {
	events, err := r.readers.ReadEvents(path)
	if err != nil {
		return ResultSkipped, errors.Wrap(errors.ErrCodeReaderFailure, err, "read events %s", path)
	}

	frag := html.Fragment{
		CSSClass: "events",
		Caption:  "Events : " + path,
		Visible:  true,
	}
	if r.opts.Interactive {
		markup, err := r.plotter.PlotEventsInteractive(events, r.info.SampleRate)
		if err != nil {
			return ResultSkipped, errors.Wrap(errors.ErrCodeRenderFailure, err, "plot events %s", path)
		}
		frag.Interactive = markup
	} else {
		img, err := r.plotter.PlotEvents(events, r.info.SampleRate)
		if err != nil {
			return ResultSkipped, errors.Wrap(errors.ErrCodeRenderFailure, err, "plot events %s", path)
		}
		frag.Image = img
	}

	frag.ID = r.doc.NextID()
	if err := r.doc.AppendFragment(frag); err != nil {
		return ResultSkipped, err
	}
	r.addTOC(path, frag.ID, "events")
	return ResultRendered, nil
}

// renderEpochs emits one diagnostic plot of per-trial rejection counts.
func (r *Report) renderEpochs(path string) (Result, error) {
	ep, err := r.readers.ReadEpochs(path)
	if err != nil {
		return ResultSkipped, errors.Wrap(errors.ErrCodeReaderFailure, err, "read epochs %s", path)
	}
	img, err := r.plotter.PlotDropLog(ep)
	if err != nil {
		return ResultSkipped, errors.Wrap(errors.ErrCodeRenderFailure, err, "plot drop log %s", path)
	}

	id := r.doc.NextID()
	if err := r.doc.AppendFragment(html.Fragment{
		ID:       id,
		CSSClass: "epochs",
		Caption:  "Epochs : " + path,
		Visible:  true,
		Image:    img,
	}); err != nil {
		return ResultSkipped, err
	}
	r.addTOC(path, id, "epochs")
	return ResultRendered, nil
}

// renderCovariance emits the matrix-as-image fragment.
func (r *Report) renderCovariance(path string) (Result, error) {
	cov, err := r.readers.ReadCovariance(path)
	if err != nil {
		return ResultSkipped, errors.Wrap(errors.ErrCodeReaderFailure, err, "read covariance %s", path)
	}
	img, err := r.plotter.PlotCovariance(cov)
	if err != nil {
		return ResultSkipped, errors.Wrap(errors.ErrCodeRenderFailure, err, "plot covariance %s", path)
	}

	id := r.doc.NextID()
	if err := r.doc.AppendFragment(html.Fragment{
		ID:       id,
		CSSClass: "covariance",
		Caption:  "Covariance : " + path,
		Visible:  true,
		Image:    img,
	}); err != nil {
		return ResultSkipped, err
	}
	r.addTOC(path, id, "covariance")
	return ResultRendered, nil
}

// renderTrans emits a coordinate-frame visualization when the plotting
// backend produces a renderable 3-D scene. A 2-D fallback is an explicit
// skip, not a failure.
func (r *Report) renderTrans(path string) (Result, error) {
	scene, err := r.plotter.PlotTrans(r.info, path, r.opts.Subject, r.opts.SubjectsDir)
	if err != nil {
		return ResultSkipped, errors.Wrap(errors.ErrCodeRenderFailure, err, "plot trans %s", path)
	}
	if scene == nil {
		return ResultSkipped, nil
	}
	img, err := scene.Snapshot()
	if err != nil {
		return ResultSkipped, errors.Wrap(errors.ErrCodeRenderFailure, err, "snapshot trans %s", path)
	}

	id := r.doc.NextID()
	if err := r.doc.AppendFragment(html.Fragment{
		ID:       id,
		CSSClass: "trans",
		Caption:  "Trans : " + path,
		Visible:  true,
		Image:    img,
	}); err != nil {
		return ResultSkipped, err
	}
	r.addTOC(path, id, "trans")
	return ResultRendered, nil
}

// renderUnknown emits a generic custom fragment for files no rule matched.
func (r *Report) renderUnknown(path string) (Result, error) {
	repr := path
	if st, err := os.Stat(path); err == nil {
		repr = fmt.Sprintf("%s (%d bytes)\nunrecognized artifact", path, st.Size())
	}

	id := r.doc.NextID()
	if err := r.doc.AppendFragment(html.Fragment{
		ID:       id,
		CSSClass: "custom",
		Caption:  filepath.Base(path),
		Visible:  true,
		TextRepr: repr,
	}); err != nil {
		return ResultSkipped, err
	}
	r.doc.AddArtifact(path)
	r.doc.AddTOCEntry(html.TOCEntry{
		ID:       id,
		Label:    filepath.Base(path),
		Title:    path,
		CSSClass: "custom",
		Flag:     html.FlagWarning,
		Linked:   true,
	})
	return ResultRendered, nil
}

// addTOC records the artifact name and its single linked TOC row.
func (r *Report) addTOC(path string, id int, cssClass string) {
	r.doc.AddArtifact(path)
	r.doc.AddTOCEntry(html.TOCEntry{
		ID:       id,
		Label:    filepath.Base(path),
		Title:    path,
		CSSClass: cssClass,
		Flag:     flagFor(path),
		Linked:   true,
	})
}
