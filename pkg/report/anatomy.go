package report

import (
	"bytes"
	"context"
	"fmt"
	stdhtml "html"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"neuroreport/pkg/cache"
	"neuroreport/pkg/errors"
	"neuroreport/pkg/observability"
	"neuroreport/pkg/render/html"
	"neuroreport/pkg/volume"
)

// sliceStride subsamples volumes to every other slice, matching the slider
// control step.
const sliceStride = 2

// bemPatterns are the segmentation surfaces a BEM section needs, in drawing
// order. All three must resolve or the section falls back to plain slices.
var bemPatterns = []string{"*inner_skull.surf", "*outer_skull.surf", "*outer_skin.surf"}

// sliceRenderer rasterizes one plane of a volume.
type sliceRenderer func(axis volume.Axis, ip volume.IndexedPlane) ([]byte, error)

// renderAnatomy dispatches a volumetric image. The subject's own anatomy gets
// BEM surface contours when the segmentation is complete; anything else, or
// an incomplete segmentation, renders as plain grayscale slices.
func (r *Report) renderAnatomy(ctx context.Context, path string) (Result, error) {
	if r.opts.AnatomyConfigured() && r.subjectVolume(path) {
		surfaces, err := r.bemSurfaces()
		if err == nil {
			return r.renderBEM(ctx, path, surfaces)
		}
		r.logger.Warn("incomplete BEM segmentation, rendering plain slices",
			"subject", r.opts.Subject, "err", err)
	}
	return r.renderImage(ctx, path)
}

// subjectVolume reports whether path lives under the configured subject
// directory.
func (r *Report) subjectVolume(path string) bool {
	dir := filepath.Join(r.opts.SubjectsDir, r.opts.Subject)
	rel, err := filepath.Rel(dir, path)
	return err == nil && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

// bemSurfaces locates the three segmentation surfaces under the subject's
// bem directory. All-or-nothing: one missing surface fails the whole lookup
// with a MISSING_ASSET error naming what could not be found.
func (r *Report) bemSurfaces() ([]string, error) {
	bemDir := filepath.Join(r.opts.SubjectsDir, r.opts.Subject, "bem")
	st, err := os.Stat(bemDir)
	if err != nil || !st.IsDir() {
		return nil, errors.New(errors.ErrCodeMissingAsset, "no bem directory at %s", bemDir)
	}

	surfaces := make([]string, 0, len(bemPatterns))
	for _, pat := range bemPatterns {
		matches, err := filepath.Glob(filepath.Join(bemDir, pat))
		if err != nil || len(matches) == 0 {
			return nil, errors.New(errors.ErrCodeMissingAsset, "no surface matching %s under %s", pat, bemDir)
		}
		sort.Strings(matches)
		surfaces = append(surfaces, matches[0])
	}
	return surfaces, nil
}

// renderImage emits the slice browser for one volume: three slider groups,
// axial and sagittal side by side with coronal below, every member
// pre-rendered and only the default one visible. A volume whose trailing
// dimension has extent 1 is really a single plane and renders as one image
// instead of a degenerate slider.
func (r *Report) renderImage(ctx context.Context, path string) (Result, error) {
	vol, err := r.readers.ReadVolume(path)
	if err != nil {
		return ResultSkipped, errors.Wrap(errors.ErrCodeReaderFailure, err, "read volume %s", path)
	}

	if plane, ok := vol.Squeeze(); ok {
		return r.renderPlane(path, plane)
	}

	render := func(_ volume.Axis, ip volume.IndexedPlane) ([]byte, error) {
		return r.plotter.PlotSlice(ip.Plane)
	}

	id := r.doc.NextID()
	section, err := r.volumeSection(ctx, vol, id, filepath.Base(path), fileFingerprint(path), render)
	if err != nil {
		return ResultSkipped, err
	}
	if err := r.doc.AppendRaw(section); err != nil {
		return ResultSkipped, err
	}
	r.addTOC(path, id, "slices-images")
	return ResultRendered, nil
}

// renderPlane emits a squeezed 2-D volume as a single image fragment.
func (r *Report) renderPlane(path string, plane volume.Plane) (Result, error) {
	img, err := r.plotter.PlotSlice(plane)
	if err != nil {
		return ResultSkipped, errors.Wrap(errors.ErrCodeRenderFailure, err, "render plane %s", path)
	}

	id := r.doc.NextID()
	if err := r.doc.AppendFragment(html.Fragment{
		ID:       id,
		CSSClass: "slices-images",
		Caption:  filepath.Base(path),
		Visible:  true,
		Image:    img,
	}); err != nil {
		return ResultSkipped, err
	}
	r.addTOC(path, id, "slices-images")
	return ResultRendered, nil
}

// renderBEM emits the slice browser with segmentation contours drawn over
// each plane.
func (r *Report) renderBEM(ctx context.Context, path string, surfaces []string) (Result, error) {
	vol, err := r.readers.ReadVolume(path)
	if err != nil {
		return ResultSkipped, errors.Wrap(errors.ErrCodeReaderFailure, err, "read volume %s", path)
	}

	render := func(axis volume.Axis, ip volume.IndexedPlane) ([]byte, error) {
		return r.plotter.PlotContours(vol, surfaces, axis, ip.Index)
	}

	id := r.doc.NextID()
	section, err := r.volumeSection(ctx, vol, id, "BEM contours", fileFingerprint(path)+":bem", render)
	if err != nil {
		return ResultSkipped, err
	}
	if err := r.doc.AppendRaw(section); err != nil {
		return ResultSkipped, err
	}
	r.doc.AddArtifact("bem")
	r.doc.AddTOCEntry(html.TOCEntry{
		ID:       id,
		Label:    "bem",
		Title:    path,
		CSSClass: "slices-images",
		Linked:   true,
	})
	return ResultRendered, nil
}

// volumeSection assembles one slice-browser list item: heading, then the
// three axis strips in two rows.
func (r *Report) volumeSection(ctx context.Context, vol *volume.Volume, id int, heading, fingerprint string, render sliceRenderer) (string, error) {
	axial, err := r.axisStrip(ctx, vol, volume.Axial, id, fingerprint, render)
	if err != nil {
		return "", err
	}
	sagittal, err := r.axisStrip(ctx, vol, volume.Sagittal, id, fingerprint, render)
	if err != nil {
		return "", err
	}
	coronal, err := r.axisStrip(ctx, vol, volume.Coronal, id, fingerprint, render)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<li class="slices-images" id="%d">`+"\n", id)
	fmt.Fprintf(&buf, "<h2>%s</h2>\n", stdhtml.EscapeString(heading))
	buf.WriteString(`<div class="row">` + "\n")
	buf.WriteString(axial)
	buf.WriteString(sagittal)
	buf.WriteString("</div>\n")
	buf.WriteString(`<div class="row">` + "\n")
	buf.WriteString(coronal)
	buf.WriteString("</div>\n</li>\n")
	return buf.String(), nil
}

// axisStrip renders every other slice along one axis plus the slider that
// toggles between them. Each member carries the group name as its class and
// "<group>-<index>" as its id so the slider script can address it.
func (r *Report) axisStrip(ctx context.Context, vol *volume.Volume, axis volume.Axis, sectionID int, fingerprint string, render sliceRenderer) (string, error) {
	indices := axis.Stride(vol, sliceStride)
	group := fmt.Sprintf("%s-%d", axis, sectionID)
	sg := html.SliderGroup{Name: group, Indices: indices}

	start, err := sg.DefaultIndex()
	if err != nil {
		return "", err
	}
	visible := nearestIndex(indices, start)

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<div class="axis %s">`+"\n", axis)
	fmt.Fprintf(&buf, "<h4>%s</h4>\n", axis)
	buf.WriteString("<ul>\n")
	for _, ip := range volume.Slices(vol, axis, indices) {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		default:
		}
		img, err := r.cachedSlice(ctx, fingerprint, axis, ip, render)
		if err != nil {
			return "", err
		}
		sliceID := fmt.Sprintf("%s-%d", group, ip.Index)
		buf.WriteString(html.SliceImage(img, sliceID, group, "slice-"+axis.String(), "", ip.Index == visible))
		buf.WriteString("\n")
	}
	buf.WriteString("</ul>\n")

	slider, err := html.BuildSlider(sg, "select-"+group)
	if err != nil {
		return "", err
	}
	buf.WriteString(slider)
	buf.WriteString("</div>\n")
	return buf.String(), nil
}

// cachedSlice returns the rendered slice image, consulting the fragment cache
// first. Cache write failures are not fatal; the image is still returned.
func (r *Report) cachedSlice(ctx context.Context, fingerprint string, axis volume.Axis, ip volume.IndexedPlane, render sliceRenderer) ([]byte, error) {
	key := cache.FragmentKey(fingerprint, axis.String(), ip.Index)
	if data, ok, err := r.cache.Get(ctx, key); err == nil && ok {
		observability.Cache().OnCacheHit(ctx, "slice")
		return data, nil
	}
	observability.Cache().OnCacheMiss(ctx, "slice")

	img, err := render(axis, ip)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeRenderFailure, err, "render %s slice %d", axis, ip.Index)
	}
	if err := r.cache.Set(ctx, key, img, 0); err != nil {
		r.logger.Debug("cache write failed", "key", key, "err", err)
	} else {
		observability.Cache().OnCacheSet(ctx, "slice", len(img))
	}
	return img, nil
}

// nearestIndex picks the displayable index closest to target, preferring the
// lower one on ties.
func nearestIndex(indices []int, target int) int {
	best := indices[0]
	for _, i := range indices[1:] {
		if abs(i-target) < abs(best-target) {
			best = i
		}
	}
	return best
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
