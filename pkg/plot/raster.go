package plot

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"sort"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"
	"gonum.org/v1/gonum/floats"

	"neuroreport/pkg/readers"
	"neuroreport/pkg/volume"
)

const (
	plotWidth  = 640
	plotHeight = 400
	plotMargin = 40.0

	// sliceMaxEdge caps the longer edge of rendered slices; anatomical
	// volumes are typically 256^3 and embedding them full-size bloats the
	// report.
	sliceMaxEdge = 256
)

// Raster is the default Plotter. The zero value is ready to use.
type Raster struct{}

// NewRaster returns the default raster plotter.
func NewRaster() *Raster { return &Raster{} }

var _ Plotter = (*Raster)(nil)

// PlotEvents draws event codes over time as a scatter.
func (r *Raster) PlotEvents(events []readers.Event, sampleRate float64) ([]byte, error) {
	dc := gg.NewContext(plotWidth, plotHeight)
	dc.SetRGB(1, 1, 1)
	dc.Clear()

	if len(events) == 0 {
		return encodePNG(dc)
	}

	times := make([]float64, len(events))
	codes := make([]float64, len(events))
	for i, ev := range events {
		times[i] = ev.Time(sampleRate)
		codes[i] = float64(ev.Code)
	}

	tMin, tMax := floats.Min(times), floats.Max(times)
	cMin, cMax := floats.Min(codes), floats.Max(codes)
	drawAxes(dc)

	dc.SetRGB(0.18, 0.42, 0.71)
	for i := range events {
		x := scale(times[i], tMin, tMax, plotMargin, plotWidth-plotMargin)
		y := scale(codes[i], cMin, cMax, plotHeight-plotMargin, plotMargin)
		dc.DrawCircle(x, y, 2.5)
		dc.Fill()
	}
	return encodePNG(dc)
}

// PlotEventsInteractive emits a self-contained SVG scatter whose points carry
// native tooltips with (time, event code).
func (r *Raster) PlotEventsInteractive(events []readers.Event, sampleRate float64) (string, error) {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %d %d" width="%d" height="%d">`+"\n",
		plotWidth, plotHeight, plotWidth, plotHeight)
	fmt.Fprintf(&buf, `<rect width="%d" height="%d" fill="white"/>`+"\n", plotWidth, plotHeight)

	if len(events) > 0 {
		times := make([]float64, len(events))
		codes := make([]float64, len(events))
		for i, ev := range events {
			times[i] = ev.Time(sampleRate)
			codes[i] = float64(ev.Code)
		}
		tMin, tMax := floats.Min(times), floats.Max(times)
		cMin, cMax := floats.Min(codes), floats.Max(codes)

		for i, ev := range events {
			x := scale(times[i], tMin, tMax, plotMargin, plotWidth-plotMargin)
			y := scale(codes[i], cMin, cMax, plotHeight-plotMargin, plotMargin)
			fmt.Fprintf(&buf, `<circle cx="%.1f" cy="%.1f" r="3" fill="#2e6da4"><title>t = %0.2f, event_id = %d</title></circle>`+"\n",
				x, y, times[i], ev.Code)
		}
	}
	buf.WriteString("</svg>\n")
	return buf.String(), nil
}

// PlotEvoked draws the condition's channel traces over time.
func (r *Raster) PlotEvoked(cond readers.Condition) ([]byte, error) {
	dc := gg.NewContext(plotWidth, plotHeight)
	dc.SetRGB(1, 1, 1)
	dc.Clear()
	drawAxes(dc)

	if cond.Data == nil || len(cond.Times) == 0 {
		return encodePNG(dc)
	}

	rows, cols := cond.Data.Dims()
	if cols > len(cond.Times) {
		cols = len(cond.Times)
	}
	vMin, vMax := cond.Data.At(0, 0), cond.Data.At(0, 0)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			v := cond.Data.At(i, j)
			if v < vMin {
				vMin = v
			}
			if v > vMax {
				vMax = v
			}
		}
	}
	tMin, tMax := cond.Times[0], cond.Times[cols-1]

	dc.SetLineWidth(0.8)
	dc.SetRGBA(0.1, 0.1, 0.3, 0.6)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			x := scale(cond.Times[j], tMin, tMax, plotMargin, plotWidth-plotMargin)
			y := scale(cond.Data.At(i, j), vMin, vMax, plotHeight-plotMargin, plotMargin)
			if j == 0 {
				dc.MoveTo(x, y)
			} else {
				dc.LineTo(x, y)
			}
		}
		dc.Stroke()
	}
	return encodePNG(dc)
}

// PlotDropLog draws a bar per rejection reason, tallest first.
func (r *Raster) PlotDropLog(ep *readers.EpochsSummary) ([]byte, error) {
	dc := gg.NewContext(plotWidth, plotHeight)
	dc.SetRGB(1, 1, 1)
	dc.Clear()
	drawAxes(dc)

	reasons := make([]string, 0, len(ep.DropCounts))
	for k := range ep.DropCounts {
		reasons = append(reasons, k)
	}
	sort.Slice(reasons, func(i, j int) bool {
		if ep.DropCounts[reasons[i]] != ep.DropCounts[reasons[j]] {
			return ep.DropCounts[reasons[i]] > ep.DropCounts[reasons[j]]
		}
		return reasons[i] < reasons[j]
	})
	if len(reasons) == 0 {
		return encodePNG(dc)
	}

	maxCount := ep.DropCounts[reasons[0]]
	span := plotWidth - 2*plotMargin
	barW := span / float64(len(reasons))

	dc.SetRGB(0.78, 0.29, 0.26)
	for i, reason := range reasons {
		h := scaleLen(float64(ep.DropCounts[reason]), float64(maxCount), plotHeight-2*plotMargin)
		x := plotMargin + float64(i)*barW
		dc.DrawRectangle(x+2, plotHeight-plotMargin-h, barW-4, h)
		dc.Fill()
		dc.SetRGB(0, 0, 0)
		dc.DrawStringAnchored(reason, x+barW/2, plotHeight-plotMargin/2, 0.5, 0.5)
		dc.SetRGB(0.78, 0.29, 0.26)
	}
	return encodePNG(dc)
}

// PlotCovariance renders the matrix as a grayscale heatmap.
func (r *Raster) PlotCovariance(cov *readers.Covariance) ([]byte, error) {
	rows, cols := cov.Data.Dims()
	img := image.NewGray(image.Rect(0, 0, cols, rows))

	vMin, vMax := cov.Data.At(0, 0), cov.Data.At(0, 0)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			v := cov.Data.At(i, j)
			if v < vMin {
				vMin = v
			}
			if v > vMax {
				vMax = v
			}
		}
	}
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			img.SetGray(j, i, color.Gray{Y: grayLevel(cov.Data.At(i, j), vMin, vMax)})
		}
	}
	return encodeImage(fit(img))
}

// PlotSlice renders one plane in grayscale with min/max intensity windowing.
func (r *Raster) PlotSlice(p volume.Plane) ([]byte, error) {
	rows, cols := p.Rows(), p.Cols()
	if rows == 0 || cols == 0 {
		return nil, fmt.Errorf("empty plane")
	}

	flat := make([]float64, 0, rows*cols)
	for i := range p.Data {
		flat = append(flat, p.Data[i]...)
	}
	vMin, vMax := floats.Min(flat), floats.Max(flat)

	img := image.NewGray(image.Rect(0, 0, cols, rows))
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			img.SetGray(j, i, color.Gray{Y: grayLevel(p.Data[i][j], vMin, vMax)})
		}
	}
	return encodeImage(fit(img))
}

// PlotContours would overlay segmentation contours; without a contour backend
// the default renders the bare slice so BEM sections degrade visibly rather
// than failing.
func (r *Raster) PlotContours(vol *volume.Volume, surfaces []string, axis volume.Axis, index int) ([]byte, error) {
	slices := volume.Slices(vol, axis, []int{index})
	if len(slices) == 0 {
		return nil, fmt.Errorf("slice %d out of range on %s axis", index, axis)
	}
	return r.PlotSlice(slices[0].Plane)
}

// PlotTrans has no 3-D backend in the default plotter; it reports a 2-D
// fallback, so trans sections are skipped.
func (r *Raster) PlotTrans(info *readers.Info, transPath, subject, subjectsDir string) (Scene, error) {
	return nil, nil
}

func drawAxes(dc *gg.Context) {
	dc.SetRGB(0.2, 0.2, 0.2)
	dc.SetLineWidth(1)
	dc.DrawLine(plotMargin, plotHeight-plotMargin, plotWidth-plotMargin, plotHeight-plotMargin)
	dc.DrawLine(plotMargin, plotMargin, plotMargin, plotHeight-plotMargin)
	dc.Stroke()
}

func scale(v, lo, hi, outLo, outHi float64) float64 {
	if hi == lo {
		return (outLo + outHi) / 2
	}
	return outLo + (v-lo)/(hi-lo)*(outHi-outLo)
}

func scaleLen(v, max, span float64) float64 {
	if max == 0 {
		return 0
	}
	return v / max * span
}

func grayLevel(v, lo, hi float64) uint8 {
	if hi == lo {
		return 128
	}
	g := (v - lo) / (hi - lo) * 255
	if g < 0 {
		g = 0
	}
	if g > 255 {
		g = 255
	}
	return uint8(g)
}

// fit caps the longer image edge at sliceMaxEdge, preserving aspect ratio.
func fit(img image.Image) image.Image {
	b := img.Bounds()
	if b.Dx() <= sliceMaxEdge && b.Dy() <= sliceMaxEdge {
		return img
	}
	return imaging.Fit(img, sliceMaxEdge, sliceMaxEdge, imaging.Lanczos)
}

func encodePNG(dc *gg.Context) ([]byte, error) {
	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func encodeImage(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
