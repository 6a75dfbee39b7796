package report

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"time"

	"github.com/charmbracelet/log"

	"neuroreport/pkg/artifact"
	"neuroreport/pkg/cache"
	"neuroreport/pkg/errors"
	"neuroreport/pkg/observability"
	"neuroreport/pkg/plot"
	"neuroreport/pkg/readers"
	"neuroreport/pkg/render/html"
)

// Report drives one report generation run. It owns the document (and through
// it the identifier allocator), the collaborators, and the rendering order.
// A Report is single-use: Generate once, then Save.
//
// All work is synchronous and single-threaded; one artifact is rendered at a
// time and nothing else ever touches the document.
type Report struct {
	opts    Options
	readers *readers.Set
	plotter plot.Plotter
	cache   cache.Cache
	logger  *log.Logger

	doc      *html.Document
	info     *readers.Info
	dataPath string
}

// New creates a report generator. Nil plotter, cache, or logger fall back to
// the raster plotter, a null cache, and the default logger.
func New(opts Options, rs *readers.Set, p plot.Plotter, c cache.Cache, logger *log.Logger) *Report {
	if p == nil {
		p = plot.NewRaster()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	if rs == nil {
		rs = &readers.Set{}
	}
	return &Report{
		opts:    opts,
		readers: rs,
		plotter: p,
		cache:   c,
		logger:  logger,
	}
}

// Document exposes the assembled document; nil before Generate.
func (r *Report) Document() *html.Document { return r.doc }

// Generate scans root, renders every classified artifact in discovery order,
// and accumulates the document body and TOC. Per-artifact failures are logged
// and skipped; only misconfiguration (an unreadable session info file, an
// unscannable root) aborts the run.
func (r *Report) Generate(ctx context.Context, root string) error {
	if err := r.opts.Validate(root); err != nil {
		return err
	}
	r.dataPath = root
	r.doc = html.NewDocument(r.opts.Title)

	info, err := r.readers.ReadInfo(r.opts.InfoPath)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "read session info %s", r.opts.InfoPath)
	}
	r.info = info

	files, err := artifact.Scan(root, r.opts.SubjectsDir, r.opts.Subject)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "scan %s", root)
	}
	r.logger.Info("scanned data directory", "root", root, "artifacts", len(files))

	for _, f := range files {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		r.logger.Info("rendering", "path", f.Path, "kind", f.Kind)
		observability.Report().OnArtifactStart(ctx, f.Path, string(f.Kind))
		start := time.Now()
		res, err := r.renderArtifact(ctx, f)
		observability.Report().OnArtifactComplete(ctx, f.Path, string(f.Kind), time.Since(start), err)
		if err != nil {
			if errors.Fatal(err) {
				return err
			}
			r.logger.Warn("artifact skipped", "path", f.Path, "err", err)
			continue
		}
		if res == ResultSkipped {
			r.logger.Debug("nothing to render", "path", f.Path)
		}
	}
	return nil
}

// renderArtifact dispatches one classified file to its section builder.
func (r *Report) renderArtifact(ctx context.Context, f artifact.File) (Result, error) {
	switch f.Kind {
	case artifact.KindRaw:
		return r.renderRaw(f.Path)
	case artifact.KindForward:
		return r.renderForward(f.Path)
	case artifact.KindEvoked:
		return r.renderEvoked(f.Path)
	case artifact.KindEvents:
		return r.renderEvents(f.Path)
	case artifact.KindEpochs:
		return r.renderEpochs(f.Path)
	case artifact.KindCovariance:
		return r.renderCovariance(f.Path)
	case artifact.KindTrans:
		return r.renderTrans(f.Path)
	case artifact.KindImage:
		return r.renderAnatomy(ctx, f.Path)
	default:
		return r.renderUnknown(f.Path)
	}
}

// AddCustomSection appends user-supplied figures to the report as custom
// fragments, one per (image, caption) pair.
func (r *Report) AddCustomSection(images [][]byte, captions []string) error {
	if r.doc == nil {
		return errors.New(errors.ErrCodeInternal, "AddCustomSection before Generate")
	}
	if len(images) != len(captions) {
		return errors.New(errors.ErrCodeInvalidConfig, "%d images but %d captions", len(images), len(captions))
	}
	for i, img := range images {
		id := r.doc.NextID()
		frag := html.Fragment{
			ID:       id,
			CSSClass: "custom",
			Caption:  captions[i],
			Visible:  true,
			Image:    img,
		}
		if err := r.doc.AppendFragment(frag); err != nil {
			return err
		}
		r.doc.AddArtifact("custom")
		r.doc.AddTOCEntry(html.TOCEntry{
			ID: id, Label: captions[i], CSSClass: "custom", Linked: true,
		})
	}
	return nil
}

// Save serializes the document to <root>/<output> and optionally opens it in
// a local browser. The document is immutable afterwards.
func (r *Report) Save() (string, error) {
	if r.doc == nil {
		return "", errors.New(errors.ErrCodeInternal, "Save before Generate")
	}

	out := filepath.Join(r.dataPath, r.opts.Output)
	if err := os.WriteFile(out, r.doc.Bytes(time.Now()), 0644); err != nil {
		return "", errors.Wrap(errors.ErrCodeInvalidConfig, err, "write report %s", out)
	}
	r.logger.Info("report saved", "path", out, "toc_rows", html.CountRows(r.doc.TOC()))

	if r.opts.OpenBrowser {
		if err := openBrowser(out); err != nil {
			r.logger.Warn("open browser", "err", err)
		}
	}
	return out, nil
}

// openBrowser opens path with the platform's default handler.
func openBrowser(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	url := "file://" + abs

	switch runtime.GOOS {
	case "darwin":
		return exec.Command("open", url).Start()
	case "windows":
		return exec.Command("rundll32", "url.dll,FileProtocolHandler", url).Start()
	default:
		return exec.Command("xdg-open", url).Start()
	}
}

// fileFingerprint keys cached renders for one source file: path plus size and
// modification time, so edits invalidate stale images.
func fileFingerprint(path string) string {
	st, err := os.Stat(path)
	if err != nil {
		return cache.Hash([]byte(path))
	}
	return cache.Hash([]byte(fmt.Sprintf("%s|%d|%d", path, st.Size(), st.ModTime().UnixNano())))
}
