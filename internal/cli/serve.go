package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/spf13/cobra"

	"neuroreport/pkg/render/html"
	"neuroreport/pkg/report"
	"neuroreport/pkg/workdir"
)

// serveCommand creates the serve command: generate the report into a scratch
// directory and serve it over HTTP instead of writing into the data
// directory.
func (c *CLI) serveCommand() *cobra.Command {
	var opts generateOpts
	var addr string

	cmd := &cobra.Command{
		Use:   "serve <data-dir>",
		Short: "Generate the report and serve it over HTTP",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), args[0], addr, &opts)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "127.0.0.1:8118", "listen address")
	cmd.Flags().StringVar(&opts.config, "config", "", "TOML config file (flags override)")
	cmd.Flags().StringVar(&opts.info, "info", "", "session info file")
	cmd.Flags().StringVar(&opts.subjectsDir, "subjects-dir", "", "anatomical subjects directory")
	cmd.Flags().StringVar(&opts.subject, "subject", "", "subject name under subjects-dir")
	cmd.Flags().StringVar(&opts.title, "title", "", "report title")
	cmd.Flags().BoolVar(&opts.interactive, "interactive", false, "render event sections as interactive widgets")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the fragment-image cache")
	cmd.Flags().StringVar(&opts.redisAddr, "redis", "", "redis address for a shared fragment cache")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, root, addr string, o *generateOpts) error {
	ropts, err := o.reportOptions()
	if err != nil {
		return err
	}

	store, err := c.newCache(ctx, o.noCache, o.redisAddr)
	if err != nil {
		return err
	}
	defer store.Close()

	logger := loggerFromContext(ctx)
	rep := report.New(ropts, defaultReaders(), nil, store, logger)

	prog := newProgress(logger)
	if err := rep.Generate(ctx, root); err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Rendered %d sections", html.CountRows(rep.Document().TOC())))

	scratch, err := workdir.New()
	if err != nil {
		return err
	}
	defer scratch.Close()

	page := scratch.File("report.html")
	if err := os.WriteFile(page, rep.Document().Bytes(time.Now()), 0644); err != nil {
		return err
	}

	r := chi.NewRouter()
	r.Get("/", func(w http.ResponseWriter, req *http.Request) {
		http.Redirect(w, req, "/report.html", http.StatusFound)
	})
	r.Get("/report.html", func(w http.ResponseWriter, req *http.Request) {
		http.ServeFile(w, req, page)
	})
	r.Get("/healthz", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
		fmt.Fprintln(w, "ok")
	})

	srv := &http.Server{Addr: addr, Handler: r}
	printInfo("Serving report at http://%s/report.html", addr)

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()

	select {
	case <-ctx.Done():
		shutCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
