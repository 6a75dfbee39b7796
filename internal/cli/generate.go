package cli

import (
	"context"
	"fmt"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"neuroreport/pkg/render/html"
	"neuroreport/pkg/report"
)

// generateOpts holds the command-line flags for the generate command.
type generateOpts struct {
	config      string // TOML config file, flags override its values
	info        string // session info file path
	subjectsDir string // anatomical subjects directory
	subject     string // subject name under subjectsDir
	title       string // report title
	output      string // report filename under the data directory
	interactive bool   // render event sections as interactive widgets
	open        bool   // open the saved report in a browser
	noCache     bool   // disable the fragment-image cache
	redisAddr   string // redis address for a shared cache
}

// reportOptions merges the config file (if any) with the flags; flags win.
func (o *generateOpts) reportOptions() (report.Options, error) {
	var opts report.Options
	if o.config != "" {
		if _, err := toml.DecodeFile(o.config, &opts); err != nil {
			return opts, fmt.Errorf("load config %s: %w", o.config, err)
		}
	}
	if o.info != "" {
		opts.InfoPath = o.info
	}
	if o.subjectsDir != "" {
		opts.SubjectsDir = o.subjectsDir
	}
	if o.subject != "" {
		opts.Subject = o.subject
	}
	if o.title != "" {
		opts.Title = o.title
	}
	if o.output != "" {
		opts.Output = o.output
	}
	if o.interactive {
		opts.Interactive = true
	}
	if o.open {
		opts.OpenBrowser = true
	}
	return opts, nil
}

// generateCommand creates the generate command.
func (c *CLI) generateCommand() *cobra.Command {
	var opts generateOpts

	cmd := &cobra.Command{
		Use:   "generate <data-dir>",
		Short: "Scan a data directory and write the HTML report",
		Long: `Scan a data directory, classify every artifact by its filename, and write
a single self-contained HTML report next to the data.

Artifact kinds whose file format has no registered reader are logged and
skipped; the report covers everything the available readers can decode.

Examples:
  neuroreport generate ./MEG/sample --info sample_raw.fif
  neuroreport generate ./MEG/sample --config report.toml --open`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runGenerate(cmd.Context(), args[0], &opts)
		},
	}

	cmd.Flags().StringVar(&opts.config, "config", "", "TOML config file (flags override)")
	cmd.Flags().StringVar(&opts.info, "info", "", "session info file")
	cmd.Flags().StringVar(&opts.subjectsDir, "subjects-dir", "", "anatomical subjects directory")
	cmd.Flags().StringVar(&opts.subject, "subject", "", "subject name under subjects-dir")
	cmd.Flags().StringVar(&opts.title, "title", "", "report title")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "report filename (default report.html)")
	cmd.Flags().BoolVar(&opts.interactive, "interactive", false, "render event sections as interactive widgets")
	cmd.Flags().BoolVar(&opts.open, "open", false, "open the saved report in a browser")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the fragment-image cache")
	cmd.Flags().StringVar(&opts.redisAddr, "redis", "", "redis address for a shared fragment cache")

	return cmd
}

// runGenerate drives one report run end to end.
func (c *CLI) runGenerate(ctx context.Context, root string, o *generateOpts) error {
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
	sp := newSpinnerWithContext(ctx, "rendering artifacts")
	sp.Start()
	err = rep.Generate(ctx, root)
	sp.Stop()
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Rendered %d sections", html.CountRows(rep.Document().TOC())))

	out, err := rep.Save()
	if err != nil {
		return err
	}
	printSuccess("Report written")
	printFile(out)
	return nil
}
