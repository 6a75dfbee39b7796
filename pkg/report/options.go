// Package report orchestrates report generation: it scans a data directory,
// classifies the artifacts it finds, drives the per-kind section builders,
// and assembles the final HTML document.
package report

import (
	"fmt"

	"neuroreport/pkg/errors"
)

// DefaultOutput is the report filename written under the scan root.
const DefaultOutput = "report.html"

// Options configures one report run.
type Options struct {
	// InfoPath locates the file carrying the session metadata (sample
	// rate and friends) shared across sections. Required.
	InfoPath string `toml:"info"`

	// SubjectsDir and Subject locate anatomical data. Both must be set for
	// anatomical and BEM sections to render; when either is missing those
	// sections are skipped, which is a configuration choice, not an error.
	SubjectsDir string `toml:"subjects_dir"`
	Subject     string `toml:"subject"`

	// Title of the report. Defaults to a truncated form of the scan root.
	Title string `toml:"title"`

	// Interactive selects widget rendering for event sections.
	Interactive bool `toml:"interactive"`

	// Output is the report filename, written under the scan root.
	Output string `toml:"output"`

	// OpenBrowser opens the saved report in a local browser.
	OpenBrowser bool `toml:"open_browser"`
}

// Validate checks required fields and applies defaults. The scan root is
// needed to derive the default title.
func (o *Options) Validate(root string) error {
	if o.InfoPath == "" {
		return errors.New(errors.ErrCodeInvalidConfig, "session info path is required")
	}
	if o.Title == "" {
		o.Title = defaultTitle(root)
	}
	if o.Output == "" {
		o.Output = DefaultOutput
	}
	return nil
}

// AnatomyConfigured reports whether both anatomical settings are present.
func (o *Options) AnatomyConfigured() bool {
	return o.SubjectsDir != "" && o.Subject != ""
}

// defaultTitle truncates the root path to its last 20 characters.
func defaultTitle(root string) string {
	if len(root) > 20 {
		root = root[len(root)-20:]
	}
	return fmt.Sprintf("Report for ...%s", root)
}
