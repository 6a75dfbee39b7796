package report

// Result is the typed outcome of one section builder call. Errors travel
// separately; Skipped marks the expected no-fragment cases (e.g. a trans
// section whose plotting backend produced only a 2-D fallback) so they are
// never confused with failures.
type Result int

const (
	// ResultRendered means the builder appended at least one fragment.
	ResultRendered Result = iota

	// ResultSkipped means the builder intentionally produced no fragment.
	ResultSkipped
)

func (r Result) String() string {
	if r == ResultSkipped {
		return "skipped"
	}
	return "rendered"
}
