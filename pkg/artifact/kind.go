// Package artifact classifies scan files into recording artifact kinds.
//
// Classification is purely name-based: an ordered rule table maps filename
// suffixes to kinds, and the first matching rule wins. The order matters
// because some suffix checks overlap (e.g. "-fwd.fif" and "-fwd.fif.gz"),
// so the table is an explicit, tested contract rather than implicit
// control flow.
package artifact

import (
	"path/filepath"
	"strings"
)

// Kind identifies the type of a recording artifact.
type Kind string

// Artifact kinds recognized by the classifier.
const (
	KindRaw        Kind = "raw"        // continuous recording (raw.fif, sss.fif)
	KindForward    Kind = "forward"    // forward solution (-fwd.fif, -fwd.fif.gz)
	KindEvoked     Kind = "evoked"     // averaged responses (-ave.fif)
	KindEvents     Kind = "events"     // event markers (-eve.fif)
	KindEpochs     Kind = "epochs"     // segmented trials (-epo.fif)
	KindCovariance Kind = "covariance" // noise covariance (-cov.fif)
	KindTrans      Kind = "trans"      // coordinate transform (-trans.fif)
	KindImage      Kind = "image"      // volumetric anatomical image (.mgz)
	KindUnknown    Kind = "unknown"    // no rule matched
)

// CSSClass returns the document class attached to fragments and TOC rows of
// this kind. Unknown artifacts render under the generic "custom" class, and
// volumetric images share the "slices-images" class with BEM sections so one
// navbar button toggles both.
func (k Kind) CSSClass() string {
	switch k {
	case KindImage:
		return "slices-images"
	case KindUnknown:
		return "custom"
	default:
		return string(k)
	}
}

// rule pairs a filename predicate with the kind it classifies.
type rule struct {
	match func(string) bool
	kind  Kind
}

// suffixes returns a predicate matching any of the given name suffixes.
func suffixes(ss ...string) func(string) bool {
	return func(name string) bool {
		for _, s := range ss {
			if strings.HasSuffix(name, s) {
				return true
			}
		}
		return false
	}
}

// rules is the classification cascade, evaluated in order with first match
// winning. The most specific multi-part suffixes come before any fallback.
var rules = []rule{
	{suffixes(".mgz"), KindImage},
	{suffixes("raw.fif", "sss.fif"), KindRaw},
	{suffixes("-fwd.fif", "-fwd.fif.gz"), KindForward},
	{suffixes("-ave.fif"), KindEvoked},
	{suffixes("-eve.fif"), KindEvents},
	{suffixes("-epo.fif"), KindEpochs},
	{suffixes("-cov.fif"), KindCovariance},
	{suffixes("-trans.fif"), KindTrans},
}

// Classify maps a file name (or path) to its artifact kind. Classification is
// total: every input maps to exactly one kind, with KindUnknown as catch-all.
func Classify(path string) Kind {
	name := filepath.Base(path)
	for _, r := range rules {
		if r.match(name) {
			return r.kind
		}
	}
	return KindUnknown
}

// conventionalSuffixes lists the filename endings considered well-formed for
// TOC purposes. Names outside this list are flagged in the table of contents.
// Note sss.fif is deliberately absent: SSS-processed recordings render fine
// but their naming is still flagged.
var conventionalSuffixes = []string{
	"-eve.fif", "-ave.fif", "-cov.fif", "-sol.fif", "-fwd.fif",
	"-inv.fif", "-src.fif", "-trans.fif", "raw.fif", "-epo.fif",
	"T1.mgz",
}

// Conventional reports whether the file name follows the expected naming
// conventions for its kind.
func Conventional(path string) bool {
	name := filepath.Base(path)
	for _, s := range conventionalSuffixes {
		if strings.HasSuffix(name, s) {
			return true
		}
	}
	return false
}

// File is one classified entry from a directory scan.
type File struct {
	Path string
	Kind Kind
}
