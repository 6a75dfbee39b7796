// Package readers defines the collaborator interfaces through which the
// report engine consumes scientific file formats.
//
// The engine never parses recording files itself; it calls a reader for the
// artifact kind at hand and works only with the returned shapes. Callers
// provide implementations through a Set. A Set slot left nil surfaces as a
// per-artifact reader failure, which the scan boundary logs and skips, so a
// partially populated Set still produces a report covering what it can read.
package readers

import (
	"gonum.org/v1/gonum/mat"

	"neuroreport/pkg/errors"
	"neuroreport/pkg/volume"
)

// Info carries the session metadata shared across sections. Only
// presentation-relevant fields are modeled.
type Info struct {
	SampleRate  float64
	ChannelCnt  int
	Description string
}

// Recording is the presentation summary of a continuous recording.
type Recording struct {
	Summary string // human-readable description of the recording
	Info    Info
}

// Event is one marker: the sample it occurred at and its integer code.
type Event struct {
	Sample int
	Code   int
}

// Time returns the event time in seconds for the given sample rate.
func (e Event) Time(sampleRate float64) float64 {
	if sampleRate <= 0 {
		return 0
	}
	return float64(e.Sample) / sampleRate
}

// Condition is one named averaged response inside an evoked file.
type Condition struct {
	Name  string
	NAve  int       // number of trials averaged
	Times []float64 // sample times in seconds
	Data  *mat.Dense // channels x samples
}

// ForwardSolution is the presentation summary of a forward operator.
type ForwardSolution struct {
	Summary  string
	Sources  int
	Channels int
}

// EpochsSummary describes segmented trial data, reduced to what the drop-log
// diagnostic needs.
type EpochsSummary struct {
	Total      int            // trials attempted
	Kept       int            // trials retained
	DropCounts map[string]int // rejection reason -> count
}

// Covariance is a square noise-covariance matrix with channel names.
type Covariance struct {
	Names []string
	Data  *mat.Dense
}

// Reader interfaces, one per artifact kind. Implementations block on file
// I/O; none of them are expected to be safe for concurrent use.
type (
	RawReader        interface{ ReadRaw(path string) (*Recording, error) }
	EventReader      interface{ ReadEvents(path string) ([]Event, error) }
	ForwardReader    interface{ ReadForward(path string) (*ForwardSolution, error) }
	EpochsReader     interface{ ReadEpochs(path string) (*EpochsSummary, error) }
	CovarianceReader interface{ ReadCovariance(path string) (*Covariance, error) }
	InfoReader       interface{ ReadInfo(path string) (*Info, error) }

	// EvokedReader returns the named conditions of an averaged-response
	// file, baseline-corrected over [start, end) seconds.
	EvokedReader interface {
		ReadEvoked(path string, baselineStart, baselineEnd float64) ([]Condition, error)
	}

	// VolumeReader loads a volumetric anatomical image.
	VolumeReader interface{ ReadVolume(path string) (*volume.Volume, error) }
)

// Set bundles the readers a report run has available.
type Set struct {
	Raw        RawReader
	Events     EventReader
	Evoked     EvokedReader
	Forward    ForwardReader
	Epochs     EpochsReader
	Covariance CovarianceReader
	Info       InfoReader
	Volume     VolumeReader
}

// errNoReader builds the failure reported when a Set slot is nil.
func errNoReader(kind, path string) error {
	return errors.New(errors.ErrCodeReaderFailure, "no %s reader registered for %s", kind, path)
}

// The ReadX helpers guard against nil slots so section builders can call the
// Set directly.

func (s *Set) ReadRaw(path string) (*Recording, error) {
	if s.Raw == nil {
		return nil, errNoReader("raw", path)
	}
	return s.Raw.ReadRaw(path)
}

func (s *Set) ReadEvents(path string) ([]Event, error) {
	if s.Events == nil {
		return nil, errNoReader("events", path)
	}
	return s.Events.ReadEvents(path)
}

func (s *Set) ReadEvoked(path string, baselineStart, baselineEnd float64) ([]Condition, error) {
	if s.Evoked == nil {
		return nil, errNoReader("evoked", path)
	}
	return s.Evoked.ReadEvoked(path, baselineStart, baselineEnd)
}

func (s *Set) ReadForward(path string) (*ForwardSolution, error) {
	if s.Forward == nil {
		return nil, errNoReader("forward", path)
	}
	return s.Forward.ReadForward(path)
}

func (s *Set) ReadEpochs(path string) (*EpochsSummary, error) {
	if s.Epochs == nil {
		return nil, errNoReader("epochs", path)
	}
	return s.Epochs.ReadEpochs(path)
}

func (s *Set) ReadCovariance(path string) (*Covariance, error) {
	if s.Covariance == nil {
		return nil, errNoReader("covariance", path)
	}
	return s.Covariance.ReadCovariance(path)
}

func (s *Set) ReadInfo(path string) (*Info, error) {
	if s.Info == nil {
		return nil, errNoReader("info", path)
	}
	return s.Info.ReadInfo(path)
}

func (s *Set) ReadVolume(path string) (*volume.Volume, error) {
	if s.Volume == nil {
		return nil, errNoReader("volume", path)
	}
	return s.Volume.ReadVolume(path)
}
