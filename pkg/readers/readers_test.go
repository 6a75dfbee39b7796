package readers

import (
	"testing"

	"neuroreport/pkg/errors"
)

type stubRaw struct{ rec *Recording }

func (s *stubRaw) ReadRaw(path string) (*Recording, error) { return s.rec, nil }

func TestSetNilSlotReportsReaderFailure(t *testing.T) {
	var s Set

	if _, err := s.ReadEvents("sample-eve.fif"); !errors.Is(err, errors.ErrCodeReaderFailure) {
		t.Errorf("ReadEvents() error = %v, want READER_FAILURE", err)
	}
	if _, err := s.ReadCovariance("sample-cov.fif"); !errors.Is(err, errors.ErrCodeReaderFailure) {
		t.Errorf("ReadCovariance() error = %v, want READER_FAILURE", err)
	}
	if _, err := s.ReadInfo("info_raw.fif"); !errors.Is(err, errors.ErrCodeReaderFailure) {
		t.Errorf("ReadInfo() error = %v, want READER_FAILURE", err)
	}
}

func TestSetDelegates(t *testing.T) {
	rec := &Recording{Summary: "raw recording, 60 channels"}
	s := Set{Raw: &stubRaw{rec: rec}}

	got, err := s.ReadRaw("sample_raw.fif")
	if err != nil {
		t.Fatalf("ReadRaw() error: %v", err)
	}
	if got != rec {
		t.Error("ReadRaw() did not delegate to the registered reader")
	}
}

func TestEventTime(t *testing.T) {
	tests := []struct {
		name string
		ev   Event
		sf   float64
		want float64
	}{
		{"normal", Event{Sample: 600, Code: 1}, 600, 1.0},
		{"zero rate", Event{Sample: 600, Code: 1}, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.ev.Time(tt.sf); got != tt.want {
				t.Errorf("Time() = %v, want %v", got, tt.want)
			}
		})
	}
}
