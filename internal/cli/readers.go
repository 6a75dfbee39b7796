package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"neuroreport/pkg/readers"
	"neuroreport/pkg/readers/mgz"
)

// defaultReaders bundles the readers the CLI ships with: MGZ volumes and a
// minimal session-info reader. Recording formats (raw, evoked, epochs,
// covariance) are left to embedders that link a decoder; artifacts of those
// kinds are logged and skipped.
func defaultReaders() *readers.Set {
	return &readers.Set{
		Info:   statInfoReader{},
		Volume: mgz.Reader{},
	}
}

// statInfoReader accepts any existing file as session info. It carries no
// decoded metadata, so sections fall back to rate-independent displays.
type statInfoReader struct{}

func (statInfoReader) ReadInfo(path string) (*readers.Info, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("session info: %w", err)
	}
	return &readers.Info{Description: filepath.Base(path)}, nil
}
