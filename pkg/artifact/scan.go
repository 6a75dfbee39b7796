package artifact

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Scan walks root depth-first and returns the classified artifact files, in
// visit order. Recording files (*.fif) are collected at any depth; files with
// no recognized suffix are kept only when they sit directly in root, so junk
// deep inside a data tree does not flood the report with custom entries.
//
// If subjectsDir and subject are both set, the anatomical volume
// <subjectsDir>/<subject>/mri/T1.mgz is appended when present.
func Scan(root, subjectsDir, subject string) ([]File, error) {
	var files []File

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		name := d.Name()
		switch {
		case strings.HasSuffix(name, ".fif"):
			files = append(files, File{Path: path, Kind: Classify(name)})
		case filepath.Dir(path) == filepath.Clean(root):
			files = append(files, File{Path: path, Kind: Classify(name)})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if subjectsDir != "" && subject != "" {
		mri := filepath.Join(subjectsDir, subject, "mri", "T1.mgz")
		if _, err := os.Stat(mri); err == nil {
			files = append(files, File{Path: mri, Kind: KindImage})
		}
	}

	return files, nil
}
