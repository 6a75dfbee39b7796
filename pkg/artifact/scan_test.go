package artifact

import (
	"os"
	"path/filepath"
	"testing"
)

func touch(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestScanCollectsFifRecursively(t *testing.T) {
	root := t.TempDir()
	touch(t, filepath.Join(root, "run01_raw.fif"))
	touch(t, filepath.Join(root, "sub", "deep", "sample-ave.fif"))

	files, err := Scan(root, "", "")
	if err != nil {
		t.Fatalf("Scan() error: %v", err)
	}
	if len(files) != 2 {
		t.Fatalf("Scan() returned %d files, want 2", len(files))
	}

	kinds := map[Kind]bool{}
	for _, f := range files {
		kinds[f.Kind] = true
	}
	if !kinds[KindRaw] || !kinds[KindEvoked] {
		t.Errorf("Scan() kinds = %v, want raw and evoked", kinds)
	}
}

func TestScanKeepsRootLevelUnknowns(t *testing.T) {
	root := t.TempDir()
	touch(t, filepath.Join(root, "weird_data.bin"))
	touch(t, filepath.Join(root, "sub", "ignored.bin"))

	files, err := Scan(root, "", "")
	if err != nil {
		t.Fatalf("Scan() error: %v", err)
	}
	if len(files) != 1 {
		t.Fatalf("Scan() returned %d files, want 1 (nested junk ignored)", len(files))
	}
	if files[0].Kind != KindUnknown {
		t.Errorf("Scan() kind = %q, want %q", files[0].Kind, KindUnknown)
	}
}

func TestScanAppendsSubjectVolume(t *testing.T) {
	root := t.TempDir()
	subjects := t.TempDir()
	touch(t, filepath.Join(subjects, "sample", "mri", "T1.mgz"))

	files, err := Scan(root, subjects, "sample")
	if err != nil {
		t.Fatalf("Scan() error: %v", err)
	}
	if len(files) != 1 || files[0].Kind != KindImage {
		t.Fatalf("Scan() = %v, want single image entry", files)
	}
}

func TestScanNoSubjectConfigured(t *testing.T) {
	root := t.TempDir()
	subjects := t.TempDir()
	touch(t, filepath.Join(subjects, "sample", "mri", "T1.mgz"))

	// Subjects dir without a subject name: anatomical sections are skipped.
	files, err := Scan(root, subjects, "")
	if err != nil {
		t.Fatalf("Scan() error: %v", err)
	}
	if len(files) != 0 {
		t.Fatalf("Scan() = %v, want no entries", files)
	}
}
