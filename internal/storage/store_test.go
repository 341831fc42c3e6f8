package storage

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/rodfield/internal/field"
	"github.com/san-kum/rodfield/internal/layout"
)

func testRun(t *testing.T) Run {
	t.Helper()
	p := field.DefaultParameters()
	res, err := field.Compute(p)
	if err != nil {
		t.Fatal(err)
	}
	profile, err := field.Profile(p, 0.25, 3, 5)
	if err != nil {
		t.Fatal(err)
	}
	return Run{
		Params:   p,
		Result:   res,
		Viewport: layout.Viewport{Width: 960, Height: 540},
		Lines:    12,
		Profile:  profile,
		Diagram:  []byte("<svg></svg>"),
	}
}

func TestStoreSaveLoad(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	run := testRun(t)
	runID, err := st.Save(run)
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if runID == "" {
		t.Error("expected non-empty run id")
	}

	meta, err := st.Load(runID)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if meta.ID != runID {
		t.Errorf("expected id %s, got %s", runID, meta.ID)
	}
	if meta.Magnitude != run.Result.Magnitude {
		t.Errorf("expected magnitude %g, got %g", run.Result.Magnitude, meta.Magnitude)
	}
	if meta.FieldLines != 12 {
		t.Errorf("expected 12 field lines, got %d", meta.FieldLines)
	}

	p, err := meta.Params()
	if err != nil {
		t.Fatal(err)
	}
	if p != run.Params {
		t.Errorf("expected params %v, got %v", run.Params, p)
	}

	samples, err := st.LoadProfile(runID)
	if err != nil {
		t.Fatalf("load profile failed: %v", err)
	}
	if len(samples) != len(run.Profile) {
		t.Fatalf("expected %d samples, got %d", len(run.Profile), len(samples))
	}
	for i := range samples {
		if samples[i] != run.Profile[i] {
			t.Errorf("sample %d: expected %+v, got %+v", i, run.Profile[i], samples[i])
		}
	}

	path, err := st.DiagramPath(runID)
	if err != nil {
		t.Fatal(err)
	}
	svg, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("diagram missing: %v", err)
	}
	if string(svg) != "<svg></svg>" {
		t.Errorf("unexpected diagram %q", svg)
	}
}

func TestStoreSaveWithoutProfile(t *testing.T) {
	st := New(t.TempDir())
	run := testRun(t)
	run.Profile = nil
	run.Diagram = nil

	runID, err := st.Save(run)
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if _, err := st.LoadProfile(runID); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected missing profile, got %v", err)
	}
}

func TestStoreList(t *testing.T) {
	tmpDir := t.TempDir()
	st := New(tmpDir)

	runs, err := st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("expected 0 runs, got %d", len(runs))
	}

	for range 2 {
		if _, err := st.Save(testRun(t)); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.Mkdir(filepath.Join(tmpDir, "junk"), 0755); err != nil {
		t.Fatal(err)
	}

	runs, err = st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("expected 2 runs, got %d", len(runs))
	}
	if runs[0].Timestamp.Before(runs[1].Timestamp) {
		t.Error("expected newest run first")
	}
}

func TestStoreLoadInvalidID(t *testing.T) {
	st := New(t.TempDir())
	for _, id := range []string{"", "../etc", "not-a-uuid"} {
		if _, err := st.Load(id); !errors.Is(err, ErrInvalidID) {
			t.Errorf("Load(%q): expected ErrInvalidID, got %v", id, err)
		}
	}
}

func TestStoreListMissingDir(t *testing.T) {
	st := New(filepath.Join(t.TempDir(), "missing"))
	runs, err := st.List()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("expected 0 runs, got %d", len(runs))
	}
}
