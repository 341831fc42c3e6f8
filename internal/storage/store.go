package storage

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/san-kum/rodfield/internal/field"
	"github.com/san-kum/rodfield/internal/layout"
)

const (
	metadataFile = "metadata.json"
	profileFile  = "profile.csv"
	diagramFile  = "diagram.svg"
)

var ErrInvalidID = errors.New("storage: invalid run id")

// Store keeps computed runs under baseDir, one directory per run.
type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

// RunMetadata describes an archived run. Lengths are meters and the
// density is C/m regardless of the unit the run was displayed in.
type RunMetadata struct {
	ID            string    `json:"id,omitempty"`
	Timestamp     time.Time `json:"timestamp"`
	ChargeDensity float64   `json:"charge_density"`
	Length        float64   `json:"length"`
	Distance      float64   `json:"distance"`
	Unit          string    `json:"unit"`
	Magnitude     float64   `json:"magnitude"`
	KiloNewtons   float64   `json:"kilo_newtons"`
	Width         float64   `json:"width,omitempty"`
	Height        float64   `json:"height,omitempty"`
	FieldLines    int       `json:"field_lines,omitempty"`
}

// Params rebuilds the parameters the run was computed from.
func (m RunMetadata) Params() (field.Parameters, error) {
	u, err := field.ParseUnit(m.Unit)
	if err != nil {
		return field.Parameters{}, err
	}
	return field.Parameters{
		ChargeDensity: m.ChargeDensity,
		Length:        m.Length,
		Distance:      m.Distance,
		Unit:          u,
	}, nil
}

// Run is everything written for one archived computation. Profile and
// Diagram are optional.
type Run struct {
	Params   field.Parameters
	Result   field.Result
	Viewport layout.Viewport
	Lines    int
	Profile  []field.Sample
	Diagram  []byte
}

// NewMetadata describes a run without writing it.
func NewMetadata(id string, run Run) RunMetadata {
	return RunMetadata{
		ID:            id,
		Timestamp:     time.Now(),
		ChargeDensity: run.Params.ChargeDensity,
		Length:        run.Params.Length,
		Distance:      run.Params.Distance,
		Unit:          run.Params.Unit.Suffix(),
		Magnitude:     run.Result.Magnitude,
		KiloNewtons:   run.Result.KiloNewtons(),
		Width:         run.Viewport.Width,
		Height:        run.Viewport.Height,
		FieldLines:    run.Lines,
	}
}

// WriteJSON writes indented metadata to w.
func WriteJSON(w io.Writer, meta RunMetadata) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}

func (s *Store) Save(run Run) (string, error) {
	runID := uuid.NewString()
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	metaFile, err := os.Create(filepath.Join(runDir, metadataFile))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	if err := WriteJSON(metaFile, NewMetadata(runID, run)); err != nil {
		return "", err
	}

	if len(run.Diagram) > 0 {
		if err := os.WriteFile(filepath.Join(runDir, diagramFile), run.Diagram, 0644); err != nil {
			return "", err
		}
	}

	if len(run.Profile) == 0 {
		return runID, nil
	}
	if err := writeProfile(filepath.Join(runDir, profileFile), run.Profile); err != nil {
		return "", err
	}
	return runID, nil
}

func writeProfile(path string, samples []field.Sample) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"distance", "magnitude"}); err != nil {
		return err
	}
	for _, smp := range samples {
		row := []string{
			strconv.FormatFloat(smp.Distance, 'g', -1, 64),
			strconv.FormatFloat(smp.Magnitude, 'g', -1, 64),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// List returns archived runs, newest first. Directories without readable
// metadata are skipped.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}

	sort.Slice(runs, func(i, j int) bool {
		return runs[i].Timestamp.After(runs[j].Timestamp)
	})
	return runs, nil
}

func (s *Store) runDir(runID string) (string, error) {
	if _, err := uuid.Parse(runID); err != nil {
		return "", fmt.Errorf("%w %q", ErrInvalidID, runID)
	}
	return filepath.Join(s.baseDir, runID), nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	dir, err := s.runDir(runID)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(filepath.Join(dir, metadataFile))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	return &meta, nil
}

func (s *Store) LoadProfile(runID string) ([]field.Sample, error) {
	dir, err := s.runDir(runID)
	if err != nil {
		return nil, err
	}
	file, err := os.Open(filepath.Join(dir, profileFile))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	if err != nil {
		return nil, err
	}

	samples := make([]field.Sample, 0, max(len(records)-1, 0))
	for i := 1; i < len(records); i++ {
		record := records[i]
		if len(record) < 2 {
			continue
		}
		d, err := strconv.ParseFloat(record[0], 64)
		if err != nil {
			continue
		}
		e, err := strconv.ParseFloat(record[1], 64)
		if err != nil {
			continue
		}
		samples = append(samples, field.Sample{Distance: d, Magnitude: e})
	}
	return samples, nil
}

// DiagramPath is where the run's SVG lives, if one was saved.
func (s *Store) DiagramPath(runID string) (string, error) {
	dir, err := s.runDir(runID)
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, diagramFile), nil
}
