// Package storage persists recorded runs: metadata as JSON plus the
// per-frame particle positions as CSV. Recordings are outputs for
// later plotting/export, not resumable simulation state.
package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/san-kum/clothsim/internal/cloth"
	"github.com/san-kum/clothsim/internal/config"
	"github.com/san-kum/clothsim/internal/sim"
)

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID        string             `json:"id"`
	Timestamp time.Time          `json:"timestamp"`
	Dt        float64            `json:"dt"`
	Duration  float64            `json:"duration"`
	Anchors   string             `json:"anchors"`
	Preset    string             `json:"preset,omitempty"`
	Particles int                `json:"particles"`
	Grid      config.GridConfig  `json:"grid"`
	Physics   cloth.Config       `json:"physics"`
	Metrics   map[string]float64 `json:"metrics"`
}

func (s *Store) Save(meta RunMetadata, result *sim.Result) (string, error) {
	runID := fmt.Sprintf("cloth_%d", time.Now().Unix())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta.ID = runID
	meta.Timestamp = time.Now()
	meta.Metrics = result.Metrics
	if len(result.Frames) > 0 {
		meta.Particles = len(result.Frames[0])
	}

	metaFile, err := os.Create(filepath.Join(runDir, "metadata.json"))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(runDir, "frames.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	defer w.Flush()

	if len(result.Frames) == 0 {
		return runID, nil
	}

	header := []string{"time"}
	for i := range result.Frames[0] {
		header = append(header,
			fmt.Sprintf("p%d_x", i), fmt.Sprintf("p%d_y", i), fmt.Sprintf("p%d_z", i))
	}
	if err := w.Write(header); err != nil {
		return "", err
	}

	for i, frame := range result.Frames {
		row := make([]string, 0, 1+len(frame)*3)
		row = append(row, strconv.FormatFloat(result.Times[i], 'f', 6, 64))
		for _, p := range frame {
			row = append(row,
				strconv.FormatFloat(p.X, 'f', 6, 64),
				strconv.FormatFloat(p.Y, 'f', 6, 64),
				strconv.FormatFloat(p.Z, 'f', 6, 64))
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}

	return runID, nil
}

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
		data, err := os.ReadFile(filepath.Join(s.baseDir, entry.Name(), "metadata.json"))
		if err != nil {
			continue
		}
		var meta RunMetadata
		if err := json.Unmarshal(data, &meta); err != nil {
			continue
		}
		runs = append(runs, meta)
	}

	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		return nil, err
	}
	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

// LoadFrames reads a run's recorded positions back into frames of
// Vec3, with the frame times alongside.
func (s *Store) LoadFrames(runID string) ([][]cloth.Vec3, []float64, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, "frames.csv"))
	if err != nil {
		return nil, nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, nil, err
	}
	if len(records) < 2 {
		return [][]cloth.Vec3{}, []float64{}, nil
	}

	times := make([]float64, 0, len(records)-1)
	frames := make([][]cloth.Vec3, 0, len(records)-1)

	for _, record := range records[1:] {
		if len(record) < 4 || (len(record)-1)%3 != 0 {
			continue
		}
		t, err := strconv.ParseFloat(record[0], 64)
		if err != nil {
			continue
		}

		frame := make([]cloth.Vec3, 0, (len(record)-1)/3)
		ok := true
		for j := 1; j+2 < len(record) && ok; j += 3 {
			var p cloth.Vec3
			p.X, err = strconv.ParseFloat(record[j], 64)
			if err != nil {
				ok = false
				break
			}
			p.Y, err = strconv.ParseFloat(record[j+1], 64)
			if err != nil {
				ok = false
				break
			}
			p.Z, err = strconv.ParseFloat(record[j+2], 64)
			if err != nil {
				ok = false
				break
			}
			frame = append(frame, p)
		}
		if !ok {
			continue
		}

		times = append(times, t)
		frames = append(frames, frame)
	}

	return frames, times, nil
}
