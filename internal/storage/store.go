package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/san-kum/basin/internal/converge"
	"github.com/san-kum/basin/internal/phase"
	"github.com/san-kum/basin/internal/signature"
)

// Store persists finished runs for the reporting commands. Each run gets its
// own directory holding metadata.json, curve.csv, and signature.json. The
// core pipeline itself never touches disk; this layer only consumes its
// outputs.
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
	ID             string             `json:"id"`
	Timestamp      time.Time          `json:"timestamp"`
	Input          float64            `json:"input"`
	Attractors     int                `json:"attractors"`
	Dims           int                `json:"dims"`
	Seed           int64              `json:"seed"`
	MaxSteps       int                `json:"max_steps"`
	Tolerance      float64            `json:"tolerance"`
	Steps          int                `json:"steps"`
	Converged      bool               `json:"converged"`
	FinalAttractor int                `json:"final_attractor"`
	Metrics        map[string]float64 `json:"metrics,omitempty"`
}

type storedSignature struct {
	PathLength       float64   `json:"path_length"`
	Reversals        int       `json:"reversals"`
	StepCount        int       `json:"step_count"`
	MeanVelocity     float64   `json:"mean_velocity"`
	VelocityVariance float64   `json:"velocity_variance"`
	FinalAttractor   int       `json:"final_attractor"`
	DominantSeq      []int     `json:"dominant_seq"`
	Vector           []float64 `json:"vector"`
}

func (s *Store) Save(attractors, dims int, seed int64, cfg phase.Config, curve *converge.Curve, sig signature.Signature) (string, error) {
	runID := fmt.Sprintf("v%g_%d", curve.Origin, time.Now().UnixNano())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:             runID,
		Timestamp:      time.Now(),
		Input:          curve.Origin,
		Attractors:     attractors,
		Dims:           dims,
		Seed:           seed,
		MaxSteps:       cfg.MaxSteps,
		Tolerance:      cfg.Tolerance,
		Steps:          curve.Steps(),
		Converged:      curve.Converged,
		FinalAttractor: curve.FinalAttractor,
		Metrics:        curve.Metrics,
	}

	if err := writeJSON(filepath.Join(runDir, "metadata.json"), meta); err != nil {
		return "", err
	}

	stored := storedSignature{
		PathLength:       sig.PathLength,
		Reversals:        sig.Reversals,
		StepCount:        sig.StepCount,
		MeanVelocity:     sig.MeanVelocity,
		VelocityVariance: sig.VelocityVariance,
		FinalAttractor:   sig.FinalAttractor,
		DominantSeq:      sig.DominantSeq,
		Vector:           sig.Vector(),
	}
	if err := writeJSON(filepath.Join(runDir, "signature.json"), stored); err != nil {
		return "", err
	}

	if err := s.writeCurve(filepath.Join(runDir, "curve.csv"), curve); err != nil {
		return "", err
	}

	return runID, nil
}

func writeJSON(path string, v any) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func (s *Store) writeCurve(path string, curve *converge.Curve) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	w := csv.NewWriter(file)
	defer w.Flush()

	if len(curve.Points) == 0 {
		return nil
	}

	header := []string{"step"}
	for i := range curve.Points[0] {
		header = append(header, fmt.Sprintf("x%d", i))
	}
	header = append(header, "dominant")
	if err := w.Write(header); err != nil {
		return err
	}

	for i, p := range curve.Points {
		row := []string{strconv.Itoa(i)}
		for _, val := range p {
			row = append(row, strconv.FormatFloat(val, 'f', 6, 64))
		}
		dominant := ""
		if i < len(curve.Dominant) {
			dominant = strconv.Itoa(curve.Dominant[i])
		}
		row = append(row, dominant)
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return w.Error()
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
		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
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

func (s *Store) LoadSignature(runID string) (signature.Signature, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "signature.json"))
	if err != nil {
		return signature.Signature{}, err
	}
	var stored storedSignature
	if err := json.Unmarshal(data, &stored); err != nil {
		return signature.Signature{}, err
	}
	return signature.Signature{
		PathLength:       stored.PathLength,
		Reversals:        stored.Reversals,
		StepCount:        stored.StepCount,
		MeanVelocity:     stored.MeanVelocity,
		VelocityVariance: stored.VelocityVariance,
		FinalAttractor:   stored.FinalAttractor,
		DominantSeq:      stored.DominantSeq,
	}, nil
}

// LoadCurve reads back the positions and dominant-attractor indices of a
// stored run.
func (s *Store) LoadCurve(runID string) ([]phase.Point, []int, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, "curve.csv"))
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
		return []phase.Point{}, []int{}, nil
	}

	dims := len(records[0]) - 2
	points := make([]phase.Point, 0, len(records)-1)
	dominant := make([]int, 0, len(records)-1)

	for _, record := range records[1:] {
		if len(record) != dims+2 {
			continue
		}
		p := make(phase.Point, dims)
		for d := 0; d < dims; d++ {
			v, err := strconv.ParseFloat(record[d+1], 64)
			if err != nil {
				return nil, nil, fmt.Errorf("parse curve row: %w", err)
			}
			p[d] = v
		}
		points = append(points, p)

		if record[dims+1] != "" {
			idx, err := strconv.Atoi(record[dims+1])
			if err != nil {
				return nil, nil, fmt.Errorf("parse dominant index: %w", err)
			}
			dominant = append(dominant, idx)
		}
	}
	return points, dominant, nil
}
