package storage

import (
	"encoding/json"
	"io"

	"github.com/san-kum/clothsim/internal/cloth"
	"github.com/san-kum/clothsim/internal/sim"
)

type ExportData struct {
	ID        string             `json:"id"`
	Dt        float64            `json:"dt"`
	Duration  float64            `json:"duration"`
	Anchors   string             `json:"anchors"`
	Steps     int                `json:"steps"`
	Times     []float64          `json:"times"`
	Frames    [][]cloth.Vec3     `json:"frames"`
	Physics   cloth.Config       `json:"physics"`
	Metrics   map[string]float64 `json:"metrics"`
}

// ExportJSON writes a full run (metadata plus every frame) to w.
func ExportJSON(w io.Writer, meta *RunMetadata, result *sim.Result) error {
	data := ExportData{
		ID:       meta.ID,
		Dt:       meta.Dt,
		Duration: meta.Duration,
		Anchors:  meta.Anchors,
		Steps:    len(result.Times),
		Times:    result.Times,
		Frames:   result.Frames,
		Physics:  meta.Physics,
		Metrics:  result.Metrics,
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}
