package batch

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// ManifestEntry represents one frame in the output manifest.
type ManifestEntry struct {
	Index     int     `json:"index"`
	Angle     float64 `json:"angle"`
	AxisAngle float64 `json:"axis_angle"`
	Image     string  `json:"image,omitempty"`
	Fragments int     `json:"fragments"`
	Error     string  `json:"error,omitempty"`
}

// WriteManifest writes the sweep results as JSON to path, creating the
// parent directory.
func WriteManifest(path string, results []Result) error {
	entries := make([]ManifestEntry, len(results))
	for i, r := range results {
		entries[i] = ManifestEntry{
			Index:     r.Index,
			Angle:     r.Pose.Angle,
			AxisAngle: r.Pose.AxisAngle,
			Image:     r.Image,
			Fragments: r.Fragments,
			Error:     r.Error,
		}
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("batch: encode manifest: %w", err)
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("batch: create %s: %w", dir, err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("batch: write manifest: %w", err)
	}
	return nil
}
