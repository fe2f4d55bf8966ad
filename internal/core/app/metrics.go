package app

import (
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"time"

	"url-intel/internal/core/pipeline"
)

// runMetrics acumula los tiempos por fase de una ejecución.
type runMetrics struct {
	corpusLines int
	read        time.Duration
	analyze     time.Duration
	write       time.Duration
}

// writeRunMetrics vuelca metrics.json en el directorio de salida. El fichero
// se escribe completo en un .tmp y se renombra para no dejar JSON truncado.
func writeRunMetrics(outDir string, snap *pipeline.Snapshot, metrics runMetrics) error {
	if snap == nil {
		return nil
	}

	type listEntry struct {
		Name  string `json:"name"`
		Count int    `json:"count"`
	}

	type report struct {
		GeneratedAt    time.Time   `json:"generated_at"`
		CorpusLines    int         `json:"corpus_lines"`
		Processed      int         `json:"processed"`
		Skipped        int         `json:"skipped"`
		ReadSeconds    float64     `json:"read_seconds"`
		AnalyzeSeconds float64     `json:"analyze_seconds"`
		WriteSeconds   float64     `json:"write_seconds"`
		Domains        int         `json:"domains"`
		CMS            []string    `json:"cms,omitempty"`
		Lists          []listEntry `json:"lists"`
	}

	lists := []listEntry{
		{Name: "dirs", Count: len(snap.Directories)},
		{Name: "files", Count: len(snap.Files)},
		{Name: "params", Count: len(snap.Params)},
	}
	for _, cat := range categoryNames(snap.Categories) {
		lists = append(lists, listEntry{Name: cat, Count: len(snap.Categories[cat])})
	}

	data := report{
		GeneratedAt:    time.Now().UTC(),
		CorpusLines:    metrics.corpusLines,
		Processed:      snap.Processed,
		Skipped:        snap.Skipped,
		ReadSeconds:    secondsWithMillis(metrics.read),
		AnalyzeSeconds: secondsWithMillis(metrics.analyze),
		WriteSeconds:   secondsWithMillis(metrics.write),
		Domains:        len(snap.Domains),
		CMS:            snap.CMS,
		Lists:          lists,
	}
	return writeMetricsFile(outDir, data)
}

func secondsWithMillis(d time.Duration) float64 {
	if d <= 0 {
		return 0
	}
	return math.Round(d.Seconds()*1000) / 1000
}

func writeMetricsFile(outDir string, payload any) error {
	metricsPath := filepath.Join(outDir, "metrics.json")
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return err
	}
	tmpPath := metricsPath + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmpPath, metricsPath)
}
