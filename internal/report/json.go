package report

import (
	"encoding/json"
	"io"

	"github.com/CrazyVinc/web-scraper/internal/stats"
)

type jsonAnomaly struct {
	Link    string `json:"link"`
	FoundOn string `json:"found_on"`
}

type jsonSummary struct {
	ElapsedMs int64         `json:"elapsed_ms"`
	MaxDepth  int           `json:"max_depth"`
	Visited   int           `json:"visited"`
	Succeeded int           `json:"succeeded"`
	Failed    int           `json:"failed"`
	Anomalies []jsonAnomaly `json:"anomalies"`
}

// JSONWriter emits the summary as one indented JSON object.
type JSONWriter struct {
	output io.Writer
}

func NewJSONWriter(output io.Writer) *JSONWriter {
	return &JSONWriter{output: output}
}

func (w *JSONWriter) Write(summary stats.Stats) error {
	anomalies := make([]jsonAnomaly, 0, summary.AnomalyCount())
	for _, a := range summary.Anomalies {
		anomalies = append(anomalies, jsonAnomaly{Link: a.Link, FoundOn: a.FoundOn})
	}

	encoder := json.NewEncoder(w.output)
	encoder.SetIndent("", "  ")
	return encoder.Encode(jsonSummary{
		ElapsedMs: summary.ElapsedMs(),
		MaxDepth:  summary.MaxDepth,
		Visited:   summary.VisitedCount,
		Succeeded: summary.SucceededCount,
		Failed:    summary.FailedCount,
		Anomalies: anomalies,
	})
}
