// Package render: JSON renderer.
// Emits a conversion report: what the converter did to the page, the line
// index it generated, the anchors it found, and the extracted source.
package render

import (
	"encoding/json"
	"fmt"

	"github.com/gaurav-prasanna/jxrprism/core"
)

// Report is the JSON output for a single page.
type Report struct {
	Metadata core.PageMetadata `json:"metadata"`
	Status   string            `json:"status"`
	Reason   string            `json:"reason,omitempty"`
	Lines    int               `json:"lines"`
	Numbered bool              `json:"numbered"`
	Index    []core.LineEntry  `json:"line_index,omitempty"`
	Anchors  []core.Anchor     `json:"original_anchors,omitempty"`
	Source   string            `json:"source"`
}

// JSONRenderer produces the conversion report.
type JSONRenderer struct{}

// NewJSONRenderer creates a JSONRenderer.
func NewJSONRenderer() *JSONRenderer {
	return &JSONRenderer{}
}

// Render builds the report for page.
func (r *JSONRenderer) Render(page *core.Page) ([]byte, error) {
	res := page.Result
	report := Report{
		Metadata: page.Meta,
		Status:   res.Status.String(),
		Lines:    core.CountLines(res.Source),
		Anchors:  res.Anchors,
		Source:   res.Source,
	}
	if res.Reason != nil {
		report.Reason = res.Reason.Error()
	}
	if res.Block != nil {
		report.Numbered = res.Block.Numbered()
		report.Index = res.Block.Index
	}

	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling JSON: %w", err)
	}
	return data, nil
}

// Extension returns the file extension for JSON output.
func (r *JSONRenderer) Extension() string {
	return ".json"
}
