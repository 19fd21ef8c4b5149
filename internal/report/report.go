// Package report renders batch results. Reporters consume analysis results
// and the summary as-is; no metric is ever recomputed here.
package report

import (
	"bytes"
	"encoding/json"
	"fmt"

	"chromalint/internal/config"
	"chromalint/internal/models"
)

// Generator formats a batch result in the configured output format.
type Generator struct {
	cfg *config.Config
}

func NewGenerator(cfg *config.Config) *Generator {
	return &Generator{cfg: cfg}
}

// Generate creates a formatted report from batch results.
func (g *Generator) Generate(batch *models.BatchResult) (string, error) {
	switch g.cfg.Output.Format {
	case "json":
		return g.generateJSON(batch)
	case "html":
		var buf bytes.Buffer
		if err := g.renderHTML(batch, &buf); err != nil {
			return "", fmt.Errorf("failed to render html report: %w", err)
		}
		return buf.String(), nil
	default:
		return g.generateConsole(batch), nil
	}
}

func (g *Generator) generateJSON(batch *models.BatchResult) (string, error) {
	data, err := json.MarshalIndent(batch, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to generate json report: %w", err)
	}
	return string(data), nil
}
