package report

import (
	"fmt"
	"sort"
	"strings"

	"github.com/fatih/color"

	"chromalint/internal/classify"
	"chromalint/internal/models"
)

// functionRef pairs a function with its file for cross-file ranking.
type functionRef struct {
	file string
	fn   models.FunctionMetrics
}

const worstFunctionLimit = 10

// generateConsole creates a colorized console report
func (g *Generator) generateConsole(batch *models.BatchResult) string {
	var report strings.Builder

	useColors := g.cfg.Output.Colors
	verbose := g.cfg.Output.Verbose

	if useColors {
		report.WriteString(color.CyanString("🔮 Chromalint Analysis Report\n"))
		report.WriteString(color.WhiteString("═══════════════════════════════════════\n\n"))
	} else {
		report.WriteString("Chromalint Analysis Report\n")
		report.WriteString("=======================================\n\n")
	}

	g.writeSummary(&report, batch, useColors)
	g.writeHealthScore(&report, batch.Summary.HealthScore, useColors)

	// Analysis errors are reported distinctly from complexity findings and
	// are never folded into the metrics.
	if len(batch.Failures) > 0 {
		g.writeFailures(&report, batch, useColors)
	}

	g.writeBandCounts(&report, batch, useColors)
	g.writeWorstFunctions(&report, batch, useColors)

	if verbose {
		g.writeDiagnostics(&report, batch, useColors)
	}

	if useColors {
		report.WriteString(color.WhiteString("Analysis completed in %s\n", batch.Summary.Duration))
	} else {
		report.WriteString(fmt.Sprintf("Analysis completed in %s\n", batch.Summary.Duration))
	}

	return report.String()
}

func (g *Generator) writeSummary(report *strings.Builder, batch *models.BatchResult, useColors bool) {
	if useColors {
		report.WriteString(color.WhiteString("📊 Summary:\n"))
	} else {
		report.WriteString("Summary:\n")
	}
	s := batch.Summary
	report.WriteString(fmt.Sprintf("   Files analyzed: %d\n", s.AnalyzedFiles))
	report.WriteString(fmt.Sprintf("   Files failed: %d\n", s.FailedFiles))
	report.WriteString(fmt.Sprintf("   Functions found: %d\n", s.TotalFunctions))
	report.WriteString(fmt.Sprintf("   Average complexity: %.2f\n", s.AverageComplexity))
	if s.FilesOverLimit > 0 {
		report.WriteString(fmt.Sprintf("   Files over complexity limit: %d\n", s.FilesOverLimit))
	}
	report.WriteString("\n")
}

func (g *Generator) writeHealthScore(report *strings.Builder, score float64, useColors bool) {
	var scoreColor func(a ...interface{}) string
	var emoji string

	st := g.cfg.Health.ScoreThresholds
	switch {
	case score >= st.Excellent:
		scoreColor = color.New(color.FgGreen).SprintFunc()
		emoji = "🌟"
	case score >= st.Good:
		scoreColor = color.New(color.FgYellow).SprintFunc()
		emoji = "⚡"
	case score >= st.Fair:
		scoreColor = color.New(color.FgHiYellow).SprintFunc()
		emoji = "⚠️"
	default:
		scoreColor = color.New(color.FgRed).SprintFunc()
		emoji = "🚨"
	}

	if useColors {
		report.WriteString(fmt.Sprintf("%s Health Score: %s/100\n\n", emoji, scoreColor(fmt.Sprintf("%.0f", score))))
	} else {
		report.WriteString(fmt.Sprintf("Health Score: %.0f/100\n\n", score))
	}
}

func (g *Generator) writeFailures(report *strings.Builder, batch *models.BatchResult, useColors bool) {
	if useColors {
		report.WriteString(color.RedString("❌ Analysis Errors (%d):\n", len(batch.Failures)))
	} else {
		report.WriteString(fmt.Sprintf("Analysis Errors (%d):\n", len(batch.Failures)))
	}
	for _, f := range batch.Failures {
		report.WriteString(fmt.Sprintf("   %s: %s\n", f.File, f.Error))
	}
	report.WriteString("\n")
}

func (g *Generator) writeBandCounts(report *strings.Builder, batch *models.BatchResult, useColors bool) {
	counts := make(map[classify.Band]int)
	for _, res := range batch.Results {
		for _, fn := range res.Functions {
			counts[g.cfg.Bands.Classify(fn.CyclomaticComplexity)]++
		}
	}

	if useColors {
		report.WriteString(color.WhiteString("📋 Functions by Band:\n"))
	} else {
		report.WriteString("Functions by Band:\n")
	}

	bands := []classify.Band{classify.BandCritical, classify.BandHigh, classify.BandMedium, classify.BandLow}
	for _, band := range bands {
		count := counts[band]
		if count == 0 {
			continue
		}
		if useColors {
			emoji, bandColor := bandDisplay(band)
			report.WriteString(fmt.Sprintf("   %s %s: %s\n", emoji, band, bandColor(fmt.Sprintf("%d", count))))
		} else {
			report.WriteString(fmt.Sprintf("   %s: %d\n", band, count))
		}
	}
	report.WriteString("\n")
}

func (g *Generator) writeWorstFunctions(report *strings.Builder, batch *models.BatchResult, useColors bool) {
	var refs []functionRef
	for _, res := range batch.Results {
		for _, fn := range res.Functions {
			refs = append(refs, functionRef{file: res.File, fn: fn})
		}
	}
	if len(refs) == 0 {
		if useColors {
			report.WriteString(color.GreenString("🎉 No functions found, nothing to haunt!\n\n"))
		} else {
			report.WriteString("No functions found.\n\n")
		}
		return
	}

	sort.SliceStable(refs, func(i, j int) bool {
		return refs[i].fn.CyclomaticComplexity > refs[j].fn.CyclomaticComplexity
	})
	if len(refs) > worstFunctionLimit {
		refs = refs[:worstFunctionLimit]
	}

	if useColors {
		report.WriteString(color.WhiteString("🔍 Most Complex Functions:\n"))
	} else {
		report.WriteString("Most Complex Functions:\n")
	}
	report.WriteString(strings.Repeat("─", 50) + "\n")

	for _, ref := range refs {
		band := g.cfg.Bands.Classify(ref.fn.CyclomaticComplexity)
		if useColors {
			emoji, bandColor := bandDisplay(band)
			report.WriteString(fmt.Sprintf("   %s %s %s:%d complexity %s (depth %d)\n",
				emoji, bandColor(ref.fn.Name), ref.file, ref.fn.StartLine,
				bandColor(fmt.Sprintf("%d", ref.fn.CyclomaticComplexity)), ref.fn.NestingDepth))
		} else {
			report.WriteString(fmt.Sprintf("   [%s] %s %s:%d complexity %d (depth %d)\n",
				band, ref.fn.Name, ref.file, ref.fn.StartLine,
				ref.fn.CyclomaticComplexity, ref.fn.NestingDepth))
		}
	}
	report.WriteString("\n")
}

func (g *Generator) writeDiagnostics(report *strings.Builder, batch *models.BatchResult, useColors bool) {
	wrote := false
	for _, res := range batch.Results {
		for _, d := range res.Diagnostics {
			if !wrote {
				if useColors {
					report.WriteString(color.WhiteString("🩺 Diagnostics:\n"))
				} else {
					report.WriteString("Diagnostics:\n")
				}
				wrote = true
			}
			if d.Line > 0 {
				report.WriteString(fmt.Sprintf("   %s:%d [%s] %s\n", res.File, d.Line, d.Kind, d.Message))
			} else {
				report.WriteString(fmt.Sprintf("   %s [%s] %s\n", res.File, d.Kind, d.Message))
			}
		}
	}
	if wrote {
		report.WriteString("\n")
	}
}

// bandDisplay returns emoji and color function for a complexity band
func bandDisplay(band classify.Band) (string, func(a ...interface{}) string) {
	switch band {
	case classify.BandCritical:
		return "🚨", color.New(color.FgRed, color.Bold).SprintFunc()
	case classify.BandHigh:
		return "❌", color.New(color.FgRed).SprintFunc()
	case classify.BandMedium:
		return "⚠️", color.New(color.FgYellow).SprintFunc()
	case classify.BandLow:
		return "ℹ️", color.New(color.FgGreen).SprintFunc()
	default:
		return "❓", color.New(color.FgWhite).SprintFunc()
	}
}
