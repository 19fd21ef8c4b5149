// Package health turns an analysis result into a labeled 0-100 score.
package health

import (
	"chromalint/internal/config"
	"chromalint/internal/models"
)

// Compose builds the health breakdown for one analyzed file. It is a pure
// function of the result and the configuration: same input, same output,
// nothing cached. A file with no functions carries no complexity, length or
// nesting penalty and scores the ceiling.
func Compose(result *models.AnalysisResult, cfg config.HealthConfig) models.HealthScoreBreakdown {
	b := models.HealthScoreBreakdown{
		Complexity:      complexityScore(result.Metrics.AverageComplexity, cfg.ComplexityKnee),
		Maintainability: maintainabilityScore(result.Metrics.MaintainabilityIndex),
		Length:          lengthScore(result.Functions, cfg.FunctionLineCeiling),
		Nesting:         nestingScore(result.Functions, cfg.NestingCeiling),
	}

	w := cfg.Weights
	b.Overall = clamp(w.Complexity*b.Complexity +
		w.Maintainability*b.Maintainability +
		w.Length*b.Length +
		w.Nesting*b.Nesting)
	return b
}

// complexityScore declines gently up to the knee and steeply past it.
// Average complexity 1 (straight-line code) scores 100.
func complexityScore(avg, knee float64) float64 {
	switch {
	case avg <= 1:
		return 100
	case avg <= knee:
		return clamp(100 - 30*(avg-1)/(knee-1))
	default:
		return clamp(70 - 5*(avg-knee))
	}
}

// maintainabilityScore rescales the clamped 0-171 maintainability index.
func maintainabilityScore(mi float64) float64 {
	return clamp(mi / 171 * 100)
}

// lengthScore penalizes each function by how far it overruns the configured
// line ceiling, averaged over all functions.
func lengthScore(functions []models.FunctionMetrics, ceiling int) float64 {
	if len(functions) == 0 {
		return 100
	}
	total := 0.0
	for _, fn := range functions {
		lines := fn.EndLine - fn.StartLine + 1
		if excess := lines - ceiling; excess > 0 {
			penalty := 100 * float64(excess) / float64(ceiling)
			if penalty > 100 {
				penalty = 100
			}
			total += penalty
		}
	}
	return clamp(100 - total/float64(len(functions)))
}

// nestingScore penalizes depth beyond the configured ceiling, 25 points per
// extra level, averaged over all functions.
func nestingScore(functions []models.FunctionMetrics, ceiling int) float64 {
	if len(functions) == 0 {
		return 100
	}
	total := 0.0
	for _, fn := range functions {
		if excess := fn.NestingDepth - ceiling; excess > 0 {
			penalty := 25 * float64(excess)
			if penalty > 100 {
				penalty = 100
			}
			total += penalty
		}
	}
	return clamp(100 - total/float64(len(functions)))
}

func clamp(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
