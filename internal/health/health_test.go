package health

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"chromalint/internal/config"
	"chromalint/internal/models"
)

func defaultHealth() config.HealthConfig {
	return config.DefaultConfig().Health
}

func TestComposeNoFunctionsScoresCeiling(t *testing.T) {
	result := &models.AnalysisResult{
		File: "empty.js",
		Metrics: models.FileMetrics{
			MaintainabilityIndex: 171,
		},
	}

	b := Compose(result, defaultHealth())

	assert.Equal(t, 100.0, b.Complexity)
	assert.Equal(t, 100.0, b.Maintainability)
	assert.Equal(t, 100.0, b.Length)
	assert.Equal(t, 100.0, b.Nesting)
	assert.Equal(t, 100.0, b.Overall)
}

func TestComposeStraightLineCode(t *testing.T) {
	result := &models.AnalysisResult{
		File: "simple.js",
		Functions: []models.FunctionMetrics{
			{Name: "a", StartLine: 1, EndLine: 3, CyclomaticComplexity: 1},
		},
		Metrics: models.FileMetrics{
			AverageComplexity:    1,
			MaintainabilityIndex: 171,
		},
	}

	b := Compose(result, defaultHealth())
	assert.Equal(t, 100.0, b.Overall)
}

func TestComplexityPenaltyIsMonotonic(t *testing.T) {
	cfg := defaultHealth()
	prev := 101.0
	for _, avg := range []float64{1, 2, 5, 10, 15, 30} {
		result := &models.AnalysisResult{
			Functions: []models.FunctionMetrics{{StartLine: 1, EndLine: 2, CyclomaticComplexity: int(avg)}},
			Metrics:   models.FileMetrics{AverageComplexity: avg, MaintainabilityIndex: 171},
		}
		b := Compose(result, cfg)
		assert.Less(t, b.Complexity, prev, "avg %v", avg)
		prev = b.Complexity
	}
}

func TestLengthPenalty(t *testing.T) {
	cfg := defaultHealth() // ceiling 50

	long := &models.AnalysisResult{
		Functions: []models.FunctionMetrics{
			{Name: "sprawl", StartLine: 1, EndLine: 100, CyclomaticComplexity: 1},
		},
		Metrics: models.FileMetrics{AverageComplexity: 1, MaintainabilityIndex: 100},
	}
	b := Compose(long, cfg)
	assert.Equal(t, 0.0, b.Length, "100 lines against a 50-line ceiling maxes the penalty")

	short := &models.AnalysisResult{
		Functions: []models.FunctionMetrics{
			{Name: "tidy", StartLine: 1, EndLine: 20, CyclomaticComplexity: 1},
		},
		Metrics: models.FileMetrics{AverageComplexity: 1, MaintainabilityIndex: 100},
	}
	assert.Equal(t, 100.0, Compose(short, cfg).Length)
}

func TestNestingPenalty(t *testing.T) {
	cfg := defaultHealth() // ceiling 4

	deep := &models.AnalysisResult{
		Functions: []models.FunctionMetrics{
			{Name: "tangle", StartLine: 1, EndLine: 10, NestingDepth: 6, CyclomaticComplexity: 1},
		},
		Metrics: models.FileMetrics{AverageComplexity: 1, MaintainabilityIndex: 100},
	}
	b := Compose(deep, cfg)
	assert.Equal(t, 50.0, b.Nesting, "two levels past the ceiling at 25 points each")
}

func TestOverallIsWeightedSum(t *testing.T) {
	cfg := defaultHealth()
	result := &models.AnalysisResult{
		Functions: []models.FunctionMetrics{
			{Name: "f", StartLine: 1, EndLine: 10, NestingDepth: 2, CyclomaticComplexity: 5},
		},
		Metrics: models.FileMetrics{AverageComplexity: 5, MaintainabilityIndex: 120},
	}

	b := Compose(result, cfg)
	want := cfg.Weights.Complexity*b.Complexity +
		cfg.Weights.Maintainability*b.Maintainability +
		cfg.Weights.Length*b.Length +
		cfg.Weights.Nesting*b.Nesting
	assert.InDelta(t, want, b.Overall, 0.0001)
	assert.GreaterOrEqual(t, b.Overall, 0.0)
	assert.LessOrEqual(t, b.Overall, 100.0)
}

func TestComposeIsPure(t *testing.T) {
	cfg := defaultHealth()
	result := &models.AnalysisResult{
		Functions: []models.FunctionMetrics{
			{Name: "f", StartLine: 1, EndLine: 30, NestingDepth: 3, CyclomaticComplexity: 8},
		},
		Metrics: models.FileMetrics{AverageComplexity: 8, MaintainabilityIndex: 90},
	}

	assert.Equal(t, Compose(result, cfg), Compose(result, cfg))
}
