package cmd

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"chromalint/internal/models"
)

func TestExitCode(t *testing.T) {
	clean := &models.BatchResult{
		Summary: models.BatchSummary{TotalFiles: 2, AnalyzedFiles: 2, HealthScore: 88},
	}
	withFailures := &models.BatchResult{
		Failures: []models.FileFailure{{File: "broken.js", Error: "2 syntax error(s)"}},
		Summary:  models.BatchSummary{TotalFiles: 2, AnalyzedFiles: 1, FailedFiles: 1, HealthScore: 90},
	}

	assert.Equal(t, 0, exitCode(clean, nil, 0))
	assert.Equal(t, 0, exitCode(nil, nil, 0), "nothing to analyze is not a failure")

	assert.Equal(t, 1, exitCode(nil, errors.New("analysis failed"), 0))
	assert.Equal(t, 1, exitCode(clean, errors.New("report failed"), 0),
		"a failed run exits non-zero even with results in hand")
	assert.Equal(t, 1, exitCode(withFailures, nil, 0))

	assert.Equal(t, 1, exitCode(clean, nil, 90), "health 88 misses a 90 gate")
	assert.Equal(t, 0, exitCode(clean, nil, 80))
	assert.Equal(t, 0, exitCode(clean, nil, 0), "gate disabled when unset")
}
