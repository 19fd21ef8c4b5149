package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chromalint/internal/classify"
	"chromalint/internal/models"
)

func sampleResult() *models.AnalysisResult {
	return &models.AnalysisResult{
		File: "app.js",
		Functions: []models.FunctionMetrics{
			{Name: "outer", StartLine: 1, EndLine: 20, CyclomaticComplexity: 2, ParentIndex: -1},
			{Name: "inner", StartLine: 3, EndLine: 10, CyclomaticComplexity: 12, ParentName: "outer", ParentIndex: 0},
			{Name: "sibling", StartLine: 25, EndLine: 30, CyclomaticComplexity: 1, ParentIndex: -1},
		},
	}
}

func TestBuildNodes(t *testing.T) {
	g := Build(sampleResult(), classify.DefaultThresholds())

	require.Len(t, g.Nodes, 3)
	assert.Equal(t, "app.js", g.File)

	outer := g.Nodes[0]
	assert.Equal(t, "outer", outer.Label)
	assert.Equal(t, classify.BandLow, outer.Band)
	assert.Equal(t, classify.Color(classify.BandLow), outer.Color)

	inner := g.Nodes[1]
	assert.Equal(t, classify.BandHigh, inner.Band)
	assert.Greater(t, inner.Size, outer.Size, "node size grows with complexity")
}

func TestBuildContainmentEdges(t *testing.T) {
	g := Build(sampleResult(), classify.DefaultThresholds())

	require.Len(t, g.Edges, 1)
	e := g.Edges[0]
	assert.Equal(t, EdgeContains, e.Kind)
	assert.Equal(t, g.Nodes[0].ID, e.From)
	assert.Equal(t, g.Nodes[1].ID, e.To)
}

func TestBuildNestedChain(t *testing.T) {
	result := &models.AnalysisResult{
		File: "deep.js",
		Functions: []models.FunctionMetrics{
			{Name: "a", StartLine: 1, EndLine: 30, CyclomaticComplexity: 1, ParentIndex: -1},
			{Name: "b", StartLine: 5, EndLine: 20, CyclomaticComplexity: 1, ParentName: "a", ParentIndex: 0},
			{Name: "c", StartLine: 8, EndLine: 15, CyclomaticComplexity: 1, ParentName: "b", ParentIndex: 1},
		},
	}

	g := Build(result, classify.DefaultThresholds())
	require.Len(t, g.Edges, 2)
	assert.Equal(t, g.Nodes[0].ID, g.Edges[0].From)
	assert.Equal(t, g.Nodes[1].ID, g.Edges[0].To)
	assert.Equal(t, g.Nodes[1].ID, g.Edges[1].From, "c hangs off b, not a")
	assert.Equal(t, g.Nodes[2].ID, g.Edges[1].To)
}

func TestBuildIsDeterministic(t *testing.T) {
	first := Build(sampleResult(), classify.DefaultThresholds())
	second := Build(sampleResult(), classify.DefaultThresholds())
	assert.Equal(t, first, second)
}

func TestSameLineSiblingsAreNotLinked(t *testing.T) {
	// Two top-level callbacks on one line share a line range; recorded
	// parentage keeps them siblings, so no containment edge may appear.
	result := &models.AnalysisResult{
		File: "cb.js",
		Functions: []models.FunctionMetrics{
			{Name: "<anonymous@1>", StartLine: 1, EndLine: 1, CyclomaticComplexity: 1, ParentIndex: -1},
			{Name: "<anonymous@1>", StartLine: 1, EndLine: 1, CyclomaticComplexity: 1, ParentIndex: -1},
		},
	}

	g := Build(result, classify.DefaultThresholds())
	require.Len(t, g.Nodes, 2)
	assert.NotEqual(t, g.Nodes[0].ID, g.Nodes[1].ID)
	assert.Empty(t, g.Edges)
}

func TestEmptyResult(t *testing.T) {
	g := Build(&models.AnalysisResult{File: "none.js"}, classify.DefaultThresholds())
	assert.Empty(t, g.Nodes)
	assert.Empty(t, g.Edges)
}
