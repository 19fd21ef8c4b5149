// Package graph builds the function containment graph used by
// visualization surfaces. The graph is regenerated on demand from an
// analysis result and never persisted.
package graph

import (
	"fmt"

	"chromalint/internal/classify"
	"chromalint/internal/models"
)

// EdgeKind labels a graph edge. Only containment edges are produced today;
// call edges are an extension point for callers that bring their own call
// resolution, since reliable resolution needs type information outside this
// engine's scope.
type EdgeKind string

const (
	EdgeContains EdgeKind = "contains"
	EdgeCalls    EdgeKind = "calls"
)

// Node is one function in the graph, sized by complexity and colored by its
// band.
type Node struct {
	ID         string        `json:"id"`
	Label      string        `json:"label"`
	Size       float64       `json:"size"`
	Color      string        `json:"color"`
	Complexity int           `json:"complexity"`
	Band       classify.Band `json:"band"`
	StartLine  int           `json:"start_line"`
}

// Edge connects an enclosing function to one nested directly inside it.
type Edge struct {
	From string   `json:"from"`
	To   string   `json:"to"`
	Kind EdgeKind `json:"kind"`
}

// Graph is the node/edge view over one file's functions.
type Graph struct {
	File  string `json:"file"`
	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"edges"`
}

const (
	baseNodeSize    = 10.0
	sizePerDecision = 4.0
)

// Build derives the containment graph from an analysis result. Node order
// follows function source order, so output is deterministic.
func Build(result *models.AnalysisResult, thresholds classify.Thresholds) *Graph {
	g := &Graph{File: result.File}

	for i, fn := range result.Functions {
		band := thresholds.Classify(fn.CyclomaticComplexity)
		g.Nodes = append(g.Nodes, Node{
			ID:         nodeID(result.File, i, fn),
			Label:      fn.Name,
			Size:       baseNodeSize + sizePerDecision*float64(fn.CyclomaticComplexity-1),
			Color:      classify.Color(band),
			Complexity: fn.CyclomaticComplexity,
			Band:       band,
			StartLine:  fn.StartLine,
		})
	}

	for i, fn := range result.Functions {
		// Parentage is recorded during extraction; two siblings sharing a
		// line range must not be linked, so it is never re-derived here.
		if p := fn.ParentIndex; p >= 0 && p < i {
			g.Edges = append(g.Edges, Edge{
				From: g.Nodes[p].ID,
				To:   g.Nodes[i].ID,
				Kind: EdgeContains,
			})
		}
	}

	return g
}

func nodeID(file string, index int, fn models.FunctionMetrics) string {
	return fmt.Sprintf("%s:%d:%s", file, fn.StartLine, fn.Name) + suffixFor(index)
}

// suffixFor keeps IDs unique when two functions share a start line and name
// (for example two anonymous callbacks on one line).
func suffixFor(index int) string {
	return fmt.Sprintf("#%d", index)
}
