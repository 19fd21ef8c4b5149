package engine

import (
	"math"
	"strings"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"

	"chromalint/internal/models"
)

// byteRange is a half-open [start, end) span of source bytes.
type byteRange struct {
	start uint
	end   uint
}

// collectCommentRanges gathers the byte spans of every comment token, in
// source order, so line counting can tell comment-only lines from code.
func collectCommentRanges(root *tree_sitter.Node) []byteRange {
	var ranges []byteRange
	var walk func(node *tree_sitter.Node)
	walk = func(node *tree_sitter.Node) {
		if node == nil {
			return
		}
		if node.Kind() == "comment" {
			ranges = append(ranges, byteRange{start: node.StartByte(), end: node.EndByte()})
			return
		}
		for i := uint(0); i < node.ChildCount(); i++ {
			walk(node.Child(i))
		}
	}
	walk(root)
	return ranges
}

// countLines returns total lines and code lines. A line counts as code when
// it contains at least one non-whitespace byte outside every comment span;
// blank lines and comment-only lines are excluded, while lines mixing code
// and a trailing comment count as code.
func countLines(source []byte, comments []byteRange) (total, code int) {
	if len(source) == 0 {
		return 0, 0
	}

	total = strings.Count(string(source), "\n") + 1

	ci := 0
	lineHasCode := false
	flush := func() {
		if lineHasCode {
			code++
		}
		lineHasCode = false
	}

	for pos := 0; pos < len(source); pos++ {
		b := source[pos]
		if b == '\n' {
			flush()
			continue
		}
		if lineHasCode {
			continue
		}
		// Advance past comment spans that ended before this byte.
		for ci < len(comments) && uint(pos) >= comments[ci].end {
			ci++
		}
		if ci < len(comments) && uint(pos) >= comments[ci].start {
			continue // inside a comment
		}
		if b != ' ' && b != '\t' && b != '\r' {
			lineHasCode = true
		}
	}
	flush()

	return total, code
}

// aggregateMetrics rolls per-function metrics into whole-file metrics.
// File-level cyclomatic complexity is the sum over every function found in
// the file, nested ones included, each counted exactly once.
func aggregateMetrics(source []byte, functions []models.FunctionMetrics, comments []byteRange) models.FileMetrics {
	total, code := countLines(source, comments)

	sum := 0
	for _, fn := range functions {
		sum += fn.CyclomaticComplexity
	}

	avg := 0.0
	if len(functions) > 0 {
		avg = float64(sum) / float64(len(functions))
	}

	return models.FileMetrics{
		TotalLines:           total,
		CodeLines:            code,
		CyclomaticComplexity: sum,
		AverageComplexity:    avg,
		MaintainabilityIndex: maintainabilityIndex(avg, code),
	}
}

// maintainabilityIndex is the classic 171-point composite, using line-based
// volume as the Halstead proxy: 171 - 5.2*ln(V) - 0.23*avgCC - 16.2*ln(LOC)
// with V = LOC*log2(LOC+1), clamped to [0, 171]. It is monotonically
// non-increasing in both average complexity and code-line count; an empty
// file scores the full 171.
func maintainabilityIndex(avgComplexity float64, codeLines int) float64 {
	if codeLines <= 0 {
		return 171
	}
	volume := float64(codeLines) * math.Log2(float64(codeLines)+1)
	mi := 171 - 5.2*math.Log(volume) - 0.23*avgComplexity - 16.2*math.Log(float64(codeLines))
	return clamp(mi, 0, 171)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
