package models

// FunctionMetrics describes one function-like unit found in a source file.
// Instances are created once by the extractor and never mutated afterwards.
type FunctionMetrics struct {
	Name                 string `json:"name"`
	StartLine            int    `json:"start_line"` // 1-based, inclusive
	EndLine              int    `json:"end_line"`   // 1-based, inclusive
	ParameterCount       int    `json:"parameter_count"`
	NestingDepth         int    `json:"nesting_depth"`
	CyclomaticComplexity int    `json:"cyclomatic_complexity"` // always >= 1
	ParentName           string `json:"parent_name,omitempty"` // enclosing function, if nested
	ParentIndex          int    `json:"parent_index"`          // index of the enclosing function in Functions, -1 for top level
}

// FileMetrics aggregates per-function data into whole-file metrics.
type FileMetrics struct {
	TotalLines           int     `json:"total_lines"`
	CodeLines            int     `json:"code_lines"`
	CyclomaticComplexity int     `json:"cyclomatic_complexity"` // sum over all functions
	AverageComplexity    float64 `json:"average_complexity"`
	MaintainabilityIndex float64 `json:"maintainability_index"` // 0-171
}

// AnalysisResult is the per-file output of the engine. It is owned by the
// caller that requested the analysis and is immutable once produced.
type AnalysisResult struct {
	File        string            `json:"file"`
	Functions   []FunctionMetrics `json:"functions"` // source order
	Metrics     FileMetrics       `json:"metrics"`
	Diagnostics []Diagnostic      `json:"diagnostics,omitempty"`
}

// HasParseFailure reports whether the result carries at least one
// ParseFailure diagnostic.
func (r *AnalysisResult) HasParseFailure() bool {
	for _, d := range r.Diagnostics {
		if d.Kind == DiagParseFailure {
			return true
		}
	}
	return false
}

// IsHeuristic reports whether the result was produced by the lower-confidence
// heuristic path rather than a real syntax tree.
func (r *AnalysisResult) IsHeuristic() bool {
	for _, d := range r.Diagnostics {
		if d.Kind == DiagHeuristicAnalysis {
			return true
		}
	}
	return false
}

// DiagnosticKind identifies what went wrong (or which confidence class a
// result belongs to) during analysis of one file.
type DiagnosticKind string

const (
	DiagParseFailure       DiagnosticKind = "parse_failure"
	DiagUnboundedConstruct DiagnosticKind = "unbounded_construct"
	DiagHeuristicAnalysis  DiagnosticKind = "heuristic_analysis"
)

// Diagnostic records a non-fatal problem local to one file or one function.
type Diagnostic struct {
	Kind    DiagnosticKind `json:"kind"`
	Message string         `json:"message"`
	Line    int            `json:"line,omitempty"` // 1-based, 0 when file-wide
}

// HealthScoreBreakdown is the labeled output of the health score composer.
// Every field is on a 0-100 scale.
type HealthScoreBreakdown struct {
	Overall         float64 `json:"overall"`
	Complexity      float64 `json:"complexity"`
	Maintainability float64 `json:"maintainability"`
	Length          float64 `json:"length"`
	Nesting         float64 `json:"nesting"`
}

// FileFailure pairs a file path with the error that prevented its analysis.
type FileFailure struct {
	File  string `json:"file"`
	Error string `json:"error"`
}

// BatchSummary rolls a whole batch run into one record. TotalFiles always
// equals len(successes) + len(failures); files that failed are counted, not
// silently dropped.
type BatchSummary struct {
	TotalFiles        int     `json:"total_files"`
	AnalyzedFiles     int     `json:"analyzed_files"`
	FailedFiles       int     `json:"failed_files"`
	TotalFunctions    int     `json:"total_functions"`
	AverageComplexity float64 `json:"average_complexity"`
	HealthScore       float64 `json:"health_score"`
	FilesOverLimit    int     `json:"files_over_limit"` // files whose max complexity exceeds the caller limit
	Duration          string  `json:"duration"`
}

// BatchResult is what the batch driver hands to reporters: per-file results,
// per-file failures and the reconciled summary.
type BatchResult struct {
	Results  []*AnalysisResult               `json:"results"`
	Failures []FileFailure                   `json:"failures,omitempty"`
	Health   map[string]HealthScoreBreakdown `json:"health"` // keyed by file path
	Summary  BatchSummary                    `json:"summary"`
}
