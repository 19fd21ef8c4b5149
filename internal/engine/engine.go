// Package engine is the static analysis core: it turns source text into
// per-function complexity metrics, whole-file aggregates and diagnostics.
// The engine holds no cross-call state and performs no I/O; analyzing the
// same input twice yields identical results.
package engine

import (
	"errors"
	"fmt"

	"chromalint/internal/models"
)

var (
	// ErrEmptyPath is returned when the caller passes no file identifier.
	ErrEmptyPath = errors.New("file path must not be empty")

	// ErrEmptySource is returned when the caller passes no source text.
	ErrEmptySource = errors.New("source text must not be empty")

	// ErrUnsupportedLanguage is returned for extensions no grammar or
	// heuristic covers.
	ErrUnsupportedLanguage = errors.New("unsupported language")
)

// Engine analyzes one file at a time. It is cheap to construct and must not
// be shared between goroutines (the underlying parsers are stateful);
// callers that fan out across files create one engine per worker.
type Engine struct {
	adapter *treeAdapter
}

func New() *Engine {
	return &Engine{adapter: newTreeAdapter()}
}

// AnalyzeFile analyzes the given source text. The path is an opaque
// identifier echoed back in the result, except for its extension, which
// selects the language. Parse problems become diagnostics on the result;
// only contract violations (empty path or source, unknown extension)
// return an error.
func (e *Engine) AnalyzeFile(source, path string) (*models.AnalysisResult, error) {
	if path == "" {
		return nil, ErrEmptyPath
	}
	if source == "" {
		return nil, fmt.Errorf("%w: %s", ErrEmptySource, path)
	}

	lang := LanguageForPath(path)
	switch lang {
	case LanguageUnknown:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedLanguage, path)
	case LanguagePython:
		return analyzePython(source, path), nil
	}

	return e.analyzeTree(lang, source, path), nil
}

func (e *Engine) analyzeTree(lang Language, source, path string) *models.AnalysisResult {
	result := &models.AnalysisResult{File: path}

	src := []byte(source)
	tree, diags := e.adapter.parse(lang, src)
	result.Diagnostics = diags
	if tree == nil {
		return result
	}
	defer tree.Close()

	root := tree.RootNode()
	ex := extractFunctions(root, src)
	result.Diagnostics = append(result.Diagnostics, ex.diags...)

	for i := range ex.functions {
		body := ex.bodies[i]
		ex.functions[i].CyclomaticComplexity = cyclomaticComplexity(body)
		ex.functions[i].NestingDepth = nestingDepth(body)
	}
	result.Functions = ex.functions

	result.Metrics = aggregateMetrics(src, ex.functions, collectCommentRanges(root))
	return result
}
