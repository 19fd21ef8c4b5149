package engine

import (
	"fmt"
	"path/filepath"
	"strings"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_javascript "github.com/tree-sitter/tree-sitter-javascript/bindings/go"
	tree_sitter_typescript "github.com/tree-sitter/tree-sitter-typescript/bindings/go"

	"chromalint/internal/models"
)

// Language identifies which grammar (or heuristic path) handles a file.
type Language string

const (
	LanguageJavaScript Language = "javascript"
	LanguageTypeScript Language = "typescript"
	LanguageTSX        Language = "tsx"
	LanguagePython     Language = "python"
	LanguageUnknown    Language = ""
)

// LanguageForPath maps a file path to its language by extension. Python maps
// to the heuristic path; everything else goes through tree-sitter.
func LanguageForPath(path string) Language {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".js", ".jsx", ".mjs", ".cjs":
		return LanguageJavaScript
	case ".ts", ".mts", ".cts":
		return LanguageTypeScript
	case ".tsx":
		return LanguageTSX
	case ".py", ".pyw":
		return LanguagePython
	default:
		return LanguageUnknown
	}
}

// treeAdapter owns the tree-sitter parsers. Parsers are stateful across
// Parse calls, so an adapter (and the Engine wrapping it) must not be shared
// between goroutines; batch callers create one engine per worker.
type treeAdapter struct {
	parsers map[Language]*tree_sitter.Parser
}

func newTreeAdapter() *treeAdapter {
	return &treeAdapter{parsers: make(map[Language]*tree_sitter.Parser)}
}

// parserFor lazily initializes the parser for a language.
func (a *treeAdapter) parserFor(lang Language) (*tree_sitter.Parser, error) {
	if p, ok := a.parsers[lang]; ok {
		return p, nil
	}

	var grammar *tree_sitter.Language
	switch lang {
	case LanguageJavaScript:
		grammar = tree_sitter.NewLanguage(tree_sitter_javascript.Language())
	case LanguageTypeScript:
		grammar = tree_sitter.NewLanguage(tree_sitter_typescript.LanguageTypescript())
	case LanguageTSX:
		grammar = tree_sitter.NewLanguage(tree_sitter_typescript.LanguageTSX())
	default:
		return nil, fmt.Errorf("no grammar for language %q", lang)
	}

	parser := tree_sitter.NewParser()
	if err := parser.SetLanguage(grammar); err != nil {
		return nil, fmt.Errorf("failed to load %s grammar: %w", lang, err)
	}

	a.parsers[lang] = parser
	return parser, nil
}

// parse turns source text into a syntax tree plus any parse diagnostics.
// A tree is returned even for broken input; callers decide how much of it
// is usable. Tree-sitter panics (CGO boundary) are converted to a
// ParseFailure diagnostic instead of escaping the engine.
func (a *treeAdapter) parse(lang Language, source []byte) (tree *tree_sitter.Tree, diags []models.Diagnostic) {
	parser, err := a.parserFor(lang)
	if err != nil {
		return nil, []models.Diagnostic{{
			Kind:    models.DiagParseFailure,
			Message: err.Error(),
		}}
	}

	defer func() {
		if r := recover(); r != nil {
			tree = nil
			diags = append(diags, models.Diagnostic{
				Kind:    models.DiagParseFailure,
				Message: fmt.Sprintf("parser panic: %v", r),
			})
		}
	}()

	// The tree-sitter C library may touch the input buffer via CGO, so the
	// caller's source is copied before parsing.
	buf := make([]byte, len(source))
	copy(buf, source)

	tree = parser.Parse(buf, nil)
	if tree == nil {
		return nil, []models.Diagnostic{{
			Kind:    models.DiagParseFailure,
			Message: "parser produced no tree",
		}}
	}

	if tree.RootNode().HasError() {
		diags = append(diags, collectSyntaxErrors(tree.RootNode())...)
	}

	return tree, diags
}

// collectSyntaxErrors walks the tree and records ERROR and missing nodes as
// ParseFailure diagnostics, capped so a hopeless file does not flood output.
func collectSyntaxErrors(root *tree_sitter.Node) []models.Diagnostic {
	const maxErrors = 10

	var diags []models.Diagnostic
	var walk func(node *tree_sitter.Node)
	walk = func(node *tree_sitter.Node) {
		if node == nil || len(diags) >= maxErrors {
			return
		}
		if node.IsError() {
			diags = append(diags, models.Diagnostic{
				Kind:    models.DiagParseFailure,
				Message: "syntax error",
				Line:    int(node.StartPosition().Row) + 1,
			})
			return // children of an ERROR node are guesses, not recoveries
		}
		if node.IsMissing() {
			diags = append(diags, models.Diagnostic{
				Kind:    models.DiagParseFailure,
				Message: fmt.Sprintf("missing %s", node.Kind()),
				Line:    int(node.StartPosition().Row) + 1,
			})
			return
		}
		if !node.HasError() {
			return
		}
		for i := uint(0); i < node.ChildCount(); i++ {
			walk(node.Child(i))
		}
	}
	walk(root)
	return diags
}
