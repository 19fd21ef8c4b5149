package engine

import (
	"fmt"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"

	"chromalint/internal/models"
)

// isFunctionNode reports whether a node kind introduces a function-like
// unit. The set is closed on purpose; anything else (including future
// syntax) falls through and is treated as an opaque statement.
func isFunctionNode(kind string) bool {
	switch kind {
	case "function_declaration",
		"generator_function_declaration",
		"function_expression",
		"generator_function",
		"arrow_function",
		"method_definition":
		return true
	default:
		return false
	}
}

// extraction is the extractor's working output: metrics in source order,
// the body node per function, and the enclosing-function index (-1 for
// top-level) used for containment.
type extraction struct {
	functions []models.FunctionMetrics
	bodies    []*tree_sitter.Node
	parents   []int
	diags     []models.Diagnostic
}

// extractFunctions walks the tree and records every function-like unit.
// ERROR subtrees are skipped wholesale: nodes the parser guessed at inside
// broken regions would produce unstable metrics.
func extractFunctions(root *tree_sitter.Node, source []byte) *extraction {
	ex := &extraction{}
	ex.walk(root, source, -1)
	return ex
}

func (ex *extraction) walk(node *tree_sitter.Node, source []byte, parent int) {
	if node == nil || node.IsError() {
		return
	}

	current := parent
	if isFunctionNode(node.Kind()) {
		body := node.ChildByFieldName("body")
		if body == nil {
			ex.diags = append(ex.diags, models.Diagnostic{
				Kind:    models.DiagUnboundedConstruct,
				Message: fmt.Sprintf("function %q has no determinable body", functionName(node, source)),
				Line:    int(node.StartPosition().Row) + 1,
			})
		} else {
			fm := models.FunctionMetrics{
				Name:           functionName(node, source),
				StartLine:      int(node.StartPosition().Row) + 1,
				EndLine:        int(node.EndPosition().Row) + 1,
				ParameterCount: parameterCount(node),
				ParentIndex:    parent,
			}
			if parent >= 0 {
				fm.ParentName = ex.functions[parent].Name
			}
			current = len(ex.functions)
			ex.functions = append(ex.functions, fm)
			ex.bodies = append(ex.bodies, body)
			ex.parents = append(ex.parents, parent)
		}
	}

	for i := uint(0); i < node.ChildCount(); i++ {
		ex.walk(node.Child(i), source, current)
	}
}

// functionName resolves a stable, human-readable name for a function-like
// node: the declared identifier if present, otherwise the nearest enclosing
// assignment target or property key, otherwise a positional fallback.
func functionName(node *tree_sitter.Node, source []byte) string {
	if name := node.ChildByFieldName("name"); name != nil {
		return nodeText(name, source)
	}

	parent := node.Parent()
	for parent != nil && parent.Kind() == "parenthesized_expression" {
		parent = parent.Parent()
	}
	if parent != nil {
		switch parent.Kind() {
		case "variable_declarator":
			if name := parent.ChildByFieldName("name"); name != nil {
				return nodeText(name, source)
			}
		case "assignment_expression":
			if left := parent.ChildByFieldName("left"); left != nil {
				return nodeText(left, source)
			}
		case "pair":
			if key := parent.ChildByFieldName("key"); key != nil {
				return nodeText(key, source)
			}
		case "public_field_definition", "field_definition":
			if prop := parent.ChildByFieldName("property"); prop != nil {
				return nodeText(prop, source)
			}
		}
	}

	return fmt.Sprintf("<anonymous@%d>", int(node.StartPosition().Row)+1)
}

// parameterCount counts declared parameters. Arrow functions with a single
// bare parameter carry it in the "parameter" field instead of a
// formal_parameters list.
func parameterCount(node *tree_sitter.Node) int {
	if params := node.ChildByFieldName("parameters"); params != nil {
		count := 0
		for i := uint(0); i < params.NamedChildCount(); i++ {
			if child := params.NamedChild(i); child != nil && child.Kind() != "comment" {
				count++
			}
		}
		return count
	}
	if node.ChildByFieldName("parameter") != nil {
		return 1
	}
	return 0
}

// nestingDepth computes the maximum depth of block-scoping constructs
// strictly inside a function body. Nested functions keep their own depth;
// their bodies do not deepen the enclosing function.
func nestingDepth(body *tree_sitter.Node) int {
	maxDepth := 0
	if body == nil || isFunctionNode(body.Kind()) {
		return 0
	}
	var walk func(node *tree_sitter.Node, depth int)
	walk = func(node *tree_sitter.Node, depth int) {
		if node == nil || node.IsError() {
			return
		}
		if node != body && isFunctionNode(node.Kind()) {
			return
		}
		if isNestingNode(node) {
			depth++
			if depth > maxDepth {
				maxDepth = depth
			}
		}
		for i := uint(0); i < node.ChildCount(); i++ {
			walk(node.Child(i), depth)
		}
	}
	walk(body, 0)
	return maxDepth
}

// isNestingNode reports whether a node opens one level of block scoping.
// Braced bodies of control statements are not double-counted: the control
// statement itself carries the level, and a statement_block only counts
// when it is a free-standing block.
func isNestingNode(node *tree_sitter.Node) bool {
	switch node.Kind() {
	case "if_statement", "for_statement", "for_in_statement",
		"while_statement", "do_statement", "switch_statement",
		"try_statement", "with_statement":
		return true
	case "statement_block":
		parent := node.Parent()
		return parent != nil && parent.Kind() == "statement_block"
	default:
		return false
	}
}

func nodeText(node *tree_sitter.Node, source []byte) string {
	start, end := node.StartByte(), node.EndByte()
	if int(end) > len(source) {
		end = uint(len(source))
	}
	if start >= end {
		return ""
	}
	return string(source[start:end])
}
