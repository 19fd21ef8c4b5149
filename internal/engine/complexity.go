package engine

import (
	tree_sitter "github.com/tree-sitter/go-tree-sitter"
)

// cyclomaticComplexity computes McCabe complexity for one function body:
// 1 + the number of decision points in the function's own subtree. Decision
// points inside nested function-like units belong to those units and are
// never counted here.
func cyclomaticComplexity(body *tree_sitter.Node) int {
	complexity := 1
	if body == nil || isFunctionNode(body.Kind()) {
		// An implicit-return body that is itself a function contributes
		// nothing to the enclosing function.
		return complexity
	}
	var walk func(node *tree_sitter.Node)
	walk = func(node *tree_sitter.Node) {
		if node == nil || node.IsError() {
			return
		}
		if node != body && isFunctionNode(node.Kind()) {
			return
		}
		complexity += decisionPoints(node)
		for i := uint(0); i < node.ChildCount(); i++ {
			walk(node.Child(i))
		}
	}
	walk(body)
	return complexity
}

// decisionPoints returns how many decision points a single node contributes.
// Each syntactic occurrence counts once: if clauses (an else-if is its own
// if_statement), non-default switch cases, loop headers, catch clauses,
// short-circuit logical operators, nullish coalescing, and ternaries.
// Unrecognized kinds contribute nothing, which keeps the engine safe on
// future syntax.
func decisionPoints(node *tree_sitter.Node) int {
	switch node.Kind() {
	case "if_statement":
		return 1
	case "for_statement", "for_in_statement", "while_statement", "do_statement":
		return 1
	case "switch_case":
		return 1 // switch_default is a separate kind and does not count
	case "catch_clause":
		return 1
	case "ternary_expression":
		return 1
	case "binary_expression":
		if op := node.ChildByFieldName("operator"); op != nil {
			switch op.Kind() {
			case "&&", "||", "??":
				return 1
			}
		}
		return 0
	default:
		return 0
	}
}
