package engine

import (
	"regexp"
	"strings"

	"chromalint/internal/models"
)

// The Python path has no syntax tree behind it: functions are found with
// def/class regexes and bounded by indentation. Every result it produces
// carries a HeuristicAnalysis diagnostic so consumers can tell these
// approximate numbers apart from the tree-based engine's exact ones.

var (
	pyDefRe      = regexp.MustCompile(`^(\s*)(?:async\s+)?def\s+([A-Za-z_]\w*)\s*\(`)
	pyClassRe    = regexp.MustCompile(`^(\s*)class\s+([A-Za-z_]\w*)`)
	pyDecisionRe = regexp.MustCompile(`\b(if|elif|for|while|except|and|or)\b`)
	pyCaseRe     = regexp.MustCompile(`\bcase\s+([^\s:]+)`)
)

// pyScope is one open indentation scope (a class or a function).
type pyScope struct {
	indent   int
	isClass  bool
	name     string
	funcIdx  int // index into functions; -1 for classes
	bodyInd  int // indent of first body line, -1 until seen
	lastLine int // last code line seen inside the scope
}

func analyzePython(source, path string) *models.AnalysisResult {
	result := &models.AnalysisResult{
		File: path,
		Diagnostics: []models.Diagnostic{{
			Kind:    models.DiagHeuristicAnalysis,
			Message: "python analysis is indentation-heuristic based, not tree based",
		}},
	}

	lines := strings.Split(source, "\n")
	cleaned, cleanDiags := cleanPythonLines(lines)
	result.Diagnostics = append(result.Diagnostics, cleanDiags...)

	var (
		functions  []models.FunctionMetrics
		decisions  []int // per function
		depths     []int
		scopes     []pyScope
		codeLines  int
		indentUnit = 0
		prevIndent = 0
	)

	closeScopesAt := func(indent int) {
		for len(scopes) > 0 && indent <= scopes[len(scopes)-1].indent {
			top := scopes[len(scopes)-1]
			if top.funcIdx >= 0 {
				functions[top.funcIdx].EndLine = top.lastLine
			}
			scopes = scopes[:len(scopes)-1]
		}
	}

	enclosingFunc := func() int {
		for i := len(scopes) - 1; i >= 0; i-- {
			if scopes[i].funcIdx >= 0 {
				return scopes[i].funcIdx
			}
		}
		return -1
	}

	for i, line := range cleaned {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		codeLines++

		lineNo := i + 1
		indent := indentWidth(line)
		if indentUnit == 0 && indent > prevIndent {
			indentUnit = indent - prevIndent
		}
		prevIndent = indent

		closeScopesAt(indent)

		// Touch every open scope so end lines track the last code line.
		for j := range scopes {
			scopes[j].lastLine = lineNo
			if scopes[j].bodyInd < 0 {
				scopes[j].bodyInd = indent
			}
		}

		if m := pyDefRe.FindStringSubmatch(line); m != nil {
			name := m[2]
			fm := models.FunctionMetrics{
				Name:           qualifyPythonName(scopes, name),
				StartLine:      lineNo,
				EndLine:        lineNo,
				ParameterCount: countPythonParams(cleaned, i),
				ParentIndex:    enclosingFunc(),
			}
			if fm.ParentIndex >= 0 {
				fm.ParentName = functions[fm.ParentIndex].Name
			}
			functions = append(functions, fm)
			decisions = append(decisions, 0)
			depths = append(depths, 0)
			scopes = append(scopes, pyScope{
				indent:  indent,
				name:    name,
				funcIdx: len(functions) - 1,
				bodyInd: -1,
			})
			continue
		}

		if m := pyClassRe.FindStringSubmatch(line); m != nil {
			scopes = append(scopes, pyScope{
				indent:  indent,
				isClass: true,
				name:    m[2],
				funcIdx: -1,
				bodyInd: -1,
			})
			continue
		}

		fi := enclosingFunc()
		if fi < 0 {
			continue
		}
		functions[fi].EndLine = lineNo

		decisions[fi] += len(pyDecisionRe.FindAllString(line, -1))
		for _, m := range pyCaseRe.FindAllStringSubmatch(line, -1) {
			if m[1] != "_" {
				decisions[fi]++
			}
		}

		// Indentation beyond the function body's first level approximates
		// block nesting.
		if fnScope := innermostFuncScope(scopes); fnScope != nil && fnScope.bodyInd >= 0 && indentUnit > 0 {
			if extra := indent - fnScope.bodyInd; extra > 0 {
				depth := extra / indentUnit
				if depth > depths[fi] {
					depths[fi] = depth
				}
			}
		}
	}
	closeScopesAt(0)

	for i := range functions {
		functions[i].CyclomaticComplexity = 1 + decisions[i]
		functions[i].NestingDepth = depths[i]
		if functions[i].EndLine < functions[i].StartLine {
			functions[i].EndLine = functions[i].StartLine
		}
	}

	result.Functions = functions
	result.Metrics = pythonFileMetrics(source, codeLines, functions)
	return result
}

func pythonFileMetrics(source string, codeLines int, functions []models.FunctionMetrics) models.FileMetrics {
	total := 0
	if len(source) > 0 {
		total = strings.Count(source, "\n") + 1
	}

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
		CodeLines:            codeLines,
		CyclomaticComplexity: sum,
		AverageComplexity:    avg,
		MaintainabilityIndex: maintainabilityIndex(avg, codeLines),
	}
}

func innermostFuncScope(scopes []pyScope) *pyScope {
	for i := len(scopes) - 1; i >= 0; i-- {
		if scopes[i].funcIdx >= 0 {
			return &scopes[i]
		}
	}
	return nil
}

// qualifyPythonName prefixes a method with its class, e.g. Parser.parse.
func qualifyPythonName(scopes []pyScope, name string) string {
	for i := len(scopes) - 1; i >= 0; i-- {
		if scopes[i].isClass {
			return scopes[i].name + "." + name
		}
		if scopes[i].funcIdx >= 0 {
			break // nested def: keep the bare name, parent is recorded separately
		}
	}
	return name
}

// countPythonParams counts the comma-separated parameters of the def whose
// opening paren is on line start. The parameter list may span lines.
func countPythonParams(cleaned []string, start int) int {
	depth := 0
	began := false
	empty := true
	count := 0

	for i := start; i < len(cleaned); i++ {
		line := cleaned[i]
		from := 0
		if i == start {
			open := strings.IndexByte(line, '(')
			if open < 0 {
				return 0
			}
			from = open
		}
		for _, r := range line[from:] {
			switch r {
			case '(', '[', '{':
				depth++
				began = true
			case ')', ']', '}':
				depth--
				if began && depth == 0 {
					if !empty {
						count++
					}
					return count
				}
			case ',':
				if depth == 1 {
					count++
					empty = true
				}
			default:
				if depth >= 1 && r != ' ' && r != '\t' {
					empty = false
				}
			}
		}
	}
	return count
}

func indentWidth(line string) int {
	width := 0
	for _, r := range line {
		switch r {
		case ' ':
			width++
		case '\t':
			width += 4
		default:
			return width
		}
	}
	return width
}

// cleanPythonLines blanks out comments and string contents so keyword
// regexes do not fire inside literals, and screens for gross syntax
// problems (unterminated strings, unbalanced brackets) worth a
// ParseFailure diagnostic.
func cleanPythonLines(lines []string) ([]string, []models.Diagnostic) {
	var diags []models.Diagnostic
	cleaned := make([]string, len(lines))

	inTriple := false
	var tripleQuote byte
	tripleStartLine := 0
	bracketDepth := 0

	for i, line := range lines {
		var out strings.Builder
		j := 0
		for j < len(line) {
			c := line[j]

			if inTriple {
				if c == tripleQuote && strings.HasPrefix(line[j:], strings.Repeat(string(tripleQuote), 3)) {
					inTriple = false
					out.WriteString(`"""`)
					j += 3
					continue
				}
				out.WriteByte(' ')
				j++
				continue
			}

			switch {
			case c == '#':
				j = len(line) // comment to end of line
			case c == '"' || c == '\'':
				if strings.HasPrefix(line[j:], strings.Repeat(string(c), 3)) {
					inTriple = true
					tripleQuote = c
					tripleStartLine = i + 1
					out.WriteString(`"""`)
					j += 3
					continue
				}
				end := scanPythonString(line, j)
				if end < 0 {
					diags = append(diags, models.Diagnostic{
						Kind:    models.DiagParseFailure,
						Message: "unterminated string literal",
						Line:    i + 1,
					})
					j = len(line)
					continue
				}
				out.WriteString(`""`)
				j = end + 1
			default:
				switch c {
				case '(', '[', '{':
					bracketDepth++
				case ')', ']', '}':
					bracketDepth--
				}
				out.WriteByte(c)
				j++
			}
		}
		cleaned[i] = out.String()
	}

	if inTriple {
		diags = append(diags, models.Diagnostic{
			Kind:    models.DiagParseFailure,
			Message: "unterminated triple-quoted string",
			Line:    tripleStartLine,
		})
	}
	if bracketDepth != 0 {
		diags = append(diags, models.Diagnostic{
			Kind:    models.DiagParseFailure,
			Message: "unbalanced brackets",
		})
	}

	return cleaned, diags
}

// scanPythonString returns the index of the closing quote of a single-line
// string starting at open, or -1 when the line ends first.
func scanPythonString(line string, open int) int {
	quote := line[open]
	for j := open + 1; j < len(line); j++ {
		switch line[j] {
		case '\\':
			j++
		case quote:
			return j
		}
	}
	return -1
}
