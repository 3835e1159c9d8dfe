package parser

import "github.com/gitrdm/sldprolog/internal/compile"

// Sentence is the parser's output unit: one parsed clause together with
// its source line, so the compiler's "reports it and continues with the
// next sentence" behavior (spec.md §4.2, §7) has something to report
// against.
type Sentence struct {
	Clause *compile.SourceClause
	Line   int
}
