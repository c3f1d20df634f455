package splitter

import (
	"fmt"

	tagexpressions "github.com/cucumber/tag-expressions/go/v6"

	"github.com/chriserin/featsplit/internal/parser"
)

// Evaluator decides whether a list of tag names satisfies an expression.
type Evaluator interface {
	Evaluate(tags []string) bool
}

// CompileTags parses a tag expression such as "@smoke and not @wip". The
// empty expression matches everything.
func CompileTags(expr string) (ev Evaluator, err error) {
	// Parse panics on some malformed input, e.g. a dangling "or".
	defer func() {
		if r := recover(); r != nil {
			ev = nil
			err = &TagExpressionError{Expression: expr, Err: fmt.Errorf("%v", r)}
		}
	}()

	ev, err = tagexpressions.Parse(expr)
	if err != nil {
		return nil, &TagExpressionError{Expression: expr, Err: err}
	}
	return ev, nil
}

// MergeTags returns the scenario tags followed by the feature tags.
// Duplicates are kept.
func MergeTags(scenarioTags, featureTags []parser.Tag) []parser.Tag {
	merged := make([]parser.Tag, 0, len(scenarioTags)+len(featureTags))
	merged = append(merged, scenarioTags...)
	return append(merged, featureTags...)
}

// Filter keeps the documents whose scenario tags satisfy ev, in order.
func Filter(docs []*parser.Document, ev Evaluator) []*parser.Document {
	var kept []*parser.Document
	for _, doc := range docs {
		sc := ScenarioOf(doc)
		if sc == nil {
			continue
		}
		if ev.Evaluate(parser.TagNames(sc.Tags)) {
			kept = append(kept, doc)
		}
	}
	return kept
}
