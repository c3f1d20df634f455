package splitter

import "fmt"

// ContentError reports a scenario outline that cannot be expanded. It aborts
// the whole batch.
type ContentError struct {
	Feature  string
	Scenario string
	Line     int
	Reason   string
}

func (e *ContentError) Error() string {
	return fmt.Sprintf("feature %q: scenario outline %q (line %d): %s", e.Feature, e.Scenario, e.Line, e.Reason)
}

// ParseError wraps a parser failure for one source file. The wrapped error
// already names the file.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return "parse error: " + e.Err.Error()
}

func (e *ParseError) Unwrap() error { return e.Err }

// TagExpressionError reports a tag expression the evaluator rejected.
type TagExpressionError struct {
	Expression string
	Err        error
}

func (e *TagExpressionError) Error() string {
	return fmt.Sprintf("invalid tag expression %q: %v", e.Expression, e.Err)
}

func (e *TagExpressionError) Unwrap() error { return e.Err }
