// Package splitter decomposes parsed feature documents into single-scenario
// documents, one per scenario or outline example row, filters them by tag
// expression and renders them back to Gherkin text.
package splitter

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/chriserin/featsplit/internal/parser"
)

// DefaultExtension is the extension of written split files.
const DefaultExtension = "feature"

// Source is one parsed input document. Stem names its outputs.
type Source struct {
	Path     string
	Stem     string
	Document *parser.Document
}

// Output is one rendered split document.
type Output struct {
	Seq      int // 1-based, global across the batch
	Name     string
	Source   string
	Scenario string
	Tags     []string
	Content  string
}

// Result summarises a batch.
type Result struct {
	Outputs []Output
	Matched bool     // at least one document survived filtering
	Skipped []string // sources without a feature
}

type Option func(*Splitter)

func WithLogger(l *zap.Logger) Option {
	return func(s *Splitter) { s.log = l }
}

func WithExtension(ext string) Option {
	return func(s *Splitter) {
		if ext != "" {
			s.ext = ext
		}
	}
}

// Splitter runs the split pipeline for one tag expression.
type Splitter struct {
	expr string
	eval Evaluator
	ext  string
	log  *zap.Logger
}

// New compiles expr and returns a Splitter for it.
func New(expr string, opts ...Option) (*Splitter, error) {
	ev, err := CompileTags(expr)
	if err != nil {
		return nil, err
	}
	return NewWithEvaluator(expr, ev, opts...), nil
}

// NewWithEvaluator returns a Splitter using a caller-supplied evaluator.
func NewWithEvaluator(expr string, ev Evaluator, opts ...Option) *Splitter {
	s := &Splitter{expr: expr, eval: ev, ext: DefaultExtension, log: zap.NewNop()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Expression returns the tag expression the splitter filters by.
func (s *Splitter) Expression() string { return s.expr }

// Plan splits, filters and renders every source without side effects.
// A content error in any source fails the whole batch.
func (s *Splitter) Plan(sources []Source) (Result, error) {
	var res Result
	seq := 1
	for _, src := range sources {
		if src.Document == nil || src.Document.Feature == nil {
			s.log.Info("skipping source without feature", zap.String("path", src.Path))
			res.Skipped = append(res.Skipped, src.Path)
			continue
		}

		feature := src.Document.Feature
		docs, err := Expand(feature.Children, Template(feature))
		if err != nil {
			return Result{}, fmt.Errorf("%s: %w", src.Path, err)
		}

		kept := Filter(docs, s.eval)
		s.log.Debug("split source",
			zap.String("path", src.Path),
			zap.Int("scenarios", len(docs)),
			zap.Int("matched", len(kept)))
		if len(kept) > 0 {
			res.Matched = true
		}

		for _, doc := range kept {
			sc := ScenarioOf(doc)
			res.Outputs = append(res.Outputs, Output{
				Seq:      seq,
				Name:     OutputName(src.Stem, seq, s.ext),
				Source:   src.Path,
				Scenario: sc.Name,
				Tags:     parser.TagNames(sc.Tags),
				Content:  Serialize(doc),
			})
			seq++
		}
	}
	return res, nil
}

// Run plans the batch and hands each output to emit in order. Outputs
// emitted before a failing emit are not rolled back.
func (s *Splitter) Run(sources []Source, emit func(Output) error) (Result, error) {
	res, err := s.Plan(sources)
	if err != nil {
		return Result{}, err
	}
	for _, out := range res.Outputs {
		if err := emit(out); err != nil {
			return res, err
		}
	}
	if !res.Matched {
		s.log.Warn("no scenarios matched tag expression", zap.String("tags", s.expr))
	}
	s.log.Info("split complete",
		zap.Int("sources", len(sources)),
		zap.Int("outputs", len(res.Outputs)),
		zap.Int("skipped", len(res.Skipped)))
	return res, nil
}

// OutputName builds "<stem>_<seq>.<ext>".
func OutputName(stem string, seq int, ext string) string {
	return fmt.Sprintf("%s_%d.%s", stem, seq, ext)
}

// WriteFiles returns an emit function writing each output into dir.
func WriteFiles(dir string) func(Output) error {
	return func(out Output) error {
		path := filepath.Join(dir, out.Name)
		if err := os.WriteFile(path, []byte(out.Content), 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", path, err)
		}
		return nil
	}
}
