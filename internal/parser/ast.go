package parser

import "fmt"

// Document is the root of a parsed feature file. Feature is nil when the
// source held nothing but blanks and comments.
type Document struct {
	Feature *Feature
}

type Feature struct {
	Keyword  string // "Feature" in English, localized otherwise
	Name     string
	Language string
	Tags     []Tag
	Children []Child
}

// Child is one entry of a feature body: exactly one of Background or
// Scenario is set.
type Child struct {
	Background *Background
	Scenario   *Scenario
}

type Background struct {
	Keyword string
	Name    string
	Steps   []Step
	Line    int
}

// Scenario covers both plain scenarios and scenario outlines. Outline is set
// when the source used an outline keyword or supplied example tables.
type Scenario struct {
	Keyword  string
	Name     string
	Tags     []Tag
	Steps    []Step
	Outline  bool
	Examples []Examples
	Line     int // 1-based line number of the scenario keyword
}

type Tag struct {
	Name string // e.g. "@smoke"
}

type Examples struct {
	Keyword string
	Name    string
	Header  Row
	Body    []Row
}

// Row is an ordered list of cells; a nil Header means the examples block
// had no table.
type Row []Cell

type Cell struct {
	Value string
}

type Step struct {
	Keyword  string // includes trailing whitespace, e.g. "Given "
	Text     string
	Argument *StepArgument
}

type StepArgument struct {
	DocString *DocString
	DataTable *DataTable
}

type DocString struct {
	MediaType string
	Content   string
}

type DataTable struct {
	Rows []Row
}

// Error is a parse failure with the line it was detected on.
type Error struct {
	Line    int
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Message)
}

// TagNames returns the literal names of tags, in order.
func TagNames(tags []Tag) []string {
	names := make([]string, 0, len(tags))
	for _, t := range tags {
		names = append(names, t.Name)
	}
	return names
}

// Clone returns a deep copy of the feature.
func (f *Feature) Clone() *Feature {
	if f == nil {
		return nil
	}
	out := &Feature{
		Keyword:  f.Keyword,
		Name:     f.Name,
		Language: f.Language,
		Tags:     cloneTags(f.Tags),
	}
	if f.Children != nil {
		out.Children = make([]Child, len(f.Children))
		for i, c := range f.Children {
			out.Children[i] = c.Clone()
		}
	}
	return out
}

func (c Child) Clone() Child {
	return Child{
		Background: c.Background.Clone(),
		Scenario:   c.Scenario.Clone(),
	}
}

func (b *Background) Clone() *Background {
	if b == nil {
		return nil
	}
	return &Background{
		Keyword: b.Keyword,
		Name:    b.Name,
		Steps:   cloneSteps(b.Steps),
		Line:    b.Line,
	}
}

func (s *Scenario) Clone() *Scenario {
	if s == nil {
		return nil
	}
	out := &Scenario{
		Keyword: s.Keyword,
		Name:    s.Name,
		Tags:    cloneTags(s.Tags),
		Steps:   cloneSteps(s.Steps),
		Outline: s.Outline,
		Line:    s.Line,
	}
	if s.Examples != nil {
		out.Examples = make([]Examples, len(s.Examples))
		for i, ex := range s.Examples {
			out.Examples[i] = ex.Clone()
		}
	}
	return out
}

func (e Examples) Clone() Examples {
	out := Examples{
		Keyword: e.Keyword,
		Name:    e.Name,
		Header:  e.Header.Clone(),
	}
	if e.Body != nil {
		out.Body = cloneRows(e.Body)
	}
	return out
}

func (r Row) Clone() Row {
	if r == nil {
		return nil
	}
	out := make(Row, len(r))
	copy(out, r)
	return out
}

func cloneRows(rows []Row) []Row {
	out := make([]Row, len(rows))
	for i, r := range rows {
		out[i] = r.Clone()
	}
	return out
}

func cloneTags(tags []Tag) []Tag {
	if tags == nil {
		return nil
	}
	out := make([]Tag, len(tags))
	copy(out, tags)
	return out
}

func cloneSteps(steps []Step) []Step {
	if steps == nil {
		return nil
	}
	out := make([]Step, len(steps))
	for i, s := range steps {
		out[i] = Step{Keyword: s.Keyword, Text: s.Text}
		if s.Argument == nil {
			continue
		}
		arg := &StepArgument{}
		if s.Argument.DocString != nil {
			ds := *s.Argument.DocString
			arg.DocString = &ds
		}
		if s.Argument.DataTable != nil {
			arg.DataTable = &DataTable{Rows: cloneRows(s.Argument.DataTable.Rows)}
		}
		out[i].Argument = arg
	}
	return out
}
