package parser

import (
	messages "github.com/cucumber/messages/go/v21"
)

// Transform converts a cucumber GherkinDocument into a Document. language is
// the dialect the document was parsed with when it carries no header.
func Transform(gd *messages.GherkinDocument, language string) (*Document, error) {
	doc := &Document{}
	if gd == nil || gd.Feature == nil {
		return doc, nil
	}

	f := gd.Feature
	lang := featureLanguage(f, language)
	outlines := outlineKeywords(lang)
	feature := &Feature{
		Keyword:  f.Keyword,
		Name:     f.Name,
		Language: lang,
		Tags:     transformTags(f.Tags),
	}

	for _, child := range f.Children {
		switch {
		case child.Rule != nil:
			return nil, &Error{Line: line(child.Rule.Location), Message: "Rule is not supported"}
		case child.Background != nil:
			bg := child.Background
			feature.Children = append(feature.Children, Child{Background: &Background{
				Keyword: bg.Keyword,
				Name:    bg.Name,
				Steps:   transformSteps(bg.Steps),
				Line:    line(bg.Location),
			}})
		case child.Scenario != nil:
			feature.Children = append(feature.Children, Child{Scenario: transformScenario(child.Scenario, outlines)})
		}
	}

	doc.Feature = feature
	return doc, nil
}

func transformScenario(sc *messages.Scenario, outlines map[string]bool) *Scenario {
	s := &Scenario{
		Keyword: sc.Keyword,
		Name:    sc.Name,
		Tags:    transformTags(sc.Tags),
		Steps:   transformSteps(sc.Steps),
		Outline: outlines[sc.Keyword] || len(sc.Examples) > 0,
		Line:    line(sc.Location),
	}
	// Example-level tags are not carried; only the feature and scenario
	// tags take part in filtering.
	for _, ex := range sc.Examples {
		e := Examples{
			Keyword: ex.Keyword,
			Name:    ex.Name,
		}
		if ex.TableHeader != nil {
			e.Header = transformRow(ex.TableHeader)
		}
		for _, r := range ex.TableBody {
			e.Body = append(e.Body, transformRow(r))
		}
		s.Examples = append(s.Examples, e)
	}
	return s
}

func transformTags(tags []*messages.Tag) []Tag {
	var out []Tag
	for _, t := range tags {
		out = append(out, Tag{Name: t.Name})
	}
	return out
}

func transformSteps(steps []*messages.Step) []Step {
	var out []Step
	for _, st := range steps {
		step := Step{Keyword: st.Keyword, Text: st.Text}
		switch {
		case st.DocString != nil:
			step.Argument = &StepArgument{DocString: &DocString{
				MediaType: st.DocString.MediaType,
				Content:   st.DocString.Content,
			}}
		case st.DataTable != nil:
			dt := &DataTable{}
			for _, r := range st.DataTable.Rows {
				dt.Rows = append(dt.Rows, transformRow(r))
			}
			step.Argument = &StepArgument{DataTable: dt}
		}
		out = append(out, step)
	}
	return out
}

func transformRow(r *messages.TableRow) Row {
	row := make(Row, 0, len(r.Cells))
	for _, c := range r.Cells {
		row = append(row, Cell{Value: c.Value})
	}
	return row
}

func line(loc *messages.Location) int {
	if loc == nil {
		return 0
	}
	return int(loc.Line)
}
