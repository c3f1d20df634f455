package splitter

import "github.com/chriserin/featsplit/internal/parser"

// Template returns a copy of the feature holding only its header and its
// Background, if any. The input is not modified.
func Template(f *parser.Feature) *parser.Feature {
	t := &parser.Feature{
		Keyword:  f.Keyword,
		Name:     f.Name,
		Language: f.Language,
		Tags:     append([]parser.Tag(nil), f.Tags...),
	}
	for _, c := range f.Children {
		if c.Background != nil {
			t.Children = append(t.Children, parser.Child{Background: c.Background.Clone()})
			break
		}
	}
	return t
}

// Expand turns the children of a feature into one document per scenario,
// materializing each outline once per row of its first example table.
// Outputs follow child order, then row order.
func Expand(children []parser.Child, template *parser.Feature) ([]*parser.Document, error) {
	var units []*parser.Scenario
	for _, c := range children {
		if c.Scenario == nil {
			continue
		}
		sc := c.Scenario
		if !sc.Outline {
			units = append(units, sc)
			continue
		}

		rows, err := exampleRows(sc, template.Name)
		if err != nil {
			return nil, err
		}
		for _, row := range rows {
			unit := sc.Clone()
			unit.Examples = []parser.Examples{{
				Keyword: sc.Examples[0].Keyword,
				Name:    sc.Examples[0].Name,
				Header:  sc.Examples[0].Header.Clone(),
				Body:    []parser.Row{row.Clone()},
			}}
			units = append(units, unit)
		}
	}

	docs := make([]*parser.Document, 0, len(units))
	for _, unit := range units {
		feature := template.Clone()
		scenario := unit.Clone()
		scenario.Tags = MergeTags(unit.Tags, template.Tags)
		feature.Children = append(feature.Children, parser.Child{Scenario: scenario})
		docs = append(docs, &parser.Document{Feature: feature})
	}
	return docs, nil
}

func exampleRows(sc *parser.Scenario, feature string) ([]parser.Row, error) {
	if len(sc.Examples) == 0 || sc.Examples[0].Header == nil {
		return nil, &ContentError{Feature: feature, Scenario: sc.Name, Line: sc.Line, Reason: "missing examples"}
	}
	if len(sc.Examples[0].Body) == 0 {
		return nil, &ContentError{Feature: feature, Scenario: sc.Name, Line: sc.Line, Reason: "examples table has no rows"}
	}
	return sc.Examples[0].Body, nil
}

// ScenarioOf returns the single scenario of a split document.
func ScenarioOf(doc *parser.Document) *parser.Scenario {
	if doc == nil || doc.Feature == nil {
		return nil
	}
	for i := len(doc.Feature.Children) - 1; i >= 0; i-- {
		if sc := doc.Feature.Children[i].Scenario; sc != nil {
			return sc
		}
	}
	return nil
}
