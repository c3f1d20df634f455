package splitter

import (
	"strings"

	"github.com/chriserin/featsplit/internal/parser"
)

const docStringDelimiter = `"""`

var cellEscaper = strings.NewReplacer(`\`, `\\`, `|`, `\|`, "\n", `\n`)

// Serialize renders a split document back into Gherkin text. Output is
// unindented, one element per line, and always ends with a newline. Non-English
// documents get a language header so they re-parse in their own dialect.
func Serialize(doc *parser.Document) string {
	var b strings.Builder
	if doc == nil || doc.Feature == nil {
		return ""
	}
	f := doc.Feature

	if f.Language != "" && f.Language != parser.DefaultLanguage {
		b.WriteString("# language: " + f.Language + "\n")
	}
	writeTags(&b, f.Tags)
	b.WriteString(keywordOr(f.Keyword, "Feature") + ": " + f.Name + "\n")

	for _, c := range f.Children {
		switch {
		case c.Background != nil:
			b.WriteString(c.Background.Keyword + ": " + c.Background.Name + "\n")
			writeSteps(&b, c.Background.Steps)
		case c.Scenario != nil:
			writeScenario(&b, c.Scenario)
		}
	}
	return b.String()
}

func writeScenario(b *strings.Builder, sc *parser.Scenario) {
	writeTags(b, sc.Tags)
	b.WriteString(sc.Keyword + ": " + sc.Name + "\n")
	writeSteps(b, sc.Steps)

	if len(sc.Examples) == 0 {
		return
	}
	// Only the first table is materialized; its name is not written.
	ex := sc.Examples[0]
	b.WriteString(keywordOr(ex.Keyword, "Examples") + ":\n")
	writeRow(b, ex.Header)
	for _, row := range ex.Body {
		writeRow(b, row)
	}
}

func writeTags(b *strings.Builder, tags []parser.Tag) {
	for _, t := range tags {
		b.WriteString(t.Name + "\n")
	}
}

func writeSteps(b *strings.Builder, steps []parser.Step) {
	for _, st := range steps {
		b.WriteString(st.Keyword + st.Text + "\n")
		if st.Argument == nil {
			continue
		}
		if dt := st.Argument.DataTable; dt != nil {
			for _, row := range dt.Rows {
				writeRow(b, row)
			}
		}
		if ds := st.Argument.DocString; ds != nil {
			b.WriteString(docStringDelimiter + ds.MediaType + "\n")
			b.WriteString(strings.ReplaceAll(ds.Content, docStringDelimiter, `\"\"\"`) + "\n")
			b.WriteString(docStringDelimiter + "\n")
		}
	}
}

func writeRow(b *strings.Builder, row parser.Row) {
	b.WriteString("|")
	for _, cell := range row {
		b.WriteString(cellEscaper.Replace(cell.Value) + "|")
	}
	b.WriteString("\n")
}

func keywordOr(keyword, fallback string) string {
	if keyword == "" {
		return fallback
	}
	return keyword
}
