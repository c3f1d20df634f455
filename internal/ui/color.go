package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	newStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	skipStyle    = lipgloss.NewStyle().Faint(true)
	noMatchStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7D18FF"))
	headerStyle  = lipgloss.NewStyle().Bold(true)
	keywordStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("5"))
	tagStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
)

func NewLine(w io.Writer, path string) {
	fmt.Fprintln(w, newStyle.Render("new")+"  "+path)
}

func SkipLine(w io.Writer, path string) {
	fmt.Fprintln(w, skipStyle.Render("skip")+" "+path)
}

func SummaryLine(w io.Writer, sources, outputs int) {
	fmt.Fprintf(w, "split %d files into %d scenarios\n", sources, outputs)
}

// NoMatch is printed once per batch when no scenario survived filtering.
func NoMatch(w io.Writer, expr string) {
	fmt.Fprintln(w, noMatchStyle.Render("No feature file found for the tag expression: "+expr))
}

func ListRow(w io.Writer, seq int, fileName, scenario, tags string, seqWidth, fileWidth, nameWidth int) {
	fmt.Fprintf(w, "%-*d  %-*s  %-*s  %s\n",
		seqWidth, seq,
		fileWidth, fileName,
		nameWidth, scenario,
		tagStyle.Render(tags))
}

func ShowHeader(w io.Writer, seq int, fileName, source string) {
	fmt.Fprintln(w, headerStyle.Render(fmt.Sprintf("#%d %s", seq, fileName))+"  (from "+source+")")
}

// ShowGherkin prints feature text, highlighting tag and keyword lines.
func ShowGherkin(w io.Writer, content string) {
	for _, line := range strings.Split(strings.TrimRight(content, "\n"), "\n") {
		switch {
		case strings.HasPrefix(line, "@"):
			fmt.Fprintln(w, tagStyle.Render(line))
		case isHeaderLine(line):
			idx := strings.Index(line, ":")
			fmt.Fprintln(w, keywordStyle.Render(line[:idx+1])+line[idx+1:])
		default:
			fmt.Fprintln(w, line)
		}
	}
}

var headerKeywords = map[string]bool{
	"Feature":           true,
	"Background":        true,
	"Scenario":          true,
	"Example":           true,
	"Scenario Outline":  true,
	"Scenario Template": true,
	"Examples":          true,
	"Scenarios":         true,
}

func isHeaderLine(line string) bool {
	idx := strings.Index(line, ":")
	return idx > 0 && headerKeywords[line[:idx]]
}
