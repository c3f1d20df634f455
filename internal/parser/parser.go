package parser

import (
	"bytes"
	"fmt"

	gherkin "github.com/cucumber/gherkin/go/v26"
	messages "github.com/cucumber/messages/go/v21"
)

// DefaultLanguage is used when no language is configured.
const DefaultLanguage = "en"

// Parse parses a feature file in the given Gherkin dialect. A `# language:`
// header inside the file takes precedence over language.
func Parse(filename string, content []byte, language string) (*Document, error) {
	if language == "" {
		language = DefaultLanguage
	}
	if gherkin.DialectsBuiltin().GetDialect(language) == nil {
		return nil, fmt.Errorf("parsing %s: unknown language %q", filename, language)
	}

	newID := (&messages.Incrementing{}).NewId
	gd, err := gherkin.ParseGherkinDocumentForLanguage(bytes.NewReader(content), language, newID)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", filename, err)
	}

	doc, err := Transform(gd, language)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", filename, err)
	}
	return doc, nil
}

// featureLanguage resolves the dialect of f. The cucumber parser reports
// "en" for documents without a `# language:` header even when another
// dialect was requested, so the configured language wins whenever the
// feature keyword belongs to it.
func featureLanguage(f *messages.Feature, configured string) string {
	if configured == "" || configured == f.Language {
		return f.Language
	}
	if hasFeatureKeyword(configured, f.Keyword) {
		return configured
	}
	if f.Language == "" {
		return configured
	}
	return f.Language
}

func hasFeatureKeyword(language, keyword string) bool {
	dialect := gherkin.DialectsBuiltin().GetDialect(language)
	if dialect == nil {
		return false
	}
	for _, kw := range dialect.FeatureKeywords() {
		if kw == keyword {
			return true
		}
	}
	return false
}

// outlineKeywords returns the scenario outline keywords of a dialect.
func outlineKeywords(language string) map[string]bool {
	keywords := map[string]bool{}
	dialect := gherkin.DialectsBuiltin().GetDialect(language)
	if dialect == nil {
		return keywords
	}
	for _, kw := range dialect.ScenarioOutlineKeywords() {
		keywords[kw] = true
	}
	return keywords
}
