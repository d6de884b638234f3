package catalogue

import (
	"strings"

	"golang.org/x/text/language"
)

// DefaultLang is the language every criterion must carry text for.
const DefaultLang = "en"

var (
	supportedTags = []language.Tag{language.English, language.Hungarian}
	langKeys      = []string{"en", "hu"}
	matcher       = language.NewMatcher(supportedTags)
)

// Localize returns the criterion text best matching the requested BCP 47
// language tag, falling back to English for anything unsupported.
func (d *CriterionDefinition) Localize(lang string) Text {
	key := DefaultLang
	if lang != "" {
		if _, idx := language.MatchStrings(matcher, lang); idx >= 0 && idx < len(langKeys) {
			key = langKeys[idx]
		}
	}
	if t, ok := d.Text[key]; ok {
		return t
	}
	return d.Text[DefaultLang]
}

// Interpolate substitutes {name} placeholders in a localized template.
func Interpolate(template string, repl map[string]string) string {
	if template == "" || len(repl) == 0 {
		return template
	}
	pairs := make([]string, 0, len(repl)*2)
	for k, v := range repl {
		pairs = append(pairs, "{"+k+"}", v)
	}
	return strings.NewReplacer(pairs...).Replace(template)
}
