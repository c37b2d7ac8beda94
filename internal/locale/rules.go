package locale

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
)

// Messages holds the canned response texts for one language. Texts with a
// %s or %d verb are format strings filled in by the chat service.
type Messages struct {
	// Greeting, Help and Default are the conversational fallbacks used
	// when no city was mentioned and the AI is unavailable.
	Greeting string
	Help     string
	Default  string

	// NoHotels is the apology shown when a city yields no results.
	// Takes the city name.
	NoHotels string

	// HotelsHeader opens the deterministic hotel listing. Takes the city
	// name. HotelsFooter closes it and takes the hotel count.
	HotelsHeader string
	HotelsFooter string

	// RatingUnavailable replaces a missing sentiment rating.
	RatingUnavailable string
}

// Language bundles the detection rules and response texts for one language.
type Language struct {
	Name string

	// Indicators are lowercase substrings whose presence marks a message
	// as being in this language.
	Indicators []string

	// CityPatterns capture a city name in group 1 when matched against
	// the lowercased message.
	CityPatterns []*regexp.Regexp

	// GreetingWords and HelpWords classify conversational messages for
	// the fallback responder.
	GreetingWords []string
	HelpWords     []string

	// AliasScan enables a direct scan of the city-alias table against the
	// whole message when no pattern matches. Used for Malagasy, where
	// city names often appear without a marker preposition.
	AliasScan bool

	Messages Messages
}

// Rules is the full detection/response rule set.
type Rules struct {
	// Languages indexed by name.
	Languages map[string]*Language

	// DetectionOrder lists the languages whose indicators are checked, in
	// order. The first match wins; no match falls back to DefaultLanguage.
	DetectionOrder []string

	DefaultLanguage string

	// CityAliases maps lowercased local spellings to canonical English
	// city names.
	CityAliases map[string]string
}

// Language returns the named language, or the default one when the name is
// unknown. Detection results from the AI pass through here so an unexpected
// label degrades gracefully.
func (r *Rules) Language(name string) *Language {
	if lang, ok := r.Languages[strings.ToLower(name)]; ok {
		return lang
	}
	return r.Languages[r.DefaultLanguage]
}

// DetectLanguage classifies a message by indicator substrings.
func (r *Rules) DetectLanguage(message string) *Language {
	lower := strings.ToLower(message)
	for _, name := range r.DetectionOrder {
		lang, ok := r.Languages[name]
		if !ok {
			continue
		}
		for _, indicator := range lang.Indicators {
			if strings.Contains(lower, indicator) {
				return lang
			}
		}
	}
	return r.Languages[r.DefaultLanguage]
}

// ExtractCity pulls a city name out of a message using the language's
// capture patterns. Captured names are resolved through the alias table,
// otherwise title-cased. Returns "" when no city is found.
func (r *Rules) ExtractCity(lang *Language, message string) string {
	lower := strings.ToLower(message)

	for _, pattern := range lang.CityPatterns {
		m := pattern.FindStringSubmatch(lower)
		if len(m) < 2 {
			continue
		}
		captured := strings.TrimSpace(m[1])
		if canonical, ok := r.CityAliases[captured]; ok {
			return canonical
		}
		return titleCase(captured)
	}

	if lang.AliasScan {
		for local, canonical := range r.CityAliases {
			if strings.Contains(lower, local) {
				return canonical
			}
		}
	}

	return ""
}

// validate checks internal consistency after defaults and overrides have
// been merged.
func (r *Rules) validate() error {
	if _, ok := r.Languages[r.DefaultLanguage]; !ok {
		return fmt.Errorf("default language %q is not defined", r.DefaultLanguage)
	}
	for _, name := range r.DetectionOrder {
		if _, ok := r.Languages[name]; !ok {
			return fmt.Errorf("detection_order references undefined language %q", name)
		}
	}
	return nil
}

// titleCase uppercases the first letter of every space-separated word,
// leaving the rest of each word untouched (so "cox's bazar" becomes
// "Cox's Bazar").
func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		runes := []rune(w)
		runes[0] = unicode.ToUpper(runes[0])
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}
