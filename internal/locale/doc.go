// Package locale handles language detection and city extraction for chat
// messages, plus the per-language response texts.
//
// Detection prefers the AI path, asking the model to classify the message
// and pull out the city, and falls back to rule-based matching (indicator
// substrings and city-capture regex patterns) whenever the AI is
// unavailable or returns something unparseable.
//
// The rules ship as compiled-in defaults for English, French and Malagasy
// and can be extended or overridden by .hcl rule files loaded from a
// directory at startup.
package locale
