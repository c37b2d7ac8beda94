package locale

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/vk/travelbotgo/internal/ctxlog"
)

// Completer produces a single-turn chat completion for a prompt. It is
// satisfied by the groq client; a nil Completer disables the AI path.
type Completer interface {
	Complete(ctx context.Context, prompt string, temperature float64, maxTokens int) (string, error)
}

// Detection temperature is kept near zero so the model behaves like a
// classifier rather than a writer.
const (
	detectTemperature = 0.1
	detectMaxTokens   = 100
)

// Detector resolves the language and city of an incoming message.
type Detector struct {
	rules *Rules
	ai    Completer
}

// NewDetector creates a detector over the given rules. ai may be nil, in
// which case only rule-based detection is used.
func NewDetector(rules *Rules, ai Completer) *Detector {
	return &Detector{rules: rules, ai: ai}
}

// Rules exposes the underlying rule set for response-text lookups.
func (d *Detector) Rules() *Rules {
	return d.rules
}

// aiDetection is the JSON shape the model is asked to return.
type aiDetection struct {
	Language string `json:"language"`
	City     string `json:"city"`
}

// Detect returns the message's language and the extracted city name, or ""
// when no city was mentioned. Any AI failure silently degrades to the
// rule-based path.
func (d *Detector) Detect(ctx context.Context, message string) (*Language, string) {
	if d.ai == nil {
		return d.fallbackDetect(message)
	}

	logger := ctxlog.FromContext(ctx)

	raw, err := d.ai.Complete(ctx, detectionPrompt(message), detectTemperature, detectMaxTokens)
	if err != nil {
		logger.Debug("AI language detection failed, using rule-based fallback.", "error", err)
		return d.fallbackDetect(message)
	}

	var parsed aiDetection
	if err := json.Unmarshal([]byte(strings.TrimSpace(raw)), &parsed); err != nil {
		logger.Debug("AI language detection returned unparseable JSON, using rule-based fallback.", "error", err)
		return d.fallbackDetect(message)
	}

	return d.rules.Language(parsed.Language), parsed.City
}

// fallbackDetect runs the rule-based detection pipeline.
func (d *Detector) fallbackDetect(message string) (*Language, string) {
	lang := d.rules.DetectLanguage(message)
	return lang, d.rules.ExtractCity(lang, message)
}

// detectionPrompt builds the classification prompt. The examples anchor the
// model to the exact JSON shape and the three supported languages.
func detectionPrompt(message string) string {
	return fmt.Sprintf(`Analyze this message and return ONLY a JSON object with language and city:

Message: %q

Extract:
1. language: "english", "french", or "malagasy"
2. city: city name in English (or null if no city found)

Examples:
"I want hotels in Dhaka" -> {"language": "english", "city": "Dhaka"}
"Je veux des hôtels à Paris" -> {"language": "french", "city": "Paris"}
"Tiako hotely any Antananarivo" -> {"language": "malagasy", "city": "Antananarivo"}
"Je cherche des hôtels à Cox's Bazar" -> {"language": "french", "city": "Cox's Bazar"}
"Montrez-moi des hôtels à Tokyo" -> {"language": "french", "city": "Tokyo"}
"Asehoy hotely any Mumbai" -> {"language": "malagasy", "city": "Mumbai"}
"Hello" -> {"language": "english", "city": null}
"Bonjour" -> {"language": "french", "city": null}
"Manao ahoana" -> {"language": "malagasy", "city": null}

Return only valid JSON.`, message)
}
