package locale

import (
	"context"
	"fmt"
	"regexp"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"

	"github.com/vk/travelbotgo/internal/ctxlog"
	"github.com/vk/travelbotgo/internal/fsutil"
)

// ruleFile mirrors the top-level structure of a .hcl locale rule file.
type ruleFile struct {
	Languages       []*languageBlock `hcl:"language,block"`
	DetectionOrder  []string         `hcl:"detection_order,optional"`
	DefaultLanguage string           `hcl:"default_language,optional"`
	CityAlias       hcl.Expression   `hcl:"city_alias,optional"`
}

// languageBlock is a single `language "<name>" { ... }` block.
type languageBlock struct {
	Name          string         `hcl:"name,label"`
	Indicators    []string       `hcl:"indicators,optional"`
	CityPatterns  []string       `hcl:"city_patterns,optional"`
	GreetingWords []string       `hcl:"greeting_words,optional"`
	HelpWords     []string       `hcl:"help_words,optional"`
	AliasScan     *bool          `hcl:"alias_scan,optional"`
	Messages      *messagesBlock `hcl:"messages,block"`
}

// messagesBlock overrides individual response texts. Empty attributes keep
// the existing text.
type messagesBlock struct {
	Greeting          string `hcl:"greeting,optional"`
	Help              string `hcl:"help,optional"`
	Default           string `hcl:"default,optional"`
	NoHotels          string `hcl:"no_hotels,optional"`
	HotelsHeader      string `hcl:"hotels_header,optional"`
	HotelsFooter      string `hcl:"hotels_footer,optional"`
	RatingUnavailable string `hcl:"rating_unavailable,optional"`
}

// LoadDir applies every .hcl rule file found under rulesPath on top of the
// given base rules. Files load in sorted path order, later files winning.
func LoadDir(ctx context.Context, base *Rules, rulesPath string) (*Rules, error) {
	logger := ctxlog.FromContext(ctx)

	filePaths, err := fsutil.FindFilesByExtension(rulesPath, ".hcl")
	if err != nil {
		return nil, fmt.Errorf("failed to find locale rule files in %s: %w", rulesPath, err)
	}
	if len(filePaths) == 0 {
		logger.Warn("No .hcl locale rule files found in path, keeping defaults.", "path", rulesPath)
		return base, nil
	}

	parser := hclparse.NewParser()
	for _, filePath := range filePaths {
		hclFile, diags := parser.ParseHCLFile(filePath)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse locale rule file %s: %w", filePath, diags)
		}

		var parsed ruleFile
		if diags := gohcl.DecodeBody(hclFile.Body, nil, &parsed); diags.HasErrors() {
			return nil, fmt.Errorf("failed to decode locale rule file %s: %w", filePath, diags)
		}

		if err := applyRuleFile(base, &parsed); err != nil {
			return nil, fmt.Errorf("invalid locale rule file %s: %w", filePath, err)
		}
		logger.Debug("Applied locale rule file.", "file", filePath)
	}

	if err := base.validate(); err != nil {
		return nil, err
	}
	logger.Info("Locale rules loaded.", "files", len(filePaths), "languages", len(base.Languages))
	return base, nil
}

// applyRuleFile merges one parsed file into the rule set.
func applyRuleFile(rules *Rules, parsed *ruleFile) error {
	for _, block := range parsed.Languages {
		if err := applyLanguageBlock(rules, block); err != nil {
			return err
		}
	}

	if len(parsed.DetectionOrder) > 0 {
		rules.DetectionOrder = parsed.DetectionOrder
	}
	if parsed.DefaultLanguage != "" {
		rules.DefaultLanguage = parsed.DefaultLanguage
	}

	aliases, err := decodeAliases(parsed.CityAlias)
	if err != nil {
		return err
	}
	for local, canonical := range aliases {
		rules.CityAliases[local] = canonical
	}
	return nil
}

func applyLanguageBlock(rules *Rules, block *languageBlock) error {
	lang, ok := rules.Languages[block.Name]
	if !ok {
		lang = &Language{Name: block.Name}
		rules.Languages[block.Name] = lang
	}

	if len(block.Indicators) > 0 {
		lang.Indicators = block.Indicators
	}
	if len(block.GreetingWords) > 0 {
		lang.GreetingWords = block.GreetingWords
	}
	if len(block.HelpWords) > 0 {
		lang.HelpWords = block.HelpWords
	}
	if block.AliasScan != nil {
		lang.AliasScan = *block.AliasScan
	}

	if len(block.CityPatterns) > 0 {
		compiled := make([]*regexp.Regexp, 0, len(block.CityPatterns))
		for _, p := range block.CityPatterns {
			re, err := regexp.Compile(p)
			if err != nil {
				return fmt.Errorf("language %q: bad city pattern %q: %w", block.Name, p, err)
			}
			compiled = append(compiled, re)
		}
		lang.CityPatterns = compiled
	}

	if block.Messages != nil {
		applyMessages(&lang.Messages, block.Messages)
	}
	return nil
}

func applyMessages(dst *Messages, src *messagesBlock) {
	if src.Greeting != "" {
		dst.Greeting = src.Greeting
	}
	if src.Help != "" {
		dst.Help = src.Help
	}
	if src.Default != "" {
		dst.Default = src.Default
	}
	if src.NoHotels != "" {
		dst.NoHotels = src.NoHotels
	}
	if src.HotelsHeader != "" {
		dst.HotelsHeader = src.HotelsHeader
	}
	if src.HotelsFooter != "" {
		dst.HotelsFooter = src.HotelsFooter
	}
	if src.RatingUnavailable != "" {
		dst.RatingUnavailable = src.RatingUnavailable
	}
}

// decodeAliases evaluates the city_alias attribute into a plain string map.
func decodeAliases(expr hcl.Expression) (map[string]string, error) {
	if expr == nil {
		return nil, nil
	}

	val, diags := expr.Value(nil)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to evaluate city_alias: %w", diags)
	}
	if val.IsNull() {
		return nil, nil
	}

	converted, err := convert.Convert(val, cty.Map(cty.String))
	if err != nil {
		return nil, fmt.Errorf("city_alias must be a map of strings: %w", err)
	}

	aliases := make(map[string]string)
	for it := converted.ElementIterator(); it.Next(); {
		k, v := it.Element()
		aliases[k.AsString()] = v.AsString()
	}
	return aliases, nil
}
