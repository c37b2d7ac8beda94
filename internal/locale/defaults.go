package locale

import "regexp"

// DefaultRules returns the compiled-in rule set for English, French and
// Malagasy. Rule files loaded on top of this may override any field.
func DefaultRules() *Rules {
	return &Rules{
		DefaultLanguage: "english",
		DetectionOrder:  []string{"french", "malagasy"},
		Languages: map[string]*Language{
			"english": {
				Name: "english",
				CityPatterns: compilePatterns(
					`hotel(?:s)? in ([^,.\n]+?)(?:\s|$|,|\.)`,
					`hotels? (?:at|from) ([^,.\n]+?)(?:\s|$|,|\.)`,
					`(?:find|search|show|get) hotel(?:s)? in ([^,.\n]+?)(?:\s|$|,|\.)`,
				),
				GreetingWords: []string{"hello", "hi", "hey"},
				HelpWords:     []string{"help", "what can you do"},
				Messages: Messages{
					Greeting:          "Hello! 👋 I can help you find hotels in any city worldwide. Just tell me where you want to stay!",
					Help:              "I can show you hotel lists for any city! 🏨 Just say 'I want hotels in [city name]'. Try: 'Show me hotels in Paris'",
					Default:           "I can help you find hotels! 🏨 Just tell me which city you're interested in. Example: 'Hotels in London please'",
					NoHotels:          "Sorry, I couldn't find any hotels available in %s. This city might not be available in our database or there might be a temporary issue. Please try a different city or try again later. 🏨",
					HotelsHeader:      "🏨 Here are available hotels in %s (real data from Amadeus):",
					HotelsFooter:      "Total %d hotels found! ✨",
					RatingUnavailable: "Rating not available",
				},
			},
			"french": {
				Name:       "french",
				Indicators: []string{"je veux", "des hôtels", "à", "montrez-moi", "je cherche", "bonjour", "dans"},
				CityPatterns: compilePatterns(
					`hôtels?\s+à\s+([^,.\n]+?)(?:\s|$|,|\.)`,
					`des\s+hôtels?\s+à\s+([^,.\n]+?)(?:\s|$|,|\.)`,
					`hôtels?\s+dans\s+([^,.\n]+?)(?:\s|$|,|\.)`,
					`cherche.*?hôtels?\s+à\s+([^,.\n]+?)(?:\s|$|,|\.)`,
				),
				GreetingWords: []string{"bonjour", "salut", "bonsoir"},
				HelpWords:     []string{"aide", "aidez-moi", "que pouvez-vous faire"},
				Messages: Messages{
					Greeting:          "Bonjour! 👋 Je peux vous aider à trouver des hôtels dans n'importe quelle ville du monde. Dites-moi simplement où vous voulez séjourner!",
					Help:              "Je peux vous montrer des listes d'hôtels par ville! 🏨 Dites simplement 'Je veux des hôtels à [nom de la ville]'. Essayez: 'Montrez-moi des hôtels à Paris'",
					Default:           "Je peux vous aider à trouver des hôtels! 🏨 Dites-moi dans quelle ville vous êtes intéressé. Exemple: 'Je veux des hôtels à Tokyo'",
					NoHotels:          "Désolé, je n'ai pas pu trouver d'hôtels disponibles à %s. Cette ville pourrait ne pas être disponible dans notre base de données ou il pourrait y avoir un problème temporaire. Veuillez essayer une autre ville ou réessayer plus tard. 🏨",
					HotelsHeader:      "🏨 Voici les hôtels disponibles à %s (données réelles d'Amadeus):",
					HotelsFooter:      "Total: %d hôtels trouvés! ✨",
					RatingUnavailable: "Note non disponible",
				},
			},
			"malagasy": {
				Name:       "malagasy",
				Indicators: []string{"tiako", "hotely", "any", "asehoy", "manao ahoana", "salama", "toerana"},
				CityPatterns: compilePatterns(
					`hotely\s+any\s+([^,.\n]+?)(?:\s|$|,|\.)`,
					`tiako\s+hotely\s+any\s+([^,.\n]+?)(?:\s|$|,|\.)`,
					`asehoy\s+hotely\s+any\s+([^,.\n]+?)(?:\s|$|,|\.)`,
					`any\s+([^,.\n]+?)(?:\s|$|,|\.)`,
				),
				GreetingWords: []string{"manao ahoana", "salama", "akory"},
				HelpWords:     []string{"fanampiana", "ampianao", "inona no vitanao"},
				AliasScan:     true,
				Messages: Messages{
					Greeting:          "Manao ahoana! 👋 Afaka manampy anao hitady hotely any amin'ny tanàna rehetra eran'izao tontolo izao aho. Lazao fotsiny hoe aiza no tianao hivonana!",
					Help:              "Afaka mampiseho lisitry ny hotely isaky ny tanàna aho! 🏨 Lazao fotsiny hoe 'Tiako hotely any [anaran'ny tanàna]'. Andramo: 'Asehoy ny hotely any Antananarivo'",
					Default:           "Afaka manampy anao hitady hotely aho! 🏨 Lazao ahy hoe amin'ny tanàna inona no liana ianao. Ohatra: 'Tiako hotely any Paris'",
					NoHotels:          "Miala tsiny, tsy nahita hotely misy any %s aho. Mety tsy misy ity tanàna ity ao amin'ny angon-draharaha na misy olana vonjimaika. Andramo tanàna hafa na avereno indray tatỳ aoriana. 🏨",
					HotelsHeader:      "🏨 Ireto ny hotely misy any %s (angon-drakitra marina avy amin'ny Amadeus):",
					HotelsFooter:      "Totaliny: hotely %d no hita! ✨",
					RatingUnavailable: "Tsy misy naoty",
				},
			},
		},
		CityAliases: map[string]string{
			"antananarivo": "Antananarivo",
			"toamasina":    "Toamasina",
			"antsirabe":    "Antsirabe",
			"fianarantsoa": "Fianarantsoa",
			"mahajanga":    "Mahajanga",
			"toliara":      "Toliara",
			"antsiranana":  "Antsiranana",
			"dhaka":        "Dhaka",
			"mumbai":       "Mumbai",
			"delhi":        "Delhi",
			"paris":        "Paris",
			"london":       "London",
			"tokyo":        "Tokyo",
			"new york":     "New York",
			"sydney":       "Sydney",
		},
	}
}

func compilePatterns(patterns ...string) []*regexp.Regexp {
	compiled := make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		compiled = append(compiled, regexp.MustCompile(p))
	}
	return compiled
}
