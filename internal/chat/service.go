// Package chat implements the travel chatbot pipeline: language detection,
// hotel lookup against the travel backend, and reply composition with AI
// generation plus deterministic fallbacks.
//
// The service never invents data: when the backend has no hotels for a
// city, the reply is an apology in the user's language, not a fabricated
// listing.
package chat

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/vk/travelbotgo/internal/amadeus"
	"github.com/vk/travelbotgo/internal/ctxlog"
	"github.com/vk/travelbotgo/internal/locale"
)

// TravelAPI is the slice of the Amadeus client the pipeline needs. Kept as
// an interface so tests can substitute a fake backend.
type TravelAPI interface {
	CityCode(ctx context.Context, cityName string) (string, error)
	HotelsByCity(ctx context.Context, cityCode string) ([]amadeus.Hotel, error)
	HotelRating(ctx context.Context, hotelID string) (string, error)
	Health(ctx context.Context) error
}

// Completion parameters for the two generative paths. Conversation replies
// are short; hotel listings need more room.
const (
	replyTemperature   = 0.7
	converseMaxTokens  = 150
	hotelListMaxTokens = 300
)

// Service is the chatbot core.
type Service struct {
	detector *locale.Detector
	travel   TravelAPI
	ai       locale.Completer
}

// NewService wires the pipeline. ai may be nil to disable every generative
// path; the service then answers exclusively from the rule-based texts.
func NewService(detector *locale.Detector, travel TravelAPI, ai locale.Completer) *Service {
	return &Service{
		detector: detector,
		travel:   travel,
		ai:       ai,
	}
}

// ratedHotel pairs a hotel with its display rating.
type ratedHotel struct {
	amadeus.Hotel
	Rating string
}

// ProcessMessage runs one chat turn. The returned error is non-nil only
// when the travel backend is unreachable (callers map it to 503); lookup
// misses degrade to an in-language apology instead.
func (s *Service) ProcessMessage(ctx context.Context, message string) (*Response, error) {
	logger := ctxlog.FromContext(ctx)

	lang, city := s.detector.Detect(ctx, message)
	logger.Debug("Message classified.", "language", lang.Name, "city", city)

	if city == "" {
		return s.reply(s.conversationalResponse(ctx, lang, message)), nil
	}

	code, err := s.travel.CityCode(ctx, city)
	if err != nil {
		if errors.Is(err, amadeus.ErrUnavailable) {
			return nil, err
		}
		// Lookup errors beyond outright unavailability degrade to the
		// same answer as an unknown city.
		logger.Warn("City lookup failed.", "city", city, "error", err)
		code = ""
	}
	if code == "" {
		return s.reply(fmt.Sprintf(lang.Messages.NoHotels, city)), nil
	}

	hotels, err := s.travel.HotelsByCity(ctx, code)
	if err != nil {
		if errors.Is(err, amadeus.ErrUnavailable) {
			return nil, err
		}
		logger.Warn("Hotel search failed.", "city_code", code, "error", err)
		hotels = nil
	}
	if len(hotels) == 0 {
		return s.reply(fmt.Sprintf(lang.Messages.NoHotels, city)), nil
	}

	rated := s.withRatings(ctx, lang, hotels)
	text := s.hotelResponse(ctx, lang, city, rated)

	infos := make([]HotelInfo, 0, len(rated))
	for _, h := range rated {
		infos = append(infos, HotelInfo{
			Name:     h.Name,
			Rating:   h.Rating,
			Location: city,
		})
	}

	resp := s.reply(text)
	resp.Hotels = infos
	return resp, nil
}

// Health reports whether the travel backend is reachable.
func (s *Service) Health(ctx context.Context) error {
	return s.travel.Health(ctx)
}

func (s *Service) reply(text string) *Response {
	return &Response{
		Response:  text,
		Timestamp: time.Now().UTC(),
	}
}

// withRatings resolves each hotel's sentiment rating. A missing or failing
// rating becomes the language's "rating not available" text; the listing
// itself is never dropped over it.
func (s *Service) withRatings(ctx context.Context, lang *locale.Language, hotels []amadeus.Hotel) []ratedHotel {
	logger := ctxlog.FromContext(ctx)

	rated := make([]ratedHotel, 0, len(hotels))
	for _, h := range hotels {
		rating, err := s.travel.HotelRating(ctx, h.ID)
		if err != nil {
			logger.Warn("Rating lookup failed.", "hotel_id", h.ID, "error", err)
			rating = ""
		}
		if rating == "" {
			rating = lang.Messages.RatingUnavailable
		}
		rated = append(rated, ratedHotel{Hotel: h, Rating: rating})
	}
	return rated
}

// conversationalResponse answers a message that mentioned no city.
func (s *Service) conversationalResponse(ctx context.Context, lang *locale.Language, message string) string {
	if s.ai != nil {
		text, err := s.ai.Complete(ctx, conversePrompt(lang.Name, message), replyTemperature, converseMaxTokens)
		if err == nil {
			return text
		}
		ctxlog.FromContext(ctx).Debug("Conversational AI reply failed, using canned response.", "error", err)
	}
	return fallbackConversational(lang, message)
}

// hotelResponse composes the reply text for a successful hotel lookup.
func (s *Service) hotelResponse(ctx context.Context, lang *locale.Language, city string, hotels []ratedHotel) string {
	if s.ai != nil {
		text, err := s.ai.Complete(ctx, hotelListPrompt(lang.Name, city, hotels), replyTemperature, hotelListMaxTokens)
		if err == nil {
			return text
		}
		ctxlog.FromContext(ctx).Debug("Hotel AI reply failed, using plain listing.", "error", err)
	}
	return simpleHotelListing(lang, city, hotels)
}

// fallbackConversational picks a canned reply by classifying the message as
// a greeting, a help request, or anything else.
func fallbackConversational(lang *locale.Language, message string) string {
	lower := strings.ToLower(message)
	for _, w := range lang.GreetingWords {
		if strings.Contains(lower, w) {
			return lang.Messages.Greeting
		}
	}
	for _, w := range lang.HelpWords {
		if strings.Contains(lower, w) {
			return lang.Messages.Help
		}
	}
	return lang.Messages.Default
}

// simpleHotelListing renders the deterministic numbered listing.
func simpleHotelListing(lang *locale.Language, city string, hotels []ratedHotel) string {
	var b strings.Builder
	fmt.Fprintf(&b, lang.Messages.HotelsHeader, city)
	b.WriteString("\n\n")
	for i, h := range hotels {
		fmt.Fprintf(&b, "%d. %s - %s\n", i+1, h.Name, h.Rating)
	}
	b.WriteString("\n")
	fmt.Fprintf(&b, lang.Messages.HotelsFooter, len(hotels))
	return b.String()
}

// hotelLines renders the "1. Name - rating" lines fed into the AI prompt.
func hotelLines(hotels []ratedHotel) string {
	lines := make([]string, 0, len(hotels))
	for i, h := range hotels {
		lines = append(lines, fmt.Sprintf("%d. %s - %s", i+1, h.Name, h.Rating))
	}
	return strings.Join(lines, "\n")
}

func conversePrompt(language, message string) string {
	return fmt.Sprintf(`You are a friendly travel assistant. Respond to this message helpfully.

User message: %q

Guidelines:
- Be friendly and helpful
- If it's a greeting, respond warmly and explain you can help find hotels
- If they ask for help, explain you can show hotel lists by city
- Keep responses short (2-3 sentences max)
- Use appropriate emojis
- Always encourage them to ask about hotels in any city

Respond only in %s.`, message, capitalize(language))
}

func hotelListPrompt(language, city string, hotels []ratedHotel) string {
	return fmt.Sprintf(`Create a friendly response for a traveler looking for hotels in %s.

Hotels found with ratings (real data from Amadeus):
%s

Create a response that:
1. Greets them warmly
2. Mentions the requested city
3. Lists the hotels with their ratings attractively
4. Indicates these are real Amadeus data
5. Uses appropriate emojis
6. Keeps it concise and engaging

Respond only in %s.`, city, hotelLines(hotels), capitalize(language))
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	runes := []rune(s)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
