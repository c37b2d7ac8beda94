package amadeus

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"sync"
	"time"

	"resty.dev/v3"

	"github.com/vk/travelbotgo/internal/cache"
	"github.com/vk/travelbotgo/internal/ctxlog"
)

// ErrUnavailable marks failures that mean the travel backend cannot be
// reached at all (auth down, network refused). The HTTP layer maps it to
// 503.
var ErrUnavailable = errors.New("amadeus: service unavailable")

const (
	// maxHotels caps the number of hotels returned per city.
	maxHotels = 8

	// tokenExpiryMargin refreshes the OAuth token this long before the
	// server-reported expiry.
	tokenExpiryMargin = 5 * time.Minute

	cityCodeTTL  = time.Hour
	hotelListTTL = 10 * time.Minute
)

// Client calls the Amadeus self-service APIs.
type Client struct {
	http         *resty.Client
	clientID     string
	clientSecret string

	mu          sync.Mutex
	token       string
	tokenExpiry time.Time

	lookups *cache.TTL
}

// NewClient creates an Amadeus client. timeout bounds each HTTP call.
func NewClient(baseURL, clientID, clientSecret string, timeout time.Duration) *Client {
	httpClient := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout)

	return &Client{
		http:         httpClient,
		clientID:     clientID,
		clientSecret: clientSecret,
		lookups:      cache.New(cityCodeTTL),
	}
}

// Close releases the underlying HTTP client resources.
func (c *Client) Close() error {
	return c.http.Close()
}

// AccessToken returns a valid OAuth token, fetching a new one when the
// cached token is missing or close to expiry.
func (c *Client) AccessToken(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.token != "" && time.Now().Before(c.tokenExpiry) {
		return c.token, nil
	}

	logger := ctxlog.FromContext(ctx)
	logger.Debug("Fetching new Amadeus access token.")

	var result tokenResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetFormData(map[string]string{
			"grant_type":    "client_credentials",
			"client_id":     c.clientID,
			"client_secret": c.clientSecret,
		}).
		SetResult(&result).
		Post("/v1/security/oauth2/token")
	if err != nil {
		return "", fmt.Errorf("%w: token request failed: %v", ErrUnavailable, err)
	}
	if !resp.IsSuccess() {
		return "", fmt.Errorf("%w: token request returned %s: %s", ErrUnavailable, resp.Status(), resp.String())
	}
	if result.AccessToken == "" {
		return "", fmt.Errorf("%w: token response had no access_token", ErrUnavailable)
	}

	c.token = result.AccessToken
	c.tokenExpiry = time.Now().Add(time.Duration(result.ExpiresIn)*time.Second - tokenExpiryMargin)
	logger.Debug("Amadeus access token refreshed.", "expires_in", result.ExpiresIn)
	return c.token, nil
}

// Health verifies the backend is reachable by obtaining a token.
func (c *Client) Health(ctx context.Context) error {
	_, err := c.AccessToken(ctx)
	return err
}

// CityCode resolves a city name to its IATA city code. Returns "" with a
// nil error when the city is unknown to Amadeus.
func (c *Client) CityCode(ctx context.Context, cityName string) (string, error) {
	cacheKey := "city:" + strings.ToLower(cityName)
	if cached, ok := c.lookups.Get(cacheKey); ok {
		return cached.(string), nil
	}

	token, err := c.AccessToken(ctx)
	if err != nil {
		return "", err
	}

	var result locationsResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetAuthToken(token).
		SetQueryParams(map[string]string{
			"keyword":     cityName,
			"subType":     "CITY",
			"page[limit]": "1",
		}).
		SetResult(&result).
		Get("/v1/reference-data/locations")
	if err != nil {
		return "", fmt.Errorf("city lookup for %q failed: %w", cityName, err)
	}
	if !resp.IsSuccess() {
		return "", fmt.Errorf("city lookup for %q returned %s", cityName, resp.Status())
	}

	code := ""
	if len(result.Data) > 0 {
		code = result.Data[0].IataCode
	}
	c.lookups.Set(cacheKey, code, cityCodeTTL)
	return code, nil
}

// HotelsByCity lists up to maxHotels hotels for an IATA city code. Entries
// without a name or id are dropped.
func (c *Client) HotelsByCity(ctx context.Context, cityCode string) ([]Hotel, error) {
	cacheKey := "hotels:" + cityCode
	if cached, ok := c.lookups.Get(cacheKey); ok {
		return cached.([]Hotel), nil
	}

	token, err := c.AccessToken(ctx)
	if err != nil {
		return nil, err
	}

	var result hotelsResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetAuthToken(token).
		SetQueryParam("cityCode", cityCode).
		SetResult(&result).
		Get("/v1/reference-data/locations/hotels/by-city")
	if err != nil {
		return nil, fmt.Errorf("hotel search for city %s failed: %w", cityCode, err)
	}
	if !resp.IsSuccess() {
		return nil, fmt.Errorf("hotel search for city %s returned %s: %s", cityCode, resp.Status(), resp.String())
	}

	hotels := make([]Hotel, 0, maxHotels)
	for _, h := range result.Data {
		if h.Name == "" || h.ID == "" {
			continue
		}
		hotels = append(hotels, h)
		if len(hotels) == maxHotels {
			break
		}
	}

	c.lookups.Set(cacheKey, hotels, hotelListTTL)
	return hotels, nil
}

// HotelRating fetches the guest sentiment rating for one hotel and renders
// it as a star string like "⭐⭐⭐ (61/100)". Returns "" with a nil error
// when no sentiment data exists.
func (c *Client) HotelRating(ctx context.Context, hotelID string) (string, error) {
	token, err := c.AccessToken(ctx)
	if err != nil {
		return "", err
	}

	var result sentimentsResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetAuthToken(token).
		SetQueryParam("hotelIds", hotelID).
		SetResult(&result).
		Get("/v2/e-reputation/hotel-sentiments")
	if err != nil {
		return "", fmt.Errorf("sentiment lookup for hotel %s failed: %w", hotelID, err)
	}
	if !resp.IsSuccess() {
		return "", fmt.Errorf("sentiment lookup for hotel %s returned %s", hotelID, resp.Status())
	}

	if len(result.Data) == 0 || result.Data[0].OverallRating == 0 {
		return "", nil
	}
	return formatRating(result.Data[0].OverallRating), nil
}

// formatRating converts a 1-100 rating to a 1-5 star display string.
func formatRating(overall int) string {
	stars := int(math.Round(float64(overall) / 20))
	if stars < 1 {
		stars = 1
	}
	if stars > 5 {
		stars = 5
	}
	return strings.Repeat("⭐", stars) + fmt.Sprintf(" (%d/100)", overall)
}
