package amadeus

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeAmadeus stands in for the Amadeus API. Each field holds the canned
// JSON for one endpoint; tokenCalls counts token requests.
type fakeAmadeus struct {
	tokenCalls  atomic.Int32
	tokenJSON   string
	tokenStatus int

	locationsJSON string
	hotelsJSON    string
	sentimentJSON string
}

func (f *fakeAmadeus) server(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/v1/security/oauth2/token", func(w http.ResponseWriter, r *http.Request) {
		f.tokenCalls.Add(1)
		require.Equal(t, http.MethodPost, r.Method)
		require.NoError(t, r.ParseForm())
		require.Equal(t, "client_credentials", r.PostForm.Get("grant_type"))
		if f.tokenStatus != 0 {
			http.Error(w, `{"error":"invalid_client"}`, f.tokenStatus)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(f.tokenJSON))
	})
	mux.HandleFunc("/v1/reference-data/locations", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "Bearer tok-1", r.Header.Get("Authorization"))
		require.Equal(t, "CITY", r.URL.Query().Get("subType"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(f.locationsJSON))
	})
	mux.HandleFunc("/v1/reference-data/locations/hotels/by-city", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(f.hotelsJSON))
	})
	mux.HandleFunc("/v2/e-reputation/hotel-sentiments", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(f.sentimentJSON))
	})
	return httptest.NewServer(mux)
}

func newTestClient(t *testing.T, f *fakeAmadeus) *Client {
	t.Helper()
	if f.tokenJSON == "" {
		f.tokenJSON = `{"access_token":"tok-1","expires_in":1799}`
	}
	srv := f.server(t)
	t.Cleanup(srv.Close)
	c := NewClient(srv.URL, "id", "secret", 5*time.Second)
	t.Cleanup(func() { c.Close() })
	return c
}

func TestAccessToken_CachedUntilExpiry(t *testing.T) {
	t.Parallel()

	// Arrange
	fake := &fakeAmadeus{}
	c := newTestClient(t, fake)
	ctx := context.Background()

	// Act: two calls should share one upstream token request.
	tok1, err := c.AccessToken(ctx)
	require.NoError(t, err)
	tok2, err := c.AccessToken(ctx)
	require.NoError(t, err)

	// Assert
	assert.Equal(t, "tok-1", tok1)
	assert.Equal(t, tok1, tok2)
	assert.Equal(t, int32(1), fake.tokenCalls.Load())
}

func TestAccessToken_AuthFailure(t *testing.T) {
	t.Parallel()

	fake := &fakeAmadeus{tokenStatus: http.StatusUnauthorized}
	c := newTestClient(t, fake)

	_, err := c.AccessToken(context.Background())

	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestCityCode(t *testing.T) {
	t.Parallel()

	fake := &fakeAmadeus{locationsJSON: `{"data":[{"iataCode":"PAR"}]}`}
	c := newTestClient(t, fake)

	code, err := c.CityCode(context.Background(), "Paris")

	require.NoError(t, err)
	assert.Equal(t, "PAR", code)
}

func TestCityCode_NotFound(t *testing.T) {
	t.Parallel()

	fake := &fakeAmadeus{locationsJSON: `{"data":[]}`}
	c := newTestClient(t, fake)

	code, err := c.CityCode(context.Background(), "Atlantis")

	require.NoError(t, err)
	assert.Empty(t, code, "unknown cities resolve to an empty code, not an error")
}

func TestHotelsByCity_CapsAndFilters(t *testing.T) {
	t.Parallel()

	// Arrange: ten hotels, one of them without an id.
	hotels := `{"data":[
		{"hotelId":"H1","name":"One"},{"hotelId":"","name":"NoID"},
		{"hotelId":"H2","name":"Two"},{"hotelId":"H3","name":"Three"},
		{"hotelId":"H4","name":"Four"},{"hotelId":"H5","name":"Five"},
		{"hotelId":"H6","name":"Six"},{"hotelId":"H7","name":"Seven"},
		{"hotelId":"H8","name":"Eight"},{"hotelId":"H9","name":"Nine"}
	]}`
	fake := &fakeAmadeus{hotelsJSON: hotels}
	c := newTestClient(t, fake)

	// Act
	got, err := c.HotelsByCity(context.Background(), "PAR")

	// Assert: entry without id dropped, list capped at 8.
	require.NoError(t, err)
	require.Len(t, got, 8)
	assert.Equal(t, "One", got[0].Name)
	assert.Equal(t, "H9", got[7].ID)
}

func TestHotelRating(t *testing.T) {
	t.Parallel()

	fake := &fakeAmadeus{sentimentJSON: `{"data":[{"hotelId":"H1","overallRating":61}]}`}
	c := newTestClient(t, fake)

	rating, err := c.HotelRating(context.Background(), "H1")

	require.NoError(t, err)
	assert.Equal(t, "⭐⭐⭐ (61/100)", rating)
}

func TestHotelRating_NoData(t *testing.T) {
	t.Parallel()

	fake := &fakeAmadeus{sentimentJSON: `{"data":[]}`}
	c := newTestClient(t, fake)

	rating, err := c.HotelRating(context.Background(), "H1")

	require.NoError(t, err)
	assert.Empty(t, rating)
}

func TestFormatRating_Clamps(t *testing.T) {
	t.Parallel()

	tests := []struct {
		overall int
		want    string
	}{
		{5, "⭐ (5/100)"},
		{50, "⭐⭐⭐ (50/100)"},
		{61, "⭐⭐⭐ (61/100)"},
		{90, "⭐⭐⭐⭐⭐ (90/100)"},
		{100, "⭐⭐⭐⭐⭐ (100/100)"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, formatRating(tt.overall))
	}
}
