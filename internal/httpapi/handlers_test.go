package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/travelbotgo/internal/amadeus"
	"github.com/vk/travelbotgo/internal/chat"
)

// fakeBot is a scriptable Bot.
type fakeBot struct {
	resp      *chat.Response
	err       error
	healthErr error
	gotMsg    string
}

func (f *fakeBot) ProcessMessage(_ context.Context, message string) (*chat.Response, error) {
	f.gotMsg = message
	return f.resp, f.err
}

func (f *fakeBot) Health(context.Context) error {
	return f.healthErr
}

func doRequest(t *testing.T, bot Bot, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
	}
	rec := httptest.NewRecorder()
	Handler(bot).ServeHTTP(rec, req)
	return rec
}

func TestRoot(t *testing.T) {
	t.Parallel()

	rec := doRequest(t, &fakeBot{}, http.MethodGet, "/", "")

	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "running", body["status"])
}

func TestRoot_UnknownPathIs404(t *testing.T) {
	t.Parallel()

	rec := doRequest(t, &fakeBot{}, http.MethodGet, "/nope", "")

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestLiveness(t *testing.T) {
	t.Parallel()

	// The liveness probe must succeed even when the backend is down.
	rec := doRequest(t, &fakeBot{healthErr: amadeus.ErrUnavailable}, http.MethodGet, "/health", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "OK\n", rec.Body.String())
}

func TestHealth_Healthy(t *testing.T) {
	t.Parallel()

	rec := doRequest(t, &fakeBot{}, http.MethodGet, "/api/v1/health", "")

	require.Equal(t, http.StatusOK, rec.Code)
	var status healthStatus
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &status))
	assert.Equal(t, "healthy", status.Status)
	assert.False(t, status.Timestamp.IsZero())
}

func TestHealth_Unhealthy(t *testing.T) {
	t.Parallel()

	bot := &fakeBot{healthErr: fmt.Errorf("%w: auth refused", amadeus.ErrUnavailable)}

	rec := doRequest(t, bot, http.MethodGet, "/api/v1/health", "")

	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
	var status healthStatus
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &status))
	assert.Equal(t, "unhealthy", status.Status)
	assert.Contains(t, status.Error, "auth refused")
}

func TestChat_Success(t *testing.T) {
	t.Parallel()

	// Arrange
	bot := &fakeBot{
		resp: &chat.Response{
			Response:  "🏨 Here are available hotels in Paris",
			Hotels:    []chat.HotelInfo{{Name: "Hotel Lumière", Rating: "⭐⭐⭐ (61/100)", Location: "Paris"}},
			Timestamp: time.Now().UTC(),
		},
	}

	// Act
	rec := doRequest(t, bot, http.MethodPost, "/api/v1/chat", `{"message":"I want hotels in Paris"}`)

	// Assert
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "I want hotels in Paris", bot.gotMsg)
	var resp chat.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Hotels, 1)
	assert.Equal(t, "Hotel Lumière", resp.Hotels[0].Name)
	assert.Nil(t, resp.Hotels[0].Price)
}

func TestChat_EmptyMessage(t *testing.T) {
	t.Parallel()

	rec := doRequest(t, &fakeBot{}, http.MethodPost, "/api/v1/chat", `{"message":"   "}`)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "must not be empty")
}

func TestChat_MalformedJSON(t *testing.T) {
	t.Parallel()

	rec := doRequest(t, &fakeBot{}, http.MethodPost, "/api/v1/chat", `{"message":`)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "detail")
}

func TestChat_BackendUnavailable(t *testing.T) {
	t.Parallel()

	bot := &fakeBot{err: fmt.Errorf("%w: token refused", amadeus.ErrUnavailable)}

	rec := doRequest(t, bot, http.MethodPost, "/api/v1/chat", `{"message":"hotels in Paris"}`)

	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), "temporarily unavailable")
}

func TestChat_UnexpectedError(t *testing.T) {
	t.Parallel()

	bot := &fakeBot{err: errors.New("boom")}

	rec := doRequest(t, bot, http.MethodPost, "/api/v1/chat", `{"message":"hotels in Paris"}`)

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "having trouble")
}

func TestChat_MethodNotAllowed(t *testing.T) {
	t.Parallel()

	rec := doRequest(t, &fakeBot{}, http.MethodGet, "/api/v1/chat", "")

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestPreview(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "short", preview("short"))
	long := strings.Repeat("é", 150)
	assert.Equal(t, strings.Repeat("é", 100)+"...", preview(long))
}
