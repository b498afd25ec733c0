package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	intconfig "parkops/internal/config"
	"parkops/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type apiClient struct {
	t      *testing.T
	router *gin.Engine
	token  string
}

func newAPIClient(t *testing.T) *apiClient {
	t.Helper()
	gin.SetMode(gin.TestMode)
	env := intconfig.Env{JWTSecret: "test-secret", AllowedOrigins: []string{"http://localhost:3000"}}
	return &apiClient{t: t, router: NewRouter(env, store.New())}
}

func (c *apiClient) do(method, path string, body any) *httptest.ResponseRecorder {
	c.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(c.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	w := httptest.NewRecorder()
	c.router.ServeHTTP(w, req)
	return w
}

func (c *apiClient) decode(w *httptest.ResponseRecorder) map[string]any {
	c.t.Helper()
	var out map[string]any
	require.NoError(c.t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

// login registers a park plus a staff account and stores the token.
func (c *apiClient) login() string {
	c.t.Helper()
	w := c.do(http.MethodPost, "/api/parks", gin.H{"name": "Jibowu Park", "address": "Yaba, Lagos"})
	require.Equal(c.t, http.StatusCreated, w.Code)
	parkID := c.decode(w)["id"].(string)

	w = c.do(http.MethodPost, "/api/auth/register", gin.H{
		"parkId": parkID, "name": "Desk Staff", "email": "desk@park.test", "password": "secret1",
	})
	require.Equal(c.t, http.StatusCreated, w.Code)

	w = c.do(http.MethodPost, "/api/auth/login", gin.H{"email": "desk@park.test", "password": "secret1"})
	require.Equal(c.t, http.StatusOK, w.Code)
	c.token = c.decode(w)["token"].(string)
	return parkID
}

func TestHealthIsPublic(t *testing.T) {
	c := newAPIClient(t)
	w := c.do(http.MethodGet, "/api/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestScopedRoutesRequireToken(t *testing.T) {
	c := newAPIClient(t)
	w := c.do(http.MethodGet, "/api/trips", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	c := newAPIClient(t)
	c.login()
	c.token = ""
	w := c.do(http.MethodPost, "/api/auth/login", gin.H{"email": "desk@park.test", "password": "nope"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestBookingFlowOverHTTP(t *testing.T) {
	c := newAPIClient(t)
	c.login()
	date := time.Now().AddDate(0, 0, 7).Format("2006-01-02")

	w := c.do(http.MethodPost, "/api/routes", gin.H{
		"destination": "Abuja", "basePrice": 15000, "vehicleCapacity": 2,
	})
	require.Equal(t, http.StatusCreated, w.Code)
	routeID := c.decode(w)["id"].(string)

	w = c.do(http.MethodPost, "/api/trips", gin.H{
		"routeId": routeID, "date": date, "unitTime": "08:00", "vehicleId": "LAG-101-XA",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	trips := c.decode(w)["trips"].([]any)
	require.Len(t, trips, 1)
	tripID := trips[0].(map[string]any)["id"].(string)

	w = c.do(http.MethodPut, fmt.Sprintf("/api/trips/%s/publish", tripID), nil)
	require.Equal(t, http.StatusOK, w.Code)

	book := func(name, phone string) *httptest.ResponseRecorder {
		return c.do(http.MethodPost, "/api/bookings", gin.H{
			"tripId": tripID, "passengerName": name, "passengerPhone": phone, "amountPaid": 15000,
		})
	}

	w = book("Amaka Obi", "08031112222")
	require.Equal(t, http.StatusCreated, w.Code)
	res := c.decode(w)
	assert.NotEmpty(t, res["holdToken"])
	bookingID := res["booking"].(map[string]any)["id"].(string)

	w = book("Bola Ade", "08033334444")
	require.Equal(t, http.StatusCreated, w.Code)

	// Two seats sold; the third answers 409 with a machine-readable tag.
	w = book("Chidi Eze", "08035556666")
	require.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "SLOT_TAKEN", c.decode(w)["conflictType"])

	w = c.do(http.MethodPut, fmt.Sprintf("/api/bookings/%s/confirm", bookingID), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "CONFIRMED", c.decode(w)["status"])

	// Confirming twice is a state error.
	w = c.do(http.MethodPut, fmt.Sprintf("/api/bookings/%s/confirm", bookingID), nil)
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = c.do(http.MethodGet, "/api/bookings/search?q=amaka", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, c.decode(w)["bookings"].([]any), 1)

	w = c.do(http.MethodGet, "/api/stats/bookings", nil)
	require.Equal(t, http.StatusOK, w.Code)
	stats := c.decode(w)
	assert.Equal(t, float64(1), stats["confirmed"])
	assert.Equal(t, float64(1), stats["reserved"])
}

func TestTripManifestPDF(t *testing.T) {
	c := newAPIClient(t)
	c.login()
	date := time.Now().AddDate(0, 0, 7).Format("2006-01-02")

	w := c.do(http.MethodPost, "/api/routes", gin.H{
		"destination": "Abuja", "basePrice": 15000, "vehicleCapacity": 14,
	})
	require.Equal(t, http.StatusCreated, w.Code)
	routeID := c.decode(w)["id"].(string)

	w = c.do(http.MethodPost, "/api/trips", gin.H{
		"routeId": routeID, "date": date, "unitTime": "08:00", "vehicleId": "LAG-101-XA",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	tripID := c.decode(w)["trips"].([]any)[0].(map[string]any)["id"].(string)

	w = c.do(http.MethodGet, fmt.Sprintf("/api/trips/%s/manifest", tripID), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.True(t, bytes.HasPrefix(w.Body.Bytes(), []byte("%PDF")))
}
