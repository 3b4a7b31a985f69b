package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"skyfare/catalog"
)

func testRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	table, err := catalog.Load()
	assert.NoError(t, err)
	SetRouteTable(table)

	r := gin.New()
	r.GET("/health", HealthHandler)
	r.POST("/flights/search", SearchHandler)
	r.POST("/bookings", BookingHandler)
	r.GET("/bookings/:id/document", DownloadHandler)
	return r
}

func postJSON(r *gin.Engine, path string, body map[string]interface{}) *httptest.ResponseRecorder {
	raw, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHealthHandler(t *testing.T) {
	r := testRouter(t)
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var body map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
	assert.NotEmpty(t, body["catalog_version"])
}

func TestSearchHandlerValidation(t *testing.T) {
	r := testRouter(t)

	cases := []struct {
		name string
		body map[string]interface{}
	}{
		{"missing fields", map[string]interface{}{"fromAirport": "JFK"}},
		{"bad airport length", map[string]interface{}{
			"fromAirport": "JFKX", "toAirport": "CDG", "departureDate": "2026-10-12",
		}},
		{"bad date", map[string]interface{}{
			"fromAirport": "JFK", "toAirport": "CDG", "departureDate": "12/10/2026",
		}},
		{"roundtrip bad return date", map[string]interface{}{
			"fromAirport": "JFK", "toAirport": "CDG", "departureDate": "2026-10-12",
			"tripType": "roundtrip", "returnDate": "not-a-date",
		}},
		{"return before departure", map[string]interface{}{
			"fromAirport": "JFK", "toAirport": "CDG", "departureDate": "2026-10-12",
			"tripType": "roundtrip", "returnDate": "2026-10-01",
		}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := postJSON(r, "/flights/search", tc.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestSearchHandlerReturnsOffers(t *testing.T) {
	r := testRouter(t)

	w := postJSON(r, "/flights/search", map[string]interface{}{
		"fromAirport":   "jfk",
		"toAirport":     "cdg",
		"departureDate": "2026-10-12",
		"passengers":    "2", // numeric string, per the storefront contract
		"flightClass":   "economy",
		"tripType":      "oneway",
	})
	assert.Equal(t, http.StatusOK, w.Code)

	var resp SearchResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.NoFlightsAvailable)
	assert.NotEmpty(t, resp.Flights)
	assert.Equal(t, "JFK", resp.SearchParams.FromAirport)
	assert.Equal(t, 2, resp.SearchParams.Passengers)

	for _, offer := range resp.Flights {
		assert.InDelta(t, offer.OriginalPrice*0.6, offer.DiscountedPrice, 1e-6)
	}
}

func TestSearchHandlerUnknownAirportNoService(t *testing.T) {
	r := testRouter(t)

	w := postJSON(r, "/flights/search", map[string]interface{}{
		"fromAirport":   "XYZ",
		"toAirport":     "JFK",
		"departureDate": "2026-10-12",
	})
	assert.Equal(t, http.StatusOK, w.Code)

	var resp SearchResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.NoFlightsAvailable)
	assert.Empty(t, resp.Flights)
	assert.NotEmpty(t, resp.Message)
}

func TestSearchHandlerRoundTrip(t *testing.T) {
	r := testRouter(t)

	w := postJSON(r, "/flights/search", map[string]interface{}{
		"fromAirport":   "JFK",
		"toAirport":     "CDG",
		"departureDate": "2026-10-12",
		"returnDate":    "2026-10-19",
		"tripType":      "roundtrip",
	})
	assert.Equal(t, http.StatusOK, w.Code)

	var resp SearchResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Flights)
	for _, offer := range resp.Flights {
		assert.NotNil(t, offer.Return)
		assert.Equal(t, offer.Carrier, offer.Return.Carrier)
		assert.Equal(t, "CDG", offer.Return.Departure.Airport)
		assert.Equal(t, "JFK", offer.Return.Arrival.Airport)
	}
}

func TestBookingHandlerValidation(t *testing.T) {
	r := testRouter(t)

	// Required fields missing.
	w := postJSON(r, "/bookings", map[string]interface{}{"passenger_name": "Ada Lovelace"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Offer that is not a flight offer.
	w = postJSON(r, "/bookings", map[string]interface{}{
		"passenger_name": "Ada Lovelace",
		"offer":          map[string]interface{}{"foo": "bar"},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestBookingHandlerStorageUnavailable(t *testing.T) {
	// No database configured in tests: a valid booking request is refused
	// cleanly rather than half-processed.
	r := testRouter(t)

	w := postJSON(r, "/bookings", map[string]interface{}{
		"passenger_name": "Ada Lovelace",
		"passengers":     "2",
		"offer": map[string]interface{}{
			"id":               "test-offer",
			"carrier":          "American Airlines",
			"flight_number":    "AA123",
			"duration":         "7h 25m",
			"discounted_price": 372.0,
		},
	})
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestDownloadHandlerStorageUnavailable(t *testing.T) {
	r := testRouter(t)
	req := httptest.NewRequest(http.MethodGet, "/bookings/some-id/document", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestResolveCountry(t *testing.T) {
	assert.Equal(t, "US", resolveCountry("JFK"))
	assert.Equal(t, "FR", resolveCountry("CDG"))
	assert.Equal(t, "", resolveCountry("XYZ"))
}
