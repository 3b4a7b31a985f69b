package handlers

import (
	"errors"
	"log"
	"math/rand"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/spf13/cast"

	"skyfare/catalog"
	"skyfare/database"
	"skyfare/services"
)

var routeTable *catalog.Table

// SetRouteTable installs the catalog loaded at startup. The table is
// immutable, so handlers read it without coordination.
func SetRouteTable(t *catalog.Table) {
	routeTable = t
}

// SearchRequest is the storefront's wire format: every field arrives as a
// string or numeric string.
type SearchRequest struct {
	FromAirport   string      `json:"fromAirport" binding:"required"`
	ToAirport     string      `json:"toAirport" binding:"required"`
	DepartureDate string      `json:"departureDate" binding:"required"`
	ReturnDate    string      `json:"returnDate"`
	Passengers    interface{} `json:"passengers"`
	FlightClass   string      `json:"flightClass"`
	TripType      string      `json:"tripType"`
}

type SearchResponse struct {
	SearchID           string                 `json:"search_id,omitempty"`
	Flights            []services.FlightOffer `json:"flights"`
	SearchParams       SearchParams           `json:"searchParams"`
	NoFlightsAvailable bool                   `json:"noFlightsAvailable,omitempty"`
	Message            string                 `json:"message,omitempty"`
}

type SearchParams struct {
	FromAirport   string `json:"fromAirport"`
	ToAirport     string `json:"toAirport"`
	DepartureDate string `json:"departureDate"`
	ReturnDate    string `json:"returnDate,omitempty"`
	Passengers    int    `json:"passengers"`
	FlightClass   string `json:"flightClass"`
	TripType      string `json:"tripType"`
}

func SearchHandler(c *gin.Context) {
	var req SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	req.FromAirport = strings.ToUpper(strings.TrimSpace(req.FromAirport))
	req.ToAirport = strings.ToUpper(strings.TrimSpace(req.ToAirport))

	if len(req.FromAirport) != 3 || len(req.ToAirport) != 3 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Airport codes must be exactly 3 characters (e.g. JFK, CDG)"})
		return
	}

	depDate, err := time.Parse("2006-01-02", req.DepartureDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid departure date format. Use YYYY-MM-DD"})
		return
	}

	tripType := strings.ToLower(strings.TrimSpace(req.TripType))
	if tripType == "" {
		tripType = "oneway"
	}
	if tripType == "roundtrip" {
		retDate, err := time.Parse("2006-01-02", req.ReturnDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid return date format. Use YYYY-MM-DD"})
			return
		}
		if !retDate.After(depDate) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Return date must be after departure date"})
			return
		}
	}

	passengers := cast.ToInt(req.Passengers)
	if passengers <= 0 {
		passengers = 1
	}

	coreReq := services.SearchRequest{
		FromAirport:        req.FromAirport,
		ToAirport:          req.ToAirport,
		OriginCountry:      resolveCountry(req.FromAirport),
		DestinationCountry: resolveCountry(req.ToAirport),
		DepartureDate:      req.DepartureDate,
		ReturnDate:         req.ReturnDate,
		Passengers:         passengers,
		FlightClass:        req.FlightClass,
		TripType:           tripType,
	}

	// Per-request source: searches stay independently reproducible under
	// concurrency.
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	result, err := services.SearchOffers(coreReq, routeTable, rng)
	if err != nil {
		if errors.Is(err, services.ErrInvalidSearchRequest) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Flight search failed"})
		return
	}

	resp := SearchResponse{
		Flights: result.Offers,
		SearchParams: SearchParams{
			FromAirport:   req.FromAirport,
			ToAirport:     req.ToAirport,
			DepartureDate: req.DepartureDate,
			ReturnDate:    req.ReturnDate,
			Passengers:    passengers,
			FlightClass:   coreReq.FlightClass,
			TripType:      tripType,
		},
	}

	if result.NoOffersAvailable {
		resp.NoFlightsAvailable = true
		resp.Message = "No flights available for this route"
		c.JSON(http.StatusOK, resp)
		return
	}

	if database.Ready() {
		searchID := uuid.New().String()
		if err := database.SaveSearch(&database.Search{
			ID:            searchID,
			FromAirport:   req.FromAirport,
			ToAirport:     req.ToAirport,
			DepartureDate: req.DepartureDate,
			ReturnDate:    req.ReturnDate,
			Passengers:    passengers,
			FlightClass:   coreReq.FlightClass,
			TripType:      tripType,
		}); err != nil {
			// The offers are already computed; losing the analytics row should
			// not fail the search.
			log.Printf("❌ Failed to save search: %v", err)
		} else {
			resp.SearchID = searchID
		}
	}

	c.JSON(http.StatusOK, resp)
}

func HealthHandler(c *gin.Context) {
	status := gin.H{"status": "ok"}
	if routeTable != nil {
		status["catalog_version"] = routeTable.Version()
		status["routes"] = routeTable.Len()
	}
	c.JSON(http.StatusOK, status)
}
