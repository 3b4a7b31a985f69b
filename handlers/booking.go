package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/spf13/cast"

	"skyfare/database"
	"skyfare/services"
)

// The flat per-passenger charge actually captured by payment. The synthesized
// fare itself is never charged.
const serviceFeePerPassenger = 25.00

type BookingRequest struct {
	SearchID      string          `json:"search_id"`
	Offer         json.RawMessage `json:"offer" binding:"required"`
	PassengerName string          `json:"passenger_name" binding:"required"`
	Email         string          `json:"email"`
	Passengers    interface{}     `json:"passengers"`
}

type BookingResponse struct {
	BookingID   string  `json:"booking_id"`
	ServiceFee  float64 `json:"service_fee"`
	DocumentURL string  `json:"document_url"`
	Message     string  `json:"message"`
}

// BookingHandler persists a booking around an offer snapshot and renders its
// confirmation document up front. Payment capture happens in the gateway
// layer, which later fills payment_ref.
func BookingHandler(c *gin.Context) {
	var req BookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	var offer services.FlightOffer
	if err := json.Unmarshal(req.Offer, &offer); err != nil || offer.Carrier == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid flight offer"})
		return
	}

	passengers := cast.ToInt(req.Passengers)
	if passengers <= 0 {
		passengers = 1
	}

	if !database.Ready() {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Booking storage unavailable"})
		return
	}

	bookingID := uuid.New().String()
	fee := serviceFeePerPassenger * float64(passengers)

	pdfBytes, err := services.GenerateBookingPDF(services.BookingDocument{
		BookingID:     bookingID,
		PassengerName: req.PassengerName,
		Email:         req.Email,
		Passengers:    passengers,
		Offer:         offer,
		ServiceFee:    fee,
		CreatedAt:     time.Now(),
	})
	if err != nil {
		log.Printf("❌ Failed to render booking PDF: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate booking document"})
		return
	}

	if err := database.SaveBooking(&database.Booking{
		ID:            bookingID,
		SearchID:      req.SearchID,
		OfferJSON:     string(req.Offer),
		PassengerName: req.PassengerName,
		Email:         req.Email,
		Passengers:    passengers,
		ServiceFee:    fee,
		PDFData:       pdfBytes,
	}); err != nil {
		log.Printf("❌ Failed to save booking: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save booking"})
		return
	}

	c.JSON(http.StatusCreated, BookingResponse{
		BookingID:   bookingID,
		ServiceFee:  fee,
		DocumentURL: "/bookings/" + bookingID + "/document",
		Message:     "Booking created. Download your confirmation document.",
	})
}
