package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGenerateBookingPDF(t *testing.T) {
	ret := FlightOffer{
		Carrier: "American Airlines", FlightNumber: "AA412",
		Departure: FlightEndpoint{Airport: "CDG", Time: "10:20", Date: "2026-10-19"},
		Arrival:   FlightEndpoint{Airport: "JFK", Time: "18:35", Date: "2026-10-19"},
		Duration:  "8h 15m", Stops: 0, CabinClass: "economy",
	}
	offer := FlightOffer{
		Carrier: "American Airlines", FlightNumber: "AA308",
		Departure: FlightEndpoint{Airport: "JFK", Time: "09:00", Date: "2026-10-12"},
		Arrival:   FlightEndpoint{Airport: "CDG", Time: "17:55", Date: "2026-10-12"},
		Duration:  "8h 55m", Stops: 1, LayoverAirport: "DFW", CabinClass: "economy",
		OriginalPrice: 1240, DiscountedPrice: 744, DiscountPercent: 40,
		Return: &ret,
	}

	data, err := GenerateBookingPDF(BookingDocument{
		BookingID:     "4f7e2a10-0000-0000-0000-000000000000",
		PassengerName: "Ada Lovelace",
		Email:         "ada@example.com",
		Passengers:    2,
		Offer:         offer,
		ServiceFee:    50,
		CreatedAt:     time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC),
	})
	assert.NoError(t, err)
	assert.NotEmpty(t, data)
	assert.Equal(t, "%PDF", string(data[:4]))
}
