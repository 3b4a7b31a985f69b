package services

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"
)

// BookingDocument carries everything the confirmation/receipt PDF renders.
type BookingDocument struct {
	BookingID     string
	PassengerName string
	Email         string
	Passengers    int
	Offer         FlightOffer
	ServiceFee    float64
	CreatedAt     time.Time
}

// GenerateBookingPDF renders the dummy booking confirmation plus the service
// fee receipt and returns raw bytes (no filesystem needed). The document is
// watermarked: the flight itself is simulated and only the service fee is a
// real charge.
func GenerateBookingPDF(doc BookingDocument) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(20, 20, 20)
	pdf.AddPage()

	// ── Watermark ────────────────────────────────────────────
	pdf.SetTextColor(230, 230, 230)
	pdf.SetFont("Helvetica", "B", 55)
	pdf.TransformBegin()
	pdf.TransformRotate(42, 60, 200)
	pdf.Text(60, 200, "SAMPLE")
	pdf.TransformEnd()
	pdf.SetTextColor(0, 0, 0)

	// ── Header Bar ───────────────────────────────────────────
	pdf.SetFillColor(13, 24, 37)
	pdf.Rect(0, 0, 210, 28, "F")
	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Helvetica", "B", 18)
	pdf.SetXY(20, 8)
	pdf.CellFormat(100, 10, "SkyFare", "", 0, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(212, 168, 67)
	pdf.SetXY(20, 18)
	pdf.CellFormat(170, 6, "Booking Confirmation", "", 1, "L", false, 0, "")

	pdf.SetY(35)
	pdf.SetTextColor(0, 0, 0)

	// ── Disclaimer ───────────────────────────────────────────
	pdf.SetFillColor(255, 248, 225)
	pdf.SetDrawColor(212, 168, 67)
	pdf.SetTextColor(130, 90, 20)
	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetLineWidth(0.4)
	y := pdf.GetY()
	pdf.Rect(20, y, 170, 12, "FD")
	pdf.SetXY(23, y+2)
	pdf.MultiCell(164, 4,
		"This is a sample booking confirmation, not a real flight ticket. "+
			"Only the service fee below has been charged. Flight details are simulated.",
		"", "C", false)

	pdf.SetTextColor(0, 0, 0)
	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.2)
	pdf.Ln(6)

	// ── Section Helper ───────────────────────────────────────
	sectionHeader := func(title string) {
		pdf.SetFillColor(13, 24, 37)
		pdf.SetTextColor(255, 255, 255)
		pdf.SetFont("Helvetica", "B", 11)
		pdf.CellFormat(170, 8, "  "+title, "", 1, "L", true, 0, "")
		pdf.SetTextColor(0, 0, 0)
		pdf.Ln(2)
	}
	row := func(label, value string) {
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(55, 6, label, "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		pdf.CellFormat(115, 6, value, "", 1, "L", false, 0, "")
	}

	// ── Passenger ────────────────────────────────────────────
	sectionHeader("Passenger")
	row("Name", doc.PassengerName)
	if doc.Email != "" {
		row("Email", doc.Email)
	}
	row("Travelers", fmt.Sprintf("%d", doc.Passengers))
	row("Booking Reference", doc.BookingID)
	pdf.Ln(4)

	// ── Flight ───────────────────────────────────────────────
	offer := doc.Offer
	sectionHeader("Outbound Flight")
	renderLeg(row, offer)
	if offer.Return != nil {
		pdf.Ln(4)
		sectionHeader("Return Flight")
		renderLeg(row, *offer.Return)
	}
	pdf.Ln(4)

	// ── Receipt ──────────────────────────────────────────────
	sectionHeader("Service Fee Receipt")
	row("Quoted Fare (not charged)", fmt.Sprintf("$%.2f", offer.DiscountedPrice))
	row("Service Fee (charged)", fmt.Sprintf("$%.2f", doc.ServiceFee))
	row("Issued", doc.CreatedAt.Format("2006-01-02 15:04 MST"))

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render booking pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func renderLeg(row func(label, value string), leg FlightOffer) {
	row("Airline", fmt.Sprintf("%s (%s)", leg.Carrier, leg.FlightNumber))
	row("Departure", fmt.Sprintf("%s  %s %s", leg.Departure.Airport, leg.Departure.Date, leg.Departure.Time))
	row("Arrival", fmt.Sprintf("%s  %s %s", leg.Arrival.Airport, leg.Arrival.Date, leg.Arrival.Time))
	row("Duration", leg.Duration)
	if leg.Stops == 0 {
		row("Stops", "Nonstop")
	} else if leg.LayoverAirport != "" {
		row("Stops", fmt.Sprintf("%d (via %s)", leg.Stops, leg.LayoverAirport))
	} else {
		row("Stops", fmt.Sprintf("%d", leg.Stops))
	}
	row("Cabin", leg.CabinClass)
}
