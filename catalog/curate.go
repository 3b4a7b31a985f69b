package catalog

import (
	"fmt"
	"math"
)

// Offline curation helpers. These back the calibrate binary and the dataset
// build pipeline; nothing here runs in the request path.

// hubAirports are the airports that get the higher daily-frequency tiers when
// synthesizing routes.
var hubAirports = map[string]bool{
	"ATL": true, "ORD": true, "DFW": true, "DEN": true, "JFK": true,
	"LAX": true, "SFO": true, "MIA": true, "EWR": true, "IAH": true,
	"LHR": true, "CDG": true, "FRA": true, "AMS": true, "IST": true,
	"DXB": true, "DOH": true, "SIN": true, "HKG": true, "NRT": true,
}

// EstimateDurationMinutes derives a nominal block time from great-circle
// distance: cruise at 500 mph plus 30 minutes for taxi, climb and descent.
func EstimateDurationMinutes(distanceMiles float64) int {
	return int(distanceMiles/500*60) + 30
}

// EstimatePrice derives an economy base price from distance, tiered so short
// hops keep a floor and long hauls flatten out. Rounded to the nearest $5.
func EstimatePrice(distanceMiles float64) float64 {
	var price float64
	switch {
	case distanceMiles < 500:
		price = 120 + distanceMiles*0.15
	case distanceMiles < 1000:
		price = 180 + distanceMiles*0.12
	case distanceMiles < 1500:
		price = 220 + distanceMiles*0.09
	default:
		price = 280 + distanceMiles*0.06
	}
	return RoundToFive(price)
}

// EstimateFrequency derives daily departures: hub-to-hub pairs run more
// rotations, and frequency drops with distance.
func EstimateFrequency(distanceMiles float64, from, to string) int {
	hubToHub := hubAirports[from] && hubAirports[to]

	var freq int
	switch {
	case distanceMiles < 500:
		freq = 8
	case distanceMiles < 1000:
		freq = 6
	case distanceMiles < 1500:
		freq = 5
	default:
		freq = 3
	}
	if !hubToHub {
		freq = freq / 2
		if freq < 1 {
			freq = 1
		}
	}
	return freq
}

// RoundToFive rounds a dollar amount to the nearest $5.
func RoundToFive(price float64) float64 {
	return math.Round(price/5) * 5
}

// MissingReverse reports every route whose reverse pair is absent from the
// table. The catalog is allowed to be asymmetric at runtime; this is the
// offline report that drives filling the gaps.
func (t *Table) MissingReverse() []Route {
	var gaps []Route
	for _, r := range t.routes {
		if _, ok := t.Find(r.To, r.From); !ok {
			gaps = append(gaps, r)
		}
	}
	return gaps
}

// SynthesizeReverse builds the mirror of a route: endpoints and countries
// swapped, carrier and pricing preserved.
func SynthesizeReverse(r Route) Route {
	return Route{
		From:               r.To,
		To:                 r.From,
		CarrierName:        r.CarrierName,
		CarrierCode:        r.CarrierCode,
		BasePrice:          r.BasePrice,
		NominalDuration:    r.NominalDuration,
		DailyFrequency:     r.DailyFrequency,
		OriginCountry:      r.DestinationCountry,
		DestinationCountry: r.OriginCountry,
	}
}

// BuildRoute synthesizes a complete catalog entry from distance using the
// estimation formulas above.
func BuildRoute(from, to, carrierName, carrierCode, originCountry, destinationCountry string, distanceMiles float64) Route {
	minutes := EstimateDurationMinutes(distanceMiles)
	return Route{
		From:               from,
		To:                 to,
		CarrierName:        carrierName,
		CarrierCode:        carrierCode,
		BasePrice:          EstimatePrice(distanceMiles),
		NominalDuration:    formatMinutes(minutes),
		DailyFrequency:     EstimateFrequency(distanceMiles, from, to),
		OriginCountry:      originCountry,
		DestinationCountry: destinationCountry,
	}
}

func formatMinutes(minutes int) string {
	h := minutes / 60
	m := minutes % 60
	if m > 0 {
		return fmt.Sprintf("%dh %dm", h, m)
	}
	return fmt.Sprintf("%dh", h)
}
