package services

import (
	"errors"
	"sort"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"skyfare/catalog"
)

// ErrInvalidSearchRequest rejects a search before any synthesis: the caller
// must re-prompt the user. Business outcomes like "no service on this route"
// are regular results, never errors.
var ErrInvalidSearchRequest = errors.New("search request is missing origin, destination or date")

// Discount applied to every synthesized fare.
const discountPercent = 40

// Economy base fare range in USD; cabin multipliers scale it up.
const (
	economyFareFloor = 220.0
	economyFareSpan  = 760.0
)

var cabinMultipliers = map[string]float64{
	"economy":  1.0,
	"premium":  1.5,
	"business": 2.6,
	"first":    3.8,
}

// Share of fully synthetic international offers drawn from the long-haul
// block-time range instead of the short/medium one.
const probLongHaul = 0.35

// Amenity probabilities, drawn independently per offer.
const (
	probWiFi          = 0.70
	probMeals         = 0.60
	probEntertainment = 0.65
	probPower         = 0.55
)

// SearchRequest is the validated core input. Airports are IATA codes and the
// countries come from the airport directory; the core never sees raw user
// text.
type SearchRequest struct {
	FromAirport        string
	ToAirport          string
	OriginCountry      string
	DestinationCountry string
	DepartureDate      string
	ReturnDate         string
	Passengers         int
	FlightClass        string
	TripType           string
}

// FlightEndpoint is one side of a leg.
type FlightEndpoint struct {
	Airport string `json:"airport"`
	Time    string `json:"time"`
	Date    string `json:"date"`
}

// Amenities are the onboard services advertised for an offer.
type Amenities struct {
	WiFi          bool `json:"wifi"`
	Meals         bool `json:"meals"`
	Entertainment bool `json:"entertainment"`
	Power         bool `json:"power"`
}

// FlightOffer is a synthesized, bookable fare. Offers are created fresh per
// search and never persisted here; the booking layer stores a JSON snapshot.
type FlightOffer struct {
	ID              string         `json:"id"`
	Carrier         string         `json:"carrier"`
	CarrierCode     string         `json:"carrier_code"`
	FlightNumber    string         `json:"flight_number"`
	Departure       FlightEndpoint `json:"departure"`
	Arrival         FlightEndpoint `json:"arrival"`
	Duration        string         `json:"duration"`
	Stops           int            `json:"stops"`
	LayoverAirport  string         `json:"layover_airport,omitempty"`
	CabinClass      string         `json:"cabin_class"`
	OriginalPrice   float64        `json:"original_price"`
	DiscountedPrice float64        `json:"discounted_price"`
	DiscountPercent int            `json:"discount_percent"`
	Amenities       Amenities      `json:"amenities"`
	Return          *FlightOffer   `json:"return_offer,omitempty"`
}

// SearchResult distinguishes "no eligible carriers for this pair" (a valid
// no-service outcome) from an offer list that happens to be empty.
type SearchResult struct {
	Offers            []FlightOffer
	NoOffersAvailable bool
}

// SearchOffers synthesizes 3–6 priced offers for a search: eligible carriers
// for the country pair, realistic stop counts and durations, a fixed
// discount, and an optional mirrored return leg. Pure function of the request
// plus the random source; the route table is read-only.
func SearchOffers(req SearchRequest, table *catalog.Table, rng Rand) (SearchResult, error) {
	if req.FromAirport == "" || req.ToAirport == "" || req.DepartureDate == "" {
		return SearchResult{}, ErrInvalidSearchRequest
	}
	roundtrip := strings.EqualFold(req.TripType, "roundtrip")
	if roundtrip && req.ReturnDate == "" {
		return SearchResult{}, ErrInvalidSearchRequest
	}
	if req.Passengers <= 0 {
		req.Passengers = 1
	}

	eligible := EligibleCarriers(req.OriginCountry, req.DestinationCountry)
	if len(eligible) == 0 {
		return SearchResult{NoOffersAvailable: true, Offers: []FlightOffer{}}, nil
	}

	count := 3 + rng.Intn(4)

	var seed catalog.Route
	seeded := false
	if table != nil {
		if route, ok := table.Find(req.FromAirport, req.ToAirport); ok && carrierMatches(route.CarrierName, eligible) {
			seed = route
			seeded = true
		}
	}

	offers := make([]FlightOffer, 0, count)
	for i := 0; i < count; i++ {
		var offer FlightOffer
		if i == 0 && seeded {
			offer = synthesizeOffer(req, seed.CarrierName, seed.NominalDuration, routeAnchorPrice(seed, rng), rng)
		} else {
			carrier := eligible[rng.Intn(len(eligible))]
			offer = synthesizeOffer(req, carrier, "", 0, rng)
		}

		if roundtrip {
			ret := synthesizeReturn(req, offer, rng)
			offer.Return = &ret
		}
		offers = append(offers, offer)
	}

	offers = FilterOffersByEligibility(offers, req.OriginCountry, req.DestinationCountry)

	sort.Slice(offers, func(i, j int) bool {
		return offers[i].DiscountedPrice < offers[j].DiscountedPrice
	})

	return SearchResult{Offers: offers}, nil
}

// synthesizeOffer builds one outbound leg. nominalDuration and anchorPrice
// are zero-valued unless the catalog seeded this offer.
func synthesizeOffer(req SearchRequest, carrier, nominalDuration string, anchorPrice float64, rng Rand) FlightOffer {
	code := CarrierCode(carrier)

	if nominalDuration == "" {
		// Short/medium block time between 2h and 12h. International pairs mix
		// in long-haul candidates up to 19h so the ultra-long-haul tier is
		// reachable; the stop penalty stretches connecting itineraries further.
		minutes := 120 + rng.Intn(601)
		if !isDomesticUSA(req.OriginCountry, req.DestinationCountry) && rng.Float64() < probLongHaul {
			minutes = 480 + rng.Intn(661)
		}
		nominalDuration = FormatDuration(minutes)
	}
	profile := ComputeStops(nominalDuration, req.OriginCountry, req.DestinationCountry, code, rng)

	// Departures between 06:00 and 22:00 in five-minute steps.
	depMinute := 360 + rng.Intn(193)*5
	durationMinutes, err := ParseDurationMinutes(profile.AdjustedDuration)
	if err != nil {
		durationMinutes = 0
	}
	// Arrival wraps past midnight with the date unchanged; documents downstream
	// assume same-date semantics.
	arrMinute := (depMinute + durationMinutes) % (24 * 60)

	base := anchorPrice
	if base <= 0 {
		base = economyFareFloor + rng.Float64()*economyFareSpan
	}
	cabin := cabinOrDefault(req.FlightClass)
	base = catalog.RoundToFive(base * cabinMultipliers[cabin])

	original := base * float64(req.Passengers)
	discounted := original * (1 - float64(discountPercent)/100)

	offer := FlightOffer{
		ID:           uuid.New().String(),
		Carrier:      carrier,
		CarrierCode:  code,
		FlightNumber: code + strconv.Itoa(100+rng.Intn(900)),
		Departure: FlightEndpoint{
			Airport: req.FromAirport,
			Time:    clockTime(depMinute),
			Date:    req.DepartureDate,
		},
		Arrival: FlightEndpoint{
			Airport: req.ToAirport,
			Time:    clockTime(arrMinute),
			Date:    req.DepartureDate,
		},
		Duration:        profile.AdjustedDuration,
		Stops:           profile.Stops,
		CabinClass:      cabin,
		OriginalPrice:   original,
		DiscountedPrice: discounted,
		DiscountPercent: discountPercent,
		Amenities: Amenities{
			WiFi:          rng.Float64() < probWiFi,
			Meals:         rng.Float64() < probMeals,
			Entertainment: rng.Float64() < probEntertainment,
			Power:         rng.Float64() < probPower,
		},
	}
	if offer.Stops > 0 {
		offer.LayoverAirport = PickLayoverAirport(req.FromAirport, req.ToAirport, code)
	}
	return offer
}

// synthesizeReturn mirrors an outbound offer: same carrier, swapped airports,
// its own times and itinerary shape, same fare (the quoted price covers the
// round trip).
func synthesizeReturn(req SearchRequest, outbound FlightOffer, rng Rand) FlightOffer {
	mirrored := req
	mirrored.FromAirport = req.ToAirport
	mirrored.ToAirport = req.FromAirport
	mirrored.OriginCountry = req.DestinationCountry
	mirrored.DestinationCountry = req.OriginCountry
	mirrored.DepartureDate = req.ReturnDate

	ret := synthesizeOffer(mirrored, outbound.Carrier, "", 0, rng)
	ret.OriginalPrice = outbound.OriginalPrice
	ret.DiscountedPrice = outbound.DiscountedPrice
	ret.DiscountPercent = outbound.DiscountPercent
	return ret
}

func routeAnchorPrice(route catalog.Route, rng Rand) float64 {
	// ±10% jitter around the catalog base price.
	return route.BasePrice * (0.9 + 0.2*rng.Float64())
}

func clockTime(minuteOfDay int) string {
	h := minuteOfDay / 60
	m := minuteOfDay % 60
	return twoDigits(h) + ":" + twoDigits(m)
}

func twoDigits(n int) string {
	if n < 10 {
		return "0" + strconv.Itoa(n)
	}
	return strconv.Itoa(n)
}

func cabinOrDefault(class string) string {
	c := strings.ToLower(strings.TrimSpace(class))
	if _, ok := cabinMultipliers[c]; !ok {
		return "economy"
	}
	return c
}
