package services

import (
	"fmt"
	"log"
	"strconv"
	"strings"
)

// Rand is the random source threaded through every synthesis call. *rand.Rand
// satisfies it; tests substitute a scripted source for deterministic runs.
type Rand interface {
	Intn(n int) int
	Float64() float64
}

// StopProfile is the derived itinerary shape for one offer. It is recomputed
// on every synthesis call and never persisted.
type StopProfile struct {
	Stops            int
	AdjustedDuration string
}

// Minutes added per stop: 45 on the ground plus 45 of routing inefficiency.
const stopPenaltyMinutes = 90

// majorCarrierCodes are the alliance carriers presumed to run frequent direct
// long-haul service; everyone else is treated as regional.
var majorCarrierCodes = map[string]bool{
	"AA": true, "DL": true, "UA": true,
	"BA": true, "AF": true, "LH": true, "KL": true, "IB": true,
	"EK": true, "QR": true, "EY": true, "TK": true,
	"SQ": true, "CX": true, "NH": true, "JL": true,
	"QF": true, "AC": true,
}

// carrierHubs lists each carrier's connection airports in preference order.
var carrierHubs = map[string][]string{
	"AA": {"DFW", "CLT", "ORD", "MIA", "PHX"},
	"DL": {"ATL", "DTW", "MSP", "SLC"},
	"UA": {"ORD", "DEN", "IAH", "EWR", "SFO"},
	"AS": {"SEA", "PDX"},
	"B6": {"JFK", "BOS", "FLL"},
	"AC": {"YYZ", "YUL", "YVR"},
	"AM": {"MEX"},
	"CM": {"PTY"},
	"LA": {"GRU", "SCL", "LIM"},
	"AV": {"BOG", "SAL"},
	"AT": {"CMN"},
	"EI": {"DUB"},
	"BA": {"LHR", "LGW"},
	"VS": {"LHR", "MAN"},
	"AF": {"CDG"},
	"LH": {"FRA", "MUC"},
	"LX": {"ZRH", "GVA"},
	"OS": {"VIE"},
	"KL": {"AMS"},
	"LO": {"WAW"},
	"TK": {"IST"},
	"JU": {"BEG"},
	"SK": {"CPH", "ARN", "OSL"},
	"AY": {"HEL"},
	"FI": {"KEF"},
	"SU": {"SVO"},
	"EK": {"DXB"},
	"QR": {"DOH"},
	"EY": {"AUH"},
	"RJ": {"AMM"},
	"MS": {"CAI"},
	"ET": {"ADD"},
	"KQ": {"NBO"},
	"SA": {"JNB"},
	"QF": {"SYD", "MEL"},
	"NZ": {"AKL"},
	"FJ": {"NAN"},
	"SQ": {"SIN"},
	"CX": {"HKG"},
	"NH": {"NRT", "HND"},
	"JL": {"NRT", "HND"},
	"KE": {"ICN"},
}

// ParseDurationMinutes converts a catalog duration ("7h 30m", "7h", "45m")
// into total minutes.
func ParseDurationMinutes(duration string) (int, error) {
	s := strings.TrimSpace(strings.ToLower(duration))
	if s == "" {
		return 0, fmt.Errorf("empty duration")
	}

	total := 0
	matched := false
	for _, part := range strings.Fields(s) {
		switch {
		case strings.HasSuffix(part, "h"):
			h, err := strconv.Atoi(strings.TrimSuffix(part, "h"))
			if err != nil {
				return 0, fmt.Errorf("bad hours in %q", duration)
			}
			total += h * 60
			matched = true
		case strings.HasSuffix(part, "m"):
			m, err := strconv.Atoi(strings.TrimSuffix(part, "m"))
			if err != nil {
				return 0, fmt.Errorf("bad minutes in %q", duration)
			}
			total += m
			matched = true
		default:
			return 0, fmt.Errorf("unrecognized duration %q", duration)
		}
	}
	if !matched {
		return 0, fmt.Errorf("unrecognized duration %q", duration)
	}
	return total, nil
}

// FormatDuration renders minutes back into the catalog's "7h 30m" form.
func FormatDuration(minutes int) string {
	h := minutes / 60
	m := minutes % 60
	if m > 0 {
		return fmt.Sprintf("%dh %dm", h, m)
	}
	return fmt.Sprintf("%dh", h)
}

// ComputeStops derives a realistic stop count for a flight and stretches the
// duration accordingly. Domestic US flights are always nonstop. International
// flights get more likely and more numerous stops as block time grows, with
// major-alliance carriers connecting less often than regional ones.
func ComputeStops(nominalDuration, originCountry, destinationCountry, carrierCode string, rng Rand) StopProfile {
	minutes, err := ParseDurationMinutes(nominalDuration)
	if err != nil {
		// Bad catalog data; degrade to nonstop rather than failing the search.
		log.Printf("⚠️  unparsable duration %q for %s-%s: %v", nominalDuration, originCountry, destinationCountry, err)
		return StopProfile{Stops: 0, AdjustedDuration: nominalDuration}
	}

	if isDomesticUSA(originCountry, destinationCountry) {
		return StopProfile{Stops: 0, AdjustedDuration: nominalDuration}
	}

	major := majorCarrierCodes[strings.ToUpper(carrierCode)]
	stops := stopsForDuration(minutes, major, rng)

	adjusted := nominalDuration
	if stops > 0 {
		adjusted = FormatDuration(minutes + stops*stopPenaltyMinutes)
	}
	return StopProfile{Stops: stops, AdjustedDuration: adjusted}
}

func stopsForDuration(minutes int, major bool, rng Rand) int {
	switch {
	case minutes < 240:
		return 0
	case minutes < 480:
		if major {
			return 0
		}
		if rng.Float64() < 0.30 {
			return 1
		}
		return 0
	case minutes < 720:
		p := 0.70
		if major {
			p = 0.15
		}
		if rng.Float64() < p {
			return 1
		}
		return 0
	case minutes < 1080:
		if !major {
			return 1
		}
		if rng.Float64() < 0.40 {
			return 1
		}
		return 0
	default:
		// Ultra long haul always connects at least once.
		if rng.Float64() < 0.70 {
			return 2
		}
		return 1
	}
}

// AdjustDurationForStops stretches a duration by the fixed per-stop penalty.
// Zero stops (or an unparsable input) returns the duration unchanged.
func AdjustDurationForStops(duration string, stops int) string {
	if stops <= 0 {
		return duration
	}
	minutes, err := ParseDurationMinutes(duration)
	if err != nil {
		return duration
	}
	return FormatDuration(minutes + stops*stopPenaltyMinutes)
}

// PickLayoverAirport chooses a display layover from the carrier's hub list:
// the first hub that is neither endpoint, else the carrier's first hub. The
// fallback is a display-only approximation with no geographic guarantee.
func PickLayoverAirport(origin, destination, carrierCode string) string {
	hubs := carrierHubs[strings.ToUpper(carrierCode)]
	if len(hubs) == 0 {
		return ""
	}
	for _, hub := range hubs {
		if hub != origin && hub != destination {
			return hub
		}
	}
	return hubs[0]
}

func isDomesticUSA(originCountry, destinationCountry string) bool {
	o, ok1 := normalizeCountry(originCountry)
	d, ok2 := normalizeCountry(destinationCountry)
	return ok1 && ok2 && o == "US" && d == "US"
}
