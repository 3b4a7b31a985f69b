package services

import "strings"

// Region is one of the 13 travel regions the agency segments carriers by.
type Region string

const (
	RegionDomesticUSA   Region = "domestic-usa"
	RegionNorthAmerica  Region = "north-america"
	RegionSouthAmerica  Region = "south-america"
	RegionIberia        Region = "iberia"
	RegionCentralEurope Region = "central-europe"
	RegionEasternEurope Region = "eastern-europe"
	RegionNordic        Region = "nordic"
	RegionRussia        Region = "russia"
	RegionUK            Region = "uk"
	RegionMiddleEast    Region = "middle-east"
	RegionOceania       Region = "oceania"
	RegionAfrica        Region = "africa"
	RegionAsia          Region = "asia"
)

// countryCodes maps known English country names to ISO 3166-1 alpha-2 codes.
// Lookups are case-insensitive; two-letter input is treated as a code already.
var countryCodes = map[string]string{
	"united states": "US", "usa": "US", "united states of america": "US",
	"canada": "CA", "mexico": "MX", "costa rica": "CR", "panama": "PA",
	"brazil": "BR", "argentina": "AR", "colombia": "CO", "peru": "PE",
	"chile": "CL", "ecuador": "EC",
	"france": "FR", "spain": "ES", "portugal": "PT", "italy": "IT",
	"morocco": "MA",
	"germany": "DE", "switzerland": "CH", "austria": "AT", "netherlands": "NL",
	"belgium": "BE", "poland": "PL", "czech republic": "CZ", "hungary": "HU",
	"romania": "RO", "bulgaria": "BG", "serbia": "RS", "croatia": "HR",
	"greece": "GR", "ukraine": "UA",
	"sweden": "SE", "norway": "NO", "denmark": "DK", "finland": "FI",
	"iceland": "IS",
	"russia": "RU", "belarus": "BY", "kazakhstan": "KZ",
	"united kingdom": "GB", "uk": "GB", "great britain": "GB", "ireland": "IE",
	"united arab emirates": "AE", "uae": "AE", "qatar": "QA",
	"saudi arabia": "SA", "israel": "IL", "jordan": "JO", "turkey": "TR",
	"egypt": "EG", "lebanon": "LB",
	"australia": "AU", "new zealand": "NZ", "fiji": "FJ",
	"nigeria": "NG", "kenya": "KE", "ethiopia": "ET", "south africa": "ZA",
	"ghana": "GH", "tanzania": "TZ", "senegal": "SN",
	"japan": "JP", "china": "CN", "south korea": "KR", "korea": "KR",
	"singapore": "SG", "thailand": "TH", "india": "IN", "vietnam": "VN",
	"philippines": "PH", "malaysia": "MY", "indonesia": "ID",
	"hong kong": "HK", "taiwan": "TW",
}

// countryRegions maps ISO alpha-2 codes to the region a country is segmented
// into. A country appears in exactly one region; anything absent is
// unserviceable.
var countryRegions = map[string]Region{
	"US": RegionDomesticUSA,

	"CA": RegionNorthAmerica, "MX": RegionNorthAmerica,
	"CR": RegionNorthAmerica, "PA": RegionNorthAmerica,

	"BR": RegionSouthAmerica, "AR": RegionSouthAmerica,
	"CO": RegionSouthAmerica, "PE": RegionSouthAmerica,
	"CL": RegionSouthAmerica, "EC": RegionSouthAmerica,

	"FR": RegionIberia, "ES": RegionIberia, "PT": RegionIberia,
	"IT": RegionIberia, "MA": RegionIberia,

	"DE": RegionCentralEurope, "CH": RegionCentralEurope,
	"AT": RegionCentralEurope, "NL": RegionCentralEurope,
	"BE": RegionCentralEurope, "PL": RegionCentralEurope,
	"CZ": RegionCentralEurope, "HU": RegionCentralEurope,

	"RO": RegionEasternEurope, "BG": RegionEasternEurope,
	"RS": RegionEasternEurope, "HR": RegionEasternEurope,
	"GR": RegionEasternEurope, "UA": RegionEasternEurope,

	"SE": RegionNordic, "NO": RegionNordic, "DK": RegionNordic,
	"FI": RegionNordic, "IS": RegionNordic,

	"RU": RegionRussia, "BY": RegionRussia, "KZ": RegionRussia,

	"GB": RegionUK, "IE": RegionUK,

	"AE": RegionMiddleEast, "QA": RegionMiddleEast, "SA": RegionMiddleEast,
	"IL": RegionMiddleEast, "JO": RegionMiddleEast, "TR": RegionMiddleEast,
	"EG": RegionMiddleEast, "LB": RegionMiddleEast,

	"AU": RegionOceania, "NZ": RegionOceania, "FJ": RegionOceania,

	"NG": RegionAfrica, "KE": RegionAfrica, "ET": RegionAfrica,
	"ZA": RegionAfrica, "GH": RegionAfrica, "TZ": RegionAfrica,
	"SN": RegionAfrica,

	"JP": RegionAsia, "CN": RegionAsia, "KR": RegionAsia, "SG": RegionAsia,
	"TH": RegionAsia, "IN": RegionAsia, "VN": RegionAsia, "PH": RegionAsia,
	"MY": RegionAsia, "ID": RegionAsia, "HK": RegionAsia, "TW": RegionAsia,
}

// regionCarriers lists, per region, the partner airlines allowed to appear in
// results, highest priority first.
var regionCarriers = map[Region][]string{
	RegionDomesticUSA: {
		"American Airlines", "Delta Air Lines", "United Airlines",
		"Alaska Airlines", "JetBlue Airways", "Southwest Airlines",
	},
	RegionNorthAmerica: {
		"Air Canada", "Aeromexico", "American Airlines",
		"United Airlines", "Copa Airlines",
	},
	RegionSouthAmerica: {
		"LATAM Airlines", "Avianca", "Copa Airlines", "American Airlines",
	},
	RegionIberia: {
		"American Airlines", "Royal Air Maroc", "Aer Lingus", "Qatar Airways",
	},
	RegionCentralEurope: {
		"Lufthansa", "Swiss International Air Lines", "Austrian Airlines",
		"KLM", "LOT Polish Airlines",
	},
	RegionEasternEurope: {
		"LOT Polish Airlines", "Turkish Airlines", "Austrian Airlines",
		"Air Serbia",
	},
	RegionNordic: {
		"Scandinavian Airlines", "Finnair", "Icelandair",
	},
	RegionRussia: {
		"Aeroflot", "Turkish Airlines", "Air Serbia",
	},
	RegionUK: {
		"British Airways", "Virgin Atlantic", "Aer Lingus", "American Airlines",
	},
	RegionMiddleEast: {
		"Emirates", "Qatar Airways", "Etihad Airways", "Turkish Airlines",
		"Royal Jordanian",
	},
	RegionOceania: {
		"Qantas", "Air New Zealand", "Fiji Airways", "United Airlines",
	},
	RegionAfrica: {
		"Ethiopian Airlines", "Kenya Airways", "Royal Air Maroc",
		"EgyptAir", "South African Airways",
	},
	RegionAsia: {
		"Singapore Airlines", "Cathay Pacific", "Japan Airlines",
		"ANA", "Korean Air", "Qatar Airways",
	},
}

// carrierCodes maps partner airline names to IATA codes for flight numbers.
var carrierCodes = map[string]string{
	"American Airlines": "AA", "Delta Air Lines": "DL", "United Airlines": "UA",
	"Alaska Airlines": "AS", "JetBlue Airways": "B6", "Southwest Airlines": "WN",
	"Air Canada": "AC", "Aeromexico": "AM", "Copa Airlines": "CM",
	"LATAM Airlines": "LA", "Avianca": "AV",
	"Royal Air Maroc": "AT", "Aer Lingus": "EI", "Qatar Airways": "QR",
	"Lufthansa": "LH", "Swiss International Air Lines": "LX",
	"Austrian Airlines": "OS", "KLM": "KL", "LOT Polish Airlines": "LO",
	"Turkish Airlines": "TK", "Air Serbia": "JU",
	"Scandinavian Airlines": "SK", "Finnair": "AY", "Icelandair": "FI",
	"Aeroflot": "SU",
	"British Airways": "BA", "Virgin Atlantic": "VS",
	"Emirates": "EK", "Etihad Airways": "EY", "Royal Jordanian": "RJ",
	"Qantas": "QF", "Air New Zealand": "NZ", "Fiji Airways": "FJ",
	"Ethiopian Airlines": "ET", "Kenya Airways": "KQ", "EgyptAir": "MS",
	"South African Airways": "SA",
	"Singapore Airlines": "SQ", "Cathay Pacific": "CX",
	"Japan Airlines": "JL", "ANA": "NH", "Korean Air": "KE",
}

// normalizeCountry resolves a country name or ISO code to an alpha-2 code.
func normalizeCountry(nameOrCode string) (string, bool) {
	s := strings.TrimSpace(nameOrCode)
	if s == "" {
		return "", false
	}
	if len(s) == 2 {
		code := strings.ToUpper(s)
		if _, ok := countryRegions[code]; ok {
			return code, true
		}
		return "", false
	}
	if code, ok := countryCodes[strings.ToLower(s)]; ok {
		return code, true
	}
	return "", false
}

// ClassifyCountry maps a country name or ISO code to its travel region.
// Unknown input means the country is unserviceable, not an error.
func ClassifyCountry(nameOrCode string) (Region, bool) {
	code, ok := normalizeCountry(nameOrCode)
	if !ok {
		return "", false
	}
	region, ok := countryRegions[code]
	return region, ok
}

// CarriersForRegion returns the partner list for a region, priority order
// preserved. The returned slice is a copy.
func CarriersForRegion(region Region) []string {
	carriers, ok := regionCarriers[region]
	if !ok {
		return nil
	}
	out := make([]string, len(carriers))
	copy(out, carriers)
	return out
}

// EligibleCarriers derives the airlines permitted for a country pair. The
// business sells USA-outbound travel only: both sides US means the domestic
// list; exactly one side US means the other side's region list; anything else
// is unserviceable and yields no carriers.
func EligibleCarriers(originCountry, destinationCountry string) []string {
	origin, originOK := normalizeCountry(originCountry)
	dest, destOK := normalizeCountry(destinationCountry)

	if originOK && destOK && origin == "US" && dest == "US" {
		return CarriersForRegion(RegionDomesticUSA)
	}

	var foreign string
	switch {
	case originOK && origin == "US":
		foreign = destinationCountry
	case destOK && dest == "US":
		foreign = originCountry
	default:
		return nil
	}

	region, ok := ClassifyCountry(foreign)
	if !ok {
		return nil
	}
	return CarriersForRegion(region)
}

// CarrierCode returns the IATA code for a partner airline name, or "" if the
// airline is not in the partner set.
func CarrierCode(name string) string {
	return carrierCodes[name]
}

// FilterOffersByEligibility keeps only offers whose carrier matches an
// eligible airline for the pair. Matching is case-insensitive substring
// containment in either direction, kept as-is for compatibility with the
// existing partner data. An empty eligible list filters everything out.
func FilterOffersByEligibility(offers []FlightOffer, originCountry, destinationCountry string) []FlightOffer {
	eligible := EligibleCarriers(originCountry, destinationCountry)

	filtered := make([]FlightOffer, 0, len(offers))
	if len(eligible) == 0 {
		return filtered
	}

	for _, offer := range offers {
		if carrierMatches(offer.Carrier, eligible) {
			filtered = append(filtered, offer)
		}
	}
	return filtered
}

func carrierMatches(carrier string, eligible []string) bool {
	name := strings.ToLower(strings.TrimSpace(carrier))
	if name == "" {
		return false
	}
	for _, e := range eligible {
		el := strings.ToLower(e)
		if strings.Contains(name, el) || strings.Contains(el, name) {
			return true
		}
	}
	return false
}
