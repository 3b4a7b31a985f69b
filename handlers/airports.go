package handlers

// airportCountry is the HTTP layer's slice of the airport directory: enough
// to resolve the IATA codes the storefront offers into countries for the
// eligibility rules. An unknown airport resolves to no country, which the
// engine treats as unserviceable.
var airportCountry = map[string]string{
	// United States
	"JFK": "US", "EWR": "US", "LGA": "US", "BOS": "US", "IAD": "US",
	"ATL": "US", "MIA": "US", "ORD": "US", "DFW": "US", "IAH": "US",
	"DEN": "US", "PHX": "US", "LAX": "US", "SFO": "US", "SEA": "US",
	"LAS": "US", "MCO": "US", "CLT": "US", "DTW": "US", "MSP": "US",
	// Canada & Mexico
	"YYZ": "CA", "YUL": "CA", "YVR": "CA", "MEX": "MX", "CUN": "MX",
	// South America
	"GRU": "BR", "EZE": "AR", "BOG": "CO", "LIM": "PE", "SCL": "CL",
	// Western Europe
	"CDG": "FR", "ORY": "FR", "MAD": "ES", "BCN": "ES", "LIS": "PT",
	"FCO": "IT", "MXP": "IT", "CMN": "MA",
	"FRA": "DE", "MUC": "DE", "BER": "DE", "ZRH": "CH", "GVA": "CH",
	"VIE": "AT", "AMS": "NL", "BRU": "BE", "WAW": "PL", "PRG": "CZ",
	"BUD": "HU",
	// Eastern Europe & Nordics
	"OTP": "RO", "SOF": "BG", "BEG": "RS", "ZAG": "HR", "ATH": "GR",
	"ARN": "SE", "OSL": "NO", "CPH": "DK", "HEL": "FI", "KEF": "IS",
	// Russia
	"SVO": "RU", "LED": "RU",
	// UK & Ireland
	"LHR": "GB", "LGW": "GB", "MAN": "GB", "EDI": "GB", "DUB": "IE",
	// Middle East
	"DXB": "AE", "AUH": "AE", "DOH": "QA", "RUH": "SA", "JED": "SA",
	"TLV": "IL", "AMM": "JO", "IST": "TR", "CAI": "EG", "BEY": "LB",
	// Oceania
	"SYD": "AU", "MEL": "AU", "AKL": "NZ", "NAN": "FJ",
	// Africa
	"LOS": "NG", "NBO": "KE", "ADD": "ET", "JNB": "ZA", "CPT": "ZA",
	"ACC": "GH", "DAR": "TZ", "DSS": "SN",
	// Asia
	"NRT": "JP", "HND": "JP", "ICN": "KR", "PEK": "CN", "PVG": "CN",
	"HKG": "HK", "TPE": "TW", "SIN": "SG", "BKK": "TH", "DEL": "IN",
	"BOM": "IN", "SGN": "VN", "MNL": "PH", "KUL": "MY", "CGK": "ID",
}

// resolveCountry maps an airport code to its country; "" means the airport
// is outside the served network.
func resolveCountry(airport string) string {
	return airportCountry[airport]
}
