package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadEmbeddedDataset(t *testing.T) {
	table, err := Load()
	assert.NoError(t, err)
	assert.NotEmpty(t, table.Version())
	assert.Greater(t, table.Len(), 0)

	route, ok := table.Find("JFK", "CDG")
	assert.True(t, ok)
	assert.Equal(t, "American Airlines", route.CarrierName)
	assert.Equal(t, "US", route.OriginCountry)
	assert.Equal(t, "FR", route.DestinationCountry)
	assert.Greater(t, route.BasePrice, 0.0)
}

func TestFindIsExactAndCaseInsensitive(t *testing.T) {
	table, err := Load()
	assert.NoError(t, err)

	_, ok := table.Find("jfk", "cdg")
	assert.True(t, ok)

	// No interpolation for missing pairs.
	_, ok = table.Find("JFK", "XXX")
	assert.False(t, ok)
}

func TestNewTableValidation(t *testing.T) {
	valid := Route{
		From: "JFK", To: "BOS", CarrierName: "JetBlue Airways", CarrierCode: "B6",
		BasePrice: 120, NominalDuration: "1h 10m", DailyFrequency: 6,
		OriginCountry: "US", DestinationCountry: "US",
	}

	cases := []struct {
		name   string
		mutate func(*Route)
		errMsg string
	}{
		{"same endpoints", func(r *Route) { r.To = r.From }, "origin and destination"},
		{"zero price", func(r *Route) { r.BasePrice = 0 }, "base price"},
		{"negative price", func(r *Route) { r.BasePrice = -10 }, "base price"},
		{"bad airport code", func(r *Route) { r.To = "BOSN" }, "3 letters"},
		{"missing carrier", func(r *Route) { r.CarrierName = "" }, "carrier name"},
		{"missing country", func(r *Route) { r.OriginCountry = "" }, "country"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := valid
			tc.mutate(&r)
			_, err := NewTable("test", []Route{r})
			assert.ErrorContains(t, err, tc.errMsg)
		})
	}

	_, err := NewTable("test", []Route{valid, valid})
	assert.ErrorContains(t, err, "duplicate route")

	table, err := NewTable("test", []Route{valid})
	assert.NoError(t, err)
	assert.Equal(t, 1, table.Len())
}

func TestRoutesReturnsCopy(t *testing.T) {
	table, err := Load()
	assert.NoError(t, err)

	routes := table.Routes()
	original := routes[0].BasePrice
	routes[0].BasePrice = -1
	assert.Equal(t, original, table.Routes()[0].BasePrice)
}

func TestEstimateDurationMinutes(t *testing.T) {
	assert.Equal(t, 90, EstimateDurationMinutes(500))
	assert.Equal(t, 150, EstimateDurationMinutes(1000))
	assert.Equal(t, 30, EstimateDurationMinutes(0))
}

func TestEstimatePriceTiers(t *testing.T) {
	cases := []struct {
		miles float64
		want  float64
	}{
		{400, 180},   // 120 + 400*0.15
		{499, 195},   // 120 + 74.85 = 194.85 → 195
		{500, 240},   // 180 + 500*0.12
		{999, 300},   // 180 + 119.88 = 299.88 → 300
		{1000, 310},  // 220 + 1000*0.09
		{1499, 355},  // 220 + 134.91 = 354.91 → 355
		{1500, 370},  // 280 + 1500*0.06
		{3000, 460},  // 280 + 180
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, EstimatePrice(tc.miles), "miles %v", tc.miles)
	}
}

func TestRoundToFive(t *testing.T) {
	assert.Equal(t, 190.0, RoundToFive(192.4))
	assert.Equal(t, 195.0, RoundToFive(193.0))
	assert.Equal(t, 0.0, RoundToFive(2.0))
	assert.Equal(t, 5.0, RoundToFive(2.5))
}

func TestEstimateFrequency(t *testing.T) {
	// Hub-to-hub keeps the full tier; non-hub pairs halve it.
	assert.Equal(t, 8, EstimateFrequency(400, "JFK", "LAX"))
	assert.Equal(t, 4, EstimateFrequency(400, "BOS", "PDX"))
	assert.Equal(t, 3, EstimateFrequency(2000, "ATL", "LHR"))
	assert.Equal(t, 1, EstimateFrequency(2000, "BOS", "NCE"))
}

func TestMissingReverseAndSynthesize(t *testing.T) {
	a := Route{
		From: "JFK", To: "CMN", CarrierName: "Royal Air Maroc", CarrierCode: "AT",
		BasePrice: 610, NominalDuration: "7h 5m", DailyFrequency: 1,
		OriginCountry: "US", DestinationCountry: "MA",
	}
	b := Route{
		From: "JFK", To: "LHR", CarrierName: "British Airways", CarrierCode: "BA",
		BasePrice: 580, NominalDuration: "7h", DailyFrequency: 5,
		OriginCountry: "US", DestinationCountry: "GB",
	}
	bRev := SynthesizeReverse(b)

	table, err := NewTable("test", []Route{a, b, bRev})
	assert.NoError(t, err)

	gaps := table.MissingReverse()
	assert.Len(t, gaps, 1)
	assert.Equal(t, "CMN", gaps[0].To)

	rev := SynthesizeReverse(gaps[0])
	assert.Equal(t, "CMN", rev.From)
	assert.Equal(t, "JFK", rev.To)
	assert.Equal(t, "MA", rev.OriginCountry)
	assert.Equal(t, "US", rev.DestinationCountry)
	assert.Equal(t, a.BasePrice, rev.BasePrice)
	assert.Equal(t, a.CarrierName, rev.CarrierName)
}

func TestBuildRoute(t *testing.T) {
	r := BuildRoute("JFK", "ORD", "United Airlines", "UA", "US", "US", 740)
	assert.Equal(t, "JFK", r.From)
	assert.Equal(t, "ORD", r.To)
	assert.Equal(t, 270.0, r.BasePrice) // 180 + 740*0.12 = 268.8, rounded to $5
	assert.Equal(t, "1h 58m", r.NominalDuration)
	assert.Equal(t, 6, r.DailyFrequency)
}
