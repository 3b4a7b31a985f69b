package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyCountry(t *testing.T) {
	cases := []struct {
		in     string
		want   Region
		wantOK bool
	}{
		{"US", RegionDomesticUSA, true},
		{"us", RegionDomesticUSA, true},
		{"United States", RegionDomesticUSA, true},
		{"FR", RegionIberia, true},
		{"France", RegionIberia, true},
		{"DE", RegionCentralEurope, true},
		{"United Kingdom", RegionUK, true},
		{"Japan", RegionAsia, true},
		{"RU", RegionRussia, true},
		{"Australia", RegionOceania, true},
		{"XZ", "", false},
		{"Atlantis", "", false},
		{"", "", false},
	}

	for _, tc := range cases {
		region, ok := ClassifyCountry(tc.in)
		assert.Equal(t, tc.wantOK, ok, "input %q", tc.in)
		assert.Equal(t, tc.want, region, "input %q", tc.in)
	}
}

func TestEligibleCarriersDomestic(t *testing.T) {
	want := []string{
		"American Airlines", "Delta Air Lines", "United Airlines",
		"Alaska Airlines", "JetBlue Airways", "Southwest Airlines",
	}
	assert.Equal(t, want, EligibleCarriers("US", "US"))
	// Name inputs normalize the same way.
	assert.Equal(t, want, EligibleCarriers("United States", "USA"))
}

func TestEligibleCarriersInternational(t *testing.T) {
	iberia := []string{"American Airlines", "Royal Air Maroc", "Aer Lingus", "Qatar Airways"}

	// France classifies as iberia in this scheme, for either direction.
	assert.Equal(t, iberia, EligibleCarriers("US", "FR"))
	assert.Equal(t, iberia, EligibleCarriers("FR", "US"))
	assert.Equal(t, iberia, EligibleCarriers("United States", "France"))
}

func TestEligibleCarriersUnserviceable(t *testing.T) {
	// Neither side US: the agency only sells USA-outbound travel.
	assert.Empty(t, EligibleCarriers("FR", "DE"))
	// Unclassifiable foreign side.
	assert.Empty(t, EligibleCarriers("US", "XZ"))
	assert.Empty(t, EligibleCarriers("US", ""))
	assert.Empty(t, EligibleCarriers("", ""))
}

func TestCarriersForRegionReturnsCopy(t *testing.T) {
	first := CarriersForRegion(RegionDomesticUSA)
	first[0] = "mutated"
	assert.Equal(t, "American Airlines", CarriersForRegion(RegionDomesticUSA)[0])
}

func TestFilterOffersByEligibility(t *testing.T) {
	offers := []FlightOffer{
		{Carrier: "American Airlines"},
		{Carrier: "Delta Air Lines"},
		{Carrier: "Qatar Airways"},
		{Carrier: "aer lingus"},
		{Carrier: ""},
	}

	filtered := FilterOffersByEligibility(offers, "US", "FR")
	carriers := make([]string, 0, len(filtered))
	for _, o := range filtered {
		carriers = append(carriers, o.Carrier)
	}
	assert.Equal(t, []string{"American Airlines", "Qatar Airways", "aer lingus"}, carriers)
}

func TestFilterOffersByEligibilitySubstringBothWays(t *testing.T) {
	// The match is substring containment in either direction, preserved for
	// compatibility with the partner data.
	offers := []FlightOffer{
		{Carrier: "Qatar"},                        // offer name inside eligible name
		{Carrier: "Royal Air Maroc Express Ltd."}, // eligible name inside offer name
	}
	filtered := FilterOffersByEligibility(offers, "US", "FR")
	assert.Len(t, filtered, 2)
}

func TestFilterOffersByEligibilityNoEligible(t *testing.T) {
	offers := []FlightOffer{{Carrier: "Lufthansa"}}
	filtered := FilterOffersByEligibility(offers, "FR", "DE")
	assert.NotNil(t, filtered)
	assert.Empty(t, filtered)
}

func TestCarrierCode(t *testing.T) {
	assert.Equal(t, "AA", CarrierCode("American Airlines"))
	assert.Equal(t, "AT", CarrierCode("Royal Air Maroc"))
	assert.Equal(t, "", CarrierCode("Unknown Air"))
}
