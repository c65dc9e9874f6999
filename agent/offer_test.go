package agent

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseOffersJSONArray(t *testing.T) {
	text := `Here are the offers I found:
[
  {"airline": "IndiGo", "price": "₹25,000", "origin": "Mumbai", "destination": "Delhi", "url": "https://www.makemytrip.com/flights"},
  {"airline": "Air India", "price": "₹32,500"}
]
Let me know if you need more.`

	offers := parseOffers(text)

	require.Len(t, offers, 2)
	assert.Equal(t, "IndiGo", offers[0].Airline)
	assert.Equal(t, "₹25,000", offers[0].Price)
	assert.Equal(t, "Mumbai", offers[0].Origin)
	assert.Equal(t, "https://www.makemytrip.com/flights", offers[0].URL)
	assert.Equal(t, "Air India", offers[1].Airline)
}

func TestParseOffersNumericPriceField(t *testing.T) {
	offers := parseOffers(`[{"airline": "SpiceJet", "price": 4999}]`)

	// Numbers coerce to strings rather than breaking the parse.
	require.Len(t, offers, 1)
	assert.Equal(t, "4999", offers[0].Price)
}

func TestParseOffersFlatObjectsWithoutArray(t *testing.T) {
	text := `{"airline": "IndiGo", "price": "₹25,000"} and also {"airline": "Vistara", "price": "₹28,000"}`

	offers := parseOffers(text)

	require.Len(t, offers, 2)
	assert.Equal(t, "IndiGo", offers[0].Airline)
	assert.Equal(t, "Vistara", offers[1].Airline)
}

func TestParseOffersIgnoresObjectsWithoutAirlineAndPrice(t *testing.T) {
	text := `{"note": "no flights today"} {"airline": "IndiGo", "price": "₹25,000"}`

	offers := parseOffers(text)

	require.Len(t, offers, 1)
	assert.Equal(t, "IndiGo", offers[0].Airline)
}

func TestParseOffersTextFallback(t *testing.T) {
	text := `Cheapest options right now:
IndiGo: ₹25,000
Air India: 32,500`

	offers := parseOffers(text)

	require.Len(t, offers, 2)
	assert.Equal(t, "IndiGo", offers[0].Airline)
	assert.Equal(t, "₹25,000", offers[0].Price)
	// Bare amounts get the default currency symbol.
	assert.Equal(t, "₹32,500", offers[1].Price)
}

func TestParseOffersNothingUsable(t *testing.T) {
	assert.Empty(t, parseOffers("I could not find any flight prices in the results."))
}

func TestValidateOffersDropsPlaceholders(t *testing.T) {
	offers := []Offer{
		{Airline: "IndiGo", Price: "₹25,000"},
		{Airline: "Not specified", Price: "₹10,000"},
		{Airline: "Vistara", Price: "Not available"},
		{Airline: "", Price: "₹9,000"},
		{Airline: "Air India", Price: ""},
	}

	out := validateOffers(offers, queryInfo{})

	require.Len(t, out, 1)
	assert.Equal(t, "IndiGo", out[0].Airline)
}

func TestValidateOffersBackfillsRoute(t *testing.T) {
	offers := []Offer{
		{Airline: "IndiGo", Price: "₹25,000"},
		{Airline: "Vistara", Price: "₹28,000", Origin: "Mumbai", Destination: "Goa"},
	}

	out := validateOffers(offers, queryInfo{Origin: "Chennai", Destination: "Jaipur"})

	require.Len(t, out, 2)
	assert.Equal(t, "Chennai", out[0].Origin)
	assert.Equal(t, "Jaipur", out[0].Destination)
	// Stated routes are never overwritten.
	assert.Equal(t, "Mumbai", out[1].Origin)
	assert.Equal(t, "Goa", out[1].Destination)
}

func TestValidateOffersDefaultRouteWithoutQueryInfo(t *testing.T) {
	out := validateOffers([]Offer{{Airline: "IndiGo", Price: "₹25,000"}}, queryInfo{})

	require.Len(t, out, 1)
	assert.Equal(t, "India", out[0].Origin)
	assert.Equal(t, "Delhi", out[0].Destination)
}

func TestValidateOffersClearsPlaceholderURL(t *testing.T) {
	out := validateOffers([]Offer{
		{Airline: "IndiGo", Price: "₹25,000", URL: "Not available"},
	}, queryInfo{})

	require.Len(t, out, 1)
	assert.Empty(t, out[0].URL)
}

func TestValidateOffersIdempotent(t *testing.T) {
	offers := []Offer{
		{Airline: "IndiGo", Price: "₹25,000"},
		{Airline: "Not specified", Price: "₹10,000"},
	}
	qi := queryInfo{Origin: "Mumbai", Destination: "Delhi"}

	once := validateOffers(offers, qi)
	twice := validateOffers(once, qi)

	assert.Equal(t, once, twice)
}

func TestSortOffersByPrice(t *testing.T) {
	offers := []Offer{
		{Airline: "Vistara", Price: "₹32,000"},
		{Airline: "Mystery", Price: "call us"},
		{Airline: "IndiGo", Price: "₹25,000"},
		{Airline: "Cheapo", Price: "$120"},
	}

	sorted := sortOffersByPrice(offers)

	assert.Equal(t, "Cheapo", sorted[0].Airline)
	assert.Equal(t, "IndiGo", sorted[1].Airline)
	assert.Equal(t, "Vistara", sorted[2].Airline)
	// Unparseable prices sort last but are kept.
	assert.Equal(t, "Mystery", sorted[3].Airline)
	// Input order untouched.
	assert.Equal(t, "Vistara", offers[0].Airline)
}

func TestPriceValue(t *testing.T) {
	tests := []struct {
		price string
		want  float64
	}{
		{"₹25,000", 25000},
		{"$1,299.50", 1299.5},
		{"€ 430", 430},
		{"25000", 25000},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, priceValue(tt.price), tt.price)
	}
	assert.True(t, math.IsInf(priceValue("contact airline"), 1))
	assert.True(t, math.IsInf(priceValue(""), 1))
}
