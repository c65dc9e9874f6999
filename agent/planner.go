package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/hupe1980/tripmesh/core"
	"github.com/hupe1980/tripmesh/internal/textutil"
	"github.com/hupe1980/tripmesh/logging"
	"github.com/hupe1980/tripmesh/model"
)

// PlannerName identifies the planner agent in routing decisions and
// agent history entries.
const PlannerName = "planner_agent"

const (
	defaultPlannerResults = 10
	maxResultsForOffers   = 8
	maxContentPerResult   = 1000
	maxOffersInResponse   = 10
)

const queryInfoInstruction = `Extract travel details from the user's query. Respond ONLY with a JSON object:
{"origin": "<departure city or empty>", "destination": "<arrival city or empty>", "dates": "<travel dates as stated or empty>", "departure_date": "<YYYY-MM-DD or empty>", "return_date": "<YYYY-MM-DD or empty>"}
Use empty strings for anything the query does not state. Do not guess.`

const searchQueryInstruction = `Extract key travel information from the query:
- Origin city/country
- Destination city/country
- Travel dates
- Any specific requirements

Return in format: "flights from [origin] to [destination] [dates] [requirements]"
Keep it concise for web search.`

const travelDatesInstruction = `Extract travel dates from the query. Return in format:
"departure: YYYY-MM-DD, return: YYYY-MM-DD"
If only one date, return "departure: YYYY-MM-DD"
If no dates found, return "none"`

const offerExtractionInstruction = `You are a travel data extractor. Extract ALL flight offers from the search results below.

Respond ONLY with a JSON array of objects, one per offer:
[{"airline": "<airline name>", "price": "<price with currency symbol>", "price_usd": "<USD price if stated>", "origin": "<departure city>", "destination": "<arrival city>", "departure_date": "<date>", "return_date": "<date>", "url": "<booking url>", "notes": "<anything notable>"}]

Rules:
- Extract every distinct offer, even partial ones.
- Never invent prices or airlines that are not in the results.
- Never use placeholder values like "Not specified", "Unknown" or "N/A" - omit the field instead.
- Default origin is %s and default destination is %s when the results do not state them.
- The requested travel dates are: %s.`

const noOffersApology = "I apologize, but I couldn't find specific flight prices in the current search results. " +
	"This could be due to the dynamic nature of flight pricing. I recommend checking booking websites directly " +
	"for real-time prices: MakeMyTrip, Goibibo, Yatra, or the airline websites."

const priceDisclaimer = "⚠️ *Prices are indicative and based on recent search results. " +
	"Actual prices may vary. Please verify on the booking website before purchasing.*"

var (
	originPattern    = regexp.MustCompile(`(?i)\bfrom\s+([A-Za-z]+(?:\s+[A-Za-z]+)?)`)
	destPattern      = regexp.MustCompile(`(?i)\bto\s+([A-Za-z]+(?:\s+[A-Za-z]+)?)`)
	dateRangePattern = regexp.MustCompile(`(?i)(\d{1,2})(?:th|st|nd|rd)?\s*(?:to|-)\s*(\d{1,2})(?:th|st|nd|rd)?\s+(january|february|march|april|may|june|july|august|september|october|november|december)`)
	departurePattern = regexp.MustCompile(`(?i)departure:\s*(\d{4}-\d{2}-\d{2})`)
	returnPattern    = regexp.MustCompile(`(?i)return:\s*(\d{4}-\d{2}-\d{2})`)
)

// bookingDomains is the allowlist used when collecting booking links for the
// response footer. Order determines display order.
var bookingDomains = []string{"makemytrip", "goibibo", "yatra", "expedia", "booking", "skyscanner"}

// Planner searches for travel offers, extracts structured flight data from
// the results with the model, and renders a price-sorted answer. It owns the
// full query -> search -> extract -> validate -> respond pipeline.
type Planner struct {
	BaseAgent
	provider   core.SearchProvider
	maxResults int
}

// PlannerOptions configure a Planner beyond its required model and provider.
type PlannerOptions struct {
	// MaxResults caps how many search results the planner requests.
	MaxResults int
	// Logger receives pipeline diagnostics.
	Logger logging.Logger
}

// NewPlanner creates a planner agent backed by the given model and
// search provider.
func NewPlanner(m model.Model, provider core.SearchProvider, optFns ...func(o *PlannerOptions)) *Planner {
	opts := PlannerOptions{
		MaxResults: defaultPlannerResults,
	}
	for _, fn := range optFns {
		fn(&opts)
	}

	return &Planner{
		BaseAgent:  NewBaseAgent(PlannerName, "Plans trips and extracts flight offers from web search results.", m, opts.Logger),
		provider:   provider,
		maxResults: opts.MaxResults,
	}
}

// Process runs the planning pipeline and writes the rendered response,
// raw search results and structured offer metadata back onto the state.
func (p *Planner) Process(ctx context.Context, state *core.AgentState) error {
	qi := p.extractQueryInfo(ctx, state.Query)

	searchQuery := p.buildSearchQuery(ctx, state.Query)
	results, err := p.provider.Search(ctx, searchQuery, p.maxResults)
	if err != nil {
		p.logger.Warn("search provider failed", "agent", p.name, "provider", p.provider.Name(), "error", err)
		results = nil
	}
	if results == nil {
		results = []core.SearchResult{}
	}
	state.Results = results

	offers := p.extractOffers(ctx, state.Query, results, qi)
	offers = validateOffers(offers, qi)
	offers = sortOffersByPrice(offers)

	p.extractTravelDates(ctx, state, qi)
	offers = filterByDates(offers, state)

	state.Response = composeResponse(offers, results)

	if state.Metadata == nil {
		state.Metadata = map[string]any{}
	}
	state.Metadata["flight_data"] = offers
	state.Metadata["total_flights_found"] = len(offers)

	p.UpdateContext(state, fmt.Sprintf("Found %d flights sorted by price (cheapest first)", len(offers)))
	p.AddMessage(state, state.Response, "assistant")

	return nil
}

// extractQueryInfo asks the model for a structured origin/destination/dates
// record and falls back to regex extraction when the model output is not
// parseable JSON.
func (p *Planner) extractQueryInfo(ctx context.Context, query string) queryInfo {
	var qi queryInfo

	reply, err := p.generate(ctx, queryInfoInstruction, []core.Message{
		{Role: "user", Content: query},
	})
	if err == nil {
		if obj, ok := textutil.FirstJSONObject(reply); ok {
			if json.Unmarshal([]byte(obj), &qi) == nil && (qi.Origin != "" || qi.Destination != "" || qi.Dates != "") {
				return qi
			}
		}
	} else {
		p.logger.Warn("query info extraction failed", "error", err)
	}

	return queryInfoFromRegex(query)
}

// queryInfoFromRegex recovers travel details directly from the query text
// when the model cannot. Origin defaults to India for the domestic booking
// sites the response links to.
func queryInfoFromRegex(query string) queryInfo {
	qi := queryInfo{Origin: "India"}

	if m := originPattern.FindStringSubmatch(query); m != nil {
		if loc := trimLocation(m[1]); loc != "" {
			qi.Origin = loc
		}
	}
	if m := destPattern.FindStringSubmatch(query); m != nil {
		qi.Destination = trimLocation(m[1])
	}
	if m := dateRangePattern.FindStringSubmatch(query); m != nil {
		month := strings.ToLower(m[3])
		month = strings.ToUpper(month[:1]) + month[1:]
		qi.Dates = fmt.Sprintf("%s %s-%s, %d", month, m[1], m[2], time.Now().Year())
	}

	return qi
}

// locationStopwords are filler words the greedy location capture may drag in
// as a second token.
var locationStopwords = map[string]bool{
	"to": true, "on": true, "in": true, "from": true, "for": true,
	"next": true, "this": true, "by": true, "before": true, "after": true,
}

// trimLocation strips a trailing stopword left over from the capture, e.g.
// "Mumbai to" -> "Mumbai" while "New Delhi" stays intact.
func trimLocation(raw string) string {
	words := strings.Fields(raw)
	for len(words) > 0 && locationStopwords[strings.ToLower(words[len(words)-1])] {
		words = words[:len(words)-1]
	}
	return strings.Join(words, " ")
}

// buildSearchQuery asks the model to compress the user's request into a
// concise "flights from X to Y" search string. A failed call or a reply
// under 10 characters falls back to the raw query behind a flight prefix.
func (p *Planner) buildSearchQuery(ctx context.Context, query string) string {
	reply, err := p.generate(ctx, searchQueryInstruction, []core.Message{
		{Role: "user", Content: "Extract travel info: " + query},
	})
	if err != nil {
		p.logger.Warn("search query construction failed", "error", err)
		reply = ""
	}
	reply = strings.TrimSpace(reply)
	if len(reply) < 10 {
		return "flight prices " + query
	}
	return reply
}

// extractOffers condenses the search results and asks the model for a JSON
// array of offers, then parses whatever comes back.
func (p *Planner) extractOffers(ctx context.Context, query string, results []core.SearchResult, qi queryInfo) []Offer {
	if len(results) == 0 {
		return nil
	}

	var sb strings.Builder
	for i, r := range results[:min(len(results), maxResultsForOffers)] {
		content := r.Content
		if len(content) > maxContentPerResult {
			content = content[:maxContentPerResult]
		}
		fmt.Fprintf(&sb, "Result %d: %s\nURL: %s\n%s\n\n", i+1, r.Title, r.URL, content)
	}

	instruction := fmt.Sprintf(offerExtractionInstruction,
		orDefault(qi.Origin, "India"),
		orDefault(qi.Destination, "Delhi"),
		orDefault(qi.Dates, "not specified"))

	reply, err := p.generate(ctx, instruction, []core.Message{
		{Role: "user", Content: fmt.Sprintf("Query: %s\n\nSearch results:\n%s", query, sb.String())},
	})
	if err != nil {
		p.logger.Warn("offer extraction failed", "error", err)
		return nil
	}

	return parseOffers(reply)
}

// extractTravelDates asks the model for the requested travel dates in
// "departure: YYYY-MM-DD, return: YYYY-MM-DD" form and records them in state
// metadata. The structured query-info fields cover a failed call.
func (p *Planner) extractTravelDates(ctx context.Context, state *core.AgentState, qi queryInfo) {
	departure, ret := qi.DepartureDate, qi.ReturnDate

	reply, err := p.generate(ctx, travelDatesInstruction, []core.Message{
		{Role: "user", Content: state.Query},
	})
	if err != nil {
		p.logger.Warn("date extraction failed", "error", err)
	} else {
		reply = strings.ToLower(reply)
		if m := departurePattern.FindStringSubmatch(reply); m != nil {
			departure = m[1]
		}
		if m := returnPattern.FindStringSubmatch(reply); m != nil {
			ret = m[1]
		}
	}
	if departure == "" && ret == "" {
		return
	}

	if state.Metadata == nil {
		state.Metadata = map[string]any{}
	}
	if departure != "" {
		state.Metadata["requested_departure"] = departure
	}
	if ret != "" {
		state.Metadata["requested_return"] = ret
	}
}

// filterByDates would narrow offers to the requested travel dates. Search
// results rarely carry machine-readable dates, so filtering currently passes
// everything through; the requested dates stay in metadata for callers.
func filterByDates(offers []Offer, _ *core.AgentState) []Offer {
	return offers
}

// composeResponse renders the sorted offers as a numbered markdown list with
// booking links, a deduplicated booking-site footer and a price disclaimer.
func composeResponse(offers []Offer, results []core.SearchResult) string {
	if len(offers) == 0 {
		return noOffersApology
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Found %d flight option(s), sorted by price (cheapest first):\n\n", len(offers)))

	for i, o := range offers[:min(len(offers), maxOffersInResponse)] {
		fmt.Fprintf(&sb, "%d. **%s**: %s", i+1, o.Airline, o.Price)
		if o.PriceUSD != "" {
			fmt.Fprintf(&sb, " (%s)", o.PriceUSD)
		}
		if o.Origin != "" && o.Destination != "" {
			fmt.Fprintf(&sb, " from %s to %s", o.Origin, o.Destination)
		}
		if o.Notes != "" {
			fmt.Fprintf(&sb, " - %s", o.Notes)
		}
		if o.URL != "" {
			fmt.Fprintf(&sb, "\n   🔗 [Book here](%s)", o.URL)
		}
		sb.WriteString("\n")
	}

	if links := bookingLinks(offers, results); len(links) > 0 {
		sb.WriteString("\n**Booking Websites:**\n")
		for _, link := range links {
			fmt.Fprintf(&sb, "- %s\n", link)
		}
	}

	sb.WriteString("\n")
	sb.WriteString(priceDisclaimer)

	return sb.String()
}

// bookingLinks collects one URL per known booking domain from the offers and
// raw search results, preserving the allowlist order.
func bookingLinks(offers []Offer, results []core.SearchResult) []string {
	byDomain := map[string]string{}

	record := func(raw string) {
		if raw == "" {
			return
		}
		u, err := url.Parse(raw)
		if err != nil || u.Host == "" {
			return
		}
		host := strings.ToLower(u.Host)
		for _, domain := range bookingDomains {
			if strings.Contains(host, domain) {
				if _, seen := byDomain[domain]; !seen {
					byDomain[domain] = raw
				}
				return
			}
		}
	}

	for _, o := range offers {
		record(o.URL)
	}
	for _, r := range results {
		record(r.URL)
	}

	links := make([]string, 0, len(byDomain))
	for _, domain := range bookingDomains {
		if link, ok := byDomain[domain]; ok {
			links = append(links, link)
		}
	}
	return links
}
