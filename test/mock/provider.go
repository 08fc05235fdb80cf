// Package mock provides test doubles for the flight search system.
// These mocks are designed for calendar and integration testing where we
// need scripted per-date responses, call logs, delays and errors.
package mock

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/flight-search/skysearch/internal/domain"
)

// Response is a scripted answer for one request.
type Response struct {
	Offers []domain.FlightOffer
	Err    error
}

// Provider is a configurable scripted implementation of domain.OfferProvider.
// Lookup order for SearchOffers: error by call index, response by date pair,
// pricing function, default offers.
type Provider struct {
	name      string
	offers    []domain.FlightOffer
	airports  []domain.Airport
	err       error
	delay     time.Duration
	byDates   map[string]Response
	errorAt   map[int]error
	pricing   func(req domain.OfferRequest) (float64, bool)
	onCall    func(call int, req domain.OfferRequest)
	calls     []domain.OfferRequest
	airportKW []string
	mu        sync.Mutex
}

// NewProvider creates a new mock provider with the given name.
// The provider is configured using the builder pattern methods.
func NewProvider(name string) *Provider {
	return &Provider{
		name:    name,
		byDates: make(map[string]Response),
		errorAt: make(map[int]error),
	}
}

// WithOffers configures the default offers.
func (p *Provider) WithOffers(offers []domain.FlightOffer) *Provider {
	p.offers = offers
	return p
}

// WithAirports configures the airport lookup result.
func (p *Provider) WithAirports(airports []domain.Airport) *Provider {
	p.airports = airports
	return p
}

// WithError configures every call to fail with err.
func (p *Provider) WithError(err error) *Provider {
	p.err = err
	return p
}

// WithDelay configures the provider to wait before responding.
// This is useful for testing timeout and supersession behavior.
func (p *Provider) WithDelay(d time.Duration) *Provider {
	p.delay = d
	return p
}

// WithResponse scripts the answer for a departure/return date pair.
// Use an empty returnDate for one-way requests.
func (p *Provider) WithResponse(departureDate, returnDate string, resp Response) *Provider {
	p.byDates[dateKey(departureDate, returnDate)] = resp
	return p
}

// WithErrorAt makes the call with the given zero-based index fail.
func (p *Provider) WithErrorAt(call int, err error) *Provider {
	p.errorAt[call] = err
	return p
}

// WithPricing answers every request with a single offer priced by fn.
// Returning false yields an empty result.
func (p *Provider) WithPricing(fn func(req domain.OfferRequest) (float64, bool)) *Provider {
	p.pricing = fn
	return p
}

// OnCall registers a hook run synchronously at the start of every call.
func (p *Provider) OnCall(fn func(call int, req domain.OfferRequest)) *Provider {
	p.onCall = fn
	return p
}

// Name returns the provider's unique identifier.
func (p *Provider) Name() string {
	return p.name
}

// SearchOffers implements domain.OfferProvider.SearchOffers.
func (p *Provider) SearchOffers(ctx context.Context, req domain.OfferRequest) ([]domain.FlightOffer, error) {
	p.mu.Lock()
	call := len(p.calls)
	p.calls = append(p.calls, req)
	hook := p.onCall
	p.mu.Unlock()

	if hook != nil {
		hook(call, req)
	}

	if err := p.wait(ctx); err != nil {
		return nil, err
	}

	if err, ok := p.errorAt[call]; ok {
		return nil, err
	}
	if p.err != nil {
		return nil, p.err
	}
	if resp, ok := p.byDates[dateKey(req.DepartureDate, req.ReturnDate)]; ok {
		return resp.Offers, resp.Err
	}
	if p.pricing != nil {
		price, ok := p.pricing(req)
		if !ok {
			return []domain.FlightOffer{}, nil
		}
		return []domain.FlightOffer{Offer(fmt.Sprintf("%s-%d", p.name, call), price, req)}, nil
	}
	return p.offers, nil
}

// SearchAirports implements domain.OfferProvider.SearchAirports.
func (p *Provider) SearchAirports(ctx context.Context, keyword string) ([]domain.Airport, error) {
	p.mu.Lock()
	p.airportKW = append(p.airportKW, keyword)
	p.mu.Unlock()

	if err := p.wait(ctx); err != nil {
		return nil, err
	}
	if p.err != nil {
		return nil, p.err
	}
	return p.airports, nil
}

func (p *Provider) wait(ctx context.Context) error {
	if p.delay > 0 {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(p.delay):
		}
	}
	return ctx.Err()
}

// CallCount returns the number of times SearchOffers was called.
func (p *Provider) CallCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.calls)
}

// Calls returns a copy of the SearchOffers request log.
func (p *Provider) Calls() []domain.OfferRequest {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]domain.OfferRequest, len(p.calls))
	copy(out, p.calls)
	return out
}

// AirportKeywords returns the keywords passed to SearchAirports.
func (p *Provider) AirportKeywords() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, len(p.airportKW))
	copy(out, p.airportKW)
	return out
}

// Reset clears the call logs.
func (p *Provider) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls = nil
	p.airportKW = nil
}

func dateKey(dep, ret string) string {
	return dep + "|" + ret
}

// Ensure Provider implements domain.OfferProvider at compile time.
var _ domain.OfferProvider = (*Provider)(nil)

// RateLimitError returns the provider error the upstream raises on HTTP 429.
func RateLimitError(provider string) error {
	return domain.NewProviderError(provider, 429, "Too Many Requests")
}

// Offer builds a nonstop offer for the request's route and dates.
func Offer(id string, price float64, req domain.OfferRequest) domain.FlightOffer {
	total := fmt.Sprintf("%.2f", price)
	dep := domain.MustParseLocalDateTime(req.DepartureDate + "T08:00:00")
	arr := domain.MustParseLocalDateTime(req.DepartureDate + "T11:30:00")

	offer := domain.FlightOffer{
		ID:     id,
		Source: "GDS",
		Price: domain.Price{
			Currency:   "USD",
			Total:      total,
			Base:       total,
			GrandTotal: total,
			Amount:     price,
		},
		Itineraries: []domain.Itinerary{{
			Duration: "PT3H30M",
			Segments: []domain.Segment{{
				Departure:   domain.SegmentEndpoint{IATACode: req.Origin, At: dep},
				Arrival:     domain.SegmentEndpoint{IATACode: req.Destination, At: arr},
				CarrierCode: "AA",
				Number:      "100",
			}},
		}},
		ValidatingAirlineCodes: []string{"AA"},
	}

	if req.ReturnDate != "" {
		retDep := domain.MustParseLocalDateTime(req.ReturnDate + "T15:00:00")
		retArr := domain.MustParseLocalDateTime(req.ReturnDate + "T20:10:00")
		offer.Itineraries = append(offer.Itineraries, domain.Itinerary{
			Duration: "PT5H10M",
			Segments: []domain.Segment{{
				Departure:   domain.SegmentEndpoint{IATACode: req.Destination, At: retDep},
				Arrival:     domain.SegmentEndpoint{IATACode: req.Origin, At: retArr},
				CarrierCode: "AA",
				Number:      "101",
			}},
		})
	}
	return offer
}

// SampleOffers returns count nonstop offers priced from 120 upward in steps of 15.
func SampleOffers(origin, destination, departureDate string, count int) []domain.FlightOffer {
	req := domain.OfferRequest{Origin: origin, Destination: destination, DepartureDate: departureDate}
	offers := make([]domain.FlightOffer, count)
	for i := 0; i < count; i++ {
		offers[i] = Offer(fmt.Sprintf("sample-%d", i+1), 120+float64(i*15), req)
	}
	return offers
}
