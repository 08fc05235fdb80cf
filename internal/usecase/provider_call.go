package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/flight-search/skysearch/internal/domain"
)

// callProvider runs one offer search with a per-call timeout and panic recovery,
// so a misbehaving provider can neither hang nor crash a build.
func callProvider(ctx context.Context, provider domain.OfferProvider, req domain.OfferRequest, timeout time.Duration) (offers []domain.FlightOffer, err error) {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	name := provider.Name()
	defer func() {
		if r := recover(); r != nil {
			offers = nil
			err = domain.NewProviderTransportError(name, fmt.Errorf("provider panic: %v", r))
		}
	}()

	offers, err = provider.SearchOffers(ctx, req)
	if err != nil && errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return nil, fmt.Errorf("%w: %v", domain.NewProviderTimeoutError(name), err)
	}
	return offers, err
}

// cheapest returns the lowest amount among offers.
func cheapest(offers []domain.FlightOffer) (float64, bool) {
	if len(offers) == 0 {
		return 0, false
	}
	min := offers[0].Price.Amount
	for _, o := range offers[1:] {
		if o.Price.Amount < min {
			min = o.Price.Amount
		}
	}
	return min, true
}
