package domain

import "context"

//go:generate mockgen -source=provider.go -destination=mock_provider.go -package=domain

// OfferProvider is the upstream flight and airport search capability.
// Implementations own authentication and return canonical, normalized records.
type OfferProvider interface {
	// Name returns the provider's unique identifier.
	Name() string

	// SearchOffers returns the offers for one route/date combination.
	// Non-success responses are reported as *ProviderError.
	SearchOffers(ctx context.Context, req OfferRequest) ([]FlightOffer, error)

	// SearchAirports returns airports matching a free-text keyword.
	SearchAirports(ctx context.Context, keyword string) ([]Airport, error)
}
