package usecase

import (
	"context"
	"sync"
	"time"

	"github.com/flight-search/skysearch/internal/domain"
	"github.com/flight-search/skysearch/internal/infrastructure/logger"
	"github.com/flight-search/skysearch/internal/infrastructure/timeutil"
)

// Default recent-search values.
const (
	DefaultRecentSearchCapacity = 5
	DefaultRecentSearchMaxAge   = 30 * 24 * time.Hour
)

// RecentSearchUseCase is the bounded, deduplicated, expiring query log.
// Store failures are logged and never surfaced to the caller.
type RecentSearchUseCase interface {
	// Record puts the query at the front of the client's log.
	Record(ctx context.Context, clientID string, query domain.SearchQuery)

	// List returns the live entries, newest first.
	List(ctx context.Context, clientID string) []domain.RecentSearch

	// Clear removes every entry of the client.
	Clear(ctx context.Context, clientID string)
}

// RecentSearchConfig contains the log bounds.
type RecentSearchConfig struct {
	Capacity int
	MaxAge   time.Duration
}

type recentSearchUseCase struct {
	store    domain.RecentSearchStore
	clock    timeutil.Clock
	log      *logger.Logger
	capacity int
	maxAge   time.Duration
	locks    *clientLocks
}

// NewRecentSearchUseCase creates a RecentSearchUseCase over store.
// If config is nil, default values are used.
func NewRecentSearchUseCase(store domain.RecentSearchStore, clock timeutil.Clock, log *logger.Logger, config *RecentSearchConfig) RecentSearchUseCase {
	uc := &recentSearchUseCase{
		store:    store,
		clock:    clock,
		log:      log,
		capacity: DefaultRecentSearchCapacity,
		maxAge:   DefaultRecentSearchMaxAge,
		locks:    newClientLocks(),
	}
	if config != nil {
		if config.Capacity > 0 {
			uc.capacity = config.Capacity
		}
		if config.MaxAge > 0 {
			uc.maxAge = config.MaxAge
		}
	}
	if uc.clock == nil {
		uc.clock = timeutil.NewRealClock()
	}
	if uc.log == nil {
		uc.log = logger.Nop()
	}
	return uc
}

// Record implements RecentSearchUseCase.Record.
// A duplicate key moves to the front with a fresh timestamp; the oldest
// entries beyond capacity are dropped.
func (uc *recentSearchUseCase) Record(ctx context.Context, clientID string, query domain.SearchQuery) {
	if query.Origin.IATACode == "" || query.Destination.IATACode == "" || query.DepartureDate.IsZero() {
		return
	}

	entry := newRecentSearch(query, uc.clock.Now())

	unlock := uc.locks.lock(clientID)
	defer unlock()

	entries, err := uc.store.Load(ctx, clientID)
	if err != nil {
		uc.log.Warn().Err(err).Str("client_id", clientID).Msg("failed to load recent searches, starting fresh")
		entries = nil
	}

	updated := make([]domain.RecentSearch, 0, uc.capacity)
	updated = append(updated, entry)
	for _, e := range entries {
		if len(updated) == uc.capacity {
			break
		}
		if e.ID == entry.ID {
			continue
		}
		updated = append(updated, e)
	}

	if err := uc.store.Save(ctx, clientID, updated); err != nil {
		uc.log.Error().Err(err).Str("client_id", clientID).Msg("failed to save recent search")
	}
}

// List implements RecentSearchUseCase.List.
// Entries older than the max age, or departing before today, are skipped.
func (uc *recentSearchUseCase) List(ctx context.Context, clientID string) []domain.RecentSearch {
	entries, err := uc.store.Load(ctx, clientID)
	if err != nil {
		uc.log.Error().Err(err).Str("client_id", clientID).Msg("failed to load recent searches")
		return []domain.RecentSearch{}
	}

	now := uc.clock.Now()
	today := timeutil.StartOfDay(now)
	nowMs := now.UnixMilli()

	live := make([]domain.RecentSearch, 0, len(entries))
	for _, e := range entries {
		if nowMs-e.Timestamp >= uc.maxAge.Milliseconds() {
			continue
		}
		dep, err := timeutil.ParseLocalDate(e.DepartureDate, now.Location())
		if err != nil {
			uc.log.Warn().Str("id", e.ID).Str("departure_date", e.DepartureDate).Msg("skipping recent search with malformed date")
			continue
		}
		if dep.Before(today) {
			continue
		}
		live = append(live, e)
	}
	return live
}

// Clear implements RecentSearchUseCase.Clear.
func (uc *recentSearchUseCase) Clear(ctx context.Context, clientID string) {
	unlock := uc.locks.lock(clientID)
	defer unlock()

	if err := uc.store.Delete(ctx, clientID); err != nil {
		uc.log.Error().Err(err).Str("client_id", clientID).Msg("failed to clear recent searches")
	}
}

// clientLocks serializes load-modify-save cycles per client ID.
// Entries are dropped once no goroutine holds or waits for them.
type clientLocks struct {
	mu    sync.Mutex
	locks map[string]*clientLock
}

type clientLock struct {
	mu   sync.Mutex
	refs int
}

func newClientLocks() *clientLocks {
	return &clientLocks{locks: make(map[string]*clientLock)}
}

func (l *clientLocks) lock(clientID string) func() {
	l.mu.Lock()
	cl, ok := l.locks[clientID]
	if !ok {
		cl = &clientLock{}
		l.locks[clientID] = cl
	}
	cl.refs++
	l.mu.Unlock()

	cl.mu.Lock()
	return func() {
		cl.mu.Unlock()

		l.mu.Lock()
		cl.refs--
		if cl.refs == 0 {
			delete(l.locks, clientID)
		}
		l.mu.Unlock()
	}
}

// newRecentSearch builds a log entry from a query. Dates use the query's
// local calendar day.
func newRecentSearch(query domain.SearchQuery, now time.Time) domain.RecentSearch {
	dep := timeutil.FormatLocalDate(query.DepartureDate)
	ret := ""
	if !query.ReturnDate.IsZero() {
		ret = timeutil.FormatLocalDate(query.ReturnDate)
	}

	return domain.RecentSearch{
		ID:            domain.RecentSearchID(query.Origin.IATACode, query.Destination.IATACode, dep, ret, query.TripType),
		Origin:        query.Origin,
		Destination:   query.Destination,
		DepartureDate: dep,
		ReturnDate:    ret,
		TripType:      query.TripType,
		Passengers:    query.Passengers,
		Timestamp:     now.UnixMilli(),
	}
}

// Ensure recentSearchUseCase implements RecentSearchUseCase at compile time.
var _ RecentSearchUseCase = (*recentSearchUseCase)(nil)
