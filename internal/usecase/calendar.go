package usecase

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/flight-search/skysearch/internal/domain"
	"github.com/flight-search/skysearch/internal/infrastructure/logger"
	"github.com/flight-search/skysearch/internal/infrastructure/timeutil"
	"github.com/flight-search/skysearch/internal/infrastructure/tracing"
)

// Default calendar values.
const (
	DefaultSeriesDays          = 11
	DefaultSeriesDaysBefore    = 5
	DefaultSeriesMaxRequests   = 15
	DefaultGridSize            = 7
	DefaultGridRangeDays       = 14
	DefaultGridMaxCells        = 28
	DefaultGridDaysBefore      = 3
	DefaultTripDays            = 7
	MaxTripDays                = 30
	DefaultCalendarCallTimeout = 10 * time.Second
)

// CalendarUseCase builds price matrices around a query's dates.
type CalendarUseCase interface {
	// BuildPriceSeries returns the cheapest fare per departure date around the
	// selected one. A newer build for the same clientKey supersedes this one,
	// which then returns domain.ErrBuildSuperseded.
	BuildPriceSeries(ctx context.Context, clientKey string, query domain.SearchQuery, opts SeriesOptions) (*domain.PriceSeries, error)

	// BuildPriceGrid returns the cheapest fare per departure/return pair of the
	// visible window. Superseding works as for BuildPriceSeries.
	BuildPriceGrid(ctx context.Context, clientKey string, query domain.SearchQuery, opts GridOptions) (*domain.PriceGrid, error)
}

// SeriesOptions are the per-request series controls.
type SeriesOptions struct {
	// TripDurationDays overrides the round-trip length (1..30); 0 derives it
	// from the query dates.
	TripDurationDays int
}

// GridOptions locate the visible window within the scrollable date range.
type GridOptions struct {
	ColOffset int
	RowOffset int
}

// CalendarConfig contains the request budget and window sizes.
type CalendarConfig struct {
	SeriesDays        int
	SeriesDaysBefore  int
	SeriesMaxRequests int
	GridSize          int
	GridRangeDays     int
	GridMaxCells      int
	GridDaysBefore    int
	RequestTimeout    time.Duration
}

// DefaultCalendarConfig returns the default configuration.
func DefaultCalendarConfig() CalendarConfig {
	return CalendarConfig{
		SeriesDays:        DefaultSeriesDays,
		SeriesDaysBefore:  DefaultSeriesDaysBefore,
		SeriesMaxRequests: DefaultSeriesMaxRequests,
		GridSize:          DefaultGridSize,
		GridRangeDays:     DefaultGridRangeDays,
		GridMaxCells:      DefaultGridMaxCells,
		GridDaysBefore:    DefaultGridDaysBefore,
		RequestTimeout:    DefaultCalendarCallTimeout,
	}
}

// CalendarDeps are the collaborators of the calendar use case.
// Nil fields fall back to real-time, unpaced, silent defaults.
type CalendarDeps struct {
	Provider    domain.OfferProvider
	Clock       timeutil.Clock
	SeriesPacer Pacer
	GridPacer   Pacer
	Logger      *logger.Logger
	Tracer      trace.Tracer
}

type calendarUseCase struct {
	provider    domain.OfferProvider
	clock       timeutil.Clock
	seriesPacer Pacer
	gridPacer   Pacer
	log         *logger.Logger
	tracer      trace.Tracer
	cfg         CalendarConfig
	builds      *buildTracker
}

// NewCalendarUseCase creates a CalendarUseCase.
// If config is nil, or a field is zero, default values are used.
func NewCalendarUseCase(deps CalendarDeps, config *CalendarConfig) CalendarUseCase {
	cfg := DefaultCalendarConfig()
	if config != nil {
		mergeCalendarConfig(&cfg, *config)
	}

	uc := &calendarUseCase{
		provider:    deps.Provider,
		clock:       deps.Clock,
		seriesPacer: deps.SeriesPacer,
		gridPacer:   deps.GridPacer,
		log:         deps.Logger,
		tracer:      deps.Tracer,
		cfg:         cfg,
		builds:      newBuildTracker(),
	}
	if uc.clock == nil {
		uc.clock = timeutil.NewRealClock()
	}
	if uc.seriesPacer == nil {
		uc.seriesPacer = NoopPacer{}
	}
	if uc.gridPacer == nil {
		uc.gridPacer = NoopPacer{}
	}
	if uc.log == nil {
		uc.log = logger.Nop()
	}
	if uc.tracer == nil {
		uc.tracer = tracing.NoopTracer()
	}
	return uc
}

func mergeCalendarConfig(dst *CalendarConfig, src CalendarConfig) {
	setIfPositive(&dst.SeriesDays, src.SeriesDays)
	setIfPositive(&dst.SeriesDaysBefore, src.SeriesDaysBefore)
	setIfPositive(&dst.SeriesMaxRequests, src.SeriesMaxRequests)
	setIfPositive(&dst.GridSize, src.GridSize)
	setIfPositive(&dst.GridRangeDays, src.GridRangeDays)
	setIfPositive(&dst.GridMaxCells, src.GridMaxCells)
	setIfPositive(&dst.GridDaysBefore, src.GridDaysBefore)
	if src.RequestTimeout > 0 {
		dst.RequestTimeout = src.RequestTimeout
	}
	if dst.GridRangeDays < dst.GridSize {
		dst.GridRangeDays = dst.GridSize
	}
}

func setIfPositive(dst *int, v int) {
	if v > 0 {
		*dst = v
	}
}

// build is the bookkeeping of one running build.
type build struct {
	key        string
	id         string
	generation uint64
	ctx        context.Context
	span       trace.Span
	log        *logger.Logger
	issued     int
	limited    bool
}

func (uc *calendarUseCase) startBuild(ctx context.Context, kind, clientKey string) *build {
	key := kind + ":" + clientKey
	id := uuid.NewString()

	ctx, span := uc.tracer.Start(ctx, "calendar."+kind, trace.WithAttributes(
		attribute.String("calendar.build_id", id),
		attribute.String("calendar.client", clientKey),
	))
	buildCtx, generation := uc.builds.start(ctx, key)

	return &build{
		key:        key,
		id:         id,
		generation: generation,
		ctx:        buildCtx,
		span:       span,
		log:        uc.log.WithContext("build_id", id).WithContext("build", kind).WithClientID(clientKey),
	}
}

func (uc *calendarUseCase) endBuild(b *build, err error) {
	uc.builds.finish(b.key, b.generation)
	b.span.SetAttributes(
		attribute.Int("calendar.requests_issued", b.issued),
		attribute.Bool("calendar.rate_limited", b.limited),
	)
	if err != nil {
		b.span.RecordError(err)
		b.span.SetStatus(codes.Error, err.Error())
	}
	b.span.End()
}

// checkCurrent returns ErrBuildSuperseded once a newer build started, and the
// caller's context error if it ended.
func (uc *calendarUseCase) checkCurrent(b *build, parent context.Context) error {
	if !uc.builds.isCurrent(b.key, b.generation) {
		return domain.ErrBuildSuperseded
	}
	if err := parent.Err(); err != nil {
		return err
	}
	return nil
}

// fetchCell issues one max=1 request and reduces it to a price.
// Every failure is absorbed into ok=false; a 429 also flips the build into
// degrade mode. The returned error is only set when the build must stop.
func (uc *calendarUseCase) fetchCell(b *build, parent context.Context, pacer Pacer, req domain.OfferRequest) (price float64, ok bool, err error) {
	if waitErr := pacer.Wait(b.ctx, b.issued); waitErr != nil {
		if err := uc.checkCurrent(b, parent); err != nil {
			return 0, false, err
		}
		return 0, false, waitErr
	}

	b.issued++
	offers, callErr := callProvider(b.ctx, uc.provider, req, uc.cfg.RequestTimeout)

	if err := uc.checkCurrent(b, parent); err != nil {
		return 0, false, err
	}

	attrs := []attribute.KeyValue{
		attribute.String("departure_date", req.DepartureDate),
		attribute.String("return_date", req.ReturnDate),
	}

	if callErr != nil {
		if domain.IsRateLimited(callErr) {
			b.limited = true
			b.log.Warn().Str("departure_date", req.DepartureDate).Msg("provider rate limited, degrading remaining cells")
		} else {
			b.log.Warn().Err(callErr).Str("departure_date", req.DepartureDate).Str("return_date", req.ReturnDate).Msg("calendar cell unavailable")
		}
		b.span.AddEvent("cell.unavailable", trace.WithAttributes(append(attrs, attribute.String("error", callErr.Error()))...))
		return 0, false, nil
	}

	price, ok = cheapest(offers)
	if !ok {
		b.span.AddEvent("cell.empty", trace.WithAttributes(attrs...))
		return 0, false, nil
	}
	b.span.AddEvent("cell.priced", trace.WithAttributes(append(attrs, attribute.Float64("price", price))...))
	return price, true, nil
}

// localDay returns the calendar day of t as midnight in loc.
func localDay(t time.Time, loc *time.Location) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}

// cellRequest derives the max=1 request for a date pair from the query.
func cellRequest(query domain.SearchQuery, departure, ret time.Time) domain.OfferRequest {
	req := query.ToOfferRequest(1)
	req.DepartureDate = timeutil.FormatLocalDate(departure)
	req.ReturnDate = ""
	if !ret.IsZero() {
		req.ReturnDate = timeutil.FormatLocalDate(ret)
	}
	return req
}

// seriesTripDays resolves the round-trip length of a series.
func seriesTripDays(query domain.SearchQuery, requested int) (int, error) {
	if !query.IsRoundTrip() {
		return 0, nil
	}
	if requested != 0 {
		if requested < 1 || requested > MaxTripDays {
			return 0, domain.NewValidationError("tripDurationDays", fmt.Sprintf("tripDurationDays must be between 1 and %d", MaxTripDays))
		}
		return requested, nil
	}
	if query.ReturnDate.IsZero() {
		return DefaultTripDays, nil
	}
	days := timeutil.DaysBetween(query.DepartureDate, query.ReturnDate)
	if days < 1 {
		days = 1
	}
	return days, nil
}

// BuildPriceSeries implements CalendarUseCase.BuildPriceSeries.
func (uc *calendarUseCase) BuildPriceSeries(ctx context.Context, clientKey string, query domain.SearchQuery, opts SeriesOptions) (series *domain.PriceSeries, err error) {
	query.SetDefaults()
	if err := query.Validate(); err != nil {
		return nil, err
	}
	tripDays, err := seriesTripDays(query, opts.TripDurationDays)
	if err != nil {
		return nil, err
	}

	b := uc.startBuild(ctx, "series", clientKey)
	defer func() { uc.endBuild(b, err) }()

	now := uc.clock.Now()
	loc := now.Location()
	today := timeutil.StartOfDay(now)
	selected := localDay(query.DepartureDate, loc)
	start := timeutil.MaxTime(timeutil.AddDays(selected, -uc.cfg.SeriesDaysBefore), today)

	series = &domain.PriceSeries{
		Points:           make([]domain.SeriesPoint, 0, uc.cfg.SeriesDays),
		TripDurationDays: tripDays,
	}

	for i := 0; i < uc.cfg.SeriesDays; i++ {
		dep := timeutil.AddDays(start, i)
		point := domain.SeriesPoint{
			Date:             timeutil.FormatLocalDate(dep),
			TripDurationDays: tripDays,
			Selected:         timeutil.SameDay(dep, selected),
			Weekend:          timeutil.IsWeekend(dep),
		}

		var ret time.Time
		if tripDays > 0 {
			ret = timeutil.AddDays(dep, tripDays)
			point.ReturnDate = timeutil.FormatLocalDate(ret)
		}

		if b.limited || b.issued >= uc.cfg.SeriesMaxRequests {
			series.Points = append(series.Points, point)
			continue
		}

		price, ok, fetchErr := uc.fetchCell(b, ctx, uc.seriesPacer, cellRequest(query, dep, ret))
		if fetchErr != nil {
			return nil, fetchErr
		}
		point.Price, point.Available = price, ok
		series.Points = append(series.Points, point)
	}

	if err := uc.checkCurrent(b, ctx); err != nil {
		return nil, err
	}

	series.RequestsIssued = b.issued
	series.RateLimited = b.limited
	summarizeSeries(series)

	b.log.Info().
		Int("requests", b.issued).
		Int("available", series.Stats.Available).
		Bool("rate_limited", b.limited).
		Msg("price series built")
	return series, nil
}

// summarizeSeries fills the lowest/highest prices, stats and lowest flags.
// Unavailable and filtered-out points are left out.
func summarizeSeries(s *domain.PriceSeries) {
	s.LowestPrice, s.HighestPrice = 0, 0
	s.Stats = domain.SeriesStats{}
	for i := range s.Points {
		s.Points[i].Lowest = false
	}

	lowest, highest, sum := math.Inf(1), 0.0, 0.0
	n := 0
	for _, p := range s.Points {
		if !p.Available || p.FilteredOut {
			continue
		}
		n++
		sum += p.Price
		lowest = math.Min(lowest, p.Price)
		highest = math.Max(highest, p.Price)
	}
	if n == 0 {
		return
	}

	for i, p := range s.Points {
		s.Points[i].Lowest = p.Available && !p.FilteredOut && p.Price == lowest
	}
	s.LowestPrice = lowest
	s.HighestPrice = highest
	s.Stats = domain.SeriesStats{
		Min:       lowest,
		Max:       highest,
		Avg:       math.Round(sum/float64(n)*100) / 100,
		Available: n,
	}
}

func (uc *calendarUseCase) BuildPriceGrid(ctx context.Context, clientKey string, query domain.SearchQuery, opts GridOptions) (grid *domain.PriceGrid, err error) {
	query.SetDefaults()
	if err := query.Validate(); err != nil {
		return nil, err
	}

	b := uc.startBuild(ctx, "grid", clientKey)
	defer func() { uc.endBuild(b, err) }()

	now := uc.clock.Now()
	loc := now.Location()
	today := timeutil.StartOfDay(now)
	selectedDep := localDay(query.DepartureDate, loc)
	var selectedRet time.Time
	if !query.ReturnDate.IsZero() {
		selectedRet = localDay(query.ReturnDate, loc)
	}

	size, rangeDays := uc.cfg.GridSize, uc.cfg.GridRangeDays
	anchor := timeutil.MaxTime(timeutil.AddDays(selectedDep, -uc.cfg.GridDaysBefore), today)
	colOffset := clampInt(opts.ColOffset, 0, rangeDays-size)
	rowOffset := clampInt(opts.RowOffset, 0, rangeDays-size)

	grid = &domain.PriceGrid{
		DepartureDates: make([]string, size),
		ReturnDates:    make([]string, size),
		Cells:          make([][]domain.GridCell, size),
		ColOffset:      colOffset,
		RowOffset:      rowOffset,
		TotalColumns:   rangeDays,
		TotalRows:      rangeDays,
	}

	deps := make([]time.Time, size)
	rets := make([]time.Time, size)
	for i := 0; i < size; i++ {
		deps[i] = timeutil.AddDays(anchor, colOffset+i)
		rets[i] = timeutil.AddDays(anchor, 1+rowOffset+i)
		grid.DepartureDates[i] = timeutil.FormatLocalDate(deps[i])
		grid.ReturnDates[i] = timeutil.FormatLocalDate(rets[i])
		grid.Cells[i] = make([]domain.GridCell, size)
	}

	// Departure-major order: every return date of a column before the next column.
	for c, dep := range deps {
		for r, ret := range rets {
			cell := domain.GridCell{
				DepartureDate: grid.DepartureDates[c],
				ReturnDate:    grid.ReturnDates[r],
				Selected:      timeutil.SameDay(dep, selectedDep) && !selectedRet.IsZero() && timeutil.SameDay(ret, selectedRet),
			}

			if !ret.After(dep) {
				grid.Cells[r][c] = cell
				continue
			}
			cell.TripDurationDays = timeutil.DaysBetween(dep, ret)

			if b.limited || b.issued >= uc.cfg.GridMaxCells {
				grid.Cells[r][c] = cell
				continue
			}

			price, ok, fetchErr := uc.fetchCell(b, ctx, uc.gridPacer, cellRequest(query, dep, ret))
			if fetchErr != nil {
				return nil, fetchErr
			}
			cell.Price, cell.Available = price, ok
			grid.Cells[r][c] = cell
		}
	}

	if err := uc.checkCurrent(b, ctx); err != nil {
		return nil, err
	}

	grid.RequestsIssued = b.issued
	grid.RateLimited = b.limited
	summarizeGrid(grid)

	b.log.Info().
		Int("requests", b.issued).
		Bool("rate_limited", b.limited).
		Int("col_offset", colOffset).
		Int("row_offset", rowOffset).
		Msg("price grid built")
	return grid, nil
}

// summarizeGrid fills the lowest/highest prices and lowest flags.
func summarizeGrid(g *domain.PriceGrid) {
	lowest, highest := math.Inf(1), 0.0
	for _, row := range g.Cells {
		for _, cell := range row {
			if !cell.Available {
				continue
			}
			lowest = math.Min(lowest, cell.Price)
			highest = math.Max(highest, cell.Price)
		}
	}
	if math.IsInf(lowest, 1) {
		return
	}

	for r := range g.Cells {
		for c := range g.Cells[r] {
			cell := &g.Cells[r][c]
			cell.Lowest = cell.Available && cell.Price == lowest
		}
	}
	g.LowestPrice = lowest
	g.HighestPrice = highest
}

func clampInt(v, lo, hi int) int {
	if hi < lo {
		hi = lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Ensure calendarUseCase implements CalendarUseCase at compile time.
var _ CalendarUseCase = (*calendarUseCase)(nil)
