package planner

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/sourcegraph/conc/pool"
	"github.com/travigo/commute/pkg/calculator"
	"github.com/travigo/commute/pkg/config"
	"github.com/travigo/commute/pkg/ctdf"
	"github.com/travigo/commute/pkg/dataaggregator"
	"github.com/travigo/commute/pkg/dataaggregator/query"
	"github.com/travigo/commute/pkg/geo"
	"github.com/travigo/commute/pkg/metrics"
	"github.com/travigo/commute/pkg/osrm"
	"github.com/travigo/commute/pkg/session"
	"github.com/travigo/commute/pkg/tfl"
	"github.com/travigo/commute/pkg/upstream"
	"golang.org/x/exp/slices"
)

var (
	ErrNoCurrentJourney = fmt.Errorf("%w: no current journey, plan one first", upstream.ErrNoResultsFound)
	ErrNoOptions        = fmt.Errorf("%w: no journey options", upstream.ErrNoResultsFound)
)

const HaversineFallbackWarning = "Road router unavailable, distance is a straight line estimate"

// Rough average speeds used to put a duration on a straight line estimate
var fallbackSpeedKmh = map[osrm.Profile]float64{
	osrm.ProfileDriving: 30,
	osrm.ProfileWalking: 5,
	osrm.ProfileCycling: 15,
}

type EventRecorder interface {
	Record(event ctdf.PlannerEvent)
}

// Planner answers journey and road queries and keeps the per session current journey
type Planner struct {
	Aggregator *dataaggregator.Aggregator
	Sessions   session.Store
	Events     EventRecorder
	Metrics    *metrics.Collector
	Defaults   config.Defaults

	locks session.Locks
}

// Journeys returns the raw candidate list from the transit planner
func (p *Planner) Journeys(ctx context.Context, from string, to string, opts tfl.JourneyOptions) ([]tfl.Journey, error) {
	opts = p.applyDefaults(opts)

	return dataaggregator.Lookup[[]tfl.Journey](ctx, p.Aggregator, query.JourneyResults{
		From:    from,
		To:      to,
		Options: opts,
	})
}

// Journey plans a trip, keeping the first option as the session's current journey
func (p *Planner) Journey(ctx context.Context, sessionID string, from string, to string, opts tfl.JourneyOptions) (*tfl.NormalizedJourney, error) {
	event := ctdf.PlannerEvent{
		Type:        ctdf.PlannerEventTypeJourney,
		SessionID:   sessionID,
		Origin:      from,
		Destination: to,
	}

	journeys, err := p.Journeys(ctx, from, to, opts)
	if err != nil {
		p.recordFailure(event, err)
		return nil, err
	}
	if len(journeys) == 0 {
		p.recordFailure(event, upstream.ErrNoResultsFound)
		return nil, upstream.ErrNoResultsFound
	}

	normalized := tfl.Normalize(journeys[0])

	if err := p.storeCurrent(ctx, sessionID, &normalized); err != nil {
		return nil, err
	}

	p.Metrics.ObserveJourneyPlanned()
	p.recordJourney(event, &normalized, len(journeys))

	return &normalized, nil
}

// Options lists the distinct routes between two places and remembers them for Select
func (p *Planner) Options(ctx context.Context, sessionID string, from string, to string, opts tfl.JourneyOptions) ([]tfl.Journey, error) {
	event := ctdf.PlannerEvent{
		Type:        ctdf.PlannerEventTypeOptions,
		SessionID:   sessionID,
		Origin:      from,
		Destination: to,
	}

	journeys, err := p.Journeys(ctx, from, to, opts)
	if err != nil {
		p.recordFailure(event, err)
		return nil, err
	}

	options := tfl.Deduplicate(journeys)
	p.Metrics.ObserveOptions(len(options), len(journeys)-len(options))

	if len(options) == 0 {
		p.recordFailure(event, ErrNoOptions)
		return nil, ErrNoOptions
	}

	err = p.updateSession(ctx, sessionID, func(state *session.State) error {
		state.Options = options
		return nil
	})
	if err != nil {
		return nil, err
	}

	event.Success = true
	event.Options = len(options)
	p.record(event)

	return options, nil
}

// Select makes the option at the 1-based index the current journey
func (p *Planner) Select(ctx context.Context, sessionID string, index int) (*tfl.NormalizedJourney, error) {
	var normalized tfl.NormalizedJourney
	var optionCount int

	err := p.updateSession(ctx, sessionID, func(state *session.State) error {
		optionCount = len(state.Options)

		if optionCount == 0 {
			return ErrNoOptions
		}

		if index < 1 || index > optionCount {
			return upstream.InvalidRequest("option must be between 1 and %d, got %d", optionCount, index)
		}

		normalized = tfl.Normalize(state.Options[index-1])
		state.Current = &normalized

		return nil
	})
	if err != nil {
		return nil, err
	}

	p.Metrics.ObserveJourneyPlanned()

	event := ctdf.PlannerEvent{
		Type:      ctdf.PlannerEventTypeSelect,
		SessionID: sessionID,
	}
	if first := normalized.Raw.FirstLeg(); first != nil {
		event.Origin = first.DeparturePoint.CommonName
	}
	if last := normalized.Raw.LastLeg(); last != nil {
		event.Destination = last.ArrivalPoint.CommonName
	}
	p.recordJourney(event, &normalized, optionCount)

	return &normalized, nil
}

// SetCurrent replaces the session's current journey
func (p *Planner) SetCurrent(ctx context.Context, sessionID string, journey *tfl.NormalizedJourney) error {
	return p.storeCurrent(ctx, sessionID, journey)
}

func (p *Planner) Current(ctx context.Context, sessionID string) (*tfl.NormalizedJourney, error) {
	state, err := p.Sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if state.Current == nil {
		return nil, ErrNoCurrentJourney
	}

	return state.Current, nil
}

// StoredOptions returns the candidates remembered by the last Options call
func (p *Planner) StoredOptions(ctx context.Context, sessionID string) ([]tfl.Journey, error) {
	state, err := p.Sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if len(state.Options) == 0 {
		return nil, ErrNoOptions
	}

	return state.Options, nil
}

// Cost estimates the recurring cost of the current journey. Zero days uses the configured default.
func (p *Planner) Cost(ctx context.Context, sessionID string, daysPerWeek int) (ctdf.CostEstimate, error) {
	current, err := p.Current(ctx, sessionID)
	if err != nil {
		return ctdf.CostEstimate{}, err
	}

	if daysPerWeek == 0 {
		daysPerWeek = p.Defaults.DaysPerWeek
	}

	estimate, err := calculator.EstimateCost(current, daysPerWeek)
	if err != nil {
		return estimate, err
	}

	p.Metrics.ObserveCostEstimate()

	return estimate, nil
}

// Road routes between two coordinates, falling back to a straight line
// estimate when the road router fails
func (p *Planner) Road(ctx context.Context, from geo.Coordinate, to geo.Coordinate, profileName string) (*ctdf.RoadRoute, error) {
	profile, err := osrm.ParseProfile(profileName)
	if err != nil {
		return nil, err
	}

	if err := validateCoordinates(from, to); err != nil {
		return nil, err
	}

	route, err := p.lookupRoad(ctx, from, to, profile)

	event := ctdf.PlannerEvent{
		Type:        ctdf.PlannerEventTypeRoad,
		Origin:      from.String(),
		Destination: to.String(),
		Profile:     string(profile),
		Success:     true,
	}

	if err != nil {
		if ctx.Err() != nil {
			return nil, err
		}

		log.Warn().Err(err).Str("profile", string(profile)).Msg("Road router failed, using haversine estimate")

		route = HaversineEstimate(from, to, profile)
		event.ErrorKind = upstream.Kind(err)
	}

	p.Metrics.ObserveRoadRoute(string(profile), route.Estimated)

	event.DurationMinutes = route.DurationMinutes
	p.record(event)

	return route, nil
}

// CompareRoadProfiles routes every profile concurrently. Profiles that fail are
// left out, unless they all fail in which case straight line estimates are returned.
func (p *Planner) CompareRoadProfiles(ctx context.Context, from geo.Coordinate, to geo.Coordinate) ([]*ctdf.RoadRoute, error) {
	if err := validateCoordinates(from, to); err != nil {
		return nil, err
	}

	workers := pool.NewWithResults[*ctdf.RoadRoute]().WithContext(ctx)

	for _, profile := range osrm.Profiles {
		workers.Go(func(ctx context.Context) (*ctdf.RoadRoute, error) {
			return p.lookupRoad(ctx, from, to, profile)
		})
	}

	routes, err := workers.Wait()

	if len(routes) == 0 {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}

		log.Warn().Err(err).Msg("Road router failed for every profile, using haversine estimates")

		for _, profile := range osrm.Profiles {
			routes = append(routes, HaversineEstimate(from, to, profile))
		}
	} else if err != nil {
		log.Debug().Err(err).Int("routed", len(routes)).Msg("Some road profiles failed")
	}

	slices.SortFunc(routes, func(a, b *ctdf.RoadRoute) int {
		return profileOrder(a.Profile) - profileOrder(b.Profile)
	})

	for _, route := range routes {
		p.Metrics.ObserveRoadRoute(route.Profile, route.Estimated)
	}

	return routes, nil
}

// HaversineEstimate builds a road route from the great-circle distance and a nominal speed for the profile
func HaversineEstimate(from geo.Coordinate, to geo.Coordinate, profile osrm.Profile) *ctdf.RoadRoute {
	distanceKm := geo.Haversine(from, to, geo.UnitKilometres)

	hours := 0.0
	if speed := fallbackSpeedKmh[profile]; speed > 0 {
		hours = distanceKm / speed
	}

	return &ctdf.RoadRoute{
		Profile:         string(profile),
		DistanceKm:      distanceKm,
		DistanceMiles:   geo.Haversine(from, to, geo.UnitMiles),
		DurationMinutes: roundTo(hours*60, 1),
		DurationHours:   roundTo(hours, 2),
		Estimated:       true,
		Source:          "haversine",
		Warning:         HaversineFallbackWarning,
	}
}

func (p *Planner) lookupRoad(ctx context.Context, from geo.Coordinate, to geo.Coordinate, profile osrm.Profile) (*ctdf.RoadRoute, error) {
	return dataaggregator.Lookup[*ctdf.RoadRoute](ctx, p.Aggregator, query.RoadRoute{
		From:    from,
		To:      to,
		Profile: string(profile),
	})
}

func (p *Planner) storeCurrent(ctx context.Context, sessionID string, journey *tfl.NormalizedJourney) error {
	return p.updateSession(ctx, sessionID, func(state *session.State) error {
		state.Current = journey
		return nil
	})
}

// updateSession applies update to the stored state under the session's lock.
// Nothing is saved when update fails. The lock is per process, so replicas
// sharing a redis store can still interleave.
func (p *Planner) updateSession(ctx context.Context, sessionID string, update func(state *session.State) error) error {
	lock := p.locks.For(sessionID)
	lock.Lock()
	defer lock.Unlock()

	state, err := p.Sessions.Get(ctx, sessionID)
	if err != nil {
		return err
	}

	if err := update(state); err != nil {
		return err
	}

	return p.Sessions.Set(ctx, sessionID, state)
}

func (p *Planner) applyDefaults(opts tfl.JourneyOptions) tfl.JourneyOptions {
	if opts.Mode == "" {
		opts.Mode = p.Defaults.Mode
	}
	if opts.JourneyPreference == "" {
		opts.JourneyPreference = p.Defaults.JourneyPreference
	}
	return opts
}

func (p *Planner) recordJourney(event ctdf.PlannerEvent, journey *tfl.NormalizedJourney, options int) {
	event.Success = true
	event.DurationMinutes = float64(journey.DurationMinutes)
	event.Fare = journey.Fare.TotalCost
	event.Options = options

	p.record(event)
}

func (p *Planner) recordFailure(event ctdf.PlannerEvent, err error) {
	event.Success = false
	event.ErrorKind = upstream.Kind(err)

	p.record(event)
}

func (p *Planner) record(event ctdf.PlannerEvent) {
	if p.Events == nil {
		return
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	p.Events.Record(event)
}

func validateCoordinates(coordinates ...geo.Coordinate) error {
	for _, coordinate := range coordinates {
		if !coordinate.IsValid() {
			return upstream.InvalidRequest("coordinate %s is out of range", coordinate)
		}
	}
	return nil
}

func profileOrder(profile string) int {
	index := slices.Index(osrm.Profiles, osrm.Profile(profile))
	if index < 0 {
		return len(osrm.Profiles)
	}
	return index
}

func roundTo(value float64, places int) float64 {
	scale := math.Pow(10, float64(places))
	return math.Round(value*scale) / scale
}
