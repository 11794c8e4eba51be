package osrm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"

	"github.com/rs/zerolog/log"
	"github.com/travigo/commute/pkg/ctdf"
	"github.com/travigo/commute/pkg/geo"
	"github.com/travigo/commute/pkg/upstream"
	"golang.org/x/exp/slices"
)

const DefaultBaseURL = "http://router.project-osrm.org"

const ServiceName = "osrm"

const metresPerMile = 1609.34

type Profile string

const (
	ProfileDriving Profile = "driving"
	ProfileWalking Profile = "walking"
	ProfileCycling Profile = "cycling"
)

var Profiles = []Profile{ProfileDriving, ProfileWalking, ProfileCycling}

func ParseProfile(value string) (Profile, error) {
	if value == "" {
		return ProfileDriving, nil
	}

	profile := Profile(value)
	if !slices.Contains(Profiles, profile) {
		return "", upstream.InvalidRequest("profile must be driving, walking or cycling, got %q", value)
	}

	return profile, nil
}

// RouteError is a well-formed OSRM response that did not contain a route
type RouteError struct {
	Code    string
	Message string
}

func (e *RouteError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("no route found (%s)", e.Code)
	}
	return fmt.Sprintf("no route found (%s): %s", e.Code, e.Message)
}

func (e *RouteError) Unwrap() error {
	return upstream.ErrNoResultsFound
}

type routeResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Routes  []struct {
		Distance float64 `json:"distance"`
		Duration float64 `json:"duration"`
	} `json:"routes"`
}

type Client struct {
	http *upstream.Client
}

func NewClient(opts ...upstream.Option) *Client {
	return &Client{
		http: upstream.NewClient(ServiceName, DefaultBaseURL, opts...),
	}
}

func (c *Client) Route(ctx context.Context, from geo.Coordinate, to geo.Coordinate, profile Profile) (*ctdf.RoadRoute, error) {
	if !slices.Contains(Profiles, profile) {
		return nil, upstream.InvalidRequest("unsupported profile %q", profile)
	}

	path := fmt.Sprintf("/route/v1/%s/%s;%s", profile, from.String(), to.String())
	query := url.Values{
		"overview": {"false"},
		"steps":    {"false"},
	}

	var response routeResponse
	err := c.http.GetJSON(ctx, path, query, &response)

	if err != nil {
		// OSRM reports NoRoute and friends with a 400 status and a JSON body
		var transportErr *upstream.TransportError
		if errors.As(err, &transportErr) && len(transportErr.Body) > 0 {
			var errorResponse routeResponse
			if json.Unmarshal(transportErr.Body, &errorResponse) == nil && errorResponse.Code != "" {
				return nil, &RouteError{Code: errorResponse.Code, Message: errorResponse.Message}
			}
		}

		return nil, err
	}

	if response.Code != "Ok" || len(response.Routes) == 0 {
		return nil, &RouteError{Code: response.Code, Message: response.Message}
	}

	route := response.Routes[0]

	log.Debug().
		Str("profile", string(profile)).
		Float64("distance", route.Distance).
		Float64("duration", route.Duration).
		Msg("Received OSRM route")

	return &ctdf.RoadRoute{
		Profile:         string(profile),
		DistanceKm:      route.Distance / 1000,
		DistanceMiles:   route.Distance / metresPerMile,
		DurationMinutes: route.Duration / 60,
		DurationHours:   route.Duration / 3600,
		Source:          ServiceName,
	}, nil
}
