package osrm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/travigo/commute/pkg/geo"
	"github.com/travigo/commute/pkg/upstream"
)

var (
	westminster = geo.Coordinate{Longitude: -0.1276, Latitude: 51.5014}
	towerBridge = geo.Coordinate{Longitude: -0.0753, Latitude: 51.5055}
)

func newTestServer(t *testing.T, status int, body string) (*httptest.Server, *[]*http.Request) {
	t.Helper()

	var requests []*http.Request
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests = append(requests, r)
		w.WriteHeader(status)
		fmt.Fprint(w, body)
	}))
	t.Cleanup(server.Close)

	return server, &requests
}

func TestRoute(t *testing.T) {
	server, requests := newTestServer(t, http.StatusOK, `{"code": "Ok", "routes": [{"distance": 4200, "duration": 720}]}`)

	route, err := NewClient(upstream.WithBaseURL(server.URL)).Route(context.Background(), westminster, towerBridge, ProfileDriving)
	require.NoError(t, err)

	assert.Equal(t, "driving", route.Profile)
	assert.InDelta(t, 4.2, route.DistanceKm, 1e-9)
	assert.InDelta(t, 4200/1609.34, route.DistanceMiles, 1e-9)
	assert.InDelta(t, 12.0, route.DurationMinutes, 1e-9)
	assert.InDelta(t, 0.2, route.DurationHours, 1e-9)
	assert.False(t, route.Estimated)

	require.Len(t, *requests, 1)
	req := (*requests)[0]
	assert.Equal(t, "/route/v1/driving/-0.1276,51.5014;-0.0753,51.5055", req.URL.Path)
	assert.Equal(t, "false", req.URL.Query().Get("overview"))
	assert.Equal(t, "false", req.URL.Query().Get("steps"))
}

func TestRouteNoRouteCode(t *testing.T) {
	server, _ := newTestServer(t, http.StatusOK, `{"code": "NoRoute", "message": "Impossible route between points", "routes": []}`)

	_, err := NewClient(upstream.WithBaseURL(server.URL)).Route(context.Background(), westminster, towerBridge, ProfileWalking)

	var routeErr *RouteError
	require.True(t, errors.As(err, &routeErr))
	assert.Equal(t, "NoRoute", routeErr.Code)
	assert.Contains(t, routeErr.Error(), "Impossible route")
	assert.ErrorIs(t, err, upstream.ErrNoResultsFound)
}

func TestRouteErrorStatusWithCode(t *testing.T) {
	server, _ := newTestServer(t, http.StatusBadRequest, `{"code": "InvalidQuery", "message": "Query string malformed"}`)

	_, err := NewClient(upstream.WithBaseURL(server.URL)).Route(context.Background(), westminster, towerBridge, ProfileCycling)

	var routeErr *RouteError
	require.True(t, errors.As(err, &routeErr))
	assert.Equal(t, "InvalidQuery", routeErr.Code)
	assert.Equal(t, upstream.KindNoResults, upstream.Kind(err))
}

func TestRouteTransportFailure(t *testing.T) {
	server, _ := newTestServer(t, http.StatusBadGateway, `<html>bad gateway</html>`)

	_, err := NewClient(upstream.WithBaseURL(server.URL)).Route(context.Background(), westminster, towerBridge, ProfileDriving)
	assert.ErrorIs(t, err, upstream.ErrTransportFailure)
}

func TestRouteTimeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer server.Close()

	client := NewClient(upstream.WithBaseURL(server.URL), upstream.WithTimeout(20*time.Millisecond))
	_, err := client.Route(context.Background(), westminster, towerBridge, ProfileDriving)

	var transportErr *upstream.TransportError
	require.True(t, errors.As(err, &transportErr))
	assert.Equal(t, ServiceName, transportErr.Service)
}

func TestParseProfile(t *testing.T) {
	profile, err := ParseProfile("")
	require.NoError(t, err)
	assert.Equal(t, ProfileDriving, profile)

	profile, err = ParseProfile("cycling")
	require.NoError(t, err)
	assert.Equal(t, ProfileCycling, profile)

	_, err = ParseProfile("flying")
	assert.ErrorIs(t, err, upstream.ErrInvalidRequest)

	_, err = NewClient().Route(context.Background(), westminster, towerBridge, Profile("flying"))
	assert.ErrorIs(t, err, upstream.ErrInvalidRequest)
}
