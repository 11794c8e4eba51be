package session

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/travigo/commute/pkg/tfl"
)

func sampleState() *State {
	journey := tfl.Journey{
		Duration:      25,
		StartDateTime: "2026-10-16T08:30:00",
		Legs: []tfl.Leg{
			{Mode: tfl.Mode{Name: "tube"}, DeparturePoint: tfl.Point{CommonName: "Bank"}, ArrivalPoint: tfl.Point{CommonName: "Green Park"}},
		},
	}
	current := tfl.Normalize(journey)

	return &State{Current: &current, Options: []tfl.Journey{journey}}
}

func testStoreRoundTrip(t *testing.T, s Store) {
	ctx := context.Background()

	empty, err := s.Get(ctx, "nobody")
	require.NoError(t, err)
	assert.Nil(t, empty.Current)
	assert.Empty(t, empty.Options)

	require.NoError(t, s.Set(ctx, "alice", sampleState()))

	state, err := s.Get(ctx, "alice")
	require.NoError(t, err)
	require.NotNil(t, state.Current)
	assert.Equal(t, 25, state.Current.DurationMinutes)
	assert.Equal(t, "Bank", state.Current.Raw.Legs[0].DeparturePoint.CommonName)
	require.Len(t, state.Options, 1)
	assert.False(t, state.UpdatedAt.IsZero())

	other, err := s.Get(ctx, "bob")
	require.NoError(t, err)
	assert.Nil(t, other.Current)

	require.NoError(t, s.Delete(ctx, "alice"))
	state, err = s.Get(ctx, "alice")
	require.NoError(t, err)
	assert.Nil(t, state.Current)
}

func TestMemoryStore(t *testing.T) {
	testStoreRoundTrip(t, NewMemoryStore(DefaultExpiration))
}

func TestMemoryStoreExpires(t *testing.T) {
	s := NewMemoryStore(50 * time.Millisecond)
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "alice", sampleState()))
	time.Sleep(100 * time.Millisecond)

	state, err := s.Get(ctx, "alice")
	require.NoError(t, err)
	assert.Nil(t, state.Current)
}

func TestRedisStore(t *testing.T) {
	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr()})

	s := NewRedisStore(client, DefaultExpiration)
	testStoreRoundTrip(t, s)

	require.NoError(t, s.Set(context.Background(), "carol", sampleState()))
	assert.True(t, server.Exists("commute:session:carol"))
	assert.Equal(t, DefaultExpiration, server.TTL("commute:session:carol"))

	server.FastForward(DefaultExpiration + time.Minute)
	state, err := s.Get(context.Background(), "carol")
	require.NoError(t, err)
	assert.Nil(t, state.Current)
}

func TestLocksAreStablePerSession(t *testing.T) {
	var locks Locks

	assert.Same(t, locks.For("abc"), locks.For("abc"))

	lock := locks.For("abc")
	lock.Lock()
	assert.False(t, locks.For("abc").TryLock())
	lock.Unlock()
	assert.True(t, locks.For("abc").TryLock())
	locks.For("abc").Unlock()
}
