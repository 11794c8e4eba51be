package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"hash/fnv"
	"sync"
	"time"

	"github.com/eko/gocache/lib/v4/cache"
	"github.com/eko/gocache/lib/v4/store"
	gocachestore "github.com/eko/gocache/store/go_cache/v4"
	redisstore "github.com/eko/gocache/store/redis/v4"
	gocache "github.com/patrickmn/go-cache"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"github.com/travigo/commute/pkg/tfl"
)

const DefaultExpiration = 90 * time.Minute

// LocalID is the session used by the command line, which only has one user
const LocalID = "cli"

const keyPrefix = "commute:session:"

// State is everything remembered between requests for one session
type State struct {
	Current   *tfl.NormalizedJourney `json:"current,omitempty"`
	Options   []tfl.Journey          `json:"options,omitempty"`
	UpdatedAt time.Time              `json:"updated_at"`
}

type Store interface {
	// Get returns an empty State for unknown or expired sessions
	Get(ctx context.Context, id string) (*State, error)
	Set(ctx context.Context, id string, state *State) error
	Delete(ctx context.Context, id string) error
}

type CacheStore struct {
	Cache      *cache.Cache[string]
	Expiration time.Duration
}

func NewMemoryStore(expiration time.Duration) *CacheStore {
	client := gocache.New(expiration, 10*time.Minute)

	return &CacheStore{
		Cache:      cache.New[string](gocachestore.NewGoCache(client, store.WithExpiration(expiration))),
		Expiration: expiration,
	}
}

func NewRedisStore(client *redis.Client, expiration time.Duration) *CacheStore {
	return &CacheStore{
		Cache:      cache.New[string](redisstore.NewRedis(client, store.WithExpiration(expiration))),
		Expiration: expiration,
	}
}

func (s *CacheStore) Get(ctx context.Context, id string) (*State, error) {
	value, err := s.Cache.Get(ctx, key(id))

	if err != nil {
		if isNotFound(err) {
			return &State{}, nil
		}
		return nil, fmt.Errorf("failed to read session: %w", err)
	}

	if value == "" {
		return &State{}, nil
	}

	var state State
	if err := json.Unmarshal([]byte(value), &state); err != nil {
		log.Error().Err(err).Str("session", id).Msg("Discarding unreadable session")
		return &State{}, nil
	}

	return &state, nil
}

func (s *CacheStore) Set(ctx context.Context, id string, state *State) error {
	state.UpdatedAt = time.Now()

	encoded, err := json.Marshal(state)
	if err != nil {
		return err
	}

	if err := s.Cache.Set(ctx, key(id), string(encoded), store.WithExpiration(s.Expiration)); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}

	return nil
}

func (s *CacheStore) Delete(ctx context.Context, id string) error {
	err := s.Cache.Delete(ctx, key(id))
	if err != nil && !isNotFound(err) {
		return err
	}
	return nil
}

func key(id string) string {
	return keyPrefix + id
}

func isNotFound(err error) bool {
	var notFound *store.NotFound
	return errors.As(err, &notFound) || errors.Is(err, redis.Nil)
}

const lockStripes = 64

// Locks serializes read-modify-write updates of a session within this process.
// Sessions share a fixed set of mutexes so the set never grows.
type Locks struct {
	stripes [lockStripes]sync.Mutex
}

func (l *Locks) For(id string) *sync.Mutex {
	hash := fnv.New32a()
	hash.Write([]byte(id))
	return &l.stripes[hash.Sum32()%lockStripes]
}
