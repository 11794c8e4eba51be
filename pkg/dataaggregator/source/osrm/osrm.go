package osrm

import (
	"context"
	"reflect"

	"github.com/travigo/commute/pkg/ctdf"
	"github.com/travigo/commute/pkg/dataaggregator/query"
	"github.com/travigo/commute/pkg/dataaggregator/source"
	"github.com/travigo/commute/pkg/dataaggregator/source/cachedresults"
	"github.com/travigo/commute/pkg/osrm"
)

type Source struct {
	Client        *osrm.Client
	CachedResults *cachedresults.Cache
}

func (s Source) GetName() string {
	return "OSRM Road Router"
}

func (s Source) Supports() []reflect.Type {
	return []reflect.Type{
		reflect.TypeOf(ctdf.RoadRoute{}),
	}
}

func (s Source) Lookup(ctx context.Context, q any) (interface{}, error) {
	switch q := q.(type) {
	case query.RoadRoute:
		return s.RoadRouteQuery(ctx, q)
	}

	return nil, source.UnsupportedSourceError
}

func (s Source) RoadRouteQuery(ctx context.Context, q query.RoadRoute) (*ctdf.RoadRoute, error) {
	cacheItemPath := q.CacheKey()

	var cached ctdf.RoadRoute
	if s.CachedResults.Load(ctx, cacheItemPath, &cached) {
		return &cached, nil
	}

	route, err := s.Client.Route(ctx, q.From, q.To, osrm.Profile(q.Profile))
	if err != nil {
		return nil, err
	}

	s.CachedResults.Save(ctx, cacheItemPath, route)

	return route, nil
}
