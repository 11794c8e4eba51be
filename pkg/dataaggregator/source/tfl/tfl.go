package tfl

import (
	"context"
	"reflect"

	"github.com/travigo/commute/pkg/dataaggregator/query"
	"github.com/travigo/commute/pkg/dataaggregator/source"
	"github.com/travigo/commute/pkg/tfl"
)

type Source struct {
	Client *tfl.Client
}

func (s Source) GetName() string {
	return "Transport for London API"
}

func (s Source) Supports() []reflect.Type {
	return []reflect.Type{
		reflect.TypeOf([]tfl.Journey{}),
	}
}

func (s Source) Lookup(ctx context.Context, q any) (interface{}, error) {
	switch q := q.(type) {
	case query.JourneyResults:
		journeys, err := s.Client.JourneyResults(ctx, q.From, q.To, q.Options)
		if err != nil {
			return nil, err
		}
		return journeys, nil
	}

	return nil, source.UnsupportedSourceError
}
