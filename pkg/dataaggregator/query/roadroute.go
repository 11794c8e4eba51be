package query

import (
	"fmt"

	"github.com/travigo/commute/pkg/geo"
)

type RoadRoute struct {
	From    geo.Coordinate
	To      geo.Coordinate
	Profile string
}

func (r RoadRoute) CacheKey() string {
	return fmt.Sprintf("cachedresults/roadroute/%s/%s/%s", r.Profile, r.From, r.To)
}
