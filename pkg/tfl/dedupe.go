package tfl

import "github.com/travigo/commute/pkg/util"

type routeKey struct {
	Origin      string
	Destination string
}

// Deduplicate keeps the first journey for each distinct pair of start and end
// stop names, compared case-insensitively. Journeys without legs are dropped.
func Deduplicate(journeys []Journey) []Journey {
	seen := map[routeKey]bool{}
	filtered := []Journey{}

	for _, journey := range journeys {
		if len(journey.Legs) == 0 {
			continue
		}

		key := routeKey{
			Origin:      util.NormaliseName(journey.FirstLeg().DeparturePoint.CommonName),
			Destination: util.NormaliseName(journey.LastLeg().ArrivalPoint.CommonName),
		}

		if seen[key] {
			continue
		}

		seen[key] = true
		filtered = append(filtered, journey)
	}

	return filtered
}
