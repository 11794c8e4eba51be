package query

import "github.com/travigo/commute/pkg/tfl"

type JourneyResults struct {
	From    string
	To      string
	Options tfl.JourneyOptions
}
