package tfl

import (
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/travigo/commute/pkg/upstream"
	"github.com/travigo/commute/pkg/util"
	"golang.org/x/exp/slices"
)

var JourneyPreferences = []string{"leastinterchange", "leasttime", "leastwalking"}

var timePattern = regexp.MustCompile(`^([01][0-9]|2[0-3])[0-5][0-9]$`)
var datePattern = regexp.MustCompile(`^[0-9]{8}$`)

// JourneyOptions are the optional filters on a JourneyResults request
type JourneyOptions struct {
	Mode              string
	Via               string
	JourneyPreference string
	Time              string // HHMM
	Date              string // YYYYMMDD, empty means today in London
	TimeIsArrival     bool
}

func (o JourneyOptions) Validate() error {
	if o.JourneyPreference != "" && !slices.Contains(JourneyPreferences, o.JourneyPreference) {
		return upstream.InvalidRequest("journey preference must be one of %s", strings.Join(JourneyPreferences, ", "))
	}

	if o.Time != "" && !timePattern.MatchString(o.Time) {
		return upstream.InvalidRequest("time %q must be HHMM", o.Time)
	}

	if o.Date != "" {
		if !datePattern.MatchString(o.Date) {
			return upstream.InvalidRequest("date %q must be YYYYMMDD", o.Date)
		}
		if _, err := time.Parse("20060102", o.Date); err != nil {
			return upstream.InvalidRequest("date %q is not a real date", o.Date)
		}
	}

	return nil
}

// Query builds the request parameters. The date is always sent.
func (o JourneyOptions) Query(appKey string, now time.Time) url.Values {
	query := url.Values{}
	query.Set("app_key", appKey)

	if o.Mode != "" {
		query.Set("mode", o.Mode)
	}

	if o.TimeIsArrival {
		query.Set("timeIs", "Arriving")
	} else {
		query.Set("timeIs", "Departing")
	}

	if o.Via != "" {
		query.Set("via", o.Via)
	}
	if o.JourneyPreference != "" {
		query.Set("journeyPreference", o.JourneyPreference)
	}
	if o.Time != "" {
		query.Set("time", o.Time)
	}

	date := o.Date
	if date == "" {
		date = now.In(util.LondonLocation()).Format("20060102")
	}
	query.Set("date", date)

	return query
}
