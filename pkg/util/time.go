package util

import (
	"strings"
	"time"

	_ "time/tzdata"
)

// TfL timestamps are local London wall clock times without a zone
const LocalDateTimeLayout = "2006-01-02T15:04:05"

var londonLocation *time.Location

func init() {
	loc, err := time.LoadLocation("Europe/London")
	if err != nil {
		loc = time.UTC
	}
	londonLocation = loc
}

func LondonLocation() *time.Location {
	return londonLocation
}

func ParseLocalDateTime(value string) (time.Time, error) {
	return time.ParseInLocation(LocalDateTimeLayout, value, londonLocation)
}

// ClockTime extracts HH:MM from an ISO timestamp, returning the input untouched when it has no time part
func ClockTime(value string) string {
	_, timePart, found := strings.Cut(value, "T")
	if !found {
		return value
	}

	return TrimString(timePart, 5)
}
