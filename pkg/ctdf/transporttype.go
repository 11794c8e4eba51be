package ctdf

import (
	"strings"

	"golang.org/x/exp/slices"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// TransportMode is the lower-case mode name used by the TfL journey planner
type TransportMode string

const (
	TransportModeTube         TransportMode = "tube"
	TransportModeBus          TransportMode = "bus"
	TransportModeWalking      TransportMode = "walking"
	TransportModeDLR          TransportMode = "dlr"
	TransportModeOverground   TransportMode = "overground"
	TransportModeNationalRail TransportMode = "national-rail"
	TransportModeTram         TransportMode = "tram"
	TransportModeCycle        TransportMode = "cycle"
	TransportModeRiverBus     TransportMode = "river-bus"
	TransportModeUnknown      TransportMode = "unknown"
)

const UnknownModeColour = "#666666"

type ModeColour struct {
	Mode   TransportMode
	Colour string
}

// Palette is ordered so legends always list modes the same way
var Palette = []ModeColour{
	{TransportModeTube, "#003688"},
	{TransportModeBus, "#DC241F"},
	{TransportModeWalking, "#00A575"},
	{TransportModeDLR, "#00A575"},
	{TransportModeOverground, "#EE7C0E"},
	{TransportModeNationalRail, "#0019A8"},
	{TransportModeTram, "#66CC00"},
	{TransportModeCycle, "#0098D4"},
	{TransportModeRiverBus, "#00AFE8"},
}

// Modes where the route option name is a useful line label
var namedLineModes = []TransportMode{
	TransportModeTube,
	TransportModeBus,
	TransportModeOverground,
	TransportModeDLR,
	TransportModeTram,
	TransportModeNationalRail,
}

var titleCaser = cases.Title(language.BritishEnglish)

func ParseTransportMode(name string) TransportMode {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return TransportModeUnknown
	}
	return TransportMode(name)
}

func (m TransportMode) Colour() string {
	index := slices.IndexFunc(Palette, func(entry ModeColour) bool {
		return entry.Mode == m
	})

	if index == -1 {
		return UnknownModeColour
	}
	return Palette[index].Colour
}

func (m TransportMode) Title() string {
	return titleCaser.String(string(m))
}

func (m TransportMode) HasNamedLines() bool {
	return slices.Contains(namedLineModes, m)
}
