package console

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/travigo/commute/pkg/ctdf"
	"github.com/travigo/commute/pkg/geo"
	"github.com/travigo/commute/pkg/tfl"
	"github.com/travigo/commute/pkg/upstream"
	"github.com/travigo/commute/pkg/util"
)

// Printer writes human readable planner output. Colour is only used when the
// writer is a terminal.
type Printer struct {
	out io.Writer

	heading lipgloss.Style
	accent  lipgloss.Style
	muted   lipgloss.Style
	success lipgloss.Style
	warning lipgloss.Style
	failure lipgloss.Style
}

func NewPrinter(w io.Writer) *Printer {
	renderer := lipgloss.NewRenderer(w)

	return &Printer{
		out:     w,
		heading: renderer.NewStyle().Foreground(lipgloss.Color("99")).Bold(true),
		accent:  renderer.NewStyle().Foreground(lipgloss.Color("86")).Bold(true),
		muted:   renderer.NewStyle().Foreground(lipgloss.Color("241")),
		success: renderer.NewStyle().Foreground(lipgloss.Color("42")),
		warning: renderer.NewStyle().Foreground(lipgloss.Color("214")),
		failure: renderer.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
	}
}

func (p *Printer) Options(from string, to string, summaries []tfl.OptionSummary) {
	rule := strings.Repeat("=", 80)

	p.println("")
	p.println(p.muted.Render(rule))
	p.println(p.heading.Render(fmt.Sprintf("JOURNEY OPTIONS: %s → %s", from, to)))
	p.println(fmt.Sprintf("Found %d option(s)", len(summaries)))
	p.println(p.muted.Render(rule))

	for _, summary := range summaries {
		p.println("")
		p.println(p.accent.Render(fmt.Sprintf("Option %d:", summary.Index)))
		p.println(fmt.Sprintf("  Duration: %d min | Fare: %s | Legs: %d", summary.DurationMinutes, summary.Fare, summary.LegCount))
		p.println(fmt.Sprintf("  Time: %s - %s", summary.StartTime, summary.ArrivalTime))
		p.println(fmt.Sprintf("  Route: %s", summary.Route))
	}

	p.println("")
	p.println(p.muted.Render(rule))
}

// JourneySummary prints the headline figures of a journey
func (p *Printer) JourneySummary(journey *tfl.NormalizedJourney) {
	p.println("")
	p.println(p.success.Render(fmt.Sprintf("✓ Journey Duration: %d minutes", journey.DurationMinutes)))
	p.println(p.success.Render(fmt.Sprintf("✓ Number of legs: %d", journey.LegCount)))
	if journey.Fare.TotalCost != nil {
		p.println(p.success.Render("✓ Single fare: " + journey.Fare.Label()))
	}
	if journey.StartTime != nil && journey.ArrivalTime != nil {
		p.println(p.success.Render(fmt.Sprintf("✓ Time: %s - %s", clock(journey.StartTime), clock(journey.ArrivalTime))))
	}
}

// Instructions prints step by step directions for every leg
func (p *Printer) Instructions(journey *tfl.NormalizedJourney) {
	legs := journey.Legs()
	if len(legs) == 0 {
		p.println("No journey instructions available")
		return
	}

	rule := strings.Repeat("=", 60)

	p.println("")
	p.println(p.muted.Render(rule))
	p.println(p.heading.Render("JOURNEY INSTRUCTIONS"))
	p.println(p.muted.Render(rule))
	p.println(fmt.Sprintf("Total Duration: %d minutes", journey.DurationMinutes))
	p.println(fmt.Sprintf("Total Legs: %d", len(legs)))
	if journey.Fare.TotalCost != nil {
		p.println("Estimated Fare: " + journey.Fare.Label())
	}
	p.println(p.muted.Render(rule))

	for i, leg := range legs {
		mode := leg.Mode.Name
		if mode == "" {
			mode = "Unknown"
		}

		p.println("")
		p.println(p.accent.Render(fmt.Sprintf("Leg %d: %s", i+1, strings.ToUpper(mode))))
		p.println("  From: " + nameOrUnknown(leg.DeparturePoint.CommonName))
		p.println("  To: " + nameOrUnknown(leg.ArrivalPoint.CommonName))
		p.println(fmt.Sprintf("  Duration: %d minutes", leg.Duration))

		if leg.Instruction != nil {
			if leg.Instruction.Summary != "" {
				p.println("  Summary: " + leg.Instruction.Summary)
			}
			if leg.Instruction.Detailed != "" {
				p.println("  Details: " + leg.Instruction.Detailed)
			}
		}

		if name := leg.LineName(); name != "" {
			p.println("  Route: " + name)
		}

		if len(leg.Disruptions) > 0 {
			p.println(p.warning.Render(fmt.Sprintf("  ⚠ Disruptions: %d active", len(leg.Disruptions))))
		}
	}

	p.println("")
	p.println(p.muted.Render(rule))
}

func (p *Printer) Cost(estimate ctdf.CostEstimate) {
	p.println("")
	if estimate.Warning != "" {
		p.println(p.warning.Render("⚠ " + estimate.Warning))
	}

	p.println(p.success.Render("✓ Single fare: " + ctdf.FormatPounds(estimate.SingleFare)))
	p.println(p.success.Render("✓ Daily cost: " + ctdf.FormatPounds(estimate.DailyCost)))
	p.println(p.success.Render(fmt.Sprintf("✓ Weekly cost (%d days): %s", estimate.DaysPerWeek, ctdf.FormatPounds(estimate.WeeklyCost))))
	p.println(p.success.Render("✓ Monthly cost: " + ctdf.FormatPounds(estimate.MonthlyCost)))
	p.println(p.success.Render("✓ Monthly (with cap): " + ctdf.FormatPounds(estimate.MonthlyCostCapped)))
	p.println(p.success.Render("✓ Annual cost: " + ctdf.FormatPounds(estimate.AnnualCost)))
	p.println(p.success.Render(fmt.Sprintf("✓ Journey time: %d minutes", estimate.DurationMinutes)))
	p.println(p.muted.Render("Estimates are approximate and do not follow TfL capping rules exactly."))
}

func (p *Printer) RoadRoute(route *ctdf.RoadRoute) {
	if route.Warning != "" {
		p.println(p.warning.Render("⚠ " + route.Warning))
	}

	p.println(p.accent.Render(strings.ToUpper(route.Profile)))
	p.println(p.success.Render(fmt.Sprintf("✓ Distance: %.2f km (%.2f miles)", route.DistanceKm, route.DistanceMiles)))
	p.println(p.success.Render(fmt.Sprintf("✓ Duration: %.1f minutes", route.DurationMinutes)))
}

func (p *Printer) RoadComparison(routes []*ctdf.RoadRoute) {
	for i, route := range routes {
		if i > 0 {
			p.println("")
		}
		p.RoadRoute(route)
	}
}

func (p *Printer) Distance(distance float64, unit geo.Unit) {
	p.println(p.success.Render(fmt.Sprintf("✓ Straight-line distance: %.2f %s", distance, unit)))
}

// Error prints a failure along with its category
func (p *Printer) Error(err error) {
	p.println(p.failure.Render(fmt.Sprintf("✗ Error (%s): %v", upstream.Kind(err), err)))
}

func (p *Printer) println(line string) {
	fmt.Fprintln(p.out, line)
}

func clock(value *string) string {
	return util.ClockTime(*value)
}

func nameOrUnknown(name string) string {
	if name == "" {
		return "Unknown"
	}
	return name
}
