package planner

import (
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/huh"
	"github.com/kr/pretty"
	"github.com/rs/zerolog/log"
	"github.com/travigo/commute/pkg/config"
	"github.com/travigo/commute/pkg/console"
	"github.com/travigo/commute/pkg/elastic_client"
	"github.com/travigo/commute/pkg/exporter"
	"github.com/travigo/commute/pkg/geo"
	"github.com/travigo/commute/pkg/mapview"
	"github.com/travigo/commute/pkg/redis_client"
	"github.com/travigo/commute/pkg/session"
	"github.com/travigo/commute/pkg/tfl"
	"github.com/travigo/commute/pkg/upstream"
	"github.com/urfave/cli/v2"
)

var journeyFlags = []cli.Flag{
	&cli.StringFlag{
		Name:  "mode",
		Usage: "comma separated transport modes, e.g. tube,bus",
	},
	&cli.StringFlag{
		Name:  "via",
		Usage: "location the journey must pass through",
	},
	&cli.StringFlag{
		Name:  "preference",
		Usage: "leastinterchange, leasttime or leastwalking",
	},
	&cli.StringFlag{
		Name:  "time",
		Usage: "departure or arrival time as HHMM",
	},
	&cli.StringFlag{
		Name:  "date",
		Usage: "travel date as YYYYMMDD, defaults to today",
	},
	&cli.BoolFlag{
		Name:  "arriving",
		Usage: "treat --time as the arrival time",
	},
}

var outputFlags = []cli.Flag{
	&cli.StringFlag{
		Name:  "map",
		Usage: "write an interactive HTML map of the journey to this file",
	},
	&cli.StringFlag{
		Name:  "ics",
		Usage: "write the journey as a calendar event to this file",
	},
	&cli.BoolFlag{
		Name:  "raw",
		Usage: "dump the raw TfL journey",
	},
	&cli.IntFlag{
		Name:  "days",
		Usage: "days per week for the cost estimate",
	},
}

var roadFlags = []cli.Flag{
	&cli.StringFlag{
		Name:     "from",
		Usage:    "origin as lon,lat or OS grid reference easting,northing",
		Required: true,
	},
	&cli.StringFlag{
		Name:     "to",
		Usage:    "destination as lon,lat or OS grid reference easting,northing",
		Required: true,
	},
}

func RegisterCLI() []*cli.Command {
	return []*cli.Command{
		{
			Name:      "journey",
			Usage:     "plan a single journey between two postcodes",
			ArgsUsage: "FROM TO",
			Flags:     concatFlags(journeyFlags, outputFlags),
			Action: func(c *cli.Context) error {
				return runWithPlanner(c, func(p *Planner, printer *console.Printer) error {
					from, to, err := locationArgs(c)
					if err != nil {
						return err
					}

					journey, err := p.Journey(c.Context, session.LocalID, from, to, journeyOptions(c))
					if err != nil {
						return err
					}

					return printJourney(c, p, printer, journey)
				})
			},
		},
		{
			Name:      "options",
			Usage:     "list the distinct journey options between two postcodes",
			ArgsUsage: "FROM TO",
			Flags:     journeyFlags,
			Action: func(c *cli.Context) error {
				return runWithPlanner(c, func(p *Planner, printer *console.Printer) error {
					from, to, err := locationArgs(c)
					if err != nil {
						return err
					}

					options, err := p.Options(c.Context, session.LocalID, from, to, journeyOptions(c))
					if err != nil {
						return err
					}

					printer.Options(from, to, tfl.SummariseAll(options))

					return nil
				})
			},
		},
		{
			Name:      "select",
			Usage:     "choose one of the journey options and show its details and cost",
			ArgsUsage: "FROM TO",
			Flags: concatFlags(journeyFlags, outputFlags, []cli.Flag{
				&cli.IntFlag{
					Name:  "option",
					Usage: "pick this option number instead of asking",
				},
			}),
			Action: func(c *cli.Context) error {
				return runWithPlanner(c, func(p *Planner, printer *console.Printer) error {
					from, to, err := locationArgs(c)
					if err != nil {
						return err
					}

					options, err := p.Options(c.Context, session.LocalID, from, to, journeyOptions(c))
					if err != nil {
						return err
					}

					summaries := tfl.SummariseAll(options)
					printer.Options(from, to, summaries)

					index := c.Int("option")
					if index == 0 {
						if index, err = chooseOption(summaries); err != nil {
							return err
						}
					}

					journey, err := p.Select(c.Context, session.LocalID, index)
					if err != nil {
						return err
					}

					if err := printJourney(c, p, printer, journey); err != nil {
						return err
					}

					if c.IsSet("days") {
						return nil
					}
					return printCost(c, p, printer)
				})
			},
		},
		{
			Name:      "cost",
			Usage:     "estimate the monthly cost of commuting between two postcodes",
			ArgsUsage: "FROM TO",
			Flags: concatFlags(journeyFlags, []cli.Flag{
				&cli.IntFlag{
					Name:  "days",
					Usage: "days per week",
				},
			}),
			Action: func(c *cli.Context) error {
				return runWithPlanner(c, func(p *Planner, printer *console.Printer) error {
					from, to, err := locationArgs(c)
					if err != nil {
						return err
					}

					if _, err := p.Journey(c.Context, session.LocalID, from, to, journeyOptions(c)); err != nil {
						return err
					}

					return printCost(c, p, printer)
				})
			},
		},
		{
			Name:  "route",
			Usage: "road or path route between two coordinates",
			Flags: concatFlags(roadFlags, []cli.Flag{
				&cli.StringFlag{
					Name:  "profile",
					Value: "driving",
					Usage: "driving, walking or cycling",
				},
			}),
			Action: func(c *cli.Context) error {
				return runWithPlanner(c, func(p *Planner, printer *console.Printer) error {
					from, to, err := coordinateFlags(c)
					if err != nil {
						return err
					}

					route, err := p.Road(c.Context, from, to, c.String("profile"))
					if err != nil {
						return err
					}

					printer.RoadRoute(route)

					return nil
				})
			},
		},
		{
			Name:  "compare",
			Usage: "route every road profile between two coordinates",
			Flags: roadFlags,
			Action: func(c *cli.Context) error {
				return runWithPlanner(c, func(p *Planner, printer *console.Printer) error {
					from, to, err := coordinateFlags(c)
					if err != nil {
						return err
					}

					routes, err := p.CompareRoadProfiles(c.Context, from, to)
					if err != nil {
						return err
					}

					printer.RoadComparison(routes)

					return nil
				})
			},
		},
		{
			Name:  "distance",
			Usage: "straight line distance between two coordinates",
			Flags: concatFlags(roadFlags, []cli.Flag{
				&cli.StringFlag{
					Name:  "unit",
					Value: "km",
					Usage: "km or miles",
				},
			}),
			Action: func(c *cli.Context) error {
				printer := console.NewPrinter(c.App.Writer)

				err := func() error {
					from, to, err := coordinateFlags(c)
					if err != nil {
						return err
					}

					unit, err := geo.ParseUnit(c.String("unit"))
					if err != nil {
						return upstream.InvalidRequest("%v", err)
					}

					printer.Distance(geo.Haversine(from, to, unit), unit)

					return nil
				}()

				return exitError(printer, err)
			},
		},
	}
}

// runWithPlanner builds a planner from the environment and reports any error
// in the same format as successful output
func runWithPlanner(c *cli.Context, action func(p *Planner, printer *console.Printer) error) error {
	printer := console.NewPrinter(c.App.Writer)

	cfg, err := config.Load()
	if err != nil {
		return exitError(printer, err)
	}

	if redis_client.Configured() {
		if err := redis_client.Connect(); err != nil {
			log.Warn().Err(err).Msg("Failed to connect to redis, keeping sessions in memory")
		}
	}
	if err := elastic_client.Connect(false); err != nil {
		log.Warn().Err(err).Msg("Failed to connect to Elasticsearch, planner events will not be indexed")
	}
	defer elastic_client.WaitUntilQueueEmpty()

	p := Setup(cfg, nil)

	return exitError(printer, action(p, printer))
}

func printJourney(c *cli.Context, p *Planner, printer *console.Printer, journey *tfl.NormalizedJourney) error {
	printer.JourneySummary(journey)
	printer.Instructions(journey)

	if c.Bool("raw") {
		fmt.Fprintf(c.App.Writer, "%# v\n", pretty.Formatter(journey.Raw))
	}

	if path := c.String("map"); path != "" {
		opts := mapview.DefaultOptions()
		opts.Centre = p.Defaults.MapCentre
		opts.Zoom = p.Defaults.MapZoom

		if err := mapview.WriteFile(path, journey, opts); err != nil {
			return fmt.Errorf("failed to write map: %w", err)
		}
		fmt.Fprintf(c.App.Writer, "\n✓ Map saved to: %s\n", path)
	}

	if path := c.String("ics"); path != "" {
		if err := writeCalendar(path, journey); err != nil {
			return fmt.Errorf("failed to write calendar: %w", err)
		}
		fmt.Fprintf(c.App.Writer, "✓ Calendar saved to: %s\n", path)
	}

	if c.IsSet("days") {
		return printCost(c, p, printer)
	}

	return nil
}

func printCost(c *cli.Context, p *Planner, printer *console.Printer) error {
	estimate, err := p.Cost(c.Context, session.LocalID, c.Int("days"))
	if err != nil {
		return err
	}

	printer.Cost(estimate)

	return nil
}

func writeCalendar(path string, journey *tfl.NormalizedJourney) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	if err := exporter.GenerateICS([]*tfl.NormalizedJourney{journey}, file); err != nil {
		return err
	}

	return file.Close()
}

func chooseOption(summaries []tfl.OptionSummary) (int, error) {
	if len(summaries) == 1 {
		return 1, nil
	}

	var options []huh.Option[int]
	for _, summary := range summaries {
		options = append(options, huh.NewOption(summary.Label(), summary.Index))
	}

	selected := 1
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[int]().
				Title("Choose your preferred route").
				Options(options...).
				Value(&selected),
		),
	)

	if err := form.Run(); err != nil {
		return 0, err
	}

	return selected, nil
}

func journeyOptions(c *cli.Context) tfl.JourneyOptions {
	return tfl.JourneyOptions{
		Mode:              c.String("mode"),
		Via:               c.String("via"),
		JourneyPreference: c.String("preference"),
		Time:              c.String("time"),
		Date:              c.String("date"),
		TimeIsArrival:     c.Bool("arriving"),
	}
}

func locationArgs(c *cli.Context) (string, string, error) {
	if c.NArg() != 2 {
		return "", "", upstream.InvalidRequest("expected FROM and TO postcodes, got %d arguments", c.NArg())
	}
	return c.Args().Get(0), c.Args().Get(1), nil
}

func coordinateFlags(c *cli.Context) (geo.Coordinate, geo.Coordinate, error) {
	from, err := geo.ParseCoordinate(c.String("from"))
	if err != nil {
		return geo.Coordinate{}, geo.Coordinate{}, upstream.InvalidRequest("--from: %v", err)
	}

	to, err := geo.ParseCoordinate(c.String("to"))
	if err != nil {
		return geo.Coordinate{}, geo.Coordinate{}, upstream.InvalidRequest("--to: %v", err)
	}

	return from, to, nil
}

func exitError(printer *console.Printer, err error) error {
	if err == nil {
		return nil
	}

	printer.Error(err)

	code := 1
	if errors.Is(err, upstream.ErrInvalidRequest) {
		code = 2
	}

	return cli.Exit("", code)
}

func concatFlags(groups ...[]cli.Flag) []cli.Flag {
	var flags []cli.Flag
	for _, group := range groups {
		flags = append(flags, group...)
	}
	return flags
}
