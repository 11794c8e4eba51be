package api

import (
	"github.com/rs/zerolog/log"
	"github.com/travigo/commute/pkg/config"
	"github.com/travigo/commute/pkg/elastic_client"
	"github.com/travigo/commute/pkg/metrics"
	"github.com/travigo/commute/pkg/planner"
	"github.com/travigo/commute/pkg/redis_client"
	"github.com/urfave/cli/v2"
)

func RegisterCLI() *cli.Command {
	return &cli.Command{
		Name:  "web-api",
		Usage: "Provides the commute planner web API and dashboard",
		Subcommands: []*cli.Command{
			{
				Name:  "run",
				Usage: "run web api server",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "listen",
						Value: ":8080",
						Usage: "listen target for the web server",
					},
				},
				Action: func(c *cli.Context) error {
					cfg, err := config.Load()
					if err != nil {
						return err
					}

					if redis_client.Configured() {
						if err := redis_client.Connect(); err != nil {
							return err
						}
					}
					if err := elastic_client.Connect(false); err != nil {
						return err
					}

					if cfg.TfLAppKey == "" {
						log.Warn().Msg("No TfL API key configured, journey planning requests will fail")
					}

					collector := metrics.NewCollector()
					p := planner.Setup(cfg, collector)

					return SetupServer(c.String("listen"), p, collector, cfg.SessionExpiration)
				},
			},
		},
	}
}
