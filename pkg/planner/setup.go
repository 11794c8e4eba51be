package planner

import (
	"github.com/rs/zerolog/log"
	"github.com/travigo/commute/pkg/config"
	"github.com/travigo/commute/pkg/dataaggregator"
	"github.com/travigo/commute/pkg/dataaggregator/source/cachedresults"
	osrmsource "github.com/travigo/commute/pkg/dataaggregator/source/osrm"
	tflsource "github.com/travigo/commute/pkg/dataaggregator/source/tfl"
	"github.com/travigo/commute/pkg/elastic_client"
	"github.com/travigo/commute/pkg/metrics"
	"github.com/travigo/commute/pkg/osrm"
	"github.com/travigo/commute/pkg/redis_client"
	"github.com/travigo/commute/pkg/session"
	"github.com/travigo/commute/pkg/tfl"
	"github.com/travigo/commute/pkg/upstream"
)

// Setup wires a Planner from configuration. Redis and Elasticsearch are used
// when their connections have been made, otherwise everything stays in memory.
func Setup(cfg *config.Config, collector *metrics.Collector) *Planner {
	upstreamOptions := func(baseURL string) []upstream.Option {
		return append(cfg.UpstreamOptions(baseURL), upstream.WithMetrics(collector))
	}

	tflClient := tfl.NewClient(cfg.TfLAppKey, upstreamOptions(cfg.TfLBaseURL)...)
	osrmClient := osrm.NewClient(upstreamOptions(cfg.OSRMBaseURL)...)

	cachedResults := &cachedresults.Cache{}
	cachedResults.Setup(cachedresults.DefaultExpiration)

	aggregator := &dataaggregator.Aggregator{}
	aggregator.RegisterSource(tflsource.Source{Client: tflClient})
	aggregator.RegisterSource(osrmsource.Source{Client: osrmClient, CachedResults: cachedResults})

	var sessions session.Store
	if redis_client.Client != nil {
		log.Debug().Msg("Using redis session store")
		sessions = session.NewRedisStore(redis_client.Client, cfg.SessionExpiration)
	} else {
		sessions = session.NewMemoryStore(cfg.SessionExpiration)
	}

	planner := &Planner{
		Aggregator: aggregator,
		Sessions:   sessions,
		Metrics:    collector,
		Defaults:   cfg.Defaults,
	}

	if elastic_client.Client != nil {
		planner.Events = elastic_client.NewEventRecorder()
	}

	return planner
}
