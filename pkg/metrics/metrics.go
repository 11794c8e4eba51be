package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Collector struct {
	reg *prometheus.Registry

	UpstreamRequests *prometheus.CounterVec   // service, outcome
	UpstreamDuration *prometheus.HistogramVec // service

	JourneysPlanned   prometheus.Counter
	OptionsListed     prometheus.Counter
	OptionsDiscarded  prometheus.Counter
	CostEstimates     prometheus.Counter
	RoadRoutes        *prometheus.CounterVec // profile
	HaversineFallback prometheus.Counter
}

func NewCollector() *Collector {
	reg := prometheus.NewRegistry()

	c := &Collector{
		reg: reg,
		UpstreamRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "commute_upstream_requests_total",
			Help: "Requests made to upstream services by outcome.",
		}, []string{"service", "outcome"}),
		UpstreamDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "commute_upstream_request_duration_seconds",
			Help:    "Duration of upstream requests.",
			Buckets: prometheus.ExponentialBuckets(0.05, 2, 10),
		}, []string{"service"}),
		JourneysPlanned: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "commute_journeys_planned_total",
			Help: "Journeys normalized and stored as the current journey.",
		}),
		OptionsListed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "commute_options_listed_total",
			Help: "Distinct journey options returned to callers.",
		}),
		OptionsDiscarded: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "commute_options_discarded_total",
			Help: "Journey options dropped as duplicates or for having no legs.",
		}),
		CostEstimates: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "commute_cost_estimates_total",
			Help: "Monthly cost estimates calculated.",
		}),
		RoadRoutes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "commute_road_routes_total",
			Help: "Road routes requested by profile.",
		}, []string{"profile"}),
		HaversineFallback: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "commute_haversine_fallback_total",
			Help: "Road route requests answered with a straight line estimate.",
		}),
	}

	reg.MustRegister(
		c.UpstreamRequests, c.UpstreamDuration,
		c.JourneysPlanned, c.OptionsListed, c.OptionsDiscarded,
		c.CostEstimates, c.RoadRoutes, c.HaversineFallback,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return c
}

func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.reg, promhttp.HandlerOpts{})
}

// ObserveUpstream records one upstream request. A nil collector is a no-op
func (c *Collector) ObserveUpstream(service string, outcome string, duration time.Duration) {
	if c == nil {
		return
	}

	c.UpstreamRequests.WithLabelValues(service, outcome).Inc()
	c.UpstreamDuration.WithLabelValues(service).Observe(duration.Seconds())
}

func (c *Collector) ObserveOptions(listed int, discarded int) {
	if c == nil {
		return
	}

	c.OptionsListed.Add(float64(listed))
	c.OptionsDiscarded.Add(float64(discarded))
}

func (c *Collector) ObserveJourneyPlanned() {
	if c == nil {
		return
	}
	c.JourneysPlanned.Inc()
}

func (c *Collector) ObserveCostEstimate() {
	if c == nil {
		return
	}
	c.CostEstimates.Inc()
}

func (c *Collector) ObserveRoadRoute(profile string, fallback bool) {
	if c == nil {
		return
	}

	c.RoadRoutes.WithLabelValues(profile).Inc()
	if fallback {
		c.HaversineFallback.Inc()
	}
}
