package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/orbital-network/auction/internal/core/domain"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the auction metrics, all registered on a private registry.
type Metrics struct {
	registry *prometheus.Registry

	// HTTP metrics
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	// Auction metrics
	IntentsEnqueued prometheus.Counter
	IntentsVolume   prometheus.Counter
	BatchesStarted  prometheus.Counter
	BidsAccepted    prometheus.Counter
	BatchesClosed   *prometheus.CounterVec
	WinningBid      prometheus.Gauge

	// Bond and settlement metrics
	BondEvents         *prometheus.CounterVec
	BondVolume         *prometheus.CounterVec
	SettlementsTotal   *prometheus.CounterVec
	AccountsRegistered prometheus.Counter
}

func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,

		HTTPRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),

		IntentsEnqueued: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "auction_intents_enqueued_total",
				Help: "Total number of intents added to the orderbook",
			},
		),
		IntentsVolume: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "auction_intents_volume_total",
				Help: "Total amount offered by enqueued intents",
			},
		),
		BatchesStarted: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "auction_batches_started_total",
				Help: "Total number of batches opened for bidding",
			},
		),
		BidsAccepted: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "auction_bids_accepted_total",
				Help: "Total number of accepted bids",
			},
		),
		BatchesClosed: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "auction_batches_closed_total",
				Help: "Total number of closed batches by outcome",
			},
			[]string{"outcome"},
		),
		WinningBid: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "auction_last_winning_bid",
				Help: "Amount of the latest accepted bid",
			},
		),

		BondEvents: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "auction_bond_events_total",
				Help: "Total number of bond operations by type",
			},
			[]string{"type"},
		),
		BondVolume: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "auction_bond_volume_total",
				Help: "Total bonded amount moved by operation type",
			},
			[]string{"type", "denom"},
		),
		SettlementsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "auction_settlements_total",
				Help: "Total number of settlements resolved by status",
			},
			[]string{"status"},
		),
		AccountsRegistered: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "auction_accounts_registered_total",
				Help: "Total number of confirmed domain account registrations",
			},
		),
	}
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// RegisterEventHandlers keeps the auction metrics in sync with the events
// saved in repo.
func (m *Metrics) RegisterEventHandlers(repo domain.EventRepository) {
	// Batch handlers receive the whole history of the batch, only the last
	// event is new.
	repo.RegisterEventsHandler(domain.BatchTopic, func(events []domain.Event) {
		if len(events) <= 0 {
			return
		}
		m.record(events[len(events)-1])
	})
	for _, topic := range []string{
		domain.OrderbookTopic, domain.BondTopic, domain.SettlementTopic,
	} {
		repo.RegisterEventsHandler(topic, func(events []domain.Event) {
			for _, event := range events {
				m.record(event)
			}
		})
	}
}

func (m *Metrics) record(event domain.Event) {
	switch e := event.(type) {
	case domain.IntentEnqueued:
		m.IntentsEnqueued.Inc()
		m.IntentsVolume.Add(float64(e.Intent.Amount))
	case domain.BatchStarted:
		m.BatchesStarted.Inc()
	case domain.BidAccepted:
		m.BidsAccepted.Inc()
		m.WinningBid.Set(float64(e.Bid.Amount))
	case domain.BatchClosed:
		outcome := "settled"
		if len(e.SettlementId) <= 0 {
			outcome = "no_bid"
		}
		m.BatchesClosed.WithLabelValues(outcome).Inc()
	case domain.BondPosted:
		m.BondEvents.WithLabelValues("posted").Inc()
		m.BondVolume.WithLabelValues("posted", e.Coin.Denom).Add(float64(e.Coin.Amount))
	case domain.BondWithdrawn:
		m.BondEvents.WithLabelValues("withdrawn").Inc()
		m.BondVolume.WithLabelValues("withdrawn", e.Coin.Denom).Add(float64(e.Coin.Amount))
	case domain.BondSlashed:
		m.BondEvents.WithLabelValues("slashed").Inc()
		m.BondVolume.WithLabelValues("slashed", e.Coin.Denom).Add(float64(e.Coin.Amount))
	case domain.SettlementConfirmed:
		m.SettlementsTotal.WithLabelValues(domain.SettlementStatusConfirmed.String()).Inc()
	case domain.SettlementSlashed:
		m.SettlementsTotal.WithLabelValues(domain.SettlementStatusSlashed.String()).Inc()
	case domain.AccountRegistered:
		m.AccountsRegistered.Inc()
	}
}

// GinMiddleware records count and latency of every request by route.
func (m *Metrics) GinMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if len(path) <= 0 {
			path = "unmatched"
		}
		status := strconv.Itoa(c.Writer.Status())
		m.HTTPRequestsTotal.WithLabelValues(c.Request.Method, path, status).Inc()
		m.HTTPRequestDuration.WithLabelValues(c.Request.Method, path).Observe(time.Since(start).Seconds())
	}
}
