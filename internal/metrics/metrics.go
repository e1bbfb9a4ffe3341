package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	LabelMethod = "method"
	LabelPath   = "path"
	LabelStatus = "status"
	LabelResult = "result"
)

// HTTP Metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vybr8r_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{LabelMethod, LabelPath, LabelStatus},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "vybr8r_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{LabelMethod, LabelPath},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "vybr8r_http_requests_in_flight",
			Help: "Number of HTTP requests currently being served",
		},
	)
)

// Identity Metrics
var (
	UsersCreated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "vybr8r_users_created_total",
			Help: "Users created on first wallet contact",
		},
	)

	// FirstContactRaces counts inserts that lost the unique-constraint race and re-read the row.
	FirstContactRaces = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "vybr8r_first_contact_races_total",
			Help: "Wallet first-contact inserts resolved by re-reading after a unique violation",
		},
	)

	WalletAuths = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vybr8r_wallet_auth_total",
			Help: "Wallet authentication attempts by result",
		},
		[]string{LabelResult},
	)

	OnboardingsCompleted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "vybr8r_onboardings_completed_total",
			Help: "Successful onboarding completions",
		},
	)
)
