package metrics

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/prometheus/client_golang/prometheus/push"
)

var (
	APIRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dcbills_congress_api_requests_total",
			Help: "Requests made to the Congress.gov API",
		},
		[]string{"endpoint", "status"},
	)

	RateLimitHits = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "dcbills_congress_api_rate_limit_hits_total",
			Help: "429 responses received from the Congress.gov API",
		},
	)

	CandidatesDiscovered = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dcbills_discovery_candidates_total",
			Help: "Candidate bills surfaced per discovery channel",
		},
		[]string{"channel"},
	)

	BillsAutoAdded = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "dcbills_discovery_auto_added_total",
			Help: "Bills auto-added to the tracked dataset",
		},
	)

	BillsChecked = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "dcbills_monitor_bills_checked_total",
			Help: "Tracked bills checked by the status monitor",
		},
	)

	RunDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "dcbills_run_duration_seconds",
			Help:    "Wall-clock duration of discovery and monitor runs",
			Buckets: []float64{1, 5, 15, 60, 300, 900, 3600},
		},
		[]string{"script"},
	)

	DatasetRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dcbills_dataset_requests_total",
			Help: "Read requests served by the dataset API",
		},
		[]string{"resource", "status"},
	)
)

var registered bool

func Init() {
	if registered {
		return
	}
	registered = true

	prometheus.MustRegister(APIRequests)
	prometheus.MustRegister(RateLimitHits)
	prometheus.MustRegister(CandidatesDiscovered)
	prometheus.MustRegister(BillsAutoAdded)
	prometheus.MustRegister(BillsChecked)
	prometheus.MustRegister(RunDuration)
	prometheus.MustRegister(DatasetRequests)
}

func MetricsHandler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.Handler())
}

// PushToGateway pushes every registered collector to a Pushgateway
// under the given job name. The batch binaries call this at the end of
// a run; the API server exposes /metrics instead.
func PushToGateway(gatewayURL, job string) error {
	return push.New(gatewayURL, job).Gatherer(prometheus.DefaultGatherer).Push()
}
