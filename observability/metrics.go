package observability

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

var (
	httpRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chatdice_http_requests_total",
			Help: "Total number of HTTP requests processed by the server.",
		},
		[]string{"method", "route", "status"},
	)
	httpRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "chatdice_http_request_duration_seconds",
			Help:    "HTTP request latencies in seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route"},
	)
	connectedParticipants = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "chatdice_connected_participants",
			Help: "Number of participants with an open session.",
		},
	)
	queueDepth = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "chatdice_queue_depth",
			Help: "Participants waiting for a match, by mode.",
		},
		[]string{"mode"},
	)
	activeRooms = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "chatdice_active_rooms",
			Help: "Number of live rooms.",
		},
	)
	activeConversations = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "chatdice_active_synthetic_conversations",
			Help: "Number of live synthetic partner conversations.",
		},
	)
	matchesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chatdice_matches_total",
			Help: "Total number of matches established, by kind.",
		},
		[]string{"kind"},
	)
	messagesTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "chatdice_messages_total",
			Help: "Total number of accepted chat messages.",
		},
	)
	rateLimitRejections = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "chatdice_rate_limit_rejections_total",
			Help: "Messages rejected by the sliding rate limit.",
		},
	)
	providerFailures = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "chatdice_provider_failures_total",
			Help: "Completion provider calls that exhausted their retries.",
		},
	)
	processResidentMemory = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "chatdice_process_resident_memory_bytes",
			Help: "Resident memory reported by the heartbeat.",
		},
	)
	processCPUPercent = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "chatdice_process_cpu_percent",
			Help: "Process CPU usage reported by the heartbeat.",
		},
	)
)

func init() {
	prometheus.MustRegister(
		httpRequestsTotal,
		httpRequestDuration,
		connectedParticipants,
		queueDepth,
		activeRooms,
		activeConversations,
		matchesTotal,
		messagesTotal,
		rateLimitRejections,
		providerFailures,
		processResidentMemory,
		processCPUPercent,
	)
}

func HTTPMetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = c.Request.URL.Path
		}
		status := c.Writer.Status()

		httpRequestsTotal.WithLabelValues(c.Request.Method, route, strconv.Itoa(status)).Inc()
		httpRequestDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
	}
}

func SetConnectedParticipants(n int) {
	connectedParticipants.Set(float64(n))
}

func SetQueueDepth(mode string, depth int) {
	queueDepth.WithLabelValues(mode).Set(float64(depth))
}

func SetActiveRooms(n int) {
	activeRooms.Set(float64(n))
}

func SetActiveConversations(n int) {
	activeConversations.Set(float64(n))
}

func IncMatch(kind string) {
	matchesTotal.WithLabelValues(kind).Inc()
}

func IncMessage() {
	messagesTotal.Inc()
}

func IncRateLimitRejection() {
	rateLimitRejections.Inc()
}

func IncProviderFailure() {
	providerFailures.Inc()
}

func SetProcessStats(residentBytes uint64, cpuPercent float64) {
	processResidentMemory.Set(float64(residentBytes))
	processCPUPercent.Set(cpuPercent)
}
