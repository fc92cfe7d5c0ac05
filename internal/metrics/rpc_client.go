package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	rpcRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "blockinsight7000",
		Subsystem: "rpc_client",
		Name:      "operations_total",
		Help:      "Count of node RPC operations.",
	}, []string{"operation", "network", "status"})
	rpcRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "blockinsight7000",
		Subsystem: "rpc_client",
		Name:      "operation_duration_seconds",
		Help:      "Duration of node RPC operations including retries.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"operation", "network", "status"})
	rpcRetriesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "blockinsight7000",
		Subsystem: "rpc_client",
		Name:      "retries_total",
		Help:      "Count of retried node RPC attempts.",
	}, []string{"operation", "network"})
	rpcThrottleDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "blockinsight7000",
		Subsystem: "rpc_client",
		Name:      "throttle_wait_seconds",
		Help:      "Time spent waiting for a rate limiter token.",
		Buckets:   []float64{.001, .005, .01, .05, .1, .25, .5, 1, 2.5, 5},
	}, []string{"network"})
)

// RPCClient tracks metrics for RPC calls to blockchain nodes.
type RPCClient struct {
	network string
}

// NewRPCClient constructs a metrics collector for RPC calls.
func NewRPCClient(network string) *RPCClient {
	if network == "" {
		network = "unknown"
	}
	return &RPCClient{network: network}
}

// Observe records a single RPC call outcome and duration.
func (m RPCClient) Observe(operation string, err error, started time.Time) {
	status := statusOf(err)
	rpcRequestsTotal.WithLabelValues(operation, m.network, status).Inc()
	rpcRequestDuration.WithLabelValues(operation, m.network, status).Observe(time.Since(started).Seconds())
}

// ObserveRetry counts a failed attempt that will be retried.
func (m RPCClient) ObserveRetry(operation string) {
	rpcRetriesTotal.WithLabelValues(operation, m.network).Inc()
}

// ObserveThrottle records how long a call waited for the limiter.
func (m RPCClient) ObserveThrottle(wait time.Duration) {
	rpcThrottleDuration.WithLabelValues(m.network).Observe(wait.Seconds())
}

func statusOf(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}

func orUnknown(v string) string {
	if v == "" {
		return "unknown"
	}
	return v
}
