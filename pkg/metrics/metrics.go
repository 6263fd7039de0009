package metrics

import (
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type manager struct {
	namespace string
	system    string
	registry  *prometheus.Registry
}

var defaultManager = &manager{
	namespace: "default",
	system:    "default",
	registry:  prometheus.NewRegistry(),
}

func SetupMetricsManager(ns, system string, registry *prometheus.Registry) {
	defaultManager = &manager{
		namespace: ns,
		system:    system,
		registry:  registry,
	}
	registry.Register(collectors.NewGoCollector())
}

func mustGetDefaultManager() (string, string, prometheus.Registerer) {
	return defaultManager.namespace, defaultManager.system, defaultManager.registry
}

func NewCounterVec(name string, labels []string) *prometheus.CounterVec {
	ns, system, registerer := mustGetDefaultManager()

	vec := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: fmtFixer(ns),
			Subsystem: fmtFixer(system),
			Name:      fmtFixer(name),
			Help:      fmt.Sprintf("%s count of /%s/%s", name, ns, system),
		},
		labels,
	)
	registerer.Register(vec)
	return vec
}

func NewHistogramVec(name string, labels []string, buckets []float64) *prometheus.HistogramVec {
	ns, system, registerer := mustGetDefaultManager()

	vec := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: fmtFixer(ns),
			Subsystem: fmtFixer(system),
			Name:      fmtFixer(name),
			Help:      fmt.Sprintf("%s duration of /%s/%s", name, ns, system),
			Buckets:   buckets,
		},
		labels,
	)
	registerer.Register(vec)
	return vec
}

func NewGaugeVec(name string, labels []string) *prometheus.GaugeVec {
	ns, system, registerer := mustGetDefaultManager()

	vec := prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: fmtFixer(ns),
			Subsystem: fmtFixer(system),
			Name:      fmtFixer(name),
			Help:      fmt.Sprintf("%s gauge of /%s/%s", name, ns, system),
		},
		labels,
	)
	registerer.Register(vec)
	return vec
}

// Handler exposes the registry for the operational /metrics route.
func Handler() gin.HandlerFunc {
	h := promhttp.HandlerFor(defaultManager.registry, promhttp.HandlerOpts{})
	return func(c *gin.Context) {
		h.ServeHTTP(c.Writer, c.Request)
	}
}

func fmtFixer(str string) string {
	return strings.NewReplacer("-", "_", ".", "_", "/", "_").Replace(str)
}
