package core

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/postiq-ai/postiq-bot/pkg/metrics"
)

type Metrics struct {
	apiResponseTime    *prometheus.HistogramVec
	apiErrorCounter    *prometheus.CounterVec
	updateCounter      *prometheus.CounterVec
	dialogRenderTime   *prometheus.HistogramVec
	llmResponseTime    *prometheus.HistogramVec
	llmErrorCounter    *prometheus.CounterVec
	alertDrainedTotal  *prometheus.CounterVec
	recoveryRunCounter *prometheus.CounterVec
}

func NewMetrics(ns, system string) *Metrics {
	metrics.SetupMetricsManager(ns, system, prometheus.DefaultRegisterer.(*prometheus.Registry))

	return &Metrics{
		apiResponseTime:    metrics.NewHistogramVec("api_response_time", []string{"api"}, nil),
		apiErrorCounter:    metrics.NewCounterVec("api_error", []string{"method", "api", "status"}),
		updateCounter:      metrics.NewCounterVec("telegram_update", []string{"kind"}),
		dialogRenderTime:   metrics.NewHistogramVec("dialog_render_time", []string{"dialog"}, nil),
		llmResponseTime:    metrics.NewHistogramVec("llm_response_time", []string{"call"}, nil),
		llmErrorCounter:    metrics.NewCounterVec("llm_error", []string{"call"}),
		alertDrainedTotal:  metrics.NewCounterVec("alert_drained", []string{"variant"}),
		recoveryRunCounter: metrics.NewCounterVec("recovery_run", []string{"target"}),
	}
}

func (m *Metrics) ApiResponseTimer(api string) *prometheus.Timer {
	return prometheus.NewTimer(m.apiResponseTime.WithLabelValues(api))
}

func (m *Metrics) ApiErrorInc(method, api string, status int) {
	m.apiErrorCounter.WithLabelValues(method, api, strconv.Itoa(status)).Inc()
}

func (m *Metrics) UpdateInc(kind string) {
	m.updateCounter.WithLabelValues(kind).Inc()
}

func (m *Metrics) DialogRenderTimer(dialog string) *prometheus.Timer {
	return prometheus.NewTimer(m.dialogRenderTime.WithLabelValues(dialog))
}

func (m *Metrics) LLMResponseTimer(call string) *prometheus.Timer {
	return prometheus.NewTimer(m.llmResponseTime.WithLabelValues(call))
}

func (m *Metrics) LLMErrorInc(call string) {
	m.llmErrorCounter.WithLabelValues(call).Inc()
}

func (m *Metrics) AlertDrainedInc(variant string) {
	m.alertDrainedTotal.WithLabelValues(variant).Inc()
}

func (m *Metrics) RecoveryRunInc(target string) {
	m.recoveryRunCounter.WithLabelValues(target).Inc()
}
