package metrics

import (
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

const namespace = "docfoundry"

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	registry       *prom.Registry
	documents      *prom.CounterVec
	partialMisses  *prom.CounterVec
	runDuration    *prom.HistogramVec
	generatedPages prom.Counter
}

// NewPrometheusRecorder constructs the metrics and registers them on reg. A
// nil reg gets a fresh private registry.
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{
		registry: reg,
		documents: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "documents_total",
			Help:      "Documents processed by the rewrite driver, by outcome",
		}, []string{"doc_set", "result"}),
		partialMisses: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "partial_misses_total",
			Help:      "Placeholders left unexpanded because their partial was missing",
		}, []string{"partial"}),
		runDuration: prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "run_duration_seconds",
			Help:      "Duration of a rewrite run over one document set",
			Buckets:   prom.DefBuckets,
		}, []string{"doc_set"}),
		generatedPages: prom.NewCounter(prom.CounterOpts{
			Namespace: namespace,
			Name:      "reference_pages_total",
			Help:      "Reference pages written by the generator",
		}),
	}
	reg.MustRegister(pr.documents, pr.partialMisses, pr.runDuration, pr.generatedPages)
	return pr
}

// Registry returns the registry the metrics live on.
func (p *PrometheusRecorder) Registry() *prom.Registry {
	if p == nil {
		return nil
	}
	return p.registry
}

func (p *PrometheusRecorder) IncDocument(docSet string, result DocumentResult) {
	if p == nil || p.documents == nil {
		return
	}
	p.documents.WithLabelValues(docSet, string(result)).Inc()
}

func (p *PrometheusRecorder) IncPartialMiss(name string) {
	if p == nil || p.partialMisses == nil {
		return
	}
	p.partialMisses.WithLabelValues(name).Inc()
}

func (p *PrometheusRecorder) ObserveRunDuration(docSet string, d time.Duration) {
	if p == nil || p.runDuration == nil {
		return
	}
	p.runDuration.WithLabelValues(docSet).Observe(d.Seconds())
}

func (p *PrometheusRecorder) AddGeneratedPages(n int) {
	if p == nil || p.generatedPages == nil || n <= 0 {
		return
	}
	p.generatedPages.Add(float64(n))
}

// WriteTextfile writes all gathered metrics to path atomically, in the text
// exposition format read by the node-exporter textfile collector.
func (p *PrometheusRecorder) WriteTextfile(path string) error {
	if p == nil || p.registry == nil {
		return nil
	}
	return prom.WriteToTextfile(path, p.registry)
}
