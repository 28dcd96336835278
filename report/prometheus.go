package report

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/alexshd/ubench"
)

// Exporter publishes entries as Prometheus gauges on a private registry.
// One series exists per (benchmark, arg); re-observing overwrites it.
type Exporter struct {
	registry *prometheus.Registry

	mean   *prometheus.GaugeVec
	median *prometheus.GaugeVec
	stddev *prometheus.GaugeVec
	cv     *prometheus.GaugeVec
}

var entryLabels = []string{"benchmark", "arg", "unit"}

// NewExporter registers the ubench gauges on a fresh registry.
func NewExporter() *Exporter {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Exporter{
		registry: reg,
		mean: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "ubench",
			Name:      "mean",
			Help:      "Mean cost per call, in clock units.",
		}, entryLabels),
		median: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "ubench",
			Name:      "median",
			Help:      "Median cost per call, in clock units.",
		}, entryLabels),
		stddev: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "ubench",
			Name:      "stddev",
			Help:      "Population standard deviation of the cost per call.",
		}, entryLabels),
		cv: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "ubench",
			Name:      "cv",
			Help:      "Coefficient of variation of the cost per call.",
		}, entryLabels),
	}
}

// Observe sets the gauges for every entry.
func (e *Exporter) Observe(entries []ubench.Entry, unit string) {
	for _, en := range entries {
		labels := prometheus.Labels{
			"benchmark": en.Name,
			"arg":       strconv.Itoa(en.Arg),
			"unit":      unit,
		}
		e.mean.With(labels).Set(en.Mean)
		e.median.With(labels).Set(en.Median)
		e.stddev.With(labels).Set(en.StdDev)
		e.cv.With(labels).Set(en.CV)
	}
}

// Gatherer exposes the registry, e.g. for promhttp or testutil.
func (e *Exporter) Gatherer() prometheus.Gatherer {
	return e.registry
}

// WriteTextfile writes the current gauges in text exposition format,
// suitable for the node_exporter textfile collector.
func (e *Exporter) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, e.registry)
}
