package manager

import "github.com/prometheus/client_golang/prometheus"

var (
	modelLoadsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "transd",
			Subsystem: "manager",
			Name:      "model_loads_total",
			Help:      "Total number of completed model load episodes",
		},
	)

	modelLoadFailuresTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "transd",
			Subsystem: "manager",
			Name:      "model_load_failures_total",
			Help:      "Total number of failed model load episodes",
		},
	)

	loadedModelsGauge = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "transd",
			Subsystem: "manager",
			Name:      "loaded_models",
			Help:      "Number of models currently cached",
		},
	)

	artifactDownloadsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "transd",
			Subsystem: "manager",
			Name:      "artifact_downloads_total",
			Help:      "Background artifact downloads by outcome",
		},
		[]string{"status"},
	)
)

func init() {
	prometheus.MustRegister(modelLoadsTotal, modelLoadFailuresTotal, loadedModelsGauge, artifactDownloadsTotal)
}
