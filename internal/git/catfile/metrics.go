package catfile

import "github.com/prometheus/client_golang/prometheus"

var (
	totalCatfileProcesses = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "gitref_catfile_processes_total",
			Help: "Number of git cat-file processes spawned",
		},
	)
	currentCatfileProcesses = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "gitref_catfile_processes",
			Help: "Gauge of active git cat-file processes",
		},
	)
	catfileCacheLookups = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gitref_catfile_cache_total",
			Help: "Counter of object header cache lookups by result",
		},
		[]string{"type"},
	)
)

func init() {
	prometheus.MustRegister(totalCatfileProcesses, currentCatfileProcesses, catfileCacheLookups)
}
