package ref

import "github.com/prometheus/client_golang/prometheus"

const (
	outcomeFound   = "found"
	outcomeAbsent  = "absent"
	outcomeInvalid = "invalid"
)

var referenceResolutions = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "gitref_reference_resolutions_total",
		Help: "Counter of reference target resolutions by outcome",
	},
	[]string{"outcome"},
)

func init() {
	prometheus.MustRegister(referenceResolutions)
}
