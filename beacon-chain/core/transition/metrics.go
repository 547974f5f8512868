package transition

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	processedSlotsCount = promauto.NewCounter(prometheus.CounterOpts{
		Name: "beacon_processed_slots_total",
		Help: "Count the number of slots advanced by state transition.",
	})
	processedEpochsCount = promauto.NewCounter(prometheus.CounterOpts{
		Name: "beacon_processed_epochs_total",
		Help: "Count the number of epoch transitions applied.",
	})
	justifiedEpochGauge = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "beacon_current_justified_epoch",
		Help: "Current justified epoch of the most recently processed epoch transition.",
	})
	finalizedEpochGauge = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "beacon_finalized_epoch",
		Help: "Finalized epoch of the most recently processed epoch transition.",
	})
	epochsSinceFinalityGauge = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "beacon_epochs_since_finality",
		Help: "Epochs between the current epoch and the finalized checkpoint after the last epoch transition.",
	})
)
