package blockchain

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	blocksReceived = promauto.NewCounter(prometheus.CounterOpts{
		Name: "beacon_blocks_received_total",
		Help: "Count the number of blocks applied to a fork head.",
	})
	blocksRejected = promauto.NewCounter(prometheus.CounterOpts{
		Name: "beacon_blocks_rejected_total",
		Help: "Count the number of blocks that failed the state transition.",
	})
	forkHeads = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "beacon_fork_heads",
		Help: "Number of fork heads in the chain store.",
	})
	finalityCacheHit = promauto.NewCounter(prometheus.CounterOpts{
		Name: "finality_view_cache_hit",
		Help: "The total number of cache hits on the finality view cache.",
	})
	finalityCacheMiss = promauto.NewCounter(prometheus.CounterOpts{
		Name: "finality_view_cache_miss",
		Help: "The total number of cache misses on the finality view cache.",
	})
)
