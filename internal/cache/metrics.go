package cache

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	cacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "fast_note",
		Subsystem: "note_cache",
		Name:      "hits_total",
		Help:      "Note list reads served from cache.",
	})
	cacheMisses = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "fast_note",
		Subsystem: "note_cache",
		Name:      "misses_total",
		Help:      "Note list reads that ran the loader.",
	})
	cacheInvalidations = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "fast_note",
		Subsystem: "note_cache",
		Name:      "invalidations_total",
		Help:      "Owner cache entries deleted after a write.",
	})
	cacheBackendErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "fast_note",
		Subsystem: "note_cache",
		Name:      "backend_errors_total",
		Help:      "Cache backend failures by operation.",
	}, []string{"op"})
)
