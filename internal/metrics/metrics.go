package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// CacheHits counts read-through cache hits per entity kind.
	CacheHits = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "clinicpos",
		Name:      "cache_hits_total",
		Help:      "Number of list/lookup queries served from cache",
	}, []string{"entity"})

	// CacheMisses counts read-through cache misses per entity kind.
	CacheMisses = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "clinicpos",
		Name:      "cache_misses_total",
		Help:      "Number of list/lookup queries that fell through to the store",
	}, []string{"entity"})

	// EventsPublished counts domain events handed to the broker.
	EventsPublished = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "clinicpos",
		Name:      "events_published_total",
		Help:      "Number of domain events published to the message bus",
	}, []string{"topic"})

	// EventsDropped counts domain events lost because the broker was
	// unreachable. Delivery is best-effort; this is the visibility for it.
	EventsDropped = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "clinicpos",
		Name:      "events_dropped_total",
		Help:      "Number of domain events dropped because publishing failed",
	}, []string{"topic"})
)
