// Package metrics provides Prometheus metrics for the Committed game.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Manager owns all Prometheus metrics for the game.
type Manager struct {
	namespace string
	enabled   bool
	registry  prometheus.Registerer

	// Sync pipeline
	syncs            prometheus.Counter
	commitsProcessed prometheus.Counter
	damageDealt      prometheus.Counter
	mobsDefeated     prometheus.Counter
	itemsDropped     prometheus.Counter
	specialItems     prometheus.Counter
	levelUps         prometheus.Counter

	// Persistence health
	storeErrors prometheus.Counter

	// Character state
	characterLevel prometheus.Gauge
	characterXP    prometheus.Gauge
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

// Initialize global metrics.
func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace: "committed",
		enabled:   true,
		registry:  prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()
	return m
}

func (m *Manager) initializeMetrics() {
	factory := promauto.With(m.registry)

	m.syncs = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "syncs_total",
		Help:      "Number of completed sync runs.",
	})
	m.commitsProcessed = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "commits_processed_total",
		Help:      "Commits turned into attacks.",
	})
	m.damageDealt = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "damage_dealt_total",
		Help:      "Total damage dealt, overkill included.",
	})
	m.mobsDefeated = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "mobs_defeated_total",
		Help:      "Mobs defeated across all syncs.",
	})
	m.itemsDropped = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "items_dropped_total",
		Help:      "Combat loot drops.",
	})
	m.specialItems = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "special_items_forged_total",
		Help:      "Items forged from merge request approvals.",
	})
	m.levelUps = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "level_ups_total",
		Help:      "Level-ups gained.",
	})
	m.storeErrors = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "store_errors_total",
		Help:      "Save/load failures against the document store.",
	})
	m.characterLevel = factory.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Name:      "character_level",
		Help:      "Current character level.",
	})
	m.characterXP = factory.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Name:      "character_xp",
		Help:      "Current XP toward the next level.",
	})
}

// RecordSync increments the completed sync counter.
func RecordSync() {
	if globalManager.enabled {
		globalManager.syncs.Inc()
	}
}

// RecordCommitProcessed counts one commit turned into an attack.
func RecordCommitProcessed() {
	if globalManager.enabled {
		globalManager.commitsProcessed.Inc()
	}
}

// RecordDamageDealt adds to the lifetime damage counter.
func RecordDamageDealt(damage int) {
	if globalManager.enabled && damage > 0 {
		globalManager.damageDealt.Add(float64(damage))
	}
}

// RecordMobDefeated counts one defeated mob.
func RecordMobDefeated() {
	if globalManager.enabled {
		globalManager.mobsDefeated.Inc()
	}
}

// RecordItemDropped counts one combat loot drop.
func RecordItemDropped() {
	if globalManager.enabled {
		globalManager.itemsDropped.Inc()
	}
}

// RecordSpecialItemForged counts one approval-forged item.
func RecordSpecialItemForged() {
	if globalManager.enabled {
		globalManager.specialItems.Inc()
	}
}

// RecordLevelUps adds gained levels to the level-up counter.
func RecordLevelUps(levels int) {
	if globalManager.enabled && levels > 0 {
		globalManager.levelUps.Add(float64(levels))
	}
}

// RecordStoreError counts one save/load failure.
func RecordStoreError() {
	if globalManager.enabled {
		globalManager.storeErrors.Inc()
	}
}

// UpdateCharacterLevel sets the character level gauge.
func UpdateCharacterLevel(level int) {
	if globalManager.enabled {
		globalManager.characterLevel.Set(float64(level))
	}
}

// UpdateCharacterXP sets the character XP gauge.
func UpdateCharacterXP(xp float64) {
	if globalManager.enabled {
		globalManager.characterXP.Set(xp)
	}
}

// Handler returns an HTTP handler serving the custom registry.
func Handler() http.Handler {
	return promhttp.HandlerFor(customRegistry, promhttp.HandlerOpts{})
}

// GetRegistry returns the custom registry used by the global manager.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
