package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Rowdraraz100/RazNotes/internal/core/services"
)

// Collector turns engine events into Prometheus series.
type Collector struct {
	events         *prometheus.CounterVec
	toggles        *prometheus.CounterVec
	streak         prometheus.Gauge
	maxStreak      prometheus.Gauge
	completedToday prometheus.Gauge
	activeDays     prometheus.Gauge
}

func NewCollector(reg prometheus.Registerer) *Collector {
	factory := promauto.With(reg)

	return &Collector{
		events: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "raz",
			Subsystem: "habits",
			Name:      "events_total",
			Help:      "State changes saved by the habit engine, by kind.",
		}, []string{"kind"}),
		toggles: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "raz",
			Subsystem: "habits",
			Name:      "toggles_total",
			Help:      "Habit toggles, by habit id.",
		}, []string{"habit"}),
		streak: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: "raz",
			Subsystem: "habits",
			Name:      "streak_days",
			Help:      "Current consecutive-day streak.",
		}),
		maxStreak: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: "raz",
			Subsystem: "habits",
			Name:      "max_streak_days",
			Help:      "Longest streak ever observed.",
		}),
		completedToday: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: "raz",
			Subsystem: "habits",
			Name:      "completed_today",
			Help:      "Habits completed on the current day.",
		}),
		activeDays: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: "raz",
			Subsystem: "habits",
			Name:      "active_days",
			Help:      "Days with at least one completion.",
		}),
	}
}

// Observe is meant to be passed to Engine.Subscribe.
func (c *Collector) Observe(ev services.Event) {
	c.events.WithLabelValues(string(ev.Kind)).Inc()
	if ev.Kind == services.EventToggled {
		c.toggles.WithLabelValues(ev.HabitID).Inc()
	}

	snap := ev.Snapshot
	c.streak.Set(float64(snap.Streak))
	c.maxStreak.Set(float64(snap.MaxStreak))
	c.completedToday.Set(float64(snap.CompletedCount()))
	c.activeDays.Set(float64(snap.History.ActiveDays()))
}

func Handler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}
