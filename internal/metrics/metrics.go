package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Service counters.
var (
	ItemsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "garderoba_items_created_total",
		Help: "Number of wardrobe items created.",
	})

	ItemsDeleted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "garderoba_items_deleted_total",
		Help: "Number of wardrobe items deleted.",
	})

	ActionsApplied = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "garderoba_actions_applied_total",
		Help: "Number of lifecycle actions applied, by action.",
	}, []string{"action"})

	RemindersFired = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "garderoba_reminders_fired_total",
		Help: "Number of reminder notifications delivered, by kind.",
	}, []string{"kind"})

	StatusRefreshes = promauto.NewCounter(prometheus.CounterOpts{
		Name: "garderoba_status_refreshes_total",
		Help: "Number of items flagged rarely used by the time-based refresh.",
	})
)

// Handler returns the Prometheus scrape endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}
