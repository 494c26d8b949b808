package seeder

import "github.com/prometheus/client_golang/prometheus"

var (
	productsProcessed = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "seeder_products_processed_total",
		Help: "Products read and passed through draft generation",
	})

	draftsGenerated = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "seeder_drafts_generated_total",
		Help: "Inventory entry drafts generated",
	})

	entriesCreated = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "seeder_entries_created_total",
		Help: "Inventory entries accepted by the platform",
	})

	writesSkipped = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "seeder_writes_skipped_total",
		Help: "Create commands rejected by the platform and skipped",
	})
)

func init() {
	prometheus.MustRegister(productsProcessed, draftsGenerated, entriesCreated, writesSkipped)
}
