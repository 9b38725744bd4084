package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	globalMetrics *Metrics
	metricsOnce   sync.Once
)

// Metrics holds Prometheus metrics for the portfolio store and services.
type Metrics struct {
	StoreLoadsTotal   prometheus.Counter
	StoreResetsTotal  *prometheus.CounterVec
	StoreSavesTotal   prometheus.Counter
	StoreErrorsTotal  *prometheus.CounterVec
	ProjectOpsTotal   *prometheus.CounterVec
	ImageUploadsTotal *prometheus.CounterVec
	ProjectsCount     prometheus.Gauge
}

// New creates and registers the portfolio metrics.
//
// Registration happens once per process; later calls return the same set.
//
// Metrics:
//   - portfolio_store_loads_total - documents read from disk
//   - portfolio_store_resets_total{reason} - documents replaced by the default
//   - portfolio_store_saves_total - documents written to disk
//   - portfolio_store_errors_total{op} - failed reads/writes
//   - portfolio_project_ops_total{op} - add, edit, delete
//   - portfolio_image_uploads_total{result} - stored or ignored uploads
//   - portfolio_projects - project count after the last save
func New() *Metrics {
	metricsOnce.Do(func() {
		globalMetrics = &Metrics{
			StoreLoadsTotal: promauto.NewCounter(prometheus.CounterOpts{
				Name: "portfolio_store_loads_total",
				Help: "Total number of documents loaded from disk",
			}),
			StoreResetsTotal: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "portfolio_store_resets_total",
					Help: "Total number of documents replaced by the default document",
				},
				[]string{"reason"}, // "missing", "empty", "corrupt", "manual"
			),
			StoreSavesTotal: promauto.NewCounter(prometheus.CounterOpts{
				Name: "portfolio_store_saves_total",
				Help: "Total number of documents written to disk",
			}),
			StoreErrorsTotal: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "portfolio_store_errors_total",
					Help: "Total number of failed store operations",
				},
				[]string{"op"},
			),
			ProjectOpsTotal: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "portfolio_project_ops_total",
					Help: "Total number of project mutations",
				},
				[]string{"op"},
			),
			ImageUploadsTotal: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "portfolio_image_uploads_total",
					Help: "Total number of image uploads by outcome",
				},
				[]string{"result"}, // "stored", "ignored"
			),
			ProjectsCount: promauto.NewGauge(prometheus.GaugeOpts{
				Name: "portfolio_projects",
				Help: "Number of projects in the last saved document",
			}),
		}
	})
	return globalMetrics
}
