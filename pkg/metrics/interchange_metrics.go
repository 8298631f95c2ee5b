package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ImportRowsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "civicore_import_rows_total",
		Help: "Workbook import rows by entity type and outcome.",
	}, []string{"entity", "outcome"})

	ImportRunsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "civicore_import_runs_total",
		Help: "Workbook import runs by result.",
	}, []string{"result"})

	ExportRunsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "civicore_export_runs_total",
		Help: "Workbook export runs by result.",
	}, []string{"result"})
)
