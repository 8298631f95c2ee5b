package main

import (
	"context"
	"fmt"
	"net/http"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/civicore-hq/civicore/modules/core/infrastructure/persistence"
	"github.com/civicore-hq/civicore/modules/interchange/presentation/controllers"
	"github.com/civicore-hq/civicore/modules/interchange/schema"
	"github.com/civicore-hq/civicore/modules/interchange/services"
	registrypersistence "github.com/civicore-hq/civicore/modules/registry/infrastructure/persistence"
	"github.com/civicore-hq/civicore/pkg/composables"
	"github.com/civicore-hq/civicore/pkg/configuration"
	"github.com/civicore-hq/civicore/pkg/eventbus"
	"github.com/civicore-hq/civicore/pkg/metrics"
	"github.com/civicore-hq/civicore/pkg/server"
)

// poolMiddleware injects the pgx pool into every request context so
// repositories can pick it up through composables.
func poolMiddleware(pool *pgxpool.Pool, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		next.ServeHTTP(w, r.WithContext(composables.WithPool(r.Context(), pool)))
	})
}

func main() {
	conf := configuration.Use()
	log := conf.Logger()

	pool, err := pgxpool.New(context.Background(), conf.Database.Opts)
	if err != nil {
		log.Fatalf("failed to create database pool: %v", err)
	}
	defer pool.Close()

	coercer := schema.Coercer{
		DateFormat:      conf.Interchange.DateFormat,
		TimestampFormat: conf.Interchange.TimestampFormat,
		Currency:        conf.Interchange.Currency,
	}
	publisher := eventbus.NewEventPublisher(log)

	repos := services.Repositories{
		Tenants:      persistence.NewTenantRepository(),
		Members:      registrypersistence.NewMemberRepository(),
		Places:       registrypersistence.NewPlaceRepository(),
		Contacts:     registrypersistence.NewContactRepository(),
		Items:        registrypersistence.NewInventoryRepository(),
		Transactions: registrypersistence.NewTransactionRepository(),
		Projects:     registrypersistence.NewProjectRepository(),
		Events:       registrypersistence.NewEventRepository(),
	}

	srv := server.New(log,
		controllers.NewInterchangeController(
			services.NewImportService(repos, coercer, publisher),
			services.NewExportService(repos, coercer, publisher),
			log,
		),
		metrics.NewPrometheusController(conf.MetricsPath),
	)

	handler := poolMiddleware(pool, srv.Router())
	addr := fmt.Sprintf(":%d", conf.ServerPort)
	log.Infof("listening on %s", addr)
	if err := http.ListenAndServe(addr, handler); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}
