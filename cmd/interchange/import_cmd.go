package main

import (
	"context"
	"encoding/json"
	"os"

	"github.com/go-faster/errors"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"

	"github.com/civicore-hq/civicore/modules/core/domain/entities/tenant"
	coreinmemory "github.com/civicore-hq/civicore/modules/core/infrastructure/inmemory"
	corepersistence "github.com/civicore-hq/civicore/modules/core/infrastructure/persistence"
	"github.com/civicore-hq/civicore/modules/interchange/schema"
	"github.com/civicore-hq/civicore/modules/interchange/services"
	"github.com/civicore-hq/civicore/modules/registry/infrastructure/inmemory"
	registrypersistence "github.com/civicore-hq/civicore/modules/registry/infrastructure/persistence"
	"github.com/civicore-hq/civicore/pkg/composables"
	"github.com/civicore-hq/civicore/pkg/configuration"
	"github.com/civicore-hq/civicore/pkg/eventbus"
)

var (
	importTenant string
	importFile   string
	importDryRun bool
)

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Import a workbook into a tenant's registry",
	RunE:  runImport,
}

func init() {
	importCmd.Flags().StringVar(&importTenant, "tenant", "", "tenant id (uuid)")
	importCmd.Flags().StringVar(&importFile, "file", "", "path to the .xlsx workbook")
	importCmd.Flags().BoolVar(&importDryRun, "dry-run", false, "resolve rows against empty in-memory stores without touching the database")
	_ = importCmd.MarkFlagRequired("tenant")
	_ = importCmd.MarkFlagRequired("file")
}

func coercerFromConfig(conf *configuration.Configuration) schema.Coercer {
	return schema.Coercer{
		DateFormat:      conf.Interchange.DateFormat,
		TimestampFormat: conf.Interchange.TimestampFormat,
		Currency:        conf.Interchange.Currency,
	}
}

func databaseRepositories() services.Repositories {
	return services.Repositories{
		Tenants:      corepersistence.NewTenantRepository(),
		Members:      registrypersistence.NewMemberRepository(),
		Places:       registrypersistence.NewPlaceRepository(),
		Contacts:     registrypersistence.NewContactRepository(),
		Items:        registrypersistence.NewInventoryRepository(),
		Transactions: registrypersistence.NewTransactionRepository(),
		Projects:     registrypersistence.NewProjectRepository(),
		Events:       registrypersistence.NewEventRepository(),
	}
}

// dryRunRepositories builds empty in-memory stores with the requested
// tenant pre-registered, so a workbook can be validated end to end
// without a database.
func dryRunRepositories(ctx context.Context, tenantID uuid.UUID) (services.Repositories, error) {
	tenants := coreinmemory.NewTenantRepository()
	if _, err := tenants.Create(ctx, tenant.New("dry-run", tenant.WithID(tenantID))); err != nil {
		return services.Repositories{}, err
	}
	return services.Repositories{
		Tenants:      tenants,
		Members:      inmemory.NewMemberRepository(),
		Places:       inmemory.NewPlaceRepository(),
		Contacts:     inmemory.NewContactRepository(),
		Items:        inmemory.NewInventoryRepository(),
		Transactions: inmemory.NewTransactionRepository(),
		Projects:     inmemory.NewProjectRepository(),
		Events:       inmemory.NewEventRepository(),
	}, nil
}

func runImport(cmd *cobra.Command, _ []string) error {
	tenantID, err := uuid.Parse(importTenant)
	if err != nil {
		return errors.Wrap(err, "invalid tenant id")
	}
	data, err := os.ReadFile(importFile)
	if err != nil {
		return errors.Wrap(err, "read workbook")
	}

	conf := configuration.Use()
	log := conf.Logger()
	ctx := cmd.Context()

	var repos services.Repositories
	if importDryRun {
		repos, err = dryRunRepositories(ctx, tenantID)
		if err != nil {
			return err
		}
	} else {
		pool, err := pgxpool.New(ctx, conf.Database.Opts)
		if err != nil {
			return errors.Wrap(err, "create database pool")
		}
		defer pool.Close()
		ctx = composables.WithPool(ctx, pool)
		repos = databaseRepositories()
	}

	importer := services.NewImportService(repos, coercerFromConfig(conf), eventbus.NewEventPublisher(log))
	report, err := importer.Import(ctx, tenantID, data)
	if err != nil {
		return err
	}

	encoder := json.NewEncoder(cmd.OutOrStdout())
	encoder.SetIndent("", "  ")
	return encoder.Encode(report)
}
