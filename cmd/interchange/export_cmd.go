package main

import (
	"os"

	"github.com/go-faster/errors"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"

	"github.com/civicore-hq/civicore/modules/interchange/services"
	"github.com/civicore-hq/civicore/pkg/composables"
	"github.com/civicore-hq/civicore/pkg/configuration"
	"github.com/civicore-hq/civicore/pkg/eventbus"
)

var (
	exportTenant string
	exportOut    string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export a tenant's registry into a workbook",
	RunE:  runExport,
}

func init() {
	exportCmd.Flags().StringVar(&exportTenant, "tenant", "", "tenant id (uuid)")
	exportCmd.Flags().StringVar(&exportOut, "out", "export.xlsx", "path to write the workbook to")
	_ = exportCmd.MarkFlagRequired("tenant")
}

func runExport(cmd *cobra.Command, _ []string) error {
	tenantID, err := uuid.Parse(exportTenant)
	if err != nil {
		return errors.Wrap(err, "invalid tenant id")
	}

	conf := configuration.Use()
	log := conf.Logger()
	ctx := cmd.Context()

	pool, err := pgxpool.New(ctx, conf.Database.Opts)
	if err != nil {
		return errors.Wrap(err, "create database pool")
	}
	defer pool.Close()
	ctx = composables.WithPool(ctx, pool)

	exporter := services.NewExportService(databaseRepositories(), coercerFromConfig(conf), eventbus.NewEventPublisher(log))
	data, err := exporter.Export(ctx, tenantID)
	if err != nil {
		return err
	}

	if err := os.WriteFile(exportOut, data, 0o644); err != nil {
		return errors.Wrap(err, "write workbook")
	}
	log.Infof("wrote %d bytes to %s", len(data), exportOut)
	return nil
}
