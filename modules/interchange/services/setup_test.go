package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/civicore-hq/civicore/modules/core/domain/entities/tenant"
	coreinmemory "github.com/civicore-hq/civicore/modules/core/infrastructure/inmemory"
	"github.com/civicore-hq/civicore/modules/interchange/schema"
	"github.com/civicore-hq/civicore/modules/interchange/services"
	"github.com/civicore-hq/civicore/modules/registry/infrastructure/inmemory"
	"github.com/civicore-hq/civicore/pkg/composables"
	"github.com/civicore-hq/civicore/pkg/excel"
)

type fixture struct {
	ctx      context.Context
	tenantID uuid.UUID
	repos    services.Repositories
	importer *services.ImportService
	exporter *services.ExportService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	tenants := coreinmemory.NewTenantRepository()
	owner, err := tenants.Create(context.Background(), tenant.New("Asociación Vecinal"))
	require.NoError(t, err)

	repos := services.Repositories{
		Tenants:      tenants,
		Members:      inmemory.NewMemberRepository(),
		Places:       inmemory.NewPlaceRepository(),
		Contacts:     inmemory.NewContactRepository(),
		Items:        inmemory.NewInventoryRepository(),
		Transactions: inmemory.NewTransactionRepository(),
		Projects:     inmemory.NewProjectRepository(),
		Events:       inmemory.NewEventRepository(),
	}
	coercer := schema.Coercer{
		DateFormat:      "2006-01-02",
		TimestampFormat: "2006-01-02 15:04:05",
		Currency:        "EUR",
	}
	return &fixture{
		ctx:      context.Background(),
		tenantID: owner.ID(),
		repos:    repos,
		importer: services.NewImportService(repos, coercer, nil),
		exporter: services.NewExportService(repos, coercer, nil),
	}
}

// withTenant scopes a context to the fixture tenant, the way the
// services do internally, so tests can read repositories directly.
func withTenant(f *fixture, t *testing.T) context.Context {
	t.Helper()
	return composables.WithTenantID(f.ctx, f.tenantID)
}

// workbook builds xlsx bytes out of sheet name to rows, using the
// canonical column order for each known sheet.
func workbook(t *testing.T, sheets map[string][][]string, order ...string) []byte {
	t.Helper()

	headers := map[string][]string{
		schema.SheetMembers:        schema.MemberColumns,
		schema.SheetPlaces:         schema.PlaceColumns,
		schema.SheetContacts:       schema.ContactColumns,
		schema.SheetInventoryItems: schema.InventoryItemColumns,
		schema.SheetTransactions:   schema.TransactionColumns,
		schema.SheetEvents:         schema.EventColumns,
		schema.SheetProjects:       schema.ProjectColumns,
	}

	if len(order) == 0 {
		for name := range sheets {
			order = append(order, name)
		}
	}

	var data []excel.SheetData
	for _, name := range order {
		rows, ok := sheets[name]
		if !ok {
			continue
		}
		data = append(data, excel.SheetData{Name: name, Headers: headers[name], Rows: rows})
	}
	encoded, err := excel.Encode(data)
	require.NoError(t, err)
	return encoded
}

// pad extends a row with blanks up to the sheet's column count.
func pad(row []string, width int) []string {
	for len(row) < width {
		row = append(row, "")
	}
	return row
}
