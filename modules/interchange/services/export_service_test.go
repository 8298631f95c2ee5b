package services_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/civicore-hq/civicore/modules/interchange/domain"
	"github.com/civicore-hq/civicore/modules/interchange/schema"
	"github.com/civicore-hq/civicore/modules/interchange/services"
	"github.com/civicore-hq/civicore/pkg/excel"
)

func TestExport_UnknownTenant(t *testing.T) {
	f := newFixture(t)

	_, err := f.exporter.Export(f.ctx, uuid.New())
	assert.ErrorIs(t, err, services.ErrUnknownTenant)
}

func TestExport_EmptyTenantStillProducesAllSheets(t *testing.T) {
	f := newFixture(t)

	data, err := f.exporter.Export(f.ctx, f.tenantID)
	require.NoError(t, err)

	decoded, err := excel.Decode(data)
	require.NoError(t, err)
	for _, name := range []string{
		schema.SheetMembers, schema.SheetPlaces, schema.SheetContacts,
		schema.SheetInventoryItems, schema.SheetTransactions,
		schema.SheetEvents, schema.SheetProjects,
	} {
		sheet, ok := decoded.Sheet(name)
		require.True(t, ok, name)
		assert.Empty(t, sheet.Rows, name)
	}
}

func TestExport_RendersReferencesAsNaturalKeys(t *testing.T) {
	f := newFixture(t)
	imported := workbook(t, map[string][][]string{
		schema.SheetMembers: {
			memberRow("7", "Carmen", "Vega"),
		},
		schema.SheetPlaces: {
			pad([]string{"Centro Cívico", "Calle Real 1"}, len(schema.PlaceColumns)),
		},
		schema.SheetEvents: {
			pad([]string{"Asamblea", "2024-03-09 18:30:00", "Centro Cívico", "7", "", "1:30:00"}, len(schema.EventColumns)),
		},
	})
	_, err := f.importer.Import(f.ctx, f.tenantID, imported)
	require.NoError(t, err)

	data, err := f.exporter.Export(f.ctx, f.tenantID)
	require.NoError(t, err)

	decoded, err := excel.Decode(data)
	require.NoError(t, err)
	events, ok := decoded.Sheet(schema.SheetEvents)
	require.True(t, ok)
	require.Len(t, events.Rows, 1)
	assert.Equal(t, "Centro Cívico", events.Rows[0].Value(schema.ColPlaceNameOrText))
	assert.Equal(t, "7", events.Rows[0].Value(schema.ColResponsibleMember))
	assert.Equal(t, "1:30:00", events.Rows[0].Value(schema.ColDuration))
}

func TestExport_ImportRoundTripIsStable(t *testing.T) {
	f := newFixture(t)
	seed := workbook(t, map[string][][]string{
		schema.SheetMembers: {
			{"1", "Ana", "García", "600123123", "ana@example.org", "Calle Luna 4", "4", "2", "B", "28001", "Madrid", "España", "1980-05-01", "sí", "founder"},
			memberRow("2", "Luis", "Moreno"),
		},
		schema.SheetPlaces: {
			pad([]string{"Plaza Mayor", "Calle Real 1", "la plaza del pueblo"}, len(schema.PlaceColumns)),
		},
		schema.SheetContacts: {
			pad([]string{"Pedro", "Salas", "fontanero del barrio", "proveedor"}, len(schema.ContactColumns)),
		},
		schema.SheetInventoryItems: {
			{"Escalera", "en el almacén", "45.00", "Plaza Mayor", "Pedro Salas", ""},
		},
		schema.SheetTransactions: {
			pad([]string{"2024-02-01", "-150.00", "Materials"}, len(schema.TransactionColumns)),
			pad([]string{"2024-02-03", "250.00", "Dues"}, len(schema.TransactionColumns)),
		},
		schema.SheetEvents: {
			pad([]string{"Asamblea", "2024-03-09 18:30:00", "Plaza Mayor", "1", "acta pendiente", "2:00:00"}, len(schema.EventColumns)),
		},
		schema.SheetProjects: {
			pad([]string{"Huerto Urbano", "Ana García", "2024-01-15", "", "Plaza Mayor", "huerto comunitario", "", "", "sí"}, len(schema.ProjectColumns)),
		},
	})
	_, err := f.importer.Import(f.ctx, f.tenantID, seed)
	require.NoError(t, err)

	exported, err := f.exporter.Export(f.ctx, f.tenantID)
	require.NoError(t, err)

	report, err := f.importer.Import(f.ctx, f.tenantID, exported)
	require.NoError(t, err)

	assert.Empty(t, report.Failures)
	for entity, counts := range report.PerEntity {
		assert.Zerof(t, counts.Created, "%s: round trip must not create", entity)
		assert.Zerof(t, counts.Failed, "%s: round trip must not fail", entity)
	}
	assert.Equal(t, 2, report.PerEntity[domain.EntityMember].Updated)
	assert.Equal(t, 2, report.PerEntity[domain.EntityTransaction].Updated)
	assert.Equal(t, 1, report.PerEntity[domain.EntityEvent].Updated)
}

func TestExport_DanglingReferenceRendersEmptyCell(t *testing.T) {
	f := newFixture(t)
	imported := workbook(t, map[string][][]string{
		schema.SheetEvents: {
			pad([]string{"Verbena", "2024-06-23 21:00:00", "el descampado"}, len(schema.EventColumns)),
		},
	})
	_, err := f.importer.Import(f.ctx, f.tenantID, imported)
	require.NoError(t, err)

	data, err := f.exporter.Export(f.ctx, f.tenantID)
	require.NoError(t, err)

	decoded, err := excel.Decode(data)
	require.NoError(t, err)
	events, ok := decoded.Sheet(schema.SheetEvents)
	require.True(t, ok)
	require.Len(t, events.Rows, 1)
	// the raw place text survives, the member cell is simply empty
	assert.Equal(t, "el descampado", events.Rows[0].Value(schema.ColPlaceNameOrText))
	assert.Equal(t, "", events.Rows[0].Value(schema.ColResponsibleMember))
}
