package services_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/civicore-hq/civicore/modules/interchange/domain"
	"github.com/civicore-hq/civicore/modules/interchange/schema"
	"github.com/civicore-hq/civicore/modules/interchange/services"
)

func memberRow(number, first, last string, rest ...string) []string {
	row := append([]string{number, first, last}, rest...)
	return pad(row, len(schema.MemberColumns))
}

func TestImport_UnknownTenant(t *testing.T) {
	f := newFixture(t)

	_, err := f.importer.Import(f.ctx, uuid.New(), []byte("irrelevant"))
	assert.ErrorIs(t, err, services.ErrUnknownTenant)
}

func TestImport_CorruptWorkbook(t *testing.T) {
	f := newFixture(t)

	_, err := f.importer.Import(f.ctx, f.tenantID, []byte("not a workbook"))
	assert.Error(t, err)
	assert.NotErrorIs(t, err, services.ErrUnknownTenant)
}

func TestImport_CreatesThenUpdates(t *testing.T) {
	f := newFixture(t)
	data := workbook(t, map[string][][]string{
		schema.SheetMembers: {
			memberRow("1", "Ana", "García"),
			memberRow("2", "Luis", "Moreno"),
		},
	})

	report, err := f.importer.Import(f.ctx, f.tenantID, data)
	require.NoError(t, err)
	assert.Equal(t, 2, report.PerEntity[domain.EntityMember].Created)
	assert.Equal(t, 0, report.PerEntity[domain.EntityMember].Updated)

	report, err = f.importer.Import(f.ctx, f.tenantID, data)
	require.NoError(t, err)
	assert.Equal(t, 0, report.PerEntity[domain.EntityMember].Created)
	assert.Equal(t, 2, report.PerEntity[domain.EntityMember].Updated)

	members, err := f.repos.Members.GetAll(withTenant(f, t))
	require.NoError(t, err)
	assert.Len(t, members, 2)
}

func TestImport_BlankCellsDoNotEraseStoredValues(t *testing.T) {
	f := newFixture(t)

	first := workbook(t, map[string][][]string{
		schema.SheetMembers: {
			{"1", "Ana", "García", "600123123", "ana@example.org", "", "", "", "", "", "", "", "1980-05-01", "sí", ""},
		},
	})
	_, err := f.importer.Import(f.ctx, f.tenantID, first)
	require.NoError(t, err)

	second := workbook(t, map[string][][]string{
		schema.SheetMembers: {
			memberRow("1", "Ana", "García"),
		},
	})
	report, err := f.importer.Import(f.ctx, f.tenantID, second)
	require.NoError(t, err)
	assert.Equal(t, 1, report.PerEntity[domain.EntityMember].Updated)

	stored, err := f.repos.Members.GetByNumber(withTenant(f, t), "1")
	require.NoError(t, err)
	assert.Equal(t, "600123123", stored.Phone())
	assert.Equal(t, "ana@example.org", stored.Email())
	require.NotNil(t, stored.BirthDate())
	assert.True(t, stored.DuesPaid(), "blank dues cell must not reset the flag")
}

func TestImport_MissingRequiredFieldSkipsRowOnly(t *testing.T) {
	f := newFixture(t)
	data := workbook(t, map[string][][]string{
		schema.SheetMembers: {
			memberRow("1", "Ana", ""),
			memberRow("2", "Luis", "Moreno"),
		},
		schema.SheetPlaces: {
			pad([]string{"Centro Cívico"}, len(schema.PlaceColumns)),
		},
	})

	report, err := f.importer.Import(f.ctx, f.tenantID, data)
	require.NoError(t, err)
	assert.Equal(t, 1, report.PerEntity[domain.EntityMember].Skipped)
	assert.Equal(t, 1, report.PerEntity[domain.EntityMember].Created)
	assert.Equal(t, 1, report.PerEntity[domain.EntityPlace].Created)
	assert.Empty(t, report.Failures, "a skip is not a failure")
}

func TestImport_SheetOrderDoesNotMatter(t *testing.T) {
	f := newFixture(t)
	// Events physically first; the Member reference must still resolve.
	data := workbook(t, map[string][][]string{
		schema.SheetEvents: {
			pad([]string{"Asamblea", "2024-03-09 18:30:00", "", "7"}, len(schema.EventColumns)),
		},
		schema.SheetMembers: {
			memberRow("7", "Carmen", "Vega"),
		},
	}, schema.SheetEvents, schema.SheetMembers)

	report, err := f.importer.Import(f.ctx, f.tenantID, data)
	require.NoError(t, err)
	assert.Equal(t, 1, report.PerEntity[domain.EntityEvent].Created)

	events, err := f.repos.Events.GetAll(withTenant(f, t))
	require.NoError(t, err)
	require.Len(t, events, 1)
	require.NotNil(t, events[0].ResponsibleMemberID())

	members, err := f.repos.Members.GetAll(withTenant(f, t))
	require.NoError(t, err)
	assert.Equal(t, members[0].ID(), *events[0].ResponsibleMemberID())
}

func TestImport_UnresolvedPlaceDegradesToText(t *testing.T) {
	f := newFixture(t)
	data := workbook(t, map[string][][]string{
		schema.SheetEvents: {
			pad([]string{"Verbena", "2024-06-23 21:00:00", "el descampado de detrás"}, len(schema.EventColumns)),
		},
	})

	report, err := f.importer.Import(f.ctx, f.tenantID, data)
	require.NoError(t, err)
	assert.Equal(t, 1, report.PerEntity[domain.EntityEvent].Created)

	events, err := f.repos.Events.GetAll(withTenant(f, t))
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Nil(t, events[0].PlaceID())
	assert.Equal(t, "el descampado de detrás", events[0].PlaceName())
}

func TestImport_SignedAmounts(t *testing.T) {
	f := newFixture(t)
	data := workbook(t, map[string][][]string{
		schema.SheetTransactions: {
			pad([]string{"2024-02-01", "-150.00", "Materials"}, len(schema.TransactionColumns)),
			pad([]string{"2024-02-03", "250.00", "Dues"}, len(schema.TransactionColumns)),
		},
	})

	report, err := f.importer.Import(f.ctx, f.tenantID, data)
	require.NoError(t, err)
	assert.Equal(t, 2, report.PerEntity[domain.EntityTransaction].Created)

	transactions, err := f.repos.Transactions.GetAll(withTenant(f, t))
	require.NoError(t, err)
	require.Len(t, transactions, 2)

	byLabel := map[string]bool{}
	for _, tx := range transactions {
		byLabel[tx.Label()] = tx.IsInflow()
	}
	assert.False(t, byLabel["Materials"])
	assert.True(t, byLabel["Dues"])
}

func TestImport_MalformedAmountFailsRowOnly(t *testing.T) {
	f := newFixture(t)
	data := workbook(t, map[string][][]string{
		schema.SheetTransactions: {
			pad([]string{"2024-02-01", "lots", "Donation"}, len(schema.TransactionColumns)),
			pad([]string{"2024-02-02", "10.00", "Dues"}, len(schema.TransactionColumns)),
		},
	})

	report, err := f.importer.Import(f.ctx, f.tenantID, data)
	require.NoError(t, err)
	assert.Equal(t, 1, report.PerEntity[domain.EntityTransaction].Failed)
	assert.Equal(t, 1, report.PerEntity[domain.EntityTransaction].Created)
	require.Len(t, report.Failures, 1)
	assert.Equal(t, domain.EntityTransaction, report.Failures[0].Entity)
	assert.Equal(t, 1, report.Failures[0].RowIndex)
}

func TestImport_TransactionReimportDoesNotDuplicate(t *testing.T) {
	f := newFixture(t)
	data := workbook(t, map[string][][]string{
		schema.SheetTransactions: {
			pad([]string{"2024-02-01", "-150.00", "Materials"}, len(schema.TransactionColumns)),
		},
	})

	_, err := f.importer.Import(f.ctx, f.tenantID, data)
	require.NoError(t, err)

	report, err := f.importer.Import(f.ctx, f.tenantID, data)
	require.NoError(t, err)
	assert.Equal(t, 0, report.PerEntity[domain.EntityTransaction].Created)
	assert.Equal(t, 1, report.PerEntity[domain.EntityTransaction].Updated)

	transactions, err := f.repos.Transactions.GetAll(withTenant(f, t))
	require.NoError(t, err)
	assert.Len(t, transactions, 1)
}

func TestImport_CustodianMemberWins(t *testing.T) {
	f := newFixture(t)
	data := workbook(t, map[string][][]string{
		schema.SheetMembers: {
			memberRow("3", "Rosa", "Núñez"),
		},
		schema.SheetContacts: {
			pad([]string{"Pedro", "Salas"}, len(schema.ContactColumns)),
		},
		schema.SheetInventoryItems: {
			{"Escalera", "", "45.00", "", "Pedro Salas", "3"},
		},
	})

	report, err := f.importer.Import(f.ctx, f.tenantID, data)
	require.NoError(t, err)
	assert.Equal(t, 1, report.PerEntity[domain.EntityInventoryItem].Created)

	items, err := f.repos.Items.GetAll(withTenant(f, t))
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.NotNil(t, items[0].CustodianMemberID())
	assert.Nil(t, items[0].CustodianContactID(), "member custodianship displaces the contact")
	assert.Equal(t, "45.00", items[0].Price().StringFixed(2))
}

func TestImport_ContactProjectForwardReferenceNotResolved(t *testing.T) {
	f := newFixture(t)
	data := workbook(t, map[string][][]string{
		schema.SheetContacts: {
			pad([]string{"Marta", "Ibáñez", "", "", "", "", "", "Huerto Urbano"}, len(schema.ContactColumns)),
		},
		schema.SheetProjects: {
			pad([]string{"Huerto Urbano"}, len(schema.ProjectColumns)),
		},
	})

	_, err := f.importer.Import(f.ctx, f.tenantID, data)
	require.NoError(t, err)

	contacts, err := f.repos.Contacts.GetAll(withTenant(f, t))
	require.NoError(t, err)
	require.Len(t, contacts, 1)
	assert.Nil(t, contacts[0].ProjectID(), "projects are processed after contacts within a run")

	// A second run sees the project and links it.
	_, err = f.importer.Import(f.ctx, f.tenantID, data)
	require.NoError(t, err)
	contacts, err = f.repos.Contacts.GetAll(withTenant(f, t))
	require.NoError(t, err)
	require.NotNil(t, contacts[0].ProjectID())
}

func TestImport_AbsentSheetsTolerated(t *testing.T) {
	f := newFixture(t)
	data := workbook(t, map[string][][]string{
		schema.SheetPlaces: {
			pad([]string{"Plaza Mayor", "Calle Real 1"}, len(schema.PlaceColumns)),
		},
	})

	report, err := f.importer.Import(f.ctx, f.tenantID, data)
	require.NoError(t, err)
	assert.Equal(t, 1, report.PerEntity[domain.EntityPlace].Created)
	assert.Equal(t, 0, report.PerEntity[domain.EntityMember].Created)
	assert.Empty(t, report.Failures)
}

func TestImport_NumericCellArtifactsNormalized(t *testing.T) {
	f := newFixture(t)
	data := workbook(t, map[string][][]string{
		schema.SheetMembers: {
			memberRow("12.0", "Ana", "García"),
		},
	})

	_, err := f.importer.Import(f.ctx, f.tenantID, data)
	require.NoError(t, err)

	stored, err := f.repos.Members.GetByNumber(withTenant(f, t), "12")
	require.NoError(t, err)
	assert.Equal(t, "12", stored.Number())
}
