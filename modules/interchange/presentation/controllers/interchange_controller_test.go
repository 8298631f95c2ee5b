package controllers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/civicore-hq/civicore/modules/core/domain/entities/tenant"
	coreinmemory "github.com/civicore-hq/civicore/modules/core/infrastructure/inmemory"
	"github.com/civicore-hq/civicore/modules/interchange/domain"
	"github.com/civicore-hq/civicore/modules/interchange/presentation/controllers"
	"github.com/civicore-hq/civicore/modules/interchange/schema"
	"github.com/civicore-hq/civicore/modules/interchange/services"
	"github.com/civicore-hq/civicore/modules/registry/infrastructure/inmemory"
	"github.com/civicore-hq/civicore/pkg/excel"
	"github.com/civicore-hq/civicore/pkg/server"
)

func newTestServer(t *testing.T) (*server.HTTPServer, uuid.UUID) {
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
	log := logrus.New()
	srv := server.New(log, controllers.NewInterchangeController(
		services.NewImportService(repos, coercer, nil),
		services.NewExportService(repos, coercer, nil),
		log,
	))
	return srv, owner.ID()
}

func membersWorkbook(t *testing.T) []byte {
	t.Helper()
	data, err := excel.Encode([]excel.SheetData{{
		Name:    schema.SheetMembers,
		Headers: schema.MemberColumns,
		Rows: [][]string{
			{"1", "Ana", "García", "", "", "", "", "", "", "", "", "", "", "", ""},
		},
	}})
	require.NoError(t, err)
	return data
}

func TestInterchangeController_ImportMultipart(t *testing.T) {
	srv, tenantID := newTestServer(t)

	var body bytes.Buffer
	form := multipart.NewWriter(&body)
	part, err := form.CreateFormFile("workbook", "books.xlsx")
	require.NoError(t, err)
	_, err = part.Write(membersWorkbook(t))
	require.NoError(t, err)
	require.NoError(t, form.Close())

	req := httptest.NewRequest(http.MethodPost, "/interchange/"+tenantID.String()+"/import", &body)
	req.Header.Set("Content-Type", form.FormDataContentType())
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var report domain.Report
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &report))
	assert.Equal(t, 1, report.PerEntity[domain.EntityMember].Created)
}

func TestInterchangeController_ImportUnknownTenant(t *testing.T) {
	srv, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/interchange/"+uuid.NewString()+"/import", bytes.NewReader(membersWorkbook(t)))
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestInterchangeController_ImportBadTenantID(t *testing.T) {
	srv, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/interchange/not-a-uuid/import", bytes.NewReader(nil))
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestInterchangeController_Export(t *testing.T) {
	srv, tenantID := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/interchange/"+tenantID.String()+"/import", bytes.NewReader(membersWorkbook(t)))
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/interchange/"+tenantID.String()+"/export", nil)
	rec = httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	decoded, err := excel.Decode(rec.Body.Bytes())
	require.NoError(t, err)
	members, ok := decoded.Sheet(schema.SheetMembers)
	require.True(t, ok)
	assert.Len(t, members.Rows, 1)
}
