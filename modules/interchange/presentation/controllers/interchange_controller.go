package controllers

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/go-faster/errors"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/civicore-hq/civicore/modules/interchange/services"
)

// 25 MB covers years of hand-kept association books with room to spare.
const maxWorkbookBytes = 25 << 20

const workbookContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// InterchangeController exposes workbook import and export over HTTP.
// A run with row failures is still a 200: the report carries them.
type InterchangeController struct {
	importer *services.ImportService
	exporter *services.ExportService
	log      *logrus.Logger
}

func NewInterchangeController(importer *services.ImportService, exporter *services.ExportService, log *logrus.Logger) *InterchangeController {
	return &InterchangeController{
		importer: importer,
		exporter: exporter,
		log:      log,
	}
}

func (c *InterchangeController) Key() string {
	return "/interchange"
}

func (c *InterchangeController) Register(r *mux.Router) {
	r.HandleFunc("/interchange/{tenantID}/import", c.handleImport).Methods(http.MethodPost)
	r.HandleFunc("/interchange/{tenantID}/export", c.handleExport).Methods(http.MethodGet)
}

func (c *InterchangeController) tenantID(r *http.Request) (uuid.UUID, error) {
	raw := mux.Vars(r)["tenantID"]
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, errors.Wrapf(err, "invalid tenant id %q", raw)
	}
	return id, nil
}

// workbookBytes reads the upload, accepting either a multipart form with
// a "workbook" file field or the raw body.
func (c *InterchangeController) workbookBytes(r *http.Request) ([]byte, error) {
	if err := r.ParseMultipartForm(maxWorkbookBytes); err == nil {
		file, _, err := r.FormFile("workbook")
		if err != nil {
			return nil, errors.Wrap(err, "missing workbook field")
		}
		defer func() { _ = file.Close() }()
		return io.ReadAll(io.LimitReader(file, maxWorkbookBytes))
	}
	return io.ReadAll(io.LimitReader(r.Body, maxWorkbookBytes))
}

func (c *InterchangeController) handleImport(w http.ResponseWriter, r *http.Request) {
	tenantID, err := c.tenantID(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	data, err := c.workbookBytes(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	report, err := c.importer.Import(r.Context(), tenantID, data)
	if errors.Is(err, services.ErrUnknownTenant) {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(report); err != nil {
		c.log.WithError(err).Error("failed to write import report")
	}
}

func (c *InterchangeController) handleExport(w http.ResponseWriter, r *http.Request) {
	tenantID, err := c.tenantID(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	data, err := c.exporter.Export(r.Context(), tenantID)
	if errors.Is(err, services.ErrUnknownTenant) {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", workbookContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="export.xlsx"`)
	if _, err := w.Write(data); err != nil {
		c.log.WithError(err).Error("failed to write workbook")
	}
}
