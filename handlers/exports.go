// Copyright (c) 2025 The OpenVote Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/openvote/openvote/cliparse"
	"github.com/openvote/openvote/export"
	"github.com/openvote/openvote/middleware"
	"github.com/openvote/openvote/models"
	"github.com/openvote/openvote/results"
)

type ExportHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewExportHandler(db *sql.DB, cfg cliparse.Config) *ExportHandler {
	return &ExportHandler{db: db, cfg: cfg}
}

// ExportPDF handles GET /elections/{id}/export/pdf
func (h *ExportHandler) ExportPDF(w http.ResponseWriter, r *http.Request) {
	h.export(w, r, "pdf", export.ContentTypePDF, export.ResultsPDF)
}

// ExportExcel handles GET /elections/{id}/export/xlsx
func (h *ExportHandler) ExportExcel(w http.ResponseWriter, r *http.Request) {
	h.export(w, r, "xlsx", export.ContentTypeXLSX, export.ResultsExcel)
}

// export applies the same access rules as the results endpoint, then
// streams the rendered report with an attachment filename derived from
// the election title.
func (h *ExportHandler) export(
	w http.ResponseWriter,
	r *http.Request,
	ext, contentType string,
	render func(models.Election, *results.Tally) ([]byte, error),
) {
	voter := requireVoter(h.db, w, r)
	if voter == nil {
		return
	}

	electionID := r.PathValue("id")
	e, ok := loadElection(h.db, w, electionID)
	if !ok {
		return
	}

	tally, ok := authorizedTally(h.db, w, e, voter.ID)
	if !ok {
		return
	}

	data, err := render(e, tally)
	if err != nil {
		slog.Error("failed to render report", "error", err, "election_id", e.ID, "format", ext)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to generate report")
		return
	}

	slog.Info("report exported", "election_id", e.ID, "format", ext, "bytes", len(data))

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+export.Filename(e.Title, ext)+`"`)
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}
