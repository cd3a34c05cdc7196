// Copyright (c) 2025 The OpenVote Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/openvote/openvote/export"
	"github.com/openvote/openvote/models"
	"github.com/openvote/openvote/testutil"
)

func exportRequest(electionID, format, token string) *http.Request {
	req := testutil.MakeRequest("GET", "/elections/"+electionID+"/export/"+format, nil,
		map[string]string{"X-Session-Token": token})
	req.SetPathValue("id", electionID)
	return req
}

func TestExportPDF(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()
	h := NewExportHandler(db, testutil.GetTestConfig())

	electionID := testutil.CreateEndedElection(t, db, "City Council 2025", time.Hour)
	candidateID := testutil.AddTestCandidate(t, db, electionID, "Alice Mwangi", "Unity Party")
	voterID, token := testutil.CreateTestVoter(t, db, "voter1", "v1@example.org")
	testutil.CastTestVote(t, db, voterID, electionID, candidateID)

	w := httptest.NewRecorder()
	h.ExportPDF(w, exportRequest(electionID, "pdf", token))
	testutil.AssertStatus(t, w, http.StatusOK)

	if ct := w.Header().Get("Content-Type"); ct != export.ContentTypePDF {
		t.Errorf("Expected PDF content type, got %q", ct)
	}
	cd := w.Header().Get("Content-Disposition")
	if !strings.Contains(cd, "City_Council_2025_Results.pdf") {
		t.Errorf("Unexpected Content-Disposition: %q", cd)
	}
	if !bytes.HasPrefix(w.Body.Bytes(), []byte("%PDF-")) {
		t.Error("Body does not look like a PDF")
	}
}

func TestExportExcel(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()
	h := NewExportHandler(db, testutil.GetTestConfig())

	electionID := testutil.CreateEndedElection(t, db, "City Council 2025", time.Hour)
	candidateID := testutil.AddTestCandidate(t, db, electionID, "Alice Mwangi", "Unity Party")
	voterID, token := testutil.CreateTestVoter(t, db, "voter1", "v1@example.org")
	testutil.CastTestVote(t, db, voterID, electionID, candidateID)

	w := httptest.NewRecorder()
	h.ExportExcel(w, exportRequest(electionID, "xlsx", token))
	testutil.AssertStatus(t, w, http.StatusOK)

	if ct := w.Header().Get("Content-Type"); ct != export.ContentTypeXLSX {
		t.Errorf("Expected workbook content type, got %q", ct)
	}
	cd := w.Header().Get("Content-Disposition")
	if !strings.Contains(cd, "City_Council_2025_Results.xlsx") {
		t.Errorf("Unexpected Content-Disposition: %q", cd)
	}
	if w.Body.Len() == 0 {
		t.Error("Expected non-empty workbook body")
	}
}

// Exports follow the same access rules as the results endpoint.
func TestExportDenied(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()
	h := NewExportHandler(db, testutil.GetTestConfig())

	electionID := testutil.CreateEndedElection(t, db, "City Council 2025", time.Hour)
	testutil.AddTestCandidate(t, db, electionID, "Alice Mwangi", "Unity Party")
	_, token := testutil.CreateTestVoter(t, db, "bystander", "b@example.org")

	w := httptest.NewRecorder()
	h.ExportPDF(w, exportRequest(electionID, "pdf", token))
	testutil.AssertStatus(t, w, http.StatusForbidden)

	var denied models.DeniedResponse
	testutil.AssertJSON(t, w, &denied)
	if denied.Reason != models.ReasonNotVoted {
		t.Errorf("Expected not-voted, got %q", denied.Reason)
	}

	// No session at all
	w = httptest.NewRecorder()
	req := testutil.MakeRequest("GET", "/elections/"+electionID+"/export/pdf", nil, nil)
	req.SetPathValue("id", electionID)
	h.ExportPDF(w, req)
	testutil.AssertStatus(t, w, http.StatusUnauthorized)
}
