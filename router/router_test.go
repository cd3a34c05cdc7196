// Copyright (c) 2025 The OpenVote Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/openvote/openvote/models"
	"github.com/openvote/openvote/testutil"
)

func TestHealthCheck(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()
	mux := NewRouter(db, testutil.GetTestConfig())

	w := httptest.NewRecorder()
	mux.ServeHTTP(w, testutil.MakeRequest("GET", "/health", nil, nil))
	testutil.AssertStatus(t, w, http.StatusOK)
	if w.Body.String() != "OK" {
		t.Errorf("Expected OK, got %q", w.Body.String())
	}
}

func TestRootEndpoint(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()
	mux := NewRouter(db, testutil.GetTestConfig())

	w := httptest.NewRecorder()
	mux.ServeHTTP(w, testutil.MakeRequest("GET", "/", nil, nil))
	testutil.AssertStatus(t, w, http.StatusOK)
}

func TestMethodRouting(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()
	mux := NewRouter(db, testutil.GetTestConfig())

	// GET on a POST-only route
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, testutil.MakeRequest("GET", "/register", nil, nil))
	testutil.AssertStatus(t, w, http.StatusMethodNotAllowed)
}

// TestVotingWorkflow drives a full election through the mux: staff set it
// up, a voter registers and casts a ballot, then views results once the
// election ends.
func TestVotingWorkflow(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()
	mux := NewRouter(db, testutil.GetTestConfig())

	_, staffToken := testutil.CreateTestStaff(t, db, "admin")
	staffHeaders := map[string]string{"X-Session-Token": staffToken}
	now := time.Now()

	// Staff create an upcoming election and add two candidates
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, testutil.MakeRequest("POST", "/elections", models.CreateElectionRequest{
		Title:       "City Council 2025",
		Description: "Annual council election",
		StartTime:   now.Add(time.Hour),
		EndTime:     now.Add(9 * time.Hour),
	}, staffHeaders))
	testutil.AssertStatus(t, w, http.StatusCreated)

	var e models.Election
	testutil.AssertJSON(t, w, &e)

	for _, c := range []models.AddCandidateRequest{
		{Name: "Alice Mwangi", Party: "Unity Party"},
		{Name: "Ben Otieno", Party: "Reform Party"},
	} {
		w = httptest.NewRecorder()
		mux.ServeHTTP(w, testutil.MakeRequest("POST", "/elections/"+e.ID+"/candidates", c, staffHeaders))
		testutil.AssertStatus(t, w, http.StatusCreated)
	}

	// A voter registers through the API
	w = httptest.NewRecorder()
	mux.ServeHTTP(w, testutil.MakeRequest("POST", "/register", models.RegisterRequest{
		Username: "wanjiku",
		Password: "correct-horse",
		FullName: "Wanjiku Kamau",
		Email:    "wanjiku@example.org",
		VoterID:  "VID-900100",
	}, nil))
	testutil.AssertStatus(t, w, http.StatusCreated)

	var reg models.RegisterResponse
	testutil.AssertJSON(t, w, &reg)
	voterHeaders := map[string]string{"X-Session-Token": reg.SessionToken}

	// Voting before the election opens is refused
	w = httptest.NewRecorder()
	mux.ServeHTTP(w, testutil.MakeRequest("GET", "/elections/"+e.ID, nil, nil))
	testutil.AssertStatus(t, w, http.StatusOK)

	var detail models.ElectionWithCandidates
	testutil.AssertJSON(t, w, &detail)
	if len(detail.Candidates) != 2 {
		t.Fatalf("Expected 2 candidates, got %d", len(detail.Candidates))
	}
	candidateID := detail.Candidates[0].ID

	w = httptest.NewRecorder()
	mux.ServeHTTP(w, testutil.MakeRequest("POST", "/elections/"+e.ID+"/ballots",
		models.CastBallotRequest{CandidateID: candidateID}, voterHeaders))
	testutil.AssertStatus(t, w, http.StatusConflict)

	// Open the election
	if _, err := db.Exec(`UPDATE election SET start_time = $1 WHERE id = $2`, now.Add(-time.Minute), e.ID); err != nil {
		t.Fatalf("Failed to open election: %v", err)
	}

	w = httptest.NewRecorder()
	mux.ServeHTTP(w, testutil.MakeRequest("POST", "/elections/"+e.ID+"/ballots",
		models.CastBallotRequest{CandidateID: candidateID}, voterHeaders))
	testutil.AssertStatus(t, w, http.StatusCreated)

	// Results stay hidden while voting continues
	w = httptest.NewRecorder()
	mux.ServeHTTP(w, testutil.MakeRequest("GET", "/elections/"+e.ID+"/results", nil, voterHeaders))
	testutil.AssertStatus(t, w, http.StatusForbidden)

	// End the election and fetch results inside the window
	if _, err := db.Exec(`UPDATE election SET end_time = $1 WHERE id = $2`, now.Add(-time.Minute), e.ID); err != nil {
		t.Fatalf("Failed to end election: %v", err)
	}

	w = httptest.NewRecorder()
	mux.ServeHTTP(w, testutil.MakeRequest("GET", "/elections/"+e.ID+"/results", nil, voterHeaders))
	testutil.AssertStatus(t, w, http.StatusOK)

	var results models.ResultsResponse
	testutil.AssertJSON(t, w, &results)
	if results.TotalVotes != 1 || results.Winner == nil || results.Winner.ID != candidateID {
		t.Errorf("Unexpected results: %+v", results)
	}

	// The PDF export uses the same session
	w = httptest.NewRecorder()
	mux.ServeHTTP(w, testutil.MakeRequest("GET", "/elections/"+e.ID+"/export/pdf", nil, voterHeaders))
	testutil.AssertStatus(t, w, http.StatusOK)

	// Staff see the activity on the admin dashboard
	w = httptest.NewRecorder()
	mux.ServeHTTP(w, testutil.MakeRequest("GET", "/admin/dashboard", nil, staffHeaders))
	testutil.AssertStatus(t, w, http.StatusOK)

	var admin models.AdminDashboardResponse
	testutil.AssertJSON(t, w, &admin)
	if admin.TotalVotes != 1 || len(admin.RecentVotes) != 1 {
		t.Errorf("Unexpected admin stats: %+v", admin)
	}
}
