// Copyright (c) 2025 The OpenVote Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package export

import (
	"bytes"
	"fmt"
	"strconv"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/openvote/openvote/models"
	"github.com/openvote/openvote/results"
)

// ResultsPDF renders the results report for one election as PDF bytes:
// election details, a rank/name/party/votes/percentage table with a
// totals row, and a winner headline when the election has candidates.
func ResultsPDF(e models.Election, tally *results.Tally) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Election Results Report", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 22)
	pdf.SetTextColor(44, 62, 80)
	pdf.CellFormat(0, 14, "Election Results Report", "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "", 11)
	pdf.SetTextColor(0, 0, 0)
	details := [][2]string{
		{"Election", e.Title},
		{"Description", e.Description},
		{"Start Time", formatTime(e.StartTime)},
		{"End Time", formatTime(e.EndTime)},
		{"Report Generated", formatTime(time.Now())},
	}
	for _, d := range details {
		pdf.SetFont("Helvetica", "B", 11)
		pdf.CellFormat(40, 7, d[0]+":", "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 11)
		pdf.MultiCell(0, 7, d[1], "", "L", false)
	}
	pdf.Ln(6)

	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetTextColor(52, 73, 94)
	pdf.CellFormat(0, 9, "Results Summary", "", 1, "L", false, 0, "")
	pdf.Ln(2)

	widths := []float64{18, 60, 50, 25, 30}
	headers := []string{"Rank", "Candidate", "Party", "Votes", "Percentage"}

	pdf.SetFont("Helvetica", "B", 11)
	pdf.SetFillColor(52, 152, 219)
	pdf.SetTextColor(255, 255, 255)
	for i, h := range headers {
		pdf.CellFormat(widths[i], 9, h, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(0, 0, 0)
	for i, row := range tableRows(tally) {
		if i == 0 {
			// winner row highlight
			pdf.SetFillColor(39, 174, 96)
			pdf.SetTextColor(255, 255, 255)
			pdf.SetFont("Helvetica", "B", 10)
		} else {
			pdf.SetFillColor(245, 245, 220)
			pdf.SetTextColor(0, 0, 0)
			pdf.SetFont("Helvetica", "", 10)
		}
		for j, cell := range row {
			pdf.CellFormat(widths[j], 8, cell, "1", 0, "C", true, 0, "")
		}
		pdf.Ln(-1)
	}

	// Totals row
	pdf.SetFillColor(236, 240, 241)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(widths[0], 8, "", "T", 0, "C", true, 0, "")
	pdf.CellFormat(widths[1], 8, "", "T", 0, "C", true, 0, "")
	pdf.CellFormat(widths[2], 8, "TOTAL", "T", 0, "C", true, 0, "")
	pdf.CellFormat(widths[3], 8, strconv.Itoa(tally.TotalVotes), "T", 0, "C", true, 0, "")
	pdf.CellFormat(widths[4], 8, "100%", "T", 1, "C", true, 0, "")
	pdf.Ln(6)

	if winner := tally.Winner(); winner != nil {
		pdf.SetFont("Helvetica", "B", 13)
		pdf.SetTextColor(39, 174, 96)
		pdf.CellFormat(0, 9, fmt.Sprintf("WINNER: %s (%s)", winner.Name, winner.Party), "", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 11)
		pdf.SetTextColor(0, 0, 0)
		pdf.CellFormat(0, 7, fmt.Sprintf("Total Votes: %d (%.1f%%)", winner.Votes, winner.Percentage), "", 1, "L", false, 0, "")
	} else {
		pdf.SetFont("Helvetica", "I", 11)
		pdf.CellFormat(0, 9, "No candidates registered for this election.", "", 1, "L", false, 0, "")
	}

	pdf.Ln(10)
	pdf.SetFont("Helvetica", "", 8)
	pdf.SetTextColor(128, 128, 128)
	pdf.CellFormat(0, 5, "--- End of Report ---", "", 1, "C", false, 0, "")
	pdf.CellFormat(0, 5, "OpenVote | Secure, transparent elections", "", 1, "C", false, 0, "")
	pdf.CellFormat(0, 5, "This is an official election results report.", "", 1, "C", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render PDF: %w", err)
	}
	return buf.Bytes(), nil
}
