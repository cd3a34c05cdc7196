// Copyright (c) 2025 The OpenVote Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package export

import (
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/openvote/openvote/models"
	"github.com/openvote/openvote/results"
)

const sheetName = "Election Results"

// ResultsExcel renders the results report for one election as an xlsx
// workbook: election details, a header-styled results table with the
// winner row highlighted, and a totals row.
func ResultsExcel(e models.Election, tally *results.Tally) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}

	titleStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 16, Color: "2C3E50"},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create title style: %w", err)
	}
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 12, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"3498DB"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}
	winnerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"27AE60"}, Pattern: 1},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create winner style: %w", err)
	}
	boldStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("failed to create bold style: %w", err)
	}

	f.SetCellValue(sheetName, "A1", "ELECTION RESULTS REPORT")
	f.MergeCell(sheetName, "A1", "E1")
	f.SetCellStyle(sheetName, "A1", "E1", titleStyle)

	details := [][2]string{
		{"Election:", e.Title},
		{"Description:", e.Description},
		{"Start Time:", formatTime(e.StartTime)},
		{"End Time:", formatTime(e.EndTime)},
		{"Report Generated:", formatTime(time.Now())},
	}
	for i, d := range details {
		row := 3 + i
		f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), d[0])
		f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), d[1])
		f.SetCellStyle(sheetName, fmt.Sprintf("A%d", row), fmt.Sprintf("A%d", row), boldStyle)
	}

	const headerRow = 9
	headers := []string{"Rank", "Candidate Name", "Party", "Votes", "Percentage"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, headerRow)
		f.SetCellValue(sheetName, cell, h)
	}
	f.SetCellStyle(sheetName, fmt.Sprintf("A%d", headerRow), fmt.Sprintf("E%d", headerRow), headerStyle)

	row := headerRow + 1
	for i, c := range tally.Candidates {
		f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), c.Rank)
		f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), c.Name)
		f.SetCellValue(sheetName, fmt.Sprintf("C%d", row), c.Party)
		f.SetCellValue(sheetName, fmt.Sprintf("D%d", row), c.Votes)
		f.SetCellValue(sheetName, fmt.Sprintf("E%d", row), fmt.Sprintf("%.1f%%", c.Percentage))
		if i == 0 {
			f.SetCellStyle(sheetName, fmt.Sprintf("A%d", row), fmt.Sprintf("E%d", row), winnerStyle)
		}
		row++
	}

	// Totals row
	f.SetCellValue(sheetName, fmt.Sprintf("C%d", row), "TOTAL")
	f.SetCellValue(sheetName, fmt.Sprintf("D%d", row), tally.TotalVotes)
	f.SetCellValue(sheetName, fmt.Sprintf("E%d", row), "100%")
	f.SetCellStyle(sheetName, fmt.Sprintf("C%d", row), fmt.Sprintf("E%d", row), boldStyle)

	f.SetColWidth(sheetName, "A", "A", 8)
	f.SetColWidth(sheetName, "B", "B", 25)
	f.SetColWidth(sheetName, "C", "C", 20)
	f.SetColWidth(sheetName, "D", "D", 10)
	f.SetColWidth(sheetName, "E", "E", 12)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to render workbook: %w", err)
	}
	return buf.Bytes(), nil
}
