// Copyright (c) 2025 The OpenVote Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package export renders election results as downloadable PDF and Excel
// reports. Rendering is synchronous and side-effect-free: input is an
// election plus its tally, output is a byte buffer.
package export

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/openvote/openvote/results"
)

const (
	ContentTypePDF  = "application/pdf"
	ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// Filename returns the download name for a results report, e.g.
// "City_Council_2025_Results.pdf".
func Filename(electionTitle, ext string) string {
	return strings.ReplaceAll(electionTitle, " ", "_") + "_Results." + ext
}

// tableRows converts a tally into the rows shared by both report formats.
func tableRows(t *results.Tally) [][]string {
	rows := make([][]string, 0, len(t.Candidates))
	for _, c := range t.Candidates {
		rows = append(rows, []string{
			strconv.Itoa(c.Rank),
			c.Name,
			c.Party,
			strconv.Itoa(c.Votes),
			fmt.Sprintf("%.1f%%", c.Percentage),
		})
	}
	return rows
}

func formatTime(t time.Time) string {
	return t.Format("January 2, 2006 at 3:04 PM")
}
