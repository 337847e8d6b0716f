// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

package report

import (
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Table is a minimal column/row text table with left-aligned,
// space-padded columns. Lines are truncated to the terminal width when
// stdout is a tty (golang.org/x/term, per the teacher's multispinner
// width detection) and left at their natural width otherwise.
type Table struct {
	Headers []string
	Rows    [][]string
}

// AddRow appends a row of already-formatted cell values.
func (t *Table) AddRow(cells ...string) {
	t.Rows = append(t.Rows, cells)
}

// Write renders the table to w as simple space-padded columns.
func (t *Table) Write(w io.Writer) {
	widths := make([]int, len(t.Headers))
	for i, h := range t.Headers {
		widths[i] = len(h)
	}
	for _, row := range t.Rows {
		for i, cell := range row {
			if i < len(widths) && len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	termWidth, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || termWidth <= 0 {
		termWidth = 0 // no truncation when width can't be determined (not a tty)
	}

	writeRow(w, t.Headers, widths, termWidth)
	sep := make([]string, len(widths))
	for i, width := range widths {
		sep[i] = strings.Repeat("-", width)
	}
	writeRow(w, sep, widths, termWidth)
	for _, row := range t.Rows {
		writeRow(w, row, widths, termWidth)
	}
}

func writeRow(w io.Writer, cells []string, widths []int, termWidth int) {
	var b strings.Builder
	for i, cell := range cells {
		width := 0
		if i < len(widths) {
			width = widths[i]
		}
		b.WriteString(fmt.Sprintf("%-*s", width, cell))
		if i < len(cells)-1 {
			b.WriteString("  ")
		}
	}
	line := b.String()
	if termWidth > 0 && len(line) > termWidth {
		line = line[:termWidth]
	}
	fmt.Fprintln(w, line)
}

// FormatCount renders an integer count with locale thousands
// separators, mirroring the teacher's use of message.NewPrinter for
// readable large numbers.
func FormatCount(n int) string {
	p := message.NewPrinter(language.English)
	return p.Sprintf("%d", n)
}
