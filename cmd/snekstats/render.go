package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

var headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
var cellStyle = lipgloss.NewStyle().Padding(0, 1)

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
}

func writeReport(w io.Writer, r Report) error {
	if r.Files == 0 {
		_, err := fmt.Fprintln(w, "no rounds recorded")
		return err
	}

	summary := newTable("difficulty", "rounds", "best", "mean score", "mean length", "ticks")
	for _, s := range r.Difficulties {
		summary.Row(
			s.Difficulty,
			strconv.FormatInt(s.Rounds, 10),
			strconv.FormatInt(s.BestScore, 10),
			fmt.Sprintf("%.2f", s.MeanScore),
			fmt.Sprintf("%.2f", s.MeanFinalLength),
			strconv.FormatInt(s.Ticks, 10),
		)
	}

	causes := newTable("difficulty", "cause", "rounds")
	for _, c := range r.Causes {
		causes.Row(c.Difficulty, c.Cause, strconv.FormatInt(c.Rounds, 10))
	}

	_, err := fmt.Fprintf(w, "%d round files\n%s\n%s\n", r.Files, summary.Render(), causes.Render())
	return err
}
