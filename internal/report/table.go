package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
)

// RenderTable prints the ranked classes as a table.
func RenderTable(w io.Writer, s *Summary, noColor bool) {
	title := color.New(color.Bold, color.FgCyan)
	if noColor {
		title.DisableColor()
	}
	title.Fprintln(w, "Top predictions")

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"RANK", "CLASS", "LABEL", "SCORE"})
	table.SetBorder(false)
	table.SetAutoWrapText(false)
	for rank, score := range s.Top {
		name := score.Label
		if name == "" {
			name = "-"
		}
		table.Append([]string{
			strconv.Itoa(rank + 1),
			strconv.Itoa(score.Class),
			name,
			fmt.Sprintf("%.4f", score.Value),
		})
	}
	table.Render()
}
