package main

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"crunch2d/internal/atlas"
)

// renderSummary lists every atlas with its size, sprite count and coverage.
func renderSummary(atlases []*atlas.Atlas) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.Style().Format.Footer = text.FormatDefault
	tw.AppendHeader(table.Row{"Atlas", "Size", "Sprites", "Used"})

	sprites := 0
	for _, a := range atlases {
		tw.AppendRow(table.Row{
			a.Index,
			fmt.Sprintf("%dx%d", a.Width, a.Height),
			len(a.Placements),
			fmt.Sprintf("%.1f%%", a.Used()*100),
		})
		sprites += len(a.Placements)
	}
	tw.AppendFooter(table.Row{"Total", "", sprites, ""})

	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignRight, AlignHeader: text.AlignLeft},
		{Number: 2, Align: text.AlignLeft, AlignHeader: text.AlignLeft},
		{Number: 3, Align: text.AlignRight, AlignHeader: text.AlignLeft},
		{Number: 4, Align: text.AlignRight, AlignHeader: text.AlignLeft},
	})
	return tw.Render()
}
