// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/jeranaias/nutrirag-tui/internal/model"
	"github.com/jeranaias/nutrirag-tui/internal/ui/styles"
	"github.com/jeranaias/nutrirag-tui/internal/util"
)

// CitationsHeader introduces the source list under an answer.
const CitationsHeader = "Fuentes:"

// RenderCitations renders the sources of an answer. Collapsed, it is one
// line of "label organization" badges; expanded, each citation lists its
// title, organization, year, similarity and link.
func RenderCitations(citations []model.Citation, expanded bool, width int, theme *styles.Theme) string {
	if len(citations) == 0 {
		return ""
	}
	if width < 20 {
		width = 20
	}

	if !expanded {
		badges := make([]string, len(citations))
		for i, c := range citations {
			badges[i] = theme.CitationValue.Foreground(styles.Teal).Render(c.Badge())
		}
		line := theme.CitationHeader.Render(CitationsHeader) + " " + strings.Join(badges, "  ")
		return line
	}

	var b strings.Builder
	b.WriteString(theme.CitationHeader.Render(CitationsHeader))
	for _, c := range citations {
		b.WriteString("\n")
		b.WriteString(theme.CitationValue.Foreground(styles.Teal).Bold(true).Render(c.Badge()))

		rows := citationRows(c)
		for i, row := range rows {
			prefix := "  " + styles.RenderTreeLine(i == len(rows)-1)
			text := util.TruncateWidth(row.value, width-util.Width(prefix)-util.Width(row.label)-1)
			b.WriteString("\n" + theme.CitationLabel.Render(prefix))
			if row.label != "" {
				b.WriteString(theme.CitationLabel.Render(row.label) + " ")
			}
			if row.link {
				b.WriteString(theme.LinkStyle.Render(text))
			} else {
				b.WriteString(theme.CitationValue.Render(text))
			}
		}
	}
	return b.String()
}

type citationRow struct {
	label string
	value string
	link  bool
}

func citationRows(c model.Citation) []citationRow {
	rows := []citationRow{
		{label: "Título:", value: c.Title},
		{label: "Organización:", value: c.Organization},
	}
	if c.Year != "" {
		rows = append(rows, citationRow{label: "Año:", value: c.Year})
	}
	if c.Excerpt != "" {
		rows = append(rows, citationRow{value: c.Excerpt})
	}
	if c.URL != "" {
		rows = append(rows, citationRow{value: c.URL, link: true})
	}
	return rows
}
