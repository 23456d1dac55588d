package tui

import (
	"fmt"
	"strings"
)

// CheckRow is one doctor check result for display.
type CheckRow struct {
	Name   string
	Ok     bool
	Warn   bool
	Detail string
}

// RenderChecks renders a one-shot checklist for the doctor command.
func RenderChecks(title string, rows []CheckRow) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("infradraft: " + title))
	b.WriteString("\n")
	b.WriteString(sectionStyle.Render("  Checks"))
	b.WriteString("\n")

	for _, row := range rows {
		var icon string
		var style styleFunc
		switch {
		case row.Ok:
			icon = checkMark
			style = sf(readyStyle)
		case row.Warn:
			icon = warnMark
			style = sf(warningStyle)
		default:
			icon = crossMark
			style = sf(failedStyle)
		}

		detail := ""
		if row.Detail != "" {
			detail = dimStyle.Render(row.Detail)
		}
		fmt.Fprintf(&b, "    %s %-18s %s\n", style(icon), style(row.Name), detail)
	}

	return b.String()
}
