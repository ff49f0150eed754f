// Package compose renders the composite post text. Pure: no I/O, no clock,
// deterministic for a given input.
package compose

import (
	"fmt"
	"strings"
	"time"

	"web3alerts-bot/internal/types"
)

const titleFormat = "Early web3 projects (%s)"

// FormatPost assembles the title line and one numbered line per project, in
// input order, separated by blank lines. Summaries are index-aligned with
// projects; a missing summary just drops that line's summary part. An empty
// project list yields a title-only post.
func FormatPost(projects []types.Project, summaries []types.Summary, date time.Time) types.CompositePost {
	title := fmt.Sprintf(titleFormat, date.Format("Jan 02"))

	lines := make([]types.PostLine, 0, len(projects))
	parts := make([]string, 0, len(projects)+1)
	parts = append(parts, title)

	for i, p := range projects {
		var sum types.Summary
		if i < len(summaries) {
			sum = summaries[i]
		}
		line := types.PostLine{Rank: i + 1, Project: p, Summary: sum}
		lines = append(lines, line)
		parts = append(parts, formatLine(line))
	}

	return types.CompositePost{
		Title: title,
		Lines: lines,
		Text:  strings.Join(parts, "\n\n"),
	}
}

// formatLine renders "<rank> <name> (@<handle>): <summary>." with the handle
// and summary parts omitted when empty.
func formatLine(l types.PostLine) string {
	name := l.Project.Name
	if name == "" {
		name = "Unknown"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%d %s", l.Rank, name)
	if h := strings.TrimPrefix(l.Project.Handle, "@"); h != "" {
		fmt.Fprintf(&b, " (@%s)", h)
	}
	if s := strings.TrimSpace(l.Summary.Text); s != "" {
		b.WriteString(": ")
		b.WriteString(strings.TrimRight(s, "."))
		b.WriteString(".")
	}
	return b.String()
}
