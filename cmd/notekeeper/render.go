package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/aretw0/notekeeper/pkg/core"
)

var (
	accent = lipgloss.Color("#7C3AED")
	muted  = lipgloss.Color("#6B7280")
	amber  = lipgloss.Color("#F59E0B")
	green  = lipgloss.Color("#10B981")
	red    = lipgloss.Color("#EF4444")

	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(accent)
	titleStyle  = lipgloss.NewStyle().Bold(true)
	idStyle     = lipgloss.NewStyle().Foreground(muted)
	dateStyle   = lipgloss.NewStyle().Foreground(muted).Italic(true)
	badgeStyle  = lipgloss.NewStyle().Foreground(amber)
	okStyle     = lipgloss.NewStyle().Foreground(green)
	errorStyle  = lipgloss.NewStyle().Foreground(red)
	emptyStyle  = lipgloss.NewStyle().Foreground(muted).Italic(true)

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(muted).
			Padding(0, 1)
)

func printJSON(v any) {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(v); err != nil {
		fatal("Error encoding JSON", err)
	}
}

// renderLine is the one-line form used by list and search.
func renderLine(n core.Note) string {
	line := titleStyle.Render(n.Title) + " " + idStyle.Render(n.ID)
	if n.Archived {
		line += " " + badgeStyle.Render("[archived]")
	}
	return line
}

// renderCard is the full form used by show and create.
func renderCard(n core.Note) string {
	parts := []string{
		titleStyle.Render(n.Title),
		dateStyle.Render(n.CreatedAt.Local().Format("Mon, 2 Jan 2006 15:04")),
		"",
		n.Body,
		"",
		idStyle.Render(n.ID),
	}
	if n.Archived {
		parts = append(parts, badgeStyle.Render("archived"))
	}
	return cardStyle.Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
}

func printNotes(w io.Writer, header string, notes []core.Note, empty string) {
	if header != "" {
		fmt.Fprintln(w, headerStyle.Render(fmt.Sprintf("%s (%d)", header, len(notes))))
	}
	if len(notes) == 0 {
		fmt.Fprintln(w, emptyStyle.Render(empty))
		return
	}
	lines := make([]string, 0, len(notes))
	for _, n := range notes {
		lines = append(lines, renderLine(n))
	}
	fmt.Fprintln(w, strings.Join(lines, "\n"))
}

func printOK(format string, args ...any) {
	fmt.Println(okStyle.Render(fmt.Sprintf(format, args...)))
}
