// Package render draws a board view as a colored terminal heat map.
package render

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/spigell/skill-heatmap/internal/board"
	"github.com/spigell/skill-heatmap/internal/heatmap"
)

const (
	emptySelection = "Select Candidate to Compare"

	defaultCellWidth  = 12
	defaultLabelWidth = 28
)

type Options struct {
	// CellWidth is the width of one candidate column.
	CellWidth int
	// LabelWidth is the width of the skill label column.
	LabelWidth int
	// Scores prints the numeric score inside each cell.
	Scores bool
}

func (o Options) withDefaults() Options {
	if o.CellWidth <= 0 {
		o.CellWidth = defaultCellWidth
	}
	if o.LabelWidth <= 0 {
		o.LabelWidth = defaultLabelWidth
	}
	return o
}

var (
	titleStyle = lipgloss.NewStyle().Bold(true)
	mutedStyle = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#6B6B6B", Dark: "#9A9A9A"})
	frameStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(heatmap.Legend()[3].Color)).
			Padding(0, 1)
)

// Terminal renders the view: a header, the heat map and the color legend.
func Terminal(view *board.View, opts Options) string {
	opts = opts.withDefaults()

	header := lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render(view.Position),
		mutedStyle.Render(fmt.Sprintf("%d Candidates", len(view.Candidates))),
	)

	body := grid(view, opts)

	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		frameStyle.Render(body),
		legend(),
	) + "\n"
}

func grid(view *board.View, opts Options) string {
	if view.Grid.Empty() {
		if view.Selected == 0 {
			return mutedStyle.Render(emptySelection)
		}
		return mutedStyle.Render(fmt.Sprintf("No selected candidate meets the thresholds (%d hidden)", view.Hidden))
	}

	label := lipgloss.NewStyle().Width(opts.LabelWidth).MaxWidth(opts.LabelWidth)
	head := lipgloss.NewStyle().Width(opts.CellWidth).MaxWidth(opts.CellWidth).Bold(true).Align(lipgloss.Center)

	rows := make([]string, 0, len(view.Grid.Skills)+1)

	names := []string{label.Render("")}
	for _, column := range view.Grid.Columns {
		name := column.Candidate.Name
		if column.State == heatmap.StateFailed {
			name += " !"
		}
		names = append(names, head.Render(name))
	}
	rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, names...))

	for i, skill := range view.Grid.Skills {
		line := []string{label.Render(skill)}
		for _, column := range view.Grid.Columns {
			line = append(line, cell(column.Cells[i], opts))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, line...))
	}

	if view.Hidden > 0 {
		rows = append(rows, mutedStyle.Render(fmt.Sprintf("%d selected candidate(s) hidden by filters", view.Hidden)))
	}

	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func cell(c heatmap.Cell, opts Options) string {
	style := lipgloss.NewStyle().
		Width(opts.CellWidth).
		Align(lipgloss.Center).
		Background(lipgloss.Color(c.Color)).
		Foreground(lipgloss.Color("#1B1B1B"))
	if c.Dark {
		style = style.Foreground(lipgloss.Color("#FFFFFF"))
	}

	text := ""
	if opts.Scores {
		text = "-"
		if c.Known {
			text = strconv.FormatFloat(c.Score, 'f', -1, 64)
		}
	}
	return style.Render(text)
}

func legend() string {
	parts := []string{mutedStyle.Render("score")}
	for _, level := range heatmap.Legend() {
		parts = append(parts, cell(heatmap.Cell{
			Score: float64(level.Score),
			Known: true,
			Color: level.Color,
			Dark:  heatmap.Dark(float64(level.Score), true),
		}, Options{CellWidth: 5, Scores: true}))
	}
	return strings.Join(parts, " ")
}
