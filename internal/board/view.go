package board

import (
	"context"
	"fmt"
	"slices"

	"github.com/spigell/skill-heatmap/internal/filtering"
	"github.com/spigell/skill-heatmap/internal/heatmap"
	"github.com/spigell/skill-heatmap/internal/talent"
)

// RosterEntry is a roster candidate with its selection flag.
type RosterEntry struct {
	Candidate *talent.Candidate `json:"candidate"`
	Selected  bool              `json:"selected"`
}

// SkillEntry is a catalog skill with its visibility and threshold.
type SkillEntry struct {
	Name      string              `json:"name"`
	Visible   bool                `json:"visible"`
	Threshold filtering.Threshold `json:"threshold"`
}

// View is a consistent, read-only copy of the board ready for rendering.
type View struct {
	Position   string             `json:"position"`
	Candidates []RosterEntry      `json:"candidates"`
	Skills     []SkillEntry       `json:"skills"`
	Selected   int                `json:"selected"`
	Hidden     int                `json:"hidden"`
	Grid       heatmap.Grid       `json:"grid"`
	Legend     []heatmap.Level    `json:"legend"`
	Filters    []filtering.Status `json:"filters"`
}

// Snapshot copies the state under the lock, then filters and lays out the
// selected candidates outside of it.
func (b *Board) Snapshot(ctx context.Context) (*View, error) {
	b.mu.Lock()
	roster := slices.Clone(b.roster.Items)
	selected := b.selected.Items()
	visible := b.skills.Items()
	thresholds := b.thresholds.Clone()
	scores := make(map[string]*talent.Scores, len(selected))
	states := make(map[string]heatmap.State, len(selected))
	for _, c := range selected {
		scores[c.ID] = b.scores[c.ID]
		states[c.ID] = b.states[c.ID]
	}
	b.mu.Unlock()

	comparisons := &filtering.Comparisons{Items: make([]*filtering.Comparison, 0, len(selected))}
	for _, c := range selected {
		comparisons.Items = append(comparisons.Items, &filtering.Comparison{Candidate: c, Scores: scores[c.ID]})
	}

	steps := filtering.Default()
	for _, name := range b.disabled {
		filtering.DisableByName(steps, name, disabledReason)
	}
	cfg := &filtering.Config{Thresholds: thresholds, ExcludedCandidates: b.excluded}
	remaining, err := filtering.Run(ctx, cfg, filtering.Deps{Logger: b.logger}, steps, comparisons)
	if err != nil {
		return nil, fmt.Errorf("filter selection: %w", err)
	}

	inputs := make([]heatmap.Input, 0, remaining.Len())
	for _, item := range remaining.Items {
		inputs = append(inputs, heatmap.Input{
			Candidate: item.Candidate,
			Scores:    item.Scores,
			State:     states[item.Candidate.ID],
		})
	}

	view := &View{
		Position:   b.position,
		Candidates: make([]RosterEntry, 0, len(roster)),
		Skills:     make([]SkillEntry, 0, len(b.catalog)),
		Selected:   len(selected),
		Hidden:     len(selected) - remaining.Len(),
		Grid:       heatmap.Build(visible, inputs),
		Legend:     heatmap.Legend(),
		Filters:    filtering.Describe(steps),
	}

	selectedIDs := make(map[string]struct{}, len(selected))
	for _, c := range selected {
		selectedIDs[c.ID] = struct{}{}
	}
	for _, c := range roster {
		_, ok := selectedIDs[c.ID]
		view.Candidates = append(view.Candidates, RosterEntry{Candidate: c, Selected: ok})
	}

	for _, skill := range b.catalog {
		view.Skills = append(view.Skills, SkillEntry{
			Name:      skill,
			Visible:   slices.Contains(visible, skill),
			Threshold: thresholds.Get(skill),
		})
	}

	return view, nil
}
