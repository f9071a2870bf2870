package heatmap

import (
	"testing"

	"github.com/spigell/skill-heatmap/internal/talent"
)

func TestColor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		score  float64
		known  bool
		expect string
	}{
		{name: "zero", score: 0, known: true, expect: "#ECFFF1"},
		{name: "one", score: 1, known: true, expect: "#F8F8A7"},
		{name: "two", score: 2, known: true, expect: "#A6D96A"},
		{name: "three", score: 3, known: true, expect: "#1A9641"},
		{name: "four is the darkest", score: 4, known: true, expect: "#003F0B"},
		{name: "missing score", score: 0, known: false, expect: DefaultColor},
		{name: "missing ignores stale score", score: 4, known: false, expect: DefaultColor},
		{name: "fractional", score: 2.5, known: true, expect: DefaultColor},
		{name: "above range", score: 5, known: true, expect: DefaultColor},
		{name: "negative", score: -1, known: true, expect: DefaultColor},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := Color(tt.score, tt.known); got != tt.expect {
				t.Fatalf("expected %s, got %s", tt.expect, got)
			}
		})
	}
}

func TestLegend(t *testing.T) {
	legend := Legend()
	if len(legend) != 5 {
		t.Fatalf("expected 5 levels, got %d", len(legend))
	}
	if legend[0].Color != DefaultColor || legend[4].Color != "#003F0B" {
		t.Fatalf("unexpected legend order: %+v", legend)
	}
	if !Dark(4, true) || Dark(1, true) || Dark(4, false) {
		t.Fatalf("unexpected dark classification")
	}
}

func TestDefaultCatalogIsACopy(t *testing.T) {
	first := DefaultCatalog()
	first[0] = "mutated"

	if DefaultCatalog()[0] != "Creating Wireframes" {
		t.Fatalf("expected catalog to be immutable")
	}
	if len(first) != 8 {
		t.Fatalf("expected 8 skills, got %d", len(first))
	}
}

func TestBuild(t *testing.T) {
	ann := &talent.Candidate{ID: "1", Name: "Ann"}
	bob := &talent.Candidate{ID: "2", Name: "Bob"}
	skills := []string{"Creating Wireframes", "Creation of Brands"}

	grid := Build(skills, []Input{
		{Candidate: ann, Scores: &talent.Scores{Items: []talent.SkillScore{{Skill: "Creating Wireframes", Score: 4}}}},
		{Candidate: bob, State: StateFailed},
	})

	if grid.Empty() || len(grid.Columns) != 2 {
		t.Fatalf("expected 2 columns, got %d", len(grid.Columns))
	}

	if grid.Columns[0].Candidate != ann || grid.Columns[1].Candidate != bob {
		t.Fatalf("expected input order to be kept")
	}

	first := grid.Columns[0]
	if first.State != StateReady || len(first.Cells) != 2 {
		t.Fatalf("unexpected first column: %+v", first)
	}
	if first.Cells[0].Color != "#003F0B" || !first.Cells[0].Dark {
		t.Fatalf("expected darkest color for score 4, got %+v", first.Cells[0])
	}
	if first.Cells[1].Known || first.Cells[1].Color != DefaultColor {
		t.Fatalf("expected missing skill to use default color, got %+v", first.Cells[1])
	}

	second := grid.Columns[1]
	if second.State != StateFailed {
		t.Fatalf("expected explicit state to be kept, got %q", second.State)
	}
	for _, cell := range second.Cells {
		if cell.Color != DefaultColor {
			t.Fatalf("expected default color while scores are missing, got %+v", cell)
		}
	}

	pending := Build(skills, []Input{{Candidate: ann}})
	if pending.Columns[0].State != StatePending {
		t.Fatalf("expected column without scores to be pending, got %q", pending.Columns[0].State)
	}

	if !Build(skills, nil).Empty() {
		t.Fatalf("expected empty grid")
	}
}
