package heatmap

import "github.com/spigell/skill-heatmap/internal/talent"

var catalog = []string{
	"Creating Wireframes",
	"Creating Basic Prototypes",
	"Creation of Brands",
	"Applying Color Theory",
	"Using Figma for Design",
	"Application fo Typography",
	"Creating Effective icons",
	"Optimizing Touch Points",
}

// DefaultCatalog returns a copy of the built-in skill catalog. The names
// must match the skill names served by the talent API verbatim.
func DefaultCatalog() []string {
	return append([]string(nil), catalog...)
}

// Cell is one (candidate, skill) pair.
type Cell struct {
	Skill string  `json:"skill"`
	Score float64 `json:"score"`
	Known bool    `json:"known"`
	Color string  `json:"color"`
	Dark  bool    `json:"dark"`
}

// State tells where the scores of a column come from.
type State string

const (
	StatePending State = "pending"
	StateReady   State = "ready"
	StateFailed  State = "failed"
)

// Column holds the cells of one candidate, aligned to Grid.Skills.
type Column struct {
	Candidate *talent.Candidate `json:"candidate"`
	State     State             `json:"state"`
	Cells     []Cell            `json:"cells"`
}

type Grid struct {
	Skills  []string `json:"skills"`
	Columns []Column `json:"columns"`
}

// Input is a candidate together with whatever scores are known for it.
// Scores is nil while the detail fetch is still pending or after it failed.
type Input struct {
	Candidate *talent.Candidate
	Scores    *talent.Scores
	State     State
}

// Build lays out one column per input, keeping input order.
func Build(skills []string, inputs []Input) Grid {
	grid := Grid{
		Skills:  append([]string(nil), skills...),
		Columns: make([]Column, 0, len(inputs)),
	}

	for _, in := range inputs {
		if in.State == "" {
			in.State = StatePending
			if in.Scores != nil {
				in.State = StateReady
			}
		}
		column := Column{
			Candidate: in.Candidate,
			State:     in.State,
			Cells:     make([]Cell, 0, len(skills)),
		}
		for _, skill := range skills {
			score, known := in.Scores.Lookup(skill)
			column.Cells = append(column.Cells, Cell{
				Skill: skill,
				Score: score,
				Known: known,
				Color: Color(score, known),
				Dark:  Dark(score, known),
			})
		}
		grid.Columns = append(grid.Columns, column)
	}

	return grid
}

// Empty reports whether the grid has no candidate columns.
func (g Grid) Empty() bool {
	return len(g.Columns) == 0
}
