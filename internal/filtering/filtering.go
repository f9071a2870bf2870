package filtering

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/spigell/skill-heatmap/internal/talent"
)

// Names of the built-in filters.
const (
	FilterExcludedCandidates = "excluded_candidates"
	FilterThresholds         = "thresholds"
)

// Filter represents a single filtering step applied to the selected candidates.
type Filter interface {
	Name() string
	Disable(reason string)
	IsEnabled() bool

	Validate(cfg *Config) error
	Apply(ctx context.Context, deps Deps, c *Comparisons) (*Comparisons, Step, error)
}

// Deps aggregates dependencies shared across all filtering steps.
type Deps struct {
	Logger *zap.Logger
}

// Step describes the result of executing a filtering step.
type Step struct {
	Initial int
	Dropped int
	Left    int
}

// Config contains configuration settings consumed by the filters.
type Config struct {
	Thresholds         *Thresholds
	ExcludedCandidates []string
}

// Status represents runtime information about a filter.
type Status struct {
	Name    string            `json:"name"`
	Enabled bool              `json:"enabled"`
	Reason  string            `json:"reason,omitempty"`
	Details map[string]string `json:"details,omitempty"`
}

// statusProvider is implemented by filters that can supply detailed status information.
type statusProvider interface {
	Status() Status
}

// Comparison is a selected candidate with the scores fetched so far. Scores
// is nil while the detail request is pending or after it failed.
type Comparison struct {
	Candidate *talent.Candidate
	Scores    *talent.Scores
}

// Comparisons keeps the selection order.
type Comparisons struct {
	Items []*Comparison
}

func (c *Comparisons) Len() int {
	return len(c.Items)
}

// Keep retains the comparisons for which keep returns true, preserving order,
// and returns the IDs of the dropped candidates.
func (c *Comparisons) Keep(keep func(*Comparison) bool) []string {
	var dropped []string
	kept := c.Items[:0]
	for _, item := range c.Items {
		if keep(item) {
			kept = append(kept, item)
			continue
		}
		dropped = append(dropped, item.Candidate.ID)
	}
	c.Items = kept
	return dropped
}

// Default returns the standard pipeline.
func Default() []Filter {
	return []Filter{
		NewExcludedCandidates(),
		NewThresholdFilter(),
	}
}

// DisableByName marks a filter with the provided name as disabled while keeping it in the list.
func DisableByName(steps []Filter, name, reason string) {
	for _, step := range steps {
		if step.Name() == name {
			step.Disable(reason)
		}
	}
}

// Run validates every enabled filter against cfg, then applies them in order.
// Disabled filters are skipped. The returned comparisons keep the input order.
func Run(ctx context.Context, cfg *Config, deps Deps, steps []Filter, c *Comparisons) (*Comparisons, error) {
	log := deps.Logger
	if log == nil {
		log = zap.NewNop()
	}

	enabled := make([]Filter, 0, len(steps))
	for _, step := range steps {
		if !step.IsEnabled() {
			log.Debug("filter disabled", zap.String("name", step.Name()))
			continue
		}
		if err := step.Validate(cfg); err != nil {
			return nil, fmt.Errorf("%s: %w", step.Name(), err)
		}
		enabled = append(enabled, step)
	}

	for _, step := range enabled {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		next, info, err := step.Apply(ctx, deps, c)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", step.Name(), err)
		}

		log.Debug("filter step",
			zap.String("name", step.Name()),
			zap.Int("initial", info.Initial),
			zap.Int("dropped", info.Dropped),
			zap.Int("left", info.Left),
		)

		c = next
	}

	return c, nil
}

// Describe returns status entries for the provided filters.
func Describe(steps []Filter) []Status {
	statuses := make([]Status, 0, len(steps))
	for _, step := range steps {
		if reporter, ok := step.(statusProvider); ok {
			statuses = append(statuses, reporter.Status())
			continue
		}

		statuses = append(statuses, Status{
			Name:    step.Name(),
			Enabled: step.IsEnabled(),
		})
	}
	return statuses
}
