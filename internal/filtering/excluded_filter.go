package filtering

import (
	"context"
	"slices"
	"strings"

	"go.uber.org/zap"
)

type excludedFilter struct {
	disabled   bool
	reason     string
	candidates []string
}

// NewExcludedCandidates creates a filter that hides candidates listed in the config.
func NewExcludedCandidates() Filter {
	return &excludedFilter{}
}

func (f *excludedFilter) Name() string { return FilterExcludedCandidates }

func (f *excludedFilter) Disable(reason string) {
	f.disabled = true
	f.reason = reason
}

func (f *excludedFilter) IsEnabled() bool { return !f.disabled }

func (f *excludedFilter) Validate(cfg *Config) error {
	f.candidates = nil
	if cfg != nil {
		f.candidates = append(f.candidates, cfg.ExcludedCandidates...)
	}
	return nil
}

func (f *excludedFilter) Apply(_ context.Context, deps Deps, c *Comparisons) (*Comparisons, Step, error) {
	initial := c.Len()
	if len(f.candidates) == 0 {
		return c, Step{Initial: initial, Dropped: 0, Left: c.Len()}, nil
	}

	excluded := c.Keep(func(item *Comparison) bool {
		return !slices.Contains(f.candidates, item.Candidate.ID)
	})
	if deps.Logger != nil && len(excluded) > 0 {
		deps.Logger.Debug("excluding candidates listed in config",
			zap.Strings("excluded_candidates", excluded),
			zap.Int("candidates_left", c.Len()),
		)
	}

	return c, Step{Initial: initial, Dropped: len(excluded), Left: c.Len()}, nil
}

func (f *excludedFilter) Status() Status {
	details := map[string]string{}
	if len(f.candidates) > 0 {
		details["candidates"] = strings.Join(f.candidates, ",")
	}
	return Status{Name: f.Name(), Enabled: f.IsEnabled(), Reason: f.reason, Details: details}
}
