package filtering

import (
	"context"
	"strings"

	"go.uber.org/zap"
)

type thresholdFilter struct {
	disabled   bool
	reason     string
	thresholds *Thresholds
}

// NewThresholdFilter creates the filter that hides candidates failing any active threshold.
func NewThresholdFilter() Filter {
	return &thresholdFilter{}
}

func (f *thresholdFilter) Name() string { return FilterThresholds }

func (f *thresholdFilter) Disable(reason string) {
	f.disabled = true
	f.reason = reason
}

func (f *thresholdFilter) IsEnabled() bool { return !f.disabled }

func (f *thresholdFilter) Validate(cfg *Config) error {
	f.thresholds = nil
	if cfg == nil || cfg.Thresholds == nil {
		return nil
	}

	for skill, t := range cfg.Thresholds.Active() {
		if err := t.validate(); err != nil {
			return err
		}
		if strings.TrimSpace(skill) == "" {
			return ErrInvalidThreshold
		}
	}

	f.thresholds = cfg.Thresholds
	return nil
}

func (f *thresholdFilter) Apply(_ context.Context, deps Deps, c *Comparisons) (*Comparisons, Step, error) {
	initial := c.Len()
	if f.thresholds.Len() == 0 {
		return c, Step{Initial: initial, Dropped: 0, Left: c.Len()}, nil
	}

	excluded := c.Keep(func(item *Comparison) bool {
		return f.thresholds.Match(item.Scores)
	})
	if deps.Logger != nil && len(excluded) > 0 {
		deps.Logger.Debug("excluding candidates below thresholds",
			zap.Strings("excluded_candidates", excluded),
			zap.Strings("skills", f.thresholds.Skills()),
			zap.Int("candidates_left", c.Len()),
		)
	}

	return c, Step{Initial: initial, Dropped: len(excluded), Left: c.Len()}, nil
}

func (f *thresholdFilter) Status() Status {
	details := map[string]string{}
	for skill, t := range f.thresholds.Active() {
		details[skill] = t.String()
	}
	return Status{Name: f.Name(), Enabled: f.IsEnabled(), Reason: f.reason, Details: details}
}
