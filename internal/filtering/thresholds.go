package filtering

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/spigell/skill-heatmap/internal/heatmap"
	"github.com/spigell/skill-heatmap/internal/talent"
)

// ErrInvalidThreshold is returned for values outside the consensus score scale.
var ErrInvalidThreshold = errors.New("invalid threshold")

// Threshold is the minimum consensus score required on one skill. The zero
// value is inactive and never excludes anyone.
type Threshold struct {
	Min    int  `json:"min"`
	Active bool `json:"active"`
}

// Off is the inactive threshold.
var Off = Threshold{}

// Min returns an active threshold.
func Min(score int) Threshold {
	return Threshold{Min: score, Active: true}
}

func (t Threshold) String() string {
	if !t.Active {
		return "false"
	}
	return strconv.Itoa(t.Min)
}

func (t Threshold) validate() error {
	if t.Active && (t.Min < heatmap.MinScore || t.Min > heatmap.MaxScore) {
		return fmt.Errorf("%w: %d is outside %d..%d", ErrInvalidThreshold, t.Min, heatmap.MinScore, heatmap.MaxScore)
	}
	return nil
}

// ParseThreshold accepts a score between 0 and 4 or one of "false", "off",
// "none" and "" for an inactive threshold.
func ParseThreshold(value string) (Threshold, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "false", "off", "none":
		return Off, nil
	}

	score, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return Off, fmt.Errorf("%w: %q", ErrInvalidThreshold, value)
	}

	t := Min(score)
	if err := t.validate(); err != nil {
		return Off, err
	}
	return t, nil
}

// ParseAssignment parses "Skill name=3" as used by command line flags.
func ParseAssignment(s string) (string, Threshold, error) {
	skill, value, ok := strings.Cut(s, "=")
	skill = strings.TrimSpace(skill)
	if !ok || skill == "" {
		return "", Off, fmt.Errorf("%w: expected skill=value, got %q", ErrInvalidThreshold, s)
	}

	t, err := ParseThreshold(value)
	if err != nil {
		return "", Off, err
	}
	return skill, t, nil
}

// Thresholds maps skills to their minimum scores. Only active thresholds are stored.
type Thresholds struct {
	items map[string]Threshold
}

func NewThresholds() *Thresholds {
	return &Thresholds{items: make(map[string]Threshold)}
}

// Set stores an active threshold or clears the skill for an inactive one.
func (t *Thresholds) Set(skill string, value Threshold) error {
	if err := value.validate(); err != nil {
		return err
	}

	if !value.Active {
		delete(t.items, skill)
		return nil
	}

	t.items[skill] = value
	return nil
}

// Get returns the threshold of a skill, inactive when none is set.
func (t *Thresholds) Get(skill string) Threshold {
	if t == nil {
		return Off
	}
	return t.items[skill]
}

// Active returns a copy of the active thresholds.
func (t *Thresholds) Active() map[string]Threshold {
	if t == nil {
		return map[string]Threshold{}
	}
	return maps.Clone(t.items)
}

// Skills returns the skills with an active threshold, sorted.
func (t *Thresholds) Skills() []string {
	if t == nil {
		return nil
	}
	return slices.Sorted(maps.Keys(t.items))
}

func (t *Thresholds) Len() int {
	if t == nil {
		return 0
	}
	return len(t.items)
}

func (t *Thresholds) Clone() *Thresholds {
	return &Thresholds{items: t.Active()}
}

// Match reports whether scores satisfy every active threshold. A skill with
// an active threshold and no score fails.
func (t *Thresholds) Match(scores *talent.Scores) bool {
	if t == nil {
		return true
	}

	for skill, threshold := range t.items {
		score, ok := scores.Lookup(skill)
		if !ok || score < float64(threshold.Min) {
			return false
		}
	}
	return true
}
