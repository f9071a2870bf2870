// Package board owns the dashboard state: the roster, the selection, the
// visible skills and the thresholds. Every mutation goes through a Board
// method; detail fetches run in the background and are cancelled when their
// candidate is deselected or the board is closed.
package board

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"

	"go.uber.org/zap"

	"github.com/spigell/skill-heatmap/internal/filtering"
	"github.com/spigell/skill-heatmap/internal/heatmap"
	"github.com/spigell/skill-heatmap/internal/logger"
	"github.com/spigell/skill-heatmap/internal/selection"
	"github.com/spigell/skill-heatmap/internal/talent"
)

var (
	ErrUnknownCandidate = errors.New("unknown candidate")
	ErrUnknownSkill     = errors.New("unknown skill")
)

// Fetcher is the read side of the talent API.
type Fetcher interface {
	ListCandidates(ctx context.Context) (*talent.Candidates, error)
	GetSkillScores(ctx context.Context, id string) (*talent.Scores, error)
}

// SelectionRecorder is told about the selection size after every toggle.
type SelectionRecorder interface {
	SetSelected(n int)
}

type fetch struct {
	gen    uint64
	cancel context.CancelFunc
}

type Board struct {
	ctx    context.Context
	cancel context.CancelFunc

	fetcher     Fetcher
	logger      *zap.Logger
	recorder    SelectionRecorder
	catalog     []string
	excluded    []string
	disabled    []string
	position    string
	concurrency int

	wg sync.WaitGroup

	mu         sync.Mutex
	roster     *talent.Candidates
	selected   *selection.Candidates
	skills     *selection.Skills
	thresholds *filtering.Thresholds
	scores     map[string]*talent.Scores
	states     map[string]heatmap.State
	fetches    map[string]*fetch
	gen        uint64
}

// New creates a board whose background fetches live no longer than ctx.
func New(ctx context.Context, fetcher Fetcher, opts ...Option) *Board {
	b := &Board{
		fetcher:     fetcher,
		logger:      zap.NewNop(),
		catalog:     heatmap.DefaultCatalog(),
		concurrency: defaultConcurrency,
		roster:      &talent.Candidates{},
		selected:    selection.NewCandidates(),
		thresholds:  filtering.NewThresholds(),
		scores:      make(map[string]*talent.Scores),
		states:      make(map[string]heatmap.State),
		fetches:     make(map[string]*fetch),
	}

	for _, opt := range opts {
		opt(b)
	}

	b.skills = selection.NewSkills(b.catalog)
	b.ctx, b.cancel = context.WithCancel(ctx)

	return b
}

// Load fetches the roster. On failure the previous roster is kept and the
// error is logged and returned.
func (b *Board) Load(ctx context.Context) error {
	candidates, err := b.fetcher.ListCandidates(ctx)
	if err != nil {
		b.logger.Warn("fetching candidates failed, keeping previous roster", zap.Error(err))
		return fmt.Errorf("list candidates: %w", err)
	}

	b.mu.Lock()
	b.roster = candidates
	b.mu.Unlock()

	b.logger.Info("candidates loaded", zap.Int("count", candidates.Len()))
	return nil
}

// Roster returns the loaded candidates.
func (b *Board) Roster() []*talent.Candidate {
	b.mu.Lock()
	defer b.mu.Unlock()
	return slices.Clone(b.roster.Items)
}

// ToggleSelect selects or deselects a candidate and reports whether it is
// selected afterwards. Selecting starts the candidate's detail fetch and
// requires the id to be in the roster. A selected candidate can always be
// deselected, even after a reload dropped it from the roster.
func (b *Board) ToggleSelect(id string) (bool, error) {
	b.mu.Lock()
	candidate := b.selected.Find(id)
	if candidate == nil {
		candidate = b.roster.FindByID(id)
	}
	if candidate == nil {
		b.mu.Unlock()
		return false, fmt.Errorf("%w: %s", ErrUnknownCandidate, id)
	}

	selected := b.selected.Toggle(candidate)
	if selected {
		b.startFetchLocked(id)
	} else {
		b.stopFetchLocked(id)
		delete(b.scores, id)
		delete(b.states, id)
	}
	count := b.selected.Len()
	b.mu.Unlock()

	if b.recorder != nil {
		b.recorder.SetSelected(count)
	}

	b.logger.Debug("candidate toggled",
		zap.String("candidate_id", id),
		zap.Bool("selected", selected),
		zap.Int("selected_count", count),
	)
	return selected, nil
}

// ToggleSkillVisibility hides or shows a catalog skill and reports whether it
// is visible afterwards.
func (b *Board) ToggleSkillVisibility(name string) (bool, error) {
	if !slices.Contains(b.catalog, name) {
		return false, fmt.Errorf("%w: %s", ErrUnknownSkill, name)
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	return b.skills.Toggle(name), nil
}

// SetThreshold sets or clears the minimum score for a catalog skill.
func (b *Board) SetThreshold(skill string, value filtering.Threshold) error {
	if !slices.Contains(b.catalog, skill) {
		return fmt.Errorf("%w: %s", ErrUnknownSkill, skill)
	}

	b.mu.Lock()
	err := b.thresholds.Set(skill, value)
	b.mu.Unlock()
	if err != nil {
		return err
	}

	b.logger.Debug("threshold set",
		append(logger.CandidateFields("", skill), zap.Stringer("min", value))...,
	)
	return nil
}

// Wait blocks until every background fetch started so far has settled.
func (b *Board) Wait() {
	b.wg.Wait()
}

// Close cancels all background fetches and waits for them to return.
func (b *Board) Close() {
	b.cancel()
	b.wg.Wait()
}
