package board

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/spigell/skill-heatmap/internal/heatmap"
	"github.com/spigell/skill-heatmap/internal/logger"
	"github.com/spigell/skill-heatmap/internal/talent"
)

// startFetchLocked replaces any in-flight fetch for id with a new one.
// b.mu must be held.
func (b *Board) startFetchLocked(id string) {
	b.stopFetchLocked(id)

	b.gen++
	ctx, cancel := context.WithCancel(b.ctx)
	f := &fetch{gen: b.gen, cancel: cancel}
	b.fetches[id] = f
	if _, ok := b.scores[id]; !ok {
		b.states[id] = heatmap.StatePending
	}

	b.wg.Add(1)
	go func() {
		defer b.wg.Done()
		defer cancel()

		scores, err := b.fetcher.GetSkillScores(ctx, id)
		b.finishFetch(id, f.gen, scores, err)
	}()
}

// stopFetchLocked cancels the in-flight fetch for id, if any. b.mu must be held.
func (b *Board) stopFetchLocked(id string) {
	if f, ok := b.fetches[id]; ok {
		f.cancel()
		delete(b.fetches, id)
	}
}

func (b *Board) finishFetch(id string, gen uint64, scores *talent.Scores, err error) {
	log := logger.ForCandidate(b.logger, id)

	b.mu.Lock()
	defer b.mu.Unlock()

	current, ok := b.fetches[id]
	if !ok || current.gen != gen {
		log.Debug("discarding superseded skill scores", zap.Error(err))
		return
	}
	delete(b.fetches, id)

	b.storeLocked(log, id, scores, err)
}

// storeLocked applies a fetch result. A failure keeps previously fetched
// scores. b.mu must be held.
func (b *Board) storeLocked(log *zap.Logger, id string, scores *talent.Scores, err error) {
	if !b.selected.Contains(id) {
		return
	}

	if err != nil {
		if errors.Is(err, context.Canceled) {
			log.Debug("skill scores fetch cancelled")
			return
		}
		log.Warn("fetching skill scores failed", zap.Error(err))
		if _, ok := b.scores[id]; !ok {
			b.states[id] = heatmap.StateFailed
		}
		return
	}

	b.scores[id] = scores
	b.states[id] = heatmap.StateReady
	log.Debug("skill scores fetched", zap.Int("skills", scores.Len()))
}

// Refresh reloads the roster and refetches every selected candidate in
// parallel. Per-candidate failures are logged and do not fail the refresh;
// only cancellation of ctx or of the board is returned.
func (b *Board) Refresh(ctx context.Context) error {
	ctx, stop := context.WithCancel(ctx)
	defer stop()
	unlink := context.AfterFunc(b.ctx, stop)
	defer unlink()

	// the previous roster stays on failure
	_ = b.Load(ctx)

	b.mu.Lock()
	ids := b.selected.IDs()
	b.mu.Unlock()

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(b.concurrency)

	for _, id := range ids {
		g.Go(func() error {
			scores, err := b.fetcher.GetSkillScores(gCtx, id)
			if err != nil && gCtx.Err() != nil {
				return gCtx.Err()
			}

			log := logger.ForCandidate(b.logger, id)
			b.mu.Lock()
			b.storeLocked(log, id, scores, err)
			b.mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return fmt.Errorf("refresh: %w", err)
	}

	b.logger.Info("selection refreshed", zap.Int("candidates", len(ids)))
	return nil
}
