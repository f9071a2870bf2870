package board

import (
	"slices"

	"go.uber.org/zap"
)

const (
	defaultConcurrency = 4

	disabledReason = "disabled by configuration"
)

// Option configures a Board.
type Option func(*Board)

func WithLogger(logger *zap.Logger) Option {
	return func(b *Board) {
		if logger != nil {
			b.logger = logger
		}
	}
}

// WithCatalog replaces the built-in skill catalog.
func WithCatalog(skills []string) Option {
	return func(b *Board) {
		if len(skills) > 0 {
			b.catalog = slices.Clone(skills)
		}
	}
}

// WithExcluded hides the listed candidate IDs from the heat map.
func WithExcluded(ids []string) Option {
	return func(b *Board) {
		b.excluded = slices.Clone(ids)
	}
}

// WithDisabledFilters keeps the named filtering steps out of the pipeline.
// They are still reported, as disabled, in the view.
func WithDisabledFilters(names []string) Option {
	return func(b *Board) {
		b.disabled = slices.Clone(names)
	}
}

// WithPosition sets the title shown above the comparison.
func WithPosition(title string) Option {
	return func(b *Board) {
		b.position = title
	}
}

func WithRecorder(r SelectionRecorder) Option {
	return func(b *Board) {
		b.recorder = r
	}
}

// WithConcurrency bounds the number of parallel requests made by Refresh.
func WithConcurrency(n int) Option {
	return func(b *Board) {
		if n > 0 {
			b.concurrency = n
		}
	}
}
