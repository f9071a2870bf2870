package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/skill-heatmap/internal/board"
	"github.com/spigell/skill-heatmap/internal/filtering"
	"github.com/spigell/skill-heatmap/internal/logger"
	"github.com/spigell/skill-heatmap/internal/metrics"
	"github.com/spigell/skill-heatmap/internal/talent"
)

// environment is what every command needs before touching the board.
type environment struct {
	logger  *zap.Logger
	config  *Config
	metrics *metrics.Manager
}

func prepare(command string) *environment {
	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	logger.Info("starting the skill-heatmap", zap.String("version", version), zap.String("command", command))

	// do not bother error since there is a valid parseable config
	pretty, _ := json.MarshalIndent(config, "", "  ")
	logger.Debug(fmt.Sprintf("starting with config: \n %s", pretty))

	return &environment{
		logger:  logger,
		config:  config,
		metrics: metrics.NewManager(),
	}
}

func (e *environment) client() *talent.Client {
	client := talent.New(e.logger).WithRecorder(e.metrics)

	if e.config.APIURL != "" {
		client.APIURL = e.config.APIURL
	}
	if e.config.UserAgent != "" {
		client.UserAgent = e.config.UserAgent
	}
	if e.config.Timeout > 0 {
		client.HTTPClient.Timeout = e.config.Timeout
	}

	return client
}

// board builds the board and applies the configured thresholds, then the
// extra assignments given on the command line.
func (e *environment) board(ctx context.Context, thresholds ...string) (*board.Board, error) {
	b := board.New(ctx, e.client(),
		board.WithLogger(e.logger),
		board.WithPosition(e.config.Position),
		board.WithCatalog(e.config.Skills),
		board.WithExcluded(e.config.ExcludedCandidates()),
		board.WithDisabledFilters(e.config.DisabledFilters()),
		board.WithConcurrency(e.config.RefreshConcurrency),
		board.WithRecorder(e.metrics),
	)

	assignments := append(append([]string(nil), e.config.Thresholds...), thresholds...)
	if err := applyThresholds(b, assignments); err != nil {
		b.Close()
		return nil, err
	}

	return b, nil
}

func applyThresholds(b *board.Board, assignments []string) error {
	for _, assignment := range assignments {
		skill, value, err := filtering.ParseAssignment(assignment)
		if err != nil {
			return err
		}
		if err := b.SetThreshold(skill, value); err != nil {
			return fmt.Errorf("threshold %q: %w", assignment, err)
		}
	}
	return nil
}
