package cmd

import (
	"bytes"
	"context"
	"errors"
	"slices"
	"testing"
	"time"

	"github.com/spf13/viper"

	"github.com/spigell/skill-heatmap/internal/board"
	"github.com/spigell/skill-heatmap/internal/filtering"
	"github.com/spigell/skill-heatmap/internal/talent"
)

func readConfig(t *testing.T, yaml string) (*Config, error) {
	t.Helper()

	v := viper.New()
	setDefaults(v)
	v.SetConfigType("yaml")
	if err := v.ReadConfig(bytes.NewBufferString(yaml)); err != nil {
		t.Fatalf("read config: %v", err)
	}
	return decodeConfig(v)
}

func TestDecodeConfigDefaults(t *testing.T) {
	config, err := readConfig(t, "")
	if err != nil {
		t.Fatalf("decode: %v", err)
	}

	if config.Position != defaultPosition {
		t.Fatalf("expected default position, got %q", config.Position)
	}
	if config.Server == nil || config.Server.Addr != defaultAddr {
		t.Fatalf("expected default addr, got %+v", config.Server)
	}
	if config.Timeout != defaultTimeout {
		t.Fatalf("expected default timeout, got %s", config.Timeout)
	}
	if config.RefreshConcurrency != defaultRefreshConcurrency || len(config.DisabledFilters()) != 0 {
		t.Fatalf("unexpected refresh defaults: %d %v", config.RefreshConcurrency, config.DisabledFilters())
	}
	if len(config.ExcludedCandidates()) != 0 {
		t.Fatalf("expected no exclusions, got %v", config.ExcludedCandidates())
	}
}

func TestDecodeConfigFile(t *testing.T) {
	config, err := readConfig(t, `
api-url: http://localhost:9000
timeout: 3s
position: Senior UX designer
skills:
  - Creating Wireframes
  - Creation of Brands
thresholds:
  - Creating Wireframes=3
exclude:
  candidates: ["7"]
filters:
  disabled: [thresholds]
refresh-concurrency: 8
server:
  addr: 127.0.0.1:9090
`)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}

	if config.APIURL != "http://localhost:9000" || config.Timeout != 3*time.Second {
		t.Fatalf("unexpected upstream settings: %+v", config)
	}
	if !slices.Equal(config.Skills, []string{"Creating Wireframes", "Creation of Brands"}) {
		t.Fatalf("unexpected skills %v", config.Skills)
	}
	if !slices.Equal(config.ExcludedCandidates(), []string{"7"}) {
		t.Fatalf("unexpected exclusions %v", config.ExcludedCandidates())
	}
	if !slices.Equal(config.DisabledFilters(), []string{"thresholds"}) {
		t.Fatalf("unexpected disabled filters %v", config.DisabledFilters())
	}
	if config.RefreshConcurrency != 8 {
		t.Fatalf("unexpected refresh concurrency %d", config.RefreshConcurrency)
	}
	if config.Server.Addr != "127.0.0.1:9090" {
		t.Fatalf("unexpected addr %q", config.Server.Addr)
	}
}

func TestDecodeConfigEnv(t *testing.T) {
	t.Setenv("SKILL_HEATMAP_POSITION", "From env")
	t.Setenv("SKILL_HEATMAP_SERVER_ADDR", ":7000")

	config, err := readConfig(t, "position: From file\n")
	if err != nil {
		t.Fatalf("decode: %v", err)
	}

	if config.Position != "From env" || config.Server.Addr != ":7000" {
		t.Fatalf("expected env to win, got %q %q", config.Position, config.Server.Addr)
	}
}

func TestDecodeConfigInvalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{name: "threshold out of range", yaml: "thresholds: [\"Creating Wireframes=9\"]\n"},
		{name: "threshold without skill", yaml: "thresholds: [\"=2\"]\n"},
		{name: "bad url", yaml: "api-url: not a url\n"},
		{name: "empty position", yaml: "position: \"\"\n"},
		{name: "duplicate skills", yaml: "skills: [a, a]\n"},
		{name: "unknown filter", yaml: "filters:\n  disabled: [employers]\n"},
		{name: "negative concurrency", yaml: "refresh-concurrency: -1\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := readConfig(t, tt.yaml); err == nil {
				t.Fatalf("expected validation error")
			}
		})
	}
}

type emptyFetcher struct{}

func (emptyFetcher) ListCandidates(context.Context) (*talent.Candidates, error) {
	return &talent.Candidates{}, nil
}

func (emptyFetcher) GetSkillScores(context.Context, string) (*talent.Scores, error) {
	return &talent.Scores{}, nil
}

func TestApplyThresholds(t *testing.T) {
	b := board.New(context.Background(), emptyFetcher{})
	t.Cleanup(b.Close)

	if err := applyThresholds(b, []string{"Creating Wireframes=3", "Creation of Brands=false"}); err != nil {
		t.Fatalf("apply: %v", err)
	}

	view, err := b.Snapshot(context.Background())
	if err != nil {
		t.Fatalf("snapshot: %v", err)
	}
	for _, skill := range view.Skills {
		want := filtering.Off
		if skill.Name == "Creating Wireframes" {
			want = filtering.Min(3)
		}
		if skill.Threshold != want {
			t.Fatalf("unexpected threshold for %q: %s", skill.Name, skill.Threshold)
		}
	}

	err = applyThresholds(b, []string{"Juggling=1"})
	if !errors.Is(err, board.ErrUnknownSkill) {
		t.Fatalf("expected ErrUnknownSkill, got %v", err)
	}
}
