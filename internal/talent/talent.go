package talent

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"
)

const (
	apiURL    = "https://forinterview.onrender.com"
	userAgent = "spigell/skill-heatmap"

	peoplePath = "/people"

	// Endpoint labels reported to the Recorder.
	EndpointRoster = "people"
	EndpointDetail = "person"
)

// Recorder receives the outcome of every upstream request.
type Recorder interface {
	ObserveUpstream(endpoint, result string, elapsed time.Duration)
}

type Client struct {
	logger     *zap.Logger
	recorder   Recorder
	HTTPClient *http.Client
	UserAgent  string
	APIURL     string
}

func New(logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Client{
		APIURL: apiURL,
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		logger:    logger,
		UserAgent: userAgent,
	}
}

// WithRecorder attaches a metrics recorder to the client.
func (c *Client) WithRecorder(r Recorder) *Client {
	c.recorder = r
	return c
}

// ListCandidates fetches the whole roster.
func (c *Client) ListCandidates(ctx context.Context) (*Candidates, error) {
	return c.getCandidates(ctx)
}

// GetSkillScores fetches and flattens the skillset of a single candidate.
func (c *Client) GetSkillScores(ctx context.Context, id string) (*Scores, error) {
	return c.getScores(ctx, id)
}
