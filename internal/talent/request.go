package talent

import (
	"compress/gzip"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/spigell/skill-heatmap/internal/logger"
)

const (
	contentType     = "application/json"
	contentEncoding = "gzip"

	maxLoggedBody = 256
)

// getJSON makes GET request to the talent API and decodes the body into target.
func (c *Client) getJSON(ctx context.Context, endpoint, url string, target interface{}) (err error) {
	started := time.Now()
	defer func() {
		c.observe(endpoint, err, time.Since(started))
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}

	req = c.setHeaders(req)

	resp, err := c.request(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	var reader io.Reader = resp.Body
	if resp.Header.Get("Content-Encoding") == "gzip" {
		gzipReader, gzErr := gzip.NewReader(resp.Body)
		if gzErr != nil {
			return gzErr
		}
		defer gzipReader.Close()
		reader = gzipReader
	}

	data, err := io.ReadAll(reader)
	if err != nil {
		return err
	}

	if resp.StatusCode != http.StatusOK {
		c.logger.Debug("unexpected response from talent api",
			zap.String("url", url),
			zap.Int("status", resp.StatusCode),
			zap.String("body", logger.TruncateForLog(string(data), maxLoggedBody)),
		)
		return fmt.Errorf("bad status: %s", resp.Status)
	}

	if target == nil {
		return nil
	}

	if err := json.Unmarshal(data, target); err != nil {
		return fmt.Errorf("decode %s response: %w", endpoint, err)
	}

	return nil
}

func (c *Client) request(req *http.Request) (*http.Response, error) {
	c.logger.Debug("make request", zap.String("url", req.URL.String()))
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}

	return resp, nil
}

func (c *Client) setHeaders(req *http.Request) *http.Request {
	req.Header.Set("Accept", contentType)
	req.Header.Set("User-Agent", c.UserAgent)
	req.Header.Set("Accept-Encoding", contentEncoding)

	return req
}

func (c *Client) observe(endpoint string, err error, elapsed time.Duration) {
	if c.recorder == nil {
		return
	}

	result := "ok"
	if err != nil {
		result = "error"
	}
	c.recorder.ObserveUpstream(endpoint, result, elapsed)
}
