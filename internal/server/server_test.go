package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/spigell/skill-heatmap/internal/board"
	"github.com/spigell/skill-heatmap/internal/filtering"
	"github.com/spigell/skill-heatmap/internal/metrics"
	"github.com/spigell/skill-heatmap/internal/talent"
)

const wireframes = "Creating Wireframes"

type staticFetcher struct{}

func (staticFetcher) ListCandidates(context.Context) (*talent.Candidates, error) {
	return &talent.Candidates{Items: []*talent.Candidate{
		{ID: "1", Name: "Ann"},
		{ID: "2", Name: "Bob"},
	}}, nil
}

func (staticFetcher) GetSkillScores(_ context.Context, id string) (*talent.Scores, error) {
	score := 4.0
	if id == "2" {
		score = 1
	}
	return &talent.Scores{Items: []talent.SkillScore{{Skill: wireframes, Score: score}}}, nil
}

type harness struct {
	board   *board.Board
	metrics *metrics.Manager
	handler http.Handler
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	m := metrics.NewManager()
	b := board.New(context.Background(), staticFetcher{}, board.WithPosition("Posk_UXdesigner_sr001"), board.WithRecorder(m))
	t.Cleanup(b.Close)

	if err := b.Load(context.Background()); err != nil {
		t.Fatalf("load: %v", err)
	}

	return &harness{board: b, metrics: m, handler: New(b, nil, m, m.Handler()).Handler()}
}

func (h *harness) do(t *testing.T, method, target string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()

	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, target, strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}

	rec := httptest.NewRecorder()
	h.handler.ServeHTTP(rec, req)
	return rec
}

func (h *harness) view(t *testing.T) *board.View {
	t.Helper()

	rec := h.do(t, http.MethodGet, "/api/heatmap", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var view board.View
	if err := json.Unmarshal(rec.Body.Bytes(), &view); err != nil {
		t.Fatalf("decode view: %v", err)
	}
	return &view
}

func expectRedirect(t *testing.T, rec *httptest.ResponseRecorder) {
	t.Helper()

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d: %s", rec.Code, rec.Body.String())
	}
	if loc := rec.Header().Get("Location"); loc != "/" {
		t.Fatalf("expected redirect to /, got %q", loc)
	}
}

func TestIndexEmptySelection(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	rec := h.do(t, http.MethodGet, "/", nil)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Fatalf("unexpected content type %q", ct)
	}

	body := rec.Body.String()
	for _, want := range []string{"Posk_UXdesigner_sr001", "2 Candidates", "Most Recommended", "Select Candidate to Compare", "Ann", "Bob", "Application fo Typography"} {
		if !strings.Contains(body, want) {
			t.Fatalf("expected %q in page", want)
		}
	}
}

func TestToggleCandidate(t *testing.T) {
	t.Parallel()

	h := newHarness(t)

	expectRedirect(t, h.do(t, http.MethodPost, "/candidates/1/toggle", nil))
	h.board.Wait()

	view := h.view(t)
	if len(view.Grid.Columns) != 1 || view.Grid.Columns[0].Candidate.Name != "Ann" {
		t.Fatalf("expected Ann's column, got %+v", view.Grid.Columns)
	}

	page := h.do(t, http.MethodGet, "/", nil).Body.String()
	if !strings.Contains(page, "background: #003F0B") {
		t.Fatalf("expected the top score color in page")
	}

	expectRedirect(t, h.do(t, http.MethodPost, "/candidates/1/toggle", nil))
	if view := h.view(t); view.Selected != 0 || len(view.Grid.Columns) != 0 {
		t.Fatalf("expected empty selection, got %+v", view)
	}
}

func TestToggleUnknownCandidate(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	if rec := h.do(t, http.MethodPost, "/candidates/99/toggle", nil); rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestToggleSkill(t *testing.T) {
	t.Parallel()

	h := newHarness(t)

	expectRedirect(t, h.do(t, http.MethodPost, "/skills/toggle", url.Values{"skill": {wireframes}}))
	for _, skill := range h.view(t).Skills {
		if skill.Name == wireframes && skill.Visible {
			t.Fatalf("expected %q to be hidden", wireframes)
		}
	}

	if rec := h.do(t, http.MethodPost, "/skills/toggle", url.Values{"skill": {"Juggling"}}); rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown skill, got %d", rec.Code)
	}
	if rec := h.do(t, http.MethodPost, "/skills/toggle", url.Values{}); rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for missing skill, got %d", rec.Code)
	}
}

func TestThresholds(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	for _, id := range []string{"1", "2"} {
		expectRedirect(t, h.do(t, http.MethodPost, "/candidates/"+id+"/toggle", nil))
	}
	h.board.Wait()

	expectRedirect(t, h.do(t, http.MethodPost, "/thresholds", url.Values{"skill": {wireframes}, "value": {"3"}}))

	view := h.view(t)
	if len(view.Grid.Columns) != 1 || view.Grid.Columns[0].Candidate.ID != "1" || view.Hidden != 1 {
		t.Fatalf("expected only Ann to pass, got %+v hidden=%d", view.Grid.Columns, view.Hidden)
	}

	expectRedirect(t, h.do(t, http.MethodPost, "/thresholds", url.Values{"skill": {wireframes}, "value": {"false"}}))
	if view := h.view(t); len(view.Grid.Columns) != 2 {
		t.Fatalf("expected both columns after clearing the threshold, got %d", len(view.Grid.Columns))
	}

	tests := []struct {
		name string
		form url.Values
		code int
	}{
		{name: "out of range", form: url.Values{"skill": {wireframes}, "value": {"7"}}, code: http.StatusBadRequest},
		{name: "not a number", form: url.Values{"skill": {wireframes}, "value": {"high"}}, code: http.StatusBadRequest},
		{name: "missing skill", form: url.Values{"value": {"1"}}, code: http.StatusBadRequest},
		{name: "unknown skill", form: url.Values{"skill": {"Juggling"}, "value": {"1"}}, code: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if rec := h.do(t, http.MethodPost, "/thresholds", tt.form); rec.Code != tt.code {
				t.Fatalf("expected %d, got %d", tt.code, rec.Code)
			}
		})
	}
}

func TestRefresh(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	expectRedirect(t, h.do(t, http.MethodPost, "/candidates/2/toggle", nil))
	expectRedirect(t, h.do(t, http.MethodPost, "/refresh", nil))

	view := h.view(t)
	if len(view.Grid.Columns) != 1 || view.Grid.Columns[0].Cells[0].Score != 1 {
		t.Fatalf("expected refreshed scores for Bob, got %+v", view.Grid.Columns)
	}
}

func TestHealthAndMetrics(t *testing.T) {
	t.Parallel()

	h := newHarness(t)

	rec := h.do(t, http.MethodGet, "/healthz", nil)
	if rec.Code != http.StatusOK || strings.TrimSpace(rec.Body.String()) != `{"status":"ok"}` {
		t.Fatalf("unexpected health response %d %q", rec.Code, rec.Body.String())
	}

	h.do(t, http.MethodPost, "/candidates/99/toggle", nil)

	rec = h.do(t, http.MethodGet, "/metrics", nil)
	body := rec.Body.String()
	for _, want := range []string{
		`skill_heatmap_http_requests_total{code="200",route="healthz"} 1`,
		`skill_heatmap_http_requests_total{code="404",route="toggle_candidate"} 1`,
		`skill_heatmap_selected_candidates 0`,
	} {
		if !strings.Contains(body, want) {
			t.Fatalf("expected %q in metrics:\n%s", want, body)
		}
	}
}

func TestRouting(t *testing.T) {
	t.Parallel()

	h := newHarness(t)

	if rec := h.do(t, http.MethodGet, "/candidates/1/toggle", nil); rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", rec.Code)
	}
	if rec := h.do(t, http.MethodGet, "/missing", nil); rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestScoreOptions(t *testing.T) {
	t.Parallel()

	options := scoreOptions(filtering.Min(2))
	if len(options) != 6 {
		t.Fatalf("expected 6 options, got %d", len(options))
	}
	if options[0].Value != "false" || options[0].Selected {
		t.Fatalf("unexpected first option %+v", options[0])
	}
	for _, o := range options {
		if o.Selected != (o.Value == "2") {
			t.Fatalf("unexpected selection on %+v", o)
		}
	}

	if !scoreOptions(filtering.Off)[0].Selected {
		t.Fatalf("expected the inactive option to be selected")
	}
}
