package server

import (
	"bytes"
	"embed"
	"html/template"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/spigell/skill-heatmap/internal/board"
	"github.com/spigell/skill-heatmap/internal/filtering"
	"github.com/spigell/skill-heatmap/internal/heatmap"
)

//go:embed templates/*.html
var templatesFS embed.FS

var pageTemplate = template.Must(template.New("index.html").Funcs(template.FuncMap{
	"scoreOptions": scoreOptions,
}).ParseFS(templatesFS, "templates/index.html"))

type scoreOption struct {
	Value    string
	Label    string
	Selected bool
}

// scoreOptions lists the choices of a threshold select for the current value.
func scoreOptions(current filtering.Threshold) []scoreOption {
	options := []scoreOption{{Value: filtering.Off.String(), Label: "any", Selected: !current.Active}}
	for score := heatmap.MinScore; score <= heatmap.MaxScore; score++ {
		t := filtering.Min(score)
		options = append(options, scoreOption{
			Value:    t.String(),
			Label:    "≥ " + t.String(),
			Selected: current == t,
		})
	}
	return options
}

type pageData struct {
	*board.View
	EmptySelection string
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	view, err := s.board.Snapshot(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, pageData{View: view, EmptySelection: "Select Candidate to Compare"}); err != nil {
		s.logger.Error("rendering dashboard failed", zap.Error(err))
		http.Error(w, "rendering dashboard failed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}

func (s *Server) handleHeatmap(w http.ResponseWriter, r *http.Request) {
	view, err := s.board.Snapshot(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (s *Server) handleToggleCandidate(w http.ResponseWriter, r *http.Request) {
	if _, err := s.board.ToggleSelect(r.PathValue("id")); err != nil {
		writeError(w, err)
		return
	}
	redirectHome(w, r)
}

func (s *Server) handleToggleSkill(w http.ResponseWriter, r *http.Request) {
	skill := strings.TrimSpace(r.FormValue("skill"))
	if skill == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Code: "bad_request", Message: "skill is required"})
		return
	}

	if _, err := s.board.ToggleSkillVisibility(skill); err != nil {
		writeError(w, err)
		return
	}
	redirectHome(w, r)
}

func (s *Server) handleThreshold(w http.ResponseWriter, r *http.Request) {
	skill := strings.TrimSpace(r.FormValue("skill"))
	if skill == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Code: "bad_request", Message: "skill is required"})
		return
	}

	value, err := filtering.ParseThreshold(r.FormValue("value"))
	if err != nil {
		writeError(w, err)
		return
	}

	if err := s.board.SetThreshold(skill, value); err != nil {
		writeError(w, err)
		return
	}
	redirectHome(w, r)
}

func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	if err := s.board.Refresh(r.Context()); err != nil {
		writeError(w, err)
		return
	}
	redirectHome(w, r)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func redirectHome(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
