package server

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"foodrec/internal/domain"
	"foodrec/internal/service"
)

type option struct {
	Slug  string `json:"slug"`
	Label string `json:"label"`
}

type optionsResponse struct {
	Goals      []option `json:"goals"`
	Diets      []option `json:"diets"`
	Categories []string `json:"categories"`
}

type recommendRequest struct {
	Goal        string `json:"goal" validate:"required"`
	Diet        string `json:"diet"`
	Category    string `json:"category" validate:"max=200"`
	Description string `json:"description" validate:"max=500"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

type card struct {
	Index       int     `json:"index"`
	ID          float64 `json:"id"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	Distance    float64 `json:"distance"`
}

type sessionResponse struct {
	ID    string `json:"id"`
	Added int    `json:"added"`
	Total int    `json:"total"`
	Cards []card `json:"cards"`
}

func toCards(recs []domain.Recommendation) []card {
	out := make([]card, len(recs))
	for i, r := range recs {
		out[i] = card{
			Index:       r.Index,
			ID:          r.Record.ID,
			Description: r.Record.Description,
			Category:    r.Record.Category,
			Distance:    r.Distance,
		}
	}
	return out
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]interface{}{"status": "ok", "records": s.rec.Catalog().Len()})
}

func (s *Server) handleOptions(w http.ResponseWriter, r *http.Request) {
	resp := optionsResponse{Categories: s.rec.Categories()}
	for _, g := range domain.Goals {
		resp.Goals = append(resp.Goals, option{Slug: g.Slug(), Label: g.Label()})
	}
	for _, d := range domain.Diets {
		resp.Diets = append(resp.Diets, option{Slug: d.Slug(), Label: d.Label()})
	}
	s.respondJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	id := s.newSession()
	s.logger.Debug("session created", zap.String("id", id.String()))
	s.respondJSON(w, http.StatusCreated, sessionResponse{ID: id.String(), Cards: []card{}})
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	id, ok := s.sessionID(w, r)
	if !ok {
		return
	}
	page, err := queryInt(r, "page")
	if err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	size, err := queryInt(r, "size")
	if err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	var resp sessionResponse
	found := s.withSession(id, func(sess *service.Session) {
		cards := sess.Cards()
		if size > 0 {
			cards = sess.Page(page, size)
		}
		resp = sessionResponse{ID: id.String(), Total: sess.Len(), Cards: toCards(cards)}
	})
	if !found {
		s.respondError(w, http.StatusNotFound, "session not found")
		return
	}
	s.respondJSON(w, http.StatusOK, resp)
}

func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	id, ok := s.sessionID(w, r)
	if !ok {
		return
	}
	if !s.deleteSession(id) {
		s.respondError(w, http.StatusNotFound, "session not found")
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (s *Server) handleRecommend(w http.ResponseWriter, r *http.Request) {
	id, ok := s.sessionID(w, r)
	if !ok {
		return
	}
	var body recommendRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(body); err != nil {
		s.respondError(w, http.StatusBadRequest, "validation failed: "+err.Error())
		return
	}
	req, err := parseRequest(body)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	var (
		res    service.QueryResult
		qerr   error
		status = http.StatusOK
	)
	found := s.withSession(id, func(sess *service.Session) {
		res, qerr = sess.Query(req)
	})
	switch {
	case !found:
		s.respondError(w, http.StatusNotFound, "session not found")
		return
	case qerr != nil:
		if errors.Is(qerr, domain.ErrInvalidGoal) || errors.Is(qerr, domain.ErrInvalidDiet) {
			status = http.StatusBadRequest
		} else {
			status = http.StatusInternalServerError
			s.logger.Error("recommend failed", zap.Error(qerr))
		}
		s.respondError(w, status, qerr.Error())
		return
	}
	s.respondJSON(w, status, sessionResponse{ID: id.String(), Added: res.Added, Total: len(res.Cards), Cards: toCards(res.Cards)})
}

func parseRequest(body recommendRequest) (domain.Request, error) {
	goal, err := domain.ParseGoal(body.Goal)
	if err != nil {
		return domain.Request{}, err
	}
	diet := domain.DietNoPreference
	if body.Diet != "" {
		if diet, err = domain.ParseDiet(body.Diet); err != nil {
			return domain.Request{}, err
		}
	}
	return domain.Request{Goal: goal, Diet: diet, Category: body.Category, Description: body.Description}, nil
}

func (s *Server) sessionID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		s.respondError(w, http.StatusNotFound, "session not found")
		return uuid.Nil, false
	}
	return id, true
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Warn("encode response", zap.Error(err))
	}
}

func (s *Server) respondError(w http.ResponseWriter, status int, msg string) {
	s.respondJSON(w, status, map[string]string{"error": msg})
}

// queryInt parses a non-negative integer query parameter; absent reads as 0.
func queryInt(r *http.Request, name string) (int, error) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("invalid %s %q", name, v)
	}
	return n, nil
}
