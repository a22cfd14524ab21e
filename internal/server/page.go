package server

import (
	"fmt"
	"html/template"
	"net/http"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"foodrec/internal/domain"
	"foodrec/internal/service"
)

const sessionCookie = "foodrec_session"

var pageTemplate = template.Must(template.New("page").Parse(`<!doctype html>
<html>
<head><meta charset="utf-8"><title>Smart Food Recommender</title>
<style>
body{font-family:sans-serif;max-width:960px;margin:2em auto}
.cards{display:grid;grid-template-columns:1fr 1fr;gap:12px}
.card{border:1px solid #ccc;border-radius:8px;padding:10px}
.err{color:#b00}
</style></head>
<body>
<h1>Smart Food Recommender</h1>
<form method="post" action="/">
<p><label>Category <select name="category"><option value="">Any</option>{{range .Categories}}<option{{if eq . $.Category}} selected{{end}}>{{.}}</option>{{end}}</select></label></p>
<p><label>Goal <select name="goal">{{range .Goals}}<option value="{{.Slug}}"{{if eq .Slug $.Goal}} selected{{end}}>{{.Label}}</option>{{end}}</select></label></p>
<p><label>Diet <select name="diet">{{range .Diets}}<option value="{{.Slug}}"{{if eq .Slug $.Diet}} selected{{end}}>{{.Label}}</option>{{end}}</select></label></p>
<p><label>Describe it <input name="description" value="{{.Description}}" placeholder="light, healthy, high protein"></label></p>
<p><button type="submit" name="action" value="search">Recommend</button> <button type="submit" name="action" value="reset">Clear</button></p>
</form>
{{if .Error}}<p class="err">{{.Error}}</p>{{end}}
{{if .Status}}<p>{{.Status}}</p>{{end}}
<div class="cards">{{range .Cards}}<div class="card"><strong>{{.Record.Description}}</strong><br>Category: {{.Record.Category}}</div>{{end}}</div>
</body>
</html>
`))

type pageData struct {
	Categories  []string
	Goals       []option
	Diets       []option
	Goal        string
	Diet        string
	Category    string
	Description string
	Status      string
	Error       string
	Cards       []domain.Recommendation
}

func (s *Server) basePage() pageData {
	d := pageData{
		Categories: s.rec.Categories(),
		Goal:       domain.GoalHighProtein.Slug(),
		Diet:       domain.DietNoPreference.Slug(),
	}
	for _, g := range domain.Goals {
		d.Goals = append(d.Goals, option{Slug: g.Slug(), Label: g.Label()})
	}
	for _, dt := range domain.Diets {
		d.Diets = append(d.Diets, option{Slug: dt.Slug(), Label: dt.Label()})
	}
	return d
}

// pageSession returns the visitor's session id, creating a session and
// setting the cookie when the cookie is missing or stale.
func (s *Server) pageSession(w http.ResponseWriter, r *http.Request) uuid.UUID {
	if c, err := r.Cookie(sessionCookie); err == nil {
		if id, err := uuid.Parse(c.Value); err == nil {
			if s.withSession(id, func(*service.Session) {}) {
				return id
			}
		}
	}
	id := s.newSession()
	http.SetCookie(w, &http.Cookie{Name: sessionCookie, Value: id.String(), Path: "/", HttpOnly: true, SameSite: http.SameSiteLaxMode})
	return id
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	id := s.pageSession(w, r)
	data := s.basePage()
	s.withSession(id, func(sess *service.Session) { data.Cards = sess.Cards() })
	s.render(w, http.StatusOK, data)
}

func (s *Server) handleIndexSubmit(w http.ResponseWriter, r *http.Request) {
	id := s.pageSession(w, r)
	if err := r.ParseForm(); err != nil {
		data := s.basePage()
		data.Error = "invalid form"
		s.render(w, http.StatusBadRequest, data)
		return
	}
	data := s.basePage()
	data.Goal = r.PostForm.Get("goal")
	data.Diet = r.PostForm.Get("diet")
	data.Category = r.PostForm.Get("category")
	data.Description = r.PostForm.Get("description")

	if r.PostForm.Get("action") == "reset" {
		s.withSession(id, func(sess *service.Session) { sess.Reset() })
		data.Status = "Session cleared."
		s.render(w, http.StatusOK, data)
		return
	}

	status := http.StatusOK
	req, err := parseRequest(recommendRequest{Goal: data.Goal, Diet: data.Diet, Category: data.Category, Description: data.Description})
	if err != nil {
		status = http.StatusBadRequest
		data.Error = err.Error()
		s.withSession(id, func(sess *service.Session) { data.Cards = sess.Cards() })
		s.render(w, status, data)
		return
	}
	s.withSession(id, func(sess *service.Session) {
		res, qerr := sess.Query(req)
		if qerr != nil {
			status = http.StatusInternalServerError
			data.Error = qerr.Error()
			data.Cards = sess.Cards()
			return
		}
		data.Cards = res.Cards
		data.Status = statusLine(res, req)
	})
	s.render(w, status, data)
}

func statusLine(res service.QueryResult, req domain.Request) string {
	return fmt.Sprintf("%d new, %d total matches for %s.", res.Added, len(res.Cards), req.Goal.Label())
}

func (s *Server) render(w http.ResponseWriter, status int, data pageData) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := pageTemplate.Execute(w, data); err != nil {
		s.logger.Warn("render page", zap.Error(err))
	}
}
