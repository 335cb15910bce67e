package web

import (
	"context"
	"embed"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/example/outing-planner/internal/auth"
	"github.com/example/outing-planner/internal/calendar"
	"github.com/example/outing-planner/internal/config"
	"github.com/example/outing-planner/internal/domain/timeofday"
	"github.com/example/outing-planner/internal/invite"
	"github.com/example/outing-planner/internal/planner"
	"github.com/example/outing-planner/internal/profile"
)

//go:embed templates/*.html static/*
var assetsFS embed.FS

// Server is the presentation collaborator: it renders recommendation
// results and turns form submissions into profile edits, recompute
// triggers, and invite records.
type Server struct {
	Auth     *auth.Store
	Profiles *profile.Repo
	Invites  *invite.Repo
	Calendar calendar.Provider
	Catalog  func(apiKey string) planner.Catalog
	Defaults config.Config
	Logger   *slog.Logger

	mu       sync.Mutex
	planners map[string]*userPlanner
}

// userPlanner remembers which API key the planner's catalog was built
// with, so a key change rebinds the catalog instead of fetching with the
// old credentials forever.
type userPlanner struct {
	apiKey string
	pl     *planner.Planner
}

type tmplData struct {
	Title string
	User  string
	Flash string

	Result  planner.Result
	HasData bool
	Profile profile.Profile
	Invites []invite.Invite
}

func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()

	mux.Handle("/static/", http.FileServer(http.FS(assetsFS)))

	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok\n"))
	})

	mux.HandleFunc("/login", s.handleLogin)
	mux.HandleFunc("/logout", s.handleLogout)

	mux.Handle("/", s.Auth.RequireAuth(http.HandlerFunc(s.handleHome)))
	mux.Handle("/settings", s.Auth.RequireAuth(http.HandlerFunc(s.handleSettings)))
	mux.Handle("/invites", s.Auth.RequireAuth(http.HandlerFunc(s.handleInvites)))
	mux.Handle("/invites/create", s.Auth.RequireAuth(http.HandlerFunc(s.handleInviteCreate)))

	return mux
}

// plannerFor lazily creates one recompute coordinator per user, so each
// user's triggers serialize against their own generation counter. The
// cached planner is replaced when the user's effective API key changes:
// the catalog is bound to the key at construction, and keeping the old
// one would fetch with stale credentials until restart.
func (s *Server) plannerFor(uid string, apiKey string) *planner.Planner {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.planners == nil {
		s.planners = make(map[string]*userPlanner)
	}
	if up, ok := s.planners[uid]; ok && up.apiKey == apiKey {
		return up.pl
	}
	pl := planner.New(s.Calendar, s.Catalog(apiKey), s.Logger)
	s.planners[uid] = &userPlanner{apiKey: apiKey, pl: pl}
	return pl
}

func (s *Server) requestFor(p profile.Profile) planner.Request {
	location := p.SearchLocation
	if location == "" {
		location = s.Defaults.SearchLocation
	}
	return planner.Request{
		From:     time.Now(),
		Config:   p.AvailabilityConfig(),
		Prefs:    p.Preferences(),
		Location: location,
		Term:     s.Defaults.SearchTerm,
	}
}

func (s *Server) apiKeyFor(p profile.Profile) string {
	if p.YelpAPIKey != "" {
		return p.YelpAPIKey
	}
	return s.Defaults.YelpAPIKey
}

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	uid, _ := auth.UserIDFromContext(r.Context())
	prof, err := s.Profiles.Get(r.Context(), uid)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	pl := s.plannerFor(uid, s.apiKeyFor(prof))
	res, ok := pl.Latest()
	if !ok {
		// First visit: compute synchronously so the page has content.
		<-pl.Trigger(r.Context(), s.requestFor(prof))
		res, ok = pl.Latest()
	}

	s.render(w, "templates/home.html", tmplData{
		Title:   "Recommendations",
		User:    uid,
		Result:  res,
		HasData: ok,
		Profile: prof,
	})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.render(w, "templates/login.html", tmplData{Title: "Login"})
	case http.MethodPost:
		if err := r.ParseForm(); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		username := strings.TrimSpace(r.FormValue("username"))
		password := r.FormValue("password")
		uid, err := s.Auth.Authenticate(r.Context(), username, password)
		if err != nil {
			s.render(w, "templates/login.html", tmplData{Title: "Login", Flash: "Invalid username/password"})
			return
		}
		if err := s.Auth.SetSession(w, r, uid); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		http.Redirect(w, r, "/", http.StatusFound)
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	s.Auth.ClearSession(w)
	http.Redirect(w, r, "/login", http.StatusFound)
}

func (s *Server) handleSettings(w http.ResponseWriter, r *http.Request) {
	uid, _ := auth.UserIDFromContext(r.Context())
	prof, err := s.Profiles.Get(r.Context(), uid)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	switch r.Method {
	case http.MethodGet:
		s.render(w, "templates/settings.html", tmplData{Title: "Settings", User: uid, Profile: prof})
	case http.MethodPost:
		if err := r.ParseForm(); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		prof.LovedCuisines = profile.SplitCSV(r.FormValue("loved"))
		prof.WantToTryCuisines = profile.SplitCSV(r.FormValue("want_to_try"))
		prof.Weekdays = parseWeekdayForm(r.Form["weekday"])
		prof.SearchLocation = strings.TrimSpace(r.FormValue("location"))
		prof.YelpAPIKey = nextAPIKey(prof.YelpAPIKey,
			strings.TrimSpace(r.FormValue("yelp_api_key")),
			r.FormValue("clear_yelp_api_key") != "")

		dayStart, okStart := timeofday.Parse(strings.TrimSpace(r.FormValue("day_start")))
		dayEnd, okEnd := timeofday.Parse(strings.TrimSpace(r.FormValue("day_end")))
		if !okStart || !okEnd {
			s.render(w, "templates/settings.html", tmplData{Title: "Settings", User: uid, Profile: prof, Flash: "Times must be HH:MM"})
			return
		}
		prof.DayStart, prof.DayEnd = dayStart, dayEnd

		if err := s.Profiles.Save(r.Context(), prof); err != nil {
			s.Logger.Error("save profile", "user", uid, "error", err)
			s.render(w, "templates/settings.html", tmplData{Title: "Settings", User: uid, Profile: prof, Flash: "Failed to save settings"})
			return
		}

		// Preference edits are a recompute trigger. Fire and forget: the
		// planner discards this run if a newer edit supersedes it.
		pl := s.plannerFor(uid, s.apiKeyFor(prof))
		pl.Trigger(context.WithoutCancel(r.Context()), s.requestFor(prof))

		http.Redirect(w, r, "/", http.StatusFound)
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func (s *Server) handleInvites(w http.ResponseWriter, r *http.Request) {
	uid, _ := auth.UserIDFromContext(r.Context())
	invs, err := s.Invites.ListByUser(r.Context(), uid)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	s.render(w, "templates/invites.html", tmplData{Title: "Invites", User: uid, Invites: invs})
}

func (s *Server) handleInviteCreate(w http.ResponseWriter, r *http.Request) {
	uid, _ := auth.UserIDFromContext(r.Context())
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	start, err1 := time.Parse(time.RFC3339, r.FormValue("start"))
	end, err2 := time.Parse(time.RFC3339, r.FormValue("end"))
	if err1 != nil || err2 != nil {
		http.Error(w, "invalid start/end", http.StatusBadRequest)
		return
	}

	inv := invite.Invite{
		UserID:       uid,
		VenueID:      strings.TrimSpace(r.FormValue("venue_id")),
		VenueName:    strings.TrimSpace(r.FormValue("venue_name")),
		Start:        start,
		End:          end,
		Participants: profile.SplitCSV(r.FormValue("participants")),
	}
	if _, err := s.Invites.Create(r.Context(), inv); err != nil {
		s.Logger.Error("create invite", "user", uid, "error", err)
		http.Error(w, "failed to create invite", http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, "/invites", http.StatusFound)
}

// nextAPIKey applies the settings-form key semantics: an explicit clear
// drops the stored key (falling back to the server default), a non-empty
// submission replaces it, and an empty field keeps the current one.
func nextAPIKey(current, submitted string, clear bool) string {
	if clear {
		return ""
	}
	if submitted != "" {
		return submitted
	}
	return current
}

func parseWeekdayForm(values []string) []time.Weekday {
	var out []time.Weekday
	for _, v := range values {
		switch v {
		case "0", "1", "2", "3", "4", "5", "6":
			out = append(out, time.Weekday(v[0]-'0'))
		}
	}
	return out
}

func (s *Server) render(w http.ResponseWriter, name string, data tmplData) {
	t, err := template.ParseFS(assetsFS, "templates/base.html", name)
	if err != nil {
		http.Error(w, "template error: "+err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := t.ExecuteTemplate(w, "base", data); err != nil {
		http.Error(w, "render error: "+err.Error(), http.StatusInternalServerError)
	}
}

func Start(ctx context.Context, addr string, h http.Handler) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           h,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()
	fmt.Printf("listening on %s\n", addr)
	return srv.ListenAndServe()
}
