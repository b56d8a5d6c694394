package routes

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/alb0rt/send-trend/db"
	"github.com/alb0rt/send-trend/model"
	cs "github.com/alb0rt/send-trend/web/components"
)

const recentSessionLimit = 50

// recentSessionItems shapes recent sessions into list rows with their
// completed-route totals.
func (s *ServerHandler) recentSessionItems(limit int) ([]cs.SessionListItem, error) {
	sessions, err := s.Storage.RecentSessions(limit)
	if err != nil {
		return nil, err
	}

	items := make([]cs.SessionListItem, 0, len(sessions))

	for i := range sessions {
		session := &sessions[i]

		total := 0
		for _, route := range session.Routes {
			if route.UniqueRoutesCompleted > 0 {
				total += route.UniqueRoutesCompleted
			}
		}

		items = append(items, cs.SessionListItem{
			ID:             session.ID,
			Date:           session.Date,
			GymName:        session.GymName(),
			TotalCompleted: total,
		})
	}

	return items, nil
}

// SessionsHandle renders the session list with its creation forms.
func (s *ServerHandler) SessionsHandle(w http.ResponseWriter, _ *http.Request) {
	slog.Info("Handling sessions page request")

	items, err := s.recentSessionItems(recentSessionLimit)
	if err != nil {
		slog.Error("Failed to list sessions", "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)

		return
	}

	gyms, err := s.Storage.Gyms()
	if err != nil {
		slog.Error("Failed to list gyms", "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)

		return
	}

	_ = SafeRenderTemplate(cs.Sessions(&cs.SessionsContext{Sessions: items, Gyms: gyms}), w)
}

// CreateSessionHandle creates a session from the list page's form and
// redirects to its tracking page.
func (s *ServerHandler) CreateSessionHandle(w http.ResponseWriter, r *http.Request) {
	date := r.FormValue("date")
	if _, err := time.Parse("2006-01-02", date); err != nil {
		http.Error(w, "date must be YYYY-MM-DD", http.StatusBadRequest)

		return
	}

	session, err := s.Storage.CreateSession(date, r.FormValue("gym_id"), r.FormValue("notes"))
	if err != nil {
		slog.Error("Failed to create session", "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)

		return
	}

	slog.Info("Created session", "session", session.ID, "date", session.Date)
	http.Redirect(w, r, "/sessions/"+session.ID, http.StatusSeeOther)
}

// SessionDetailHandle renders one session's per-category counters.
func (s *ServerHandler) SessionDetailHandle(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	session, err := s.Storage.SessionByID(id)
	if errors.Is(err, db.ErrNotFound) {
		http.NotFound(w, r)

		return
	}

	if err != nil {
		slog.Error("Failed to load session", "session", id, "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)

		return
	}

	categories, err := s.Storage.Categories()
	if err != nil {
		slog.Error("Failed to list route categories", "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)

		return
	}

	renderContext := buildSessionDetailContext(session, categories)

	_ = SafeRenderTemplate(cs.SessionDetail(renderContext), w)
}

// buildSessionDetailContext lines the session's recorded counts up
// against the categories offered at its gym. Sessions without a gym
// only show categories they already have counts for.
func buildSessionDetailContext(session *model.Session, categories []model.RouteCategory) *cs.SessionDetailContext {
	countsByCategory := make(map[string]model.SessionRoute, len(session.Routes))
	for _, route := range session.Routes {
		countsByCategory[route.RouteCategoryID] = route
	}

	rows := make([]cs.CategoryCounts, 0, len(categories))

	for _, category := range categories {
		counts, touched := countsByCategory[category.ID]

		atGym := session.Gym != nil && category.GymID == session.Gym.ID
		if !atGym && !touched {
			continue
		}

		rows = append(rows, cs.CategoryCounts{
			Category:   category,
			Completed:  counts.UniqueRoutesCompleted,
			Attempted:  counts.UniqueRoutesAttempted,
			Additional: counts.AdditionalAttempts,
		})
	}

	return &cs.SessionDetailContext{
		Session:    session,
		GymName:    session.GymName(),
		Categories: rows,
	}
}

// AdjustRouteHandle moves one counter of a (session, category) pair
// and returns to the tracking page.
func (s *ServerHandler) AdjustRouteHandle(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	categoryID := r.FormValue("category_id")

	delta, err := strconv.Atoi(r.FormValue("delta"))
	if err != nil {
		http.Error(w, "delta must be an integer", http.StatusBadRequest)

		return
	}

	counter := db.Counter(r.FormValue("counter"))

	if err := s.Storage.AdjustRouteCount(id, categoryID, counter, delta); err != nil {
		slog.Error("Failed to adjust route count", "session", id, "category", categoryID, "error", err)
		http.Error(w, err.Error(), http.StatusBadRequest)

		return
	}

	http.Redirect(w, r, "/sessions/"+id, http.StatusSeeOther)
}

// CreateGymHandle creates a gym from the sessions page form.
func (s *ServerHandler) CreateGymHandle(w http.ResponseWriter, r *http.Request) {
	name := r.FormValue("name")
	if name == "" {
		http.Error(w, "gym name is required", http.StatusBadRequest)

		return
	}

	gym, err := s.Storage.CreateGym(name, r.FormValue("location"))
	if err != nil {
		slog.Error("Failed to create gym", "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)

		return
	}

	slog.Info("Created gym", "gym", gym.ID, "name", gym.Name)
	http.Redirect(w, r, "/sessions", http.StatusSeeOther)
}

// CreateCategoryHandle creates a route category, returning to the
// session page the form was submitted from when one is given.
func (s *ServerHandler) CreateCategoryHandle(w http.ResponseWriter, r *http.Request) {
	gymID := r.FormValue("gym_id")
	name := r.FormValue("name")

	if gymID == "" || name == "" {
		http.Error(w, "gym_id and name are required", http.StatusBadRequest)

		return
	}

	difficulty, err := strconv.Atoi(r.FormValue("difficulty_index"))
	if err != nil || difficulty < 1 {
		http.Error(w, "difficulty_index must be a positive integer", http.StatusBadRequest)

		return
	}

	category, err := s.Storage.CreateCategory(gymID, name, difficulty, r.FormValue("notes"))
	if err != nil {
		slog.Error("Failed to create route category", "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)

		return
	}

	slog.Info("Created route category", "category", category.ID, "name", category.Name)

	target := "/sessions"
	if sessionID := r.FormValue("session_id"); sessionID != "" {
		target = "/sessions/" + sessionID
	}

	http.Redirect(w, r, target, http.StatusSeeOther)
}
