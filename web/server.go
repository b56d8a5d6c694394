package web

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/alb0rt/send-trend/db"
	"github.com/alb0rt/send-trend/web/routes"
)

func disableCacheInDevMode(dev bool, next http.Handler) http.Handler {
	if !dev {
		return next
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "no-store")
		next.ServeHTTP(w, r)
	})
}

// BuildServer wires all page and API handlers into a mux.
func BuildServer(storage db.Storage, dev bool) *http.ServeMux {
	handler := routes.ServerHandler{Storage: storage}

	mux := http.NewServeMux()
	mux.Handle("GET /{$}", disableCacheInDevMode(dev, http.HandlerFunc(handler.DashboardHandle)))
	mux.Handle("GET /api/dashboard", http.HandlerFunc(handler.APIDashboardHandle))
	mux.Handle("GET /sessions", http.HandlerFunc(handler.SessionsHandle))
	mux.Handle("POST /sessions", http.HandlerFunc(handler.CreateSessionHandle))
	mux.Handle("GET /sessions/{id}", http.HandlerFunc(handler.SessionDetailHandle))
	mux.Handle("POST /sessions/{id}/routes", http.HandlerFunc(handler.AdjustRouteHandle))
	mux.Handle("POST /gyms", http.HandlerFunc(handler.CreateGymHandle))
	mux.Handle("POST /categories", http.HandlerFunc(handler.CreateCategoryHandle))

	return mux
}

// StartServer runs the web interface until the listener fails.
func StartServer(port int, storage db.Storage, dev bool) error {
	slog.Info("Running interface", "port", port)

	err := http.ListenAndServe(fmt.Sprintf(":%d", port), BuildServer(storage, dev))
	if err != nil {
		return fmt.Errorf("could not run server: %w", err)
	}

	return nil
}
