package db

import (
	"github.com/alb0rt/send-trend/model"
)

// Counter names one of the three per-category tallies kept for a
// session.
type Counter string

const (
	CounterCompleted  Counter = "completed"
	CounterAttempted  Counter = "attempted"
	CounterAdditional Counter = "additional"
)

// Storage is the row source backing the dashboard and the session
// tracking pages.
type Storage interface {
	CreateGym(name, location string) (*model.Gym, error)
	Gyms() ([]model.Gym, error)

	CreateCategory(gymID, name string, difficultyIndex int, notes string) (*model.RouteCategory, error)
	Categories() ([]model.RouteCategory, error)

	CreateSession(date, gymID, notes string) (*model.Session, error)
	SessionByID(id string) (*model.Session, error)
	// SessionsSince returns sessions dated on or after the given ISO
	// date, ordered by date, with gym descriptor and route entries
	// attached.
	SessionsSince(date string) ([]model.Session, error)
	RecentSessions(limit int) ([]model.Session, error)

	// AdjustRouteCount moves one counter of a (session, category)
	// pair by delta, creating the entry on first touch and clamping
	// at zero.
	AdjustRouteCount(sessionID, categoryID string, counter Counter, delta int) error

	Close()
}
