package model

// Gym is a climbing gym a session can take place at.
type Gym struct {
	ID       string
	Name     string
	Location string
}

// DisplayName is the label shown for this gym across the UI and in
// aggregated output.
func (g *Gym) DisplayName() string {
	return g.Name + " - " + g.Location
}

// RouteCategory is one difficulty tier of routes at a gym, e.g. "V3".
// DifficultyIndex orders categories and weights averages; an index of
// zero means the category carries no usable difficulty.
type RouteCategory struct {
	ID              string
	GymID           string
	Name            string
	DifficultyIndex int
	Notes           string
}

// SessionRoute holds the per-category counts recorded during one
// session: distinct routes completed, distinct routes attempted, and
// extra tries beyond the first attempt per route.
type SessionRoute struct {
	RouteCategoryID       string
	UniqueRoutesCompleted int
	UniqueRoutesAttempted int
	AdditionalAttempts    int
}

// Session is one climbing visit on a calendar date. Date is a bare
// ISO date string (no time component); Gym is nil when the session
// was logged without a gym.
type Session struct {
	ID     string
	Date   string
	Notes  string
	Gym    *Gym
	Routes []SessionRoute
}

// GymName returns the session's gym display name, or a placeholder
// when no gym descriptor is attached.
func (s *Session) GymName() string {
	if s.Gym == nil {
		return "Unknown Gym"
	}

	return s.Gym.DisplayName()
}
