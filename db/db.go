package db

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/alb0rt/send-trend/model"
	"github.com/google/uuid"

	_ "github.com/mattn/go-sqlite3"
)

// ErrNotFound is returned when a looked-up row does not exist.
var ErrNotFound = errors.New("not found")

type SQLiteStorage struct {
	db *sql.DB
}

func NewStorage(db *sql.DB) *SQLiteStorage {
	return &SQLiteStorage{db}
}

// InitDbStorage creates the schema if it does not exist yet.
func InitDbStorage(db *sql.DB) error {
	statements := []string{
		`create table if not exists gyms(
			id text primary key,
			name text not null,
			location text not null default '')`,
		`create table if not exists route_categories(
			id text primary key,
			gym_id text not null,
			name text not null,
			difficulty_index int not null default 0,
			notes text not null default '')`,
		`create table if not exists climbing_sessions(
			id text primary key,
			gym_id text,
			date text not null,
			notes text not null default '')`,
		`create index if not exists climbing_sessions_dateix on climbing_sessions (date ASC)`,
		`create table if not exists session_routes(
			session_id text not null,
			route_category_id text not null,
			unique_routes_completed int not null default 0,
			unique_routes_attempted int not null default 0,
			additional_attempts int not null default 0,
			primary key(session_id, route_category_id))`,
	}

	for _, stmt := range statements {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("could not init schema: %q: %w", stmt, err)
		}
	}

	return nil
}

// ConnectDB opens (or creates) a sqlite file and makes sure the
// schema exists.
func ConnectDB(path string) (*SQLiteStorage, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("could not open sqlite file %s: %w", path, err)
	}

	if err := InitDbStorage(db); err != nil {
		return nil, err
	}

	return &SQLiteStorage{db}, nil
}

func (s *SQLiteStorage) CreateGym(name, location string) (*model.Gym, error) {
	gym := model.Gym{ID: uuid.NewString(), Name: name, Location: location}

	_, err := s.db.Exec(`insert into gyms(id, name, location) values(?, ?, ?)`,
		gym.ID, gym.Name, gym.Location)
	if err != nil {
		return nil, fmt.Errorf("could not create gym: %w", err)
	}

	return &gym, nil
}

func (s *SQLiteStorage) Gyms() ([]model.Gym, error) {
	rows, err := s.db.Query(`select id, name, location from gyms order by name`)
	if err != nil {
		return nil, fmt.Errorf("could not list gyms: %w", err)
	}
	defer rows.Close()

	result := make([]model.Gym, 0)

	for rows.Next() {
		var gym model.Gym
		if err := rows.Scan(&gym.ID, &gym.Name, &gym.Location); err != nil {
			return nil, err
		}

		result = append(result, gym)
	}

	return result, rows.Err()
}

func (s *SQLiteStorage) CreateCategory(gymID, name string, difficultyIndex int, notes string) (*model.RouteCategory, error) {
	category := model.RouteCategory{
		ID:              uuid.NewString(),
		GymID:           gymID,
		Name:            name,
		DifficultyIndex: difficultyIndex,
		Notes:           notes,
	}

	_, err := s.db.Exec(
		`insert into route_categories(id, gym_id, name, difficulty_index, notes) values(?, ?, ?, ?, ?)`,
		category.ID, category.GymID, category.Name, category.DifficultyIndex, category.Notes)
	if err != nil {
		return nil, fmt.Errorf("could not create route category: %w", err)
	}

	return &category, nil
}

func (s *SQLiteStorage) Categories() ([]model.RouteCategory, error) {
	rows, err := s.db.Query(
		`select id, gym_id, name, difficulty_index, notes
		from route_categories
		order by difficulty_index, name`)
	if err != nil {
		return nil, fmt.Errorf("could not list route categories: %w", err)
	}
	defer rows.Close()

	result := make([]model.RouteCategory, 0)

	for rows.Next() {
		var category model.RouteCategory
		if err := rows.Scan(&category.ID, &category.GymID, &category.Name, &category.DifficultyIndex, &category.Notes); err != nil {
			return nil, err
		}

		result = append(result, category)
	}

	return result, rows.Err()
}

func (s *SQLiteStorage) CreateSession(date, gymID, notes string) (*model.Session, error) {
	session := model.Session{ID: uuid.NewString(), Date: date, Notes: notes}

	gymValue := sql.NullString{String: gymID, Valid: gymID != ""}

	_, err := s.db.Exec(`insert into climbing_sessions(id, gym_id, date, notes) values(?, ?, ?, ?)`,
		session.ID, gymValue, session.Date, session.Notes)
	if err != nil {
		return nil, fmt.Errorf("could not create session: %w", err)
	}

	return s.SessionByID(session.ID)
}

func (s *SQLiteStorage) SessionByID(id string) (*model.Session, error) {
	row := s.db.QueryRow(
		`select s.id, s.date, s.notes, g.id, g.name, g.location
		from climbing_sessions s
		left join gyms g on g.id = s.gym_id
		where s.id = ?`, id)

	session, err := scanSession(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("session %s: %w", id, ErrNotFound)
	}

	if err != nil {
		return nil, fmt.Errorf("could not load session %s: %w", id, err)
	}

	if err := s.attachRoutes([]*model.Session{session}); err != nil {
		return nil, err
	}

	return session, nil
}

func (s *SQLiteStorage) SessionsSince(date string) ([]model.Session, error) {
	rows, err := s.db.Query(
		`select s.id, s.date, s.notes, g.id, g.name, g.location
		from climbing_sessions s
		left join gyms g on g.id = s.gym_id
		where s.date >= ?
		order by s.date, s.id`, date)
	if err != nil {
		return nil, fmt.Errorf("could not query sessions since %s: %w", date, err)
	}

	return s.collectSessions(rows)
}

func (s *SQLiteStorage) RecentSessions(limit int) ([]model.Session, error) {
	rows, err := s.db.Query(
		`select s.id, s.date, s.notes, g.id, g.name, g.location
		from climbing_sessions s
		left join gyms g on g.id = s.gym_id
		order by s.date desc, s.id
		limit ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("could not query recent sessions: %w", err)
	}

	return s.collectSessions(rows)
}

func (s *SQLiteStorage) collectSessions(rows *sql.Rows) ([]model.Session, error) {
	defer rows.Close()

	sessions := make([]*model.Session, 0)

	for rows.Next() {
		session, err := scanSession(rows.Scan)
		if err != nil {
			return nil, err
		}

		sessions = append(sessions, session)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := s.attachRoutes(sessions); err != nil {
		return nil, err
	}

	result := make([]model.Session, 0, len(sessions))
	for _, session := range sessions {
		result = append(result, *session)
	}

	return result, nil
}

// scanSession reads one session row with its left-joined gym columns.
func scanSession(scan func(...any) error) (*model.Session, error) {
	var session model.Session

	var gymID, gymName, gymLocation sql.NullString

	if err := scan(&session.ID, &session.Date, &session.Notes, &gymID, &gymName, &gymLocation); err != nil {
		return nil, err
	}

	if gymID.Valid {
		session.Gym = &model.Gym{ID: gymID.String, Name: gymName.String, Location: gymLocation.String}
	}

	return &session, nil
}

// attachRoutes loads session_routes rows for the given sessions in a
// single query.
func (s *SQLiteStorage) attachRoutes(sessions []*model.Session) error {
	if len(sessions) == 0 {
		return nil
	}

	bySessionID := make(map[string]*model.Session, len(sessions))
	placeholders := make([]string, 0, len(sessions))
	args := make([]any, 0, len(sessions))

	for _, session := range sessions {
		session.Routes = make([]model.SessionRoute, 0)
		bySessionID[session.ID] = session
		placeholders = append(placeholders, "?")
		args = append(args, session.ID)
	}

	query := fmt.Sprintf(
		`select session_id, route_category_id, unique_routes_completed, unique_routes_attempted, additional_attempts
		from session_routes
		where session_id in (%s)
		order by session_id, route_category_id`,
		strings.Join(placeholders, ", "))

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return fmt.Errorf("could not load session routes: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var sessionID string

		var route model.SessionRoute

		err := rows.Scan(&sessionID, &route.RouteCategoryID,
			&route.UniqueRoutesCompleted, &route.UniqueRoutesAttempted, &route.AdditionalAttempts)
		if err != nil {
			return err
		}

		if session, ok := bySessionID[sessionID]; ok {
			session.Routes = append(session.Routes, route)
		}
	}

	return rows.Err()
}

// counterColumn maps a Counter to its column. Counters arrive from
// request input, so the column name is never interpolated from the
// raw value.
func counterColumn(counter Counter) (string, error) {
	switch counter {
	case CounterCompleted:
		return "unique_routes_completed", nil
	case CounterAttempted:
		return "unique_routes_attempted", nil
	case CounterAdditional:
		return "additional_attempts", nil
	default:
		return "", fmt.Errorf("unknown counter %q", counter)
	}
}

func (s *SQLiteStorage) AdjustRouteCount(sessionID, categoryID string, counter Counter, delta int) error {
	column, err := counterColumn(counter)
	if err != nil {
		return err
	}

	initial := delta
	if initial < 0 {
		initial = 0
	}

	query := fmt.Sprintf(
		`insert into session_routes(session_id, route_category_id, %s) values(?, ?, ?)
		on conflict(session_id, route_category_id)
		do update set %s = max(0, %s + ?)`,
		column, column, column)

	if _, err := s.db.Exec(query, sessionID, categoryID, initial, delta); err != nil {
		return fmt.Errorf("could not adjust %s for session %s: %w", counter, sessionID, err)
	}

	return nil
}

func (s *SQLiteStorage) Close() {
	s.db.Close()
}
