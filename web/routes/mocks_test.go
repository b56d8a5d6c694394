package routes_test

import (
	"fmt"
	"time"

	"github.com/alb0rt/send-trend/db"
	"github.com/alb0rt/send-trend/model"
	"github.com/alb0rt/send-trend/web/routes"
)

// adjustment records one AdjustRouteCount call.
type adjustment struct {
	SessionID  string
	CategoryID string
	Counter    db.Counter
	Delta      int
}

// StorageMock is a simple manual mock implementation of the Storage interface.
type StorageMock struct {
	SessionList  []model.Session
	CategoryList []model.RouteCategory
	GymList      []model.Gym

	ReturnError error

	LastSinceDate string
	Adjustments   []adjustment
	CallCount     int
}

func (m *StorageMock) CreateGym(name, location string) (*model.Gym, error) {
	if m.ReturnError != nil {
		return nil, m.ReturnError
	}

	gym := model.Gym{ID: fmt.Sprintf("gym-%d", len(m.GymList)+1), Name: name, Location: location}
	m.GymList = append(m.GymList, gym)

	return &gym, nil
}

func (m *StorageMock) Gyms() ([]model.Gym, error) {
	return m.GymList, m.ReturnError
}

func (m *StorageMock) CreateCategory(gymID, name string, difficultyIndex int, notes string) (*model.RouteCategory, error) {
	if m.ReturnError != nil {
		return nil, m.ReturnError
	}

	category := model.RouteCategory{
		ID:              fmt.Sprintf("category-%d", len(m.CategoryList)+1),
		GymID:           gymID,
		Name:            name,
		DifficultyIndex: difficultyIndex,
		Notes:           notes,
	}
	m.CategoryList = append(m.CategoryList, category)

	return &category, nil
}

func (m *StorageMock) Categories() ([]model.RouteCategory, error) {
	return m.CategoryList, m.ReturnError
}

func (m *StorageMock) CreateSession(date, gymID, notes string) (*model.Session, error) {
	if m.ReturnError != nil {
		return nil, m.ReturnError
	}

	session := model.Session{ID: fmt.Sprintf("session-%d", len(m.SessionList)+1), Date: date, Notes: notes}
	m.SessionList = append(m.SessionList, session)

	return &session, nil
}

func (m *StorageMock) SessionByID(id string) (*model.Session, error) {
	if m.ReturnError != nil {
		return nil, m.ReturnError
	}

	for i := range m.SessionList {
		if m.SessionList[i].ID == id {
			return &m.SessionList[i], nil
		}
	}

	return nil, fmt.Errorf("session %s: %w", id, db.ErrNotFound)
}

func (m *StorageMock) SessionsSince(date string) ([]model.Session, error) {
	m.CallCount++
	m.LastSinceDate = date

	if m.ReturnError != nil {
		return nil, m.ReturnError
	}

	result := make([]model.Session, 0, len(m.SessionList))

	for _, session := range m.SessionList {
		if session.Date >= date {
			result = append(result, session)
		}
	}

	return result, nil
}

func (m *StorageMock) RecentSessions(limit int) ([]model.Session, error) {
	if m.ReturnError != nil {
		return nil, m.ReturnError
	}

	if len(m.SessionList) > limit {
		return m.SessionList[:limit], nil
	}

	return m.SessionList, nil
}

func (m *StorageMock) AdjustRouteCount(sessionID, categoryID string, counter db.Counter, delta int) error {
	if m.ReturnError != nil {
		return m.ReturnError
	}

	m.Adjustments = append(m.Adjustments, adjustment{sessionID, categoryID, counter, delta})

	return nil
}

func (m *StorageMock) Close() {}

// fixedToday pins handler time to a Wednesday in March 2024.
func fixedToday() time.Time {
	return time.Date(2024, 3, 20, 12, 0, 0, 0, time.UTC)
}

func newMockHandler() (*routes.ServerHandler, *StorageMock) {
	mock := &StorageMock{}
	handler := &routes.ServerHandler{Storage: mock, Now: fixedToday}

	return handler, mock
}
