package services

import (
	"errors"
	"fmt"
	"sync"

	"github.com/buildseason/roadmap-api/internal/identity"
	"github.com/buildseason/roadmap-api/internal/models"
	"github.com/buildseason/roadmap-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrUserNotFound = errors.New("user not found")
)

// SessionEventType distinguishes session transitions.
type SessionEventType string

const (
	SessionLogin  SessionEventType = "login"
	SessionLogout SessionEventType = "logout"
)

// SessionEvent is published once per session transition.
type SessionEvent struct {
	Type   SessionEventType
	UserID string
	Email  string
}

// AuthService handles login synchronization and session change notification.
type AuthService struct {
	userRepo repository.UserRepository

	mu          sync.Mutex
	nextSubID   int
	subscribers map[int]func(SessionEvent)
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repository.UserRepository) *AuthService {
	return &AuthService{
		userRepo:    userRepo,
		subscribers: make(map[int]func(SessionEvent)),
	}
}

// SyncOnLogin returns the user record for an identity, creating it on first
// login with the student role and no team. An existing record is returned
// unchanged; this path never promotes or demotes anyone.
func (s *AuthService) SyncOnLogin(ident *identity.Identity) (*models.User, error) {
	user, err := s.userRepo.FindByID(ident.UID)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	user = &models.User{
		ID:          ident.UID,
		DisplayName: ident.DisplayName,
		Email:       ident.Email,
		PhotoURL:    ident.PhotoURL,
		Role:        models.RoleStudent,
		TeamID:      nil,
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return user, nil
}

// GetUser retrieves a user by ID.
func (s *AuthService) GetUser(id string) (*models.User, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return user, nil
}

// Subscribe registers a handler for session transitions and returns an
// unsubscribe func. Handlers run synchronously on the publishing goroutine.
func (s *AuthService) Subscribe(fn func(SessionEvent)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextSubID
	s.nextSubID++
	s.subscribers[id] = fn

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subscribers, id)
	}
}

// Publish notifies every subscriber of a session transition.
func (s *AuthService) Publish(event SessionEvent) {
	s.mu.Lock()
	handlers := make([]func(SessionEvent), 0, len(s.subscribers))
	for _, fn := range s.subscribers {
		handlers = append(handlers, fn)
	}
	s.mu.Unlock()

	for _, fn := range handlers {
		fn(event)
	}
}
