package auth

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/sulthanallaudeen/priya-task/internal/database/models"
	"github.com/sulthanallaudeen/priya-task/pkg/crypto"
	"gorm.io/gorm"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailTaken         = errors.New("email is already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInactiveUser       = errors.New("user is inactive")
	ErrSessionNotFound    = errors.New("session not found")
	ErrSessionExpired     = errors.New("session has expired")
)

type Service struct {
	db         *gorm.DB
	sessionTTL time.Duration
	now        func() time.Time
}

func NewService(db *gorm.DB, sessionTTL time.Duration) *Service {
	return &Service{db: db, sessionTTL: sessionTTL, now: time.Now}
}

type RegisterInput struct {
	FullName string
	Email    string // already normalized to lowercase
	Password string
}

type LoginInput struct {
	Email    string
	Password string
}

// AuthResponse carries the raw session token. The token is never persisted;
// only its hash is, so this is the one place it is ever visible.
type AuthResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expires_at"`
	User      *models.User `json:"user"`
}

func (s *Service) Register(ctx context.Context, input RegisterInput) (*AuthResponse, error) {
	hash, err := crypto.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	user := models.User{
		FullName:     input.FullName,
		Email:        input.Email,
		PasswordHash: hash,
		Role:         models.RoleUser,
		IsActive:     true,
	}

	// Transaction: the duplicate check and the insert must be one unit;
	// the unique index on email backstops concurrent registrations.
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.User
		if err := tx.Where("email = ?", input.Email).First(&existing).Error; err == nil {
			return ErrEmailTaken
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		return tx.Create(&user).Error
	})
	if err != nil {
		return nil, err
	}

	return s.IssueSession(ctx, &user)
}

func (s *Service) Login(ctx context.Context, input LoginInput) (*AuthResponse, error) {
	var user models.User
	if err := s.db.WithContext(ctx).
		Where("email = ?", input.Email).
		First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !crypto.VerifyPassword(input.Password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	if !user.IsActive {
		return nil, ErrInactiveUser
	}

	return s.IssueSession(ctx, &user)
}

// IssueSession generates a fresh token, persists only its hash and returns
// the raw token to the caller exactly once.
func (s *Service) IssueSession(ctx context.Context, user *models.User) (*AuthResponse, error) {
	raw, err := crypto.GenerateToken()
	if err != nil {
		return nil, err
	}

	session := models.Session{
		UserID:    user.ID,
		TokenHash: crypto.HashToken(raw),
		ExpiresAt: s.now().Add(s.sessionTTL),
	}
	if err := s.db.WithContext(ctx).Create(&session).Error; err != nil {
		return nil, err
	}

	return &AuthResponse{
		Token:     raw,
		ExpiresAt: session.ExpiresAt,
		User:      user,
	}, nil
}

// ResolveSession maps a presented raw token to its user. The failure modes
// stay distinguishable so the transport can map them to 401 vs 403.
func (s *Service) ResolveSession(ctx context.Context, rawToken string) (*models.User, error) {
	var session models.Session
	if err := s.db.WithContext(ctx).
		Preload("User").
		Where("token_hash = ?", crypto.HashToken(rawToken)).
		First(&session).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}

	if session.User == nil || !session.User.IsActive {
		return nil, ErrInactiveUser
	}

	if session.Expired(s.now()) {
		return nil, ErrSessionExpired
	}

	return session.User, nil
}

// RevokeSession deletes the matching session. Revoking an unknown token is
// not an error.
func (s *Service) RevokeSession(ctx context.Context, rawToken string) error {
	return s.db.WithContext(ctx).
		Where("token_hash = ?", crypto.HashToken(rawToken)).
		Delete(&models.Session{}).Error
}

// ReapExpiredSessions removes all sessions past expiry. Callers invoke it
// opportunistically; there is no background scheduler.
func (s *Service) ReapExpiredSessions(ctx context.Context) error {
	return s.db.WithContext(ctx).
		Where("expires_at < ?", s.now()).
		Delete(&models.Session{}).Error
}

func (s *Service) GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}
