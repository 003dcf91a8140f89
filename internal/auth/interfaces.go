package auth

import (
	"context"

	"github.com/google/uuid"
	"github.com/sulthanallaudeen/priya-task/internal/database/models"
)

// Authenticator defines the credential operations exposed to handlers.
type Authenticator interface {
	Register(ctx context.Context, input RegisterInput) (*AuthResponse, error)
	Login(ctx context.Context, input LoginInput) (*AuthResponse, error)
	GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error)
}

// SessionManager defines the session token lifecycle.
type SessionManager interface {
	IssueSession(ctx context.Context, user *models.User) (*AuthResponse, error)
	ResolveSession(ctx context.Context, rawToken string) (*models.User, error)
	RevokeSession(ctx context.Context, rawToken string) error
	ReapExpiredSessions(ctx context.Context) error
}

// CredentialFlow is what the auth endpoints need: credential checks
// plus the session lifecycle behind them.
type CredentialFlow interface {
	Authenticator
	SessionManager
}

// Compile-time interface satisfaction checks
var (
	_ Authenticator  = (*Service)(nil)
	_ SessionManager = (*Service)(nil)
	_ CredentialFlow = (*Service)(nil)
)
