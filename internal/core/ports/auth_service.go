package ports

import (
	"context"

	"github.com/nutritrack/foodlog-api/internal/core/domain"
)

// RegisterInput carries the signup fields.
type RegisterInput struct {
	Username string
	Email    string
	Password string
}

// LoginResult is returned on successful login.
type LoginResult struct {
	Token    string
	Username string
}

// AuthService implements identity lifecycle: signup, login, profile reads and
// updates, and password changes.
type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*domain.User, error)
	Login(ctx context.Context, email, password string) (*LoginResult, error)
	Profile(ctx context.Context, userID string) (*domain.User, error)
	UpdateProfile(ctx context.Context, userID, displayName string) (*domain.User, error)
	ChangePassword(ctx context.Context, userID, oldPassword, newPassword string) error
}
