package ports

import (
	"context"

	"github.com/nutritrack/foodlog-api/internal/core/domain"
)

// UserRepository defines persistence for user accounts. Uniqueness of email
// and username is enforced by the store.
type UserRepository interface {
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	Insert(ctx context.Context, user *domain.User) (*domain.User, error)
	// UpdateFields applies a partial update ($set semantics) to the user.
	UpdateFields(ctx context.Context, id string, patch map[string]any) error
}
