package ports

import (
	"context"

	"github.com/teamboard/project-system/internal/core/domain"
)

// UserRepository defines persistence operations for users.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	// FindByIDs returns the users matching ids. Missing ids are simply absent
	// from the result; callers compare lengths to detect them.
	FindByIDs(ctx context.Context, ids []string) ([]domain.User, error)
	// List returns a page of users ordered by creation time, newest first,
	// together with the total count.
	List(ctx context.Context, page, limit int) ([]domain.User, int64, error)
}
