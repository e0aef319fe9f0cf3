package ports

import (
	"context"

	"github.com/teamboard/project-system/internal/core/domain"
)

// ClientRepository defines persistence operations for clients.
type ClientRepository interface {
	Create(ctx context.Context, client *domain.Client) (*domain.Client, error)
	FindByID(ctx context.Context, id string) (*domain.Client, error)
	FindByName(ctx context.Context, name string) (*domain.Client, error)
	FindByIDs(ctx context.Context, ids []string) ([]domain.Client, error)
	// List returns a page of clients ordered by creation time, newest first.
	List(ctx context.Context, page, limit int) ([]domain.Client, int64, error)
	// Search filters by case-insensitive name substring; an empty query
	// returns the unfiltered set.
	Search(ctx context.Context, query string, page, limit int) ([]domain.Client, int64, error)
}
