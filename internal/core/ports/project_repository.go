package ports

import (
	"context"

	"github.com/teamboard/project-system/internal/core/domain"
)

// ProjectFilter carries the query parameters for listing projects.
// Conditions are combined conjunctively.
type ProjectFilter struct {
	// Search is a case-insensitive substring matched against name and
	// description, and against code when SearchCode is set.
	Search     string
	SearchCode bool
	ClientID   string
	// IDs restricts the result to the given project ids. nil means no
	// restriction; an empty non-nil slice matches nothing.
	IDs []string
	// SortByUpdated orders by updated_at descending instead of the default
	// created_at descending.
	SortByUpdated bool
	Page          int
	Limit         int
}

// ProjectRepository defines persistence operations for projects.
type ProjectRepository interface {
	Create(ctx context.Context, p *domain.Project) (*domain.Project, error)
	FindByID(ctx context.Context, id string) (*domain.Project, error)
	FindByCode(ctx context.Context, code string) (*domain.Project, error)
	// Update replaces the stored document. Last write wins: no version check
	// is performed.
	Update(ctx context.Context, p *domain.Project) error
	// DeleteCascade removes the project's tasks' comments, then its tasks,
	// then the project itself, inside a single transaction. Either all three
	// deletions happen or none do.
	DeleteCascade(ctx context.Context, projectID string) error
	// List returns a page of projects matching filter and the total count.
	List(ctx context.Context, filter ProjectFilter) ([]domain.Project, int64, error)
	// ListByMember returns every project the user is a member of, newest first.
	ListByMember(ctx context.Context, userID string) ([]domain.Project, error)
	// ListByMembers returns every project having at least one of the users as
	// a member; callers distribute them per user.
	ListByMembers(ctx context.Context, userIDs []string) ([]domain.Project, error)
}
