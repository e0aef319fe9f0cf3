package ports

import (
	"context"

	"github.com/teamboard/project-system/internal/core/domain"
)

// CreateClientInput carries the fields accepted when registering a client
// organization.
type CreateClientInput struct {
	Name    string
	Email   string
	Phone   string
	Address string
}

// UserPage is a page of users plus pagination meta.
type UserPage struct {
	Data []domain.User `json:"data"`
	Meta PageMeta      `json:"meta"`
}

// ClientPage is a page of clients plus pagination meta.
type ClientPage struct {
	Data []domain.Client `json:"data"`
	Meta PageMeta        `json:"meta"`
}

// UserProjectsView is one entry of the users-with-projects listing.
type UserProjectsView struct {
	User     domain.User  `json:"user"`
	Projects []ProjectRef `json:"projects"`
}

// UsersWithProjectsPage is a page of users each with their project summaries.
type UsersWithProjectsPage struct {
	Data []UserProjectsView `json:"data"`
	Meta PageMeta           `json:"meta"`
}

// UserService defines user and client directory use cases.
type UserService interface {
	// Me returns the caller's own profile.
	Me(ctx context.Context, userID string) (*domain.User, error)
	ListUsers(ctx context.Context, page, limit int) (*UserPage, error)
	// UsersWithProjects lists users together with the projects they belong to.
	UsersWithProjects(ctx context.Context, page, limit int) (*UsersWithProjectsPage, error)
	ListClients(ctx context.Context, page, limit int) (*ClientPage, error)
	SearchClients(ctx context.Context, query string, page, limit int) (*ClientPage, error)
	// CreateClient registers a client organization. Client names are unique.
	CreateClient(ctx context.Context, in CreateClientInput) (*domain.Client, error)
}
