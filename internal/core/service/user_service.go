package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/teamboard/project-system/internal/core/domain"
	"github.com/teamboard/project-system/internal/core/ports"
)

// UserService implements the user and client directory.
type UserService struct {
	users    ports.UserRepository
	clients  ports.ClientRepository
	projects ports.ProjectRepository
	logger   zerolog.Logger
}

func NewUserService(
	users ports.UserRepository,
	clients ports.ClientRepository,
	projects ports.ProjectRepository,
	logger zerolog.Logger,
) *UserService {
	return &UserService{users: users, clients: clients, projects: projects, logger: logger}
}

// Me returns the caller's own profile.
func (s *UserService) Me(ctx context.Context, userID string) (*domain.User, error) {
	return s.users.FindByID(ctx, userID)
}

// ListUsers returns a page of users, newest first.
func (s *UserService) ListUsers(ctx context.Context, page, limit int) (*ports.UserPage, error) {
	page, limit = ports.NormalizePage(page, limit)
	users, total, err := s.users.List(ctx, page, limit)
	if err != nil {
		return nil, err
	}
	return &ports.UserPage{Data: users, Meta: ports.NewPageMeta(total, page, limit)}, nil
}

// UsersWithProjects returns a page of users, each with summaries of the
// projects they are a member of.
func (s *UserService) UsersWithProjects(ctx context.Context, page, limit int) (*ports.UsersWithProjectsPage, error) {
	page, limit = ports.NormalizePage(page, limit)
	users, total, err := s.users.List(ctx, page, limit)
	if err != nil {
		return nil, err
	}

	userIDs := make([]string, 0, len(users))
	for _, u := range users {
		userIDs = append(userIDs, u.ID)
	}
	projects, err := s.projects.ListByMembers(ctx, userIDs)
	if err != nil {
		return nil, err
	}

	data := make([]ports.UserProjectsView, 0, len(users))
	for _, u := range users {
		refs := []ports.ProjectRef{}
		for _, p := range projects {
			if p.HasMember(u.ID) {
				refs = append(refs, ports.ProjectRef{ID: p.ID, Name: p.Name, Code: p.Code})
			}
		}
		data = append(data, ports.UserProjectsView{User: u, Projects: refs})
	}
	return &ports.UsersWithProjectsPage{Data: data, Meta: ports.NewPageMeta(total, page, limit)}, nil
}

// ListClients returns a page of clients, newest first.
func (s *UserService) ListClients(ctx context.Context, page, limit int) (*ports.ClientPage, error) {
	page, limit = ports.NormalizePage(page, limit)
	clients, total, err := s.clients.List(ctx, page, limit)
	if err != nil {
		return nil, err
	}
	return &ports.ClientPage{Data: clients, Meta: ports.NewPageMeta(total, page, limit)}, nil
}

// SearchClients filters clients by case-insensitive name substring.
func (s *UserService) SearchClients(ctx context.Context, query string, page, limit int) (*ports.ClientPage, error) {
	page, limit = ports.NormalizePage(page, limit)
	clients, total, err := s.clients.Search(ctx, query, page, limit)
	if err != nil {
		return nil, err
	}
	return &ports.ClientPage{Data: clients, Meta: ports.NewPageMeta(total, page, limit)}, nil
}

// CreateClient registers a client organization. Client names are a unique
// business key.
func (s *UserService) CreateClient(ctx context.Context, in ports.CreateClientInput) (*domain.Client, error) {
	if _, err := s.clients.FindByName(ctx, in.Name); err == nil {
		return nil, domain.ErrClientExists
	} else if !errors.Is(err, domain.ErrClientNotFound) {
		return nil, err
	}

	created, err := s.clients.Create(ctx, &domain.Client{
		Name:      in.Name,
		Email:     in.Email,
		Phone:     in.Phone,
		Address:   in.Address,
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("client_id", created.ID).Str("name", created.Name).Msg("client created")
	return created, nil
}
