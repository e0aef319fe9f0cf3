package ports

import (
	"context"

	"github.com/teamboard/project-system/internal/core/domain"
)

// RegisterInput carries the fields accepted at registration.
type RegisterInput struct {
	Email       string
	Password    string
	FirstName   string
	LastName    string
	Role        string // empty defaults to USER
	AvatarURL   string
	PhoneNumber string
}

// AuthService implements registration and login.
type AuthService interface {
	// Register creates a user and returns it together with a signed token.
	Register(ctx context.Context, in RegisterInput) (*domain.User, string, error)
	// Login verifies credentials and returns a signed token and the user.
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
}
