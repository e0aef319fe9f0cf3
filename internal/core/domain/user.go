package domain

import "time"

// Role is the platform-wide role of a user. Roles are a flat enum compared by
// equality, not a hierarchy.
type Role string

const (
	RoleAdmin      Role = "ADMIN"
	RoleUser       Role = "USER"
	RoleManager    Role = "MANAGER"
	RoleConsultant Role = "CONSULTANT"
)

// ParseRole validates a role string. An empty string defaults to RoleUser.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleAdmin, RoleUser, RoleManager, RoleConsultant:
		return Role(s), nil
	case "":
		return RoleUser, nil
	}
	return "", ErrInvalidRole
}

// User models a platform member.
type User struct {
	ID           string    `json:"id" bson:"_id,omitempty"`
	Email        string    `json:"email" bson:"email"`
	PasswordHash string    `json:"-" bson:"password_hash"`
	FirstName    string    `json:"first_name" bson:"first_name"`
	LastName     string    `json:"last_name" bson:"last_name"`
	Role         Role      `json:"role" bson:"role"`
	AvatarURL    string    `json:"avatar_url,omitempty" bson:"avatar_url,omitempty"`
	PhoneNumber  string    `json:"phone_number,omitempty" bson:"phone_number,omitempty"`
	CreatedAt    time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" bson:"updated_at"`
}

// CanManageProjects reports whether the user may create, update, or delete
// projects and clients. Only admins can.
func (u User) CanManageProjects() bool {
	return u.Role == RoleAdmin
}
