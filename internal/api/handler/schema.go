package handler

import (
	"time"

	"github.com/teamboard/project-system/internal/core/domain"
)

// Request types owned by the transport layer. They are intentionally separate
// from ports/domain types so the JSON contract is not coupled to internal
// service changes.

type registerRequest struct {
	Email       string `json:"email"       validate:"required,email"`
	Password    string `json:"password"    validate:"required,min=6"`
	FirstName   string `json:"firstName"   validate:"required"`
	LastName    string `json:"lastName"    validate:"required"`
	Role        string `json:"role"        validate:"omitempty,oneof=ADMIN USER MANAGER CONSULTANT"`
	AvatarURL   string `json:"avatarUrl"`
	PhoneNumber string `json:"phoneNumber"`
}

type signinRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type authResponse struct {
	Token string       `json:"token,omitempty"`
	User  *domain.User `json:"user,omitempty"`
}

type createClientRequest struct {
	Name    string `json:"name"    validate:"required"`
	Email   string `json:"email"   validate:"omitempty,email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

type createProjectRequest struct {
	Name        string     `json:"name"        validate:"required"`
	Description string     `json:"description"`
	ClientID    string     `json:"clientId"    validate:"required"`
	StartDate   *time.Time `json:"startDate"`
	EndDate     *time.Time `json:"endDate"`
	Budget      *float64   `json:"budget"      validate:"omitempty,gt=0"`
	MemberIDs   []string   `json:"memberIds"`
}

type updateProjectRequest struct {
	Name        *string    `json:"name"`
	Description *string    `json:"description"`
	ClientID    *string    `json:"clientId"`
	StartDate   *time.Time `json:"startDate"`
	EndDate     *time.Time `json:"endDate"`
	Budget      *float64   `json:"budget" validate:"omitempty,gt=0"`
	MemberIDs   []string   `json:"memberIds"`
}

type createTaskRequest struct {
	Title        string     `json:"title"    validate:"required"`
	Description  string     `json:"description"`
	Status       string     `json:"status"   validate:"omitempty,oneof=TODO IN_PROGRESS REVIEW DONE"`
	Priority     int        `json:"priority" validate:"omitempty,min=1,max=3"`
	DueDate      *time.Time `json:"dueDate"`
	ParentTaskID string     `json:"parentTaskId"`
	AssigneeIDs  []string   `json:"assigneeIds"`
}

type updateTaskRequest struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	Status      *string    `json:"status"   validate:"omitempty,oneof=TODO IN_PROGRESS REVIEW DONE"`
	Priority    *int       `json:"priority" validate:"omitempty,min=1,max=3"`
	DueDate     *time.Time `json:"dueDate"`
	AssigneeIDs []string   `json:"assigneeIds"`
}

type createCommentRequest struct {
	TaskID  string `json:"taskId"  validate:"required"`
	Content string `json:"content" validate:"required"`
}

type updateCommentRequest struct {
	Content string `json:"content" validate:"required"`
}
