package ports

import (
	"time"

	"github.com/teamboard/project-system/internal/core/domain"
)

// View types returned by the service layer. They are the eagerly-loaded
// shapes the API serializes: related entities are embedded, never lazily
// resolved by the transport layer.

// MemberView is the slim user representation embedded in project and task
// views. It never carries the password hash.
type MemberView struct {
	ID        string      `json:"id"`
	FirstName string      `json:"firstName"`
	LastName  string      `json:"lastName"`
	Email     string      `json:"email"`
	Role      domain.Role `json:"role,omitempty"`
}

// NewMemberView maps a user to its embedded representation.
func NewMemberView(u domain.User) MemberView {
	return MemberView{ID: u.ID, FirstName: u.FirstName, LastName: u.LastName, Email: u.Email, Role: u.Role}
}

// ClientView is the slim client representation embedded in project views.
type ClientView struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
}

// ProjectRef is the minimal project reference embedded in task views.
type ProjectRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Code string `json:"code,omitempty"`
}

// ProjectView is a project with its client and members eagerly loaded.
type ProjectView struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Code        string       `json:"code"`
	Description string       `json:"description,omitempty"`
	Status      string       `json:"status"`
	StartDate   *time.Time   `json:"startDate,omitempty"`
	EndDate     *time.Time   `json:"endDate,omitempty"`
	Budget      *float64     `json:"budget,omitempty"`
	Client      *ClientView  `json:"client,omitempty"`
	Members     []MemberView `json:"members"`
	CreatedAt   time.Time    `json:"createdAt"`
	UpdatedAt   time.Time    `json:"updatedAt"`
}

// TaskView is a task with its assignees, creator, and project reference
// eagerly loaded. Comments are only populated in project detail views.
type TaskView struct {
	ID           string            `json:"id"`
	Title        string            `json:"title"`
	Description  string            `json:"description,omitempty"`
	Status       domain.TaskStatus `json:"status"`
	Priority     int               `json:"priority"`
	DueDate      *time.Time        `json:"dueDate,omitempty"`
	ParentTaskID string            `json:"parentTaskId,omitempty"`
	Project      *ProjectRef       `json:"project,omitempty"`
	Assignees    []MemberView      `json:"assignees"`
	CreatedBy    *MemberView       `json:"createdBy,omitempty"`
	Comments     []CommentView     `json:"comments,omitempty"`
	CreatedAt    time.Time         `json:"createdAt"`
	UpdatedAt    time.Time         `json:"updatedAt"`
}

// CommentView is a comment with its author eagerly loaded.
type CommentView struct {
	ID        string     `json:"id"`
	TaskID    string     `json:"taskId"`
	Content   string     `json:"content"`
	Author    MemberView `json:"user"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}
