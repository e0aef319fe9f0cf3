package ports

import (
	"context"
	"time"
)

// CreateProjectInput carries all data needed to create a project.
type CreateProjectInput struct {
	Name        string
	Description string
	ClientID    string
	StartDate   *time.Time
	EndDate     *time.Time
	Budget      *float64
	MemberIDs   []string
}

// UpdateProjectInput carries a partial project update. nil fields are left
// unchanged; a non-empty MemberIDs fully replaces the member set.
type UpdateProjectInput struct {
	Name        *string
	Description *string
	ClientID    *string
	StartDate   *time.Time
	EndDate     *time.Time
	Budget      *float64
	MemberIDs   []string
}

// ListProjectsInput carries the parameters of the plain project listing.
type ListProjectsInput struct {
	Page   int
	Limit  int
	Search string
}

// ProgressQueryInput carries the parameters of the progress-enriched listing.
type ProgressQueryInput struct {
	Page       int
	Limit      int
	Search     string
	AssigneeID string
	ClientID   string
	Status     string
}

// ProjectPage is a page of project views plus pagination meta.
type ProjectPage struct {
	Data []ProjectView `json:"data"`
	Meta PageMeta      `json:"meta"`
}

// ProjectProgressView enriches a project view with derived task metrics.
// Progress is recomputed on every read and never persisted.
type ProjectProgressView struct {
	ProjectView
	Progress       int        `json:"progress"`
	TotalTasks     int        `json:"totalTasks"`
	CompletedTasks int        `json:"completedTasks"`
	PendingTasks   int        `json:"pendingTasks"`
	Tasks          []TaskView `json:"tasks"`
}

// ProjectProgressPage is a page of progress-enriched projects.
type ProjectProgressPage struct {
	Data []ProjectProgressView `json:"data"`
	Meta PageMeta              `json:"meta"`
}

// ProjectDetail is the full single-project view: client, members, and tasks
// with assignees, creator, and comments.
type ProjectDetail struct {
	ProjectView
	Tasks []TaskView `json:"tasks"`
}

// UserProjectSummary is one entry of a user's own project listing, including
// how many of the project's tasks are assigned to them.
type UserProjectSummary struct {
	ID                string      `json:"id"`
	Name              string      `json:"name"`
	Description       string      `json:"description,omitempty"`
	Code              string      `json:"code"`
	Status            string      `json:"status"`
	StartDate         *time.Time  `json:"startDate,omitempty"`
	EndDate           *time.Time  `json:"endDate,omitempty"`
	Client            *ClientView `json:"client,omitempty"`
	AssignedTaskCount int64       `json:"assignedTaskCount"`
}

// ProjectService defines the project lifecycle and query use cases.
type ProjectService interface {
	// Create creates a project on behalf of userID. Only admins may create
	// projects; the creator always ends up in the member set.
	Create(ctx context.Context, userID string, in CreateProjectInput) (*ProjectView, error)
	// Update applies a partial update. Admin only; the project must exist.
	Update(ctx context.Context, userID, projectID string, in UpdateProjectInput) (*ProjectView, error)
	// Delete removes the project, its tasks, and their comments
	// transactionally. Admin only.
	Delete(ctx context.Context, userID, projectID string) error
	// Get returns the full project detail or ErrProjectNotFound.
	Get(ctx context.Context, projectID string) (*ProjectDetail, error)
	// List returns a paginated project listing; search matches name,
	// description, or code.
	List(ctx context.Context, in ListProjectsInput) (*ProjectPage, error)
	// ListWithProgress returns a paginated, filtered listing enriched with
	// recomputed progress metrics.
	ListWithProgress(ctx context.Context, in ProgressQueryInput) (*ProjectProgressPage, error)
	// UserProjects lists the projects userID belongs to. Callers may only
	// fetch their own: callerID must equal userID.
	UserProjects(ctx context.Context, callerID, userID string) ([]UserProjectSummary, error)
}
