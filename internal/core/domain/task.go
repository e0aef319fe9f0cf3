package domain

import (
	"fmt"
	"time"
)

// TaskStatus is the workflow state of a task. The workflow is fixed:
// TODO → IN_PROGRESS → REVIEW → DONE, though any status may be set directly.
type TaskStatus string

const (
	TaskTodo       TaskStatus = "TODO"
	TaskInProgress TaskStatus = "IN_PROGRESS"
	TaskReview     TaskStatus = "REVIEW"
	TaskDone       TaskStatus = "DONE"
)

// TaskStatuses lists every valid status, in workflow order.
var TaskStatuses = []TaskStatus{TaskTodo, TaskInProgress, TaskReview, TaskDone}

// ParseTaskStatus validates a status string. The error names the allowed set
// so it can be surfaced to API callers verbatim.
func ParseTaskStatus(s string) (TaskStatus, error) {
	for _, ts := range TaskStatuses {
		if TaskStatus(s) == ts {
			return ts, nil
		}
	}
	return "", fmt.Errorf("%w: invalid status %q, must be one of: TODO, IN_PROGRESS, REVIEW, DONE", ErrInvalidInput, s)
}

// Task priorities span 1 (high) to 3 (low); 2 is the default.
const (
	PriorityMin     = 1
	PriorityDefault = 2
	PriorityMax     = 3
)

// Task is a unit of work inside a project. Assignees must be project members;
// a parent task must belong to the same project.
type Task struct {
	ID           string     `json:"id" bson:"_id,omitempty"`
	Title        string     `json:"title" bson:"title"`
	Description  string     `json:"description,omitempty" bson:"description,omitempty"`
	Status       TaskStatus `json:"status" bson:"status"`
	Priority     int        `json:"priority" bson:"priority"`
	DueDate      *time.Time `json:"due_date,omitempty" bson:"due_date,omitempty"`
	ProjectID    string     `json:"project_id" bson:"project_id"`
	CreatedByID  string     `json:"created_by_id" bson:"created_by_id"`
	ParentTaskID string     `json:"parent_task_id,omitempty" bson:"parent_task_id,omitempty"`
	AssigneeIDs  []string   `json:"assignee_ids" bson:"assignee_ids"`
	CreatedAt    time.Time  `json:"created_at" bson:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at" bson:"updated_at"`
}

// HasAssignee reports whether the user is assigned to the task.
func (t Task) HasAssignee(userID string) bool {
	for _, id := range t.AssigneeIDs {
		if id == userID {
			return true
		}
	}
	return false
}

// CanComment reports whether the user may read and write comments on the
// task: any member of the task's project, or any assignee of the task.
func (t Task) CanComment(project Project, userID string) bool {
	return project.HasMember(userID) || t.HasAssignee(userID)
}
