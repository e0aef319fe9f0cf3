package domain

import "time"

// Comment is a note attached to a task by a user.
type Comment struct {
	ID        string    `json:"id" bson:"_id,omitempty"`
	TaskID    string    `json:"task_id" bson:"task_id"`
	UserID    string    `json:"user_id" bson:"user_id"`
	Content   string    `json:"content" bson:"content"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}

// CanModify reports whether the user may edit or delete the comment: the
// author, any member of the task's project, or any assignee of the task.
func (c Comment) CanModify(userID string, project Project, task Task) bool {
	return c.UserID == userID || project.HasMember(userID) || task.HasAssignee(userID)
}
