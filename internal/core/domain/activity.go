package domain

import "time"

// ActivityType identifies what kind of mutation an activity entry records.
type ActivityType string

const (
	ActivityTaskCreated  ActivityType = "task_created"
	ActivityTaskUpdated  ActivityType = "task_updated"
	ActivityTaskDeleted  ActivityType = "task_deleted"
	ActivityCommentAdded ActivityType = "comment_added"
)

// Activity is an audit-trail entry for a project. Entries are written
// asynchronously by the activity dispatcher; per-project ordering is
// preserved by the dispatcher's sharding.
type Activity struct {
	ID         string       `json:"id" bson:"_id,omitempty"`
	ProjectID  string       `json:"project_id" bson:"project_id"`
	TaskID     string       `json:"task_id,omitempty" bson:"task_id,omitempty"`
	ActorID    string       `json:"actor_id" bson:"actor_id"`
	Type       ActivityType `json:"type" bson:"type"`
	Detail     string       `json:"detail,omitempty" bson:"detail,omitempty"`
	OccurredAt time.Time    `json:"occurred_at" bson:"occurred_at"`
}
