package ports

import "context"

// CommentService defines the comment use cases. Access rules: commenting and
// listing require project membership or task assignment; modifying a comment
// additionally allows the author.
type CommentService interface {
	Create(ctx context.Context, userID, taskID, content string) (*CommentView, error)
	ListByTask(ctx context.Context, userID, taskID string) ([]CommentView, error)
	Update(ctx context.Context, userID, commentID, content string) (*CommentView, error)
	Delete(ctx context.Context, userID, commentID string) error
}
