package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/teamboard/project-system/internal/core/domain"
	"github.com/teamboard/project-system/internal/core/ports"
)

// CommentService implements the comment use cases. Existence is always
// checked before permission; predicate failures surface as ErrForbidden.
type CommentService struct {
	comments ports.CommentRepository
	tasks    ports.TaskRepository
	projects ports.ProjectRepository
	users    ports.UserRepository
	recorder ports.ActivityRecorder
	logger   zerolog.Logger
}

func NewCommentService(
	comments ports.CommentRepository,
	tasks ports.TaskRepository,
	projects ports.ProjectRepository,
	users ports.UserRepository,
	recorder ports.ActivityRecorder,
	logger zerolog.Logger,
) *CommentService {
	return &CommentService{comments: comments, tasks: tasks, projects: projects, users: users, recorder: recorder, logger: logger}
}

// Create adds a comment to a task. The caller must be a project member or a
// task assignee.
func (s *CommentService) Create(ctx context.Context, userID, taskID, content string) (*ports.CommentView, error) {
	if content == "" {
		return nil, fmt.Errorf("%w: content is required", domain.ErrInvalidInput)
	}

	task, project, err := s.taskWithProject(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if !task.CanComment(*project, userID) {
		return nil, fmt.Errorf("%w: you do not have permission to comment on this task", domain.ErrForbidden)
	}

	now := time.Now().UTC()
	created, err := s.comments.Create(ctx, &domain.Comment{
		TaskID:    taskID,
		UserID:    userID,
		Content:   content,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("comment_id", created.ID).Str("task_id", taskID).Msg("comment created")
	if s.recorder != nil {
		s.recorder.Enqueue(ports.ActivityInput{
			ProjectID: task.ProjectID,
			TaskID:    taskID,
			ActorID:   userID,
			Type:      domain.ActivityCommentAdded,
		})
	}
	return s.commentView(ctx, created)
}

// ListByTask returns the task's comments, newest first. Same visibility rule
// as Create.
func (s *CommentService) ListByTask(ctx context.Context, userID, taskID string) ([]ports.CommentView, error) {
	task, project, err := s.taskWithProject(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if !task.CanComment(*project, userID) {
		return nil, fmt.Errorf("%w: you do not have access to this task", domain.ErrForbidden)
	}

	comments, err := s.comments.ListByTask(ctx, taskID)
	if err != nil {
		return nil, err
	}

	var authorIDs []string
	for _, c := range comments {
		authorIDs = append(authorIDs, c.UserID)
	}
	users, err := s.users.FindByIDs(ctx, dedup(authorIDs))
	if err != nil {
		return nil, err
	}
	byID := make(map[string]domain.User, len(users))
	for _, u := range users {
		byID[u.ID] = u
	}

	views := make([]ports.CommentView, 0, len(comments))
	for _, c := range comments {
		views = append(views, commentViewFrom(c, byID))
	}
	return views, nil
}

// Update edits a comment. Allowed for the author, any project member, or any
// task assignee.
func (s *CommentService) Update(ctx context.Context, userID, commentID, content string) (*ports.CommentView, error) {
	if content == "" {
		return nil, fmt.Errorf("%w: content is required", domain.ErrInvalidInput)
	}

	comment, err := s.comments.FindByID(ctx, commentID)
	if err != nil {
		return nil, err
	}
	task, project, err := s.taskWithProject(ctx, comment.TaskID)
	if err != nil {
		return nil, err
	}
	if !comment.CanModify(userID, *project, *task) {
		return nil, fmt.Errorf("%w: you do not have permission to update this comment", domain.ErrForbidden)
	}

	comment.Content = content
	comment.UpdatedAt = time.Now().UTC()
	if err := s.comments.Update(ctx, comment); err != nil {
		return nil, err
	}
	return s.commentView(ctx, comment)
}

// Delete removes a comment. Same permission rule as Update; no cascading
// effects beyond the comment itself.
func (s *CommentService) Delete(ctx context.Context, userID, commentID string) error {
	comment, err := s.comments.FindByID(ctx, commentID)
	if err != nil {
		return err
	}
	task, project, err := s.taskWithProject(ctx, comment.TaskID)
	if err != nil {
		return err
	}
	if !comment.CanModify(userID, *project, *task) {
		return fmt.Errorf("%w: you do not have permission to delete this comment", domain.ErrForbidden)
	}

	if err := s.comments.Delete(ctx, commentID); err != nil {
		return err
	}
	s.logger.Info().Str("comment_id", commentID).Str("task_id", comment.TaskID).Msg("comment deleted")
	return nil
}

func (s *CommentService) taskWithProject(ctx context.Context, taskID string) (*domain.Task, *domain.Project, error) {
	task, err := s.tasks.FindByID(ctx, taskID)
	if err != nil {
		return nil, nil, err
	}
	project, err := s.projects.FindByID(ctx, task.ProjectID)
	if err != nil {
		return nil, nil, err
	}
	return task, project, nil
}

func (s *CommentService) commentView(ctx context.Context, c *domain.Comment) (*ports.CommentView, error) {
	author, err := s.users.FindByID(ctx, c.UserID)
	if err != nil {
		return nil, err
	}
	view := commentViewFrom(*c, map[string]domain.User{author.ID: *author})
	return &view, nil
}

func commentViewFrom(c domain.Comment, usersByID map[string]domain.User) ports.CommentView {
	view := ports.CommentView{
		ID:        c.ID,
		TaskID:    c.TaskID,
		Content:   c.Content,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
	if u, ok := usersByID[c.UserID]; ok {
		view.Author = ports.NewMemberView(u)
	}
	return view
}
