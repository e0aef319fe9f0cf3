package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/teamboard/project-system/internal/core/domain"
	"github.com/teamboard/project-system/internal/core/ports"
)

// TaskService implements task lifecycle and queries. Mutations feed the
// project activity stream through the recorder; a nil recorder disables it.
type TaskService struct {
	tasks    ports.TaskRepository
	projects ports.ProjectRepository
	comments ports.CommentRepository
	users    ports.UserRepository
	recorder ports.ActivityRecorder
	logger   zerolog.Logger
}

func NewTaskService(
	tasks ports.TaskRepository,
	projects ports.ProjectRepository,
	comments ports.CommentRepository,
	users ports.UserRepository,
	recorder ports.ActivityRecorder,
	logger zerolog.Logger,
) *TaskService {
	return &TaskService{tasks: tasks, projects: projects, comments: comments, users: users, recorder: recorder, logger: logger}
}

func (s *TaskService) recordActivity(projectID, taskID, actorID string, typ domain.ActivityType, detail string) {
	if s.recorder == nil {
		return
	}
	s.recorder.Enqueue(ports.ActivityInput{
		ProjectID: projectID,
		TaskID:    taskID,
		ActorID:   actorID,
		Type:      typ,
		Detail:    detail,
	})
}

// Create creates a task inside a project. Validation order: project exists,
// every assignee is a project member, a parent task belongs to the same
// project.
func (s *TaskService) Create(ctx context.Context, creatorID string, in ports.CreateTaskInput) (*ports.TaskView, error) {
	project, err := s.projects.FindByID(ctx, in.ProjectID)
	if err != nil {
		return nil, err
	}

	if len(in.AssigneeIDs) > 0 {
		if invalid := notMembers(project, in.AssigneeIDs); len(invalid) > 0 {
			return nil, fmt.Errorf("%w: one or more assignees are not project members: %s",
				domain.ErrInvalidInput, strings.Join(invalid, ", "))
		}
	}

	if in.ParentTaskID != "" {
		parent, err := s.tasks.FindByID(ctx, in.ParentTaskID)
		if err != nil || parent.ProjectID != in.ProjectID {
			return nil, fmt.Errorf("%w: invalid parent task", domain.ErrInvalidInput)
		}
	}

	status := domain.TaskTodo
	if in.Status != "" {
		if status, err = domain.ParseTaskStatus(in.Status); err != nil {
			return nil, err
		}
	}
	priority := in.Priority
	if priority == 0 {
		priority = domain.PriorityDefault
	}
	if priority < domain.PriorityMin || priority > domain.PriorityMax {
		return nil, fmt.Errorf("%w: priority must be between 1 and 3", domain.ErrInvalidInput)
	}

	now := time.Now().UTC()
	task := &domain.Task{
		Title:        in.Title,
		Description:  in.Description,
		Status:       status,
		Priority:     priority,
		DueDate:      in.DueDate,
		ProjectID:    in.ProjectID,
		CreatedByID:  creatorID,
		ParentTaskID: in.ParentTaskID,
		AssigneeIDs:  in.AssigneeIDs,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.tasks.Create(ctx, task)
	if err != nil {
		s.logger.Error().Err(err).Str("project_id", in.ProjectID).Msg("failed to create task")
		return nil, err
	}

	s.logger.Info().Str("task_id", created.ID).Str("project_id", in.ProjectID).Msg("task created")
	s.recordActivity(in.ProjectID, created.ID, creatorID, domain.ActivityTaskCreated, created.Title)
	return s.taskView(ctx, created, project)
}

// Update applies a partial update; only existence is required. A supplied
// assignee list fully replaces the previous one and must reference project
// members.
func (s *TaskService) Update(ctx context.Context, userID, taskID string, in ports.UpdateTaskInput) (*ports.TaskView, error) {
	task, err := s.tasks.FindByID(ctx, taskID)
	if err != nil {
		return nil, err
	}

	if in.Status != nil {
		status, err := domain.ParseTaskStatus(*in.Status)
		if err != nil {
			return nil, err
		}
		task.Status = status
	}
	if in.Priority != nil {
		if *in.Priority < domain.PriorityMin || *in.Priority > domain.PriorityMax {
			return nil, fmt.Errorf("%w: priority must be between 1 and 3", domain.ErrInvalidInput)
		}
		task.Priority = *in.Priority
	}
	if in.AssigneeIDs != nil {
		project, err := s.projects.FindByID(ctx, task.ProjectID)
		if err != nil {
			return nil, err
		}
		if invalid := notMembers(project, in.AssigneeIDs); len(invalid) > 0 {
			return nil, fmt.Errorf("%w: one or more assignees are not project members: %s",
				domain.ErrInvalidInput, strings.Join(invalid, ", "))
		}
		task.AssigneeIDs = in.AssigneeIDs
	}
	if in.Title != nil {
		task.Title = *in.Title
	}
	if in.Description != nil {
		task.Description = *in.Description
	}
	if in.DueDate != nil {
		task.DueDate = in.DueDate
	}
	task.UpdatedAt = time.Now().UTC()

	if err := s.tasks.Update(ctx, task); err != nil {
		return nil, err
	}

	s.recordActivity(task.ProjectID, task.ID, userID, domain.ActivityTaskUpdated, task.Title)
	return s.taskView(ctx, task, nil)
}

// Delete removes a task and its comments. Only existence is required.
func (s *TaskService) Delete(ctx context.Context, userID, taskID string) error {
	task, err := s.tasks.FindByID(ctx, taskID)
	if err != nil {
		return err
	}

	if err := s.comments.DeleteByTask(ctx, taskID); err != nil {
		return err
	}
	if err := s.tasks.Delete(ctx, taskID); err != nil {
		return err
	}

	s.logger.Info().Str("task_id", taskID).Str("project_id", task.ProjectID).Msg("task deleted")
	s.recordActivity(task.ProjectID, taskID, userID, domain.ActivityTaskDeleted, task.Title)
	return nil
}

// ListByProject returns a page of the project's tasks, newest first.
func (s *TaskService) ListByProject(ctx context.Context, projectID string, page, limit int) (*ports.TaskPage, error) {
	page, limit = ports.NormalizePage(page, limit)

	tasks, total, err := s.tasks.List(ctx, ports.TaskFilter{ProjectID: projectID, Page: page, Limit: limit})
	if err != nil {
		return nil, err
	}
	views, err := s.taskViews(ctx, tasks)
	if err != nil {
		return nil, err
	}
	return &ports.TaskPage{Data: views, Meta: ports.NewPageMeta(total, page, limit)}, nil
}

// List returns a page of tasks across projects, filtered conjunctively by
// status, project, and assignee.
func (s *TaskService) List(ctx context.Context, in ports.ListTasksInput) (*ports.TaskPage, error) {
	page, limit := ports.NormalizePage(in.Page, in.Limit)

	var status domain.TaskStatus
	if in.Status != "" {
		var err error
		if status, err = domain.ParseTaskStatus(in.Status); err != nil {
			return nil, err
		}
	}

	tasks, total, err := s.tasks.List(ctx, ports.TaskFilter{
		ProjectID:  in.ProjectID,
		AssigneeID: in.AssigneeID,
		Status:     status,
		Page:       page,
		Limit:      limit,
	})
	if err != nil {
		return nil, err
	}
	views, err := s.taskViews(ctx, tasks)
	if err != nil {
		return nil, err
	}
	return &ports.TaskPage{Data: views, Meta: ports.NewPageMeta(total, page, limit)}, nil
}

// MyProjectTasks returns the caller's assigned tasks in a project, ordered by
// status then due date. The caller must be a project member.
func (s *TaskService) MyProjectTasks(ctx context.Context, userID, projectID, status string) ([]ports.TaskView, error) {
	project, err := s.projects.FindByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if !project.HasMember(userID) {
		return nil, fmt.Errorf("%w: you do not have access to this project", domain.ErrForbidden)
	}

	var parsed domain.TaskStatus
	if status != "" {
		if parsed, err = domain.ParseTaskStatus(status); err != nil {
			return nil, err
		}
	}

	tasks, err := s.tasks.ListAssigned(ctx, projectID, userID, parsed)
	if err != nil {
		return nil, err
	}
	return s.taskViews(ctx, tasks)
}

// --- view assembly -------------------------------------------------------

func (s *TaskService) taskView(ctx context.Context, t *domain.Task, project *domain.Project) (*ports.TaskView, error) {
	if project == nil {
		p, err := s.projects.FindByID(ctx, t.ProjectID)
		if err != nil {
			return nil, err
		}
		project = p
	}

	ids := append([]string{t.CreatedByID}, t.AssigneeIDs...)
	users, err := s.users.FindByIDs(ctx, dedup(ids))
	if err != nil {
		return nil, err
	}
	byID := make(map[string]domain.User, len(users))
	for _, u := range users {
		byID[u.ID] = u
	}

	view := taskViewFrom(*t, project, byID)
	return &view, nil
}

// taskViews batch-resolves projects, assignees, and creators for a task list.
func (s *TaskService) taskViews(ctx context.Context, tasks []domain.Task) ([]ports.TaskView, error) {
	var userIDs []string
	projectsByID := make(map[string]*domain.Project)
	for _, t := range tasks {
		userIDs = append(userIDs, t.CreatedByID)
		userIDs = append(userIDs, t.AssigneeIDs...)
		projectsByID[t.ProjectID] = nil
	}

	for id := range projectsByID {
		p, err := s.projects.FindByID(ctx, id)
		if err != nil {
			if errors.Is(err, domain.ErrProjectNotFound) {
				continue
			}
			return nil, err
		}
		projectsByID[id] = p
	}

	users, err := s.users.FindByIDs(ctx, dedup(userIDs))
	if err != nil {
		return nil, err
	}
	usersByID := make(map[string]domain.User, len(users))
	for _, u := range users {
		usersByID[u.ID] = u
	}

	views := make([]ports.TaskView, 0, len(tasks))
	for _, t := range tasks {
		views = append(views, taskViewFrom(t, projectsByID[t.ProjectID], usersByID))
	}
	return views, nil
}

func taskViewFrom(t domain.Task, project *domain.Project, usersByID map[string]domain.User) ports.TaskView {
	view := ports.TaskView{
		ID:           t.ID,
		Title:        t.Title,
		Description:  t.Description,
		Status:       t.Status,
		Priority:     t.Priority,
		DueDate:      t.DueDate,
		ParentTaskID: t.ParentTaskID,
		Assignees:    []ports.MemberView{},
		CreatedAt:    t.CreatedAt,
		UpdatedAt:    t.UpdatedAt,
	}
	if project != nil {
		view.Project = &ports.ProjectRef{ID: project.ID, Name: project.Name, Code: project.Code}
	} else {
		view.Project = &ports.ProjectRef{ID: t.ProjectID}
	}
	for _, id := range t.AssigneeIDs {
		if u, ok := usersByID[id]; ok {
			view.Assignees = append(view.Assignees, ports.NewMemberView(u))
		}
	}
	if u, ok := usersByID[t.CreatedByID]; ok {
		mv := ports.NewMemberView(u)
		view.CreatedBy = &mv
	}
	return view
}

// notMembers returns the ids in candidates that are not members of project.
func notMembers(project *domain.Project, candidates []string) []string {
	var invalid []string
	for _, id := range candidates {
		if !project.HasMember(id) {
			invalid = append(invalid, id)
		}
	}
	return invalid
}
