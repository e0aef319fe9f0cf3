package service

import (
	"context"
	"crypto/rand"
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"
	"unicode"

	"github.com/rs/zerolog"

	"github.com/teamboard/project-system/internal/core/domain"
	"github.com/teamboard/project-system/internal/core/ports"
)

// ProjectService implements project lifecycle, listing, and progress
// aggregation.
type ProjectService struct {
	projects ports.ProjectRepository
	tasks    ports.TaskRepository
	comments ports.CommentRepository
	users    ports.UserRepository
	clients  ports.ClientRepository
	logger   zerolog.Logger
}

func NewProjectService(
	projects ports.ProjectRepository,
	tasks ports.TaskRepository,
	comments ports.CommentRepository,
	users ports.UserRepository,
	clients ports.ClientRepository,
	logger zerolog.Logger,
) *ProjectService {
	return &ProjectService{
		projects: projects,
		tasks:    tasks,
		comments: comments,
		users:    users,
		clients:  clients,
		logger:   logger,
	}
}

// Create creates a project. Only admins may create projects; the creator is
// unconditionally added to the member set.
func (s *ProjectService) Create(ctx context.Context, userID string, in ports.CreateProjectInput) (*ports.ProjectView, error) {
	creator, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !creator.CanManageProjects() {
		return nil, fmt.Errorf("%w: only admins can create projects", domain.ErrForbidden)
	}

	client, err := s.clients.FindByID(ctx, in.ClientID)
	if err != nil {
		return nil, err
	}

	memberIDs := in.MemberIDs
	if len(memberIDs) > 0 {
		found, err := s.users.FindByIDs(ctx, memberIDs)
		if err != nil {
			return nil, err
		}
		if len(found) != len(dedup(memberIDs)) {
			return nil, domain.ErrMembersNotFound
		}
	}
	if !containsID(memberIDs, userID) {
		memberIDs = append(memberIDs, userID)
	}

	now := time.Now().UTC()
	code := projectCode(in.Name, now)
	if _, err := s.projects.FindByCode(ctx, code); err == nil {
		// Best-effort disambiguation: exactly one retry with a random 4-digit
		// suffix. A second collision is not retried.
		code = fmt.Sprintf("%s-%d", code, randomSuffix())
	} else if !errors.Is(err, domain.ErrProjectNotFound) {
		return nil, err
	}

	project := &domain.Project{
		Name:        in.Name,
		Code:        code,
		Description: in.Description,
		Status:      domain.ProjectStatusActive,
		StartDate:   in.StartDate,
		EndDate:     in.EndDate,
		Budget:      in.Budget,
		ClientID:    in.ClientID,
		MemberIDs:   memberIDs,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	created, err := s.projects.Create(ctx, project)
	if err != nil {
		s.logger.Error().Err(err).Str("name", in.Name).Msg("failed to create project")
		return nil, err
	}

	s.logger.Info().Str("project_id", created.ID).Str("code", created.Code).Msg("project created")

	return s.projectView(ctx, created, client)
}

// Update applies a partial update. The project must exist and the caller must
// be an admin; a supplied member list fully replaces the previous one.
func (s *ProjectService) Update(ctx context.Context, userID, projectID string, in ports.UpdateProjectInput) (*ports.ProjectView, error) {
	project, err := s.projects.FindByID(ctx, projectID)
	if err != nil {
		return nil, err
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !user.CanManageProjects() {
		return nil, fmt.Errorf("%w: only admins can update projects", domain.ErrForbidden)
	}

	if in.ClientID != nil {
		if _, err := s.clients.FindByID(ctx, *in.ClientID); err != nil {
			return nil, err
		}
		project.ClientID = *in.ClientID
	}
	if len(in.MemberIDs) > 0 {
		found, err := s.users.FindByIDs(ctx, in.MemberIDs)
		if err != nil {
			return nil, err
		}
		if len(found) != len(dedup(in.MemberIDs)) {
			return nil, domain.ErrMembersNotFound
		}
		project.MemberIDs = in.MemberIDs
	}
	if in.Name != nil {
		project.Name = *in.Name
	}
	if in.Description != nil {
		project.Description = *in.Description
	}
	if in.StartDate != nil {
		project.StartDate = in.StartDate
	}
	if in.EndDate != nil {
		project.EndDate = in.EndDate
	}
	if in.Budget != nil {
		project.Budget = in.Budget
	}
	project.UpdatedAt = time.Now().UTC()

	if err := s.projects.Update(ctx, project); err != nil {
		return nil, err
	}

	client, err := s.clients.FindByID(ctx, project.ClientID)
	if err != nil {
		return nil, err
	}
	return s.projectView(ctx, project, client)
}

// Delete removes the project together with its tasks and their comments. The
// deletion is transactional: a failure part-way leaves everything in place.
func (s *ProjectService) Delete(ctx context.Context, userID, projectID string) error {
	if _, err := s.projects.FindByID(ctx, projectID); err != nil {
		return err
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	if !user.CanManageProjects() {
		return fmt.Errorf("%w: only admins can delete projects", domain.ErrForbidden)
	}

	if err := s.projects.DeleteCascade(ctx, projectID); err != nil {
		s.logger.Error().Err(err).Str("project_id", projectID).Msg("cascade delete failed, rolled back")
		return err
	}

	s.logger.Info().Str("project_id", projectID).Msg("project deleted")
	return nil
}

// Get returns the full project detail: client, members, and tasks with
// assignees, creator, and comments newest-first.
func (s *ProjectService) Get(ctx context.Context, projectID string) (*ports.ProjectDetail, error) {
	project, err := s.projects.FindByID(ctx, projectID)
	if err != nil {
		return nil, err
	}

	client, err := s.clients.FindByID(ctx, project.ClientID)
	if err != nil && !errors.Is(err, domain.ErrClientNotFound) {
		return nil, err
	}

	view, err := s.projectView(ctx, project, client)
	if err != nil {
		return nil, err
	}

	tasksByProject, err := s.tasks.ListByProjectIDs(ctx, []string{project.ID})
	if err != nil {
		return nil, err
	}
	tasks := tasksByProject[project.ID]

	taskIDs := make([]string, 0, len(tasks))
	userIDs := project.MemberIDs
	for _, t := range tasks {
		taskIDs = append(taskIDs, t.ID)
		userIDs = append(userIDs, t.CreatedByID)
		userIDs = append(userIDs, t.AssigneeIDs...)
	}
	commentsByTask, err := s.comments.ListByTaskIDs(ctx, taskIDs)
	if err != nil {
		return nil, err
	}
	for _, cs := range commentsByTask {
		for _, c := range cs {
			userIDs = append(userIDs, c.UserID)
		}
	}

	usersByID, err := s.userIndex(ctx, userIDs)
	if err != nil {
		return nil, err
	}

	taskViews := make([]ports.TaskView, 0, len(tasks))
	for _, t := range tasks {
		tv := taskViewFrom(t, nil, usersByID)
		for _, c := range commentsByTask[t.ID] {
			tv.Comments = append(tv.Comments, commentViewFrom(c, usersByID))
		}
		taskViews = append(taskViews, tv)
	}

	return &ports.ProjectDetail{ProjectView: *view, Tasks: taskViews}, nil
}

// List returns a paginated project listing; search matches name, description,
// or code, case-insensitively.
func (s *ProjectService) List(ctx context.Context, in ports.ListProjectsInput) (*ports.ProjectPage, error) {
	page, limit := ports.NormalizePage(in.Page, in.Limit)

	projects, total, err := s.projects.List(ctx, ports.ProjectFilter{
		Search:     in.Search,
		SearchCode: true,
		Page:       page,
		Limit:      limit,
	})
	if err != nil {
		return nil, err
	}

	views, err := s.projectViews(ctx, projects)
	if err != nil {
		return nil, err
	}
	return &ports.ProjectPage{Data: views, Meta: ports.NewPageMeta(total, page, limit)}, nil
}

// ListWithProgress returns a filtered, paginated listing where every project
// carries recomputed task metrics. Progress is derived state: it is computed
// on each read over all of the project's tasks, even when the task sublist in
// the response is narrowed by a status filter.
func (s *ProjectService) ListWithProgress(ctx context.Context, in ports.ProgressQueryInput) (*ports.ProjectProgressPage, error) {
	page, limit := ports.NormalizePage(in.Page, in.Limit)

	var status domain.TaskStatus
	if in.Status != "" {
		var err error
		if status, err = domain.ParseTaskStatus(in.Status); err != nil {
			return nil, err
		}
	}

	filter := ports.ProjectFilter{
		Search:        in.Search,
		ClientID:      in.ClientID,
		SortByUpdated: true,
		Page:          page,
		Limit:         limit,
	}

	if in.AssigneeID != "" || status != "" {
		ids, err := s.tasks.DistinctProjectIDs(ctx, in.AssigneeID, status)
		if err != nil {
			return nil, err
		}
		if len(ids) == 0 {
			return &ports.ProjectProgressPage{
				Data: []ports.ProjectProgressView{},
				Meta: ports.NewPageMeta(0, page, limit),
			}, nil
		}
		filter.IDs = ids
	}

	projects, total, err := s.projects.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	views, err := s.projectViews(ctx, projects)
	if err != nil {
		return nil, err
	}

	projectIDs := make([]string, 0, len(projects))
	for _, p := range projects {
		projectIDs = append(projectIDs, p.ID)
	}
	tasksByProject, err := s.tasks.ListByProjectIDs(ctx, projectIDs)
	if err != nil {
		return nil, err
	}

	var userIDs []string
	for _, tasks := range tasksByProject {
		for _, t := range tasks {
			userIDs = append(userIDs, t.CreatedByID)
			userIDs = append(userIDs, t.AssigneeIDs...)
		}
	}
	usersByID, err := s.userIndex(ctx, userIDs)
	if err != nil {
		return nil, err
	}

	data := make([]ports.ProjectProgressView, 0, len(projects))
	for i, p := range projects {
		tasks := tasksByProject[p.ID]
		progress, totalTasks, completed := taskProgress(tasks)

		taskViews := make([]ports.TaskView, 0, len(tasks))
		for _, t := range tasks {
			if status != "" && t.Status != status {
				continue
			}
			taskViews = append(taskViews, taskViewFrom(t, nil, usersByID))
		}

		data = append(data, ports.ProjectProgressView{
			ProjectView:    views[i],
			Progress:       progress,
			TotalTasks:     totalTasks,
			CompletedTasks: completed,
			PendingTasks:   totalTasks - completed,
			Tasks:          taskViews,
		})
	}

	return &ports.ProjectProgressPage{Data: data, Meta: ports.NewPageMeta(total, page, limit)}, nil
}

// UserProjects lists the projects a user belongs to, with the count of tasks
// assigned to them per project. Callers may only fetch their own.
func (s *ProjectService) UserProjects(ctx context.Context, callerID, userID string) ([]ports.UserProjectSummary, error) {
	if callerID != userID {
		return nil, fmt.Errorf("%w: you can only view your own projects", domain.ErrForbidden)
	}

	projects, err := s.projects.ListByMember(ctx, userID)
	if err != nil {
		return nil, err
	}

	clientIDs := make([]string, 0, len(projects))
	for _, p := range projects {
		clientIDs = append(clientIDs, p.ClientID)
	}
	clientsByID, err := s.clientIndex(ctx, clientIDs)
	if err != nil {
		return nil, err
	}

	summaries := make([]ports.UserProjectSummary, 0, len(projects))
	for _, p := range projects {
		count, err := s.tasks.CountAssigned(ctx, p.ID, userID)
		if err != nil {
			return nil, err
		}
		summary := ports.UserProjectSummary{
			ID:                p.ID,
			Name:              p.Name,
			Description:       p.Description,
			Code:              p.Code,
			Status:            p.Status,
			StartDate:         p.StartDate,
			EndDate:           p.EndDate,
			AssignedTaskCount: count,
		}
		if c, ok := clientsByID[p.ClientID]; ok {
			summary.Client = &ports.ClientView{ID: c.ID, Name: c.Name, Email: c.Email}
		}
		summaries = append(summaries, summary)
	}
	return summaries, nil
}

// --- view assembly -------------------------------------------------------

func (s *ProjectService) projectView(ctx context.Context, p *domain.Project, client *domain.Client) (*ports.ProjectView, error) {
	usersByID, err := s.userIndex(ctx, p.MemberIDs)
	if err != nil {
		return nil, err
	}
	view := projectViewFrom(*p, usersByID)
	if client != nil {
		view.Client = &ports.ClientView{ID: client.ID, Name: client.Name, Email: client.Email}
	}
	return &view, nil
}

// projectViews batch-resolves clients and members for a page of projects.
func (s *ProjectService) projectViews(ctx context.Context, projects []domain.Project) ([]ports.ProjectView, error) {
	var clientIDs, userIDs []string
	for _, p := range projects {
		clientIDs = append(clientIDs, p.ClientID)
		userIDs = append(userIDs, p.MemberIDs...)
	}

	clientsByID, err := s.clientIndex(ctx, clientIDs)
	if err != nil {
		return nil, err
	}
	usersByID, err := s.userIndex(ctx, userIDs)
	if err != nil {
		return nil, err
	}

	views := make([]ports.ProjectView, 0, len(projects))
	for _, p := range projects {
		view := projectViewFrom(p, usersByID)
		if c, ok := clientsByID[p.ClientID]; ok {
			view.Client = &ports.ClientView{ID: c.ID, Name: c.Name, Email: c.Email}
		}
		views = append(views, view)
	}
	return views, nil
}

func (s *ProjectService) userIndex(ctx context.Context, ids []string) (map[string]domain.User, error) {
	ids = dedup(ids)
	if len(ids) == 0 {
		return map[string]domain.User{}, nil
	}
	users, err := s.users.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]domain.User, len(users))
	for _, u := range users {
		byID[u.ID] = u
	}
	return byID, nil
}

func (s *ProjectService) clientIndex(ctx context.Context, ids []string) (map[string]domain.Client, error) {
	ids = dedup(ids)
	if len(ids) == 0 {
		return map[string]domain.Client{}, nil
	}
	clients, err := s.clients.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]domain.Client, len(clients))
	for _, c := range clients {
		byID[c.ID] = c
	}
	return byID, nil
}

func projectViewFrom(p domain.Project, usersByID map[string]domain.User) ports.ProjectView {
	members := make([]ports.MemberView, 0, len(p.MemberIDs))
	for _, id := range p.MemberIDs {
		if u, ok := usersByID[id]; ok {
			members = append(members, ports.NewMemberView(u))
		}
	}
	return ports.ProjectView{
		ID:          p.ID,
		Name:        p.Name,
		Code:        p.Code,
		Description: p.Description,
		Status:      p.Status,
		StartDate:   p.StartDate,
		EndDate:     p.EndDate,
		Budget:      p.Budget,
		Members:     members,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

// --- derived state -------------------------------------------------------

// taskProgress computes the completion percentage of a task set: the share of
// DONE tasks rounded half-up to the nearest integer. Zero tasks is 0%, not
// undefined.
func taskProgress(tasks []domain.Task) (progress, total, completed int) {
	total = len(tasks)
	for _, t := range tasks {
		if t.Status == domain.TaskDone {
			completed++
		}
	}
	if total > 0 {
		progress = int(math.Round(float64(completed) / float64(total) * 100))
	}
	return progress, total, completed
}

// --- code generation -----------------------------------------------------

// projectCode derives the human-readable project code: the uppercased first
// letter of each word in the name, a dash, and the creation date as YYYYMMDD.
func projectCode(name string, now time.Time) string {
	var b strings.Builder
	for _, word := range strings.Fields(name) {
		r := []rune(word)
		b.WriteRune(unicode.ToUpper(r[0]))
	}
	return fmt.Sprintf("%s-%s", b.String(), now.Format("20060102"))
}

// randomSuffix returns a random integer in [1000, 9999].
func randomSuffix() int {
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return 1000 + int(time.Now().UnixNano()%9000)
	}
	return 1000 + int(binary.BigEndian.Uint64(buf[:])%9000)
}

// --- small helpers -------------------------------------------------------

func containsID(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

func dedup(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
