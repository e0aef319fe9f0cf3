package service

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/rs/zerolog"

	"github.com/teamboard/project-system/internal/core/domain"
	"github.com/teamboard/project-system/internal/core/ports"
)

// In-memory stub repositories shared by the service tests. They mirror the
// filter semantics the Mongo repositories implement.

var discardLogger = zerolog.Nop()

// --- users ---------------------------------------------------------------

type stubUserRepo struct {
	users []domain.User
}

func (r *stubUserRepo) add(u domain.User) domain.User {
	if u.ID == "" {
		u.ID = fmt.Sprintf("u%d", len(r.users)+1)
	}
	r.users = append(r.users, u)
	return u
}

func (r *stubUserRepo) Create(_ context.Context, u *domain.User) (*domain.User, error) {
	created := r.add(*u)
	return &created, nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	for _, u := range r.users {
		if u.ID == id {
			clone := u
			return &clone, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			clone := u
			return &clone, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByIDs(_ context.Context, ids []string) ([]domain.User, error) {
	var out []domain.User
	for _, u := range r.users {
		for _, id := range ids {
			if u.ID == id {
				out = append(out, u)
				break
			}
		}
	}
	return out, nil
}

func (r *stubUserRepo) List(_ context.Context, page, limit int) ([]domain.User, int64, error) {
	return pageOf(r.users, page, limit), int64(len(r.users)), nil
}

// --- clients -------------------------------------------------------------

type stubClientRepo struct {
	clients []domain.Client
}

func (r *stubClientRepo) add(c domain.Client) domain.Client {
	if c.ID == "" {
		c.ID = fmt.Sprintf("c%d", len(r.clients)+1)
	}
	r.clients = append(r.clients, c)
	return c
}

func (r *stubClientRepo) Create(_ context.Context, c *domain.Client) (*domain.Client, error) {
	created := r.add(*c)
	return &created, nil
}

func (r *stubClientRepo) FindByID(_ context.Context, id string) (*domain.Client, error) {
	for _, c := range r.clients {
		if c.ID == id {
			clone := c
			return &clone, nil
		}
	}
	return nil, domain.ErrClientNotFound
}

func (r *stubClientRepo) FindByName(_ context.Context, name string) (*domain.Client, error) {
	for _, c := range r.clients {
		if c.Name == name {
			clone := c
			return &clone, nil
		}
	}
	return nil, domain.ErrClientNotFound
}

func (r *stubClientRepo) FindByIDs(_ context.Context, ids []string) ([]domain.Client, error) {
	var out []domain.Client
	for _, c := range r.clients {
		for _, id := range ids {
			if c.ID == id {
				out = append(out, c)
				break
			}
		}
	}
	return out, nil
}

func (r *stubClientRepo) List(_ context.Context, page, limit int) ([]domain.Client, int64, error) {
	return pageOf(r.clients, page, limit), int64(len(r.clients)), nil
}

func (r *stubClientRepo) Search(_ context.Context, query string, page, limit int) ([]domain.Client, int64, error) {
	var matched []domain.Client
	for _, c := range r.clients {
		if query == "" || strings.Contains(strings.ToLower(c.Name), strings.ToLower(query)) {
			matched = append(matched, c)
		}
	}
	return pageOf(matched, page, limit), int64(len(matched)), nil
}

// --- projects ------------------------------------------------------------

type stubProjectRepo struct {
	projects []domain.Project
	tasks    *stubTaskRepo
	comments *stubCommentRepo

	// cascadeErr simulates a mid-transaction failure: DeleteCascade returns
	// it without touching any data, mirroring a rollback.
	cascadeErr error
}

func (r *stubProjectRepo) add(p domain.Project) domain.Project {
	if p.ID == "" {
		p.ID = fmt.Sprintf("p%d", len(r.projects)+1)
	}
	r.projects = append(r.projects, p)
	return p
}

func (r *stubProjectRepo) Create(_ context.Context, p *domain.Project) (*domain.Project, error) {
	created := r.add(*p)
	return &created, nil
}

func (r *stubProjectRepo) FindByID(_ context.Context, id string) (*domain.Project, error) {
	for _, p := range r.projects {
		if p.ID == id {
			clone := p
			return &clone, nil
		}
	}
	return nil, domain.ErrProjectNotFound
}

func (r *stubProjectRepo) FindByCode(_ context.Context, code string) (*domain.Project, error) {
	for _, p := range r.projects {
		if p.Code == code {
			clone := p
			return &clone, nil
		}
	}
	return nil, domain.ErrProjectNotFound
}

func (r *stubProjectRepo) Update(_ context.Context, p *domain.Project) error {
	for i := range r.projects {
		if r.projects[i].ID == p.ID {
			r.projects[i] = *p
			return nil
		}
	}
	return domain.ErrProjectNotFound
}

func (r *stubProjectRepo) DeleteCascade(_ context.Context, projectID string) error {
	if r.cascadeErr != nil {
		return r.cascadeErr
	}
	var taskIDs []string
	if r.tasks != nil {
		var kept []domain.Task
		for _, t := range r.tasks.tasks {
			if t.ProjectID == projectID {
				taskIDs = append(taskIDs, t.ID)
				continue
			}
			kept = append(kept, t)
		}
		r.tasks.tasks = kept
	}
	if r.comments != nil {
		var kept []domain.Comment
		for _, c := range r.comments.comments {
			if !containsID(taskIDs, c.TaskID) {
				kept = append(kept, c)
			}
		}
		r.comments.comments = kept
	}
	var kept []domain.Project
	for _, p := range r.projects {
		if p.ID != projectID {
			kept = append(kept, p)
		}
	}
	r.projects = kept
	return nil
}

func (r *stubProjectRepo) List(_ context.Context, f ports.ProjectFilter) ([]domain.Project, int64, error) {
	var matched []domain.Project
	for _, p := range r.projects {
		if f.Search != "" {
			q := strings.ToLower(f.Search)
			ok := strings.Contains(strings.ToLower(p.Name), q) ||
				strings.Contains(strings.ToLower(p.Description), q) ||
				(f.SearchCode && strings.Contains(strings.ToLower(p.Code), q))
			if !ok {
				continue
			}
		}
		if f.ClientID != "" && p.ClientID != f.ClientID {
			continue
		}
		if f.IDs != nil && !containsID(f.IDs, p.ID) {
			continue
		}
		matched = append(matched, p)
	}
	return pageOf(matched, f.Page, f.Limit), int64(len(matched)), nil
}

func (r *stubProjectRepo) ListByMember(_ context.Context, userID string) ([]domain.Project, error) {
	var out []domain.Project
	for _, p := range r.projects {
		if p.HasMember(userID) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *stubProjectRepo) ListByMembers(_ context.Context, userIDs []string) ([]domain.Project, error) {
	var out []domain.Project
	for _, p := range r.projects {
		for _, id := range userIDs {
			if p.HasMember(id) {
				out = append(out, p)
				break
			}
		}
	}
	return out, nil
}

// --- tasks ---------------------------------------------------------------

type stubTaskRepo struct {
	tasks []domain.Task
}

func (r *stubTaskRepo) add(t domain.Task) domain.Task {
	if t.ID == "" {
		t.ID = fmt.Sprintf("t%d", len(r.tasks)+1)
	}
	r.tasks = append(r.tasks, t)
	return t
}

func (r *stubTaskRepo) Create(_ context.Context, t *domain.Task) (*domain.Task, error) {
	created := r.add(*t)
	return &created, nil
}

func (r *stubTaskRepo) FindByID(_ context.Context, id string) (*domain.Task, error) {
	for _, t := range r.tasks {
		if t.ID == id {
			clone := t
			return &clone, nil
		}
	}
	return nil, domain.ErrTaskNotFound
}

func (r *stubTaskRepo) Update(_ context.Context, t *domain.Task) error {
	for i := range r.tasks {
		if r.tasks[i].ID == t.ID {
			r.tasks[i] = *t
			return nil
		}
	}
	return domain.ErrTaskNotFound
}

func (r *stubTaskRepo) Delete(_ context.Context, id string) error {
	for i := range r.tasks {
		if r.tasks[i].ID == id {
			r.tasks = append(r.tasks[:i], r.tasks[i+1:]...)
			return nil
		}
	}
	return domain.ErrTaskNotFound
}

func (r *stubTaskRepo) List(_ context.Context, f ports.TaskFilter) ([]domain.Task, int64, error) {
	var matched []domain.Task
	for _, t := range r.tasks {
		if f.ProjectID != "" && t.ProjectID != f.ProjectID {
			continue
		}
		if f.AssigneeID != "" && !t.HasAssignee(f.AssigneeID) {
			continue
		}
		if f.Status != "" && t.Status != f.Status {
			continue
		}
		matched = append(matched, t)
	}
	return pageOf(matched, f.Page, f.Limit), int64(len(matched)), nil
}

func (r *stubTaskRepo) ListAssigned(_ context.Context, projectID, userID string, status domain.TaskStatus) ([]domain.Task, error) {
	var out []domain.Task
	for _, t := range r.tasks {
		if t.ProjectID != projectID || !t.HasAssignee(userID) {
			continue
		}
		if status != "" && t.Status != status {
			continue
		}
		out = append(out, t)
	}
	return out, nil
}

func (r *stubTaskRepo) ListByProjectIDs(_ context.Context, projectIDs []string) (map[string][]domain.Task, error) {
	out := make(map[string][]domain.Task)
	for _, t := range r.tasks {
		if containsID(projectIDs, t.ProjectID) {
			out[t.ProjectID] = append(out[t.ProjectID], t)
		}
	}
	return out, nil
}

func (r *stubTaskRepo) DistinctProjectIDs(_ context.Context, assigneeID string, status domain.TaskStatus) ([]string, error) {
	seen := make(map[string]struct{})
	var out []string
	for _, t := range r.tasks {
		if assigneeID != "" && !t.HasAssignee(assigneeID) {
			continue
		}
		if status != "" && t.Status != status {
			continue
		}
		if _, ok := seen[t.ProjectID]; !ok {
			seen[t.ProjectID] = struct{}{}
			out = append(out, t.ProjectID)
		}
	}
	return out, nil
}

func (r *stubTaskRepo) CountAssigned(_ context.Context, projectID, userID string) (int64, error) {
	var n int64
	for _, t := range r.tasks {
		if t.ProjectID == projectID && t.HasAssignee(userID) {
			n++
		}
	}
	return n, nil
}

// --- comments ------------------------------------------------------------

type stubCommentRepo struct {
	comments []domain.Comment
}

func (r *stubCommentRepo) add(c domain.Comment) domain.Comment {
	if c.ID == "" {
		c.ID = fmt.Sprintf("cm%d", len(r.comments)+1)
	}
	r.comments = append(r.comments, c)
	return c
}

func (r *stubCommentRepo) Create(_ context.Context, c *domain.Comment) (*domain.Comment, error) {
	created := r.add(*c)
	return &created, nil
}

func (r *stubCommentRepo) FindByID(_ context.Context, id string) (*domain.Comment, error) {
	for _, c := range r.comments {
		if c.ID == id {
			clone := c
			return &clone, nil
		}
	}
	return nil, domain.ErrCommentNotFound
}

func (r *stubCommentRepo) Update(_ context.Context, c *domain.Comment) error {
	for i := range r.comments {
		if r.comments[i].ID == c.ID {
			r.comments[i] = *c
			return nil
		}
	}
	return domain.ErrCommentNotFound
}

func (r *stubCommentRepo) Delete(_ context.Context, id string) error {
	for i := range r.comments {
		if r.comments[i].ID == id {
			r.comments = append(r.comments[:i], r.comments[i+1:]...)
			return nil
		}
	}
	return domain.ErrCommentNotFound
}

func (r *stubCommentRepo) ListByTask(_ context.Context, taskID string) ([]domain.Comment, error) {
	var out []domain.Comment
	for _, c := range r.comments {
		if c.TaskID == taskID {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *stubCommentRepo) ListByTaskIDs(ctx context.Context, taskIDs []string) (map[string][]domain.Comment, error) {
	out := make(map[string][]domain.Comment)
	for _, id := range taskIDs {
		cs, _ := r.ListByTask(ctx, id)
		if len(cs) > 0 {
			out[id] = cs
		}
	}
	return out, nil
}

func (r *stubCommentRepo) DeleteByTask(_ context.Context, taskID string) error {
	var kept []domain.Comment
	for _, c := range r.comments {
		if c.TaskID != taskID {
			kept = append(kept, c)
		}
	}
	r.comments = kept
	return nil
}

// --- activity recorder ---------------------------------------------------

type recorderStub struct {
	entries []ports.ActivityInput
}

func (r *recorderStub) Enqueue(in ports.ActivityInput) {
	r.entries = append(r.entries, in)
}

// --- shared --------------------------------------------------------------

func pageOf[T any](items []T, page, limit int) []T {
	if limit <= 0 {
		return items
	}
	if page < 1 {
		page = 1
	}
	skip := (page - 1) * limit
	if skip >= len(items) {
		return []T{}
	}
	end := skip + limit
	if end > len(items) {
		end = len(items)
	}
	return items[skip:end]
}
