package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/teamboard/project-system/internal/api/metrics"
	"github.com/teamboard/project-system/internal/core/ports"
)

// ProjectHandler serves project lifecycle, listings, and the activity feed.
type ProjectHandler struct {
	projects   ports.ProjectService
	tasks      ports.TaskService
	users      ports.UserService
	activities ports.ActivityService
}

func NewProjectHandler(
	projects ports.ProjectService,
	tasks ports.TaskService,
	users ports.UserService,
	activities ports.ActivityService,
) *ProjectHandler {
	return &ProjectHandler{projects: projects, tasks: tasks, users: users, activities: activities}
}

// Create creates a project.
//
// @Summary      Create a project
// @Tags         projects
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createProjectRequest  true  "Project details"
// @Success      201   {object}  ports.ProjectView
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /post/projects [post]
func (h *ProjectHandler) Create(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	var req createProjectRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	view, err := h.projects.Create(c.Request().Context(), userID, ports.CreateProjectInput{
		Name:        req.Name,
		Description: req.Description,
		ClientID:    req.ClientID,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		Budget:      req.Budget,
		MemberIDs:   req.MemberIDs,
	})
	if err != nil {
		return err
	}

	metrics.ProjectsCreatedTotal.Inc()
	return c.JSON(http.StatusCreated, view)
}

// List returns a paginated project listing.
//
// @Summary      List projects
// @Tags         projects
// @Produce      json
// @Security     BearerAuth
// @Param        page    query     int     false  "Page number"
// @Param        limit   query     int     false  "Page size"
// @Param        search  query     string  false  "Match against name, description, or code"
// @Success      200     {object}  ports.ProjectPage
// @Router       /post/projects/all [get]
func (h *ProjectHandler) List(c echo.Context) error {
	page, limit := pageParams(c)
	result, err := h.projects.List(c.Request().Context(), ports.ListProjectsInput{
		Page:   page,
		Limit:  limit,
		Search: c.QueryParam("search"),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, result)
}

// ListWithProgress returns projects enriched with task completion metrics.
//
// @Summary      List projects with progress
// @Tags         projects
// @Produce      json
// @Security     BearerAuth
// @Param        page        query     int     false  "Page number"
// @Param        limit       query     int     false  "Page size"
// @Param        search      query     string  false  "Match against name or description"
// @Param        assigneeId  query     string  false  "Only projects with tasks assigned to this user"
// @Param        clientId    query     string  false  "Only projects of this client"
// @Param        status      query     string  false  "Restrict embedded task lists to one status"
// @Success      200         {object}  ports.ProjectProgressPage
// @Failure      400         {object}  map[string]string
// @Router       /post/projects/with-progress [get]
func (h *ProjectHandler) ListWithProgress(c echo.Context) error {
	page, limit := pageParams(c)
	result, err := h.projects.ListWithProgress(c.Request().Context(), ports.ProgressQueryInput{
		Page:       page,
		Limit:      limit,
		Search:     c.QueryParam("search"),
		AssigneeID: c.QueryParam("assigneeId"),
		ClientID:   c.QueryParam("clientId"),
		Status:     c.QueryParam("status"),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, result)
}

// Get returns the full project detail.
//
// @Summary      Get a project
// @Tags         projects
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Project id"
// @Success      200  {object}  ports.ProjectDetail
// @Failure      404  {object}  map[string]string
// @Router       /post/projects/{id} [get]
func (h *ProjectHandler) Get(c echo.Context) error {
	detail, err := h.projects.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, detail)
}

// Update applies a partial project update.
//
// @Summary      Update a project
// @Tags         projects
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                true  "Project id"
// @Param        body  body      updateProjectRequest  true  "Fields to change"
// @Success      200   {object}  ports.ProjectView
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /post/projects/{id} [patch]
func (h *ProjectHandler) Update(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	var req updateProjectRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	view, err := h.projects.Update(c.Request().Context(), userID, c.Param("id"), ports.UpdateProjectInput{
		Name:        req.Name,
		Description: req.Description,
		ClientID:    req.ClientID,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		Budget:      req.Budget,
		MemberIDs:   req.MemberIDs,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, view)
}

// Delete removes a project together with its tasks and their comments.
//
// @Summary      Delete a project
// @Tags         projects
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Project id"
// @Success      200  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /post/projects/{id} [delete]
func (h *ProjectHandler) Delete(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}
	if err := h.projects.Delete(c.Request().Context(), userID, c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "project deleted"})
}

// MyTasks returns the caller's assigned tasks in a project.
//
// @Summary      My tasks in a project
// @Tags         projects
// @Produce      json
// @Security     BearerAuth
// @Param        id      path      string  true   "Project id"
// @Param        status  query     string  false  "Restrict to one status"
// @Success      200     {array}   ports.TaskView
// @Failure      400     {object}  map[string]string
// @Failure      403     {object}  map[string]string
// @Failure      404     {object}  map[string]string
// @Router       /post/projects/{id}/my-tasks [get]
func (h *ProjectHandler) MyTasks(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}
	views, err := h.tasks.MyProjectTasks(c.Request().Context(), userID, c.Param("id"), c.QueryParam("status"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, views)
}

// Activity returns the latest activity entries of a project.
//
// @Summary      Project activity feed
// @Tags         projects
// @Produce      json
// @Security     BearerAuth
// @Param        id     path      string  true   "Project id"
// @Param        limit  query     int     false  "Max entries (default 50, max 200)"
// @Success      200    {array}   domain.Activity
// @Failure      404    {object}  map[string]string
// @Router       /post/projects/{id}/activity [get]
func (h *ProjectHandler) Activity(c echo.Context) error {
	_, limit := pageParams(c)
	entries, err := h.activities.ProjectFeed(c.Request().Context(), c.Param("id"), limit)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, entries)
}

// UserProjects lists the projects a user belongs to. Self only.
//
// @Summary      A user's projects
// @Tags         projects
// @Produce      json
// @Security     BearerAuth
// @Param        userId  path      string  true  "User id (must be the caller)"
// @Success      200     {array}   ports.UserProjectSummary
// @Failure      403     {object}  map[string]string
// @Router       /post/users/{userId}/projects [get]
func (h *ProjectHandler) UserProjects(c echo.Context) error {
	callerID, err := ctxUserID(c)
	if err != nil {
		return err
	}
	summaries, err := h.projects.UserProjects(c.Request().Context(), callerID, c.Param("userId"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, summaries)
}

// UsersWithProjects lists users each with the projects they belong to.
//
// @Summary      Users with their projects
// @Tags         projects
// @Produce      json
// @Security     BearerAuth
// @Param        page   query     int  false  "Page number"
// @Param        limit  query     int  false  "Page size"
// @Success      200    {object}  ports.UsersWithProjectsPage
// @Router       /post/users-with-projects [get]
func (h *ProjectHandler) UsersWithProjects(c echo.Context) error {
	page, limit := pageParams(c)
	result, err := h.users.UsersWithProjects(c.Request().Context(), page, limit)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, result)
}
