package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/teamboard/project-system/internal/api/metrics"
	"github.com/teamboard/project-system/internal/core/ports"
)

// TaskHandler serves task CRUD and listings.
type TaskHandler struct {
	tasks ports.TaskService
}

func NewTaskHandler(tasks ports.TaskService) *TaskHandler {
	return &TaskHandler{tasks: tasks}
}

// Create creates a task in a project.
//
// @Summary      Create a task
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string             true  "Project id"
// @Param        body  body      createTaskRequest  true  "Task details"
// @Success      201   {object}  ports.TaskView
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /post/tasks/{id} [post]
func (h *TaskHandler) Create(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	var req createTaskRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	view, err := h.tasks.Create(c.Request().Context(), userID, ports.CreateTaskInput{
		ProjectID:    c.Param("id"),
		Title:        req.Title,
		Description:  req.Description,
		Status:       req.Status,
		Priority:     req.Priority,
		DueDate:      req.DueDate,
		ParentTaskID: req.ParentTaskID,
		AssigneeIDs:  req.AssigneeIDs,
	})
	if err != nil {
		return err
	}

	metrics.TasksCreatedTotal.WithLabelValues(strconv.Itoa(view.Priority)).Inc()
	return c.JSON(http.StatusCreated, view)
}

// ListByProject returns a page of a project's tasks.
//
// @Summary      List a project's tasks
// @Tags         tasks
// @Produce      json
// @Security     BearerAuth
// @Param        id     path      string  true   "Project id"
// @Param        page   query     int     false  "Page number"
// @Param        limit  query     int     false  "Page size"
// @Success      200    {object}  ports.TaskPage
// @Failure      404    {object}  map[string]string
// @Router       /post/tasks/{id} [get]
func (h *TaskHandler) ListByProject(c echo.Context) error {
	page, limit := pageParams(c)
	result, err := h.tasks.ListByProject(c.Request().Context(), c.Param("id"), page, limit)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, result)
}

// List returns a page of tasks across projects, filtered conjunctively.
//
// @Summary      List tasks
// @Tags         tasks
// @Produce      json
// @Security     BearerAuth
// @Param        page        query     int     false  "Page number"
// @Param        limit       query     int     false  "Page size"
// @Param        status      query     string  false  "Task status"
// @Param        projectId   query     string  false  "Project id"
// @Param        assigneeId  query     string  false  "Assignee user id"
// @Success      200         {object}  ports.TaskPage
// @Failure      400         {object}  map[string]string
// @Router       /post/tasks [get]
func (h *TaskHandler) List(c echo.Context) error {
	page, limit := pageParams(c)
	result, err := h.tasks.List(c.Request().Context(), ports.ListTasksInput{
		Page:       page,
		Limit:      limit,
		Status:     c.QueryParam("status"),
		ProjectID:  c.QueryParam("projectId"),
		AssigneeID: c.QueryParam("assigneeId"),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, result)
}

// Update applies a partial task update.
//
// @Summary      Update a task
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string             true  "Task id"
// @Param        body  body      updateTaskRequest  true  "Fields to change"
// @Success      200   {object}  ports.TaskView
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /post/tasks/{id} [patch]
func (h *TaskHandler) Update(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	var req updateTaskRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	view, err := h.tasks.Update(c.Request().Context(), userID, c.Param("id"), ports.UpdateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		Priority:    req.Priority,
		DueDate:     req.DueDate,
		AssigneeIDs: req.AssigneeIDs,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, view)
}

// Delete removes a task and its comments.
//
// @Summary      Delete a task
// @Tags         tasks
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Task id"
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /post/tasks/{id} [delete]
func (h *TaskHandler) Delete(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}
	if err := h.tasks.Delete(c.Request().Context(), userID, c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "task deleted"})
}
