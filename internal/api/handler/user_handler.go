package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/teamboard/project-system/internal/core/ports"
)

// UserHandler serves the user and client directory.
type UserHandler struct {
	users ports.UserService
}

func NewUserHandler(users ports.UserService) *UserHandler {
	return &UserHandler{users: users}
}

// Me returns the caller's own profile.
//
// @Summary      Current user profile
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  domain.User
// @Failure      401  {object}  map[string]string
// @Router       /user/me [get]
func (h *UserHandler) Me(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}
	user, err := h.users.Me(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// List returns a page of users.
//
// @Summary      List users
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        page   query     int  false  "Page number (default 1)"
// @Param        limit  query     int  false  "Page size (default 10, max 100)"
// @Success      200    {object}  ports.UserPage
// @Router       /user/all [get]
func (h *UserHandler) List(c echo.Context) error {
	page, limit := pageParams(c)
	result, err := h.users.ListUsers(c.Request().Context(), page, limit)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, result)
}

// ListClients returns a page of client organizations.
//
// @Summary      List clients
// @Tags         clients
// @Produce      json
// @Security     BearerAuth
// @Param        page   query     int  false  "Page number"
// @Param        limit  query     int  false  "Page size"
// @Success      200    {object}  ports.ClientPage
// @Router       /user/clients [get]
func (h *UserHandler) ListClients(c echo.Context) error {
	page, limit := pageParams(c)
	result, err := h.users.ListClients(c.Request().Context(), page, limit)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, result)
}

// SearchClients filters clients by name substring.
//
// @Summary      Search clients by name
// @Tags         clients
// @Produce      json
// @Security     BearerAuth
// @Param        query  query     string  false  "Case-insensitive name substring"
// @Param        page   query     int     false  "Page number"
// @Param        limit  query     int     false  "Page size"
// @Success      200    {object}  ports.ClientPage
// @Router       /user/clients/search [get]
func (h *UserHandler) SearchClients(c echo.Context) error {
	page, limit := pageParams(c)
	result, err := h.users.SearchClients(c.Request().Context(), c.QueryParam("query"), page, limit)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, result)
}

// CreateClient registers a client organization. Admin only (enforced by the
// RBAC middleware on the route).
//
// @Summary      Create a client
// @Tags         clients
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createClientRequest  true  "Client details"
// @Success      201   {object}  domain.Client
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /user/clients [post]
func (h *UserHandler) CreateClient(c echo.Context) error {
	var req createClientRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	client, err := h.users.CreateClient(c.Request().Context(), ports.CreateClientInput{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Address: req.Address,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, client)
}
