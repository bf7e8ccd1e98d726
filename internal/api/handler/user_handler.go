package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/dashkit/admin-api/internal/api/metrics"
	"github.com/dashkit/admin-api/internal/core/domain"
	"github.com/dashkit/admin-api/internal/core/ports"
)

// UserHandler handles HTTP requests for user administration.
type UserHandler struct {
	service ports.UserService
}

func NewUserHandler(service ports.UserService) *UserHandler {
	return &UserHandler{service: service}
}

// List handles GET /api/users.
//
// @Summary      List users
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        page    query     int     false  "Page number (default 1)"
// @Param        limit   query     int     false  "Page size (default 10, max 100)"
// @Param        search  query     string  false  "Case-insensitive match on name or email"
// @Success      200     {object}  listUsersEnvelope
// @Failure      400     {object}  ErrorResponse
// @Failure      401     {object}  ErrorResponse
// @Failure      500     {object}  ErrorResponse
// @Router       /api/users [get]
func (h *UserHandler) List(c echo.Context) error {
	page, limit, err := parsePagination(c)
	if err != nil {
		return err
	}

	result, err := h.service.ListUsers(c.Request().Context(), ports.ListUsersInput{
		Page:   page,
		Limit:  limit,
		Search: c.QueryParam("search"),
	})
	if err != nil {
		return HTTPError(err, "Failed to fetch users")
	}

	users := make([]userResponse, len(result.Items))
	for i, item := range result.Items {
		users[i] = toUserSummaryResponse(item)
	}
	return success(c, http.StatusOK, "Users fetched successfully", echo.Map{
		"users":      users,
		"pagination": toPagination(result.Total, result.Page, result.Limit, result.TotalPages),
	})
}

// Get handles GET /api/users/:id.
//
// @Summary      Get a user with its posts
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "User ID"
// @Success      200  {object}  userEnvelope
// @Failure      401  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /api/users/{id} [get]
func (h *UserHandler) Get(c echo.Context) error {
	detail, err := h.service.GetUser(c.Request().Context(), c.Param("id"))
	if err != nil {
		return HTTPError(err, "Failed to fetch user")
	}
	return success(c, http.StatusOK, "User fetched successfully", echo.Map{
		"user": toUserDetailResponse(detail),
	})
}

// Create handles POST /api/users.
//
// @Summary      Create a user
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createUserRequest  true  "User details"
// @Success      201   {object}  userEnvelope
// @Failure      400   {object}  ErrorResponse
// @Failure      403   {object}  ErrorResponse
// @Failure      409   {object}  ErrorResponse
// @Failure      500   {object}  ErrorResponse
// @Router       /api/users [post]
func (h *UserHandler) Create(c echo.Context) error {
	var req createUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	req.Email = domain.NormalizeEmail(req.Email)
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	ctx := c.Request().Context()
	if _, err := h.service.GetUserByEmail(ctx, req.Email); err == nil {
		return HTTPError(domain.ErrDuplicateEmail, "")
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return HTTPError(err, "Failed to create user")
	}

	user, err := h.service.CreateUser(ctx, ports.CreateUserInput{
		Name:    req.Name,
		Email:   req.Email,
		Image:   req.Image,
		ActorID: actorID(c),
	})
	if err != nil {
		return HTTPError(err, "Failed to create user")
	}

	metrics.UsersCreatedTotal.WithLabelValues("admin").Inc()
	return success(c, http.StatusCreated, "User created successfully", echo.Map{
		"user": toUserResponse(user),
	})
}

// Update handles PATCH /api/users/:id. Only fields present in the body change.
// The target is loaded first (404) and a changed email is checked for
// collisions (409) before the update is issued; neither check is atomic with
// the write.
//
// @Summary      Update a user
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string             true  "User ID"
// @Param        body  body      updateUserRequest  true  "Fields to change"
// @Success      200   {object}  userEnvelope
// @Failure      400   {object}  ErrorResponse
// @Failure      403   {object}  ErrorResponse
// @Failure      404   {object}  ErrorResponse
// @Failure      409   {object}  ErrorResponse
// @Failure      500   {object}  ErrorResponse
// @Router       /api/users/{id} [patch]
func (h *UserHandler) Update(c echo.Context) error {
	id := c.Param("id")
	var req updateUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	patch := toUserPatch(req)
	if err := patch.Validate(); err != nil {
		return HTTPError(err, "")
	}

	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}
	if patch.Role != nil && claims.Role != domain.RoleAdmin {
		return echo.NewHTTPError(http.StatusForbidden, "Only administrators can change roles")
	}

	ctx := c.Request().Context()
	existing, err := h.service.GetUser(ctx, id)
	if err != nil {
		return HTTPError(err, "Failed to update user")
	}

	if patch.Email != nil && !strings.EqualFold(*patch.Email, existing.User.Email) {
		other, err := h.service.GetUserByEmail(ctx, *patch.Email)
		switch {
		case err == nil && other.ID != id:
			return HTTPError(domain.ErrDuplicateEmail, "")
		case err != nil && !errors.Is(err, domain.ErrUserNotFound):
			return HTTPError(err, "Failed to update user")
		}
	}

	user, err := h.service.UpdateUser(ctx, ports.UpdateUserInput{
		ID:      id,
		Patch:   patch,
		ActorID: claims.UserID,
	})
	if err != nil {
		return HTTPError(err, "Failed to update user")
	}

	return success(c, http.StatusOK, "User updated successfully", echo.Map{
		"user": toUserResponse(user),
	})
}

// Delete handles DELETE /api/users/:id, removing the user and all of its posts.
//
// @Summary      Delete a user and its posts
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "User ID"
// @Success      200  {object}  messageEnvelope
// @Failure      403  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /api/users/{id} [delete]
func (h *UserHandler) Delete(c echo.Context) error {
	id := c.Param("id")
	ctx := c.Request().Context()

	if _, err := h.service.GetUser(ctx, id); err != nil {
		return HTTPError(err, "Failed to delete user")
	}
	if err := h.service.DeleteUser(ctx, id, actorID(c)); err != nil {
		return HTTPError(err, "Failed to delete user")
	}

	metrics.UsersDeletedTotal.Inc()
	return success(c, http.StatusOK, "User deleted successfully", nil)
}
