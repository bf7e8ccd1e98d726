package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/dashkit/admin-api/internal/core/ports"
)

// ActivityHandler serves the recent-activity feed.
type ActivityHandler struct {
	service ports.ActivityService
}

func NewActivityHandler(service ports.ActivityService) *ActivityHandler {
	return &ActivityHandler{service: service}
}

// List handles GET /api/activities.
//
// @Summary      List recent activity
// @Tags         activities
// @Produce      json
// @Security     BearerAuth
// @Param        page    query     int     false  "Page number (default 1)"
// @Param        limit   query     int     false  "Page size (default 10, max 100)"
// @Param        userId  query     string  false  "Only activity by this user"
// @Success      200     {object}  listActivitiesEnvelope
// @Failure      400     {object}  ErrorResponse
// @Failure      403     {object}  ErrorResponse
// @Failure      500     {object}  ErrorResponse
// @Router       /api/activities [get]
func (h *ActivityHandler) List(c echo.Context) error {
	page, limit, err := parsePagination(c)
	if err != nil {
		return err
	}

	result, err := h.service.List(c.Request().Context(), ports.ListActivitiesInput{
		UserID: c.QueryParam("userId"),
		Page:   page,
		Limit:  limit,
	})
	if err != nil {
		return HTTPError(err, "Failed to fetch activity")
	}

	items := make([]activityResponse, len(result.Items))
	for i, a := range result.Items {
		items[i] = toActivityResponse(a)
	}
	return success(c, http.StatusOK, "Activity fetched successfully", echo.Map{
		"activities": items,
		"pagination": toPagination(result.Total, result.Page, result.Limit, result.TotalPages),
	})
}
