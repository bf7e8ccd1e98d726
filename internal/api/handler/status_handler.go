package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/dashkit/admin-api/internal/core/ports"
)

// StatusHandler reports backing store connectivity and record counts.
type StatusHandler struct {
	service ports.StatusService
}

func NewStatusHandler(service ports.StatusService) *StatusHandler {
	return &StatusHandler{service: service}
}

// Store handles GET /api/db/status.
//
// @Summary      Database status
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  storeStatusEnvelope
// @Failure      403  {object}  ErrorResponse
// @Failure      500  {object}  storeStatusEnvelope
// @Router       /api/db/status [get]
func (h *StatusHandler) Store(c echo.Context) error {
	st := h.service.Check(c.Request().Context())

	body := storeStatusEnvelope{
		Status:     statusSuccess,
		Message:    "Database connection is healthy",
		Connection: connectionResponse{Connected: st.Connected, Error: st.Error},
		Stats: storeStatsResponse{
			Users:       st.Users,
			Posts:       st.Posts,
			LastChecked: st.LastChecked,
		},
	}
	if !st.Connected {
		body.Status = statusError
		body.Message = "Failed to connect to database"
		return c.JSON(http.StatusInternalServerError, body)
	}
	return c.JSON(http.StatusOK, body)
}
