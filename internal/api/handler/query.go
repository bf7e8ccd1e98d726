package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/dashkit/admin-api/internal/core/domain"
)

// maxLimit bounds page size so a caller cannot pull a whole collection in one request.
const maxLimit = 100

// parsePagination reads page and limit, defaulting absent values. Non-integer or
// non-positive values are rejected and limit is capped at maxLimit.
func parsePagination(c echo.Context) (page, limit int, err error) {
	page, err = positiveInt(c, "page", domain.DefaultPage)
	if err != nil {
		return 0, 0, err
	}
	limit, err = positiveInt(c, "limit", domain.DefaultLimit)
	if err != nil {
		return 0, 0, err
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	return page, limit, nil
}

func positiveInt(c echo.Context, name string, def int) (int, error) {
	raw := strings.TrimSpace(c.QueryParam(name))
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, name+" must be a positive integer")
	}
	return n, nil
}

// parsePublished returns nil unless the query carries "true" or "false".
func parsePublished(c echo.Context) *bool {
	switch strings.ToLower(strings.TrimSpace(c.QueryParam("published"))) {
	case "true":
		v := true
		return &v
	case "false":
		v := false
		return &v
	}
	return nil
}
