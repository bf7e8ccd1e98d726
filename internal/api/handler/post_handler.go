package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/dashkit/admin-api/internal/api/metrics"
	"github.com/dashkit/admin-api/internal/core/domain"
	"github.com/dashkit/admin-api/internal/core/ports"
)

// PostHandler handles HTTP requests for posts.
type PostHandler struct {
	service ports.PostService
}

func NewPostHandler(service ports.PostService) *PostHandler {
	return &PostHandler{service: service}
}

// List handles GET /api/posts.
//
// @Summary      List posts
// @Tags         posts
// @Produce      json
// @Security     BearerAuth
// @Param        page       query     int     false  "Page number (default 1)"
// @Param        limit      query     int     false  "Page size (default 10, max 100)"
// @Param        published  query     bool    false  "Filter by published flag"
// @Param        authorId   query     string  false  "Filter by author"
// @Param        search     query     string  false  "Case-insensitive match on title or content"
// @Success      200        {object}  listPostsEnvelope
// @Failure      400        {object}  ErrorResponse
// @Failure      401        {object}  ErrorResponse
// @Failure      500        {object}  ErrorResponse
// @Router       /api/posts [get]
func (h *PostHandler) List(c echo.Context) error {
	page, limit, err := parsePagination(c)
	if err != nil {
		return err
	}

	result, err := h.service.ListPosts(c.Request().Context(), ports.ListPostsInput{
		Page:      page,
		Limit:     limit,
		Published: parsePublished(c),
		AuthorID:  c.QueryParam("authorId"),
		Search:    c.QueryParam("search"),
	})
	if err != nil {
		return HTTPError(err, "Failed to fetch posts")
	}

	return success(c, http.StatusOK, "Posts fetched successfully", echo.Map{
		"posts":      toPostResponses(result.Items),
		"pagination": toPagination(result.Total, result.Page, result.Limit, result.TotalPages),
	})
}

// Stats handles GET /api/posts/stats.
//
// @Summary      Post statistics
// @Tags         posts
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  postStatsEnvelope
// @Failure      401  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /api/posts/stats [get]
func (h *PostHandler) Stats(c echo.Context) error {
	stats, err := h.service.Stats(c.Request().Context())
	if err != nil {
		return HTTPError(err, "Failed to fetch post statistics")
	}
	return success(c, http.StatusOK, "Post statistics fetched successfully", echo.Map{
		"stats": toPostStatsResponse(stats),
	})
}

// Get handles GET /api/posts/:id.
//
// @Summary      Get a post
// @Tags         posts
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Post ID"
// @Success      200  {object}  postEnvelope
// @Failure      401  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /api/posts/{id} [get]
func (h *PostHandler) Get(c echo.Context) error {
	post, err := h.service.GetPost(c.Request().Context(), c.Param("id"))
	if err != nil {
		return HTTPError(err, "Failed to fetch post")
	}
	return success(c, http.StatusOK, "Post fetched successfully", echo.Map{
		"post": toPostResponse(post),
	})
}

// Create handles POST /api/posts.
//
// @Summary      Create a post
// @Tags         posts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createPostRequest  true  "Post details"
// @Success      201   {object}  postEnvelope
// @Failure      400   {object}  ErrorResponse
// @Failure      404   {object}  ErrorResponse
// @Failure      500   {object}  ErrorResponse
// @Router       /api/posts [post]
func (h *PostHandler) Create(c echo.Context) error {
	var req createPostRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	post, err := h.service.CreatePost(c.Request().Context(), ports.CreatePostInput{
		Title:     req.Title,
		Content:   req.Content,
		Published: req.Published,
		AuthorID:  req.AuthorID,
		ActorID:   actorID(c),
	})
	if err != nil {
		return HTTPError(err, "Failed to create post")
	}

	metrics.PostsCreatedTotal.WithLabelValues(strconv.FormatBool(post.Published)).Inc()
	return success(c, http.StatusCreated, "Post created successfully", echo.Map{
		"post": toPostResponse(post),
	})
}

// Update handles PATCH /api/posts/:id. The post is loaded first so a missing
// id is reported as 404 before any write.
//
// @Summary      Update a post
// @Tags         posts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string             true  "Post ID"
// @Param        body  body      updatePostRequest  true  "Fields to change"
// @Success      200   {object}  postEnvelope
// @Failure      400   {object}  ErrorResponse
// @Failure      404   {object}  ErrorResponse
// @Failure      500   {object}  ErrorResponse
// @Router       /api/posts/{id} [patch]
func (h *PostHandler) Update(c echo.Context) error {
	id := c.Param("id")
	var req updatePostRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	patch := domain.PostPatch{Title: req.Title, Content: req.Content, Published: req.Published}
	if err := patch.Validate(); err != nil {
		return HTTPError(err, "")
	}

	ctx := c.Request().Context()
	if _, err := h.service.GetPost(ctx, id); err != nil {
		return HTTPError(err, "Failed to update post")
	}

	post, err := h.service.UpdatePost(ctx, ports.UpdatePostInput{ID: id, Patch: patch, ActorID: actorID(c)})
	if err != nil {
		return HTTPError(err, "Failed to update post")
	}
	return success(c, http.StatusOK, "Post updated successfully", echo.Map{
		"post": toPostResponse(post),
	})
}

// Delete handles DELETE /api/posts/:id.
//
// @Summary      Delete a post
// @Tags         posts
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Post ID"
// @Success      200  {object}  messageEnvelope
// @Failure      404  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /api/posts/{id} [delete]
func (h *PostHandler) Delete(c echo.Context) error {
	id := c.Param("id")
	ctx := c.Request().Context()

	if _, err := h.service.GetPost(ctx, id); err != nil {
		return HTTPError(err, "Failed to delete post")
	}
	if err := h.service.DeletePost(ctx, id, actorID(c)); err != nil {
		return HTTPError(err, "Failed to delete post")
	}

	metrics.PostsDeletedTotal.Inc()
	return success(c, http.StatusOK, "Post deleted successfully", nil)
}
