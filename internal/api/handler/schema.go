package handler

import "time"

// --- Requests ---

type createUserRequest struct {
	Name  string `json:"name"  validate:"required"`
	Email string `json:"email" validate:"required,email"`
	Image string `json:"image"`
}

// updateUserRequest uses pointers so absent fields stay untouched.
type updateUserRequest struct {
	Name   *string `json:"name"`
	Email  *string `json:"email"`
	Image  *string `json:"image"`
	Status *string `json:"status"`
	Role   *string `json:"role"`
}

type createPostRequest struct {
	Title     string `json:"title"    validate:"required"`
	Content   string `json:"content"`
	Published bool   `json:"published"`
	AuthorID  string `json:"authorId" validate:"required"`
}

type updatePostRequest struct {
	Title     *string `json:"title"`
	Content   *string `json:"content"`
	Published *bool   `json:"published"`
}

type registerRequest struct {
	Name     string `json:"name"     validate:"required"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required"`
	Password string `json:"password" validate:"required"`
}

type forgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// --- Responses ---
// Response-only types owned by the transport layer, kept separate from domain
// types so the JSON contract does not follow internal changes.

type authorResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Image string `json:"image,omitempty"`
}

type postResponse struct {
	ID        string          `json:"id"`
	Title     string          `json:"title"`
	Content   string          `json:"content"`
	Published bool            `json:"published"`
	AuthorID  string          `json:"authorId"`
	Author    *authorResponse `json:"author,omitempty"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

type userResponse struct {
	ID        string         `json:"id"`
	Name      string         `json:"name"`
	Email     string         `json:"email"`
	Image     string         `json:"image,omitempty"`
	Role      string         `json:"role"`
	Status    string         `json:"status"`
	PostCount *int64         `json:"postCount,omitempty"`
	Posts     []postResponse `json:"posts,omitempty"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
}

type activityResponse struct {
	ID          string    `json:"id"`
	UserID      string    `json:"userId"`
	Action      string    `json:"action"`
	Entity      string    `json:"entity,omitempty"`
	EntityID    string    `json:"entityId,omitempty"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
}

type paginationResponse struct {
	Total int64 `json:"total"`
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Pages int   `json:"pages"`
}

type postStatsResponse struct {
	Total               int64 `json:"total"`
	Published           int64 `json:"published"`
	Unpublished         int64 `json:"unpublished"`
	PublishedPercentage int   `json:"publishedPercentage"`
}

// The envelopes below exist for the API docs; handlers build them with success().

type userEnvelope struct {
	Status  string       `json:"status"`
	Message string       `json:"message"`
	User    userResponse `json:"user"`
}

type listUsersEnvelope struct {
	Status     string             `json:"status"`
	Message    string             `json:"message"`
	Users      []userResponse     `json:"users"`
	Pagination paginationResponse `json:"pagination"`
}

type postEnvelope struct {
	Status  string       `json:"status"`
	Message string       `json:"message"`
	Post    postResponse `json:"post"`
}

type listPostsEnvelope struct {
	Status     string             `json:"status"`
	Message    string             `json:"message"`
	Posts      []postResponse     `json:"posts"`
	Pagination paginationResponse `json:"pagination"`
}

type postStatsEnvelope struct {
	Status  string            `json:"status"`
	Message string            `json:"message"`
	Stats   postStatsResponse `json:"stats"`
}

type listActivitiesEnvelope struct {
	Status     string             `json:"status"`
	Message    string             `json:"message"`
	Activities []activityResponse `json:"activities"`
	Pagination paginationResponse `json:"pagination"`
}

type loginEnvelope struct {
	Status    string       `json:"status"`
	Message   string       `json:"message"`
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expiresAt"`
	User      userResponse `json:"user"`
}

type messageEnvelope struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

type connectionResponse struct {
	Connected bool   `json:"connected"`
	Error     string `json:"error,omitempty"`
}

type storeStatsResponse struct {
	Users       int64     `json:"users"`
	Posts       int64     `json:"posts"`
	LastChecked time.Time `json:"lastChecked"`
}

type storeStatusEnvelope struct {
	Status     string             `json:"status"`
	Message    string             `json:"message"`
	Connection connectionResponse `json:"connection"`
	Stats      storeStatsResponse `json:"stats"`
}
