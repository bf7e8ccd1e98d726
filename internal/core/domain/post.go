package domain

import (
	"math"
	"strings"
	"time"
)

// Author is the public projection of a post's owner.
type Author struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Image string `json:"image,omitempty"`
}

// AuthorOf projects a user into its author view.
func AuthorOf(u *User) *Author {
	if u == nil {
		return nil
	}
	return &Author{ID: u.ID, Name: u.Name, Email: u.Email, Image: u.Image}
}

// Post is content authored by exactly one user.
type Post struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content,omitempty"`
	Published bool      `json:"published"`
	AuthorID  string    `json:"authorId"`
	Author    *Author   `json:"author,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// PostPatch carries a partial post update. Nil fields are left untouched.
type PostPatch struct {
	Title     *string
	Content   *string
	Published *bool
}

// IsEmpty reports whether the patch changes nothing.
func (p PostPatch) IsEmpty() bool {
	return p.Title == nil && p.Content == nil && p.Published == nil
}

// Validate checks every present field.
func (p PostPatch) Validate() error {
	if p.Title != nil && strings.TrimSpace(*p.Title) == "" {
		return NewValidationError("title cannot be empty")
	}
	return nil
}

// PostStats summarises publication state across all posts.
type PostStats struct {
	Total               int64 `json:"total"`
	Published           int64 `json:"published"`
	Unpublished         int64 `json:"unpublished"`
	PublishedPercentage int   `json:"publishedPercentage"`
}

// NewPostStats computes the rounded published percentage; it is 0 when there are no posts.
func NewPostStats(total, published, unpublished int64) PostStats {
	stats := PostStats{Total: total, Published: published, Unpublished: unpublished}
	if total > 0 {
		stats.PublishedPercentage = int(math.Round(float64(published) / float64(total) * 100))
	}
	return stats
}
