package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/dashkit/admin-api/internal/core/domain"
	"github.com/dashkit/admin-api/internal/core/ports"
)

const defaultAdminPassword = "change-me-admin"

type sampleUser struct {
	name, email, image string
	role               domain.Role
	posts              []samplePost
}

type samplePost struct {
	title, content string
	published      bool
}

var sampleUsers = []sampleUser{
	{name: "Admin", email: "admin@example.com", role: domain.RoleAdmin},
	{
		name: "Alice Johnson", email: "alice@example.com", image: "https://randomuser.me/api/portraits/women/1.jpg", role: domain.RoleManager,
		posts: []samplePost{
			{title: "Welcome to the dashboard", content: "A quick tour of the admin area.", published: true},
			{title: "Draft: Q3 roadmap", content: "Work in progress."},
		},
	},
	{
		name: "Bob Smith", email: "bob@example.com", image: "https://randomuser.me/api/portraits/men/1.jpg", role: domain.RoleUser,
		posts: []samplePost{{title: "Getting started with posts", content: "How to publish your first post.", published: true}},
	},
	{name: "Charlie Garcia", email: "charlie@example.com", image: "https://randomuser.me/api/portraits/men/2.jpg", role: domain.RoleUser},
	{
		name: "Diana Lee", email: "diana@example.com", image: "https://randomuser.me/api/portraits/women/2.jpg", role: domain.RoleUser,
		posts: []samplePost{{title: "Notes on moderation", content: "Keeping discussions friendly."}},
	},
	{name: "Ethan Wright", email: "ethan@example.com", image: "https://randomuser.me/api/portraits/men/3.jpg", role: domain.RoleUser},
	{name: "Fiona Martinez", email: "fiona@example.com", image: "https://randomuser.me/api/portraits/women/3.jpg", role: domain.RoleUser},
	{name: "George Chen", email: "george@example.com", image: "https://randomuser.me/api/portraits/men/4.jpg", role: domain.RoleUser},
	{name: "Hannah Kim", email: "hannah@example.com", image: "https://randomuser.me/api/portraits/women/4.jpg", role: domain.RoleUser},
}

type seedResult struct {
	Users   int
	Skipped int
	Posts   int
}

// seed inserts sampleUsers and their posts. Users whose email already exists
// are skipped together with their posts, so running it twice is harmless.
// Only the admin account gets a password.
func seed(ctx context.Context, users ports.UserRepository, posts ports.PostRepository, adminPassword string) (seedResult, error) {
	var res seedResult

	hash, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	if err != nil {
		return res, fmt.Errorf("hash admin password: %w", err)
	}

	now := time.Now().UTC()
	for _, su := range sampleUsers {
		_, err := users.FindByEmail(ctx, su.email)
		if err == nil {
			res.Skipped++
			continue
		}
		if !errors.Is(err, domain.ErrUserNotFound) {
			return res, fmt.Errorf("lookup %s: %w", su.email, err)
		}

		u := &domain.User{
			Name:   su.name,
			Email:  su.email,
			Image:  su.image,
			Role:   su.role,
			Status: domain.StatusActive,

			CreatedAt: now,
			UpdatedAt: now,
		}
		if su.role == domain.RoleAdmin {
			u.PasswordHash = string(hash)
		}
		created, err := users.Create(ctx, u)
		if err != nil {
			return res, fmt.Errorf("create %s: %w", su.email, err)
		}
		res.Users++

		for _, sp := range su.posts {
			if _, err := posts.Create(ctx, &domain.Post{
				Title:     sp.title,
				Content:   sp.content,
				Published: sp.published,
				AuthorID:  created.ID,
				CreatedAt: now,
				UpdatedAt: now,
			}); err != nil {
				return res, fmt.Errorf("create post %q: %w", sp.title, err)
			}
			res.Posts++
		}
	}
	return res, nil
}
