package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/dashkit/admin-api/internal/core/ports"
)

const statusTimeout = 3 * time.Second

type StatusService struct {
	store  ports.Pinger
	users  ports.UserRepository
	posts  ports.PostRepository
	logger zerolog.Logger
}

func NewStatusService(store ports.Pinger, users ports.UserRepository, posts ports.PostRepository, logger zerolog.Logger) *StatusService {
	return &StatusService{store: store, users: users, posts: posts, logger: logger}
}

// Check pings the store and, when reachable, counts users and posts.
func (s *StatusService) Check(ctx context.Context) *ports.StoreStatus {
	ctx, cancel := context.WithTimeout(ctx, statusTimeout)
	defer cancel()

	status := &ports.StoreStatus{LastChecked: time.Now().UTC()}
	if err := s.store.Ping(ctx); err != nil {
		s.logger.Warn().Err(err).Msg("store ping failed")
		status.Error = err.Error()
		return status
	}
	status.Connected = true

	var err error
	if status.Users, err = s.users.Count(ctx); err != nil {
		status.Error = err.Error()
		return status
	}
	if status.Posts, err = s.posts.Count(ctx, nil); err != nil {
		status.Error = err.Error()
	}
	return status
}
