package queue

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/dashkit/admin-api/internal/core/domain"
	"github.com/dashkit/admin-api/internal/core/ports"
)

type stubActivityService struct {
	mu        sync.Mutex
	processed []domain.Activity
	block     chan struct{}
	err       error
}

func (s *stubActivityService) Process(ctx context.Context, a domain.Activity) error {
	if s.block != nil {
		<-s.block
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.processed = append(s.processed, a)
	return s.err
}

func (s *stubActivityService) List(ctx context.Context, in ports.ListActivitiesInput) (*ports.ListActivitiesResult, error) {
	return nil, errors.New("not implemented")
}

func (s *stubActivityService) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.processed)
}

func TestDispatcher_CloseDrainsQueue(t *testing.T) {
	svc := &stubActivityService{}
	d := NewDispatcher(3, svc, zerolog.Nop())
	d.Start()

	for i := 0; i < 50; i++ {
		d.Record(domain.Activity{UserID: "user", Action: domain.ActionUpdate})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, d.Close(ctx))
	require.Equal(t, 50, svc.count())
}

func TestDispatcher_PreservesPerUserOrder(t *testing.T) {
	svc := &stubActivityService{}
	d := NewDispatcher(4, svc, zerolog.Nop())
	d.Start()

	actions := []domain.ActivityAction{domain.ActionLogin, domain.ActionCreate, domain.ActionUpdate, domain.ActionLogout}
	for _, a := range actions {
		d.Record(domain.Activity{UserID: "same-user", Action: a})
	}
	require.NoError(t, d.Close(context.Background()))

	got := make([]domain.ActivityAction, len(svc.processed))
	for i, a := range svc.processed {
		got[i] = a.Action
	}
	require.Equal(t, actions, got)
}

func TestDispatcher_StampsCreatedAt(t *testing.T) {
	svc := &stubActivityService{}
	d := NewDispatcher(1, svc, zerolog.Nop())
	d.Start()

	d.Record(domain.Activity{UserID: "u", Action: domain.ActionLogin})
	require.NoError(t, d.Close(context.Background()))
	require.False(t, svc.processed[0].CreatedAt.IsZero())
}

func TestDispatcher_DropsWhenFullOrClosed(t *testing.T) {
	svc := &stubActivityService{block: make(chan struct{})}
	d := NewDispatcher(1, svc, zerolog.Nop())
	d.Start()

	// One entry is held by the blocked worker; the channel holds channelBuffer more.
	for i := 0; i < channelBuffer+10; i++ {
		d.Record(domain.Activity{UserID: "u", Action: domain.ActionCreate})
	}
	close(svc.block)
	require.NoError(t, d.Close(context.Background()))

	processed := svc.count()
	require.LessOrEqual(t, processed, channelBuffer+1)
	require.Greater(t, processed, 0)

	d.Record(domain.Activity{UserID: "u", Action: domain.ActionCreate})
	require.Equal(t, processed, svc.count())
}

func TestDispatcher_ProcessErrorDoesNotStopWorker(t *testing.T) {
	svc := &stubActivityService{err: errors.New("db down")}
	d := NewDispatcher(1, svc, zerolog.Nop())
	d.Start()

	d.Record(domain.Activity{UserID: "u", Action: domain.ActionLogin})
	d.Record(domain.Activity{UserID: "u", Action: domain.ActionLogout})
	require.NoError(t, d.Close(context.Background()))
	require.Equal(t, 2, svc.count())
}

func TestShardIndex_IsStable(t *testing.T) {
	d := NewDispatcher(8, &stubActivityService{}, zerolog.Nop())
	require.Equal(t, d.shardIndex("abc"), d.shardIndex("abc"))
	idx := d.shardIndex("abc")
	require.True(t, idx >= 0 && idx < 8)
}
