package service

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/dashkit/admin-api/internal/core/domain"
	"github.com/dashkit/admin-api/internal/core/ports"
	"github.com/dashkit/admin-api/internal/infrastructure/db/memory"
)

func TestActivityService_ProcessAndList(t *testing.T) {
	store := memory.NewStore()
	svc := NewActivityService(store.Activities(), zerolog.Nop())
	ctx := context.Background()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	require.NoError(t, svc.Process(ctx, domain.Activity{UserID: "u1", Action: domain.ActionLogin, CreatedAt: base}))
	require.NoError(t, svc.Process(ctx, domain.Activity{UserID: "u2", Action: domain.ActionCreate, CreatedAt: base.Add(time.Minute)}))
	require.NoError(t, svc.Process(ctx, domain.Activity{UserID: "u1", Action: domain.ActionLogout, CreatedAt: base.Add(2 * time.Minute)}))

	res, err := svc.List(ctx, ports.ListActivitiesInput{Page: 1, Limit: 10})
	require.NoError(t, err)
	require.EqualValues(t, 3, res.Total)
	require.Equal(t, domain.ActionLogout, res.Items[0].Action)

	res, err = svc.List(ctx, ports.ListActivitiesInput{UserID: "u1", Page: 1, Limit: 1})
	require.NoError(t, err)
	require.EqualValues(t, 2, res.Total)
	require.Equal(t, 2, res.TotalPages)
	require.Len(t, res.Items, 1)
}

func TestActivityService_ProcessRequiresAction(t *testing.T) {
	svc := NewActivityService(memory.NewStore().Activities(), zerolog.Nop())
	require.ErrorIs(t, svc.Process(context.Background(), domain.Activity{UserID: "u1"}), domain.ErrValidation)
}
