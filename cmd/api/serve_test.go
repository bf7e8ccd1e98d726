package main

import (
	"context"
	"errors"
	"net/http"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

type fakeServer struct {
	startErr error
	stopped  chan struct{}
	shutdown atomic.Bool
}

func newFakeServer(startErr error) *fakeServer {
	return &fakeServer{startErr: startErr, stopped: make(chan struct{})}
}

func (f *fakeServer) Start(string) error {
	if f.startErr != nil {
		return f.startErr
	}
	<-f.stopped
	return http.ErrServerClosed
}

func (f *fakeServer) Shutdown(context.Context) error {
	if f.shutdown.CompareAndSwap(false, true) {
		close(f.stopped)
	}
	return nil
}

type fakeDrainer struct {
	closed atomic.Bool
}

func (f *fakeDrainer) Close(context.Context) error {
	f.closed.Store(true)
	return nil
}

func TestServe_StartFailureStillDrains(t *testing.T) {
	srv := newFakeServer(errors.New("address already in use"))
	activities := &fakeDrainer{}

	err := serve(context.Background(), srv, ":0", activities, time.Second, zerolog.Nop())
	require.EqualError(t, err, "address already in use")
	require.True(t, activities.closed.Load())
	require.True(t, srv.shutdown.Load())
}

func TestServe_SignalShutsDownAndDrains(t *testing.T) {
	srv := newFakeServer(nil)
	activities := &fakeDrainer{}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := serve(ctx, srv, ":0", activities, time.Second, zerolog.Nop())
	require.NoError(t, err)
	require.True(t, activities.closed.Load())
	require.True(t, srv.shutdown.Load())
}
