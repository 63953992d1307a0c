package main

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeServer struct {
	startErr   error
	stopped    chan struct{}
	shutdowns  int
	shutdownFn func() error
}

func (f *fakeServer) Start() error {
	if f.startErr != nil {
		return f.startErr
	}
	<-f.stopped
	return http.ErrServerClosed
}

func (f *fakeServer) Shutdown(context.Context) error {
	f.shutdowns++
	close(f.stopped)
	if f.shutdownFn != nil {
		return f.shutdownFn()
	}
	return nil
}

func TestServe_ReturnsListenError(t *testing.T) {
	srv := &fakeServer{startErr: errors.New("address already in use"), stopped: make(chan struct{})}

	err := serve(context.Background(), srv, time.Second)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "address already in use")
	assert.Zero(t, srv.shutdowns)
}

func TestServe_ShutsDownWhenContextEnds(t *testing.T) {
	srv := &fakeServer{stopped: make(chan struct{})}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.NoError(t, serve(ctx, srv, time.Second))
	assert.Equal(t, 1, srv.shutdowns)
}

func TestServe_ReportsShutdownFailure(t *testing.T) {
	srv := &fakeServer{stopped: make(chan struct{}), shutdownFn: func() error { return context.DeadlineExceeded }}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := serve(ctx, srv, time.Second)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
