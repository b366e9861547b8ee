package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/graft-dev/graft/internal/config"
)

type fakeDevServer struct {
	started chan struct{}
	err     error
}

func (s *fakeDevServer) Start(ctx context.Context) error {
	close(s.started)
	if s.err != nil {
		return s.err
	}
	<-ctx.Done()
	return ctx.Err()
}

type fakeServerFactory struct {
	server *fakeDevServer
	root   string
}

func (f *fakeServerFactory) NewServer(cfg *config.Config, projectRoot string) DevServer {
	f.root = projectRoot
	return f.server
}

type fakeSignalNotifier struct {
	ch chan<- os.Signal
}

func (n *fakeSignalNotifier) Notify(c chan<- os.Signal, sig ...os.Signal) { n.ch = c }
func (n *fakeSignalNotifier) Stop(c chan<- os.Signal)                     {}

func TestDevCommand_ShutdownOnSignal(t *testing.T) {
	// Test plan:
	// - The dev loop starts the server and shuts down cleanly when an
	//   interrupt arrives

	server := &fakeDevServer{started: make(chan struct{})}
	factory := &fakeServerFactory{server: server}
	notifier := &fakeSignalNotifier{}
	out := &fakeOutput{}

	cmd := NewDevCommand().WithDependencies(DevDependencies{
		ConfigLoader:   &fakeConfigLoader{cfg: testProjectConfig(), root: "/project"},
		ServerFactory:  factory,
		SignalNotifier: notifier,
		Output:         out,
	})

	done := make(chan error, 1)
	go func() { done <- cmd.Execute(context.Background()) }()

	select {
	case <-server.started:
	case <-time.After(2 * time.Second):
		t.Fatal("server never started")
	}

	require.NotNil(t, notifier.ch, "signals were not registered")
	notifier.ch <- syscall.SIGINT

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("dev command did not shut down")
	}

	assert.Equal(t, "/project", factory.root)
	assert.Contains(t, out.String(), "watching")
	assert.Contains(t, out.String(), "shutting down")
}

func TestDevCommand_WrappedCancellationIsClean(t *testing.T) {
	// Test plan:
	// - A cancellation wrapped by the watcher is still a clean shutdown, not
	//   a dev-loop error

	server := &fakeDevServer{
		started: make(chan struct{}),
		err:     fmt.Errorf("watcher stopped: %w", context.Canceled),
	}

	cmd := NewDevCommand().WithDependencies(DevDependencies{
		ConfigLoader:   &fakeConfigLoader{cfg: testProjectConfig(), root: "/project"},
		ServerFactory:  &fakeServerFactory{server: server},
		SignalNotifier: &fakeSignalNotifier{},
		Output:         &fakeOutput{},
	})

	require.NoError(t, cmd.Execute(context.Background()))
}

func TestDevCommand_ServerFailure(t *testing.T) {
	// Test plan:
	// - A server error that is not cancellation propagates

	server := &fakeDevServer{started: make(chan struct{}), err: errors.New("watch failed")}

	cmd := NewDevCommand().WithDependencies(DevDependencies{
		ConfigLoader:   &fakeConfigLoader{cfg: testProjectConfig(), root: "/project"},
		ServerFactory:  &fakeServerFactory{server: server},
		SignalNotifier: &fakeSignalNotifier{},
		Output:         &fakeOutput{},
	})

	err := cmd.Execute(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "dev loop error")
}

func TestDevCommand_ConfigLoadFailure(t *testing.T) {
	// Test plan:
	// - A missing project config aborts before starting anything

	cmd := NewDevCommand().WithDependencies(DevDependencies{
		ConfigLoader:   &fakeConfigLoader{err: errors.New("no graft.json found")},
		ServerFactory:  &fakeServerFactory{server: &fakeDevServer{started: make(chan struct{})}},
		SignalNotifier: &fakeSignalNotifier{},
		Output:         &fakeOutput{},
	})

	err := cmd.Execute(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load project config")
}
