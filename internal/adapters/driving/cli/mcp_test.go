package cli

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeScheduler records Start and Stop calls.
type fakeScheduler struct {
	started atomic.Bool
	stopped atomic.Bool
}

func (f *fakeScheduler) Start(ctx context.Context) error {
	f.started.Store(true)
	<-ctx.Done()
	return ctx.Err()
}

func (f *fakeScheduler) Stop() error {
	f.stopped.Store(true)
	return nil
}

func TestMCPCmd_HasServeSubcommand(t *testing.T) {
	commands := mcpCmd.Commands()
	require.Len(t, commands, 1)
	assert.Equal(t, "serve", commands[0].Name())

	flag := mcpServeCmd.Flags().Lookup("port")
	require.NotNil(t, flag)
	assert.Equal(t, "p", flag.Shorthand)
	assert.Equal(t, "0", flag.DefValue)
}

func TestMCPServeCmd_RequiresOrderService(t *testing.T) {
	SetServices(Services{})

	_, err := executeCommand(t, "", "mcp", "serve")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "order service is required")
}

func TestStartBackground_RunsDaemonsAndScheduler(t *testing.T) {
	scheduler := &fakeScheduler{}
	var daemonRuns atomic.Int32
	SetServices(Services{
		Scheduler: scheduler,
		Daemons: []Daemon{
			func(ctx context.Context) error {
				daemonRuns.Add(1)
				<-ctx.Done()
				return nil
			},
			func(context.Context) error {
				daemonRuns.Add(1)
				return errors.New("watcher failed")
			},
		},
	})
	defer SetServices(Services{})

	ctx, cancel := context.WithCancel(context.Background())
	stop := startBackground(ctx)

	assert.Eventually(t, func() bool {
		return scheduler.started.Load() && daemonRuns.Load() == 2
	}, time.Second, 10*time.Millisecond)

	cancel()
	stop()
	assert.True(t, scheduler.stopped.Load())
}

func TestStartBackground_NoScheduler(t *testing.T) {
	SetServices(Services{})

	stop := startBackground(context.Background())

	assert.NotPanics(t, stop)
}
