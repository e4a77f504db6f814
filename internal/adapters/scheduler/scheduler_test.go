package scheduler

import (
	"addisnest-service/internal/contextkeys"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScheduler_AddJobInvalidSpec(t *testing.T) {
	s := NewScheduler(contextkeys.NoopLogger(), time.Second)
	assert.Error(t, s.AddJob("broken", "every now and then", func(context.Context) error { return nil }))
}

func TestScheduler_RunsJobWithDeadline(t *testing.T) {
	s := NewScheduler(contextkeys.NoopLogger(), time.Second)

	var hadDeadline bool
	s.run("otp_cleanup", func(ctx context.Context) error {
		_, hadDeadline = ctx.Deadline()
		return errors.New("db unavailable")
	})
	assert.True(t, hadDeadline)
}

func TestScheduler_StartStop(t *testing.T) {
	s := NewScheduler(contextkeys.NoopLogger(), time.Second)
	require.NoError(t, s.AddJob("noop", "@every 1h", func(context.Context) error { return nil }))

	s.Start()
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	assert.NoError(t, s.Stop(ctx))
}

func TestScheduler_RecoverChainSwallowsPanic(t *testing.T) {
	cl := cronLogger{log: contextkeys.NoopLogger()}
	job := cron.NewChain(cron.Recover(cl)).Then(cron.FuncJob(func() { panic("boom") }))

	assert.NotPanics(t, job.Run)
}

func TestCronLoggerPairs(t *testing.T) {
	fields := pairs([]interface{}{"entry", 3, "next", "soon", "dangling"})
	assert.Equal(t, 3, fields["entry"])
	assert.Equal(t, "soon", fields["next"])
	assert.Len(t, fields, 2)
}
