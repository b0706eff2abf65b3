package scheduler

import (
	"context"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MattVogelsang/IBM-DataAnalzing/internal/model"
)

type countingRunner struct {
	runs int32
}

func (r *countingRunner) Run(context.Context) *model.RunSummary {
	atomic.AddInt32(&r.runs, 1)
	return &model.RunSummary{RunID: "run"}
}

func TestRegister(t *testing.T) {
	s := NewScheduler(context.Background(), &countingRunner{})
	require.NoError(t, s.Register("0 30 17 * * 1-5"))
	assert.Len(t, s.Cron.Entries(), 1)
	assert.Error(t, s.Register("not a cron spec"))
}

func TestRunNow(t *testing.T) {
	r := &countingRunner{}
	s := NewScheduler(context.Background(), r)

	summary := s.RunNow()

	require.NotNil(t, summary)
	assert.Equal(t, int32(1), atomic.LoadInt32(&r.runs))
}

func TestRunNow_SkipsAfterCancel(t *testing.T) {
	r := &countingRunner{}
	ctx, cancel := context.WithCancel(context.Background())
	s := NewScheduler(ctx, r)
	cancel()

	assert.Nil(t, s.RunNow())
	assert.Equal(t, int32(0), atomic.LoadInt32(&r.runs))
}
