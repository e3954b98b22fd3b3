package scheduler

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"StockDataset/internal/model"
)

type fakeRunner struct {
	mu      sync.Mutex
	calls   int
	err     error
	release chan struct{}
}

func (f *fakeRunner) Run(ctx context.Context) (*model.RunSummary, error) {
	f.mu.Lock()
	f.calls++
	n := f.calls
	f.mu.Unlock()
	if f.release != nil {
		<-f.release
	}
	if f.err != nil {
		return nil, f.err
	}
	return &model.RunSummary{RunID: "run", Rows: n, AdjustedSource: "column", FinishedAt: time.Now()}, nil
}

func TestRegisterRejectsBadSpec(t *testing.T) {
	s := NewScheduler(context.Background(), &fakeRunner{})
	assert.Error(t, s.Register("not a cron"))
	assert.NoError(t, s.Register("0 0 6 * * 1-5"))
}

func TestRunNow(t *testing.T) {
	r := &fakeRunner{}
	s := NewScheduler(context.Background(), r)

	sum, err := s.RunNow()
	require.NoError(t, err)
	assert.Equal(t, 1, sum.Rows)
	assert.Same(t, sum, s.Last())

	r.err = errors.New("disk full")
	_, err = s.RunNow()
	assert.Error(t, err)
	assert.Equal(t, 1, s.Last().Rows, "a failed build keeps the last good summary")
	assert.Contains(t, s.HandleCommand("/status"), "disk full")
}

func TestOverlappingRunsAreSkipped(t *testing.T) {
	r := &fakeRunner{release: make(chan struct{})}
	s := NewScheduler(context.Background(), r)

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = s.RunNow()
	}()

	require.Eventually(t, func() bool {
		r.mu.Lock()
		defer r.mu.Unlock()
		return r.calls == 1
	}, time.Second, 5*time.Millisecond)

	_, err := s.RunNow()
	assert.ErrorIs(t, err, ErrBusy)
	s.buildTask()
	assert.Equal(t, "A build is running.", s.HandleCommand("/status"))

	close(r.release)
	<-done

	r.mu.Lock()
	assert.Equal(t, 1, r.calls)
	r.mu.Unlock()
}

func TestHandleCommand(t *testing.T) {
	s := NewScheduler(context.Background(), &fakeRunner{})
	assert.Equal(t, "No build has finished yet.", s.HandleCommand("/status"))
	assert.Contains(t, s.HandleCommand("hello"), "/build")

	_, err := s.RunNow()
	require.NoError(t, err)
	assert.Contains(t, s.HandleCommand("/status"), "Run: run")
}

func TestStartStop(t *testing.T) {
	s := NewScheduler(context.Background(), &fakeRunner{})
	require.NoError(t, s.Register("@every 1h"))
	s.Start()
	s.Stop()
}
