package jobs

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"estate-hub.backend/pkg/logger"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	logger.Init("test")
	m.Run()
}

type sweeperStub struct {
	calls     atomic.Int32
	lastBatch atomic.Int32
	count     int
	err       error
}

func (s *sweeperStub) SweepExpired(_ context.Context, _ time.Time, batchSize int) (int, error) {
	s.calls.Add(1)
	s.lastBatch.Store(int32(batchSize))
	if s.err != nil {
		return 0, s.err
	}
	return s.count, nil
}

func TestRunOnce_PassesBatchSize(t *testing.T) {
	sweeper := &sweeperStub{count: 3}
	job := NewOfferExpiryJob(sweeper, time.Millisecond, 50)

	job.runOnce(context.Background())
	require.Equal(t, int32(1), sweeper.calls.Load())
	require.Equal(t, int32(50), sweeper.lastBatch.Load())
}

func TestRunOnce_SweepError(t *testing.T) {
	sweeper := &sweeperStub{err: errors.New("db down")}
	job := NewOfferExpiryJob(sweeper, time.Millisecond, 50)

	job.runOnce(context.Background())
	require.Equal(t, int32(1), sweeper.calls.Load())
}

func TestStart_RunsOnInterval(t *testing.T) {
	sweeper := &sweeperStub{}
	job := NewOfferExpiryJob(sweeper, time.Millisecond, 10)

	done := make(chan struct{})
	go func() {
		job.Start(context.Background())
		close(done)
	}()

	require.Eventually(t, func() bool {
		return sweeper.calls.Load() >= 2
	}, time.Second, time.Millisecond)
	job.Stop()

	select {
	case <-done:
	case <-time.After(500 * time.Millisecond):
		t.Fatal("job did not stop on Stop()")
	}
}

func TestStart_StopsByContext(t *testing.T) {
	sweeper := &sweeperStub{}
	job := NewOfferExpiryJob(sweeper, time.Millisecond, 10)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		job.Start(ctx)
		close(done)
	}()
	cancel()

	select {
	case <-done:
	case <-time.After(500 * time.Millisecond):
		t.Fatal("job did not stop on context cancel")
	}
}
