package ingest

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nl2rss/nl2rss/pkg/domain"
	"github.com/nl2rss/nl2rss/pkg/ingest/mocks"
)

type ingestFunc func(ctx context.Context, mails []domain.Mail) Stats

func (f ingestFunc) Ingest(ctx context.Context, mails []domain.Mail) Stats { return f(ctx, mails) }

// newMailbox makes a mailbox mock which returns one mail per fetch and idles until canceled
func newMailbox() *mocks.MailboxMock {
	return &mocks.MailboxMock{
		ConnectFunc: func(context.Context) error { return nil },
		OpenFunc:    func(context.Context) (uint32, error) { return 3, nil },
		FetchMailsFunc: func(_ context.Context, n uint32) ([]domain.Mail, error) {
			return []domain.Mail{{UID: fmt.Sprintf("fetch-%d", n)}}, nil
		},
		WaitNewMailFunc: func(ctx context.Context) (uint32, error) {
			<-ctx.Done()
			return 0, ctx.Err()
		},
		CheckNewMailFunc: func(context.Context) (uint32, error) { return 0, nil },
		CloseFunc: func() error { return nil },
	}
}

var testWorkerConfig = WorkerConfig{RetryDelay: time.Millisecond, MaxIdleFailures: 3, PollInterval: 10 * time.Millisecond}

func newWorker(mb Mailbox, batches chan []domain.Mail, inflight *atomic.Int32) *Worker {
	return NewWorker(mb, ingestFunc(func(_ context.Context, mails []domain.Mail) Stats {
		if inflight.Add(1) > 1 {
			panic("concurrent batches")
		}
		defer inflight.Add(-1)
		batches <- mails
		return Stats{Mails: len(mails)}
	}), testWorkerConfig)
}

func fetchedCounts(mb *mocks.MailboxMock) []uint32 {
	res := []uint32{}
	for _, c := range mb.FetchMailsCalls() {
		res = append(res, c.N)
	}
	return res
}

func waitBatch(t *testing.T, batches chan []domain.Mail) []domain.Mail {
	t.Helper()
	select {
	case b := <-batches:
		return b
	case <-time.After(time.Second):
		require.FailNow(t, "no batch ingested")
		return nil
	}
}

func TestWorker_InitialSyncAndNewMail(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	mb := newMailbox()
	var waits atomic.Int32
	mb.WaitNewMailFunc = func(ctx context.Context) (uint32, error) {
		if waits.Add(1) == 1 {
			return 2, nil
		}
		<-ctx.Done()
		return 0, ctx.Err()
	}

	batches := make(chan []domain.Mail, 10)
	var inflight atomic.Int32
	w := newWorker(mb, batches, &inflight)
	result := make(chan error, 1)
	go func() { result <- w.Run(ctx) }()

	assert.Equal(t, "fetch-0", waitBatch(t, batches)[0].UID, "initial full sync")
	assert.Equal(t, "fetch-2", waitBatch(t, batches)[0].UID, "newest mails on notification")

	cancel()
	select {
	case err := <-result:
		require.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("worker didn't stop")
	}
	assert.Equal(t, []uint32{0, 2}, fetchedCounts(mb))
	assert.Len(t, mb.ConnectCalls(), 1)
	assert.Len(t, mb.OpenCalls(), 1)
	assert.Len(t, mb.CloseCalls(), 1)
}

func TestWorker_RequestInterruptsIdle(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	mb := newMailbox()
	batches := make(chan []domain.Mail, 10)
	var inflight atomic.Int32
	w := newWorker(mb, batches, &inflight)
	result := make(chan error, 1)
	go func() { result <- w.Run(ctx) }()

	waitBatch(t, batches)
	require.Eventually(t, func() bool { return len(mb.WaitNewMailCalls()) == 1 }, time.Second, time.Millisecond)

	w.Requests() <- Request{Count: 5}
	assert.Equal(t, "fetch-5", waitBatch(t, batches)[0].UID)

	cancel()
	require.NoError(t, <-result)
	assert.Equal(t, []uint32{0, 5}, fetchedCounts(mb))
}

func TestWorker_ReconnectOnIdleFailure(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	mb := newMailbox()
	var waits atomic.Int32
	mb.WaitNewMailFunc = func(ctx context.Context) (uint32, error) {
		if waits.Add(1) == 1 {
			return 0, errors.New("connection reset by peer")
		}
		<-ctx.Done()
		return 0, ctx.Err()
	}

	batches := make(chan []domain.Mail, 10)
	var inflight atomic.Int32
	w := newWorker(mb, batches, &inflight)
	result := make(chan error, 1)
	go func() { result <- w.Run(ctx) }()

	waitBatch(t, batches)
	assert.Equal(t, "fetch-0", waitBatch(t, batches)[0].UID, "full fetch after reconnect")

	cancel()
	require.NoError(t, <-result)
	assert.Len(t, mb.ConnectCalls(), 2)
	assert.Len(t, mb.OpenCalls(), 2)
	assert.Equal(t, []uint32{0, 0}, fetchedCounts(mb))
}

func TestWorker_IdleKeepsFailing(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	mb := newMailbox()
	mb.WaitNewMailFunc = func(context.Context) (uint32, error) {
		return 0, errors.New("start idle: BAD unknown command IDLE")
	}
	var checks atomic.Int32
	mb.CheckNewMailFunc = func(context.Context) (uint32, error) {
		if checks.Add(1) == 2 {
			return 4, nil
		}
		return 0, nil
	}

	batches := make(chan []domain.Mail, 100)
	var inflight atomic.Int32
	w := newWorker(mb, batches, &inflight)
	result := make(chan error, 1)
	go func() { result <- w.Run(ctx) }()

	require.Eventually(t, func() bool {
		for _, n := range fetchedCounts(mb) {
			if n == 4 {
				return true
			}
		}
		return false
	}, 2*time.Second, time.Millisecond, "new mail found by polling")
	time.Sleep(50 * time.Millisecond) // a few more polls

	cancel()
	require.NoError(t, <-result)
	assert.Len(t, mb.WaitNewMailCalls(), 3, "idle abandoned after the failure budget")
	assert.Len(t, mb.ConnectCalls(), 4, "initial connect and one per failure")
	assert.Len(t, mb.OpenCalls(), 4)
	assert.GreaterOrEqual(t, len(mb.CheckNewMailCalls()), 3)
	assert.Equal(t, []uint32{0, 0, 0, 0, 4}, fetchedCounts(mb), "full fetch per reconnect, then polled mail")
}

func TestWorker_RetryDelay(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	mb := newMailbox()
	mb.WaitNewMailFunc = func(context.Context) (uint32, error) { return 0, errors.New("connection reset by peer") }
	w := NewWorker(mb, ingestFunc(func(context.Context, []domain.Mail) Stats { return Stats{} }),
		WorkerConfig{RetryDelay: time.Hour})
	result := make(chan error, 1)
	go func() { result <- w.Run(ctx) }()

	require.Eventually(t, func() bool { return len(mb.WaitNewMailCalls()) == 1 }, time.Second, time.Millisecond)
	time.Sleep(50 * time.Millisecond)
	assert.Len(t, mb.ConnectCalls(), 1, "no reconnect before the delay")

	cancel()
	select {
	case err := <-result:
		require.NoError(t, err, "cancel during the delay is a clean stop")
	case <-time.After(time.Second):
		t.Fatal("worker didn't stop")
	}
}

func TestWorker_PollFailureReconnects(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	mb := newMailbox()
	mb.WaitNewMailFunc = func(context.Context) (uint32, error) { return 0, errors.New("idle not supported") }
	var connects atomic.Int32
	mb.ConnectFunc = func(context.Context) error {
		if connects.Add(1) > 4 {
			return errors.New("connection refused")
		}
		return nil
	}
	mb.CheckNewMailFunc = func(context.Context) (uint32, error) { return 0, errors.New("noop: connection reset") }

	batches := make(chan []domain.Mail, 100)
	var inflight atomic.Int32
	w := newWorker(mb, batches, &inflight)
	result := make(chan error, 1)
	go func() { result <- w.Run(ctx) }()

	select {
	case err := <-result:
		require.EqualError(t, err, "connect to mailbox: connection refused")
	case <-time.After(2 * time.Second):
		t.Fatal("worker didn't give up")
	}
	assert.Len(t, mb.CheckNewMailCalls(), 1)
	assert.Len(t, mb.ConnectCalls(), 5)
}

func TestWorker_StartupFailures(t *testing.T) {
	t.Run("connect", func(t *testing.T) {
		mb := newMailbox()
		mb.ConnectFunc = func(context.Context) error { return errors.New("connection refused") }
		w := NewWorker(mb, ingestFunc(func(context.Context, []domain.Mail) Stats { return Stats{} }), testWorkerConfig)

		err := w.Run(context.Background())
		require.EqualError(t, err, "connect to mailbox: connection refused")
		assert.Empty(t, mb.OpenCalls())
		assert.Empty(t, mb.FetchMailsCalls())
	})

	t.Run("open", func(t *testing.T) {
		mb := newMailbox()
		boxErr := errors.New("no such box")
		mb.OpenFunc = func(context.Context) (uint32, error) { return 0, boxErr }
		w := NewWorker(mb, ingestFunc(func(context.Context, []domain.Mail) Stats { return Stats{} }), testWorkerConfig)

		err := w.Run(context.Background())
		require.ErrorIs(t, err, boxErr)
		assert.Len(t, mb.CloseCalls(), 1)
		assert.Empty(t, mb.FetchMailsCalls())
	})
}

func TestWorker_ProcessMergesQueued(t *testing.T) {
	tbl := []struct {
		name   string
		first  Request
		queued []Request
		want   uint32
	}{
		{name: "single", first: Request{Count: 2}, want: 2},
		{name: "partial sum", first: Request{Count: 2}, queued: []Request{{Count: 3}, {Count: 1}}, want: 6},
		{name: "full absorbs", first: Request{Count: 2}, queued: []Request{{}, {Count: 1}}, want: 0},
	}

	for _, tt := range tbl {
		t.Run(tt.name, func(t *testing.T) {
			mb := newMailbox()
			ingested := 0
			w := NewWorker(mb, ingestFunc(func(context.Context, []domain.Mail) Stats { ingested++; return Stats{} }), testWorkerConfig)
			for _, r := range tt.queued {
				w.Requests() <- r
			}
			w.process(context.Background(), tt.first)
			assert.Equal(t, []uint32{tt.want}, fetchedCounts(mb))
			assert.Equal(t, 1, ingested)
		})
	}
}

func TestWorker_ProcessFetchError(t *testing.T) {
	mb := newMailbox()
	mb.FetchMailsFunc = func(context.Context, uint32) ([]domain.Mail, error) { return nil, errors.New("fetch failed") }
	called := false
	w := NewWorker(mb, ingestFunc(func(context.Context, []domain.Mail) Stats { called = true; return Stats{} }), testWorkerConfig)
	w.process(context.Background(), Request{})
	assert.False(t, called)
}

func TestEnqueue(t *testing.T) {
	ch := make(chan Request, 1)
	assert.True(t, enqueue(ch, Request{Count: 1}))
	assert.False(t, enqueue(ch, Request{Count: 2}), "full queue doesn't block")
	assert.Equal(t, Request{Count: 1}, <-ch)
}
