package ingest

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-pkgz/lgr"

	"github.com/nl2rss/nl2rss/pkg/domain"
)

//go:generate moq -out mocks/mailbox.go -pkg mocks -skip-ensure -fmt goimports . Mailbox

const requestsBuffer = 16

// Mailbox is the imap side of the worker
type Mailbox interface {
	Connect(ctx context.Context) error
	Open(ctx context.Context) (uint32, error)
	FetchMails(ctx context.Context, n uint32) ([]domain.Mail, error)
	WaitNewMail(ctx context.Context) (uint32, error)
	CheckNewMail(ctx context.Context) (uint32, error)
	Close() error
}

// Ingester stores fetched mails
type Ingester interface {
	Ingest(ctx context.Context, mails []domain.Mail) Stats
}

// Request asks the worker to fetch mails, Count is the number of newest messages, 0 for all
type Request struct {
	Count uint32
}

// WorkerConfig tunes recovery from a failing mailbox, zero values get defaults
type WorkerConfig struct {
	RetryDelay      time.Duration // pause before reconnecting after a failed wait, 5s
	MaxIdleFailures int           // consecutive idle failures before switching to polling, 3
	PollInterval    time.Duration // NOOP interval once polling, 1m
}

// Worker is the only consumer of the mailbox. It runs one fetch batch at a time and idles
// on the mailbox in between. A server that keeps failing IDLE is polled instead.
type Worker struct {
	mailbox  Mailbox
	ingester Ingester
	requests chan Request
	cfg      WorkerConfig
	polling  bool
}

// NewWorker makes a worker, nothing runs until Run
func NewWorker(mailbox Mailbox, ingester Ingester, cfg WorkerConfig) *Worker {
	if cfg.RetryDelay <= 0 {
		cfg.RetryDelay = 5 * time.Second
	}
	if cfg.MaxIdleFailures <= 0 {
		cfg.MaxIdleFailures = 3
	}
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = time.Minute
	}
	return &Worker{mailbox: mailbox, ingester: ingester, requests: make(chan Request, requestsBuffer), cfg: cfg}
}

// Requests returns the queue of fetch requests
func (w *Worker) Requests() chan<- Request {
	return w.requests
}

// Run connects, opens the box and ingests all of it, then keeps ingesting new mail until ctx
// is canceled. Connection and box failures are returned, the caller treats them as fatal.
func (w *Worker) Run(ctx context.Context) error {
	if err := w.open(ctx); err != nil {
		return err
	}
	defer func() {
		if err := w.mailbox.Close(); err != nil {
			lgr.Printf("[WARN] failed to close mailbox: %v", err)
		}
	}()

	lgr.Printf("[INFO] ingestion worker started")
	enqueue(w.requests, Request{}) // initial full sync

	failures := 0 // consecutive failed waits
	for {
		// drain queued requests before going idle
		select {
		case <-ctx.Done():
			lgr.Printf("[INFO] ingestion worker stopped")
			return nil
		case req := <-w.requests:
			w.process(ctx, req)
			continue
		default:
		}

		n, req, err := w.wait(ctx)
		switch {
		case ctx.Err() != nil:
			lgr.Printf("[INFO] ingestion worker stopped")
			return nil
		case err != nil:
			failures++
			if !w.polling && failures >= w.cfg.MaxIdleFailures {
				lgr.Printf("[WARN] mailbox idle failed %d times in a row, polling every %v", failures, w.cfg.PollInterval)
				w.polling = true
			}
			if err := w.restore(ctx, err); err != nil {
				return err
			}
			continue
		}
		failures = 0
		if n > 0 {
			w.process(ctx, Request{Count: n})
		}
		if req != nil {
			w.process(ctx, *req)
		}
	}
}

// wait blocks until new mail, a queued request or a mailbox failure
func (w *Worker) wait(ctx context.Context) (uint32, *Request, error) {
	if w.polling {
		return w.poll(ctx)
	}
	return w.idle(ctx)
}

// poll sleeps for the poll interval unless a request comes first, then checks for new mail
func (w *Worker) poll(ctx context.Context) (uint32, *Request, error) {
	timer := time.NewTimer(w.cfg.PollInterval)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return 0, nil, ctx.Err()
	case req := <-w.requests:
		return 0, &req, nil
	case <-timer.C:
	}
	n, err := w.mailbox.CheckNewMail(ctx)
	return n, nil, err
}

// restore pauses, reopens the mailbox and queues a full fetch to catch up with mail missed
// while disconnected. A failed reconnect is returned, ctx cancel is not.
func (w *Worker) restore(ctx context.Context, cause error) error {
	lgr.Printf("[WARN] mailbox wait failed, reconnecting in %v: %v", w.cfg.RetryDelay, cause)
	select {
	case <-ctx.Done():
		return nil
	case <-time.After(w.cfg.RetryDelay):
	}
	if err := w.reconnect(ctx); err != nil {
		if ctx.Err() != nil {
			return nil
		}
		return err
	}
	enqueue(w.requests, Request{})
	return nil
}

// idle waits for new mail or a queued request, whatever comes first. Both may be returned
// when mail arrived while idle was being stopped.
func (w *Worker) idle(ctx context.Context) (uint32, *Request, error) {
	type result struct {
		n   uint32
		err error
	}
	idleCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	done := make(chan result, 1)
	go func() {
		n, err := w.mailbox.WaitNewMail(idleCtx)
		done <- result{n: n, err: err}
	}()

	select {
	case res := <-done:
		return res.n, nil, res.err
	case req := <-w.requests:
		cancel()
		res := <-done
		if res.err != nil && errors.Is(res.err, context.Canceled) {
			res.err = nil // idle stopped by us
		}
		return res.n, &req, res.err
	}
}

// process merges all queued requests into req and runs a single fetch batch
func (w *Worker) process(ctx context.Context, req Request) {
drain:
	for {
		select {
		case next := <-w.requests:
			req = merge(req, next)
		default:
			break drain
		}
	}

	mails, err := w.mailbox.FetchMails(ctx, req.Count)
	if err != nil {
		lgr.Printf("[ERROR] failed to fetch mails: %v", err)
		return
	}
	if len(mails) == 0 {
		return
	}
	w.ingester.Ingest(ctx, mails)
}

func (w *Worker) open(ctx context.Context) error {
	if err := w.mailbox.Connect(ctx); err != nil {
		return fmt.Errorf("connect to mailbox: %w", err)
	}
	if _, err := w.mailbox.Open(ctx); err != nil {
		_ = w.mailbox.Close()
		return fmt.Errorf("open mailbox: %w", err)
	}
	return nil
}

func (w *Worker) reconnect(ctx context.Context) error {
	if err := w.mailbox.Close(); err != nil {
		lgr.Printf("[DEBUG] close broken mailbox session: %v", err)
	}
	return w.open(ctx)
}

// merge combines two requests, a full fetch absorbs any partial one
func merge(a, b Request) Request {
	if a.Count == 0 || b.Count == 0 {
		return Request{}
	}
	return Request{Count: a.Count + b.Count}
}

// enqueue sends req without blocking, reports false when the queue is full
func enqueue(ch chan<- Request, req Request) bool {
	select {
	case ch <- req:
		return true
	default:
		return false
	}
}
