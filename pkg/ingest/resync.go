package ingest

import (
	"context"
	"fmt"

	"github.com/go-pkgz/lgr"
	"github.com/robfig/cron/v3"
)

// Resync periodically asks the worker for a full mailbox fetch, catching up with mail the
// idle notifications missed
type Resync struct {
	cron     *cron.Cron
	spec     string
	requests chan<- Request
}

// NewResync schedules full fetch requests with a standard cron spec or a descriptor like "@every 1h"
func NewResync(spec string, requests chan<- Request) (*Resync, error) {
	r := &Resync{cron: cron.New(), spec: spec, requests: requests}
	if _, err := r.cron.AddFunc(spec, r.tick); err != nil {
		return nil, fmt.Errorf("invalid resync schedule %q: %w", spec, err)
	}
	return r, nil
}

// Start runs the schedule in the background until ctx is canceled
func (r *Resync) Start(ctx context.Context) {
	r.cron.Start()
	lgr.Printf("[INFO] mailbox resync scheduled %q", r.spec)
	go func() {
		<-ctx.Done()
		<-r.cron.Stop().Done()
		lgr.Printf("[DEBUG] mailbox resync stopped")
	}()
}

func (r *Resync) tick() {
	if !enqueue(r.requests, Request{}) {
		lgr.Printf("[WARN] fetch queue is full, resync skipped")
		return
	}
	lgr.Printf("[DEBUG] mailbox resync requested")
}
