// Package metrics records timings of store and pipeline operations and publishes them
// through expvar, so they are visible on the /metrics endpoint.
package metrics

import (
	"encoding/json"
	"expvar"
	"sync"
	"time"
)

// DefaultName is the expvar name the default recorder is published under
const DefaultName = "operations"

var (
	defaultRecorder *Recorder
	defaultOnce     sync.Once
)

// Default returns the process wide recorder, published to expvar on first use
func Default() *Recorder {
	defaultOnce.Do(func() {
		defaultRecorder = NewRecorder()
		defaultRecorder.Publish(DefaultName)
	})
	return defaultRecorder
}

// Recorder keeps per operation stats in an expvar map
type Recorder struct {
	ops *expvar.Map
	mu  sync.Mutex
}

// NewRecorder makes an unpublished recorder
func NewRecorder() *Recorder {
	return &Recorder{ops: new(expvar.Map).Init()}
}

// Publish exposes recorder stats under the given expvar name. Publishing the same
// name twice is a no-op, expvar itself panics on duplicates.
func (r *Recorder) Publish(name string) {
	if expvar.Get(name) != nil {
		return
	}
	expvar.Publish(name, r.ops)
}

// Start begins timing of an operation. The returned timer must be finished with Done.
func (r *Recorder) Start(name, description string) *Timer {
	return &Timer{rec: r, name: name, description: description, start: time.Now()}
}

// Stats returns a snapshot of the named operation stats, ok is false for unknown names
func (r *Recorder) Stats(name string) (OpStats, bool) {
	v, ok := r.ops.Get(name).(*opVar)
	if !ok {
		return OpStats{}, false
	}
	return v.snapshot(), true
}

func (r *Recorder) record(name, description string, d time.Duration, success bool) {
	r.mu.Lock()
	v, ok := r.ops.Get(name).(*opVar)
	if !ok {
		v = &opVar{stats: OpStats{Description: description}}
		r.ops.Set(name, v)
	}
	r.mu.Unlock()
	v.add(d, success)
}

// Timer measures a single operation
type Timer struct {
	rec         *Recorder
	name        string
	description string
	start       time.Time
}

// Done stops the timer, success is derived from err
func (t *Timer) Done(err error) {
	t.rec.record(t.name, t.description, time.Since(t.start), err == nil)
}

// OpStats is an aggregated view of one operation
type OpStats struct {
	Description string        `json:"description"`
	Calls       int64         `json:"calls"`
	Failures    int64         `json:"failures"`
	Total       time.Duration `json:"total_ns"`
	Last        time.Duration `json:"last_ns"`
	LastSuccess bool          `json:"last_success"`
}

type opVar struct {
	mu    sync.Mutex
	stats OpStats
}

func (v *opVar) add(d time.Duration, success bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.stats.Calls++
	if !success {
		v.stats.Failures++
	}
	v.stats.Total += d
	v.stats.Last = d
	v.stats.LastSuccess = success
}

func (v *opVar) snapshot() OpStats {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.stats
}

// String implements expvar.Var
func (v *opVar) String() string {
	data, err := json.Marshal(v.snapshot())
	if err != nil {
		return "{}"
	}
	return string(data)
}
