// Package transform runs a compiled program over a stream of records.
package transform

import (
	"context"
	"runtime"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"remap/compiler"
	"remap/expr"
	"remap/trace"
	"remap/types"
)

// Component event names
const (
	EventsReceived  = "EventsReceived"
	EventsSent      = "EventsSent"
	ProcessingError = "ProcessingError"
)

// Counter names
const (
	ReceivedEventsTotal = "component_received_events_total"
	SentEventsTotal     = "component_sent_events_total"
	ErrorsTotal         = "component_errors_total"
)

// Options configures a Transform
type Options struct {
	Workers  int            // concurrent records in Run; <= 0 means GOMAXPROCS
	Timezone *time.Location // default timezone for timestamp functions
	Tracer   *trace.Tracer  // optional call tracing
}

// Result is the outcome of one record processed by Run
type Result struct {
	Seq    int64       // numbered from 1 as workers pick records up
	Input  types.Value // the record as received
	Output types.Value // the transformed record, nil when Err is set
	Err    error
}

// Transform applies a program to records. The program can be replaced while
// records are in flight; each record runs against a single program.
type Transform struct {
	program atomic.Pointer[compiler.Program]
	sink    trace.Sink
	opts    Options
	nextSeq atomic.Int64
}

// New creates a transform. A nil sink discards events.
func New(program *compiler.Program, sink trace.Sink, opts Options) *Transform {
	if sink == nil {
		sink = trace.Discard
	}
	if opts.Workers <= 0 {
		opts.Workers = runtime.GOMAXPROCS(0)
	}
	if opts.Timezone == nil {
		opts.Timezone = time.UTC
	}
	t := &Transform{sink: sink, opts: opts}
	t.program.Store(program)
	return t
}

// Program returns the program currently in use
func (t *Transform) Program() *compiler.Program {
	return t.program.Load()
}

// Swap installs a new program and returns the previous one
func (t *Transform) Swap(program *compiler.Program) *compiler.Program {
	return t.program.Swap(program)
}

// Process runs the program against one record and returns the transformed
// record. A runtime error drops the record and is reported to the sink.
func (t *Transform) Process(ctx context.Context, record types.Value) (types.Value, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	t.sink.Event(EventsReceived)
	t.sink.Counter(ReceivedEventsTotal, 1, nil)

	rctx := expr.NewContext(record)
	rctx.Timezone = t.opts.Timezone
	rctx.Tracer = t.opts.Tracer

	if _, err := t.program.Load().Resolve(rctx); err != nil {
		t.sink.Event(ProcessingError)
		t.sink.Counter(ErrorsTotal, 1, map[string]string{
			"error_type": expr.ErrorType(err),
			"stage":      "processing",
		})
		return nil, err
	}

	t.sink.Event(EventsSent)
	t.sink.Counter(SentEventsTotal, 1, nil)
	return rctx.Event, nil
}

// Run processes records from in with Options.Workers goroutines until in is
// closed or ctx is cancelled, sending one Result per record to out. Results
// are not ordered; use Result.Seq to restore input order. Record failures
// are reported in their Result and never stop the run. Run closes out
// before returning and returns ctx's error if it was cancelled.
func (t *Transform) Run(ctx context.Context, in <-chan types.Value, out chan<- Result) error {
	defer close(out)

	g, ctx := errgroup.WithContext(ctx)
	for i := 0; i < t.opts.Workers; i++ {
		g.Go(func() error {
			return t.worker(ctx, in, out)
		})
	}
	return g.Wait()
}

func (t *Transform) worker(ctx context.Context, in <-chan types.Value, out chan<- Result) error {
	for {
		var record types.Value
		var ok bool
		select {
		case <-ctx.Done():
			return ctx.Err()
		case record, ok = <-in:
			if !ok {
				return nil
			}
		}

		res := Result{Seq: t.nextSeq.Add(1), Input: record}
		res.Output, res.Err = t.Process(ctx, record)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case out <- res:
		}
	}
}
