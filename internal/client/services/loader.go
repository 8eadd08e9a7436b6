package services

import (
	"context"
	"errors"
	"sync"
)

// ErrStale is returned for a response that arrived after a newer request
// for the same view was issued. Its result is discarded.
var ErrStale = errors.New("superseded by a newer request")

type Status int

const (
	StatusIdle Status = iota
	StatusLoading
	StatusReady
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusLoading:
		return "loading"
	case StatusReady:
		return "ready"
	case StatusFailed:
		return "failed"
	default:
		return "idle"
	}
}

type State[T any] struct {
	Status     Status
	Data       T
	Err        error
	Generation uint64
}

// Loader runs fetches for one view and keeps only the newest result.
// Every Load bumps a generation counter; a fetch finishing under an older
// generation leaves the state untouched and reports ErrStale.
type Loader[T any] struct {
	mu    sync.Mutex
	gen   uint64
	state State[T]
}

// Load runs fetch and returns the resulting state. The error is ErrStale,
// the fetch error, or nil.
func (l *Loader[T]) Load(ctx context.Context, fetch func(ctx context.Context) (T, error)) (State[T], error) {
	l.mu.Lock()
	l.gen++
	gen := l.gen
	l.state = State[T]{Status: StatusLoading, Generation: gen}
	l.mu.Unlock()

	data, err := fetch(ctx)

	l.mu.Lock()
	defer l.mu.Unlock()
	if gen != l.gen {
		return State[T]{}, ErrStale
	}
	if err != nil {
		l.state = State[T]{Status: StatusFailed, Err: err, Generation: gen}
		return l.state, err
	}
	l.state = State[T]{Status: StatusReady, Data: data, Generation: gen}
	return l.state, nil
}

func (l *Loader[T]) State() State[T] {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state
}
