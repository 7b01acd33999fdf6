package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventStep   EventType = "step"
	EventFork   EventType = "fork"
	EventAccept EventType = "accept"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
	Kind      Kind      `json:"kind"`
}

// StepEvent reports one applied move of an instance.
type StepEvent struct {
	EventBase
	From  State  `json:"-"`
	To    State  `json:"-"`
	Input string `json:"input"`
}

// ForkEvent reports a nondeterministic branch point.
type ForkEvent struct {
	EventBase
	Position int `json:"position"`
	Branches int `json:"branches"`
}

// QueryEvent reports the outcome of a language query.
type QueryEvent struct {
	EventBase
	Length   int           `json:"length"`
	Accepted bool          `json:"accepted"`
	Err      error         `json:"-"`
	Duration time.Duration `json:"duration"`
}

// LifecycleHooks defines callbacks for engine observability.
// Hooks are shared by every instance of a definition and may be called from
// several goroutines at once during nondeterministic exploration.
type LifecycleHooks struct {
	OnStep   func(context.Context, *StepEvent)
	OnFork   func(context.Context, *ForkEvent)
	OnAccept func(context.Context, *QueryEvent)
}

// Merge returns hooks that call h first and then other.
func (h LifecycleHooks) Merge(other LifecycleHooks) LifecycleHooks {
	return LifecycleHooks{
		OnStep:   chain(h.OnStep, other.OnStep),
		OnFork:   chain(h.OnFork, other.OnFork),
		OnAccept: chain(h.OnAccept, other.OnAccept),
	}
}

func chain[E any](a, b func(context.Context, *E)) func(context.Context, *E) {
	switch {
	case a == nil:
		return b
	case b == nil:
		return a
	}
	return func(ctx context.Context, e *E) {
		a(ctx, e)
		b(ctx, e)
	}
}
