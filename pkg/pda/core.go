package pda

import (
	"context"
	"sort"
	"time"

	"github.com/aretw0/automata/internal/validator"
	"github.com/aretw0/automata/pkg/domain"
)

// core holds what deterministic and nondeterministic definitions share.
type core[T, S comparable] struct {
	kind     domain.Kind
	alphabet domain.Alphabet[T]
	states   domain.StateSet
	initial  domain.State
	final    domain.StateSet
	stack    []S
	opts     options
}

// newCore discovers the implied states and the stack alphabet and validates
// the initial and final states against them.
func newCore[T, S comparable](kind domain.Kind, alphabet []domain.Symbol[T], initial domain.State, final []domain.State, keys []Key[T, S], results []Result[S], opts []Option) (core[T, S], error) {
	o := newOptions(kind, opts)

	var states domain.StateSet
	stackSymbols := make(map[S]struct{})
	for _, k := range keys {
		states.Add(k.From)
		if sym, ok := k.Top.Symbol(); ok {
			stackSymbols[sym] = struct{}{}
		}
	}
	for _, r := range results {
		states.Add(r.To)
		if sym, ok := r.Push.Symbol(); ok {
			stackSymbols[sym] = struct{}{}
		}
	}

	if err := validator.ValidateStates(states, initial, final); err != nil {
		o.logger.Debug("definition rejected", "err", err)
		return core[T, S]{}, err
	}

	stack := make([]S, 0, len(stackSymbols))
	for sym := range stackSymbols {
		stack = append(stack, sym)
	}
	sort.Slice(stack, func(i, j int) bool { return render(stack[i]) < render(stack[j]) })

	return core[T, S]{
		kind:     kind,
		alphabet: domain.NewAlphabet(alphabet...),
		states:   states,
		initial:  initial,
		final:    domain.NewStateSet(final...),
		stack:    stack,
		opts:     o,
	}, nil
}

func (c *core[T, S]) Alphabet() domain.Alphabet[T] { return c.alphabet }
func (c *core[T, S]) States() domain.StateSet      { return c.states.Clone() }
func (c *core[T, S]) Initial() domain.State        { return c.initial }
func (c *core[T, S]) Final() domain.StateSet       { return c.final.Clone() }
func (c *core[T, S]) Acceptance() Acceptance       { return c.opts.acceptance }

// StackAlphabet returns the stack symbols used by the transition table.
func (c *core[T, S]) StackAlphabet() []S {
	out := make([]S, len(c.stack))
	copy(out, c.stack)
	return out
}

func (c *core[T, S]) accepting(current domain.State, stack Stack[S]) bool {
	if !c.final.Contains(current) {
		return false
	}
	return c.opts.acceptance != AcceptFinalStateAndEmptyStack || stack.Len() == 0
}

func (c *core[T, S]) describe(edges []domain.Edge) domain.Description {
	domain.SortEdges(edges)
	stack := make([]string, len(c.stack))
	for i, sym := range c.stack {
		stack[i] = render(sym)
	}
	return domain.Description{
		Kind:          c.kind,
		Alphabet:      c.alphabet.Strings(),
		States:        domain.StateInfos(c.states, c.initial, c.final),
		Edges:         edges,
		StackAlphabet: stack,
	}
}

func (c *core[T, S]) emitStep(ctx context.Context, from, to domain.State, sym domain.Symbol[T]) {
	if c.opts.hooks.OnStep == nil {
		return
	}
	c.opts.hooks.OnStep(ctx, &domain.StepEvent{
		EventBase: domain.EventBase{Timestamp: time.Now(), Type: domain.EventStep, Kind: c.kind},
		From:      from,
		To:        to,
		Input:     sym.String(),
	})
}

func (c *core[T, S]) emitFork(ctx context.Context, position, branches int) {
	if c.opts.hooks.OnFork == nil {
		return
	}
	c.opts.hooks.OnFork(ctx, &domain.ForkEvent{
		EventBase: domain.EventBase{Timestamp: time.Now(), Type: domain.EventFork, Kind: c.kind},
		Position:  position,
		Branches:  branches,
	})
}

func (c *core[T, S]) emitQuery(ctx context.Context, length int, accepted bool, err error, started time.Time) {
	if c.opts.hooks.OnAccept == nil {
		return
	}
	c.opts.hooks.OnAccept(ctx, &domain.QueryEvent{
		EventBase: domain.EventBase{Timestamp: time.Now(), Type: domain.EventAccept, Kind: c.kind},
		Length:    length,
		Accepted:  accepted,
		Err:       err,
		Duration:  time.Since(started),
	})
}
