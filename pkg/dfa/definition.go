package dfa

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/aretw0/automata/internal/validator"
	"github.com/aretw0/automata/pkg/domain"
)

// Config describes a deterministic finite automaton.
//
// Every source key of Transitions declares a state, even with an empty row.
// A zero target (domain.State{}) declares that the symbol has no move.
type Config[T comparable] struct {
	Alphabet    []domain.Symbol[T]
	Initial     domain.State
	Transitions map[domain.State]map[domain.Symbol[T]]domain.State
	Final       []domain.State
}

// Definition is an immutable, validated DFA. It is safe for concurrent use
// and is shared by every Automaton created from it.
type Definition[T comparable] struct {
	alphabet domain.Alphabet[T]
	states   domain.StateSet
	initial  domain.State
	final    domain.StateSet
	delta    map[domain.StateID]map[domain.Symbol[T]]domain.State
	logger   *slog.Logger
	hooks    domain.LifecycleHooks
}

// Compile validates cfg and builds a Definition.
// It fails with domain.ErrIllegalInitialState or domain.ErrIllegalFinalStates
// when the initial or final states are not implied by the transition table, and
// with domain.ErrConflictingTransition when two source keys share a StateID but
// disagree on a target.
func Compile[T comparable](cfg Config[T], opts ...Option) (*Definition[T], error) {
	o := newOptions(opts)

	var states domain.StateSet
	delta := make(map[domain.StateID]map[domain.Symbol[T]]domain.State, len(cfg.Transitions))
	for from, row := range cfg.Transitions {
		states.Add(from)
		moves := delta[from.ID()]
		if moves == nil {
			moves = make(map[domain.Symbol[T]]domain.State, len(row))
			delta[from.ID()] = moves
		}
		for sym, to := range row {
			if to.IsZero() {
				continue
			}
			if prev, ok := moves[sym]; ok && !prev.Equal(to) {
				err := fmt.Errorf("%w: %s on %s goes to both %s and %s", domain.ErrConflictingTransition, from, sym, prev, to)
				o.logger.Debug("definition rejected", "err", err)
				return nil, err
			}
			states.Add(to)
			moves[sym] = to
		}
	}

	if err := validator.ValidateStates(states, cfg.Initial, cfg.Final); err != nil {
		o.logger.Debug("definition rejected", "err", err)
		return nil, err
	}

	return &Definition[T]{
		alphabet: domain.NewAlphabet(cfg.Alphabet...),
		states:   states,
		initial:  cfg.Initial,
		final:    domain.NewStateSet(cfg.Final...),
		delta:    delta,
		logger:   o.logger,
		hooks:    o.hooks,
	}, nil
}

// New creates an instance positioned at the initial state.
func (d *Definition[T]) New() *Automaton[T] {
	return &Automaton[T]{def: d, current: d.initial}
}

// Language returns the language recognized by the definition.
func (d *Definition[T]) Language() *Language[T] {
	return &Language[T]{def: d}
}

func (d *Definition[T]) Alphabet() domain.Alphabet[T] { return d.alphabet }
func (d *Definition[T]) States() domain.StateSet      { return d.states.Clone() }
func (d *Definition[T]) Initial() domain.State        { return d.initial }
func (d *Definition[T]) Final() domain.StateSet       { return d.final.Clone() }

func (d *Definition[T]) lookup(from domain.State, sym domain.Symbol[T]) (domain.State, bool) {
	to, ok := d.delta[from.ID()][sym]
	return to, ok
}

// Inspect describes the definition for tables and diagrams.
func (d *Definition[T]) Inspect() domain.Description {
	var edges []domain.Edge
	for from, row := range d.delta {
		for sym, to := range row {
			edges = append(edges, domain.Edge{From: from, To: to.ID(), Input: sym.String()})
		}
	}
	domain.SortEdges(edges)

	return domain.Description{
		Kind:     domain.KindDFA,
		Alphabet: d.alphabet.Strings(),
		States:   domain.StateInfos(d.states, d.initial, d.final),
		Edges:    edges,
	}
}

// Equal reports whether two definitions have the same alphabet, initial
// state, final states and moves. States are compared by identifier.
func (d *Definition[T]) Equal(other *Definition[T]) bool {
	if d == other {
		return true
	}
	if other == nil || !d.initial.Equal(other.initial) {
		return false
	}
	if d.alphabet.Len() != other.alphabet.Len() || d.final.Len() != other.final.Len() || d.states.Len() != other.states.Len() {
		return false
	}
	for _, s := range d.alphabet.Symbols() {
		if !other.alphabet.Contains(s) {
			return false
		}
	}
	for _, s := range d.final.States() {
		if !other.final.Contains(s) {
			return false
		}
	}
	for _, s := range d.states.States() {
		if !other.states.Contains(s) {
			return false
		}
		row, otherRow := d.delta[s.ID()], other.delta[s.ID()]
		if len(row) != len(otherRow) {
			return false
		}
		for sym, to := range row {
			if otherTo, ok := otherRow[sym]; !ok || !otherTo.Equal(to) {
				return false
			}
		}
	}
	return true
}

func (d *Definition[T]) emitStep(ctx context.Context, from, to domain.State, sym domain.Symbol[T]) {
	if d.hooks.OnStep == nil {
		return
	}
	d.hooks.OnStep(ctx, &domain.StepEvent{
		EventBase: domain.EventBase{Timestamp: time.Now(), Type: domain.EventStep, Kind: domain.KindDFA},
		From:      from,
		To:        to,
		Input:     sym.String(),
	})
}

func (d *Definition[T]) emitQuery(ctx context.Context, length int, accepted bool, err error, started time.Time) {
	if d.hooks.OnAccept == nil {
		return
	}
	d.hooks.OnAccept(ctx, &domain.QueryEvent{
		EventBase: domain.EventBase{Timestamp: time.Now(), Type: domain.EventAccept, Kind: domain.KindDFA},
		Length:    length,
		Accepted:  accepted,
		Err:       err,
		Duration:  time.Since(started),
	})
}
