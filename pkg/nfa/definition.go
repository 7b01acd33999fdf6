package nfa

import (
	"context"
	"log/slog"
	"time"

	"github.com/aretw0/automata/internal/validator"
	"github.com/aretw0/automata/pkg/domain"
)

// Config describes a nondeterministic finite automaton.
//
// Every source key of Transitions declares a state, even with an empty row.
// Candidate lists may repeat a state; duplicates and zero states are dropped.
type Config[T comparable] struct {
	Alphabet    []domain.Symbol[T]
	Initial     domain.State
	Transitions map[domain.State]map[domain.Symbol[T]][]domain.State
	Final       []domain.State
}

// Definition is an immutable, validated NFA shared by its instances.
type Definition[T comparable] struct {
	alphabet domain.Alphabet[T]
	states   domain.StateSet
	initial  domain.State
	final    domain.StateSet
	delta    map[domain.StateID]map[domain.Symbol[T]][]domain.State
	opts     options
}

// Compile validates cfg and builds a Definition.
func Compile[T comparable](cfg Config[T], opts ...Option) (*Definition[T], error) {
	o := newOptions(opts)

	var states domain.StateSet
	rows := make(map[domain.StateID]map[domain.Symbol[T]]domain.StateSet, len(cfg.Transitions))
	for from, row := range cfg.Transitions {
		states.Add(from)
		merged := rows[from.ID()]
		if merged == nil {
			merged = make(map[domain.Symbol[T]]domain.StateSet, len(row))
			rows[from.ID()] = merged
		}
		for sym, targets := range row {
			set := merged[sym]
			for _, to := range targets {
				states.Add(to)
				set.Add(to)
			}
			merged[sym] = set
		}
	}

	if err := validator.ValidateStates(states, cfg.Initial, cfg.Final); err != nil {
		o.logger.Debug("definition rejected", "err", err)
		return nil, err
	}

	delta := make(map[domain.StateID]map[domain.Symbol[T]][]domain.State, len(rows))
	for from, row := range rows {
		moves := make(map[domain.Symbol[T]][]domain.State, len(row))
		for sym, set := range row {
			if set.Len() > 0 {
				moves[sym] = set.States()
			}
		}
		delta[from] = moves
	}

	return &Definition[T]{
		alphabet: domain.NewAlphabet(cfg.Alphabet...),
		states:   states,
		initial:  cfg.Initial,
		final:    domain.NewStateSet(cfg.Final...),
		delta:    delta,
		opts:     o,
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
func (d *Definition[T]) Logger() *slog.Logger         { return d.opts.logger }

// candidates returns the shared, sorted candidate list. Callers must not modify it.
func (d *Definition[T]) candidates(from domain.State, sym domain.Symbol[T]) []domain.State {
	return d.delta[from.ID()][sym]
}

// Inspect describes the definition for tables and diagrams.
func (d *Definition[T]) Inspect() domain.Description {
	var edges []domain.Edge
	for from, row := range d.delta {
		for sym, targets := range row {
			for _, to := range targets {
				edges = append(edges, domain.Edge{From: from, To: to.ID(), Input: sym.String()})
			}
		}
	}
	domain.SortEdges(edges)

	return domain.Description{
		Kind:     domain.KindNFA,
		Alphabet: d.alphabet.Strings(),
		States:   domain.StateInfos(d.states, d.initial, d.final),
		Edges:    edges,
	}
}

func (d *Definition[T]) emitStep(ctx context.Context, from, to domain.State, sym domain.Symbol[T]) {
	if d.opts.hooks.OnStep == nil {
		return
	}
	d.opts.hooks.OnStep(ctx, &domain.StepEvent{
		EventBase: domain.EventBase{Timestamp: time.Now(), Type: domain.EventStep, Kind: domain.KindNFA},
		From:      from,
		To:        to,
		Input:     sym.String(),
	})
}

func (d *Definition[T]) emitFork(ctx context.Context, position, branches int) {
	if d.opts.hooks.OnFork == nil {
		return
	}
	d.opts.hooks.OnFork(ctx, &domain.ForkEvent{
		EventBase: domain.EventBase{Timestamp: time.Now(), Type: domain.EventFork, Kind: domain.KindNFA},
		Position:  position,
		Branches:  branches,
	})
}

func (d *Definition[T]) emitQuery(ctx context.Context, length int, accepted bool, err error, started time.Time) {
	if d.opts.hooks.OnAccept == nil {
		return
	}
	d.opts.hooks.OnAccept(ctx, &domain.QueryEvent{
		EventBase: domain.EventBase{Timestamp: time.Now(), Type: domain.EventAccept, Kind: domain.KindNFA},
		Length:    length,
		Accepted:  accepted,
		Err:       err,
		Duration:  time.Since(started),
	})
}
