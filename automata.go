package automata

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/aretw0/automata/internal/presentation/graph"
	"github.com/aretw0/automata/internal/validator"
	"github.com/aretw0/automata/pkg/catalog"
	"github.com/aretw0/automata/pkg/domain"
)

// Engine is the high-level entry point for the automata library.
// It builds every machine of a catalog once and answers queries by name.
type Engine struct {
	catalog     *catalog.Catalog
	entries     map[string]catalog.Entry
	machines    map[string]catalog.Machine
	hooks       domain.LifecycleHooks
	logger      *slog.Logger
	parallelism int
	stateSet    bool
}

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithLifecycleHooks registers observability hooks on every machine.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithCatalog replaces the built-in catalog.
func WithCatalog(c *catalog.Catalog) Option {
	return func(e *Engine) {
		e.catalog = c
	}
}

// WithParallelism bounds the goroutines exploring one nondeterministic query.
// Zero selects runtime.GOMAXPROCS(0).
func WithParallelism(n int) Option {
	return func(e *Engine) {
		e.parallelism = n
	}
}

// WithStateSetSimulation answers NFA queries by state-set simulation.
func WithStateSetSimulation() Option {
	return func(e *Engine) {
		e.stateSet = true
	}
}

// New initializes an Engine and builds every machine of its catalog.
func New(opts ...Option) (*Engine, error) {
	eng := &Engine{}
	for _, opt := range opts {
		opt(eng)
	}

	if eng.catalog == nil {
		eng.catalog = catalog.Builtin()
	}
	if eng.logger == nil {
		eng.logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	buildOpts := catalog.Options{
		Logger:      eng.logger,
		Hooks:       eng.hooks,
		Parallelism: eng.parallelism,
		StateSet:    eng.stateSet,
	}

	eng.entries = make(map[string]catalog.Entry)
	eng.machines = make(map[string]catalog.Machine)
	for _, entry := range eng.catalog.Entries() {
		opts := buildOpts
		opts.Logger = eng.logger.With("machine", entry.Name)
		m, err := entry.Build(opts)
		if err != nil {
			return nil, fmt.Errorf("failed to build machine %s: %w", entry.Name, err)
		}
		eng.entries[entry.Name] = entry
		eng.machines[entry.Name] = m
	}

	eng.logger.Debug("engine ready", "machines", len(eng.machines))
	return eng, nil
}

// MachineInfo summarizes a machine of the engine.
type MachineInfo struct {
	Name    string      `json:"name"`
	Kind    domain.Kind `json:"kind"`
	Summary string      `json:"summary"`
}

// Description is a machine with its structure and lint warnings.
type Description struct {
	Name    string `json:"name"`
	Summary string `json:"summary"`
	domain.Description

	// Unreachable lists states no input can reach from the initial state.
	Unreachable []domain.StateInfo `json:"unreachable,omitempty"`
}

// Verdict is the answer to a language query.
type Verdict struct {
	Machine  string        `json:"machine"`
	Input    string        `json:"input"`
	Accepted bool          `json:"accepted"`
	Duration time.Duration `json:"duration"`
}

// Machines lists the machines of the engine sorted by name.
func (e *Engine) Machines() []MachineInfo {
	entries := e.catalog.Entries()
	out := make([]MachineInfo, 0, len(entries))
	for _, entry := range entries {
		if _, ok := e.machines[entry.Name]; !ok {
			continue
		}
		out = append(out, info(entry))
	}
	return out
}

// Machine returns the machine registered under name.
func (e *Engine) Machine(name string) (catalog.Machine, error) {
	m, ok := e.machines[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrMachineNotFound, name)
	}
	return m, nil
}

// Describe returns the structure of a machine.
func (e *Engine) Describe(name string) (Description, error) {
	m, err := e.Machine(name)
	if err != nil {
		return Description{}, err
	}
	desc := m.Describe()
	return Description{
		Name:        name,
		Summary:     e.entries[name].Summary,
		Description: desc,
		Unreachable: validator.Unreachable(desc),
	}, nil
}

// Accepts reports whether the machine accepts input, one symbol per rune.
// Inputs holding runes outside the alphabet are rejected with
// domain.ErrSymbolNotInAlphabet before the machine runs.
func (e *Engine) Accepts(ctx context.Context, name, input string) (Verdict, error) {
	m, err := e.Machine(name)
	if err != nil {
		return Verdict{}, err
	}
	if err := checkAlphabet(m.Describe(), input); err != nil {
		return Verdict{}, err
	}

	started := time.Now()
	accepted, err := m.Accepts(ctx, input)
	if err != nil {
		e.logger.Debug("query aborted", "machine", name, "err", err)
		return Verdict{}, fmt.Errorf("query on %s aborted: %w", name, err)
	}
	return Verdict{
		Machine:  name,
		Input:    input,
		Accepted: accepted,
		Duration: time.Since(started),
	}, nil
}

// Trace runs input on a deterministic machine and records every step.
func (e *Engine) Trace(ctx context.Context, name, input string) ([]domain.TraceStep, error) {
	m, err := e.Machine(name)
	if err != nil {
		return nil, err
	}
	if err := checkAlphabet(m.Describe(), input); err != nil {
		return nil, err
	}
	return m.Trace(ctx, input)
}

// Graph renders a machine as a Mermaid flowchart. For deterministic machines
// a non-empty input is traced and the visited states are highlighted.
func (e *Engine) Graph(ctx context.Context, name, input string) (string, error) {
	m, err := e.Machine(name)
	if err != nil {
		return "", err
	}
	desc := m.Describe()
	if input == "" || !m.Kind().Deterministic() {
		return graph.GenerateMermaid(desc, nil), nil
	}

	trace, err := e.Trace(ctx, name, input)
	if err != nil {
		return "", err
	}
	var start domain.State
	for _, s := range desc.States {
		if s.Initial {
			start = domain.NewState(s.ID, s.Label)
		}
	}
	visited := domain.Visited(start, trace)
	overlay := &graph.Overlay{Current: visited[len(visited)-1].ID()}
	for _, s := range visited {
		overlay.Visited = append(overlay.Visited, s.ID())
	}
	return graph.GenerateMermaid(desc, overlay), nil
}

func info(entry catalog.Entry) MachineInfo {
	return MachineInfo{Name: entry.Name, Kind: entry.Kind, Summary: entry.Summary}
}

func checkAlphabet(desc domain.Description, input string) error {
	alphabet := make(map[string]bool, len(desc.Alphabet))
	for _, s := range desc.Alphabet {
		alphabet[s] = true
	}
	for i, r := range []rune(input) {
		if !alphabet[string(r)] {
			return fmt.Errorf("%w: %q at position %d", domain.ErrSymbolNotInAlphabet, r, i)
		}
	}
	return nil
}
