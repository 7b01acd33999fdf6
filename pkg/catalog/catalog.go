package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"github.com/aretw0/automata/pkg/domain"
)

// Machine is a named automaton over runes, reduced to what the command line
// and HTTP surfaces need.
type Machine interface {
	Name() string
	Kind() domain.Kind
	Describe() domain.Description
	Accepts(ctx context.Context, input string) (bool, error)

	// Trace returns domain.ErrTraceUnsupported for nondeterministic machines.
	Trace(ctx context.Context, input string) ([]domain.TraceStep, error)
}

// Options are applied to every machine a catalog builds.
type Options struct {
	Logger      *slog.Logger
	Hooks       domain.LifecycleHooks
	Parallelism int

	// StateSet answers NFA queries with state-set simulation instead of forking.
	StateSet bool
}

// Entry describes a machine and how to build it.
type Entry struct {
	Name    string
	Summary string
	Kind    domain.Kind
	Build   func(opts Options) (Machine, error)
}

// Catalog manages the available machines.
type Catalog struct {
	mu      sync.RWMutex
	entries map[string]Entry
}

// New creates a new empty catalog.
func New() *Catalog {
	return &Catalog{
		entries: make(map[string]Entry),
	}
}

// Register adds an entry to the catalog.
// If an entry with the same name exists, it is overwritten.
func (c *Catalog) Register(e Entry) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[e.Name] = e
}

// Lookup returns the entry with the given name.
func (c *Catalog) Lookup(name string) (Entry, error) {
	c.mu.RLock()
	e, ok := c.entries[name]
	c.mu.RUnlock()

	if !ok {
		return Entry{}, fmt.Errorf("%w: %s", domain.ErrMachineNotFound, name)
	}
	return e, nil
}

// Entries returns every entry sorted by name.
func (c *Catalog) Entries() []Entry {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]Entry, 0, len(c.entries))
	for _, e := range c.entries {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Build looks up name and builds its machine.
func (c *Catalog) Build(name string, opts Options) (Machine, error) {
	e, err := c.Lookup(name)
	if err != nil {
		return nil, err
	}
	m, err := e.Build(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to build %s: %w", name, err)
	}
	return m, nil
}
