package filter

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/s0up4200/wistiakit/wistia"
)

// Definition is an uncompiled preset as it appears in configuration
type Definition struct {
	Expression  string
	Description string
}

// Preset is a named, compiled filter
type Preset struct {
	Name        string
	Description string
	Filter      CompiledFilter
}

// Manager holds the preset catalogue and compiles ad-hoc expressions through
// a shared caching compiler. It is safe for concurrent use.
type Manager struct {
	compiler  Compiler
	evaluator *ConcurrentEvaluator

	mu      sync.RWMutex
	presets map[string]Preset
}

// ManagerOption configures a Manager
type ManagerOption func(*Manager)

// WithCompiler replaces the default expr compiler
func WithCompiler(compiler Compiler) ManagerOption {
	return func(m *Manager) {
		m.compiler = compiler
	}
}

// WithEvaluator replaces the default evaluator
func WithEvaluator(evaluator *ConcurrentEvaluator) ManagerOption {
	return func(m *Manager) {
		m.evaluator = evaluator
	}
}

func NewManager(opts ...ManagerOption) *Manager {
	m := &Manager{
		compiler:  NewExprCompiler(WithCache(100)),
		evaluator: NewConcurrentEvaluator(),
		presets:   make(map[string]Preset),
	}

	for _, opt := range opts {
		opt(m)
	}

	return m
}

// Compile compiles an expression that is not stored as a preset
func (m *Manager) Compile(expression string) (CompiledFilter, error) {
	return m.compiler.Compile(expression)
}

func (m *Manager) compilePreset(name string, def Definition) (Preset, error) {
	f, err := m.compiler.Compile(def.Expression)
	if err != nil {
		return Preset{}, fmt.Errorf("preset '%s': %w", name, err)
	}
	return Preset{Name: name, Description: def.Description, Filter: f}, nil
}

// AddPreset compiles and stores one preset, replacing any preset of the same name
func (m *Manager) AddPreset(name string, def Definition) error {
	p, err := m.compilePreset(name, def)
	if err != nil {
		return err
	}

	m.mu.Lock()
	m.presets[name] = p
	m.mu.Unlock()
	return nil
}

// LoadPresets replaces the whole catalogue. On a compile error the existing
// catalogue is left untouched.
func (m *Manager) LoadPresets(defs map[string]Definition) error {
	next := make(map[string]Preset, len(defs))
	names := make([]string, 0, len(defs))
	for name := range defs {
		names = append(names, name)
	}
	slices.Sort(names)
	for _, name := range names {
		p, err := m.compilePreset(name, defs[name])
		if err != nil {
			return err
		}
		next[name] = p
	}

	m.mu.Lock()
	m.presets = next
	m.mu.Unlock()
	return nil
}

func (m *Manager) RemovePreset(name string) {
	m.mu.Lock()
	delete(m.presets, name)
	m.mu.Unlock()
}

// Preset looks up a preset by name
func (m *Manager) Preset(name string) (Preset, bool) {
	m.mu.RLock()
	p, ok := m.presets[name]
	m.mu.RUnlock()
	return p, ok
}

// Presets returns every preset ordered by name
func (m *Manager) Presets() []Preset {
	m.mu.RLock()
	list := make([]Preset, 0, len(m.presets))
	for _, p := range m.presets {
		list = append(list, p)
	}
	m.mu.RUnlock()

	slices.SortFunc(list, func(a, b Preset) int {
		return cmp.Compare(a.Name, b.Name)
	})
	return list
}

// PresetNames returns the preset names in order
func (m *Manager) PresetNames() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	names := make([]string, 0, len(m.presets))
	for name := range m.presets {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Resolve picks the active filter. An explicit expression wins over a preset
// name, which wins over the fallback expression. It returns nil when all three
// are empty.
func (m *Manager) Resolve(expression, presetName, fallback string) (CompiledFilter, error) {
	switch {
	case expression != "":
		return m.Compile(expression)
	case presetName != "":
		p, ok := m.Preset(presetName)
		if !ok {
			return nil, fmt.Errorf("%w: '%s' (available: %s)", ErrPresetNotFound, presetName, strings.Join(m.PresetNames(), ", "))
		}
		return p.Filter, nil
	case fallback != "":
		return m.Compile(fallback)
	}
	return nil, nil
}

// Evaluator returns the evaluator shared by all selections
func (m *Manager) Evaluator() *ConcurrentEvaluator {
	return m.evaluator
}

// SelectPreset keeps the items matched by the named preset
func (m *Manager) SelectPreset(ctx context.Context, name string, items []wistia.DataItem) ([]wistia.DataItem, error) {
	p, ok := m.Preset(name)
	if !ok {
		return nil, fmt.Errorf("%w: '%s'", ErrPresetNotFound, name)
	}
	return m.evaluator.Evaluate(ctx, p.Filter, items)
}
