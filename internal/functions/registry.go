// Package functions holds the named example functions and the registry
// that dispatches to them. Every function takes exactly one string
// argument and returns a string.
package functions

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/NivBraz/funcbox/internal/models"
)

// ErrNotFound is returned when invoking an unregistered function.
var ErrNotFound = errors.New("function not found")

// Func is the body of a function.
type Func func(ctx context.Context, arg string) (string, error)

type Function struct {
	Name        string
	Description string
	Run         Func
}

func (f Function) Info() models.FunctionInfo {
	return models.FunctionInfo{Name: f.Name, Description: f.Description}
}

type Registry struct {
	mu    sync.RWMutex
	funcs map[string]Function
}

func NewRegistry() *Registry {
	return &Registry{
		funcs: make(map[string]Function),
	}
}

func (r *Registry) Register(f Function) error {
	if f.Name == "" {
		return fmt.Errorf("function name is required")
	}
	if f.Run == nil {
		return fmt.Errorf("function %s has no body", f.Name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.funcs[f.Name]; exists {
		return fmt.Errorf("function %s already registered", f.Name)
	}
	r.funcs[f.Name] = f
	return nil
}

func (r *Registry) Get(name string) (Function, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	f, ok := r.funcs[name]
	return f, ok
}

// List returns the registered functions sorted by name.
func (r *Registry) List() []Function {
	r.mu.RLock()
	out := make([]Function, 0, len(r.funcs))
	for _, f := range r.funcs {
		out = append(out, f)
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func (r *Registry) Invoke(ctx context.Context, name, arg string) (string, error) {
	f, ok := r.Get(name)
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	out, err := f.Run(ctx, arg)
	if err != nil {
		return "", fmt.Errorf("%s: %w", name, err)
	}
	return out, nil
}
