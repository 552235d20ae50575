package graph

import (
	"errors"
	"fmt"
	"slices"

	"github.com/cellux/grapher/internal/expression"
)

// ErrIndexOutOfRange is returned by RemoveAt for an index that does not
// name a registered function.
var ErrIndexOutOfRange = errors.New("index out of range")

// Registry holds the functions being plotted, in the order they were added.
type Registry struct {
	exprs     []*expression.Expression
	listeners []func()
}

func NewRegistry() *Registry {
	return &Registry{}
}

// OnChange registers f to be called after every successful mutation.
func (r *Registry) OnChange(f func()) {
	r.listeners = append(r.listeners, f)
}

func (r *Registry) changed() {
	for _, f := range r.listeners {
		f()
	}
}

// Add compiles source and appends it. On error the registry is unchanged.
func (r *Registry) Add(source string) error {
	e, err := expression.Compile(source)
	if err != nil {
		return err
	}
	r.exprs = append(r.exprs, e)
	r.changed()
	return nil
}

// RemoveAt deletes the function at index. Valid indices are 0..Len()-1.
func (r *Registry) RemoveAt(index int) error {
	if index < 0 || index >= len(r.exprs) {
		return fmt.Errorf("%w: %d (have %d functions)", ErrIndexOutOfRange, index, len(r.exprs))
	}
	r.exprs = slices.Delete(r.exprs, index, index+1)
	r.changed()
	return nil
}

// List returns the source text of every function in order.
func (r *Registry) List() []string {
	out := make([]string, len(r.exprs))
	for i, e := range r.exprs {
		out[i] = e.Source()
	}
	return out
}

func (r *Registry) Len() int {
	return len(r.exprs)
}

// Expressions returns a snapshot of the compiled functions.
func (r *Registry) Expressions() []*expression.Expression {
	return slices.Clone(r.exprs)
}
