package runtime

import (
	"fmt"
	"sort"
)

// UndefinedVariableError is returned by Get and Assign when no scope in the
// chain binds Name.
type UndefinedVariableError struct {
	Name string
}

func (e *UndefinedVariableError) Error() string {
	return fmt.Sprintf("Undefined variable '%s'.", e.Name)
}

// Environment provides lexical scoping for troll runtime values.
type Environment struct {
	values map[string]Value
	parent *Environment
}

// NewEnvironment creates a new environment, optionally nested under a parent.
func NewEnvironment(parent *Environment) *Environment {
	return &Environment{
		values: make(map[string]Value),
		parent: parent,
	}
}

// Parent exposes the lexical parent (nil when global).
func (e *Environment) Parent() *Environment {
	return e.parent
}

// Define inserts or shadows a binding in the current scope.
func (e *Environment) Define(name string, value Value) {
	e.values[name] = value
}

// Assign updates an existing binding in the first scope where it appears. It
// never creates a binding.
func (e *Environment) Assign(name string, value Value) error {
	for env := e; env != nil; env = env.parent {
		if _, ok := env.values[name]; ok {
			env.values[name] = value
			return nil
		}
	}
	return &UndefinedVariableError{Name: name}
}

// Get retrieves a binding, searching outward through the scope chain.
func (e *Environment) Get(name string) (Value, error) {
	for env := e; env != nil; env = env.parent {
		if v, ok := env.values[name]; ok {
			return v, nil
		}
	}
	return nil, &UndefinedVariableError{Name: name}
}

// GetLocal reads a binding from this scope only.
func (e *Environment) GetLocal(name string) (Value, bool) {
	v, ok := e.values[name]
	return v, ok
}

// Keys returns the bindings in sorted order.
func (e *Environment) Keys() []string {
	keys := make([]string, 0, len(e.values))
	for k := range e.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Binding is one name bound in a scope.
type Binding struct {
	Name  string
	Value Value
}

// Bindings lists this scope's bindings ordered by name. Parent scopes are
// not included.
func (e *Environment) Bindings() []Binding {
	keys := e.Keys()
	out := make([]Binding, len(keys))
	for i, name := range keys {
		out[i] = Binding{Name: name, Value: e.values[name]}
	}
	return out
}

// Extend creates a child scope.
func (e *Environment) Extend() *Environment {
	return NewEnvironment(e)
}
