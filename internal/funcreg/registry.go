// Package funcreg catalogs the callable travel query operations with their
// parameter contracts, and dispatches model-requested invocations by name.
package funcreg

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/tripwise/tripwise/internal/llm"
	"github.com/tripwise/tripwise/internal/logging"
)

// ErrUnknownFunction is returned when dispatch targets an unregistered name.
var ErrUnknownFunction = errors.New("unknown function")

// Schema is a JSON-schema-like parameter contract.
type Schema struct {
	Type       string              `json:"type"`
	Properties map[string]Property `json:"properties"`
	Required   []string            `json:"required,omitempty"`
}

// Property describes one parameter.
type Property struct {
	Type        string   `json:"type"`
	Description string   `json:"description,omitempty"`
	Enum        []string `json:"enum,omitempty"`
}

// Function is a callable query operation.
type Function interface {
	// Name returns the function's identifier.
	Name() string

	// Description returns a human-readable description for the model.
	Description() string

	// Schema returns the parameter contract.
	Schema() Schema

	// Call runs the function with decoded JSON arguments. The returned
	// payload is always JSON: a success payload or a structured error
	// payload. A non-nil error means the arguments could not be decoded.
	Call(ctx context.Context, args json.RawMessage) (json.RawMessage, error)
}

// Registry maps function names to implementations. The orchestrator must
// only dispatch through the registry, never ad hoc.
type Registry struct {
	order []string
	funcs map[string]Function
	log   *logging.Logger
}

// NewRegistry creates an empty function registry.
func NewRegistry(log *logging.Logger) *Registry {
	return &Registry{
		funcs: make(map[string]Function),
		log:   log.Sub("funcreg"),
	}
}

// Register adds a function. Registration order is preserved in Definitions.
func (r *Registry) Register(f Function) {
	if _, exists := r.funcs[f.Name()]; !exists {
		r.order = append(r.order, f.Name())
	}
	r.funcs[f.Name()] = f
	r.log.Debug().Str("function", f.Name()).Msg("registered function")
}

// Get returns a function by name.
func (r *Registry) Get(name string) (Function, bool) {
	f, ok := r.funcs[name]
	return f, ok
}

// Names lists the registered function names in registration order.
func (r *Registry) Names() []string {
	return append([]string(nil), r.order...)
}

// Dispatch invokes the named function with the given arguments.
// Unknown names yield ErrUnknownFunction.
func (r *Registry) Dispatch(ctx context.Context, name string, args json.RawMessage) (json.RawMessage, error) {
	f, ok := r.funcs[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownFunction, name)
	}
	r.log.Info().Str("function", name).RawJSON("args", args).Msg("dispatching function")
	return f.Call(ctx, args)
}

// Definitions returns model-ready schemas for all registered functions.
func (r *Registry) Definitions() []llm.FunctionSchema {
	defs := make([]llm.FunctionSchema, 0, len(r.order))
	for _, name := range r.order {
		f := r.funcs[name]
		params, err := json.Marshal(f.Schema())
		if err != nil {
			// Schemas are static; a marshal failure is a programming error.
			r.log.Error().Err(err).Str("function", name).Msg("schema marshal failed")
			continue
		}
		defs = append(defs, llm.FunctionSchema{
			Name:        f.Name(),
			Description: f.Description(),
			Parameters:  params,
		})
	}
	return defs
}

// CatalogEntry is the public description of one registered function.
type CatalogEntry struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Parameters  Schema `json:"parameters"`
}

// Catalog lists every registered function with its parameter contract.
func (r *Registry) Catalog() []CatalogEntry {
	entries := make([]CatalogEntry, 0, len(r.order))
	for _, name := range r.order {
		f := r.funcs[name]
		entries = append(entries, CatalogEntry{
			Name:        f.Name(),
			Description: f.Description(),
			Parameters:  f.Schema(),
		})
	}
	return entries
}
