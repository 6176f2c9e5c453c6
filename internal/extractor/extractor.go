package extractor

import (
	"fmt"

	"ReceiptLedger/internal/domain"
)

// Request carries one pasted markup document to an extraction strategy.
type Request struct {
	Markup string
	Store  string
}

// Extractor captures a single vendor strategy (Kroger today, others later).
type Extractor interface {
	Name() string
	Extract(req Request) ([]domain.LineItemRecord, error)
}

// Registry keeps a mapping from vendor names to their extractors.
type Registry struct {
	extractors map[string]Extractor
}

// NewRegistry builds an empty registry.
func NewRegistry() *Registry {
	return &Registry{extractors: map[string]Extractor{}}
}

// Register adds or replaces an extractor implementation.
func (r *Registry) Register(e Extractor) {
	if r.extractors == nil {
		r.extractors = map[string]Extractor{}
	}
	r.extractors[e.Name()] = e
}

// Resolve returns an extractor by vendor name or an error if it is absent.
func (r *Registry) Resolve(name string) (Extractor, error) {
	if e, ok := r.extractors[name]; ok {
		return e, nil
	}
	return nil, fmt.Errorf("extractor %s is not registered", name)
}
