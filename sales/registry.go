package sales

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/samber/lo"

	"github.com/gaborage/salesquery/query"
	"github.com/gaborage/salesquery/validation"
)

// ErrUnknownModel is returned for model names without a registered factory.
var ErrUnknownModel = errors.New("unsupported model type")

// Factory returns a new, empty record to decode into.
type Factory func() Record

// Registry maps model names to factories. It is safe for concurrent use.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
	validator *validation.Validator
}

// NewRegistry returns a registry with every sales model registered under its
// lowercase singular name.
func NewRegistry() *Registry {
	r := &Registry{
		factories: make(map[string]Factory),
		validator: validation.Default(),
	}
	r.Register("category", func() Record { return &Category{} })
	r.Register("product", func() Record { return &Product{} })
	r.Register("sale", func() Record { return &Sale{} })
	r.Register("customer", func() Record { return &Customer{} })
	r.Register("employee", func() Record { return &Employee{} })
	r.Register("city", func() Record { return &City{} })
	r.Register("country", func() Record { return &Country{} })
	return r
}

// Register adds or replaces the factory for name. Names are case-insensitive.
func (r *Registry) Register(name string, factory Factory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.factories[normalizeName(name)] = factory
}

// Names returns the registered model names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := lo.Keys(r.factories)
	slices.Sort(names)
	return names
}

// Create decodes row into a new record of the named model and validates it.
// Validation failures are returned as *validation.ValidationError.
func (r *Registry) Create(name string, row query.Row) (Record, error) {
	r.mu.RLock()
	factory, ok := r.factories[normalizeName(name)]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownModel, name)
	}

	record := factory()
	if err := decodeInto(row, record); err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	if err := r.validator.Validate(record); err != nil {
		return nil, err
	}
	return record, nil
}

func normalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
