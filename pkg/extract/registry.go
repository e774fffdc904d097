package extract

import (
	"sync"

	"go.uber.org/zap"

	"github.com/zenevan/sde2sql/pkg/errors"
	"github.com/zenevan/sde2sql/pkg/logger"
	"github.com/zenevan/sde2sql/pkg/schema"
	stringpool "github.com/zenevan/sde2sql/pkg/strings"
)

// Family groups entity kinds by the data family they are sourced from.
type Family string

const (
	// FamilyFSD covers keyed documents under the fsd directory
	FamilyFSD Family = "fsd"
	// FamilyBSD covers record-list documents under the bsd directory
	FamilyBSD Family = "bsd"
	// FamilyUniverse covers documents under the universe tree
	FamilyUniverse Family = "universe"
)

// Spec binds one entity kind to its source document, destination table,
// and extraction function. Specs are resolved once at startup and never
// mutated.
type Spec struct {
	// Kind identifies the entity kind
	Kind string
	// Family names the data family the source file belongs to
	Family Family
	// File is the source document file name within its family directory
	File string
	// Table is the relational destination
	Table schema.TableSpec
	// Extract produces row tuples for Table.Columns
	Extract Func
}

// Registry manages entity kind registration and lookup.
type Registry struct {
	mu     sync.RWMutex
	specs  map[string]Spec
	order  []string
	logger *zap.Logger
}

// NewRegistry creates an empty entity kind registry.
func NewRegistry() *Registry {
	return &Registry{
		specs:  make(map[string]Spec),
		logger: logger.Get().With(zap.String("component", "kind_registry")),
	}
}

// Register adds an entity kind spec. Registering the same kind twice or a
// spec without an extraction function is a configuration error.
func (r *Registry) Register(spec Spec) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if spec.Extract == nil {
		return errors.New(errors.ErrorTypeConfig,
			stringpool.Sprintf("entity kind %s has no extraction function", spec.Kind))
	}
	if _, exists := r.specs[spec.Kind]; exists {
		return errors.New(errors.ErrorTypeConfig,
			stringpool.Sprintf("entity kind %s already registered", spec.Kind))
	}

	r.specs[spec.Kind] = spec
	r.order = append(r.order, spec.Kind)
	r.logger.Debug("entity kind registered",
		zap.String("kind", spec.Kind),
		zap.String("table", spec.Table.Table))
	return nil
}

// Lookup returns the spec for a kind.
func (r *Registry) Lookup(kind string) (Spec, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	spec, ok := r.specs[kind]
	return spec, ok
}

// Kinds returns all registered kinds in registration order.
func (r *Registry) Kinds() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	kinds := make([]string, len(r.order))
	copy(kinds, r.order)
	return kinds
}

// Family returns the specs of one family in registration order.
func (r *Registry) Family(family Family) []Spec {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var specs []Spec
	for _, kind := range r.order {
		if spec := r.specs[kind]; spec.Family == family {
			specs = append(specs, spec)
		}
	}
	return specs
}
