package keygen

import (
	"strings"

	"github.com/mapddl/mapddl/internal/mapping"
	"github.com/mapddl/mapddl/internal/schema"
)

// Registry maps upper-cased key-generator names to generator objects
// built by the dialect factory. It is populated once at the start of a
// run and only read afterwards.
type Registry struct {
	factory schema.Factory
	gens    map[string]schema.KeyGenerator
}

// NewRegistry creates a registry pre-populated with the builtin
// strategies so mapping documents can refer to them without declaring
// a definition.
func NewRegistry(factory schema.Factory) (*Registry, error) {
	r := &Registry{
		factory: factory,
		gens:    make(map[string]schema.KeyGenerator),
	}
	for _, def := range Builtin() {
		if err := r.Register(def); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Register builds a generator from the definition and stores it under
// the definition's upper-cased key. Duplicate names overwrite earlier
// registrations (last-wins).
func (r *Registry) Register(def mapping.KeyGenDef) error {
	kg, err := r.factory.NewKeyGenerator(def)
	if err != nil {
		return err
	}
	r.gens[def.Key()] = kg
	return nil
}

// Get returns the generator registered under the given name, matched
// case-insensitively.
func (r *Registry) Get(name string) (schema.KeyGenerator, bool) {
	kg, ok := r.gens[strings.ToUpper(name)]
	return kg, ok
}
