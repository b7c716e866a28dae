// Package dialect provides the registry of DDL dialects. Concrete
// dialects register themselves from internal/dialect/*/ packages; the
// library facade imports them for their registration side effect.
package dialect

import (
	"sort"
	"sync"

	"go.uber.org/zap"

	"github.com/mapddl/mapddl/internal/config"
	"github.com/mapddl/mapddl/internal/schema"
	"github.com/mapddl/mapddl/internal/typeinfo"
	"github.com/mapddl/mapddl/internal/writer"
)

// Dialect is one DDL backend: a schema-object family, a column type
// lookup table, and a script header.
type Dialect interface {
	Name() string
	NewFactory(cfg *config.Config, log *zap.Logger) schema.Factory
	NewTypeMapper(cfg *config.Config, log *zap.Logger) typeinfo.Lookup
	// Header writes the leading comment of the generated script.
	Header(w *writer.Writer)
}

var (
	mu       sync.RWMutex
	dialects = make(map[string]Dialect)
)

// Register adds a dialect to the registry, replacing any dialect
// previously registered under the same name.
func Register(d Dialect) {
	mu.Lock()
	defer mu.Unlock()
	dialects[d.Name()] = d
}

// Get returns the dialect registered under the given name.
func Get(name string) (Dialect, bool) {
	mu.RLock()
	defer mu.RUnlock()
	d, ok := dialects[name]
	return d, ok
}

// Names returns the registered dialect names in sorted order.
func Names() []string {
	mu.RLock()
	defer mu.RUnlock()
	names := make([]string, 0, len(dialects))
	for name := range dialects {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
