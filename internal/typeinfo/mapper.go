package typeinfo

import "strings"

// Mapper is a case-insensitive lookup table from abstract type names to
// dialect-specific type information. It is populated once by a dialect
// and never mutated afterwards.
type Mapper struct {
	types map[string]TypeInfo
}

// NewMapper creates an empty type lookup table.
func NewMapper() *Mapper {
	return &Mapper{types: make(map[string]TypeInfo)}
}

// Add registers a type under its abstract name. Later registrations of
// the same name replace earlier ones.
func (m *Mapper) Add(t TypeInfo) {
	m.types[strings.ToLower(t.Name())] = t
}

// Get resolves an abstract type name. The second return value is false
// when the name is unknown to this dialect.
func (m *Mapper) Get(name string) (TypeInfo, bool) {
	t, ok := m.types[strings.ToLower(name)]
	return t, ok
}
