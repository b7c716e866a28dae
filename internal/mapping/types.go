// Package mapping holds the parsed object-to-table mapping document:
// persistent classes, their fields, and key-generator definitions. The
// descriptors are read-only input to the schema builder; junction-table
// synthesis creates additional synthetic descriptors at build time.
package mapping

import "strings"

// Document is a parsed mapping document.
type Document struct {
	KeyGenerators []KeyGenDef     `yaml:"key-generators"`
	Classes       []*ClassMapping `yaml:"classes"`
}

// KeyGenDef declares a named key-generation strategy, loaded once per
// document into the key-generator registry.
type KeyGenDef struct {
	// Name is the strategy identifier (MAX, HIGH-LOW, UUID, IDENTITY,
	// SEQUENCE).
	Name string `yaml:"name"`
	// Alias is the registry key classes refer to; defaults to Name.
	Alias string `yaml:"alias"`
	// Params holds strategy parameters, e.g. the sequence name pattern.
	Params map[string]string `yaml:"params"`
}

// Key returns the upper-cased registry key for this definition.
func (d KeyGenDef) Key() string {
	if d.Alias != "" {
		return strings.ToUpper(d.Alias)
	}
	return strings.ToUpper(d.Name)
}

// ClassMapping describes one persistent class.
type ClassMapping struct {
	Name string `yaml:"name"`
	// Table is the mapped table name. Empty means the class is not
	// persisted and produces no table.
	Table string `yaml:"table"`
	// Extends names the parent class, if any.
	Extends string `yaml:"extends"`
	// KeyGenerator names a key-generator definition by its alias.
	KeyGenerator string `yaml:"key-generator"`
	// Identity lists field names forming the identity when the fields
	// themselves carry no identity flags (convention mode).
	Identity []string        `yaml:"identity"`
	Fields   []*FieldMapping `yaml:"fields"`
}

// FieldMapping describes one persistent field of a class.
type FieldMapping struct {
	Name string `yaml:"name"`
	// Type is the declared type name: either a primitive type known to
	// the dialect's type mapper or the name of another persistent class.
	Type     string `yaml:"type"`
	Identity bool   `yaml:"identity"`
	Required bool   `yaml:"required"`
	// Columns lists the SQL column names. A field without columns and
	// without a many-table is not mapped to the database.
	Columns []string `yaml:"columns"`
	// SQLType overrides Type for column type resolution.
	SQLType string `yaml:"sql-type"`
	// ManyTable, when set, marks this field as a many-to-many relation
	// whose junction table has this name.
	ManyTable string `yaml:"many-table"`
	// ManyKeys lists the identity columns of the other side of a
	// many-to-many relation, or the referenced columns of a reference
	// field. Defaults to the referenced class's identity columns.
	ManyKeys []string `yaml:"many-keys"`
}

// HasColumns reports whether the field maps to at least one SQL column.
func (f *FieldMapping) HasColumns() bool {
	return len(f.Columns) > 0
}
