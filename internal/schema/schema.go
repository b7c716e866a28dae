// Package schema holds the relational schema model assembled by the
// builder: Schema → Tables → {Fields, PrimaryKey, ForeignKeys, Indexes,
// optional KeyGenerator}. Every object kind is an interface backed by a
// base implementation with standard SQL rendering; dialects embed the
// base objects and override only what differs. Concrete families are
// created through a Factory injected into the builder.
package schema

import (
	"github.com/mapddl/mapddl/internal/mapping"
	"github.com/mapddl/mapddl/internal/typeinfo"
	"github.com/mapddl/mapddl/internal/writer"
)

// RelationType tags a foreign key as one-to-one or many-to-many.
type RelationType int

const (
	// OneToOne marks a foreign key synthesized from a reference field.
	OneToOne RelationType = iota
	// ManyToMany marks a foreign key attached to a junction table.
	ManyToMany
)

// Schema owns the ordered collection of tables being generated.
// Table names are unique within a schema.
type Schema interface {
	Name() string
	SetName(name string)
	AddTable(t Table) error
	Tables() []Table
	// Table returns the table with the given name, or nil.
	Table(name string) Table
	// CreateDDL renders the schema-level creation statement, if any.
	CreateDDL(w *writer.Writer) error
}

// Table is one table of the schema under construction.
type Table interface {
	Name() string
	SetName(name string)
	Schema() Schema
	SetSchema(s Schema)
	AddField(f Field)
	Fields() []Field
	// Field returns the field with the given name, or nil.
	Field(name string) Field
	PrimaryKey() PrimaryKey
	SetPrimaryKey(pk PrimaryKey)
	AddForeignKey(fk ForeignKey)
	ForeignKeys() []ForeignKey
	AddIndex(idx Index)
	Indexes() []Index
	KeyGenerator() KeyGenerator
	SetKeyGenerator(kg KeyGenerator)
	CreateDDL(w *writer.Writer) error
	DropDDL(w *writer.Writer) error
}

// Field is one column of a table. Identity fields are exactly the
// fields referenced by the owning table's primary key.
type Field interface {
	Name() string
	SetName(name string)
	Table() Table
	SetTable(t Table)
	Type() typeinfo.TypeInfo
	SetType(ti typeinfo.TypeInfo)
	Identity() bool
	SetIdentity(identity bool)
	Required() bool
	SetRequired(required bool)
	KeyGenerator() KeyGenerator
	SetKeyGenerator(kg KeyGenerator)
	// CreateDDL renders the column clause inside CREATE TABLE.
	CreateDDL(w *writer.Writer) error
}

// PrimaryKey is the primary key of a table, named pk_<table>.
type PrimaryKey interface {
	Name() string
	SetName(name string)
	Table() Table
	SetTable(t Table)
	AddField(f Field)
	Fields() []Field
	CreateDDL(w *writer.Writer) error
}

// ForeignKey is a foreign key constraint, named <table>_<fieldName>.
// Local and referenced fields are parallel by position.
type ForeignKey interface {
	Name() string
	SetName(name string)
	Table() Table
	SetTable(t Table)
	AddField(f Field)
	Fields() []Field
	ReferenceTable() Table
	SetReferenceTable(t Table)
	AddReferenceField(f Field)
	ReferenceFields() []Field
	RelationType() RelationType
	SetRelationType(rt RelationType)
	CreateDDL(w *writer.Writer) error
}

// Index is a table index. The builder currently never populates
// indexes from the mapping; the emission driver still supports them.
type Index interface {
	Name() string
	SetName(name string)
	Table() Table
	SetTable(t Table)
	AddField(f Field)
	Fields() []Field
	Unique() bool
	SetUnique(unique bool)
	CreateDDL(w *writer.Writer) error
}

// KeyGenerator is a named key-generation strategy attachable to one or
// more tables. The owning table is assigned at emission time since one
// definition can be shared by multiple tables.
type KeyGenerator interface {
	// Name is the strategy identifier (MAX, SEQUENCE, ...).
	Name() string
	// Alias is the registry key classes refer to.
	Alias() string
	Table() Table
	SetTable(t Table)
	CreateDDL(w *writer.Writer) error
}

// Factory creates dialect-flavored schema objects (abstract factory).
type Factory interface {
	NewSchema() Schema
	NewTable() Table
	NewField() Field
	NewPrimaryKey() PrimaryKey
	NewForeignKey() ForeignKey
	NewIndex() Index
	NewKeyGenerator(def mapping.KeyGenDef) (KeyGenerator, error)
}
