// Package keygen provides key-generation strategies and the registry
// that maps strategy definitions from the mapping document to reusable
// key-generator objects attachable to one or more tables.
package keygen

import (
	"strings"

	"github.com/mapddl/mapddl/internal/mapping"
	"github.com/mapddl/mapddl/internal/schema"
	"github.com/mapddl/mapddl/internal/writer"
)

// Strategy identifiers understood by the dialect factories.
const (
	StrategyMax      = "MAX"
	StrategyHighLow  = "HIGH-LOW"
	StrategyUUID     = "UUID"
	StrategyIdentity = "IDENTITY"
	StrategySequence = "SEQUENCE"
)

// ParamSequence is the definition parameter holding the sequence name
// pattern; "{0}" is substituted with the owning table name.
const ParamSequence = "sequence"

// Builtin returns parameter-less definitions for the builtin
// strategies, pre-registered under their own names.
func Builtin() []mapping.KeyGenDef {
	return []mapping.KeyGenDef{
		{Name: StrategyMax},
		{Name: StrategyHighLow},
		{Name: StrategyUUID},
		{Name: StrategyIdentity},
		{Name: StrategySequence},
	}
}

// Base is an embeddable key generator that emits no DDL of its own.
// MAX, HIGH-LOW, UUID and IDENTITY key values are produced at runtime
// by the persistence layer, so only SEQUENCE strategies render DDL.
type Base struct {
	name  string
	alias string
	table schema.Table
}

// NewBase creates a Base from a definition, defaulting the alias to the
// strategy name.
func NewBase(def mapping.KeyGenDef) Base {
	alias := def.Alias
	if alias == "" {
		alias = def.Name
	}
	return Base{name: strings.ToUpper(def.Name), alias: alias}
}

func (b *Base) Name() string { return b.name }

func (b *Base) Alias() string { return b.alias }

func (b *Base) Table() schema.Table { return b.table }

func (b *Base) SetTable(t schema.Table) { b.table = t }

func (b *Base) CreateDDL(w *writer.Writer) error { return w.Err() }
