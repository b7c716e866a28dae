// Package postgres implements the PostgreSQL DDL dialect.
package postgres

import (
	"strings"

	"go.uber.org/zap"

	"github.com/mapddl/mapddl/internal/config"
	"github.com/mapddl/mapddl/internal/dialect"
	"github.com/mapddl/mapddl/internal/keygen"
	"github.com/mapddl/mapddl/internal/mapping"
	"github.com/mapddl/mapddl/internal/schema"
	"github.com/mapddl/mapddl/internal/typeinfo"
	"github.com/mapddl/mapddl/internal/writer"
)

func init() {
	dialect.Register(&postgresDialect{})
}

type postgresDialect struct{}

func (d *postgresDialect) Name() string { return "postgres" }

func (d *postgresDialect) Header(w *writer.Writer) {
	w.Println("-- PostgreSQL DDL generated by mapddl")
}

func (d *postgresDialect) NewFactory(cfg *config.Config, log *zap.Logger) schema.Factory {
	return &factory{cfg: cfg, log: log}
}

func (d *postgresDialect) NewTypeMapper(cfg *config.Config, log *zap.Logger) typeinfo.Lookup {
	log.Debug("PostgreSQL maps tinyint to SMALLINT and binary types to BYTEA")

	m := typeinfo.NewMapper()

	m.Add(typeinfo.NoParam("bit", "BOOLEAN"))
	m.Add(typeinfo.NoParam("tinyint", "SMALLINT"))
	m.Add(typeinfo.NoParam("smallint", "SMALLINT"))
	m.Add(typeinfo.NoParam("integer", "INTEGER"))
	m.Add(typeinfo.NoParam("int", "INTEGER"))
	m.Add(typeinfo.NoParam("bigint", "BIGINT"))
	m.Add(typeinfo.NoParam("float", "DOUBLE PRECISION"))
	m.Add(typeinfo.NoParam("double", "DOUBLE PRECISION"))
	m.Add(typeinfo.NoParam("real", "REAL"))
	m.Add(typeinfo.OptionalPrecision("numeric", "NUMERIC", cfg.Types.DecimalPrecision, cfg.Types.DecimalDecimals))
	m.Add(typeinfo.OptionalPrecision("decimal", "DECIMAL", cfg.Types.DecimalPrecision, cfg.Types.DecimalDecimals))
	m.Add(typeinfo.OptionalLength("char", "CHAR", cfg.Types.CharLength))
	m.Add(typeinfo.RequiredLength("varchar", "VARCHAR", cfg.Types.VarcharLength))
	m.Add(typeinfo.NoParam("longvarchar", "TEXT"))
	m.Add(typeinfo.NoParam("date", "DATE"))
	m.Add(typeinfo.NoParam("time", "TIME"))
	m.Add(typeinfo.NoParam("timestamp", "TIMESTAMP"))
	m.Add(typeinfo.NoParam("binary", "BYTEA"))
	m.Add(typeinfo.NoParam("varbinary", "BYTEA"))
	m.Add(typeinfo.NoParam("blob", "BYTEA"))
	m.Add(typeinfo.NoParam("clob", "TEXT"))
	m.Add(typeinfo.NoParam("boolean", "BOOLEAN"))

	return m
}

type factory struct {
	cfg *config.Config
	log *zap.Logger
}

func (f *factory) NewSchema() schema.Schema { return &schema.BaseSchema{} }

func (f *factory) NewTable() schema.Table { return &postgresTable{} }

func (f *factory) NewField() schema.Field { return &schema.BaseField{} }

func (f *factory) NewPrimaryKey() schema.PrimaryKey { return &schema.BasePrimaryKey{} }

func (f *factory) NewForeignKey() schema.ForeignKey { return &schema.BaseForeignKey{} }

func (f *factory) NewIndex() schema.Index { return &schema.BaseIndex{} }

func (f *factory) NewKeyGenerator(def mapping.KeyGenDef) (schema.KeyGenerator, error) {
	base := keygen.NewBase(def)
	switch strings.ToUpper(def.Name) {
	case keygen.StrategyMax, keygen.StrategyHighLow, keygen.StrategyUUID, keygen.StrategyIdentity:
		return &base, nil
	case keygen.StrategySequence:
		return &sequenceKey{Base: base, pattern: def.Params[keygen.ParamSequence]}, nil
	default:
		return nil, mapping.Structuralf("unknown key generator strategy %q", def.Name)
	}
}

type postgresTable struct {
	schema.BaseTable
}

func (t *postgresTable) DropDDL(w *writer.Writer) error {
	w.Println("")
	w.Println("")
	w.Print("DROP TABLE %s CASCADE", t.Name())
	w.Delimiter()
	return w.Err()
}

// sequenceKey renders a CREATE SEQUENCE statement for the owning
// table. The sequence name pattern substitutes {0} with the table name.
type sequenceKey struct {
	keygen.Base
	pattern string
}

func (k *sequenceKey) CreateDDL(w *writer.Writer) error {
	pattern := k.pattern
	if pattern == "" {
		pattern = "{0}_seq"
	}
	table := ""
	if k.Table() != nil {
		table = k.Table().Name()
	}
	name := strings.ReplaceAll(pattern, "{0}", table)

	w.Println("")
	w.Println("")
	w.Print("CREATE SEQUENCE %s", name)
	w.Delimiter()
	return w.Err()
}
