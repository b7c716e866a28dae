// Package mysql implements the MySQL DDL dialect.
package mysql

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
	dialect.Register(&mysqlDialect{})
}

type mysqlDialect struct{}

func (d *mysqlDialect) Name() string { return "mysql" }

func (d *mysqlDialect) Header(w *writer.Writer) {
	w.Println("-- MySQL DDL generated by mapddl")
}

func (d *mysqlDialect) NewFactory(cfg *config.Config, log *zap.Logger) schema.Factory {
	return &factory{cfg: cfg, log: log}
}

func (d *mysqlDialect) NewTypeMapper(cfg *config.Config, log *zap.Logger) typeinfo.Lookup {
	m := typeinfo.NewMapper()

	m.Add(typeinfo.NoParam("bit", "TINYINT(1)"))
	m.Add(typeinfo.NoParam("tinyint", "TINYINT"))
	m.Add(typeinfo.NoParam("smallint", "SMALLINT"))
	m.Add(typeinfo.NoParam("integer", "INTEGER"))
	m.Add(typeinfo.NoParam("int", "INTEGER"))
	m.Add(typeinfo.NoParam("bigint", "BIGINT"))
	m.Add(typeinfo.NoParam("float", "FLOAT"))
	m.Add(typeinfo.NoParam("double", "DOUBLE"))
	m.Add(typeinfo.NoParam("real", "REAL"))
	m.Add(typeinfo.OptionalPrecision("numeric", "NUMERIC", cfg.Types.DecimalPrecision, cfg.Types.DecimalDecimals))
	m.Add(typeinfo.OptionalPrecision("decimal", "DECIMAL", cfg.Types.DecimalPrecision, cfg.Types.DecimalDecimals))
	m.Add(typeinfo.OptionalLength("char", "CHAR", cfg.Types.CharLength))
	m.Add(typeinfo.RequiredLength("varchar", "VARCHAR", cfg.Types.VarcharLength))
	m.Add(typeinfo.NoParam("longvarchar", "TEXT"))
	m.Add(typeinfo.NoParam("date", "DATE"))
	m.Add(typeinfo.NoParam("time", "TIME"))
	m.Add(typeinfo.NoParam("timestamp", "TIMESTAMP"))
	m.Add(typeinfo.OptionalLength("binary", "BINARY", 0))
	m.Add(typeinfo.RequiredLength("varbinary", "VARBINARY", cfg.Types.VarcharLength))
	m.Add(typeinfo.NoParam("blob", "BLOB"))
	m.Add(typeinfo.NoParam("clob", "TEXT"))
	m.Add(typeinfo.NoParam("boolean", "BOOLEAN"))

	return m
}

type factory struct {
	cfg *config.Config
	log *zap.Logger
}

func (f *factory) NewSchema() schema.Schema { return &mysqlSchema{} }

func (f *factory) NewTable() schema.Table {
	return &mysqlTable{engine: f.cfg.MySQL.StorageEngine}
}

func (f *factory) NewField() schema.Field { return &mysqlField{} }

func (f *factory) NewPrimaryKey() schema.PrimaryKey { return &schema.BasePrimaryKey{} }

func (f *factory) NewForeignKey() schema.ForeignKey { return &schema.BaseForeignKey{} }

func (f *factory) NewIndex() schema.Index { return &schema.BaseIndex{} }

func (f *factory) NewKeyGenerator(def mapping.KeyGenDef) (schema.KeyGenerator, error) {
	base := keygen.NewBase(def)
	switch strings.ToUpper(def.Name) {
	case keygen.StrategyMax, keygen.StrategyHighLow, keygen.StrategyUUID, keygen.StrategyIdentity:
		return &base, nil
	case keygen.StrategySequence:
		f.log.Warn("MySQL does not support sequences; SEQUENCE key generator emits no DDL",
			zap.String("keyGenerator", base.Alias()))
		return &base, nil
	default:
		return nil, mapping.Structuralf("unknown key generator strategy %q", def.Name)
	}
}

// mysqlSchema renders the schema-level statement as CREATE DATABASE.
type mysqlSchema struct {
	schema.BaseSchema
}

func (s *mysqlSchema) CreateDDL(w *writer.Writer) error {
	if s.Name() == "" {
		return w.Err()
	}
	w.Println("")
	w.Println("")
	w.Print("CREATE DATABASE %s", s.Name())
	w.Delimiter()
	return w.Err()
}

type mysqlTable struct {
	schema.BaseTable
	engine string
}

func (t *mysqlTable) CreateDDL(w *writer.Writer) error {
	w.Println("")
	w.Println("")
	w.Println("CREATE TABLE %s (", t.Name())
	if err := t.WriteFields(w); err != nil {
		return err
	}
	w.Println("")
	if t.engine != "" {
		w.Print(") ENGINE=%s", t.engine)
	} else {
		w.Print(")")
	}
	w.Delimiter()
	return w.Err()
}

func (t *mysqlTable) DropDDL(w *writer.Writer) error {
	w.Println("")
	w.Println("")
	w.Print("DROP TABLE IF EXISTS %s", t.Name())
	w.Delimiter()
	return w.Err()
}

// mysqlField renders AUTO_INCREMENT for identity columns driven by the
// IDENTITY key generator.
type mysqlField struct {
	schema.BaseField
}

func (f *mysqlField) CreateDDL(w *writer.Writer) error {
	typeDDL, err := f.TypeDDL()
	if err != nil {
		return err
	}
	w.Print("%s %s", f.Name(), typeDDL)
	if f.Identity() || f.Required() {
		w.Print(" NOT NULL")
	}
	if kg := f.KeyGenerator(); kg != nil && f.Identity() && kg.Name() == keygen.StrategyIdentity {
		w.Print(" AUTO_INCREMENT")
	}
	return w.Err()
}
