// Package generator derives a relational schema model from a mapping
// document and renders it as DDL text. The builder performs type
// resolution through class references, inheritance merging, and
// junction-table synthesis; the emission driver walks the finished
// schema and asks each object to render itself.
package generator

import (
	"io"

	"go.uber.org/zap"

	"github.com/mapddl/mapddl/internal/config"
	"github.com/mapddl/mapddl/internal/dialect"
	"github.com/mapddl/mapddl/internal/mapping"
	"github.com/mapddl/mapddl/internal/schema"
	"github.com/mapddl/mapddl/internal/typeinfo"
	"github.com/mapddl/mapddl/internal/writer"
)

// Generator runs the build-then-emit pipeline for one dialect.
type Generator struct {
	cfg     *config.Config
	dialect dialect.Dialect
	factory schema.Factory
	types   typeinfo.Lookup
	log     *zap.Logger
}

// New creates a Generator for the given configuration and dialect.
func New(cfg *config.Config, d dialect.Dialect, log *zap.Logger) *Generator {
	if log == nil {
		log = zap.NewNop()
	}
	return &Generator{
		cfg:     cfg,
		dialect: d,
		factory: d.NewFactory(cfg, log),
		types:   d.NewTypeMapper(cfg, log),
		log:     log,
	}
}

// Generate builds the schema model from the mapping document and writes
// the DDL script to out. Nothing is written when the build fails.
func (g *Generator) Generate(doc *mapping.Document, out io.Writer) error {
	s, err := g.BuildSchema(doc)
	if err != nil {
		return err
	}

	groupBy := g.cfg.GroupDDLBy
	if groupBy != config.GroupByTable && groupBy != config.GroupByStatement {
		return mapping.Structuralf("unsupported group_ddl_by value %q", groupBy)
	}

	w := writer.New(out, g.cfg.StatementDelimiter)
	g.dialect.Header(w)

	if g.cfg.Generate.Schema {
		if err := s.CreateDDL(w); err != nil {
			return err
		}
	}

	if groupBy == config.GroupByTable {
		err = g.generateByTable(s, w)
	} else {
		err = g.generateByStatement(s, w)
	}
	if err != nil {
		return err
	}
	return w.Err()
}

// generateByTable emits drop, create, primary key, foreign keys,
// indexes and key generator for each table before moving to the next.
func (g *Generator) generateByTable(s schema.Schema, w *writer.Writer) error {
	gen := g.cfg.Generate
	for _, t := range s.Tables() {
		if gen.Drop {
			if err := t.DropDDL(w); err != nil {
				return err
			}
		}
		if gen.Create {
			if err := t.CreateDDL(w); err != nil {
				return err
			}
		}
		if gen.PrimaryKey {
			if err := t.PrimaryKey().CreateDDL(w); err != nil {
				return err
			}
		}
		if gen.ForeignKey {
			if err := g.createForeignKeyDDL(t, w); err != nil {
				return err
			}
		}
		if gen.Index {
			if err := g.createIndexDDL(t, w); err != nil {
				return err
			}
		}
		if gen.KeyGenerator {
			if err := g.createKeyGeneratorDDL(t, w); err != nil {
				return err
			}
		}
	}
	return w.Err()
}

// generateByStatement emits all drops, then all creates, then all
// primary keys, foreign keys, indexes and key generators.
func (g *Generator) generateByStatement(s schema.Schema, w *writer.Writer) error {
	gen := g.cfg.Generate
	tables := s.Tables()

	if gen.Drop {
		for _, t := range tables {
			if err := t.DropDDL(w); err != nil {
				return err
			}
		}
	}
	if gen.Create {
		for _, t := range tables {
			if err := t.CreateDDL(w); err != nil {
				return err
			}
		}
	}
	if gen.PrimaryKey {
		for _, t := range tables {
			if err := t.PrimaryKey().CreateDDL(w); err != nil {
				return err
			}
		}
	}
	if gen.ForeignKey {
		for _, t := range tables {
			if err := g.createForeignKeyDDL(t, w); err != nil {
				return err
			}
		}
	}
	if gen.Index {
		for _, t := range tables {
			if err := g.createIndexDDL(t, w); err != nil {
				return err
			}
		}
	}
	if gen.KeyGenerator {
		for _, t := range tables {
			if err := g.createKeyGeneratorDDL(t, w); err != nil {
				return err
			}
		}
	}
	return w.Err()
}

func (g *Generator) createForeignKeyDDL(t schema.Table, w *writer.Writer) error {
	for _, fk := range t.ForeignKeys() {
		if err := fk.CreateDDL(w); err != nil {
			return err
		}
	}
	return w.Err()
}

func (g *Generator) createIndexDDL(t schema.Table, w *writer.Writer) error {
	for _, idx := range t.Indexes() {
		if err := idx.CreateDDL(w); err != nil {
			return err
		}
	}
	return w.Err()
}

// createKeyGeneratorDDL assigns the owning table at emission time since
// one key-generator definition can be shared by multiple tables.
func (g *Generator) createKeyGeneratorDDL(t schema.Table, w *writer.Writer) error {
	kg := t.KeyGenerator()
	if kg == nil {
		return w.Err()
	}
	kg.SetTable(t)
	return kg.CreateDDL(w)
}
