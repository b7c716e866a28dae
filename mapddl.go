// Package mapddl derives relational database schemas from declarative
// object-to-table mapping documents and renders them as DDL scripts.
//
// A mapping document (YAML) describes persistent classes, their fields,
// inheritance relationships and key-generation policy. The schema
// builder resolves column types transitively through class references,
// merges inherited identity columns across class hierarchies, and
// synthesizes junction tables for many-to-many relations. The finished
// schema model is rendered by a dialect-specific backend (MySQL or
// PostgreSQL).
//
// # Quick Start
//
//	err := mapddl.Generate("mapping.yaml",
//		&mapddl.Options{Dialect: "postgres"},
//		&mapddl.OutputOptions{OutputFile: "schema.sql"},
//	)
//
// # Two-phase use
//
// BuildSchema returns the schema model without emitting DDL, for
// callers that want to inspect the derived tables:
//
//	s, err := mapddl.BuildSchema("mapping.yaml", nil)
//	fmt.Printf("derived %d tables\n", len(s.Tables()))
//
// No SQL is ever executed: the tool only derives a target schema model
// from the mapping description and emits a script that would create it
// from scratch.
package mapddl

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/mapddl/mapddl/internal/config"
	"github.com/mapddl/mapddl/internal/dialect"
	"github.com/mapddl/mapddl/internal/generator"
	"github.com/mapddl/mapddl/internal/mapping"
	"github.com/mapddl/mapddl/internal/schema"

	// Register the built-in dialects.
	_ "github.com/mapddl/mapddl/internal/dialect/mysql"
	_ "github.com/mapddl/mapddl/internal/dialect/postgres"
)

// Options configures schema derivation.
//
// All fields are optional. If not specified:
//   - Dialect: taken from the configuration (default "mysql")
//   - ConfigFile: built-in defaults plus MAPDDL_* environment variables
//   - GroupBy: taken from the configuration (default "table")
type Options struct {
	// Dialect selects the DDL backend: "mysql" or "postgres".
	Dialect string

	// ConfigFile is the path of a YAML generator configuration holding
	// statement-kind toggles, grouping mode, delimiter and type
	// defaults.
	ConfigFile string

	// GroupBy overrides the configured statement grouping:
	// "table" or "statement".
	GroupBy string

	// Logger receives build progress and dialect capability warnings.
	// Defaults to a no-op logger.
	Logger *zap.Logger
}

// OutputOptions configures where the DDL script is written.
//
// If both Writer and OutputFile are set, OutputFile takes precedence.
// If neither is set, the script goes to os.Stdout. The script is
// buffered in memory and written only after generation succeeds, so a
// failed run never leaves partial output behind.
type OutputOptions struct {
	// Writer receives the DDL script.
	Writer io.Writer

	// OutputFile is the path of the script file to create.
	OutputFile string
}

// Generate derives the schema model from the mapping document at the
// given path and writes the DDL script in one call. This is the
// recommended function for most use cases.
func Generate(mappingPath string, opts *Options, outOpts *OutputOptions) error {
	doc, err := LoadMapping(mappingPath)
	if err != nil {
		return err
	}
	return GenerateFromDocument(doc, opts, outOpts)
}

// GenerateFromDocument derives the schema model from an already-parsed
// mapping document and writes the DDL script.
func GenerateFromDocument(doc *mapping.Document, opts *Options, outOpts *OutputOptions) error {
	gen, err := newGenerator(opts)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := gen.Generate(doc, &buf); err != nil {
		return err
	}

	w, closeOutput, err := resolveOutput(outOpts)
	if err != nil {
		return err
	}
	defer closeOutput()

	if _, err := w.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("failed to write DDL script: %w", err)
	}
	return nil
}

// BuildSchema derives the schema model from the mapping document at the
// given path without emitting any DDL.
func BuildSchema(mappingPath string, opts *Options) (schema.Schema, error) {
	doc, err := LoadMapping(mappingPath)
	if err != nil {
		return nil, err
	}
	gen, err := newGenerator(opts)
	if err != nil {
		return nil, err
	}
	return gen.BuildSchema(doc)
}

// LoadMapping reads and parses a mapping document from a YAML file.
func LoadMapping(path string) (*mapping.Document, error) {
	return mapping.Load(path)
}

func newGenerator(opts *Options) (*generator.Generator, error) {
	if opts == nil {
		opts = &Options{}
	}

	cfg, err := config.Load(opts.ConfigFile)
	if err != nil {
		return nil, err
	}
	if opts.Dialect != "" {
		cfg.Dialect = opts.Dialect
	}
	if opts.GroupBy != "" {
		cfg.GroupDDLBy = opts.GroupBy
	}

	d, ok := dialect.Get(cfg.Dialect)
	if !ok {
		return nil, fmt.Errorf("unknown dialect %q (available: %s)",
			cfg.Dialect, strings.Join(dialect.Names(), ", "))
	}

	return generator.New(cfg, d, opts.Logger), nil
}

func resolveOutput(outOpts *OutputOptions) (io.Writer, func(), error) {
	if outOpts == nil {
		outOpts = &OutputOptions{}
	}
	if outOpts.OutputFile != "" {
		f, err := os.Create(outOpts.OutputFile)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create output file: %w", err)
		}
		return f, func() { _ = f.Close() }, nil
	}
	if outOpts.Writer != nil {
		return outOpts.Writer, func() {}, nil
	}
	return os.Stdout, func() {}, nil
}
