// Package config provides the generator configuration: statement-kind
// toggles, grouping mode, delimiter, and per-dialect type defaults. It
// is decoupled from CLI concerns so the library facade can load it too.
package config

import "fmt"

// Grouping modes for DDL emission.
const (
	// GroupByTable emits drop/create/pk/fk/index/keygen per table.
	GroupByTable = "table"
	// GroupByStatement emits all drops, then all creates, and so on.
	GroupByStatement = "statement"
)

// Generate toggles emission per statement kind.
type Generate struct {
	Schema       bool `koanf:"schema"`
	Drop         bool `koanf:"drop"`
	Create       bool `koanf:"create"`
	PrimaryKey   bool `koanf:"primary_key"`
	ForeignKey   bool `koanf:"foreign_key"`
	Index        bool `koanf:"index"`
	KeyGenerator bool `koanf:"key_generator"`
}

// Types holds default parameters for parameterized column types.
type Types struct {
	VarcharLength    int `koanf:"varchar_length"`
	CharLength       int `koanf:"char_length"`
	DecimalPrecision int `koanf:"decimal_precision"`
	DecimalDecimals  int `koanf:"decimal_decimals"`
}

// MySQL holds MySQL-specific options.
type MySQL struct {
	StorageEngine string `koanf:"storage_engine"`
}

// Config is the full generator configuration.
type Config struct {
	Dialect            string   `koanf:"dialect"`
	GroupDDLBy         string   `koanf:"group_ddl_by"`
	StatementDelimiter string   `koanf:"statement_delimiter"`
	SchemaName         string   `koanf:"schema_name"`
	Generate           Generate `koanf:"generate"`
	Types              Types    `koanf:"types"`
	MySQL              MySQL    `koanf:"mysql"`
}

// Validate checks basic configuration consistency. The grouping mode is
// additionally enforced by the emission driver before any output.
func (c *Config) Validate() error {
	if c.GroupDDLBy != GroupByTable && c.GroupDDLBy != GroupByStatement {
		return fmt.Errorf("unsupported group_ddl_by value %q (must be %q or %q)",
			c.GroupDDLBy, GroupByTable, GroupByStatement)
	}
	if c.StatementDelimiter == "" {
		return fmt.Errorf("statement_delimiter must not be empty")
	}
	return nil
}
