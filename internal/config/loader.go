package config

import (
	"fmt"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix is the prefix of environment variables overriding
// configuration keys, e.g. MAPDDL_GROUP_DDL_BY or
// MAPDDL_MYSQL__STORAGE_ENGINE ("__" separates nested keys).
const EnvPrefix = "MAPDDL_"

func defaults() map[string]any {
	return map[string]any{
		"dialect":             "mysql",
		"group_ddl_by":        GroupByTable,
		"statement_delimiter": ";",
		"schema_name":         "",

		"generate.schema":        true,
		"generate.drop":          true,
		"generate.create":        true,
		"generate.primary_key":   true,
		"generate.foreign_key":   true,
		"generate.index":         true,
		"generate.key_generator": true,

		"types.varchar_length":    255,
		"types.char_length":       256,
		"types.decimal_precision": 18,
		"types.decimal_decimals":  2,
	}
}

// Load builds the configuration from defaults, an optional YAML file,
// and MAPDDL_* environment variables, in increasing precedence.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load configuration defaults: %w", err)
	}

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load configuration file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("failed to load configuration from environment: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}
	return &cfg, nil
}

func envKey(s string) string {
	s = strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	return strings.ReplaceAll(s, "__", ".")
}
