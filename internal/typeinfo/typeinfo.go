// Package typeinfo models dialect-specific column type information.
// Each dialect assembles a lookup table mapping abstract type names
// (the names used in mapping documents) to a TypeInfo that knows how to
// render itself as a SQL type expression.
package typeinfo

import "fmt"

// TypeInfo is dialect-specific column type information.
type TypeInfo interface {
	// Name is the abstract type name the mapping document uses.
	Name() string
	// DDL renders the SQL type expression, e.g. "VARCHAR(255)".
	DDL() (string, error)
}

// Lookup resolves abstract type names to column type information.
// A false return means the name is not a primitive type for this
// dialect; callers treat it as a reference to another persistent class.
type Lookup interface {
	Get(name string) (TypeInfo, bool)
}

type noParamType struct {
	name    string
	sqlName string
}

// NoParam creates a type rendered without parameters, e.g. "INTEGER".
func NoParam(name, sqlName string) TypeInfo {
	return &noParamType{name: name, sqlName: sqlName}
}

func (t *noParamType) Name() string { return t.name }

func (t *noParamType) DDL() (string, error) { return t.sqlName, nil }

type optionalLengthType struct {
	name    string
	sqlName string
	length  int
}

// OptionalLength creates a type rendered with a length parameter when
// one is configured, e.g. "CHAR(16)", and without one otherwise.
func OptionalLength(name, sqlName string, length int) TypeInfo {
	return &optionalLengthType{name: name, sqlName: sqlName, length: length}
}

func (t *optionalLengthType) Name() string { return t.name }

func (t *optionalLengthType) DDL() (string, error) {
	if t.length <= 0 {
		return t.sqlName, nil
	}
	return fmt.Sprintf("%s(%d)", t.sqlName, t.length), nil
}

type requiredLengthType struct {
	name    string
	sqlName string
	length  int
}

// RequiredLength creates a type whose length parameter is mandatory,
// e.g. "VARCHAR(255)". Rendering fails when no length is configured.
func RequiredLength(name, sqlName string, length int) TypeInfo {
	return &requiredLengthType{name: name, sqlName: sqlName, length: length}
}

func (t *requiredLengthType) Name() string { return t.name }

func (t *requiredLengthType) DDL() (string, error) {
	if t.length <= 0 {
		return "", fmt.Errorf("type %q requires a configured length", t.name)
	}
	return fmt.Sprintf("%s(%d)", t.sqlName, t.length), nil
}

type optionalPrecisionType struct {
	name      string
	sqlName   string
	precision int
	decimals  int
}

// OptionalPrecision creates a type rendered with precision and decimals
// when configured, e.g. "DECIMAL(18,2)".
func OptionalPrecision(name, sqlName string, precision, decimals int) TypeInfo {
	return &optionalPrecisionType{name: name, sqlName: sqlName, precision: precision, decimals: decimals}
}

func (t *optionalPrecisionType) Name() string { return t.name }

func (t *optionalPrecisionType) DDL() (string, error) {
	if t.precision <= 0 {
		return t.sqlName, nil
	}
	return fmt.Sprintf("%s(%d,%d)", t.sqlName, t.precision, t.decimals), nil
}
