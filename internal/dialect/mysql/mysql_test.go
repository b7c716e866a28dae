package mysql

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/mapddl/mapddl/internal/config"
	"github.com/mapddl/mapddl/internal/keygen"
	"github.com/mapddl/mapddl/internal/mapping"
	"github.com/mapddl/mapddl/internal/schema"
	"github.com/mapddl/mapddl/internal/writer"
)

func testConfig() *config.Config {
	return &config.Config{
		Types: config.Types{
			VarcharLength:    255,
			CharLength:       256,
			DecimalPrecision: 18,
			DecimalDecimals:  2,
		},
	}
}

func TestTypeMapper(t *testing.T) {
	m := (&mysqlDialect{}).NewTypeMapper(testConfig(), zap.NewNop())

	tests := []struct {
		abstract string
		want     string
	}{
		{"integer", "INTEGER"},
		{"varchar", "VARCHAR(255)"},
		{"char", "CHAR(256)"},
		{"decimal", "DECIMAL(18,2)"},
		{"longvarchar", "TEXT"},
		{"clob", "TEXT"},
		{"bit", "TINYINT(1)"},
	}
	for _, tt := range tests {
		ti, ok := m.Get(tt.abstract)
		require.True(t, ok, "type %s not mapped", tt.abstract)
		ddl, err := ti.DDL()
		require.NoError(t, err)
		assert.Equal(t, tt.want, ddl)
	}

	_, ok := m.Get("geometry")
	assert.False(t, ok)
}

func TestTableDDL(t *testing.T) {
	d := &mysqlDialect{}
	m := d.NewTypeMapper(testConfig(), zap.NewNop())

	cfg := testConfig()
	cfg.MySQL.StorageEngine = "InnoDB"
	f := d.NewFactory(cfg, zap.NewNop())

	tbl := f.NewTable()
	tbl.SetName("prod")

	id := f.NewField()
	id.SetName("id")
	ti, _ := m.Get("integer")
	id.SetType(ti)
	id.SetIdentity(true)
	tbl.AddField(id)

	var buf bytes.Buffer
	w := writer.New(&buf, ";")
	require.NoError(t, tbl.CreateDDL(w))
	assert.Equal(t, "\n\nCREATE TABLE prod (\n  id INTEGER NOT NULL\n) ENGINE=InnoDB;", buf.String())

	buf.Reset()
	require.NoError(t, tbl.DropDDL(writer.New(&buf, ";")))
	assert.Equal(t, "\n\nDROP TABLE IF EXISTS prod;", buf.String())
}

func TestTableDDLWithoutStorageEngine(t *testing.T) {
	f := (&mysqlDialect{}).NewFactory(testConfig(), zap.NewNop())

	tbl := f.NewTable()
	tbl.SetName("prod")

	var buf bytes.Buffer
	require.NoError(t, tbl.CreateDDL(writer.New(&buf, ";")))
	assert.Equal(t, "\n\nCREATE TABLE prod (\n\n);", buf.String())
}

func TestFieldAutoIncrement(t *testing.T) {
	d := &mysqlDialect{}
	f := d.NewFactory(testConfig(), zap.NewNop())
	m := d.NewTypeMapper(testConfig(), zap.NewNop())
	ti, _ := m.Get("integer")

	identityGen, err := f.NewKeyGenerator(mapping.KeyGenDef{Name: keygen.StrategyIdentity})
	require.NoError(t, err)
	maxGen, err := f.NewKeyGenerator(mapping.KeyGenDef{Name: keygen.StrategyMax})
	require.NoError(t, err)

	tests := []struct {
		name     string
		identity bool
		gen      schema.KeyGenerator
		want     string
	}{
		{"identity strategy", true, identityGen, "id INTEGER NOT NULL AUTO_INCREMENT"},
		{"max strategy", true, maxGen, "id INTEGER NOT NULL"},
		{"non-identity column", false, identityGen, "id INTEGER"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fld := f.NewField()
			fld.SetName("id")
			fld.SetType(ti)
			fld.SetIdentity(tt.identity)
			fld.SetKeyGenerator(tt.gen)

			var buf bytes.Buffer
			require.NoError(t, fld.CreateDDL(writer.New(&buf, ";")))
			assert.Equal(t, tt.want, buf.String())
		})
	}
}

func TestSchemaDDL(t *testing.T) {
	f := (&mysqlDialect{}).NewFactory(testConfig(), zap.NewNop())

	s := f.NewSchema()
	s.SetName("shop")

	var buf bytes.Buffer
	require.NoError(t, s.CreateDDL(writer.New(&buf, ";")))
	assert.Equal(t, "\n\nCREATE DATABASE shop;", buf.String())

	s.SetName("")
	buf.Reset()
	require.NoError(t, s.CreateDDL(writer.New(&buf, ";")))
	assert.Zero(t, buf.Len())
}

func TestNewKeyGenerator(t *testing.T) {
	f := (&mysqlDialect{}).NewFactory(testConfig(), zap.NewNop())

	// SEQUENCE is accepted but emits no DDL on MySQL.
	kg, err := f.NewKeyGenerator(mapping.KeyGenDef{Name: keygen.StrategySequence, Alias: "seq"})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, kg.CreateDDL(writer.New(&buf, ";")))
	assert.Zero(t, buf.Len())

	_, err = f.NewKeyGenerator(mapping.KeyGenDef{Name: "SNOWFLAKE"})
	var serr *mapping.StructuralError
	require.ErrorAs(t, err, &serr)
}
