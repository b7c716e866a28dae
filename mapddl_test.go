package mapddl_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mapddl/mapddl"
)

func TestGenerate(t *testing.T) {
	var buf bytes.Buffer
	err := mapddl.Generate("testdata/mapping.yaml",
		&mapddl.Options{Dialect: "mysql"},
		&mapddl.OutputOptions{Writer: &buf},
	)
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "-- MySQL DDL generated by mapddl")
	assert.Contains(t, out, "CREATE TABLE customer (")
	assert.Contains(t, out, "CREATE TABLE sales_order (")
	assert.Contains(t, out, "CREATE TABLE prod (")
	// Junction table synthesized from the two many-table declarations.
	assert.Contains(t, out, "CREATE TABLE order_product (")
	assert.Contains(t, out, "ALTER TABLE order_product ADD CONSTRAINT pk_order_product PRIMARY KEY (sales_order, prod)")
	assert.Contains(t, out, "REFERENCES customer (id)")
}

func TestGeneratePostgres(t *testing.T) {
	var buf bytes.Buffer
	err := mapddl.Generate("testdata/mapping.yaml",
		&mapddl.Options{Dialect: "postgres"},
		&mapddl.OutputOptions{Writer: &buf},
	)
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "-- PostgreSQL DDL generated by mapddl")
	assert.Contains(t, out, "DROP TABLE customer CASCADE;")
	assert.Contains(t, out, "CREATE SEQUENCE customer_seq;")
}

func TestGenerateToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "schema.sql")
	err := mapddl.Generate("testdata/mapping.yaml",
		&mapddl.Options{Dialect: "mysql"},
		&mapddl.OutputOptions{OutputFile: path},
	)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "CREATE TABLE customer (")
}

func TestGenerateGroupByOverride(t *testing.T) {
	var buf bytes.Buffer
	err := mapddl.Generate("testdata/mapping.yaml",
		&mapddl.Options{Dialect: "mysql", GroupBy: "statement"},
		&mapddl.OutputOptions{Writer: &buf},
	)
	require.NoError(t, err)

	out := buf.String()
	// All drops precede the first create.
	assert.Less(t,
		bytes.LastIndex(buf.Bytes(), []byte("DROP TABLE")),
		bytes.Index(buf.Bytes(), []byte("CREATE TABLE")),
		"expected every drop before the first create:\n%s", out)
}

func TestGenerateUnknownDialect(t *testing.T) {
	err := mapddl.Generate("testdata/mapping.yaml",
		&mapddl.Options{Dialect: "oracle"}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown dialect "oracle"`)
	assert.Contains(t, err.Error(), "available: mysql, postgres")
}

func TestGenerateMissingMapping(t *testing.T) {
	err := mapddl.Generate("testdata/absent.yaml", nil, &mapddl.OutputOptions{Writer: &bytes.Buffer{}})
	require.Error(t, err)
}

func TestBuildSchema(t *testing.T) {
	s, err := mapddl.BuildSchema("testdata/mapping.yaml", &mapddl.Options{Dialect: "mysql"})
	require.NoError(t, err)
	require.Len(t, s.Tables(), 4)

	jt := s.Table("order_product")
	require.NotNil(t, jt)
	assert.Len(t, jt.ForeignKeys(), 2)
}

func TestGenerateFromDocument(t *testing.T) {
	doc, err := mapddl.LoadMapping("testdata/mapping.yaml")
	require.NoError(t, err)

	var buf bytes.Buffer
	err = mapddl.GenerateFromDocument(doc, &mapddl.Options{Dialect: "mysql"}, &mapddl.OutputOptions{Writer: &buf})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "CREATE TABLE prod (")
}
