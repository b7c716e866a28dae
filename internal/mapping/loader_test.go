package mapping

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleDoc = `
key-generators:
  - name: HIGH-LOW
    alias: hilo
    params:
      grab-size: "10"
classes:
  - name: myapp.Product
    table: prod
    key-generator: hilo
    identity: [id]
    fields:
      - name: id
        type: integer
        columns: [id]
      - name: name
        type: varchar
        required: true
        columns: [name]
      - name: categories
        type: myapp.Category
        many-table: category_prod
        many-keys: [prod_id]
  - name: myapp.Category
    table: category
    extends: myapp.Product
`

func TestParse(t *testing.T) {
	doc, err := Parse([]byte(sampleDoc))
	require.NoError(t, err)

	require.Len(t, doc.KeyGenerators, 1)
	kg := doc.KeyGenerators[0]
	assert.Equal(t, "HIGH-LOW", kg.Name)
	assert.Equal(t, "hilo", kg.Alias)
	assert.Equal(t, "10", kg.Params["grab-size"])
	assert.Equal(t, "HILO", kg.Key())

	require.Len(t, doc.Classes, 2)
	prod := doc.Classes[0]
	assert.Equal(t, "myapp.Product", prod.Name)
	assert.Equal(t, "prod", prod.Table)
	assert.Equal(t, "hilo", prod.KeyGenerator)
	assert.Equal(t, []string{"id"}, prod.Identity)

	require.Len(t, prod.Fields, 3)
	assert.True(t, prod.Fields[0].HasColumns())
	assert.True(t, prod.Fields[1].Required)
	assert.Equal(t, "category_prod", prod.Fields[2].ManyTable)
	assert.Equal(t, []string{"prod_id"}, prod.Fields[2].ManyKeys)
	assert.False(t, prod.Fields[2].HasColumns())

	assert.Equal(t, "myapp.Product", doc.Classes[1].Extends)
}

func TestParseValidation(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want string
	}{
		{
			name: "class without name",
			doc:  "classes:\n  - table: prod\n",
			want: "class at index 0 has no name",
		},
		{
			name: "field without name",
			doc:  "classes:\n  - name: myapp.Product\n    table: prod\n    fields:\n      - type: integer\n",
			want: `field at index 0 of class "myapp.Product" has no name`,
		},
		{
			name: "key generator without strategy",
			doc:  "key-generators:\n  - alias: hilo\n",
			want: "key generator at index 0 has no strategy name",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.doc))
			require.Error(t, err)
			var serr *StructuralError
			require.ErrorAs(t, err, &serr)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestParseRejectsMalformedYAML(t *testing.T) {
	_, err := Parse([]byte("classes: [unclosed"))
	require.Error(t, err)
	var serr *StructuralError
	assert.False(t, errors.As(err, &serr))
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load("testdata/does-not-exist.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read mapping document")
}
