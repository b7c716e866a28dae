package typeinfo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTypeDDL(t *testing.T) {
	tests := []struct {
		name    string
		typ     TypeInfo
		want    string
		wantErr bool
	}{
		{name: "no param", typ: NoParam("integer", "INTEGER"), want: "INTEGER"},
		{name: "optional length set", typ: OptionalLength("char", "CHAR", 16), want: "CHAR(16)"},
		{name: "optional length unset", typ: OptionalLength("binary", "BINARY", 0), want: "BINARY"},
		{name: "required length set", typ: RequiredLength("varchar", "VARCHAR", 255), want: "VARCHAR(255)"},
		{name: "required length unset", typ: RequiredLength("varchar", "VARCHAR", 0), wantErr: true},
		{name: "optional precision set", typ: OptionalPrecision("decimal", "DECIMAL", 18, 2), want: "DECIMAL(18,2)"},
		{name: "optional precision unset", typ: OptionalPrecision("numeric", "NUMERIC", 0, 0), want: "NUMERIC"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.typ.DDL()
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMapperLookupIsCaseInsensitive(t *testing.T) {
	m := NewMapper()
	m.Add(NoParam("Integer", "INTEGER"))

	ti, ok := m.Get("INTEGER")
	require.True(t, ok)
	assert.Equal(t, "Integer", ti.Name())

	_, ok = m.Get("geometry")
	assert.False(t, ok)
}

func TestMapperLastRegistrationWins(t *testing.T) {
	m := NewMapper()
	m.Add(NoParam("clob", "CLOB"))
	m.Add(NoParam("clob", "TEXT"))

	ti, ok := m.Get("clob")
	require.True(t, ok)
	ddl, err := ti.DDL()
	require.NoError(t, err)
	assert.Equal(t, "TEXT", ddl)
}
