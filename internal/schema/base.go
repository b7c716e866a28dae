package schema

import (
	"fmt"
	"strings"

	"github.com/mapddl/mapddl/internal/typeinfo"
	"github.com/mapddl/mapddl/internal/writer"
)

// BaseSchema implements Schema with standard SQL rendering.
type BaseSchema struct {
	name   string
	tables []Table
	index  map[string]int
}

func (s *BaseSchema) Name() string { return s.name }

func (s *BaseSchema) SetName(name string) { s.name = name }

func (s *BaseSchema) AddTable(t Table) error {
	if s.index == nil {
		s.index = make(map[string]int)
	}
	if _, ok := s.index[t.Name()]; ok {
		return fmt.Errorf("duplicate table name %q", t.Name())
	}
	s.index[t.Name()] = len(s.tables)
	s.tables = append(s.tables, t)
	return nil
}

func (s *BaseSchema) Tables() []Table { return s.tables }

func (s *BaseSchema) Table(name string) Table {
	i, ok := s.index[name]
	if !ok {
		return nil
	}
	return s.tables[i]
}

func (s *BaseSchema) CreateDDL(w *writer.Writer) error {
	if s.name == "" {
		return w.Err()
	}
	w.Println("")
	w.Println("")
	w.Print("CREATE SCHEMA %s", s.name)
	w.Delimiter()
	return w.Err()
}

// BaseTable implements Table with standard SQL rendering.
type BaseTable struct {
	name    string
	schema  Schema
	fields  []Field
	pk      PrimaryKey
	fks     []ForeignKey
	indexes []Index
	keygen  KeyGenerator
}

func (t *BaseTable) Name() string { return t.name }

func (t *BaseTable) SetName(name string) { t.name = name }

func (t *BaseTable) Schema() Schema { return t.schema }

func (t *BaseTable) SetSchema(s Schema) { t.schema = s }

func (t *BaseTable) AddField(f Field) { t.fields = append(t.fields, f) }

func (t *BaseTable) Fields() []Field { return t.fields }

func (t *BaseTable) Field(name string) Field {
	for _, f := range t.fields {
		if f.Name() == name {
			return f
		}
	}
	return nil
}

func (t *BaseTable) PrimaryKey() PrimaryKey { return t.pk }

func (t *BaseTable) SetPrimaryKey(pk PrimaryKey) { t.pk = pk }

func (t *BaseTable) AddForeignKey(fk ForeignKey) { t.fks = append(t.fks, fk) }

func (t *BaseTable) ForeignKeys() []ForeignKey { return t.fks }

func (t *BaseTable) AddIndex(idx Index) { t.indexes = append(t.indexes, idx) }

func (t *BaseTable) Indexes() []Index { return t.indexes }

func (t *BaseTable) KeyGenerator() KeyGenerator { return t.keygen }

func (t *BaseTable) SetKeyGenerator(kg KeyGenerator) { t.keygen = kg }

func (t *BaseTable) CreateDDL(w *writer.Writer) error {
	w.Println("")
	w.Println("")
	w.Println("CREATE TABLE %s (", t.name)
	if err := t.WriteFields(w); err != nil {
		return err
	}
	w.Println("")
	w.Print(")")
	w.Delimiter()
	return w.Err()
}

func (t *BaseTable) DropDDL(w *writer.Writer) error {
	w.Println("")
	w.Println("")
	w.Print("DROP TABLE %s", t.name)
	w.Delimiter()
	return w.Err()
}

// WriteFields renders the column clauses of the table body, one per
// line, for use by CreateDDL implementations.
func (t *BaseTable) WriteFields(w *writer.Writer) error {
	for i, f := range t.fields {
		if i > 0 {
			w.Println(",")
		}
		w.Print("  ")
		if err := f.CreateDDL(w); err != nil {
			return err
		}
	}
	return w.Err()
}

// BaseField implements Field with standard SQL rendering.
type BaseField struct {
	name     string
	table    Table
	typ      typeinfo.TypeInfo
	identity bool
	required bool
	keygen   KeyGenerator
}

func (f *BaseField) Name() string { return f.name }

func (f *BaseField) SetName(name string) { f.name = name }

func (f *BaseField) Table() Table { return f.table }

func (f *BaseField) SetTable(t Table) { f.table = t }

func (f *BaseField) Type() typeinfo.TypeInfo { return f.typ }

func (f *BaseField) SetType(ti typeinfo.TypeInfo) { f.typ = ti }

func (f *BaseField) Identity() bool { return f.identity }

func (f *BaseField) SetIdentity(identity bool) { f.identity = identity }

func (f *BaseField) Required() bool { return f.required }

func (f *BaseField) SetRequired(required bool) { f.required = required }

func (f *BaseField) KeyGenerator() KeyGenerator { return f.keygen }

func (f *BaseField) SetKeyGenerator(kg KeyGenerator) { f.keygen = kg }

func (f *BaseField) CreateDDL(w *writer.Writer) error {
	typeDDL, err := f.TypeDDL()
	if err != nil {
		return err
	}
	w.Print("%s %s", f.name, typeDDL)
	if f.identity || f.required {
		w.Print(" NOT NULL")
	}
	return w.Err()
}

// TypeDDL renders the field's column type expression.
func (f *BaseField) TypeDDL() (string, error) {
	if f.typ == nil {
		return "", fmt.Errorf("field %q has no resolved type", f.name)
	}
	ddl, err := f.typ.DDL()
	if err != nil {
		return "", fmt.Errorf("field %q: %w", f.name, err)
	}
	return ddl, nil
}

// BasePrimaryKey implements PrimaryKey with standard SQL rendering.
type BasePrimaryKey struct {
	name   string
	table  Table
	fields []Field
}

func (pk *BasePrimaryKey) Name() string { return pk.name }

func (pk *BasePrimaryKey) SetName(name string) { pk.name = name }

func (pk *BasePrimaryKey) Table() Table { return pk.table }

func (pk *BasePrimaryKey) SetTable(t Table) { pk.table = t }

func (pk *BasePrimaryKey) AddField(f Field) { pk.fields = append(pk.fields, f) }

func (pk *BasePrimaryKey) Fields() []Field { return pk.fields }

func (pk *BasePrimaryKey) CreateDDL(w *writer.Writer) error {
	if len(pk.fields) == 0 {
		return w.Err()
	}
	w.Println("")
	w.Println("")
	w.Print("ALTER TABLE %s ADD CONSTRAINT %s PRIMARY KEY (%s)",
		pk.table.Name(), pk.name, FieldNames(pk.fields))
	w.Delimiter()
	return w.Err()
}

// BaseForeignKey implements ForeignKey with standard SQL rendering.
type BaseForeignKey struct {
	name      string
	table     Table
	fields    []Field
	refTable  Table
	refFields []Field
	relation  RelationType
}

func (fk *BaseForeignKey) Name() string { return fk.name }

func (fk *BaseForeignKey) SetName(name string) { fk.name = name }

func (fk *BaseForeignKey) Table() Table { return fk.table }

func (fk *BaseForeignKey) SetTable(t Table) { fk.table = t }

func (fk *BaseForeignKey) AddField(f Field) { fk.fields = append(fk.fields, f) }

func (fk *BaseForeignKey) Fields() []Field { return fk.fields }

func (fk *BaseForeignKey) ReferenceTable() Table { return fk.refTable }

func (fk *BaseForeignKey) SetReferenceTable(t Table) { fk.refTable = t }

func (fk *BaseForeignKey) AddReferenceField(f Field) { fk.refFields = append(fk.refFields, f) }

func (fk *BaseForeignKey) ReferenceFields() []Field { return fk.refFields }

func (fk *BaseForeignKey) RelationType() RelationType { return fk.relation }

func (fk *BaseForeignKey) SetRelationType(rt RelationType) { fk.relation = rt }

func (fk *BaseForeignKey) CreateDDL(w *writer.Writer) error {
	w.Println("")
	w.Println("")
	w.Println("ALTER TABLE %s ADD CONSTRAINT %s", fk.table.Name(), fk.name)
	w.Println("FOREIGN KEY (%s)", FieldNames(fk.fields))
	w.Print("REFERENCES %s (%s)", fk.refTable.Name(), FieldNames(fk.refFields))
	w.Delimiter()
	return w.Err()
}

// BaseIndex implements Index with standard SQL rendering.
type BaseIndex struct {
	name   string
	table  Table
	fields []Field
	unique bool
}

func (idx *BaseIndex) Name() string { return idx.name }

func (idx *BaseIndex) SetName(name string) { idx.name = name }

func (idx *BaseIndex) Table() Table { return idx.table }

func (idx *BaseIndex) SetTable(t Table) { idx.table = t }

func (idx *BaseIndex) AddField(f Field) { idx.fields = append(idx.fields, f) }

func (idx *BaseIndex) Fields() []Field { return idx.fields }

func (idx *BaseIndex) Unique() bool { return idx.unique }

func (idx *BaseIndex) SetUnique(unique bool) { idx.unique = unique }

func (idx *BaseIndex) CreateDDL(w *writer.Writer) error {
	w.Println("")
	w.Println("")
	unique := ""
	if idx.unique {
		unique = "UNIQUE "
	}
	w.Print("CREATE %sINDEX %s ON %s (%s)", unique, idx.name, idx.table.Name(), FieldNames(idx.fields))
	w.Delimiter()
	return w.Err()
}

// FieldNames joins field names with commas for constraint clauses.
func FieldNames(fields []Field) string {
	names := make([]string, len(fields))
	for i, f := range fields {
		names[i] = f.Name()
	}
	return strings.Join(names, ", ")
}
