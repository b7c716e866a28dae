package generator

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/mapddl/mapddl/internal/keygen"
	"github.com/mapddl/mapddl/internal/mapping"
	"github.com/mapddl/mapddl/internal/schema"
	"github.com/mapddl/mapddl/internal/typeinfo"
)

// builder holds the state of one schema derivation run: the schema
// under construction and the queue of synthetic junction-table
// descriptors discovered while processing primary classes.
type builder struct {
	factory schema.Factory
	types   typeinfo.Lookup
	helper  *mapping.Helper
	keygens *keygen.Registry
	log     *zap.Logger

	schema        schema.Schema
	pending       []*mapping.ClassMapping
	pendingByName map[string]*mapping.ClassMapping
}

// BuildSchema derives the schema model from the mapping document in
// three phases: key-generator registration, primary tables in document
// order, then junction tables in discovery order. On error no schema is
// returned; generation aborts for the whole run.
func (g *Generator) BuildSchema(doc *mapping.Document) (schema.Schema, error) {
	reg, err := keygen.NewRegistry(g.factory)
	if err != nil {
		return nil, err
	}
	for _, def := range doc.KeyGenerators {
		if err := reg.Register(def); err != nil {
			return nil, err
		}
	}

	b := &builder{
		factory:       g.factory,
		types:         g.types,
		helper:        mapping.NewHelper(doc, g.types),
		keygens:       reg,
		log:           g.log,
		schema:        g.factory.NewSchema(),
		pendingByName: make(map[string]*mapping.ClassMapping),
	}
	b.schema.SetName(g.cfg.SchemaName)

	for _, cm := range doc.Classes {
		if err := b.buildTable(cm, schema.OneToOne); err != nil {
			return nil, err
		}
	}

	// Junction descriptors are materialized after all primary classes so
	// both sides of every relation are resolvable. The queue never grows
	// during this pass: synthetic fields carry no many-table attribute.
	for i := 0; i < len(b.pending); i++ {
		if err := b.buildTable(b.pending[i], schema.ManyToMany); err != nil {
			return nil, err
		}
	}

	g.log.Debug("schema model built",
		zap.Int("tables", len(b.schema.Tables())),
		zap.Int("junctionTables", len(b.pending)))
	return b.schema, nil
}

func (b *builder) buildTable(cm *mapping.ClassMapping, relation schema.RelationType) error {
	t, err := b.createTable(cm, relation)
	if err != nil {
		return err
	}
	if t == nil {
		return nil
	}
	if err := b.schema.AddTable(t); err != nil {
		return mapping.Structuralf("class %q: %v", cm.Name, err)
	}
	return nil
}

// createTable derives one table from a class descriptor, or returns nil
// when the descriptor maps to no table. The relation type tags foreign
// keys synthesized for this table's reference fields.
func (b *builder) createTable(cm *mapping.ClassMapping, relation schema.RelationType) (schema.Table, error) {
	if cm.Table == "" {
		return nil, nil
	}

	t := b.factory.NewTable()
	t.SetName(cm.Table)
	t.SetSchema(b.schema)

	pk := b.factory.NewPrimaryKey()
	pk.SetName("pk_" + cm.Table)
	pk.SetTable(t)
	t.SetPrimaryKey(pk)

	if len(cm.Fields) == 0 {
		return t, nil
	}

	useFieldIdentity := b.helper.UsesFieldIdentity(cm)

	var kg schema.KeyGenerator
	if cm.KeyGenerator != "" {
		got, ok := b.keygens.Get(cm.KeyGenerator)
		if !ok {
			return nil, mapping.Structuralf("key generator %q of class %q is not defined", cm.KeyGenerator, cm.Name)
		}
		kg = got
	}
	t.SetKeyGenerator(kg)

	for _, fm := range cm.Fields {
		identity := fm.Identity
		if !useFieldIdentity {
			identity = b.helper.IsIdentityByConvention(cm, fm)
		}

		// A field carrying a many-table denotes a many-to-many relation:
		// queue it for junction-table synthesis and skip its ordinary
		// column handling entirely.
		if fm.ManyTable != "" {
			b.queueJunctionField(cm, fm)
			continue
		}
		if !fm.HasColumns() {
			continue
		}

		types, ref, err := b.resolveColumnTypes(cm, fm)
		if err != nil {
			return nil, err
		}

		for i, col := range fm.Columns {
			f := b.factory.NewField()
			f.SetName(col)
			f.SetTable(t)
			f.SetType(types[i])
			f.SetIdentity(identity)
			f.SetRequired(fm.Required)
			f.SetKeyGenerator(kg)
			t.AddField(f)
			if identity {
				pk.AddField(f)
			}
		}

		if ref != nil {
			if err := b.addOneOneForeignKey(t, fm, ref, relation); err != nil {
				return nil, err
			}
		}
	}

	if cm.Extends != "" {
		if err := b.mergeExtends(t, cm); err != nil {
			return nil, err
		}
	}

	b.log.Debug("built table",
		zap.String("table", t.Name()),
		zap.Int("fields", len(t.Fields())),
		zap.Int("foreignKeys", len(t.ForeignKeys())))
	return t, nil
}

// resolveColumnTypes resolves the column types of a field descriptor,
// one TypeInfo per declared column. A non-nil class return marks the
// field as a reference whose columns mirror the referenced class's
// identity columns.
func (b *builder) resolveColumnTypes(cm *mapping.ClassMapping, fm *mapping.FieldMapping) ([]typeinfo.TypeInfo, *mapping.ClassMapping, error) {
	var ti typeinfo.TypeInfo
	if fm.SQLType != "" {
		ti, _ = b.types.Get(fm.SQLType)
	}
	if ti != nil {
		return repeatType(ti, len(fm.Columns)), nil, nil
	}

	ref := b.helper.ClassByName(fm.Type)
	if ref == nil {
		ti, ok := b.types.Get(fm.Type)
		if !ok {
			return nil, nil, &mapping.TypeNotFoundError{TypeName: fm.Type, Class: cm.Name, Field: fm.Name}
		}
		return repeatType(ti, len(fm.Columns)), nil, nil
	}

	refTypeNames, err := b.helper.ResolveIdentityTypeNames(ref)
	if err != nil {
		return nil, nil, err
	}
	if len(refTypeNames) != len(fm.Columns) {
		return nil, nil, &mapping.TypeNotFoundError{
			TypeName: fm.Type,
			Class:    cm.Name,
			Field:    fm.Name,
			Detail: fmt.Sprintf("referenced class has %d identity columns but field declares %d columns",
				len(refTypeNames), len(fm.Columns)),
		}
	}

	types := make([]typeinfo.TypeInfo, len(refTypeNames))
	for i, name := range refTypeNames {
		resolved, ok := b.types.Get(name)
		if !ok {
			return nil, nil, &mapping.TypeNotFoundError{
				TypeName: name,
				Class:    ref.Name,
				Detail:   "identity type of referenced class",
			}
		}
		types[i] = resolved
	}
	return types, ref, nil
}

func repeatType(ti typeinfo.TypeInfo, n int) []typeinfo.TypeInfo {
	types := make([]typeinfo.TypeInfo, n)
	for i := range types {
		types[i] = ti
	}
	return types
}

// addOneOneForeignKey synthesizes a foreign key from the columns just
// created for a reference field to the identity columns of the
// referenced class's table. The reference table must already exist in
// the schema: reference targets are processed before referencing
// classes in discovery order.
func (b *builder) addOneOneForeignKey(t schema.Table, fm *mapping.FieldMapping, ref *mapping.ClassMapping, relation schema.RelationType) error {
	fk := b.factory.NewForeignKey()
	fk.SetTable(t)
	fk.SetName(t.Name() + "_" + fm.Name)

	for _, col := range fm.Columns {
		if f := t.Field(col); f != nil {
			fk.AddField(f)
		}
	}

	refTable := b.schema.Table(ref.Table)
	if refTable == nil {
		return mapping.Structuralf("reference table %q of class %q not found; the referenced class must be mapped before the referencing class",
			ref.Table, ref.Name)
	}
	fk.SetReferenceTable(refTable)

	keys := fm.ManyKeys
	if len(keys) == 0 {
		keys = b.helper.SQLIdentityColumnNames(ref, true)
	}
	for _, name := range keys {
		if f := refTable.Field(name); f != nil {
			fk.AddReferenceField(f)
		}
	}

	fk.SetRelationType(relation)
	t.AddForeignKey(fk)
	return nil
}

// queueJunctionField registers a many-to-many relation field for
// junction-table synthesis. The first encounter of a many-table name
// creates a synthetic class descriptor; every encounter appends one
// synthetic identity field referencing the owning class. Junction
// tables are materialized after all primary classes, in discovery
// order of the many-table names.
func (b *builder) queueJunctionField(cm *mapping.ClassMapping, fm *mapping.FieldMapping) {
	resolve, ok := b.pendingByName[fm.ManyTable]
	if !ok {
		resolve = &mapping.ClassMapping{
			Name:         fm.ManyTable,
			Table:        fm.ManyTable,
			KeyGenerator: cm.KeyGenerator,
		}
		b.pendingByName[fm.ManyTable] = resolve
		b.pending = append(b.pending, resolve)
	}

	columns := fm.ManyKeys
	if len(columns) == 0 {
		columns = []string{cm.Table}
	}
	resolve.Fields = append(resolve.Fields, &mapping.FieldMapping{
		Name:     cm.Table,
		Type:     cm.Name,
		Identity: true,
		Columns:  columns,
	})
}

// mergeExtends merges the parent class's identity columns into the
// child's table. A child declaring its own identity columns is only
// checked for type consistency against the parent; otherwise the
// parent's identity columns are created on the child (or promoted when
// the child re-declares them as ordinary fields) and added to the
// child's primary key. Merged columns never re-synthesize foreign keys.
func (b *builder) mergeExtends(t schema.Table, cm *mapping.ClassMapping) error {
	parent := b.helper.ClassByName(cm.Extends)
	if parent == nil {
		return mapping.Structuralf("parent class %q of class %q not found", cm.Extends, cm.Name)
	}

	childIDs := b.helper.SQLIdentityColumnNames(cm, false)
	if len(childIDs) != 0 {
		return b.checkInheritedIdentityTypes(cm, parent)
	}

	useFieldIdentity := b.helper.UsesFieldIdentity(parent)

	var kg schema.KeyGenerator
	if parent.KeyGenerator != "" {
		got, ok := b.keygens.Get(parent.KeyGenerator)
		if !ok {
			return mapping.Structuralf("key generator %q of class %q is not defined", parent.KeyGenerator, parent.Name)
		}
		kg = got
	}
	if t.KeyGenerator() == nil && kg != nil {
		t.SetKeyGenerator(kg)
	}

	for _, pfm := range parent.Fields {
		if !pfm.HasColumns() {
			continue
		}
		identity := pfm.Identity
		if !useFieldIdentity {
			identity = b.helper.IsIdentityByConvention(parent, pfm)
		}
		if !identity || pfm.ManyTable != "" {
			continue
		}

		// A subclass may re-declare an inherited key column as an
		// ordinary field; promote the existing column instead of
		// duplicating it.
		if b.promoteSharedIdentity(t, cm, pfm) {
			continue
		}

		types, _, err := b.resolveColumnTypes(parent, pfm)
		if err != nil {
			return err
		}
		for i, col := range pfm.Columns {
			f := b.factory.NewField()
			f.SetName(col)
			f.SetTable(t)
			f.SetType(types[i])
			f.SetIdentity(true)
			f.SetRequired(pfm.Required)
			f.SetKeyGenerator(kg)
			t.AddField(f)
			t.PrimaryKey().AddField(f)
		}
	}

	if parent.Extends != "" {
		return b.mergeExtends(t, parent)
	}
	return nil
}

// checkInheritedIdentityTypes requires child and parent identity column
// types to match pairwise in order.
func (b *builder) checkInheritedIdentityTypes(cm, parent *mapping.ClassMapping) error {
	childTypes, err := b.helper.ResolveIdentityTypeNames(cm)
	if err != nil {
		return err
	}
	parentTypes, err := b.helper.ResolveIdentityTypeNames(parent)
	if err != nil {
		return err
	}
	if len(childTypes) != len(parentTypes) {
		return mapping.Structuralf("class %q declares %d identity columns but parent class %q has %d",
			cm.Name, len(childTypes), parent.Name, len(parentTypes))
	}
	for i := range childTypes {
		if !strings.EqualFold(childTypes[i], parentTypes[i]) {
			return mapping.Structuralf("identity type %q of class %q does not match type %q of parent class %q",
				childTypes[i], cm.Name, parentTypes[i], parent.Name)
		}
	}
	return nil
}

// promoteSharedIdentity promotes existing child columns to identity
// status when the child declares a field of the same name as an
// inherited identity field. Reports whether such a field was found.
func (b *builder) promoteSharedIdentity(t schema.Table, cm *mapping.ClassMapping, pfm *mapping.FieldMapping) bool {
	for _, fm := range cm.Fields {
		if !strings.EqualFold(fm.Name, pfm.Name) {
			continue
		}
		if !fm.HasColumns() {
			continue
		}
		for _, col := range fm.Columns {
			f := t.Field(col)
			if f == nil || f.Identity() {
				continue
			}
			f.SetIdentity(true)
			t.PrimaryKey().AddField(f)
		}
		return true
	}
	return false
}
