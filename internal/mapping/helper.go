package mapping

import (
	"strings"

	"github.com/mapddl/mapddl/internal/typeinfo"
)

// Helper answers structural questions about a mapping document during
// schema derivation: class lookup, identity policy, and transitive
// identity resolution through reference fields.
type Helper struct {
	doc    *Document
	types  typeinfo.Lookup
	byName map[string]*ClassMapping
}

// NewHelper creates a Helper for the given document and type lookup.
func NewHelper(doc *Document, types typeinfo.Lookup) *Helper {
	byName := make(map[string]*ClassMapping, len(doc.Classes))
	for _, cm := range doc.Classes {
		byName[cm.Name] = cm
	}
	return &Helper{doc: doc, types: types, byName: byName}
}

// ClassByName returns the class descriptor with the given name, or nil.
func (h *Helper) ClassByName(name string) *ClassMapping {
	return h.byName[name]
}

// UsesFieldIdentity reports whether the class marks identity on its
// field descriptors. When false, identity is determined by the
// class-level identity list (convention mode).
func (h *Helper) UsesFieldIdentity(cm *ClassMapping) bool {
	for _, fm := range cm.Fields {
		if fm.Identity {
			return true
		}
	}
	return false
}

// IsIdentityByConvention reports whether the class-level identity list
// names the given field.
func (h *Helper) IsIdentityByConvention(cm *ClassMapping, fm *FieldMapping) bool {
	for _, name := range cm.Identity {
		if strings.EqualFold(name, fm.Name) {
			return true
		}
	}
	return false
}

// IsIdentity reports whether the field is an identity field under the
// class's identity policy.
func (h *Helper) IsIdentity(cm *ClassMapping, fm *FieldMapping) bool {
	if h.UsesFieldIdentity(cm) {
		return fm.Identity
	}
	return h.IsIdentityByConvention(cm, fm)
}

// identityFields returns the class's identity field descriptors in
// declared order.
func (h *Helper) identityFields(cm *ClassMapping) []*FieldMapping {
	var fields []*FieldMapping
	for _, fm := range cm.Fields {
		if h.IsIdentity(cm, fm) {
			fields = append(fields, fm)
		}
	}
	return fields
}

// SQLIdentityColumnNames returns the class's identity column names in
// declared order. A field without explicit columns contributes its own
// name. When the class declares no identity fields of its own and
// includeExtends is set, the parent class is consulted.
func (h *Helper) SQLIdentityColumnNames(cm *ClassMapping, includeExtends bool) []string {
	fields := h.identityFields(cm)
	if len(fields) == 0 && includeExtends && cm.Extends != "" {
		if parent := h.ClassByName(cm.Extends); parent != nil {
			return h.SQLIdentityColumnNames(parent, true)
		}
	}
	var names []string
	for _, fm := range fields {
		if fm.HasColumns() {
			names = append(names, fm.Columns...)
		} else {
			names = append(names, fm.Name)
		}
	}
	return names
}

// ResolveIdentityTypeNames resolves the abstract type names of the
// class's identity columns, following reference fields transitively
// into the identity columns of the referenced classes. When the class
// declares no identity fields of its own, the parent class is
// consulted.
func (h *Helper) ResolveIdentityTypeNames(cm *ClassMapping) ([]string, error) {
	fields := h.identityFields(cm)
	if len(fields) == 0 && cm.Extends != "" {
		if parent := h.ClassByName(cm.Extends); parent != nil {
			return h.ResolveIdentityTypeNames(parent)
		}
	}

	var names []string
	for _, fm := range fields {
		typeName := fm.Type
		if fm.SQLType != "" {
			typeName = fm.SQLType
		}
		if _, ok := h.types.Get(typeName); ok {
			names = append(names, typeName)
			continue
		}
		ref := h.ClassByName(fm.Type)
		if ref == nil {
			return nil, &TypeNotFoundError{TypeName: fm.Type, Class: cm.Name, Field: fm.Name}
		}
		refNames, err := h.ResolveIdentityTypeNames(ref)
		if err != nil {
			return nil, err
		}
		names = append(names, refNames...)
	}
	return names, nil
}
