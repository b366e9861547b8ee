package augment

import "github.com/vektah/gqlparser/v2/ast"

// Ordering enum generation: one ascending/descending value pair per sortable
// field of the node type.

// orderable reports whether the field can back a sort key: a non-list stored
// scalar, enum or temporal value. The injected _id participates.
func (p *pipeline) orderable(f *ast.FieldDefinition) bool {
	if isComputed(f) || f.Type.NamedType == "" {
		return false
	}
	switch p.categorize(f.Type.NamedType) {
	case catID, catString, catNumeric, catBoolean, catCustomScalar, catEnum, catTemporal:
		return true
	}
	return false
}

// generateOrdering emits the _<Type>Ordering enum with <field>_asc and
// <field>_desc values for every orderable field. Skipped entirely when the
// type is excluded from query generation or the name is already taken.
func (p *pipeline) generateOrdering(def *ast.Definition) {
	if !p.cfg.Query.Allows(def.Name) {
		return
	}
	name := orderingName(def.Name)
	if p.lookup(name) != nil {
		return
	}
	var values []string
	for _, f := range def.Fields {
		if !p.orderable(f) {
			continue
		}
		values = append(values, f.Name+"_asc", f.Name+"_desc")
	}
	if len(values) == 0 {
		return
	}
	p.put(enumDef(name, values...))
}
