package augment

import "github.com/vektah/gqlparser/v2/ast"

// Global query-argument augmentation: after every type-level stage has run,
// every field anywhere in the map returning a list of a query-enabled node
// type gains pagination, ordering and filter arguments. Existence checks make
// the pass idempotent, and the query root's own fields (which already carry
// the full argument set) pass through untouched.
func (p *pipeline) augmentListFieldArguments() {
	for _, name := range p.order {
		def := p.types[name]
		if def.Kind != ast.Object && def.Kind != ast.Interface {
			continue
		}
		for _, f := range def.Fields {
			if f.Type.NamedType != "" {
				continue
			}
			leaf := f.Type.Name()
			if p.categorize(leaf) != catNode || !p.cfg.Query.Allows(leaf) {
				continue
			}
			ensureArgument(f, "first", namedType("Int"))
			ensureArgument(f, "offset", namedType("Int"))
			if p.lookup(orderingName(leaf)) != nil {
				ensureArgument(f, "orderBy", listOfType(namedType(orderingName(leaf))))
			}
			if p.lookup(filterName(leaf)) != nil {
				ensureArgument(f, "filter", namedType(filterName(leaf)))
			}
		}
	}
}

func ensureArgument(f *ast.FieldDefinition, name string, t *ast.Type) {
	if f.Arguments.ForName(name) != nil {
		return
	}
	f.Arguments = append(f.Arguments, argDef(name, t))
}
