package augment

import "github.com/vektah/gqlparser/v2/ast"

// Filter input generation: per node type, one comparison-operator group per
// stored field, chosen by the field's value category, plus the recursive
// AND/OR combinators every filter type carries.

// generateFilter emits the _<Type>Filter input type. Skipped when the type is
// excluded from query generation or the name is already defined.
func (p *pipeline) generateFilter(def *ast.Definition) {
	if !p.cfg.Query.Allows(def.Name) {
		return
	}
	name := filterName(def.Name)
	if p.lookup(name) != nil {
		return
	}

	filter := inputDef(name,
		fieldDef("AND", listOfNonNull(name)),
		fieldDef("OR", listOfNonNull(name)),
	)
	for _, f := range def.Fields {
		if isComputed(f) || f.Name == fieldID || f.Name == fieldFrom || f.Name == fieldTo {
			continue
		}
		filter.Fields = append(filter.Fields, p.filterOperators(f)...)
	}
	p.put(filter)
}

// filterOperators builds the operator group for one field. The operator set
// follows the field's value category; an unrecognized category contributes
// nothing.
func (p *pipeline) filterOperators(f *ast.FieldDefinition) ast.FieldList {
	leaf := f.Type.Name()
	switch p.categorize(leaf) {
	case catID, catString:
		return stringOperators(f.Name, leaf)
	case catNumeric:
		return rangeOperators(f.Name, leaf)
	case catTemporal:
		return rangeOperators(f.Name, temporalInputFor(leaf))
	case catBoolean:
		return equalityOperators(f.Name, leaf)
	case catEnum, catCustomScalar:
		return membershipOperators(f.Name, leaf)
	case catNode:
		if !p.cfg.Query.Allows(leaf) {
			return nil
		}
		ops := membershipOperators(f.Name, filterName(leaf))
		if f.Type.NamedType == "" {
			for _, q := range []string{"_some", "_none", "_single", "_every"} {
				ops = append(ops, fieldDef(f.Name+q, namedType(filterName(leaf))))
			}
		}
		return ops
	}
	return nil
}

// equalityOperators: equality and negation.
func equalityOperators(field, typ string) ast.FieldList {
	return ast.FieldList{
		fieldDef(field, namedType(typ)),
		fieldDef(field+"_not", namedType(typ)),
	}
}

// membershipOperators: equality, negation and list membership.
func membershipOperators(field, typ string) ast.FieldList {
	return append(equalityOperators(field, typ),
		fieldDef(field+"_in", listOfNonNull(typ)),
		fieldDef(field+"_not_in", listOfNonNull(typ)),
	)
}

// rangeOperators: membership plus the four range comparisons.
func rangeOperators(field, typ string) ast.FieldList {
	ops := membershipOperators(field, typ)
	for _, q := range []string{"_lt", "_lte", "_gt", "_gte"} {
		ops = append(ops, fieldDef(field+q, namedType(typ)))
	}
	return ops
}

// stringOperators: membership plus substring, prefix and suffix matching.
func stringOperators(field, typ string) ast.FieldList {
	ops := membershipOperators(field, typ)
	for _, q := range []string{
		"_contains", "_not_contains",
		"_starts_with", "_not_starts_with",
		"_ends_with", "_not_ends_with",
	} {
		ops = append(ops, fieldDef(field+q, namedType(typ)))
	}
	return ops
}
