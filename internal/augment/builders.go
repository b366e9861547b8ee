package augment

// Typed constructors for the handful of AST shapes the generators emit.
// Building nodes directly keeps the structural contract testable without a
// print-and-reparse round trip.

import "github.com/vektah/gqlparser/v2/ast"

func namedType(name string) *ast.Type {
	return ast.NamedType(name, nil)
}

func nonNullType(name string) *ast.Type {
	return ast.NonNullNamedType(name, nil)
}

func listOfType(elem *ast.Type) *ast.Type {
	return ast.ListType(elem, nil)
}

func listOfNonNull(name string) *ast.Type {
	return ast.ListType(ast.NonNullNamedType(name, nil), nil)
}

// copyType clones a type chain so generated nodes never alias user nodes.
func copyType(t *ast.Type) *ast.Type {
	if t == nil {
		return nil
	}
	return &ast.Type{NamedType: t.NamedType, Elem: copyType(t.Elem), NonNull: t.NonNull}
}

func fieldDef(name string, t *ast.Type) *ast.FieldDefinition {
	return &ast.FieldDefinition{Name: name, Type: t}
}

func argDef(name string, t *ast.Type) *ast.ArgumentDefinition {
	return &ast.ArgumentDefinition{Name: name, Type: t}
}

func objectDef(name string, fields ...*ast.FieldDefinition) *ast.Definition {
	return &ast.Definition{Kind: ast.Object, Name: name, Fields: fields}
}

func inputDef(name string, fields ...*ast.FieldDefinition) *ast.Definition {
	return &ast.Definition{Kind: ast.InputObject, Name: name, Fields: fields}
}

func enumDef(name string, values ...string) *ast.Definition {
	def := &ast.Definition{Kind: ast.Enum, Name: name}
	for _, v := range values {
		def.EnumValues = append(def.EnumValues, &ast.EnumValueDefinition{Name: v})
	}
	return def
}

func stringArg(name, value string) *ast.Argument {
	return &ast.Argument{Name: name, Value: &ast.Value{Raw: value, Kind: ast.StringValue}}
}

// relationDirective builds the normalized relationship marker attached to
// relationship types and to synthesized payload types. The argument keys are
// part of the contract consumed by the query-translation back end.
func relationDirective(name, from, to string) *ast.Directive {
	return &ast.Directive{
		Name: directiveRelation,
		Arguments: ast.ArgumentList{
			stringArg(argName, name),
			stringArg(argFrom, from),
			stringArg(argTo, to),
		},
	}
}

// mutationMetaDirective builds the metadata marker attached to generated
// relationship mutations. The argument keys match what the translation back
// end pattern-matches on.
func mutationMetaDirective(relationship, from, to string) *ast.Directive {
	return &ast.Directive{
		Name: directiveMutationMeta,
		Arguments: ast.ArgumentList{
			stringArg(argRelationship, relationship),
			stringArg(argFrom, from),
			stringArg(argTo, to),
		},
	}
}
