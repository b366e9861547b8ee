package augment

import "github.com/vektah/gqlparser/v2/ast"

// Directive declaration synthesis: the engine emits declarations for every
// directive kind it introduces or consumes, so the augmented document can be
// serialized alongside its directive usages. User-supplied declarations of
// the same name win.

func (p *pipeline) declareDirectives() {
	decls := []*ast.DirectiveDefinition{
		{
			Name: directiveRelation,
			Arguments: ast.ArgumentDefinitionList{
				argDef(argName, namedType("String")),
				argDef(argDirection, namedType("String")),
				argDef(argFrom, namedType("String")),
				argDef(argTo, namedType("String")),
			},
			Locations: []ast.DirectiveLocation{ast.LocationObject, ast.LocationFieldDefinition},
		},
		{
			Name: directiveMutationMeta,
			Arguments: ast.ArgumentDefinitionList{
				argDef(argRelationship, namedType("String")),
				argDef(argFrom, namedType("String")),
				argDef(argTo, namedType("String")),
			},
			Locations: []ast.DirectiveLocation{ast.LocationFieldDefinition},
		},
		{
			Name:      directiveComputed,
			Locations: []ast.DirectiveLocation{ast.LocationFieldDefinition},
		},
		{
			Name:      directiveIgnore,
			Locations: []ast.DirectiveLocation{ast.LocationObject, ast.LocationFieldDefinition},
		},
	}
	for _, d := range decls {
		if p.doc.Directives.ForName(d.Name) != nil {
			continue
		}
		p.doc.Directives = append(p.doc.Directives, d)
	}
}
