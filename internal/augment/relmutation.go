package augment

import "github.com/vektah/gqlparser/v2/ast"

// Relationship mutation generation: for every resolved relation reachable
// from a node field, an Add and a Remove root mutation taking primary-key
// inputs for both endpoints, plus the payload types they return. Each carries
// the @mutationMeta marker the query-translation back end pattern-matches on.

// generateRelationshipMutations emits Add<Type><Field> and
// Remove<Type><Field> when both endpoints are policy-permitted for mutations
// and both have an inferrable primary key. Existence checks keep the pass
// idempotent and also suppress a second generation for the opposite traversal
// direction of the same edge.
func (p *pipeline) generateRelationshipMutations(owner, field string, rel relation) {
	if !p.cfg.Mutation.Allows(rel.from) || !p.cfg.Mutation.Allows(rel.to) {
		p.log.Debug().Str("type", owner).Str("field", field).
			Msg("relationship mutations suppressed by policy")
		return
	}
	fromDef, toDef := p.lookup(rel.from), p.lookup(rel.to)
	if fromDef == nil || toDef == nil {
		return
	}
	if primaryKey(fromDef) == nil || primaryKey(toDef) == nil {
		p.log.Debug().Str("type", owner).Str("field", field).
			Msg("relationship mutations skipped: endpoint without primary key")
		return
	}

	mutation := p.lookup(p.rootName(ast.Mutation))
	related := rel.to
	if owner == rel.to {
		related = rel.from
	}

	var dataInput string
	if rel.relType != nil && len(rel.props) > 0 {
		dataInput = inputName(rel.relType.Name)
		if p.lookup(dataInput) == nil {
			in := inputDef(dataInput)
			for _, prop := range rel.props {
				in.Fields = append(in.Fields, fieldDef(prop.Name, inputTwin(prop.Type)))
			}
			p.put(in)
		}
	}

	type variant struct {
		name    string
		payload string
		op      Operation
		hasData bool
	}
	variants := []variant{
		{addMutationName(owner, field), addPayloadName(owner, field), OpAddRelationship, dataInput != ""},
		{removeMutationName(owner, field), removePayloadName(owner, field), OpRemoveRelationship, false},
	}

	for _, v := range variants {
		if mutation.Fields.ForName(v.name) != nil {
			continue
		}

		pd := objectDef(v.payload,
			fieldDef(fieldFrom, namedType(rel.from)),
			fieldDef(fieldTo, namedType(rel.to)),
		)
		if v.op == OpAddRelationship {
			for _, prop := range rel.props {
				pd.Fields = append(pd.Fields, fieldDef(prop.Name, copyType(prop.Type)))
			}
		}
		pd.Directives = append(pd.Directives, relationDirective(rel.name, rel.from, rel.to))
		p.put(pd)

		mf := fieldDef(v.name, namedType(v.payload))
		mf.Arguments = ast.ArgumentDefinitionList{
			argDef(fieldFrom, nonNullType(inputName(rel.from))),
			argDef(fieldTo, nonNullType(inputName(rel.to))),
		}
		if v.hasData {
			mf.Arguments = append(mf.Arguments, argDef("data", nonNullType(dataInput)))
		}
		mf.Directives = append(mf.Directives, mutationMetaDirective(rel.name, rel.from, rel.to))
		if p.cfg.Auth != nil {
			req := AuthRequest{Entity: EntityRelationship, Op: v.op, TypeName: owner, RelatedType: related}
			mf.Directives = appendMissingDirectives(mf.Directives, p.cfg.Auth(req))
		}
		mutation.Fields = append(mutation.Fields, mf)
		p.generated = append(p.generated, generatedOp{
			root:     mutation.Name,
			field:    v.name,
			op:       v.op,
			typeName: owner,
			related:  related,
		})
	}
}

// inputTwin clones a type for use in input position, swapping a structured
// temporal output leaf for its input twin.
func inputTwin(t *ast.Type) *ast.Type {
	out := copyType(t)
	inner := out
	for inner.NamedType == "" {
		inner = inner.Elem
	}
	inner.NamedType = temporalInputFor(inner.NamedType)
	return out
}
