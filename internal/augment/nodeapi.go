package augment

import "github.com/vektah/gqlparser/v2/ast"

// Node API generation: the per-type root query field and the Create, Update
// and Delete mutations, plus the reserved _id field every queryable node type
// carries.

// augmentNodeFields injects the reserved _id field onto query-enabled node
// types. A pre-existing field of that name is replaced: _id is owned by the
// engine and always string-typed with no arguments.
func (p *pipeline) augmentNodeFields(def *ast.Definition) {
	if !p.cfg.Query.Allows(def.Name) {
		return
	}
	idField := fieldDef(fieldID, namedType("String"))
	for i, f := range def.Fields {
		if f.Name == fieldID {
			def.Fields[i] = idField
			return
		}
	}
	def.Fields = append(def.Fields, idField)
}

// generateQueryField ensures a root query field named after the node type,
// returning a list of it, with one argument per stored scalar, enum or
// temporal field plus pagination, ordering and filter arguments. An existing
// field of the same name is never overwritten.
func (p *pipeline) generateQueryField(def *ast.Definition) {
	if !p.cfg.Query.Allows(def.Name) {
		p.log.Debug().Str("type", def.Name).Msg("query generation suppressed by policy")
		return
	}
	query := p.lookup(p.rootName(ast.Query))
	if query.Fields.ForName(def.Name) != nil {
		return
	}

	qf := fieldDef(def.Name, listOfType(namedType(def.Name)))
	for _, f := range def.Fields {
		if !p.eligibleScalar(f) {
			continue
		}
		qf.Arguments = append(qf.Arguments, argDef(f.Name, argumentType(f.Type)))
	}
	qf.Arguments = append(qf.Arguments,
		argDef(fieldID, namedType("String")),
		argDef("first", namedType("Int")),
		argDef("offset", namedType("Int")),
		argDef("orderBy", listOfType(namedType(orderingName(def.Name)))),
		argDef("filter", namedType(filterName(def.Name))),
	)
	if p.cfg.Auth != nil {
		req := AuthRequest{Entity: EntityNode, Op: OpQuery, TypeName: def.Name}
		qf.Directives = appendMissingDirectives(qf.Directives, p.cfg.Auth(req))
	}
	query.Fields = append(query.Fields, qf)
	p.generated = append(p.generated, generatedOp{
		root:     query.Name,
		field:    def.Name,
		op:       OpQuery,
		typeName: def.Name,
	})
}

// argumentType derives the generated-argument type from a field type:
// nullability stripped, list shape preserved, temporal leaves swapped for
// their input twins.
func argumentType(t *ast.Type) *ast.Type {
	out := inputTwin(t)
	out.NonNull = false
	return out
}

// generateNodeInput emits the primary-key input type _<Type>Input used by
// Update, Delete and the relationship mutations to address one node.
func (p *pipeline) generateNodeInput(def *ast.Definition) {
	if !p.cfg.Mutation.Allows(def.Name) {
		return
	}
	pk := primaryKey(def)
	if pk == nil {
		return
	}
	name := inputName(def.Name)
	if p.lookup(name) != nil {
		return
	}
	p.put(inputDef(name, fieldDef(pk.Name, nonNullType(pk.Type.Name()))))
}

// generateNodeMutations emits up to three root mutations per node type.
// Create takes every stored non-system field as declared. Update requires the
// primary key and accepts every other eligible field optionally, nullability
// stripped. Delete takes only the primary key. A type with no primary key
// yields no Update or Delete.
func (p *pipeline) generateNodeMutations(def *ast.Definition) {
	if !p.cfg.Mutation.Allows(def.Name) {
		p.log.Debug().Str("type", def.Name).Msg("mutation generation suppressed by policy")
		return
	}
	mutation := p.lookup(p.rootName(ast.Mutation))
	pk := primaryKey(def)

	if mutation.Fields.ForName(createMutationName(def.Name)) == nil {
		create := fieldDef(createMutationName(def.Name), namedType(def.Name))
		for _, f := range def.Fields {
			if !p.eligibleScalar(f) || f.Name == fieldFrom || f.Name == fieldTo {
				continue
			}
			create.Arguments = append(create.Arguments, argDef(f.Name, inputTwin(f.Type)))
		}
		if len(create.Arguments) > 0 {
			p.emitNodeMutation(mutation, create, OpCreate, def.Name)
		}
	}

	if pk == nil {
		p.log.Debug().Str("type", def.Name).Msg("no primary key: update and delete skipped")
		return
	}

	if mutation.Fields.ForName(updateMutationName(def.Name)) == nil {
		update := fieldDef(updateMutationName(def.Name), namedType(def.Name))
		update.Arguments = append(update.Arguments, argDef(pk.Name, nonNullType(pk.Type.Name())))
		for _, f := range def.Fields {
			if !p.eligibleScalar(f) || f.Name == pk.Name || f.Name == fieldFrom || f.Name == fieldTo {
				continue
			}
			update.Arguments = append(update.Arguments, argDef(f.Name, argumentType(f.Type)))
		}
		if len(update.Arguments) > 1 {
			p.emitNodeMutation(mutation, update, OpUpdate, def.Name)
		}
	}

	if mutation.Fields.ForName(deleteMutationName(def.Name)) == nil {
		del := fieldDef(deleteMutationName(def.Name), namedType(def.Name))
		del.Arguments = append(del.Arguments, argDef(pk.Name, nonNullType(pk.Type.Name())))
		p.emitNodeMutation(mutation, del, OpDelete, def.Name)
	}
}

func (p *pipeline) emitNodeMutation(mutation *ast.Definition, f *ast.FieldDefinition, op Operation, typeName string) {
	if p.cfg.Auth != nil {
		req := AuthRequest{Entity: EntityNode, Op: op, TypeName: typeName}
		f.Directives = appendMissingDirectives(f.Directives, p.cfg.Auth(req))
	}
	mutation.Fields = append(mutation.Fields, f)
	p.generated = append(p.generated, generatedOp{
		root:     mutation.Name,
		field:    f.Name,
		op:       op,
		typeName: typeName,
	})
}
