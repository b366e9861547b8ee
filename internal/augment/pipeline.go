package augment

import (
	"github.com/rs/zerolog"
	"github.com/vektah/gqlparser/v2/ast"
)

// Reserved names and markers. Everything the engine synthesizes lives in the
// underscore-prefixed namespace; user types starting with an underscore are
// left alone and never enter generation.
const (
	fieldID   = "_id"
	fieldFrom = "from"
	fieldTo   = "to"

	// typeTagField is the reserved runtime key interface type resolution
	// reads from a resolved value to pick the concrete variant.
	typeTagField = "_type"

	directiveRelation     = "relation"
	directiveMutationMeta = "mutationMeta"
	directiveComputed     = "computed"
	directiveIgnore       = "ignore"

	argName         = "name"
	argDirection    = "direction"
	argFrom         = "from"
	argTo           = "to"
	argRelationship = "relationship"

	directionIn  = "IN"
	directionOut = "OUT"
)

// generatedOp records a root field the engine emitted, so the resolver
// synthesis stage can bind a default resolver to it afterwards.
type generatedOp struct {
	root     string
	field    string
	op       Operation
	typeName string
	related  string
}

// pipeline is the shared state threaded through every augmentation stage: the
// mutable type map, the definition order (for deterministic printing), the
// normalized configuration and the accumulating outputs.
type pipeline struct {
	doc   *ast.SchemaDocument
	types TypeMap
	order []string

	cfg Config
	log zerolog.Logger

	resolvers     ResolverMap
	typeResolvers map[string]TypeResolveFunc
	generated     []generatedOp

	// declared snapshots the object type names present before augmentation,
	// so per-type generation never iterates its own insertions.
	declared []string
}

func newPipeline(doc *ast.SchemaDocument, resolvers ResolverMap, cfg Config) *pipeline {
	p := &pipeline{
		doc:           doc,
		types:         TypeMap{},
		cfg:           cfg,
		log:           cfg.Logger,
		resolvers:     resolvers,
		typeResolvers: map[string]TypeResolveFunc{},
	}
	for _, def := range doc.Definitions {
		p.put(def)
	}
	p.normalizePolicies()
	for _, name := range p.order {
		if p.types[name].Kind == ast.Object {
			p.declared = append(p.declared, name)
		}
	}
	return p
}

// normalizePolicies merges the @ignore markers into copies of the policy
// exclusion sets. The caller's maps are never written to. Config is read-only
// after this.
func (p *pipeline) normalizePolicies() {
	p.cfg.Query.Exclude = copyExcludes(p.cfg.Query.Exclude)
	p.cfg.Mutation.Exclude = copyExcludes(p.cfg.Mutation.Exclude)
	for name, def := range p.types {
		if def.Directives.ForName(directiveIgnore) != nil {
			p.cfg.Query.Exclude[name] = true
			p.cfg.Mutation.Exclude[name] = true
		}
	}
}

func copyExcludes(src map[string]bool) map[string]bool {
	dst := make(map[string]bool, len(src))
	for name, excluded := range src {
		dst[name] = excluded
	}
	return dst
}

// put inserts a definition unless the name is already taken. A user-supplied
// definition of a derivative name silently wins over the generated one.
func (p *pipeline) put(def *ast.Definition) bool {
	if _, ok := p.types[def.Name]; ok {
		return false
	}
	p.types[def.Name] = def
	p.order = append(p.order, def.Name)
	return true
}

func (p *pipeline) lookup(name string) *ast.Definition {
	return p.types[name]
}

// declaredObjects returns the snapshot of object type names taken before any
// generation ran.
func (p *pipeline) declaredObjects() []string {
	return p.declared
}

// rootName resolves the name of the root operation type, honoring an explicit
// schema { ... } block when the document has one.
func (p *pipeline) rootName(op ast.Operation) string {
	for _, s := range p.doc.Schema {
		for _, ot := range s.OperationTypes {
			if ot.Operation == op {
				return ot.Type
			}
		}
	}
	switch op {
	case ast.Mutation:
		return "Mutation"
	case ast.Subscription:
		return "Subscription"
	default:
		return "Query"
	}
}

// seedRootTypes makes sure the root query and mutation container types exist
// so later stages can append fields to them. The authorization hook runs once
// here for the schema entity; its input is built explicitly.
func (p *pipeline) seedRootTypes() {
	for _, op := range []ast.Operation{ast.Query, ast.Mutation} {
		name := p.rootName(op)
		def := p.lookup(name)
		if def == nil {
			def = &ast.Definition{Kind: ast.Object, Name: name}
			p.put(def)
		}
		if p.cfg.Auth != nil {
			req := AuthRequest{Entity: EntitySchema, Op: Operation(op), TypeName: name}
			def.Directives = appendMissingDirectives(def.Directives, p.cfg.Auth(req))
		}
	}
}

// isRootType reports whether the definition is one of the synthetic root
// operation containers.
func (p *pipeline) isRootType(def *ast.Definition) bool {
	return def.Name == p.rootName(ast.Query) ||
		def.Name == p.rootName(ast.Mutation) ||
		def.Name == p.rootName(ast.Subscription)
}

// isRelationshipType reports whether the object type represents an edge. After
// normalization every relationship type carries a @relation directive with
// from and to arguments, whichever notation the author used.
func isRelationshipType(def *ast.Definition) bool {
	if def == nil || def.Kind != ast.Object || isReservedName(def.Name) {
		return false
	}
	d := def.Directives.ForName(directiveRelation)
	return d != nil && d.Arguments.ForName(argFrom) != nil && d.Arguments.ForName(argTo) != nil
}

// isNodeType reports whether the definition is a first-class entity type
// eligible for generated operations.
func (p *pipeline) isNodeType(def *ast.Definition) bool {
	if def == nil || def.Kind != ast.Object {
		return false
	}
	if p.isRootType(def) || isReservedName(def.Name) || isRelationshipType(def) {
		return false
	}
	return true
}

// isReservedName reports whether the name lives in the engine's derivative
// namespace.
func isReservedName(name string) bool {
	return len(name) > 0 && name[0] == '_'
}

// fieldCategory is the closed classification of a field's resolved value
// type, computed once and switched on exhaustively by the generators.
type fieldCategory int

const (
	catUnknown fieldCategory = iota
	catID
	catString
	catNumeric
	catBoolean
	catCustomScalar
	catEnum
	catTemporal
	catNode
	catRelationship
	catInterface
	catDerivative
)

// categorize resolves the value category of a leaf type name against the
// current type map.
func (p *pipeline) categorize(leaf string) fieldCategory {
	switch leaf {
	case "ID":
		return catID
	case "String":
		return catString
	case "Int", "Float":
		return catNumeric
	case "Boolean":
		return catBoolean
	}
	if p.isTemporalLeaf(leaf) {
		return catTemporal
	}
	def := p.lookup(leaf)
	if def == nil {
		return catCustomScalar
	}
	switch def.Kind {
	case ast.Enum:
		return catEnum
	case ast.Scalar:
		return catCustomScalar
	case ast.Interface, ast.Union:
		return catInterface
	case ast.Object:
		if isReservedName(def.Name) {
			return catDerivative
		}
		if isRelationshipType(def) {
			return catRelationship
		}
		if p.isRootType(def) {
			return catDerivative
		}
		return catNode
	}
	return catUnknown
}

// isComputed reports whether the field carries the computed-value marker and
// is therefore excluded from filtering, ordering and mutation arguments.
func isComputed(f *ast.FieldDefinition) bool {
	return f.Directives.ForName(directiveComputed) != nil
}

// eligibleScalar reports whether the field participates in generated
// arguments: a stored scalar, enum or temporal value.
func (p *pipeline) eligibleScalar(f *ast.FieldDefinition) bool {
	if isComputed(f) || f.Name == fieldID {
		return false
	}
	switch p.categorize(f.Type.Name()) {
	case catID, catString, catNumeric, catBoolean, catCustomScalar, catEnum, catTemporal:
		return true
	}
	return false
}

// primaryKey returns the node type's primary-key field: the first required,
// non-list, ID-typed field that is stored data. Nil when the type has none.
func primaryKey(def *ast.Definition) *ast.FieldDefinition {
	for _, f := range def.Fields {
		if isComputed(f) || f.Name == fieldID {
			continue
		}
		if f.Type.NamedType == "ID" && f.Type.NonNull {
			return f
		}
	}
	return nil
}

// appendMissingDirectives appends directives that are not already present by
// name, so repeated augmentation never duplicates authorization markers.
func appendMissingDirectives(list ast.DirectiveList, add []*ast.Directive) ast.DirectiveList {
	for _, d := range add {
		if list.ForName(d.Name) == nil {
			list = append(list, d)
		}
	}
	return list
}

// buildDocument reassembles a printable schema document: the original schema
// block, the user plus synthesized directive declarations, and every
// definition in insertion order.
func (p *pipeline) buildDocument() *ast.SchemaDocument {
	out := &ast.SchemaDocument{
		Schema:          p.doc.Schema,
		SchemaExtension: p.doc.SchemaExtension,
		Directives:      p.doc.Directives,
	}
	for _, name := range p.order {
		out.Definitions = append(out.Definitions, p.types[name])
	}
	return out
}
