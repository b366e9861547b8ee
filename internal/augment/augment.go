// Package augment implements the schema augmentation engine. It takes a parsed
// GraphQL SDL document describing node types and relationships and derives the
// full CRUD-plus-relationship API for a graph store: root query fields, create,
// update and delete mutations, relationship add/remove mutations, filter and
// ordering input types, and structured temporal types.
//
// The engine is a pure, synchronous, in-memory transform. It never performs
// I/O and never talks to a data store; executing the augmented schema is the
// job of a Translator supplied by the caller.
package augment

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/vektah/gqlparser/v2/ast"
)

// TypeMap is the engine's primary working structure: a name-keyed collection
// of type definitions, mutated in place across the pipeline stages.
type TypeMap map[string]*ast.Definition

// Operation identifies the kind of generated root operation. It is handed to
// the Translator so the backing store knows what to execute.
type Operation string

const (
	OpQuery              Operation = "query"
	OpCreate             Operation = "create"
	OpUpdate             Operation = "update"
	OpDelete             Operation = "delete"
	OpAddRelationship    Operation = "addRelationship"
	OpRemoveRelationship Operation = "removeRelationship"
)

// ResolveParams carries the runtime inputs of a single resolved field.
type ResolveParams struct {
	Ctx    context.Context
	Source any
	Args   map[string]any
}

// ResolveFunc resolves a single root field at execution time.
type ResolveFunc func(p ResolveParams) (any, error)

// TypeResolveFunc picks the concrete type name for a value resolved through
// an interface type.
type TypeResolveFunc func(value map[string]any) string

// ResolverMap maps type name to field name to resolver implementation. The
// caller may pre-populate it; the engine fills every generated operation that
// lacks a user-supplied resolver with a default delegating to the Translator.
type ResolverMap map[string]map[string]ResolveFunc

// Translator is the out-of-scope query-translation entry point. The default
// resolver installed for every generated operation delegates to it.
type Translator interface {
	Translate(p ResolveParams, op Operation, typeName string) (any, error)
}

// EntityKind classifies the schema entity an authorization decision is about.
type EntityKind string

const (
	EntityNode         EntityKind = "node"
	EntityRelationship EntityKind = "relationship"
	EntitySchema       EntityKind = "schema"
)

// AuthRequest is the input to the authorization policy hook.
type AuthRequest struct {
	Entity      EntityKind
	Op          Operation
	TypeName    string
	RelatedType string
}

// AuthHook decides which authorization directives attach to a generated field.
// The engine never interprets the returned directives, it only threads them
// through onto the generated node.
type AuthHook func(req AuthRequest) []*ast.Directive

// Policy is a per-operation enable/disable switch with a per-type exclusion
// set. Types carrying the @ignore directive are merged into Exclude when the
// configuration is normalized.
type Policy struct {
	Enabled bool
	Exclude map[string]bool
}

// Allows reports whether generation is permitted for the named type.
func (p Policy) Allows(name string) bool {
	return p.Enabled && !p.Exclude[name]
}

// Config controls every generation decision. It is computed once at the start
// of augmentation and read-only thereafter.
type Config struct {
	Query    Policy
	Mutation Policy

	// Temporal toggles the structured temporal types per kind. Keys are the
	// lower-cased temporal scalar names: time, date, datetime, localtime,
	// localdatetime. A nil map enables all of them.
	Temporal map[string]bool

	Translator Translator
	Auth       AuthHook

	Logger zerolog.Logger
	Debug  bool
}

// DefaultConfig returns a configuration with query and mutation generation
// enabled for every type and all temporal kinds on.
func DefaultConfig() Config {
	return Config{
		Query:    Policy{Enabled: true, Exclude: map[string]bool{}},
		Mutation: Policy{Enabled: true, Exclude: map[string]bool{}},
		Logger:   zerolog.Nop(),
	}
}

// Result is the outcome of a completed augmentation pass.
type Result struct {
	// Types is the augmented type map.
	Types TypeMap

	// Document is the augmented schema rebuilt in a printable order: the
	// original definitions first, derivatives in generation order.
	Document *ast.SchemaDocument

	// Resolvers has every generated operation bound to either the
	// user-supplied resolver or the default Translator delegate.
	Resolvers ResolverMap

	// TypeResolvers holds a type-resolution function per interface type.
	TypeResolvers map[string]TypeResolveFunc
}

// Augment runs the full augmentation pipeline over the parsed schema document.
// The resolvers argument may be nil; when present it is consulted before
// installing default resolvers and is returned inside the Result.
//
// Augmentation is idempotent: every insertion is guarded by an existence
// check, so re-running the pipeline over an already-augmented document yields
// an isomorphic type map.
func Augment(doc *ast.SchemaDocument, resolvers ResolverMap, cfg Config) (*Result, error) {
	if resolvers == nil {
		resolvers = ResolverMap{}
	}
	p := newPipeline(doc, resolvers, cfg)

	if err := p.normalizeRelationshipTypes(); err != nil {
		return nil, err
	}
	p.seedRootTypes()
	p.injectTemporalTypes()

	for _, name := range p.declaredObjects() {
		def := p.types[name]
		if !p.isNodeType(def) {
			continue
		}
		p.augmentNodeFields(def)
		p.generateQueryField(def)
		p.generateOrdering(def)
		p.generateNodeInput(def)
		p.generateFilter(def)
		p.generateNodeMutations(def)
		if err := p.resolveRelationshipFields(def); err != nil {
			return nil, err
		}
	}

	p.augmentListFieldArguments()
	p.declareDirectives()
	p.synthesizeResolvers()

	return &Result{
		Types:         p.types,
		Document:      p.buildDocument(),
		Resolvers:     p.resolvers,
		TypeResolvers: p.typeResolvers,
	}, nil
}

// StructuralError reports a malformed schema that cannot be augmented safely.
// It carries enough context for the schema author to locate the offending
// declaration.
type StructuralError struct {
	Type   string
	Field  string
	From   string
	To     string
	Reason string
}

func (e *StructuralError) Error() string {
	msg := fmt.Sprintf("schema is not augmentable: type %q", e.Type)
	if e.Field != "" {
		msg += fmt.Sprintf(", field %q", e.Field)
	}
	if e.From != "" || e.To != "" {
		msg += fmt.Sprintf(" (from=%q, to=%q)", e.From, e.To)
	}
	return msg + ": " + e.Reason
}
