package augment

import (
	"fmt"

	"github.com/vektah/gqlparser/v2/ast"
)

// Resolver synthesis: every generated root operation lacking a user-supplied
// resolver is bound to a default delegating to the Translator, and every
// interface type gains a type-resolution function reading the reserved
// runtime tag from the resolved value.

func (p *pipeline) synthesizeResolvers() {
	for _, g := range p.generated {
		if p.resolvers[g.root] == nil {
			p.resolvers[g.root] = map[string]ResolveFunc{}
		}
		if p.resolvers[g.root][g.field] != nil {
			continue
		}
		p.resolvers[g.root][g.field] = p.defaultResolver(g)
	}

	for _, name := range p.order {
		def := p.types[name]
		if def.Kind != ast.Interface || isReservedName(name) {
			continue
		}
		if p.typeResolvers[name] != nil {
			continue
		}
		p.typeResolvers[name] = resolveTypeByTag
	}
}

// defaultResolver delegates the operation to the configured query-translation
// entry point.
func (p *pipeline) defaultResolver(g generatedOp) ResolveFunc {
	op, typeName := g.op, g.typeName
	translator := p.cfg.Translator
	debug := p.cfg.Debug
	log := p.log
	return func(params ResolveParams) (any, error) {
		if debug {
			log.Debug().Str("op", string(op)).Str("type", typeName).
				Msg("delegating to translator")
		}
		if translator == nil {
			return nil, fmt.Errorf("no translator configured for %s on %s", op, typeName)
		}
		return translator.Translate(params, op, typeName)
	}
}

// resolveTypeByTag picks the concrete variant of a polymorphic result from
// the reserved runtime tag key.
func resolveTypeByTag(value map[string]any) string {
	tag, _ := value[typeTagField].(string)
	return tag
}
