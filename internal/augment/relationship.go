package augment

import (
	"strings"

	"github.com/vektah/gqlparser/v2/ast"
)

// relation is the normalized identity of one logical edge: the relationship
// name plus the canonical from/to node type assignment. Both declaration
// notations (a relationship type with paired from/to fields, and a field-level
// @relation directive) resolve to this one form.
type relation struct {
	name string
	from string
	to   string

	// relType is set when the relation was declared as a relationship type;
	// props are its property fields, excluding the from/to endpoints.
	relType *ast.Definition
	props   ast.FieldList
}

func (r relation) reflexive() bool { return r.from == r.to }

// normalizeRelationshipTypes reconciles the two relationship notations onto
// the declarative @relation marker. An object type with paired from/to fields
// gets the directive synthesized from its field types; a type with the
// directive alone is already canonical. A type with only one of the paired
// fields is malformed and aborts the pass.
func (p *pipeline) normalizeRelationshipTypes() error {
	for _, name := range p.order {
		def := p.types[name]
		if def.Kind != ast.Object || isReservedName(name) || p.isRootType(def) {
			continue
		}
		fromField := def.Fields.ForName(fieldFrom)
		toField := def.Fields.ForName(fieldTo)
		if fromField == nil && toField == nil {
			continue
		}
		if fromField == nil || toField == nil {
			missing := fieldFrom
			present := toField
			if toField == nil {
				missing = fieldTo
				present = fromField
			}
			return &StructuralError{
				Type:   name,
				Field:  present.Name,
				Reason: "relationship type declares " + present.Name + " but no " + missing,
			}
		}

		d := def.Directives.ForName(directiveRelation)
		if d == nil {
			d = &ast.Directive{Name: directiveRelation}
			def.Directives = append(def.Directives, d)
		}
		if d.Arguments.ForName(argName) == nil {
			d.Arguments = append(d.Arguments, stringArg(argName, upperSnake(name)))
		}
		if d.Arguments.ForName(argFrom) == nil {
			d.Arguments = append(d.Arguments, stringArg(argFrom, fromField.Type.Name()))
		}
		if d.Arguments.ForName(argTo) == nil {
			d.Arguments = append(d.Arguments, stringArg(argTo, toField.Type.Name()))
		}
	}
	return nil
}

// relationOfType extracts the normalized relation from a relationship type
// definition.
func relationOfType(def *ast.Definition) relation {
	d := def.Directives.ForName(directiveRelation)
	r := relation{relType: def}
	if d == nil {
		return r
	}
	if a := d.Arguments.ForName(argName); a != nil {
		r.name = a.Value.Raw
	}
	if r.name == "" {
		r.name = upperSnake(def.Name)
	}
	if a := d.Arguments.ForName(argFrom); a != nil {
		r.from = a.Value.Raw
	}
	if a := d.Arguments.ForName(argTo); a != nil {
		r.to = a.Value.Raw
	}
	for _, f := range def.Fields {
		if f.Name == fieldFrom || f.Name == fieldTo {
			continue
		}
		r.props = append(r.props, f)
	}
	return r
}

// relationOfField extracts the relation a field-level @relation directive
// declares on a node field. The field owner is the from endpoint unless the
// declared direction is inbound, which swaps the pair.
func relationOfField(owner *ast.Definition, f *ast.FieldDefinition) relation {
	d := f.Directives.ForName(directiveRelation)
	r := relation{}
	if a := d.Arguments.ForName(argName); a != nil {
		r.name = a.Value.Raw
	}
	if r.name == "" {
		r.name = upperSnake(f.Name)
	}
	direction := directionOut
	if a := d.Arguments.ForName(argDirection); a != nil {
		direction = strings.ToUpper(a.Value.Raw)
	}
	r.from, r.to = owner.Name, f.Type.Name()
	if direction == directionIn {
		r.from, r.to = r.to, r.from
	}
	return r
}

// resolveRelationshipFields classifies every object-valued field on the node
// type and applies the relationship transforms: fields carrying a field-level
// @relation directive become add/remove mutation candidates; fields whose
// value type is itself a relationship type have their declared type replaced
// with a synthesized payload type (wrapped in a directional carrier when the
// relation is reflexive).
func (p *pipeline) resolveRelationshipFields(def *ast.Definition) error {
	for _, f := range def.Fields {
		leaf := p.lookup(f.Type.Name())
		switch p.categorize(f.Type.Name()) {
		case catNode:
			if f.Directives.ForName(directiveRelation) == nil {
				continue
			}
			rel := relationOfField(def, f)
			p.generateRelationshipMutations(def.Name, f.Name, rel)
		case catRelationship:
			rel := relationOfType(leaf)
			if def.Name != rel.from && def.Name != rel.to {
				return &StructuralError{
					Type:   def.Name,
					Field:  f.Name,
					From:   rel.from,
					To:     rel.to,
					Reason: "relationship field must involve the owning type on at least one side",
				}
			}
			p.substituteRelationshipPayload(def, f, rel)
			p.generateRelationshipMutations(def.Name, f.Name, rel)
		}
	}
	return nil
}

// substituteRelationshipPayload replaces the field's relationship-typed value
// with a payload type exposing the relationship properties alongside the
// connected node. A reflexive relation is additionally wrapped in a
// directional carrier exposing both endpoints, and the field's own arguments
// are cleared: pagination moves onto the carrier's sub-fields.
func (p *pipeline) substituteRelationshipPayload(def *ast.Definition, f *ast.FieldDefinition, rel relation) {
	payload := payloadName(def.Name, f.Name)

	opposite := rel.from
	if def.Name == rel.from {
		opposite = rel.to
	}

	pd := objectDef(payload)
	for _, prop := range rel.props {
		pd.Fields = append(pd.Fields, fieldDef(prop.Name, copyType(prop.Type)))
	}
	pd.Fields = append(pd.Fields, fieldDef(opposite, namedType(opposite)))
	pd.Directives = append(pd.Directives, relationDirective(rel.name, rel.from, rel.to))
	p.put(pd)

	if rel.reflexive() {
		carrier := directionsName(def.Name, f.Name)
		cd := objectDef(carrier)
		for _, end := range []string{fieldFrom, fieldTo} {
			sub := fieldDef(end, listOfType(namedType(payload)))
			sub.Arguments = ast.ArgumentDefinitionList{
				argDef("first", namedType("Int")),
				argDef("offset", namedType("Int")),
			}
			cd.Fields = append(cd.Fields, sub)
		}
		cd.Directives = append(cd.Directives, relationDirective(rel.name, rel.from, rel.to))
		p.put(cd)

		f.Type = namedType(carrier)
		f.Arguments = nil
		return
	}

	f.Type = replaceLeafName(f.Type, payload)
}

// replaceLeafName clones a wrapped type with its named leaf swapped,
// preserving the list and non-null layers.
func replaceLeafName(t *ast.Type, leaf string) *ast.Type {
	out := copyType(t)
	inner := out
	for inner.NamedType == "" {
		inner = inner.Elem
	}
	inner.NamedType = leaf
	return out
}
