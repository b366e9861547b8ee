package augment

import "github.com/vektah/gqlparser/v2/ast"

// Temporal type injection. Five well-known scalar names are substituted with
// structured output/input type pairs so a graph store's native temporal
// values can be selected field by field, with a formatted string fallback.

const (
	temporalTime          = "time"
	temporalDate          = "date"
	temporalDateTime      = "datetime"
	temporalLocalTime     = "localtime"
	temporalLocalDateTime = "localdatetime"
)

// temporalKind describes one recognized temporal scalar and its structured
// replacement pair.
type temporalKind struct {
	key     string // configuration key
	scalar  string // well-known scalar name in the source schema
	output  string // structured output type name
	input   string // structured input type name
	subbed  []string
}

var temporalKinds = []temporalKind{
	{temporalTime, "Time", "_Time", "_TimeInput",
		[]string{"hour", "minute", "second", "millisecond", "microsecond", "nanosecond", "timezone"}},
	{temporalDate, "Date", "_Date", "_DateInput",
		[]string{"year", "month", "day"}},
	{temporalDateTime, "DateTime", "_DateTime", "_DateTimeInput",
		[]string{"year", "month", "day", "hour", "minute", "second", "millisecond", "microsecond", "nanosecond", "timezone"}},
	{temporalLocalTime, "LocalTime", "_LocalTime", "_LocalTimeInput",
		[]string{"hour", "minute", "second", "millisecond", "microsecond", "nanosecond"}},
	{temporalLocalDateTime, "LocalDateTime", "_LocalDateTime", "_LocalDateTimeInput",
		[]string{"year", "month", "day", "hour", "minute", "second", "millisecond", "microsecond", "nanosecond"}},
}

func isTemporalOutputName(name string) bool {
	for _, k := range temporalKinds {
		if k.output == name {
			return true
		}
	}
	return false
}

func isTemporalInputName(name string) bool {
	for _, k := range temporalKinds {
		if k.input == name {
			return true
		}
	}
	return false
}

// temporalEnabled reports whether the configuration enables the kind. A nil
// map means all kinds are on.
func (p *pipeline) temporalEnabled(k temporalKind) bool {
	if p.cfg.Temporal == nil {
		return true
	}
	enabled, ok := p.cfg.Temporal[k.key]
	return ok && enabled
}

// isTemporalLeaf reports whether the leaf name resolves to a structured
// temporal type under the current configuration. A well-known scalar name of a
// disabled kind is not temporal: it falls through to custom-scalar handling.
func (p *pipeline) isTemporalLeaf(leaf string) bool {
	if isTemporalOutputName(leaf) || isTemporalInputName(leaf) {
		return true
	}
	for _, k := range temporalKinds {
		if k.scalar == leaf {
			return p.temporalEnabled(k)
		}
	}
	return false
}

// injectTemporalTypes defines the structured temporal type pairs for every
// enabled kind and rewrites all field and argument positions referencing the
// well-known scalar names. The rewrite recurses through list and non-null
// wrappers to reach the named leaf type.
func (p *pipeline) injectTemporalTypes() {
	outputs := map[string]string{}
	inputs := map[string]string{}
	for _, k := range temporalKinds {
		if !p.temporalEnabled(k) {
			continue
		}
		outputs[k.scalar] = k.output
		inputs[k.scalar] = k.input

		out := objectDef(k.output)
		in := inputDef(k.input)
		for _, sub := range k.subbed {
			t := "Int"
			if sub == "timezone" {
				t = "String"
			}
			out.Fields = append(out.Fields, fieldDef(sub, namedType(t)))
			in.Fields = append(in.Fields, fieldDef(sub, namedType(t)))
		}
		out.Fields = append(out.Fields, fieldDef("formatted", namedType("String")))
		in.Fields = append(in.Fields, fieldDef("formatted", namedType("String")))
		p.put(out)
		p.put(in)
	}
	if len(outputs) == 0 {
		return
	}

	for _, name := range p.order {
		def := p.types[name]
		if isTemporalOutputName(name) || isTemporalInputName(name) {
			continue
		}
		switch def.Kind {
		case ast.Object, ast.Interface:
			for _, f := range def.Fields {
				rewriteLeafType(f.Type, outputs)
				for _, a := range f.Arguments {
					rewriteLeafType(a.Type, inputs)
				}
			}
		case ast.InputObject:
			for _, f := range def.Fields {
				rewriteLeafType(f.Type, inputs)
			}
		}
	}
}

// rewriteLeafType replaces the named leaf of a possibly wrapped type in place
// when the leaf appears in the substitution table.
func rewriteLeafType(t *ast.Type, subst map[string]string) {
	for t != nil {
		if t.NamedType != "" {
			if repl, ok := subst[t.NamedType]; ok {
				t.NamedType = repl
			}
			return
		}
		t = t.Elem
	}
}

// temporalInputFor maps a structured temporal output name to its input twin;
// used when a temporal field becomes a generated argument. Field leaves are
// already rewritten to output names before any generator runs, so a raw
// scalar name here belongs to a disabled kind and passes through untouched.
func temporalInputFor(name string) string {
	for _, k := range temporalKinds {
		if k.output == name {
			return k.input
		}
	}
	return name
}
