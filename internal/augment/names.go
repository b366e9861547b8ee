package augment

import (
	"strings"
	"unicode"
)

// Derivative type naming. Every synthesized name lives in the
// underscore-prefixed namespace so it can never collide with a well-formed
// user type, and user definitions of the same name win via existence checks.

func orderingName(typeName string) string {
	return "_" + typeName + "Ordering"
}

func filterName(typeName string) string {
	return "_" + typeName + "Filter"
}

func inputName(typeName string) string {
	return "_" + typeName + "Input"
}

func payloadName(typeName, field string) string {
	return "_" + typeName + capitalize(field)
}

func directionsName(typeName, field string) string {
	return payloadName(typeName, field) + "Directions"
}

func addMutationName(typeName, field string) string {
	return "Add" + typeName + capitalize(field)
}

func removeMutationName(typeName, field string) string {
	return "Remove" + typeName + capitalize(field)
}

func addPayloadName(typeName, field string) string {
	return "_Add" + typeName + capitalize(field) + "Payload"
}

func removePayloadName(typeName, field string) string {
	return "_Remove" + typeName + capitalize(field) + "Payload"
}

func createMutationName(typeName string) string { return "Create" + typeName }
func updateMutationName(typeName string) string { return "Update" + typeName }
func deleteMutationName(typeName string) string { return "Delete" + typeName }

// capitalize upper-cases the first rune of a field name.
func capitalize(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}

// upperSnake derives a default relationship name from a type name: an
// underscore is inserted before an uppercase letter that follows a lowercase
// letter or a digit, then the whole name is upper-cased. Names that are
// already upper-snake pass through unchanged: "ActedIn" and "ACTED_IN" both
// yield "ACTED_IN", a single letter yields itself.
func upperSnake(name string) string {
	var b strings.Builder
	runes := []rune(name)
	for i, r := range runes {
		if unicode.IsUpper(r) && i > 0 {
			prev := runes[i-1]
			if unicode.IsLower(prev) || unicode.IsDigit(prev) {
				b.WriteByte('_')
			}
		}
		b.WriteRune(unicode.ToUpper(r))
	}
	return b.String()
}
