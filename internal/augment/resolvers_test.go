package augment

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingTranslator struct {
	ops   []Operation
	types []string
	value any
}

func (r *recordingTranslator) Translate(p ResolveParams, op Operation, typeName string) (any, error) {
	r.ops = append(r.ops, op)
	r.types = append(r.types, typeName)
	return r.value, nil
}

func TestResolvers_DefaultDelegatesToTranslator(t *testing.T) {
	// Test plan:
	// - Every generated operation gets a resolver
	// - The default resolver hands the operation kind and type name to the
	//   translator and returns its value

	translator := &recordingTranslator{value: "rows"}
	cfg := DefaultConfig()
	cfg.Translator = translator

	result := mustAugment(t, `
type Person {
  personId: ID!
  name: String
}`, cfg)

	queryResolver := result.Resolvers["Query"]["Person"]
	require.NotNil(t, queryResolver)
	out, err := queryResolver(ResolveParams{Ctx: context.Background()})
	require.NoError(t, err)
	assert.Equal(t, "rows", out)
	require.Len(t, translator.ops, 1)
	assert.Equal(t, OpQuery, translator.ops[0])
	assert.Equal(t, "Person", translator.types[0])

	for _, m := range []string{"CreatePerson", "UpdatePerson", "DeletePerson"} {
		assert.NotNil(t, result.Resolvers["Mutation"][m], "missing resolver for %s", m)
	}

	del := result.Resolvers["Mutation"]["DeletePerson"]
	_, err = del(ResolveParams{Ctx: context.Background()})
	require.NoError(t, err)
	assert.Equal(t, OpDelete, translator.ops[len(translator.ops)-1])
}

func TestResolvers_NoTranslatorConfigured(t *testing.T) {
	// Test plan:
	// - Without a translator the default resolver fails with a descriptive
	//   error instead of panicking

	result := mustAugment(t, `
type Person {
  personId: ID!
}`, DefaultConfig())

	_, err := result.Resolvers["Query"]["Person"](ResolveParams{Ctx: context.Background()})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no translator configured")
	assert.Contains(t, err.Error(), "Person")
}

func TestResolvers_UserResolverWins(t *testing.T) {
	// Test plan:
	// - A user-supplied resolver for a generated field is kept, not replaced

	called := false
	user := ResolverMap{
		"Query": {
			"Person": func(p ResolveParams) (any, error) {
				called = true
				return "custom", nil
			},
		},
	}

	result, err := Augment(parse(t, `
type Person {
  personId: ID!
}`), user, DefaultConfig())
	require.NoError(t, err)

	out, err := result.Resolvers["Query"]["Person"](ResolveParams{})
	require.NoError(t, err)
	assert.Equal(t, "custom", out)
	assert.True(t, called)

	// Generated mutations still receive defaults
	assert.NotNil(t, result.Resolvers["Mutation"]["CreatePerson"])
}

func TestResolvers_RelationshipOperations(t *testing.T) {
	// Test plan:
	// - Add/Remove relationship mutations resolve through the translator with
	//   the relationship operation kinds

	translator := &recordingTranslator{}
	cfg := DefaultConfig()
	cfg.Translator = translator

	result := mustAugment(t, moviesSchema, cfg)

	add := result.Resolvers["Mutation"]["AddPersonMovies"]
	require.NotNil(t, add)
	_, err := add(ResolveParams{Ctx: context.Background()})
	require.NoError(t, err)
	assert.Equal(t, OpAddRelationship, translator.ops[0])
	assert.Equal(t, "Person", translator.types[0])

	remove := result.Resolvers["Mutation"]["RemovePersonMovies"]
	require.NotNil(t, remove)
	_, err = remove(ResolveParams{Ctx: context.Background()})
	require.NoError(t, err)
	assert.Equal(t, OpRemoveRelationship, translator.ops[1])
}

func TestResolvers_InterfaceTypeResolution(t *testing.T) {
	// Test plan:
	// - Every interface type gains a type resolver reading the reserved
	//   runtime tag

	result := mustAugment(t, `
interface Named {
  name: String
}

type Person implements Named {
  personId: ID!
  name: String
}`, DefaultConfig())

	resolve := result.TypeResolvers["Named"]
	require.NotNil(t, resolve)
	assert.Equal(t, "Person", resolve(map[string]any{"_type": "Person"}))
	assert.Equal(t, "", resolve(map[string]any{}))
	assert.Equal(t, "", resolve(map[string]any{"_type": 42}))
}
