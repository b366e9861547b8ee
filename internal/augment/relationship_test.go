package augment

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vektah/gqlparser/v2/ast"
)

func dirArg(t *testing.T, d *ast.Directive, name string) string {
	t.Helper()
	a := d.Arguments.ForName(name)
	require.NotNil(t, a, "directive %s missing argument %s", d.Name, name)
	return a.Value.Raw
}

func TestRelationship_TypeNotationMutations(t *testing.T) {
	// Test plan:
	// - A field valued with a relationship type carrying properties yields Add
	//   and Remove mutations with from/to primary-key inputs
	// - Add additionally takes a data argument typed after the property input
	// - Both mutations carry the metadata directive with the canonical
	//   relationship name and endpoint assignment

	result := mustAugment(t, moviesSchema, DefaultConfig())
	mutation := result.Types["Mutation"]

	add := mutation.Fields.ForName("AddPersonMovies")
	require.NotNil(t, add)
	require.NotNil(t, add.Arguments.ForName("from"))
	assert.Equal(t, "_PersonInput", add.Arguments.ForName("from").Type.Name())
	assert.True(t, add.Arguments.ForName("from").Type.NonNull)
	assert.Equal(t, "_MovieInput", add.Arguments.ForName("to").Type.Name())
	require.NotNil(t, add.Arguments.ForName("data"))
	assert.Equal(t, "_ACTED_INInput", add.Arguments.ForName("data").Type.Name())
	assert.True(t, add.Arguments.ForName("data").Type.NonNull)

	meta := add.Directives.ForName("mutationMeta")
	require.NotNil(t, meta)
	assert.Equal(t, "ACTED_IN", dirArg(t, meta, "relationship"))
	assert.Equal(t, "Person", dirArg(t, meta, "from"))
	assert.Equal(t, "Movie", dirArg(t, meta, "to"))

	remove := mutation.Fields.ForName("RemovePersonMovies")
	require.NotNil(t, remove)
	assert.Nil(t, remove.Arguments.ForName("data"), "remove takes no relationship data")
	require.NotNil(t, remove.Directives.ForName("mutationMeta"))

	// Property input mirrors the relationship's stored fields
	dataInput := result.Types["_ACTED_INInput"]
	require.NotNil(t, dataInput)
	require.Equal(t, ast.InputObject, dataInput.Kind)
	require.Len(t, dataInput.Fields, 1)
	assert.Equal(t, "roles", dataInput.Fields[0].Name)

	// Add payload exposes endpoints plus properties, remove only endpoints
	addPayload := result.Types["_AddPersonMoviesPayload"]
	require.NotNil(t, addPayload)
	assert.NotNil(t, addPayload.Fields.ForName("from"))
	assert.NotNil(t, addPayload.Fields.ForName("to"))
	assert.NotNil(t, addPayload.Fields.ForName("roles"))

	removePayload := result.Types["_RemovePersonMoviesPayload"]
	require.NotNil(t, removePayload)
	assert.Nil(t, removePayload.Fields.ForName("roles"))
}

func TestRelationship_PayloadSubstitution(t *testing.T) {
	// Test plan:
	// - A relationship-typed field on a node is rewritten to a payload type
	//   exposing the properties and the opposite endpoint
	// - The list wrapper on the field is preserved

	result := mustAugment(t, moviesSchema, DefaultConfig())

	movies := result.Types["Person"].Fields.ForName("movies")
	require.NotNil(t, movies)
	assert.Equal(t, "", movies.Type.NamedType)
	assert.Equal(t, "_PersonMovies", movies.Type.Elem.NamedType)

	payload := result.Types["_PersonMovies"]
	require.NotNil(t, payload)
	assert.NotNil(t, payload.Fields.ForName("roles"))
	assert.NotNil(t, payload.Fields.ForName("Movie"))

	rel := payload.Directives.ForName("relation")
	require.NotNil(t, rel)
	assert.Equal(t, "ACTED_IN", dirArg(t, rel, "name"))
	assert.Equal(t, "Person", dirArg(t, rel, "from"))
	assert.Equal(t, "Movie", dirArg(t, rel, "to"))
}

func TestRelationship_NotationEquivalence(t *testing.T) {
	// Test plan:
	// - The same property-less edge declared through a relationship type and
	//   through a field-level directive produces the same mutation name,
	//   arguments and metadata values

	typeNotation := mustAugment(t, `
type Person {
  personId: ID!
  movies: [ACTED_IN]
}

type Movie {
  movieId: ID!
}

type ACTED_IN @relation(name: "ACTED_IN", from: "Person", to: "Movie")
`, DefaultConfig())

	fieldNotation := mustAugment(t, `
type Person {
  personId: ID!
  movies: [Movie] @relation(name: "ACTED_IN", direction: "OUT")
}

type Movie {
  movieId: ID!
}
`, DefaultConfig())

	for _, result := range []*Result{typeNotation, fieldNotation} {
		add := result.Types["Mutation"].Fields.ForName("AddPersonMovies")
		require.NotNil(t, add)
		require.Len(t, add.Arguments, 2, "no data argument without relationship properties")
		assert.Equal(t, "_PersonInput", add.Arguments.ForName("from").Type.Name())
		assert.Equal(t, "_MovieInput", add.Arguments.ForName("to").Type.Name())

		meta := add.Directives.ForName("mutationMeta")
		require.NotNil(t, meta)
		assert.Equal(t, "ACTED_IN", dirArg(t, meta, "relationship"))
		assert.Equal(t, "Person", dirArg(t, meta, "from"))
		assert.Equal(t, "Movie", dirArg(t, meta, "to"))

		assert.NotNil(t, result.Types["Mutation"].Fields.ForName("RemovePersonMovies"))
	}
}

func TestRelationship_PairedFieldsNormalization(t *testing.T) {
	// Test plan:
	// - A type declaring paired from/to fields without a directive is
	//   normalized: the directive is synthesized and the default relationship
	//   name derives from the type name

	result := mustAugment(t, `
type Person {
  personId: ID!
  movies: [ActedIn]
}

type Movie {
  movieId: ID!
}

type ActedIn {
  from: Person
  to: Movie
  roles: [String]
}
`, DefaultConfig())

	rel := result.Types["ActedIn"].Directives.ForName("relation")
	require.NotNil(t, rel)
	assert.Equal(t, "ACTED_IN", dirArg(t, rel, "name"))
	assert.Equal(t, "Person", dirArg(t, rel, "from"))
	assert.Equal(t, "Movie", dirArg(t, rel, "to"))

	add := result.Types["Mutation"].Fields.ForName("AddPersonMovies")
	require.NotNil(t, add)
	assert.Equal(t, "_ActedInInput", add.Arguments.ForName("data").Type.Name())

	meta := add.Directives.ForName("mutationMeta")
	assert.Equal(t, "ACTED_IN", dirArg(t, meta, "relationship"))
}

func TestRelationship_InboundDirectionSwapsEndpoints(t *testing.T) {
	// Test plan:
	// - A field-level directive with direction IN keeps the canonical from/to
	//   assignment: the field owner becomes the to endpoint

	result := mustAugment(t, `
type Person {
  personId: ID!
}

type Movie {
  movieId: ID!
  actors: [Person] @relation(name: "ACTED_IN", direction: "IN")
}
`, DefaultConfig())

	add := result.Types["Mutation"].Fields.ForName("AddMovieActors")
	require.NotNil(t, add)
	assert.Equal(t, "_PersonInput", add.Arguments.ForName("from").Type.Name())
	assert.Equal(t, "_MovieInput", add.Arguments.ForName("to").Type.Name())

	meta := add.Directives.ForName("mutationMeta")
	assert.Equal(t, "Person", dirArg(t, meta, "from"))
	assert.Equal(t, "Movie", dirArg(t, meta, "to"))
}

func TestRelationship_ReflexiveDirectionalCarrier(t *testing.T) {
	// Test plan:
	// - A reflexive relationship field is rewritten to a directional carrier
	//   with from/to sub-fields and its own arguments cleared
	// - Pagination lives on the carrier's sub-fields

	result := mustAugment(t, `
type Person {
  personId: ID!
  name: String
  friends: [FRIEND_OF]
}

type FRIEND_OF @relation(name: "FRIEND_OF", from: "Person", to: "Person") {
  since: Int
}
`, DefaultConfig())

	friends := result.Types["Person"].Fields.ForName("friends")
	require.NotNil(t, friends)
	assert.Equal(t, "_PersonFriendsDirections", friends.Type.NamedType)
	assert.Empty(t, friends.Arguments, "field arguments move onto the carrier")

	carrier := result.Types["_PersonFriendsDirections"]
	require.NotNil(t, carrier)
	for _, end := range []string{"from", "to"} {
		sub := carrier.Fields.ForName(end)
		require.NotNil(t, sub, "carrier missing %s", end)
		assert.Equal(t, "_PersonFriends", sub.Type.Elem.NamedType)
		assert.NotNil(t, sub.Arguments.ForName("first"))
		assert.NotNil(t, sub.Arguments.ForName("offset"))
	}

	payload := result.Types["_PersonFriends"]
	require.NotNil(t, payload)
	assert.NotNil(t, payload.Fields.ForName("since"))
	assert.NotNil(t, payload.Fields.ForName("Person"))

	assert.NotNil(t, result.Types["Mutation"].Fields.ForName("AddPersonFriends"))
	assert.NotNil(t, result.Types["Mutation"].Fields.ForName("RemovePersonFriends"))
}

func TestRelationship_MissingPairedFieldFails(t *testing.T) {
	// Test plan:
	// - A type declaring from without to aborts augmentation with a
	//   structural error naming the type

	_, err := Augment(parse(t, `
type Person {
  personId: ID!
}

type BROKEN {
  from: Person
}
`), nil, DefaultConfig())

	require.Error(t, err)
	var serr *StructuralError
	require.True(t, errors.As(err, &serr))
	assert.Equal(t, "BROKEN", serr.Type)
	assert.Contains(t, err.Error(), "BROKEN")
}

func TestRelationship_OwnerMustBeInvolved(t *testing.T) {
	// Test plan:
	// - Using a relationship type on a node that is neither endpoint fails
	//   with a structural error carrying the endpoint context

	_, err := Augment(parse(t, `
type A {
  aId: ID!
  rel: [R]
}

type B {
  bId: ID!
}

type C {
  cId: ID!
}

type R @relation(name: "R", from: "B", to: "C")
`), nil, DefaultConfig())

	require.Error(t, err)
	var serr *StructuralError
	require.True(t, errors.As(err, &serr))
	assert.Equal(t, "A", serr.Type)
	assert.Equal(t, "rel", serr.Field)
	assert.Equal(t, "B", serr.From)
	assert.Equal(t, "C", serr.To)
}

func TestRelationship_EndpointWithoutPrimaryKeySkipsMutations(t *testing.T) {
	// Test plan:
	// - Add/Remove are only generated when both endpoints can be addressed by
	//   a primary key

	result := mustAugment(t, `
type Person {
  personId: ID!
  movies: [Movie] @relation(name: "ACTED_IN", direction: "OUT")
}

type Movie {
  title: String
}
`, DefaultConfig())

	mutation := result.Types["Mutation"]
	assert.Nil(t, mutation.Fields.ForName("AddPersonMovies"))
	assert.Nil(t, mutation.Fields.ForName("RemovePersonMovies"))
}

func TestRelationship_PolicyExclusionSkipsMutations(t *testing.T) {
	// Test plan:
	// - Excluding either endpoint from mutation generation suppresses the
	//   relationship mutations

	cfg := DefaultConfig()
	cfg.Mutation.Exclude["Movie"] = true

	result := mustAugment(t, `
type Person {
  personId: ID!
  movies: [Movie] @relation(name: "ACTED_IN", direction: "OUT")
}

type Movie {
  movieId: ID!
}
`, cfg)

	mutation := result.Types["Mutation"]
	assert.NotNil(t, mutation.Fields.ForName("CreatePerson"))
	assert.Nil(t, mutation.Fields.ForName("AddPersonMovies"))
}
