package attrkit_test

import (
	"errors"
	"testing"

	"github.com/attrkit/attrkit"
	"github.com/attrkit/attrkit/field"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecord_GetUnknown(t *testing.T) {
	s := personSchema(t)
	rec, err := s.New(map[string]any{"name": "a"})
	require.NoError(t, err)

	_, err = rec.Get("bogus")
	require.Error(t, err)
	assert.True(t, attrkit.IsUnknownField(err))
	assert.True(t, errors.Is(err, attrkit.ErrUnknownField))
	assert.Panics(t, func() { rec.MustGet("bogus") })
}

func TestRecord_TypedGetters(t *testing.T) {
	s := personSchema(t)
	rec, err := s.New(map[string]any{"name": "a", "age": 30, "active": true})
	require.NoError(t, err)

	name, err := rec.GetString("name")
	require.NoError(t, err)
	assert.Equal(t, "a", name)

	age, err := rec.GetInt("age")
	require.NoError(t, err)
	assert.Equal(t, int64(30), age)

	active, err := rec.GetBool("active")
	require.NoError(t, err)
	assert.True(t, active)

	// Wrong kind fails rather than coercing; reads are exact.
	_, err = rec.GetInt("name")
	assert.Error(t, err)
	_, err = rec.GetFloat("age")
	assert.Error(t, err)
}

func TestRecord_Set(t *testing.T) {
	s := personSchema(t)
	rec, err := s.New(map[string]any{"name": "a"})
	require.NoError(t, err)

	// Set re-runs coercion for the single field.
	require.NoError(t, rec.Set("age", "31"))
	assert.Equal(t, int64(31), rec.MustGet("age"))

	err = rec.Set("age", "old")
	assert.True(t, attrkit.IsCoercion(err))

	err = rec.Set("bogus", 1)
	assert.True(t, attrkit.IsUnknownField(err))

	// nil clears a nillable field but cannot clear a required one.
	require.NoError(t, rec.Set("active", true))
	require.NoError(t, rec.Set("active", nil))
	assert.Nil(t, rec.MustGet("active"))
	err = rec.Set("name", nil)
	assert.True(t, attrkit.IsMissingField(err))
}

func TestRecord_SetImmutable(t *testing.T) {
	s, err := attrkit.NewSchema(
		field.UUID("id").DefaultFunc(uuid.New).Immutable(),
		field.String("note").Immutable().Nillable(),
	)
	require.NoError(t, err)

	rec, err := s.New(nil)
	require.NoError(t, err)

	// Immutable and already set: every assignment fails, whatever the value.
	err = rec.Set("id", uuid.New())
	require.Error(t, err)
	assert.True(t, attrkit.IsImmutableField(err))
	assert.True(t, errors.Is(err, attrkit.ErrImmutable))
	err = rec.Set("id", rec.MustGet("id"))
	assert.True(t, attrkit.IsImmutableField(err))

	// Immutable but never set: the first assignment is allowed, the next is not.
	require.NoError(t, rec.Set("note", "once"))
	err = rec.Set("note", "twice")
	assert.True(t, attrkit.IsImmutableField(err))
}

func TestRecord_SetValidation(t *testing.T) {
	s, err := attrkit.NewSchema(
		field.Int("age").Range(0, 150),
	)
	require.NoError(t, err)
	rec, err := s.New(map[string]any{"age": 30})
	require.NoError(t, err)

	err = rec.Set("age", 200)
	assert.True(t, attrkit.IsValidationError(err))
	assert.Equal(t, int64(30), rec.MustGet("age"))
}

func TestRecord_ToMap(t *testing.T) {
	s := personSchema(t)
	rec, err := s.New(map[string]any{"name": "a"})
	require.NoError(t, err)

	want := map[string]any{"name": "a", "age": int64(0), "active": nil}
	if diff := cmp.Diff(want, rec.ToMap()); diff != "" {
		t.Errorf("ToMap() mismatch (-want +got):\n%s", diff)
	}

	// Idempotent: two dumps of the same record are equal.
	if diff := cmp.Diff(rec.ToMap(), rec.ToMap()); diff != "" {
		t.Errorf("ToMap() not idempotent (-first +second):\n%s", diff)
	}

	assert.Equal(t, rec.ToMap(), rec.Dump())
}

func TestRecord_ToMap_NestedAndUUID(t *testing.T) {
	owner := attrkit.MustSchema(field.String("name"))
	s := attrkit.MustSchema(
		field.UUID("id"),
		field.Entity("owner", owner),
		field.List("tags"),
	)

	id := uuid.New()
	rec, err := s.New(map[string]any{
		"id":    id,
		"owner": map[string]any{"name": "sam"},
		"tags":  []string{"a", "b"},
	})
	require.NoError(t, err)

	want := map[string]any{
		"id":    id.String(),
		"owner": map[string]any{"name": "sam"},
		"tags":  []any{"a", "b"},
	}
	if diff := cmp.Diff(want, rec.ToMap()); diff != "" {
		t.Errorf("ToMap() mismatch (-want +got):\n%s", diff)
	}
}

func TestRecord_ToMap_Sensitive(t *testing.T) {
	s := attrkit.MustSchema(
		field.String("user"),
		field.String("password").Sensitive(),
	)
	rec, err := s.New(map[string]any{"user": "a", "password": "hunter2"})
	require.NoError(t, err)

	m := rec.ToMap()
	assert.Contains(t, m, "user")
	assert.NotContains(t, m, "password")
	// The value itself is still readable through the record.
	assert.Equal(t, "hunter2", rec.MustGet("password"))
}

func TestRecord_RoundTrip(t *testing.T) {
	owner := attrkit.MustSchema(field.String("name"))
	s := attrkit.MustSchema(
		field.String("title"),
		field.Int("pages").Default(1),
		field.Bool("draft").Nillable(),
		field.UUID("id"),
		field.Enum("state").Values("new", "done").Default("new"),
		field.Entity("owner", owner),
		field.Map("meta").Nillable(),
		field.List("tags"),
	)

	rec, err := s.New(map[string]any{
		"title": "report",
		"id":    uuid.New(),
		"owner": map[string]any{"name": "sam"},
		"tags":  []any{"x"},
		"meta":  map[string]any{"k": "v"},
	})
	require.NoError(t, err)

	again, err := s.New(rec.ToMap())
	require.NoError(t, err)
	assert.True(t, rec.Equal(again))
	assert.True(t, again.Equal(rec))
}

func TestRecord_Equal(t *testing.T) {
	s := personSchema(t)
	a, err := s.New(map[string]any{"name": "a", "age": 3})
	require.NoError(t, err)
	b, err := s.New(map[string]any{"name": "a", "age": "3"})
	require.NoError(t, err)
	c, err := s.New(map[string]any{"name": "c", "age": 3})
	require.NoError(t, err)

	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
	assert.False(t, a.Equal(nil))

	// Identical field sets declared by distinct schema values still compare
	// equal; equality is structural, not identity based.
	s2 := personSchema(t)
	d, err := s2.New(map[string]any{"name": "a", "age": 3})
	require.NoError(t, err)
	assert.True(t, a.Equal(d))

	// A different field set never compares equal.
	other := attrkit.MustSchema(field.String("name"))
	e, err := other.New(map[string]any{"name": "a"})
	require.NoError(t, err)
	assert.False(t, a.Equal(e))

	// Schemas agreeing on field names and types but not on enum token sets
	// are different shapes.
	lamp := attrkit.MustSchema(field.Enum("state").Values("on", "off"))
	valve := attrkit.MustSchema(field.Enum("state").Values("on", "off", "half"))
	f, err := lamp.New(map[string]any{"state": "on"})
	require.NoError(t, err)
	g, err := valve.New(map[string]any{"state": "on"})
	require.NoError(t, err)
	assert.False(t, f.Equal(g))

	// The same applies one level down, through nested entity schemas.
	inA := attrkit.MustSchema(field.Int("n"))
	inB := attrkit.MustSchema(field.Float("n"))
	outA := attrkit.MustSchema(field.Entity("sub", inA).Nillable())
	outB := attrkit.MustSchema(field.Entity("sub", inB).Nillable())
	h, err := outA.New(nil)
	require.NoError(t, err)
	i, err := outB.New(nil)
	require.NoError(t, err)
	assert.False(t, h.Equal(i))
}

func TestRecord_FieldsOrder(t *testing.T) {
	s := personSchema(t)
	rec, err := s.New(map[string]any{"name": "a"})
	require.NoError(t, err)
	assert.Equal(t, []string{"name", "age", "active"}, rec.Fields())
	assert.Equal(t, rec.Fields(), s.FieldNames())
	assert.Equal(t, []any{"a", int64(0), nil}, rec.Values())
}

func TestRecord_String(t *testing.T) {
	s := personSchema(t)
	rec, err := s.New(map[string]any{"name": "a"})
	require.NoError(t, err)
	assert.Equal(t, "Record(active=<nil>, age=0, name=a)", rec.String())
}
