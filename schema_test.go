package attrkit_test

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/attrkit/attrkit"
	"github.com/attrkit/attrkit/field"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// personSchema mirrors the canonical example: a required string, an integer
// with a default, and a nillable boolean.
func personSchema(t *testing.T) *attrkit.Schema {
	t.Helper()
	s, err := attrkit.NewSchema(
		field.String("name"),
		field.Int("age").Default(0),
		field.Bool("active").Nillable(),
	)
	require.NoError(t, err)
	return s
}

func TestNew(t *testing.T) {
	s := personSchema(t)

	rec, err := s.New(map[string]any{"name": "a"})
	require.NoError(t, err)
	assert.Equal(t, "a", rec.MustGet("name"))
	assert.Equal(t, int64(0), rec.MustGet("age"))
	assert.Nil(t, rec.MustGet("active"))
}

func TestNew_MissingField(t *testing.T) {
	s := personSchema(t)

	_, err := s.New(map[string]any{})
	require.Error(t, err)
	assert.True(t, attrkit.IsMissingField(err))
	assert.True(t, errors.Is(err, attrkit.ErrMissingField))

	var mfe *attrkit.MissingFieldError
	require.True(t, errors.As(err, &mfe))
	assert.Equal(t, "name", mfe.Field)
}

func TestNew_CoercionError(t *testing.T) {
	s := personSchema(t)

	_, err := s.New(map[string]any{"name": "a", "age": "old"})
	require.Error(t, err)
	assert.True(t, attrkit.IsCoercion(err))

	var ce *attrkit.CoercionError
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, "age", ce.Field)
	assert.Equal(t, "old", ce.Value)
	assert.Equal(t, field.TypeInt, ce.Type)
}

func TestNew_Coercions(t *testing.T) {
	s, err := attrkit.NewSchema(
		field.Int("count"),
		field.Bool("enabled"),
		field.Float("ratio"),
		field.String("label"),
	)
	require.NoError(t, err)

	rec, err := s.New(map[string]any{
		"count":   "42",
		"enabled": "yes",
		"ratio":   "0.5",
		"label":   7,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(42), rec.MustGet("count"))
	assert.Equal(t, true, rec.MustGet("enabled"))
	assert.Equal(t, 0.5, rec.MustGet("ratio"))
	assert.Equal(t, "7", rec.MustGet("label"))
}

func TestNew_UnknownKeysIgnored(t *testing.T) {
	s := personSchema(t)

	// Extra keys are deliberately ignored, not rejected. This allows records
	// to be harvested from larger mappings.
	rec, err := s.New(map[string]any{"name": "a", "extra": "ignored", "other": 1})
	require.NoError(t, err)
	assert.Equal(t, "a", rec.MustGet("name"))
	_, err = rec.Get("extra")
	assert.True(t, attrkit.IsUnknownField(err))
}

func TestNew_DefaultFunc(t *testing.T) {
	n := int64(0)
	s, err := attrkit.NewSchema(
		field.Int("seq").DefaultFunc(func() int64 { n++; return n }),
	)
	require.NoError(t, err)

	first, err := s.New(nil)
	require.NoError(t, err)
	second, err := s.New(nil)
	require.NoError(t, err)
	assert.Equal(t, int64(1), first.MustGet("seq"))
	assert.Equal(t, int64(2), second.MustGet("seq"))
}

func TestNew_NilValueUsesDefault(t *testing.T) {
	s := personSchema(t)

	rec, err := s.New(map[string]any{"name": "a", "age": nil})
	require.NoError(t, err)
	assert.Equal(t, int64(0), rec.MustGet("age"))
}

func TestNew_ValidationError(t *testing.T) {
	s, err := attrkit.NewSchema(
		field.Int("age").NonNegative(),
	)
	require.NoError(t, err)

	_, err = s.New(map[string]any{"age": -1})
	require.Error(t, err)
	assert.True(t, attrkit.IsValidationError(err))

	var ve *attrkit.ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, "age", ve.Field)
}

func TestNew_Enum(t *testing.T) {
	s, err := attrkit.NewSchema(
		field.Enum("color").Values("red", "green", "blue").Default("green"),
	)
	require.NoError(t, err)

	rec, err := s.New(nil)
	require.NoError(t, err)
	assert.Equal(t, "green", rec.MustGet("color"))

	rec, err = s.New(map[string]any{"color": "blue"})
	require.NoError(t, err)
	assert.Equal(t, "blue", rec.MustGet("color"))

	_, err = s.New(map[string]any{"color": "magenta"})
	assert.True(t, attrkit.IsCoercion(err))
}

func TestNew_TimeAndUUID(t *testing.T) {
	s, err := attrkit.NewSchema(
		field.UUID("id").DefaultFunc(uuid.New).Immutable(),
		field.Time("born"),
	)
	require.NoError(t, err)

	rec, err := s.New(map[string]any{"born": "2015-06-21T12:30:00Z"})
	require.NoError(t, err)
	born, err := rec.GetTime("born")
	require.NoError(t, err)
	assert.Equal(t, 2015, born.Year())
	assert.NotEqual(t, uuid.Nil, rec.MustGet("id"))

	_, err = s.New(map[string]any{"born": "the past"})
	assert.True(t, attrkit.IsCoercion(err))
}

func TestNew_Nested(t *testing.T) {
	owner, err := attrkit.NewSchema(
		field.String("name"),
	)
	require.NoError(t, err)
	s, err := attrkit.NewSchema(
		field.String("title"),
		field.Entity("owner", owner).Nillable(),
	)
	require.NoError(t, err)

	rec, err := s.New(map[string]any{
		"title": "doc",
		"owner": map[string]any{"name": "sam"},
	})
	require.NoError(t, err)
	sub, err := rec.GetRecord("owner")
	require.NoError(t, err)
	assert.Equal(t, "sam", sub.MustGet("name"))

	// A nested construction failure surfaces as a coercion error naming the
	// outer field and wrapping the inner failure.
	_, err = s.New(map[string]any{
		"title": "doc",
		"owner": map[string]any{},
	})
	require.Error(t, err)
	assert.True(t, attrkit.IsCoercion(err))
	assert.True(t, errors.Is(err, attrkit.ErrMissingField))

	// Nillable nested fields may be absent.
	rec, err = s.New(map[string]any{"title": "doc"})
	require.NoError(t, err)
	assert.Nil(t, rec.MustGet("owner"))
}

func TestNew_NestedSchemaMismatch(t *testing.T) {
	owner, err := attrkit.NewSchema(
		field.String("name"),
	)
	require.NoError(t, err)
	s, err := attrkit.NewSchema(
		field.Entity("owner", owner),
	)
	require.NoError(t, err)

	// A pre-built record is only accepted when its schema matches the
	// declared entity schema.
	truck, err := attrkit.NewSchema(
		field.Int("wheels").Default(4),
	)
	require.NoError(t, err)
	stray, err := truck.New(nil)
	require.NoError(t, err)

	_, err = s.New(map[string]any{"owner": stray})
	require.Error(t, err)
	var ce *attrkit.CoercionError
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, "owner", ce.Field)

	// A record from an equivalent but distinct schema value passes, and the
	// result round-trips.
	owner2, err := attrkit.NewSchema(
		field.String("name"),
	)
	require.NoError(t, err)
	sub, err := owner2.New(map[string]any{"name": "sam"})
	require.NoError(t, err)
	rec, err := s.New(map[string]any{"owner": sub})
	require.NoError(t, err)
	again, err := s.New(rec.ToMap())
	require.NoError(t, err)
	assert.True(t, rec.Equal(again))
}

func TestNewSchema_DuplicateField(t *testing.T) {
	_, err := attrkit.NewSchema(
		field.String("name"),
		field.Int("name"),
	)
	require.Error(t, err)
	assert.True(t, attrkit.IsDuplicateField(err))
	assert.True(t, errors.Is(err, attrkit.ErrDuplicateField))
}

func TestNewSchema_BuilderError(t *testing.T) {
	_, err := attrkit.NewSchema(
		field.Enum("color"),
	)
	assert.Error(t, err)

	_, err = attrkit.NewSchema(
		field.String(""),
	)
	assert.Error(t, err)
}

func TestMustSchema(t *testing.T) {
	assert.Panics(t, func() {
		attrkit.MustSchema(field.String("a"), field.String("a"))
	})
	assert.NotNil(t, attrkit.MustSchema(field.String("a")))
}

func TestSchemaFrom_Mixins(t *testing.T) {
	s, err := attrkit.SchemaFrom(
		attrkit.Timestamps{},
		attrkit.FieldSet{field.String("name")},
	)
	require.NoError(t, err)
	assert.Equal(t, []string{"created_at", "updated_at", "name"}, s.FieldNames())

	rec, err := s.New(map[string]any{"name": "a"})
	require.NoError(t, err)
	created, err := rec.GetTime("created_at")
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now(), created, time.Minute)

	// created_at came from a default, so it is set and immutable.
	err = rec.Set("created_at", time.Now())
	assert.True(t, attrkit.IsImmutableField(err))
	assert.NoError(t, rec.Set("updated_at", time.Now()))

	// Mixing in the same group twice collides.
	_, err = attrkit.SchemaFrom(attrkit.Timestamps{}, attrkit.CreateTime{})
	assert.True(t, attrkit.IsDuplicateField(err))
}

func TestSchema_Extend(t *testing.T) {
	base := personSchema(t)

	ext, err := base.Extend(field.String("email").Nillable())
	require.NoError(t, err)
	assert.Equal(t, base.Len()+1, ext.Len())
	assert.Equal(t, 3, base.Len())

	_, err = base.Extend(field.Int("name"))
	assert.True(t, attrkit.IsDuplicateField(err))
}

func TestSchema_Describe(t *testing.T) {
	s := personSchema(t)

	fd, ok := s.Descriptor("age")
	require.True(t, ok)
	assert.Equal(t, field.TypeInt, fd.Type)
	assert.True(t, fd.HasDefault())

	_, ok = s.Descriptor("nope")
	assert.False(t, ok)
}

func TestSchema_Validate(t *testing.T) {
	s, err := attrkit.NewSchema(
		field.String("name"),
		field.Int("age").NonNegative(),
	)
	require.NoError(t, err)

	assert.NoError(t, s.Validate(map[string]any{"name": "a", "age": 3}))

	// Unlike New, Validate reports every failing field at once.
	err = s.Validate(map[string]any{"age": -2})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "name")
	assert.Contains(t, err.Error(), "age")
}

func TestNew_FailsFastInDeclarationOrder(t *testing.T) {
	s, err := attrkit.NewSchema(
		field.Int("first"),
		field.Int("second"),
	)
	require.NoError(t, err)

	_, err = s.New(map[string]any{"first": "x", "second": "y"})
	var ce *attrkit.CoercionError
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, "first", ce.Field)
}

func TestSchema_ConcurrentConstruction(t *testing.T) {
	s := personSchema(t)

	done := make(chan error, 8)
	for i := 0; i < 8; i++ {
		go func(i int) {
			rec, err := s.New(map[string]any{"name": fmt.Sprintf("n%d", i)})
			if err == nil {
				_, err = rec.Get("name")
			}
			done <- err
		}(i)
	}
	for i := 0; i < 8; i++ {
		assert.NoError(t, <-done)
	}
}
