package result

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkrogh/boldklub/internal/apperr"
)

func TestOkAndErr(t *testing.T) {
	ok := Ok(42)
	assert.True(t, ok.IsOk())
	assert.Equal(t, 42, ok.Value())
	assert.Nil(t, ok.Err())

	failure := Err[int](apperr.NotFound(""))
	assert.False(t, failure.IsOk())
	assert.Equal(t, apperr.CodeNotFound, failure.Err().Code)
}

func TestFromTry(t *testing.T) {
	ok := FromTry(func() (string, error) { return "hej", nil })
	require.True(t, ok.IsOk())
	assert.Equal(t, "hej", ok.Value())

	failure := FromTry(func() (string, error) { return "", errors.New("boom") })
	require.False(t, failure.IsOk())
	assert.Equal(t, apperr.CodeUnknown, failure.Err().Code)

	classified := FromTry(func() (string, error) { return "", apperr.Forbidden("") })
	require.False(t, classified.IsOk())
	assert.Equal(t, apperr.CodeForbidden, classified.Err().Code)
}

func TestUnwrapAndOrElse(t *testing.T) {
	value, err := Ok("a").Unwrap()
	assert.Equal(t, "a", value)
	assert.Nil(t, err)

	_, err = Err[string](apperr.Internal("")).Unwrap()
	require.NotNil(t, err)

	assert.Equal(t, "fallback", Err[string](apperr.Internal("")).OrElse("fallback"))
	assert.Equal(t, "a", Ok("a").OrElse("fallback"))
}

func TestMap(t *testing.T) {
	doubled := Map(Ok(21), func(v int) int { return v * 2 })
	assert.Equal(t, 42, doubled.Value())

	failure := Map(Err[int](apperr.NotFound("")), func(v int) int { return v * 2 })
	assert.False(t, failure.IsOk())
	assert.Equal(t, apperr.CodeNotFound, failure.Err().Code)
}

func TestMapErr(t *testing.T) {
	promoted := MapErr(Err[int](apperr.Unknown("")), func(e *apperr.Error) *apperr.Error {
		return apperr.NotFound("")
	})
	assert.Equal(t, apperr.CodeNotFound, promoted.Err().Code)

	untouched := MapErr(Ok(1), func(e *apperr.Error) *apperr.Error { return apperr.Internal("") })
	assert.True(t, untouched.IsOk())
}

func TestAndThen(t *testing.T) {
	chained := AndThen(Ok(2), func(v int) Result[string] {
		if v > 0 {
			return Ok("positiv")
		}
		return Err[string](apperr.Validation("negativ"))
	})
	require.True(t, chained.IsOk())
	assert.Equal(t, "positiv", chained.Value())

	shortCircuit := AndThen(Err[int](apperr.Timeout("")), func(v int) Result[string] {
		t.Fatal("must not run on failure")
		return Ok("")
	})
	assert.Equal(t, apperr.CodeTimeout, shortCircuit.Err().Code)
}

func TestAll(t *testing.T) {
	collected := All(Ok(1), Ok(2), Ok(3))
	require.True(t, collected.IsOk())
	assert.Equal(t, []int{1, 2, 3}, collected.Value())

	failed := All(Ok(1), Err[int](apperr.NotFound("")), Ok(3))
	assert.False(t, failed.IsOk())
	assert.Equal(t, apperr.CodeNotFound, failed.Err().Code)
}

func TestWithWarnings(t *testing.T) {
	res := OkWith("entity", []string{"billedet kunne ikke uploades"})
	require.True(t, res.IsOk())
	assert.Equal(t, "entity", res.Value())
	assert.Equal(t, []string{"billedet kunne ikke uploades"}, res.Warnings())

	clean := OkWith("entity", nil)
	assert.Empty(t, clean.Warnings())

	failure := ErrWith[string](apperr.Internal(""))
	assert.False(t, failure.IsOk())
	assert.Empty(t, failure.Warnings())
}
