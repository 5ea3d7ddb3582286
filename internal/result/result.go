// Package result provides an explicit success/failure container used as the
// return type of every fallible service operation. Expected failure modes
// (validation, not-found, upstream errors) travel as data; panics and plain
// errors are reserved for genuinely unexpected conditions.
package result

import "github.com/mkrogh/boldklub/internal/apperr"

// Result holds either a value or an *apperr.Error, never both.
type Result[T any] struct {
	value T
	err   *apperr.Error
	ok    bool
}

// Ok wraps a success value.
func Ok[T any](value T) Result[T] {
	return Result[T]{value: value, ok: true}
}

// Err wraps a failure.
func Err[T any](err *apperr.Error) Result[T] {
	return Result[T]{err: err}
}

// FromTry adapts a conventional (T, error) call into a Result, classifying
// the error via apperr.From. Use at the boundary to throwing code.
func FromTry[T any](fn func() (T, error)) Result[T] {
	value, err := fn()
	if err != nil {
		return Err[T](apperr.From(err))
	}
	return Ok(value)
}

func (r Result[T]) IsOk() bool { return r.ok }

// Value returns the success value; only meaningful after IsOk.
func (r Result[T]) Value() T { return r.value }

// Err returns the failure, or nil on success.
func (r Result[T]) Err() *apperr.Error { return r.err }

// Unwrap returns both branches for callers that prefer the (T, error) shape.
func (r Result[T]) Unwrap() (T, *apperr.Error) { return r.value, r.err }

// OrElse returns the success value or fallback on failure.
func (r Result[T]) OrElse(fallback T) T {
	if r.ok {
		return r.value
	}
	return fallback
}

// Map transforms the success value, passing failures through unchanged.
func Map[T, U any](r Result[T], fn func(T) U) Result[U] {
	if !r.ok {
		return Err[U](r.err)
	}
	return Ok(fn(r.value))
}

// MapErr transforms the failure, passing successes through unchanged.
func MapErr[T any](r Result[T], fn func(*apperr.Error) *apperr.Error) Result[T] {
	if r.ok {
		return r
	}
	return Err[T](fn(r.err))
}

// AndThen chains a result-returning operation onto a success.
func AndThen[T, U any](r Result[T], fn func(T) Result[U]) Result[U] {
	if !r.ok {
		return Err[U](r.err)
	}
	return fn(r.value)
}

// All collects the values of rs, short-circuiting on the first failure.
func All[T any](rs ...Result[T]) Result[[]T] {
	values := make([]T, 0, len(rs))
	for _, r := range rs {
		if !r.ok {
			return Err[[]T](r.err)
		}
		values = append(values, r.value)
	}
	return Ok(values)
}

// WithWarnings is a Result whose success branch may carry non-fatal warnings,
// e.g. "entity saved but the photo upload failed".
type WithWarnings[T any] struct {
	Result[T]
	warnings []string
}

// OkWith wraps a success value together with zero or more warnings.
func OkWith[T any](value T, warnings []string) WithWarnings[T] {
	return WithWarnings[T]{Result: Ok(value), warnings: warnings}
}

// ErrWith wraps a failure; warnings are meaningless on the failure branch.
func ErrWith[T any](err *apperr.Error) WithWarnings[T] {
	return WithWarnings[T]{Result: Err[T](err)}
}

// Warnings returns the non-fatal caveats attached to a success, nil if none.
func (r WithWarnings[T]) Warnings() []string { return r.warnings }
