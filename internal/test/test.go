// Package test contains assertion helpers for low-level package tests.
// Every helper stops the test on failure.
package test

import (
	"errors"
	"testing"

	"github.com/ava12/nabu"
)

func Assert(t testing.TB, cond bool, message string, params ...any) {
	t.Helper()
	if !cond {
		t.Fatalf(message, params...)
	}
}

func Expect(t testing.TB, cond bool, expected, got any) {
	t.Helper()
	if !cond {
		t.Fatalf("expecting %v, got %v", expected, got)
	}
}

func ExpectBool(t testing.TB, expected, got bool) {
	t.Helper()
	Expect(t, expected == got, expected, got)
}

func ExpectInt(t testing.TB, expected, got int) {
	t.Helper()
	Expect(t, expected == got, expected, got)
}

// ExpectErrorCode checks that e or any error it wraps is *nabu.Error with expected code.
func ExpectErrorCode(t testing.TB, expected int, e error) {
	t.Helper()
	if errors.Is(e, nabu.Sentinel(expected, "")) {
		return
	}

	var ne *nabu.Error
	if errors.As(e, &ne) {
		t.Fatalf("expecting error code %d, got code %d: %v", expected, ne.Code, e)
	}
	t.Fatalf("expecting error code %d, got %v", expected, e)
}

func ExpectString(t testing.TB, expected, got string) {
	t.Helper()
	if expected != got {
		t.Fatalf("expecting %q, got %q", expected, got)
	}
}

