package test

import (
	"errors"
	"fmt"
	"runtime"
	"strings"
	"testing"

	"github.com/ava12/nabu"
)

type recorder struct {
	testing.TB
	helpers int
	message string
}

func (r *recorder) Helper() {
	r.helpers++
}

// Fatalf records the message and stops the calling goroutine like testing.T does.
func (r *recorder) Fatalf(format string, params ...any) {
	r.message = fmt.Sprintf(format, params...)
	runtime.Goexit()
}

func record(f func(t testing.TB)) *recorder {
	r := &recorder{}
	done := make(chan struct{})
	go func() {
		defer close(done)
		f(r)
	}()
	<-done
	return r
}

func TestExpectErrorCode(t *testing.T) {
	inner := nabu.FormatError(42, "inner")
	samples := []struct {
		name string
		e    error
		fail string
	}{
		{"direct", inner, ""},
		{"wrapped by fmt", fmt.Errorf("context: %w", inner), ""},
		{"wrapped by nabu", nabu.FormatError(7, "outer").Wrap(inner), ""},
		{"joined", errors.Join(errors.New("x"), inner), ""},
		{"other code", nabu.FormatError(7, "outer"), "got code 7"},
		{"plain", errors.New("plain"), "got plain"},
		{"nil", nil, "got <nil>"},
	}

	for _, s := range samples {
		r := record(func(t testing.TB) { ExpectErrorCode(t, 42, s.e) })
		if s.fail == "" {
			Assert(t, r.message == "", "%s: unexpected failure %q", s.name, r.message)
		} else {
			Assert(t, strings.Contains(r.message, s.fail), "%s: expecting %q in %q", s.name, s.fail, r.message)
		}
		Assert(t, r.helpers > 0, "%s: helper not marked", s.name)
	}
}

func TestExpectString(t *testing.T) {
	r := record(func(t testing.TB) { ExpectString(t, "a", "b") })
	ExpectString(t, `expecting "a", got "b"`, r.message)

	r = record(func(t testing.TB) { ExpectInt(t, 1, 2) })
	ExpectString(t, "expecting 1, got 2", r.message)

	r = record(func(t testing.TB) { ExpectBool(t, true, true) })
	ExpectString(t, "", r.message)
}
