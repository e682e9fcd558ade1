package hooks_test

import (
	"testing"

	"github.com/local-avatar-api/internal/hooks"
	"github.com/rs/zerolog"
)

func TestFilter_AppliesInRegistrationOrder(t *testing.T) {
	f := hooks.NewFilter[string, int]("test", zerolog.Nop())
	f.Register(func(v string, n int) string { return v + "a" })
	f.Register(func(v string, n int) string { return v + "b" })
	f.Register(nil)

	if got := f.Apply("x", 0); got != "xab" {
		t.Errorf("Expected xab, got %q", got)
	}
	if f.Len() != 2 {
		t.Errorf("Expected 2 interceptors, got %d", f.Len())
	}
}

func TestFilter_EmptyChainReturnsValue(t *testing.T) {
	f := hooks.NewFilter[int, struct{}]("empty", zerolog.Nop())
	if got := f.Apply(17, struct{}{}); got != 17 {
		t.Errorf("Expected 17, got %d", got)
	}
}

func TestFilter_ApplyUntilStopsEarly(t *testing.T) {
	f := hooks.NewFilter[int, struct{}]("until", zerolog.Nop())
	calls := 0
	for i := 0; i < 3; i++ {
		f.Register(func(v int, _ struct{}) int {
			calls++
			return v + 1
		})
	}

	got := f.ApplyUntil(0, struct{}{}, func(v int) bool { return v >= 2 })
	if got != 2 {
		t.Errorf("Expected 2, got %d", got)
	}
	if calls != 2 {
		t.Errorf("Expected 2 calls, got %d", calls)
	}
}

func TestFilter_RecoversPanic(t *testing.T) {
	f := hooks.NewFilter[string, struct{}]("panic", zerolog.Nop())
	f.Register(func(v string, _ struct{}) string { return v + "1" })
	f.Register(func(v string, _ struct{}) string { panic("boom") })
	f.Register(func(v string, _ struct{}) string { return v + "3" })

	if got := f.Apply("", struct{}{}); got != "13" {
		t.Errorf("Expected 13, got %q", got)
	}
}

func TestBypass_FirstSuppliedWins(t *testing.T) {
	b := hooks.NewBypass[string, int]("bypass", zerolog.Nop())
	later := false
	b.Register(func(n int) (string, bool) { return "", false })
	b.Register(func(n int) (string, bool) { return "first", true })
	b.Register(func(n int) (string, bool) {
		later = true
		return "second", true
	})

	got, ok := b.Invoke(1)
	if !ok || got != "first" {
		t.Errorf("Expected (first, true), got (%q, %v)", got, ok)
	}
	if later {
		t.Error("Interceptor after the winner should not run")
	}
}

func TestBypass_NoneSupplied(t *testing.T) {
	b := hooks.NewBypass[string, int]("bypass", zerolog.Nop())
	if _, ok := b.Invoke(0); ok {
		t.Error("Empty chain should not supply a value")
	}

	b.Register(func(n int) (string, bool) { panic("boom") })
	if _, ok := b.Invoke(0); ok {
		t.Error("Panicking interceptor should not supply a value")
	}
}

func TestBypass_RecoversPanic(t *testing.T) {
	b := hooks.NewBypass[string, int]("panic", zerolog.Nop())
	b.Register(func(n int) (string, bool) { panic("boom") })
	b.Register(func(n int) (string, bool) { return "second", true })

	got, ok := b.Invoke(0)
	if !ok || got != "second" {
		t.Errorf("Expected the next interceptor to supply second, got %q (%v)", got, ok)
	}
}
