package envutil

import (
	"testing"
	"time"
)

func TestIntFallsBackOnGarbage(t *testing.T) {
	t.Setenv("CART_TEST_INT", "abc")
	if got := Int("CART_TEST_INT", 7, nil); got != 7 {
		t.Fatalf("Int: want=7 got=%d", got)
	}
	t.Setenv("CART_TEST_INT", " 42 ")
	if got := Int("CART_TEST_INT", 7, nil); got != 42 {
		t.Fatalf("Int: want=42 got=%d", got)
	}
}

func TestBool(t *testing.T) {
	t.Setenv("CART_TEST_BOOL", "on")
	if !Bool("CART_TEST_BOOL", false, nil) {
		t.Fatalf("Bool: want=true")
	}
	t.Setenv("CART_TEST_BOOL", "maybe")
	if Bool("CART_TEST_BOOL", false, nil) {
		t.Fatalf("Bool: unparsable should fall back to default")
	}
}

func TestDuration(t *testing.T) {
	t.Setenv("CART_TEST_DUR", "90")
	if got := Duration("CART_TEST_DUR", time.Second, nil); got != 90*time.Second {
		t.Fatalf("Duration seconds: want=90s got=%s", got)
	}
	t.Setenv("CART_TEST_DUR", "2m")
	if got := Duration("CART_TEST_DUR", time.Second, nil); got != 2*time.Minute {
		t.Fatalf("Duration string: want=2m got=%s", got)
	}
}

func TestStringBlankUsesDefault(t *testing.T) {
	t.Setenv("CART_TEST_STR", "   ")
	if got := String("CART_TEST_STR", "USD", nil); got != "USD" {
		t.Fatalf("String: want=USD got=%q", got)
	}
}

func TestCSV(t *testing.T) {
	t.Setenv("CART_TEST_CSV", "a, ,b,")
	got := CSV("CART_TEST_CSV", nil, nil)
	if len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Fatalf("CSV: got=%v", got)
	}
}
