package datagen

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestFakerReproducibility(t *testing.T) {
	f1 := NewFakerWithSeed(42)
	f2 := NewFakerWithSeed(42)

	for i := 0; i < 10; i++ {
		if a, b := f1.UUID(), f2.UUID(); a != b {
			t.Fatalf("same seed diverged: %s != %s", a, b)
		}
	}
}

func TestDecimal(t *testing.T) {
	f := NewFakerWithSeed(7)
	min := decimal.NewFromInt(1_000_000)
	max := decimal.NewFromInt(100_000_000)

	for i := 0; i < 100; i++ {
		d := f.Decimal(1_000_000, 100_000_000, 2)
		if d.LessThan(min) || d.GreaterThan(max) {
			t.Errorf("Decimal() = %s outside [%s, %s]", d, min, max)
		}
		if d.Exponent() < -2 {
			t.Errorf("Decimal() = %s has more than 2 decimal places", d)
		}
	}
}

func TestBookCode(t *testing.T) {
	f := NewFakerWithSeed(7)
	for i := 0; i < 20; i++ {
		code := f.BookCode()
		if len(code) != 7 {
			t.Fatalf("BookCode() = %q, want 7 characters", code)
		}
		for _, r := range code[:4] {
			if r < 'A' || r > 'Z' {
				t.Errorf("BookCode() = %q, want uppercase letter prefix", code)
			}
		}
		for _, r := range code[4:] {
			if r < '0' || r > '9' {
				t.Errorf("BookCode() = %q, want digit suffix", code)
			}
		}
	}
}

func TestChoose(t *testing.T) {
	f := NewFakerWithSeed(7)
	items := []string{"a", "b", "c"}
	valid := map[string]bool{"a": true, "b": true, "c": true}

	for i := 0; i < 50; i++ {
		if got := Choose(f, items); !valid[got] {
			t.Fatalf("Choose() = %q, not in input", got)
		}
	}

	if got := Choose(f, []string{}); got != "" {
		t.Errorf("Choose(empty) = %q, want zero value", got)
	}
}

func TestIntRange(t *testing.T) {
	f := NewFakerWithSeed(7)
	for i := 0; i < 100; i++ {
		n := f.Int(3, 9)
		if n < 3 || n > 9 {
			t.Fatalf("Int(3, 9) = %d", n)
		}
	}
}
