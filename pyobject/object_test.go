package pyobject

import (
	"math/big"
	"testing"
)

func TestSmallIntCacheIdentity(t *testing.T) {
	a := NewInt(big.NewInt(7))
	b := NewInt(big.NewInt(7))
	if !Is(a, b) {
		t.Fatalf("NewInt(7) twice should return the same cached handle")
	}
	c := NewInt(big.NewInt(100000))
	d := NewInt(big.NewInt(100000))
	if Is(c, d) {
		t.Fatalf("large ints should not be cached")
	}
	if !Equal(c, d) {
		t.Fatalf("large equal ints should still compare Equal")
	}
}

func TestEmptySingletons(t *testing.T) {
	if !Is(NewTuple(nil), NewTuple(nil)) {
		t.Fatalf("empty tuple should be a singleton")
	}
	if !Is(NewStr(""), NewStr("")) {
		t.Fatalf("empty string should be a singleton")
	}
}

func TestSelfReference(t *testing.T) {
	o := NewInt(big.NewInt(9999))
	if o.Self() != o {
		t.Fatalf("Self() should return the same handle")
	}
}

func TestTruthy(t *testing.T) {
	cases := []struct {
		o    *Object
		want bool
	}{
		{NewIntFromInt64(0), false},
		{NewIntFromInt64(1), true},
		{NewStr(""), false},
		{NewStr("x"), true},
		{NewList(nil), false},
		{NewList([]*Object{NewIntFromInt64(1)}), true},
		{None(), false},
		{NewBool(false), false},
	}
	for _, c := range cases {
		if got := Truthy(c.o); got != c.want {
			t.Errorf("Truthy(%v) = %v, want %v", Repr(c.o), got, c.want)
		}
	}
}
