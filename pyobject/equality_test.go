package pyobject

import "testing"

func TestEqualCrossType(t *testing.T) {
	if !Equal(NewIntFromInt64(1), NewFloat(1.0)) {
		t.Error("1 should equal 1.0")
	}
	if !Equal(NewIntFromInt64(1), NewBool(true)) {
		t.Error("1 should equal True")
	}
	if Equal(NewIntFromInt64(0), NewBool(false)) != true {
		t.Error("0 should equal False")
	}
	if Equal(NewStr("a"), NewBytes([]byte("a"))) {
		t.Error("str and bytes with the same content must not be equal")
	}
}

func TestHashConsistentWithEqual(t *testing.T) {
	a, b := NewIntFromInt64(1), NewFloat(1.0)
	if !Equal(a, b) {
		t.Fatal("precondition: 1 == 1.0")
	}
	if Hash(a) != Hash(b) {
		t.Errorf("Hash(1) = %d, Hash(1.0) = %d, want equal", Hash(a), Hash(b))
	}
}

func TestSequenceEquality(t *testing.T) {
	a := NewTuple([]*Object{NewIntFromInt64(1), NewIntFromInt64(2)})
	b := NewTuple([]*Object{NewIntFromInt64(1), NewFloat(2.0)})
	if !Equal(a, b) {
		t.Error("tuples should be element-wise equal across numeric types")
	}
}
