package pyobject

import "testing"

func TestDictGetSetCrossTypeKey(t *testing.T) {
	d := NewDict()
	if err := SetItem(d, NewIntFromInt64(1), NewStr("one")); err != nil {
		t.Fatalf("SetItem error: %v", err)
	}
	v, err := GetItem(d, NewFloat(1.0))
	if err != nil {
		t.Fatalf("GetItem(1.0) error: %v, want hit via cross-type key equality", err)
	}
	if Str(v) != "one" {
		t.Errorf("GetItem(1.0) = %v, want \"one\"", Str(v))
	}
}

func TestDictMissingKeyRaisesKeyError(t *testing.T) {
	d := NewDict()
	_, err := GetItem(d, NewStr("missing"))
	pe, ok := err.(*Error)
	if !ok || pe.Kind != EKey {
		t.Fatalf("GetItem on missing key = %v, want *Error{Kind: EKey}", err)
	}
}

func TestDictLastWriteWins(t *testing.T) {
	d := NewDict()
	SetItem(d, NewIntFromInt64(1), NewStr("first"))
	SetItem(d, NewFloat(1.0), NewStr("second"))
	n, _ := Len(d)
	if bi, _ := Int(n); bi.Int64() != 1 {
		t.Fatalf("dict should have 1 entry after overwriting an equal key, has %v", bi)
	}
	v, _ := GetItem(d, NewIntFromInt64(1))
	if Str(v) != "second" {
		t.Errorf("expected last write to win, got %v", Str(v))
	}
}

func TestListIndexingNegative(t *testing.T) {
	l := NewList([]*Object{NewIntFromInt64(1), NewIntFromInt64(2), NewIntFromInt64(3)})
	v, err := GetItem(l, NewIntFromInt64(-1))
	if err != nil {
		t.Fatalf("GetItem(-1) error: %v", err)
	}
	bi, _ := Int(v)
	if bi.Int64() != 3 {
		t.Errorf("l[-1] = %v, want 3", bi)
	}
}

func TestListInteriorMutability(t *testing.T) {
	l := NewList([]*Object{NewIntFromInt64(1)})
	alias := l
	if err := Append(alias, NewIntFromInt64(2)); err != nil {
		t.Fatalf("Append error: %v", err)
	}
	n, _ := Len(l)
	bi, _ := Int(n)
	if bi.Int64() != 2 {
		t.Errorf("mutation through alias should be visible via l, len = %v", bi)
	}
}

func TestListOutOfRangeIsIndexError(t *testing.T) {
	l := NewList([]*Object{NewIntFromInt64(1)})
	_, err := GetItem(l, NewIntFromInt64(5))
	pe, ok := err.(*Error)
	if !ok || pe.Kind != EIndex {
		t.Fatalf("GetItem out of range = %v, want *Error{Kind: EIndex}", err)
	}
}
