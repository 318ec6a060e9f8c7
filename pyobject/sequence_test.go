package pyobject

import "testing"

func TestTupleConcat(t *testing.T) {
	a := NewTuple([]*Object{NewIntFromInt64(1)})
	b := NewTuple([]*Object{NewIntFromInt64(2)})
	r, err := Concat(a, b)
	if err != nil {
		t.Fatalf("Concat error: %v", err)
	}
	n, _ := Len(r)
	bi, _ := Int(n)
	if bi.Int64() != 2 {
		t.Errorf("(1,)+(2,) length = %v, want 2", bi)
	}
}

func TestTupleRepeatNegativeIsEmpty(t *testing.T) {
	a := NewTuple([]*Object{NewIntFromInt64(1)})
	r, err := Repeat(a, NewIntFromInt64(-3))
	if err != nil {
		t.Fatalf("Repeat error: %v", err)
	}
	if !Is(r, emptyTuple) {
		t.Errorf("negative repeat should yield the empty tuple singleton")
	}
}

func TestListRepeat(t *testing.T) {
	a := NewList([]*Object{NewIntFromInt64(7)})
	r, err := Repeat(a, NewIntFromInt64(3))
	if err != nil {
		t.Fatalf("Repeat error: %v", err)
	}
	n, _ := Len(r)
	bi, _ := Int(n)
	if bi.Int64() != 3 {
		t.Errorf("[7]*3 length = %v, want 3", bi)
	}
}

func TestChainAddDispatchesByKind(t *testing.T) {
	r, err := Call("__add__", NewStr("foo"), NewStr("bar"))
	if err != nil {
		t.Fatalf("dispatch __add__ error: %v", err)
	}
	if Str(r) != "foobar" {
		t.Errorf("\"foo\"+\"bar\" = %q, want \"foobar\"", Str(r))
	}
	rn, err := Call("__add__", NewIntFromInt64(1), NewIntFromInt64(2))
	if err != nil {
		t.Fatalf("dispatch __add__ error: %v", err)
	}
	bi, _ := Int(rn)
	if bi.Int64() != 3 {
		t.Errorf("1+2 via dispatch = %v, want 3", bi)
	}
}

func TestAppendDispatchReturnsNoneNotNil(t *testing.T) {
	l := NewList([]*Object{NewIntFromInt64(1)})
	r, err := Call("append", l, NewIntFromInt64(2))
	if err != nil {
		t.Fatalf("dispatch append error: %v", err)
	}
	if r == nil {
		t.Fatal("append should return the None object, not a nil *Object")
	}
	if !Is(r, None()) {
		t.Errorf("append result = %v, want None", Repr(r))
	}
	n, _ := Len(l)
	bi, _ := Int(n)
	if bi.Int64() != 2 {
		t.Errorf("list length after append = %v, want 2", bi)
	}
}
