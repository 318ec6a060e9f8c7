package pyobject

import "testing"

func TestTypeOfSameKindCompareEqual(t *testing.T) {
	a := TypeOf(NewIntFromInt64(1))
	b := TypeOf(NewIntFromInt64(2))
	if a.Kind != KindType {
		t.Fatalf("TypeOf(int) Kind = %v, want KindType", a.Kind)
	}
	if !Equal(a, b) {
		t.Errorf("type(1) and type(2) should compare Equal")
	}
	if Repr(a) != "<class 'int'>" {
		t.Errorf("Repr(type(1)) = %q, want \"<class 'int'>\"", Repr(a))
	}
}

func TestTypeOfTypeObjectIsType(t *testing.T) {
	meta := TypeOf(TypeOf(NewIntFromInt64(1)))
	if meta.Kind != KindType {
		t.Fatalf("type(type(1)) Kind = %v, want KindType", meta.Kind)
	}
	if Repr(meta) != "<class 'type'>" {
		t.Errorf("Repr(type(type(1))) = %q, want \"<class 'type'>\"", Repr(meta))
	}
}

func TestNewObjectIsKindObjectAndNotEqualToAnother(t *testing.T) {
	a := NewObject()
	b := NewObject()
	if a.Kind != KindObject {
		t.Fatalf("NewObject() Kind = %v, want KindObject", a.Kind)
	}
	if Equal(a, b) {
		t.Errorf("two distinct object() instances should not compare Equal")
	}
	if !Equal(a, a) {
		t.Errorf("an object() instance should compare Equal to itself")
	}
}
