package pyobject

import "testing"

func TestIteratorProtocolExhausts(t *testing.T) {
	l := NewList([]*Object{NewIntFromInt64(1), NewIntFromInt64(2)})
	it, err := Iter(l)
	if err != nil {
		t.Fatalf("Iter error: %v", err)
	}
	var got []int64
	for {
		v, err := Next(it)
		if err == ErrStopIteration {
			break
		}
		if err != nil {
			t.Fatalf("Next error: %v", err)
		}
		bi, _ := Int(v)
		got = append(got, bi.Int64())
	}
	if len(got) != 2 || got[0] != 1 || got[1] != 2 {
		t.Errorf("iterated values = %v, want [1 2]", got)
	}
}

func TestIteratorNotRestartable(t *testing.T) {
	l := NewList([]*Object{NewIntFromInt64(1)})
	it, _ := Iter(l)
	Next(it)
	if _, err := Next(it); err != ErrStopIteration {
		t.Fatalf("second Next = %v, want ErrStopIteration", err)
	}
	if _, err := Next(it); err != ErrStopIteration {
		t.Fatalf("Next after exhaustion should keep returning ErrStopIteration, got %v", err)
	}
}

func TestIteratorSnapshotsAtCreation(t *testing.T) {
	l := NewList([]*Object{NewIntFromInt64(1)})
	it, _ := Iter(l)
	Append(l, NewIntFromInt64(2))
	Next(it)
	if _, err := Next(it); err != ErrStopIteration {
		t.Fatal("iterator should not observe elements appended after creation")
	}
}
