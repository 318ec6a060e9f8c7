package pyobject

import "testing"

func TestStringIndexIsUnicodeScalar(t *testing.T) {
	s := NewStr("café\U0001F600")
	runes := []rune("café\U0001F600")
	for i, want := range runes {
		got, err := GetItem(s, NewIntFromInt64(int64(i)))
		if err != nil {
			t.Fatalf("GetItem(%d) error: %v", i, err)
		}
		if Str(got) != string(want) {
			t.Errorf("s[%d] = %q, want %q", i, Str(got), string(want))
		}
	}
}

func TestStringLenCountsRunesNotBytes(t *testing.T) {
	s := NewStr("café")
	n, err := Len(s)
	if err != nil {
		t.Fatalf("Len error: %v", err)
	}
	bi, _ := Int(n)
	if bi.Int64() != 4 {
		t.Errorf("len(\"caf\\u00e9\") = %v, want 4 runes", bi)
	}
}

func TestBytesIndexingIsByteWise(t *testing.T) {
	b := NewBytes([]byte{0x41, 0x42, 0x43})
	v, err := GetItem(b, NewIntFromInt64(1))
	if err != nil {
		t.Fatalf("GetItem error: %v", err)
	}
	if string(v.payload.([]byte)) != "B" {
		t.Errorf("b[1] = %q, want \"B\"", v.payload.([]byte))
	}
}

func TestStrBytesNotConcatenable(t *testing.T) {
	if _, err := StringConcat(NewStr("a"), NewBytes([]byte("b"))); err == nil {
		t.Fatal("expected TypeError concatenating str and bytes")
	}
}

func TestStringRepeatNegativeIsEmpty(t *testing.T) {
	r, err := Repeat(NewStr("ab"), NewIntFromInt64(-1))
	if err != nil {
		t.Fatalf("Repeat error: %v", err)
	}
	if !Is(r, emptyStr) {
		t.Error("negative string repeat should yield the empty string singleton")
	}
}
