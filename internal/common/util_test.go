package common

import (
	"errors"
	"testing"
)

// ---------- WipeByteArray ----------

func TestWipeByteArray_ZerosBuffer(t *testing.T) {
	buf := []byte{1, 2, 3, 4, 5}
	WipeByteArray(buf)
	for i, v := range buf {
		if v != 0 {
			t.Fatalf("expected buf[%d]==0, got %d", i, v)
		}
	}
}

func TestWipeByteArray_NilSafe(t *testing.T) {
	WipeByteArray(nil)
}

// ---------- ParseBool / FormatBool ----------

func TestParseBool(t *testing.T) {
	tests := []struct {
		in   []byte
		want bool
	}{
		{[]byte("true"), true},
		{[]byte("false"), false},
		{[]byte("TRUE"), false},
		{[]byte(""), false},
		{nil, false},
	}
	for _, tc := range tests {
		if got := ParseBool(tc.in); got != tc.want {
			t.Fatalf("ParseBool(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestFormatBool_RoundTrip(t *testing.T) {
	for _, v := range []bool{true, false} {
		if got := ParseBool(FormatBool(v)); got != v {
			t.Fatalf("round trip of %v gave %v", v, got)
		}
	}
}

// ---------- errors ----------

func TestValidationErrorsWrapErrValidation(t *testing.T) {
	for _, err := range []error{ErrPasswordMismatch, ErrNoUser, ErrEmptyComment} {
		if !errors.Is(err, ErrValidation) {
			t.Fatalf("%v must match ErrValidation", err)
		}
	}
	if errors.Is(ErrForbidden, ErrValidation) {
		t.Fatalf("ErrForbidden must not be a validation error")
	}
}
