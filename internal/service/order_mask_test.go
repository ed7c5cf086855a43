package service

import (
	"testing"
	"time"
)

func TestMaskOrder(t *testing.T) {
	createdAt := time.Date(2024, 5, 1, 10, 30, 0, 0, time.UTC)
	mask := MaskOrder(42, createdAt)
	if mask != "ORD-2024-05-01#00000042" {
		t.Fatalf("mask want ORD-2024-05-01#00000042 got %s", mask)
	}
}

func TestTryExtractIDFromMask(t *testing.T) {
	cases := []struct {
		term string
		want uint
		ok   bool
	}{
		{"ORD-2024-05-01#00000042", 42, true},
		{"#00000042", 42, true},
		{"00000042", 42, true},
		{"42", 42, true},
		{"  42  ", 42, true},
		{"ORD-2024-05-01#00000000", 0, false},
		{"", 0, false},
		{"no-es-una-orden", 0, false},
		{"ORD-2024-05-01#", 0, false},
	}
	for _, tc := range cases {
		got, ok := TryExtractIDFromMask(tc.term)
		if ok != tc.ok || got != tc.want {
			t.Fatalf("term %q: want (%d,%v) got (%d,%v)", tc.term, tc.want, tc.ok, got, ok)
		}
	}
}
