package core

import "testing"

func TestParseAmount(t *testing.T) {
	cases := []struct {
		in  string
		out int64
		ok  bool
	}{
		{"1", 100, true},
		{"1.0", 100, true},
		{"1.23", 123, true},
		{"1,23", 123, true},
		{"0.01", 1, true},
		{" 2.50 ", 250, true},
		{"10000000", 10_000_000_00, true},
		{"15.00", 1500, true},
		{"1.005", 0, false}, // more than 2 decimal places
		{"10000000.01", 0, false},
		{"-5", 0, false},
		{"-1", 0, false},
		{"0", 0, false},
		{"abc", 0, false},
		{"1.2.3", 0, false},
		{"", 0, false},
	}
	for _, tc := range cases {
		got, err := ParseAmount(tc.in)
		if tc.ok {
			if err != nil || got.Cents != tc.out {
				t.Fatalf("%q expected %d, got %d (err=%v)", tc.in, tc.out, got.Cents, err)
			}
		} else {
			if err == nil {
				t.Fatalf("%q expected error", tc.in)
			}
		}
	}
}

func TestMoneyString(t *testing.T) {
	if got := (Money{Cents: 123456}).String(); got != "1234.56" {
		t.Fatalf("expected 1234.56, got %s", got)
	}
	if got := (Money{}).String(); got != "0.00" {
		t.Fatalf("expected 0.00, got %s", got)
	}
}

func TestFormatterFormat(t *testing.T) {
	f := Formatter{Symbol: "₦"}
	cases := []struct {
		cents int64
		out   string
	}{
		{0, "₦0.00"},
		{500, "₦5.00"},
		{123456, "₦1,234.56"},
		{123456789, "₦1,234,567.89"},
		{100000000000, "₦1,000,000,000.00"},
	}
	for _, tc := range cases {
		if got := f.Format(Money{Cents: tc.cents}); got != tc.out {
			t.Fatalf("%d expected %s, got %s", tc.cents, tc.out, got)
		}
	}
}
