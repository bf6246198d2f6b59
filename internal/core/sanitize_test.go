package core

import "testing"

func TestSanitize(t *testing.T) {
	cases := []struct {
		name string
		in   string
		out  string
	}{
		{"plain", "Lunch at work", "Lunch at work"},
		{"trims", "  Lunch  ", "Lunch"},
		{"strips tags", "<script>x</script>", "x"},
		{"strips nested tags", "a<b><i>c</i></b>d", "abcd"},
		{"tags only", "<script></script>", ""},
		{"strips sql keywords", "DROP the ball", "the ball"},
		{"sql keywords case-insensitive", "select union insert", ""},
		{"keeps sql substrings inside words", "dropdown selection", "dropdown selection"},
		{"escapes ampersand", "fish & chips", "fish &amp; chips"},
		{"escapes quotes", `say "hi" y'all`, "say &quot;hi&quot; y&#x27;all"},
		{"stray angle bracket escaped", "1 < 2", "1 &lt; 2"},
		{"empty", "", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Sanitize(tc.in); got != tc.out {
				t.Fatalf("Sanitize(%q) = %q, want %q", tc.in, got, tc.out)
			}
		})
	}
}

// Stripping and trimming are idempotent; entity escaping is not. The
// pipeline therefore sanitizes each field exactly once, on raw input, and
// this test pins the double-escape behavior so any second application is
// caught as the defect it is.
func TestSanitizeAppliedTwiceDoubleEscapes(t *testing.T) {
	once := Sanitize("fish & chips")
	if once != "fish &amp; chips" {
		t.Fatalf("unexpected single-pass result %q", once)
	}
	twice := Sanitize(once)
	if twice == once {
		t.Fatal("escaping is not idempotent; a matching result means the escaper silently skipped entities")
	}
	if twice != "fish &amp;amp; chips" {
		t.Fatalf("unexpected double-pass result %q", twice)
	}
}

// Inputs without escapable characters are fully idempotent.
func TestSanitizeIdempotentWithoutEntities(t *testing.T) {
	for _, in := range []string{"Lunch", "  padded  ", "<b>bold</b>", "DROP tables"} {
		once := Sanitize(in)
		if twice := Sanitize(once); twice != once {
			t.Fatalf("Sanitize(%q): second pass %q != first pass %q", in, twice, once)
		}
	}
}
