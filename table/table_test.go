package table

import "testing"

func TestParseRoundTrip(t *testing.T) {
	cases := []struct {
		lit string
		v   int
	}{
		{"1000", 2},
		{"0110", 2},
		{"0001", 2},
		{"00000001", 3},
		{"1111111x", 3},
		{"0.1.1.x.0.0.1.0", 3},
	}
	for _, c := range cases {
		tbl, v, err := Parse(c.lit)
		if err != nil {
			t.Fatalf("Parse(%q): %v", c.lit, err)
		}
		if v != c.v {
			t.Errorf("Parse(%q) variables = %d, want %d", c.lit, v, c.v)
		}
		got := tbl.String(v)
		tbl2, _, err := Parse(got)
		if err != nil {
			t.Fatalf("re-parse of rendered %q: %v", got, err)
		}
		if tbl2 != tbl {
			t.Errorf("round-trip mismatch for %q: got %+v, want %+v", c.lit, tbl2, tbl)
		}
	}
}

func TestParseRejectsBadLength(t *testing.T) {
	if _, _, err := Parse("101"); err == nil {
		t.Errorf("expected error for non-power-of-two length")
	}
	long := make([]byte, 128)
	for i := range long {
		long[i] = '0'
	}
	if _, _, err := Parse(string(long)); err == nil {
		t.Errorf("expected error for table longer than 64 rows")
	}
}

func TestParseRejectsBadChars(t *testing.T) {
	if _, _, err := Parse("10y1"); err == nil {
		t.Errorf("expected error for invalid character")
	}
}

func TestRelevancyIgnoresDontCare(t *testing.T) {
	// f(a,b) = a, with row 3 (a=1,b=1) marked don't care: still relevant on a,
	// never relevant on b.
	tbl := Table{F: 0b0010, T: 0b1010}
	rel := Relevancy(tbl, 2)
	if rel&1 == 0 {
		t.Errorf("expected variable 0 (a) to be relevant")
	}
	if rel&2 != 0 {
		t.Errorf("expected variable 1 (b) to be irrelevant")
	}
}

func TestRelevancyAllDontCareIsEmpty(t *testing.T) {
	tbl := Table{F: 0, T: 0b1111}
	if Relevancy(tbl, 2) != 0 {
		t.Errorf("all-don't-care table should have no relevant variables")
	}
}
