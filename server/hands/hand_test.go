package hands

import (
	"errors"
	"testing"
)

func TestParseCoversGridOnce(t *testing.T) {
	codes := All()
	if len(codes) != 169 {
		t.Fatalf("expected 169 codes, got %d", len(codes))
	}
	seen := map[[2]int]string{}
	for _, code := range codes {
		h, err := Parse(code)
		if err != nil {
			t.Fatalf("Parse(%q): %v", code, err)
		}
		cell := [2]int{h.X.Index(), h.Y.Index()}
		if prev, ok := seen[cell]; ok {
			t.Fatalf("%q collides with %q at %v", code, prev, cell)
		}
		seen[cell] = code
	}
	for x := 0; x < 13; x++ {
		for y := 0; y < 13; y++ {
			if _, ok := seen[[2]int{x, y}]; !ok {
				t.Fatalf("cell (%d,%d) not covered", x, y)
			}
		}
	}
}

func TestSuitedAndOffsuitMirror(t *testing.T) {
	for i, hi := range Ranks {
		for _, lo := range Ranks[i+1:] {
			base := string([]byte{byte(hi), byte(lo)})
			s, err := Parse(base + "s")
			if err != nil {
				t.Fatal(err)
			}
			o, err := Parse(base + "o")
			if err != nil {
				t.Fatal(err)
			}
			if s.X != o.Y || s.Y != o.X {
				t.Fatalf("%s: suited (%s,%s) offsuit (%s,%s) not mirrored", base, s.X, s.Y, o.X, o.Y)
			}
			if !s.Suited || o.Suited {
				t.Fatalf("%s: suitedness flags wrong", base)
			}
		}
	}
}

func TestParsePairs(t *testing.T) {
	for _, r := range Ranks {
		code := string([]byte{byte(r), byte(r)})
		h, err := Parse(code)
		if err != nil {
			t.Fatalf("Parse(%q): %v", code, err)
		}
		if h.X != r || h.Y != r || h.Suited || !h.Pair() {
			t.Fatalf("Parse(%q) = %+v", code, h)
		}
	}
}

func TestParseAKPlacement(t *testing.T) {
	s, _ := Parse("AKs")
	if s.X != 'A' || s.Y != 'K' {
		t.Fatalf("AKs placed at (%s,%s)", s.X, s.Y)
	}
	o, _ := Parse("AKo")
	if o.X != 'K' || o.Y != 'A' {
		t.Fatalf("AKo placed at (%s,%s)", o.X, o.Y)
	}
	first, second := o.Ranks()
	if first != 'A' || second != 'K' {
		t.Fatalf("AKo code order lost: %s%s", first, second)
	}
}

func TestParseErrors(t *testing.T) {
	cases := []struct {
		code string
		want error
	}{
		{"", ErrMalformedHandCode},
		{"A", ErrMalformedHandCode},
		{"AKsx", ErrMalformedHandCode},
		{"AK", ErrMalformedHandCode},
		{"AKx", ErrMalformedHandCode},
		{"AAs", ErrMalformedHandCode},
		{"AAo", ErrMalformedHandCode},
		{"A1s", ErrUnknownRank},
		{"XX", ErrUnknownRank},
		{"ak", ErrUnknownRank},
		{"1Ko", ErrUnknownRank},
	}
	for _, tc := range cases {
		_, err := Parse(tc.code)
		if !errors.Is(err, tc.want) {
			t.Fatalf("Parse(%q) error = %v, want %v", tc.code, err, tc.want)
		}
	}
}

func TestRankText(t *testing.T) {
	b, err := Rank('T').MarshalText()
	if err != nil || string(b) != "T" {
		t.Fatalf("MarshalText = %q, %v", b, err)
	}
	var r Rank
	if err := r.UnmarshalText([]byte("9")); err != nil || r != '9' {
		t.Fatalf("UnmarshalText = %v, %v", r, err)
	}
	if err := r.UnmarshalText([]byte("Z")); !errors.Is(err, ErrUnknownRank) {
		t.Fatalf("expected ErrUnknownRank, got %v", err)
	}
	if Rank('A').Value() != 14 || Rank('2').Value() != 2 {
		t.Fatalf("unexpected rank values")
	}
}

func TestCodeAtRoundTrips(t *testing.T) {
	for y := range Ranks {
		for x := range Ranks {
			code := CodeAt(x, y)
			h, err := Parse(code)
			if err != nil {
				t.Fatalf("CodeAt(%d,%d) = %q: %v", x, y, code, err)
			}
			if h.X.Index() != x || h.Y.Index() != y {
				t.Fatalf("%q parsed to (%d,%d), want (%d,%d)", code, h.X.Index(), h.Y.Index(), x, y)
			}
		}
	}
	if got := CodeAt(1, 0); got != "AKo" {
		t.Fatalf("CodeAt(1,0) = %q", got)
	}
}
