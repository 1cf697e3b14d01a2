package label

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		out  string
	}{
		{name: "identity", in: "Data Science", out: "Data Science"},
		{name: "case kept", in: "ENG", out: "ENG"},
		{name: "trim and collapse", in: "  Senior \t  Engineer\n", out: "Senior Engineer"},
		{name: "invalid utf8", in: string([]byte{0xff, 'E', 'n', 'g', 0x80}), out: "Eng"},
		{name: "zero width", in: "Re\u200bmote", out: "Remote"},
		{name: "bom", in: "\ufeffHybrid", out: "Hybrid"},
		{name: "fullwidth", in: "\uff29\uff34", out: "IT"},
		{name: "nfkc ligature", in: "O\ufb03ce", out: "Office"},
		{name: "nbsp", in: "On\u00a0Site", out: "On Site"},
		{name: "controls", in: "Sa\x00les\x7f", out: "Sales"},
		{name: "only space", in: " \t ", out: ""},
		{name: "empty", in: "", out: ""},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := Normalize(tc.in); got != tc.out {
				t.Fatalf("Normalize(%q) = %q, want %q", tc.in, got, tc.out)
			}
		})
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	for _, in := range []string{"\uff26\uff35\uff2c\uff2c  width", "a\u200db", " x "} {
		once := Normalize(in)
		if twice := Normalize(once); twice != once {
			t.Fatalf("not idempotent for %q: %q then %q", in, once, twice)
		}
	}
}

func TestIsAll(t *testing.T) {
	for in, want := range map[string]bool{"": true, "All": true, " all ": true, "ALL": true, "Eng": false, "Allied": false} {
		if got := IsAll(in); got != want {
			t.Errorf("IsAll(%q)=%v want %v", in, got, want)
		}
	}
}
