package billnum

import "testing"

func TestParseRoundTrip(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantID  string
		wantRef Ref
	}{
		{"house bill", "H.R. 2056", "hr2056", Ref{Type: "hr", Number: "2056"}},
		{"lowercase", "h.r. 2056", "hr2056", Ref{Type: "hr", Number: "2056"}},
		{"no space", "H.R.2056", "hr2056", Ref{Type: "hr", Number: "2056"}},
		{"senate bill", "S. 1522", "s1522", Ref{Type: "s", Number: "1522"}},
		{"house joint resolution", "H.J.Res. 45", "hjres45", Ref{Type: "hjres", Number: "45"}},
		{"senate joint resolution", "S.J.Res. 12", "sjres12", Ref{Type: "sjres", Number: "12"}},
		{"house concurrent", "H.Con.Res. 7", "hconres7", Ref{Type: "hconres", Number: "7"}},
		{"senate concurrent", "S.Con.Res. 3", "sconres3", Ref{Type: "sconres", Number: "3"}},
		{"embedded in text", "companion to S. 2686 (CRIMES Act)", "s2686", Ref{Type: "s", Number: "2686"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ref, ok := Parse(tt.input)
			if !ok {
				t.Fatalf("Parse(%q) failed, want %v", tt.input, tt.wantRef)
			}
			if ref != tt.wantRef {
				t.Errorf("Parse(%q) = %+v, want %+v", tt.input, ref, tt.wantRef)
			}
			if ref.ID() != tt.wantID {
				t.Errorf("ID() = %q, want %q", ref.ID(), tt.wantID)
			}
		})
	}
}

func TestParseMalformed(t *testing.T) {
	inputs := []string{
		"",
		"not a bill",
		"HR 2056",      // no periods
		"H.R.",         // no number
		"Amendment 12", // unknown prefix
		"hr5166-police",
	}

	for _, input := range inputs {
		if ref, ok := Parse(input); ok {
			t.Errorf("Parse(%q) = %+v, want no match", input, ref)
		}
	}
}

func TestDisplayInvertsParse(t *testing.T) {
	citations := []string{
		"H.R. 2056",
		"S. 1522",
		"H.J.Res. 45",
		"S.J.Res. 12",
		"H.Con.Res. 7",
		"S.Con.Res. 3",
	}

	for _, citation := range citations {
		ref, ok := Parse(citation)
		if !ok {
			t.Fatalf("Parse(%q) failed", citation)
		}
		if got := ref.Display(); got != citation {
			t.Errorf("Display() = %q, want %q", got, citation)
		}
	}
}

func TestNormalizationIsCanonical(t *testing.T) {
	variants := []string{"h.r. 2056", "H.R.2056", "H.R. 2056", "H.r.  2056"}
	for _, v := range variants {
		ref, ok := Parse(v)
		if !ok {
			t.Fatalf("Parse(%q) failed", v)
		}
		if ref.ID() != "hr2056" {
			t.Errorf("Parse(%q).ID() = %q, want hr2056", v, ref.ID())
		}
	}
}

func TestChamber(t *testing.T) {
	tests := []struct {
		billType string
		want     string
	}{
		{"hr", "house"},
		{"hjres", "house"},
		{"hconres", "house"},
		{"s", "senate"},
		{"sjres", "senate"},
		{"sconres", "senate"},
	}

	for _, tt := range tests {
		ref := Ref{Type: tt.billType, Number: "1"}
		if got := ref.Chamber(); got != tt.want {
			t.Errorf("Chamber(%s) = %q, want %q", tt.billType, got, tt.want)
		}
	}
}

func TestSlug(t *testing.T) {
	if got := Slug("hjres"); got != "house-joint-resolution" {
		t.Errorf("Slug(hjres) = %q", got)
	}
	if got := Slug("unknown"); got != "unknown" {
		t.Errorf("Slug(unknown) = %q, want passthrough", got)
	}
}
