package note

import "testing"

func TestParse(t *testing.T) {
	tests := []struct {
		input   string
		want    Name
		wantErr bool
	}{
		{input: "C", want: Name{Letter: 0, Accidentals: 0}},
		{input: "F#", want: Name{Letter: 3, Accidentals: 1}},
		{input: "Ebb", want: Name{Letter: 2, Accidentals: -2}},
		{input: "B###", want: Name{Letter: 6, Accidentals: 3}},
		{input: "H", wantErr: true},
		{input: "c", wantErr: true},
		{input: "C#b", wantErr: true},
		{input: "", wantErr: true},
		{input: "Cb#", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := Parse(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("Parse(%q) expected error, got %v", tt.input, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("Parse(%q) unexpected error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("Parse(%q) = %+v, want %+v", tt.input, got, tt.want)
			}
		})
	}
}

func TestStringRoundTrip(t *testing.T) {
	for _, s := range []string{"C", "Db", "F#", "Gbb", "A##", "B"} {
		n, err := Parse(s)
		if err != nil {
			t.Fatalf("Parse(%q): %v", s, err)
		}
		if got := n.String(); got != s {
			t.Errorf("String() = %q, want %q", got, s)
		}
	}
}

func TestPitchClass(t *testing.T) {
	tests := []struct {
		input string
		want  int
	}{
		{"C", 0},
		{"B#", 0},
		{"Dbb", 0},
		{"F#", 6},
		{"Gb", 6},
		{"Cb", 11},
		{"A######", 3},
	}
	for _, tt := range tests {
		n := MustParse(tt.input)
		if got := n.PitchClass(); got != tt.want {
			t.Errorf("PitchClass(%s) = %d, want %d", tt.input, got, tt.want)
		}
	}
}

func TestSimplify(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"C", "C"},
		{"B#", "C"},
		{"E#", "F"},
		{"Fb", "E"},
		{"C##", "D"},
		{"Dbb", "C"},
		{"G###", "A#"},
		{"Abbb", "Gb"},
	}
	for _, tt := range tests {
		n := MustParse(tt.input)
		if got := n.Simplify().String(); got != tt.want {
			t.Errorf("Simplify(%s) = %s, want %s", tt.input, got, tt.want)
		}
	}
}

func TestBinomialPair(t *testing.T) {
	sharp, flat, err := MustParse("G#").BinomialPair()
	if err != nil {
		t.Fatalf("BinomialPair(G#): %v", err)
	}
	if sharp.String() != "G#" || flat.String() != "Ab" {
		t.Errorf("BinomialPair(G#) = %s, %s, want G#, Ab", sharp, flat)
	}

	sharp, flat, err = MustParse("Db").BinomialPair()
	if err != nil {
		t.Fatalf("BinomialPair(Db): %v", err)
	}
	if sharp.String() != "C#" || flat.String() != "Db" {
		t.Errorf("BinomialPair(Db) = %s, %s, want C#, Db", sharp, flat)
	}

	if _, _, err := MustParse("E").BinomialPair(); err == nil {
		t.Error("BinomialPair(E) expected error for a natural")
	}
}

func TestIsNatural(t *testing.T) {
	for name, want := range map[string]bool{
		"C": true, "B#": true, "Fb": true, "F#": false, "Bb": false,
	} {
		if got := MustParse(name).IsNatural(); got != want {
			t.Errorf("IsNatural(%s) = %v, want %v", name, got, want)
		}
	}
}
