package symbol

import (
	"slices"
	"testing"

	"github.com/FocuswithJustin/Harmonium/core/interval"
	"github.com/FocuswithJustin/Harmonium/core/transform"
)

func TestDecode(t *testing.T) {
	tests := []struct {
		symbol string
		want   []string
	}{
		{symbol: "C", want: []string{"1", "3", "5"}},
		{symbol: "Cmaj7", want: []string{"1", "3", "5", "7"}},
		{symbol: "CM7", want: []string{"1", "3", "5", "7"}},
		{symbol: "CΔ7", want: []string{"1", "3", "5", "7"}},
		{symbol: "Cm7", want: []string{"1", "b3", "5", "b7"}},
		{symbol: "Cmin7", want: []string{"1", "b3", "5", "b7"}},
		{symbol: "CmM7", want: []string{"1", "b3", "5", "7"}},
		{symbol: "Cminmaj7", want: []string{"1", "b3", "5", "7"}},
		{symbol: "C7", want: []string{"1", "3", "5", "b7"}},
		{symbol: "C13", want: []string{"1", "3", "5", "b7", "9", "11", "13"}},
		{symbol: "Cmaj13", want: []string{"1", "3", "5", "7", "9", "11", "13"}},
		{symbol: "C7aug", want: []string{"1", "3", "#5", "b7"}},
		{symbol: "Caug7", want: []string{"1", "3", "#5", "b7"}},
		{symbol: "C+7", want: []string{"1", "3", "#5", "b7"}},
		{symbol: "C7+", want: []string{"1", "3", "#5", "b7"}},
		{symbol: "Cmin11b5", want: []string{"1", "b3", "b5", "b7", "9", "11"}},
		{symbol: "Co7", want: []string{"1", "b3", "b5", "bb7"}},
		{symbol: "Cø7", want: []string{"1", "b3", "b5", "b7"}},
		{symbol: "Fdim7", want: []string{"1", "b3", "b5", "bb7"}},
		{symbol: "Cmin7b5add11", want: []string{"1", "b3", "b5", "b7", "11"}},
		{symbol: "Cmaj7#5", want: []string{"1", "3", "#5", "7"}},
		{symbol: "Cmaj7sus2", want: []string{"1", "2", "5", "7"}},
		{symbol: "Csus4", want: []string{"1", "4", "5"}},
		{symbol: "C7sus4", want: []string{"1", "4", "5", "b7"}},
		{symbol: "Csusbb3bb7", want: []string{"1", "bb3", "5", "bb7"}},
		{symbol: "Cdim11nobb7", want: []string{"1", "b3", "b5", "9", "11"}},
		{symbol: "Abbdim7nob5", want: []string{"1", "b3", "bb7"}},
		{symbol: "C9no3", want: []string{"1", "5", "b7", "9"}},
		{symbol: "G7b9", want: []string{"1", "3", "5", "b7", "b9"}},
		{symbol: "C6", want: []string{"1", "3", "5", "6"}},
		{symbol: "V7", want: []string{"1", "3", "5", "b7"}},
	}
	for _, tt := range tests {
		t.Run(tt.symbol, func(t *testing.T) {
			got, err := Decode(tt.symbol)
			if err != nil {
				t.Fatalf("Decode(%q): %v", tt.symbol, err)
			}
			if !slices.Equal(got, tt.want) {
				t.Errorf("Decode(%q) = %v, want %v", tt.symbol, got, tt.want)
			}
		})
	}
}

func TestDecodeSlashChords(t *testing.T) {
	tests := []struct {
		symbol string
		want   []string
	}{
		// A bass that is a chord tone rotates the chord to it.
		{symbol: "Amin7/G", want: []string{"b7", "1", "b3", "5"}},
		{symbol: "C/G", want: []string{"5", "1", "3"}},
		// A bass outside the chord is prepended.
		{symbol: "G/C", want: []string{"4", "1", "3", "5"}},
		{symbol: "Amin7/B", want: []string{"2", "1", "b3", "5", "b7"}},
	}
	for _, tt := range tests {
		t.Run(tt.symbol, func(t *testing.T) {
			got, err := Decode(tt.symbol)
			if err != nil {
				t.Fatalf("Decode(%q): %v", tt.symbol, err)
			}
			if !slices.Equal(got, tt.want) {
				t.Errorf("Decode(%q) = %v, want %v", tt.symbol, got, tt.want)
			}
		})
	}

	if _, err := Decode("Cmaj7/III"); err == nil {
		t.Error("mixing alphabetic and Roman notation expected error")
	}
	if _, err := Decode("IVmaj7/E"); err == nil {
		t.Error("mixing Roman and alphabetic notation expected error")
	}
}

func TestParseRoots(t *testing.T) {
	tests := []struct {
		symbol    string
		wantRoot  string
		wantRoman bool
	}{
		{symbol: "C#5", wantRoot: "C#"},
		{symbol: "Ebm7b5", wantRoot: "Eb"},
		{symbol: "bVII7", wantRoot: "bVII", wantRoman: true},
		{symbol: "iim7", wantRoot: "ii", wantRoman: true},
	}
	for _, tt := range tests {
		t.Run(tt.symbol, func(t *testing.T) {
			got, err := Parse(tt.symbol)
			if err != nil {
				t.Fatalf("Parse(%q): %v", tt.symbol, err)
			}
			if got.Root != tt.wantRoot || got.IsRoman != tt.wantRoman {
				t.Errorf("Parse(%q) root = %q roman=%v, want %q roman=%v",
					tt.symbol, got.Root, got.IsRoman, tt.wantRoot, tt.wantRoman)
			}
		})
	}

	// The accidental after the root letter belongs to the root, so
	// C#5 is a power chord on C#, never an altered fifth.
	got, err := Parse("C#5")
	if err != nil {
		t.Fatalf("Parse(C#5): %v", err)
	}
	if !slices.Equal(got.Intervals, []string{"1", "5", "8"}) {
		t.Errorf("Parse(C#5) intervals = %v, want power chord", got.Intervals)
	}

	if _, err := Parse("Hmaj7"); err == nil {
		t.Error("Parse(Hmaj7) expected error")
	}
}

func TestEncode(t *testing.T) {
	tests := []struct {
		names []string
		want  string
	}{
		{names: []string{"1", "3", "5"}, want: "maj"},
		{names: []string{"1", "3", "5", "7"}, want: "maj7"},
		{names: []string{"1", "3", "5", "7", "9"}, want: "maj9"},
		{names: []string{"1", "3", "5", "9"}, want: "majadd9"},
		{names: []string{"1", "3", "5", "7", "9", "11", "13"}, want: "maj13"},
		{names: []string{"1", "3", "5", "7", "11"}, want: "maj7add11"},
		{names: []string{"1", "3", "5", "7", "9", "13"}, want: "maj9add13"},
		{names: []string{"1", "3", "5", "b7"}, want: "7"},
		{names: []string{"1", "3", "5", "b7", "9"}, want: "9"},
		{names: []string{"1", "3", "5", "b7", "9", "13"}, want: "9add13"},
		{names: []string{"1", "b3", "5"}, want: "min"},
		{names: []string{"1", "b3", "5", "b7", "9"}, want: "min9"},
		{names: []string{"1", "b3", "5", "9"}, want: "minadd9"},
		{names: []string{"1", "b3", "5", "7"}, want: "minmaj7"},
		{names: []string{"1", "b3", "5", "7", "9", "11", "13"}, want: "minmaj13"},
		{names: []string{"1", "b3", "b5", "b7"}, want: "min7b5"},
		{names: []string{"1", "b3", "b5", "b7", "9", "11", "13"}, want: "min13b5"},
		{names: []string{"1", "b3", "b5", "bb7"}, want: "dim7"},
		{names: []string{"1", "b3", "b5", "bb7", "9"}, want: "dim9"},
		{names: []string{"1", "3", "7", "9"}, want: "maj9no5"},
		{names: []string{"1", "2", "5"}, want: "sus2"},
		{names: []string{"1", "bb3", "5"}, want: "susbb3"},
		{names: []string{"1", "#3", "5"}, want: "sus#3"},
		{names: []string{"1", "2", "5", "7"}, want: "maj7sus2"},
		{names: []string{"1", "2", "5", "b7"}, want: "7sus2"},
		{names: []string{"1", "2", "5", "bb7"}, want: "sus2bb7"},
		{names: []string{"1", "3", "5", "bb7"}, want: "majbb7"},
		{names: []string{"1", "bb3", "#5", "7"}, want: "maj7susbb3#5"},
		{names: []string{"1", "bb3", "b5", "bb7", "9"}, want: "susbb3b5bb7add9"},
		{names: []string{"1", "5", "bb7", "9"}, want: "no3bb7add9"},
		{names: []string{"1", "3", "5", "6"}, want: "maj6"},
		{names: []string{"1", "3", "5", "b7", "#11"}, want: "7#11"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			got, err := Encode(tt.names, DefaultStyle)
			if err != nil {
				t.Fatalf("Encode(%v): %v", tt.names, err)
			}
			if got != tt.want {
				t.Errorf("Encode(%v) = %q, want %q", tt.names, got, tt.want)
			}
		})
	}
}

func TestEncodeStyles(t *testing.T) {
	got, err := Encode([]string{"1", "3", "5", "7"}, Style{Major: "Δ", Minor: "m", Dim: "o"})
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if got != "Δ7" {
		t.Errorf("Encode with delta style = %q, want Δ7", got)
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	symbols := []string{
		"maj", "min", "dim7", "maj7", "min7b5", "7", "9", "min9",
		"sus2", "sus4", "maj7sus2", "min13b5", "maj9no5",
	}
	for _, suffix := range symbols {
		t.Run(suffix, func(t *testing.T) {
			names, err := Decode("C" + suffix)
			if err != nil {
				t.Fatalf("Decode: %v", err)
			}
			got, err := Encode(names, DefaultStyle)
			if err != nil {
				t.Fatalf("Encode: %v", err)
			}
			if got != suffix {
				t.Errorf("Encode(Decode(C%s)) = %q", suffix, got)
			}
		})
	}
}

func TestIdentify(t *testing.T) {
	tests := []struct {
		name          string
		structure     interval.Structure
		wantName      string
		wantInversion string
		wantVoicing   string
	}{
		{
			name:          "major root close",
			structure:     interval.FromOffsets(0, 4, 7),
			wantName:      "major_triad",
			wantInversion: "root_position",
			wantVoicing:   "close",
		},
		{
			name:          "major first inversion",
			structure:     interval.FromOffsets(0, 3, 8),
			wantName:      "major_triad",
			wantInversion: "first_inversion",
			wantVoicing:   "close",
		},
		{
			name:          "minor open",
			structure:     interval.FromOffsets(0, 7, 15),
			wantName:      "minor_triad",
			wantInversion: "root_position",
			wantVoicing:   "open",
		},
		{
			name:          "maj7 drop 2",
			structure:     interval.FromOffsets(0, 7, 11, 16),
			wantName:      "major_seventh",
			wantInversion: "root_position",
			wantVoicing:   "drop_2",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Identify(tt.structure)
			if !ok {
				t.Fatalf("Identify(%v) found no match", tt.structure)
			}
			if got.Name != tt.wantName || got.Inversion != tt.wantInversion || got.Voicing != tt.wantVoicing {
				t.Errorf("Identify(%v) = %+v, want %s %s %s",
					tt.structure, got, tt.wantName, tt.wantInversion, tt.wantVoicing)
			}
		})
	}

	if _, ok := Identify(interval.FromOffsets(0, 1, 2)); ok {
		t.Error("Identify on a chromatic cluster expected no match")
	}
}

func TestFromStructure(t *testing.T) {
	maj7 := interval.FromOffsets(0, 4, 7, 11)
	dropped, err := transform.Drop(maj7, transform.Drop2)
	if err != nil {
		t.Fatalf("Drop: %v", err)
	}
	for _, s := range []interval.Structure{maj7, dropped} {
		got, err := FromStructure(s, DefaultStyle)
		if err != nil {
			t.Fatalf("FromStructure(%v): %v", s, err)
		}
		if got != "maj7" {
			t.Errorf("FromStructure(%v) = %q, want maj7", s, got)
		}
	}

	power, err := FromStructure(interval.FromOffsets(0, 7, 12), DefaultStyle)
	if err != nil {
		t.Fatalf("FromStructure(power chord): %v", err)
	}
	if power != "5" {
		t.Errorf("FromStructure(power chord) = %q, want 5", power)
	}

	ninth, err := FromStructure(interval.FromOffsets(0, 4, 7, 10, 14), DefaultStyle)
	if err != nil {
		t.Fatalf("FromStructure(ninth): %v", err)
	}
	if ninth != "9" {
		t.Errorf("FromStructure(ninth) = %q, want 9", ninth)
	}
}

func TestIntegers(t *testing.T) {
	got, err := Integers([]string{"1", "3", "5", "b7", "9", "#11", "13"})
	if err != nil {
		t.Fatalf("Integers: %v", err)
	}
	want := []int{0, 4, 7, 10, 14, 18, 21}
	if !slices.Equal(got, want) {
		t.Errorf("Integers = %v, want %v", got, want)
	}

	if _, err := Integers([]string{"x"}); err == nil {
		t.Error("Integers(x) expected error")
	}
}
