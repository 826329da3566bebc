package registry

import (
	"slices"
	"testing"

	"github.com/FocuswithJustin/Harmonium/core/errors"
	"github.com/FocuswithJustin/Harmonium/core/interval"
)

func TestLookup(t *testing.T) {
	tests := []struct {
		name string
		want []int
	}{
		{name: "diatonic", want: []int{0, 2, 4, 5, 7, 9, 11}},
		{name: "altered", want: []int{0, 1, 3, 4, 6, 8, 10}},
		{name: "double_harmonic", want: []int{0, 1, 4, 5, 7, 8, 11}},
		{name: "maj_6_diminished", want: []int{0, 2, 4, 5, 7, 8, 9, 11}},
		{name: "whole_tone", want: []int{0, 2, 4, 6, 8, 10}},
		{name: "minor_pentatonic", want: []int{0, 3, 5, 7, 10}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Lookup(tt.name)
			if err != nil {
				t.Fatalf("Lookup(%s): %v", tt.name, err)
			}
			if !slices.Equal(got.Offsets(), tt.want) {
				t.Errorf("Lookup(%s) = %v, want %v", tt.name, got.Offsets(), tt.want)
			}
		})
	}

	if _, err := Lookup("klezmer"); !errors.Is(err, errors.ErrNotFound) {
		t.Errorf("Lookup(klezmer) error = %v, want ErrNotFound", err)
	}
}

func TestNames(t *testing.T) {
	hepta := Names(GroupHeptatonic)
	if len(hepta) != 15 {
		t.Fatalf("heptatonic group has %d entries, want 15", len(hepta))
	}
	if hepta[0] != Diatonic || hepta[14] != Romanian {
		t.Errorf("heptatonic order runs %s..%s, want diatonic..romanian", hepta[0], hepta[14])
	}
}

func TestResolveHeptatonic(t *testing.T) {
	tests := []struct {
		name  string
		scale string
		mode  string
		want  []int
	}{
		{name: "base form", scale: "diatonic", mode: "", want: []int{0, 2, 4, 5, 7, 9, 11}},
		{name: "named mode", scale: "diatonic", mode: "dorian", want: []int{0, 2, 3, 5, 7, 9, 10}},
		{name: "digit mode", scale: "diatonic", mode: "4", want: []int{0, 2, 4, 5, 7, 9, 10}},
		{name: "mode as scale", scale: "lydian", mode: "", want: []int{0, 2, 4, 6, 7, 9, 11}},
		{name: "altered dorian", scale: "altered", mode: "dorian", want: []int{0, 2, 3, 5, 7, 9, 11}},
		{name: "alias", scale: "melodic minor", mode: "", want: []int{0, 2, 3, 5, 7, 9, 11}},
		{name: "alias with modifiers", scale: "mixolydian b6", mode: "", want: []int{0, 2, 4, 5, 7, 8, 10}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolveHeptatonic(tt.scale, tt.mode)
			if err != nil {
				t.Fatalf("ResolveHeptatonic(%q, %q): %v", tt.scale, tt.mode, err)
			}
			if !slices.Equal(got.Offsets(), tt.want) {
				t.Errorf("ResolveHeptatonic(%q, %q) = %v, want %v", tt.scale, tt.mode, got.Offsets(), tt.want)
			}
		})
	}

	if _, err := ResolveHeptatonic("klezmer", ""); err == nil {
		t.Error("ResolveHeptatonic(klezmer) expected error")
	}
	if _, err := ResolveHeptatonic("diatonic", "klezmer"); err == nil {
		t.Error("ResolveHeptatonic with an unknown mode expected error")
	}
}

func TestResolveHeptatonicNonHeptatonic(t *testing.T) {
	// Names that land on a smaller-group form carry no modal series and
	// must say so rather than claim the scale is unknown.
	for _, scale := range []string{"minor_pentatonic", "whole_tone", "major pentatonic"} {
		_, err := ResolveHeptatonic(scale, "")
		if !errors.Is(err, errors.ErrUnsupported) {
			t.Errorf("ResolveHeptatonic(%q) error = %v, want ErrUnsupported", scale, err)
		}
	}
}

func TestResolveStructure(t *testing.T) {
	tests := []struct {
		name        string
		structure   interval.Structure
		wantScale   string
		wantMode    string
		wantAliases []string
	}{
		{
			name:        "mixolydian",
			structure:   interval.FromOffsets(0, 2, 4, 5, 7, 9, 10),
			wantScale:   "diatonic",
			wantMode:    "mixolydian",
			wantAliases: []string{"dominant"},
		},
		{
			name:        "altered base",
			structure:   interval.FromOffsets(0, 1, 3, 4, 6, 8, 10),
			wantScale:   "altered",
			wantMode:    "ionian",
			wantAliases: []string{"super locrian", "altered dominant"},
		},
		{
			name:        "harmonic minor",
			structure:   interval.FromOffsets(0, 2, 3, 5, 7, 8, 11),
			wantScale:   "augmented",
			wantMode:    "aeolian",
			wantAliases: nil,
		},
		{
			name:        "blues before major blues",
			structure:   interval.FromOffsets(0, 3, 5, 6, 7, 10),
			wantScale:   "blues",
			wantMode:    "1",
			wantAliases: []string{"minor blues"},
		},
		{
			name:        "major pentatonic",
			structure:   interval.FromOffsets(0, 2, 4, 7, 9),
			wantScale:   "minor_pentatonic",
			wantMode:    "2",
			wantAliases: []string{"major pentatonic"},
		},
		{
			name:      "whole tone",
			structure: interval.FromOffsets(0, 2, 4, 6, 8, 10),
			wantScale: "whole_tone",
			wantMode:  "1",
		},
		{
			name:      "open voicing folds to its pitch classes",
			structure: interval.FromOffsets(0, 7, 14, 16, 21, 23, 26, 29),
			wantScale: "diatonic",
			wantMode:  "ionian",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolveStructure(tt.structure)
			if err != nil {
				t.Fatalf("ResolveStructure(%v): %v", tt.structure, err)
			}
			if got.ScaleName != tt.wantScale || got.ModeName != tt.wantMode {
				t.Errorf("ResolveStructure(%v) = %s %s, want %s %s",
					tt.structure, got.ScaleName, got.ModeName, tt.wantScale, tt.wantMode)
			}
			if tt.wantAliases != nil && !slices.Equal(got.Aliases, tt.wantAliases) {
				t.Errorf("aliases = %v, want %v", got.Aliases, tt.wantAliases)
			}
		})
	}

	if _, err := ResolveStructure(interval.FromOffsets(0, 1, 2, 3, 4, 5, 6)); !errors.Is(err, errors.ErrNotFound) {
		t.Errorf("chromatic cluster error = %v, want ErrNotFound", err)
	}
}

func TestResolveStructureHost(t *testing.T) {
	tests := []struct {
		name      string
		structure interval.Structure
		wantScale string
		wantMode  string
	}{
		{
			name:      "major triad lives in ionian",
			structure: interval.FromOffsets(0, 4, 7),
			wantScale: "diatonic",
			wantMode:  "1",
		},
		{
			name:      "dominant seventh lives in mixolydian",
			structure: interval.FromOffsets(0, 4, 7, 10),
			wantScale: "diatonic",
			wantMode:  "5",
		},
		{
			name:      "half diminished lives in locrian",
			structure: interval.FromOffsets(0, 3, 6, 10),
			wantScale: "diatonic",
			wantMode:  "7",
		},
		{
			name:      "drop 2 voicing folds before hosting",
			structure: interval.FromOffsets(0, 7, 11, 16),
			wantScale: "diatonic",
			wantMode:  "1",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolveStructure(tt.structure)
			if err != nil {
				t.Fatalf("ResolveStructure(%v): %v", tt.structure, err)
			}
			if got.ScaleName != tt.wantScale || got.ModeName != tt.wantMode {
				t.Errorf("ResolveStructure(%v) = %s %s, want %s %s",
					tt.structure, got.ScaleName, got.ModeName, tt.wantScale, tt.wantMode)
			}
		})
	}
}

func TestResolveModalName(t *testing.T) {
	tests := []struct {
		symbol string
		want   []string
	}{
		{symbol: "ionian", want: []string{"1", "2", "3", "4", "5", "6", "7"}},
		{symbol: "dorian", want: []string{"1", "2", "b3", "4", "5", "6", "b7"}},
		{symbol: "mixolydian b6", want: []string{"1", "2", "3", "4", "5", "b6", "b7"}},
		{symbol: "mixo_b6", want: []string{"1", "2", "3", "4", "5", "b6", "b7"}},
		{symbol: "lydian b7", want: []string{"1", "2", "3", "#4", "5", "6", "b7"}},
		{symbol: "dor.Nat7", want: []string{"1", "2", "b3", "4", "5", "6", "7"}},
		{symbol: "aeolian natural 7", want: []string{"1", "2", "b3", "4", "5", "b6", "7"}},
		{symbol: "loc_natural_5", want: []string{"1", "b2", "b3", "4", "5", "b6", "b7"}},
		{symbol: "IonianAddb6", want: []string{"1", "2", "3", "4", "5", "b6", "6", "7"}},
		{symbol: "phrygian no b2", want: []string{"1", "b3", "4", "5", "b6", "b7"}},
		{symbol: "b3_no5_ion", want: []string{"1", "2", "b3", "4", "6", "7"}},
		{symbol: "#4", want: []string{"1", "2", "3", "#4", "5", "6", "7"}},
	}
	for _, tt := range tests {
		t.Run(tt.symbol, func(t *testing.T) {
			got, err := ResolveModalName(tt.symbol)
			if err != nil {
				t.Fatalf("ResolveModalName(%q): %v", tt.symbol, err)
			}
			if !slices.Equal(got, tt.want) {
				t.Errorf("ResolveModalName(%q) = %v, want %v", tt.symbol, got, tt.want)
			}
		})
	}

	if _, err := ResolveModalName("dorian phrygian"); !errors.Is(err, errors.ErrAmbiguous) {
		t.Errorf("two mode names error = %v, want ErrAmbiguous", err)
	}
	if _, err := ResolveModalName("not a mode"); err == nil {
		t.Error("unparseable symbol expected error")
	}
}

func TestResolveAlias(t *testing.T) {
	tests := []struct {
		symbol    string
		wantScale string
		wantMode  string
	}{
		{symbol: "major", wantScale: "diatonic", wantMode: "ionian"},
		{symbol: "melodic minor", wantScale: "altered", wantMode: "dorian"},
		{symbol: "lydian dominant", wantScale: "altered", wantMode: "mixolydian"},
		{symbol: "acoustic scale", wantScale: "altered", wantMode: "mixolydian"},
		{symbol: "byz", wantScale: "double_harmonic", wantMode: "ionian"},
		{symbol: "hungarian minor", wantScale: "double_harmonic", wantMode: "lydian"},
		{symbol: "UkrDor", wantScale: "augmented", wantMode: "dorian"},
		{symbol: "phrygian dominant", wantScale: "augmented", wantMode: "phrygian"},
		// Modal fallbacks land on the same identities as their aliases.
		{symbol: "mixolydian b6", wantScale: "altered", wantMode: "aeolian"},
		{symbol: "lydian b7", wantScale: "altered", wantMode: "mixolydian"},
		{symbol: "aeolian nat7", wantScale: "augmented", wantMode: "aeolian"},
		{symbol: "lydian #5 b7", wantScale: "neapolitan", wantMode: "phrygian"},
	}
	for _, tt := range tests {
		t.Run(tt.symbol, func(t *testing.T) {
			scale, mode, err := ResolveAlias(tt.symbol)
			if err != nil {
				t.Fatalf("ResolveAlias(%q): %v", tt.symbol, err)
			}
			if scale != tt.wantScale || mode != tt.wantMode {
				t.Errorf("ResolveAlias(%q) = %s %s, want %s %s",
					tt.symbol, scale, mode, tt.wantScale, tt.wantMode)
			}
		})
	}

	if _, _, err := ResolveAlias("polka"); err == nil {
		t.Error("ResolveAlias(polka) expected error")
	}
}

func TestResolveScaleRequest(t *testing.T) {
	tests := []struct {
		symbol      string
		wantKeynote string
		wantScale   string
		wantMode    string
	}{
		{symbol: "E augmented lydian", wantKeynote: "E", wantScale: "augmented", wantMode: "lydian"},
		{symbol: "aug lyd", wantKeynote: "C", wantScale: "augmented", wantMode: "lydian"},
		{symbol: "E_UkrDor", wantKeynote: "E", wantScale: "augmented", wantMode: "dorian"},
		{symbol: "lydian", wantKeynote: "C", wantScale: "diatonic", wantMode: "lydian"},
		{symbol: "Bb melodic minor", wantKeynote: "Bb", wantScale: "altered", wantMode: "dorian"},
		{symbol: "F# lydian b7", wantKeynote: "F#", wantScale: "altered", wantMode: "mixolydian"},
		{symbol: "eb_dia_dor", wantKeynote: "Eb", wantScale: "diatonic", wantMode: "dorian"},
		{symbol: "G", wantKeynote: "G", wantScale: "diatonic", wantMode: "ionian"},
	}
	for _, tt := range tests {
		t.Run(tt.symbol, func(t *testing.T) {
			keynote, scale, mode, err := ResolveScaleRequest(tt.symbol)
			if err != nil {
				t.Fatalf("ResolveScaleRequest(%q): %v", tt.symbol, err)
			}
			if keynote != tt.wantKeynote || scale != tt.wantScale || mode != tt.wantMode {
				t.Errorf("ResolveScaleRequest(%q) = %s %s %s, want %s %s %s",
					tt.symbol, keynote, scale, mode, tt.wantKeynote, tt.wantScale, tt.wantMode)
			}
		})
	}
}
