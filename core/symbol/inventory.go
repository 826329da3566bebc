package symbol

import (
	"sync"

	"github.com/FocuswithJustin/Harmonium/core/interval"
	"github.com/FocuswithJustin/Harmonium/core/transform"
)

// Quality is a canonical chord shape: a name, its prescribed symbol
// suffix, and the close root-position structure.
type Quality struct {
	Name      string
	Symbol    string
	Structure interval.Structure
}

// Triads lists the canonical three-note shapes in recognition order.
// sus2 and sus4 are rotations of each other but are kept as distinct
// entries so each is named from its own bass.
func Triads() []Quality {
	return inventories().triads
}

// Tetrads lists the canonical four-note shapes in recognition order.
// Some are rotations of others (Am7 and C6), but naming them apart is
// the convention.
func Tetrads() []Quality {
	return inventories().tetrads
}

type inventory struct {
	triads  []Quality
	tetrads []Quality
}

var inventories = sync.OnceValue(func() *inventory {
	return &inventory{
		triads: []Quality{
			{"major_triad", "maj", interval.FromOffsets(0, 4, 7)},
			{"minor_triad", "min", interval.FromOffsets(0, 3, 7)},
			{"minor_flat_5", "dim", interval.FromOffsets(0, 3, 6)},
			{"major_flat_5", "majb5", interval.FromOffsets(0, 4, 6)},
			{"major_sharp_5", "aug", interval.FromOffsets(0, 4, 8)},
			{"sus2_triad", "sus2", interval.FromOffsets(0, 2, 7)},
			{"sus4_triad", "sus4", interval.FromOffsets(0, 5, 7)},
		},
		tetrads: []Quality{
			{"major_seventh", "maj7", interval.FromOffsets(0, 4, 7, 11)},
			{"minor_seventh", "min7", interval.FromOffsets(0, 3, 7, 10)},
			{"major_sixth", "6", interval.FromOffsets(0, 4, 7, 9)},
			{"minor_sixth", "min6", interval.FromOffsets(0, 3, 7, 9)},
			{"minor_major_seventh", "minmaj7", interval.FromOffsets(0, 3, 7, 11)},
			{"dominant_seventh", "7", interval.FromOffsets(0, 4, 7, 10)},
			{"dominant_seventh_flat_five", "7b5", interval.FromOffsets(0, 4, 6, 10)},
			{"diminished_seventh", "dim7", interval.FromOffsets(0, 3, 6, 9)},
			{"augmented_major_seventh", "maj7#5", interval.FromOffsets(0, 4, 8, 11)},
			{"augmented_seventh", "7#5", interval.FromOffsets(0, 4, 8, 10)},
			{"minor_seven_flat_five", "min7b5", interval.FromOffsets(0, 3, 6, 10)},
		},
	}
})

var inversionNames = [4]string{
	"root_position", "first_inversion", "second_inversion", "third_inversion",
}

// Identity names a recognized chord structure: the canonical shape it
// belongs to, which inversion is sounding, and in which voicing.
type Identity struct {
	Name      string
	Symbol    string
	Inversion string
	Voicing   string
}

// Identify matches a structure against the canonical triad and tetrad
// inventories, across every inversion of the close, open, and drop
// voicings. Close shapes are preferred, and within a voicing the lower
// inversion wins.
func Identify(s interval.Structure) (Identity, bool) {
	switch s.Cardinality() {
	case 3:
		return identifyAgainst(s, Triads(), map[string]transform.DropPattern{
			"open": transform.SpreadTriad,
		})
	case 4:
		return identifyAgainst(s, Tetrads(), map[string]transform.DropPattern{
			"drop_2":       transform.Drop2,
			"drop_3":       transform.Drop3,
			"drop_2_and_4": transform.Drop2And4,
		})
	}
	return Identity{}, false
}

func identifyAgainst(s interval.Structure, shapes []Quality, voicings map[string]transform.DropPattern) (Identity, bool) {
	target := s.Bits()

	// Exact close matches first, so a root-position chord is never
	// reported as an inversion of a rotation-equivalent shape.
	for _, q := range shapes {
		if q.Structure.Bits() == target {
			return Identity{q.Name, q.Symbol, inversionNames[0], "close"}, true
		}
	}
	for _, q := range shapes {
		k := 0
		for inv := range transform.Inversions(q.Structure) {
			if inv.Bits() == target {
				return Identity{q.Name, q.Symbol, inversionNames[k], "close"}, true
			}
			k++
		}
	}
	// Voicing names are checked in a stable order.
	for _, voicing := range []string{"open", "drop_2", "drop_3", "drop_2_and_4"} {
		pattern, ok := voicings[voicing]
		if !ok {
			continue
		}
		for _, q := range shapes {
			k := 0
			for inv := range transform.Inversions(q.Structure) {
				dropped, err := transform.Drop(inv, pattern)
				if err == nil && dropped.Bits() == target {
					return Identity{q.Name, q.Symbol, inversionNames[k], voicing}, true
				}
				k++
			}
		}
	}
	return Identity{}, false
}
