// Package note models alphabetic note names: a letter A-G plus any number
// of sharps or flats. Names are small immutable values; everything that
// depends on octave numbers or frequency lives in core/nomenclature.
package note

import (
	"regexp"
	"strings"

	"github.com/FocuswithJustin/Harmonium/core/errors"
)

// Letters is the natural-name cycle in keyboard order starting from C.
const Letters = "CDEFGAB"

// Semitone offsets of the naturals above C.
var naturalOffsets = [7]int{0, 2, 4, 5, 7, 9, 11}

const (
	// Sharp is the accidental symbol for raising a note one semitone.
	Sharp = "#"
	// Flat is the accidental symbol for lowering a note one semitone.
	Flat = "b"
)

var nameRe = regexp.MustCompile(`^([A-G])((?:#|b)*)$`)

// Name is a note name: an index into Letters plus a signed accidental
// count (negative = flats).
type Name struct {
	Letter      int
	Accidentals int
}

// Parse reads a note name such as "C", "F#", "Ebb". Any number of
// accidentals is accepted; mixed accidentals are not.
func Parse(s string) (Name, error) {
	m := nameRe.FindStringSubmatch(s)
	if m == nil {
		return Name{}, errors.NewParse("note name", s, "want a letter A-G with optional accidentals")
	}
	acc := strings.Count(m[2], Sharp) - strings.Count(m[2], Flat)
	if strings.Contains(m[2], Sharp) && strings.Contains(m[2], Flat) {
		return Name{}, errors.NewParse("note name", s, "accidentals must not mix sharps and flats")
	}
	return Name{Letter: strings.IndexByte(Letters, m[1][0]), Accidentals: acc}, nil
}

// MustParse is Parse for compiled-in names; it panics on error.
func MustParse(s string) Name {
	n, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return n
}

// String renders the name with its accidentals.
func (n Name) String() string {
	s := string(Letters[n.Letter])
	if n.Accidentals > 0 {
		return s + strings.Repeat(Sharp, n.Accidentals)
	}
	return s + strings.Repeat(Flat, -n.Accidentals)
}

// PitchClass returns the chromatic pitch class 0..11 of the name.
func (n Name) PitchClass() int {
	pc := (naturalOffsets[n.Letter] + n.Accidentals) % 12
	if pc < 0 {
		pc += 12
	}
	return pc
}

// NaturalOffset returns the semitone offset of the bare letter above C.
func (n Name) NaturalOffset() int {
	return naturalOffsets[n.Letter]
}

// IsNatural reports whether the name is enharmonically a natural
// (so E# and Fb count, but F# does not).
func (n Name) IsNatural() bool {
	return n.Simplify().Accidentals == 0
}

// Simplify returns the simplest enharmonically equivalent name:
// a natural if one exists for the pitch class, otherwise a single
// accidental preserving the direction of the original spelling.
func (n Name) Simplify() Name {
	if n.Accidentals == 0 {
		return n
	}
	pc := n.PitchClass()
	for i, off := range naturalOffsets {
		if off == pc {
			return Name{Letter: i}
		}
	}
	if n.Accidentals > 0 {
		for i, off := range naturalOffsets {
			if off == pc-1 {
				return Name{Letter: i, Accidentals: 1}
			}
		}
	}
	for i, off := range naturalOffsets {
		if (off+12)%12 == (pc+1)%12 {
			return Name{Letter: i, Accidentals: -1}
		}
	}
	return n
}

// BinomialPair returns the two single-accidental spellings of a
// non-natural note, sharp first (G# -> G#, Ab). The receiver must not be
// enharmonically natural.
func (n Name) BinomialPair() (Name, Name, error) {
	if n.IsNatural() {
		return Name{}, Name{}, errors.NewValidation("note", "naturals have no binomial pair")
	}
	s := n.Simplify()
	var other Name
	if s.Accidentals > 0 {
		other = Name{Letter: (s.Letter + 1) % 7, Accidentals: -1}
	} else {
		other = Name{Letter: (s.Letter + 6) % 7, Accidentals: 1}
	}
	if s.Accidentals > 0 {
		return s, other, nil
	}
	return other, s, nil
}
