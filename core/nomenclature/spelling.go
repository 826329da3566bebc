package nomenclature

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/FocuswithJustin/Harmonium/core/errors"
	"github.com/FocuswithJustin/Harmonium/core/interval"
	"github.com/FocuswithJustin/Harmonium/core/note"
)

var diatonic = interval.FromOffsets(0, 2, 4, 5, 7, 9, 11)

// NoteNames spells a seven-tone structure from the given keynote,
// cycling the letters so each appears once and preserving the keynote's
// own spelling (Ebb stays Ebb, not D).
func NoteNames(keynote note.Name, s interval.Structure) ([]note.Name, error) {
	if s.Cardinality() != 7 {
		return nil, errors.NewValidation("structure", "want a seven-tone structure")
	}
	rootPitch := keynote.NaturalOffset() + keynote.Accidentals
	offs := s.Offsets()
	out := make([]note.Name, 7)
	for i := range 7 {
		letter := (i + keynote.Letter) % 7
		wrap := ((i + keynote.Letter) / 7) * interval.Octave
		natural := note.Name{Letter: letter}.NaturalOffset() + wrap
		out[i] = note.Name{
			Letter:      letter,
			Accidentals: rootPitch + offs[i] - natural,
		}
	}
	return out, nil
}

// BestNoteNames spells a seven-tone structure from the keynote's pitch,
// choosing whichever enharmonic reading of the keynote yields the
// cleaner spelling. Naturals keep their own name.
func BestNoteNames(keynote note.Name, s interval.Structure) ([]note.Name, error) {
	simple := keynote.Simplify()
	if simple.Accidentals == 0 {
		return NoteNames(simple, s)
	}
	sharpKey, flatKey, err := simple.BinomialPair()
	if err != nil {
		return nil, err
	}
	sharp, err := NoteNames(sharpKey, s)
	if err != nil {
		return nil, err
	}
	flat, err := NoteNames(flatKey, s)
	if err != nil {
		return nil, err
	}
	if preferSharpSpelling(renderNames(sharp), renderNames(flat)) {
		return sharp, nil
	}
	return flat, nil
}

func renderNames(names []note.Name) []string {
	out := make([]string, len(names))
	for i, n := range names {
		out[i] = n.String()
	}
	return out
}

// IntervalNames returns the numeric degree symbols of a seven-tone
// structure, "1" through "7" with accidentals measured against the major
// scale. With octave set, the degrees continue through "14" so that
// taking every second symbol yields the tertial row 1 3 5 7 9 11 13.
func IntervalNames(s interval.Structure, octave bool) ([]string, error) {
	if s.Cardinality() != 7 {
		return nil, errors.NewValidation("structure", "want a seven-tone structure")
	}
	offs := s.Offsets()
	count := 7
	if octave {
		count = 14
	}
	out := make([]string, 0, count)
	for i := range count {
		acc := offs[i%7]%interval.Octave - diatonic.Offsets()[i%7]
		out = append(out, accidentalPrefix(acc)+strconv.Itoa(i+1))
	}
	return out, nil
}

func accidentalPrefix(acc int) string {
	if acc > 0 {
		return strings.Repeat(note.Sharp, acc)
	}
	return strings.Repeat(note.Flat, -acc)
}

// Degree symbols in ascending chord-stack order. Chord symbols name
// tensions past the octave (9, 11, 13), so the row runs past 7.
var intervalOrder = map[string]int{
	"1": 0, "b2": 1, "2": 2,
	"bb3": 3, "#2": 4, "b3": 5,
	"3": 6, "b4": 7, "#3": 8,
	"4": 9, "bb5": 10, "#4": 11,
	"b5": 12, "5": 13, "#5": 14,
	"b6": 15, "##5": 16, "6": 17,
	"bb7": 18, "#6": 19, "b7": 20,
	"7": 21, "b9": 22, "9": 23,
	"#9": 24, "11": 25, "#11": 26,
	"b13": 27, "13": 28,
}

// SortIntervalNames orders degree symbols into their conventional
// chord-stack order, so "5 1 b3 b7" becomes "1 b3 5 b7".
func SortIntervalNames(names []string) ([]string, error) {
	for _, n := range names {
		if _, ok := intervalOrder[n]; !ok {
			return nil, errors.NewParse("interval name", n, "not a recognized degree symbol")
		}
	}
	out := slices.Clone(names)
	slices.SortStableFunc(out, func(a, b string) int {
		return intervalOrder[a] - intervalOrder[b]
	})
	return out, nil
}

// IntervalBetween describes the interval from a lower note name up to a
// higher one: the chromatic distance folded to one octave, and the degree
// symbol that respects both spellings, so C to F# is 6 "#4" while C to Gb
// is 6 "b5".
func IntervalBetween(lower, higher note.Name) (int, string) {
	names, _ := NoteNames(lower, diatonic)
	base := (higher.Letter - lower.Letter + 7) % 7
	acc := higher.Accidentals - names[base].Accidentals
	absolute := (diatonic.Offsets()[base] + acc) % interval.Octave
	if absolute < 0 {
		absolute += interval.Octave
	}
	return absolute, accidentalPrefix(acc) + strconv.Itoa(base+1)
}

// NoteNamesFromIntervalNames renders degree symbols as note names from
// the given root, preserving spelling (a b5 over C is Gb, not F#).
// Compound degrees fold onto their simple equivalents.
func NoteNamesFromIntervalNames(root note.Name, names []string) ([]note.Name, error) {
	scale, _ := NoteNames(root, diatonic)
	out := make([]note.Name, 0, len(names))
	for _, symbol := range names {
		degree, acc, err := splitIntervalName(symbol)
		if err != nil {
			return nil, err
		}
		idx := (degree % 7) - 1
		if idx < 0 {
			idx += 7
		}
		base := scale[idx]
		out = append(out, note.Name{Letter: base.Letter, Accidentals: base.Accidentals + acc})
	}
	return out, nil
}

func splitIntervalName(symbol string) (degree, accidentals int, err error) {
	digits := strings.TrimLeft(symbol, note.Sharp+note.Flat)
	prefix := symbol[:len(symbol)-len(digits)]
	degree, err = strconv.Atoi(digits)
	if err != nil || degree < 1 {
		return 0, 0, errors.NewParse("interval name", symbol, "want accidentals followed by a degree number")
	}
	if strings.Contains(prefix, note.Sharp) && strings.Contains(prefix, note.Flat) {
		return 0, 0, errors.NewParse("interval name", symbol, "accidentals must not mix sharps and flats")
	}
	accidentals = strings.Count(prefix, note.Sharp) - strings.Count(prefix, note.Flat)
	return degree, accidentals, nil
}

// IntegersFromNoteNames measures a melodic stack of note names against
// its first name. Every subsequent name sounds above the previous one,
// so A E A A reads as 0 7 12 24.
func IntegersFromNoteNames(names []note.Name) []int {
	if len(names) == 0 {
		return nil
	}
	root := names[0]
	out := make([]int, 1, len(names))
	modifier, highest := 0, 0
	for _, n := range names[1:] {
		semitones, _ := IntervalBetween(root, n)
		if highest >= semitones+modifier {
			modifier += interval.Octave
		}
		semitones += modifier
		highest = semitones
		out = append(out, semitones)
	}
	return out
}

// IntegersFromIntervalNames measures degree symbols as an ascending
// stack of semitone offsets from the first symbol.
func IntegersFromIntervalNames(symbols []string) ([]int, error) {
	names := make([]note.Name, 0, len(symbols))
	for _, symbol := range symbols {
		degree, acc, err := splitIntervalName(symbol)
		if err != nil {
			return nil, err
		}
		letter := (degree - 1) % 7
		names = append(names, note.Name{Letter: letter, Accidentals: acc})
	}
	return IntegersFromNoteNames(names), nil
}

// IntervalNamesFromNoteNames reads a stack of note names as degree
// symbols relative to the first name.
func IntervalNamesFromNoteNames(names []note.Name) []string {
	if len(names) == 0 {
		return nil
	}
	out := make([]string, 0, len(names))
	for _, n := range names {
		_, symbol := IntervalBetween(names[0], n)
		out = append(out, symbol)
	}
	return out
}

// IsHeptatonicLetterSet reports whether the names use each letter A-G
// exactly once.
func IsHeptatonicLetterSet(names []note.Name) bool {
	if len(names) != 7 {
		return false
	}
	var seen [7]bool
	for _, n := range names {
		if seen[n.Letter] {
			return false
		}
		seen[n.Letter] = true
	}
	return true
}

var romanDegrees = [7]string{"I", "II", "III", "IV", "V", "VI", "VII"}

// RomanFromIntervalNames converts degree symbols 1..7 to their Roman
// form, keeping accidentals ("b3" becomes "bIII").
func RomanFromIntervalNames(symbols []string) ([]string, error) {
	out := make([]string, 0, len(symbols))
	for _, symbol := range symbols {
		degree, acc, err := splitIntervalName(symbol)
		if err != nil {
			return nil, err
		}
		if degree > 7 {
			return nil, errors.NewValidation("interval name", fmt.Sprintf("no Roman form for compound degree %d", degree))
		}
		out = append(out, accidentalPrefix(acc)+romanDegrees[degree-1])
	}
	return out, nil
}

// IntervalNamesFromRoman converts Roman degree symbols, upper or lower
// case, back to numeric form.
func IntervalNamesFromRoman(symbols []string) ([]string, error) {
	out := make([]string, 0, len(symbols))
	for _, symbol := range symbols {
		base := strings.ToUpper(strings.Trim(symbol, note.Sharp+note.Flat))
		prefix := symbol[:len(symbol)-len(strings.TrimLeft(symbol, note.Sharp+note.Flat))]
		degree := slices.Index(romanDegrees[:], base)
		if degree < 0 {
			return nil, errors.NewParse("roman numeral", symbol, "want I..VII with optional accidentals")
		}
		out = append(out, prefix+strconv.Itoa(degree+1))
	}
	return out, nil
}

// Step names for scale formulas, in the Greek-derived register.
var stepNames = map[int]string{
	1: "semitone", 2: "tone", 3: "hemiolion",
	4: "ditone", 5: "diatessaron", 6: "tritone",
	7: "diapente", 8: "diapente + semitone",
	9: "diapente + tone", 10: "diapente + hemiolion",
	11: "diapente + ditone", 12: "diapason",
}

// StepFormula names the step sizes between consecutive degrees of a
// close structure, the final step closing the octave.
func StepFormula(s interval.Structure) ([]string, error) {
	offs := append(s.Offsets(), interval.Octave)
	out := make([]string, 0, len(offs)-1)
	for i := 1; i < len(offs); i++ {
		name, ok := stepNames[offs[i]-offs[i-1]]
		if !ok {
			return nil, errors.NewValidation("structure", fmt.Sprintf("step of %d semitones has no name", offs[i]-offs[i-1]))
		}
		out = append(out, name)
	}
	return out, nil
}
