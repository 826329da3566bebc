// Package nomenclature assigns names to pitch material: chromatic and
// scientific note names, enharmonic respelling, frequency conversion, and
// the alphabetic spelling of heptatonic scales. Structural work stays in
// core/interval; this package is where integers meet letters.
package nomenclature

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"sync"

	"github.com/FocuswithJustin/Harmonium/core/errors"
	"github.com/FocuswithJustin/Harmonium/core/interval"
	"github.com/FocuswithJustin/Harmonium/core/note"
)

// Style selects how the five accidental pitch classes are spelled.
type Style int

const (
	// StyleBinomial spells accidentals as dual names, e.g. "C#|Db".
	StyleBinomial Style = iota
	// StyleSharp spells accidentals as sharps.
	StyleSharp
	// StyleFlat spells accidentals as flats.
	StyleFlat
)

// BinomialDivider separates the two halves of a binomial name.
const BinomialDivider = "|"

// Octaves covered by scientific notation, C0 through B8.
const scientificOctaves = 9

var accidentalSpellings = map[Style][5]string{
	StyleBinomial: {"C#|Db", "D#|Eb", "F#|Gb", "G#|Ab", "A#|Bb"},
	StyleSharp:    {"C#", "D#", "F#", "G#", "A#"},
	StyleFlat:     {"Db", "Eb", "Gb", "Ab", "Bb"},
}

// Chromatic returns the twelve pitch-class names of one octave starting
// from C, with accidentals spelled in the given style.
func Chromatic(style Style) []string {
	spellings := accidentalSpellings[style]
	out := make([]string, 0, 12)
	used := 0
	for i := range 7 {
		n := note.Name{Letter: i}
		out = append(out, n.String())
		// E and B have no accidental above them.
		next := note.Name{Letter: (i + 1) % 7}
		if (next.PitchClass()-n.PitchClass()+12)%12 == 2 {
			out = append(out, spellings[used])
			used++
		}
	}
	return out
}

var chromaticBinomials = sync.OnceValue(func() []string {
	return Chromatic(StyleBinomial)
})

// pitchClassOf resolves any spelling, binomial included, to 0..11.
func pitchClassOf(name string) (int, error) {
	if strings.Contains(name, BinomialDivider) {
		for pc, b := range chromaticBinomials() {
			if b == name {
				return pc, nil
			}
		}
		return 0, errors.NewParse("note name", name, "unknown binomial")
	}
	n, err := note.Parse(name)
	if err != nil {
		return 0, err
	}
	return n.PitchClass(), nil
}

// DecodeEnharmonic reduces any spelling to its canonical chromatic name:
// a natural where one exists, otherwise the binomial of the pitch class.
func DecodeEnharmonic(name string) (string, error) {
	pc, err := pitchClassOf(name)
	if err != nil {
		return "", err
	}
	return chromaticBinomials()[pc], nil
}

// EncodeEnharmonic respells the given pitch under the given natural
// letter, using the fewest accidentals that reach it. A tritone apart is
// reachable with six of either and defaults to sharps.
func EncodeEnharmonic(value, letter string) (string, error) {
	target, err := note.Parse(letter)
	if err != nil {
		return "", err
	}
	if target.Accidentals != 0 {
		return "", errors.NewValidation("letter", "target name must be a bare natural letter")
	}
	pc, err := pitchClassOf(value)
	if err != nil {
		return "", err
	}
	diff := (pc - target.NaturalOffset() + 12) % 12
	if diff <= 6 {
		return note.Name{Letter: target.Letter, Accidentals: diff}.String(), nil
	}
	return note.Name{Letter: target.Letter, Accidentals: diff - 12}.String(), nil
}

// ScientificRange returns the 108 scientific note names C0 through B8 in
// the given accidental style.
func ScientificRange(style Style) []string {
	chrom := Chromatic(style)
	out := make([]string, 0, 12*scientificOctaves)
	for octave := range scientificOctaves {
		for _, n := range chrom {
			out = append(out, n+strconv.Itoa(octave))
		}
	}
	return out
}

var scientificBinomials = sync.OnceValue(func() []string {
	return ScientificRange(StyleBinomial)
})

// Twelve-tone equal temperament anchored at A4 = 440 Hz, one entry per
// scientific name, rounded to three decimals.
var frequencies = sync.OnceValue(func() []float64 {
	const a4 = 57
	out := make([]float64, 12*scientificOctaves)
	for i := range out {
		out[i] = roundTo(440*math.Pow(2, float64(i-a4)/12), 3)
	}
	return out
})

func roundTo(x float64, decimals int) float64 {
	shift := math.Pow(10, float64(decimals))
	return math.Round(x*shift) / shift
}

// scientificIndex resolves a scientific name to its position 0..107.
// Accidentals move along the letter's own octave, so B#4 is index 60 (C5)
// and Cb0 is out of range.
func scientificIndex(name string) (int, error) {
	if len(name) < 2 {
		return 0, errors.NewParse("scientific name", name, "want a note name with an octave numeral")
	}
	octave := int(name[len(name)-1] - '0')
	if octave < 0 || octave >= scientificOctaves {
		return 0, errors.NewParse("scientific name", name, "octave must be 0..8")
	}
	body := name[:len(name)-1]
	if strings.Contains(body, BinomialDivider) {
		pc, err := pitchClassOf(body)
		if err != nil {
			return 0, err
		}
		return octave*12 + pc, nil
	}
	n, err := note.Parse(body)
	if err != nil {
		return 0, err
	}
	idx := octave*12 + n.NaturalOffset() + n.Accidentals
	if idx < 0 || idx >= 12*scientificOctaves {
		return 0, errors.NewValidation("scientific name", fmt.Sprintf("%s lies outside C0..B8", name))
	}
	return idx, nil
}

// DecodeScientific reduces a scientific name with any accidentals to its
// canonical binomial form, carrying octave crossings (B#4 -> C5).
func DecodeScientific(name string) (string, error) {
	idx, err := scientificIndex(name)
	if err != nil {
		return "", err
	}
	return scientificBinomials()[idx], nil
}

// NoteToFrequency returns the equal-temperament frequency of a scientific
// note name, in Hz rounded to three decimals.
func NoteToFrequency(name string) (float64, error) {
	idx, err := scientificIndex(name)
	if err != nil {
		return 0, err
	}
	return frequencies()[idx], nil
}

// FrequencyToNote returns the scientific name sounding at the given
// frequency. The match is tried at decreasing precision so lightly
// rounded inputs such as 138.6 still find C#3.
func FrequencyToNote(freq float64, style Style) (string, error) {
	names := ScientificRange(style)
	want := roundTo(freq, 3)
	for _, decimals := range []int{3, 2, 1} {
		for i, f := range frequencies() {
			if roundTo(f, decimals) == want {
				return names[i], nil
			}
		}
	}
	return "", errors.NewNotFound("frequency", strconv.FormatFloat(freq, 'f', -1, 64))
}

// ForceHeptatonic spells a seven-tone scale so that each letter A-G
// appears exactly once, whatever accidental load that forces. The root
// may carry accidentals but must not be a binomial.
func ForceHeptatonic(root string, s interval.Structure) ([]string, error) {
	if strings.Contains(root, BinomialDivider) {
		return nil, errors.NewValidation("root", "binomial names cannot anchor a letter cycle")
	}
	n, err := note.Parse(root)
	if err != nil {
		return nil, err
	}
	if s.Cardinality() != 7 || s.Width() != interval.Octave {
		return nil, errors.NewValidation("structure", "want a close seven-tone structure")
	}
	rootPC := n.PitchClass()
	out := make([]string, 0, 7)
	for i, off := range s.Offsets() {
		letter := note.Name{Letter: (n.Letter + i) % 7}
		name, err := EncodeEnharmonic(chromaticBinomials()[(rootPC+off)%12], letter.String())
		if err != nil {
			return nil, err
		}
		out = append(out, name)
	}
	return out, nil
}

// BestHeptatonic spells a seven-tone scale from any root, binomials
// included, choosing between the sharp and flat readings of the root by
// fewest total accidentals, then by not mixing accidental types, then
// arbitrarily by sharps.
func BestHeptatonic(root string, s interval.Structure) ([]string, error) {
	canonical, err := DecodeEnharmonic(root)
	if err != nil {
		return nil, err
	}
	if !strings.Contains(canonical, BinomialDivider) {
		return ForceHeptatonic(canonical, s)
	}
	halves := strings.SplitN(canonical, BinomialDivider, 2)
	sharp, err := ForceHeptatonic(halves[0], s)
	if err != nil {
		return nil, err
	}
	flat, err := ForceHeptatonic(halves[1], s)
	if err != nil {
		return nil, err
	}
	if preferSharpSpelling(sharp, flat) {
		return sharp, nil
	}
	return flat, nil
}

// preferSharpSpelling compares two spellings of the same scale: fewest
// total accidentals wins, then the one that does not mix sharps and
// flats, then arbitrarily the sharp reading.
func preferSharpSpelling(sharp, flat []string) bool {
	count := func(scale []string) (sharps, flats int) {
		for _, n := range scale {
			sharps += strings.Count(n, note.Sharp)
			flats += strings.Count(n, note.Flat)
		}
		return
	}
	ss, sf := count(sharp)
	fs, ff := count(flat)
	switch {
	case ss+sf < fs+ff:
		return true
	case fs+ff < ss+sf:
		return false
	case ss > 0 && sf > 0 && !(fs > 0 && ff > 0):
		return false
	case fs > 0 && ff > 0 && !(ss > 0 && sf > 0):
		return true
	}
	return true
}
