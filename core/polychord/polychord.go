// Package polychord reads and writes polychord notation: two or more
// chord symbols joined by "@", each sounding above the previous one.
// The matcher runs the other way, naming a structure as a superposition
// of two catalog chords when plain chord grammar cannot express it
// economically.
package polychord

import (
	"strings"

	"github.com/FocuswithJustin/Harmonium/core/errors"
	"github.com/FocuswithJustin/Harmonium/core/interval"
	"github.com/FocuswithJustin/Harmonium/core/nomenclature"
	"github.com/FocuswithJustin/Harmonium/core/note"
	"github.com/FocuswithJustin/Harmonium/core/symbol"
	"github.com/FocuswithJustin/Harmonium/core/transform"
)

// Divider joins the stacked chord symbols.
const Divider = "@"

// OctaveMark shifts the following chord up one octave per mark, so
// "Cmaj@^@Dmin" sounds the D minor a ninth above rather than a second.
const OctaveMark = "^"

// Parse decodes a polychord symbol into a single interval structure.
// Every chord after the first is placed so its bass sounds at the
// chromatic distance from the previous bass, measured upward within
// one octave; octave marks widen that distance.
func Parse(compound string) (interval.Structure, error) {
	parts := strings.Split(compound, Divider)
	if len(parts) < 2 {
		return interval.Structure{}, errors.NewParse("polychord", compound, "want at least two chords joined by @")
	}

	var bits uint64
	distance := 0
	prevBass := -1
	for _, part := range parts {
		if part != "" && strings.Count(part, OctaveMark) == len(part) {
			distance += interval.Octave * len(part)
			continue
		}
		p, err := symbol.Parse(part)
		if err != nil {
			return interval.Structure{}, err
		}
		if p.IsRoman {
			return interval.Structure{}, errors.NewParse("polychord", compound, "polychords use note-name roots")
		}
		offsets, err := stackFromBass(p.Intervals)
		if err != nil {
			return interval.Structure{}, err
		}
		bass, err := bassPitchClass(p)
		if err != nil {
			return interval.Structure{}, err
		}
		if prevBass >= 0 {
			step := (bass - prevBass) % interval.Octave
			if step < 0 {
				step += interval.Octave
			}
			distance += step
		}
		prevBass = bass
		for _, o := range offsets {
			bits |= 1 << uint(o+distance)
		}
	}
	return interval.FromBits(bits)
}

// stackFromBass places degree names in ascending order from the first
// name, each within an octave of its predecessor. This respects slash
// rotations, where the written order is the sounding order.
func stackFromBass(names []string) ([]int, error) {
	values, err := symbol.Integers(names)
	if err != nil {
		return nil, err
	}
	out := make([]int, len(values))
	for i := 1; i < len(values); i++ {
		step := (values[i] - values[i-1]) % interval.Octave
		if step <= 0 {
			step += interval.Octave
		}
		out[i] = out[i-1] + step
	}
	return out, nil
}

func bassPitchClass(p *symbol.Parsed) (int, error) {
	name := p.Root
	if p.Bass != "" {
		name = p.Bass
	}
	n, err := note.Parse(name)
	if err != nil {
		return 0, err
	}
	return n.PitchClass(), nil
}

// match is one way of reading a structure as base plus superimposed
// chord.
type match struct {
	total     int
	degree    int
	rootPitch int
	rendered  string
}

// Match names a structure rooted on the keynote as a pair of catalog
// chords. The base is any catalog triad or tetrad sounding from the
// bass; the upper chord is tested at every chromatic degree within the
// double octave, in every inversion. Of all readings, the one with the
// fewest total notes wins, then the one with the lowest superimposed
// root.
func Match(keynote note.Name, s interval.Structure) (string, error) {
	if s.IsZero() {
		return "", errors.NewValidation("structure", "empty structure")
	}
	target := s.Bits()
	catalog := append(append([]symbol.Quality{}, symbol.Triads()...), symbol.Tetrads()...)

	var best *match
	for _, base := range catalog {
		baseBits := base.Structure.Bits()
		if baseBits&target != baseBits {
			continue
		}
		for degree := 1; degree <= 2*interval.Octave; degree++ {
			for _, upper := range catalog {
				k := 0
				for inv := range transform.Inversions(upper.Structure) {
					union := baseBits | inv.Bits()<<uint(degree)
					if union != target {
						k++
						continue
					}
					root := degree + rootOffset(upper.Structure, k)
					m := &match{
						total:     base.Structure.Cardinality() + upper.Structure.Cardinality(),
						degree:    degree,
						rootPitch: root,
						rendered:  render(keynote, base, upper, degree, k),
					}
					if better(m, best) {
						best = m
					}
					k++
				}
			}
		}
	}
	if best == nil {
		return "", errors.NewNotFound("polychord reading", s.String())
	}
	return best.rendered, nil
}

func better(m, best *match) bool {
	if best == nil {
		return true
	}
	if m.total != best.total {
		return m.total < best.total
	}
	return m.rootPitch < best.rootPitch
}

// rootOffset is the distance from the bass of the k-th inversion up to
// the chord's root.
func rootOffset(q interval.Structure, k int) int {
	if k == 0 {
		return 0
	}
	return q.Width() - q.Offsets()[k]
}

func render(keynote note.Name, base, upper symbol.Quality, degree, inversion int) string {
	var b strings.Builder
	b.WriteString(noteAt(keynote, 0))
	b.WriteString(base.Symbol)
	b.WriteString(Divider)
	root := noteAt(keynote, degree+rootOffset(upper.Structure, inversion))
	b.WriteString(root)
	b.WriteString(upper.Symbol)
	if inversion > 0 {
		b.WriteString("/")
		b.WriteString(noteAt(keynote, degree))
	}
	return b.String()
}

// noteAt spells the pitch the given number of semitones above the
// keynote, in the sharp chromatic by default and in flats when the
// keynote itself is flat.
func noteAt(keynote note.Name, semitones int) string {
	style := nomenclature.StyleSharp
	if keynote.Accidentals < 0 {
		style = nomenclature.StyleFlat
	}
	chromatic := nomenclature.Chromatic(style)
	return chromatic[((keynote.PitchClass()+semitones)%interval.Octave+interval.Octave)%interval.Octave]
}
