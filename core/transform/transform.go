// Package transform contains the structural transforms over interval
// structures: inversion cycling, close folding, drop voicings, and
// chordification of scale material.
package transform

import (
	"iter"

	"github.com/FocuswithJustin/Harmonium/core/errors"
	"github.com/FocuswithJustin/Harmonium/core/interval"
)

// DropPattern names the degree positions (1-indexed from the bass in the
// current ordering) that a drop voicing displaces up one octave. Raising
// rather than lowering keeps the voicing in the same inversion.
type DropPattern []int

// The standard voicing patterns. A drop-2 voicing displaces the second
// position, counted here from the bass upward after the structure is
// written top-down in the traditional naming.
var (
	Drop2     = DropPattern{1}
	Drop3     = DropPattern{1, 2}
	Drop2And3 = DropPattern{2}
	Drop2And4 = DropPattern{1, 3}
	// SpreadTriad opens a close triad; structurally a drop-2.
	SpreadTriad = Drop2
)

// Voicings maps the request keywords to their patterns. "open" is the
// generic request and resolves to drop-2.
var Voicings = map[string]DropPattern{
	"open": Drop2,
	"d2":   Drop2,
	"d3":   Drop3,
	"d23":  Drop2And3,
	"d24":  Drop2And4,
}

// Inversions yields every rotation of the structure exactly once,
// starting from the given form. The sequence is finite and restartable.
func Inversions(s interval.Structure) iter.Seq[interval.Structure] {
	return func(yield func(interval.Structure) bool) {
		for k := 0; k < s.Cardinality(); k++ {
			if !yield(s.Rotate(k)) {
				return
			}
		}
	}
}

// Close folds every degree to its smallest representative above the bass,
// producing the close voicing in the same inversion. Close is idempotent.
func Close(s interval.Structure) interval.Structure {
	folded := make([]int, 0, s.Cardinality())
	for p := range s.Pitches() {
		folded = append(folded, p%interval.Octave)
	}
	out, _ := interval.New(interval.Octave, folded...)
	return out
}

// IsClose reports whether every degree already sounds within the first
// octave above the bass.
func IsClose(s interval.Structure) bool {
	offs := s.Offsets()
	return offs[len(offs)-1] < interval.Octave
}

// Drop displaces the degrees at the pattern's positions up one octave.
// Position 0 (the bass) is illegal: displacing it would change the
// inversion. Positions beyond the last degree are ignored, so tetrad
// patterns degrade gracefully on triads. Degrees already sounding above
// the first octave are left where they are, so re-voicing never stacks
// octaves onto an already displaced note.
func Drop(s interval.Structure, pattern DropPattern) (interval.Structure, error) {
	orig := s.Offsets()
	width := s.Width()
	displaced := make(map[int]bool, len(pattern))
	raised := make([]int, 0, len(pattern))
	for _, i := range pattern {
		if i == 0 {
			return interval.Structure{}, &errors.VoicingError{
				Voicing: "drop",
				Message: "position 0 is the bass and cannot be displaced",
			}
		}
		if i < 0 || i >= len(orig) || displaced[i] || orig[i] >= interval.Octave {
			continue
		}
		displaced[i] = true
		r := orig[i] + interval.Octave
		raised = append(raised, r)
		for width <= r {
			width += interval.Octave
		}
	}
	kept := make([]int, 0, len(orig))
	for idx, o := range orig {
		if !displaced[idx] {
			kept = append(kept, o)
		}
	}
	return interval.New(width, append(kept, raised...)...)
}

// Chordify stacks every step-th degree of the scale starting from the
// given degree (0-based), producing a chord of the requested size rooted
// on that degree. step 2 yields tertial harmony, step 3 quartal. The
// scale is extended into a second octave when the chord overflows it.
func Chordify(scale interval.Structure, degree, size, step int) (interval.Structure, error) {
	n := scale.Cardinality()
	if degree < 0 || degree >= n {
		return interval.Structure{}, &errors.DegreeError{Degree: degree + 1, Limit: n, Op: "chordify"}
	}
	if size < 1 || size > n {
		return interval.Structure{}, &errors.DegreeError{Degree: size, Limit: n, Op: "chordify size"}
	}
	if step < 1 {
		return interval.Structure{}, errors.NewValidation("step", "step must be at least 1")
	}
	mode := scale.Rotate(degree)
	if (size-1)*step >= n {
		mode = mode.Extend(1)
	}
	offs := mode.Offsets()
	chord := make([]int, 0, size)
	for i := 0; i < size; i++ {
		chord = append(chord, offs[i*step])
	}
	return interval.New(mode.Width(), chord...)
}
