// Package interval models interval structures: the canonical bit-set form
// of a chord or scale. A Structure holds ascending semitone offsets above
// the bass plus an explicit width in semitone slots, so that a rotation
// knows how far wrapped degrees must be displaced without inferring the
// octave span from the highest sounding note.
package interval

import (
	"encoding/json"
	"fmt"
	"iter"
	"slices"

	"github.com/FocuswithJustin/Harmonium/core/errors"
)

// Octave is the number of semitone slots in one octave.
const Octave = 12

// Structure is an immutable interval structure. The zero value is empty
// and invalid; build one with New or FromOffsets.
type Structure struct {
	offsets []int
	width   int
}

// New builds a Structure with an explicit width. The offsets must include
// the bass (0), must be non-negative, and must fit below the width.
func New(width int, offsets ...int) (Structure, error) {
	if width <= 0 || width%Octave != 0 {
		return Structure{}, errors.NewValidation("width", fmt.Sprintf("width must be a positive multiple of %d, got %d", Octave, width))
	}
	out := slices.Clone(offsets)
	slices.Sort(out)
	out = slices.Compact(out)
	if len(out) == 0 || out[0] != 0 {
		return Structure{}, errors.NewValidation("offsets", "structure must contain the bass offset 0")
	}
	if out[len(out)-1] >= width {
		return Structure{}, errors.NewValidation("offsets", fmt.Sprintf("offset %d does not fit below width %d", out[len(out)-1], width))
	}
	return Structure{offsets: out, width: width}, nil
}

// FromOffsets builds a Structure whose width is the smallest whole number
// of octaves that holds every offset. It panics on an invalid offset set;
// it is intended for compiled-in tables and already-validated data.
func FromOffsets(offsets ...int) Structure {
	width := Octave
	for _, o := range offsets {
		for o >= width {
			width += Octave
		}
	}
	s, err := New(width, offsets...)
	if err != nil {
		panic(err)
	}
	return s
}

// Offsets returns a copy of the ascending semitone offsets.
func (s Structure) Offsets() []int {
	return slices.Clone(s.offsets)
}

// Width returns the declared width in semitone slots.
func (s Structure) Width() int {
	return s.width
}

// Cardinality returns the number of sounding degrees.
func (s Structure) Cardinality() int {
	return len(s.offsets)
}

// IsZero reports whether the structure is the empty zero value.
func (s Structure) IsZero() bool {
	return len(s.offsets) == 0
}

// Contains reports whether the given offset sounds in the structure.
func (s Structure) Contains(offset int) bool {
	_, ok := slices.BinarySearch(s.offsets, offset)
	return ok
}

// With returns a structure that additionally sounds the given offset,
// widening if the offset does not fit.
func (s Structure) With(offset int) Structure {
	if s.Contains(offset) {
		return s
	}
	width := s.width
	for offset >= width {
		width += Octave
	}
	out, _ := New(width, append(s.Offsets(), offset)...)
	return out
}

// Without returns a structure without the given offset. Removing the bass
// is not allowed and returns the receiver unchanged.
func (s Structure) Without(offset int) Structure {
	if offset == 0 || !s.Contains(offset) {
		return s
	}
	kept := make([]int, 0, len(s.offsets)-1)
	for _, o := range s.offsets {
		if o != offset {
			kept = append(kept, o)
		}
	}
	out, _ := New(s.width, kept...)
	return out
}

// Equal reports offset-set and width equality.
func (s Structure) Equal(other Structure) bool {
	return s.width == other.width && slices.Equal(s.offsets, other.offsets)
}

// EqualPitches reports whether two structures sound the same offsets,
// ignoring declared width.
func (s Structure) EqualPitches(other Structure) bool {
	return slices.Equal(s.offsets, other.offsets)
}

// Rotate rephrases the structure from the perspective of its k-th degree:
// the k-th lowest offset becomes the new bass and every degree below it
// wraps upward by the declared width. Rotating by the cardinality yields
// the original structure.
func (s Structure) Rotate(k int) Structure {
	n := len(s.offsets)
	if n == 0 {
		return s
	}
	k = ((k % n) + n) % n
	base := s.offsets[k]
	out := make([]int, n)
	for i := range n {
		j := (i + k) % n
		wrap := ((i + k) / n) * s.width
		out[i] = s.offsets[j] - base + wrap
	}
	r, _ := New(s.width, out...)
	return r
}

// Extend appends the structure's degrees shifted up by whole octaves, so
// Extend(1) doubles a one-octave scale into a two-octave run.
func (s Structure) Extend(octaves int) Structure {
	if octaves <= 0 {
		return s
	}
	out := s.Offsets()
	for oct := 1; oct <= octaves; oct++ {
		for _, o := range s.offsets {
			out = append(out, o+oct*s.width)
		}
	}
	r, _ := New(s.width*(octaves+1), out...)
	return r
}

// Pitches iterates the sounding offsets in ascending order.
func (s Structure) Pitches() iter.Seq[int] {
	return func(yield func(int) bool) {
		for _, o := range s.offsets {
			if !yield(o) {
				return
			}
		}
	}
}

// Bits packs the structure into a bitmask with the bass at bit 0. Offsets
// beyond 63 semitones do not occur in tonal material and are rejected by
// the width validation long before this point.
func (s Structure) Bits() uint64 {
	var b uint64
	for _, o := range s.offsets {
		b |= 1 << uint(o)
	}
	return b
}

// FromBits unpacks a bitmask produced by Bits. Bit 0 must be set.
func FromBits(bits uint64) (Structure, error) {
	if bits&1 == 0 {
		return Structure{}, errors.NewValidation("bits", "bit 0 (the bass) must be set")
	}
	var offsets []int
	for i := 0; i < 64; i++ {
		if bits&(1<<uint(i)) != 0 {
			offsets = append(offsets, i)
		}
	}
	return FromOffsets(offsets...), nil
}

// MarshalJSON renders the structure as its offset list.
func (s Structure) MarshalJSON() ([]byte, error) {
	if s.offsets == nil {
		return json.Marshal([]int{})
	}
	return json.Marshal(s.offsets)
}

// UnmarshalJSON reads an offset list. The width becomes the smallest
// whole number of octaves holding every offset, so an extended width
// does not survive a round trip.
func (s *Structure) UnmarshalJSON(data []byte) error {
	var offsets []int
	if err := json.Unmarshal(data, &offsets); err != nil {
		return err
	}
	if len(offsets) == 0 {
		*s = Structure{}
		return nil
	}
	width := Octave
	for _, o := range offsets {
		for o >= width {
			width += Octave
		}
	}
	out, err := New(width, offsets...)
	if err != nil {
		return err
	}
	*s = out
	return nil
}

// String renders the structure as its offset list, e.g. "(0 4 7 10)".
func (s Structure) String() string {
	return fmt.Sprintf("%v", s.offsets)
}
