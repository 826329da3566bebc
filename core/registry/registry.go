// Package registry is the canonical scale library: named interval
// structures grouped by cardinality, the modal series over the
// heptatonic forms, and the resolvers that turn names, aliases, and
// raw patterns back into canonical identities.
package registry

import (
	"fmt"
	"strconv"
	"sync"

	"github.com/FocuswithJustin/Harmonium/core/errors"
	"github.com/FocuswithJustin/Harmonium/core/interval"
)

// Canonical heptatonic scale names, in library search order. The order
// is part of the contract: pattern resolution reports the first family
// that contains a match.
const (
	Diatonic       = "diatonic"
	Altered        = "altered"
	Hemitonic      = "hemitonic"
	Hemiolic       = "hemiolic"
	Diminished     = "diminished"
	Augmented      = "augmented"
	Harmonic       = "harmonic"
	Biseptimal     = "biseptimal"
	Paleochromatic = "paleochromatic"
	Enigmatic      = "enigmatic"
	DoubleHarmonic = "double_harmonic"
	Neapolitan     = "neapolitan"
	Hungarian      = "hungarian"
	Persian        = "persian"
	Romanian       = "romanian"
)

// Modes is the modal series over any heptatonic base: index k names the
// k-th rotation.
var Modes = [7]string{
	"ionian", "dorian", "phrygian", "lydian", "mixolydian", "aeolian", "locrian",
}

// Group selects a scale family by cardinality.
type Group int

const (
	// GroupHeptatonic holds the seven-tone bases of the modal system.
	GroupHeptatonic Group = iota
	// GroupOctatonic holds the eight-tone sixth-diminished scales.
	GroupOctatonic
	// GroupHexatonic holds the six-tone forms.
	GroupHexatonic
	// GroupPentatonic holds the five-tone forms.
	GroupPentatonic
)

func (g Group) String() string {
	switch g {
	case GroupHeptatonic:
		return "heptatonic"
	case GroupOctatonic:
		return "octatonic"
	case GroupHexatonic:
		return "hexatonic"
	case GroupPentatonic:
		return "pentatonic"
	}
	return fmt.Sprintf("group(%d)", int(g))
}

type entry struct {
	name      string
	structure interval.Structure
}

var groups = sync.OnceValue(func() map[Group][]entry {
	return map[Group][]entry{
		GroupHeptatonic: {
			{Diatonic, interval.FromOffsets(0, 2, 4, 5, 7, 9, 11)},
			{Altered, interval.FromOffsets(0, 1, 3, 4, 6, 8, 10)},
			{Hemitonic, interval.FromOffsets(0, 1, 4, 5, 7, 9, 11)},
			{Hemiolic, interval.FromOffsets(0, 3, 4, 5, 7, 9, 11)},
			{Diminished, interval.FromOffsets(0, 2, 4, 5, 6, 9, 11)},
			{Augmented, interval.FromOffsets(0, 2, 4, 5, 8, 9, 11)},
			{Harmonic, interval.FromOffsets(0, 2, 4, 5, 7, 8, 11)},
			{Biseptimal, interval.FromOffsets(0, 2, 4, 5, 7, 10, 11)},
			{Paleochromatic, interval.FromOffsets(0, 1, 4, 5, 6, 9, 11)},
			{Enigmatic, interval.FromOffsets(0, 1, 4, 6, 8, 10, 11)},
			{DoubleHarmonic, interval.FromOffsets(0, 1, 4, 5, 7, 8, 11)},
			{Neapolitan, interval.FromOffsets(0, 1, 3, 5, 7, 9, 11)},
			{Hungarian, interval.FromOffsets(0, 3, 4, 6, 7, 9, 10)},
			{Persian, interval.FromOffsets(0, 1, 4, 5, 6, 8, 11)},
			{Romanian, interval.FromOffsets(0, 1, 4, 6, 7, 9, 10)},
		},
		GroupOctatonic: {
			{"maj_6_diminished", interval.FromOffsets(0, 2, 4, 5, 7, 8, 9, 11)},
			{"min_6_diminished", interval.FromOffsets(0, 2, 3, 5, 7, 8, 9, 11)},
			{"dom_7_diminished", interval.FromOffsets(0, 2, 4, 5, 7, 8, 10, 11)},
			{"dom_7_flat_5_diminished", interval.FromOffsets(0, 2, 4, 5, 6, 8, 10, 11)},
		},
		GroupHexatonic: {
			{"istrian", interval.FromOffsets(0, 1, 3, 4, 6, 7)},
			{"whole_tone", interval.FromOffsets(0, 2, 4, 6, 8, 10)},
			{"blues", interval.FromOffsets(0, 3, 5, 6, 7, 10)},
			{"major_blues", interval.FromOffsets(0, 2, 3, 4, 7, 9)},
		},
		GroupPentatonic: {
			{"minor_pentatonic", interval.FromOffsets(0, 3, 5, 7, 10)},
			{"pelog_pentatonic", interval.FromOffsets(0, 1, 3, 7, 8)},
			{"in", interval.FromOffsets(0, 1, 5, 7, 8)},
			{"insen", interval.FromOffsets(0, 1, 5, 7, 10)},
			{"iwato", interval.FromOffsets(0, 1, 5, 6, 10)},
			{"dominant_pentatonic", interval.FromOffsets(0, 2, 4, 7, 10)},
		},
	}
})

// searchOrder is the group order for pattern resolution.
var searchOrder = [4]Group{GroupHeptatonic, GroupHexatonic, GroupPentatonic, GroupOctatonic}

// Names returns the scale names of a group in library order.
func Names(g Group) []string {
	entries := groups()[g]
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.name
	}
	return out
}

// Lookup returns the base structure of a named scale from any group.
func Lookup(name string) (interval.Structure, error) {
	for _, g := range searchOrder {
		for _, e := range groups()[g] {
			if e.name == name {
				return e.structure, nil
			}
		}
	}
	return interval.Structure{}, errors.NewNotFound("scale", name)
}

// ModeIndex returns the rotation number of a canonical mode name.
func ModeIndex(mode string) (int, error) {
	for i, m := range Modes {
		if m == mode {
			return i, nil
		}
	}
	return 0, errors.NewNotFound("mode", mode)
}

// ResolveHeptatonic resolves a scale name and mode into a concrete
// interval structure. The scale may be a canonical base, a bare mode
// name (read against the diatonic base), or a known alias. The mode may
// be empty (ionian), a canonical mode name, or a rotation digit.
func ResolveHeptatonic(scale, mode string) (interval.Structure, error) {
	if _, err := Lookup(scale); err != nil {
		if aliasScale, aliasMode, aliasErr := ResolveAlias(scale); aliasErr == nil {
			return ResolveHeptatonic(aliasScale, aliasMode)
		}
	}

	rotations := 0
	switch {
	case mode == "":
	case isDigits(mode):
		rotations, _ = strconv.Atoi(mode)
	default:
		i, err := ModeIndex(mode)
		if err != nil {
			return interval.Structure{}, errors.NewParse("mode name", mode, "want a canonical mode or rotation digit")
		}
		rotations = i
	}

	for _, e := range groups()[GroupHeptatonic] {
		if e.name == scale {
			return e.structure.Rotate(rotations % 7), nil
		}
	}
	if _, err := Lookup(scale); err == nil {
		return interval.Structure{}, errors.NewUnsupported("scale "+scale, "names a non-heptatonic form with no modal series")
	}
	return interval.Structure{}, errors.NewNotFound("scale", scale)
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// Pattern identifies a scale structure within the library.
type Pattern struct {
	Structure interval.Structure `json:"interval_structure"`
	ScaleName string             `json:"scale_name"`
	ModeName  string             `json:"mode_name"`
	Aliases   []string           `json:"aliases,omitempty"`
}

// ResolveStructure searches the library for a structure, comparing
// pitch-class sets against every rotation of every base form. Heptatonic
// matches report their canonical mode name and must be unique across the
// base families; the smaller groups deliberately name certain rotations
// of the same parent as distinct scales (blues is a rotation of
// major_blues, in of iwato), so there the first match in library order
// wins.
func ResolveStructure(s interval.Structure) (Pattern, error) {
	if s.IsZero() {
		return Pattern{}, errors.NewValidation("structure", "empty structure")
	}
	folded := foldPitchClasses(s)
	var heptatonic []Pattern
	for _, e := range groups()[GroupHeptatonic] {
		for k := 0; k < 7; k++ {
			if e.structure.Rotate(k).Bits() == folded {
				heptatonic = append(heptatonic, Pattern{
					Structure: s,
					ScaleName: e.name,
					ModeName:  Modes[k],
					Aliases:   aliasesFor(e.name, k),
				})
				break
			}
		}
	}
	if len(heptatonic) == 1 {
		return heptatonic[0], nil
	}
	if len(heptatonic) > 1 {
		names := make([]string, len(heptatonic))
		for i, m := range heptatonic {
			names[i] = m.ScaleName + " " + m.ModeName
		}
		return Pattern{}, errors.NewAmbiguity(s.String(), names)
	}

	for _, g := range searchOrder[1:] {
		for _, e := range groups()[g] {
			for k := 0; k < e.structure.Cardinality(); k++ {
				if e.structure.Rotate(k).Bits() != folded {
					continue
				}
				return Pattern{
					Structure: s,
					ScaleName: e.name,
					ModeName:  strconv.Itoa(k + 1),
					Aliases:   aliasesFor(e.name, k),
				}, nil
			}
		}
	}
	if s.Cardinality() != 7 {
		if p, ok := hostFor(s); ok {
			return p, nil
		}
	}
	return Pattern{}, errors.NewNotFound("scale pattern", s.String())
}

// hostFor locates a structure that is no scale form of its own, such as
// a chord or a voiced fragment, inside the library: the first form in
// library order with a rotation sounding every pitch class of the
// structure's lowest tetrad hosts it, and the rotation number stands in
// for a mode name.
func hostFor(s interval.Structure) (Pattern, bool) {
	offsets := s.Offsets()
	n := min(4, len(offsets))
	tetrad := foldPitchClasses(interval.FromOffsets(offsets[:n]...))
	for _, g := range searchOrder {
		for _, e := range groups()[g] {
			for k := 0; k < e.structure.Cardinality(); k++ {
				bits := e.structure.Rotate(k).Bits()
				if bits&tetrad != tetrad {
					continue
				}
				return Pattern{
					Structure: s,
					ScaleName: e.name,
					ModeName:  strconv.Itoa(k + 1),
					Aliases:   aliasesFor(e.name, k),
				}, true
			}
		}
	}
	return Pattern{}, false
}

// foldPitchClasses reduces a structure to its one-octave pitch-class
// bitmask.
func foldPitchClasses(s interval.Structure) uint64 {
	var bits uint64
	for p := range s.Pitches() {
		bits |= 1 << uint(p%interval.Octave)
	}
	return bits
}
