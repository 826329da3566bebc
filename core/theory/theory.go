// Package theory composes the registry, nomenclature, transform, and
// symbol layers into value objects for callers: scale forms with their
// renderings, and chords that can be inverted, voiced, and named.
// Every transform returns a new value.
package theory

import (
	"slices"

	"github.com/FocuswithJustin/Harmonium/core/errors"
	"github.com/FocuswithJustin/Harmonium/core/interval"
	"github.com/FocuswithJustin/Harmonium/core/nomenclature"
	"github.com/FocuswithJustin/Harmonium/core/note"
	"github.com/FocuswithJustin/Harmonium/core/polychord"
	"github.com/FocuswithJustin/Harmonium/core/registry"
	"github.com/FocuswithJustin/Harmonium/core/symbol"
	"github.com/FocuswithJustin/Harmonium/core/transform"
	"github.com/FocuswithJustin/Harmonium/internal/logging"
)

// HeptatonicScale describes one mode of a canonical seven-tone scale
// rendered from a keynote. The requested rendering honors the keynote
// exactly as written; the recommended rendering respells it when an
// enharmonic keynote reads cleaner.
type HeptatonicScale struct {
	Keynote              string             `json:"keynote"`
	ScaleName            string             `json:"scale_name"`
	ModeName             string             `json:"mode_name"`
	Structure            interval.Structure `json:"interval_structure"`
	IntervalNames        []string           `json:"interval_names"`
	RequestedRendering   []string           `json:"requested_rendering"`
	RecommendedKeynote   string             `json:"recommended_keynote"`
	RecommendedRendering []string           `json:"recommended_rendering"`
}

// GetHeptatonicScale resolves a scale and mode name pair and renders it
// from the keynote. The scale name may be canonical, an alias, or a
// modal symbol with modifiers.
func GetHeptatonicScale(keynote, scaleName, modeName string) (*HeptatonicScale, error) {
	structure, err := registry.ResolveHeptatonic(scaleName, modeName)
	if err != nil {
		return nil, err
	}
	intervalNames, err := nomenclature.IntervalNames(structure, false)
	if err != nil {
		return nil, err
	}
	requested, err := nomenclature.ForceHeptatonic(keynote, structure)
	if err != nil {
		return nil, err
	}
	recommended, err := nomenclature.BestHeptatonic(keynote, structure)
	if err != nil {
		return nil, err
	}
	return &HeptatonicScale{
		Keynote:              keynote,
		ScaleName:            scaleName,
		ModeName:             modeName,
		Structure:            structure,
		IntervalNames:        intervalNames,
		RequestedRendering:   requested,
		RecommendedKeynote:   recommended[0],
		RecommendedRendering: recommended,
	}, nil
}

// GetScaleFromRequest reads a free-form key-and-scale symbol such as
// "E augmented lydian" or "eb_dia_dor" and resolves the scale it names.
func GetScaleFromRequest(request string) (*HeptatonicScale, error) {
	keynote, scaleName, modeName, err := registry.ResolveScaleRequest(request)
	if err != nil {
		return nil, err
	}
	return GetHeptatonicScale(keynote, scaleName, modeName)
}

// Roman returns the scale's degree symbols in Roman form.
func (s *HeptatonicScale) Roman() ([]string, error) {
	return nomenclature.RomanFromIntervalNames(s.IntervalNames)
}

// Steps names the step sizes between consecutive degrees.
func (s *HeptatonicScale) Steps() ([]string, error) {
	return nomenclature.StepFormula(s.Structure)
}

var powerChord = []string{"1", "5", "8"}

// Chord is an immutable chord voicing: note names and degree symbols in
// sounding order over an interval structure. Inversion is absolute,
// counted from root position, and always works on the re-closed chord,
// so inverting a voiced chord discards its voicing first.
type Chord struct {
	root      note.Name
	canonical []string
	intervals []string
	notes     []note.Name
	structure interval.Structure
	inversion int
	voicing   string
}

func newChord(root note.Name, sorted []string) (*Chord, error) {
	notes, err := nomenclature.NoteNamesFromIntervalNames(root, sorted)
	if err != nil {
		return nil, err
	}
	stacked, err := nomenclature.IntegersFromIntervalNames(sorted)
	if err != nil {
		return nil, err
	}
	return &Chord{
		root:      root,
		canonical: slices.Clone(sorted),
		intervals: slices.Clone(sorted),
		notes:     notes,
		structure: interval.FromOffsets(stacked...),
		voicing:   "close",
	}, nil
}

// Root is the note the chord is built on, whatever the current bass.
func (c *Chord) Root() note.Name { return c.root }

// NoteNames lists the sounding notes from the bass upward.
func (c *Chord) NoteNames() []string {
	out := make([]string, len(c.notes))
	for i, n := range c.notes {
		out[i] = n.String()
	}
	return out
}

// IntervalNames lists the degree symbols in sounding order.
func (c *Chord) IntervalNames() []string { return slices.Clone(c.intervals) }

// Structure is the sounding interval structure from the bass.
func (c *Chord) Structure() interval.Structure { return c.structure }

// Inversion is the applied inversion count, 0 for root position.
func (c *Chord) Inversion() int { return c.inversion }

// Voicing is the applied voicing keyword, "close" by default.
func (c *Chord) Voicing() string { return c.voicing }

// Symbol names the chord in root position regardless of the current
// inversion and voicing.
func (c *Chord) Symbol(style symbol.Style) (string, error) {
	if slices.Equal(c.canonical, powerChord) {
		return c.root.String() + "5", nil
	}
	suffix, err := symbol.Encode(c.canonical, style)
	if err != nil {
		return "", err
	}
	return c.root.String() + suffix, nil
}

// SlashSymbol names the chord with slash notation when the bass is not
// the root.
func (c *Chord) SlashSymbol(style symbol.Style) (string, error) {
	main, err := c.Symbol(style)
	if err != nil {
		return "", err
	}
	if c.inversion == 0 {
		return main, nil
	}
	return main + "/" + c.notes[0].String(), nil
}

// reset returns the close root position of the chord.
func (c *Chord) reset() (*Chord, error) {
	return newChord(c.root, c.canonical)
}

// Invert returns the chord rotated to the given inversion, counted from
// root position. A voiced chord is re-closed first, so the inversion of
// an inversion is not cumulative and any voicing is discarded.
func (c *Chord) Invert(k int) (*Chord, error) {
	base, err := c.reset()
	if err != nil {
		return nil, err
	}
	n := len(base.canonical)
	k = ((k % n) + n) % n
	rotated := append(slices.Clone(base.canonical[k:]), base.canonical[:k]...)
	notes := append(slices.Clone(base.notes[k:]), base.notes[:k]...)
	return &Chord{
		root:      base.root,
		canonical: base.canonical,
		intervals: rotated,
		notes:     notes,
		structure: base.structure.Rotate(k),
		inversion: k,
		voicing:   "close",
	}, nil
}

// Voice applies a drop voicing keyword ("open", "d2", "d3", "d23",
// "d24") to the current inversion. The bass stays in place.
func (c *Chord) Voice(voicing string) (*Chord, error) {
	pattern, ok := transform.Voicings[voicing]
	if !ok {
		return nil, &errors.VoicingError{Voicing: voicing, Message: "not a known voicing keyword"}
	}
	dropped, err := transform.Drop(c.structure, pattern)
	if err != nil {
		return nil, err
	}

	// Drop raises degrees by exactly one octave, so every new offset is
	// an original offset or an original offset plus twelve.
	type member struct {
		name string
		n    note.Name
	}
	byOffset := make(map[int]member, len(c.intervals))
	for i, o := range c.structure.Offsets() {
		byOffset[o] = member{c.intervals[i], c.notes[i]}
	}
	intervals := make([]string, 0, len(c.intervals))
	notes := make([]note.Name, 0, len(c.notes))
	for _, o := range dropped.Offsets() {
		m, ok := byOffset[o]
		if !ok {
			m = byOffset[o-interval.Octave]
		}
		intervals = append(intervals, m.name)
		notes = append(notes, m.n)
	}
	return &Chord{
		root:      c.root,
		canonical: c.canonical,
		intervals: intervals,
		notes:     notes,
		structure: dropped,
		inversion: c.inversion,
		voicing:   voicing,
	}, nil
}

// GetChordFromSymbol decodes a chord symbol into a chord value. A slash
// bass comes back as the matching inversion.
func GetChordFromSymbol(chordSymbol string) (*Chord, error) {
	p, err := symbol.Parse(chordSymbol)
	if err != nil {
		return nil, err
	}
	if p.IsRoman {
		return nil, errors.NewUnsupported("chord symbol",
			"Roman numeral roots have no note names without a key")
	}
	root, err := note.Parse(p.Root)
	if err != nil {
		return nil, err
	}
	// The octave of a power chord has no slot in the stack order, so the
	// decoded list is already in its sounding order.
	sorted := p.Intervals
	if !slices.Equal(p.Intervals, powerChord) {
		sorted, err = nomenclature.SortIntervalNames(p.Intervals)
		if err != nil {
			return nil, err
		}
	}
	chord, err := newChord(root, sorted)
	if err != nil {
		return nil, err
	}
	if p.Bass != "" {
		return chord.Invert(slices.Index(sorted, p.Intervals[0]))
	}
	return chord, nil
}

// GetChordSymbol names a structure from the keynote. The plain chord
// grammar is tried first; when it cannot reproduce the structure's
// pitch classes the polychord matcher takes over.
func GetChordSymbol(keynote string, s interval.Structure, style symbol.Style) (string, error) {
	suffix, err := symbol.FromStructure(s, style)
	if err == nil {
		candidate := keynote + suffix
		if names, decodeErr := symbol.Decode(candidate); decodeErr == nil && samePitchClasses(names, s) {
			return candidate, nil
		}
		err = errors.NewUnsupported("chord structure", "the chord grammar cannot reproduce it")
	}
	kn, parseErr := note.Parse(keynote)
	if parseErr != nil {
		return "", parseErr
	}
	compound, matchErr := polychord.Match(kn, s)
	if matchErr != nil {
		return "", errors.Wrap(err, "cannot name chord structure")
	}
	logging.SymbolFallback(s.String(), compound)
	return compound, nil
}

func samePitchClasses(names []string, s interval.Structure) bool {
	offsets, err := symbol.Integers(names)
	if err != nil {
		return false
	}
	var got, want uint64
	for _, o := range offsets {
		got |= 1 << uint(o%interval.Octave)
	}
	for p := range s.Pitches() {
		want |= 1 << uint(p%interval.Octave)
	}
	return got == want
}

// The chord member shapes a scale degree can be harmonized with.
const (
	FormTertial = "tertial"
	FormSus2    = "sus2"
	FormSus4    = "sus4"
)

// memberIndices lists which mode degrees a chord form stacks, counted
// from the chord root through the second octave.
func memberIndices(form string, size int) ([]int, error) {
	out := make([]int, size)
	for i := range out {
		out[i] = i * 2
	}
	switch form {
	case FormTertial:
	case FormSus2:
		out[1] = 1
	case FormSus4:
		out[1] = 3
	default:
		return nil, errors.NewValidation("form", "want tertial, sus2, or sus4")
	}
	return out, nil
}

// GetHeptatonicChord harmonizes one degree of a scale into a chord of
// the given size, then applies the requested inversion and voicing.
// Degrees run 1 to 7 and sizes 3 to 7.
func GetHeptatonicChord(keynote, scaleName, modeName string, degree, size int, inversion int, voicing, form string) (*Chord, error) {
	if degree < 1 || degree > 7 {
		return nil, &errors.DegreeError{Degree: degree, Limit: 7, Op: "harmonize"}
	}
	if size < 3 || size > 7 {
		return nil, &errors.DegreeError{Degree: size, Limit: 7, Op: "harmonize size"}
	}
	scale, err := GetHeptatonicScale(keynote, scaleName, modeName)
	if err != nil {
		return nil, err
	}
	indices, err := memberIndices(form, size)
	if err != nil {
		return nil, err
	}

	mode := scale.Structure.Rotate(degree - 1)
	octaveNames, err := nomenclature.IntervalNames(mode, true)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, size)
	for _, i := range indices {
		names = append(names, octaveNames[i])
	}

	rootName := scale.RequestedRendering[degree-1]
	root, err := note.Parse(rootName)
	if err != nil {
		return nil, err
	}
	chord, err := newChord(root, names)
	if err != nil {
		return nil, err
	}
	if inversion != 0 {
		chord, err = chord.Invert(inversion)
		if err != nil {
			return nil, err
		}
	}
	if voicing != "" && voicing != "close" {
		chord, err = chord.Voice(voicing)
		if err != nil {
			return nil, err
		}
	}
	return chord, nil
}
