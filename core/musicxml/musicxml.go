// Package musicxml imports note material from MusicXML scores. Only the
// pitch surface is read: the step, alter and octave of every sounding
// note, in document order. Durations, voices, ties and layout are ignored.
package musicxml

import (
	"bytes"
	"strconv"
	"strings"

	"github.com/antchfx/xmlquery"

	"github.com/FocuswithJustin/Harmonium/core/errors"
	"github.com/FocuswithJustin/Harmonium/core/interval"
	"github.com/FocuswithJustin/Harmonium/core/note"
)

// Pitch is one sounding note of a score: a spelled name plus a MusicXML
// octave number. Octave 4 begins at middle C.
type Pitch struct {
	Name   note.Name
	Octave int
}

// String renders the pitch in scientific notation, e.g. "Eb4".
func (p Pitch) String() string {
	return p.Name.String() + strconv.Itoa(p.Octave)
}

// Semitone returns the absolute chromatic position in semitones above C0.
// Spelling is honored, so B#3 sits twelve semitones below B#4 even though
// both sound as C naturals.
func (p Pitch) Semitone() int {
	return p.Octave*interval.Octave + p.Name.NaturalOffset() + p.Name.Accidentals
}

// Score is a parsed MusicXML document.
type Score struct {
	root *xmlquery.Node
}

// Parse reads a MusicXML document. The document must be well formed; it
// does not have to be schema valid.
func Parse(data []byte) (*Score, error) {
	root, err := xmlquery.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, errors.NewParse("MusicXML", "", err.Error())
	}
	return &Score{root: root}, nil
}

// Pitches extracts every sounding note in document order. Rests carry no
// pitch element and are skipped.
func (s *Score) Pitches() ([]Pitch, error) {
	nodes, err := xmlquery.QueryAll(s.root, "//note/pitch")
	if err != nil {
		return nil, errors.Wrap(err, "querying pitches")
	}
	out := make([]Pitch, 0, len(nodes))
	for _, n := range nodes {
		p, err := readPitch(n)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

// PartPitches extracts the sounding notes of a single part, selected by
// its id attribute.
func (s *Score) PartPitches(partID string) ([]Pitch, error) {
	part, err := xmlquery.Query(s.root, "//part[@id='"+partID+"']")
	if err != nil {
		return nil, errors.Wrap(err, "querying part")
	}
	if part == nil {
		return nil, errors.NewNotFound("part", partID)
	}
	nodes, err := xmlquery.QueryAll(part, ".//note/pitch")
	if err != nil {
		return nil, errors.Wrap(err, "querying pitches")
	}
	out := make([]Pitch, 0, len(nodes))
	for _, n := range nodes {
		p, err := readPitch(n)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

// Structure condenses the whole score into one interval structure, with
// the first note as the bass.
func (s *Score) Structure() (interval.Structure, error) {
	pitches, err := s.Pitches()
	if err != nil {
		return interval.Structure{}, err
	}
	return Condense(pitches)
}

// readPitch decodes a <pitch> element. The step is a bare letter; alter
// is a signed semitone count and becomes the accidental.
func readPitch(n *xmlquery.Node) (Pitch, error) {
	step := strings.TrimSpace(childText(n, "step"))
	name, err := note.Parse(step)
	if err != nil {
		return Pitch{}, errors.NewParse("MusicXML", step, "step must be a letter A-G")
	}
	if alter := strings.TrimSpace(childText(n, "alter")); alter != "" {
		v, err := strconv.Atoi(alter)
		if err != nil {
			return Pitch{}, errors.NewParse("MusicXML", alter, "alter must be an integer")
		}
		name.Accidentals = v
	}
	octave := strings.TrimSpace(childText(n, "octave"))
	oct, err := strconv.Atoi(octave)
	if err != nil {
		return Pitch{}, errors.NewParse("MusicXML", octave, "octave must be an integer")
	}
	return Pitch{Name: name, Octave: oct}, nil
}

func childText(n *xmlquery.Node, name string) string {
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		if child.Type == xmlquery.ElementNode && child.Data == name {
			return child.InnerText()
		}
	}
	return ""
}

// Condense folds a note sequence into an interval structure. The first
// pitch becomes the bass; every later pitch must not sound below it.
// Repeated pitches collapse into one degree.
func Condense(pitches []Pitch) (interval.Structure, error) {
	if len(pitches) == 0 {
		return interval.Structure{}, errors.NewValidation("pitches", "no sounding notes")
	}
	bass := pitches[0].Semitone()
	offsets := make([]int, 0, len(pitches))
	for _, p := range pitches {
		o := p.Semitone() - bass
		if o < 0 {
			return interval.Structure{}, errors.NewValidation("pitches", p.String()+" sounds below the bass")
		}
		offsets = append(offsets, o)
	}
	return interval.FromOffsets(offsets...), nil
}
