package registry

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/FocuswithJustin/Harmonium/core/errors"
	"github.com/FocuswithJustin/Harmonium/core/interval"
	"github.com/FocuswithJustin/Harmonium/core/nomenclature"
)

// Abbreviation families for alias and request matching. Every family
// lists its spellings longest first so the regexp engine never stops at
// a prefix.
const (
	reMaj  = `(?:major|maj)`
	reDom  = `(?:dominant|dom)`
	reMin  = `(?:minor|min)`
	rePent = `(?:pentatonic|pent)`
	reSup  = `(?:super|sup)`
	reNat  = `(?:natural|nat|n)`
	reMel  = `(?:melodic|melod|mel)`
	reHarm = `(?:harmonic|harmon|harm)`
	reAug  = `(?:augmented|aug)`
	reDim  = `(?:diminished|dimin|dim)`
	reAlt  = `(?:altered|alt)`
	reUlt  = `(?:ultra|ult)`
	reNeap = `(?:neapolitan|neapolit|neapol|neap|nea)`
	reUkr  = `(?:ukrainian|ukranian|ukran|ukr)`
	reHng  = `(?:hungarian|hungar|hung|hun)`
	reGyp  = `(?:gypsy|gyp|romani|rom)`

	reIon = `(?:ionian|ion)`
	reDor = `(?:dorian|dor)`
	rePhr = `(?:phrygian|phryg|phry|phr)`
	reLyd = `(?:lydian|lyd)`
	reMix = `(?:mixolydian|mixolyd|mixo|mix)`
	reAeo = `(?:aeolian|aeol|aeo)`
	reLoc = `(?:locrian|locr|loc)`
)

const joiner = `(?: |_)*`

// aliasPattern anchors a sequence of word families into a complete,
// case-insensitive alias matcher.
func aliasPattern(parts ...string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)^` + joiner + strings.Join(parts, joiner) + joiner + `$`)
}

type alias struct {
	name  string
	re    *regexp.Regexp
	scale string
	// mode is a canonical mode name for heptatonic targets and a
	// rotation digit for the smaller groups.
	mode string
}

// Traditional and genre names for library scale forms, in match order.
// Earlier entries win, so the unmodified families come before their
// altered variants.
var scaleAliases = []alias{
	{"major", aliasPattern(reMaj), Diatonic, "ionian"},
	{"dominant", aliasPattern(reDom), Diatonic, "mixolydian"},
	{"minor", aliasPattern(reMin), Diatonic, "aeolian"},

	{"major pentatonic", aliasPattern(reMaj, rePent), "minor_pentatonic", "1"},
	{"minor blues", aliasPattern(reMin, `(?:blues|blu)`), "blues", "0"},
	{"african pentatonic", aliasPattern(`(?:african|afric|afr)`, rePent), "dominant_pentatonic", "0"},
	{"pelog pentatonic", aliasPattern(rePhr, rePent), "pelog_pentatonic", "0"},

	{"super locrian", aliasPattern(reSup, reLoc), Altered, "ionian"},
	{"altered dominant", aliasPattern(reAlt, reDom), Altered, "ionian"},
	{"melodic minor", aliasPattern(reMel, reMin), Altered, "dorian"},
	{"lydian augmented", aliasPattern(reLyd, reAug), Altered, "lydian"},
	{"lydian dominant", aliasPattern(reLyd, reDom), Altered, "mixolydian"},
	{"acoustic", aliasPattern(`(?:acoustic|acoust|acou)(?:(?: |_)*scale)?`), Altered, "mixolydian"},
	{"aeolian dominant", aliasPattern(reAeo, reDom), Altered, "aeolian"},
	{"half diminished", aliasPattern(`half`, reDim), Altered, "locrian"},

	{"augmented major", aliasPattern(reAug, reMaj), Augmented, "ionian"},
	{"ukrainian dorian", aliasPattern(reUkr, reDor), Augmented, "dorian"},
	{"romanian minor", aliasPattern(`romanian`, reMin), Augmented, "dorian"},
	{"phrygian dominant", aliasPattern(rePhr, reDom), Augmented, "phrygian"},
	{"freygish", aliasPattern(`freygish`), Augmented, "phrygian"},
	{"super locrian bb7", aliasPattern(reSup, reLoc, `bb7`), Augmented, "locrian"},
	{"altered diminished bb7", aliasPattern(reAlt, reDim, `bb7`), Augmented, "locrian"},

	{"ultra locrian", aliasPattern(reUlt, reLoc), Hemiolic, "dorian"},
	{"altered diminished", aliasPattern(reAlt, reDim), Hemiolic, "dorian"},
	{"neapolitan minor", aliasPattern(reNeap, reMin), Hemiolic, "phrygian"},
	{"mixolydian augmented", aliasPattern(reMix, reAug), Hemiolic, "mixolydian"},
	{"gypsy minor", aliasPattern(reGyp, reMin), Hemiolic, "aeolian"},
	{"locrian dominant", aliasPattern(reLoc, reDom), Hemiolic, "locrian"},

	{"harmonic major", aliasPattern(reHarm, reMaj), Harmonic, "ionian"},

	{"neapolitan major", aliasPattern(reNeap, reMaj), Neapolitan, "ionian"},
	{"leading whole tone", aliasPattern(`(?:leading|lead)`, `(?:whole|wh)`, `tone`), Neapolitan, "dorian"},
	{"lydian augmented #6", aliasPattern(reLyd, reAug, `#6`), Neapolitan, "dorian"},
	{"mixolydian augmented dominant", aliasPattern(reMix, reAug, reDom), Neapolitan, "phrygian"},
	{"lydian dominant b6", aliasPattern(reLyd, reDom, `b6`), Neapolitan, "lydian"},
	{"major locrian #6", aliasPattern(reMaj, reLoc, `#6`), Neapolitan, "mixolydian"},
	{"half diminished b4", aliasPattern(`half`, reDim, `b4`), Neapolitan, "aeolian"},
	{"altered dominant #2", aliasPattern(reAlt, reDom, `#2`), Neapolitan, "aeolian"},
	{"altered dominant bb3", aliasPattern(reAlt, reDom, `bb3`), Neapolitan, "locrian"},

	{"byzantine", aliasPattern(`(?:byzantine|byzant|byzan|byz)`), DoubleHarmonic, "ionian"},
	{"gypsy major", aliasPattern(reGyp, reMaj), DoubleHarmonic, "ionian"},
	{"hungarian minor", aliasPattern(reHng, reMin), DoubleHarmonic, "lydian"},
	{"ultra phrygian", aliasPattern(reUlt, rePhr), DoubleHarmonic, "phrygian"},

	{"hungarian major", aliasPattern(reHng, reMaj), Hungarian, "ionian"},
	{"altered diminished bb6", aliasPattern(reAlt, reDim, `bb6`), Hungarian, "dorian"},
	{"harmonic minor b5", aliasPattern(reHarm, reMin, `b5`), Hungarian, "phrygian"},
	{"altered dominant natural 6", aliasPattern(reAlt, reDom, reNat, `6`), Hungarian, "lydian"},
	{"melodic minor #5", aliasPattern(reMel, reMin, `#5`), Hungarian, "mixolydian"},
	{"ukrainian dorian b2", aliasPattern(reUkr, reDor, `b2`), Hungarian, "aeolian"},
	{"lydian augmented #3", aliasPattern(reLyd, reAug, `#3`), Hungarian, "locrian"},

	{"lydian dominant b9", aliasPattern(reLyd, reDom, `b9`), Romanian, "ionian"},
	{"super lydian augmented natural 6", aliasPattern(reSup, reLyd, reAug, reNat, `6`), Romanian, "dorian"},
	{"super locrian bb6", aliasPattern(reSup, reLoc, `bb6`), Romanian, "lydian"},
	{"jeths mode", aliasPattern(`jeth(?:'s|s'|s)?`, `mode`), Romanian, "mixolydian"},
	{"melodic minor b5", aliasPattern(reMel, reMin, `b5`), Romanian, "mixolydian"},
	{"jazz minor b5", aliasPattern(`jazz`, reMin, `b5`), Romanian, "mixolydian"},
	{"javanese b4", aliasPattern(`(?:javanese|java)`, `b4`), Romanian, "aeolian"},
	{"superphrygian natural 6", aliasPattern(reSup, rePhr, reNat, `6`), Romanian, "aeolian"},
	{"lydian augmented b3", aliasPattern(reLyd, reAug, `b3`), Romanian, "locrian"},
}

// aliasesFor lists the traditional names that resolve to rotation k of
// the given base scale.
func aliasesFor(scale string, k int) []string {
	var out []string
	for _, a := range scaleAliases {
		if a.scale != scale {
			continue
		}
		if i, err := ModeIndex(a.mode); err == nil {
			if i == k {
				out = append(out, a.name)
			}
			continue
		}
		if rot, err := strconv.Atoi(a.mode); err == nil && rot == k {
			out = append(out, a.name)
		}
	}
	return out
}

// ResolveAlias maps a traditional scale name onto its canonical scale
// and mode. Symbols that are not in the alias table fall back to the
// modal resolver, so "lydian b7" lands on the same identity as
// "lydian dominant".
func ResolveAlias(symbol string) (scale, mode string, err error) {
	for _, a := range scaleAliases {
		if a.re.MatchString(symbol) {
			return a.scale, a.mode, nil
		}
	}
	names, err := ResolveModalName(symbol)
	if err != nil {
		return "", "", errors.Wrapf(err, "unable to resolve scale name %q", symbol)
	}
	structure, err := structureFromIntervalNames(names)
	if err != nil {
		return "", "", errors.Wrapf(err, "unable to resolve scale name %q", symbol)
	}
	p, err := ResolveStructure(structure)
	if err != nil {
		return "", "", errors.Wrapf(err, "unable to resolve scale name %q", symbol)
	}
	return p.ScaleName, p.ModeName, nil
}

func structureFromIntervalNames(names []string) (interval.Structure, error) {
	stacked, err := nomenclature.IntegersFromIntervalNames(names)
	if err != nil {
		return interval.Structure{}, err
	}
	folded := make([]int, 0, len(stacked)+1)
	folded = append(folded, 0)
	for _, v := range stacked {
		folded = append(folded, v%interval.Octave)
	}
	return interval.New(interval.Octave, folded...)
}

var (
	canonScaleRes = [15]*regexp.Regexp{
		full(`(?:diatonic|diaton|dia)`),
		full(reAlt),
		full(`(?:hemitonic|hemiton)`),
		full(`(?:hemiolic|hemiol)`),
		full(reDim),
		full(reAug),
		full(reHarm),
		full(`(?:biseptimal|bisept|bs)`),
		full(`(?:paleochromatic|paleoch|paleo|pal)`),
		full(`(?:enigmatic|enigmat|enigma|enig)`),
		full(`(?:double|doubl|doub|dub)` + joiner + reHarm),
		full(reNeap),
		full(reHng),
		full(`persian`),
		full(`romanian`),
	}
	canonModeRes = [7]*regexp.Regexp{
		full(reIon), full(reDor), full(rePhr), full(reLyd), full(reMix), full(reAeo), full(reLoc),
	}
)

func full(pattern string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)^` + pattern + `$`)
}

// canonRequestRe captures an optional keynote, a canonical scale family,
// and a mode, in any of the abbreviation spellings.
var canonRequestRe = regexp.MustCompile(
	`(?i)^` + joiner +
		`(?:([A-G][#b]*)` + joiner + `)?` +
		`(` + canonAlternation() + `)` + joiner +
		`(` + modeAlternation() + `)` + joiner + `$`,
)

func canonAlternation() string {
	parts := []string{
		`(?:double|doubl|doub|dub)` + joiner + reHarm,
		`(?:diatonic|diaton|dia)`, reAlt, `(?:hemitonic|hemiton)`, `(?:hemiolic|hemiol)`,
		reDim, reAug, reHarm, `(?:biseptimal|bisept|bs)`,
		`(?:paleochromatic|paleoch|paleo|pal)`, `(?:enigmatic|enigmat|enigma|enig)`,
		reNeap, reHng, `persian`, `romanian`,
	}
	return strings.Join(parts, "|")
}

func modeAlternation() string {
	return strings.Join([]string{reMix, reIon, reDor, rePhr, reLyd, reAeo, reLoc}, "|")
}

var keynoteRe = regexp.MustCompile(`^[A-G][#b]*`)

// ResolveScaleRequest reads a free-form key-and-scale symbol: a keynote
// (defaulting to C) followed by either a canonical family plus mode, a
// traditional alias, or a modal symbol with modifiers. "E augmented
// lydian", "aug_lyd", "E UkrDor", and "lydian #5 b7" all resolve.
func ResolveScaleRequest(symbol string) (keynote, scale, mode string, err error) {
	if m := canonRequestRe.FindStringSubmatch(symbol); m != nil {
		keynote = normalizeKeynote(m[1])
		for i, re := range canonScaleRes {
			if re.MatchString(m[2]) {
				scale = Names(GroupHeptatonic)[i]
				break
			}
		}
		for i, re := range canonModeRes {
			if re.MatchString(m[3]) {
				mode = Modes[i]
				break
			}
		}
		if scale != "" && mode != "" {
			return keynote, scale, mode, nil
		}
	}

	keynote = "C"
	rest := symbol
	if m := keynoteRe.FindString(symbol); m != "" {
		keynote = m
		rest = strings.TrimLeft(symbol[len(m):], " _")
	}
	if rest == "" {
		rest = "ionian"
	}
	scale, mode, err = ResolveAlias(rest)
	if err != nil {
		return "", "", "", err
	}
	return keynote, scale, mode, nil
}

func normalizeKeynote(k string) string {
	if k == "" {
		return "C"
	}
	return strings.ToUpper(k[:1]) + k[1:]
}
