package symbol

import (
	"strings"

	"github.com/FocuswithJustin/Harmonium/core/errors"
	"github.com/FocuswithJustin/Harmonium/core/interval"
	"github.com/FocuswithJustin/Harmonium/core/nomenclature"
)

// Style selects the spellings for the customizable quality symbols.
// Half-diminished, augmented, and the more exotic alterations always
// get explicit accidental spellings (min7b5, 7#5, susbb3) and cannot
// be customized.
type Style struct {
	Major string
	Minor string
	Dim   string
}

// DefaultStyle is the long-form spelling used throughout the library.
var DefaultStyle = Style{Major: "maj", Minor: "min", Dim: "dim"}

// Encode builds a chord symbol suffix from a set of degree names. The
// input is treated as a set, so the result is never a slash chord.
// Suffixes are assembled in a fixed slot order chosen to keep the
// result readable: quality, primary extension, sixth, sus, no3, no5,
// altered fifth, altered seventh, leftover alterations, additions.
func Encode(names []string, style Style) (string, error) {
	src := make(map[string]bool, len(names))
	parse := make(map[string]bool, len(names))
	for _, n := range names {
		src[n] = true
		if n != "1" {
			parse[n] = true
		}
	}

	isDim := src["b3"] && src["b5"] && src["bb7"]
	isDom := src["3"] && src["b7"]

	var normal3, primary, secondary, sus, alt5, alt7, no5, no3 string
	var adds []string

	if isDim {
		normal3 = style.Dim
		primary = "7"
		delete(parse, "b3")
		delete(parse, "b5")
		delete(parse, "bb7")
	} else {
		// bb7 could collide with a flattened root letter (Bbb7), so
		// it takes a dedicated slot after the fifth instead of the
		// primary seventh slot.
		if parse["bb7"] {
			alt7 = "bb7"
			delete(parse, "bb7")
		}
		switch {
		case parse["b5"]:
			alt5 = "b5"
			delete(parse, "b5")
		case parse["#5"]:
			alt5 = "#5"
			delete(parse, "#5")
		case !parse["5"]:
			no5 = "no5"
		default:
			// The fifth is implied in any other chord.
			delete(parse, "5")
		}
	}
	if isDom {
		primary = "7"
		delete(parse, "3")
		delete(parse, "b7")
	}

	switch {
	case src["3"] || src["b3"]:
		switch {
		case isDim || isDom:
		case src["3"]:
			normal3 = style.Major
			// A 7 in a major chord is the natural 7.
			if parse["7"] {
				primary = "7"
				delete(parse, "7")
			}
		default:
			normal3 = style.Minor
			if parse["7"] {
				primary = style.Major + "7"
				delete(parse, "7")
			}
			if parse["b7"] {
				primary = "7"
				delete(parse, "b7")
			}
		}
		delete(parse, "3")
		delete(parse, "b3")
	case src["#3"] || src["2"] || src["bb3"] || src["4"]:
		// A #3 or bb3 cannot reasonably be called major or minor, and
		// spelling it as a suspension keeps its accidentals away from
		// the root letter (Dsusbb3 rather than Dbb3). With more than
		// one candidate the first is the suspension and the rest are
		// additions.
		first := true
		for _, c := range []string{"#3", "2", "bb3", "4"} {
			if !parse[c] {
				continue
			}
			if first {
				sus = "sus" + c
				first = false
			} else {
				adds = append(adds, c)
			}
			delete(parse, c)
		}
		if parse["7"] {
			primary = style.Major + "7"
			delete(parse, "7")
		} else if parse["b7"] {
			primary = "7"
			delete(parse, "b7")
		}
	default:
		no3 = "no3"
	}

	// A primary extension numeral implies every lower member of the
	// series, so the numeral only advances while the series is
	// unbroken; anything past a gap is an addition (C9#11add13).
	if primary != "" {
		largest := ""
		unbroken := true
		for _, ext := range []string{"9", "11", "13"} {
			if !parse[ext] {
				unbroken = false
				continue
			}
			if unbroken {
				largest = ext
			} else {
				adds = append(adds, ext)
			}
			delete(parse, ext)
		}
		if largest != "" {
			primary = strings.Replace(primary, "7", largest, 1)
		}
	}

	// The sixth implies nothing else, and yields to a primary suffix.
	if parse["6"] {
		secondary = "6"
		delete(parse, "6")
	}
	if secondary != "" && primary != "" {
		adds = append(adds, secondary)
		secondary = ""
	}

	// A natural leftover is ambiguous as a bare suffix (Emaj11 vs
	// Emajadd11), so naturals become additions and accidentals are
	// simply suffixed.
	rest := make([]string, 0, len(parse))
	for n := range parse {
		rest = append(rest, n)
	}
	rest, err := nomenclature.SortIntervalNames(rest)
	if err != nil {
		return "", errors.Wrap(err, "cannot encode chord symbol")
	}
	var extensions strings.Builder
	for _, n := range rest {
		if strings.ContainsAny(n, "#b") {
			extensions.WriteString(n)
		} else {
			adds = append(adds, n)
		}
	}

	var add strings.Builder
	for _, n := range adds {
		add.WriteString("add")
		add.WriteString(n)
	}

	parts := []string{
		normal3, primary, secondary, sus,
		no3, no5, alt5, alt7,
		extensions.String(), add.String(),
	}
	return strings.Join(parts, ""), nil
}

// FromStructure names an interval structure with a chord symbol
// suffix. Known triad and tetrad shapes resolve through the canonical
// inventory regardless of inversion or voicing, so a drop 2 maj7 and a
// drop 3 maj7 both come back as "maj7". Anything else is encoded from
// its literal degree names.
func FromStructure(s interval.Structure, style Style) (string, error) {
	if id, ok := Identify(s); ok {
		return id.Symbol, nil
	}
	offsets := s.Offsets()
	if len(offsets) == 3 && offsets[1] == 7 && offsets[2] == 12 {
		return "5", nil
	}
	names := make([]string, 0, len(offsets))
	for _, o := range offsets {
		name, ok := absoluteNames[o]
		if !ok {
			return "", errors.NewUnsupported("chord structure",
				"an offset has no conventional degree symbol")
		}
		names = append(names, name)
	}
	return Encode(names, style)
}

// absoluteNames is the prescribed degree symbol for each semitone
// offset when no scale context is available.
var absoluteNames = map[int]string{
	0: "1", 1: "b2", 2: "2", 3: "b3", 4: "3", 5: "4",
	6: "b5", 7: "5", 8: "#5", 9: "6", 10: "b7", 11: "7",
	13: "b9", 14: "9", 15: "#9", 17: "11", 18: "#11",
	20: "b13", 21: "13",
}
