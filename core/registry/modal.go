package registry

import (
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"github.com/FocuswithJustin/Harmonium/core/errors"
	"github.com/FocuswithJustin/Harmonium/core/nomenclature"
)

// modalLexer tokenizes modal symbols such as "dorian #4", "mixo_b6",
// "loc_natural_5", or "IonianAddb6". The mixolydian spellings sit ahead
// of the lydian ones so "mixolydian" is consumed whole.
var modalLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Sep", Pattern: `[ ._]+`},
	{Name: "Mode", Pattern: `(?i)(?:mixolydian|mixolyd|mixo|mix|ionian|ion|dorian|dor|phrygian|phryg|phry|phr|lydian|lyd|aeolian|aeol|aeo|locrian|locr|loc)`},
	{Name: "Add", Pattern: `(?i)add`},
	{Name: "No", Pattern: `(?i)no`},
	{Name: "Nat", Pattern: `(?i)(?:natural|nat|n)`},
	{Name: "Acc", Pattern: `[#b]+`},
	{Name: "Degree", Pattern: `[1-7]`},
})

//nolint:govet // participle grammar tags are not standard struct tags
type modalAlteration struct {
	Accidentals string `@Acc?`
	Degree      string `@Degree`
}

func (a *modalAlteration) symbol() string {
	return a.Accidentals + a.Degree
}

//nolint:govet // participle grammar tags are not standard struct tags
type modalTerm struct {
	Mode    string           `  @Mode`
	Natural string           `| Nat @Degree`
	Added   *modalAlteration `| Add @@`
	Removed *modalAlteration `| No @@`
	Altered *modalAlteration `| @@`
}

//nolint:govet // participle grammar tags are not standard struct tags
type modalExpr struct {
	Terms []modalTerm `@@+`
}

var modalParser = participle.MustBuild[modalExpr](
	participle.Lexer(modalLexer),
	participle.Elide("Sep"),
)

// modeIndexOf maps any spelling variant of a mode name to its rotation.
func modeIndexOf(symbol string) int {
	switch s := strings.ToLower(symbol); {
	case strings.HasPrefix(s, "mix"):
		return 4
	case strings.HasPrefix(s, "ion"):
		return 0
	case strings.HasPrefix(s, "dor"):
		return 1
	case strings.HasPrefix(s, "phr"):
		return 2
	case strings.HasPrefix(s, "lyd"):
		return 3
	case strings.HasPrefix(s, "aeo"):
		return 5
	default:
		return 6
	}
}

// ResolveModalName reads a modal symbol with optional modifiers and
// returns the degree symbols it implies, in stack order. A missing mode
// name means ionian; accidental and natural modifiers replace the
// degree they name, add appends, no removes. Naming two different modes
// is ambiguous and rejected.
func ResolveModalName(symbol string) ([]string, error) {
	expr, err := modalParser.ParseString("", symbol)
	if err != nil {
		return nil, errors.NewParse("modal symbol", symbol, err.Error())
	}

	mode := -1
	var modes []string
	var substitutions, additions, removals []string
	for _, t := range expr.Terms {
		switch {
		case t.Mode != "":
			i := modeIndexOf(t.Mode)
			if mode >= 0 && mode != i {
				return nil, errors.NewAmbiguity(symbol, append(modes, Modes[i]))
			}
			mode = i
			modes = []string{Modes[i]}
		case t.Natural != "":
			substitutions = append(substitutions, t.Natural)
		case t.Added != nil:
			additions = append(additions, t.Added.symbol())
		case t.Removed != nil:
			removals = append(removals, t.Removed.symbol())
		case t.Altered != nil:
			substitutions = append(substitutions, t.Altered.symbol())
		}
	}
	if mode < 0 {
		mode = 0
	}

	base, _ := Lookup(Diatonic)
	normal, err := nomenclature.IntervalNames(base.Rotate(mode), false)
	if err != nil {
		return nil, err
	}

	collation := make([]string, 0, len(normal)+len(additions))
	for _, name := range normal {
		replaced := false
		for _, sub := range substitutions {
			if degreeOf(sub) == degreeOf(name) {
				replaced = true
				collation = append(collation, sub)
			}
		}
		if !replaced {
			collation = append(collation, name)
		}
	}
	collation = append(collation, additions...)
	for _, r := range removals {
		for i, name := range collation {
			if name == r {
				collation = append(collation[:i], collation[i+1:]...)
				break
			}
		}
	}
	return nomenclature.SortIntervalNames(collation)
}

func degreeOf(symbol string) string {
	return strings.TrimLeft(symbol, "#b")
}
