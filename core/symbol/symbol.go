// Package symbol reads and writes chord symbols. A symbol is decoded
// into the set of degree names it implies, and a set of degree names is
// encoded back into the shortest conventional symbol that reproduces
// it. The two directions share one slot vocabulary: main quality,
// primary extension, secondary sixth, sus, altered fifth, altered
// seventh, additions, and removals.
package symbol

import (
	"slices"
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"github.com/FocuswithJustin/Harmonium/core/errors"
	"github.com/FocuswithJustin/Harmonium/core/nomenclature"
	"github.com/FocuswithJustin/Harmonium/core/note"
)

// chordLexer tokenizes chord symbols. Quality words sit ahead of the
// bare note letters and numerals so "maj" is never read as an "m"
// followed by stray letters. Chord symbols are case sensitive: "M" is
// major, "m" is minor.
var chordLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Sus", Pattern: `sus`},
	{Name: "Add", Pattern: `add`},
	{Name: "No", Pattern: `no`},
	{Name: "Main", Pattern: `maj|min|dim|aug|M|m|Δ|ø|o|\+|-`},
	{Name: "Note", Pattern: `[A-G]`},
	{Name: "Roman", Pattern: `VII|vii|VI|vi|IV|iv|III|iii|II|ii|V|v|I|i`},
	{Name: "Acc", Pattern: `[#b]+`},
	{Name: "Num", Pattern: `13|11|9|7|6|5|4|3|2`},
	{Name: "Slash", Pattern: `/`},
})

//nolint:govet // participle grammar tags are not standard struct tags
type chordRoot struct {
	Note  string `  @(Note Acc?)`
	Roman string `| @(Acc? Roman)`
}

func (r *chordRoot) text() string {
	if r.Note != "" {
		return r.Note
	}
	return r.Roman
}

//nolint:govet // participle grammar tags are not standard struct tags
type chordDegree struct {
	Accidentals string `@Acc?`
	Number      string `@Num`
}

func (d *chordDegree) symbol() string {
	return d.Accidentals + d.Number
}

//nolint:govet // participle grammar tags are not standard struct tags
type chordExt struct {
	Major  string `@("maj" | "M" | "Δ")?`
	Number string `@("13" | "11" | "9" | "7")`
}

//nolint:govet // participle grammar tags are not standard struct tags
type chordMod struct {
	Sus       *chordDegree `  Sus @@`
	Added     *chordDegree `| Add @@`
	Removed   *chordDegree `| No @@`
	Augmented bool         `| @("aug" | "+")`
	Plain     *chordDegree `| @@`
}

//nolint:govet // participle grammar tags are not standard struct tags
type chordExpr struct {
	Root chordRoot  `@@`
	Main string     `@Main?`
	Ext  *chordExt  `@@?`
	Mods []chordMod `@@*`
	Bass *chordRoot `(Slash @@)?`
}

var chordParser = participle.MustBuild[chordExpr](
	participle.Lexer(chordLexer),
	participle.UseLookahead(2),
)

// Parsed is the decoded form of a chord symbol.
type Parsed struct {
	// Root is the root symbol as written: a note name or a Roman
	// numeral with optional accidentals.
	Root string
	// IsRoman reports whether the root is a Roman numeral.
	IsRoman bool
	// Intervals holds the degree names the symbol implies, in stack
	// order. When a slash bass applies, the list is rotated so the
	// bass degree comes first.
	Intervals []string
	// Bass is the slash bass symbol, empty when there is none.
	Bass string
}

var (
	majorMains = []string{"maj", "M", "Δ"}
	minorMains = []string{"min", "m", "-"}
	dimMains   = []string{"dim", "o"}
	augMains   = []string{"aug", "+"}

	extSeries = []string{"7", "9", "11", "13"}
)

// Parse decodes a chord symbol into its implied degree names. The
// decoding rules follow convention: a bare root is a major triad, an
// extension numeral implies every lower member of the 7-9-11-13 series,
// a maj prefix on the extension makes the seventh natural, dim implies
// bb7 under an extension, sus displaces the third, an altered fifth
// displaces the perfect fifth, and add/no corrections are applied after
// everything else. A slash bass rotates the chord when the bass degree
// is present and prepends it when it is not.
func Parse(symbol string) (*Parsed, error) {
	expr, err := chordParser.ParseString("", symbol)
	if err != nil {
		return nil, errors.NewParse("chord symbol", symbol, err.Error())
	}
	if expr.Bass != nil {
		mixed := (expr.Root.Note != "") != (expr.Bass.Note != "")
		if mixed {
			return nil, errors.NewParse("chord symbol", symbol,
				"cannot mix alphabetic and Roman numeral notation")
		}
	}

	// An accidental directly after the root letter always belongs to
	// the root, so C#5 is a power chord on C#, not an altered C chord.
	if isPowerChord(expr) {
		return &Parsed{
			Root:      expr.Root.text(),
			IsRoman:   expr.Root.Roman != "",
			Intervals: []string{"1", "5", "8"},
		}, nil
	}

	intervals := map[string]bool{"1": true, "5": true}
	put := func(names ...string) {
		for _, n := range names {
			intervals[n] = true
		}
	}
	var removals []string

	series := func(seventh, upto string) {
		for _, d := range extSeries[:slices.Index(extSeries, upto)+1] {
			if d == "7" {
				d = seventh
			}
			put(d)
		}
	}

	ext := expr.Ext
	switch {
	case expr.Main == "":
		put("3")
		if ext != nil && ext.Major == "" {
			series("b7", ext.Number)
			ext = nil
		}
	case slices.Contains(majorMains, expr.Main):
		put("3")
		if ext != nil {
			series("7", ext.Number)
			ext = nil
		}
	case slices.Contains(dimMains, expr.Main):
		put("b3", "b5")
		delete(intervals, "5")
		if ext != nil {
			series("bb7", ext.Number)
			ext = nil
		}
	case slices.Contains(augMains, expr.Main):
		put("3", "#5")
		delete(intervals, "5")
	case expr.Main == "ø":
		put("b3", "b5")
		delete(intervals, "5")
	case slices.Contains(minorMains, expr.Main):
		put("b3")
	}
	if ext != nil {
		if ext.Major != "" {
			series("7", ext.Number)
		} else {
			series("b7", ext.Number)
		}
	}

	for _, m := range expr.Mods {
		switch {
		case m.Sus != nil:
			put(m.Sus.symbol())
			removals = append(removals, "3", "b3")
		case m.Added != nil:
			put(m.Added.symbol())
		case m.Removed != nil:
			removals = append(removals, m.Removed.symbol())
		case m.Augmented:
			delete(intervals, "5")
			put("#5")
		case m.Plain != nil:
			s := m.Plain.symbol()
			put(s)
			if s == "b5" || s == "#5" {
				delete(intervals, "5")
			}
		}
	}
	// Removals run last so they can correct anything the earlier
	// symbols implied.
	for _, r := range removals {
		delete(intervals, r)
	}

	names := make([]string, 0, len(intervals))
	for n := range intervals {
		names = append(names, n)
	}
	sorted, err := nomenclature.SortIntervalNames(names)
	if err != nil {
		return nil, errors.Wrapf(err, "chord symbol %q", symbol)
	}

	p := &Parsed{
		Root:      expr.Root.text(),
		IsRoman:   expr.Root.Roman != "",
		Intervals: sorted,
	}
	if expr.Bass != nil {
		p.Bass = expr.Bass.text()
		p.Intervals, err = rotateToBass(p, sorted)
		if err != nil {
			return nil, err
		}
	}
	return p, nil
}

// Decode returns only the degree names of a chord symbol.
func Decode(symbol string) ([]string, error) {
	p, err := Parse(symbol)
	if err != nil {
		return nil, err
	}
	return p.Intervals, nil
}

func isPowerChord(expr *chordExpr) bool {
	return expr.Main == "" && expr.Ext == nil && expr.Bass == nil &&
		len(expr.Mods) == 1 && expr.Mods[0].Plain != nil &&
		expr.Mods[0].Plain.symbol() == "5"
}

func rotateToBass(p *Parsed, sorted []string) ([]string, error) {
	var bassName string
	if p.IsRoman {
		converted, err := nomenclature.IntervalNamesFromRoman([]string{p.Bass})
		if err != nil {
			return nil, err
		}
		bassName = converted[0]
	} else {
		root, err := note.Parse(p.Root)
		if err != nil {
			return nil, err
		}
		bass, err := note.Parse(p.Bass)
		if err != nil {
			return nil, err
		}
		_, bassName = nomenclature.IntervalBetween(root, bass)
	}

	out := slices.Clone(sorted)
	if !slices.Contains(out, bassName) {
		out = append([]string{bassName}, out...)
	}
	i := slices.Index(out, bassName)
	return append(out[i:], out[:i]...), nil
}

// Integers converts degree names into absolute semitone offsets, so
// "9" is 14, not 2. Compound degrees keep their octave.
func Integers(names []string) ([]int, error) {
	out := make([]int, 0, len(names))
	for _, name := range names {
		trimmed := strings.TrimLeft(name, "#b")
		degree, err := strconv.Atoi(trimmed)
		if err != nil || degree < 1 {
			return nil, errors.NewParse("interval name", name, "want accidentals and a degree number")
		}
		acc := 0
		for _, r := range name[:len(name)-len(trimmed)] {
			if r == '#' {
				acc++
			} else {
				acc--
			}
		}
		base := diatonicOffsets[(degree-1)%7] + 12*((degree-1)/7)
		out = append(out, base+acc)
	}
	return out, nil
}

var diatonicOffsets = [7]int{0, 2, 4, 5, 7, 9, 11}
