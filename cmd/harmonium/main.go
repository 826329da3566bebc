// Command harmonium is the CLI for the Harmonium music theory library.
// It renders scales, parses and builds chords, names structures, imports
// MusicXML scores, and runs the registry self-check.
package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/alecthomas/kong"

	"github.com/FocuswithJustin/Harmonium/core/interval"
	"github.com/FocuswithJustin/Harmonium/core/musicxml"
	"github.com/FocuswithJustin/Harmonium/core/registry"
	"github.com/FocuswithJustin/Harmonium/core/selfcheck"
	"github.com/FocuswithJustin/Harmonium/core/symbol"
	"github.com/FocuswithJustin/Harmonium/core/theory"
	"github.com/FocuswithJustin/Harmonium/internal/logging"
)

const version = "0.1.0"

// CLI defines the command-line interface for harmonium.
var CLI struct {
	// Global flags
	LogLevel  string `name:"log-level" help:"Log level (debug, info, warn, error)" enum:"debug,info,warn,error" default:"info"`
	LogFormat string `name:"log-format" help:"Log format (json, text)" enum:"json,text" default:"json"`

	// Command groups (noun-first organization)
	Scale     ScaleGroup   `cmd:"" help:"Scale operations (render, resolve, list)"`
	Chord     ChordGroup   `cmd:"" help:"Chord operations (parse, build, name)"`
	Score     ScoreGroup   `cmd:"" help:"MusicXML score import"`
	Selfcheck SelfcheckCmd `cmd:"" help:"Run the registry verification plan"`
	Version   VersionCmd   `cmd:"" help:"Print version information"`
}

// ScaleGroup contains scale rendering and lookup operations.
type ScaleGroup struct {
	Render  RenderScaleCmd  `cmd:"" help:"Render a heptatonic scale on a keynote"`
	Resolve ResolveScaleCmd `cmd:"" help:"Resolve a compact scale request like eb_dia_dor"`
	List    ListScalesCmd   `cmd:"" help:"List registered scale names"`
}

// ChordGroup contains chord parsing and construction operations.
type ChordGroup struct {
	Parse ParseChordCmd `cmd:"" help:"Parse a chord symbol into notes and intervals"`
	Build BuildChordCmd `cmd:"" help:"Build a chord on a scale degree"`
	Name  NameChordCmd  `cmd:"" help:"Name an interval structure with a chord symbol"`
}

// ScoreGroup contains MusicXML import operations.
type ScoreGroup struct {
	Pitches ScorePitchesCmd `cmd:"" help:"List the sounding notes of a score"`
	Chord   ScoreChordCmd   `cmd:"" help:"Condense a score into a chord"`
}

// StyleFlags select the chord symbol rendering style.
type StyleFlags struct {
	Major string `help:"Major quality spelling" default:"maj"`
	Minor string `help:"Minor quality spelling" default:"min"`
	Dim   string `help:"Diminished quality spelling" default:"dim"`
}

func (f StyleFlags) style() symbol.Style {
	return symbol.Style{Major: f.Major, Minor: f.Minor, Dim: f.Dim}
}

// RenderScaleCmd renders a heptatonic scale.
type RenderScaleCmd struct {
	Keynote string `arg:"" help:"Keynote, e.g. Eb or F#"`
	Scale   string `arg:"" optional:"" help:"Scale name or alias" default:"diatonic"`
	Mode    string `arg:"" optional:"" help:"Mode name" default:"ionian"`
	Roman   bool   `help:"Include Roman numeral degrees"`
	Steps   bool   `help:"Include Greek step names"`
}

func (c *RenderScaleCmd) Run() error {
	scale, err := theory.GetHeptatonicScale(c.Keynote, c.Scale, c.Mode)
	if err != nil {
		return err
	}
	logging.ScaleResolved(c.Keynote+" "+c.Scale+" "+c.Mode, c.Keynote, scale.ScaleName, scale.ModeName)
	return printScale(scale, c.Roman, c.Steps)
}

// ResolveScaleCmd resolves a compact scale request.
type ResolveScaleCmd struct {
	Request string `arg:"" help:"Scale request, e.g. eb_dia_dor or c_lydian"`
}

func (c *ResolveScaleCmd) Run() error {
	scale, err := theory.GetScaleFromRequest(c.Request)
	if err != nil {
		return err
	}
	logging.ScaleResolved(c.Request, scale.Keynote, scale.ScaleName, scale.ModeName)
	return printScale(scale, false, false)
}

func printScale(scale *theory.HeptatonicScale, roman, steps bool) error {
	out := struct {
		*theory.HeptatonicScale
		Roman []string `json:"roman,omitempty"`
		Steps []string `json:"steps,omitempty"`
	}{HeptatonicScale: scale}
	if roman {
		degrees, err := scale.Roman()
		if err != nil {
			return err
		}
		out.Roman = degrees
	}
	if steps {
		names, err := scale.Steps()
		if err != nil {
			return err
		}
		out.Steps = names
	}
	return printJSON(out)
}

// ListScalesCmd lists the registered scale names of one group.
type ListScalesCmd struct {
	Group string `arg:"" optional:"" help:"Scale group (heptatonic, octatonic, hexatonic, pentatonic)" enum:"heptatonic,octatonic,hexatonic,pentatonic" default:"heptatonic"`
}

func (c *ListScalesCmd) Run() error {
	groups := map[string]registry.Group{
		"heptatonic": registry.GroupHeptatonic,
		"octatonic":  registry.GroupOctatonic,
		"hexatonic":  registry.GroupHexatonic,
		"pentatonic": registry.GroupPentatonic,
	}
	return printJSON(map[string]any{
		"group":  c.Group,
		"scales": registry.Names(groups[c.Group]),
	})
}

// chordView is the JSON rendering of a chord.
type chordView struct {
	Root      string   `json:"root"`
	Symbol    string   `json:"symbol"`
	Notes     []string `json:"notes"`
	Intervals []string `json:"intervals"`
	Offsets   []int    `json:"offsets"`
	Inversion int      `json:"inversion"`
	Voicing   string   `json:"voicing"`
}

func viewChord(c *theory.Chord, style symbol.Style) (*chordView, error) {
	sym, err := c.SlashSymbol(style)
	if err != nil {
		return nil, err
	}
	return &chordView{
		Root:      c.Root().String(),
		Symbol:    sym,
		Notes:     c.NoteNames(),
		Intervals: c.IntervalNames(),
		Offsets:   c.Structure().Offsets(),
		Inversion: c.Inversion(),
		Voicing:   c.Voicing(),
	}, nil
}

// ParseChordCmd parses a chord symbol.
type ParseChordCmd struct {
	Symbol  string `arg:"" help:"Chord symbol, e.g. Fdim7 or Amin7/G"`
	Invert  int    `help:"Rotate the chord to the given inversion" default:"-1"`
	Voicing string `help:"Apply a drop voicing (open, d2, d3, d23, d24)"`
	StyleFlags
}

func (c *ParseChordCmd) Run() error {
	chord, err := theory.GetChordFromSymbol(c.Symbol)
	if err != nil {
		return err
	}
	if c.Invert >= 0 {
		if chord, err = chord.Invert(c.Invert); err != nil {
			return err
		}
	}
	if c.Voicing != "" {
		if chord, err = chord.Voice(c.Voicing); err != nil {
			return err
		}
	}
	view, err := viewChord(chord, c.style())
	if err != nil {
		return err
	}
	return printJSON(view)
}

// BuildChordCmd builds a chord on a scale degree.
type BuildChordCmd struct {
	Keynote string `arg:"" help:"Keynote of the scale"`
	Degree  int    `arg:"" help:"Scale degree 1..7"`
	Scale   string `help:"Scale name" default:"diatonic"`
	Mode    string `help:"Mode name" default:"ionian"`
	Size    int    `help:"Number of chord members 3..7" default:"4"`
	Invert  int    `help:"Rotate the chord to the given inversion" default:"0"`
	Voicing string `help:"Apply a drop voicing (open, d2, d3, d23, d24)"`
	Form    string `help:"Stacking form (tertial, sus2, sus4)" enum:"tertial,sus2,sus4" default:"tertial"`
	StyleFlags
}

func (c *BuildChordCmd) Run() error {
	chord, err := theory.GetHeptatonicChord(c.Keynote, c.Scale, c.Mode, c.Degree, c.Size, c.Invert, c.Voicing, c.Form)
	if err != nil {
		return err
	}
	view, err := viewChord(chord, c.style())
	if err != nil {
		return err
	}
	return printJSON(view)
}

// NameChordCmd names an interval structure.
type NameChordCmd struct {
	Keynote string `arg:"" help:"Keynote the structure sounds from"`
	Offsets []int  `arg:"" help:"Semitone offsets above the keynote, bass first"`
	StyleFlags
}

func (c *NameChordCmd) Run() error {
	s, err := interval.New(width(c.Offsets), c.Offsets...)
	if err != nil {
		return err
	}
	name, err := theory.GetChordSymbol(c.Keynote, s, c.style())
	if err != nil {
		return err
	}
	return printJSON(map[string]any{
		"keynote": c.Keynote,
		"offsets": s.Offsets(),
		"symbol":  name,
	})
}

// width is the smallest whole octave span holding every offset.
func width(offsets []int) int {
	w := interval.Octave
	for _, o := range offsets {
		for o >= w {
			w += interval.Octave
		}
	}
	return w
}

// ScorePitchesCmd lists the sounding notes of a MusicXML score.
type ScorePitchesCmd struct {
	Path string `arg:"" help:"Path to MusicXML file" type:"existingfile"`
	Part string `help:"Restrict to one part by id"`
}

func (c *ScorePitchesCmd) Run() error {
	pitches, err := loadPitches(c.Path, c.Part)
	if err != nil {
		return err
	}
	names := make([]string, len(pitches))
	for i, p := range pitches {
		names[i] = p.String()
	}
	return printJSON(map[string]any{
		"path":    c.Path,
		"pitches": names,
	})
}

// ScoreChordCmd condenses a score into a chord symbol.
type ScoreChordCmd struct {
	Path string `arg:"" help:"Path to MusicXML file" type:"existingfile"`
	Part string `help:"Restrict to one part by id"`
	StyleFlags
}

func (c *ScoreChordCmd) Run() error {
	pitches, err := loadPitches(c.Path, c.Part)
	if err != nil {
		return err
	}
	s, err := musicxml.Condense(pitches)
	if err != nil {
		return err
	}
	keynote := pitches[0].Name.String()
	name, err := theory.GetChordSymbol(keynote, s, c.style())
	if err != nil {
		return err
	}
	return printJSON(map[string]any{
		"path":    c.Path,
		"keynote": keynote,
		"offsets": s.Offsets(),
		"symbol":  name,
	})
}

func loadPitches(path, part string) ([]musicxml.Pitch, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		logging.ImportError(path, "read", err)
		return nil, err
	}
	score, err := musicxml.Parse(data)
	if err != nil {
		logging.ImportError(path, "parse", err)
		return nil, err
	}
	if part != "" {
		return score.PartPitches(part)
	}
	return score.Pitches()
}

// SelfcheckCmd runs the built-in registry verification plan.
type SelfcheckCmd struct {
	Out string `help:"Write the report to a file instead of stdout" type:"path"`
}

func (c *SelfcheckCmd) Run() error {
	report, err := selfcheck.NewExecutor().Execute(selfcheck.DefaultPlan())
	if err != nil {
		return err
	}
	for _, r := range report.Results {
		logging.CheckCompleted(r.CheckType, r.Pass)
	}
	data, err := report.ToJSON()
	if err != nil {
		return err
	}
	if c.Out != "" {
		if err := os.WriteFile(c.Out, data, 0644); err != nil {
			return err
		}
	} else {
		fmt.Println(string(data))
	}
	if report.Status != selfcheck.StatusPass {
		return fmt.Errorf("self-check failed: %s", report.RunID)
	}
	return nil
}

// VersionCmd prints version information.
type VersionCmd struct{}

func (c *VersionCmd) Run() error {
	fmt.Printf("harmonium version %s\n", version)
	return nil
}

func printJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}

func logLevel(s string) logging.Level {
	switch s {
	case "debug":
		return logging.LevelDebug
	case "warn":
		return logging.LevelWarn
	case "error":
		return logging.LevelError
	}
	return logging.LevelInfo
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("harmonium"),
		kong.Description("Harmonium - music notation and interval structure toolkit"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
	)
	format := logging.FormatJSON
	if CLI.LogFormat == "text" {
		format = logging.FormatText
	}
	logging.InitLogger(logLevel(CLI.LogLevel), format)
	err := ctx.Run(ctx)
	ctx.FatalIfErrorf(err)
}
