// Package selfcheck verifies the consistency of the compiled-in music
// tables: the scale registry, the modal system over it, and the chord
// symbol inventory. An inconsistent registry is a build defect, so a
// failing report is grounds for refusing to ship, not for retrying.
package selfcheck

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/zeebo/blake3"

	"github.com/FocuswithJustin/Harmonium/core/interval"
	"github.com/FocuswithJustin/Harmonium/core/registry"
	"github.com/FocuswithJustin/Harmonium/core/symbol"
)

// Version is the report format version.
const Version = "1.0.0"

// Status values for reports.
const (
	StatusPass = "pass"
	StatusFail = "fail"
)

// Check types.
const (
	CheckRoundtrip    = "ROUNDTRIP_SYMBOLS"
	CheckModalClosure = "MODAL_CLOSURE"
	CheckAmbiguity    = "NO_AMBIGUITY"
	CheckTableDigest  = "TABLE_DIGEST"
)

// Plan defines a verification plan.
type Plan struct {
	ID          string      `json:"id"`
	Description string      `json:"description"`
	Checks      []PlanCheck `json:"checks"`
}

// PlanCheck defines a check in a plan.
type PlanCheck struct {
	Type  string `json:"type"`
	Label string `json:"label"`
}

// Report is the output of a self-check execution.
type Report struct {
	ReportVersion string        `json:"report_version"`
	RunID         string        `json:"run_id"`
	CreatedAt     string        `json:"created_at"`
	PlanID        string        `json:"plan_id"`
	Results       []CheckResult `json:"results"`
	Status        string        `json:"status"`
}

// CheckResult is the result of a single check.
type CheckResult struct {
	CheckType string    `json:"check_type"`
	Label     string    `json:"label"`
	Pass      bool      `json:"pass"`
	Expected  *HashInfo `json:"expected,omitempty"`
	Actual    *HashInfo `json:"actual,omitempty"`
	Details   any       `json:"details,omitempty"`
}

// HashInfo carries a table digest for comparison.
type HashInfo struct {
	BLAKE3 string `json:"blake3,omitempty"`
}

// ToJSON serializes the report to JSON.
func (r *Report) ToJSON() ([]byte, error) {
	return json.MarshalIndent(r, "", "  ")
}

// DefaultPlan returns the built-in full verification plan.
func DefaultPlan() *Plan {
	return &Plan{
		ID:          "registry-consistency",
		Description: "Verify the compiled-in scale registry and chord symbol inventory",
		Checks: []PlanCheck{
			{Type: CheckRoundtrip, Label: "Chord symbols decode and re-encode to themselves"},
			{Type: CheckModalClosure, Label: "Every heptatonic rotation resolves to its base and mode"},
			{Type: CheckAmbiguity, Label: "No structure names more than one canonical form"},
			{Type: CheckTableDigest, Label: "Canonical tables serialize deterministically"},
		},
	}
}

// Executor executes self-check plans.
type Executor struct{}

// NewExecutor creates a plan executor.
func NewExecutor() *Executor {
	return &Executor{}
}

// Execute runs a plan and returns a report.
func (e *Executor) Execute(plan *Plan) (*Report, error) {
	var results []CheckResult
	allPass := true
	for _, check := range plan.Checks {
		result, err := e.executeCheck(&check)
		if err != nil {
			return nil, fmt.Errorf("check %s failed to run: %w", check.Type, err)
		}
		results = append(results, *result)
		if !result.Pass {
			allPass = false
		}
	}

	status := StatusPass
	if !allPass {
		status = StatusFail
	}

	return &Report{
		ReportVersion: Version,
		RunID:         uuid.NewString(),
		CreatedAt:     time.Now().UTC().Format(time.RFC3339),
		PlanID:        plan.ID,
		Results:       results,
		Status:        status,
	}, nil
}

func (e *Executor) executeCheck(check *PlanCheck) (*CheckResult, error) {
	switch check.Type {
	case CheckRoundtrip:
		return roundtripCheck(check), nil
	case CheckModalClosure:
		return modalClosureCheck(check), nil
	case CheckAmbiguity:
		return ambiguityCheck(check), nil
	case CheckTableDigest:
		return tableDigestCheck(check), nil
	default:
		return nil, fmt.Errorf("unknown check type: %s", check.Type)
	}
}

// roundtripCheck decodes every inventory symbol rooted on C and encodes
// the result back, expecting the same structure and the same suffix.
func roundtripCheck(check *PlanCheck) *CheckResult {
	var failures []string
	for _, q := range catalog() {
		sym := "C" + q.Symbol
		names, err := symbol.Decode(sym)
		if err != nil {
			failures = append(failures, fmt.Sprintf("%s: decode: %v", sym, err))
			continue
		}
		offsets, err := symbol.Integers(names)
		if err != nil {
			failures = append(failures, fmt.Sprintf("%s: integers: %v", sym, err))
			continue
		}
		rebuilt := interval.FromOffsets(offsets...)
		if rebuilt.Bits() != q.Structure.Bits() {
			failures = append(failures, fmt.Sprintf("%s: decoded to %v, want %v", sym, rebuilt, q.Structure))
			continue
		}
		suffix, err := symbol.FromStructure(rebuilt, symbol.DefaultStyle)
		if err != nil {
			failures = append(failures, fmt.Sprintf("%s: encode: %v", sym, err))
			continue
		}
		if suffix != q.Symbol {
			failures = append(failures, fmt.Sprintf("%s: re-encoded as %q", sym, suffix))
		}
	}
	return result(check, failures)
}

// modalClosureCheck rotates every heptatonic base through its seven
// modes and resolves each rotation back, in both directions.
func modalClosureCheck(check *PlanCheck) *CheckResult {
	var failures []string
	for _, name := range registry.Names(registry.GroupHeptatonic) {
		base, err := registry.Lookup(name)
		if err != nil {
			failures = append(failures, fmt.Sprintf("%s: %v", name, err))
			continue
		}
		for m, mode := range registry.Modes {
			rotated := base.Rotate(m)

			resolved, err := registry.ResolveHeptatonic(name, mode)
			if err != nil {
				failures = append(failures, fmt.Sprintf("%s %s: %v", name, mode, err))
			} else if !resolved.EqualPitches(rotated) {
				failures = append(failures, fmt.Sprintf("%s %s: resolved to %v, want %v", name, mode, resolved, rotated))
			}

			p, err := registry.ResolveStructure(rotated)
			if err != nil {
				failures = append(failures, fmt.Sprintf("%s %s: %v", name, mode, err))
			} else if p.ScaleName != name || p.ModeName != mode {
				failures = append(failures, fmt.Sprintf("%s %s: structure resolved to %s %s", name, mode, p.ScaleName, p.ModeName))
			}
		}
	}
	return result(check, failures)
}

// ambiguityCheck walks every rotation of every heptatonic base and every
// base form of the smaller groups, expecting each structure to belong to
// exactly one canonical name.
func ambiguityCheck(check *PlanCheck) *CheckResult {
	var failures []string

	rotations := make(map[uint64]string)
	for _, name := range registry.Names(registry.GroupHeptatonic) {
		base, err := registry.Lookup(name)
		if err != nil {
			failures = append(failures, fmt.Sprintf("%s: %v", name, err))
			continue
		}
		for m, mode := range registry.Modes {
			key := base.Rotate(m).Bits()
			owner := name + " " + mode
			if prev, ok := rotations[key]; ok {
				failures = append(failures, fmt.Sprintf("%s collides with %s", owner, prev))
				continue
			}
			rotations[key] = owner
		}
	}

	bases := make(map[uint64]string)
	for _, g := range []registry.Group{
		registry.GroupHeptatonic, registry.GroupOctatonic,
		registry.GroupHexatonic, registry.GroupPentatonic,
	} {
		for _, name := range registry.Names(g) {
			base, err := registry.Lookup(name)
			if err != nil {
				failures = append(failures, fmt.Sprintf("%s: %v", name, err))
				continue
			}
			key := base.Bits()
			if prev, ok := bases[key]; ok {
				failures = append(failures, fmt.Sprintf("%s collides with %s", name, prev))
				continue
			}
			bases[key] = name
		}
	}

	return result(check, failures)
}

// tableDigestCheck serializes the canonical tables twice and compares
// digests, recording the digest for cross-build comparison.
func tableDigestCheck(check *PlanCheck) *CheckResult {
	expected := TableDigest()
	actual := TableDigest()
	return &CheckResult{
		CheckType: check.Type,
		Label:     check.Label,
		Pass:      expected != "" && expected == actual,
		Expected:  &HashInfo{BLAKE3: expected},
		Actual:    &HashInfo{BLAKE3: actual},
	}
}

// tableEntry is one row of the serialized canonical tables.
type tableEntry struct {
	Kind    string `json:"kind"`
	Name    string `json:"name"`
	Symbol  string `json:"symbol,omitempty"`
	Offsets []int  `json:"offsets"`
}

// TableDigest returns the BLAKE3 digest of the canonical scale and
// chord tables in library order. Two builds carrying the same tables
// produce the same digest.
func TableDigest() string {
	var entries []tableEntry
	for _, g := range []registry.Group{
		registry.GroupHeptatonic, registry.GroupOctatonic,
		registry.GroupHexatonic, registry.GroupPentatonic,
	} {
		for _, name := range registry.Names(g) {
			base, err := registry.Lookup(name)
			if err != nil {
				return ""
			}
			entries = append(entries, tableEntry{Kind: g.String(), Name: name, Offsets: base.Offsets()})
		}
	}
	for _, q := range catalog() {
		entries = append(entries, tableEntry{Kind: "chord", Name: q.Name, Symbol: q.Symbol, Offsets: q.Structure.Offsets()})
	}
	data, err := json.Marshal(entries)
	if err != nil {
		return ""
	}
	sum := blake3.Sum256(data)
	return hex.EncodeToString(sum[:])
}

func catalog() []symbol.Quality {
	return append(append([]symbol.Quality{}, symbol.Triads()...), symbol.Tetrads()...)
}

func result(check *PlanCheck, failures []string) *CheckResult {
	r := &CheckResult{
		CheckType: check.Type,
		Label:     check.Label,
		Pass:      len(failures) == 0,
	}
	if len(failures) > 0 {
		r.Details = failures
	}
	return r
}
