package headloss

import (
	"sort"
	"strings"
)

// FittingType enumerates the fittings with a known K multiplier.
// FittingOther carries anything else through to an UnsupportedFitting notice.
type FittingType int

const (
	FittingOther FittingType = iota
	GateValve
	GlobeValve
	SwingCheckValve
	BallValve
	Elbow90LongRadius
)

// kMultiplier is applied to the friction factor of the pipe, not used as K directly.
var kMultiplier = map[FittingType]float64{
	GateValve:         8,
	GlobeValve:        340,
	SwingCheckValve:   100,
	BallValve:         3,
	Elbow90LongRadius: 14,
}

var fittingNames = map[FittingType]string{
	GateValve:         "Gate Valve",
	GlobeValve:        "Globe Valve",
	SwingCheckValve:   "Swing Check Valve",
	BallValve:         "Ball Valve",
	Elbow90LongRadius: "90 Deg Elbow LR",
}

// keys are normalized with normalizeFitting
var fittingAliases = map[string]FittingType{
	"gatevalve":         GateValve,
	"globevalve":        GlobeValve,
	"swingcheckvalve":   SwingCheckValve,
	"swingcheck":        SwingCheckValve,
	"ballvalve":         BallValve,
	"90degelbowlr":      Elbow90LongRadius,
	"90elbowlr":         Elbow90LongRadius,
	"90elbowlongradius": Elbow90LongRadius,
	"elbow90lr":         Elbow90LongRadius,
	"elbow90longradius": Elbow90LongRadius,
}

// Fitting is a parsed manifest key.
type Fitting struct {
	Type FittingType
	Name string
}

func (t FittingType) String() string {
	if n, ok := fittingNames[t]; ok {
		return n
	}
	return "Other"
}

// KMultiplier reports the multiplier for t and whether t is supported.
func (t FittingType) KMultiplier() (float64, bool) {
	k, ok := kMultiplier[t]
	return k, ok
}

// ParseFitting maps a fitting name to its type. Unknown names yield FittingOther.
func ParseFitting(name string) Fitting {
	if t, ok := fittingAliases[normalizeFitting(name)]; ok {
		return Fitting{Type: t, Name: name}
	}
	return Fitting{Type: FittingOther, Name: name}
}

func normalizeFitting(name string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case ' ', '-', '_', ',', '.', '°':
			return -1
		}
		return r
	}, strings.ToLower(strings.TrimSpace(name)))
}

// Manifest maps a fitting name to how many of it the segment has.
type Manifest map[string]int

// names returns the manifest keys sorted, so sums and notices are reproducible.
func (m Manifest) names() []string {
	out := make([]string, 0, len(m))
	for name := range m {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// SupportedFittings lists the display names of every supported fitting.
func SupportedFittings() []string {
	out := []string{}
	for t := GateValve; t <= Elbow90LongRadius; t++ {
		out = append(out, t.String())
	}
	return out
}
