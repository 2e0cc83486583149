// Package report maps raw percentages onto named grade scales. Scales are
// registered by key so deployments can add institution-specific bands without
// touching the attempt engine.
package report

import "sort"

// Band is one rung of a grade scale: the label awarded at or above MinPercent.
type Band struct {
	Label      string  `json:"label"`
	MinPercent float64 `json:"min_percent"`
}

// Scale assigns a band label to a percentage.
type Scale interface {
	Band(percent float64) Band
}

var registry = map[string]Scale{}

// RegisterScale binds a scale to a key like "letter.v1". Call before serving.
func RegisterScale(key string, s Scale) { registry[key] = s }

// Resolve returns the scale for key, falling back to the default letter scale.
func Resolve(key string) Scale {
	if s, ok := registry[key]; ok && s != nil {
		return s
	}
	return Letter
}

// BandScale grades by threshold lookup over a descending band list.
type BandScale struct {
	bands []Band // sorted by MinPercent descending
}

// NewBandScale copies and sorts bands so lookup order never depends on input
// order. An empty scale grades everything into the zero Band.
func NewBandScale(bands ...Band) *BandScale {
	s := &BandScale{bands: append([]Band(nil), bands...)}
	sort.Slice(s.bands, func(i, j int) bool { return s.bands[i].MinPercent > s.bands[j].MinPercent })
	return s
}

func (s *BandScale) Band(percent float64) Band {
	for _, b := range s.bands {
		if percent >= b.MinPercent {
			return b
		}
	}
	if n := len(s.bands); n > 0 {
		return s.bands[n-1]
	}
	return Band{}
}

// Letter is the stock A-F scale.
var Letter = NewBandScale(
	Band{Label: "A", MinPercent: 90},
	Band{Label: "B", MinPercent: 80},
	Band{Label: "C", MinPercent: 70},
	Band{Label: "D", MinPercent: 60},
	Band{Label: "F", MinPercent: 0},
)
