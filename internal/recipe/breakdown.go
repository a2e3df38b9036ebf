package recipe

import (
	"math"
	"strconv"

	"parfumai/internal/catalog"
)

// Fixed bottle shares. The solvent takes whatever the other buckets leave.
const (
	EssenceShare     = 25.0
	RawMaterialShare = 10.0
)

// Portion is a single ingredient's volume inside a bucket.
type Portion struct {
	Name   string  `json:"name"`
	Volume float64 `json:"volume"`
}

// Share is one bucket of the bottle: essences, raw materials or solvent.
type Share struct {
	Percent float64   `json:"percent"`
	Volume  float64   `json:"volume"`
	Items   []Portion `json:"items,omitempty"`
}

// Breakdown is the percentage split of a bottle across the three buckets.
type Breakdown struct {
	Volume   int   `json:"volume"`
	Essences Share `json:"essences"`
	Raw      Share `json:"rawMaterials"`
	Solvent  Share `json:"solvent"`
}

// Total is the summed percentage, always 100 for a computed breakdown.
func (b Breakdown) Total() float64 {
	return b.Essences.Percent + b.Raw.Percent + b.Solvent.Percent
}

// ComputeBreakdown splits the bottle volume between the selected essences,
// raw materials and the solvent. Empty buckets get zero percent.
func ComputeBreakdown(sel Selection) Breakdown {
	volume := sel.Volume
	if volume <= 0 {
		volume = DefaultVolume
	}
	raw, essences := catalog.Split(sel.Ingredients)

	b := Breakdown{Volume: volume}
	if len(essences) > 0 {
		b.Essences = share(volume, EssenceShare, essences)
	}
	if len(raw) > 0 {
		b.Raw = share(volume, RawMaterialShare, raw)
	}
	b.Solvent = share(volume, 100-b.Essences.Percent-b.Raw.Percent, nil)
	return b
}

func share(volume int, percent float64, items []catalog.Ingredient) Share {
	total := float64(volume) * percent / 100
	s := Share{Percent: percent, Volume: round1(total)}
	if len(items) == 0 {
		return s
	}
	each := round1(total / float64(len(items)))
	s.Items = make([]Portion, 0, len(items))
	for _, item := range items {
		s.Items = append(s.Items, Portion{Name: item.Name, Volume: each})
	}
	return s
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func formatML(v float64) string {
	return strconv.FormatFloat(round1(v), 'f', -1, 64) + "ml"
}

func formatPercent(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64) + "%"
}
