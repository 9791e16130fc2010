package rarity

import (
	"regexp"
	"strings"
)

// Tier is a rarity tier name as stored on records.
type Tier string

const (
	Common      Tier = "Common"
	Rare        Tier = "Rare"
	Epic        Tier = "Epic"
	Legendary   Tier = "Legendary"
	Mythic      Tier = "Mythic"
	BrainrotGod Tier = "Brainrot God"
	Secret      Tier = "Secret"
	OG          Tier = "OG"
)

// ordered lists the ranked tiers from most common to rarest.
var ordered = []Tier{Common, Rare, Epic, Legendary, Mythic, BrainrotGod, Secret}

// All returns every known tier, ranked tiers first then OG.
func All() []Tier {
	out := make([]Tier, 0, len(ordered)+1)
	out = append(out, ordered...)
	return append(out, OG)
}

// Rank returns the position of t in the rarity order, 0 for Common.
// OG and unknown tiers are outside the order and return -1.
func (t Tier) Rank() int {
	for i, o := range ordered {
		if o == t {
			return i
		}
	}
	return -1
}

// Ordered reports whether t takes part in the rarity order.
func (t Tier) Ordered() bool { return t.Rank() >= 0 }

func (t Tier) String() string { return string(t) }

// ladder maps minimum win rate percentages to tiers, highest first.
var ladder = []struct {
	min  float64
	tier Tier
}{
	{20, Common},
	{10, Rare},
	{5, Epic},
	{2, Legendary},
	{0.5, Mythic},
	{0.1, BrainrotGod},
}

// FromWinRate derives a tier from the share of players who own the item.
// Lower win rates are rarer.
func FromWinRate(winRate float64) Tier {
	for _, step := range ladder {
		if winRate >= step.min {
			return step.tier
		}
	}
	return Secret
}

// keywords is checked in order; the most exclusive tiers come first.
var keywords = []struct {
	tier    Tier
	pattern *regexp.Regexp
}{
	{Secret, regexp.MustCompile(`(?i)secret|hidden|exclusive`)},
	{BrainrotGod, regexp.MustCompile(`(?i)god|divine|ultimate`)},
	{Mythic, regexp.MustCompile(`(?i)mythic`)},
	{Legendary, regexp.MustCompile(`(?i)legendary`)},
	{Epic, regexp.MustCompile(`(?i)epic`)},
	{Rare, regexp.MustCompile(`(?i)rare`)},
	{OG, regexp.MustCompile(`(?i)\bog\b|original|\bfirst\b`)},
	{Common, regexp.MustCompile(`(?i)common|basic`)},
}

// FromText infers a tier from free text. The second result is false when
// no keyword matched.
func FromText(text string) (Tier, bool) {
	if strings.TrimSpace(text) == "" {
		return "", false
	}
	for _, k := range keywords {
		if k.pattern.MatchString(text) {
			return k.tier, true
		}
	}
	return "", false
}

// Parse matches a tier label such as an infobox value ("Brainrot God",
// "mythic", "OG"). Unknown labels return false.
func Parse(label string) (Tier, bool) {
	norm := strings.Join(strings.Fields(strings.ToLower(label)), " ")
	if norm == "" {
		return "", false
	}
	for _, t := range All() {
		if strings.ToLower(string(t)) == norm {
			return t, true
		}
	}
	return "", false
}

// Classify resolves a concrete tier. A win rate takes precedence, then the
// text is tried as a label and as keywords; Common is the default.
func Classify(winRate *float64, text string) Tier {
	if winRate != nil {
		return FromWinRate(*winRate)
	}
	if t, ok := Parse(text); ok {
		return t
	}
	if t, ok := FromText(text); ok {
		return t
	}
	return Common
}
