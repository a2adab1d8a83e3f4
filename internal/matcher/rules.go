package matcher

import (
	"regexp"
	"strconv"
	"strings"
)

// AudioExt is the extension of the game's audio tracks.
const AudioExt = ".s3v"

// Jacket tiers run from TierMax (most preferred source) down to TierMin.
const (
	TierMax = 5
	TierMin = 1
)

// Audio suffixes encoding a difficulty.
const (
	SuffixMaximum  = "_5m" + AudioExt
	SuffixInfinite = "_4i" + AudioExt
	SuffixExhaust  = "_3e" + AudioExt
	SuffixAdvanced = "_2a" + AudioExt
	SuffixNovice   = "_1n" + AudioExt
)

var difficultySuffixes = []string{
	SuffixMaximum,
	SuffixInfinite,
	SuffixExhaust,
	SuffixAdvanced,
	SuffixNovice,
}

var (
	previewSuffix = "_pre" + AudioExt
	effectSuffix  = "_fx" + AudioExt

	// previewVariant matches numbered previews such as "1234_pre2.s3v".
	previewVariant = regexp.MustCompile(`_pre\d+\.s3v$`)
)

// Excluded reports whether an audio file is a preview or effect track that
// must never be rendered.
func Excluded(name string) bool {
	return strings.HasSuffix(name, previewSuffix) ||
		strings.HasSuffix(name, effectSuffix) ||
		previewVariant.MatchString(name)
}

// IsGenericAudio reports whether name is an eligible audio track without a
// numbered difficulty suffix.
func IsGenericAudio(name string) bool {
	if !strings.HasSuffix(name, AudioExt) || Excluded(name) {
		return false
	}
	for _, s := range difficultySuffixes {
		if strings.HasSuffix(name, s) {
			return false
		}
	}
	return true
}

// TierMatcher reports whether a file name is a jacket of the given tier.
type TierMatcher func(name string, tier int) bool

func jacketSuffix(tier int) string {
	return strconv.Itoa(tier) + "_b.png"
}

// GlobTier matches names of the form "*<tier>_b.png". Like a shell glob,
// the leading wildcard never matches a dot-prefixed (hidden) name.
func GlobTier(name string, tier int) bool {
	return !strings.HasPrefix(name, ".") && strings.HasSuffix(name, jacketSuffix(tier))
}

// ListingTier matches any listed name ending in "<tier>_b.png", hidden
// names included.
func ListingTier(name string, tier int) bool {
	return strings.HasSuffix(name, jacketSuffix(tier))
}

// Step is one range of a jacket search, walked from High down to Low.
type Step struct {
	High  int
	Low   int
	Match TierMatcher
}

// descend searches every tier from start down to TierMin.
func descend(start int) []Step {
	return []Step{{High: start, Low: TierMin, Match: GlobTier}}
}

// Rule pairs an audio pattern with a label and a jacket search.
type Rule struct {
	// Suffix selects the audio track. Empty selects the generic track
	// (see IsGenericAudio).
	Suffix string

	// Label is the fixed label of the rule's video. Rules whose label
	// depends on the song's difficulty version leave it empty.
	Label string

	// Jacket lists the search steps, tried in order.
	Jacket []Step
}

// SpecialRules are evaluated first, independently of each other. Each
// starts its jacket search at the tier of its difficulty.
var SpecialRules = []Rule{
	{Suffix: SuffixMaximum, Label: "MXM", Jacket: descend(5)},
	{Suffix: SuffixExhaust, Label: "EXH", Jacket: descend(3)},
	{Suffix: SuffixAdvanced, Label: "ADV", Jacket: descend(2)},
	{Suffix: SuffixNovice, Label: "NOV", Jacket: descend(1)},
}

// InfiniteRule selects the infinite-class track of songs with a difficulty
// version above 1. Its jacket is the exact tier 4 glob match, else any
// listed tier 3 to 1 jacket.
var InfiniteRule = Rule{
	Suffix: SuffixInfinite,
	Jacket: []Step{
		{High: 4, Low: 4, Match: GlobTier},
		{High: 3, Low: TierMin, Match: ListingTier},
	},
}

var (
	// normalAfterInfinite leaves the tier 4 jacket to the infinite video.
	normalAfterInfinite = Rule{Jacket: []Step{
		{High: 5, Low: 5, Match: GlobTier},
		{High: 3, Low: TierMin, Match: GlobTier},
	}}

	normalWithoutInfinite = Rule{Jacket: []Step{
		{High: 5, Low: 5, Match: GlobTier},
		{High: 4, Low: TierMin, Match: GlobTier},
	}}

	// NormalRule is the unlabeled baseline video with a full descent.
	NormalRule = Rule{Jacket: descend(TierMax)}
)

// findAudio returns the first eligible audio track for the rule.
func (r Rule) findAudio(files []string) (string, bool) {
	for _, name := range files {
		if r.Suffix == "" {
			if IsGenericAudio(name) {
				return name, true
			}
			continue
		}
		if strings.HasSuffix(name, r.Suffix) && !Excluded(name) {
			return name, true
		}
	}
	return "", false
}

// findJacket walks the rule's search steps and returns the first jacket of
// the highest tier reached.
func (r Rule) findJacket(files []string) (string, bool) {
	for _, step := range r.Jacket {
		for tier := step.High; tier >= step.Low; tier-- {
			for _, name := range files {
				if step.Match(name, tier) {
					return name, true
				}
			}
		}
	}
	return "", false
}
