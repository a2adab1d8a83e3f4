package matcher

import (
	"sort"

	"github.com/handiism/jacketvid/internal/catalog"
	"github.com/handiism/jacketvid/internal/model"
)

// Match is one resolved audio/jacket pair.
type Match struct {
	Audio  string
	Jacket string

	// Label is empty for the normal video.
	Label string
}

// Miss is an audio track for which no jacket was found.
type Miss struct {
	Audio string
	Label string
}

// Result is the outcome of matching one folder listing.
type Result struct {
	// Matches are ordered: special rules in table order, then the
	// infinite-class video, then the normal video.
	Matches []Match

	// Misses lists audio tracks that were found but dropped for lack of
	// a jacket.
	Misses []Miss
}

// NoAudio reports whether the listing held no eligible audio at all.
func (r *Result) NoAudio() bool {
	return len(r.Matches) == 0 && len(r.Misses) == 0
}

func (r *Result) hasNormal() bool {
	for _, m := range r.Matches {
		if m.Label == "" {
			return true
		}
	}
	return false
}

// apply evaluates one rule and records its match or miss. It reports
// whether a match was added.
func (r *Result) apply(files []string, rule Rule, label string) bool {
	audio, ok := rule.findAudio(files)
	if !ok {
		return false
	}

	jacket, ok := rule.findJacket(files)
	if !ok {
		r.addMiss(Miss{Audio: audio, Label: label})
		return false
	}

	r.dropMiss(audio, label)
	r.Matches = append(r.Matches, Match{Audio: audio, Jacket: jacket, Label: label})
	return true
}

func (r *Result) addMiss(m Miss) {
	for _, existing := range r.Misses {
		if existing == m {
			return
		}
	}
	r.Misses = append(r.Misses, m)
}

func (r *Result) dropMiss(audio, label string) {
	kept := r.Misses[:0]
	for _, m := range r.Misses {
		if m.Audio != audio || m.Label != label {
			kept = append(kept, m)
		}
	}
	r.Misses = kept
}

// MatchFiles resolves the videos to render from a folder listing.
//
// The passes are:
//  1. Every special rule (MXM, EXH, ADV, NOV) independently.
//  2. Only when pass 1 matched nothing: for difficultyVersion > 1 the
//     infinite-class video, labeled from the version table, followed by the
//     normal video; otherwise the normal video alone.
//  3. The normal video with a full jacket descent, if it is still missing.
//
// Files with the same tier are taken in lexicographic order.
func MatchFiles(files []string, difficultyVersion int) *Result {
	sorted := append([]string(nil), files...)
	sort.Strings(sorted)

	r := &Result{}

	for _, rule := range SpecialRules {
		r.apply(sorted, rule, rule.Label)
	}

	if len(r.Matches) == 0 {
		if difficultyVersion > 1 {
			if r.apply(sorted, InfiniteRule, catalog.VersionLabel(difficultyVersion)) {
				r.apply(sorted, normalAfterInfinite, "")
			} else {
				r.apply(sorted, normalWithoutInfinite, "")
			}
		} else {
			r.apply(sorted, NormalRule, "")
		}
	}

	if !r.hasNormal() {
		r.apply(sorted, NormalRule, "")
	}

	return r
}

// Plan matches a song folder and builds its render jobs.
func Plan(folder *model.SongFolder, meta *model.Metadata) ([]*model.RenderJob, *Result) {
	result := MatchFiles(folder.Files, meta.DifficultyVersion)

	jobs := make([]*model.RenderJob, 0, len(result.Matches))
	for _, m := range result.Matches {
		jobs = append(jobs, model.NewRenderJob(folder, meta, m.Audio, m.Jacket, m.Label))
	}
	return jobs, result
}
