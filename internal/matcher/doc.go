// Package matcher decides which audio tracks of a song folder pair with
// which jackets, and how the resulting videos are labeled.
//
// A folder may hold one audio track per difficulty (suffixes _5m, _4i, _3e,
// _2a, _1n), a generic suffix-less track, and previews that are never
// rendered (_pre, _preN, _fx). Jackets are named "*<tier>_b.png" with tier 5
// the most preferred source.
//
// # Rules
//
// Matching is driven by a table of Rules. Each Rule names an audio suffix,
// a label, and a jacket search made of Steps; a Step walks tiers downward
// and never upward:
//
//	SpecialRules   MXM _5m from tier 5, EXH _3e from 3, ADV _2a from 2, NOV _1n from 1
//	InfiniteRule   _4i at tier 4, else tiers 3..1 (label from catalog.VersionLabel)
//	NormalRule     generic track from tier 5 down to 1, unlabeled
//
// # Usage
//
//	jobs, result := matcher.Plan(folder, meta)
//	for _, miss := range result.Misses {
//	    log.Printf("no jacket for %s", miss.Audio)
//	}
package matcher
