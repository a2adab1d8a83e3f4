package matcher

import (
	"reflect"
	"testing"

	"github.com/handiism/jacketvid/internal/catalog"
	"github.com/handiism/jacketvid/internal/model"
)

func TestExcluded(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"1234_song.s3v", false},
		{"1234_song_5m.s3v", false},
		{"1234_song_pre.s3v", true},
		{"1234_song_pre2.s3v", true},
		{"1234_song_pre12.s3v", true},
		{"1234_song_fx.s3v", true},
		{"1234_prelude.s3v", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Excluded(tt.name); got != tt.want {
				t.Errorf("Excluded(%q) = %v, want %v", tt.name, got, tt.want)
			}
		})
	}
}

func TestIsGenericAudio(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"1234_song.s3v", true},
		{"1234_song_5m.s3v", false},
		{"1234_song_4i.s3v", false},
		{"1234_song_3e.s3v", false},
		{"1234_song_2a.s3v", false},
		{"1234_song_1n.s3v", false},
		{"1234_song_pre.s3v", false},
		{"1234_song.wav", false},
		{"1234_5_b.png", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsGenericAudio(tt.name); got != tt.want {
				t.Errorf("IsGenericAudio(%q) = %v, want %v", tt.name, got, tt.want)
			}
		})
	}
}

func TestMatchFiles_SpecialRules(t *testing.T) {
	for _, rule := range SpecialRules {
		start := rule.Jacket[0].High
		for tier := start; tier >= TierMin; tier-- {
			audio := "1234_song" + rule.Suffix
			jacket := "jk_1234_" + string(rune('0'+tier)) + "_b.png"

			t.Run(rule.Label+"/"+jacket, func(t *testing.T) {
				r := MatchFiles([]string{audio, jacket}, 1)

				var labeled []Match
				for _, m := range r.Matches {
					if m.Label == rule.Label {
						labeled = append(labeled, m)
					}
				}
				if len(labeled) != 1 {
					t.Fatalf("got %d %s matches, want 1: %+v", len(labeled), rule.Label, r.Matches)
				}
				if labeled[0].Audio != audio || labeled[0].Jacket != jacket {
					t.Errorf("match = %+v, want audio %s jacket %s", labeled[0], audio, jacket)
				}
			})
		}
	}
}

func TestMatchFiles_SpecialNeverAscends(t *testing.T) {
	r := MatchFiles([]string{"1234_1n.s3v", "jk_1234_5_b.png"}, 1)

	if len(r.Matches) != 0 {
		t.Errorf("NOV must not use a tier 5 jacket, got %+v", r.Matches)
	}
	want := []Miss{{Audio: "1234_1n.s3v", Label: "NOV"}}
	if !reflect.DeepEqual(r.Misses, want) {
		t.Errorf("Misses = %+v, want %+v", r.Misses, want)
	}
}

func TestMatchFiles_SpecialRulesIndependent(t *testing.T) {
	files := []string{
		"1234_song.s3v",
		"1234_song_pre.s3v",
		"1234_song_5m.s3v",
		"1234_song_2a.s3v",
		"jk_1234_1_b.png",
		"jk_1234_2_b.png",
		"jk_1234_5_b.png",
	}

	r := MatchFiles(files, 1)

	want := []Match{
		{Audio: "1234_song_5m.s3v", Jacket: "jk_1234_5_b.png", Label: "MXM"},
		{Audio: "1234_song_2a.s3v", Jacket: "jk_1234_2_b.png", Label: "ADV"},
		{Audio: "1234_song.s3v", Jacket: "jk_1234_5_b.png", Label: ""},
	}
	if !reflect.DeepEqual(r.Matches, want) {
		t.Errorf("Matches = %+v, want %+v", r.Matches, want)
	}
}

func TestMatchFiles_VersionOneGeneric(t *testing.T) {
	r := MatchFiles([]string{"1234_song.s3v", "1234_song_pre.s3v", "jk_1234_3_b.png"}, 1)

	want := []Match{{Audio: "1234_song.s3v", Jacket: "jk_1234_3_b.png"}}
	if !reflect.DeepEqual(r.Matches, want) {
		t.Errorf("Matches = %+v, want %+v", r.Matches, want)
	}
}

func TestMatchFiles_PrefersHighestTier(t *testing.T) {
	files := []string{"1234_song.s3v", "b_5_b.png", "a_5_b.png", "jk_4_b.png", "jk_1_b.png"}

	r := MatchFiles(files, 1)

	if len(r.Matches) != 1 || r.Matches[0].Jacket != "a_5_b.png" {
		t.Errorf("Matches = %+v, want a_5_b.png", r.Matches)
	}
}

func TestMatchFiles_InfiniteLabel(t *testing.T) {
	files := []string{"1234_song.s3v", "1234_song_4i.s3v", "jk_1234_4_b.png", "jk_1234_5_b.png"}

	r := MatchFiles(files, 4)

	want := []Match{
		{Audio: "1234_song_4i.s3v", Jacket: "jk_1234_4_b.png", Label: catalog.VersionLabel(4)},
		{Audio: "1234_song.s3v", Jacket: "jk_1234_5_b.png", Label: ""},
	}
	if !reflect.DeepEqual(r.Matches, want) {
		t.Fatalf("Matches = %+v, want %+v", r.Matches, want)
	}
	if r.Matches[0].Label != "HVN" || r.Matches[0].Label == "Version 4" {
		t.Errorf("label = %q, want the table entry for version 4", r.Matches[0].Label)
	}
}

func TestMatchFiles_InfiniteUnmappedVersion(t *testing.T) {
	r := MatchFiles([]string{"1234_4i.s3v", "jk_4_b.png"}, 9)

	if len(r.Matches) != 1 || r.Matches[0].Label != "Version 9" {
		t.Errorf("Matches = %+v, want one match labeled Version 9", r.Matches)
	}
}

func TestMatchFiles_InfiniteSecondaryFallback(t *testing.T) {
	// Only a hidden tier 2 jacket: the listing scan finds it for the
	// infinite video, the glob search of the normal video does not.
	files := []string{"1234_song.s3v", "1234_song_4i.s3v", ".jk_1234_2_b.png"}

	r := MatchFiles(files, 2)

	wantMatches := []Match{{Audio: "1234_song_4i.s3v", Jacket: ".jk_1234_2_b.png", Label: "INF"}}
	if !reflect.DeepEqual(r.Matches, wantMatches) {
		t.Errorf("Matches = %+v, want %+v", r.Matches, wantMatches)
	}
	wantMisses := []Miss{{Audio: "1234_song.s3v"}}
	if !reflect.DeepEqual(r.Misses, wantMisses) {
		t.Errorf("Misses = %+v, want %+v", r.Misses, wantMisses)
	}
}

func TestMatchFiles_InfiniteJacketDoesNotAscend(t *testing.T) {
	r := MatchFiles([]string{"1234_4i.s3v", "jk_5_b.png"}, 3)

	if len(r.Matches) != 0 {
		t.Errorf("infinite video must not use a tier 5 jacket, got %+v", r.Matches)
	}
	if len(r.Misses) != 1 || r.Misses[0].Label != "GRV" {
		t.Errorf("Misses = %+v, want one GRV miss", r.Misses)
	}
}

func TestMatchFiles_NormalWithoutInfiniteUsesTierFour(t *testing.T) {
	r := MatchFiles([]string{"1234_song.s3v", "jk_1234_4_b.png"}, 3)

	want := []Match{{Audio: "1234_song.s3v", Jacket: "jk_1234_4_b.png"}}
	if !reflect.DeepEqual(r.Matches, want) {
		t.Errorf("Matches = %+v, want %+v", r.Matches, want)
	}
}

func TestMatchFiles_NormalAfterInfiniteSkipsTierFour(t *testing.T) {
	files := []string{"1234_song.s3v", "1234_song_4i.s3v", "jk_1234_4_b.png", "jk_1234_2_b.png"}

	r := MatchFiles(files, 3)

	want := []Match{
		{Audio: "1234_song_4i.s3v", Jacket: "jk_1234_4_b.png", Label: "GRV"},
		{Audio: "1234_song.s3v", Jacket: "jk_1234_2_b.png", Label: ""},
	}
	if !reflect.DeepEqual(r.Matches, want) {
		t.Errorf("Matches = %+v, want %+v", r.Matches, want)
	}
}

func TestMatchFiles_SafetyNet(t *testing.T) {
	// The narrow range after the infinite video finds nothing; the final
	// full descent still produces the normal video from the tier 4 jacket.
	files := []string{"1234_song.s3v", "1234_song_4i.s3v", "jk_1234_4_b.png"}

	r := MatchFiles(files, 5)

	want := []Match{
		{Audio: "1234_song_4i.s3v", Jacket: "jk_1234_4_b.png", Label: "VVD"},
		{Audio: "1234_song.s3v", Jacket: "jk_1234_4_b.png", Label: ""},
	}
	if !reflect.DeepEqual(r.Matches, want) {
		t.Errorf("Matches = %+v, want %+v", r.Matches, want)
	}
	if len(r.Misses) != 0 {
		t.Errorf("Misses = %+v, want none", r.Misses)
	}
}

func TestMatchFiles_NoJacket(t *testing.T) {
	r := MatchFiles([]string{"1234_song.s3v", "cover.png"}, 1)

	if len(r.Matches) != 0 {
		t.Errorf("Matches = %+v, want none", r.Matches)
	}
	if r.NoAudio() {
		t.Error("NoAudio() = true, want false")
	}
	want := []Miss{{Audio: "1234_song.s3v"}}
	if !reflect.DeepEqual(r.Misses, want) {
		t.Errorf("Misses = %+v, want %+v", r.Misses, want)
	}
}

func TestMatchFiles_NoAudio(t *testing.T) {
	tests := []struct {
		name    string
		files   []string
		version int
	}{
		{"empty", nil, 1},
		{"previews only", []string{"1234_pre.s3v", "1234_pre2.s3v", "1234_fx.s3v", "jk_5_b.png"}, 1},
		{"infinite track on version 1", []string{"1234_4i.s3v", "jk_4_b.png"}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := MatchFiles(tt.files, tt.version)
			if !r.NoAudio() {
				t.Errorf("NoAudio() = false, result %+v", r)
			}
		})
	}
}

func TestMatchFiles_Deterministic(t *testing.T) {
	a := []string{"z.s3v", "a.s3v", "b_5_b.png", "a_5_b.png"}
	b := []string{"a_5_b.png", "a.s3v", "b_5_b.png", "z.s3v"}

	ra, rb := MatchFiles(a, 1), MatchFiles(b, 1)
	if !reflect.DeepEqual(ra, rb) {
		t.Errorf("results differ by listing order: %+v vs %+v", ra, rb)
	}
	if ra.Matches[0].Audio != "a.s3v" || ra.Matches[0].Jacket != "a_5_b.png" {
		t.Errorf("Matches = %+v", ra.Matches)
	}
}

func TestPlan(t *testing.T) {
	folder := &model.SongFolder{
		ID:    "1234",
		Path:  "/songs/1234_song",
		Files: []string{"1234_5_b.png", "1234_5m.s3v"},
	}
	meta := &model.Metadata{ID: 1234, Title: "Foo", Artist: "Bar", DifficultyVersion: 1}

	jobs, result := Plan(folder, meta)

	if len(jobs) != 1 {
		t.Fatalf("got %d jobs, want 1 (result %+v)", len(jobs), result)
	}
	job := jobs[0]
	if job.Audio != "1234_5m.s3v" || job.Jacket != "1234_5_b.png" {
		t.Errorf("job files = %s, %s", job.Audio, job.Jacket)
	}
	if job.VideoTitle != "Bar - Foo [MXM]" {
		t.Errorf("VideoTitle = %q, want %q", job.VideoTitle, "Bar - Foo [MXM]")
	}
}
