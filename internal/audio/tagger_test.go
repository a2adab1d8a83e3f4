package audio

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/bogem/id3v2"
	"github.com/handiism/jacketvid/internal/model"
)

func testJob(label string) *model.RenderJob {
	folder := &model.SongFolder{ID: "1234", Path: "/songs/1234_song"}
	meta := &model.Metadata{ID: 1234, Title: "Foo", Artist: "Bar", DifficultyVersion: 1}
	return model.NewRenderJob(folder, meta, "1234_5m.s3v", "1234_5_b.png", label)
}

func TestTrackTitle(t *testing.T) {
	if got := TrackTitle(testJob("")); got != "Foo" {
		t.Errorf("TrackTitle() = %q, want %q", got, "Foo")
	}
	if got := TrackTitle(testJob("MXM")); got != "Foo [MXM]" {
		t.Errorf("TrackTitle() = %q, want %q", got, "Foo [MXM]")
	}
}

func TestTagger_SaveTags(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Bar - Foo [MXM].mp3")
	if err := os.WriteFile(path, make([]byte, 4096), 0644); err != nil {
		t.Fatal(err)
	}

	tagger := NewTagger(DefaultTagConfig("SOUND VOLTEX"))
	if err := tagger.SaveTags(path, testJob("MXM"), []byte{0xff, 0xd8, 0xff}); err != nil {
		t.Fatalf("SaveTags: %v", err)
	}

	tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer tag.Close()

	// ID3v2.4 is the only version that supports UTF-8 text frames.
	if tag.Version() != 4 {
		t.Errorf("Version = %d, want 4", tag.Version())
	}
	if tag.Artist() != "Bar" {
		t.Errorf("Artist = %q, want %q", tag.Artist(), "Bar")
	}
	if tag.Title() != "Foo [MXM]" {
		t.Errorf("Title = %q, want %q", tag.Title(), "Foo [MXM]")
	}
	if tag.Album() != "SOUND VOLTEX" {
		t.Errorf("Album = %q, want %q", tag.Album(), "SOUND VOLTEX")
	}
	if pics := tag.GetFrames(tag.CommonID("Attached picture")); len(pics) != 1 {
		t.Errorf("got %d pictures, want 1", len(pics))
	}
}

func TestDefaultTagConfig_NoAlbum(t *testing.T) {
	cfg := DefaultTagConfig("")
	if cfg.AlbumTitle != TagDoNotModify {
		t.Errorf("AlbumTitle = %v, want TagDoNotModify", cfg.AlbumTitle)
	}
}
