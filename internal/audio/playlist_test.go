package audio

import (
	"strings"
	"testing"
	"time"
)

func testEntries() []Entry {
	return []Entry{
		{Path: "/videos/Bar - Foo [MXM].mp4", Title: "Bar - Foo [MXM]", Duration: 180500 * time.Millisecond},
		{Path: "/videos/Bar - Foo.mp4", Title: "Bar - Foo", Duration: 200 * time.Second},
	}
}

func TestPlaylistCreator_M3U(t *testing.T) {
	content := NewPlaylistCreator(FormatM3U, false).CreatePlaylist(testEntries())

	want := "Bar - Foo [MXM].mp4\nBar - Foo.mp4\n"
	if content != want {
		t.Errorf("M3U = %q, want %q", content, want)
	}
}

func TestPlaylistCreator_M3UExtended(t *testing.T) {
	content := NewPlaylistCreator(FormatM3U, true).CreatePlaylist(testEntries())

	if !strings.HasPrefix(content, "#EXTM3U\n") {
		t.Error("Extended M3U should start with #EXTM3U")
	}
	if !strings.Contains(content, "#EXTINF:180,Bar - Foo [MXM]\n") {
		t.Errorf("Extended M3U should contain EXTINF for the first entry:\n%s", content)
	}
}

func TestPlaylistCreator_PLS(t *testing.T) {
	content := NewPlaylistCreator(FormatPLS, false).CreatePlaylist(testEntries())

	for _, want := range []string{"[playlist]\n", "File1=Bar - Foo [MXM].mp4\n", "Length2=200\n", "NumberOfEntries=2\n"} {
		if !strings.Contains(content, want) {
			t.Errorf("PLS missing %q:\n%s", want, content)
		}
	}
}

func TestParsePlaylistFormat(t *testing.T) {
	tests := []struct {
		in   string
		want PlaylistFormat
		ext  string
	}{
		{"m3u", FormatM3U, ".m3u"},
		{"PLS", FormatPLS, ".pls"},
		{"wpl", FormatM3U, ".m3u"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got := ParsePlaylistFormat(tt.in)
			if got != tt.want {
				t.Errorf("ParsePlaylistFormat(%q) = %v, want %v", tt.in, got, tt.want)
			}
			if got.Extension() != tt.ext {
				t.Errorf("Extension() = %q, want %q", got.Extension(), tt.ext)
			}
		})
	}
}
