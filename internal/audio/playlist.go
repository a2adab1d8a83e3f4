package audio

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"
)

// PlaylistFormat represents supported playlist file formats.
type PlaylistFormat int

const (
	// FormatM3U creates .m3u files (most compatible).
	// Can be extended with EXTINF lines for duration/title info.
	FormatM3U PlaylistFormat = iota

	// FormatPLS creates .pls files (Winamp/SHOUTcast format).
	FormatPLS
)

// ParsePlaylistFormat maps a settings value ("m3u", "pls") to a format.
// Unknown values fall back to M3U.
func ParsePlaylistFormat(s string) PlaylistFormat {
	if strings.EqualFold(s, "pls") {
		return FormatPLS
	}
	return FormatM3U
}

// Extension returns the file extension for the format, including the dot.
func (f PlaylistFormat) Extension() string {
	if f == FormatPLS {
		return ".pls"
	}
	return ".m3u"
}

// Entry is one rendered video in a playlist.
type Entry struct {
	Path     string
	Title    string
	Duration time.Duration
}

// PlaylistCreator generates a playlist of the videos rendered in one run.
//
// Example:
//
//	creator := NewPlaylistCreator(FormatM3U, true)
//	content := creator.CreatePlaylist(entries)
//	os.WriteFile("/videos/jacketvid.m3u", []byte(content), 0644)
//
//	// Result:
//	// #EXTM3U
//	// #EXTINF:180,Bar - Foo [MXM]
//	// Bar - Foo [MXM].mp4
type PlaylistCreator struct {
	format   PlaylistFormat
	extended bool // For M3U: include EXTINF lines with duration/title
}

// NewPlaylistCreator creates a new PlaylistCreator.
//
// extended only applies to M3U.
func NewPlaylistCreator(format PlaylistFormat, extended bool) *PlaylistCreator {
	return &PlaylistCreator{
		format:   format,
		extended: extended,
	}
}

// CreatePlaylist generates playlist content for entries.
//
// Paths are written relative (file name only); the playlist is expected to
// live in the output directory next to the videos.
func (p *PlaylistCreator) CreatePlaylist(entries []Entry) string {
	if p.format == FormatPLS {
		return p.createPLS(entries)
	}
	return p.createM3U(entries)
}

func (p *PlaylistCreator) createM3U(entries []Entry) string {
	var sb strings.Builder

	if p.extended {
		sb.WriteString("#EXTM3U\n")
	}

	for _, e := range entries {
		if p.extended {
			sb.WriteString(fmt.Sprintf("#EXTINF:%d,%s\n", int(e.Duration.Seconds()), e.Title))
		}
		sb.WriteString(filepath.Base(e.Path) + "\n")
	}

	return sb.String()
}

// createPLS generates a PLS playlist:
//
//	[playlist]
//	File1=Bar - Foo.mp4
//	Title1=Bar - Foo
//	Length1=180
//	NumberOfEntries=1
//	Version=2
func (p *PlaylistCreator) createPLS(entries []Entry) string {
	var sb strings.Builder

	sb.WriteString("[playlist]\n")

	for i, e := range entries {
		idx := i + 1
		sb.WriteString(fmt.Sprintf("File%d=%s\n", idx, filepath.Base(e.Path)))
		sb.WriteString(fmt.Sprintf("Title%d=%s\n", idx, e.Title))
		sb.WriteString(fmt.Sprintf("Length%d=%d\n", idx, int(e.Duration.Seconds())))
	}

	sb.WriteString(fmt.Sprintf("NumberOfEntries=%d\n", len(entries)))
	sb.WriteString("Version=2\n")

	return sb.String()
}
