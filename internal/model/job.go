package model

import (
	"path/filepath"

	ioutils "github.com/handiism/jacketvid/internal/io"
)

// maxFileNameBytes keeps output names below the 255 byte limit of common
// filesystems, leaving room for the extension.
const maxFileNameBytes = 240

// RenderJob is one video to render: an audio track paired with a jacket.
//
// Example:
//
//	job := NewRenderJob(folder, meta, "1234_5m.s3v", "1234_5_b.png", "MXM")
//	// job.VideoTitle = "Bar - Foo [MXM]"
//	// job.OutputPath("/videos", ".mp4") = "/videos/Bar - Foo [MXM].mp4"
type RenderJob struct {
	// Folder is the song folder the files belong to.
	Folder *SongFolder

	// Metadata is the catalog record used for the title.
	Metadata *Metadata

	// Audio is the audio file name within Folder.
	Audio string

	// Jacket is the jacket file name within Folder.
	Jacket string

	// Label is the difficulty label, empty for the normal video.
	Label string

	// VideoTitle is the sanitized "{artist} - {title}[ [{label}]]" title.
	VideoTitle string
}

// NewRenderJob creates a RenderJob with its sanitized video title.
func NewRenderJob(folder *SongFolder, meta *Metadata, audio, jacket, label string) *RenderJob {
	return &RenderJob{
		Folder:     folder,
		Metadata:   meta,
		Audio:      audio,
		Jacket:     jacket,
		Label:      label,
		VideoTitle: ioutils.SanitizeFileName(VideoTitle(meta.Artist, meta.Title, label)),
	}
}

// AudioPath returns the full path of the job's audio file.
func (j *RenderJob) AudioPath() string {
	return j.Folder.FilePath(j.Audio)
}

// JacketPath returns the full path of the job's jacket file.
func (j *RenderJob) JacketPath() string {
	return j.Folder.FilePath(j.Jacket)
}

// OutputPath returns the path of a file named after the video title in dir.
//
// Names longer than the filesystem limit are truncated on a rune boundary.
func (j *RenderJob) OutputPath(dir, ext string) string {
	return filepath.Join(dir, truncateName(j.VideoTitle, maxFileNameBytes)+ext)
}

// VideoTitle formats the unsanitized title of a video.
//
//	VideoTitle("Bar", "Foo", "")    // "Bar - Foo"
//	VideoTitle("Bar", "Foo", "MXM") // "Bar - Foo [MXM]"
func VideoTitle(artist, title, label string) string {
	s := artist + " - " + title
	if label != "" {
		s += " [" + label + "]"
	}
	return s
}

func truncateName(name string, max int) string {
	if len(name) <= max {
		return name
	}
	cut := 0
	for i := range name {
		if i > max {
			break
		}
		cut = i
	}
	return name[:cut]
}
