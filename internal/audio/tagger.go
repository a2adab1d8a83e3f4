package audio

import (
	"os"

	"github.com/bogem/id3v2"
	"github.com/handiism/jacketvid/internal/model"
)

// TagEditAction defines how to handle individual ID3 tags.
type TagEditAction int

const (
	// TagEmpty clears the tag value.
	TagEmpty TagEditAction = iota

	// TagModify updates the tag with the value from the catalog.
	TagModify

	// TagDoNotModify leaves the existing tag value unchanged.
	TagDoNotModify
)

// TagConfig holds tagging configuration for each ID3 field.
//
// Example:
//
//	cfg := &TagConfig{
//	    Album:       "SOUND VOLTEX",
//	    Artist:      TagModify,
//	    TrackTitle:  TagModify,
//	    AlbumTitle:  TagModify,
//	    Comments:    TagEmpty,
//	}
type TagConfig struct {
	// Album is written to the TALB frame when AlbumTitle is TagModify.
	Album string

	// Artist controls the TPE1 (Lead artist) frame.
	Artist TagEditAction

	// AlbumArtist controls the TPE2 (Album artist) frame.
	AlbumArtist TagEditAction

	// AlbumTitle controls the TALB (Album title) frame.
	AlbumTitle TagEditAction

	// TrackTitle controls the TIT2 (Title) frame.
	TrackTitle TagEditAction

	// Comments controls the COMM (Comments) frame.
	Comments TagEditAction
}

// DefaultTagConfig returns the default tag configuration.
//
// Artist, album artist and title come from the catalog; comments are
// cleared. The album frame is only written when an album name is set.
func DefaultTagConfig(album string) *TagConfig {
	albumAction := TagModify
	if album == "" {
		albumAction = TagDoNotModify
	}
	return &TagConfig{
		Album:       album,
		Artist:      TagModify,
		AlbumArtist: TagModify,
		AlbumTitle:  albumAction,
		TrackTitle:  TagModify,
		Comments:    TagEmpty,
	}
}

// Tagger writes ID3 tags to exported MP3 files.
//
// Example:
//
//	tagger := NewTagger(DefaultTagConfig("SOUND VOLTEX"))
//	err := tagger.SaveTags("/videos/Bar - Foo [MXM].mp3", job, jacketJPEG)
type Tagger struct {
	config *TagConfig
}

// NewTagger creates a new Tagger with the given configuration.
//
// If config is nil, DefaultTagConfig("") is used.
func NewTagger(config *TagConfig) *Tagger {
	if config == nil {
		config = DefaultTagConfig("")
	}
	return &Tagger{config: config}
}

// SaveTags writes ID3 tags for job to the MP3 file at path.
//
// artwork is embedded as the JPEG front cover; pass nil to skip it.
func (t *Tagger) SaveTags(path string, job *model.RenderJob, artwork []byte) error {
	tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		if os.IsNotExist(err) {
			tag = id3v2.NewEmptyTag()
		} else {
			return err
		}
	}
	defer tag.Close()

	t.updateStringTags(tag, job)

	if artwork != nil {
		t.updateArtwork(tag, artwork)
	}

	return tag.Save()
}

// TrackTitle returns the title frame value of a job: the song title with
// the job's label appended.
func TrackTitle(job *model.RenderJob) string {
	if job.Label == "" {
		return job.Metadata.Title
	}
	return job.Metadata.Title + " [" + job.Label + "]"
}

func (t *Tagger) updateStringTags(tag *id3v2.Tag, job *model.RenderJob) {
	// Artist (TPE1)
	switch t.config.Artist {
	case TagEmpty:
		tag.SetArtist("")
	case TagModify:
		tag.SetArtist(job.Metadata.Artist)
	}

	// Album Artist (TPE2)
	switch t.config.AlbumArtist {
	case TagEmpty:
		tag.DeleteFrames("TPE2")
	case TagModify:
		tag.AddTextFrame("TPE2", id3v2.EncodingUTF8, job.Metadata.Artist)
	}

	// Album (TALB)
	switch t.config.AlbumTitle {
	case TagEmpty:
		tag.SetAlbum("")
	case TagModify:
		tag.SetAlbum(t.config.Album)
	}

	// Track Title (TIT2)
	switch t.config.TrackTitle {
	case TagEmpty:
		tag.SetTitle("")
	case TagModify:
		tag.SetTitle(TrackTitle(job))
	}

	// Comments (COMM)
	if t.config.Comments == TagEmpty {
		tag.DeleteFrames(tag.CommonID("Comments"))
	}
}

// updateArtwork embeds the jacket as an attached picture frame.
func (t *Tagger) updateArtwork(tag *id3v2.Tag, artwork []byte) {
	tag.DeleteFrames(tag.CommonID("Attached picture"))

	pic := id3v2.PictureFrame{
		Encoding:    id3v2.EncodingUTF8,
		MimeType:    "image/jpeg",
		PictureType: id3v2.PTFrontCover,
		Description: "Jacket",
		Picture:     artwork,
	}
	tag.AddAttachedPicture(pic)
}
