package upload

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/handiism/jacketvid/internal/catalog"
	"github.com/handiism/jacketvid/internal/model"
	"google.golang.org/api/youtube/v3"
)

// Visibility values accepted by the API.
const (
	VisibilityPublic   = "public"
	VisibilityUnlisted = "unlisted"
	VisibilityPrivate  = "private"
)

// CategoryMusic is the YouTube category ID of music videos.
const CategoryMusic = "10"

// Maximum lengths enforced by the API.
const (
	maxTitleRunes       = 100
	maxDescriptionBytes = 5000
	maxTagsLength       = 500
)

// Policy holds the settings applied to every uploaded video.
type Policy struct {
	Visibility string
	CategoryID string
	Tags       []string
}

// DefaultPolicy returns the default upload policy.
func DefaultPolicy() Policy {
	return Policy{
		Visibility: VisibilityUnlisted,
		CategoryID: CategoryMusic,
		Tags:       []string{"SOUND VOLTEX", "SDVX"},
	}
}

// ValidVisibility reports whether v is a visibility the API accepts.
func ValidVisibility(v string) bool {
	switch v {
	case VisibilityPublic, VisibilityUnlisted, VisibilityPrivate:
		return true
	}
	return false
}

// Video is the metadata of one upload.
type Video struct {
	Title       string
	Description string
	Visibility  string
	CategoryID  string
	Tags        []string
}

// NewVideo builds the upload metadata of a render job.
func NewVideo(job *model.RenderJob, p Policy) *Video {
	visibility := p.Visibility
	if !ValidVisibility(visibility) {
		visibility = VisibilityUnlisted
	}
	category := p.CategoryID
	if category == "" {
		category = CategoryMusic
	}

	return &Video{
		Title:       truncateRunes(job.VideoTitle, maxTitleRunes),
		Description: Description(job),
		Visibility:  visibility,
		CategoryID:  category,
		Tags:        Tags(job, p.Tags),
	}
}

// Description renders the video description of a job.
//
// Example output:
//
//	Bar - Foo [MXM]
//
//	Artist: Bar
//	Title: Foo
//	Difficulty: MXM
//	Version: GRAVITY WARS
func Description(job *model.RenderJob) string {
	var sb strings.Builder

	sb.WriteString(model.VideoTitle(job.Metadata.Artist, job.Metadata.Title, job.Label))
	sb.WriteString("\n\n")
	sb.WriteString(fmt.Sprintf("Artist: %s\n", job.Metadata.Artist))
	sb.WriteString(fmt.Sprintf("Title: %s\n", job.Metadata.Title))
	if job.Label != "" {
		sb.WriteString(fmt.Sprintf("Difficulty: %s\n", job.Label))
	}
	if job.Metadata.DifficultyVersion > 1 {
		sb.WriteString(fmt.Sprintf("Version: %s\n", catalog.VersionName(job.Metadata.DifficultyVersion)))
	}

	desc := sb.String()
	// The API rejects angle brackets in descriptions.
	desc = strings.NewReplacer("<", "‹", ">", "›").Replace(desc)
	for len(desc) > maxDescriptionBytes {
		_, size := utf8.DecodeLastRuneInString(desc)
		desc = desc[:len(desc)-size]
	}
	return desc
}

// Tags returns the job's tags followed by the fixed tags, without
// duplicates, cut to the API's combined length limit.
func Tags(job *model.RenderJob, fixed []string) []string {
	candidates := []string{job.Metadata.Artist, job.Metadata.Title}
	if job.Label != "" {
		candidates = append(candidates, job.Label)
	}
	candidates = append(candidates, fixed...)

	seen := make(map[string]bool)
	var tags []string
	total := 0
	for _, tag := range candidates {
		tag = strings.TrimSpace(strings.NewReplacer("<", "", ">", "").Replace(tag))
		if tag == "" || seen[strings.ToLower(tag)] {
			continue
		}
		if total+len(tag) > maxTagsLength {
			break
		}
		seen[strings.ToLower(tag)] = true
		tags = append(tags, tag)
		total += len(tag) + 1
	}
	return tags
}

// resource converts v to the API representation.
func (v *Video) resource() *youtube.Video {
	return &youtube.Video{
		Snippet: &youtube.VideoSnippet{
			Title:       v.Title,
			Description: v.Description,
			CategoryId:  v.CategoryID,
			Tags:        v.Tags,
		},
		Status: &youtube.VideoStatus{
			PrivacyStatus: v.Visibility,
		},
	}
}

func truncateRunes(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max])
}
