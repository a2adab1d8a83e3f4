package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/handiism/jacketvid/internal/render"
	"github.com/handiism/jacketvid/internal/upload"
)

// Settings holds all configuration options.
type Settings struct {
	// Input and output
	MusicDBPath string `json:"music_db_path"`
	OutputPath  string `json:"output_path"`

	// Encoder settings
	FFmpegPath    string `json:"ffmpeg_path"`
	FFprobePath   string `json:"ffprobe_path"`
	SampleRate    int    `json:"sample_rate"`
	TailTrimMS    int    `json:"tail_trim_ms"`
	JacketSize    int    `json:"jacket_size"`
	FrameRate     int    `json:"frame_rate"`
	AudioBitrate  string `json:"audio_bitrate"`
	ExportBitrate string `json:"export_bitrate"`

	// Upload settings
	Upload          bool     `json:"upload"`
	CredentialsPath string   `json:"credentials_path"`
	TokenPath       string   `json:"token_path"`
	Visibility      string   `json:"visibility"` // public, unlisted, private
	UploadTags      []string `json:"upload_tags"`
	UploadCategory  string   `json:"upload_category"`

	// MP3 export settings
	ExportAudio     bool   `json:"export_audio"`
	AlbumName       string `json:"album_name"`
	CoverArtMaxSize int    `json:"cover_art_max_size"`

	// Playlist settings
	CreatePlaylist bool   `json:"create_playlist"`
	PlaylistFormat string `json:"playlist_format"` // m3u, pls
	M3UExtended    bool   `json:"m3u_extended"`

	// Error policy
	AbortOnImageError bool `json:"abort_on_image_error"`

	// Run options, set from flags only.
	Verbose bool `json:"-"`
	DryRun  bool `json:"-"`
}

// DefaultSettings returns settings with default values.
func DefaultSettings() *Settings {
	configDir, err := os.UserConfigDir()
	if err != nil {
		configDir = "."
	}
	authDir := filepath.Join(configDir, "jacketvid")
	opts := render.DefaultOptions()
	policy := upload.DefaultPolicy()

	return &Settings{
		MusicDBPath: "music_db.xml",
		OutputPath:  ".",

		FFmpegPath:    opts.FFmpegPath,
		FFprobePath:   opts.FFprobePath,
		SampleRate:    opts.SampleRate,
		TailTrimMS:    int(opts.TailTrim / time.Millisecond),
		JacketSize:    opts.FrameSize,
		FrameRate:     opts.FrameRate,
		AudioBitrate:  opts.AudioBitrate,
		ExportBitrate: opts.ExportBitrate,

		Upload:          false,
		CredentialsPath: filepath.Join(authDir, "client_secret.json"),
		TokenPath:       filepath.Join(authDir, "token.json"),
		Visibility:      policy.Visibility,
		UploadTags:      policy.Tags,
		UploadCategory:  policy.CategoryID,

		ExportAudio:     false,
		AlbumName:       "SOUND VOLTEX",
		CoverArtMaxSize: 1000,

		CreatePlaylist: false,
		PlaylistFormat: "m3u",
		M3UExtended:    true,

		AbortOnImageError: false,
	}
}

// Load reads settings from a JSON file.
func Load(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultSettings(), nil
		}
		return nil, err
	}

	settings := DefaultSettings()
	if err := json.Unmarshal(data, settings); err != nil {
		return nil, err
	}

	return settings, nil
}

// Save writes settings to a JSON file.
func (s *Settings) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// ToRenderOptions converts settings to render.Options. Non-positive numeric
// values fall back to the defaults.
func (s *Settings) ToRenderOptions() render.Options {
	opts := render.DefaultOptions()

	if s.FFmpegPath != "" {
		opts.FFmpegPath = s.FFmpegPath
	}
	if s.FFprobePath != "" {
		opts.FFprobePath = s.FFprobePath
	}
	if s.SampleRate > 0 {
		opts.SampleRate = s.SampleRate
	}
	if s.TailTrimMS >= 0 {
		opts.TailTrim = time.Duration(s.TailTrimMS) * time.Millisecond
	}
	if s.JacketSize > 0 {
		opts.FrameSize = s.JacketSize
	}
	if s.FrameRate > 0 {
		opts.FrameRate = s.FrameRate
	}
	if s.AudioBitrate != "" {
		opts.AudioBitrate = s.AudioBitrate
	}
	if s.ExportBitrate != "" {
		opts.ExportBitrate = s.ExportBitrate
	}
	opts.Verbose = s.Verbose

	return opts
}

// ToUploadPolicy converts settings to upload.Policy.
func (s *Settings) ToUploadPolicy() upload.Policy {
	policy := upload.DefaultPolicy()

	if upload.ValidVisibility(s.Visibility) {
		policy.Visibility = s.Visibility
	}
	if s.UploadCategory != "" {
		policy.CategoryID = s.UploadCategory
	}
	if s.UploadTags != nil {
		policy.Tags = s.UploadTags
	}

	return policy
}
