package pipeline

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/handiism/jacketvid/internal/audio"
	"github.com/handiism/jacketvid/internal/catalog"
	"github.com/handiism/jacketvid/internal/config"
	ioutils "github.com/handiism/jacketvid/internal/io"
	"github.com/handiism/jacketvid/internal/matcher"
	"github.com/handiism/jacketvid/internal/model"
	"github.com/handiism/jacketvid/internal/render"
	"github.com/handiism/jacketvid/internal/upload"
)

// ProgressLevel indicates the severity/type of a progress message.
type ProgressLevel int

const (
	LevelInfo ProgressLevel = iota
	LevelVerbose
	LevelWarning
	LevelError
	LevelSuccess
)

// ProgressEvent represents a batch progress update.
type ProgressEvent struct {
	Message string
	Level   ProgressLevel
}

// PlaylistName is the base name of the batch playlist.
const PlaylistName = "jacketvid"

// Resolver looks up song metadata by ID.
type Resolver interface {
	Lookup(id int) (*model.Metadata, error)
}

// Renderer turns render jobs into video files.
type Renderer interface {
	Render(ctx context.Context, job *model.RenderJob, outputPath string) (*render.Output, error)
	ExportAudio(ctx context.Context, job *model.RenderJob, outputPath string, length time.Duration) error
}

// Uploader publishes rendered videos.
type Uploader interface {
	Upload(ctx context.Context, videoPath string, v *upload.Video) (string, error)
}

// Stats counts the outcomes of a run.
type Stats struct {
	Folders  int
	Skipped  int
	Rendered int
	Failed   int
	Missing  int
	Exported int
	Uploaded int
}

// Manager drives the batch: folder by folder it resolves metadata, plans
// render jobs and runs them through the renderer and the optional MP3
// export and upload stages.
type Manager struct {
	settings     *config.Settings
	resolver     Resolver
	renderer     Renderer
	uploader     Uploader
	tagger       *audio.Tagger
	playlist     *audio.PlaylistCreator
	imageService *ioutils.ImageService
	policy       upload.Policy

	entries      []audio.Entry
	stats        Stats
	totalFolders int32
	doneFolders  int32

	onProgress func(ProgressEvent)
	mu         sync.RWMutex
}

// NewManager creates a new Manager. uploader may be nil, in which case
// videos are never uploaded.
func NewManager(settings *config.Settings, resolver Resolver, renderer Renderer, uploader Uploader, onProgress func(ProgressEvent)) *Manager {
	return &Manager{
		settings:     settings,
		resolver:     resolver,
		renderer:     renderer,
		uploader:     uploader,
		tagger:       audio.NewTagger(audio.DefaultTagConfig(settings.AlbumName)),
		playlist:     audio.NewPlaylistCreator(audio.ParsePlaylistFormat(settings.PlaylistFormat), settings.M3UExtended),
		imageService: ioutils.NewImageService(),
		policy:       settings.ToUploadPolicy(),
		onProgress:   onProgress,
	}
}

// Run processes folders sequentially.
//
// Failures are contained to their folder or job and reported as progress
// events. Run only returns an error when ctx is canceled, when the output
// directory cannot be created, or when a jacket fails to decode while
// AbortOnImageError is set.
func (m *Manager) Run(ctx context.Context, folders []string) error {
	atomic.StoreInt32(&m.totalFolders, int32(len(folders)))
	atomic.StoreInt32(&m.doneFolders, 0)

	if !m.settings.DryRun {
		if err := ioutils.EnsureDir(m.settings.OutputPath); err != nil {
			return fmt.Errorf("creating output directory: %w", err)
		}
	}

	for _, path := range folders {
		if err := ctx.Err(); err != nil {
			return err
		}

		m.addStats(func(s *Stats) { s.Folders++ })
		if err := m.processFolder(ctx, path); err != nil {
			return err
		}
		atomic.AddInt32(&m.doneFolders, 1)
	}

	if m.settings.CreatePlaylist && !m.settings.DryRun {
		m.writePlaylist(ctx)
	}

	s := m.Stats()
	level := LevelSuccess
	if s.Failed > 0 {
		level = LevelWarning
	}
	m.progress(ProgressEvent{
		Message: fmt.Sprintf("Finished %d folders: %d rendered, %d failed, %d skipped", s.Folders, s.Rendered, s.Failed, s.Skipped),
		Level:   level,
	})

	return nil
}

// GetProgress returns the number of folders done and the total.
func (m *Manager) GetProgress() (done, total int32) {
	return atomic.LoadInt32(&m.doneFolders), atomic.LoadInt32(&m.totalFolders)
}

// Stats returns a snapshot of the run's counters.
func (m *Manager) Stats() Stats {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.stats
}

func (m *Manager) processFolder(ctx context.Context, path string) error {
	name := filepath.Base(path)

	folder, err := model.NewSongFolder(path)
	if err != nil {
		m.skip(fmt.Sprintf("Error reading %s: %v", name, err), LevelError)
		return nil
	}

	id, err := folder.NumericID()
	if err != nil {
		m.skip(fmt.Sprintf("Skipping %s: invalid song ID %q", name, folder.ID), LevelWarning)
		return nil
	}

	meta, err := m.resolver.Lookup(id)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			m.skip(fmt.Sprintf("Song ID %d not found in the music database", id), LevelWarning)
		} else {
			m.skip(fmt.Sprintf("Error looking up song ID %d: %v", id, err), LevelError)
		}
		return nil
	}

	m.progress(ProgressEvent{Message: fmt.Sprintf("Processing %s: %s - %s", name, meta.Artist, meta.Title), Level: LevelInfo})

	jobs, result := matcher.Plan(folder, meta)
	if result.NoAudio() {
		m.skip(fmt.Sprintf("No audio files in %s", name), LevelVerbose)
		return nil
	}

	for _, miss := range result.Misses {
		m.addStats(func(s *Stats) { s.Missing++ })
		m.progress(ProgressEvent{Message: fmt.Sprintf("No jacket for %s in %s", miss.Audio, name), Level: LevelWarning})
	}

	for _, job := range jobs {
		if err := m.processJob(ctx, job); err != nil {
			return err
		}
	}

	return nil
}

func (m *Manager) processJob(ctx context.Context, job *model.RenderJob) error {
	outputPath := job.OutputPath(m.settings.OutputPath, ".mp4")

	if m.settings.DryRun {
		m.progress(ProgressEvent{
			Message: fmt.Sprintf("Would render %s from %s + %s", filepath.Base(outputPath), job.Audio, job.Jacket),
			Level:   LevelInfo,
		})
		return nil
	}

	m.progress(ProgressEvent{Message: fmt.Sprintf("Rendering %s + %s", job.Audio, job.Jacket), Level: LevelVerbose})

	output, err := m.renderer.Render(ctx, job, outputPath)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if errors.Is(err, render.ErrImageDecode) && m.settings.AbortOnImageError {
			m.progress(ProgressEvent{Message: fmt.Sprintf("Error rendering %s: %v", job.VideoTitle, err), Level: LevelError})
			return fmt.Errorf("rendering %s: %w", job.VideoTitle, err)
		}
		m.addStats(func(s *Stats) { s.Failed++ })
		m.progress(ProgressEvent{Message: fmt.Sprintf("Error rendering %s: %v", job.VideoTitle, err), Level: LevelError})
		return nil
	}

	m.mu.Lock()
	m.stats.Rendered++
	m.entries = append(m.entries, audio.Entry{Path: output.Path, Title: job.VideoTitle, Duration: output.Duration})
	m.mu.Unlock()
	m.progress(ProgressEvent{Message: fmt.Sprintf("Rendered: %s", filepath.Base(output.Path)), Level: LevelSuccess})

	if m.settings.ExportAudio {
		m.exportAudio(ctx, job, output)
	}

	if m.uploader != nil {
		m.upload(ctx, job, output.Path)
	}

	return nil
}

// exportAudio writes a tagged MP3 next to the video.
func (m *Manager) exportAudio(ctx context.Context, job *model.RenderJob, output *render.Output) {
	mp3Path := job.OutputPath(m.settings.OutputPath, ".mp3")

	if err := m.renderer.ExportAudio(ctx, job, mp3Path, output.Duration); err != nil {
		m.progress(ProgressEvent{Message: fmt.Sprintf("Error exporting audio of %s: %v", job.VideoTitle, err), Level: LevelError})
		return
	}

	artwork, err := m.coverArt(ctx, job)
	if err != nil {
		m.progress(ProgressEvent{Message: fmt.Sprintf("Error preparing cover of %s: %v", job.VideoTitle, err), Level: LevelWarning})
	}

	if err := m.tagger.SaveTags(mp3Path, job, artwork); err != nil {
		m.progress(ProgressEvent{Message: fmt.Sprintf("Error tagging %s: %v", filepath.Base(mp3Path), err), Level: LevelError})
		return
	}

	m.addStats(func(s *Stats) { s.Exported++ })
	m.progress(ProgressEvent{Message: fmt.Sprintf("Exported: %s", filepath.Base(mp3Path)), Level: LevelVerbose})
}

// coverArt returns the job's jacket as JPEG, resized to CoverArtMaxSize.
func (m *Manager) coverArt(ctx context.Context, job *model.RenderJob) ([]byte, error) {
	data, err := os.ReadFile(job.JacketPath())
	if err != nil {
		return nil, err
	}

	if size := m.settings.CoverArtMaxSize; size > 0 {
		return m.imageService.ResizeImage(ctx, data, size, size)
	}
	return m.imageService.ConvertToJPEG(ctx, data)
}

func (m *Manager) upload(ctx context.Context, job *model.RenderJob, videoPath string) {
	id, err := m.uploader.Upload(ctx, videoPath, upload.NewVideo(job, m.policy))
	if err != nil {
		m.progress(ProgressEvent{Message: fmt.Sprintf("Error uploading %s: %v", job.VideoTitle, err), Level: LevelError})
		return
	}

	m.addStats(func(s *Stats) { s.Uploaded++ })
	m.progress(ProgressEvent{Message: fmt.Sprintf("Uploaded %s: https://youtu.be/%s", job.VideoTitle, id), Level: LevelSuccess})
}

func (m *Manager) writePlaylist(ctx context.Context) {
	m.mu.RLock()
	entries := append([]audio.Entry(nil), m.entries...)
	m.mu.RUnlock()

	if len(entries) == 0 {
		return
	}

	format := audio.ParsePlaylistFormat(m.settings.PlaylistFormat)
	path := filepath.Join(m.settings.OutputPath, PlaylistName+format.Extension())
	content := m.playlist.CreatePlaylist(entries)

	if err := ioutils.WriteFile(ctx, path, []byte(content)); err != nil {
		m.progress(ProgressEvent{Message: fmt.Sprintf("Error creating playlist: %v", err), Level: LevelWarning})
		return
	}
	m.progress(ProgressEvent{Message: fmt.Sprintf("Created playlist %s (%d videos)", filepath.Base(path), len(entries)), Level: LevelSuccess})
}

func (m *Manager) skip(message string, level ProgressLevel) {
	m.addStats(func(s *Stats) { s.Skipped++ })
	m.progress(ProgressEvent{Message: message, Level: level})
}

func (m *Manager) addStats(update func(*Stats)) {
	m.mu.Lock()
	update(&m.stats)
	m.mu.Unlock()
}

func (m *Manager) progress(event ProgressEvent) {
	if m.onProgress != nil {
		m.onProgress(event)
	}
}
