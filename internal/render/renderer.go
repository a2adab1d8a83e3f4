package render

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	ioutils "github.com/handiism/jacketvid/internal/io"
	"github.com/handiism/jacketvid/internal/model"
	"golang.org/x/sync/errgroup"
)

var (
	// ErrImageDecode is returned when the jacket cannot be loaded.
	ErrImageDecode = ioutils.ErrImageDecode

	// ErrEncode is returned when ffprobe or ffmpeg fail.
	ErrEncode = errors.New("encode failed")
)

// Output describes a rendered video.
type Output struct {
	Path string

	// Duration is the length of the video's audio after trimming.
	Duration time.Duration
}

// Renderer renders jobs with ffmpeg.
//
// Example:
//
//	r := NewRenderer(DefaultOptions())
//	out, err := r.Render(ctx, job, job.OutputPath("/videos", ".mp4"))
//	if errors.Is(err, ErrImageDecode) {
//	    // jacket unreadable
//	}
type Renderer struct {
	opts   Options
	images *ioutils.ImageService
}

// NewRenderer creates a Renderer with the given options.
func NewRenderer(opts Options) *Renderer {
	return &Renderer{
		opts:   opts,
		images: ioutils.NewImageService(),
	}
}

// Render writes the video of job to outputPath.
//
// A partial output file is removed when muxing fails.
func (r *Renderer) Render(ctx context.Context, job *model.RenderJob, outputPath string) (*Output, error) {
	duration, err := Probe(ctx, r.opts.FFprobePath, job.AudioPath())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEncode, err)
	}

	audioPath, releaseAudio, err := ioutils.TempFile("jacketvid-*.wav")
	if err != nil {
		return nil, err
	}
	defer releaseAudio()

	framePath, releaseFrame, err := ioutils.TempFile("jacketvid-*.png")
	if err != nil {
		return nil, err
	}
	defer releaseFrame()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return r.run(gctx, "resample", ResampleArgs(r.opts, job.AudioPath(), audioPath, duration))
	})
	g.Go(func() error {
		return r.prepareFrame(gctx, job.JacketPath(), framePath)
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if err := r.run(ctx, "mux", MuxArgs(r.opts, framePath, audioPath, outputPath)); err != nil {
		os.Remove(outputPath)
		return nil, err
	}

	return &Output{Path: outputPath, Duration: r.opts.Trimmed(duration)}, nil
}

// ExportAudio transcodes the job's audio to an MP3 at outputPath, cut to
// length (the Duration of the rendered Output).
func (r *Renderer) ExportAudio(ctx context.Context, job *model.RenderJob, outputPath string, length time.Duration) error {
	if err := r.run(ctx, "export", ExportArgs(r.opts, job.AudioPath(), outputPath, length)); err != nil {
		os.Remove(outputPath)
		return err
	}
	return nil
}

// prepareFrame scales the jacket to the video frame and writes it as PNG.
func (r *Renderer) prepareFrame(ctx context.Context, jacketPath, framePath string) error {
	frame, err := r.images.LoadSquare(ctx, jacketPath, r.opts.FrameSize)
	if err != nil {
		return err
	}
	return r.images.WritePNG(ctx, framePath, frame)
}

func (r *Renderer) run(ctx context.Context, step string, args []string) error {
	res := Execute(ctx, args, r.opts.Verbose)
	if res.Err == nil {
		return nil
	}
	if line := res.LastLine(); line != "" {
		return fmt.Errorf("%w: %s: %v: %s", ErrEncode, step, res.Err, line)
	}
	return fmt.Errorf("%w: %s: %v", ErrEncode, step, res.Err)
}
