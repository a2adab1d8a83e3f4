package render

import (
	"strconv"
	"time"
)

// Options holds the fixed encoding convention.
type Options struct {
	FFmpegPath  string
	FFprobePath string

	// SampleRate is the audio sample rate in Hz.
	SampleRate int

	// TailTrim is cut from the end of every track.
	TailTrim time.Duration

	// FrameSize is the width and height of the square video frame.
	FrameSize int

	// FrameRate is the video frame rate in frames per second.
	FrameRate int

	// AudioBitrate is the AAC bitrate of the video, e.g. "320k".
	AudioBitrate string

	// ExportBitrate is the MP3 bitrate of exported audio.
	ExportBitrate string

	// Verbose tees ffmpeg stderr to the terminal.
	Verbose bool
}

// DefaultOptions returns the standard encoding convention.
func DefaultOptions() Options {
	return Options{
		FFmpegPath:    "ffmpeg",
		FFprobePath:   "ffprobe",
		SampleRate:    44100,
		TailTrim:      500 * time.Millisecond,
		FrameSize:     1080,
		FrameRate:     1,
		AudioBitrate:  "320k",
		ExportBitrate: "320k",
	}
}

// Trimmed returns the output length of a track of the given duration.
// Tracks not longer than the tail are kept whole.
func (o Options) Trimmed(duration time.Duration) time.Duration {
	if o.TailTrim <= 0 || duration <= o.TailTrim {
		return duration
	}
	return duration - o.TailTrim
}

func (o Options) preamble() []string {
	args := []string{o.FFmpegPath, "-hide_banner", "-nostdin", "-y"}
	if o.Verbose {
		return append(args, "-loglevel", "info")
	}
	return append(args, "-loglevel", "error")
}

func seconds(d time.Duration) string {
	return strconv.FormatFloat(d.Seconds(), 'f', 3, 64)
}

// ResampleArgs builds the command that converts input to 16-bit stereo PCM
// at the configured sample rate, limited to the trimmed duration.
func ResampleArgs(o Options, input, output string, duration time.Duration) []string {
	args := o.preamble()
	args = append(args,
		"-i", input,
		"-vn",
		"-ac", "2",
		"-ar", strconv.Itoa(o.SampleRate),
		"-c:a", "pcm_s16le",
	)
	if trimmed := o.Trimmed(duration); trimmed != duration {
		args = append(args, "-t", seconds(trimmed))
	}
	return append(args, output)
}

// MuxArgs builds the command that holds frame for the whole of audio and
// writes an H.264/AAC MP4.
func MuxArgs(o Options, frame, audio, output string) []string {
	rate := strconv.Itoa(o.FrameRate)

	args := o.preamble()
	args = append(args,
		"-loop", "1",
		"-framerate", rate,
		"-i", frame,
		"-i", audio,
		"-map", "0:v",
		"-map", "1:a",
		"-c:v", "libx264",
		"-tune", "stillimage",
		"-pix_fmt", "yuv420p",
		"-r", rate,
		"-c:a", "aac",
		"-b:a", o.AudioBitrate,
		"-shortest",
		"-movflags", "+faststart",
		output,
	)
	return args
}

// ExportArgs builds the command that transcodes input to an MP3, cut to
// length when length is positive.
func ExportArgs(o Options, input, output string, length time.Duration) []string {
	args := o.preamble()
	args = append(args,
		"-i", input,
		"-vn",
		"-ar", strconv.Itoa(o.SampleRate),
		"-c:a", "libmp3lame",
		"-b:a", o.ExportBitrate,
	)
	if length > 0 {
		args = append(args, "-t", seconds(length))
	}
	return append(args, output)
}
