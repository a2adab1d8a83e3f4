package render

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/handiism/jacketvid/internal/model"
)

func TestParseDuration(t *testing.T) {
	tests := []struct {
		name    string
		json    string
		want    time.Duration
		wantErr bool
	}{
		{"seconds", `{"format":{"duration":"123.500000"}}`, 123500 * time.Millisecond, false},
		{"missing", `{"format":{}}`, 0, true},
		{"not available", `{"format":{"duration":"N/A"}}`, 0, true},
		{"zero", `{"format":{"duration":"0.000"}}`, 0, true},
		{"garbage", `not json`, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDuration([]byte(tt.json))
			if tt.wantErr {
				if err == nil {
					t.Errorf("expected error, got %v", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("ParseDuration() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestOptions_Trimmed(t *testing.T) {
	o := DefaultOptions()

	tests := []struct {
		in   time.Duration
		want time.Duration
	}{
		{120 * time.Second, 120*time.Second - 500*time.Millisecond},
		{500 * time.Millisecond, 500 * time.Millisecond},
		{200 * time.Millisecond, 200 * time.Millisecond},
	}

	for _, tt := range tests {
		if got := o.Trimmed(tt.in); got != tt.want {
			t.Errorf("Trimmed(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestResampleArgs(t *testing.T) {
	args := ResampleArgs(DefaultOptions(), "in.s3v", "out.wav", 100*time.Second)
	got := strings.Join(args, " ")

	want := "ffmpeg -hide_banner -nostdin -y -loglevel error -i in.s3v -vn -ac 2 -ar 44100 -c:a pcm_s16le -t 99.500 out.wav"
	if got != want {
		t.Errorf("ResampleArgs()\n got: %s\nwant: %s", got, want)
	}
}

func TestResampleArgs_ShortTrackNotTrimmed(t *testing.T) {
	args := ResampleArgs(DefaultOptions(), "in.s3v", "out.wav", 300*time.Millisecond)

	for _, a := range args {
		if a == "-t" {
			t.Fatalf("short track should not be trimmed: %v", args)
		}
	}
}

func TestMuxArgs(t *testing.T) {
	o := DefaultOptions()
	o.Verbose = true
	got := strings.Join(MuxArgs(o, "frame.png", "audio.wav", "out.mp4"), " ")

	for _, want := range []string{
		"-loglevel info",
		"-loop 1 -framerate 1 -i frame.png -i audio.wav",
		"-c:v libx264 -tune stillimage -pix_fmt yuv420p -r 1",
		"-c:a aac -b:a 320k",
		"-shortest",
		"-movflags +faststart",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("MuxArgs() missing %q in %s", want, got)
		}
	}
	if !strings.HasSuffix(got, " out.mp4") {
		t.Errorf("output path must be last: %s", got)
	}
}

func TestExportArgs(t *testing.T) {
	got := strings.Join(ExportArgs(DefaultOptions(), "in.s3v", "out.mp3", 90*time.Second), " ")

	if !strings.Contains(got, "-c:a libmp3lame -b:a 320k -t 90.000 out.mp3") {
		t.Errorf("ExportArgs() = %s", got)
	}

	got = strings.Join(ExportArgs(DefaultOptions(), "in.s3v", "out.mp3", 0), " ")
	if strings.Contains(got, " -t ") {
		t.Errorf("ExportArgs() without length should not cut: %s", got)
	}
}

func TestExecResult_LastLine(t *testing.T) {
	r := ExecResult{Stderr: "first\nInvalid data found when processing input\n\n"}
	if got := r.LastLine(); got != "Invalid data found when processing input" {
		t.Errorf("LastLine() = %q", got)
	}
	if got := (ExecResult{}).LastLine(); got != "" {
		t.Errorf("LastLine() of empty stderr = %q", got)
	}
}

func TestRenderer_ProbeFailureIsEncodeError(t *testing.T) {
	dir := t.TempDir()
	o := DefaultOptions()
	o.FFprobePath = filepath.Join(dir, "no-such-ffprobe")

	folder := &model.SongFolder{ID: "1234", Path: dir}
	job := model.NewRenderJob(folder, &model.Metadata{Title: "Foo", Artist: "Bar"}, "1234.s3v", "1234_5_b.png", "")

	_, err := NewRenderer(o).Render(context.Background(), job, filepath.Join(dir, "out.mp4"))
	if !errors.Is(err, ErrEncode) {
		t.Errorf("Render error = %v, want ErrEncode", err)
	}
}

func TestRenderer_PrepareFrameDecodeError(t *testing.T) {
	dir := t.TempDir()
	jacket := filepath.Join(dir, "1234_5_b.png")
	if err := os.WriteFile(jacket, []byte("broken"), 0644); err != nil {
		t.Fatal(err)
	}

	r := NewRenderer(DefaultOptions())
	err := r.prepareFrame(context.Background(), jacket, filepath.Join(dir, "frame.png"))
	if !errors.Is(err, ErrImageDecode) {
		t.Errorf("prepareFrame error = %v, want ErrImageDecode", err)
	}
}
