package render

import (
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
	"time"
)

type ffprobeOutput struct {
	Format struct {
		Duration string `json:"duration"`
	} `json:"format"`
}

// Probe runs ffprobe against path and returns the media duration.
func Probe(ctx context.Context, ffprobe, path string) (time.Duration, error) {
	cmd := exec.CommandContext(ctx, ffprobe,
		"-v", "quiet",
		"-print_format", "json",
		"-show_format",
		path,
	)

	out, err := cmd.Output()
	if err != nil {
		return 0, fmt.Errorf("ffprobe %q: %w", path, err)
	}

	return ParseDuration(out)
}

// ParseDuration extracts the format duration from ffprobe JSON output.
// Exported for testing without a real ffprobe binary.
func ParseDuration(data []byte) (time.Duration, error) {
	var raw ffprobeOutput
	if err := json.Unmarshal(data, &raw); err != nil {
		return 0, fmt.Errorf("parse ffprobe JSON: %w", err)
	}

	s := strings.TrimSpace(raw.Format.Duration)
	if s == "" || s == "N/A" {
		return 0, fmt.Errorf("ffprobe reported no duration")
	}

	secs, err := strconv.ParseFloat(s, 64)
	if err != nil || secs <= 0 {
		return 0, fmt.Errorf("invalid duration %q", s)
	}

	return time.Duration(secs * float64(time.Second)), nil
}
