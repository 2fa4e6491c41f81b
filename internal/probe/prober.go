// Package probe provides ffprobe-based media inspection. A single JSON call
// per file yields the stream dimensions, frame rate, container duration, and
// audio presence the planner needs.
package probe

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
)

// ErrNoVideoStream is returned when a probed file contains no video stream.
var ErrNoVideoStream = errors.New("no video stream found")

// Probe runs a single ffprobe JSON call against path and returns the parsed
// result. ffprobePath is the binary to invoke ("ffprobe" resolves via PATH).
func Probe(ctx context.Context, ffprobePath, path string) (*VideoInfo, error) {
	cmd := exec.CommandContext(ctx, ffprobePath,
		"-v", "error",
		"-show_entries", "stream=width,height,r_frame_rate,codec_type:format=duration",
		"-of", "json",
		path,
	)

	out, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("ffprobe %q: %w", path, err)
	}

	info, err := ParseJSON(out)
	if err != nil {
		return nil, fmt.Errorf("probe %q: %w", path, err)
	}
	return info, nil
}

// ParseJSON converts raw ffprobe JSON output into a VideoInfo.
// Exported for testing without a real ffprobe binary.
func ParseJSON(data []byte) (*VideoInfo, error) {
	var raw ffprobeOutput
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse ffprobe JSON: %w", err)
	}
	return buildInfo(&raw)
}

// --- ffprobe JSON wire types ---

type ffprobeOutput struct {
	Format  ffprobeFormat   `json:"format"`
	Streams []ffprobeStream `json:"streams"`
}

type ffprobeFormat struct {
	Duration string `json:"duration"`
}

type ffprobeStream struct {
	CodecType  string `json:"codec_type"`
	Width      int    `json:"width"`
	Height     int    `json:"height"`
	RFrameRate string `json:"r_frame_rate"`
}

// buildInfo selects the first video stream, flags audio presence, and
// validates that the result describes a usable input.
func buildInfo(raw *ffprobeOutput) (*VideoInfo, error) {
	var video *ffprobeStream
	hasAudio := false

	for i := range raw.Streams {
		s := &raw.Streams[i]
		switch s.CodecType {
		case "video":
			if video == nil {
				video = s
			}
		case "audio":
			hasAudio = true
		}
	}

	if video == nil {
		return nil, ErrNoVideoStream
	}
	if video.Width <= 0 || video.Height <= 0 {
		return nil, fmt.Errorf("malformed probe response: video dimensions %dx%d", video.Width, video.Height)
	}

	duration := parseFloat(raw.Format.Duration)
	if duration <= 0 {
		return nil, fmt.Errorf("malformed probe response: duration %q", raw.Format.Duration)
	}

	return &VideoInfo{
		Width:     video.Width,
		Height:    video.Height,
		Duration:  duration,
		FrameRate: ParseRate(video.RFrameRate),
		HasAudio:  hasAudio,
	}, nil
}

// ParseRate parses an ffprobe frame-rate string, either a "N/D" ratio or a
// plain decimal. Malformed input and zero denominators fall back to
// [DefaultFrameRate].
func ParseRate(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return DefaultFrameRate
	}
	if num, den, ok := strings.Cut(s, "/"); ok {
		n, errN := strconv.ParseFloat(num, 64)
		d, errD := strconv.ParseFloat(den, 64)
		if errN != nil || errD != nil || d == 0 {
			return DefaultFrameRate
		}
		return n / d
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return DefaultFrameRate
	}
	return f
}

func parseFloat(s string) float64 {
	f, _ := strconv.ParseFloat(strings.TrimSpace(s), 64)
	return f
}
