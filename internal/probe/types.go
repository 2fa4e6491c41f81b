package probe

import "strconv"

// DefaultFrameRate is assumed when a source reports a malformed or
// zero-denominator frame-rate ratio.
const DefaultFrameRate = 30.0

// VideoInfo holds the normalized properties of one input video: the first
// video stream's dimensions and frame rate, the container duration, and
// whether any audio stream is present. Immutable once probed.
type VideoInfo struct {
	Width     int
	Height    int
	Duration  float64 // seconds
	FrameRate float64
	HasAudio  bool
}

// Aspect returns the width/height ratio of the video.
func (v *VideoInfo) Aspect() float64 {
	return float64(v.Width) / float64(v.Height)
}

// Resolution returns "WxH" for display.
func (v *VideoInfo) Resolution() string {
	return strconv.Itoa(v.Width) + "x" + strconv.Itoa(v.Height)
}
