package planner

import "github.com/framefuse/framefuse/internal/config"

// SelectAudio resolves which audio stream the output carries. Precedence:
//
//  1. the explicitly requested source, if that input has an audio track
//  2. whichever input has an audio track
//  3. a synthetic silent stereo source, added as a third input
//
// Exactly one audio stream is ever mapped. The returned map spec is an
// ffmpeg -map argument; silent reports whether the anullsrc input is needed.
func SelectAudio(requested config.InputSlot, hasAudio1, hasAudio2 bool) (mapSpec string, silent bool) {
	switch {
	case requested == config.InputFirst && hasAudio1:
		return "0:a:0", false
	case requested == config.InputSecond && hasAudio2:
		return "1:a:0", false
	case hasAudio1:
		return "0:a:0", false
	case hasAudio2:
		return "1:a:0", false
	}
	return "2:a:0", true
}
