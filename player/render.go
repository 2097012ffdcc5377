package player

import (
	"github.com/luthersystems/beatlisp/schedule"
)

// DefaultSampleRate is used when no sample rate is configured.
const DefaultSampleRate = 44100

// Render mixes every trigger of tl into a mono buffer long enough to hold
// the timeline and any sound ringing past its end.  Output is hard clipped
// to [-1, 1].
func Render(tl *schedule.Timeline, sampleRate int, voices *Voices) []float32 {
	if sampleRate <= 0 {
		sampleRate = DefaultSampleRate
	}
	n := int(tl.Length.Seconds() * float64(sampleRate))
	mix := make([]float64, n)
	for _, t := range tl.Triggers {
		pcm := voices.Voice(t.Sound).Render(t, sampleRate)
		start := int(t.At.Seconds() * float64(sampleRate))
		if end := start + len(pcm); end > len(mix) {
			mix = append(mix, make([]float64, end-len(mix))...)
		}
		for i, x := range pcm {
			mix[start+i] += float64(x)
		}
	}
	out := make([]float32, len(mix))
	for i, x := range mix {
		out[i] = float32(clip(x))
	}
	return out
}

func clip(in float64) float64 {
	if in > 1 {
		return 1
	} else if in < -1 {
		return -1
	}
	return in
}
