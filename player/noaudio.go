//go:build !portaudio

package player

// NewAudioSink returns ErrNoAudio.  Audio output requires the portaudio
// build tag.
func NewAudioSink(config AudioConfig) (Sink, error) {
	return nil, ErrNoAudio
}
