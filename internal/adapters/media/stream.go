package media

import (
	"sync"

	"github.com/pion/mediadevices"
	"github.com/pion/webrtc/v4"
	"github.com/rs/zerolog/log"

	"github.com/spherecorp-kr/drcall-callcore/internal/core"
)

type localTrack struct {
	t mediadevices.Track

	mu      sync.Mutex
	enabled bool
	stopped bool
}

func (t *localTrack) Kind() webrtc.RTPCodecType { return t.t.Kind() }
func (t *localTrack) Local() webrtc.TrackLocal  { return t.t }

func (t *localTrack) SetEnabled(on bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.enabled = on
}

func (t *localTrack) Enabled() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.enabled
}

func (t *localTrack) Stopped() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.stopped
}

func (t *localTrack) stop() {
	t.mu.Lock()
	if t.stopped {
		t.mu.Unlock()
		return
	}
	t.stopped = true
	t.mu.Unlock()
	if err := t.t.Close(); err != nil {
		log.Error().Err(err).Str("module", "media").Str("kind", t.t.Kind().String()).Msg("track close")
	}
}

type localStream struct {
	tracks []*localTrack
}

func newLocalStream(tracks []mediadevices.Track) *localStream {
	s := &localStream{}
	for _, t := range tracks {
		s.tracks = append(s.tracks, &localTrack{t: t, enabled: true})
	}
	return s
}

func (s *localStream) Tracks() []core.MediaTrack {
	out := make([]core.MediaTrack, 0, len(s.tracks))
	for _, t := range s.tracks {
		out = append(out, t)
	}
	return out
}

func (s *localStream) SetVideoEnabled(on bool) { s.setKindEnabled(webrtc.RTPCodecTypeVideo, on) }
func (s *localStream) SetAudioEnabled(on bool) { s.setKindEnabled(webrtc.RTPCodecTypeAudio, on) }

func (s *localStream) setKindEnabled(kind webrtc.RTPCodecType, on bool) {
	for _, t := range s.tracks {
		if t.Kind() == kind {
			t.SetEnabled(on)
		}
	}
}

// Stop releases every track back to the OS. Idempotent.
func (s *localStream) Stop() {
	for _, t := range s.tracks {
		t.stop()
	}
}
