package room

import (
	"sync"

	"github.com/pion/webrtc/v4"
)

// remoteStream collects the remote tracks belonging to one participant's
// stream. Consumers receive the handle before tracks necessarily arrive.
type remoteStream struct {
	id string

	mu     sync.Mutex
	tracks []*webrtc.TrackRemote
}

func (s *remoteStream) StreamID() string { return s.id }

func (s *remoteStream) addTrack(t *webrtc.TrackRemote) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tracks = append(s.tracks, t)
}

// Tracks returns the remote tracks attached so far.
func (s *remoteStream) Tracks() []*webrtc.TrackRemote {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*webrtc.TrackRemote, len(s.tracks))
	copy(out, s.tracks)
	return out
}
