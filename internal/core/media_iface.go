package core

import (
	"context"

	"github.com/pion/webrtc/v4"
)

// MediaTrack is one locally captured track (camera or microphone).
type MediaTrack interface {
	Kind() webrtc.RTPCodecType
	// Local exposes the underlying publishable track. May be nil when the
	// capture backend does not produce RTP-capable tracks.
	Local() webrtc.TrackLocal
	SetEnabled(bool)
	Enabled() bool
	// Stopped reports whether the track has been released back to the OS.
	Stopped() bool
}

// MediaStream owns a set of local tracks. The controller is its sole owner
// until Stop, after which every track must report Stopped.
type MediaStream interface {
	Tracks() []MediaTrack
	SetVideoEnabled(bool)
	SetAudioEnabled(bool)
	Stop()
}

// MediaDevice acquires local camera/microphone media. Acquisition may block
// on an OS permission prompt for an unbounded time, so it takes a context.
type MediaDevice interface {
	Acquire(ctx context.Context) (MediaStream, error)
}

// RemoteStream is an opaque handle to a remote participant's media.
// The consumer renders it; the core never decodes it.
type RemoteStream interface {
	StreamID() string
}
