package room

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spherecorp-kr/drcall-callcore/internal/core"
)

// frame is the JSON envelope exchanged with the signaling service.
type frame struct {
	Type          string `json:"type"`
	RoomID        string `json:"roomId,omitempty"`
	ParticipantID string `json:"participantId,omitempty"`
	UserID        string `json:"userId,omitempty"`
	StreamID      string `json:"streamId,omitempty"`
	AudioEnabled  bool   `json:"audioEnabled,omitempty"`
	VideoEnabled  bool   `json:"videoEnabled,omitempty"`
	Level         int    `json:"level,omitempty"`
	On            bool   `json:"on,omitempty"`
	Error         string `json:"error,omitempty"`
	// Payload carries SDP or ICE bodies for rtc frames.
	Payload json.RawMessage `json:"payload,omitempty"`
}

const (
	frameEnter     = "enter"
	frameEntered   = "entered"
	frameLeave     = "leave"
	frameVideo     = "video"
	frameAudio     = "audio"
	frameJoined    = "participant_joined"
	frameExited    = "participant_exited"
	frameLevel     = "audio_level"
	frameError     = "error"
	frameOffer     = "offer"
	frameAnswer    = "answer"
	frameCandidate = "candidate"
)

func encodeFrame(f frame) ([]byte, error) {
	data, err := json.Marshal(f)
	if err != nil {
		return nil, fmt.Errorf("encode %s frame: %w", f.Type, err)
	}
	return data, nil
}

// decodeEvent maps a participant-facing frame to the typed event union.
// Frames the adapter consumes internally (acks, SDP, ICE) return ok=false.
func decodeEvent(f frame, stream core.RemoteStream) (core.RoomEvent, bool) {
	switch f.Type {
	case frameJoined:
		return core.ParticipantJoined{
			ID:           core.ParticipantID(f.ParticipantID),
			UserID:       f.UserID,
			Stream:       stream,
			AudioEnabled: f.AudioEnabled,
			VideoEnabled: f.VideoEnabled,
		}, true
	case frameExited:
		return core.ParticipantExited{ID: core.ParticipantID(f.ParticipantID)}, true
	case frameLevel:
		return core.AudioLevelChanged{
			ID:    core.ParticipantID(f.ParticipantID),
			Level: f.Level,
		}, true
	case frameError:
		return core.RoomError{Err: errors.New(f.Error)}, true
	}
	return nil, false
}
