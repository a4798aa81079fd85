package core

// RoomEvent is the closed set of messages a Room emits. Consumers switch
// over the concrete variants; there are no loose callbacks.
type RoomEvent interface {
	isRoomEvent()
}

// ParticipantJoined is emitted when a remote participant's stream starts.
type ParticipantJoined struct {
	ID           ParticipantID
	UserID       string
	Stream       RemoteStream
	AudioEnabled bool
	VideoEnabled bool
}

// ParticipantExited is emitted when a remote participant leaves the room.
type ParticipantExited struct {
	ID ParticipantID
}

// AudioLevelChanged carries one audio-level sample in [0,100] for a
// participant. Samples replace the previous level, they never accumulate.
type AudioLevelChanged struct {
	ID    ParticipantID
	Level int
}

// RoomError is a mid-call transport error. It does not end the call;
// the consumer decides whether to tear down.
type RoomError struct {
	Err error
}

func (ParticipantJoined) isRoomEvent() {}
func (ParticipantExited) isRoomEvent() {}
func (AudioLevelChanged) isRoomEvent() {}
func (RoomError) isRoomEvent()         {}
