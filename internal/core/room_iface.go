package core

import (
	"context"
	"errors"

	"github.com/spherecorp-kr/drcall-callcore/internal/domain"
)

// ParticipantID is room-scoped and unique per connection instance.
// It is NOT the clinical userID: one user may reconnect and receive
// a fresh ParticipantID.
type ParticipantID string

// Participant is a read-only view of one remote party in the room.
type Participant struct {
	ID           ParticipantID   `json:"participantId"`
	UserID       string          `json:"userId"`
	UserType     domain.UserType `json:"userType"`
	Stream       RemoteStream    `json:"-"`
	AudioEnabled bool            `json:"audioEnabled"`
	VideoEnabled bool            `json:"videoEnabled"`
	// AudioLevel is the latest reported sample in [0,100].
	AudioLevel int `json:"audioLevel"`
}

// ErrAlreadyEntered is returned by Room.Enter on a second call;
// re-entering requires a fresh Room instance from the provider.
var ErrAlreadyEntered = errors.New("room already entered")

type EnterOptions struct {
	AudioEnabled bool
	VideoEnabled bool
	// LocalStream is published into the room on entry.
	LocalStream MediaStream
}

// Room is one signaling/transport session for a multi-party call.
// Enter may be called once per instance; Exit is idempotent and is the
// only way the event stream terminates.
type Room interface {
	Enter(ctx context.Context, opts EnterOptions) error
	// Events delivers room events in FIFO order. The channel is closed
	// after Exit.
	Events() <-chan RoomEvent
	StartVideo() error
	StopVideo() error
	StartAudio() error
	StopAudio() error
	Exit()
}

// RoomProvider is the capability handed to the controller instead of an
// SDK-global accessor, so tests can substitute doubles and concurrent
// calls share no hidden state.
type RoomProvider interface {
	Authenticate(ctx context.Context, signalingUserID, accessToken string) error
	Connect(ctx context.Context) error
	// FetchRoom returns a fresh Room bound to this provider's transport.
	FetchRoom(ctx context.Context, roomID string) (Room, error)
}
