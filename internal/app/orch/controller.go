package orch

import (
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/spherecorp-kr/drcall-callcore/internal/app"
	"github.com/spherecorp-kr/drcall-callcore/internal/core"
	"github.com/spherecorp-kr/drcall-callcore/internal/domain"
)

type State int

const (
	StateIdle State = iota
	StateConnecting
	StateConnected
)

// Config carries the call identity and clinical references for one
// controller. OnRoomError receives mid-call transport errors; those do
// not end the call, the consumer decides whether to force EndCall.
type Config struct {
	Identity      domain.Identity
	AppointmentID int64
	PatientID     int64
	DoctorID      int64
	OnRoomError   func(error)
}

// Controller sequences media acquisition, the session handshake and the
// room connection for one video consultation, and owns every resource it
// acquires until EndCall.
type Controller struct {
	sessions core.SessionAPI
	provider core.RoomProvider
	device   core.MediaDevice
	cfg      Config

	registry *app.Registry

	mu       sync.Mutex
	state    State
	session  *domain.CallSession
	stream   core.MediaStream
	room     core.Room
	loopDone chan struct{}
	cameraOn bool
	micOn    bool
}

func New(sessions core.SessionAPI, provider core.RoomProvider, device core.MediaDevice, cfg Config) *Controller {
	return &Controller{
		sessions: sessions,
		provider: provider,
		device:   device,
		cfg:      cfg,
		registry: app.NewRegistry(),
	}
}

// Snapshot is the consolidated read-only view republished to the consumer.
type Snapshot struct {
	IsConnecting    bool               `json:"isConnecting"`
	IsConnected     bool               `json:"isConnected"`
	LocalStream     core.MediaStream   `json:"-"`
	Participants    []core.Participant `json:"participants"`
	ActiveSpeakerID core.ParticipantID `json:"activeSpeakerId,omitempty"`
	IsCameraOn      bool               `json:"isCameraOn"`
	IsMicOn         bool               `json:"isMicOn"`
}

func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	snap := Snapshot{
		IsConnecting: c.state == StateConnecting,
		IsConnected:  c.state == StateConnected,
		LocalStream:  c.stream,
		IsCameraOn:   c.cameraOn,
		IsMicOn:      c.micOn,
	}
	c.mu.Unlock()

	snap.Participants = c.registry.Participants()
	if id, ok := c.registry.ActiveSpeaker(); ok {
		snap.ActiveSpeakerID = id
	}
	return snap
}

// ToggleCamera flips the local camera. Valid only while connected;
// anything else is a no-op.
func (c *Controller) ToggleCamera() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != StateConnected {
		return
	}
	var err error
	if c.cameraOn {
		err = c.room.StopVideo()
	} else {
		err = c.room.StartVideo()
	}
	if err != nil {
		log.Error().Err(err).Str("module", "orch").Bool("camera_on", c.cameraOn).Msg("toggle camera")
		return
	}
	c.cameraOn = !c.cameraOn
	c.stream.SetVideoEnabled(c.cameraOn)
}

// ToggleMic flips the local microphone. Valid only while connected.
func (c *Controller) ToggleMic() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != StateConnected {
		return
	}
	var err error
	if c.micOn {
		err = c.room.StopAudio()
	} else {
		err = c.room.StartAudio()
	}
	if err != nil {
		log.Error().Err(err).Str("module", "orch").Bool("mic_on", c.micOn).Msg("toggle mic")
		return
	}
	c.micOn = !c.micOn
	c.stream.SetAudioEnabled(c.micOn)
}
