package room

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/pion/webrtc/v4"
	"github.com/rs/zerolog/log"

	"github.com/spherecorp-kr/drcall-callcore/internal/core"
)

var ErrBackpressure = errors.New("backpressure")

// Conn is one room connection. Enter may happen once; Exit is idempotent
// and is what closes the event stream.
type Conn struct {
	id string
	ws *websocket.Conn
	pc *webrtc.PeerConnection

	events chan core.RoomEvent
	send   chan []byte
	ack    chan error

	ackOnce  sync.Once
	exitOnce sync.Once
	pumps    sync.WaitGroup

	mu      sync.RWMutex
	entered bool
	closed  bool
	remotes map[string]*remoteStream
}

func newConn(id string, ws *websocket.Conn) *Conn {
	return &Conn{
		id:      id,
		ws:      ws,
		events:  make(chan core.RoomEvent, 64),
		send:    make(chan []byte, 32),
		ack:     make(chan error, 1),
		remotes: make(map[string]*remoteStream),
	}
}

func (c *Conn) Events() <-chan core.RoomEvent { return c.events }

func (c *Conn) Enter(ctx context.Context, opts core.EnterOptions) error {
	c.mu.Lock()
	if c.entered {
		c.mu.Unlock()
		return core.ErrAlreadyEntered
	}
	c.entered = true
	c.mu.Unlock()

	pc, err := c.setupPeer(opts.LocalStream)
	if err != nil {
		return fmt.Errorf("peer connection: %w", err)
	}
	c.pc = pc

	c.pumps.Add(2)
	go c.writePump()
	go c.readPump()

	data, err := encodeFrame(frame{
		Type:         frameEnter,
		RoomID:       c.id,
		AudioEnabled: opts.AudioEnabled,
		VideoEnabled: opts.VideoEnabled,
	})
	if err != nil {
		return err
	}
	if err := c.trySend(data); err != nil {
		return err
	}
	if err := c.sendOffer(); err != nil {
		return err
	}

	// There is deliberately no timeout here; only ctx bounds the wait.
	select {
	case err := <-c.ack:
		if err != nil {
			return fmt.Errorf("enter rejected: %w", err)
		}
		log.Info().Str("module", "room").Str("room", c.id).Msg("entered")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (c *Conn) StartVideo() error { return c.control(frameVideo, true) }
func (c *Conn) StopVideo() error  { return c.control(frameVideo, false) }
func (c *Conn) StartAudio() error { return c.control(frameAudio, true) }
func (c *Conn) StopAudio() error  { return c.control(frameAudio, false) }

func (c *Conn) control(kind string, on bool) error {
	c.mu.RLock()
	entered := c.entered
	c.mu.RUnlock()
	if !entered {
		return errors.New("room not entered")
	}
	data, err := encodeFrame(frame{Type: kind, RoomID: c.id, On: on})
	if err != nil {
		return err
	}
	return c.trySend(data)
}

// Exit tears the connection down: leave frame, peer connection, socket,
// then the event stream. The peer connection stops encoding before the
// socket drops so no half-written frame lingers on the wire.
func (c *Conn) Exit() {
	c.exitOnce.Do(func() {
		if data, err := encodeFrame(frame{Type: frameLeave, RoomID: c.id}); err == nil {
			_ = c.trySend(data)
		}

		c.mu.Lock()
		c.closed = true
		close(c.send)
		c.mu.Unlock()

		if c.pc != nil {
			if err := c.pc.Close(); err != nil {
				log.Error().Err(err).Str("module", "room").Str("room", c.id).Msg("peer close")
			}
		}
		_ = c.ws.Close()
		c.pumps.Wait()
		close(c.events)
		log.Info().Str("module", "room").Str("room", c.id).Msg("exited")
	})
}

func (c *Conn) trySend(data []byte) error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.closed {
		return errors.New("connection closed")
	}
	select {
	case c.send <- data:
		return nil
	default:
		return ErrBackpressure
	}
}

// deliver forwards an event to the consumer unless the room has exited.
func (c *Conn) deliver(ev core.RoomEvent) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.closed {
		return
	}
	c.events <- ev
}

// resolveEnter settles the pending Enter exactly once. Reports false when
// the handshake was already settled, meaning the frame arrived mid-call.
func (c *Conn) resolveEnter(err error) bool {
	settled := false
	c.ackOnce.Do(func() {
		c.ack <- err
		settled = true
	})
	return settled
}

func (c *Conn) remoteFor(streamID string) *remoteStream {
	c.mu.Lock()
	defer c.mu.Unlock()
	if s, ok := c.remotes[streamID]; ok {
		return s
	}
	s := &remoteStream{id: streamID}
	c.remotes[streamID] = s
	return s
}
