package orch

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/spherecorp-kr/drcall-callcore/internal/core"
	"github.com/spherecorp-kr/drcall-callcore/internal/domain"
)

// Join drives the whole entry sequence: resolve the session and join
// grant, capture local media, then authenticate, connect and enter the
// room. The sequence is atomic: any step failing releases everything
// acquired in this attempt, the error is returned exactly once, and the
// controller is back at idle ready for a retry. A no-op while a join is
// already in flight or the call is up.
//
// There is no automatic retry and no way to cancel an in-flight join
// other than ctx; the consumer retries by calling Join again.
func (c *Controller) Join(ctx context.Context) error {
	c.mu.Lock()
	if c.state != StateIdle {
		c.mu.Unlock()
		return nil
	}
	c.state = StateConnecting
	c.mu.Unlock()

	room, stream, sess, err := c.connect(ctx)
	if err != nil {
		c.mu.Lock()
		c.state = StateIdle
		c.mu.Unlock()
		log.Error().Err(err).Str("module", "orch").Int64("appointment", c.cfg.AppointmentID).Msg("join failed")
		return err
	}

	c.mu.Lock()
	c.session = sess
	c.stream = stream
	c.room = room
	c.cameraOn = true
	c.micOn = true
	c.loopDone = make(chan struct{})
	done := c.loopDone
	c.state = StateConnected
	c.mu.Unlock()

	go c.consume(room, done)

	log.Info().Str("module", "orch").Str("session", string(sess.ID)).Str("room", sess.RoomID).Msg("call connected")
	return nil
}

// connect performs the full handshake without touching controller state,
// so a failure leaves nothing behind. Media capture and the session
// handshake run concurrently; room entry waits for both.
func (c *Controller) connect(ctx context.Context) (core.Room, core.MediaStream, *domain.CallSession, error) {
	var (
		sess   *domain.CallSession
		grant  *domain.JoinGrant
		stream core.MediaStream
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s, err := c.resolveSession(gctx)
		if err != nil {
			return err
		}
		gr, err := c.sessions.JoinSession(gctx, s.ID, core.JoinSessionParams{
			UserID:         c.cfg.Identity.UserID,
			UserType:       c.cfg.Identity.UserType,
			IsAudioEnabled: true,
			IsVideoEnabled: true,
		})
		if err != nil {
			return fmt.Errorf("join session: %w", err)
		}
		sess, grant = s, gr
		return nil
	})
	g.Go(func() error {
		ms, err := c.device.Acquire(gctx)
		if err != nil {
			return fmt.Errorf("acquire media: %w", err)
		}
		stream = ms
		return nil
	})
	if err := g.Wait(); err != nil {
		if stream != nil {
			stream.Stop()
		}
		return nil, nil, nil, err
	}

	room, err := c.enterRoom(ctx, grant, stream)
	if err != nil {
		stream.Stop()
		return nil, nil, nil, err
	}
	return room, stream, sess, nil
}

func (c *Controller) enterRoom(ctx context.Context, grant *domain.JoinGrant, stream core.MediaStream) (core.Room, error) {
	if err := c.provider.Authenticate(ctx, grant.SignalingUserID, grant.AccessToken); err != nil {
		return nil, fmt.Errorf("authenticate: %w", err)
	}
	if err := c.provider.Connect(ctx); err != nil {
		return nil, fmt.Errorf("connect transport: %w", err)
	}
	room, err := c.provider.FetchRoom(ctx, grant.RoomID)
	if err != nil {
		return nil, fmt.Errorf("fetch room %s: %w", grant.RoomID, err)
	}
	if err := room.Enter(ctx, core.EnterOptions{
		AudioEnabled: true,
		VideoEnabled: true,
		LocalStream:  stream,
	}); err != nil {
		room.Exit()
		return nil, fmt.Errorf("enter room %s: %w", grant.RoomID, err)
	}
	return room, nil
}

// resolveSession finds the consultation session for the appointment or
// creates it when none exists yet.
func (c *Controller) resolveSession(ctx context.Context) (*domain.CallSession, error) {
	s, err := c.sessions.GetSessionByAppointment(ctx, c.cfg.AppointmentID)
	if err == nil {
		return s, nil
	}
	if !errors.Is(err, core.ErrSessionNotFound) {
		return nil, fmt.Errorf("get session: %w", err)
	}
	s, err = c.sessions.CreateSession(ctx, core.CreateSessionParams{
		AppointmentID:  c.cfg.AppointmentID,
		PatientID:      c.cfg.PatientID,
		DoctorID:       c.cfg.DoctorID,
		IsVideoEnabled: true,
		AutoCreateRoom: true,
	})
	if err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}
	log.Info().Str("module", "orch").Str("session", string(s.ID)).Int64("appointment", s.AppointmentID).Msg("session created")
	return s, nil
}
