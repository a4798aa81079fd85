package orch

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/spherecorp-kr/drcall-callcore/internal/core"
)

// consume is the single reader of the room's event stream, so delivery
// into the registry stays FIFO. It runs until Exit closes the stream.
func (c *Controller) consume(room core.Room, done chan struct{}) {
	defer close(done)
	for ev := range room.Events() {
		if e, ok := ev.(core.RoomError); ok {
			log.Error().Err(e.Err).Str("module", "orch").Msg("room error")
			if c.cfg.OnRoomError != nil {
				c.cfg.OnRoomError(e.Err)
			}
			continue
		}
		c.registry.Apply(ev)
	}
}

// EndCall releases every owned resource: room connection first, then
// local tracks, then the server-side end notification. The order is
// load-bearing: the room must stop encoding before tracks are pulled,
// and the server only hears about sessions that were genuinely entered.
// Each step is best-effort; failures are logged and teardown continues.
// Safe to call from a user action and a shutdown hook alike, and
// idempotent: the second call is a no-op.
func (c *Controller) EndCall(ctx context.Context) {
	c.mu.Lock()
	if c.state != StateConnected {
		c.mu.Unlock()
		return
	}
	room, stream, sess, done := c.room, c.stream, c.session, c.loopDone
	c.room, c.stream, c.session, c.loopDone = nil, nil, nil, nil
	c.cameraOn, c.micOn = false, false
	c.state = StateIdle
	c.mu.Unlock()

	room.Exit()
	<-done
	stream.Stop()
	if err := c.sessions.EndSession(ctx, sess.ID); err != nil {
		log.Error().Err(err).Str("module", "orch").Str("session", string(sess.ID)).Msg("end session notify")
	}
	c.registry.Reset()

	log.Info().Str("module", "orch").Str("session", string(sess.ID)).Msg("call ended")
}
