package room

import (
	"encoding/json"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/spherecorp-kr/drcall-callcore/internal/core"
)

const writeWait = 5 * time.Second

func (c *Conn) writePump() {
	defer c.pumps.Done()
	for data := range c.send {
		if err := c.ws.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
			log.Error().Err(err).Str("module", "room").Msg("writePump set deadline")
			return
		}
		if err := c.ws.WriteMessage(websocket.TextMessage, data); err != nil {
			log.Error().Err(err).Str("module", "room").Msg("writePump write error")
			return
		}
	}
}

func (c *Conn) readPump() {
	defer c.pumps.Done()
	for {
		_, data, err := c.ws.ReadMessage()
		if err != nil {
			c.mu.RLock()
			closed := c.closed
			c.mu.RUnlock()
			if !closed {
				log.Error().Err(err).Str("module", "room").Str("room", c.id).Msg("readPump read error")
				if !c.resolveEnter(err) {
					c.deliver(core.RoomError{Err: err})
				}
			}
			return
		}
		c.handleFrame(data)
	}
}

func (c *Conn) handleFrame(data []byte) {
	var f frame
	if err := json.Unmarshal(data, &f); err != nil {
		log.Error().Err(err).Str("module", "room").Msg("bad frame json")
		return
	}

	switch f.Type {
	case frameEntered:
		c.resolveEnter(nil)
	case frameError:
		// Pre-entry errors settle the handshake; later ones reach the
		// consumer as RoomError without ending the call.
		if ev, ok := decodeEvent(f, nil); ok {
			if re, isErr := ev.(core.RoomError); isErr {
				if !c.resolveEnter(re.Err) {
					c.deliver(ev)
				}
			}
		}
	case frameAnswer:
		c.handleAnswer(f)
	case frameCandidate:
		c.handleCandidate(f)
	case frameJoined:
		ev, _ := decodeEvent(f, c.remoteFor(f.StreamID))
		c.deliver(ev)
	case frameExited, frameLevel:
		if ev, ok := decodeEvent(f, nil); ok {
			c.deliver(ev)
		}
	default:
		log.Warn().Str("module", "room").Str("type", f.Type).Msg("unknown frame")
	}
}
