package room

import (
	"encoding/json"

	"github.com/pion/webrtc/v4"
	"github.com/rs/zerolog/log"

	"github.com/spherecorp-kr/drcall-callcore/internal/core"
)

type sdpPayload struct {
	SDP string `json:"sdp"`
}

func defaultRTCConfig() webrtc.Configuration {
	return webrtc.Configuration{
		ICEServers: []webrtc.ICEServer{
			{
				URLs: []string{"stun:stun.l.google.com:19302"},
			},
		},
	}
}

// setupPeer builds the media peer connection: publishes the local tracks
// and routes incoming remote tracks to their stream handle by stream ID.
func (c *Conn) setupPeer(local core.MediaStream) (*webrtc.PeerConnection, error) {
	pc, err := webrtc.NewPeerConnection(defaultRTCConfig())
	if err != nil {
		return nil, err
	}

	if local != nil {
		for _, t := range local.Tracks() {
			lt := t.Local()
			if lt == nil {
				continue
			}
			if _, err := pc.AddTrack(lt); err != nil {
				log.Error().Err(err).Str("module", "room").Str("kind", t.Kind().String()).Msg("add local track")
			}
		}
	}

	pc.OnICEConnectionStateChange(func(s webrtc.ICEConnectionState) {
		log.Info().Str("module", "room").Str("room", c.id).Str("ice_state", s.String()).Msg("ICE state")
	})

	pc.OnICECandidate(func(cand *webrtc.ICECandidate) {
		if cand == nil {
			return
		}
		payload, err := json.Marshal(cand.ToJSON())
		if err != nil {
			log.Error().Err(err).Str("module", "room").Msg("marshal candidate")
			return
		}
		data, err := encodeFrame(frame{Type: frameCandidate, RoomID: c.id, Payload: payload})
		if err != nil {
			return
		}
		_ = c.trySend(data)
	})

	pc.OnTrack(func(track *webrtc.TrackRemote, receiver *webrtc.RTPReceiver) {
		log.Info().
			Str("module", "room").
			Str("room", c.id).
			Str("kind", track.Kind().String()).
			Str("stream_id", track.StreamID()).
			Msg("remote track")
		c.remoteFor(track.StreamID()).addTrack(track)
	})

	return pc, nil
}

// sendOffer publishes the local description once ICE gathering completes.
func (c *Conn) sendOffer() error {
	offer, err := c.pc.CreateOffer(nil)
	if err != nil {
		return err
	}
	gatherComplete := webrtc.GatheringCompletePromise(c.pc)
	if err := c.pc.SetLocalDescription(offer); err != nil {
		return err
	}
	<-gatherComplete

	payload, err := json.Marshal(sdpPayload{SDP: c.pc.LocalDescription().SDP})
	if err != nil {
		return err
	}
	data, err := encodeFrame(frame{Type: frameOffer, RoomID: c.id, Payload: payload})
	if err != nil {
		return err
	}
	return c.trySend(data)
}

func (c *Conn) handleAnswer(f frame) {
	var p sdpPayload
	if err := json.Unmarshal(f.Payload, &p); err != nil {
		log.Error().Err(err).Str("module", "room").Msg("bad answer payload")
		return
	}
	desc := webrtc.SessionDescription{Type: webrtc.SDPTypeAnswer, SDP: p.SDP}
	if err := c.pc.SetRemoteDescription(desc); err != nil {
		log.Error().Err(err).Str("module", "room").Str("room", c.id).Msg("set remote description")
	}
}

func (c *Conn) handleCandidate(f frame) {
	var ci webrtc.ICECandidateInit
	if err := json.Unmarshal(f.Payload, &ci); err != nil {
		log.Error().Err(err).Str("module", "room").Msg("bad candidate payload")
		return
	}
	if err := c.pc.AddICECandidate(ci); err != nil {
		log.Error().Err(err).Str("module", "room").Str("room", c.id).Msg("add ICE candidate")
	}
}
