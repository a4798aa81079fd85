package room

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spherecorp-kr/drcall-callcore/internal/core"
)

func TestDecodeEvent(t *testing.T) {
	stream := &remoteStream{id: "s1"}

	tests := []struct {
		name     string
		raw      string
		stream   core.RemoteStream
		expected core.RoomEvent
		ok       bool
	}{
		{
			name:   "participant joined",
			raw:    `{"type":"participant_joined","participantId":"p1","userId":"DOCTOR_7","streamId":"s1","audioEnabled":true,"videoEnabled":true}`,
			stream: stream,
			expected: core.ParticipantJoined{
				ID:           "p1",
				UserID:       "DOCTOR_7",
				Stream:       stream,
				AudioEnabled: true,
				VideoEnabled: true,
			},
			ok: true,
		},
		{
			name:     "participant exited",
			raw:      `{"type":"participant_exited","participantId":"p1"}`,
			expected: core.ParticipantExited{ID: "p1"},
			ok:       true,
		},
		{
			name:     "audio level",
			raw:      `{"type":"audio_level","participantId":"p1","level":45}`,
			expected: core.AudioLevelChanged{ID: "p1", Level: 45},
			ok:       true,
		},
		{
			name: "entered ack is not an event",
			raw:  `{"type":"entered","roomId":"r1"}`,
			ok:   false,
		},
		{
			name: "answer is adapter-internal",
			raw:  `{"type":"answer","payload":{"sdp":"v=0"}}`,
			ok:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var f frame
			require.NoError(t, json.Unmarshal([]byte(tt.raw), &f))

			ev, ok := decodeEvent(f, tt.stream)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.expected, ev)
			}
		})
	}
}

func TestDecodeErrorFrame(t *testing.T) {
	var f frame
	require.NoError(t, json.Unmarshal([]byte(`{"type":"error","error":"room full"}`), &f))

	ev, ok := decodeEvent(f, nil)
	require.True(t, ok)
	re, isErr := ev.(core.RoomError)
	require.True(t, isErr)
	assert.EqualError(t, re.Err, "room full")
}

func TestEncodeFrameRoundTrip(t *testing.T) {
	data, err := encodeFrame(frame{Type: frameEnter, RoomID: "r1", AudioEnabled: true, VideoEnabled: true})
	require.NoError(t, err)

	var f frame
	require.NoError(t, json.Unmarshal(data, &f))
	assert.Equal(t, frameEnter, f.Type)
	assert.Equal(t, "r1", f.RoomID)
	assert.True(t, f.AudioEnabled)
	assert.True(t, f.VideoEnabled)
}
